// internal/puzzle/puzzle.go
//
// Board handling for the Quartiles puzzle.
// Defines:
//   - Board: the ordered sequence of exactly 20 letter fragments for one
//     puzzle instance, in row-major order.
//   - Parse/ParseLines: build a Board from user input (CLI flag, board file,
//     HTTP request body) with full validation.
//
// Validation rules:
//   - Exactly BoardFragments (20) fragments.
//   - Each fragment is 1..MaxFragmentLen lowercase ASCII letters after
//     normalization (input is trimmed and lowercased).
//
// The solver itself accepts reduced boards for tests; this package is the
// boundary that enforces the official shape.

package puzzle

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// BoardFragments is the number of fragments on an official board (4x5).
	BoardFragments = 20

	// MaxFragmentLen bounds a single fragment. Official puzzles use 1-4
	// letters; 8 leaves room for unofficial boards while keeping candidate
	// words bounded.
	MaxFragmentLen = 8
)

// Board is an official 20-fragment puzzle board, row-major from the top-left.
type Board []string

// ErrBadBoard reports a board that failed validation.
var ErrBadBoard = errors.New("puzzle: invalid board")

// Parse splits s on commas and whitespace and validates the result as an
// official board.
func Parse(s string) (Board, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	return ParseLines(fields)
}

// ParseLines validates a fragment list as an official board. Fragments are
// trimmed and lowercased before validation.
func ParseLines(fragments []string) (Board, error) {
	out := make(Board, 0, BoardFragments)
	for _, f := range fragments {
		f = strings.TrimSpace(strings.ToLower(f))
		if f == "" {
			continue
		}
		if len(f) > MaxFragmentLen {
			return nil, fmt.Errorf("%w: fragment %q too long", ErrBadBoard, f)
		}
		if !isAlpha(f) {
			return nil, fmt.Errorf("%w: fragment %q is not all letters", ErrBadBoard, f)
		}
		out = append(out, f)
	}
	if len(out) != BoardFragments {
		return nil, fmt.Errorf("%w: got %d fragments, want %d", ErrBadBoard, len(out), BoardFragments)
	}
	return out, nil
}

// isAlpha checks that a string consists only of lowercase a-z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// String renders the board as a comma-separated fragment list.
func (b Board) String() string { return strings.Join(b, ",") }
