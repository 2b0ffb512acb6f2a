// internal/solver/solver.go
//
// Resumable explorer for one Quartiles board.
//
// Responsibilities:
//   - Own the current Path, the board fragments, and the accumulating
//     solution for a single solving run.
//   - Advance: run the enumeration under dictionary guidance until one new
//     word is confirmed or the caller's time budget elapses, then yield with
//     enough state to resume exactly where it left off.
//   - Report completion (IsFinished) and well-formedness of the discovered
//     solution (IsSolved).
//
// Notes:
//   - A Solver is exclusively owned: at most one Advance may be in flight.
//     The Dictionary it holds is read-only and may be shared freely with
//     other solvers.
//   - Advance never blocks; suspension is purely a voluntary wall-clock
//     check at loop granularity, so a zero budget still performs one full
//     dictionary check and one motion.
//   - Duplicate fragment text at distinct indices counts as distinct
//     combinations. An unofficial board built that way may finish without
//     ever satisfying IsSolved; that is intended behavior.

package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/quartiles-solver/internal/dict"
)

// fullSolutionWords is the number of distinct full-length words an official
// board's solution must contain.
const fullSolutionWords = 5

// Solver is the complete context of one solving run. Construct with New,
// drive with Advance (or SolveFully), inspect with Solution/IsSolved.
type Solver struct {
	dictionary *dict.Dictionary
	fragments  []string
	path       Path
	solution   []Path
	finished   bool
}

// New constructs a solver for the given board fragments. The dictionary is
// held by reference and must not be mutated while the solver runs.
// The enumeration starts at the one-slot path holding index 0.
func New(dictionary *dict.Dictionary, fragments []string) (*Solver, error) {
	if dictionary == nil {
		return nil, errors.New("solver: nil dictionary")
	}
	if len(fragments) == 0 {
		return nil, errors.New("solver: empty board")
	}
	if len(fragments) > maxIndices {
		return nil, fmt.Errorf("solver: board too large: %d fragments", len(fragments))
	}
	for i, f := range fragments {
		if f == "" {
			return nil, fmt.Errorf("solver: empty fragment at index %d", i)
		}
	}
	return &Solver{
		dictionary: dictionary,
		fragments:  fragments,
		path:       pathOf(0),
	}, nil
}

// IsFinished reports whether the search space has been exhausted. Calling
// Advance on a finished solver is a no-op.
func (s *Solver) IsFinished() bool { return s.finished }

// IsSolved reports whether the run produced a well-formed solution: the
// solver has finished, at least fullSolutionWords distinct full-length words
// were found, and the full-length entries collectively use every board
// fragment. An official board satisfies all three; a misentered or
// unofficial board typically finishes without doing so.
func (s *Solver) IsSolved() bool {
	if !s.finished {
		return false
	}
	uniqueWords := make(map[string]struct{})
	usedIndices := make(map[int]struct{})
	for _, p := range s.solution {
		if !p.IsFull() {
			continue
		}
		uniqueWords[p.Word(s.fragments)] = struct{}{}
		for _, idx := range p.Indices() {
			usedIndices[idx] = struct{}{}
		}
	}
	return len(uniqueWords) >= fullSolutionWords && len(usedIndices) == len(s.fragments)
}

// Advance runs the solver until a single new word is found or the time
// budget elapses, whichever comes first, always completing at least one
// full iteration. It returns the found word's path and true, or the zero
// Path and false when yielding on budget or on exhaustion.
//
// Each discovered word moves the cursor exactly one motion before Advance
// returns, so resuming never re-discovers it.
func (s *Solver) Advance(budget time.Duration) (Path, bool) {
	if s.finished {
		log.Trace().Msg("solver already finished")
		return Path{}, false
	}

	start := time.Now()
	for {
		word := s.path.Word(s.fragments)
		found := false

		if s.dictionary.Contains(word) {
			log.Debug().Str("word", word).Stringer("path", s.path).Msg("found word")
			s.solution = append(s.solution, s.path)
			found = true
		}

		// Prefer descending: if the candidate is a viable prefix, extend it
		// with the smallest unused index. A full path simply falls through
		// to increment.
		moved := false
		if s.dictionary.ContainsPrefix(word) {
			if next, err := s.path.append(len(s.fragments)); err == nil {
				s.path = next
				moved = true
			}
		}

		if !moved {
			next, err := s.path.increment(len(s.fragments))
			if errors.Is(err, errIndexOverflow) {
				next, err = s.path.popAndIncrement(len(s.fragments))
			}
			if err != nil {
				// Popped to empty: the enumeration is exhausted. Any word
				// found this iteration is already in the solution.
				log.Debug().Int("words", len(s.solution)).Msg("search space exhausted")
				s.finished = true
				return Path{}, false
			}
			s.path = next
		}

		if found {
			return s.solution[len(s.solution)-1], true
		}
		if time.Since(start) >= budget {
			return Path{}, false
		}
	}
}

// SolveFully drives Advance until the search space is exhausted, checking
// ctx between slices so a caller can abandon a pathological board.
func (s *Solver) SolveFully(ctx context.Context) error {
	const slice = 50 * time.Millisecond
	for !s.finished {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Advance(slice)
	}
	return nil
}

// Word returns the candidate word for a path against this solver's board.
func (s *Solver) Word(p Path) string { return p.Word(s.fragments) }

// Fragments returns the board fragments, in board order.
func (s *Solver) Fragments() []string {
	out := make([]string, len(s.fragments))
	copy(out, s.fragments)
	return out
}

// SolutionPaths returns the solution so far, in discovery order.
func (s *Solver) SolutionPaths() []Path {
	out := make([]Path, len(s.solution))
	copy(out, s.solution)
	return out
}

// Solution returns the discovered words, in discovery order.
func (s *Solver) Solution() []string {
	out := make([]string, len(s.solution))
	for i, p := range s.solution {
		out[i] = p.Word(s.fragments)
	}
	return out
}
