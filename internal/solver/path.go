// internal/solver/path.go
//
// Path: the solver's combination cursor.
//
// A Path is an ordered selection of up to 4 distinct board-fragment indices,
// filled left to right and vacated right to left, so occupancy is always
// contiguous from slot 0. The empty Path is the enumeration's terminal
// sentinel.
//
// Motions (append, increment, pop, popAndIncrement) are pure: each takes a
// Path by value and returns a new Path or one of the sentinel errors below.
// Those errors are control-flow signals for the solver loop and never escape
// this package.
//
// Enumeration order: starting from the one-slot Path holding index 0, and
// always preferring append over increment and increment over
// popAndIncrement, every 1-, 2-, 3- and 4-length selection of distinct
// indices is visited exactly once, ending at the empty Path. This is what
// makes a solver run deterministic and resumable.

package solver

import (
	"errors"
	"strconv"
	"strings"
)

// maxSlots is the maximum number of fragments a candidate word may use.
const maxSlots = 4

// Motion failure signals, consumed exclusively by the solver loop.
var (
	errPathOverflow   = errors.New("path is already full")
	errPathUnderflow  = errors.New("path is already empty")
	errIndexOverflow  = errors.New("rightmost index is already at maximum")
	errIncrementEmpty = errors.New("cannot increment an empty path")
)

// Path holds up to maxSlots distinct fragment indices. Slots store index+1,
// with 0 meaning vacant, so the zero value is the empty (terminal) Path.
type Path struct {
	slots [maxSlots]int8
}

// pathOf builds a Path from explicit indices. Test helper.
func pathOf(indices ...int) Path {
	var p Path
	for i, idx := range indices {
		p.slots[i] = int8(idx) + 1
	}
	return p
}

// Len reports the number of occupied slots.
func (p Path) Len() int {
	n := 0
	for _, s := range p.slots {
		if s != 0 {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no slot is occupied. Vacancy clusters right, so
// checking slot 0 suffices.
func (p Path) IsEmpty() bool { return p.slots[0] == 0 }

// IsFull reports whether all slots are occupied.
func (p Path) IsFull() bool { return p.slots[maxSlots-1] != 0 }

// At returns the fragment index in the given slot, and whether the slot is
// occupied.
func (p Path) At(slot int) (int, bool) {
	if p.slots[slot] == 0 {
		return 0, false
	}
	return int(p.slots[slot]) - 1, true
}

// Indices returns the occupied fragment indices in slot order.
func (p Path) Indices() []int {
	out := make([]int, 0, maxSlots)
	for _, s := range p.slots {
		if s == 0 {
			break
		}
		out = append(out, int(s)-1)
	}
	return out
}

// Word concatenates the fragments addressed by the path, in slot order.
func (p Path) Word(fragments []string) string {
	var b strings.Builder
	for _, s := range p.slots {
		if s == 0 {
			break
		}
		b.WriteString(fragments[int(s)-1])
	}
	return b.String()
}

// String renders the path for logs, e.g. "[0 3 17 _]".
func (p Path) String() string {
	parts := make([]string, maxSlots)
	for i, s := range p.slots {
		if s == 0 {
			parts[i] = "_"
		} else {
			parts[i] = strconv.Itoa(int(s) - 1)
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// rightmost returns the position of the rightmost occupied slot, or -1 if
// the path is empty.
func (p Path) rightmost() int {
	for i := maxSlots - 1; i >= 0; i-- {
		if p.slots[i] != 0 {
			return i
		}
	}
	return -1
}

// used reports which fragment indices the first n slots occupy.
func (p Path) used(n int) [maxIndices]bool {
	var u [maxIndices]bool
	for i := 0; i < n; i++ {
		if p.slots[i] != 0 {
			u[int(p.slots[i])-1] = true
		}
	}
	return u
}

// maxIndices bounds the index universe a Path can address. Official boards
// have 20 fragments; reduced boards are allowed for tests and experiments.
const maxIndices = 127

// append adds the smallest fragment index not already occupied as the new
// rightmost slot. boardLen is the size of the index universe.
func (p Path) append(boardLen int) (Path, error) {
	if p.IsFull() {
		return Path{}, errPathOverflow
	}
	used := p.used(maxSlots)
	next := 0
	for next < boardLen && used[next] {
		next++
	}
	if next >= boardLen {
		// Possible only when the board has fewer fragments than slots.
		return Path{}, errIndexOverflow
	}
	p.slots[p.rightmost()+1] = int8(next) + 1
	return p, nil
}

// increment replaces the rightmost occupied slot's index with the next larger
// index not occupied elsewhere in the path, scanning upward.
func (p Path) increment(boardLen int) (Path, error) {
	r := p.rightmost()
	if r < 0 {
		return Path{}, errIncrementEmpty
	}
	used := p.used(r) // all slots left of the rightmost constrain it
	for next := int(p.slots[r]); next < boardLen; next++ {
		if !used[next] {
			p.slots[r] = int8(next) + 1
			return p, nil
		}
	}
	return Path{}, errIndexOverflow
}

// pop vacates the rightmost occupied slot.
func (p Path) pop() (Path, error) {
	r := p.rightmost()
	if r < 0 {
		return Path{}, errPathUnderflow
	}
	p.slots[r] = 0
	return p, nil
}

// popAndIncrement repeatedly pops one slot and attempts an increment,
// carrying past exhausted rightmost digits. It returns errIncrementEmpty
// once the path has been popped to empty, which the solver reads as
// "enumeration complete".
func (p Path) popAndIncrement(boardLen int) (Path, error) {
	for {
		next, err := p.pop()
		if err != nil {
			return Path{}, err
		}
		p = next
		next, err = p.increment(boardLen)
		switch {
		case err == nil:
			return next, nil
		case errors.Is(err, errIndexOverflow):
			continue
		default:
			return Path{}, err
		}
	}
}

// isDisjoint reports whether the occupied indices are pairwise distinct.
// All paths produced by motions are disjoint; tests check this directly.
func (p Path) isDisjoint() bool {
	var seen [maxIndices]bool
	for _, s := range p.slots {
		if s == 0 {
			continue
		}
		idx := int(s) - 1
		if seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}
