// Package ordering holds the position arithmetic behind drag-and-drop.
// Columns within a board and cards within a column both carry a dense
// zero-based position; every insert, delete and move keeps the set of
// sibling positions exactly {0..n-1}. The repositories translate the
// Shift values produced here into ranged UPDATE statements inside one
// transaction.
package ordering

import "math"

// NoBound marks an open upper end of a shift range.
const NoBound = math.MaxInt

// Shift moves every sibling whose position lies in [Lo, Hi] by Delta.
type Shift struct {
	Lo    int
	Hi    int
	Delta int
}

// Empty reports whether the shift touches no rows.
func (s Shift) Empty() bool {
	return s.Lo > s.Hi || s.Delta == 0
}

// Next returns the append position given the current maximum sibling
// position, where an empty parent reports -1.
func Next(maxPos int) int {
	return maxPos + 1
}

// CloseGap re-closes the hole left by removing the item that held
// removedPos: every later sibling moves down by one.
func CloseGap(removedPos int) Shift {
	return Shift{Lo: removedPos + 1, Hi: NoBound, Delta: -1}
}

// OpenGap makes room for an item arriving at pos: every sibling at or
// after pos moves up by one.
func OpenGap(pos int) Shift {
	return Shift{Lo: pos, Hi: NoBound, Delta: 1}
}

// ReorderWithin returns the sibling shift for moving an item from oldPos
// to newPos under the same parent. Equal positions produce an empty shift.
func ReorderWithin(oldPos, newPos int) Shift {
	switch {
	case newPos > oldPos:
		return Shift{Lo: oldPos + 1, Hi: newPos, Delta: -1}
	case newPos < oldPos:
		return Shift{Lo: newPos, Hi: oldPos - 1, Delta: 1}
	default:
		return Shift{}
	}
}

// MoveAcross returns the two shifts for moving an item between parents:
// close the gap at oldPos in the source, open one at newPos in the
// destination. The parents are disjoint, so the order the shifts run in
// does not matter; the item's own row must be updated after both.
func MoveAcross(oldPos, newPos int) (source, dest Shift) {
	return CloseGap(oldPos), OpenGap(newPos)
}

// Renumber maps each id to its index in the submitted full order.
// Positions are assigned from the list alone, last write wins.
func Renumber[T comparable](order []T) map[T]int {
	positions := make(map[T]int, len(order))
	for i, id := range order {
		positions[id] = i
	}
	return positions
}
