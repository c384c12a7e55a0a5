package engine

import "strconv"

// Cell is one grid slot: either empty or holding a power-of-two value.
// The zero Cell is empty.
type Cell struct {
	value  uint32
	filled bool
}

// Empty is the empty cell.
var Empty = Cell{}

// Value returns a cell holding v.
func Value(v uint32) Cell {
	return Cell{value: v, filled: true}
}

// IsEmpty reports whether the cell holds no tile.
func (c Cell) IsEmpty() bool {
	return !c.filled
}

// Get returns the tile value and whether the cell holds one.
func (c Cell) Get() (uint32, bool) {
	return c.value, c.filled
}

// String renders the cell for debugging and test output.
func (c Cell) String() string {
	if !c.filled {
		return "."
	}
	return strconv.FormatUint(uint64(c.value), 10)
}
