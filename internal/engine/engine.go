// Package engine implements the 2048 grid: the four-way compaction and
// merge pass, the random tile spawn and win/loss detection.
//
// The package performs no I/O and holds no OS resources. A caller drives it
// one confirmed direction at a time and reads back a snapshot of the rows to
// render however it likes.
package engine

import (
	"errors"
	"fmt"
)

// WinValue is the tile value that ends the game in a win.
const WinValue = 2048

// MinSize is the smallest allowed width or height.
const MinSize = 2

// ErrGridTooSmall is returned by ValidateSize for dimensions below MinSize.
var ErrGridTooSmall = errors.New("engine: grid too small")

// Rand is the random source used for spawning. *math/rand.Rand satisfies it.
type Rand interface {
	Uint32() uint32
	Shuffle(n int, swap func(i, j int))
}

// State owns one grid for the length of a play session.
type State struct {
	width  int
	height int
	grid   [][]Cell // grid[row][col]

	emptyCount int
	running    bool

	rng Rand
}

// ValidateSize checks grid dimensions before they reach New.
func ValidateSize(width, height int) error {
	if width < MinSize || height < MinSize {
		return fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrGridTooSmall, width, height, MinSize, MinSize)
	}
	return nil
}

// New creates an empty grid. Dimensions below MinSize are a programming
// error and panic; validate user input with ValidateSize first.
func New(width, height int, rng Rand) *State {
	if err := ValidateSize(width, height); err != nil {
		panic(err)
	}
	if rng == nil {
		panic("engine: nil random source")
	}

	grid := make([][]Cell, height)
	for r := range grid {
		grid[r] = make([]Cell, width)
	}

	return &State{
		width:      width,
		height:     height,
		grid:       grid,
		emptyCount: width * height,
		running:    true,
		rng:        rng,
	}
}

// Width returns the number of columns.
func (s *State) Width() int { return s.width }

// Height returns the number of rows.
func (s *State) Height() int { return s.height }

// EmptyCount returns the number of empty cells.
func (s *State) EmptyCount() int { return s.emptyCount }

// Running reports whether the session is still accepting moves.
func (s *State) Running() bool { return s.running }

// Stop marks the session as finished.
func (s *State) Stop() { s.running = false }

// At returns the cell at row r, column c.
func (s *State) At(r, c int) Cell {
	return s.grid[r][c]
}

// Rows returns a copy of the grid, one slice per row.
func (s *State) Rows() [][]Cell {
	rows := make([][]Cell, s.height)
	for r := range s.grid {
		rows[r] = make([]Cell, s.width)
		copy(rows[r], s.grid[r])
	}
	return rows
}

// MaxTile returns the largest value on the grid, or 0 for an empty grid.
func (s *State) MaxTile() uint32 {
	var best uint32
	for _, row := range s.grid {
		for _, c := range row {
			if v, ok := c.Get(); ok && v > best {
				best = v
			}
		}
	}
	return best
}

// Load replaces the grid contents and recomputes the empty count.
// rows must match the grid dimensions.
func (s *State) Load(rows [][]Cell) {
	if len(rows) != s.height {
		panic(fmt.Sprintf("engine: load %d rows into height %d", len(rows), s.height))
	}
	empty := 0
	for r, row := range rows {
		if len(row) != s.width {
			panic(fmt.Sprintf("engine: load row %d of width %d into width %d", r, len(row), s.width))
		}
		copy(s.grid[r], row)
		for _, c := range row {
			if c.IsEmpty() {
				empty++
			}
		}
	}
	s.emptyCount = empty
}
