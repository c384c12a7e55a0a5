package game

import (
	"time"

	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/engine"
)

// Snapshot captures the complete session state for tests and history.
type Snapshot struct {
	Tick       uint64
	Variant    string
	Width      int
	Height     int
	Outcome    core.Outcome
	Moves      int
	MaxTile    int
	EmptyCount int
	Rows       [][]engine.Cell
	Duration   time.Duration
}

// Snapshot returns the current session snapshot.
func (g *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     g.tick,
		Variant:  g.variant.ID,
		Width:    g.variant.Width,
		Height:   g.variant.Height,
		Outcome:  g.outcome,
		Moves:    g.moves,
		Duration: g.Duration(),
	}
	if g.state != nil {
		snap.MaxTile = int(g.state.MaxTile())
		snap.EmptyCount = g.state.EmptyCount()
		snap.Rows = g.state.Rows()
	}
	return snap
}
