// Package game runs one 2048 play session on top of the engine: it turns
// input actions into moves, applies the move, win, spawn and loss sequence,
// and draws the board into a core.Screen.
package game

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/engine"
)

// Session implements registry.Game for one board variant.
type Session struct {
	variant Variant
	rng     *rand.Rand
	state   *engine.State
	tick    uint64

	moves     int
	outcome   core.Outcome
	startedAt time.Time
	endedAt   time.Time

	// Screen dimensions
	screenW int
	screenH int

	banner   bool // welcome text shown until the first key
	tooSmall bool
}

// NewSession creates a session for the variant. Call Reset before Step.
func NewSession(v Variant) *Session {
	return &Session{
		variant: v,
		outcome: core.OutcomePlaying,
	}
}

// ID returns the variant identifier.
func (g *Session) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Session) Title() string {
	return g.variant.Title
}

// Variant returns the board variant being played.
func (g *Session) Variant() Variant {
	return g.variant
}

// Reset initializes/restarts the session with a fresh board.
func (g *Session) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.state = engine.New(g.variant.Width, g.variant.Height, g.rng)
	g.tick = 0
	g.moves = 0
	g.outcome = core.OutcomePlaying
	g.startedAt = time.Now()
	g.endedAt = time.Time{}
	g.banner = true

	for i, n := int32(0), openingRounds.Load(); i < n; i++ {
		g.state.SpawnTiles()
	}

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize records the available screen size.
func (g *Session) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	w, h := g.layoutSize()
	g.tooSmall = width < w || height < h
}

// Step applies one input frame.
func (g *Session) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.banner && len(in.Actions) > 0 {
		g.banner = false
		if in.Has(core.ActionConfirm) {
			return core.StepResult{State: g.State()}
		}
	}

	if !g.state.Running() || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFor(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	moved := g.apply(dir)
	return core.StepResult{State: g.State(), Moved: moved}
}

// apply runs the move sequence for one direction. A move that changes
// nothing spawns nothing. A win ends the session before the spawn.
func (g *Session) apply(dir engine.Direction) bool {
	if !g.state.MoveTo(dir) {
		return false
	}
	g.moves++

	if g.state.CheckWin() {
		g.finish(core.OutcomeWon)
		return true
	}

	g.state.SpawnTiles()

	if g.state.CheckLose() {
		g.finish(core.OutcomeLost)
	}
	return true
}

// Abort ends an unfinished session, e.g. on quit or disconnect.
func (g *Session) Abort() {
	if g.state == nil || g.outcome.Finished() {
		return
	}
	g.finish(core.OutcomeAborted)
}

func (g *Session) finish(o core.Outcome) {
	g.outcome = o
	g.endedAt = time.Now()
	g.state.Stop()
}

// Duration returns how long the session has run, or ran if it is over.
func (g *Session) Duration() time.Duration {
	if g.startedAt.IsZero() {
		return 0
	}
	if g.endedAt.IsZero() {
		return time.Since(g.startedAt)
	}
	return g.endedAt.Sub(g.startedAt)
}

// State returns the current game state.
func (g *Session) State() core.GameState {
	st := core.GameState{
		Outcome: g.outcome,
		Moves:   g.moves,
	}
	if g.state != nil {
		st.MaxTile = int(g.state.MaxTile())
	}
	return st
}

// directionFor picks the first move action in the frame.
func directionFor(in core.InputFrame) (engine.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return engine.Up, true
	case in.Has(core.ActionDown):
		return engine.Down, true
	case in.Has(core.ActionLeft):
		return engine.Left, true
	case in.Has(core.ActionRight):
		return engine.Right, true
	}
	return 0, false
}
