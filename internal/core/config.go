package core

// RuntimeConfig contains configuration passed to a session at reset.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed, 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
	}
}

// Outcome is how a session ended, or that it has not.
type Outcome string

const (
	OutcomePlaying Outcome = "playing"
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
	OutcomeAborted Outcome = "aborted"
)

// Finished reports whether the outcome is final.
func (o Outcome) Finished() bool {
	return o != OutcomePlaying
}

// GameState is what the platform needs to know after each step.
type GameState struct {
	Outcome Outcome
	Moves   int // Moves that changed the grid
	MaxTile int
}

// GameOver reports whether the session accepts no more moves.
func (s GameState) GameOver() bool {
	return s.Outcome.Finished()
}

// StepResult is returned by Step after each input frame.
type StepResult struct {
	State GameState
	Moved bool // The grid changed this step
}
