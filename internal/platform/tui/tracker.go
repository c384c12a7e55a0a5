package tui

import "sync"

// tracker keeps the latest session started by a program so it can be
// closed from outside once the program is gone. Bubble Tea drops the final
// model when a program is killed, as it is on an SSH disconnect.
type tracker struct {
	mu      sync.Mutex
	current *Model
}

func newTracker() *tracker {
	return &tracker{}
}

// track replaces the tracked session. The copy shares the game and the run
// bookkeeping with the live model.
func (t *tracker) track(m Model) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = &m
}

// finish aborts and records the tracked session unless it was already
// recorded.
func (t *tracker) finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return
	}
	t.current.finish()
	t.current = nil
}
