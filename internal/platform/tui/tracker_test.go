package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTrackerFinishRecordsAbort(t *testing.T) {
	opts := testOptions(t)
	opts.tracker = newTracker()
	g := &scriptedGame{winAfter: 100}
	m := NewModel(g, testConfig(), opts)

	press(t, m, runeKey("a"), runeKey("w"), runeKey("d"))
	opts.tracker.finish()

	results, _ := opts.Store.RecentResults("scripted", 10)
	if len(results) != 1 || results[0].Outcome != "aborted" || results[0].Moves != 3 {
		t.Fatalf("unexpected results: %+v", results)
	}

	opts.tracker.finish()
	results, _ = opts.Store.RecentResults("scripted", 10)
	if len(results) != 1 {
		t.Errorf("results = %d, want 1", len(results))
	}
}

func TestTrackerAfterQuit(t *testing.T) {
	opts := testOptions(t)
	opts.tracker = newTracker()
	m := NewModel(&scriptedGame{winAfter: 100}, testConfig(), opts)

	press(t, m, runeKey("d"), runeKey("q"))
	opts.tracker.finish()

	results, _ := opts.Store.RecentResults("scripted", 10)
	if len(results) != 1 {
		t.Errorf("quit and finish should store one result, got %d", len(results))
	}
}

func TestTrackerFollowsRestart(t *testing.T) {
	opts := testOptions(t)
	opts.tracker = newTracker()
	g := &scriptedGame{winAfter: 1}
	m := NewModel(g, testConfig(), opts)

	// win the first session, then leave the second one open
	m, _ = press(t, m, runeKey("a"), runeKey("r"))
	if g.resets != 2 {
		t.Fatalf("resets = %d, want 2", g.resets)
	}
	g.winAfter = 100
	press(t, m, runeKey("s"), runeKey("s"))
	opts.tracker.finish()

	results, _ := opts.Store.RecentResults("scripted", 10)
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Outcome != "aborted" || results[1].Outcome != "won" {
		t.Errorf("outcomes = %s, %s; want aborted, won", results[0].Outcome, results[1].Outcome)
	}
}

func TestTrackerEmpty(t *testing.T) {
	newTracker().finish()
}

func TestTrackerEndsSessionSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	opts := testOptions(t)
	opts.Tracer = tp.Tracer("test")
	opts.tracker = newTracker()
	m := NewModel(&scriptedGame{winAfter: 100}, testConfig(), opts)

	press(t, m, runeKey("a"), tea.KeyMsg{Type: tea.KeyEnter})
	opts.tracker.finish()

	var names []string
	for _, s := range rec.Ended() {
		names = append(names, s.Name())
	}
	want := []string{"move", "input", "session"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("ended spans mismatch (-want +got):\n%s", diff)
	}
}
