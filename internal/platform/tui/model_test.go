package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/game"
	"github.com/vovakirdan/term2048/internal/storage"
)

// scriptedGame wins after winAfter moves.
type scriptedGame struct {
	resets   int
	steps    int
	moves    int
	winAfter int
	outcome  core.Outcome
	w, h     int
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.moves = 0
	g.outcome = core.OutcomePlaying
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

func (g *scriptedGame) Resize(w, h int) { g.w, g.h = w, h }

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	if g.outcome.Finished() {
		return core.StepResult{State: g.State()}
	}
	moved := false
	for a := range in.Actions {
		if a.IsMove() {
			moved = true
		}
	}
	if moved {
		g.moves++
		if g.moves >= g.winAfter {
			g.outcome = core.OutcomeWon
		}
	}
	return core.StepResult{State: g.State(), Moved: moved}
}

func (g *scriptedGame) Abort() {
	if !g.outcome.Finished() {
		g.outcome = core.OutcomeAborted
	}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "scripted board")
}

func (g *scriptedGame) State() core.GameState {
	return core.GameState{Outcome: g.outcome, Moves: g.moves, MaxTile: 2 << g.moves}
}

func testOptions(t *testing.T) Options {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return Options{
		Store:  store,
		Logger: log.New(io.Discard),
		Keys:   DefaultKeyMap(),
	}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 7}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelStepsOnMoveKeys(t *testing.T) {
	g := &scriptedGame{winAfter: 100}
	m := NewModel(g, testConfig(), testOptions(t))

	if g.resets != 1 {
		t.Fatalf("NewModel should reset the game once, got %d", g.resets)
	}

	m, _ = press(t, m, runeKey("w"), tea.KeyMsg{Type: tea.KeyLeft})
	if g.moves != 2 {
		t.Errorf("moves = %d, want 2", g.moves)
	}
	if m.State().Moves != 2 {
		t.Errorf("model state moves = %d, want 2", m.State().Moves)
	}

	// keys bound to nothing never reach the game
	press(t, m, runeKey("x"), runeKey("9"))
	if g.steps != 2 {
		t.Errorf("steps = %d, want 2", g.steps)
	}
}

func TestModelQuitRecordsAbort(t *testing.T) {
	opts := testOptions(t)
	g := &scriptedGame{winAfter: 100}
	m := NewModel(g, testConfig(), opts)

	m, _ = press(t, m, runeKey("d"))
	m, cmd := press(t, m, runeKey("q"))
	if !isQuit(cmd) || !m.IsQuitting() {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}

	results, err := opts.Store.RecentResults("scripted", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Outcome != "aborted" || results[0].Moves != 1 {
		t.Fatalf("unexpected results: %+v", results)
	}

	// a second finish does not record twice
	m.finish()
	results, _ = opts.Store.RecentResults("scripted", 10)
	if len(results) != 1 {
		t.Errorf("results = %d, want 1", len(results))
	}
}

func TestModelQuitWithoutMovesNotStored(t *testing.T) {
	opts := testOptions(t)
	m := NewModel(&scriptedGame{winAfter: 100}, testConfig(), opts)

	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	results, _ := opts.Store.RecentResults("", 10)
	if len(results) != 0 {
		t.Errorf("an untouched session should not be stored, got %+v", results)
	}
}

func TestModelWinRecordedOnceAndRestart(t *testing.T) {
	opts := testOptions(t)
	g := &scriptedGame{winAfter: 2}
	m := NewModel(g, testConfig(), opts)

	// restart is ignored while playing
	m, _ = press(t, m, runeKey("r"))
	if g.resets != 1 {
		t.Fatal("restart should be ignored while playing")
	}

	m, _ = press(t, m, runeKey("a"), runeKey("a"))
	if !m.State().GameOver() {
		t.Fatal("game should be won")
	}

	// more moves after the end change nothing
	m, _ = press(t, m, runeKey("a"))

	results, _ := opts.Store.RecentResults("scripted", 10)
	if len(results) != 1 || results[0].Outcome != "won" || results[0].Moves != 2 {
		t.Fatalf("unexpected results: %+v", results)
	}
	firstID := results[0].ID

	m, _ = press(t, m, runeKey("r"))
	if g.resets != 2 {
		t.Fatalf("restart should reset the game, resets = %d", g.resets)
	}
	if m.State().GameOver() {
		t.Error("state should be playing after restart")
	}

	m, _ = press(t, m, runeKey("d"), runeKey("d"))
	results, _ = opts.Store.RecentResults("scripted", 10)
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].ID == firstID {
		t.Error("each session needs its own id")
	}
}

func TestModelEnterQuitsAfterEnd(t *testing.T) {
	g := &scriptedGame{winAfter: 1}
	m := NewModel(g, testConfig(), testOptions(t))

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if isQuit(cmd) {
		t.Fatal("enter should not quit while playing")
	}

	m, _ = press(t, m, runeKey("s"))
	_, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !isQuit(cmd) {
		t.Error("enter should quit after the game ends")
	}
}

func TestModelHelpToggle(t *testing.T) {
	g := &scriptedGame{winAfter: 100}
	m := NewModel(g, testConfig(), testOptions(t))

	shortH := g.h
	m, _ = press(t, m, runeKey("?"))
	if !m.showHelp {
		t.Fatal("? should show full help")
	}
	if g.h >= shortH {
		t.Errorf("full help should take rows from the board: %d -> %d", shortH, g.h)
	}
	if g.steps != 0 {
		t.Error("help should not step the game")
	}
	if !strings.Contains(m.View(), "new game") {
		t.Error("full help should list the restart key")
	}

	m, _ = press(t, m, runeKey("?"))
	if m.showHelp || g.h != shortH {
		t.Error("second ? should restore the short help")
	}
}

func TestModelResize(t *testing.T) {
	g := &scriptedGame{winAfter: 100}
	m := NewModel(g, testConfig(), testOptions(t))

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	if g.w != 40 || g.h >= 20 || g.h <= 0 {
		t.Errorf("game size = %dx%d after resize to 40x20", g.w, g.h)
	}
	if g.resets != 1 {
		t.Error("resize should not restart the session")
	}
	if !strings.Contains(m.View(), "scripted board") {
		t.Error("view should contain the rendered board")
	}
}

func TestModelBackOnlyWhenEmbedded(t *testing.T) {
	g := &scriptedGame{winAfter: 100}
	m := NewModel(g, testConfig(), testOptions(t))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("esc should do nothing outside the menu flow")
	}

	e := newModel(&scriptedGame{winAfter: 100}, testConfig(), testOptions(t), true)
	e, _ = press(t, e, tea.KeyMsg{Type: tea.KeyEsc})
	if !e.BackToMenu() {
		t.Error("esc should return to the menu")
	}
}

func TestModelRecordsBoardSize(t *testing.T) {
	opts := testOptions(t)
	v, err := game.CustomVariant(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(game.NewSession(v), testConfig(), opts)

	// dismiss the banner, then play every direction
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	for i := 0; i < 5; i++ {
		m, _ = press(t, m, runeKey("a"), runeKey("w"), runeKey("d"), runeKey("s"))
	}
	m.finish()

	results, _ := opts.Store.RecentResults(v.ID, 10)
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].Width != 3 || results[0].Height != 2 {
		t.Errorf("size = %dx%d, want 3x2", results[0].Width, results[0].Height)
	}
}
