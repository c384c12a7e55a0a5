// Package tui provides the Bubble Tea integration for term2048.
// It handles the terminal UI loop, input mapping, result recording and the
// SSH server.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/game"
	"github.com/vovakirdan/term2048/internal/registry"
	"github.com/vovakirdan/term2048/internal/storage"
	"github.com/vovakirdan/term2048/internal/telemetry"
)

// Options carries the services shared by every screen of a terminal session.
type Options struct {
	Store  *storage.Store // nil disables history
	Logger *log.Logger
	Tracer trace.Tracer
	Keys   KeyMap
	User   string // SSH user, empty for local play

	tracker *tracker
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Tracer == nil {
		o.Tracer = telemetry.NoopTracer()
	}
	if len(o.Keys.Quit.Keys()) == 0 && len(o.Keys.Up.Keys()) == 0 {
		o.Keys = DefaultKeyMap()
	}
	return o
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// run is the bookkeeping for one play session. Bubble Tea copies the model
// on every update, so it is shared by pointer.
type run struct {
	id    string
	ctx   context.Context
	span  trace.Span
	saved bool
}

// snapshotter is implemented by sessions that can report their board size
// and duration for the history.
type snapshotter interface {
	Snapshot() game.Snapshot
}

// Model is the Bubble Tea model for playing one variant.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	help       help.Model
	showHelp   bool
	state      core.GameState
	run        *run
	embedded   bool // inside the menu flow: esc and enter return to the menu
	quitting   bool
	backToMenu bool
}

// NewModel creates a model and starts the first session.
func NewModel(g registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	return newModel(g, cfg, opts, false)
}

func newModel(g registry.Game, cfg core.RuntimeConfig, opts Options, embedded bool) Model {
	opts = opts.withDefaults()
	opts.Keys.Back.SetEnabled(embedded)

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:     g,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:     opts,
		config:   cfg,
		help:     h,
		embedded: embedded,
	}
	m.layout()
	m.start()
	return m
}

// start resets the game and opens a new session span.
func (m *Model) start() {
	cfg := m.config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.ScreenW, cfg.ScreenH = m.screen.Width(), m.screen.Height()
	m.game.Reset(cfg)
	m.state = m.game.State()

	id := uuid.NewString()
	ctx, span := m.opts.Tracer.Start(context.Background(), "session",
		trace.WithAttributes(
			attribute.String("session.id", id),
			attribute.String("variant", m.game.ID()),
			attribute.String("user", m.opts.User),
		),
	)
	m.run = &run{id: id, ctx: ctx, span: span}
	if m.opts.tracker != nil {
		m.opts.tracker.track(*m)
	}

	m.opts.Logger.Debug("session started", "id", id, "variant", m.game.ID(), "seed", cfg.Seed)
}

// layout splits the terminal between the board and the help bar.
func (m *Model) layout() {
	helpH := lipgloss.Height(m.helpView())
	m.screen.Resize(m.config.ScreenW, max(m.config.ScreenH-helpH, 0))
	m.game.Resize(m.screen.Width(), m.screen.Height())
}

func (m Model) helpView() string {
	h := m.help
	h.ShowAll = m.showHelp
	return h.View(m.opts.Keys)
}

// Init implements tea.Model. The session is already running.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input. One key is one step; keys bound to
// nothing never reach the game.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.opts.Keys.Help):
		m.showHelp = !m.showHelp
		m.layout()
		return m, nil
	case key.Matches(msg, m.opts.Keys.Back):
		m.finish()
		m.backToMenu = true
		return m, nil
	}

	action := m.opts.Keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil

	case core.ActionQuit:
		m.finish()
		m.quitting = true
		return m, tea.Quit

	case core.ActionRestart:
		if m.state.GameOver() {
			m.config.Seed = time.Now().UnixNano()
			m.start()
		}
		return m, nil

	case core.ActionConfirm:
		if m.state.GameOver() {
			if m.embedded {
				m.backToMenu = true
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	m.step(action)
	return m, nil
}

// step feeds one action to the game inside a span: "move" for the four
// directions, "input" for anything else.
func (m *Model) step(action core.Action) {
	frame := core.NewInputFrame()
	frame.Set(action)

	name := "input"
	if action.IsMove() {
		name = "move"
	}
	_, span := m.opts.Tracer.Start(m.run.ctx, name,
		trace.WithAttributes(attribute.String("action", action.String())),
	)
	res := m.game.Step(frame)
	span.SetAttributes(
		attribute.Bool("moved", res.Moved),
		attribute.Int("moves", res.State.Moves),
		attribute.Int("max_tile", res.State.MaxTile),
	)
	span.End()

	m.state = res.State
	if m.state.GameOver() {
		m.record()
	}
}

// finish aborts an unfinished session and records it.
func (m *Model) finish() {
	m.game.Abort()
	m.state = m.game.State()
	m.record()
}

// record logs, stores and closes the span of a finished session, once.
func (m *Model) record() {
	if m.run == nil || m.run.saved || !m.state.GameOver() {
		return
	}
	m.run.saved = true

	r := storage.Result{
		ID:      m.run.id,
		Variant: m.game.ID(),
		Outcome: string(m.state.Outcome),
		Moves:   m.state.Moves,
		MaxTile: m.state.MaxTile,
	}
	if s, ok := m.game.(snapshotter); ok {
		snap := s.Snapshot()
		r.Width = snap.Width
		r.Height = snap.Height
		r.Duration = snap.Duration
	}

	span := m.run.span
	span.SetAttributes(
		attribute.String("outcome", r.Outcome),
		attribute.Int("moves", r.Moves),
		attribute.Int("max_tile", r.MaxTile),
	)
	defer span.End()

	m.opts.Logger.Info("session finished",
		"id", r.ID,
		"variant", r.Variant,
		"outcome", r.Outcome,
		"moves", r.Moves,
		"max_tile", r.MaxTile,
		"duration", r.Duration.Round(time.Second),
	)

	// Nothing was played
	if m.state.Outcome == core.OutcomeAborted && r.Moves == 0 {
		return
	}
	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveResult(r); err != nil {
		m.opts.Logger.Warn("could not save result", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.helpView())
}

// State returns the latest game state.
func (m Model) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one variant until the player quits. The session is recorded
// even when the program is interrupted.
func Run(g registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(g, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.finish()
	}
	return err
}
