package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/registry"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenHistory
)

// AppModel manages the full session flow: menu -> game or history -> menu.
// This is the top-level model for `term2048 menu` and SSH sessions.
type AppModel struct {
	opts     Options
	config   core.RuntimeConfig
	current  screenKind
	menu     MenuModel
	game     *Model
	history  HistoryModel
	quitting bool
}

// NewAppModel creates a new app model showing the menu.
func NewAppModel(cfg core.RuntimeConfig, opts Options) AppModel {
	opts = opts.withDefaults()
	return AppModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(opts, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the current screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenHistory:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		m.history = NewHistoryModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH, m.menuVariant())
		m.history.embedded = true
		m.current = screenHistory
		return m, m.history.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		g, err := registry.Create(selected.VariantID)
		if err != nil {
			// Menu only lists registered variants
			m.opts.Logger.Error("cannot create variant", "variant", selected.VariantID, "error", err)
			m.menu = NewMenuModel(m.opts, m.config.ScreenW, m.config.ScreenH)
			return m, nil
		}

		gm := newModel(g, m.config, m.opts, true)
		m.game = &gm
		m.current = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

func (m AppModel) menuVariant() string {
	if len(m.menu.items) == 0 {
		return ""
	}
	return m.menu.items[m.menu.cursor].VariantID
}

// updateGame handles updates when a game is on screen.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.game.Update(msg)
	if gameModel, ok := updated.(Model); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		m.toMenu()
		return m, m.menu.Init()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateHistory handles updates when the history screen is shown.
func (m AppModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newHistory, cmd := m.history.Update(msg)
	if h, ok := newHistory.(HistoryModel); ok {
		m.history = h
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.toMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// toMenu rebuilds the menu so best tiles reflect the last game.
func (m *AppModel) toMenu() {
	cursor := m.menu.cursor
	m.menu = NewMenuModel(m.opts, m.config.ScreenW, m.config.ScreenH)
	m.menu.cursor = core.Clamp(cursor, 0, max(len(m.menu.items)-1, 0))
	m.game = nil
	m.current = screenMenu
}

// Finish records the game on screen, if any, as aborted.
func (m AppModel) Finish() {
	if m.game != nil {
		m.game.finish()
	}
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenHistory:
		return m.history.View()
	}
	return m.menu.View()
}

// RunApp runs the menu flow until the player quits.
func RunApp(cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewAppModel(cfg, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(AppModel); ok {
		m.Finish()
	}
	return err
}
