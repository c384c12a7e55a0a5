package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/term2048/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a board picker menu",
	Long: `Start term2048 in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a board.
Esc during a game, or Enter after it ends, returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select board
  Tab          - History
  Q            - Quit

Examples:
  term2048 menu
  term2048 menu --db ./history.db`,
	Annotations: map[string]string{tuiAnnotation: ""},
	RunE:        runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunApp(runtimeConfig(), tuiOptions(store)); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
