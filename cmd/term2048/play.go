package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/term2048/internal/game"
	"github.com/vovakirdan/term2048/internal/platform/tui"
	"github.com/vovakirdan/term2048/internal/registry"
)

var (
	flagWidth  int
	flagHeight int
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the named board, or the configured one.

Controls:
  W/A/S/D, arrows - Slide the tiles
  Enter           - Dismiss the title banner; leave after the game ends
  R               - New game (after the game ends)
  ?               - Full help
  Q/Ctrl+C        - Quit

Boards of any size from 2x2 up can be played with --width and --height.

Examples:
  term2048 play
  term2048 play small
  term2048 play --width 8 --height 3
  term2048 play classic --seed 42`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{tuiAnnotation: ""},
	RunE:        runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Board width for a custom board")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Board height for a custom board")
}

func runPlay(cmd *cobra.Command, args []string) error {
	g, err := resolveGame(cmd, args)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(g, runtimeConfig(), tuiOptions(store)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// resolveGame picks the board from, in order: --width/--height, the
// argument, a configured custom size, the configured variant.
func resolveGame(cmd *cobra.Command, args []string) (registry.Game, error) {
	if cmd.Flags().Changed("width") || cmd.Flags().Changed("height") {
		if len(args) > 0 {
			return nil, fmt.Errorf("give either a board name or --width/--height, not both")
		}
		v, err := game.CustomVariant(flagWidth, flagHeight)
		if err != nil {
			return nil, err
		}
		return game.NewSession(v), nil
	}

	if len(args) > 0 {
		return createVariant(args[0])
	}

	board := app.cfg.Board
	if board.Custom() {
		v, err := game.CustomVariant(board.Width, board.Height)
		if err != nil {
			return nil, err
		}
		return game.NewSession(v), nil
	}

	variant := board.Variant
	if variant == "" {
		variant = game.DefaultVariant
	}
	return createVariant(variant)
}

func createVariant(id string) (registry.Game, error) {
	g, err := registry.Create(id)
	if err != nil {
		return nil, fmt.Errorf("%w (run 'term2048 list' to see available boards)", err)
	}
	return g, nil
}
