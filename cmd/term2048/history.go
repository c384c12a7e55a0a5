package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/term2048/internal/platform/tui"
	"github.com/vovakirdan/term2048/internal/registry"
	"github.com/vovakirdan/term2048/internal/storage"
)

var (
	flagLimit       int
	flagClear       bool
	flagInteractive bool
	flagResultID    string
)

var historyCmd = &cobra.Command{
	Use:   "history [board]",
	Short: "Show finished games",
	Long: `Display the most recent finished games and the statistics of a board.
Without a board, the latest games of every board are listed.

Examples:
  term2048 history
  term2048 history classic --limit 5
  term2048 history custom-7x3
  term2048 history classic --clear
  term2048 history --id 5f0c2d9e-3b1a-4c8e-9f7d-2a6b8c4e1d03
  term2048 history --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the history of the board")
	historyCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the history in a table")
	historyCmd.Flags().StringVar(&flagResultID, "id", "", "Show one game by its session id")
}

func runHistory(_ *cobra.Command, args []string) error {
	variant := ""
	if len(args) > 0 {
		variant = args[0]
		if !registry.Exists(variant) && !strings.HasPrefix(variant, "custom-") {
			return fmt.Errorf("unknown board %q (run 'term2048 list' to see available boards)", variant)
		}
	}

	store, err := storage.Open(app.cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	if flagResultID != "" {
		return showResult(store, flagResultID)
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, width, height, variant)
	}

	if flagClear {
		if variant == "" {
			return fmt.Errorf("--clear needs a board")
		}
		if err := store.ClearResults(variant); err != nil {
			return err
		}
		app.logger.Info("history cleared", "variant", variant)
		fmt.Printf("History of %s cleared.\n", variant)
		return nil
	}

	results, err := store.RecentResults(variant, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving results: %w", err)
	}

	if variant == "" {
		fmt.Println("Recent games")
	} else {
		fmt.Printf("Recent games - %s\n", variant)
	}
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Run 'term2048 play' to start one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-14s  %-8s  %-6s  %-6s  %-8s  %s\n", "#", "Board", "Result", "Moves", "Max", "Time", "Date")
	fmt.Printf("  %-4s  %-14s  %-8s  %-6s  %-6s  %-8s  %s\n", "-", "-----", "------", "-----", "---", "----", "----")

	for i, r := range results {
		fmt.Printf("  %-4d  %-14s  %-8s  %-6d  %-6d  %-8s  %s\n",
			i+1,
			r.Variant,
			r.Outcome,
			r.Moves,
			r.MaxTile,
			r.Duration.Round(time.Second),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	if variant != "" {
		st, err := store.Stats(variant)
		if err == nil && st.Games > 0 {
			fmt.Println()
			fmt.Printf("Games: %d  Won: %d  Lost: %d  Aborted: %d\n", st.Games, st.Wins, st.Losses, st.Aborted)
			fmt.Printf("Best tile: %d  Average moves: %.0f\n", st.BestTile, st.AvgMoves)
		}
	}

	return nil
}

// showResult prints one game, looked up by the session id found in the log.
func showResult(store *storage.Store, id string) error {
	r, err := store.ResultByID(id)
	if err != nil {
		return fmt.Errorf("retrieving result: %w", err)
	}
	if r == nil {
		return fmt.Errorf("no game with id %q", id)
	}

	fmt.Printf("Game %s\n", r.ID)
	fmt.Println()
	fmt.Printf("  Board:     %s (%dx%d)\n", r.Variant, r.Width, r.Height)
	fmt.Printf("  Result:    %s\n", r.Outcome)
	fmt.Printf("  Moves:     %d\n", r.Moves)
	fmt.Printf("  Max tile:  %d\n", r.MaxTile)
	fmt.Printf("  Time:      %s\n", r.Duration.Round(time.Second))
	fmt.Printf("  Played:    %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}
