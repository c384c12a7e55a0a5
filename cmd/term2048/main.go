// term2048 is the 2048 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	term2048 list                - List available boards
//	term2048 play [board]        - Play a board
//	term2048 menu                - Pick a board interactively
//	term2048 history [board]     - Show finished games
//	term2048 serve               - Start SSH server for remote play
//	term2048 config              - Print the default configuration
//
// Global flags:
//
//	--config <path>     - Configuration file
//	--seed <value>      - Set RNG seed for reproducible games
//	--db <path>         - Set database path (default: ~/.term2048/history.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/term2048/internal/config"
	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/game"
	"github.com/vovakirdan/term2048/internal/platform/tui"
	"github.com/vovakirdan/term2048/internal/storage"
	"github.com/vovakirdan/term2048/internal/telemetry"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// tuiAnnotation marks commands that hand the terminal to Bubble Tea. Their
// logs go to the log file instead of stderr.
const tuiAnnotation = "tui"

// app is what every command shares once configuration is loaded.
var app struct {
	cfg      config.Config
	logger   *log.Logger
	logFile  *os.File
	shutdown func(context.Context) error
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "term2048",
	Version: version,
	Short:   "term2048 - The 2048 puzzle in your terminal",
	Long: `term2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the tiles with WASD or the arrow keys. Equal tiles merge, and a new
tile appears after every move that changed the board. Reach the 2048 tile
to win; run out of moves and the game is lost.

Available commands:
  list     - Show all available boards
  play     - Play a board directly
  menu     - Interactive board picker
  history  - Finished games and statistics
  serve    - Start SSH server for remote play
  config   - Print the default configuration

Examples:
  term2048 play
  term2048 play large
  term2048 play --width 7 --height 3
  term2048 menu
  term2048 serve --ssh :2222
  term2048 history classic`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: func(*cobra.Command, []string) error { return cleanup() },
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads configuration, then builds the logger and tracing.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	app.cfg = cfg

	game.SetOpeningRounds(cfg.Spawn.OpeningRounds)

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	var out io.Writer = os.Stderr
	if _, ok := cmd.Annotations[tuiAnnotation]; ok {
		out = openLogFile(cfg.Log.File)
	}
	app.logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          "term2048",
	})

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(cmd.Context(), cfg.Telemetry, telemetry.Process{
			Version: version,
			Command: cmd.Name(),
		})
		if err != nil {
			app.logger.Warn("telemetry disabled", "error", err)
		} else {
			app.shutdown = shutdown
		}
	}

	return nil
}

// openLogFile opens the log file for appending. Logging is dropped when it
// cannot be opened, the terminal belongs to the UI.
func openLogFile(path string) io.Writer {
	if path == "" {
		return io.Discard
	}
	expanded, err := config.ExpandHome(path)
	if err != nil {
		return io.Discard
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return io.Discard
	}
	f, err := os.OpenFile(expanded, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard
	}
	app.logFile = f
	return f
}

// cleanup flushes spans and closes the log file. Safe to call twice.
func cleanup() error {
	var err error
	if app.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = app.shutdown(ctx)
		cancel()
		app.shutdown = nil
	}
	if app.logFile != nil {
		app.logFile.Close()
		app.logFile = nil
	}
	return err
}

// openStore opens the history database. Games still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(app.cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		app.logger.Warn("could not open history database", "path", app.cfg.Storage.Path, "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the session to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}

func tuiOptions(store *storage.Store) tui.Options {
	return tui.Options{
		Store:  store,
		Logger: app.logger,
		Tracer: telemetry.Tracer("tui"),
		Keys:   tui.NewKeyMap(app.cfg.Keys),
	}
}
