// Package config provides YAML-based configuration loading for term2048:
// board shape, opening spawns, key bindings, history storage, the SSH
// server and telemetry.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/term2048/internal/engine"
)

// Config is the complete term2048 configuration.
type Config struct {
	Board     BoardConfig     `yaml:"board"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Keys      KeysConfig      `yaml:"keys"`
	Storage   StorageConfig   `yaml:"storage"`
	SSH       SSHConfig       `yaml:"ssh"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
}

// BoardConfig selects the board played when no variant is named.
// A non-zero width and height override the variant with a custom size.
type BoardConfig struct {
	Variant string `yaml:"variant"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
}

// Custom reports whether an explicit board size is configured.
func (b BoardConfig) Custom() bool {
	return b.Width != 0 || b.Height != 0
}

// SpawnConfig controls tile spawning at the start of a session.
type SpawnConfig struct {
	OpeningRounds int `yaml:"opening_rounds"` // spawn rounds on the empty board
}

// KeysConfig lists the keys bound to each action, in Bubble Tea key
// notation ("w", "up", "ctrl+c").
type KeysConfig struct {
	Up      []string `yaml:"up"`
	Down    []string `yaml:"down"`
	Left    []string `yaml:"left"`
	Right   []string `yaml:"right"`
	Confirm []string `yaml:"confirm"`
	Restart []string `yaml:"restart"`
	Help    []string `yaml:"help"`
	Quit    []string `yaml:"quit"`
}

// StorageConfig locates the result history database.
type StorageConfig struct {
	Path string `yaml:"path"` // "~" expands to the home directory
}

// SSHConfig configures the `serve` command.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// TelemetryConfig controls OpenTelemetry export. An empty endpoint leaves
// it to the standard OTEL_EXPORTER_OTLP_* environment variables.
type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`     // host:port of an OTLP/HTTP collector
	Insecure    bool    `yaml:"insecure"`     // plain HTTP
	SampleRatio float64 `yaml:"sample_ratio"` // share of sessions traced, 0..1
}

// LogConfig controls the charmbracelet logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // used while a TUI owns the terminal
}

// Validate checks values that cannot be corrected silently.
func (c Config) Validate() error {
	if c.Board.Custom() {
		if err := engine.ValidateSize(c.Board.Width, c.Board.Height); err != nil {
			return fmt.Errorf("config: board: %w", err)
		}
	}
	if c.Spawn.OpeningRounds < 0 {
		return fmt.Errorf("config: spawn.opening_rounds must not be negative, got %d", c.Spawn.OpeningRounds)
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("config: telemetry.sample_ratio must be within [0, 1], got %g", c.Telemetry.SampleRatio)
	}
	if c.SSH.IdleTimeout < 0 {
		return fmt.Errorf("config: ssh.idle_timeout must not be negative, got %s", c.SSH.IdleTimeout)
	}
	return nil
}
