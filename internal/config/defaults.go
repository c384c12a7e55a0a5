package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/term2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches the embedded
// defaults/term2048.yaml.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Variant: "classic",
		},
		Spawn: SpawnConfig{
			OpeningRounds: 1,
		},
		Keys: KeysConfig{
			Up:      []string{"w", "up"},
			Down:    []string{"s", "down"},
			Left:    []string{"a", "left"},
			Right:   []string{"d", "right"},
			Confirm: []string{"enter"},
			Restart: []string{"r"},
			Help:    []string{"?"},
			Quit:    []string{"q", "ctrl+c"},
		},
		Storage: StorageConfig{
			Path: "~/.term2048/history.db",
		},
		SSH: SSHConfig{
			Address:     ":23235",
			HostKey:     "~/.term2048/ssh_host_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
		Telemetry: TelemetryConfig{
			SampleRatio: 1,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.term2048/term2048.log",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
