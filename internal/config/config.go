// Package config loads optional engine tuning overrides from a TOML file.
// The engine runs correctly with none of this: every field has a built-in
// default, and a missing or partial file is not an error.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds engine tuning knobs that would otherwise be fixed
// constants. Fields absent from the TOML file keep their default.
type Config struct {
	HashMB     int `toml:"hash_mb"`
	SoftTimeMs int `toml:"soft_time_ms"`
	MaxDepth   int `toml:"max_depth"`
	Contempt   int `toml:"contempt"`
}

// Default returns the engine's built-in configuration.
func Default() Config {
	return Config{
		HashMB:     64,
		SoftTimeMs: 0,
		MaxDepth:   0,
		Contempt:   0,
	}
}

// Load reads path as a TOML file and overlays any fields it sets onto the
// default configuration. A missing file is not an error: Load returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
