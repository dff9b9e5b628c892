// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Scan ScanConfig `toml:"scan"`
}

// ScanConfig maps scan-related settings. Nil fields are unset.
type ScanConfig struct {
	CountWords        *bool   `toml:"count-words"`
	CountChars        *bool   `toml:"count-chars"`
	Extract           *bool   `toml:"extract"`
	Verbose           *bool   `toml:"verbose"`
	Format            *string `toml:"format"`
	WorkersMultiplier *int    `toml:"workers-multiplier"`
	Top               *int    `toml:"top"`
	ShutdownGrace     *string `toml:"shutdown-grace"`
	LogLevel          *string `toml:"log-level"`
	LogFormat         *string `toml:"log-format"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
