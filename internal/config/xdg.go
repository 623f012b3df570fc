// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appDir = "guessr"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultWordListDir returns the default directory for hangman word lists.
func DefaultWordListDir() string {
	return filepath.Join(XDGConfigHome(), appDir, "wordlists")
}

// DefaultDBPath returns the default path for the score database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appDir, "scores.db")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appDir, "config.toml")
}
