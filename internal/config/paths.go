// ABOUTME: Standard filesystem paths for smcget configuration and data
// ABOUTME: Resolves the XDG config dir and the default repository root

package config

import (
	"os"
	"path/filepath"
)

const appName = "smcget"

// ConfigDir returns the smcget configuration directory:
// $XDG_CONFIG_HOME/smcget, defaulting to ~/.config/smcget.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appName)
	}
	return filepath.Join(home, ".config", appName)
}

// DefaultDataDir returns the default repository root (~/.smcget/repository).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appName, "repository")
	}
	return filepath.Join(home, "."+appName, "repository")
}
