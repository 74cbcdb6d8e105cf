// Package config resolves dailylog settings from its config file and environment.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the dailylog configuration directory.
//
// Resolution:
//   - $DAILYLOG_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/dailylog if set (respects XDG on any platform)
//   - %AppData%/dailylog on Windows
//   - ~/.config/dailylog on macOS and Linux
func Dir() string {
	// Explicit override, also used by tests to isolate config
	if dir := os.Getenv("DAILYLOG_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG applies on every platform when set
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dailylog")
	}

	// Windows keeps per-user settings under AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "dailylog")
		}
	}

	// Everything else: ~/.config/dailylog
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "dailylog")
}

// FilePath returns the path of the config file, or "" when no config directory
// can be determined.
func FilePath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}
