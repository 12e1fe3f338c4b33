package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user application directories.
const AppName = "dictcc-cli"

// DefaultDataDir returns the per-user data directory for the platform:
//   - Linux and other Unix: $XDG_DATA_HOME/dictcc-cli or ~/.local/share/dictcc-cli
//   - macOS: ~/Library/Application Support/dictcc-cli
//   - Windows: %LocalAppData%\dictcc-cli
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return dataDir(runtime.GOOS, os.Getenv, home), nil
}

func dataDir(goos string, getenv func(string) string, home string) string {
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", AppName)
	case "windows":
		if local := getenv("LocalAppData"); local != "" {
			return filepath.Join(local, AppName)
		}
		return filepath.Join(home, "AppData", "Local", AppName)
	default:
		if dataHome := getenv("XDG_DATA_HOME"); dataHome != "" {
			return filepath.Join(dataHome, AppName)
		}
		return filepath.Join(home, ".local", "share", AppName)
	}
}

// DefaultConfigPath returns the location of the optional config file.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}
