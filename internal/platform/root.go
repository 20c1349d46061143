package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// AppDir is the directory name zenus uses under the per-user data directory.
const AppDir = "zenus"

// DefaultDataDir returns the per-user data directory joined with AppDir.
//
// Unix honours $XDG_DATA_HOME and falls back to ~/.local/share; macOS uses
// ~/Library/Application Support; Windows uses %APPDATA%.
func DefaultDataDir() (string, error) {
	base, err := userDataDir(runtime.GOOS, os.Getenv, os.UserHomeDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppDir), nil
}

func userDataDir(goos string, getenv func(string) string, home func() (string, error)) (string, error) {
	switch goos {
	case "windows":
		if dir := getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return "", fmt.Errorf("%%APPDATA%% is not set")
	case "darwin", "ios":
		h, err := home()
		if err != nil {
			return "", err
		}
		return filepath.Join(h, "Library", "Application Support"), nil
	default:
		if dir := getenv("XDG_DATA_HOME"); dir != "" && filepath.IsAbs(dir) {
			return dir, nil
		}
		h, err := home()
		if err != nil {
			return "", err
		}
		return filepath.Join(h, ".local", "share"), nil
	}
}
