package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dotConfig  = ".config"
	appName    = "dealdesk"
	dbName     = "dealdesk.db"
	logName    = "dealdesk.log"
	layoutName = "layout.yaml"
)

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, dotConfig, appName), nil
}

func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", appName, err)
	}
	return dir, nil
}

// DB is the snapshot cache database.
func DB() (string, error) {
	return file(dbName)
}

// Log is where the TUI writes its structured log, since stdout belongs to
// the terminal UI.
func Log() (string, error) {
	return file(logName)
}

// Layout is the user's dashboard layout override.
func Layout() (string, error) {
	return file(layoutName)
}

func file(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
