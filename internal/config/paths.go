// Package config resolves smenu's on-disk locations and user settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment variables that override the default locations.
const (
	EnvSmenuHome   = "SMENU_HOME"
	EnvSmenuDB     = "SMENU_DB"
	EnvSmenuConfig = "SMENU_CONFIG"
)

const (
	dbFileName      = "script_menu.db"
	configFileName  = "config.yaml"
	statusFileName  = "menu_status.txt"
	historyFileName = "menu_history"
)

// DataDir returns the directory used to store smenu data.
func DataDir() (string, error) {
	if d := os.Getenv(EnvSmenuHome); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".smenu"), nil
}

// EnsureDataDir returns DataDir after creating it when missing.
func EnsureDataDir() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return d, nil
}

// DBPath returns the full path to the SQLite database file.
func DBPath() (string, error) {
	if p := os.Getenv(EnvSmenuDB); p != "" {
		return p, nil
	}
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, dbFileName), nil
}

// ConfigPath returns the path of the YAML settings file.
func ConfigPath() (string, error) {
	if p := os.Getenv(EnvSmenuConfig); p != "" {
		return p, nil
	}
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, configFileName), nil
}

// StatusPathFor returns the status log that lives next to dbPath.
func StatusPathFor(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), statusFileName)
}

// HistoryPath returns the prompt history file.
func HistoryPath() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, historyFileName), nil
}
