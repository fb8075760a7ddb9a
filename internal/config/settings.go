package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// Environment variables that override individual settings.
const (
	EnvSmenuRoot   = "SMENU_ROOT"
	EnvSmenuPython = "SMENU_PYTHON"
	EnvSmenuShell  = "SMENU_SHELL"
)

// Default interpreters used when the settings file does not name one.
const (
	DefaultPython = "python3"
	DefaultShell  = "bash"
)

// Settings holds the user-tunable knobs. Empty fields take their defaults
// when the settings are loaded.
type Settings struct {
	// DBPath is the SQLite file holding the menu_items table.
	DBPath string `yaml:"db_path,omitempty"`
	// DefaultRoot is the working directory used when a record names neither
	// working_dir nor base_path. Defaults to the database's directory.
	DefaultRoot string `yaml:"default_root,omitempty"`
	Python      string `yaml:"python,omitempty"`
	Shell       string `yaml:"shell,omitempty"`
	StatusFile  string `yaml:"status_file,omitempty"`
	HistoryFile string `yaml:"history_file,omitempty"`
}

// Load reads the YAML settings at path, applies environment overrides and
// fills in defaults. A missing file is not an error.
func Load(path string) (Settings, error) {
	return LoadWith(path, Settings{})
}

// LoadWith is Load with flag values applied last. Non-empty fields of flags
// win over the file and the environment; derived defaults such as
// DefaultRoot follow the overridden values.
func LoadWith(path string, flags Settings) (Settings, error) {
	var s Settings
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &s); err != nil {
			return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	s.applyEnv()
	s.applyFlags(flags)
	if err := s.fillDefaults(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Save writes s to path atomically, creating the parent directory.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	b, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(b)); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func (s *Settings) applyEnv() {
	if v := os.Getenv(EnvSmenuDB); v != "" {
		s.DBPath = v
	}
	if v := os.Getenv(EnvSmenuRoot); v != "" {
		s.DefaultRoot = v
	}
	if v := os.Getenv(EnvSmenuPython); v != "" {
		s.Python = v
	}
	if v := os.Getenv(EnvSmenuShell); v != "" {
		s.Shell = v
	}
}

func (s *Settings) applyFlags(f Settings) {
	if f.DBPath != "" {
		s.DBPath = f.DBPath
	}
	if f.DefaultRoot != "" {
		s.DefaultRoot = f.DefaultRoot
	}
	if f.Python != "" {
		s.Python = f.Python
	}
	if f.Shell != "" {
		s.Shell = f.Shell
	}
}

func (s *Settings) fillDefaults() error {
	if s.DBPath == "" {
		p, err := DBPath()
		if err != nil {
			return err
		}
		s.DBPath = p
	}
	s.DBPath = expandHome(s.DBPath)
	if s.DefaultRoot == "" {
		s.DefaultRoot = filepath.Dir(s.DBPath)
	}
	s.DefaultRoot = expandHome(s.DefaultRoot)
	if s.Python == "" {
		s.Python = DefaultPython
	}
	if s.Shell == "" {
		s.Shell = DefaultShell
	}
	if s.StatusFile == "" {
		s.StatusFile = StatusPathFor(s.DBPath)
	}
	s.StatusFile = expandHome(s.StatusFile)
	if s.HistoryFile == "" {
		p, err := HistoryPath()
		if err != nil {
			return err
		}
		s.HistoryFile = p
	}
	s.HistoryFile = expandHome(s.HistoryFile)
	return nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
