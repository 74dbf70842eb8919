// Package config resolves where todos live and how output looks.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Makepad-fr/tada/internal/logging"
)

// Defaults.
const (
	DefaultDataFile = "todos.json"
	DefaultTheme    = "classic"
	DefaultLogLevel = "warn"

	UserConfigName    = "config.toml"
	ProjectConfigName = ".tada.toml"
	EnvFileName       = ".env"
)

// Environment variables.
const (
	EnvDataFile = "TADA_FILE"
	EnvTheme    = "TADA_THEME"
	EnvLogLevel = "TADA_LOG_LEVEL"
)

// Themes accepted by the ui package.
var Themes = []string{"classic", "neon", "mono"}

// Config holds resolved settings.
type Config struct {
	DataFile string `toml:"data_file"`
	Theme    string `toml:"theme"`
	LogLevel string `toml:"log_level"`

	// Root flags; not read from files.
	Group bool     `toml:"-"`
	Args  []string `toml:"-"`
}

func setDefaults(cfg *Config) {
	cfg.DataFile = DefaultDataFile
	cfg.Theme = DefaultTheme
	cfg.LogLevel = DefaultLogLevel
}

func validate(cfg *Config) error {
	theme := strings.ToLower(cfg.Theme)
	found := false
	for _, t := range Themes {
		if t == theme {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("unknown theme %q (want %s)", cfg.Theme, strings.Join(Themes, ", "))
	}
	cfg.Theme = theme
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	cfg.LogLevel = level.String()
	if strings.TrimSpace(cfg.DataFile) == "" {
		return fmt.Errorf("data_file is empty")
	}
	return nil
}

// resolvePath expands a leading ~/ and anchors relative paths at the working directory.
func resolvePath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home: %w", err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	if !filepath.IsAbs(p) {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		p = filepath.Join(wd, p)
	}
	return filepath.Clean(p), nil
}
