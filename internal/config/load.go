package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load resolves configuration in priority order:
// 1. Defaults
// 2. User config file ($XDG_CONFIG_HOME/tada/config.toml or OS equivalent)
// 3. Project config file (.tada.toml in the current directory)
// 4. .env in the current directory (never overrides the real environment)
// 5. Environment variables
// 6. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if p := findUserConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}
	if p := findProjectConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", p, err)
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	p, err := resolvePath(cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("resolving data file: %w", err)
	}
	cfg.DataFile = p
	return cfg, nil
}

func findUserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, "tada", UserConfigName)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

func findProjectConfigFile() string {
	if _, err := os.Stat(ProjectConfigName); err == nil {
		return ProjectConfigName
	}
	return ""
}

func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return nil
}

func loadDotEnv() error {
	err := godotenv.Load(EnvFileName)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", EnvFileName, err)
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv(EnvDataFile); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

// parseFlags registers root flags on fs and parses args. Flags left unset keep
// the value from earlier layers.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("todo", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
	}
	file := fs.String("file", cfg.DataFile, "path to the todo file")
	theme := fs.String("theme", cfg.Theme, "output theme: classic, neon or mono")
	level := fs.String("log-level", cfg.LogLevel, "diagnostic log level: debug, info, warn or error")
	group := fs.Bool("group", false, "group output by pending/done")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	cfg.DataFile = *file
	cfg.Theme = *theme
	cfg.LogLevel = *level
	cfg.Group = *group
	cfg.Args = fs.Args()
	return nil
}
