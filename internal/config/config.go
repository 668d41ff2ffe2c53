// Package config resolves settings from defaults, a TOML file, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	DefaultFile       = "todo.txt"
	DefaultDB         = "todo.db"
	DefaultTheme      = "classic"
	DefaultLogLevel   = "warn"
	DefaultConfigFile = "todo.toml"

	// ConfigEnv names the variable pointing at a config file.
	ConfigEnv = "TODO_CONFIG"
)

var themes = []string{"classic", "neon", "mono"}

// Config holds every runtime setting.
type Config struct {
	Backend  string `toml:"backend" env:"TODO_BACKEND"`
	File     string `toml:"file" env:"TODO_FILE"`
	DB       string `toml:"db" env:"TODO_DB"`
	Theme    string `toml:"theme" env:"TODO_THEME"`
	LogLevel string `toml:"log_level" env:"TODO_LOG_LEVEL"`
	TUI      bool   `toml:"tui" env:"TODO_TUI"`
	Group    bool   `toml:"group" env:"TODO_GROUP"`

	// ConfigFile is the TOML file that was applied, if any.
	ConfigFile string `toml:"-" env:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Backend:  BackendFile,
		File:     DefaultFile,
		DB:       DefaultDB,
		Theme:    DefaultTheme,
		LogLevel: DefaultLogLevel,
	}
}

type flagValues struct {
	config, backend, file, db, theme, logLevel string
	tui, group                                 bool
}

// Load parses args with fs and layers the sources. Flags win over the
// environment, which wins over the file, which wins over defaults.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	var fv flagValues
	fs.StringVar(&fv.config, "config", "", "path to a TOML config file (env "+ConfigEnv+")")
	fs.StringVar(&fv.backend, "backend", "", "storage backend: file or sqlite")
	fs.StringVar(&fv.file, "file", "", "flat file path for the file backend")
	fs.StringVar(&fv.db, "db", "", "database path for the sqlite backend")
	fs.StringVar(&fv.theme, "theme", "", "color theme: classic, neon or mono")
	fs.StringVar(&fv.logLevel, "log-level", "", "diagnostic log level: debug, info, warn or error")
	fs.BoolVar(&fv.tui, "tui", false, "browse the list in a full-screen interface")
	fs.BoolVar(&fv.group, "group", false, "group the list by pending/done")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := Default()

	path, explicit := configPath(fv.config)
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		} else {
			cfg.ConfigFile = path
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = fv.backend
		case "file":
			cfg.File = fv.file
		case "db":
			cfg.DB = fv.db
		case "theme":
			cfg.Theme = fv.theme
		case "log-level":
			cfg.LogLevel = fv.logLevel
		case "tui":
			cfg.TUI = fv.tui
		case "group":
			cfg.Group = fv.group
		}
	})

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configPath picks the flag, then TODO_CONFIG, then ./todo.toml.
// explicit reports whether the user named the file.
func configPath(flagValue string) (path string, explicit bool) {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p, true
	}
	if p := strings.TrimSpace(os.Getenv(ConfigEnv)); p != "" {
		return p, true
	}
	return DefaultConfigFile, false
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) normalize() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.File = strings.TrimSpace(c.File)
	c.DB = strings.TrimSpace(c.DB)
}

// Validate rejects settings the program cannot act on.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		if c.File == "" {
			return fmt.Errorf("file path is required for the %s backend", BackendFile)
		}
	case BackendSQLite:
		if c.DB == "" {
			return fmt.Errorf("database path is required for the %s backend", BackendSQLite)
		}
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendFile, BackendSQLite)
	}
	if !slices.Contains(themes, c.Theme) {
		return fmt.Errorf("unknown theme %q (want %s)", c.Theme, strings.Join(themes, ", "))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// StoragePath is the file the selected backend persists to.
func (c *Config) StoragePath() string {
	if c.Backend == BackendSQLite {
		return c.DB
	}
	return c.File
}

