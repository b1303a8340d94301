// Package config loads budgetburn settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/theirongolddev/budgetburn/internal/model"
)

// EnvDBPath overrides the configured database path.
const EnvDBPath = "BUDGETBURN_DB"

// Config holds all budgetburn configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Payoff     PayoffConfig     `toml:"payoff"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
	TUI        TUIConfig        `toml:"tui"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath       string `toml:"db_path,omitempty"`
	AlertLimit   int    `toml:"alert_limit"`
	ScheduleRows int    `toml:"schedule_rows"`
}

// PayoffConfig seeds the saved payoff settings on first use.
type PayoffConfig struct {
	DefaultStrategy string  `toml:"default_strategy"`
	DefaultExtra    float64 `toml:"default_extra"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds the local API listener settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// TUIConfig holds dashboard behavior.
type TUIConfig struct {
	ExtraStep float64 `toml:"extra_step"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			AlertLimit:   6,
			ScheduleRows: 24,
		},
		Payoff: PayoffConfig{
			DefaultStrategy: string(model.Avalanche),
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8788",
		},
		TUI: TUIConfig{
			ExtraStep: 25,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetburn")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "budgetburn")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetburn")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "budgetburn")
}

// LoadDotEnv reads a .env file from the working directory when one exists.
// Variables already set in the environment win.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading .env: %w", err)
	}
	return nil
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg.withDefaults(), nil
}

// withDefaults replaces zero or out-of-range values a hand-edited file may carry.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.General.AlertLimit <= 0 {
		c.General.AlertLimit = def.General.AlertLimit
	}
	if c.General.ScheduleRows <= 0 {
		c.General.ScheduleRows = def.General.ScheduleRows
	}
	if c.Payoff.DefaultStrategy != string(model.Snowball) {
		c.Payoff.DefaultStrategy = def.Payoff.DefaultStrategy
	}
	if c.Payoff.DefaultExtra < 0 {
		c.Payoff.DefaultExtra = 0
	}
	if c.Appearance.Theme == "" {
		c.Appearance.Theme = def.Appearance.Theme
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.TUI.ExtraStep <= 0 {
		c.TUI.ExtraStep = def.TUI.ExtraStep
	}
	return c
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// DBPath returns the database path from the env var, the config, or the
// data directory, in that order.
func DBPath(cfg Config) string {
	if p := os.Getenv(EnvDBPath); p != "" {
		return p
	}
	if cfg.General.DBPath != "" {
		return cfg.General.DBPath
	}
	return filepath.Join(DataDir(), "budget.db")
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
