// Package config provides configuration management for the trading journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"trade-journal/internal/errors"
	"trade-journal/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	Journal JournalConfig `mapstructure:"journal" json:"journal"`
	UI      UIConfig      `mapstructure:"ui" json:"ui"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging"`
	API     APIConfig     `mapstructure:"api" json:"api"`

	// Dir is the directory the configuration was loaded from.
	Dir string `mapstructure:"-" json:"dir"`
}

// JournalConfig holds storage and session configuration.
type JournalConfig struct {
	DBPath string `mapstructure:"db_path" json:"db_path"`
	// PersistSession snapshots trades and strategies to the store so that
	// one CLI invocation sees the previous one's session.
	PersistSession bool `mapstructure:"persist_session" json:"persist_session"`
	// SeedStrategies installs the built-in playbook into an empty session.
	SeedStrategies bool `mapstructure:"seed_strategies" json:"seed_strategies"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled   bool   `mapstructure:"color_enabled" json:"color_enabled"`
	DateFormat     string `mapstructure:"date_format" json:"date_format"`
	CurrencySymbol string `mapstructure:"currency_symbol" json:"currency_symbol"`
}

// LoggingConfig holds log output configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level" json:"level"`
	Console    bool   `mapstructure:"console" json:"console"`
	File       bool   `mapstructure:"file" json:"file"`
	FilePath   string `mapstructure:"file_path" json:"file_path"`
	MaxSize    int    `mapstructure:"max_size" json:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" json:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" json:"max_age"`
}

// APIConfig holds HTTP server configuration.
type APIConfig struct {
	Addr      string  `mapstructure:"addr" json:"addr"`
	Mode      string  `mapstructure:"mode" json:"mode"` // debug, release, test
	RateLimit float64 `mapstructure:"rate_limit" json:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst" json:"rate_burst"`
	ReadOnly  bool    `mapstructure:"read_only" json:"read_only"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/trade-journal"
	}
	return filepath.Join(home, ".config", "trade-journal")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing
// config.toml is replaced by a commented template and defaults are used.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	// .env files only fill variables that are not already set.
	loadDotEnv(filepath.Join(configDir, ".env"), ".env")

	cfg := &Config{Dir: configDir}
	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadDotEnv(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("journal.db_path", filepath.Join(configDir, "journal.db"))
	v.SetDefault("journal.persist_session", true)
	v.SetDefault("journal.seed_strategies", true)

	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02 Jan 2006")
	v.SetDefault("ui.currency_symbol", "$")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.file_path", filepath.Join(configDir, "logs", "journal.log"))
	v.SetDefault("logging.max_size", 20)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age", 30)

	v.SetDefault("api.addr", "127.0.0.1:8080")
	v.SetDefault("api.mode", "release")
	v.SetDefault("api.rate_limit", 20.0)
	v.SetDefault("api.rate_burst", 40)
	v.SetDefault("api.read_only", false)
}

func loadConfigFile(configDir, name string, target *Config) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		if err := createTemplateConfig(configDir, name); err != nil {
			return err
		}
	}

	return v.Unmarshal(target)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("JOURNAL_DB_PATH"); v != "" {
		cfg.Journal.DBPath = v
	}
	if v := os.Getenv("JOURNAL_PERSIST_SESSION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Journal.PersistSession = b
		}
	}
	if v := os.Getenv("JOURNAL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("JOURNAL_API_ADDR"); v != "" {
		cfg.API.Addr = v
	}
	if v := os.Getenv("NO_COLOR"); v != "" {
		cfg.UI.ColorEnabled = false
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Journal.DBPath) == "" {
		return invalid("journal.db_path must not be empty")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error", "disabled", "off":
	default:
		return invalid("invalid log level: %s", c.Logging.Level)
	}
	if c.Logging.File && c.Logging.MaxSize <= 0 {
		return invalid("logging.max_size must be positive")
	}

	switch c.API.Mode {
	case "", "debug", "release", "test":
	default:
		return invalid("invalid api mode: %s (must be debug, release or test)", c.API.Mode)
	}
	if c.API.RateLimit < 0 {
		return invalid("api.rate_limit must be non-negative")
	}
	if c.API.RateLimit > 0 && c.API.RateBurst <= 0 {
		return invalid("api.rate_burst must be positive when rate_limit is set")
	}

	return nil
}

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(errors.ErrConfigInvalid, format, args...)
}

// LogConfig converts the logging section for the logging package.
func (c *Config) LogConfig() logging.LogConfig {
	return logging.LogConfig{
		Level:      c.Logging.Level,
		Console:    c.Logging.Console,
		File:       c.Logging.File,
		FilePath:   c.Logging.FilePath,
		MaxSize:    c.Logging.MaxSize,
		MaxBackups: c.Logging.MaxBackups,
		MaxAge:     c.Logging.MaxAge,
	}
}

// Path returns the path of the main config file.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, "config.toml")
}
