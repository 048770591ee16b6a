// Package config loads launcher settings from an optional config file and
// LAUNCHER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"launcher/internal/index"
)

const (
	// AppName is the application name.
	AppName = "launcher"
	// ConfigFileName is the config file name without extension. Any format
	// viper understands (yaml, toml, json) is accepted.
	ConfigFileName = "config"
	// EnvPrefix prefixes environment overrides, e.g. LAUNCHER_BATCH_SIZE.
	EnvPrefix = "LAUNCHER"
)

// Themes lists the accepted theme names.
var Themes = []string{"latte", "mocha"}

// Config holds all launcher settings.
type Config struct {
	// BatchSize bounds how many discovered entries are indexed per redraw.
	BatchSize int `mapstructure:"batch_size"`
	// KeyBy is "search" (name+comment, later duplicates replace earlier
	// ones) or "path" (every descriptor kept).
	KeyBy string `mapstructure:"key_by"`
	// ExtraDirs are scanned after the standard application directories.
	ExtraDirs []string `mapstructure:"extra_dirs"`
	// Exclude holds gitignore-style patterns for files to skip.
	Exclude []string `mapstructure:"exclude"`
	// FallbackDir replaces the built-in fallback directory when set.
	FallbackDir string `mapstructure:"fallback_dir"`
	// Workers is the number of parse workers; 0 means one per CPU.
	Workers int       `mapstructure:"workers"`
	Theme   string    `mapstructure:"theme"`
	Log     LogConfig `mapstructure:"log"`
}

// LogConfig controls diagnostics.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		BatchSize: index.DefaultBatchSize,
		KeyBy:     index.KeyBySearch.String(),
		ExtraDirs: []string{},
		Exclude:   []string{},
		Workers:   0,
		Theme:     "latte",
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// LoadOptions overrides where configuration is read from.
type LoadOptions struct {
	// ConfigFilePath is used exclusively when set; it must exist.
	ConfigFilePath string
	// ConfigDirPath replaces the platform config directory.
	ConfigDirPath string
}

// Dir returns the launcher configuration directory:
// $XDG_CONFIG_HOME/launcher, defaulting to ~/.config/launcher.
func Dir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, AppName), nil
}

// Load reads the configuration. A missing config file is not an error; the
// defaults apply. It returns the path of the file that was read, if any.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("batch_size", defaults.BatchSize)
	v.SetDefault("key_by", defaults.KeyBy)
	v.SetDefault("extra_dirs", defaults.ExtraDirs)
	v.SetDefault("exclude", defaults.Exclude)
	v.SetDefault("fallback_dir", defaults.FallbackDir)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("theme", defaults.Theme)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		v.SetConfigFile(opts.ConfigFilePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("load configuration %s: %w", opts.ConfigFilePath, err)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		dir := opts.ConfigDirPath
		if dir == "" {
			var err error
			dir, err = Dir()
			if err != nil {
				return nil, "", err
			}
		}
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, "", fmt.Errorf("load configuration: %w", err)
			}
		} else {
			resolvedPath = v.ConfigFileUsed()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("validate configuration: %w", err)
	}
	return &cfg, resolvedPath, nil
}

// Validate checks values the loader cannot type-check.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive (got %d)", c.BatchSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative (got %d)", c.Workers)
	}
	if _, err := index.ParseKeyMode(c.KeyBy); err != nil {
		return fmt.Errorf("key_by: %w", err)
	}
	if !slices.Contains(Themes, c.Theme) {
		return fmt.Errorf("theme must be one of %s (got %q)", strings.Join(Themes, ", "), c.Theme)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// KeyMode returns the parsed KeyBy setting.
func (c *Config) KeyMode() index.KeyMode {
	m, _ := index.ParseKeyMode(c.KeyBy)
	return m
}
