// Package config handles the configuration directory, the optional
// config.yaml file and the per-invocation settings.
package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "focus"

	// ConfigFile is the optional settings file inside the config directory.
	ConfigFile = "config.yaml"

	// OAuthClientFile is the Google OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored Google OAuth token filename.
	TokenFile = "token.json"

	// EnvPrefix prefixes environment overrides (FOCUS_STORAGE, ...).
	EnvPrefix = "FOCUS"
)

// Settings are the values that can come from config.yaml or the environment.
type Settings struct {
	// Storage selects the key/value backend: file, sqlite or memory.
	Storage string `yaml:"storage" mapstructure:"storage"`

	// Database is the SQLite file name, relative to the config directory
	// unless absolute.
	Database string `yaml:"database" mapstructure:"database"`

	// GoogleList is the Google Tasks list that push mirrors into.
	GoogleList string `yaml:"google_list" mapstructure:"google_list"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Storage:    "file",
		Database:   "focus.db",
		GoogleList: "Focus",
	}
}

// Config holds configuration paths and settings.
type Config struct {
	Settings

	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Logger receives debug output. Never nil after New.
	Logger *log.Logger
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/focus or $HOME/.config/focus.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Settings: DefaultSettings(),
		Dir:      dir,
		Logger:   log.New(io.Discard, "", 0),
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Load merges config.yaml (if present) and FOCUS_* environment variables
// over the default settings.
func (c *Config) Load() error {
	v := viper.New()
	defaults := DefaultSettings()
	v.SetDefault("storage", defaults.Storage)
	v.SetDefault("database", defaults.Database)
	v.SetDefault("google_list", defaults.GoogleList)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if _, err := os.Stat(c.ConfigPath()); err == nil {
		v.SetConfigFile(c.ConfigPath())
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	c.Settings = s
	return nil
}

// EnableDebug routes debug logging to w.
func (c *Config) EnableDebug(w io.Writer) {
	c.Debug = true
	c.Logger = log.New(w, "debug: ", 0)
}

// Debugf logs a debug line when debug logging is enabled.
func (c *Config) Debugf(format string, args ...any) {
	if c.Logger == nil {
		return
	}
	c.Logger.Printf(format, args...)
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DatabasePath returns the SQLite database path.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.Database) {
		return c.Database
	}
	return filepath.Join(c.Dir, c.Database)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
