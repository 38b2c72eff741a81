package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrAPIKeyNotFound is returned when no API key could be resolved from the
// flag, the environment, or the configuration file.
var ErrAPIKeyNotFound = errors.New("API key not found")

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/mailsift/")
	v.AddConfigPath("$HOME/.mailsift")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("MAILSIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromFile creates a configuration instance from an explicit config file path
func NewFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvPrefix("MAILSIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api_key", "")
	v.SetDefault("api.base_url", "https://api.mailsift.io")
	v.SetDefault("api.version", "v1")
	v.SetDefault("api.timeout", "30s")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_frequency", "1h")
	v.SetDefault("cache.sqlite_path", "$HOME/.mailsift/results.db")
	v.SetDefault("cache.mysql_dsn", "user:password@tcp(localhost:3306)/mailsift")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// ResolveAPIKey resolves the API key for one invocation.
//
// Precedence: the explicit flag value, then the MAILSIFT_API_KEY environment
// variable, then the api_key entry of the configuration file. Returns
// ErrAPIKeyNotFound when all three are empty.
func (c *Config) ResolveAPIKey(flagKey string) (string, error) {
	if flagKey != "" {
		return flagKey, nil
	}
	// AutomaticEnv already maps api_key to MAILSIFT_API_KEY, so this covers
	// both the environment variable and the config file entry.
	if key := c.v.GetString("api_key"); key != "" {
		return key, nil
	}
	return "", ErrAPIKeyNotFound
}

// SaveAPIKey persists the API key to the user configuration file, creating
// the directory if needed. Used by the setup command.
func (c *Config) SaveAPIKey(key string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	dir := filepath.Join(home, ".mailsift")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	c.v.Set("api_key", key)
	if err := c.v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
