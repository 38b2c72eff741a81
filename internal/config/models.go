package config

import "time"

// APIConfig represents the configuration for the remote analysis service
type APIConfig struct {
	BaseURL string
	Version string
	Timeout time.Duration
}

// CacheConfig represents the configuration for the result cache
type CacheConfig struct {
	Type        string
	Enabled     bool
	TTL         time.Duration
	CleanupFreq time.Duration
	SQLitePath  string
	MySQLDSN    string
}

// API returns the typed remote service configuration
func (c *Config) API() (APIConfig, error) {
	timeout, err := c.GetDuration("api.timeout")
	if err != nil {
		return APIConfig{}, err
	}
	return APIConfig{
		BaseURL: c.GetString("api.base_url"),
		Version: c.GetString("api.version"),
		Timeout: timeout,
	}, nil
}

// Cache returns the typed cache configuration
func (c *Config) Cache() (CacheConfig, error) {
	ttl, err := c.GetDuration("cache.ttl")
	if err != nil {
		return CacheConfig{}, err
	}
	cleanup, err := c.GetDuration("cache.cleanup_frequency")
	if err != nil {
		return CacheConfig{}, err
	}
	return CacheConfig{
		Type:        c.GetString("cache.type"),
		Enabled:     c.GetBool("cache.enabled"),
		TTL:         ttl,
		CleanupFreq: cleanup,
		SQLitePath:  c.GetString("cache.sqlite_path"),
		MySQLDSN:    c.GetString("cache.mysql_dsn"),
	}, nil
}
