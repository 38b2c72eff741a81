package factory

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mikey/mailsift/internal/adapters/cache"
	"github.com/mikey/mailsift/internal/config"
	"github.com/mikey/mailsift/internal/core"
	"go.uber.org/zap"
)

// CacheFactory creates cache repositories based on configuration
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateCacheRepository creates a cache repository based on the configuration
func (f *CacheFactory) CreateCacheRepository() (core.CacheRepository, error) {
	cacheCfg, err := f.cfg.Cache()
	if err != nil {
		return nil, fmt.Errorf("invalid cache configuration: %w", err)
	}

	switch cacheCfg.Type {
	case "memory":
		return cache.NewMemoryCache(f.logger, cacheCfg.CleanupFreq), nil
	case "sqlite":
		sqlitePath := os.ExpandEnv(cacheCfg.SQLitePath)
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return cache.NewSQLiteCache(sqlitePath, f.logger, cacheCfg.CleanupFreq)
	case "mysql":
		return cache.NewMySQLCache(cacheCfg.MySQLDSN, f.logger, cacheCfg.CleanupFreq)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cacheCfg.Type)
	}
}

// GetCacheTTL returns the configured cache TTL
func (f *CacheFactory) GetCacheTTL() (time.Duration, error) {
	return f.cfg.GetDuration("cache.ttl")
}

// IsCacheEnabled returns whether caching is enabled
func (f *CacheFactory) IsCacheEnabled() bool {
	return f.cfg.GetBool("cache.enabled")
}
