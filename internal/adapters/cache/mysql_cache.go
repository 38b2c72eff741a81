package cache

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mikey/mailsift/internal/core"
	"go.uber.org/zap"
)

// MySQLCache is a MySQL implementation of the CacheRepository interface
type MySQLCache struct {
	db          *sql.DB
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMySQLCache creates a new MySQL cache
func NewMySQLCache(dsn string, logger *zap.Logger, cleanupFreq time.Duration) (*MySQLCache, error) {
	// Timestamps scan as time.Time only with parseTime enabled.
	if !strings.Contains(dsn, "parseTime") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS result_cache (
			digest VARCHAR(64) PRIMARY KEY,
			operation VARCHAR(32),
			payload MEDIUMBLOB,
			last_seen TIMESTAMP,
			expires_at TIMESTAMP,
			INDEX idx_expires_at (expires_at)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	cache := &MySQLCache{
		db:          db,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	go cache.startCleanupTask()

	return cache, nil
}

// Get retrieves a cached entry by request digest
func (c *MySQLCache) Get(ctx context.Context, digest string) (*core.CacheEntry, error) {
	var entry core.CacheEntry

	err := c.db.QueryRowContext(ctx, `
		SELECT digest, operation, payload, last_seen, expires_at
		FROM result_cache
		WHERE digest = ? AND expires_at > NOW()
	`, digest).Scan(&entry.Digest, &entry.Operation, &entry.Payload, &entry.LastSeen, &entry.ExpiresAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}

	return &entry, nil
}

// Set stores a cache entry
func (c *MySQLCache) Set(ctx context.Context, entry *core.CacheEntry) error {
	_, err := c.db.ExecContext(ctx, `
		REPLACE INTO result_cache (digest, operation, payload, last_seen, expires_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.Digest, entry.Operation, entry.Payload, entry.LastSeen, entry.ExpiresAt)

	if err != nil {
		return fmt.Errorf("failed to insert cache entry: %w", err)
	}
	return nil
}

// Delete removes a cache entry
func (c *MySQLCache) Delete(ctx context.Context, digest string) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM result_cache WHERE digest = ?
	`, digest)

	if err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Cleanup removes expired entries
func (c *MySQLCache) Cleanup(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx, `
		DELETE FROM result_cache WHERE expires_at <= NOW()
	`)
	if err != nil {
		return fmt.Errorf("failed to clean up cache: %w", err)
	}

	if removed, err := result.RowsAffected(); err == nil && removed > 0 {
		c.logger.Debug("Cleaned up expired cache entries", zap.Int64("removed", removed))
	}
	return nil
}

// Close stops the background cleanup task and closes the database
func (c *MySQLCache) Close() error {
	close(c.stopCh)
	return c.db.Close()
}

// startCleanupTask periodically removes expired entries
func (c *MySQLCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Cleanup(context.Background()); err != nil {
				c.logger.Error("Failed to clean up cache", zap.Error(err))
			}
		case <-c.stopCh:
			return
		}
	}
}
