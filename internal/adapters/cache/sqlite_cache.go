package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikey/mailsift/internal/core"
	"go.uber.org/zap"
)

// sqliteTimeLayout matches the text form of datetime('now') so that expiry
// comparisons work as plain string comparisons.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// SQLiteCache is a SQLite implementation of the CacheRepository interface
type SQLiteCache struct {
	db          *sql.DB
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewSQLiteCache creates a new SQLite cache
func NewSQLiteCache(dbPath string, logger *zap.Logger, cleanupFreq time.Duration) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS result_cache (
			digest TEXT PRIMARY KEY,
			operation TEXT,
			payload BLOB,
			last_seen TIMESTAMP,
			expires_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	// Create index on expires_at for faster cleanup
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_expires_at ON result_cache(expires_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	cache := &SQLiteCache{
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
func (c *SQLiteCache) Get(ctx context.Context, digest string) (*core.CacheEntry, error) {
	var entry core.CacheEntry
	var lastSeen, expiresAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT digest, operation, payload, last_seen, expires_at
		FROM result_cache
		WHERE digest = ? AND expires_at > datetime('now')
	`, digest).Scan(&entry.Digest, &entry.Operation, &entry.Payload, &lastSeen, &expiresAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}

	if entry.LastSeen, err = time.Parse(sqliteTimeLayout, lastSeen); err != nil {
		return nil, fmt.Errorf("failed to parse last_seen timestamp: %w", err)
	}
	if entry.ExpiresAt, err = time.Parse(sqliteTimeLayout, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to parse expires_at timestamp: %w", err)
	}

	return &entry, nil
}

// Set stores a cache entry
func (c *SQLiteCache) Set(ctx context.Context, entry *core.CacheEntry) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO result_cache (digest, operation, payload, last_seen, expires_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.Digest, entry.Operation, entry.Payload,
		entry.LastSeen.UTC().Format(sqliteTimeLayout), entry.ExpiresAt.UTC().Format(sqliteTimeLayout))

	if err != nil {
		return fmt.Errorf("failed to insert cache entry: %w", err)
	}
	return nil
}

// Delete removes a cache entry
func (c *SQLiteCache) Delete(ctx context.Context, digest string) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM result_cache WHERE digest = ?
	`, digest)

	if err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Cleanup removes expired entries
func (c *SQLiteCache) Cleanup(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx, `
		DELETE FROM result_cache WHERE expires_at <= datetime('now')
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
func (c *SQLiteCache) Close() error {
	close(c.stopCh)
	return c.db.Close()
}

// startCleanupTask periodically removes expired entries
func (c *SQLiteCache) startCleanupTask() {
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
