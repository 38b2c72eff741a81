package core

import (
	"context"
)

// AnalysisClient defines the interface for the remote analysis service
type AnalysisClient interface {
	// EnrichMessage enriches a raw email message into a message data model
	EnrichMessage(ctx context.Context, message string) (Result, error)

	// AnalyzeMessage evaluates a message against a set of detections
	AnalyzeMessage(ctx context.Context, req *AnalyzeRequest) (Result, error)
}

// CacheRepository defines the interface for caching analysis results
type CacheRepository interface {
	// Get retrieves a cached entry by request digest
	Get(ctx context.Context, digest string) (*CacheEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, digest string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}
