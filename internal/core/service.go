package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// MessageService is the core service for message enrichment and analysis
type MessageService struct {
	client       AnalysisClient
	cache        CacheRepository
	logger       *zap.Logger
	cacheEnabled bool
	cacheTTL     time.Duration
}

// NewMessageService creates a new message service
func NewMessageService(
	client AnalysisClient,
	cache CacheRepository,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
) *MessageService {
	return &MessageService{
		client:       client,
		cache:        cache,
		logger:       logger,
		cacheEnabled: cacheEnabled && cache != nil,
		cacheTTL:     cacheTTL,
	}
}

// Enrich enriches a raw email message into a message data model
func (s *MessageService) Enrich(ctx context.Context, message string) (Result, error) {
	digest := requestDigest("enrich", message)

	if result, ok := s.cached(ctx, digest); ok {
		return result, nil
	}

	result, err := s.client.EnrichMessage(ctx, message)
	if err != nil {
		return nil, err
	}

	s.store(ctx, digest, "enrich", result)
	return result, nil
}

// Analyze evaluates a message against a set of detections
func (s *MessageService) Analyze(ctx context.Context, req *AnalyzeRequest) (Result, error) {
	parts := []string{req.Message, req.DataModel}
	for _, d := range req.Detections {
		parts = append(parts, d.Detection)
	}
	digest := requestDigest("analyze", parts...)

	if result, ok := s.cached(ctx, digest); ok {
		return result, nil
	}

	result, err := s.client.AnalyzeMessage(ctx, req)
	if err != nil {
		return nil, err
	}

	s.store(ctx, digest, "analyze", result)
	return result, nil
}

// cached looks up a prior result for the digest, if caching is enabled
func (s *MessageService) cached(ctx context.Context, digest string) (Result, bool) {
	if !s.cacheEnabled {
		return nil, false
	}

	entry, err := s.cache.Get(ctx, digest)
	if err != nil {
		return nil, false
	}

	var result Result
	if err := json.Unmarshal(entry.Payload, &result); err != nil {
		s.logger.Error("Failed to decode cached result", zap.Error(err), zap.String("digest", digest))
		return nil, false
	}

	s.logger.Debug("Cache hit", zap.String("digest", digest))
	return result, true
}

// store caches a fresh result under the digest, if caching is enabled
func (s *MessageService) store(ctx context.Context, digest, operation string, result Result) {
	if !s.cacheEnabled {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("Failed to encode result for cache", zap.Error(err))
		return
	}

	entry := &CacheEntry{
		Digest:    digest,
		Operation: operation,
		Payload:   payload,
		LastSeen:  time.Now(),
		ExpiresAt: time.Now().Add(s.cacheTTL),
	}
	if err := s.cache.Set(ctx, entry); err != nil {
		s.logger.Error("Failed to update cache", zap.Error(err))
	}
}

// requestDigest builds a stable cache key from the operation and its inputs
func requestDigest(operation string, parts ...string) string {
	h := sha256.New()
	h.Write([]byte(operation))
	for _, part := range parts {
		h.Write([]byte{0})
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}
