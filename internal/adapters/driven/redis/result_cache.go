package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/leedsmet/bibliosight-core/internal/core/domain"
	"github.com/leedsmet/bibliosight-core/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.ResultCache = (*ResultCache)(nil)

// Key prefix for cached result documents
const resultPrefix = "bibliosight:result:"

// ResultCache implements driven.ResultCache using Redis. Documents
// expire through the Redis TTL.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache creates a Redis-backed ResultCache. A non-positive TTL
// defaults to one hour.
func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ResultCache{client: client, ttl: ttl}
}

// Get returns the cached document for a request fingerprint
func (c *ResultCache) Get(ctx context.Context, fingerprint string) (string, error) {
	document, err := c.client.Get(ctx, resultPrefix+fingerprint).Result()
	if err == redis.Nil {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get cached result: %w", err)
	}
	return document, nil
}

// Set stores a document under a request fingerprint with the cache TTL
func (c *ResultCache) Set(ctx context.Context, fingerprint string, document string) error {
	if err := c.client.Set(ctx, resultPrefix+fingerprint, document, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache result: %w", err)
	}
	return nil
}
