package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/vclass-go-api/internal/repository"
)

// Feed kinds cached per student cohort.
const (
	FeedKindAssignments = "assignments"
	FeedKindQuizzes     = "quizzes"
)

// FeedCache stores student coursework feeds in Redis keyed by cohort. Each
// kind carries a version counter; invalidation bumps the version so stale
// keys simply age out with their TTL.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewFeedCache constructs a FeedCache. A nil client yields a cache that
// always misses, which keeps the services usable without Redis.
func NewFeedCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *FeedCache {
	return &FeedCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "feed_cache").Logger(),
	}
}

// Get loads a cached feed into dest, reporting whether a usable entry existed.
func (c *FeedCache) Get(ctx context.Context, kind string, filter repository.StudentFeedFilter, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}

	key, err := c.key(ctx, kind, filter)
	if err != nil {
		return false
	}

	cached, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Msg("failed to read feed cache")
		}
		return false
	}

	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		return false
	}

	c.logger.Debug().Str("kind", kind).Msg("feed cache hit")
	return true
}

// Set stores a feed; failures are logged and swallowed.
func (c *FeedCache) Set(ctx context.Context, kind string, filter repository.StudentFeedFilter, value interface{}) {
	if c == nil || c.client == nil {
		return
	}

	key, err := c.key(ctx, kind, filter)
	if err != nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to store feed cache")
	}
}

// Invalidate bumps the version counter for a feed kind, orphaning every
// cached cohort entry of that kind at once.
func (c *FeedCache) Invalidate(ctx context.Context, kind string) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Incr(ctx, c.versionKey(kind)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("kind", kind).Msg("failed to invalidate feed cache")
	}
}

func (c *FeedCache) key(ctx context.Context, kind string, filter repository.StudentFeedFilter) (string, error) {
	version, err := c.client.Get(ctx, c.versionKey(kind)).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}

	return fmt.Sprintf("feed:%s:v%d:%s:%s:%s", kind, version, filter.Section, filter.Year, filter.Department), nil
}

func (c *FeedCache) versionKey(kind string) string {
	return fmt.Sprintf("feed:%s:version", kind)
}
