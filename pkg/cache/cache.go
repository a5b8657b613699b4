// Package cache provides a Redis-backed cache for rendered documents.
// Rendering is deterministic, so a cached document stays valid until its
// building record or template changes.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/redis/go-redis/v9"

	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Config holds Redis connection settings
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

// RenderCache caches rendered documents keyed by building, template, and
// viewer context
type RenderCache struct {
	rdb    *redis.Client
	logger ectologger.Logger
	ttl    time.Duration
}

// NewRenderCache creates a render cache and verifies the connection
func NewRenderCache(cfg Config, logger ectologger.Logger) (*RenderCache, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	logger.Infof("Connected to Redis at %s", addr)

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &RenderCache{
		rdb:    rdb,
		logger: logger,
		ttl:    ttl,
	}, nil
}

// Close closes the Redis connection
func (c *RenderCache) Close() error {
	return c.rdb.Close()
}

// Ping checks if Redis is reachable
func (c *RenderCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Key builds the cache key for one render
func Key(buildingID, templateID string, viewer models.ViewerContext) string {
	viewer = viewer.Normalize()
	return fmt.Sprintf("fern:render:%s:%s:%s:%s", buildingID, templateID, viewer.LocationType, viewer.Audience)
}

// Get returns a cached document, or "" on a miss
func (c *RenderCache) Get(ctx context.Context, buildingID, templateID string, viewer models.ViewerContext) (string, bool) {
	doc, err := c.rdb.Get(ctx, Key(buildingID, templateID, viewer)).Result()
	if err == redis.Nil {
		metrics.RecordCacheLookup("miss")
		return "", false
	}
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).Warn("Render cache read failed")
		metrics.RecordCacheLookup("error")
		return "", false
	}
	metrics.RecordCacheLookup("hit")
	return doc, true
}

// Set stores a rendered document. Failures are logged, not returned: the
// cache is an optimization and rendering already succeeded.
func (c *RenderCache) Set(ctx context.Context, buildingID, templateID string, viewer models.ViewerContext, document string) {
	if err := c.rdb.Set(ctx, Key(buildingID, templateID, viewer), document, c.ttl).Err(); err != nil {
		c.logger.WithContext(ctx).WithError(err).Warn("Render cache write failed")
	}
}

// Invalidate drops every cached render for a building, called when its
// record is replaced
func (c *RenderCache) Invalidate(ctx context.Context, buildingID string) error {
	pattern := fmt.Sprintf("fern:render:%s:*", buildingID)

	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
