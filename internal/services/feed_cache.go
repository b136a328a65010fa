package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linkswipe/backend/internal/models"
)

const feedCacheKey = "feed:approved"

// FeedCache caches the approved-profiles feed in Redis for a short TTL so
// gallery loads don't hit Mongo on every request. A nil *FeedCache is a
// no-op, which keeps Redis optional.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFeedCache(addr, password string, db int, ttl time.Duration) *FeedCache {
	return &FeedCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

func (c *FeedCache) Get(ctx context.Context) ([]models.Profile, bool) {
	if c == nil {
		return nil, false
	}
	bs, err := c.client.Get(ctx, feedCacheKey).Bytes()
	if err != nil || len(bs) == 0 {
		return nil, false
	}
	var profiles []models.Profile
	if err := json.Unmarshal(bs, &profiles); err != nil {
		return nil, false
	}
	return profiles, true
}

func (c *FeedCache) Set(ctx context.Context, profiles []models.Profile) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(profiles)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, feedCacheKey, payload, c.ttl).Err()
}

// Invalidate drops the cached feed. Called after a profile is approved so the
// gallery picks it up without waiting for the TTL.
func (c *FeedCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	_ = c.client.Del(ctx, feedCacheKey).Err()
}

func (c *FeedCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
