package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "github.com/rakane/SocialMediaBackEnd/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyAuthor = "posts:author:"
	keyFeed   = "posts:feed:"
)

// PostCache caches author timelines and per-viewer feeds in Redis.
type PostCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewPostCache returns a new PostCache.
func NewPostCache(rdb *redis.Client, ttl time.Duration) *PostCache {
	return &PostCache{rdb: rdb, ttl: ttl}
}

// GetAuthor returns the cached timeline for an author, or nil on miss.
func (c *PostCache) GetAuthor(ctx context.Context, handle string) ([]dom.Post, error) {
	return c.get(ctx, keyAuthor+handle)
}

// SetAuthor stores an author timeline.
func (c *PostCache) SetAuthor(ctx context.Context, handle string, list []dom.Post) error {
	return c.set(ctx, keyAuthor+handle, list)
}

// GetFeed returns the cached feed for a viewer, or nil on miss.
func (c *PostCache) GetFeed(ctx context.Context, viewer string) ([]dom.Post, error) {
	return c.get(ctx, keyFeed+viewer)
}

// SetFeed stores a viewer's feed.
func (c *PostCache) SetFeed(ctx context.Context, viewer string, list []dom.Post) error {
	return c.set(ctx, keyFeed+viewer, list)
}

// InvalidateAuthor drops the author's timeline and every cached feed. Feeds
// are keyed by viewer, so a post write by one author cannot cheaply name the
// feeds it affects; dropping them all keeps reads correct at the cost of a
// re-fill.
func (c *PostCache) InvalidateAuthor(ctx context.Context, handle string) error {
	if err := c.rdb.Del(ctx, keyAuthor+handle).Err(); err != nil {
		return err
	}
	return c.invalidatePattern(ctx, keyFeed+"*")
}

// InvalidateFeed drops one viewer's feed (after a follow list change).
func (c *PostCache) InvalidateFeed(ctx context.Context, viewer string) error {
	return c.rdb.Del(ctx, keyFeed+viewer).Err()
}

func (c *PostCache) get(ctx context.Context, key string) ([]dom.Post, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Post
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *PostCache) set(ctx context.Context, key string, list []dom.Post) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

func (c *PostCache) invalidatePattern(ctx context.Context, pattern string) error {
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
