package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/contentdeck/contentdeck/internal/models"
	"github.com/redis/go-redis/v9"
)

// PostCache holds one entry per user: a snapshot of that user's unfiltered
// post list. Entries are deleted on every mutation that can change the list
// and carry a TTL so a missed invalidation self-heals.
type PostCache interface {
	Get(ctx context.Context, userID string) ([]*models.Post, bool)
	Set(ctx context.Context, userID string, posts []*models.Post)
	Invalidate(ctx context.Context, userID string)
}

const postCacheTTL = 60 * time.Second

type postCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPostCache(rdb *redis.Client) PostCache {
	return &postCache{rdb: rdb, ttl: postCacheTTL}
}

func cacheKey(userID string) string {
	return fmt.Sprintf("posts:%s", userID)
}

// Get returns the cached snapshot if present. Redis failures are treated as
// misses so the database stays the source of truth.
func (c *postCache) Get(ctx context.Context, userID string) ([]*models.Post, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Info(err.Error())
		}
		return nil, false
	}

	var posts []*models.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		slog.Info(err.Error())
		return nil, false
	}
	return posts, true
}

func (c *postCache) Set(ctx context.Context, userID string, posts []*models.Post) {
	raw, err := json.Marshal(posts)
	if err != nil {
		slog.Info(err.Error())
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(userID), raw, c.ttl).Err(); err != nil {
		slog.Info(err.Error())
	}
}

func (c *postCache) Invalidate(ctx context.Context, userID string) {
	if err := c.rdb.Del(ctx, cacheKey(userID)).Err(); err != nil {
		slog.Info(err.Error())
	}
}
