package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"comichub/internal/api/models"
	"comichub/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a client from the configured redis URL.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	return redis.NewClient(opts), nil
}

// ComicCache keeps serialized comic detail rows in Redis so hot reads skip
// the database. A nil *ComicCache is a no-op, which keeps the service layer
// usable without Redis in tests.
type ComicCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewComicCache(rdb *redis.Client, ttl time.Duration) *ComicCache {
	return &ComicCache{rdb: rdb, ttl: ttl}
}

func comicKey(id string) string {
	return "comic:" + id
}

func (c *ComicCache) Get(ctx context.Context, id string) (*models.Comic, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, comicKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var comic models.Comic
	if err := json.Unmarshal(raw, &comic); err != nil {
		// stale or corrupt entry, drop it
		c.rdb.Del(ctx, comicKey(id))
		return nil, false
	}
	return &comic, true
}

func (c *ComicCache) Set(ctx context.Context, comic *models.Comic) {
	if c == nil || c.rdb == nil || comic == nil {
		return
	}
	raw, err := json.Marshal(comic)
	if err != nil {
		return
	}
	// best-effort: a failed cache write must not fail the request
	c.rdb.Set(ctx, comicKey(comic.ID), raw, c.ttl)
}

func (c *ComicCache) Invalidate(ctx context.Context, id string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, comicKey(id))
}
