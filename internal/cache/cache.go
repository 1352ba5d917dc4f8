package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/port"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetAssetDetails(ctx context.Context, id assetid.ID) ([]byte, error) {
	val, err := c.client.Get(ctx, getCacheKey(id.String(), false)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) GetEtagAssetDetails(ctx context.Context, id assetid.ID) (string, error) {
	val, err := c.client.Get(ctx, getCacheKey(id.String(), true)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

// SetAssetDetails caches the serialised details until the embedded download
// links expire. Failures only cost a cache miss, so they are logged, not
// returned.
func (c *Cache) SetAssetDetails(ctx context.Context, id assetid.ID, data []byte, validUntil time.Time) {
	log.Printf("creating entry in cache for asset #%s, valid until %s...", id, validUntil.Format(time.RFC1123))

	if err := c.client.Set(ctx, getCacheKey(id.String(), false), data, time.Until(validUntil)).Err(); err != nil {
		log.Printf("redis set failed for asset #%s: %v", id, err)
	}
}

func (c *Cache) SetEtagAssetDetails(ctx context.Context, id assetid.ID, etag string, validUntil time.Time) {
	if err := c.client.Set(ctx, getCacheKey(id.String(), true), etag, time.Until(validUntil)).Err(); err != nil {
		log.Printf("redis set failed for asset #%s etag: %v", id, err)
	}
}

func (c *Cache) DeleteAssetDetails(ctx context.Context, id assetid.ID) error {
	log.Printf("deleting entry in cache for asset #%s...", id)

	if err := c.client.Del(ctx, getCacheKey(id.String(), false)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (c *Cache) DeleteEtagAssetDetails(ctx context.Context, id assetid.ID) error {
	if err := c.client.Del(ctx, getCacheKey(id.String(), true)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func getCacheKey(id string, isEtag bool) string {
	if isEtag {
		return "etag:asset:" + id
	}
	return "asset:" + id
}
