package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/picstream/picstream-go/internal/assetid"
)

func makeTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	// spin up in-memory Redis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	t.Cleanup(mr.Close)
	// point the real client at it
	rdb := redis.NewClient(&redis.Options{
		Addr:     mr.Addr(),
		Password: "",
		DB:       0,
	})
	return &Cache{client: rdb}, mr
}

func TestGetSetDeleteAssetDetails(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	id := assetid.New()
	payload := []byte(`{"id":"` + id.String() + `","state":"ready"}`)
	validUntil := time.Now().Add(2 * time.Minute)

	// 1) Cache miss
	got, err := c.GetAssetDetails(ctx, id)
	if err != nil {
		t.Fatalf("GetAssetDetails miss: %v", err)
	}
	if got != nil {
		t.Errorf("GetAssetDetails miss: got %q; want nil", got)
	}

	// 2) Set + Get
	c.SetAssetDetails(ctx, id, payload, validUntil)
	// check TTL in Redis ≈ 2m
	if ttl := mr.TTL(getCacheKey(id.String(), false)); ttl < time.Minute || ttl > 2*time.Minute+time.Second {
		t.Errorf("redis TTL = %v; want ~2m", ttl)
	}
	got, err = c.GetAssetDetails(ctx, id)
	if err != nil {
		t.Fatalf("GetAssetDetails hit: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("roundtrip mismatch: got %q; want %q", got, payload)
	}

	// 3) Delete + miss again
	if err := c.DeleteAssetDetails(ctx, id); err != nil {
		t.Fatalf("DeleteAssetDetails: %v", err)
	}
	if got, _ := c.GetAssetDetails(ctx, id); got != nil {
		t.Errorf("after delete, GetAssetDetails = %q; want nil", got)
	}
}

func TestEtagAssetDetails(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	id := assetid.New()
	if got, err := c.GetEtagAssetDetails(ctx, id); err != nil {
		t.Fatalf("initial miss err: %v", err)
	} else if got != "" {
		t.Errorf("expected empty string on miss, got %q", got)
	}

	c.SetEtagAssetDetails(ctx, id, "cafebabe", time.Now().Add(2*time.Minute))
	if ttl := mr.TTL(getCacheKey(id.String(), true)); ttl < time.Minute || ttl > 2*time.Minute+time.Second {
		t.Errorf("etag TTL = %v; want ~2m", ttl)
	}

	got, err := c.GetEtagAssetDetails(ctx, id)
	if err != nil {
		t.Fatalf("GetEtagAssetDetails: %v", err)
	}
	if got != "cafebabe" {
		t.Errorf("GetEtagAssetDetails = %q; want %q", got, "cafebabe")
	}

	if err := c.DeleteEtagAssetDetails(ctx, id); err != nil {
		t.Fatalf("DeleteEtagAssetDetails: %v", err)
	}
	if got, _ := c.GetEtagAssetDetails(ctx, id); got != "" {
		t.Errorf("after delete, etag = %q; want empty", got)
	}
}

func TestGetAssetDetails_RedisError(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()
	id := assetid.New()

	// Simulate Redis unreachable
	mr.Close()

	got, err := c.GetAssetDetails(ctx, id)
	if got != nil {
		t.Errorf("Expected nil on Redis error, got %q", got)
	}
	if err == nil || !strings.Contains(err.Error(), "redis get failed") {
		t.Errorf("Expected redis get failed error, got %v", err)
	}
}

func TestDeleteAssetDetails_RedisError(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()
	id := assetid.New()

	// Simulate Redis unreachable before Delete
	mr.Close()

	err := c.DeleteAssetDetails(ctx, id)
	if err == nil || !strings.Contains(err.Error(), "redis del failed") {
		t.Errorf("Expected redis del failed error, got %v", err)
	}
}

func TestGetCacheKey_Etag(t *testing.T) {
	id := assetid.New().String()
	if got := getCacheKey(id, true); got != "etag:asset:"+id {
		t.Errorf("getCacheKey(true) = %q; want %q", got, "etag:asset:"+id)
	}
	if got := getCacheKey(id, false); got != "asset:"+id {
		t.Errorf("getCacheKey() = %q; want %q", got, "asset:"+id)
	}
}
