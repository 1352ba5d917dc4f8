package renderer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"testing"
	"time"

	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/mock"
	"github.com/picstream/picstream-go/internal/model"
	"github.com/picstream/picstream-go/internal/port"
)

func TestRenderGetAsset_Cases(t *testing.T) {
	ctx := context.Background()
	id := assetid.New()

	t.Run("cache hit", func(t *testing.T) {
		c := &mock.Cache{DetailsOut: []byte(`{"ok":true}`), EtagOut: "\"1234\""}
		r := NewHTTPRenderer(c)
		getter := &mock.AssetGetter{}

		out, etag, err := r.RenderGetAsset(ctx, getter, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != string(c.DetailsOut) {
			t.Errorf("raw mismatch: got %s want %s", out, c.DetailsOut)
		}
		if etag != c.EtagOut {
			t.Errorf("etag mismatch: got %s want %s", etag, c.EtagOut)
		}
		if getter.Called {
			t.Error("getter should not be called on cache hit")
		}
		if c.SetCalled || c.SetEtagCalled {
			t.Error("cache should not be set on hit")
		}
	})

	t.Run("cache miss, final state", func(t *testing.T) {
		c := &mock.Cache{}
		resp := &port.GetAssetOutput{
			ID:         id,
			State:      model.AssetStateReady,
			ValidUntil: time.Now().Add(time.Hour),
		}
		getter := &mock.AssetGetter{Out: resp}
		r := NewHTTPRenderer(c)

		out, etag, err := r.RenderGetAsset(ctx, getter, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected, _ := json.Marshal(resp)
		if string(out) != string(expected) {
			t.Errorf("raw mismatch: got %s want %s", out, expected)
		}
		expEtag := fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(expected))
		if etag != expEtag {
			t.Errorf("etag mismatch: got %s want %s", etag, expEtag)
		}
		if !getter.Called {
			t.Error("getter should be called on cache miss")
		}
		if !c.SetCalled || !c.SetEtagCalled {
			t.Error("cache should be written on miss")
		}
		if string(c.SetData) != string(expected) {
			t.Errorf("cache data mismatch: got %s want %s", c.SetData, expected)
		}
		if c.SetEtag != expEtag {
			t.Errorf("cached etag mismatch: got %s want %s", c.SetEtag, expEtag)
		}
	})

	t.Run("cache miss, pending state is not cached", func(t *testing.T) {
		c := &mock.Cache{}
		resp := &port.GetAssetOutput{
			ID:         id,
			State:      model.AssetStateProcessing,
			ValidUntil: time.Now().Add(time.Hour),
		}
		getter := &mock.AssetGetter{Out: resp}
		r := NewHTTPRenderer(c)

		_, _, err := r.RenderGetAsset(ctx, getter, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.SetCalled || c.SetEtagCalled {
			t.Error("a pending asset must not be cached")
		}
	})

	t.Run("getter error", func(t *testing.T) {
		c := &mock.Cache{}
		g := &mock.AssetGetter{Err: errors.New("fail")}
		r := NewHTTPRenderer(c)

		_, _, err := r.RenderGetAsset(ctx, g, id)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !g.Called {
			t.Error("getter should be called when cache miss")
		}
		if c.SetCalled || c.SetEtagCalled {
			t.Error("cache should not be written on error")
		}
	})

	t.Run("cache error", func(t *testing.T) {
		c := &mock.Cache{GetErr: errors.New("boom")}
		resp := &port.GetAssetOutput{
			ID:         id,
			State:      model.AssetStateReady,
			ValidUntil: time.Now().Add(time.Hour),
		}
		g := &mock.AssetGetter{Out: resp}
		r := NewHTTPRenderer(c)

		_, _, err := r.RenderGetAsset(ctx, g, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !g.Called {
			t.Error("getter should be called when cache returns error")
		}
		if !c.SetCalled || !c.SetEtagCalled {
			t.Error("cache should be written when missing due to error")
		}
	})
}
