package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"

	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/port"
)

// HTTPRenderer mediates between HTTP handlers and the asset getter use case.
// It provides caching capabilities and returns both the JSON representation of
// the result as well as an ETag value derived from it.
type HTTPRenderer interface {
	// RenderGetAsset returns the cached JSON result and its ETag if available or
	// executes the underlying use case and caches the output otherwise.
	RenderGetAsset(ctx context.Context, getter port.AssetGetter, id assetid.ID) ([]byte, string, error)
}

type httpRenderer struct {
	cache port.Cache
}

// compile-time check: *httpRenderer must satisfy HTTPRenderer
var _ HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a new HTTPRenderer implementation.
func NewHTTPRenderer(cache port.Cache) HTTPRenderer {
	return &httpRenderer{cache: cache}
}

// RenderGetAsset fetches asset details either from cache or from the wrapped
// use case. It returns the JSON encoded output and a quoted ETag string.
func (r *httpRenderer) RenderGetAsset(ctx context.Context, getter port.AssetGetter, id assetid.ID) ([]byte, string, error) {
	raw, err := r.cache.GetAssetDetails(ctx, id)
	etag, errEtag := r.cache.GetEtagAssetDetails(ctx, id)
	if err == nil && errEtag == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	out, err := getter.GetAsset(ctx, id)
	if err != nil {
		return nil, "", err
	}

	raw, err = json.Marshal(out)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag = fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))

	// Only final states are worth caching: a pending asset flips soon and a
	// stale "processing" entry would outlive the flip.
	if out.State.Final() {
		r.cache.SetAssetDetails(ctx, id, raw, out.ValidUntil)
		r.cache.SetEtagAssetDetails(ctx, id, etag, out.ValidUntil)
	}

	return raw, etag, nil
}
