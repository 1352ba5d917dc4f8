package port

import (
	"context"
	"time"

	"github.com/picstream/picstream-go/internal/assetid"
)

// Cache provides caching capabilities for asset retrieval.
type Cache interface {
	GetAssetDetails(ctx context.Context, id assetid.ID) ([]byte, error)
	GetEtagAssetDetails(ctx context.Context, id assetid.ID) (string, error)
	SetAssetDetails(ctx context.Context, id assetid.ID, data []byte, validUntil time.Time)
	SetEtagAssetDetails(ctx context.Context, id assetid.ID, etag string, validUntil time.Time)
	DeleteAssetDetails(ctx context.Context, id assetid.ID) error
	DeleteEtagAssetDetails(ctx context.Context, id assetid.ID) error
}
