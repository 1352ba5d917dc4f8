package asset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/logger"
	"github.com/picstream/picstream-go/internal/port"
)

type deleterSrv struct {
	repo   port.AssetRepository
	cache  port.Cache
	strg   port.Storage
	bucket string
}

// compile-time check: *deleterSrv must satisfy port.AssetDeleter
var _ port.AssetDeleter = (*deleterSrv)(nil)

func NewAssetDeleter(repo port.AssetRepository, cache port.Cache, strg port.Storage, bucket string) port.AssetDeleter {
	return &deleterSrv{repo: repo, cache: cache, strg: strg, bucket: bucket}
}

// DeleteAsset removes the original, every rendition and the database row.
// This is the only way state ever leaves the system; the pipeline itself
// never deletes anything.
func (s *deleterSrv) DeleteAsset(ctx context.Context, id assetid.ID) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := s.strg.RemoveFile(ctx, s.bucket, a.ObjectKey); err != nil && !errors.Is(err, ErrObjectNotFound) {
		return fmt.Errorf("remove original %q: %w", a.ObjectKey, err)
	}
	for _, key := range a.Renditions.ObjectKeys() {
		if err := s.strg.RemoveFile(ctx, s.bucket, key); err != nil && !errors.Is(err, ErrObjectNotFound) {
			return fmt.Errorf("remove rendition %q: %w", key, err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete asset record #%s: %w", id, err)
	}

	if err := s.cache.DeleteAssetDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting cache for asset #%s: %v", id, err)
	}
	if err := s.cache.DeleteEtagAssetDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting etag cache for asset #%s: %v", id, err)
	}

	logger.Infof(ctx, "deleted asset #%s and %d renditions", id, len(a.Renditions))
	return nil
}
