package asset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/model"
	"github.com/picstream/picstream-go/internal/port"
)

type getterSrv struct {
	repo   port.AssetRepository
	strg   port.Storage
	bucket string
}

// compile-time check: *getterSrv must satisfy port.AssetGetter
var _ port.AssetGetter = (*getterSrv)(nil)

func NewAssetGetter(repo port.AssetRepository, strg port.Storage, bucket string) port.AssetGetter {
	return &getterSrv{repo: repo, strg: strg, bucket: bucket}
}

// GetAsset returns the asset's state and presigned download links. The state
// always reflects the row, so a caller polling right after submit sees
// "uploaded", then "processing", then a final state.
func (s *getterSrv) GetAsset(ctx context.Context, id assetid.ID) (*port.GetAssetOutput, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	validUntil := time.Now().UTC().Add(DownloadURLTTL)

	url, err := s.strg.GeneratePresignedDownloadURL(ctx, s.bucket, a.ObjectKey, DownloadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("presign original %q: %w", a.ObjectKey, err)
	}

	out := &port.GetAssetOutput{
		ID:             a.ID,
		OwnerID:        a.OwnerID,
		MimeType:       a.MimeType,
		Comment:        a.Comment,
		State:          a.State,
		FailureMessage: a.FailureMessage,
		UploadedAt:     a.UploadedAt,
		ValidUntil:     validUntil,
		URL:            url,
		Renditions:     make([]port.RenditionOutput, 0, len(a.Renditions)),
	}

	for _, r := range a.Renditions {
		rURL, err := s.strg.GeneratePresignedDownloadURL(ctx, s.bucket, r.ObjectKey, DownloadURLTTL)
		if err != nil {
			return nil, fmt.Errorf("presign rendition %q: %w", r.ObjectKey, err)
		}
		out.Renditions = append(out.Renditions, port.RenditionOutput{
			URL:       rURL,
			Width:     r.Width,
			Height:    r.Height,
			SizeBytes: r.SizeBytes,
		})
	}

	return out, nil
}

// GetRenditions returns the stored rendition list; empty until the asset is
// ready.
func (s *getterSrv) GetRenditions(ctx context.Context, id assetid.ID) (model.Renditions, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a.Renditions, nil
}
