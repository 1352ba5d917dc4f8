package asset

import (
	"context"

	"github.com/picstream/picstream-go/internal/model"
	"github.com/picstream/picstream-go/internal/port"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

type listerSrv struct {
	repo port.AssetRepository
}

// compile-time check: *listerSrv must satisfy port.AssetLister
var _ port.AssetLister = (*listerSrv)(nil)

func NewAssetLister(repo port.AssetRepository) port.AssetLister {
	return &listerSrv{repo: repo}
}

func (s *listerSrv) ListLatest(ctx context.Context, limit, offset int) ([]*model.Asset, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.ListLatest(ctx, limit, offset)
}

func (s *listerSrv) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*model.Asset, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
