package port

import (
	"context"

	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/model"
)

// AssetRepository defines persistence operations for assets.
type AssetRepository interface {
	Create(ctx context.Context, asset *model.Asset) error
	Update(ctx context.Context, asset *model.Asset) error
	GetByID(ctx context.Context, id assetid.ID) (*model.Asset, error)
	Delete(ctx context.Context, id assetid.ID) error
	ListLatest(ctx context.Context, limit, offset int) ([]*model.Asset, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*model.Asset, error)
}

// FollowRepository is the minimal social-graph contract the pipeline needs:
// enough to know which owners a connected client should be notified about.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
	ListFollowing(ctx context.Context, followerID string) ([]string, error)
}
