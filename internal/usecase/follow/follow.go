package follow

import (
	"context"
	"errors"
	"fmt"

	"github.com/picstream/picstream-go/internal/logger"
	"github.com/picstream/picstream-go/internal/port"
)

// ErrSelfFollow is returned when an owner tries to follow themselves.
var ErrSelfFollow = errors.New("cannot follow yourself")

// ErrEmptyOwner is returned when either side of the edge is blank.
var ErrEmptyOwner = errors.New("owner id is empty")

type managerSrv struct {
	repo port.FollowRepository
}

// compile-time check: *managerSrv must satisfy port.FollowManager
var _ port.FollowManager = (*managerSrv)(nil)

// NewManager constructs the follow graph use case.
func NewManager(repo port.FollowRepository) port.FollowManager {
	return &managerSrv{repo: repo}
}

func (s *managerSrv) Follow(ctx context.Context, followerID, followeeID string) error {
	if err := checkEdge(followerID, followeeID); err != nil {
		return err
	}
	if err := s.repo.Follow(ctx, followerID, followeeID); err != nil {
		return fmt.Errorf("follow %q -> %q: %w", followerID, followeeID, err)
	}
	logger.Infof(ctx, "%q now follows %q", followerID, followeeID)
	return nil
}

func (s *managerSrv) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if err := checkEdge(followerID, followeeID); err != nil {
		return err
	}
	if err := s.repo.Unfollow(ctx, followerID, followeeID); err != nil {
		return fmt.Errorf("unfollow %q -> %q: %w", followerID, followeeID, err)
	}
	logger.Infof(ctx, "%q unfollowed %q", followerID, followeeID)
	return nil
}

func (s *managerSrv) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	if followerID == "" || followeeID == "" {
		return false, ErrEmptyOwner
	}
	return s.repo.IsFollowing(ctx, followerID, followeeID)
}

func (s *managerSrv) ListFollowing(ctx context.Context, followerID string) ([]string, error) {
	if followerID == "" {
		return nil, ErrEmptyOwner
	}
	return s.repo.ListFollowing(ctx, followerID)
}

func checkEdge(followerID, followeeID string) error {
	if followerID == "" || followeeID == "" {
		return ErrEmptyOwner
	}
	if followerID == followeeID {
		return ErrSelfFollow
	}
	return nil
}
