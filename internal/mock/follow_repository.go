package mock

import (
	"context"

	"github.com/picstream/picstream-go/internal/port"
)

// FollowRepository implements the follow graph for tests.
type FollowRepository struct {
	FollowingOut   []string
	IsFollowingOut bool

	FollowErr      error
	UnfollowErr    error
	IsFollowingErr error
	ListErr        error

	FollowCalled      bool
	UnfollowCalled    bool
	IsFollowingCalled bool
	ListCalled        bool

	Follower string
	Followee string
}

// compile-time check: *FollowRepository must satisfy port.FollowRepository
var _ port.FollowRepository = (*FollowRepository)(nil)

func (m *FollowRepository) Follow(ctx context.Context, followerID, followeeID string) error {
	m.FollowCalled = true
	m.Follower = followerID
	m.Followee = followeeID
	return m.FollowErr
}

func (m *FollowRepository) Unfollow(ctx context.Context, followerID, followeeID string) error {
	m.UnfollowCalled = true
	m.Follower = followerID
	m.Followee = followeeID
	return m.UnfollowErr
}

func (m *FollowRepository) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	m.IsFollowingCalled = true
	m.Follower = followerID
	m.Followee = followeeID
	if m.IsFollowingErr != nil {
		return false, m.IsFollowingErr
	}
	return m.IsFollowingOut, nil
}

func (m *FollowRepository) ListFollowing(ctx context.Context, followerID string) ([]string, error) {
	m.ListCalled = true
	m.Follower = followerID
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.FollowingOut, nil
}
