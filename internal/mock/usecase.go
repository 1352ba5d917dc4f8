package mock

import (
	"context"

	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/model"
	"github.com/picstream/picstream-go/internal/port"
)

// AssetSubmitter implements the submit use case for handler tests.
type AssetSubmitter struct {
	Out    port.SubmitAssetOutput
	Err    error
	Called bool
	In     port.SubmitAssetInput
}

var _ port.AssetSubmitter = (*AssetSubmitter)(nil)

func (m *AssetSubmitter) SubmitAsset(ctx context.Context, in port.SubmitAssetInput) (port.SubmitAssetOutput, error) {
	m.Called = true
	m.In = in
	if m.Err != nil {
		return port.SubmitAssetOutput{}, m.Err
	}
	return m.Out, nil
}

// AssetGetter implements the getter use case for handler and renderer tests.
type AssetGetter struct {
	Out           *port.GetAssetOutput
	RenditionsOut model.Renditions
	Err           error

	Called bool
	ID     assetid.ID
}

var _ port.AssetGetter = (*AssetGetter)(nil)

func (m *AssetGetter) GetAsset(ctx context.Context, id assetid.ID) (*port.GetAssetOutput, error) {
	m.Called = true
	m.ID = id
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Out, nil
}

func (m *AssetGetter) GetRenditions(ctx context.Context, id assetid.ID) (model.Renditions, error) {
	m.Called = true
	m.ID = id
	if m.Err != nil {
		return nil, m.Err
	}
	return m.RenditionsOut, nil
}

// AssetProcessor implements the worker use case for handler tests.
type AssetProcessor struct {
	ProcessErr error
	FailErr    error

	ProcessCalled bool
	FailCalled    bool
	Job           model.ProcessingJob
	FailReason    string
}

var _ port.AssetProcessor = (*AssetProcessor)(nil)

func (m *AssetProcessor) ProcessAsset(ctx context.Context, job model.ProcessingJob) error {
	m.ProcessCalled = true
	m.Job = job
	return m.ProcessErr
}

func (m *AssetProcessor) FailAsset(ctx context.Context, job model.ProcessingJob, reason string) error {
	m.FailCalled = true
	m.Job = job
	m.FailReason = reason
	return m.FailErr
}

// AssetLister implements the timeline use case for handler tests.
type AssetLister struct {
	Out []*model.Asset
	Err error

	Called bool
	Owner  string
	Limit  int
	Offset int
}

var _ port.AssetLister = (*AssetLister)(nil)

func (m *AssetLister) ListLatest(ctx context.Context, limit, offset int) ([]*model.Asset, error) {
	m.Called = true
	m.Limit = limit
	m.Offset = offset
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Out, nil
}

func (m *AssetLister) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*model.Asset, error) {
	m.Called = true
	m.Owner = ownerID
	m.Limit = limit
	m.Offset = offset
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Out, nil
}

// AssetDeleter implements the delete use case for handler tests.
type AssetDeleter struct {
	Err    error
	Called bool
	ID     assetid.ID
}

var _ port.AssetDeleter = (*AssetDeleter)(nil)

func (m *AssetDeleter) DeleteAsset(ctx context.Context, id assetid.ID) error {
	m.Called = true
	m.ID = id
	return m.Err
}

// FollowManager implements the follow use case for handler tests.
type FollowManager struct {
	IsFollowingOut bool
	FollowingOut   []string

	FollowErr      error
	UnfollowErr    error
	IsFollowingErr error
	ListErr        error

	FollowCalled   bool
	UnfollowCalled bool
	Follower       string
	Followee       string
}

var _ port.FollowManager = (*FollowManager)(nil)

func (m *FollowManager) Follow(ctx context.Context, followerID, followeeID string) error {
	m.FollowCalled = true
	m.Follower = followerID
	m.Followee = followeeID
	return m.FollowErr
}

func (m *FollowManager) Unfollow(ctx context.Context, followerID, followeeID string) error {
	m.UnfollowCalled = true
	m.Follower = followerID
	m.Followee = followeeID
	return m.UnfollowErr
}

func (m *FollowManager) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	if m.IsFollowingErr != nil {
		return false, m.IsFollowingErr
	}
	return m.IsFollowingOut, nil
}

func (m *FollowManager) ListFollowing(ctx context.Context, followerID string) ([]string, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.FollowingOut, nil
}

// CompletionBroadcaster captures published events for handler tests.
type CompletionBroadcaster struct {
	Called bool
	Events []model.CompletionEvent
}

var _ port.CompletionBroadcaster = (*CompletionBroadcaster)(nil)

func (m *CompletionBroadcaster) Publish(event model.CompletionEvent) {
	m.Called = true
	m.Events = append(m.Events, event)
}
