package port

import (
	"context"
	"io"
	"time"

	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/model"
)

// AssetSubmitter is the ingestion intake: it validates an upload, persists
// the original, publishes a processing job and returns as soon as the job is
// durably published. It never waits for processing to complete.
type AssetSubmitter interface {
	SubmitAsset(ctx context.Context, in SubmitAssetInput) (SubmitAssetOutput, error)
}
type SubmitAssetInput struct {
	Reader           io.Reader
	DeclaredMimeType string
	OwnerID          string
	Comment          string
}
type SubmitAssetOutput struct {
	ID assetid.ID `json:"id"`
}

// AssetProcessor derives renditions for one job. ProcessAsset errors are
// transient unless they match ErrPermanentFailure; FailAsset records the
// terminal outcome and publishes the failed completion event.
type AssetProcessor interface {
	ProcessAsset(ctx context.Context, job model.ProcessingJob) error
	FailAsset(ctx context.Context, job model.ProcessingJob, reason string) error
}

// AssetGetter retrieves asset information from the repository and storage.
type AssetGetter interface {
	GetAsset(ctx context.Context, id assetid.ID) (*GetAssetOutput, error)
	GetRenditions(ctx context.Context, id assetid.ID) (model.Renditions, error)
}
type RenditionOutput struct {
	URL       string `json:"url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	SizeBytes int64  `json:"size_bytes"`
}
type GetAssetOutput struct {
	ID             assetid.ID        `json:"id"`
	OwnerID        string            `json:"owner_id"`
	MimeType       string            `json:"mime_type"`
	Comment        string            `json:"comment"`
	State          model.AssetState  `json:"state"`
	FailureMessage *string           `json:"failure_message,omitempty"`
	UploadedAt     time.Time         `json:"uploaded_at"`
	ValidUntil     time.Time         `json:"valid_until"`
	URL            string            `json:"url"`
	Renditions     []RenditionOutput `json:"renditions"`
}

// AssetLister exposes the read-only timeline queries used by the rendering
// layer.
type AssetLister interface {
	ListLatest(ctx context.Context, limit, offset int) ([]*model.Asset, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*model.Asset, error)
}

// AssetDeleter removes an asset, its original blob and every rendition. This
// is the explicit out-of-pipeline delete; the pipeline itself never deletes
// state.
type AssetDeleter interface {
	DeleteAsset(ctx context.Context, id assetid.ID) error
}

// FollowManager maintains the follow graph feeding broadcaster interests.
type FollowManager interface {
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
	ListFollowing(ctx context.Context, followerID string) ([]string, error)
}

// RenderedRendition is one derived image produced by an ImageRenderer.
type RenderedRendition struct {
	Width  int
	Height int
	Data   []byte
}

// ImageRenderer decodes an original once and produces a rendition for every
// target width that does not upscale the source.
type ImageRenderer interface {
	Renditions(mimeType string, src io.Reader, widths []int) ([]RenderedRendition, error)
}

// CompletionBroadcaster fans a completion event out to currently connected
// clients. Delivery is best-effort; durability stops at the job queue.
type CompletionBroadcaster interface {
	Publish(event model.CompletionEvent)
}
