package model

import (
	"time"

	"github.com/picstream/picstream-go/internal/assetid"
)

// ProcessingJob is the message published to the job queue at intake. It is a
// self-contained snapshot of the asset, so workers never need a synchronous
// lookup to start working. Immutable once published; redelivery re-sends the
// same logical job with a higher attempt count.
type ProcessingJob struct {
	AssetID    assetid.ID `json:"asset_id" validate:"required,assetid"`
	OwnerID    string     `json:"owner_id" validate:"required"`
	MimeType   string     `json:"mime_type" validate:"required"`
	Comment    string     `json:"comment"`
	UploadedAt time.Time  `json:"uploaded_at"`
	Attempt    int        `json:"attempt" validate:"gte=0"`
}

type CompletionStatus string

const (
	CompletionStatusReady  CompletionStatus = "ready"
	CompletionStatusFailed CompletionStatus = "failed"
)

// CompletionEvent is published once a job reaches a final outcome. Consumers
// must treat duplicates with an identical payload as no-ops.
type CompletionEvent struct {
	AssetID      assetid.ID       `json:"asset_id" validate:"required,assetid"`
	OwnerID      string           `json:"owner_id" validate:"required"`
	Status       CompletionStatus `json:"status" validate:"required,oneof=ready failed"`
	RenditionIDs []string         `json:"rendition_ids,omitempty"`
	Error        string           `json:"error,omitempty"`
}
