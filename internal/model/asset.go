package model

import (
	"time"

	"github.com/picstream/picstream-go/internal/assetid"
)

type AssetState string

const (
	AssetStateUploaded   AssetState = "uploaded"
	AssetStateProcessing AssetState = "processing"
	AssetStateReady      AssetState = "ready"
	AssetStateFailed     AssetState = "failed"
)

// Valid reports whether s is one of the known lifecycle states.
func (s AssetState) Valid() bool {
	switch s {
	case AssetStateUploaded, AssetStateProcessing, AssetStateReady, AssetStateFailed:
		return true
	}
	return false
}

// Final reports whether s is a terminal state: no further transition is
// allowed out of it.
func (s AssetState) Final() bool {
	return s == AssetStateReady || s == AssetStateFailed
}

// Asset is one uploaded image and its metadata. The original blob lives in
// the content store under ObjectKey and is immutable once stored.
type Asset struct {
	ID             assetid.ID `json:"id"`
	OwnerID        string     `json:"owner_id"`
	ObjectKey      string     `json:"object_key"`
	MimeType       string     `json:"mime_type"`
	Comment        string     `json:"comment"`
	State          AssetState `json:"state"`
	FailureMessage *string    `json:"failure_message,omitempty"`
	Renditions     Renditions `json:"renditions"`
	UploadedAt     time.Time  `json:"uploaded_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
