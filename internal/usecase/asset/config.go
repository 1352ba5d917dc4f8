package asset

import (
	"fmt"
	"time"

	"github.com/picstream/picstream-go/internal/assetid"
)

const (
	MinFileSize = 128              // bytes; anything smaller cannot be a real image
	MaxFileSize = 10 * 1024 * 1024 // 10 MB
)

// DownloadURLTTL bounds how long presigned download links stay valid.
const DownloadURLTTL = 1 * time.Hour

func IsImage(mimeType string) bool {
	return mimeType == "image/png" || mimeType == "image/jpeg" || mimeType == "image/webp"
}

// OriginalKey is the content-store key of an asset's original blob.
func OriginalKey(id assetid.ID) string {
	return fmt.Sprintf("originals/%s", id)
}

// RenditionKey is the deterministic content-store key of one rendition.
// Deterministic naming is what makes re-processing after redelivery an
// idempotent overwrite instead of a duplicate artifact.
func RenditionKey(id assetid.ID, width int) string {
	return fmt.Sprintf("renditions/%s/%s_%d.webp", id, id, width)
}
