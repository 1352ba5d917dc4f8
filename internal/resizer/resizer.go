package resizer

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"sort"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/picstream/picstream-go/internal/port"
)

const webpQuality = 80

type Resizer struct{}

// compile-time check: *Resizer must satisfy port.ImageRenderer
var _ port.ImageRenderer = (*Resizer)(nil)

func NewResizer() *Resizer {
	log.Println("initialising resizer...")
	return &Resizer{}
}

// Renditions decodes the source once and produces a lossy WebP rendition for
// every target width, smallest first. Widths wider than the source are
// skipped; an image is never upscaled. Aspect ratio is preserved.
func (rz *Resizer) Renditions(mimeType string, src io.Reader, widths []int) ([]port.RenderedRendition, error) {
	switch mimeType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return nil, fmt.Errorf("resizer: unsupported mime type %q", mimeType)
	}

	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("resizer: failed to decode image: %w", err)
	}
	srcWidth := img.Bounds().Dx()

	sorted := append([]int(nil), widths...)
	sort.Ints(sorted)

	out := make([]port.RenderedRendition, 0, len(sorted))
	for _, w := range sorted {
		if w <= 0 || w > srcWidth {
			continue
		}

		resized := imaging.Resize(img, w, 0, imaging.Lanczos)

		buf := &bytes.Buffer{}
		if err := webp.Encode(buf, resized, &webp.Options{Quality: webpQuality}); err != nil {
			return nil, fmt.Errorf("resizer: failed to encode WebP at width %d: %w", w, err)
		}
		out = append(out, port.RenderedRendition{
			Width:  w,
			Height: resized.Bounds().Dy(),
			Data:   buf.Bytes(),
		})
	}
	return out, nil
}
