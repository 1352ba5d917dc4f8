package mock

import (
	"context"
	"io"

	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/port"
)

// ImageRenderer implements the rendition renderer for tests.
type ImageRenderer struct {
	Out []port.RenderedRendition
	Err error

	Called   bool
	MimeType string
	Widths   []int
}

// compile-time check: *ImageRenderer must satisfy port.ImageRenderer
var _ port.ImageRenderer = (*ImageRenderer)(nil)

func (m *ImageRenderer) Renditions(mimeType string, src io.Reader, widths []int) ([]port.RenderedRendition, error) {
	m.Called = true
	m.MimeType = mimeType
	m.Widths = widths
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Out, nil
}

// HTTPRenderer implements renderer.HTTPRenderer for handler tests.
type HTTPRenderer struct {
	RawOut  []byte
	EtagOut string
	Err     error

	Called bool
	ID     assetid.ID
}

func (m *HTTPRenderer) RenderGetAsset(ctx context.Context, getter port.AssetGetter, id assetid.ID) ([]byte, string, error) {
	m.Called = true
	m.ID = id
	return m.RawOut, m.EtagOut, m.Err
}
