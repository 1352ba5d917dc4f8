package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	assetSvc "github.com/picstream/picstream-go/internal/usecase/asset"
)

func gradient(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

// GeneratePNG encodes a gradient image to PNG, padded past the intake's
// minimum file size. Decoders ignore the trailing bytes.
func GeneratePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, gradient(width, height)); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	if int64(buf.Len()) < assetSvc.MinFileSize {
		buf.Write(make([]byte, assetSvc.MinFileSize-int64(buf.Len())))
	}
	return buf.Bytes()
}

// GenerateJPEG encodes a gradient image to JPEG, padded past the intake's
// minimum file size.
func GenerateJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, gradient(width, height), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg encode failed: %v", err)
	}
	if int64(buf.Len()) < assetSvc.MinFileSize {
		buf.Write(make([]byte, assetSvc.MinFileSize-int64(buf.Len())))
	}
	return buf.Bytes()
}
