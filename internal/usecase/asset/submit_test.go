package asset

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/mock"
	"github.com/picstream/picstream-go/internal/model"
	"github.com/picstream/picstream-go/internal/port"
)

var allowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

// helper: generate a gradient PNG big enough to pass the minimum size check
func generatePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for x := 0; x < 100; x++ {
		for y := 0; y < 100; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("could not encode PNG: %v", err)
	}
	if buf.Len() < MinFileSize {
		t.Fatalf("test PNG is %d bytes, below MinFileSize", buf.Len())
	}
	return buf.Bytes()
}

func newSubmitter(repo *mock.AssetRepository, strg *mock.Storage, d *mock.Dispatcher) port.AssetSubmitter {
	return NewSubmitter(repo, strg, d, "picstream", allowedTypes)
}

func TestSubmitAsset_Success(t *testing.T) {
	repo := &mock.AssetRepository{}
	strg := &mock.Storage{}
	d := &mock.Dispatcher{}
	svc := newSubmitter(repo, strg, d)

	data := generatePNG(t)
	out, err := svc.SubmitAsset(context.Background(), port.SubmitAssetInput{
		Reader:           bytes.NewReader(data),
		DeclaredMimeType: "image/png",
		OwnerID:          "alice",
		Comment:          "hello",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !assetid.IsValid(out.ID.String()) {
		t.Errorf("expected a fixed-length hex id, got %q", out.ID)
	}
	if repo.Created == nil {
		t.Fatal("expected repo.Create to be called")
	}
	if repo.Created.State != model.AssetStateUploaded {
		t.Errorf("created state = %q; want %q", repo.Created.State, model.AssetStateUploaded)
	}
	if repo.Created.OwnerID != "alice" {
		t.Errorf("owner = %q; want %q", repo.Created.OwnerID, "alice")
	}
	if repo.Created.MimeType != "image/png" {
		t.Errorf("mime type = %q; want sniffed %q", repo.Created.MimeType, "image/png")
	}

	wantKey := OriginalKey(out.ID)
	if len(strg.SavedKeys) != 1 || strg.SavedKeys[0] != wantKey {
		t.Errorf("saved keys = %v; want [%s]", strg.SavedKeys, wantKey)
	}
	if !bytes.Equal(strg.SavedData[wantKey], data) {
		t.Error("stored original does not match uploaded bytes")
	}

	if len(d.ProcessJobs) != 1 {
		t.Fatalf("expected one published job, got %d", len(d.ProcessJobs))
	}
	job := d.ProcessJobs[0]
	if job.AssetID != out.ID || job.OwnerID != "alice" || job.MimeType != "image/png" || job.Attempt != 0 {
		t.Errorf("unexpected job payload: %+v", job)
	}
}

func TestSubmitAsset_UniqueIDs(t *testing.T) {
	svc := newSubmitter(&mock.AssetRepository{}, &mock.Storage{}, &mock.Dispatcher{})

	data := generatePNG(t)
	seen := make(map[assetid.ID]struct{})
	for i := 0; i < 20; i++ {
		out, err := svc.SubmitAsset(context.Background(), port.SubmitAssetInput{
			Reader:  bytes.NewReader(data),
			OwnerID: "alice",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, dup := seen[out.ID]; dup {
			t.Fatalf("id %q issued twice", out.ID)
		}
		seen[out.ID] = struct{}{}
	}
}

func TestSubmitAsset_UnsupportedType(t *testing.T) {
	repo := &mock.AssetRepository{}
	strg := &mock.Storage{}
	d := &mock.Dispatcher{}
	svc := newSubmitter(repo, strg, d)

	// A text file misnamed as a JPEG must be rejected on its sniffed type.
	text := strings.Repeat("definitely not an image\n", 20)
	_, err := svc.SubmitAsset(context.Background(), port.SubmitAssetInput{
		Reader:           strings.NewReader(text),
		DeclaredMimeType: "image/jpeg",
		OwnerID:          "alice",
	})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}

	// Rejection happens before any durable write.
	if repo.CreateCalled {
		t.Error("repo.Create should not be called for a rejected upload")
	}
	if strg.SaveCalled {
		t.Error("storage should be untouched for a rejected upload")
	}
	if d.ProcessCalled {
		t.Error("no job should be published for a rejected upload")
	}
}

func TestSubmitAsset_TooSmall(t *testing.T) {
	svc := newSubmitter(&mock.AssetRepository{}, &mock.Storage{}, &mock.Dispatcher{})

	_, err := svc.SubmitAsset(context.Background(), port.SubmitAssetInput{
		Reader:  strings.NewReader("tiny"),
		OwnerID: "alice",
	})
	if !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestSubmitAsset_StorageFailure(t *testing.T) {
	repo := &mock.AssetRepository{}
	strg := &mock.Storage{SaveErr: errors.New("minio down")}
	svc := newSubmitter(repo, strg, &mock.Dispatcher{})

	_, err := svc.SubmitAsset(context.Background(), port.SubmitAssetInput{
		Reader:  bytes.NewReader(generatePNG(t)),
		OwnerID: "alice",
	})
	if !errors.Is(err, ErrStorageFailure) {
		t.Fatalf("expected ErrStorageFailure, got %v", err)
	}
	if len(repo.Updated) == 0 || repo.Updated[len(repo.Updated)-1].State != model.AssetStateFailed {
		t.Error("expected the asset record to be marked failed")
	}
}

func TestSubmitAsset_PublishFailure(t *testing.T) {
	repo := &mock.AssetRepository{}
	strg := &mock.Storage{}
	d := &mock.Dispatcher{ProcessErr: errors.New("broker down")}
	svc := newSubmitter(repo, strg, d)

	_, err := svc.SubmitAsset(context.Background(), port.SubmitAssetInput{
		Reader:  bytes.NewReader(generatePNG(t)),
		OwnerID: "alice",
	})
	if !errors.Is(err, ErrPublishFailed) {
		t.Fatalf("expected ErrPublishFailed, got %v", err)
	}
	// The blob was stored before publishing failed: the orphan case.
	if !strg.SaveCalled {
		t.Error("expected the original to have been stored before publishing")
	}
	if len(repo.Updated) == 0 || repo.Updated[len(repo.Updated)-1].State != model.AssetStateFailed {
		t.Error("expected the asset record to be marked failed")
	}
}

func TestSubmitAsset_CommentSanitised(t *testing.T) {
	repo := &mock.AssetRepository{}
	svc := newSubmitter(repo, &mock.Storage{}, &mock.Dispatcher{})

	_, err := svc.SubmitAsset(context.Background(), port.SubmitAssetInput{
		Reader:  bytes.NewReader(generatePNG(t)),
		OwnerID: "alice",
		Comment: "<script>alert(1)</script>hello",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Created.Comment != "hello" {
		t.Errorf("comment = %q; want %q", repo.Created.Comment, "hello")
	}
}
