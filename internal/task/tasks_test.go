package task

import (
	"testing"

	"github.com/hibiken/asynq"

	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/model"
)

func TestProcessAssetTask_RoundTrip(t *testing.T) {
	id := assetid.New()
	job := model.ProcessingJob{
		AssetID:  id,
		OwnerID:  "alice",
		MimeType: "image/png",
		Comment:  "hello",
		Attempt:  2,
	}

	task, err := NewProcessAssetTask(job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Type() != TypeProcessAsset {
		t.Errorf("type = %q; want %q", task.Type(), TypeProcessAsset)
	}

	got, err := ParseProcessAssetPayload(task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AssetID != id || got.OwnerID != "alice" || got.Attempt != 2 {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestAssetCompletedTask_RoundTrip(t *testing.T) {
	id := assetid.New()
	event := model.CompletionEvent{
		AssetID:      id,
		OwnerID:      "alice",
		Status:       model.CompletionStatusReady,
		RenditionIDs: []string{"renditions/a", "renditions/b"},
	}

	task, err := NewAssetCompletedTask(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Type() != TypeAssetCompleted {
		t.Errorf("type = %q; want %q", task.Type(), TypeAssetCompleted)
	}

	got, err := ParseAssetCompletedPayload(task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AssetID != id || got.Status != model.CompletionStatusReady || len(got.RenditionIDs) != 2 {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestParseProcessAssetPayload_Garbage(t *testing.T) {
	bad := asynq.NewTask(TypeProcessAsset, []byte("{not json"))
	if _, err := ParseProcessAssetPayload(bad); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestParseProcessAssetPayload_FailsValidation(t *testing.T) {
	bad := asynq.NewTask(TypeProcessAsset, []byte(`{"asset_id":"short","owner_id":"alice","mime_type":"image/png"}`))
	if _, err := ParseProcessAssetPayload(bad); err == nil {
		t.Fatal("a malformed asset id must not parse")
	}
}

func TestParseAssetCompletedPayload_FailsValidation(t *testing.T) {
	id := assetid.New()
	bad := asynq.NewTask(TypeAssetCompleted, []byte(`{"asset_id":"`+id.String()+`","owner_id":"alice","status":"half-done"}`))
	if _, err := ParseAssetCompletedPayload(bad); err == nil {
		t.Fatal("an unknown status must not parse")
	}
}
