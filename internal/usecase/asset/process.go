package asset

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/picstream/picstream-go/internal/logger"
	"github.com/picstream/picstream-go/internal/model"
	"github.com/picstream/picstream-go/internal/port"
)

type processorSrv struct {
	repo       port.AssetRepository
	renderer   port.ImageRenderer
	strg       port.Storage
	dispatcher port.JobDispatcher
	cache      port.Cache
	bucket     string
	widths     []int
}

// compile-time check: *processorSrv must satisfy port.AssetProcessor
var _ port.AssetProcessor = (*processorSrv)(nil)

// NewProcessor constructs the worker-side use case. widths are the rendition
// target widths; upscaling widths are skipped per original.
func NewProcessor(repo port.AssetRepository, renderer port.ImageRenderer, strg port.Storage, dispatcher port.JobDispatcher, cache port.Cache, bucket string, widths []int) port.AssetProcessor {
	return &processorSrv{repo: repo, renderer: renderer, strg: strg, dispatcher: dispatcher, cache: cache, bucket: bucket, widths: widths}
}

// ProcessAsset derives the renditions for one job. Every error it returns is
// transient (safe to redeliver) unless it wraps ErrPermanentFailure.
//
// Ordering matters: renditions are written first, the completion event is
// published second, and the row is flipped to ready last. A crash between any
// two steps leaves the job unacknowledged; the redelivered attempt overwrites
// the same deterministic keys and at worst re-publishes an identical event,
// which consumers treat as a no-op.
func (s *processorSrv) ProcessAsset(ctx context.Context, job model.ProcessingJob) error {
	a, err := s.repo.GetByID(ctx, job.AssetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: asset #%s does not exist", ErrPermanentFailure, job.AssetID)
		}
		return fmt.Errorf("fetch asset #%s: %w", job.AssetID, err)
	}
	if a.State.Final() {
		// Duplicate delivery after a final outcome: acknowledge and move on.
		logger.Infof(ctx, "asset #%s already %s, skipping redelivered job", a.ID, a.State)
		return nil
	}

	if a.State != model.AssetStateProcessing {
		a.State = model.AssetStateProcessing
		if err := s.repo.Update(ctx, a); err != nil {
			return fmt.Errorf("mark asset #%s as processing: %w", a.ID, err)
		}
	}

	original, err := s.strg.GetFile(ctx, s.bucket, a.ObjectKey)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return fmt.Errorf("%w: original %q is gone", ErrPermanentFailure, a.ObjectKey)
		}
		return fmt.Errorf("fetch original %q: %w", a.ObjectKey, err)
	}
	defer func(original io.ReadSeekCloser) { _ = original.Close() }(original)

	rendered, err := s.renderer.Renditions(a.MimeType, original, s.widths)
	if err != nil {
		// Content that passed the allow-list but cannot be decoded will not
		// decode on the next attempt either.
		return fmt.Errorf("%w: render asset #%s: %v", ErrPermanentFailure, a.ID, err)
	}

	renditions := make(model.Renditions, 0, len(rendered))
	for _, r := range rendered {
		key := RenditionKey(a.ID, r.Width)
		if err := s.strg.SaveFile(ctx, s.bucket, key, bytes.NewReader(r.Data), int64(len(r.Data)), map[string]string{"Content-Type": "image/webp"}); err != nil {
			return fmt.Errorf("save rendition %q: %w", key, err)
		}
		renditions = append(renditions, model.Rendition{
			ObjectKey: key,
			Width:     r.Width,
			Height:    r.Height,
			SizeBytes: int64(len(r.Data)),
		})
	}

	event := model.CompletionEvent{
		AssetID:      a.ID,
		OwnerID:      a.OwnerID,
		Status:       model.CompletionStatusReady,
		RenditionIDs: renditions.ObjectKeys(),
	}
	if err := s.dispatcher.EnqueueAssetCompleted(ctx, event); err != nil {
		return fmt.Errorf("publish completion event for asset #%s: %w", a.ID, err)
	}

	a.State = model.AssetStateReady
	a.Renditions = renditions
	a.FailureMessage = nil
	if err := s.repo.Update(ctx, a); err != nil {
		return fmt.Errorf("mark asset #%s as ready: %w", a.ID, err)
	}

	s.invalidateCache(ctx, a)

	logger.Infof(ctx, "asset #%s is ready with %d renditions (attempt %d)", a.ID, len(renditions), job.Attempt)
	return nil
}

// FailAsset records the terminal failed outcome: it publishes the failed
// completion event, then flips the row to failed. Errors it returns are
// transient; the handler keeps the job alive until the outcome is durable.
func (s *processorSrv) FailAsset(ctx context.Context, job model.ProcessingJob, reason string) error {
	event := model.CompletionEvent{
		AssetID: job.AssetID,
		OwnerID: job.OwnerID,
		Status:  model.CompletionStatusFailed,
		Error:   reason,
	}
	if err := s.dispatcher.EnqueueAssetCompleted(ctx, event); err != nil {
		return fmt.Errorf("publish failed event for asset #%s: %w", job.AssetID, err)
	}

	a, err := s.repo.GetByID(ctx, job.AssetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Nothing to flip; the event alone records the outcome.
			return nil
		}
		return fmt.Errorf("fetch asset #%s: %w", job.AssetID, err)
	}
	if a.State.Final() {
		return nil
	}

	a.State = model.AssetStateFailed
	a.FailureMessage = &reason
	if err := s.repo.Update(ctx, a); err != nil {
		return fmt.Errorf("mark asset #%s as failed: %w", a.ID, err)
	}

	s.invalidateCache(ctx, a)

	logger.Warnf(ctx, "asset #%s failed permanently: %s", a.ID, reason)
	return nil
}

func (s *processorSrv) invalidateCache(ctx context.Context, a *model.Asset) {
	if err := s.cache.DeleteAssetDetails(ctx, a.ID); err != nil {
		logger.Warnf(ctx, "failed deleting cache for asset #%s: %v", a.ID, err)
	}
	if err := s.cache.DeleteEtagAssetDetails(ctx, a.ID); err != nil {
		logger.Warnf(ctx, "failed deleting etag cache for asset #%s: %v", a.ID, err)
	}
}
