package asset

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/logger"
	"github.com/picstream/picstream-go/internal/model"
	"github.com/picstream/picstream-go/internal/port"
)

type submitterSrv struct {
	repo       port.AssetRepository
	strg       port.Storage
	dispatcher port.JobDispatcher
	bucket     string
	allowed    map[string]bool
}

// compile-time check: *submitterSrv must satisfy port.AssetSubmitter
var _ port.AssetSubmitter = (*submitterSrv)(nil)

// NewSubmitter constructs the ingestion intake. allowedTypes is the MIME
// allow-list; anything outside it is rejected before a single durable write.
func NewSubmitter(repo port.AssetRepository, strg port.Storage, dispatcher port.JobDispatcher, bucket string, allowedTypes []string) port.AssetSubmitter {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = true
	}
	return &submitterSrv{repo: repo, strg: strg, dispatcher: dispatcher, bucket: bucket, allowed: allowed}
}

// SubmitAsset validates the upload, persists the original and publishes a
// processing job. It returns as soon as the job is durably published; the
// caller only ever learns "accepted", never "processed".
func (s *submitterSrv) SubmitAsset(ctx context.Context, in port.SubmitAssetInput) (port.SubmitAssetOutput, error) {
	tmp, err := os.CreateTemp("", "picstream_upload_*")
	if err != nil {
		return port.SubmitAssetOutput{}, fmt.Errorf("%w: create temp file: %v", ErrStorageFailure, err)
	}
	// The spool file is removed on every exit path, accepted or not.
	defer func() {
		if err := tmp.Close(); err != nil {
			logger.Warnf(ctx, "failed to close temp file %q: %v", tmp.Name(), err)
		}
		if err := os.Remove(tmp.Name()); err != nil {
			logger.Warnf(ctx, "failed to remove temp file %q: %v", tmp.Name(), err)
		}
	}()

	size, err := io.Copy(tmp, io.LimitReader(in.Reader, MaxFileSize+1))
	if err != nil {
		return port.SubmitAssetOutput{}, fmt.Errorf("%w: spool upload: %v", ErrStorageFailure, err)
	}
	if size < MinFileSize {
		return port.SubmitAssetOutput{}, fmt.Errorf("%w: %d bytes is below the %d byte minimum", ErrInvalidSize, size, MinFileSize)
	}
	if size > MaxFileSize {
		return port.SubmitAssetOutput{}, fmt.Errorf("%w: upload exceeds the %d byte maximum", ErrInvalidSize, MaxFileSize)
	}

	// Sniff the real content type; the declared one is advisory only. A text
	// file renamed to .jpg must not get past this point.
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return port.SubmitAssetOutput{}, fmt.Errorf("%w: rewind temp file: %v", ErrStorageFailure, err)
	}
	mtype, err := mimetype.DetectReader(tmp)
	if err != nil {
		return port.SubmitAssetOutput{}, fmt.Errorf("%w: sniff content type: %v", ErrStorageFailure, err)
	}
	sniffed := mtype.String()
	if !s.allowed[sniffed] {
		logger.Infof(ctx, "rejected upload from %q: sniffed type %q (declared %q) not allowed", in.OwnerID, sniffed, in.DeclaredMimeType)
		return port.SubmitAssetOutput{}, fmt.Errorf("%w: %s", ErrUnsupportedType, sniffed)
	}

	id := assetid.New()
	now := time.Now().UTC()
	a := &model.Asset{
		ID:         id,
		OwnerID:    in.OwnerID,
		ObjectKey:  OriginalKey(id),
		MimeType:   sniffed,
		Comment:    SanitiseComment(in.Comment),
		State:      model.AssetStateUploaded,
		UploadedAt: now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return port.SubmitAssetOutput{}, fmt.Errorf("%w: create asset record: %v", ErrStorageFailure, err)
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return port.SubmitAssetOutput{}, fmt.Errorf("%w: rewind temp file: %v", ErrStorageFailure, err)
	}
	if err := s.strg.SaveFile(ctx, s.bucket, a.ObjectKey, tmp, size, map[string]string{"Content-Type": sniffed}); err != nil {
		s.markFailed(ctx, a, fmt.Sprintf("storing original failed: %v", err))
		return port.SubmitAssetOutput{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	job := model.ProcessingJob{
		AssetID:    id,
		OwnerID:    in.OwnerID,
		MimeType:   sniffed,
		Comment:    a.Comment,
		UploadedAt: now,
		Attempt:    0,
	}
	if err := s.dispatcher.EnqueueProcessAsset(ctx, job); err != nil {
		// The original is now orphaned in the store; a later sweep reclaims
		// it, so this must stay observable.
		logger.Errorf(ctx, "publish failed for asset #%s, original %q is orphaned: %v", id, a.ObjectKey, err)
		s.markFailed(ctx, a, fmt.Sprintf("publishing processing job failed: %v", err))
		return port.SubmitAssetOutput{}, fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	logger.Infof(ctx, "accepted asset #%s (%s, %d bytes) for processing", id, sniffed, size)
	return port.SubmitAssetOutput{ID: id}, nil
}

func (s *submitterSrv) markFailed(ctx context.Context, a *model.Asset, reason string) {
	a.State = model.AssetStateFailed
	a.FailureMessage = &reason
	if err := s.repo.Update(ctx, a); err != nil {
		logger.Warnf(ctx, "could not mark asset #%s as failed: %v", a.ID, err)
	}
}
