package worker

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"github.com/picstream/picstream-go/internal/model"
	"github.com/picstream/picstream-go/internal/port"
	"github.com/picstream/picstream-go/internal/usecase/asset"
)

// ProcessAssetHandler handles one delivery of a process-asset task.
//
// A transient error is returned as-is so the queue redelivers the job. A
// permanent error, or a transient one on the last allowed attempt, settles
// the asset as failed and acknowledges the task via asynq.SkipRetry. If the
// failure itself cannot be recorded the task stays alive: redelivery is the
// only way the row and the followers ever learn about the outcome.
func ProcessAssetHandler(ctx context.Context, job model.ProcessingJob, retried, maxRetry int, svc port.AssetProcessor) error {
	job.Attempt = retried

	err := svc.ProcessAsset(ctx, job)
	if err == nil {
		log.Printf("✅  Successfully processed asset #%s", job.AssetID)
		return nil
	}

	permanent := errors.Is(err, asset.ErrPermanentFailure)
	lastAttempt := retried >= maxRetry
	if !permanent && !lastAttempt {
		log.Printf("❌  Failed to process asset #%s (attempt %d/%d), leaving for redelivery: %v", job.AssetID, retried+1, maxRetry+1, err)
		return err
	}

	if failErr := svc.FailAsset(ctx, job, err.Error()); failErr != nil {
		log.Printf("❌  Could not settle asset #%s as failed: %v", job.AssetID, failErr)
		return failErr
	}

	log.Printf("❌  Asset #%s settled as failed: %v", job.AssetID, err)
	return fmt.Errorf("asset %s failed terminally: %v: %w", job.AssetID, err, asynq.SkipRetry)
}
