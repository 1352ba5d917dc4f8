package port

import (
	"context"

	"github.com/picstream/picstream-go/internal/model"
)

// JobDispatcher publishes pipeline messages to the durable job queue.
// Delivery is at-least-once: a published message is never silently lost,
// but consumers may see it more than once.
type JobDispatcher interface {
	EnqueueProcessAsset(ctx context.Context, job model.ProcessingJob) error
	EnqueueAssetCompleted(ctx context.Context, event model.CompletionEvent) error
}
