package task

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/picstream/picstream-go/internal/model"
	"github.com/picstream/picstream-go/internal/port"
)

type Dispatcher struct {
	client   *asynq.Client
	maxRetry int
}

// compile-time check
var _ port.JobDispatcher = (*Dispatcher)(nil)

// NewDispatcher connects an Asynq client to the given redis instance.
// maxRetry bounds how often a processing job is redelivered before the worker
// gives up on it.
func NewDispatcher(addr, password string, maxRetry int) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c, maxRetry: maxRetry}
}

func (d *Dispatcher) EnqueueProcessAsset(ctx context.Context, job model.ProcessingJob) error {
	t, err := NewProcessAssetTask(job)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t, asynq.Queue(QueueProcess), asynq.MaxRetry(d.maxRetry)); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) EnqueueAssetCompleted(ctx context.Context, event model.CompletionEvent) error {
	t, err := NewAssetCompletedTask(event)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t, asynq.Queue(QueueEvents), asynq.MaxRetry(d.maxRetry)); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}
