package mock

import (
	"context"

	"github.com/picstream/picstream-go/internal/model"
	"github.com/picstream/picstream-go/internal/port"
)

// Dispatcher implements job dispatching for tests.
type Dispatcher struct {
	ProcessCalled bool
	ProcessJobs   []model.ProcessingJob
	ProcessErr    error

	CompletedCalled bool
	CompletedEvents []model.CompletionEvent
	CompletedErr    error
}

// compile-time check: *Dispatcher must satisfy port.JobDispatcher
var _ port.JobDispatcher = (*Dispatcher)(nil)

func (m *Dispatcher) EnqueueProcessAsset(ctx context.Context, job model.ProcessingJob) error {
	m.ProcessCalled = true
	if m.ProcessErr != nil {
		return m.ProcessErr
	}
	m.ProcessJobs = append(m.ProcessJobs, job)
	return nil
}

func (m *Dispatcher) EnqueueAssetCompleted(ctx context.Context, event model.CompletionEvent) error {
	m.CompletedCalled = true
	if m.CompletedErr != nil {
		return m.CompletedErr
	}
	m.CompletedEvents = append(m.CompletedEvents, event)
	return nil
}
