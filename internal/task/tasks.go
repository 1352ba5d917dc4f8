package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/picstream/picstream-go/internal/model"
	"github.com/picstream/picstream-go/internal/validation"
)

const (
	TypeProcessAsset   = "asset:process"
	TypeAssetCompleted = "asset:completed"
)

// Each task type lives in its own queue so the worker's server and the API's
// event server never steal each other's deliveries.
const (
	QueueProcess = "process"
	QueueEvents  = "events"
)

// NewProcessAssetTask creates an Asynq task carrying one processing job.
func NewProcessAssetTask(job model.ProcessingJob) (*asynq.Task, error) {
	data, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("could not marshal process-asset payload: %w", err)
	}
	return asynq.NewTask(TypeProcessAsset, data), nil
}

// ParseProcessAssetPayload parses the task payload to a ProcessingJob.
func ParseProcessAssetPayload(t *asynq.Task) (model.ProcessingJob, error) {
	var job model.ProcessingJob
	if err := json.Unmarshal(t.Payload(), &job); err != nil {
		return model.ProcessingJob{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	if err := validation.ValidateStruct(job); err != nil {
		return model.ProcessingJob{}, fmt.Errorf("invalid process-asset payload: %w", err)
	}
	return job, nil
}

// NewAssetCompletedTask creates an Asynq task carrying one completion event.
func NewAssetCompletedTask(event model.CompletionEvent) (*asynq.Task, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("could not marshal asset-completed payload: %w", err)
	}
	return asynq.NewTask(TypeAssetCompleted, data), nil
}

// ParseAssetCompletedPayload parses the task payload to a CompletionEvent.
func ParseAssetCompletedPayload(t *asynq.Task) (model.CompletionEvent, error) {
	var event model.CompletionEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		return model.CompletionEvent{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	if err := validation.ValidateStruct(event); err != nil {
		return model.CompletionEvent{}, fmt.Errorf("invalid asset-completed payload: %w", err)
	}
	return event, nil
}
