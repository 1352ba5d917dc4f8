package testutil

import (
	"context"
	"log"

	"github.com/hibiken/asynq"

	"github.com/picstream/picstream-go/internal/cache"
	"github.com/picstream/picstream-go/internal/db"
	workerHandler "github.com/picstream/picstream-go/internal/handler/worker"
	"github.com/picstream/picstream-go/internal/model"
	"github.com/picstream/picstream-go/internal/port"
	"github.com/picstream/picstream-go/internal/repository/mariadb"
	"github.com/picstream/picstream-go/internal/resizer"
	"github.com/picstream/picstream-go/internal/task"
	assetSvc "github.com/picstream/picstream-go/internal/usecase/asset"
)

// StartWorker starts an asynq server consuming the processing queue, wired
// exactly like the worker binary. It returns a shutdown function.
func StartWorker(dbConn *db.Database, strg port.Storage, redisAddr, bucket string, widths []int, maxRetry int) func() {
	repo := mariadb.NewAssetRepository(dbConn.DB)
	dispatcher := task.NewDispatcher(redisAddr, "", maxRetry)
	ca := cache.NewCache(redisAddr, "")
	processSvc := assetSvc.NewProcessor(repo, resizer.NewResizer(), strg, dispatcher, ca, bucket, widths)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeProcessAsset, func(ctx context.Context, t *asynq.Task) error {
		job, err := task.ParseProcessAssetPayload(t)
		if err != nil {
			return err
		}
		retried, _ := asynq.GetRetryCount(ctx)
		ceiling, _ := asynq.GetMaxRetry(ctx)
		return workerHandler.ProcessAssetHandler(ctx, job, retried, ceiling, processSvc)
	})

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{task.QueueProcess: 1},
	})
	go func() {
		if err := srv.Run(mux); err != nil {
			log.Printf("worker stopped: %v", err)
		}
	}()

	return func() {
		_ = dispatcher.Close()
		srv.Shutdown()
	}
}

// StartEventCollector consumes the events queue and forwards every completion
// event to the given channel, standing in for the API's websocket consumer.
func StartEventCollector(redisAddr string, events chan<- model.CompletionEvent) func() {
	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeAssetCompleted, func(ctx context.Context, t *asynq.Task) error {
		event, err := task.ParseAssetCompletedPayload(t)
		if err != nil {
			return err
		}
		events <- event
		return nil
	})

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{task.QueueEvents: 1},
	})
	go func() {
		if err := srv.Run(mux); err != nil {
			log.Printf("event collector stopped: %v", err)
		}
	}()

	return srv.Shutdown
}
