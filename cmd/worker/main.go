package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/picstream/picstream-go/internal/cache"
	"github.com/picstream/picstream-go/internal/config"
	"github.com/picstream/picstream-go/internal/db"
	workerHandler "github.com/picstream/picstream-go/internal/handler/worker"
	"github.com/picstream/picstream-go/internal/logger"
	"github.com/picstream/picstream-go/internal/port"
	"github.com/picstream/picstream-go/internal/repository/mariadb"
	"github.com/picstream/picstream-go/internal/resizer"
	"github.com/picstream/picstream-go/internal/startup"
	"github.com/picstream/picstream-go/internal/storage"
	"github.com/picstream/picstream-go/internal/task"
	assetSvc "github.com/picstream/picstream-go/internal/usecase/asset"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	// Same boot order as the API: the worker must not consume until the
	// database and the broker are both confirmed reachable.
	var database *db.Database
	coordinator := startup.NewCoordinator(
		func(ctx context.Context) error {
			var err error
			database, err = db.New(ctx, cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
			return err
		},
		func(ctx context.Context) error {
			client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
			defer func() { _ = client.Close() }()
			return client.Ping(ctx).Err()
		},
		cfg.StartupTimeout,
	)
	if err := coordinator.Run(ctx); err != nil {
		logger.Errorf(ctx, "❌  Startup aborted: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg := initStorage(cfg)
	if err := strg.InitBucket(cfg.Bucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.Bucket, err)
		os.Exit(1)
	}

	repo := mariadb.NewAssetRepository(database.DB)
	dispatcher := task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword, cfg.MaxJobRetry)
	defer func() { _ = dispatcher.Close() }()
	ca := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
	processSvc := assetSvc.NewProcessor(repo, resizer.NewResizer(), strg, dispatcher, ca, cfg.Bucket, cfg.RenditionWidths)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeProcessAsset, func(ctx context.Context, t *asynq.Task) error {
		job, err := task.ParseProcessAssetPayload(t)
		if err != nil {
			return err
		}
		retried, _ := asynq.GetRetryCount(ctx)
		maxRetry, _ := asynq.GetMaxRetry(ctx)
		return workerHandler.ProcessAssetHandler(ctx, job, retried, maxRetry, processSvc)
	})

	runWorker(ctx, mux, cfg)
}

func initStorage(cfg *config.Settings) port.Storage {
	strg, err := storage.NewMinioStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{task.QueueProcess: 1},
	})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	logger.Info(ctx, "✅  Worker gracefully stopped")
}
