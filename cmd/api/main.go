package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/picstream/picstream-go/internal/broadcast"
	"github.com/picstream/picstream-go/internal/cache"
	"github.com/picstream/picstream-go/internal/config"
	"github.com/picstream/picstream-go/internal/db"
	"github.com/picstream/picstream-go/internal/handler/api"
	workerHandler "github.com/picstream/picstream-go/internal/handler/worker"
	"github.com/picstream/picstream-go/internal/logger"
	cMiddleware "github.com/picstream/picstream-go/internal/middleware"
	"github.com/picstream/picstream-go/internal/port"
	"github.com/picstream/picstream-go/internal/renderer"
	"github.com/picstream/picstream-go/internal/repository/mariadb"
	"github.com/picstream/picstream-go/internal/startup"
	"github.com/picstream/picstream-go/internal/storage"
	"github.com/picstream/picstream-go/internal/task"
	assetSvc "github.com/picstream/picstream-go/internal/usecase/asset"
	followSvc "github.com/picstream/picstream-go/internal/usecase/follow"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	// Dependencies come up in a fixed order: database, then broker. Nothing
	// serves until both are confirmed reachable.
	var database *db.Database
	coordinator := startup.NewCoordinator(
		func(ctx context.Context) error {
			var err error
			database, err = db.New(ctx, cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
			return err
		},
		pingBroker(cfg),
		cfg.StartupTimeout,
	)
	if err := coordinator.Run(ctx); err != nil {
		logger.Errorf(ctx, "❌  Startup aborted: %v", err)
		os.Exit(1)
	}

	strg := initStorage(ctx, cfg)
	if err := strg.InitBucket(cfg.Bucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.Bucket, err)
		os.Exit(1)
	}

	assetRepo := mariadb.NewAssetRepository(database.DB)
	followRepo := mariadb.NewFollowRepository(database.DB)
	ca := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
	dispatcher := task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword, cfg.MaxJobRetry)
	defer func() { _ = dispatcher.Close() }()

	submitSvc := assetSvc.NewSubmitter(assetRepo, strg, dispatcher, cfg.Bucket, cfg.AllowedMimeTypes)
	getSvc := assetSvc.NewAssetGetter(assetRepo, strg, cfg.Bucket)
	listSvc := assetSvc.NewAssetLister(assetRepo)
	deleteSvc := assetSvc.NewAssetDeleter(assetRepo, ca, strg, cfg.Bucket)
	followMgr := followSvc.NewManager(followRepo)
	rendererSvc := renderer.NewHTTPRenderer(ca)

	hub := broadcast.NewHub()
	defer hub.Close()

	r := initRouter(ctx, cfg.JWTPublicKey)

	r.Post("/assets", api.UploadAssetHandler(submitSvc))
	r.Get("/assets/latest", api.ListLatestAssetsHandler(listSvc))
	r.With(cMiddleware.WithAssetID()).
		Get("/assets/{id}", api.GetAssetHandler(rendererSvc, getSvc))
	r.With(cMiddleware.WithAssetID()).
		Get("/assets/{id}/renditions", api.GetRenditionsHandler(getSvc))
	r.With(cMiddleware.WithAssetID()).
		Delete("/assets/{id}", api.DeleteAssetHandler(getSvc, deleteSvc))

	r.Get("/owners/{ownerID}/assets", api.ListOwnerAssetsHandler(listSvc))

	r.Post("/follows/{followeeID}", api.FollowHandler(followMgr))
	r.Delete("/follows/{followeeID}", api.UnfollowHandler(followMgr))
	r.Get("/follows/{followeeID}", api.IsFollowingHandler(followMgr))
	r.Get("/follows", api.ListFollowingHandler(followMgr))

	r.Get("/broadcast", broadcast.WSHandler(hub, followMgr))

	events := startEventConsumer(ctx, cfg, hub)

	listenRouter(ctx, r, cfg, database, events)
}

// pingBroker confirms the redis instance behind the queue and the cache is
// reachable.
func pingBroker(cfg *config.Settings) startup.Connector {
	return func(ctx context.Context) error {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer func() { _ = client.Close() }()
		return client.Ping(ctx).Err()
	}
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewMinioStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initRouter(ctx context.Context, jwtKey string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cMiddleware.WithAuth(jwtKey))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

// startEventConsumer runs the asynq server that feeds completion events to
// the websocket hub. It only consumes the events queue; processing jobs
// belong to the worker binary.
func startEventConsumer(ctx context.Context, cfg *config.Settings, hub *broadcast.Hub) *asynq.Server {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{task.QueueEvents: 1},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeAssetCompleted, func(ctx context.Context, t *asynq.Task) error {
		event, err := task.ParseAssetCompletedPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.AssetCompletedHandler(ctx, event, hub)
	})

	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Event consumer failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Completion-event consumer started")

	return srv
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database, events *asynq.Server) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	events.Shutdown()

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
