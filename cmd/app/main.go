package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	apiHttp "github.com/vibe-gaming/geodirectory/internal/api/http"
	"github.com/vibe-gaming/geodirectory/internal/cache"
	"github.com/vibe-gaming/geodirectory/internal/config"
	"github.com/vibe-gaming/geodirectory/internal/db"
	"github.com/vibe-gaming/geodirectory/internal/queue/asynqserver"
	"github.com/vibe-gaming/geodirectory/internal/queue/client"
	"github.com/vibe-gaming/geodirectory/internal/repository"
	"github.com/vibe-gaming/geodirectory/internal/server"
	"github.com/vibe-gaming/geodirectory/internal/service"
	"github.com/vibe-gaming/geodirectory/internal/worker"
	"github.com/vibe-gaming/geodirectory/pkg/auth"
	"github.com/vibe-gaming/geodirectory/pkg/logger"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	appLogger := logger.SetupLogger(cfg.Env, cfg.LogLevel, &logger.FileConfig{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	defer logger.Sync()

	appLogger.Info("starting geodirectory api", zap.String("queue_driver", cfg.Queue.Driver))
	appLogger.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Fatal("mysql connect problem", zap.Error(err))
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			appLogger.Error("error when closing", zap.Error(err))
		}
	}()
	appLogger.Info("mysql connection done")

	if cfg.Database.MigrateOnStart {
		if err := db.Migrate(dbMySQL); err != nil {
			appLogger.Fatal("migration failed", zap.Error(err))
		}
	}

	healthChecks := map[string]apiHttp.HealthCheck{
		"mysql": dbMySQL.PingContext,
	}

	regionCache := cache.NewRegionCache(cfg.RegionCache)
	repos := repository.NewRepositories(dbMySQL)
	counter := service.NewPOICounter(repos.Regions, repos.Businesses, regionCache)
	workers := worker.NewWorkers(worker.Deps{
		POICounter: counter,
		Config:     cfg,
	})

	// Background recounts
	var scheduler service.RecountScheduler
	var stopScheduler func(ctx context.Context)
	switch cfg.Queue.Driver {
	case config.QueueDriverAsynq:
		redisClient, err := cache.NewRedis(cfg.Cache)
		if err != nil {
			appLogger.Fatal("redis connect problem", zap.Error(err))
		}
		defer redisClient.Close()
		healthChecks["redis"] = func(ctx context.Context) error {
			return cache.Ping(ctx, redisClient)
		}

		asynqClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
		defer asynqClient.Close()
		restore := client.SetClient(asynqClient)
		defer restore()

		asynqSrv, mux := asynqserver.New(cfg.Cache, cfg.Queue, workers)
		if err := asynqSrv.Start(mux); err != nil {
			appLogger.Fatal("asynq server start failed", zap.Error(err))
		}
		stopScheduler = func(context.Context) { asynqSrv.Shutdown() }
		scheduler = client.NewRecountEnqueuer(cfg.Queue.MaxRetry, cfg.Queue.TaskTimeout)
	default:
		pool := worker.NewRecountPool(workers, cfg.Queue)
		pool.Start()
		stopScheduler = func(ctx context.Context) {
			if err := pool.Stop(ctx); err != nil {
				appLogger.Error("failed to drain recount pool", zap.Error(err))
			}
		}
		scheduler = pool
	}

	// Services, Repos & API Handlers
	services := service.NewServices(service.Deps{
		Config:      cfg,
		Repos:       repos,
		RegionCache: regionCache,
		POICounter:  counter,
		Scheduler:   scheduler,
	})

	bootCtx, bootCancel := context.WithTimeout(context.Background(), cfg.Database.Timeout*5)
	err = services.Regions.EnsurePendingRegion(bootCtx)
	bootCancel()
	if err != nil {
		appLogger.Fatal("pending region bootstrap failed", zap.Error(err))
	}

	var tokenManager auth.TokenManager
	if cfg.Auth.Enabled {
		tokenManager, err = auth.NewManager(cfg.Auth.JWT)
		if err != nil {
			appLogger.Fatal("auth manager creation err", zap.Error(err))
		}
	}

	handlers := apiHttp.NewHandlers(services, tokenManager, cfg, healthChecks)

	// HTTP Server
	srv := server.NewServer(cfg.HttpServer, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); err != nil {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}
	stopScheduler(ctx)

	appLogger.Info("app stopped")
}
