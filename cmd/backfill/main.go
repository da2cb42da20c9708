package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vibe-gaming/geodirectory/internal/cache"
	"github.com/vibe-gaming/geodirectory/internal/config"
	"github.com/vibe-gaming/geodirectory/internal/db"
	"github.com/vibe-gaming/geodirectory/internal/repository"
	"github.com/vibe-gaming/geodirectory/internal/service"
	"github.com/vibe-gaming/geodirectory/pkg/logger"
)

// backfill rebuilds derived region data: bounding boxes, business assignments and poi counts.
// Tasks run in the order given by BACKFILL_TASKS.
func main() {
	cfg := config.MustLoad()

	appLogger := logger.SetupLogger(cfg.Env, cfg.LogLevel, &logger.FileConfig{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	defer logger.Sync()

	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Fatal("mysql connect problem", zap.Error(err))
	}
	defer dbMySQL.Close()

	if cfg.Database.MigrateOnStart {
		if err := db.Migrate(dbMySQL); err != nil {
			appLogger.Fatal("migration failed", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// recounts run inline here, so no scheduler
	services := service.NewServices(service.Deps{
		Config:      cfg,
		Repos:       repository.NewRepositories(dbMySQL),
		RegionCache: cache.NewRegionCache(cfg.RegionCache),
	})

	if err := services.Regions.EnsurePendingRegion(ctx); err != nil {
		appLogger.Fatal("pending region bootstrap failed", zap.Error(err))
	}

	if err := run(ctx, services.Backfill, cfg.Backfill.Tasks, appLogger); err != nil {
		appLogger.Error("backfill failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	appLogger.Info("backfill finished")
}

func run(ctx context.Context, backfill service.Backfill, tasks []string, log *zap.Logger) error {
	for _, task := range tasks {
		log.Info("backfill task started", zap.String("task", task))

		report, err := service.RunBackfillTask(ctx, backfill, task)
		if err != nil {
			return errors.Wrapf(err, "backfill task %s", task)
		}
		log.Info("backfill task done",
			zap.String("task", task),
			zap.Int("scanned", report.Scanned),
			zap.Int("changed", report.Changed),
			zap.Int("failed", report.Failed),
		)
	}
	return nil
}
