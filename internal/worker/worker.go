package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vibe-gaming/geodirectory/internal/config"
	"github.com/vibe-gaming/geodirectory/pkg/logger"
)

type Workers struct {
	POICounter  POICounter
	taskTimeout time.Duration
}

type Deps struct {
	POICounter POICounter
	Config     *config.Config
}

type POICounter interface {
	RecomputeCount(ctx context.Context, regionID uuid.UUID) (int, error)
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		POICounter:  deps.POICounter,
		taskTimeout: deps.Config.Queue.TaskTimeout,
	}
}

// Recount recomputes one region's poi count within the configured task timeout.
func (w *Workers) Recount(ctx context.Context, regionID uuid.UUID) error {
	if w.taskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.taskTimeout)
		defer cancel()
	}

	count, err := w.POICounter.RecomputeCount(ctx, regionID)
	if err != nil {
		return err
	}

	logger.Debug("poi count recomputed",
		zap.String("region_id", regionID.String()),
		zap.Int("count", count),
	)
	return nil
}
