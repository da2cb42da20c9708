package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vibe-gaming/geodirectory/internal/queue/task"
	"github.com/vibe-gaming/geodirectory/internal/service"
	"github.com/vibe-gaming/geodirectory/internal/worker"

	"github.com/hibiken/asynq"
)

type recomputePOICountProcessor struct {
	workers *worker.Workers
}

func NewRecomputePOICountProcessor(workers *worker.Workers) *recomputePOICountProcessor {
	return &recomputePOICountProcessor{
		workers: workers,
	}
}

func (p *recomputePOICountProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.RecomputePOICount
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process recompute poi count task json unmarshal failed: %w", err)
	}

	if err = p.workers.Recount(ctx, data.RegionID); err != nil {
		// The region is gone, retrying cannot succeed.
		if errors.Is(err, service.ErrRegionNotFound) {
			return fmt.Errorf("recompute poi count failed: %w: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("recompute poi count failed: %w", err)
	}

	return nil
}
