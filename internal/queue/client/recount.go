package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/vibe-gaming/geodirectory/internal/metrics"
	"github.com/vibe-gaming/geodirectory/internal/queue/task"
)

const driverName = "asynq"

var ErrClientNotSet = errors.New("asynq client is not set")

// RecountEnqueuer schedules poi recounts on the asynq queue.
type RecountEnqueuer struct {
	maxRetry int
	timeout  time.Duration
}

func NewRecountEnqueuer(maxRetry int, timeout time.Duration) *RecountEnqueuer {
	return &RecountEnqueuer{
		maxRetry: maxRetry,
		timeout:  timeout,
	}
}

func (e *RecountEnqueuer) ScheduleRecount(ctx context.Context, regionID uuid.UUID) error {
	c := GetClient(ctx)
	if c == nil {
		metrics.RecountScheduledTotal.WithLabelValues(driverName, metrics.StatusError).Inc()
		return ErrClientNotSet
	}

	var opts []asynq.Option
	if e.maxRetry > 0 {
		opts = append(opts, asynq.MaxRetry(e.maxRetry))
	}
	if e.timeout > 0 {
		opts = append(opts, asynq.Timeout(e.timeout))
	}

	t, err := task.NewRecomputePOICountTask(regionID, opts...)
	if err != nil {
		metrics.RecountScheduledTotal.WithLabelValues(driverName, metrics.StatusError).Inc()
		return err
	}

	if _, err := c.EnqueueContext(ctx, t); err != nil {
		metrics.RecountScheduledTotal.WithLabelValues(driverName, metrics.StatusError).Inc()
		return fmt.Errorf("enqueue recompute poi count task: %w", err)
	}

	metrics.RecountScheduledTotal.WithLabelValues(driverName, metrics.StatusOK).Inc()
	return nil
}
