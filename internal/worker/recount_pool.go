package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vibe-gaming/geodirectory/internal/config"
	"github.com/vibe-gaming/geodirectory/internal/metrics"
	"github.com/vibe-gaming/geodirectory/pkg/logger"
)

const poolDriverName = "local"

var (
	ErrPoolFull    = errors.New("recount pool queue is full")
	ErrPoolStopped = errors.New("recount pool is stopped")
)

// RecountPool runs recounts in-process on a fixed number of goroutines.
// Submissions beyond the buffer are dropped, not blocked on.
type RecountPool struct {
	workers     *Workers
	concurrency int

	mu      sync.RWMutex
	jobs    chan uuid.UUID
	stopped bool
	wg      sync.WaitGroup
}

func NewRecountPool(workers *Workers, cfg config.Queue) *RecountPool {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	buffer := cfg.BufferSize
	if buffer < 1 {
		buffer = concurrency * 4
	}

	return &RecountPool{
		workers:     workers,
		concurrency: concurrency,
		jobs:        make(chan uuid.UUID, buffer),
	}
}

func (p *RecountPool) Start() {
	for i := 0; i < p.concurrency; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for id := range p.jobs {
				if err := p.workers.Recount(context.Background(), id); err != nil {
					logger.Error("recompute poi count failed",
						zap.String("region_id", id.String()),
						zap.Error(err),
					)
				}
			}
		}()
	}
}

// ScheduleRecount queues a recount without waiting for it.
func (p *RecountPool) ScheduleRecount(_ context.Context, regionID uuid.UUID) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		metrics.RecountScheduledTotal.WithLabelValues(poolDriverName, metrics.StatusDropped).Inc()
		return ErrPoolStopped
	}

	select {
	case p.jobs <- regionID:
		metrics.RecountScheduledTotal.WithLabelValues(poolDriverName, metrics.StatusOK).Inc()
		return nil
	default:
		metrics.RecountScheduledTotal.WithLabelValues(poolDriverName, metrics.StatusDropped).Inc()
		return ErrPoolFull
	}
}

// Stop refuses new work and waits for queued recounts to finish or ctx to expire.
func (p *RecountPool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		close(p.jobs)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
