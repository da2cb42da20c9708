package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/metrics"
	"github.com/vibe-gaming/geodirectory/pkg/logger"
)

type poiCounter struct {
	regionRepository   regionCountWriter
	businessRepository publishedCounter
	cache              RegionCache
}

type regionCountWriter interface {
	UpdatePOICount(ctx context.Context, id uuid.UUID, count int) error
}

type publishedCounter interface {
	CountPublishedInRegion(ctx context.Context, regionID uuid.UUID) (int, error)
}

// NewPOICounter is built ahead of the other services so the recount schedulers can run it.
func NewPOICounter(regionRepository regionCountWriter, businessRepository publishedCounter, cache RegionCache) *poiCounter {
	return &poiCounter{
		regionRepository:   regionRepository,
		businessRepository: businessRepository,
		cache:              cache,
	}
}

// RecomputeCount stores the number of published businesses assigned to regionID.
// The pending sentinel is not counted.
func (c *poiCounter) RecomputeCount(ctx context.Context, regionID uuid.UUID) (int, error) {
	if regionID == domain.PendingRegionID {
		metrics.RecountTotal.WithLabelValues(metrics.StatusSkipped).Inc()
		return 0, nil
	}

	count, err := c.businessRepository.CountPublishedInRegion(ctx, regionID)
	if err != nil {
		metrics.RecountTotal.WithLabelValues(metrics.StatusError).Inc()
		return 0, errors.Wrapf(err, "count businesses in region %s", regionID)
	}

	if err := c.regionRepository.UpdatePOICount(ctx, regionID, count); err != nil {
		metrics.RecountTotal.WithLabelValues(metrics.StatusError).Inc()
		if errors.Is(err, domain.ErrNotFound) {
			return 0, ErrRegionNotFound
		}
		return 0, errors.Wrapf(err, "update poi count of region %s", regionID)
	}
	c.cache.Remove(regionID)

	metrics.RecountTotal.WithLabelValues(metrics.StatusOK).Inc()
	return count, nil
}

// scheduleRecounts submits one recount per distinct id. A failed submission is logged
// and does not affect the others or the caller. A nil scheduler skips recounts.
func scheduleRecounts(ctx context.Context, scheduler RecountScheduler, ids ...uuid.UUID) {
	if scheduler == nil {
		return
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if err := scheduler.ScheduleRecount(ctx, id); err != nil {
			logger.Error("schedule poi recount failed",
				zap.String("region_id", id.String()),
				zap.Error(err),
			)
		}
	}
}
