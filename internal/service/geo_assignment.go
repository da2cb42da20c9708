package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/geo"
	"github.com/vibe-gaming/geodirectory/internal/metrics"
	"github.com/vibe-gaming/geodirectory/pkg/logger"
)

type containingFinder interface {
	FindContaining(ctx context.Context, p geo.Point) ([]domain.Region, error)
}

type geoAssignmentService struct {
	regions containingFinder
}

func newGeoAssignmentService(regions containingFinder) *geoAssignmentService {
	return &geoAssignmentService{
		regions: regions,
	}
}

// Resolve maps a location to its containing regions, finest first, and names the result
// after the finest one. A missing or (0,0) location, or one inside no region, resolves to
// the pending sentinel. Store errors are returned so the caller can fail its write.
func (s *geoAssignmentService) Resolve(ctx context.Context, p *geo.Point) (domain.RegionAssignment, error) {
	started := time.Now()
	defer func() {
		metrics.GeoResolveDurationMs.Observe(float64(time.Since(started).Milliseconds()))
	}()

	if p == nil || p.IsZero() {
		metrics.GeoResolveTotal.WithLabelValues(metrics.ResultPending).Inc()
		return domain.PendingAssignment(), nil
	}
	if !p.Valid() {
		metrics.GeoResolveTotal.WithLabelValues(metrics.ResultError).Inc()
		return domain.RegionAssignment{}, invalidInput("location out of range")
	}

	regions, err := s.regions.FindContaining(ctx, *p)
	if err != nil {
		metrics.GeoResolveTotal.WithLabelValues(metrics.ResultError).Inc()
		logger.Error("resolve location failed",
			zap.Float64("lat", p.Lat),
			zap.Float64("long", p.Lon),
			zap.Error(err),
		)
		return domain.RegionAssignment{}, err
	}
	if len(regions) == 0 {
		metrics.GeoResolveTotal.WithLabelValues(metrics.ResultPending).Inc()
		return domain.PendingAssignment(), nil
	}

	ids := make([]uuid.UUID, 0, len(regions))
	for _, r := range regions {
		ids = append(ids, r.ID)
	}

	metrics.GeoResolveTotal.WithLabelValues(metrics.ResultMatched).Inc()
	return domain.RegionAssignment{
		DisplayName: regions[0].Name,
		RegionIDs:   ids,
	}, nil
}

// withoutPending drops the sentinel from a list that also holds real regions.
func withoutPending(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id != domain.PendingRegionID {
			out = append(out, id)
		}
	}
	if len(out) == 0 && len(ids) > 0 {
		return []uuid.UUID{domain.PendingRegionID}
	}
	return out
}
