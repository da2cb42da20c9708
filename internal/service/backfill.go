package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/vibe-gaming/geodirectory/internal/config"
	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/repository"
	"github.com/vibe-gaming/geodirectory/pkg/logger"
)

const (
	BackfillTaskBounds      = "bounds"
	BackfillTaskAssignments = "assignments"
	BackfillTaskCounts      = "counts"
)

type BackfillReport struct {
	Scanned int `json:"scanned"`
	Changed int `json:"changed"`
	Failed  int `json:"failed"`
}

type backfillService struct {
	regionRepository   repository.Regions
	businessRepository repository.Businesses
	regions            Regions
	geoAssignment      GeoAssignment
	counter            POICounter
	limiter            *rate.Limiter
	batchSize          int
}

func newBackfillService(
	regionRepository repository.Regions,
	businessRepository repository.Businesses,
	regions Regions,
	geoAssignment GeoAssignment,
	counter POICounter,
	cfg config.Backfill,
) *backfillService {
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	batchSize := cfg.BatchSize
	if batchSize < 1 {
		batchSize = 200
	}

	return &backfillService{
		regionRepository:   regionRepository,
		businessRepository: businessRepository,
		regions:            regions,
		geoAssignment:      geoAssignment,
		counter:            counter,
		limiter:            rate.NewLimiter(limit, burst),
		batchSize:          batchSize,
	}
}

// RunBackfillTask runs one task by name. Bounds recomputation reports every region it
// touched as both scanned and changed.
func RunBackfillTask(ctx context.Context, backfill Backfill, task string) (*BackfillReport, error) {
	switch task {
	case BackfillTaskBounds:
		n, err := backfill.RecomputeBounds(ctx)
		if err != nil {
			return nil, err
		}
		return &BackfillReport{Scanned: n, Changed: n}, nil
	case BackfillTaskAssignments:
		return backfill.ReassignAll(ctx)
	case BackfillTaskCounts:
		return backfill.RecountAll(ctx)
	default:
		return nil, ErrUnknownBackfillTask
	}
}

func (s *backfillService) RecomputeBounds(ctx context.Context) (int, error) {
	return s.regions.RecomputeBounds(ctx)
}

// ReassignAll re-resolves every located business and rewrites the assignments that
// changed, then recounts the regions involved. Each business write waits on the limiter.
func (s *backfillService) ReassignAll(ctx context.Context) (*BackfillReport, error) {
	report := &BackfillReport{}
	touched := make(map[uuid.UUID]struct{})

	after := uuid.Nil
	for {
		batch, err := s.businessRepository.GetLocatedAfter(ctx, after, s.batchSize)
		if err != nil {
			return report, err
		}
		if len(batch) == 0 {
			break
		}
		after = batch[len(batch)-1].ID

		for _, b := range batch {
			report.Scanned++

			assignment, err := s.geoAssignment.Resolve(ctx, b.Location())
			if err != nil {
				report.Failed++
				logger.Error("backfill resolve failed", zap.String("business_id", b.ID.String()), zap.Error(err))
				continue
			}
			if sameIDs(b.RegionIDs, assignment.RegionIDs) {
				continue
			}

			if err := s.limiter.Wait(ctx); err != nil {
				return report, err
			}
			if err := s.businessRepository.UpdateRegions(ctx, b.ID, domain.StringList{assignment.DisplayName}, assignment.RegionIDs); err != nil {
				report.Failed++
				logger.Error("backfill update regions failed", zap.String("business_id", b.ID.String()), zap.Error(err))
				continue
			}
			report.Changed++

			for _, id := range b.RegionIDs {
				touched[id] = struct{}{}
			}
			for _, id := range assignment.RegionIDs {
				touched[id] = struct{}{}
			}
		}
	}

	for id := range touched {
		if err := s.recount(ctx, id); err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			report.Failed++
		}
	}

	logger.Info("backfill assignments done",
		zap.Int("scanned", report.Scanned),
		zap.Int("changed", report.Changed),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

// RecountAll recomputes the poi count of every region.
func (s *backfillService) RecountAll(ctx context.Context) (*BackfillReport, error) {
	regions, err := s.regionRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &BackfillReport{}
	for _, r := range regions {
		report.Scanned++
		if err := s.recount(ctx, r.ID); err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			report.Failed++
			continue
		}
		report.Changed++
	}

	logger.Info("backfill counts done",
		zap.Int("scanned", report.Scanned),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (s *backfillService) recount(ctx context.Context, id uuid.UUID) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	if _, err := s.counter.RecomputeCount(ctx, id); err != nil {
		logger.Error("backfill recount failed", zap.String("region_id", id.String()), zap.Error(err))
		return err
	}
	return nil
}
