package service

import (
	"context"

	"github.com/vibe-gaming/geodirectory/internal/config"
	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/geo"
	"github.com/vibe-gaming/geodirectory/internal/repository"

	"github.com/google/uuid"
)

type Services struct {
	Regions         Regions
	GeoAssignment   GeoAssignment
	POICounts       POICounter
	Businesses      Businesses
	Classifications Classifications
	Backfill        Backfill
}

type Deps struct {
	Config      *config.Config
	Repos       *repository.Repositories
	RegionCache RegionCache
	POICounter  POICounter
	Scheduler   RecountScheduler
}

func NewServices(deps Deps) *Services {
	regions := newRegionService(deps.Repos.Regions, deps.RegionCache, deps.Config.Geo)
	geoAssignment := newGeoAssignmentService(regions)

	counter := deps.POICounter
	if counter == nil {
		counter = NewPOICounter(deps.Repos.Regions, deps.Repos.Businesses, deps.RegionCache)
	}

	classifications := newClassificationService(deps.Repos.Classifications)

	return &Services{
		Regions:         regions,
		GeoAssignment:   geoAssignment,
		POICounts:       counter,
		Businesses:      newBusinessService(deps.Repos.Businesses, regions, geoAssignment, classifications, deps.Scheduler, deps.Config.Geo),
		Classifications: classifications,
		Backfill:        newBackfillService(deps.Repos.Regions, deps.Repos.Businesses, regions, geoAssignment, counter, deps.Config.Backfill),
	}
}

// RegionCache is the id -> region lookup cache shared by region reads.
type RegionCache interface {
	Get(id uuid.UUID) (*domain.Region, bool)
	Add(region *domain.Region)
	Remove(id uuid.UUID)
}

// RecountScheduler submits a poi count recomputation to run in the background.
type RecountScheduler interface {
	ScheduleRecount(ctx context.Context, regionID uuid.UUID) error
}

type Regions interface {
	Create(ctx context.Context, input CreateRegionInput) (*domain.Region, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Region, error)
	GetAll(ctx context.Context) ([]domain.Region, error)
	FindContaining(ctx context.Context, p geo.Point) ([]domain.Region, error)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]domain.Region, error)
	FindDescendants(ctx context.Context, parentIDs []uuid.UUID) ([]domain.Region, error)
	FindNearestCities(ctx context.Context, p geo.Point, maxDistanceMeters float64) ([]domain.Region, error)
	FindByCityState(ctx context.Context, city, state string, recursive bool) ([]domain.Region, error)
	GetCities(ctx context.Context) ([]domain.Region, error)
	GetCity(ctx context.Context, city, state string) (*domain.Region, error)
	UpdateGeometry(ctx context.Context, id uuid.UUID, g *geo.Geometry) (*domain.Region, error)
	UpdateCityLocation(ctx context.Context, id uuid.UUID, p *geo.Point) (*domain.Region, error)
	Delete(ctx context.Context, id uuid.UUID, recursive bool) error
	EnsurePendingRegion(ctx context.Context) error
	RecomputeBounds(ctx context.Context) (int, error)
}

type GeoAssignment interface {
	Resolve(ctx context.Context, p *geo.Point) (domain.RegionAssignment, error)
}

type POICounter interface {
	RecomputeCount(ctx context.Context, regionID uuid.UUID) (int, error)
}

type Businesses interface {
	Create(ctx context.Context, input BusinessInput) (*domain.Business, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	GetAll(ctx context.Context, page, limit int, filters *BusinessFilters) ([]*domain.Business, int64, error)
	Count(ctx context.Context, filters *BusinessFilters) (int64, error)
	Update(ctx context.Context, id uuid.UUID, input BusinessInput) (*domain.Business, error)
	SetRegions(ctx context.Context, id uuid.UUID, regionIDs []uuid.UUID) (*domain.Business, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Classifications interface {
	GetMap(ctx context.Context) (domain.Classifications, error)
}

type Backfill interface {
	RecomputeBounds(ctx context.Context) (int, error)
	ReassignAll(ctx context.Context) (*BackfillReport, error)
	RecountAll(ctx context.Context) (*BackfillReport, error)
}
