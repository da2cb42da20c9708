package repository

import (
	"context"

	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/geo"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Regions         Regions
	Businesses      Businesses
	Classifications Classifications
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Regions:         newRegionRepository(db),
		Businesses:      newBusinessRepository(db),
		Classifications: newClassificationRepository(db),
	}
}

// Regions lists exclude the pending sentinel unless they look it up by id.
type Regions interface {
	Create(ctx context.Context, region *domain.Region) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Region, error)
	GetAll(ctx context.Context) ([]domain.Region, error)
	GetByParentIDs(ctx context.Context, parentIDs []uuid.UUID) ([]domain.Region, error)
	GetByNameAndParent(ctx context.Context, name string, parentID uuid.NullUUID) (*domain.Region, error)
	GetCities(ctx context.Context) ([]domain.Region, error)
	GetCity(ctx context.Context, city, state string) (*domain.Region, error)
	// GetIntersecting returns regions with geometry whose bounding box overlaps b.
	// level filters to a single level when not nil.
	GetIntersecting(ctx context.Context, b geo.Bound, level *int) ([]domain.Region, error)
	CountChildren(ctx context.Context, id uuid.UUID) (int, error)
	UpdateGeometry(ctx context.Context, id uuid.UUID, g *geo.Geometry, bounds domain.RegionBounds) error
	UpdateBounds(ctx context.Context, id uuid.UUID, bounds domain.RegionBounds) error
	UpdatePOICount(ctx context.Context, id uuid.UUID, count int) error
	Delete(ctx context.Context, ids ...uuid.UUID) error
}

type Businesses interface {
	Create(ctx context.Context, business *domain.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	GetAll(ctx context.Context, limit, offset int, filters *BusinessFilters) ([]*domain.Business, error)
	Count(ctx context.Context, filters *BusinessFilters) (int64, error)
	// GetLocatedAfter pages through businesses with a coordinate in id order.
	GetLocatedAfter(ctx context.Context, afterID uuid.UUID, limit int) ([]*domain.Business, error)
	Update(ctx context.Context, business *domain.Business) error
	UpdateRegions(ctx context.Context, id uuid.UUID, names domain.StringList, regionIDs domain.UUIDList) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountPublishedInRegion(ctx context.Context, regionID uuid.UUID) (int, error)
}

type Classifications interface {
	GetAll(ctx context.Context) ([]domain.Classification, error)
}
