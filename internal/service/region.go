package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vibe-gaming/geodirectory/internal/config"
	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/geo"
	"github.com/vibe-gaming/geodirectory/internal/repository"
	"github.com/vibe-gaming/geodirectory/pkg/logger"
)

// maxDescendantDepth stops descendant walks on malformed (cyclic) parent links.
const maxDescendantDepth = 32

type CreateRegionInput struct {
	Name        string
	DisplayName string
	City        string
	State       string
	Level       int
	ParentID    *uuid.UUID
	Geometry    *geo.Geometry
}

type regionService struct {
	regionRepository repository.Regions
	cache            RegionCache
	geoConfig        config.Geo
}

func newRegionService(regionRepository repository.Regions, cache RegionCache, geoConfig config.Geo) *regionService {
	return &regionService{
		regionRepository: regionRepository,
		cache:            cache,
		geoConfig:        geoConfig,
	}
}

func (s *regionService) Create(ctx context.Context, input CreateRegionInput) (*domain.Region, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.City = strings.TrimSpace(input.City)
	input.State = strings.TrimSpace(input.State)
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	if input.Name == "" || input.City == "" || input.State == "" {
		return nil, invalidInput("name, city and state are required")
	}
	if input.Level < domain.CityLevel {
		return nil, invalidInput("level must not be negative")
	}

	region := &domain.Region{
		ID:          uuid.New(),
		Name:        input.Name,
		DisplayName: input.DisplayName,
		City:        input.City,
		State:       input.State,
		Level:       input.Level,
	}
	if region.DisplayName == "" {
		region.DisplayName = region.Name
	}
	region.SetGeometry(input.Geometry)

	if input.Level == domain.CityLevel {
		if input.ParentID != nil {
			return nil, invalidInput("a city has no parent")
		}
		if input.Name != input.City {
			return nil, invalidInput("a city is named after its city")
		}
		if _, err := s.regionRepository.GetCity(ctx, input.City, input.State); err == nil {
			return nil, ErrRegionAlreadyExists
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	} else {
		if input.ParentID == nil {
			return nil, invalidInput("parent_id is required below city level")
		}
		if *input.ParentID == domain.PendingRegionID {
			return nil, ErrPendingRegionImmutable
		}
		parent, err := s.GetByID(ctx, *input.ParentID)
		if errors.Is(err, ErrRegionNotFound) {
			return nil, ErrParentRegionNotFound
		}
		if err != nil {
			return nil, err
		}
		if input.Level < parent.Level {
			return nil, invalidInput("level must not be lower than the parent level")
		}
		region.ParentID = uuid.NullUUID{UUID: parent.ID, Valid: true}

		if _, err := s.regionRepository.GetByNameAndParent(ctx, input.Name, region.ParentID); err == nil {
			return nil, ErrRegionAlreadyExists
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	if err := s.regionRepository.Create(ctx, region); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrRegionAlreadyExists
		}
		return nil, err
	}

	return region, nil
}

// GetByID reads through the region cache. The pending sentinel is returned like any region.
func (s *regionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Region, error) {
	if region, ok := s.cache.Get(id); ok {
		return region, nil
	}

	region, err := s.regionRepository.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrRegionNotFound
	}
	if err != nil {
		return nil, err
	}

	s.cache.Add(region)
	return region, nil
}

func (s *regionService) GetAll(ctx context.Context) ([]domain.Region, error) {
	return s.regionRepository.GetAll(ctx)
}

// FindContaining returns every region whose geometry contains p, finest level first.
func (s *regionService) FindContaining(ctx context.Context, p geo.Point) ([]domain.Region, error) {
	candidates, err := s.regionRepository.GetIntersecting(ctx, geo.Bound{
		MinLat: p.Lat, MaxLat: p.Lat,
		MinLon: p.Lon, MaxLon: p.Lon,
	}, nil)
	if err != nil {
		return nil, err
	}

	regions := make([]domain.Region, 0, len(candidates))
	for _, r := range candidates {
		if r.IsPending() || r.Level < domain.CityLevel {
			continue
		}
		if r.Geometry.Contains(p) {
			regions = append(regions, r)
		}
	}

	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].Level != regions[j].Level {
			return regions[i].Level > regions[j].Level
		}
		return lessByName(&regions[i], &regions[j])
	})

	return regions, nil
}

func (s *regionService) FindChildren(ctx context.Context, parentID uuid.UUID) ([]domain.Region, error) {
	return s.regionRepository.GetByParentIDs(ctx, []uuid.UUID{parentID})
}

// FindDescendants walks down from parentIDs level by level. The parents themselves are not included.
func (s *regionService) FindDescendants(ctx context.Context, parentIDs []uuid.UUID) ([]domain.Region, error) {
	visited := make(map[uuid.UUID]struct{}, len(parentIDs))
	for _, id := range parentIDs {
		visited[id] = struct{}{}
	}

	var out []domain.Region
	frontier := parentIDs
	for depth := 0; len(frontier) > 0; depth++ {
		if depth == maxDescendantDepth {
			logger.Warn("region descendant walk hit depth limit",
				zap.Int("depth", depth),
				zap.Int("frontier", len(frontier)),
			)
			break
		}

		children, err := s.regionRepository.GetByParentIDs(ctx, frontier)
		if err != nil {
			return nil, err
		}

		next := make([]uuid.UUID, 0, len(children))
		for _, child := range children {
			if _, seen := visited[child.ID]; seen {
				continue
			}
			visited[child.ID] = struct{}{}
			out = append(out, child)
			next = append(next, child.ID)
		}
		frontier = next
	}

	return out, nil
}

// FindNearestCities returns cities within maxDistanceMeters of p, nearest first.
// A non-positive distance uses the default; larger distances are clamped.
func (s *regionService) FindNearestCities(ctx context.Context, p geo.Point, maxDistanceMeters float64) ([]domain.Region, error) {
	if maxDistanceMeters <= 0 {
		maxDistanceMeters = s.geoConfig.DefaultNearDistance
	}
	if s.geoConfig.MaxNearDistance > 0 && maxDistanceMeters > s.geoConfig.MaxNearDistance {
		maxDistanceMeters = s.geoConfig.MaxNearDistance
	}

	level := domain.CityLevel
	candidates, err := s.regionRepository.GetIntersecting(ctx, geo.BoundAround(p, maxDistanceMeters), &level)
	if err != nil {
		return nil, err
	}

	type scored struct {
		region   domain.Region
		distance float64
	}
	near := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		d := c.Geometry.DistanceMeters(p)
		if d <= maxDistanceMeters {
			near = append(near, scored{region: c, distance: d})
		}
	}

	sort.SliceStable(near, func(i, j int) bool {
		if near[i].distance != near[j].distance {
			return near[i].distance < near[j].distance
		}
		return lessByName(&near[i].region, &near[j].region)
	})

	cities := make([]domain.Region, 0, len(near))
	for _, n := range near {
		cities = append(cities, n.region)
	}
	return cities, nil
}

// FindByCityState returns the regions under the named city. recursive includes every level below.
func (s *regionService) FindByCityState(ctx context.Context, city, state string, recursive bool) ([]domain.Region, error) {
	root, err := s.GetCity(ctx, city, state)
	if err != nil {
		return nil, err
	}
	if recursive {
		return s.FindDescendants(ctx, []uuid.UUID{root.ID})
	}
	return s.FindChildren(ctx, root.ID)
}

func (s *regionService) GetCities(ctx context.Context) ([]domain.Region, error) {
	return s.regionRepository.GetCities(ctx)
}

func (s *regionService) GetCity(ctx context.Context, city, state string) (*domain.Region, error) {
	region, err := s.regionRepository.GetCity(ctx, strings.TrimSpace(city), strings.TrimSpace(state))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrRegionNotFound
	}
	return region, err
}

// UpdateGeometry replaces the geometry and its derived bounds. Cached copies keep the old shape until they expire.
func (s *regionService) UpdateGeometry(ctx context.Context, id uuid.UUID, g *geo.Geometry) (*domain.Region, error) {
	if id == domain.PendingRegionID {
		return nil, ErrPendingRegionImmutable
	}

	if err := s.regionRepository.UpdateGeometry(ctx, id, g, domain.BoundsFor(g)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrRegionNotFound
		}
		return nil, err
	}

	region, err := s.regionRepository.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrRegionNotFound
	}
	return region, err
}

// UpdateCityLocation sets a city's geometry to a single point, or clears it when p is nil.
func (s *regionService) UpdateCityLocation(ctx context.Context, id uuid.UUID, p *geo.Point) (*domain.Region, error) {
	region, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !region.IsCity() {
		return nil, ErrNotACity
	}

	var g *geo.Geometry
	if p != nil {
		if !p.Valid() {
			return nil, invalidInput("location out of range")
		}
		g = geo.NewPointGeometry(*p)
	}
	return s.UpdateGeometry(ctx, id, g)
}

// Delete removes a region. Without recursive a region with children is refused.
func (s *regionService) Delete(ctx context.Context, id uuid.UUID, recursive bool) error {
	if id == domain.PendingRegionID {
		return ErrPendingRegionImmutable
	}

	if _, err := s.regionRepository.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrRegionNotFound
		}
		return err
	}

	ids := []uuid.UUID{id}
	if recursive {
		descendants, err := s.FindDescendants(ctx, ids)
		if err != nil {
			return err
		}
		for _, d := range descendants {
			ids = append(ids, d.ID)
		}
	} else {
		n, err := s.regionRepository.CountChildren(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrRegionHasChildren
		}
	}

	if err := s.regionRepository.Delete(ctx, ids...); err != nil {
		return err
	}
	for _, removed := range ids {
		s.cache.Remove(removed)
	}

	return nil
}

// EnsurePendingRegion inserts the sentinel region if it is missing. Safe to call on every start.
func (s *regionService) EnsurePendingRegion(ctx context.Context) error {
	_, err := s.regionRepository.GetByID(ctx, domain.PendingRegionID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	err = s.regionRepository.Create(ctx, domain.NewPendingRegion())
	if err != nil && !errors.Is(err, domain.ErrDuplicateEntry) {
		return errors.Wrap(err, "create pending region")
	}
	logger.Info("pending region created", zap.String("id", domain.PendingRegionID.String()))
	return nil
}

// RecomputeBounds rewrites the bounds of every region that has a geometry.
func (s *regionService) RecomputeBounds(ctx context.Context) (int, error) {
	regions, err := s.regionRepository.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range regions {
		if regions[i].Geometry == nil {
			continue
		}
		if err := s.regionRepository.UpdateBounds(ctx, regions[i].ID, domain.BoundsFor(regions[i].Geometry)); err != nil {
			return updated, errors.Wrapf(err, "update bounds of region %s", regions[i].ID)
		}
		updated++
	}

	return updated, nil
}

func lessByName(a, b *domain.Region) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID.String() < b.ID.String()
}
