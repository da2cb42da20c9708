package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"github.com/vibe-gaming/geodirectory/internal/config"
	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/geo"
	"github.com/vibe-gaming/geodirectory/internal/repository"
)

var testGeoConfig = config.Geo{
	DefaultNearDistance: 50000,
	MaxNearDistance:     100000,
	MaxGeoPageSize:      250,
	TreeMaxDepth:        100,
}

type fakeRegionRepo struct {
	mu      sync.Mutex
	regions map[uuid.UUID]domain.Region
	err     error
	calls   int
}

func newFakeRegionRepo() *fakeRegionRepo {
	return &fakeRegionRepo{regions: make(map[uuid.UUID]domain.Region)}
}

func (r *fakeRegionRepo) touch() error {
	r.calls++
	return r.err
}

func (r *fakeRegionRepo) sorted(keep func(domain.Region) bool) []domain.Region {
	var out []domain.Region
	for _, region := range r.regions {
		if keep(region) {
			out = append(out, region)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessByName(&out[i], &out[j]) })
	return out
}

func (r *fakeRegionRepo) Create(_ context.Context, region *domain.Region) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return err
	}
	if _, ok := r.regions[region.ID]; ok {
		return domain.ErrDuplicateEntry
	}
	r.regions[region.ID] = *region
	return nil
}

func (r *fakeRegionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return nil, err
	}
	region, ok := r.regions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &region, nil
}

func (r *fakeRegionRepo) GetAll(context.Context) ([]domain.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return nil, err
	}
	return r.sorted(func(x domain.Region) bool { return x.Level >= domain.CityLevel }), nil
}

func (r *fakeRegionRepo) GetByParentIDs(_ context.Context, parentIDs []uuid.UUID) ([]domain.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]struct{}, len(parentIDs))
	for _, id := range parentIDs {
		set[id] = struct{}{}
	}
	return r.sorted(func(x domain.Region) bool {
		if !x.ParentID.Valid {
			return false
		}
		_, ok := set[x.ParentID.UUID]
		return ok
	}), nil
}

func (r *fakeRegionRepo) GetByNameAndParent(_ context.Context, name string, parentID uuid.NullUUID) (*domain.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return nil, err
	}
	for _, x := range r.regions {
		if x.Name == name && x.ParentID == parentID {
			return &x, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRegionRepo) GetCities(context.Context) ([]domain.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return nil, err
	}
	return r.sorted(func(x domain.Region) bool { return x.Level == domain.CityLevel }), nil
}

func (r *fakeRegionRepo) GetCity(_ context.Context, city, state string) (*domain.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return nil, err
	}
	for _, x := range r.regions {
		if x.Level == domain.CityLevel && x.City == city && x.State == state {
			return &x, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRegionRepo) GetIntersecting(_ context.Context, b geo.Bound, level *int) ([]domain.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return nil, err
	}
	return r.sorted(func(x domain.Region) bool {
		if x.Geometry == nil || x.MinLat == nil {
			return false
		}
		if level != nil && x.Level != *level {
			return false
		}
		return b.Intersects(geo.Bound{MinLat: *x.MinLat, MaxLat: *x.MaxLat, MinLon: *x.MinLon, MaxLon: *x.MaxLon})
	}), nil
}

func (r *fakeRegionRepo) CountChildren(_ context.Context, id uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return 0, err
	}
	n := 0
	for _, x := range r.regions {
		if x.ParentID.Valid && x.ParentID.UUID == id {
			n++
		}
	}
	return n, nil
}

func (r *fakeRegionRepo) UpdateGeometry(_ context.Context, id uuid.UUID, g *geo.Geometry, bounds domain.RegionBounds) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return err
	}
	x, ok := r.regions[id]
	if !ok {
		return domain.ErrNotFound
	}
	x.Geometry = g
	x.ApplyBounds(bounds)
	r.regions[id] = x
	return nil
}

func (r *fakeRegionRepo) UpdateBounds(_ context.Context, id uuid.UUID, bounds domain.RegionBounds) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return err
	}
	x, ok := r.regions[id]
	if !ok {
		return domain.ErrNotFound
	}
	x.ApplyBounds(bounds)
	r.regions[id] = x
	return nil
}

func (r *fakeRegionRepo) UpdatePOICount(_ context.Context, id uuid.UUID, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return err
	}
	x, ok := r.regions[id]
	if !ok {
		return domain.ErrNotFound
	}
	x.POICount = count
	r.regions[id] = x
	return nil
}

func (r *fakeRegionRepo) Delete(_ context.Context, ids ...uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return err
	}
	for _, id := range ids {
		delete(r.regions, id)
	}
	return nil
}

func (r *fakeRegionRepo) count(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.regions[id].POICount
}

type fakeBusinessRepo struct {
	mu         sync.Mutex
	businesses map[uuid.UUID]domain.Business
	lastFilter *repository.BusinessFilters
	lastLimit  int
	err        error
}

func newFakeBusinessRepo() *fakeBusinessRepo {
	return &fakeBusinessRepo{businesses: make(map[uuid.UUID]domain.Business)}
}

func (r *fakeBusinessRepo) Create(_ context.Context, b *domain.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.businesses[b.ID] = *b
	return nil
}

func (r *fakeBusinessRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	b, ok := r.businesses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (r *fakeBusinessRepo) GetAll(_ context.Context, limit, _ int, filters *repository.BusinessFilters) ([]*domain.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter, r.lastLimit = filters, limit
	var out []*domain.Business
	for _, b := range r.businesses {
		b := b
		out = append(out, &b)
	}
	return out, r.err
}

func (r *fakeBusinessRepo) Count(_ context.Context, filters *repository.BusinessFilters) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filters
	return int64(len(r.businesses)), r.err
}

func (r *fakeBusinessRepo) GetLocatedAfter(_ context.Context, afterID uuid.UUID, limit int) ([]*domain.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Business
	for _, b := range r.businesses {
		if b.Longitude == nil || b.Latitude == nil {
			continue
		}
		if b.ID.String() <= afterID.String() {
			continue
		}
		b := b
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeBusinessRepo) Update(_ context.Context, b *domain.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.businesses[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.businesses[b.ID] = *b
	return nil
}

func (r *fakeBusinessRepo) UpdateRegions(_ context.Context, id uuid.UUID, names domain.StringList, regionIDs domain.UUIDList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.businesses[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Neighborhoods, b.RegionIDs = names, regionIDs
	r.businesses[id] = b
	return nil
}

func (r *fakeBusinessRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.businesses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.businesses, id)
	return nil
}

func (r *fakeBusinessRepo) CountPublishedInRegion(_ context.Context, regionID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	n := 0
	for _, b := range r.businesses {
		if b.Published && b.RegionIDs.Contains(regionID) {
			n++
		}
	}
	return n, nil
}

type fakeClassificationRepo struct {
	list []domain.Classification
}

func (r *fakeClassificationRepo) GetAll(context.Context) ([]domain.Classification, error) {
	return r.list, nil
}

type fakeCache struct {
	mu      sync.Mutex
	regions map[uuid.UUID]domain.Region
	removed []uuid.UUID
}

func newFakeCache() *fakeCache {
	return &fakeCache{regions: make(map[uuid.UUID]domain.Region)}
}

func (c *fakeCache) Get(id uuid.UUID) (*domain.Region, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.regions[id]
	if !ok {
		return nil, false
	}
	return &r, true
}

func (c *fakeCache) Add(region *domain.Region) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.regions[region.ID] = *region
}

func (c *fakeCache) Remove(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.regions, id)
	c.removed = append(c.removed, id)
}

// fakeScheduler records submissions, failing for ids in failFor.
type fakeScheduler struct {
	mu        sync.Mutex
	scheduled []uuid.UUID
	failFor   map[uuid.UUID]error
}

func (s *fakeScheduler) ScheduleRecount(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = append(s.scheduled, id)
	return s.failFor[id]
}

func (s *fakeScheduler) ids() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uuid.UUID(nil), s.scheduled...)
}

func (s *fakeScheduler) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = nil
}

// syncScheduler runs recounts inline.
type syncScheduler struct {
	counter POICounter
}

func (s syncScheduler) ScheduleRecount(ctx context.Context, id uuid.UUID) error {
	_, err := s.counter.RecomputeCount(ctx, id)
	return err
}

type fixture struct {
	regionRepo   *fakeRegionRepo
	businessRepo *fakeBusinessRepo
	cache        *fakeCache
	scheduler    *fakeScheduler
	services     *Services

	nyc       *domain.Region
	manhattan *domain.Region
}

var (
	nycRing       = orb.Ring{{-74.26, 40.49}, {-73.70, 40.49}, {-73.70, 40.92}, {-74.26, 40.92}, {-74.26, 40.49}}
	manhattanRing = orb.Ring{{-74.02, 40.70}, {-73.93, 40.70}, {-73.93, 40.88}, {-74.02, 40.88}, {-74.02, 40.70}}

	timesSquare = geo.NewPoint(-73.9855, 40.758)
	brooklyn    = geo.NewPoint(-73.95, 40.65)
	newark      = geo.NewPoint(-74.3, 40.73)
	pacific     = geo.NewPoint(-140, 30)
)

func mustPolygon(ring orb.Ring) *geo.Geometry {
	g, err := geo.NewGeometry(orb.Polygon{ring})
	if err != nil {
		panic(err)
	}
	return g
}

func newFixture() *fixture {
	f := &fixture{
		regionRepo:   newFakeRegionRepo(),
		businessRepo: newFakeBusinessRepo(),
		cache:        newFakeCache(),
		scheduler:    &fakeScheduler{},
	}

	f.nyc = &domain.Region{
		ID: uuid.New(), Name: "New York", DisplayName: "New York", City: "New York", State: "NY", Level: 0,
	}
	f.nyc.SetGeometry(mustPolygon(nycRing))
	f.manhattan = &domain.Region{
		ID: uuid.New(), Name: "Manhattan", DisplayName: "Manhattan", City: "New York", State: "NY", Level: 1,
		ParentID: uuid.NullUUID{UUID: f.nyc.ID, Valid: true},
	}
	f.manhattan.SetGeometry(mustPolygon(manhattanRing))

	pending := domain.NewPendingRegion()
	for _, r := range []*domain.Region{f.nyc, f.manhattan, pending} {
		f.regionRepo.regions[r.ID] = *r
	}

	cfg := &config.Config{Geo: testGeoConfig, Backfill: config.Backfill{BatchSize: 2}}
	f.services = NewServices(Deps{
		Config: cfg,
		Repos: &repository.Repositories{
			Regions:         f.regionRepo,
			Businesses:      f.businessRepo,
			Classifications: &fakeClassificationRepo{},
		},
		RegionCache: f.cache,
		Scheduler:   f.scheduler,
	})
	return f
}
