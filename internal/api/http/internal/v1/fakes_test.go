package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vibe-gaming/geodirectory/internal/config"
	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/geo"
	"github.com/vibe-gaming/geodirectory/internal/service"
	"github.com/vibe-gaming/geodirectory/pkg/auth"
	"github.com/vibe-gaming/geodirectory/pkg/validator"
)

type fakeRegions struct {
	byID        map[uuid.UUID]*domain.Region
	all         []domain.Region
	containing  []domain.Region
	children    []domain.Region
	descendants []domain.Region
	cities      []domain.Region
	err         error

	lastPoint     geo.Point
	lastRecursive bool
	lastDistance  float64
	lastGeometry  *geo.Geometry
	lastLocation  *geo.Point
	lastCreate    service.CreateRegionInput
}

func (f *fakeRegions) Create(_ context.Context, input service.CreateRegionInput) (*domain.Region, error) {
	f.lastCreate = input
	if f.err != nil {
		return nil, f.err
	}
	r := &domain.Region{ID: uuid.New(), Name: input.Name, City: input.City, State: input.State, Level: input.Level}
	if input.ParentID != nil {
		r.ParentID = uuid.NullUUID{UUID: *input.ParentID, Valid: true}
	}
	r.SetGeometry(input.Geometry)
	return r, nil
}

func (f *fakeRegions) GetByID(_ context.Context, id uuid.UUID) (*domain.Region, error) {
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, service.ErrRegionNotFound
}

func (f *fakeRegions) GetAll(context.Context) ([]domain.Region, error) {
	return f.all, f.err
}

func (f *fakeRegions) FindContaining(_ context.Context, p geo.Point) ([]domain.Region, error) {
	f.lastPoint = p
	return f.containing, f.err
}

func (f *fakeRegions) FindChildren(context.Context, uuid.UUID) ([]domain.Region, error) {
	return f.children, f.err
}

func (f *fakeRegions) FindDescendants(context.Context, []uuid.UUID) ([]domain.Region, error) {
	return f.descendants, f.err
}

func (f *fakeRegions) FindNearestCities(_ context.Context, p geo.Point, maxDistance float64) ([]domain.Region, error) {
	f.lastPoint, f.lastDistance = p, maxDistance
	return f.cities, f.err
}

func (f *fakeRegions) FindByCityState(_ context.Context, _, _ string, recursive bool) ([]domain.Region, error) {
	f.lastRecursive = recursive
	if f.err != nil {
		return nil, f.err
	}
	if recursive {
		return f.descendants, nil
	}
	return f.children, nil
}

func (f *fakeRegions) GetCities(context.Context) ([]domain.Region, error) {
	return f.cities, f.err
}

func (f *fakeRegions) GetCity(_ context.Context, city, state string) (*domain.Region, error) {
	for i := range f.cities {
		if f.cities[i].City == city && f.cities[i].State == state {
			return &f.cities[i], nil
		}
	}
	return nil, service.ErrRegionNotFound
}

func (f *fakeRegions) UpdateGeometry(_ context.Context, id uuid.UUID, g *geo.Geometry) (*domain.Region, error) {
	f.lastGeometry = g
	r, err := f.GetByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	r.SetGeometry(g)
	return r, nil
}

func (f *fakeRegions) UpdateCityLocation(_ context.Context, id uuid.UUID, p *geo.Point) (*domain.Region, error) {
	f.lastLocation = p
	r, err := f.GetByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	if p != nil {
		r.SetGeometry(geo.NewPointGeometry(*p))
	}
	return r, nil
}

func (f *fakeRegions) Delete(_ context.Context, id uuid.UUID, recursive bool) error {
	f.lastRecursive = recursive
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return service.ErrRegionNotFound
	}
	return nil
}

func (f *fakeRegions) EnsurePendingRegion(context.Context) error { return nil }

func (f *fakeRegions) RecomputeBounds(context.Context) (int, error) { return 0, nil }

type fakeGeoAssignment struct {
	assignment domain.RegionAssignment
	err        error
	lastPoint  *geo.Point
}

func (f *fakeGeoAssignment) Resolve(_ context.Context, p *geo.Point) (domain.RegionAssignment, error) {
	f.lastPoint = p
	return f.assignment, f.err
}

type fakeCounter struct {
	counts map[uuid.UUID]int
}

func (f *fakeCounter) RecomputeCount(_ context.Context, id uuid.UUID) (int, error) {
	count, ok := f.counts[id]
	if !ok {
		return 0, service.ErrRegionNotFound
	}
	return count, nil
}

type fakeBusinesses struct {
	byID map[uuid.UUID]*domain.Business
	list []*domain.Business
	err  error

	lastInput   service.BusinessInput
	lastFilters *service.BusinessFilters
	lastPage    int
	lastLimit   int
	lastRegions []uuid.UUID
}

func (f *fakeBusinesses) Create(_ context.Context, input service.BusinessInput) (*domain.Business, error) {
	f.lastInput = input
	if f.err != nil {
		return nil, f.err
	}
	b := &domain.Business{ID: uuid.New(), Name: input.Name, City: input.City, State: input.State}
	b.SetLocation(input.Location)
	b.SetAssignment(domain.PendingAssignment())
	return b, nil
}

func (f *fakeBusinesses) GetByID(_ context.Context, id uuid.UUID) (*domain.Business, error) {
	if b, ok := f.byID[id]; ok {
		return b, nil
	}
	return nil, service.ErrBusinessNotFound
}

func (f *fakeBusinesses) GetAll(_ context.Context, page, limit int, filters *service.BusinessFilters) ([]*domain.Business, int64, error) {
	f.lastPage, f.lastLimit, f.lastFilters = page, limit, filters
	return f.list, int64(len(f.list)), f.err
}

func (f *fakeBusinesses) Count(_ context.Context, filters *service.BusinessFilters) (int64, error) {
	f.lastFilters = filters
	return int64(len(f.list)), f.err
}

func (f *fakeBusinesses) Update(ctx context.Context, id uuid.UUID, input service.BusinessInput) (*domain.Business, error) {
	f.lastInput = input
	b, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Name = input.Name
	return b, nil
}

func (f *fakeBusinesses) SetRegions(ctx context.Context, id uuid.UUID, regionIDs []uuid.UUID) (*domain.Business, error) {
	f.lastRegions = regionIDs
	if f.err != nil {
		return nil, f.err
	}
	b, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.RegionIDs = regionIDs
	return b, nil
}

func (f *fakeBusinesses) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := f.GetByID(ctx, id)
	return err
}

type fakeClassifications struct {
	m domain.Classifications
}

func (f *fakeClassifications) GetMap(context.Context) (domain.Classifications, error) {
	return f.m, nil
}

// fakeBackfill reports each task on started and blocks until release is closed.
type fakeBackfill struct {
	started chan string
	release chan struct{}
}

func (f *fakeBackfill) run(task string) {
	f.started <- task
	<-f.release
}

func (f *fakeBackfill) RecomputeBounds(context.Context) (int, error) {
	f.run(service.BackfillTaskBounds)
	return 0, nil
}

func (f *fakeBackfill) ReassignAll(context.Context) (*service.BackfillReport, error) {
	f.run(service.BackfillTaskAssignments)
	return &service.BackfillReport{}, nil
}

func (f *fakeBackfill) RecountAll(context.Context) (*service.BackfillReport, error) {
	f.run(service.BackfillTaskCounts)
	return &service.BackfillReport{}, nil
}

type fixture struct {
	regions    *fakeRegions
	geo        *fakeGeoAssignment
	counter    *fakeCounter
	businesses *fakeBusinesses
	backfill   *fakeBackfill
	cfg        *config.Config
	tokens     *auth.Manager
	router     *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.RegisterGinValidator()

	cfg := &config.Config{
		Geo: config.Geo{
			DefaultNearDistance: 50000,
			MaxNearDistance:     100000,
			MaxGeoPageSize:      250,
			TreeMaxDepth:        100,
		},
		Auth: config.AuthConfig{
			Enabled: true,
			JWT:     config.JWTConfig{SigningKey: "test", AccessTokenTTL: time.Minute},
		},
	}
	tokens, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		t.Fatal(err)
	}

	f := &fixture{
		regions:    &fakeRegions{byID: map[uuid.UUID]*domain.Region{}},
		geo:        &fakeGeoAssignment{assignment: domain.PendingAssignment()},
		counter:    &fakeCounter{counts: map[uuid.UUID]int{}},
		businesses: &fakeBusinesses{byID: map[uuid.UUID]*domain.Business{}},
		backfill:   &fakeBackfill{started: make(chan string, 8), release: make(chan struct{})},
		cfg:        cfg,
		tokens:     tokens,
	}

	classifications := domain.NewClassifications([]domain.Classification{
		{ID: "food", Name: "Food", Types: domain.ClassificationTypeList{
			{ID: "cafe", Name: "Cafe"},
			{ID: "bakery", Name: "Bakery"},
		}},
	})
	services := &service.Services{
		Regions:         f.regions,
		GeoAssignment:   f.geo,
		POICounts:       f.counter,
		Businesses:      f.businesses,
		Classifications: &fakeClassifications{m: classifications},
		Backfill:        f.backfill,
	}

	f.router = gin.New()
	NewHandler(services, tokens, cfg).Init(f.router.Group("/api"))
	return f
}

func (f *fixture) do(method, target, body string, admin bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if admin {
		token, _, _ := f.tokens.NewJWT("ops")
		req.Header.Set(authorizationHeader, "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) addRegion(name string, level int, parent *domain.Region, poiCount int) domain.Region {
	r := domain.Region{
		ID:       uuid.New(),
		Name:     name,
		City:     "New York",
		State:    "NY",
		Level:    level,
		POICount: poiCount,
	}
	if parent != nil {
		r.ParentID = uuid.NullUUID{UUID: parent.ID, Valid: true}
	}
	stored := r
	f.regions.byID[r.ID] = &stored
	return r
}
