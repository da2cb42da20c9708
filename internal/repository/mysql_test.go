package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibe-gaming/geodirectory/internal/db"
	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/geo"

	_ "github.com/go-sql-driver/mysql"
)

// testDB connects to TEST_MYSQL_DSN, e.g. root:secret@tcp(localhost:3306)/geodirectory_test?parseTime=true&clientFoundRows=true
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("skipping: TEST_MYSQL_DSN not set")
	}
	conn, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.Migrate(conn))
	return conn
}

func mustGeometry(t *testing.T, g orb.Geometry) *geo.Geometry {
	t.Helper()
	out, err := geo.NewGeometry(g)
	require.NoError(t, err)
	return out
}

func newTestRegion(t *testing.T, name string, level int, parent *domain.Region, ring orb.Ring) *domain.Region {
	t.Helper()
	r := &domain.Region{
		ID:          uuid.New(),
		Name:        name,
		DisplayName: name,
		City:        "Testville " + uuid.NewString()[:8],
		State:       "TS",
		Level:       level,
	}
	if level == 0 {
		r.Name = r.City
	}
	if parent != nil {
		r.City = parent.City
		r.ParentID = uuid.NullUUID{UUID: parent.ID, Valid: true}
	}
	if ring != nil {
		r.SetGeometry(mustGeometry(t, orb.Polygon{ring}))
	}
	return r
}

func TestRegionRepositoryRoundTrip(t *testing.T) {
	conn := testDB(t)
	repo := newRegionRepository(conn)
	ctx := context.Background()

	ring := orb.Ring{{10, 10}, {11, 10}, {11, 11}, {10, 11}, {10, 10}}
	city := newTestRegion(t, "", 0, nil, ring)
	require.NoError(t, repo.Create(ctx, city))
	child := newTestRegion(t, "Old Town", 1, city, nil)
	require.NoError(t, repo.Create(ctx, child))
	t.Cleanup(func() { _ = repo.Delete(context.Background(), child.ID, city.ID) })

	got, err := repo.GetByID(ctx, city.ID)
	require.NoError(t, err)
	assert.Equal(t, city.Name, got.Name)
	assert.False(t, got.ParentID.Valid)
	require.NotNil(t, got.Geometry)
	assert.True(t, got.Geometry.Contains(geo.NewPoint(10.5, 10.5)))
	require.NotNil(t, got.CenterLat)
	assert.InDelta(t, 10.5, *got.CenterLat, 1e-3)

	dup := newTestRegion(t, "Old Town", 1, city, nil)
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrDuplicateEntry)

	byName, err := repo.GetByNameAndParent(ctx, "Old Town", child.ParentID)
	require.NoError(t, err)
	assert.Equal(t, child.ID, byName.ID)

	children, err := repo.GetByParentIDs(ctx, []uuid.UUID{city.ID})
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, child.ID, children[0].ID)

	n, err := repo.CountChildren(ctx, city.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	level := 0
	candidates, err := repo.GetIntersecting(ctx, geo.Bound{MinLat: 10.5, MaxLat: 10.5, MinLon: 10.5, MaxLon: 10.5}, &level)
	require.NoError(t, err)
	ids := make([]uuid.UUID, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	assert.Contains(t, ids, city.ID)

	require.NoError(t, repo.UpdatePOICount(ctx, city.ID, 7))
	require.NoError(t, repo.UpdatePOICount(ctx, city.ID, 7))
	got, err = repo.GetByID(ctx, city.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.POICount)

	require.NoError(t, repo.UpdateGeometry(ctx, city.ID, nil, domain.RegionBounds{}))
	got, err = repo.GetByID(ctx, city.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Geometry)
	assert.Nil(t, got.MinLat)

	assert.ErrorIs(t, repo.UpdatePOICount(ctx, uuid.New(), 1), domain.ErrNotFound)
	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegionRepositoryCityUniqueness(t *testing.T) {
	conn := testDB(t)
	repo := newRegionRepository(conn)
	ctx := context.Background()

	city := newTestRegion(t, "", 0, nil, nil)
	require.NoError(t, repo.Create(ctx, city))
	t.Cleanup(func() { _ = repo.Delete(context.Background(), city.ID) })

	before, err := repo.GetCities(ctx)
	require.NoError(t, err)

	twin := *city
	twin.ID = uuid.New()
	assert.ErrorIs(t, repo.Create(ctx, &twin), domain.ErrDuplicateEntry)

	after, err := repo.GetCities(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before))
	_, err = repo.GetByID(ctx, twin.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	found, err := repo.GetCity(ctx, city.City, city.State)
	require.NoError(t, err)
	assert.Equal(t, city.ID, found.ID)
}

func TestBusinessRepositoryCountPublishedInRegion(t *testing.T) {
	conn := testDB(t)
	repo := newBusinessRepository(conn)
	ctx := context.Background()

	regionID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)
	lon, lat := 10.5, 10.5
	published := &domain.Business{
		ID: uuid.New(), Name: "Cafe", Published: true, Longitude: &lon, Latitude: &lat,
		RegionIDs: domain.UUIDList{regionID}, Neighborhoods: domain.StringList{"Old Town"},
		CreatedAt: now, UpdatedAt: now,
	}
	draft := &domain.Business{
		ID: uuid.New(), Name: "Draft", Published: false,
		RegionIDs: domain.UUIDList{regionID},
		CreatedAt: now, UpdatedAt: now,
	}
	for _, b := range []*domain.Business{published, draft} {
		require.NoError(t, repo.Create(ctx, b))
	}
	t.Cleanup(func() {
		_ = repo.Delete(context.Background(), published.ID)
		_ = repo.Delete(context.Background(), draft.ID)
	})

	count, err := repo.CountPublishedInRegion(ctx, regionID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := repo.GetByID(ctx, published.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UUIDList{regionID}, got.RegionIDs)
	assert.True(t, got.Published)

	list, err := repo.GetAll(ctx, 10, 0, &BusinessFilters{Portal: true, IncludeUnpublished: true, RegionIDs: []uuid.UUID{regionID}})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	total, err := repo.Count(ctx, &BusinessFilters{Portal: true, RegionIDs: []uuid.UUID{regionID}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	require.NoError(t, repo.UpdateRegions(ctx, published.ID, domain.StringList{domain.PendingRegionName}, domain.UUIDList{domain.PendingRegionID}))
	count, err = repo.CountPublishedInRegion(ctx, regionID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
