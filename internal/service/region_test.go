package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/geo"
)

func TestRegionCreateValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	nycID := f.nyc.ID

	cases := []struct {
		name  string
		input CreateRegionInput
		want  error
	}{
		{"missing name", CreateRegionInput{City: "Boston", State: "MA"}, domain.ErrInvalidInput},
		{"missing state", CreateRegionInput{Name: "Boston", City: "Boston"}, domain.ErrInvalidInput},
		{"city name differs", CreateRegionInput{Name: "Beantown", City: "Boston", State: "MA"}, domain.ErrInvalidInput},
		{"city with parent", CreateRegionInput{Name: "Boston", City: "Boston", State: "MA", ParentID: &nycID}, domain.ErrInvalidInput},
		{"negative level", CreateRegionInput{Name: "X", City: "Boston", State: "MA", Level: -1}, domain.ErrInvalidInput},
		{"child without parent", CreateRegionInput{Name: "SoHo", City: "New York", State: "NY", Level: 2}, domain.ErrInvalidInput},
		{"duplicate city", CreateRegionInput{Name: "New York", City: "New York", State: "NY"}, ErrRegionAlreadyExists},
		{"duplicate sibling", CreateRegionInput{Name: "Manhattan", City: "New York", State: "NY", Level: 1, ParentID: &nycID}, ErrRegionAlreadyExists},
	}
	stored := len(f.regionRepo.regions)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.services.Regions.Create(ctx, tc.input)
			assert.ErrorIs(t, err, tc.want)
			assert.Len(t, f.regionRepo.regions, stored)
		})
	}

	missing := uuid.New()
	_, err := f.services.Regions.Create(ctx, CreateRegionInput{Name: "SoHo", City: "New York", State: "NY", Level: 2, ParentID: &missing})
	assert.ErrorIs(t, err, ErrParentRegionNotFound)

	pending := domain.PendingRegionID
	_, err = f.services.Regions.Create(ctx, CreateRegionInput{Name: "SoHo", City: "New York", State: "NY", Level: 2, ParentID: &pending})
	assert.ErrorIs(t, err, ErrPendingRegionImmutable)
}

func TestRegionCreate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	parent := f.manhattan.ID

	soho, err := f.services.Regions.Create(ctx, CreateRegionInput{
		Name:     " SoHo ",
		City:     "New York",
		State:    "NY",
		Level:    2,
		ParentID: &parent,
		Geometry: mustPolygon(orb.Ring{{-74.01, 40.72}, {-73.99, 40.72}, {-73.99, 40.73}, {-74.01, 40.73}, {-74.01, 40.72}}),
	})
	require.NoError(t, err)
	assert.Equal(t, "SoHo", soho.Name)
	assert.Equal(t, "SoHo", soho.DisplayName)
	assert.Equal(t, uuid.NullUUID{UUID: parent, Valid: true}, soho.ParentID)
	require.NotNil(t, soho.MinLat)
	assert.InDelta(t, 40.72, *soho.MinLat, 1e-6)
	assert.InDelta(t, -74.0, *soho.CenterLon, 1e-6)

	stored, err := f.regionRepo.GetByID(ctx, soho.ID)
	require.NoError(t, err)
	assert.Equal(t, "SoHo", stored.Name)

	boston, err := f.services.Regions.Create(ctx, CreateRegionInput{Name: "Boston", DisplayName: "Boston, MA", City: "Boston", State: "MA"})
	require.NoError(t, err)
	assert.False(t, boston.ParentID.Valid)
	assert.Equal(t, "Boston, MA", boston.DisplayName)
	assert.Nil(t, boston.Geometry)
}

func TestRegionGetByIDUsesCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	got, err := f.services.Regions.GetByID(ctx, f.manhattan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Manhattan", got.Name)
	calls := f.regionRepo.calls

	got, err = f.services.Regions.GetByID(ctx, f.manhattan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Manhattan", got.Name)
	assert.Equal(t, calls, f.regionRepo.calls)

	_, err = f.services.Regions.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrRegionNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegionFindContaining(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	regions, err := f.services.Regions.FindContaining(ctx, timesSquare)
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, f.manhattan.ID, regions[0].ID)
	assert.Equal(t, f.nyc.ID, regions[1].ID)

	regions, err = f.services.Regions.FindContaining(ctx, brooklyn)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, f.nyc.ID, regions[0].ID)

	regions, err = f.services.Regions.FindContaining(ctx, newark)
	require.NoError(t, err)
	assert.Empty(t, regions)
}

func TestRegionFindContainingSameLevelTieBreak(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	twin := domain.Region{ID: uuid.New(), Name: "Gotham", City: "Gotham", State: "NY", Level: 0}
	twin.SetGeometry(mustPolygon(nycRing))
	f.regionRepo.regions[twin.ID] = twin

	regions, err := f.services.Regions.FindContaining(ctx, brooklyn)
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, "Gotham", regions[0].Name)
	assert.Equal(t, "New York", regions[1].Name)
}

func TestRegionFindContainingNearBulgingEdge(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	wide, err := f.services.Regions.Create(ctx, CreateRegionInput{
		Name:     "Allegheny",
		City:     "Allegheny",
		State:    "PA",
		Geometry: mustPolygon(orb.Ring{{-80, 30}, {-70, 30}, {-70, 40}, {-80, 40}, {-80, 30}}),
	})
	require.NoError(t, err)
	require.NotNil(t, wide.MaxLat)
	assert.Greater(t, *wide.MaxLat, 40.1)

	// North of every vertex but south of the great-circle edge between them.
	regions, err := f.services.Regions.FindContaining(ctx, geo.NewPoint(-75, 40.1))
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, wide.ID, regions[0].ID)

	regions, err = f.services.Regions.FindContaining(ctx, geo.NewPoint(-75, 40.2))
	require.NoError(t, err)
	assert.Empty(t, regions)
}

func TestRegionFindContainingPropagatesErrors(t *testing.T) {
	f := newFixture()
	f.regionRepo.err = errors.New("connection reset")

	_, err := f.services.Regions.FindContaining(context.Background(), timesSquare)
	assert.EqualError(t, err, "connection reset")
}

func TestRegionFindNearestCities(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	philly := domain.Region{ID: uuid.New(), Name: "Philadelphia", City: "Philadelphia", State: "PA", Level: 0}
	philly.SetGeometry(geo.NewPointGeometry(geo.NewPoint(-75.1652, 39.9526)))
	f.regionRepo.regions[philly.ID] = philly

	cities, err := f.services.Regions.FindNearestCities(ctx, newark, 0)
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, f.nyc.ID, cities[0].ID)

	// clamped to the 100km maximum, Philadelphia (~113km) stays out
	cities, err = f.services.Regions.FindNearestCities(ctx, newark, 500000)
	require.NoError(t, err)
	require.Len(t, cities, 1)

	trenton := geo.NewPoint(-74.7597, 40.2206)
	cities, err = f.services.Regions.FindNearestCities(ctx, trenton, 100000)
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "Philadelphia", cities[0].Name)
	assert.Equal(t, "New York", cities[1].Name)

	cities, err = f.services.Regions.FindNearestCities(ctx, pacific, 0)
	require.NoError(t, err)
	assert.Empty(t, cities)
}

func TestRegionFindDescendantsAndByCityState(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	soho := domain.Region{ID: uuid.New(), Name: "SoHo", City: "New York", State: "NY", Level: 2,
		ParentID: uuid.NullUUID{UUID: f.manhattan.ID, Valid: true}}
	f.regionRepo.regions[soho.ID] = soho

	children, err := f.services.Regions.FindByCityState(ctx, "New York", "NY", false)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, f.manhattan.ID, children[0].ID)

	all, err := f.services.Regions.FindByCityState(ctx, "New York", "NY", true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, f.manhattan.ID, all[0].ID)
	assert.Equal(t, soho.ID, all[1].ID)

	_, err = f.services.Regions.FindByCityState(ctx, "Gotham", "NY", false)
	assert.ErrorIs(t, err, ErrRegionNotFound)
}

func TestRegionFindDescendantsStopsOnCycles(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a := domain.Region{ID: uuid.New(), Name: "A", Level: 1}
	b := domain.Region{ID: uuid.New(), Name: "B", Level: 1}
	a.ParentID = uuid.NullUUID{UUID: b.ID, Valid: true}
	b.ParentID = uuid.NullUUID{UUID: a.ID, Valid: true}
	f.regionRepo.regions[a.ID] = a
	f.regionRepo.regions[b.ID] = b

	out, err := f.services.Regions.FindDescendants(ctx, []uuid.UUID{a.ID})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, b.ID, out[0].ID)
}

func TestRegionDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	err := f.services.Regions.Delete(ctx, domain.PendingRegionID, true)
	assert.ErrorIs(t, err, ErrPendingRegionImmutable)

	err = f.services.Regions.Delete(ctx, uuid.New(), false)
	assert.ErrorIs(t, err, ErrRegionNotFound)

	err = f.services.Regions.Delete(ctx, f.nyc.ID, false)
	assert.ErrorIs(t, err, ErrRegionHasChildren)
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	_, err = f.services.Regions.GetByID(ctx, f.manhattan.ID)
	require.NoError(t, err)

	require.NoError(t, f.services.Regions.Delete(ctx, f.nyc.ID, true))
	assert.NotContains(t, f.regionRepo.regions, f.nyc.ID)
	assert.NotContains(t, f.regionRepo.regions, f.manhattan.ID)
	assert.Contains(t, f.regionRepo.regions, domain.PendingRegionID)
	assert.ElementsMatch(t, []uuid.UUID{f.nyc.ID, f.manhattan.ID}, f.cache.removed)

	_, err = f.services.Regions.GetByID(ctx, f.manhattan.ID)
	assert.ErrorIs(t, err, ErrRegionNotFound)
}

func TestRegionUpdateGeometry(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	updated, err := f.services.Regions.UpdateGeometry(ctx, f.nyc.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.Geometry)
	assert.Nil(t, updated.MinLat)
	assert.Nil(t, updated.CenterLat)

	regions, err := f.services.Regions.FindContaining(ctx, brooklyn)
	require.NoError(t, err)
	assert.Empty(t, regions)

	_, err = f.services.Regions.UpdateGeometry(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, ErrRegionNotFound)

	_, err = f.services.Regions.UpdateGeometry(ctx, domain.PendingRegionID, mustPolygon(nycRing))
	assert.ErrorIs(t, err, ErrPendingRegionImmutable)
}

func TestRegionUpdateCityLocation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := geo.NewPoint(-74.006, 40.7128)
	city, err := f.services.Regions.UpdateCityLocation(ctx, f.nyc.ID, &p)
	require.NoError(t, err)
	assert.Equal(t, geo.TypePoint, city.Geometry.Type())
	assert.InDelta(t, 40.7128, *city.CenterLat, 1e-9)
	assert.InDelta(t, 40.7128, *city.MinLat, 1e-9)

	_, err = f.services.Regions.UpdateCityLocation(ctx, f.manhattan.ID, &p)
	assert.ErrorIs(t, err, ErrNotACity)

	bad := geo.NewPoint(200, 0)
	_, err = f.services.Regions.UpdateCityLocation(ctx, f.nyc.ID, &bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	city, err = f.services.Regions.UpdateCityLocation(ctx, f.nyc.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, city.Geometry)
}

func TestEnsurePendingRegionIsIdempotent(t *testing.T) {
	repo := newFakeRegionRepo()
	svc := newRegionService(repo, newFakeCache(), testGeoConfig)
	ctx := context.Background()

	require.NoError(t, svc.EnsurePendingRegion(ctx))
	require.NoError(t, svc.EnsurePendingRegion(ctx))

	require.Len(t, repo.regions, 1)
	pending := repo.regions[domain.PendingRegionID]
	assert.Equal(t, domain.PendingRegionName, pending.Name)
	assert.Equal(t, domain.PendingRegionLevel, pending.Level)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRecomputeBounds(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	stale := f.regionRepo.regions[f.nyc.ID]
	stale.ApplyBounds(domain.RegionBounds{})
	f.regionRepo.regions[f.nyc.ID] = stale

	n, err := f.services.Backfill.RecomputeBounds(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NotNil(t, f.regionRepo.regions[f.nyc.ID].MinLat)
	assert.InDelta(t, 40.49, *f.regionRepo.regions[f.nyc.ID].MinLat, 1e-6)
}
