package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-gaming/geodirectory/internal/domain"
)

func TestRecomputeCountSkipsPending(t *testing.T) {
	f := newFixture()
	f.regionRepo.err = errors.New("must not be called")
	f.businessRepo.err = errors.New("must not be called")

	n, err := f.services.POICounts.RecomputeCount(context.Background(), domain.PendingRegionID)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, f.regionRepo.calls)
}

func TestRecomputeCountPublishedOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for i, published := range []bool{true, true, false} {
		b := domain.Business{
			ID:        uuid.New(),
			Name:      "Cafe",
			Published: published,
			RegionIDs: domain.UUIDList{f.manhattan.ID, f.nyc.ID},
		}
		if i == 0 {
			b.RegionIDs = domain.UUIDList{f.nyc.ID}
		}
		f.businessRepo.businesses[b.ID] = b
	}
	f.cache.Add(f.manhattan)

	n, err := f.services.POICounts.RecomputeCount(ctx, f.manhattan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, f.regionRepo.count(f.manhattan.ID))
	assert.Contains(t, f.cache.removed, f.manhattan.ID)

	n, err = f.services.POICounts.RecomputeCount(ctx, f.nyc.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// idempotent
	n, err = f.services.POICounts.RecomputeCount(ctx, f.nyc.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, f.regionRepo.count(f.nyc.ID))
}

func TestRecomputeCountErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.services.POICounts.RecomputeCount(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrRegionNotFound)

	f.businessRepo.err = errors.New("boom")
	_, err = f.services.POICounts.RecomputeCount(ctx, f.nyc.ID)
	assert.ErrorContains(t, err, "boom")
}

func TestScheduleRecountsDedupesAndIsolatesFailures(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	scheduler := &fakeScheduler{failFor: map[uuid.UUID]error{b: errors.New("queue full")}}

	scheduleRecounts(context.Background(), scheduler, a, b, a, c, b)

	assert.Equal(t, []uuid.UUID{a, b, c}, scheduler.ids())
}
