package memberships

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenyagreatparty/kgp-backend/internal/dto"
	"github.com/kenyagreatparty/kgp-backend/internal/repository"
)

func TestStatsAggregatesOverview(t *testing.T) {
	f := newServiceFixture(t)

	f.applications.countByStatusFn = func() ([]repository.StatusCount, error) {
		return []repository.StatusCount{
			{Status: "pending", Count: 4},
			{Status: "approved", Count: 9},
			{Status: "rejected", Count: 2},
		}, nil
	}
	f.applications.countByCountyFn = func(limit int) ([]repository.CountyCount, error) {
		assert.Equal(t, 10, limit)
		return []repository.CountyCount{
			{County: "nairobi", Count: 6},
			{County: "mombasa", Count: 3},
		}, nil
	}
	f.applications.countCreatedSinceFn = func(since time.Time) (int64, error) {
		now := time.Now()
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		assert.Equal(t, midnight, since)
		return 3, nil
	}
	f.sequences.value = 9

	overview, err := f.service.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(15), overview.Total)
	assert.Equal(t, int64(9), overview.Approved)
	assert.Equal(t, int64(4), overview.Pending)
	assert.Equal(t, int64(2), overview.Rejected)
	assert.Equal(t, int64(3), overview.Today)
	assert.Equal(t, int64(9), overview.Issued)
	assert.Equal(t, int64(9), overview.ByStatus[dto.ApplicationStatusApproved])
	require.Len(t, overview.TopCounties, 2)
	assert.Equal(t, dto.CountyCount{County: "nairobi", Count: 6}, overview.TopCounties[0])

	// a successful aggregation is written back to the cache
	f.cache.mu.Lock()
	_, cached := f.cache.stored[statsCacheKey]
	f.cache.mu.Unlock()
	assert.True(t, cached)
}

func TestStatsServesFromCache(t *testing.T) {
	f := newServiceFixture(t)
	f.cache.getErr = nil

	f.applications.countByStatusFn = func() ([]repository.StatusCount, error) {
		t.Fatal("repository must not be queried on a cache hit")
		return nil, nil
	}

	overview, err := f.service.Stats(context.Background())
	require.NoError(t, err)
	require.NotNil(t, overview)
}
