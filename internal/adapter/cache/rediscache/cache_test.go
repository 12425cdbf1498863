package rediscache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobwave/matchengine/internal/adapter/cache/rediscache"
	"github.com/jobwave/matchengine/internal/domain"
)

func newCache(t *testing.T) (*rediscache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rediscache.New(rdb), mr
}

func TestCache_PutGet(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	rep := domain.JobAnalysisReport{
		JobID:             "job-1",
		TotalApplications: 4,
		TopCandidates: []domain.CandidateAnalysisResult{{
			CandidateID:  "cand-1",
			OverallScore: 8,
			FitLevel:     domain.FitHigh,
		}},
		AnalysisSummary: "fine",
		GeneratedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, c.Put(ctx, "run-1", rep, time.Hour))

	got, ok, err := c.Get(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rep, got)
}

func TestCache_Miss(t *testing.T) {
	c, _ := newCache(t)
	_, ok, err := c.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "run-1", domain.JobAnalysisReport{JobID: "job-1"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_CorruptEntryIsAMiss(t *testing.T) {
	c, mr := newCache(t)
	require.NoError(t, mr.Set("report:run-1", "not json"))

	_, ok, err := c.Get(context.Background(), "run-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
