package srs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/halovoc/internal/storage"
	"github.com/example/halovoc/pkg/models"
)

func TestDayID(t *testing.T) {
	// Year, then day, then month: stored-data compatibility trumps
	// conventional ordering.
	d := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "20263108", DayID(d))

	d = time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "20260201", DayID(d))
}

func TestStatsRollsOverLazily(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(storage.NewMemory())
	yesterday := time.Date(2026, time.August, 30, 22, 0, 0, 0, time.UTC)
	today := time.Date(2026, time.August, 31, 8, 0, 0, 0, time.UTC)

	_, err := tracker.Bump(ctx, yesterday, 2, 5)
	require.NoError(t, err)

	stats, err := tracker.Stats(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, DayID(today), stats.Day)
	assert.Equal(t, 0, stats.NewUsed)
	assert.Equal(t, 0, stats.ReviewUsed)

	// The reset is lazy: the stored record still holds yesterday
	// until the next bump persists today's.
	raw, err := tracker.loadRaw(ctx)
	require.NoError(t, err)
	assert.Equal(t, DayID(yesterday), raw.Day)
}

func TestBumpAfterRolloverStartsAtDelta(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(storage.NewMemory())
	yesterday := time.Date(2026, time.August, 30, 22, 0, 0, 0, time.UTC)
	today := time.Date(2026, time.August, 31, 8, 0, 0, 0, time.UTC)

	_, err := tracker.Bump(ctx, yesterday, 3, 7)
	require.NoError(t, err)

	stats, err := tracker.Bump(ctx, today, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, models.DailyStats{Day: DayID(today), NewUsed: 1, ReviewUsed: 0}, stats)
}

func TestBumpClampsAtZero(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(storage.NewMemory())
	now := time.Date(2026, time.August, 31, 8, 0, 0, 0, time.UTC)

	stats, err := tracker.Bump(ctx, now, -5, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.NewUsed)
	assert.Equal(t, 0, stats.ReviewUsed)
}

func TestMalformedStatsReset(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	require.NoError(t, store.Set(ctx, storage.KeyDailyStats, "{nonsense"))

	tracker := NewTracker(store)
	now := time.Date(2026, time.August, 31, 8, 0, 0, 0, time.UTC)
	stats, err := tracker.Stats(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, models.DailyStats{Day: DayID(now)}, stats)
}

func TestLimitsClamped(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(storage.NewMemory())

	limits, err := tracker.Limits(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultDailyNewLimit, limits.DailyNewLimit)
	assert.Equal(t, DefaultDailyReviewLimit, limits.DailyReviewLimit)

	require.NoError(t, tracker.SetLimits(ctx, models.SrsLimits{DailyNewLimit: 9999, DailyReviewLimit: -3}))
	limits, err = tracker.Limits(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, limits.DailyNewLimit)
	assert.Equal(t, 0, limits.DailyReviewLimit)
}
