package srs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/halovoc/internal/storage"
	"github.com/example/halovoc/pkg/models"
)

// Limit bounds and defaults. Limits are clamped on every write.
const (
	DefaultDailyNewLimit    = 10
	DefaultDailyReviewLimit = 100

	maxDailyNewLimit    = 100
	maxDailyReviewLimit = 1000
)

// DayID derives the calendar-day identifier for t using the device's
// local date. The stored format is year, then day, then month; existing
// installs persist it this way and changing it would silently reset
// every user's daily quota once.
func DayID(t time.Time) string {
	return fmt.Sprintf("%04d%02d%02d", t.Year(), t.Day(), int(t.Month()))
}

// Tracker persists the per-day new/review counters and the
// user-configured limits. The day rolls over lazily: stale counters
// are treated as zero on the next read or bump, with no background
// job involved.
type Tracker struct {
	store storage.Store
}

// NewTracker creates a tracker over the given store.
func NewTracker(store storage.Store) *Tracker {
	return &Tracker{store: store}
}

// Stats returns today's counters. If the stored day differs from
// now's calendar day a zeroed record for today is returned; the reset
// is not persisted until the next bump.
func (t *Tracker) Stats(ctx context.Context, now time.Time) (models.DailyStats, error) {
	stats, err := t.loadRaw(ctx)
	if err != nil {
		return models.DailyStats{}, err
	}
	today := DayID(now)
	if stats.Day != today {
		return models.DailyStats{Day: today}, nil
	}
	return stats, nil
}

// Bump adds the deltas to today's counters and persists the result.
// A stored record from a previous day contributes nothing, so a
// rollover followed by an immediate answer starts the new day at the
// delta. Counters never go below zero.
func (t *Tracker) Bump(ctx context.Context, now time.Time, newDelta, reviewDelta int) (models.DailyStats, error) {
	stats, err := t.Stats(ctx, now)
	if err != nil {
		return models.DailyStats{}, err
	}
	stats.NewUsed = clampMin(stats.NewUsed+newDelta, 0)
	stats.ReviewUsed = clampMin(stats.ReviewUsed+reviewDelta, 0)
	if err := t.saveStats(ctx, stats); err != nil {
		return models.DailyStats{}, err
	}
	return stats, nil
}

// Limits returns the configured daily limits, clamped to their valid
// ranges. A missing or malformed entry falls back to the defaults.
func (t *Tracker) Limits(ctx context.Context) (models.SrsLimits, error) {
	defaults := models.SrsLimits{
		DailyNewLimit:    DefaultDailyNewLimit,
		DailyReviewLimit: DefaultDailyReviewLimit,
	}
	raw, ok, err := t.store.Get(ctx, storage.KeySrsLimits)
	if err != nil {
		return models.SrsLimits{}, err
	}
	if !ok {
		return defaults, nil
	}
	var limits models.SrsLimits
	if err := json.Unmarshal([]byte(raw), &limits); err != nil {
		slog.Warn("resetting malformed srs limits", "error", err)
		if err := t.SetLimits(ctx, defaults); err != nil {
			return models.SrsLimits{}, err
		}
		return defaults, nil
	}
	return clampLimits(limits), nil
}

// SetLimits clamps and persists the daily limits.
func (t *Tracker) SetLimits(ctx context.Context, limits models.SrsLimits) error {
	data, err := json.Marshal(clampLimits(limits))
	if err != nil {
		return fmt.Errorf("failed to encode srs limits: %v", err)
	}
	return t.store.Set(ctx, storage.KeySrsLimits, string(data))
}

// loadRaw reads the stored counters without applying day rollover. A
// malformed entry is reset to its empty form and rewritten rather than
// surfaced to the caller.
func (t *Tracker) loadRaw(ctx context.Context) (models.DailyStats, error) {
	raw, ok, err := t.store.Get(ctx, storage.KeyDailyStats)
	if err != nil {
		return models.DailyStats{}, err
	}
	if !ok {
		return models.DailyStats{}, nil
	}
	var stats models.DailyStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		slog.Warn("resetting malformed daily stats", "error", err)
		empty := models.DailyStats{}
		if err := t.saveStats(ctx, empty); err != nil {
			return models.DailyStats{}, err
		}
		return empty, nil
	}
	stats.NewUsed = clampMin(stats.NewUsed, 0)
	stats.ReviewUsed = clampMin(stats.ReviewUsed, 0)
	return stats, nil
}

func (t *Tracker) saveStats(ctx context.Context, stats models.DailyStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode daily stats: %v", err)
	}
	return t.store.Set(ctx, storage.KeyDailyStats, string(data))
}

func clampLimits(l models.SrsLimits) models.SrsLimits {
	l.DailyNewLimit = clamp(l.DailyNewLimit, 0, maxDailyNewLimit)
	l.DailyReviewLimit = clamp(l.DailyReviewLimit, 0, maxDailyReviewLimit)
	return l
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampMin(v, lo int) int {
	if v < lo {
		return lo
	}
	return v
}
