// Package srs implements the two-grade spaced-repetition schedule and
// the per-day quota accounting that throttles review sessions.
package srs

import (
	"math"
	"time"

	"github.com/example/halovoc/pkg/models"
)

// Grade is the answer quality reported for one card.
type Grade string

const (
	// GradeAgain means the answer was wrong; the card lapses.
	GradeAgain Grade = "again"
	// GradeGood means the answer was right.
	GradeGood Grade = "good"
)

// Scheduling bounds. Ease never leaves [MinEase, MaxEase].
const (
	DefaultEase = 2.5
	MinEase     = 1.3
	MaxEase     = 3.0

	easePenalty = 0.2
	easeGain    = 0.05
)

// dayMs is one schedule day in milliseconds.
const dayMs = 24 * 60 * 60 * 1000

// Default returns the scheduling state applied when a word first
// enters review: due immediately, nothing learned yet.
func Default(now time.Time) models.SrsState {
	return models.SrsState{
		Ease:     DefaultEase,
		Interval: 0,
		Reps:     0,
		Lapses:   0,
		Due:      now.UnixMilli(),
	}
}

// Update computes the next scheduling state from one answer. It is a
// pure function; callers persist the result.
func Update(prev models.SrsState, grade Grade, now time.Time) models.SrsState {
	next := prev
	if grade == GradeAgain {
		next.Lapses++
		next.Reps = 0
		next.Ease = math.Max(MinEase, prev.Ease-easePenalty)
		next.Interval = 1
	} else {
		switch prev.Reps {
		case 0:
			next.Interval = 1
		case 1:
			next.Interval = 6
		default:
			next.Interval = int(math.Max(1, math.Round(float64(prev.Interval)*prev.Ease)))
		}
		next.Reps = prev.Reps + 1
		// The first successful rep leaves ease untouched; growth
		// starts once the card has a real interval behind it.
		if prev.Reps > 0 {
			next.Ease = math.Min(MaxEase, prev.Ease+easeGain)
		}
	}
	next.Due = now.UnixMilli() + int64(next.Interval)*dayMs
	return next
}

// IsDue reports whether the card should be offered for review now.
func IsDue(s models.SrsState, now time.Time) bool {
	return s.Due <= now.UnixMilli()
}
