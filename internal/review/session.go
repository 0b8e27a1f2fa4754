// Package review assembles bounded review sessions from the word
// collection, the spaced-repetition schedule, and the daily quota.
package review

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/example/halovoc/internal/srs"
	"github.com/example/halovoc/internal/tagpath"
	"github.com/example/halovoc/internal/words"
	"github.com/example/halovoc/pkg/models"
)

// Builder wires the stores a session needs.
type Builder struct {
	words *words.Store
	quota *srs.Tracker
}

// NewBuilder creates a session builder.
func NewBuilder(w *words.Store, q *srs.Tracker) *Builder {
	return &Builder{words: w, quota: q}
}

// Card is one queued review item.
type Card struct {
	Word models.Word
	// New marks a never-reviewed card (reps == 0); it counts against
	// the daily new quota instead of the review quota.
	New bool
}

// Session is a bounded queue of due and new cards. An incorrect answer
// requeues its card at the tail instead of ending the session.
type Session struct {
	ID      string
	builder *Builder
	queue   []Card
	counted map[string]bool
}

// Build assembles a session for now: first the due cards, oldest due
// first, capped by the remaining review quota; then the never-reviewed
// cards capped by the remaining new quota. Only words carrying the
// review tag are candidates.
func (b *Builder) Build(ctx context.Context, now time.Time) (*Session, error) {
	limits, err := b.quota.Limits(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := b.quota.Stats(ctx, now)
	if err != nil {
		return nil, err
	}
	all, err := b.words.Load(ctx)
	if err != nil {
		return nil, err
	}

	var due, fresh []models.Word
	for _, w := range all {
		if !w.HasTag(tagpath.TagReview) {
			continue
		}
		state, ok := w.Srs()
		if !ok {
			continue
		}
		switch {
		case state.Reps == 0:
			fresh = append(fresh, w)
		case srs.IsDue(state, now):
			due = append(due, w)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return *due[i].SrsDue < *due[j].SrsDue
	})
	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].CreatedAt < fresh[j].CreatedAt
	})

	dueBudget := max(0, limits.DailyReviewLimit-stats.ReviewUsed)
	newBudget := max(0, limits.DailyNewLimit-stats.NewUsed)
	if len(due) > dueBudget {
		due = due[:dueBudget]
	}
	if len(fresh) > newBudget {
		fresh = fresh[:newBudget]
	}

	queue := make([]Card, 0, len(due)+len(fresh))
	for _, w := range due {
		queue = append(queue, Card{Word: w})
	}
	for _, w := range fresh {
		queue = append(queue, Card{Word: w, New: true})
	}
	return &Session{
		ID:      uuid.NewString(),
		builder: b,
		queue:   queue,
		counted: make(map[string]bool),
	}, nil
}

// Next returns the card at the front of the queue without consuming
// it, or nil when the session is finished.
func (s *Session) Next() *Card {
	if len(s.queue) == 0 {
		return nil
	}
	card := s.queue[0]
	return &card
}

// Remaining reports how many cards are still queued, retries included.
func (s *Session) Remaining() int {
	return len(s.queue)
}

// Answer grades the front card, applies the scheduling transition,
// and bumps the matching daily counter once per word per session. A
// wrong answer sends the card to the back of the queue for another
// pass. Returns the updated word, or nil when the session is empty.
func (s *Session) Answer(ctx context.Context, correct bool, now time.Time) (*models.Word, error) {
	if len(s.queue) == 0 {
		return nil, nil
	}
	card := s.queue[0]
	s.queue = s.queue[1:]

	grade := srs.GradeGood
	if !correct {
		grade = srs.GradeAgain
	}
	updated, err := s.builder.words.SrsAnswer(ctx, card.Word.En, grade, now)
	if err != nil {
		return nil, err
	}

	if !s.counted[card.Word.En] {
		s.counted[card.Word.En] = true
		newDelta, reviewDelta := 0, 1
		if card.New {
			newDelta, reviewDelta = 1, 0
		}
		if _, err := s.builder.quota.Bump(ctx, now, newDelta, reviewDelta); err != nil {
			return nil, err
		}
	}

	if !correct {
		if updated != nil {
			card.Word = *updated
		}
		s.queue = append(s.queue, card)
	}
	return updated, nil
}
