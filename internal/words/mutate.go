package words

import (
	"context"
	"time"

	"github.com/example/halovoc/internal/srs"
	"github.com/example/halovoc/internal/tagpath"
	"github.com/example/halovoc/pkg/models"
)

// DefaultReviewWindow debounces review bumps: a tap plus the
// auto-speak it triggers must count as one interaction.
const DefaultReviewWindow = 2 * time.Minute

// Status upgrade thresholds on reviewCount.
const (
	learningThreshold = 15
	masteredThreshold = 30
)

// BumpReview increments the word's review counter and stamps the
// review time, unless the previous bump landed less than window ago,
// in which case the word is returned unchanged. Status upgrades ride
// along: unknown turns learning past learningThreshold, anything
// turns mastered past masteredThreshold. Returns nil when the word
// does not exist.
func (s *Store) BumpReview(ctx context.Context, en string, window time.Duration) (*models.Word, error) {
	words, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(words, en)
	if i < 0 {
		return nil, nil
	}
	w := &words[i]
	now := s.now()
	if w.LastReviewedAt != nil && now.UnixMilli()-*w.LastReviewedAt < window.Milliseconds() {
		out := *w
		return &out, nil
	}
	w.ReviewCount++
	ts := now.UnixMilli()
	w.LastReviewedAt = &ts
	if w.Status == models.StatusUnknown && w.ReviewCount > learningThreshold {
		w.Status = models.StatusLearning
	}
	if w.ReviewCount > masteredThreshold {
		w.Status = models.StatusMastered
	}
	if err := s.Save(ctx, words); err != nil {
		return nil, err
	}
	out := *w
	return &out, nil
}

// SetStatus overrides the learning status directly. Returns nil when
// the word does not exist.
func (s *Store) SetStatus(ctx context.Context, en string, status models.Status) (*models.Word, error) {
	words, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(words, en)
	if i < 0 {
		return nil, nil
	}
	words[i].Status = status
	if err := s.Save(ctx, words); err != nil {
		return nil, err
	}
	out := words[i]
	return &out, nil
}

// ToggleTag adds or removes one tag on one word. System-tag aliases
// are canonicalized first; a path that is neither a system tag nor
// normalizable leaves the word unchanged. Enabling the review tag
// initializes scheduling fields whenever they are absent — they are
// not persisted separately once the tag is removed, so there is
// nothing older to restore. Returns nil when the word does not exist.
func (s *Store) ToggleTag(ctx context.Context, en, tag string, enabled bool) (*models.Word, error) {
	words, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(words, en)
	if i < 0 {
		return nil, nil
	}
	w := &words[i]

	canonical, ok := tagpath.CanonicalSystemTag(tag)
	if !ok {
		canonical, ok = tagpath.Normalize(tag)
		if !ok {
			out := *w
			return &out, nil
		}
	}

	if enabled {
		if !w.HasTag(canonical) {
			w.Tags = append(w.Tags, canonical)
		}
		if canonical == tagpath.TagReview && !w.HasSrs() {
			w.SetSrs(srs.Default(s.now()))
		}
	} else {
		w.Tags = removeString(w.Tags, canonical)
		if canonical == tagpath.TagReview {
			clearSrs(w)
		}
	}
	if err := s.Save(ctx, words); err != nil {
		return nil, err
	}
	out := *w
	return &out, nil
}

// SrsAnswer applies one review answer to the word's schedule. Missing
// scheduling fields are defaulted first, so a word freshly pulled into
// review transitions cleanly. Returns nil when the word does not
// exist or is not under review.
func (s *Store) SrsAnswer(ctx context.Context, en string, grade srs.Grade, now time.Time) (*models.Word, error) {
	words, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(words, en)
	if i < 0 {
		return nil, nil
	}
	w := &words[i]
	if !w.HasTag(tagpath.TagReview) {
		return nil, nil
	}
	state, ok := w.Srs()
	if !ok {
		state = srs.Default(now)
	}
	w.SetSrs(srs.Update(state, grade, now))
	if err := s.Save(ctx, words); err != nil {
		return nil, err
	}
	out := *w
	return &out, nil
}

// RenameTagPrefix rewrites every tag equal to or under from so it
// lives under to instead. Rewrites that would exceed the depth limit
// are dropped from the word rather than kept stale.
func (s *Store) RenameTagPrefix(ctx context.Context, from, to string) error {
	return s.rewriteTags(ctx, func(tags []string) ([]string, bool) {
		out := make([]string, 0, len(tags))
		changed := false
		for _, t := range tags {
			if tagpath.StartsWith(t, from) {
				changed = true
				if renamed, ok := tagpath.ReplacePrefix(t, from, to); ok {
					out = append(out, renamed)
				}
				continue
			}
			out = append(out, t)
		}
		return dedupe(out), changed
	})
}

// RemoveTagPrefix strips every tag equal to or under path from every
// word. Words themselves are never deleted by tag removal.
func (s *Store) RemoveTagPrefix(ctx context.Context, path string) error {
	return s.rewriteTags(ctx, func(tags []string) ([]string, bool) {
		out := make([]string, 0, len(tags))
		changed := false
		for _, t := range tags {
			if tagpath.StartsWith(t, path) {
				changed = true
				continue
			}
			out = append(out, t)
		}
		return out, changed
	})
}

// CopyTagPrefix mirrors every tag under from onto the corresponding
// path under to, leaving the originals in place. Tags are unioned.
func (s *Store) CopyTagPrefix(ctx context.Context, from, to string) error {
	return s.rewriteTags(ctx, func(tags []string) ([]string, bool) {
		out := append([]string(nil), tags...)
		changed := false
		for _, t := range tags {
			if !tagpath.StartsWith(t, from) {
				continue
			}
			mirrored, ok := tagpath.ReplacePrefix(t, from, to)
			if !ok {
				continue
			}
			if !contains(out, mirrored) {
				out = append(out, mirrored)
				changed = true
			}
		}
		return out, changed
	})
}

// rewriteTags applies one tag-list transform to every word and saves
// only if something actually changed.
func (s *Store) rewriteTags(ctx context.Context, fn func([]string) ([]string, bool)) error {
	words, err := s.Load(ctx)
	if err != nil {
		return err
	}
	anyChanged := false
	for i := range words {
		tags, changed := fn(words[i].Tags)
		if changed {
			words[i].Tags = tags
			anyChanged = true
		}
	}
	if !anyChanged {
		return nil
	}
	return s.Save(ctx, words)
}

func clearSrs(w *models.Word) {
	w.SrsEase = nil
	w.SrsInterval = nil
	w.SrsReps = nil
	w.SrsLapses = nil
	w.SrsDue = nil
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := list[:0]
	for _, v := range list {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
