// Package words owns the vocabulary collection: loading with the
// implicit migration pass, full-replace saves, and the per-word
// mutations (tag toggles, review bumps, scheduling answers).
package words

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/halovoc/internal/storage"
	"github.com/example/halovoc/pkg/models"
)

// Store reads and writes the word collection through the storage port.
// All mutations follow read-modify-write over the whole collection;
// callers serialize access (single-writer assumption per device).
type Store struct {
	store storage.Store
	now   func() time.Time
}

// NewStore creates a word store. The clock defaults to time.Now.
func NewStore(store storage.Store) *Store {
	return &Store{store: store, now: time.Now}
}

// NewStoreWithClock creates a word store with an injected clock.
func NewStoreWithClock(store storage.Store, now func() time.Time) *Store {
	return &Store{store: store, now: now}
}

// Load returns the full collection. The first-ever load seeds three
// example words. Every later load runs the sanitize pass and writes
// the normalized form straight back, so load doubles as migration.
func (s *Store) Load(ctx context.Context) ([]models.Word, error) {
	raw, ok, err := s.store.Get(ctx, storage.KeyWords)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !ok {
		seeded := seedWords(now)
		if err := s.Save(ctx, seeded); err != nil {
			return nil, err
		}
		return seeded, nil
	}
	var words []models.Word
	if err := json.Unmarshal([]byte(raw), &words); err != nil {
		slog.Warn("resetting malformed word collection", "error", err)
		if err := s.Save(ctx, []models.Word{}); err != nil {
			return nil, err
		}
		return []models.Word{}, nil
	}
	sanitized, changes := Sanitize(words, now)
	if len(changes) > 0 {
		slog.Info("sanitized word records on load", "changes", len(changes))
		if err := s.Save(ctx, sanitized); err != nil {
			return nil, err
		}
	}
	return sanitized, nil
}

// Save replaces the whole collection, last writer wins.
func (s *Store) Save(ctx context.Context, words []models.Word) error {
	data, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("failed to encode words: %v", err)
	}
	return s.store.Set(ctx, storage.KeyWords, string(data))
}

// Get returns the word identified by en, matched case-insensitively,
// or nil when absent.
func (s *Store) Get(ctx context.Context, en string) (*models.Word, error) {
	words, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(words, en); i >= 0 {
		w := words[i]
		return &w, nil
	}
	return nil, nil
}

// Add inserts a new word with lifecycle defaults applied. It returns
// nil when a word with the same en already exists; duplicates are the
// caller's problem to detect, never silently merged.
func (s *Store) Add(ctx context.Context, w models.Word) (*models.Word, error) {
	words, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if indexOf(words, w.En) >= 0 {
		return nil, nil
	}
	now := s.now()
	w.Status = models.StatusUnknown
	w.CreatedAt = now.UnixMilli()
	w.ReviewCount = 0
	w.LastReviewedAt = nil
	sanitized, _ := sanitizeWord(w, now)
	words = append(words, sanitized)
	if err := s.Save(ctx, words); err != nil {
		return nil, err
	}
	return &sanitized, nil
}

// Delete removes the word identified by en. Deleting a word cascades
// no further: no other word or tag is touched. Returns false when the
// word does not exist.
func (s *Store) Delete(ctx context.Context, en string) (bool, error) {
	words, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(words, en)
	if i < 0 {
		return false, nil
	}
	words = append(words[:i], words[i+1:]...)
	if err := s.Save(ctx, words); err != nil {
		return false, err
	}
	return true, nil
}

// indexOf finds a word by its case-insensitive identity key.
func indexOf(words []models.Word, en string) int {
	for i := range words {
		if strings.EqualFold(words[i].En, en) {
			return i
		}
	}
	return -1
}

// seedWords is the starter collection written on first launch.
func seedWords(now time.Time) []models.Word {
	mk := func(en, zh, exEn, exZh, phonetic string) models.Word {
		return models.Word{
			En:        en,
			Zh:        zh,
			ExampleEn: exEn,
			ExampleZh: exZh,
			Phonetic:  phonetic,
			Status:    models.StatusUnknown,
			CreatedAt: now.UnixMilli(),
			Tags:      []string{},
		}
	}
	return []models.Word{
		mk("apple", "蘋果",
			"An apple a day keeps the doctor away.",
			"一天一蘋果，醫生遠離我。",
			"/ˈæp.əl/"),
		mk("journey", "旅程",
			"The journey of a thousand miles begins with a single step.",
			"千里之行，始於足下。",
			"/ˈdʒɜː.ni/"),
		mk("serendipity", "意外的驚喜",
			"Meeting her was pure serendipity.",
			"遇見她純屬意外的驚喜。",
			"/ˌser.ənˈdɪp.ə.ti/"),
	}
}
