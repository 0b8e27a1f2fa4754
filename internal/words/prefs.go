package words

import (
	"context"
	"strconv"

	"github.com/example/halovoc/internal/storage"
)

// Font-size bounds for the word display preference. The value is
// persisted as a string-encoded integer.
const (
	DefaultFontSize = 20
	minFontSize     = 12
	maxFontSize     = 48
)

// FontSize returns the stored word font size, falling back to the
// default when the entry is missing or unparseable.
func (s *Store) FontSize(ctx context.Context) (int, error) {
	raw, ok, err := s.store.Get(ctx, storage.KeyWordFontSize)
	if err != nil {
		return 0, err
	}
	if !ok {
		return DefaultFontSize, nil
	}
	size, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultFontSize, nil
	}
	return clampFontSize(size), nil
}

// SetFontSize clamps and persists the word font size.
func (s *Store) SetFontSize(ctx context.Context, size int) error {
	return s.store.Set(ctx, storage.KeyWordFontSize, strconv.Itoa(clampFontSize(size)))
}

func clampFontSize(size int) int {
	if size < minFontSize {
		return minFontSize
	}
	if size > maxFontSize {
		return maxFontSize
	}
	return size
}
