package words

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/halovoc/internal/srs"
	"github.com/example/halovoc/internal/tagpath"
	"github.com/example/halovoc/pkg/models"
)

func TestToggleTagReviewInitializesSrs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedRaw(t, []models.Word{{En: "apple", Zh: "蘋果"}})

	w, err := f.words.ToggleTag(ctx, "apple", "Review", true)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, []string{tagpath.TagReview}, w.Tags)
	require.True(t, w.HasSrs())
	state, _ := w.Srs()
	assert.Equal(t, 2.5, state.Ease)
	assert.Equal(t, 0, state.Reps)
	assert.Equal(t, f.now.UnixMilli(), state.Due)
}

func TestToggleTagOffClearsSrs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedRaw(t, []models.Word{{En: "apple", Zh: "蘋果"}})

	_, err := f.words.ToggleTag(ctx, "apple", tagpath.TagReview, true)
	require.NoError(t, err)
	w, err := f.words.ToggleTag(ctx, "apple", tagpath.TagReview, false)
	require.NoError(t, err)
	assert.Empty(t, w.Tags)
	assert.False(t, w.HasSrs())

	// Re-enabling starts from defaults again; nothing older survives
	// the removal.
	f.now = f.now.Add(time.Hour)
	w, err = f.words.ToggleTag(ctx, "apple", tagpath.TagReview, true)
	require.NoError(t, err)
	state, ok := w.Srs()
	require.True(t, ok)
	assert.Equal(t, f.now.UnixMilli(), state.Due)
}

func TestToggleTagInvalidPathIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedRaw(t, []models.Word{{En: "apple", Zh: "蘋果", Tags: []string{"水果"}}})

	w, err := f.words.ToggleTag(ctx, "apple", "a > b > c > d", true)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, []string{"水果"}, w.Tags)

	missing, err := f.words.ToggleTag(ctx, "ghost", "水果", true)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestToggleTagIdempotentAdd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedRaw(t, []models.Word{{En: "apple", Zh: "蘋果", Tags: []string{"水果"}}})

	w, err := f.words.ToggleTag(ctx, "apple", " 水果 ", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"水果"}, w.Tags)
}

func TestSrsAnswer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedRaw(t, []models.Word{{En: "apple", Zh: "蘋果"}})

	_, err := f.words.ToggleTag(ctx, "apple", tagpath.TagReview, true)
	require.NoError(t, err)

	w, err := f.words.SrsAnswer(ctx, "apple", srs.GradeGood, f.now)
	require.NoError(t, err)
	require.NotNil(t, w)
	state, _ := w.Srs()
	assert.Equal(t, 1, state.Reps)
	assert.Equal(t, 1, state.Interval)
	assert.Equal(t, f.now.Add(24*time.Hour).UnixMilli(), state.Due)

	// Words outside review never get scheduled.
	f.seedRaw(t, []models.Word{{En: "pear", Zh: "梨"}})
	none, err := f.words.SrsAnswer(ctx, "pear", srs.GradeGood, f.now)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestRenameTagPrefix(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedRaw(t, []models.Word{
		{En: "apple", Zh: "蘋果", Tags: []string{"A > B > C", "其他"}},
		{En: "pear", Zh: "梨", Tags: []string{"A > B"}},
	})

	require.NoError(t, f.words.RenameTagPrefix(ctx, "A > B", "X > Y"))

	apple, err := f.words.Get(ctx, "apple")
	require.NoError(t, err)
	assert.Equal(t, []string{"X > Y > C", "其他"}, apple.Tags)
	pear, err := f.words.Get(ctx, "pear")
	require.NoError(t, err)
	assert.Equal(t, []string{"X > Y"}, pear.Tags)
}

func TestRemoveTagPrefix(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedRaw(t, []models.Word{
		{En: "apple", Zh: "蘋果", Tags: []string{"A", "A > B", "其他"}},
	})

	require.NoError(t, f.words.RemoveTagPrefix(ctx, "A"))

	apple, err := f.words.Get(ctx, "apple")
	require.NoError(t, err)
	assert.Equal(t, []string{"其他"}, apple.Tags)
}

func TestCopyTagPrefix(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedRaw(t, []models.Word{
		{En: "apple", Zh: "蘋果", Tags: []string{"A"}},
	})

	require.NoError(t, f.words.CopyTagPrefix(ctx, "A", "Z"))

	apple, err := f.words.Get(ctx, "apple")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "Z"}, apple.Tags)
}

func TestFontSizePreference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	size, err := f.words.FontSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultFontSize, size)

	require.NoError(t, f.words.SetFontSize(ctx, 999))
	size, err = f.words.FontSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 48, size)
}
