package tags

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/halovoc/internal/storage"
	"github.com/example/halovoc/internal/tagpath"
	"github.com/example/halovoc/internal/words"
	"github.com/example/halovoc/pkg/models"
)

type registryFixture struct {
	store    *storage.Memory
	words    *words.Store
	registry *Registry
}

func newRegistryFixture(t *testing.T) *registryFixture {
	t.Helper()
	store := storage.NewMemory()
	now := time.UnixMilli(1_700_000_000_000)
	wordStore := words.NewStoreWithClock(store, func() time.Time { return now })
	return &registryFixture{
		store:    store,
		words:    wordStore,
		registry: NewRegistry(store, wordStore),
	}
}

func (f *registryFixture) addWord(t *testing.T, en string, tags ...string) {
	t.Helper()
	ctx := context.Background()
	w, err := f.words.Add(ctx, models.Word{En: en, Zh: "字"})
	require.NoError(t, err)
	require.NotNil(t, w)
	for _, tag := range tags {
		_, err := f.words.ToggleTag(ctx, en, tag, true)
		require.NoError(t, err)
	}
}

func (f *registryFixture) wordTags(t *testing.T, en string) []string {
	t.Helper()
	w, err := f.words.Get(context.Background(), en)
	require.NoError(t, err)
	require.NotNil(t, w)
	return w.Tags
}

func TestListAlwaysContainsSystemTags(t *testing.T) {
	f := newRegistryFixture(t)
	tags, err := f.registry.List(context.Background())
	require.NoError(t, err)
	assert.Contains(t, tags, tagpath.TagReview)
	assert.Contains(t, tags, tagpath.TagExam)
}

func TestListRepairsMalformedSet(t *testing.T) {
	f := newRegistryFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, storage.KeyTags, `["A > B > C > D", "复习", "X > Y", ""]`))

	tags, err := f.registry.List(ctx)
	require.NoError(t, err)
	// Too-deep and empty paths dropped, legacy alias remapped,
	// ancestors closed over.
	assert.ElementsMatch(t, []string{
		tagpath.TagReview, tagpath.TagExam, "X", "X > Y",
	}, tags)
}

func TestAddCreatesAncestors(t *testing.T) {
	f := newRegistryFixture(t)
	ctx := context.Background()

	require.NoError(t, f.registry.Add(ctx, "A > B > C"))

	tags, err := f.registry.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"A", "A > B", "A > B > C", tagpath.TagReview, tagpath.TagExam,
	}, tags)

	order, err := f.registry.loadOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, order[""])
	assert.Equal(t, []string{"B"}, order["A"])
	assert.Equal(t, []string{"C"}, order["A > B"])
}

func TestAddRejectsSystemAliasesAndInvalid(t *testing.T) {
	f := newRegistryFixture(t)
	ctx := context.Background()

	require.NoError(t, f.registry.Add(ctx, "Review"))
	require.NoError(t, f.registry.Add(ctx, "复习"))
	require.NoError(t, f.registry.Add(ctx, "A > B > C > D"))
	require.NoError(t, f.registry.Add(ctx, "  "))

	tags, err := f.registry.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{tagpath.TagReview, tagpath.TagExam}, tags)
}

func TestRemoveSubtreeDetagsWords(t *testing.T) {
	f := newRegistryFixture(t)
	ctx := context.Background()
	require.NoError(t, f.registry.Add(ctx, "A > B"))
	f.addWord(t, "apple", "A > B", "A")

	require.NoError(t, f.registry.RemoveSubtree(ctx, "A"))

	tags, err := f.registry.List(ctx)
	require.NoError(t, err)
	for _, tag := range tags {
		assert.False(t, tagpath.StartsWith(tag, "A"), tag)
	}
	assert.Empty(t, f.wordTags(t, "apple"))

	order, err := f.registry.loadOrder(ctx)
	require.NoError(t, err)
	assert.NotContains(t, order[""], "A")
	assert.NotContains(t, order, "A")
}

func TestRemoveSubtreeRejectsSystemTag(t *testing.T) {
	f := newRegistryFixture(t)
	ctx := context.Background()

	require.NoError(t, f.registry.RemoveSubtree(ctx, tagpath.TagReview))
	require.NoError(t, f.registry.RemoveSubtree(ctx, "Review"))

	tags, err := f.registry.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, tags, tagpath.TagReview)
}

func TestRenameSubtreeMovesWordsAndOrder(t *testing.T) {
	f := newRegistryFixture(t)
	ctx := context.Background()
	require.NoError(t, f.registry.Add(ctx, "A > B > C"))
	require.NoError(t, f.registry.Add(ctx, "X"))
	f.addWord(t, "apple", "A > B > C")

	require.NoError(t, f.registry.RenameSubtree(ctx, "A > B", "X > Y"))

	tags, err := f.registry.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, tags, "X > Y")
	assert.Contains(t, tags, "X > Y > C")
	assert.NotContains(t, tags, "A > B")
	assert.NotContains(t, tags, "A > B > C")
	// The old root segment survives; only the subtree moved.
	assert.Contains(t, tags, "A")

	assert.Equal(t, []string{"X > Y > C"}, f.wordTags(t, "apple"))

	order, err := f.registry.loadOrder(ctx)
	require.NoError(t, err)
	assert.NotContains(t, order["A"], "B")
	assert.Contains(t, order["X"], "Y")
	assert.NotContains(t, order, "A > B")
	assert.Equal(t, []string{"C"}, order["X > Y"])
}

func TestRenameSubtreeRejectsSystemTag(t *testing.T) {
	f := newRegistryFixture(t)
	ctx := context.Background()
	require.NoError(t, f.registry.Add(ctx, "A"))

	require.NoError(t, f.registry.RenameSubtree(ctx, tagpath.TagReview, "B"))
	require.NoError(t, f.registry.RenameSubtree(ctx, "A", "Exam"))

	tags, err := f.registry.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, tags, tagpath.TagReview)
	assert.Contains(t, tags, "A")
}

func TestCopySubtreeUnionsWordTags(t *testing.T) {
	f := newRegistryFixture(t)
	ctx := context.Background()
	require.NoError(t, f.registry.Add(ctx, "A > B"))
	f.addWord(t, "apple", "A")

	require.NoError(t, f.registry.CopySubtree(ctx, "A", "Z"))

	tags, err := f.registry.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, tags, "A")
	assert.Contains(t, tags, "A > B")
	assert.Contains(t, tags, "Z")
	assert.Contains(t, tags, "Z > B")

	assert.ElementsMatch(t, []string{"A", "Z"}, f.wordTags(t, "apple"))
}

func TestCopySubtreeRejectsTooDeepTarget(t *testing.T) {
	f := newRegistryFixture(t)
	ctx := context.Background()
	require.NoError(t, f.registry.Add(ctx, "A > B > C"))

	require.NoError(t, f.registry.CopySubtree(ctx, "A", "X > Y"))

	tags, err := f.registry.List(ctx)
	require.NoError(t, err)
	// Nothing was copied: part of the subtree would land at depth 4.
	assert.NotContains(t, tags, "X > Y")
}

func TestReorderSibling(t *testing.T) {
	f := newRegistryFixture(t)
	ctx := context.Background()
	require.NoError(t, f.registry.Add(ctx, "A"))
	require.NoError(t, f.registry.Add(ctx, "B"))
	require.NoError(t, f.registry.Add(ctx, "C"))

	require.NoError(t, f.registry.ReorderSibling(ctx, "", "C", Up))
	order, err := f.registry.loadOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B"}, order[""])

	// Boundary and unknown names are no-ops.
	require.NoError(t, f.registry.ReorderSibling(ctx, "", "A", Up))
	require.NoError(t, f.registry.ReorderSibling(ctx, "", "ghost", Down))
	order, err = f.registry.loadOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B"}, order[""])
}
