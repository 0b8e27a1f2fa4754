package tagpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"single segment", "A", "A", true},
		{"trims whitespace", "  A  ", "A", true},
		{"two segments", "A>B", "A > B", true},
		{"canonical form unchanged", "A > B > C", "A > B > C", true},
		{"sloppy spacing", " A >  B>C ", "A > B > C", true},
		{"chinese segments", "動物 > 哺乳類", "動物 > 哺乳類", true},
		{"empty", "", "", false},
		{"only delimiters", " > > ", "", false},
		{"four segments", "A > B > C > D", "", false},
		{"empty segments dropped", "A > > B", "A > B", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.in)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, p := range []string{"A", "a > b", "動物>鳥類>貓頭鷹", "  X  >Y "} {
		first, ok := Normalize(p)
		require.True(t, ok, p)
		second, ok := Normalize(Join(Parse(first)))
		require.True(t, ok, p)
		assert.Equal(t, first, second)
	}
}

func TestStartsWith(t *testing.T) {
	assert.True(t, StartsWith("A > B", "A > B"))
	assert.True(t, StartsWith("A > B > C", "A"))
	assert.True(t, StartsWith("A>B", "A"))
	assert.False(t, StartsWith("A > B", "A > B > C"))
	assert.False(t, StartsWith("AB", "A"))
	assert.False(t, StartsWith("", "A"))
	assert.False(t, StartsWith("A", ""))
	assert.False(t, StartsWith("A > B > C > D", "A"))
}

func TestParentAndLastSegment(t *testing.T) {
	assert.Equal(t, "", Parent("A"))
	assert.Equal(t, "A", Parent("A > B"))
	assert.Equal(t, "A > B", Parent("A>B>C"))
	assert.Equal(t, "C", LastSegment("A > B > C"))
	assert.Equal(t, "", LastSegment(""))
}

func TestAncestors(t *testing.T) {
	assert.Nil(t, Ancestors("A"))
	assert.Equal(t, []string{"A", "A > B"}, Ancestors("A > B > C"))
}

func TestReplacePrefix(t *testing.T) {
	got, ok := ReplacePrefix("A > B > C", "A > B", "X > Y")
	require.True(t, ok)
	assert.Equal(t, "X > Y > C", got)

	got, ok = ReplacePrefix("A", "A", "Z")
	require.True(t, ok)
	assert.Equal(t, "Z", got)

	// Result would be four segments deep.
	_, ok = ReplacePrefix("A > B > C", "A", "X > Y")
	assert.False(t, ok)

	// Not actually inside the prefix.
	_, ok = ReplacePrefix("A > B", "C", "D")
	assert.False(t, ok)
}

func TestCanonicalSystemTag(t *testing.T) {
	for _, alias := range []string{"複習", "复习", "Review", "review", " 複習 "} {
		got, ok := CanonicalSystemTag(alias)
		require.True(t, ok, alias)
		assert.Equal(t, TagReview, got)
	}
	for _, alias := range []string{"考試", "考试", "Exam", "exam"} {
		got, ok := CanonicalSystemTag(alias)
		require.True(t, ok, alias)
		assert.Equal(t, TagExam, got)
	}
	_, ok := CanonicalSystemTag("動物")
	assert.False(t, ok)
}

func TestIsSystemTag(t *testing.T) {
	assert.True(t, IsSystemTag("複習"))
	assert.True(t, IsSystemTag(" 考試 "))
	assert.False(t, IsSystemTag("複習 > 舊"))
	assert.False(t, IsSystemTag("Review")) // alias, not canonical form
	assert.False(t, IsSystemTag(""))
}
