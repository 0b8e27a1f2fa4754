package tagpath

import "strings"

// System tag literals are embedded in persisted data from existing
// installs. They are fixed strings, not translation keys, and must
// never be re-derived from the UI locale.
const (
	// TagReview marks words under active spaced-repetition review.
	TagReview = "複習"
	// TagExam marks words selected for typed exams.
	TagExam = "考試"
)

// reviewAliases and examAliases map legacy spellings (Simplified
// Chinese, English) onto the canonical literals.
var (
	reviewAliases = []string{TagReview, "复习", "review"}
	examAliases   = []string{TagExam, "考试", "exam"}
)

// SystemTags returns the two reserved tag paths in display order.
func SystemTags() []string {
	return []string{TagReview, TagExam}
}

// CanonicalSystemTag resolves a raw string against the system tag
// aliases. The boolean is false when the input is not a system tag
// under any known spelling.
func CanonicalSystemTag(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, a := range reviewAliases {
		if strings.EqualFold(s, a) {
			return TagReview, true
		}
	}
	for _, a := range examAliases {
		if strings.EqualFold(s, a) {
			return TagExam, true
		}
	}
	return "", false
}

// IsSystemTag reports whether the normalized form of path is one of
// the two reserved tags.
func IsSystemTag(path string) bool {
	norm, ok := Normalize(path)
	if !ok {
		return false
	}
	return norm == TagReview || norm == TagExam
}
