package words

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/example/halovoc/internal/srs"
	"github.com/example/halovoc/internal/tagpath"
	"github.com/example/halovoc/pkg/models"
)

// Sanitize normalizes raw persisted records into canonical form. It is
// the implicit migration pass run on every load: prior encoding bugs
// left literal \uXXXX sequences in text fields, old installs miss
// createdAt/reviewCount/tags, system tags appear under legacy
// spellings, and review-tagged words can lack scheduling fields. The
// function is pure; the returned change list says what was touched so
// callers can decide whether to write back.
func Sanitize(raw []models.Word, now time.Time) ([]models.Word, []string) {
	out := make([]models.Word, 0, len(raw))
	var changes []string
	for _, w := range raw {
		sanitized, wordChanges := sanitizeWord(w, now)
		out = append(out, sanitized)
		changes = append(changes, wordChanges...)
	}
	return out, changes
}

func sanitizeWord(w models.Word, now time.Time) (models.Word, []string) {
	var changes []string
	note := func(format string, args ...any) {
		changes = append(changes, fmt.Sprintf("%s: %s", w.En, fmt.Sprintf(format, args...)))
	}

	for _, f := range []*string{&w.En, &w.Zh, &w.ExampleEn, &w.ExampleZh, &w.Phonetic, &w.Note} {
		decoded := decodeUnicodeEscapes(*f)
		if decoded != *f {
			*f = decoded
			note("decoded literal escape sequences")
		}
	}

	switch w.Status {
	case models.StatusUnknown, models.StatusLearning, models.StatusMastered:
	default:
		w.Status = models.StatusUnknown
		note("coerced status to unknown")
	}
	if w.CreatedAt <= 0 {
		w.CreatedAt = now.UnixMilli()
		note("backfilled createdAt")
	}
	if w.ReviewCount < 0 {
		w.ReviewCount = 0
		note("reset negative reviewCount")
	}

	tags, tagsChanged := sanitizeTags(w.Tags)
	if tagsChanged {
		note("normalized tag list")
	}
	w.Tags = tags

	if w.HasTag(tagpath.TagReview) {
		if filled := backfillSrs(&w, now); filled {
			note("backfilled review scheduling fields")
		}
	}
	return w, changes
}

// sanitizeTags remaps legacy system-tag spellings, drops paths that
// fail to normalize, and deduplicates case-sensitively while keeping
// first-seen order.
func sanitizeTags(tags []string) ([]string, bool) {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	changed := tags == nil
	for _, t := range tags {
		canonical, ok := tagpath.CanonicalSystemTag(t)
		if !ok {
			canonical, ok = tagpath.Normalize(t)
			if !ok {
				changed = true
				continue
			}
		}
		if canonical != t {
			changed = true
		}
		if seen[canonical] {
			changed = true
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}
	return out, changed
}

// backfillSrs fills any missing scheduling field with its default. A
// missing due date picks up "now" so the word surfaces in the next
// session.
func backfillSrs(w *models.Word, now time.Time) bool {
	if w.HasSrs() {
		return false
	}
	def := srs.Default(now)
	if w.SrsEase == nil {
		w.SrsEase = &def.Ease
	}
	if w.SrsInterval == nil {
		w.SrsInterval = &def.Interval
	}
	if w.SrsReps == nil {
		w.SrsReps = &def.Reps
	}
	if w.SrsLapses == nil {
		w.SrsLapses = &def.Lapses
	}
	if w.SrsDue == nil {
		w.SrsDue = &def.Due
	}
	return true
}

// decodeUnicodeEscapes replaces literal \uXXXX sequences, including
// surrogate pairs, with the runes they encode. Anything that is not a
// well-formed escape is copied through untouched.
func decodeUnicodeEscapes(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, width, ok := decodeEscapeAt(s, i)
		if !ok {
			b.WriteByte(s[i])
			i++
			continue
		}
		if utf16.IsSurrogate(r) {
			if r2, width2, ok2 := decodeEscapeAt(s, i+width); ok2 {
				if combined := utf16.DecodeRune(r, r2); combined != 0xFFFD {
					b.WriteRune(combined)
					i += width + width2
					continue
				}
			}
			// Lone surrogate: not representable, keep the raw text.
			b.WriteString(s[i : i+width])
			i += width
			continue
		}
		b.WriteRune(r)
		i += width
	}
	return b.String()
}

// decodeEscapeAt parses one \uXXXX escape starting at offset i.
func decodeEscapeAt(s string, i int) (rune, int, bool) {
	if i+6 > len(s) || s[i] != '\\' || s[i+1] != 'u' {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[i+2:i+6], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	return rune(v), 6, true
}
