package tagpath

import "strings"

// Delimiter separates segments inside a stored tag path.
const Delimiter = ">"

// canonicalSep is the delimiter in canonical display/storage form.
const canonicalSep = " " + Delimiter + " "

// MaxDepth is the deepest nesting level a tag path may have.
const MaxDepth = 3

// Parse splits a raw tag path into its segments. Surrounding
// whitespace is trimmed and empty segments are dropped.
func Parse(path string) []string {
	parts := strings.Split(strings.TrimSpace(path), Delimiter)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// Join assembles segments into the canonical stored form.
func Join(segments []string) string {
	return strings.Join(segments, canonicalSep)
}

// Normalize converts a raw path into canonical form. It returns false
// for zero segments, more than MaxDepth segments, or any segment that
// still contains the delimiter. Every persisted tag path passes
// through this gate.
func Normalize(path string) (string, bool) {
	segments := Parse(path)
	if len(segments) == 0 || len(segments) > MaxDepth {
		return "", false
	}
	for _, s := range segments {
		if strings.Contains(s, Delimiter) {
			return "", false
		}
	}
	return Join(segments), true
}

// Depth returns the number of segments, or 0 for an invalid path.
func Depth(path string) int {
	norm, ok := Normalize(path)
	if !ok {
		return 0
	}
	return len(Parse(norm))
}

// Parent returns the normalized parent path, or the empty string for
// a depth-1 or invalid path. The empty string doubles as the root key
// in the sibling-order store.
func Parent(path string) string {
	segments := Parse(path)
	if len(segments) <= 1 {
		return ""
	}
	return Join(segments[:len(segments)-1])
}

// LastSegment returns the final segment of the path, or "" for an
// empty one.
func LastSegment(path string) string {
	segments := Parse(path)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// StartsWith reports whether child equals parent or sits somewhere
// inside parent's subtree. Both sides are normalized first; a path
// that fails to normalize is never a member of any subtree.
func StartsWith(child, parent string) bool {
	c, ok := Normalize(child)
	if !ok {
		return false
	}
	p, ok := Normalize(parent)
	if !ok {
		return false
	}
	return c == p || strings.HasPrefix(c, p+canonicalSep)
}

// Ancestors returns every proper ancestor prefix of the path, shortest
// first. A depth-1 path has none.
func Ancestors(path string) []string {
	segments := Parse(path)
	if len(segments) <= 1 {
		return nil
	}
	out := make([]string, 0, len(segments)-1)
	for i := 1; i < len(segments); i++ {
		out = append(out, Join(segments[:i]))
	}
	return out
}

// ReplacePrefix rewrites a path known to live under from so that it
// lives under to instead. The result is re-normalized; false means the
// rewrite produced an invalid path (for example one deeper than
// MaxDepth) and the caller must drop it.
func ReplacePrefix(path, from, to string) (string, bool) {
	c, ok := Normalize(path)
	if !ok {
		return "", false
	}
	f, ok := Normalize(from)
	if !ok {
		return "", false
	}
	if c == f {
		return Normalize(to)
	}
	if !strings.HasPrefix(c, f+canonicalSep) {
		return "", false
	}
	return Normalize(to + canonicalSep + strings.TrimPrefix(c, f+canonicalSep))
}
