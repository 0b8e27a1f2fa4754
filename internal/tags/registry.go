// Package tags owns the canonical flat tag set, the persisted sibling
// display order, and the derived tag tree. Subtree mutations keep the
// tag set, every word's tag list, and the order entries consistent as
// one logical operation.
package tags

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/example/halovoc/internal/storage"
	"github.com/example/halovoc/internal/tagpath"
)

// WordTagger is the word-store seam the registry cascades through.
// Accepting an interface keeps the registry decoupled from the word
// collection's own persistence.
type WordTagger interface {
	RenameTagPrefix(ctx context.Context, from, to string) error
	RemoveTagPrefix(ctx context.Context, path string) error
	CopyTagPrefix(ctx context.Context, from, to string) error
}

// Direction selects a sibling reorder move.
type Direction int

const (
	// Up moves the sibling one position earlier.
	Up Direction = -1
	// Down moves the sibling one position later.
	Down Direction = 1
)

// Registry owns the flat list of normalized tag paths, always
// including the two system tags. Invalid inputs are rejected as silent
// no-ops; errors are reserved for storage failures.
type Registry struct {
	store storage.Store
	words WordTagger
}

// NewRegistry creates a registry over the given store and word seam.
func NewRegistry(store storage.Store, words WordTagger) *Registry {
	return &Registry{store: store, words: words}
}

// List returns the canonical tag set. Malformed persisted data is
// reset, non-normalizable paths are dropped, ancestors of every member
// are ensured, and the two system tags are always present. Any repair
// is written back immediately.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	raw, ok, err := r.store.Get(ctx, storage.KeyTags)
	if err != nil {
		return nil, err
	}
	var stored []string
	if ok {
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			slog.Warn("resetting malformed tag set", "error", err)
			stored = nil
		}
	}
	sanitized, changed := sanitizeTagSet(stored)
	if !ok || changed {
		if err := r.saveTags(ctx, sanitized); err != nil {
			return nil, err
		}
	}
	return sanitized, nil
}

// Add inserts a normalized path together with every missing ancestor
// prefix; a descendant never exists without its ancestors. Each newly
// created leaf is appended to its parent's order entry. Adding a
// system tag alias or an invalid path is a no-op.
func (r *Registry) Add(ctx context.Context, path string) error {
	if _, isSystem := tagpath.CanonicalSystemTag(path); isSystem {
		return nil
	}
	norm, ok := tagpath.Normalize(path)
	if !ok {
		return nil
	}
	tags, err := r.List(ctx)
	if err != nil {
		return err
	}
	order, err := r.loadOrder(ctx)
	if err != nil {
		return err
	}
	existing := toSet(tags)
	changed := false
	for _, p := range append(tagpath.Ancestors(norm), norm) {
		if existing[p] {
			continue
		}
		existing[p] = true
		tags = append(tags, p)
		appendOrder(order, tagpath.Parent(p), tagpath.LastSegment(p))
		changed = true
	}
	if !changed {
		return nil
	}
	if err := r.saveTags(ctx, tags); err != nil {
		return err
	}
	return r.saveOrder(ctx, order)
}

// RenameSubtree rewrites every path equal to or under from so it lives
// under to, cascading the same rewrite through every word's tag list
// and moving the order entry from the old parent to the new one.
// Choosing a to with a different parent makes this a subtree move.
// System tags cannot be renamed; unknown or invalid paths no-op.
func (r *Registry) RenameSubtree(ctx context.Context, from, to string) error {
	fromNorm, toNorm, ok := r.subtreeArgs(from, to)
	if !ok {
		return nil
	}
	tags, err := r.List(ctx)
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(tags))
	renamed := make([]string, 0)
	for _, t := range tags {
		if !tagpath.StartsWith(t, fromNorm) {
			kept = append(kept, t)
			continue
		}
		if moved, ok := tagpath.ReplacePrefix(t, fromNorm, toNorm); ok {
			renamed = append(renamed, moved)
		}
	}
	if len(renamed) == 0 {
		return nil
	}
	next, _ := sanitizeTagSet(append(kept, renamed...))

	order, err := r.loadOrder(ctx)
	if err != nil {
		return err
	}
	removeOrder(order, tagpath.Parent(fromNorm), tagpath.LastSegment(fromNorm))
	appendOrder(order, tagpath.Parent(toNorm), tagpath.LastSegment(toNorm))
	rekeyOrder(order, fromNorm, toNorm, true)

	if err := r.words.RenameTagPrefix(ctx, fromNorm, toNorm); err != nil {
		return err
	}
	if err := r.saveTags(ctx, next); err != nil {
		return err
	}
	return r.saveOrder(ctx, order)
}

// RemoveSubtree deletes path and every descendant from the tag set,
// strips the same paths from every word (words themselves survive),
// and drops the leaf from its parent's order entry. Destructive and
// non-reversible; confirmation is the caller's job. System tags cannot
// be removed.
func (r *Registry) RemoveSubtree(ctx context.Context, path string) error {
	if _, isSystem := tagpath.CanonicalSystemTag(path); isSystem {
		return nil
	}
	norm, ok := tagpath.Normalize(path)
	if !ok {
		return nil
	}
	tags, err := r.List(ctx)
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(tags))
	removedAny := false
	for _, t := range tags {
		if tagpath.StartsWith(t, norm) {
			removedAny = true
			continue
		}
		kept = append(kept, t)
	}
	if !removedAny {
		return nil
	}
	order, err := r.loadOrder(ctx)
	if err != nil {
		return err
	}
	removeOrder(order, tagpath.Parent(norm), tagpath.LastSegment(norm))
	for key := range order {
		if tagpath.StartsWith(key, norm) {
			delete(order, key)
		}
	}

	if err := r.words.RemoveTagPrefix(ctx, norm); err != nil {
		return err
	}
	if err := r.saveTags(ctx, kept); err != nil {
		return err
	}
	return r.saveOrder(ctx, order)
}

// CopySubtree mirrors the from subtree under to, leaving the original
// paths and word taggings untouched; words tagged under from gain the
// mirrored tag as a union. The whole operation is rejected when any
// mirrored path would exceed the depth limit.
func (r *Registry) CopySubtree(ctx context.Context, from, to string) error {
	fromNorm, toNorm, ok := r.subtreeArgs(from, to)
	if !ok {
		return nil
	}
	tags, err := r.List(ctx)
	if err != nil {
		return err
	}
	mirrored := make([]string, 0)
	for _, t := range tags {
		if !tagpath.StartsWith(t, fromNorm) {
			continue
		}
		m, ok := tagpath.ReplacePrefix(t, fromNorm, toNorm)
		if !ok {
			// Part of the subtree cannot fit within the depth
			// limit; reject rather than copy half a tree.
			return nil
		}
		mirrored = append(mirrored, m)
	}
	if len(mirrored) == 0 {
		return nil
	}
	next, _ := sanitizeTagSet(append(tags, mirrored...))

	order, err := r.loadOrder(ctx)
	if err != nil {
		return err
	}
	appendOrder(order, tagpath.Parent(toNorm), tagpath.LastSegment(toNorm))
	rekeyOrder(order, fromNorm, toNorm, false)

	if err := r.words.CopyTagPrefix(ctx, fromNorm, toNorm); err != nil {
		return err
	}
	if err := r.saveTags(ctx, next); err != nil {
		return err
	}
	return r.saveOrder(ctx, order)
}

// ReorderSibling swaps name with its immediate neighbor in parent's
// order entry. Unknown names and boundary moves no-op.
func (r *Registry) ReorderSibling(ctx context.Context, parent, name string, dir Direction) error {
	parentKey := ""
	if parent != "" {
		norm, ok := tagpath.Normalize(parent)
		if !ok {
			return nil
		}
		parentKey = norm
	}
	order, err := r.loadOrder(ctx)
	if err != nil {
		return err
	}
	entry := order[parentKey]
	idx := -1
	for i, n := range entry {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	swap := idx + int(dir)
	if swap < 0 || swap >= len(entry) {
		return nil
	}
	entry[idx], entry[swap] = entry[swap], entry[idx]
	return r.saveOrder(ctx, order)
}

// subtreeArgs validates a rename/copy pair: both sides must normalize
// and neither may be a system tag under any of its spellings.
func (r *Registry) subtreeArgs(from, to string) (string, string, bool) {
	if _, isSystem := tagpath.CanonicalSystemTag(from); isSystem {
		return "", "", false
	}
	if _, isSystem := tagpath.CanonicalSystemTag(to); isSystem {
		return "", "", false
	}
	fromNorm, ok := tagpath.Normalize(from)
	if !ok {
		return "", "", false
	}
	toNorm, ok := tagpath.Normalize(to)
	if !ok {
		return "", "", false
	}
	return fromNorm, toNorm, true
}

func (r *Registry) saveTags(ctx context.Context, tags []string) error {
	data, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %v", err)
	}
	return r.store.Set(ctx, storage.KeyTags, string(data))
}

// sanitizeTagSet drops paths that fail to normalize, deduplicates,
// closes the set under ancestors, and guarantees the system tags.
func sanitizeTagSet(raw []string) ([]string, bool) {
	out := make([]string, 0, len(raw)+2)
	seen := make(map[string]bool, len(raw)+2)
	changed := false
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, t := range raw {
		if canonical, isSystem := tagpath.CanonicalSystemTag(t); isSystem {
			if canonical != t {
				changed = true
			}
			add(canonical)
			continue
		}
		norm, ok := tagpath.Normalize(t)
		if !ok {
			changed = true
			continue
		}
		if norm != t {
			changed = true
		}
		for _, a := range tagpath.Ancestors(norm) {
			if !seen[a] {
				changed = true
				add(a)
			}
		}
		add(norm)
	}
	for _, sys := range tagpath.SystemTags() {
		if !seen[sys] {
			changed = true
			add(sys)
		}
	}
	if len(out) != len(raw) {
		changed = true
	}
	return out, changed
}

// rekeyOrder mirrors the order entries keyed inside the from subtree
// onto the corresponding keys under to, so a moved or copied subtree
// keeps its internal display order. With move set, the old keys are
// dropped; a copy leaves them in place.
func rekeyOrder(order Order, from, to string, move bool) {
	keys := make([]string, 0, len(order))
	for key := range order {
		if tagpath.StartsWith(key, from) {
			keys = append(keys, key)
		}
	}
	for _, key := range keys {
		names := append([]string(nil), order[key]...)
		if move {
			delete(order, key)
		}
		if newKey, ok := tagpath.ReplacePrefix(key, from, to); ok {
			for _, n := range names {
				appendOrder(order, newKey, n)
			}
		}
	}
}

func toSet(list []string) map[string]bool {
	m := make(map[string]bool, len(list))
	for _, v := range list {
		m[v] = true
	}
	return m
}
