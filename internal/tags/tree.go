package tags

import (
	"context"
	"sort"

	"github.com/example/halovoc/internal/tagpath"
	"github.com/example/halovoc/pkg/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collator breaks ordering ties among siblings that have no persisted
// position. Tag names are predominantly Traditional Chinese.
var collator = collate.New(language.TraditionalChinese)

// BuildTree nests a flat set of tag paths into TagNodes up to the
// depth limit. System tags never appear in the tree; the UI renders
// them flat. Paths that fail to normalize are skipped.
func BuildTree(flatPaths []string) []*models.TagNode {
	root := make([]*models.TagNode, 0)
	index := make(map[string]*models.TagNode)
	for _, p := range flatPaths {
		if tagpath.IsSystemTag(p) {
			continue
		}
		norm, ok := tagpath.Normalize(p)
		if !ok {
			continue
		}
		segments := tagpath.Parse(norm)
		path := ""
		for _, seg := range segments {
			parentPath := path
			if path == "" {
				path = seg
			} else {
				path = tagpath.Join([]string{path, seg})
			}
			if _, exists := index[path]; exists {
				continue
			}
			node := &models.TagNode{Name: seg, Path: path}
			index[path] = node
			if parentPath == "" {
				root = append(root, node)
			} else {
				parent := index[parentPath]
				parent.Children = append(parent.Children, node)
			}
		}
	}
	return root
}

// ApplyOrder re-sorts every level of the tree by the persisted order
// entry for that level's parent path. Names missing from the entry
// sort after all ordered ones, ties broken by collation. Stale names
// in an entry are harmless.
func ApplyOrder(nodes []*models.TagNode, parentPath string, order Order) {
	sortSiblings(nodes, order[parentPath])
	for _, n := range nodes {
		ApplyOrder(n.Children, n.Path, order)
	}
}

// BuildOrderedTree composes BuildTree and ApplyOrder. The registry
// reads both the tag set and the order map fresh on every call; the
// rebuilt tree is ground truth, never a cached structure.
func (r *Registry) BuildOrderedTree(ctx context.Context) ([]*models.TagNode, error) {
	tags, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	order, err := r.loadOrder(ctx)
	if err != nil {
		return nil, err
	}
	tree := BuildTree(tags)
	ApplyOrder(tree, "", order)
	return tree, nil
}

func sortSiblings(nodes []*models.TagNode, entry []string) {
	pos := make(map[string]int, len(entry))
	for i, name := range entry {
		pos[name] = i
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		pi, iOrdered := pos[nodes[i].Name]
		pj, jOrdered := pos[nodes[j].Name]
		switch {
		case iOrdered && jOrdered:
			return pi < pj
		case iOrdered:
			return true
		case jOrdered:
			return false
		default:
			return collator.CompareString(nodes[i].Name, nodes[j].Name) < 0
		}
	})
}
