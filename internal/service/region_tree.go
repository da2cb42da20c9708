package service

import (
	"sort"

	"github.com/google/uuid"

	"github.com/vibe-gaming/geodirectory/internal/domain"
)

const DefaultTreeMaxDepth = 100

// BuildRegionTree nests a flat region list under parentID (nil for the top of the list).
//
// With a parentID the forest starts at its children, and a region whose own parent is
// absent from the list joins them at the top so a gap in the chain does not drop it.
// Parentless regions are not descendants and are left out. Without a parentID roots are
// the regions whose parent is absent from the list, so orphans surface as roots instead
// of being dropped. On the last level allowed by maxDepth every remaining descendant is appended
// to that level as a sibling rather than truncated, so maxDepth 1 returns the whole list
// flat. Each level is sorted by name.
func BuildRegionTree(regions []domain.Region, parentID *uuid.UUID, maxDepth int) []*domain.RegionNode {
	if maxDepth <= 0 {
		maxDepth = DefaultTreeMaxDepth
	}

	b := newTreeBuilder(regions)
	if parentID != nil {
		b.placed[*parentID] = struct{}{}
		forest := b.level(b.children[*parentID], maxDepth)
		forest = append(forest, b.level(b.orphans(*parentID), maxDepth)...)
		sortNodes(forest)
		return forest
	}

	forest := b.level(b.roots(), maxDepth)

	// Whatever is left sits on a parent cycle. Break each cycle at its first name.
	for {
		left := b.unplaced()
		if len(left) == 0 {
			break
		}
		forest = append(forest, b.level(left[:1], maxDepth)...)
	}

	sortNodes(forest)
	return forest
}

type treeBuilder struct {
	regions  []*domain.Region
	byID     map[uuid.UUID]*domain.Region
	children map[uuid.UUID][]*domain.Region
	placed   map[uuid.UUID]struct{}
}

func newTreeBuilder(regions []domain.Region) *treeBuilder {
	b := &treeBuilder{
		byID:     make(map[uuid.UUID]*domain.Region, len(regions)),
		children: make(map[uuid.UUID][]*domain.Region),
		placed:   make(map[uuid.UUID]struct{}, len(regions)),
	}

	for i := range regions {
		r := &regions[i]
		if _, dup := b.byID[r.ID]; dup {
			continue
		}
		b.byID[r.ID] = r
		b.regions = append(b.regions, r)
		if r.ParentID.Valid {
			b.children[r.ParentID.UUID] = append(b.children[r.ParentID.UUID], r)
		}
	}

	return b
}

func (b *treeBuilder) roots() []*domain.Region {
	var roots []*domain.Region
	for _, r := range b.regions {
		if !r.ParentID.Valid {
			roots = append(roots, r)
			continue
		}
		if _, ok := b.byID[r.ParentID.UUID]; !ok {
			roots = append(roots, r)
		}
	}
	return roots
}

// orphans are the regions below parentID whose parent is missing from the list.
func (b *treeBuilder) orphans(parentID uuid.UUID) []*domain.Region {
	var out []*domain.Region
	for _, r := range b.regions {
		if !r.ParentID.Valid || r.ParentID.UUID == parentID {
			continue
		}
		if _, ok := b.byID[r.ParentID.UUID]; !ok {
			out = append(out, r)
		}
	}
	return out
}

func (b *treeBuilder) level(regions []*domain.Region, depth int) []*domain.RegionNode {
	var fresh []*domain.Region
	for _, r := range regions {
		if _, done := b.placed[r.ID]; done {
			continue
		}
		b.placed[r.ID] = struct{}{}
		fresh = append(fresh, r)
	}

	nodes := make([]*domain.RegionNode, 0, len(fresh))
	if depth <= 1 {
		for _, r := range fresh {
			nodes = append(nodes, &domain.RegionNode{Region: *r})
			nodes = b.flatten(r.ID, nodes)
		}
		sortNodes(nodes)
		return nodes
	}

	for _, r := range fresh {
		node := &domain.RegionNode{Region: *r}
		if children := b.level(b.children[r.ID], depth-1); len(children) > 0 {
			node.Children = children
		}
		nodes = append(nodes, node)
	}
	sortNodes(nodes)
	return nodes
}

// flatten appends every unplaced descendant of id to nodes without nesting.
func (b *treeBuilder) flatten(id uuid.UUID, nodes []*domain.RegionNode) []*domain.RegionNode {
	for _, child := range b.children[id] {
		if _, done := b.placed[child.ID]; done {
			continue
		}
		b.placed[child.ID] = struct{}{}
		nodes = append(nodes, &domain.RegionNode{Region: *child})
		nodes = b.flatten(child.ID, nodes)
	}
	return nodes
}

func (b *treeBuilder) unplaced() []*domain.Region {
	var left []*domain.Region
	for _, r := range b.regions {
		if _, done := b.placed[r.ID]; !done {
			left = append(left, r)
		}
	}
	sort.SliceStable(left, func(i, j int) bool { return lessByName(left[i], left[j]) })
	return left
}

func sortNodes(nodes []*domain.RegionNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return lessByName(&nodes[i].Region, &nodes[j].Region)
	})
}
