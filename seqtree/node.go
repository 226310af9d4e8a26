package seqtree

import (
	"sort"

	"github.com/grailbio/jst/rangeindex"
	"github.com/grailbio/jst/variant"
)

// BaseTree is the lazy DAG-to-tree expansion over one RCS store's
// reference and sorted variant map (distilled spec §4.5, §4.6's base
// tree). It owns no mutable state beyond its input slices: every Node it
// hands out is an independent value.
type BaseTree struct {
	source   []byte
	variants []variant.Covered
	keys     []variant.PackedBreakendKey
	h        int
}

// NewBaseTree builds a base tree over source with h haplotypes and the
// variant map variants, which must already be sorted in packed-breakend-
// key order (as rcs.Store.Variants returns it).
func NewBaseTree(source []byte, variants []variant.Covered, h int) *BaseTree {
	keys := make([]variant.PackedBreakendKey, len(variants))
	for i, v := range variants {
		keys[i] = v.Key()
	}
	return &BaseTree{source: source, variants: variants, keys: keys, h: h}
}

// Source returns the reference sequence.
func (t *BaseTree) Source() []byte { return t.source }

// Size returns H, the haplotype count.
func (t *BaseTree) Size() int { return t.h }

// Variants returns the tree's backing variant map.
func (t *BaseTree) Variants() []variant.Covered { return t.variants }

// lowerBoundAfter returns the index of the first variant whose packed key
// is >= the synthetic search key for pos, implementing the "jump forward
// to the lower-bound successor" edge case of distilled spec §4.5.
func (t *BaseTree) lowerBoundAfter(pos rangeindex.PosType) int {
	key := variant.SearchKeyAfterDeletion(pos)
	return sort.Search(len(t.keys), func(i int) bool { return t.keys[i] >= key })
}

// boundaryFor returns the reference position a node sitting just before
// variants[idx] starts at, or len(source) past the last variant.
func (t *BaseTree) boundaryFor(idx int) rangeindex.PosType {
	if idx >= len(t.variants) {
		return rangeindex.PosType(len(t.source))
	}
	return t.variants[idx].Position()
}

// Root returns the node anchored at the reference origin (distilled spec
// §4.5).
func (t *BaseTree) Root() Node {
	return Node{tree: t, idx: 0, low: 0, high: t.boundaryFor(0)}
}

// Sink returns the terminal sentinel, compared by value with nodes
// (distilled spec §4.5). Node.IsSink reports equality with it.
func (t *BaseTree) Sink() Node {
	return Node{tree: t, idx: len(t.variants) + 1}
}

// Node is one position in the base tree: either a reference stretch
// between two breakend sites, or (once on_alternate_path) a point reached
// by having taken one or more alternate alleles. Node is a small value
// type; copying it is the mechanism by which the tree is explored without
// shared mutable state.
type Node struct {
	tree       *BaseTree
	idx        int // index into tree.variants of the node's pending (branch) site
	low, high  rangeindex.PosType
	descriptor PathDescriptor
	branchIdx  int // reference idx of the branching ancestor the descriptor is relative to
	viaAlt     bool // true if the edge entering this node was next_alt
}

// IsSink reports whether n is the terminal sentinel.
func (n Node) IsSink() bool { return n.tree != nil && n.idx > len(n.tree.variants) }

// IsLast reports whether n has no pending variant: its reference stretch
// runs to the end of the source with no further branch (distilled spec
// §4.5's "last" state).
func (n Node) IsLast() bool { return n.idx >= len(n.tree.variants) }

// LowBoundary returns the reference-space position this node's stretch
// begins at.
func (n Node) LowBoundary() rangeindex.PosType { return n.low }

// HighBoundary returns the reference-space position this node's stretch
// ends at (exclusive).
func (n Node) HighBoundary() rangeindex.PosType { return n.high }

// OnAlternatePath reports whether any alternate allele has been taken
// since the most recent branching ancestor (distilled spec §4.5's
// on_alternate_path predicate).
func (n Node) OnAlternatePath() bool { return n.descriptor.Len() > 0 }

// FromVariant reports whether the edge entering this node was next_alt.
func (n Node) FromVariant() bool { return n.viaAlt }

// FromReference reports whether the edge entering this node was next_ref
// (or this is the root).
func (n Node) FromReference() bool { return !n.viaAlt }

// Descriptor returns the node's alternate-path descriptor.
func (n Node) Descriptor() PathDescriptor { return n.descriptor }

// Index returns the node's position in the variant map: the index of its
// pending (branch) site, or len(Variants()) past the last one.
func (n Node) Index() int { return n.idx }

// PendingVariant returns the variant this node sits just before, and
// whether one exists (false at or past the last variant).
func (n Node) PendingVariant() (variant.Covered, bool) {
	if n.idx >= len(n.tree.variants) {
		return variant.Covered{}, false
	}
	return n.tree.variants[n.idx], true
}

// NextRef advances along the reference beyond the current variant site
// (distilled spec §4.5). Returns ok=false at the last node (nothing
// beyond the end of the reference to advance to).
func (n Node) NextRef() (Node, bool) {
	if n.idx >= len(n.tree.variants) {
		return Node{}, false
	}
	desc := n.descriptor
	if desc.Len() > 0 {
		desc = desc.Append(0)
	}
	newIdx := n.idx + 1
	return Node{
		tree:       n.tree,
		idx:        newIdx,
		low:        n.high,
		high:       n.tree.boundaryFor(newIdx),
		descriptor: desc,
		branchIdx:  n.branchIdx,
		viaAlt:     false,
	}, true
}

// NextAlt takes the alternate branch at the current variant site
// (distilled spec §4.5). Returns ok=false if there is no pending variant
// to branch on.
func (n Node) NextAlt() (Node, bool) {
	if n.idx >= len(n.tree.variants) {
		return Node{}, false
	}
	v := n.tree.variants[n.idx]
	branchIdx := n.branchIdx
	if n.descriptor.Len() == 0 {
		branchIdx = n.idx
	}
	desc := n.descriptor.Append(1)
	jumpPos := v.HighBreakend().Position
	newIdx := n.tree.lowerBoundAfter(jumpPos)
	// A span-0 variant (a pure insertion) has HighBreakend().Position
	// equal to its own low position, so lowerBoundAfter can return n.idx
	// itself or an earlier colocated variant's index. Without this floor
	// the alt edge would loop back onto a pending index already decided,
	// re-applying the same insertion on every subsequent next_ref/next_alt
	// pair.
	if newIdx <= n.idx {
		newIdx = n.idx + 1
	}
	return Node{
		tree:       n.tree,
		idx:        newIdx,
		low:        jumpPos,
		high:       n.tree.boundaryFor(newIdx),
		descriptor: desc,
		branchIdx:  branchIdx,
		viaAlt:     true,
	}, true
}
