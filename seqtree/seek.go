package seqtree

import "github.com/grailbio/jst/rangeindex"

// SeekPosition identifies a node's path on the tree (distilled spec §3):
// a node still on the pure reference line carries a reference-break
// descriptor (its variant-map index); a node on_alternate_path carries the
// index of its nearest branching ancestor plus the alternate-path
// descriptor recording every ref/alt choice taken since that ancestor.
type SeekPosition struct {
	OnAlt        bool
	ReferenceIdx int            // valid iff !OnAlt
	BranchIdx    int            // valid iff OnAlt: the ancestor next_alt was first taken from
	Descriptor   PathDescriptor // valid iff OnAlt
}

// Position returns n's seek position.
func (n Node) Position() SeekPosition {
	if n.descriptor.Len() == 0 {
		return SeekPosition{ReferenceIdx: n.idx}
	}
	return SeekPosition{OnAlt: true, BranchIdx: n.branchIdx, Descriptor: n.descriptor}
}

// Unwind converts a SeekPosition obtained by traversing a tree built by
// Reverse back into the equivalent SeekPosition on the tree Reverse was
// built from. nVariants is the variant count both trees share: the
// reverse tree's variant map is the forward one read back to front, so
// the reverse tree's variant index i corresponds to the forward tree's
// index nVariants-1-i (applied to BranchIdx). A ReferenceIdx names the
// reference stretch before that variant, so reverse index i maps to
// forward index nVariants-i (distilled spec §4.9 step 3's "unwind"ing of
// a reverse-path descriptor into a forward seek position).
func (p SeekPosition) Unwind(nVariants int) SeekPosition {
	if !p.OnAlt {
		return SeekPosition{ReferenceIdx: nVariants - p.ReferenceIdx}
	}
	return SeekPosition{
		OnAlt:      true,
		BranchIdx:  nVariants - 1 - p.BranchIdx,
		Descriptor: p.Descriptor,
	}
}

// referenceNode reconstructs the pure reference node sitting at variant
// index idx, independent of any traversal.
func (t *BaseTree) referenceNode(idx int) Node {
	low := rangeindex.PosType(0)
	if idx > 0 {
		low = t.boundaryFor(idx - 1)
	}
	return Node{tree: t, idx: idx, low: low, high: t.boundaryFor(idx)}
}

// Seek reconstructs the unique node reachable at p. A pure reference
// position is reconstructed directly; an alternate-path position is
// reconstructed by jumping straight to its branching ancestor and
// replaying the descriptor from there (distilled spec §4.6's seek
// transformer).
func (t *BaseTree) Seek(p SeekPosition) Node {
	if !p.OnAlt {
		return t.referenceNode(p.ReferenceIdx)
	}
	n := t.referenceNode(p.BranchIdx)
	for i := 0; i < p.Descriptor.Len(); i++ {
		var ok bool
		if p.Descriptor.Bit(i) == 0 {
			n, ok = n.NextRef()
		} else {
			n, ok = n.NextAlt()
		}
		if !ok {
			break
		}
	}
	return n
}
