// Package transform implements the tree transformer pipeline of
// distilled spec §4.6 (labelled, coloured, trim, left-extend, prune,
// merge, seek, chunk, k-depth, stats) as one configurable wrapper around
// a seqtree.BaseTree. Every Tree always computes labels before colours,
// satisfying §4.6's composition law without needing a separate wrapper
// type per transformer.
package transform

import (
	"github.com/grailbio/jst/coverage"
	"github.com/grailbio/jst/journal"
	"github.com/grailbio/jst/rangeindex"
	"github.com/grailbio/jst/seqtree"
)

// Tree wraps a seqtree.BaseTree, enriching each node with a journaled
// sequence label and a coverage, and optionally applying trim,
// left-extend, prune, merge, and k-depth (distilled spec §4.6).
type Tree struct {
	base *seqtree.BaseTree
	h    int

	trimK       int // 0 disables
	leftExtendK int // 0 disables
	prune       bool
	merge       bool
	kDepth      int // 0 means unlimited

	memo *coverageMemo
}

// Opt configures a Tree.
type Opt func(*Tree)

// WithTrim caps every node's own window at k symbols (distilled spec
// §4.6's trim transformer).
func WithTrim(k int) Opt { return func(t *Tree) { t.trimK = k } }

// WithLeftExtend guarantees every node's window includes the k-1 symbols
// of journaled path preceding it (distilled spec §4.6's left-extend
// transformer).
func WithLeftExtend(k int) Opt { return func(t *Tree) { t.leftExtendK = k } }

// WithPrune drops any child whose coverage becomes empty, without
// descending into it (distilled spec §4.6's prune transformer).
func WithPrune() Opt { return func(t *Tree) { t.prune = true } }

// WithMerge collapses chains of non-branching nodes into one logical node
// (distilled spec §4.6's merge transformer). Merge is a performance
// transformer: it never changes the set of distinct emitted windows.
func WithMerge() Opt { return func(t *Tree) { t.merge = true } }

// WithKDepth limits the alternate-path subtree depth to k (distilled spec
// §4.6's k-depth transformer).
func WithKDepth(k int) Opt { return func(t *Tree) { t.kDepth = k } }

// New builds a Tree over base with h haplotypes.
func New(base *seqtree.BaseTree, h int, opts ...Opt) *Tree {
	t := &Tree{base: base, h: h, memo: newCoverageMemo()}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Root returns the tree's root node: coverage(root) = {0..H} (distilled
// spec §8).
func (t *Tree) Root() Node {
	base := t.base.Root()
	j := journal.New(t.base.Source())
	return Node{
		tree:      t,
		base:      base,
		journal:   j,
		coverage:  coverage.Full(t.h),
		pathStart: 0,
		ownLen:    base.HighBoundary() - base.LowBoundary(),
		altDepth:  0,
	}
}

// Node is a labelled, coloured node: its Sequence is the journaled
// substring between its boundaries, its PathSequence is the whole
// journaled path prefix up to its high boundary, and its Coverage is the
// set of haplotypes reachable through it.
//
// A node's own window lives in journaled space at [pathStart,
// pathStart+ownLen). For a reference-stretch node that length always
// equals the underlying base node's reference-space span; for a node
// reached by taking an alternate allele it instead equals the length of
// that allele's inserted content, which the base node's reference-space
// boundaries (spanning the deleted region, not the inserted one) do not
// capture.
type Node struct {
	tree      *Tree
	base      seqtree.Node
	journal   *journal.Journal
	coverage  coverage.Coverage
	pathStart rangeindex.PosType
	ownLen    rangeindex.PosType
	altDepth  int
}

// Base returns the node's underlying seqtree.Node, for boundary and
// path-descriptor access.
func (n Node) Base() seqtree.Node { return n.base }

// IsSink reports whether n is the terminal sentinel.
func (n Node) IsSink() bool { return n.base.IsSink() }

// IsLast reports whether n has no pending variant.
func (n Node) IsLast() bool { return n.base.IsLast() }

// OnAlternatePath reports whether n sits on an alternate allele path.
func (n Node) OnAlternatePath() bool { return n.base.OnAlternatePath() }

// Position returns n's seek position.
func (n Node) Position() seqtree.SeekPosition { return n.base.Position() }

// Coverage returns the set of haplotypes reachable through this node
// (distilled spec §4.6's coloured transformer).
func (n Node) Coverage() coverage.Coverage { return n.coverage }

// effectiveHigh applies trim: the node's own window never exceeds trimK
// symbols.
func (n Node) effectiveHigh() rangeindex.PosType {
	high := n.journaledHigh()
	if n.tree.trimK > 0 {
		capped := n.pathStart + rangeindex.PosType(n.tree.trimK)
		if capped < high {
			high = capped
		}
	}
	return high
}

// journaledHigh is the node's own high boundary in journaled space.
func (n Node) journaledHigh() rangeindex.PosType {
	return n.pathStart + n.ownLen
}

// effectiveLow applies left-extend: the node's own window reaches back up
// to leftExtendK-1 symbols of preceding path.
func (n Node) effectiveLow() rangeindex.PosType {
	low := n.pathStart
	if n.tree.leftExtendK > 1 {
		back := rangeindex.PosType(n.tree.leftExtendK - 1)
		if low-back < 0 {
			low = 0
		} else {
			low -= back
		}
	}
	return low
}

// Sequence returns the substring of the journaled path between the
// node's (possibly trimmed/left-extended) boundaries (distilled spec
// §4.6's labelled transformer).
func (n Node) Sequence() []byte {
	return n.journal.Slice(int(n.effectiveLow()), int(n.effectiveHigh()))
}

// PathSequence returns the whole journaled path prefix up to this node's
// high boundary.
func (n Node) PathSequence() []byte {
	return n.journal.Slice(0, int(n.journaledHigh()))
}

// SequenceStart returns the journaled-space offset Sequence's first byte
// sits at, for a caller that needs to translate an offset within
// Sequence() back into absolute path coordinates (search's seed-extend
// driver does this to locate a pigeonhole hit's left context).
func (n Node) SequenceStart() rangeindex.PosType { return n.effectiveLow() }

// PathBefore returns the journaled path prefix strictly before pos,
// independent of this node's own window boundaries.
func (n Node) PathBefore(pos rangeindex.PosType) []byte {
	return n.journal.Slice(0, int(pos))
}

// OwnLength returns the width of the node's own (untrimmed, non-left-
// extended) window: the reference-space span for a reference-stretch
// node, or the inserted allele's length for a node reached via an
// alternate branch. The bucket searcher's reverse-tree backward
// extension (distilled spec §4.9 step 3) uses this to translate a byte
// offset inside a forward node's own window into the mirrored offset
// inside the corresponding reverse-tree node's own window, since
// Reverse leaves every node's own-window length unchanged and only
// reverses its content in place.
func (n Node) OwnLength() rangeindex.PosType { return n.ownLen }

// Seek reconstructs the node at p within t. Unlike seqtree.BaseTree.Seek,
// a transform.Tree node carries cumulative coverage and a cumulative
// journal, so seek must replay every ref/alt step from the root rather
// than jump straight to p's branch ancestor (distilled spec §4.6's seek
// transformer, specialized to the labelled+coloured tree).
func (t *Tree) Seek(p seqtree.SeekPosition) Node {
	n := t.Root()
	target := p.BranchIdx
	if !p.OnAlt {
		target = p.ReferenceIdx
	}
	for n.base.Index() < target {
		next, ok := n.NextRef()
		if !ok {
			break
		}
		n = next
	}
	if !p.OnAlt {
		return n
	}
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

// IsLeaf reports whether n has neither a ref nor an alt child.
func (n Node) IsLeaf() bool {
	_, refOK := n.NextRef()
	_, altOK := n.NextAlt()
	return !refOK && !altOK
}

// NextRef advances along the reference, applying the coloured
// transformer's subtraction rule (distilled spec §4.6: a branching
// reference-stretch node's ref child loses the pending variant's
// coverage; a node already on an alternate path passes its coverage
// through unchanged) and merge (collapsing a chain with no available
// alternate) if enabled.
func (n Node) NextRef() (Node, bool) {
	base, ok := n.base.NextRef()
	if !ok {
		return Node{}, false
	}
	newCov := n.coverage
	if !n.base.FromVariant() {
		if pending, hasPending := n.base.PendingVariant(); hasPending {
			if diff, err := n.tree.memo.differenceOf(n.coverage, pending.Coverage()); err == nil {
				newCov = diff
			}
		}
	}
	child := n.childFromRef(base, newCov)
	if n.tree.merge {
		for {
			if _, altOK := child.NextAlt(); altOK {
				break
			}
			next, ok := child.base.NextRef()
			if !ok {
				break
			}
			nextCov := child.coverage
			if !child.base.FromVariant() {
				if pending, hasPending := child.base.PendingVariant(); hasPending {
					if diff, err := n.tree.memo.differenceOf(child.coverage, pending.Coverage()); err == nil {
						nextCov = diff
					}
				}
			}
			child = child.childFromRef(next, nextCov)
		}
	}
	return child, true
}

// childFromRef builds the ref-descent child node with the given coverage.
// Its window starts exactly where the parent's own window ends in
// journaled space (journaledHigh), plus any reference-space gap between
// the parent's and the new base node's boundaries (zero for a
// contiguous ref-to-ref step; the deleted span's remainder for an
// alt-to-ref step, already consumed by the alt node's own window so the
// gap there is also zero).
func (n Node) childFromRef(base seqtree.Node, cov coverage.Coverage) Node {
	gap := base.LowBoundary() - n.base.HighBoundary()
	return Node{
		tree:      n.tree,
		base:      base,
		journal:   n.journal,
		coverage:  cov,
		pathStart: n.journaledHigh() + gap,
		ownLen:    base.HighBoundary() - base.LowBoundary(),
		altDepth:  n.altDepth,
	}
}

// NextAlt takes the alternate branch, applying coloured's coverage rule
// and prune/k-depth if enabled. Returns false if n is itself already an
// alt node: distilled spec §4.6 forbids branching again immediately after
// an alt without an intervening reference stretch.
func (n Node) NextAlt() (Node, bool) {
	if n.base.FromVariant() {
		return Node{}, false
	}
	if n.tree.kDepth > 0 && n.altDepth >= n.tree.kDepth {
		return Node{}, false
	}
	pending, ok := n.base.PendingVariant()
	if !ok {
		return Node{}, false
	}
	base, ok := n.base.NextAlt()
	if !ok {
		return Node{}, false
	}
	altCov, err := n.tree.memo.intersectOf(n.coverage, pending.Coverage())
	if err != nil {
		return Node{}, false
	}
	if n.tree.prune && !altCov.Any() {
		return Node{}, false
	}

	varStart := n.pathStart + (pending.Position() - n.base.LowBoundary())
	j := cloneJournal(n.journal)
	applyVariant(j, varStart, pending)

	child := Node{
		tree:      n.tree,
		base:      base,
		journal:   j,
		coverage:  altCov,
		pathStart: varStart,
		ownLen:    rangeindex.PosType(len(pending.Insertion())),
		altDepth:  n.altDepth + 1,
	}
	return child, true
}
