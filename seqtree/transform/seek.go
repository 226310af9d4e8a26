package transform

import "github.com/grailbio/jst/seqtree"

// Seek reconstructs the unique node reachable at p by replaying the
// underlying base tree's descent and re-deriving the journal and
// coverage cargo along the way (distilled spec §4.6's seek transformer;
// §8's seek round-trip invariant: Seek(n.Position()) carries the same
// cargo, coverage, and boundaries as n, for any n reached by a
// traverser).
func (t *Tree) Seek(p seqtree.SeekPosition) Node {
	if !p.OnAlt {
		return t.seekReference(p.ReferenceIdx)
	}
	n := t.seekReference(p.BranchIdx)
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

// seekReference reconstructs the pure reference node at variant index idx
// by walking ref edges from the root, rebuilding coverage and the journal
// along the way.
func (t *Tree) seekReference(idx int) Node {
	n := t.Root()
	for n.base.Index() < idx {
		next, ok := n.NextRef()
		if !ok {
			break
		}
		n = next
	}
	return n
}
