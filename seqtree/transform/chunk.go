package transform

import (
	"sort"

	"github.com/grailbio/jst/rangeindex"
	"github.com/grailbio/jst/seqtree"
	"github.com/grailbio/jst/variant"
)

// Chunk partitions the reference into non-overlapping size-wide pieces,
// each extended by overlap symbols, and returns one independent *Tree per
// piece rooted at reference position i*size with source length
// size+overlap (distilled spec §4.6's chunk transformer). Partial trees
// share no mutable state and may be driven on separate goroutines; the
// underlying reference bytes are sliced, not copied.
func (t *Tree) Chunk(size, overlap int) []*Tree {
	source := t.base.Source()
	all := t.base.Variants()
	keys := make([]int, len(all))
	for i, v := range all {
		keys[i] = int(v.Position())
	}

	var chunks []*Tree
	for start := 0; start < len(source); start += size {
		end := start + size + overlap
		if end > len(source) {
			end = len(source)
		}
		lo := sort.Search(len(keys), func(i int) bool { return keys[i] >= start })
		hi := sort.Search(len(keys), func(i int) bool { return keys[i] >= end })

		offset := rangeindex.PosType(start)
		sub := make([]variant.Covered, 0, hi-lo)
		for _, v := range all[lo:hi] {
			sub = append(sub, rebase(v, offset))
		}
		base := seqtree.NewBaseTree(source[start:end], sub, t.h)
		chunks = append(chunks, &Tree{
			base:        base,
			h:           t.h,
			trimK:       t.trimK,
			leftExtendK: t.leftExtendK,
			prune:       t.prune,
			merge:       t.merge,
			kDepth:      t.kDepth,
			memo:        newCoverageMemo(),
		})
		if end == len(source) {
			break
		}
	}
	return chunks
}

// rebase returns a copy of v with its breakpoint shifted to be relative
// to a chunk starting at offset.
func rebase(v variant.Covered, offset rangeindex.PosType) variant.Covered {
	pos := v.Position() - offset
	var shifted variant.Variant
	if v.Kind() == variant.SNV {
		shifted = variant.NewSNV(pos, v.SNVSymbol())
	} else {
		shifted = variant.NewIndel(pos, v.DeletionLength(), v.Insertion())
	}
	return variant.NewCovered(shifted, v.Coverage())
}
