package seqtree

import (
	"github.com/grailbio/jst/alphabet"
	"github.com/grailbio/jst/rangeindex"
	"github.com/grailbio/jst/variant"
)

// Reverse builds a new BaseTree over the same haplotype domain whose
// forward traversal corresponds to a backward traversal of base: the
// reference is reversed, the variant map is the forward map read back to
// front with each breakpoint mirrored (it is not re-sorted, so variants
// sharing a forward position keep their forward order reversed), and
// each variant's inserted content is reversed (not
// complemented — distilled spec §4.9's "reverse tree" mirrors boundaries
// and reverses insertions, it does not reverse-complement; that
// transform is reserved for true reverse-strand search, which this spec
// does not ask for).
//
// search.Bucket uses Reverse to extend a seed hit leftward with the same
// node state machine, transform pipeline, and matcher machinery already
// built for rightward extension, rather than a second backward-walking
// code path (distilled spec §9's supplemental feature, grounded in
// original_source's journaled_sequence_tree_backward.hpp).
func Reverse(base *BaseTree) *BaseTree {
	n := rangeindex.PosType(len(base.source))

	revSource := make([]byte, len(base.source))
	copy(revSource, base.source)
	alphabet.Reverse(revSource)

	revVariants := make([]variant.Covered, len(base.variants))
	for i, v := range base.variants {
		src := base.variants[len(base.variants)-1-i]
		revVariants[i] = mirrorVariant(src, n)
	}

	return NewBaseTree(revSource, revVariants, base.h)
}

// mirrorVariant reflects v's breakpoint across a source of length n and
// reverses its inserted content.
func mirrorVariant(v variant.Covered, n rangeindex.PosType) variant.Covered {
	delLen := v.DeletionLength()
	newPos := n - v.Position() - delLen

	ins := append([]byte(nil), v.Insertion()...)
	alphabet.Reverse(ins)

	var mirrored variant.Variant
	if v.Kind() == variant.SNV {
		mirrored = variant.NewSNV(newPos, ins[0])
	} else {
		mirrored = variant.NewIndel(newPos, delLen, ins)
	}
	return variant.NewCovered(mirrored, v.Coverage())
}
