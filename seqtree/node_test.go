package seqtree

import (
	"testing"

	"github.com/grailbio/jst/coverage"
	"github.com/grailbio/jst/rangeindex"
	"github.com/grailbio/jst/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rangeindexPos(x int) rangeindex.PosType { return rangeindex.PosType(x) }

func covered(v variant.Variant, ids ...int) variant.Covered {
	c := coverage.NewBit(4)
	for _, id := range ids {
		c.Insert(id)
	}
	return variant.NewCovered(v, c)
}

func smallTree() *BaseTree {
	source := []byte("AAAAAAAAAA") // 10 symbols
	vs := []variant.Covered{
		covered(variant.NewSNV(3, 'C'), 0),
		covered(variant.NewIndel(6, 2, nil), 1), // deletes [6,8)
	}
	return NewBaseTree(source, vs, 4)
}

func TestRootAndRef(t *testing.T) {
	tr := smallTree()
	root := tr.Root()
	assert.Equal(t, rangeindexPos(0), root.LowBoundary())
	assert.Equal(t, rangeindexPos(3), root.HighBoundary())
	assert.False(t, root.OnAlternatePath())

	n1, ok := root.NextRef()
	require.True(t, ok)
	assert.Equal(t, rangeindexPos(3), n1.LowBoundary())
	assert.Equal(t, rangeindexPos(6), n1.HighBoundary())
	assert.False(t, n1.OnAlternatePath())

	n2, ok := n1.NextRef()
	require.True(t, ok)
	assert.True(t, n2.IsLast())
	assert.Equal(t, rangeindexPos(10), n2.HighBoundary())
}

func TestAltJumpsPastDeletion(t *testing.T) {
	tr := smallTree()
	root := tr.Root()
	n1, _ := root.NextRef() // now pending variant is the deletion at idx 1

	alt, ok := n1.NextAlt()
	require.True(t, ok)
	assert.True(t, alt.OnAlternatePath())
	assert.True(t, alt.FromVariant())
	assert.Equal(t, rangeindexPos(8), alt.LowBoundary()) // jumped to deletion's high breakend
	assert.True(t, alt.IsLast())                          // no variant remains after the deletion
}

func TestAltOnPureInsertionAdvancesPastItself(t *testing.T) {
	source := []byte("AAAAAAAAAA")
	vs := []variant.Covered{
		covered(variant.NewIndel(3, 0, []byte("GG")), 0), // pure insertion, span 0
	}
	tr := NewBaseTree(source, vs, 4)
	root := tr.Root()

	alt, ok := root.NextAlt()
	require.True(t, ok)
	assert.True(t, alt.IsLast())
	assert.Equal(t, rangeindexPos(3), alt.LowBoundary())

	// Taking next_ref then next_alt again must not re-decide the same
	// insertion: there is no variant left to branch on.
	_, ok = alt.NextRef()
	assert.False(t, ok)
}

func TestAltOnInsertionColocatedWithEarlierVariantAdvances(t *testing.T) {
	source := []byte("AAAAAAAAAA")
	vs := []variant.Covered{
		covered(variant.NewSNV(3, 'C'), 0),
		covered(variant.NewIndel(3, 0, []byte("GG")), 1), // colocated pure insertion
	}
	tr := NewBaseTree(source, vs, 4)
	root := tr.Root()

	// The insertion at idx 1 is reachable along the SNV's ref branch,
	// which lands on it as the pending variant; the SNV's alt branch
	// jumps to position 4, past it.
	n1, ok := root.NextRef()
	require.True(t, ok)
	pending, ok := n1.PendingVariant()
	require.True(t, ok)
	assert.Equal(t, variant.Indel, pending.Kind())

	alt, ok := n1.NextAlt()
	require.True(t, ok)
	assert.True(t, alt.Index() > n1.Index())
	assert.True(t, alt.IsLast())
}

func TestSinkDistinctFromLast(t *testing.T) {
	tr := smallTree()
	n := tr.Root()
	for {
		next, ok := n.NextRef()
		if !ok {
			break
		}
		n = next
	}
	assert.True(t, n.IsLast())
	assert.False(t, n.IsSink())
	assert.True(t, tr.Sink().IsSink())
}

func TestSeekRoundTripPureReference(t *testing.T) {
	tr := smallTree()
	n1, _ := tr.Root().NextRef()
	pos := n1.Position()
	back := tr.Seek(pos)
	assert.Equal(t, n1.LowBoundary(), back.LowBoundary())
	assert.Equal(t, n1.HighBoundary(), back.HighBoundary())
	assert.Equal(t, n1.OnAlternatePath(), back.OnAlternatePath())
}

func TestSeekRoundTripAlternatePath(t *testing.T) {
	tr := smallTree()
	n1, _ := tr.Root().NextRef()
	alt, _ := n1.NextAlt()
	pos := alt.Position()
	back := tr.Seek(pos)
	assert.Equal(t, alt.LowBoundary(), back.LowBoundary())
	assert.Equal(t, alt.HighBoundary(), back.HighBoundary())
	assert.True(t, back.OnAlternatePath())
}
