package seqtree

import (
	"testing"

	"github.com/grailbio/jst/coverage"
	"github.com/grailbio/jst/variant"
	"github.com/stretchr/testify/assert"
)

func TestReverseMirrorsSource(t *testing.T) {
	base := NewBaseTree([]byte("ACGTACGT"), nil, 1)
	rev := Reverse(base)
	assert.Equal(t, []byte("TGCATGCA"), rev.Source())
}

func TestReverseIsInvolution(t *testing.T) {
	c := coverage.NewBit(2)
	c.Insert(0)
	vs := []variant.Covered{
		variant.NewCovered(variant.NewSNV(2, 'G'), c),
		variant.NewCovered(variant.NewIndel(5, 2, []byte("AA")), c),
	}
	base := NewBaseTree([]byte("AAAAAAAAAA"), vs, 2)
	roundTrip := Reverse(Reverse(base))

	assert.Equal(t, base.Source(), roundTrip.Source())
	assert.Equal(t, len(base.Variants()), len(roundTrip.Variants()))
	for i, v := range base.Variants() {
		rv := roundTrip.Variants()[i]
		assert.Equal(t, v.Position(), rv.Position())
		assert.Equal(t, v.DeletionLength(), rv.DeletionLength())
		assert.Equal(t, v.Insertion(), rv.Insertion())
	}
}

func TestSeekPositionUnwindRoundTrips(t *testing.T) {
	p := SeekPosition{OnAlt: true, BranchIdx: 1, Descriptor: PathDescriptor{}.Append(1)}
	n := 5
	back := p.Unwind(n).Unwind(n)
	assert.Equal(t, p, back)
}
