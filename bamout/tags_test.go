package bamout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/jst/seqtree"
)

func TestTagsForReferencePosition(t *testing.T) {
	p := seqtree.SeekPosition{ReferenceIdx: 5}
	tags := TagsFor(p, 3)
	assert.Empty(t, tags.AD)
	assert.Equal(t, []byte{5}, tags.RD)
	assert.EqualValues(t, 3, tags.LO)
}

func TestTagsForAlternatePositionPacksDescriptorLSBFirst(t *testing.T) {
	desc := seqtree.PathDescriptor{}.Append(1).Append(0).Append(1)
	p := seqtree.SeekPosition{OnAlt: true, BranchIdx: 2, Descriptor: desc}
	tags := TagsFor(p, 7)
	assert.Equal(t, []byte{2}, tags.RD)
	// bits recorded oldest-first at position i: 1,0,1 -> LSB-first byte
	// has bit0=1, bit1=0, bit2=1 -> 0b101 = 5.
	assert.Equal(t, []byte{0x05}, tags.AD)
	assert.EqualValues(t, 7, tags.LO)
}
