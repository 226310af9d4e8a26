// Package bamout implements the BAM output producer boundary of distilled
// spec §6: encoding one confirmed bucket-searcher match position as the
// tagged sam.Record the rest of a pipeline (a variant caller, a
// visualization tool) consumes downstream.
package bamout

import (
	"encoding/binary"

	"github.com/grailbio/jst/seqtree"
)

// Tags holds the three BAM aux tags distilled spec §6 assigns to a match
// position: ad (alternate-path descriptor), rd (reference-break
// descriptor), lo (label offset).
type Tags struct {
	// AD is the alternate-path descriptor's ref(0)/alt(1) choices,
	// packed LSB-first one byte at a time. Empty for a position still on
	// the pure reference line.
	AD []byte
	// RD is the reference-break descriptor: the pure-reference variant
	// index a position sits at, or the branching ancestor index an
	// alternate-path position is relative to, packed as a little-endian
	// varint.
	RD []byte
	// LO is the label offset: the byte offset within the tree node's own
	// window the match begins at.
	LO int32
}

// TagsFor derives a match position's BAM tags.
func TagsFor(p seqtree.SeekPosition, labelOffset int) Tags {
	refIdx := p.ReferenceIdx
	if p.OnAlt {
		refIdx = p.BranchIdx
	}
	rd := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(rd, uint64(refIdx))
	return Tags{
		AD: packDescriptor(p),
		RD: rd[:n],
		LO: int32(labelOffset),
	}
}

func packDescriptor(p seqtree.SeekPosition) []byte {
	if !p.OnAlt {
		return nil
	}
	n := p.Descriptor.Len()
	out := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		if p.Descriptor.Bit(i) == 1 {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}
