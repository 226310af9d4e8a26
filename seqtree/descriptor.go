// Package seqtree implements the base volatile tree (distilled spec §4.5):
// a lazy DAG-to-tree expansion over an RCS store's variant map, with
// next-ref/next-alt state transitions and breakend-site boundaries.
package seqtree

import "fmt"

// maxDescriptorBits bounds how deep an alternate-path branch chain can
// nest before path descriptor bits stop fitting in one machine word. A
// branch chain this deep inside one seek round-trip would already be an
// unreasonable variant density for a single locus.
const maxDescriptorBits = 64

// PathDescriptor is an alternate-path descriptor: a bit-string, packed in
// a machine word, recording the ref(0)/alt(1) choices taken since the
// most recent branching ancestor (distilled spec §3). The zero value is
// the empty descriptor, at the root or anywhere still on the pure
// reference line.
type PathDescriptor struct {
	bits uint64
	len  uint8
}

// Len returns the number of recorded choices.
func (d PathDescriptor) Len() int { return int(d.len) }

// Bit returns the i-th recorded choice (0 = ref, 1 = alt), i in [0, Len()).
func (d PathDescriptor) Bit(i int) int {
	return int((d.bits >> uint(i)) & 1)
}

// Append returns a new descriptor with bit appended as the most recent
// choice. bit must be 0 or 1.
func (d PathDescriptor) Append(bit uint8) PathDescriptor {
	if d.len >= maxDescriptorBits {
		panic(fmt.Sprintf("seqtree: path descriptor exceeds %d bits", maxDescriptorBits))
	}
	return PathDescriptor{bits: d.bits | (uint64(bit&1) << d.len), len: d.len + 1}
}

// Equal reports whether two descriptors record the same choice sequence.
func (d PathDescriptor) Equal(o PathDescriptor) bool {
	return d.len == o.len && d.bits == o.bits
}
