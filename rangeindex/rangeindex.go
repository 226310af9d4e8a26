// Package rangeindex provides the position-search primitives used to
// locate breakends in a sorted position array: a binary search
// (SearchPosTypes) for random lookups, and an exponential search
// (ExpsearchPosType) for the common case where positions are queried in
// increasing order, such as a traversal walking forward through the
// variant map or a chunk transformer laying out partial-tree boundaries.
//
// Adapted from the teacher's github.com/grailbio/bio/interval package
// (endpoint_index.go), which implements the same two searches over BED
// interval endpoints; here they're generalized to any sorted PosType slice
// rather than an interval-union's endpoint list.
package rangeindex

import "math"

// PosType is the coordinate type used throughout jst: reference offsets,
// breakend positions, journal positions. int32 comfortably covers any
// single chromosome.
type PosType int32

// PosTypeMax is the largest representable PosType, used as a sentinel for
// "past the end".
const PosTypeMax = math.MaxInt32

// SearchPosTypes returns the index of the first element of a that is >= x,
// or len(a) if there is none. It's the PosType specialization of
// sort.Search over a monotonic predicate.
func SearchPosTypes(a []PosType, x PosType) int {
	lo, hi := 0, len(a)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if a[mid] >= x {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// ExpsearchPosType performs exponential search starting from idx: it checks
// a[idx], then a[idx+1], then a[idx+3], a[idx+7], ..., doubling the stride
// until it either passes the target or the end of the slice, then finishes
// with a binary search over the bracketed range. It's the right choice when
// walking forward with a position that increases slowly relative to the
// slice, such as a traversal re-resolving its place in the variant map
// after each step, instead of restarting a full binary search from scratch.
func ExpsearchPosType(a []PosType, x PosType, idx int) int {
	nextIncr := 1
	startIdx := idx
	endIdx := len(a)
	for idx < endIdx {
		if a[idx] >= x {
			endIdx = idx
			break
		}
		startIdx = idx + 1
		idx += nextIncr
		nextIncr *= 2
	}
	for startIdx < endIdx {
		mid := int(uint(startIdx+endIdx) >> 1)
		if a[mid] >= x {
			endIdx = mid
		} else {
			startIdx = mid + 1
		}
	}
	return startIdx
}
