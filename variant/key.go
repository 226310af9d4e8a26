package variant

import "github.com/grailbio/jst/rangeindex"

// Code is the 3-bit kind-rank portion of a PackedBreakendKey, fixed by
// distilled spec §3: closing events before opening events at a position,
// SNVs in between.
type Code uint8

const (
	// CodeDeletionHigh never appears in a stored record: it's the
	// kind used to build a synthetic search key for
	// rcs.Store.LowerBound when resuming traversal past a deletion's
	// high breakend (see DESIGN.md's note on this open question).
	CodeDeletionHigh Code = 0
	// CodeSNVA..CodeSNVT rank the four possible SNV replacement
	// symbols, filling ranks 1..4.
	CodeSNVA Code = 1
	CodeSNVC Code = 2
	CodeSNVG Code = 3
	CodeSNVT Code = 4
	// CodeInsertionLow is a pure-insertion variant's stored rank.
	CodeInsertionLow Code = 5
	// CodeDeletionLow is a deletion/substitution variant's stored
	// rank, keyed at its low (opening) breakend.
	CodeDeletionLow Code = 6
)

var snvCodeBySymbol = map[byte]Code{
	'A': CodeSNVA,
	'C': CodeSNVC,
	'G': CodeSNVG,
	'T': CodeSNVT,
}

// codeFor returns the stored Code for v: the SNV-base rank for an SNV, or
// InsertionLow/DeletionLow depending on whether the indel has a non-zero
// deletion span.
func codeFor(v Variant) Code {
	switch v.Kind() {
	case SNV:
		if c, ok := snvCodeBySymbol[v.SNVSymbol()]; ok {
			return c
		}
		return CodeSNVT // N or any non-ACGT symbol collapses to the last SNV rank.
	default:
		if v.DeletionLength() == 0 {
			return CodeInsertionLow
		}
		return CodeDeletionLow
	}
}

// PackedBreakendKey packs (position, code) into one 32-bit word such that
// natural integer ordering reproduces the distilled spec §3 order: position
// ascending, then code ascending (closing < SNV < insertion < deletion, all
// at equal position). The low 3 bits hold the code, the remaining 29 bits
// hold the position, so a genome up to 2^29-1 (~536 Mbp) is addressable —
// ample for a single contig.
type PackedBreakendKey uint32

// NewPackedBreakendKey packs a position and code.
func NewPackedBreakendKey(position rangeindex.PosType, code Code) PackedBreakendKey {
	return PackedBreakendKey(uint32(position)<<3 | uint32(code&0x7))
}

// KeyFor returns the stored packed breakend key for variant v, as used to
// order the RCS store's variant map.
func KeyFor(v Variant) PackedBreakendKey {
	return NewPackedBreakendKey(v.Position(), codeFor(v))
}

// SearchKeyAfterDeletion returns the synthetic key used to look up the
// first stored record at or after a deletion's high breakend (endPos). Its
// CodeDeletionHigh rank sorts before any stored record's rank at the same
// position, so LowerBound with this key never skips a record that opens
// exactly where the deletion closes (distilled spec §4.5's "jumps forward
// to the lower-bound successor whose position >= deletion end").
func SearchKeyAfterDeletion(endPos rangeindex.PosType) PackedBreakendKey {
	return NewPackedBreakendKey(endPos, CodeDeletionHigh)
}

// Position unpacks the position field.
func (k PackedBreakendKey) Position() rangeindex.PosType { return rangeindex.PosType(uint32(k) >> 3) }

// Code unpacks the code field.
func (k PackedBreakendKey) Code() Code { return Code(uint32(k) & 0x7) }
