package variant

import (
	"github.com/grailbio/jst/alphabet"
	"github.com/grailbio/jst/rangeindex"
)

// Kind tags the two variant shapes the store supports. An indel with
// d == 0 is insertion-only, one with len(Insertion) == 0 is deletion-only,
// and one with both is a block substitution (distilled spec §3).
type Kind uint8

const (
	// SNV is a single-symbol substitution, breakpoint span exactly 1.
	SNV Kind = iota
	// Indel is a generic deletion/insertion/substitution of any shape.
	Indel
)

// Variant is one of SNV or Indel, carrying its breakpoint. It's a tagged
// struct rather than an interface: distilled spec §9 replaces the source's
// dynamic dispatch over sequence formats with a closed tagged variant
// dispatched once at the boundary, and the variant model is the same
// closed set.
type Variant struct {
	kind       Kind
	breakpoint Breakpoint
	snvSymbol  alphabet.Symbol // valid iff kind == SNV
	insertion  []byte          // valid iff kind == Indel
}

// NewSNV constructs a substitution variant of span 1 replacing the
// reference symbol at pos with sym.
func NewSNV(pos rangeindex.PosType, sym alphabet.Symbol) Variant {
	return Variant{kind: SNV, breakpoint: NewBreakpoint(pos, 1), snvSymbol: sym}
}

// NewIndel constructs a generic variant: deletes delLen reference symbols
// starting at pos and replaces them with ins (either may be empty/zero,
// but not both, or it isn't a variant).
func NewIndel(pos, delLen rangeindex.PosType, ins []byte) Variant {
	return Variant{kind: Indel, breakpoint: NewBreakpoint(pos, delLen), insertion: ins}
}

// Kind returns the variant's tag.
func (v Variant) Kind() Kind { return v.kind }

// Breakpoint returns the variant's (low, high) breakend pair.
func (v Variant) Breakpoint() Breakpoint { return v.breakpoint }

// Position returns the variant's anchor position (its low breakend).
func (v Variant) Position() rangeindex.PosType { return v.breakpoint.Low.Position }

// LowBreakend returns the variant's low (opening) breakend.
func (v Variant) LowBreakend() Breakend { return v.breakpoint.Low }

// HighBreakend returns the variant's high (closing) breakend.
func (v Variant) HighBreakend() Breakend { return v.breakpoint.High }

// DeletionLength returns the number of reference symbols the variant
// removes (the breakpoint span).
func (v Variant) DeletionLength() rangeindex.PosType { return v.breakpoint.Span() }

// Insertion returns the symbols the variant inserts in place of the
// deleted span. For an SNV this is the single replacement symbol.
func (v Variant) Insertion() []byte {
	if v.kind == SNV {
		return []byte{v.snvSymbol}
	}
	return v.insertion
}

// SNVSymbol returns the replacement symbol of an SNV variant. Only valid
// when Kind() == SNV.
func (v Variant) SNVSymbol() alphabet.Symbol { return v.snvSymbol }

// EffectiveLengthChange returns len(Insertion()) - DeletionLength(), the
// net change in sequence length the variant contributes.
func (v Variant) EffectiveLengthChange() int {
	return len(v.Insertion()) - int(v.DeletionLength())
}
