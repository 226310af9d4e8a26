// Package variant implements the breakend/breakpoint/variant data model of
// distilled spec §3: SNV and indel variants anchored to breakends on the
// reference, plus the coverage-carrying proxy and packed breakend key used
// to order the RCS store's variant map.
package variant

import "github.com/grailbio/jst/rangeindex"

// EndKind distinguishes the two sides of a breakpoint.
type EndKind uint8

const (
	// Low is the opening side of a breakpoint.
	Low EndKind = iota
	// High is the closing side of a breakpoint.
	High
)

// Breakend is a single addressable point on the reference: a position plus
// a side. Breakends order by position ascending, then High before Low at
// the same position, so a variant opening at p is considered to start only
// after anything closing at p has closed (distilled spec §3).
type Breakend struct {
	Position rangeindex.PosType
	Kind     EndKind
}

// Less implements the distilled spec §3 breakend order.
func (b Breakend) Less(o Breakend) bool {
	if b.Position != o.Position {
		return b.Position < o.Position
	}
	// High < Low at equal position.
	return b.Kind == High && o.Kind == Low
}

// Breakpoint is a pair of breakends bounding a variant's region on the
// reference: Low <= High, Span = High - Low >= 0.
type Breakpoint struct {
	Low, High Breakend
}

// Span returns High.Position - Low.Position.
func (bp Breakpoint) Span() rangeindex.PosType {
	return bp.High.Position - bp.Low.Position
}

// NewBreakpoint builds a Breakpoint from a start position and a span
// (>= 0), the usual construction for both SNVs (span 1) and indels (span =
// deletion length, possibly 0).
func NewBreakpoint(pos rangeindex.PosType, span rangeindex.PosType) Breakpoint {
	return Breakpoint{
		Low:  Breakend{Position: pos, Kind: Low},
		High: Breakend{Position: pos + span, Kind: High},
	}
}
