package variant

import "github.com/grailbio/jst/coverage"

// Covered pairs a Variant with the coverage of haplotypes that carry it —
// the "coverage-carrying proxy" of distilled spec §4.2. It forwards every
// Variant accessor and adds Coverage().
type Covered struct {
	Variant
	coverage coverage.Coverage
}

// NewCovered builds a Covered proxy over v and cov.
func NewCovered(v Variant, cov coverage.Coverage) Covered {
	return Covered{Variant: v, coverage: cov}
}

// Coverage returns the set of haplotypes carrying this variant.
func (c Covered) Coverage() coverage.Coverage { return c.coverage }

// Key returns the packed breakend key this record is stored/ordered under.
func (c Covered) Key() PackedBreakendKey { return KeyFor(c.Variant) }
