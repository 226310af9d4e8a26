// Package coverage implements bit-coverage sets over a haplotype domain
// [0, H), in two representations selectable by density: a packed
// bit-vector (Bit) and a sorted integer list (Sorted). Both satisfy
// Coverage.
package coverage

import (
	"github.com/grailbio/jst/jsterr"
	"github.com/pkg/errors"
)

// Coverage is a set of haplotype indices in [0, Domain()). Implementations
// never mutate in place: Intersect and Difference return new values, the
// way nodes in the sequence tree derive a child's coverage from its parent
// without touching the parent.
type Coverage interface {
	// Domain returns H, the haplotype count this coverage is defined over.
	Domain() int

	// Contains reports whether haplotype i is a member.
	Contains(i int) bool

	// Insert adds haplotype i to the set. i must be in [0, Domain()).
	Insert(i int)

	// Any reports whether the set is non-empty.
	Any() bool

	// Len returns the number of members.
	Len() int

	// Elements returns the members in ascending order. The returned slice
	// must not be retained across further mutation of the receiver.
	Elements() []int

	// Intersect returns a new Coverage containing members present in both
	// the receiver and other. Returns ErrDomainMismatch if the domains
	// differ.
	Intersect(other Coverage) (Coverage, error)

	// Difference returns a new Coverage containing members of the
	// receiver absent from other. Returns ErrDomainMismatch if the
	// domains differ.
	Difference(other Coverage) (Coverage, error)

	// Equal reports whether the receiver and other have the same domain
	// and the same members.
	Equal(other Coverage) bool

	// Clone returns an independent copy.
	Clone() Coverage
}

func checkDomain(a, b Coverage) error {
	if a.Domain() != b.Domain() {
		return errors.Wrapf(jsterr.ErrDomainMismatch, "domains %d and %d", a.Domain(), b.Domain())
	}
	return nil
}

// Full returns a dense coverage over [0, h) with every haplotype set, the
// initial coverage of the tree root (distilled spec §8: coverage(root) =
// {0..H}).
func Full(h int) Coverage {
	c := NewBit(h)
	for i := 0; i < h; i++ {
		c.Insert(i)
	}
	return c
}

// Empty returns a dense coverage over [0, h) with no haplotypes set.
func Empty(h int) Coverage {
	return NewBit(h)
}
