// Package rcs implements the referentially compressed sequence store: a
// reference sequence plus a sorted, breakend-keyed collection of variants,
// each carrying the coverage of haplotypes that bear it (distilled spec
// §3, §4.3).
package rcs

import (
	"sort"

	"github.com/biogo/store/llrb"
	"github.com/grailbio/jst/coverage"
	"github.com/grailbio/jst/jsterr"
	"github.com/grailbio/jst/rangeindex"
	"github.com/grailbio/jst/variant"
	"github.com/pkg/errors"
)

// CollisionPolicy resolves distilled spec §9's open question about
// overlapping variants recorded at the same position. KeepAll preserves
// the semantics of the production code path the original source left
// active (commented-out resolution code aside) and is the default.
type CollisionPolicy uint8

const (
	// KeepAll stores every record regardless of positional overlap with
	// others. This is the default.
	KeepAll CollisionPolicy = iota
	// PreferShorterEffect rejects an incoming record if an existing
	// record at the same packed breakend key has a smaller or equal
	// absolute EffectiveLengthChange; otherwise the incoming record
	// replaces every existing record at that key.
	PreferShorterEffect
	// PreferFirst rejects any incoming record whose packed breakend key
	// already has a record.
	PreferFirst
)

// record is the llrb.Comparable wrapping one {key, variant, coverage}
// entry. A monotonic sequence number breaks ties between records that
// share a packed breakend key, since distilled spec §3 permits duplicate
// keys (different variants at the same breakend) but biogo/store/llrb's
// Insert replaces on an exactly-equal Compare.
type record struct {
	key variant.Covered
	seq uint64
}

func (r record) Compare(c llrb.Comparable) int {
	o := c.(record)
	if d := int(r.key.Key()) - int(o.key.Key()); d != 0 {
		return d
	}
	if r.seq < o.seq {
		return -1
	}
	if r.seq > o.seq {
		return 1
	}
	return 0
}

// Store holds the reference, the haplotype count H, and the sorted variant
// map. Construct with New, populate with Add; once built it is immutable
// and safe to share read-only across goroutines (distilled spec §5).
type Store struct {
	source  []byte
	h       int
	policy  CollisionPolicy
	tree    llrb.Tree
	nextSeq uint64
	ordered []record // cache invalidated by Add; rebuilt by Variants/serialize
	orderOK bool
}

// Opt configures New.
type Opt func(*Store)

// WithCollisionPolicy sets the store's CollisionPolicy. Default KeepAll.
func WithCollisionPolicy(p CollisionPolicy) Opt {
	return func(s *Store) { s.policy = p }
}

// New returns an empty Store over source with h haplotypes.
func New(source []byte, h int, opts ...Opt) *Store {
	s := &Store{source: source, h: h}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Source returns the reference sequence R.
func (s *Store) Source() []byte { return s.source }

// Size returns H, the haplotype count.
func (s *Store) Size() int { return s.h }

// Add inserts variant v with coverage cov into the map. Returns
// ErrOutOfDomain if v's breakpoint exceeds len(Source()) or cov's domain
// isn't H. Construction errors are fatal: the store is left unmodified on
// error.
func (s *Store) Add(v variant.Variant, cov coverage.Coverage) error {
	if int(v.HighBreakend().Position) > len(s.source) {
		return errors.Wrapf(jsterr.ErrOutOfDomain, "variant breakpoint %d exceeds reference length %d",
			v.HighBreakend().Position, len(s.source))
	}
	if cov.Domain() != s.h {
		return errors.Wrapf(jsterr.ErrOutOfDomain, "coverage domain %d != store size %d", cov.Domain(), s.h)
	}
	covered := variant.NewCovered(v, cov)
	switch s.policy {
	case PreferFirst:
		if len(s.recordsAtKey(covered.Key())) > 0 {
			return nil
		}
	case PreferShorterEffect:
		existing := s.recordsAtKey(covered.Key())
		incoming := abs(covered.EffectiveLengthChange())
		for _, e := range existing {
			if abs(e.key.EffectiveLengthChange()) <= incoming {
				return nil
			}
		}
		for _, e := range existing {
			s.tree.Delete(e)
		}
	}
	s.tree.Insert(record{key: covered, seq: s.nextSeq})
	s.nextSeq++
	s.orderOK = false
	return nil
}

func (s *Store) recordsAtKey(key variant.PackedBreakendKey) []record {
	var out []record
	s.tree.Do(func(c llrb.Comparable) bool {
		r := c.(record)
		if r.key.Key() == key {
			out = append(out, r)
		}
		return false
	})
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Variants returns every record in ascending packed-breakend-key order
// (ties broken by insertion order), the order distilled spec §3 requires
// the map to always maintain.
func (s *Store) Variants() []variant.Covered {
	s.refreshOrdered()
	out := make([]variant.Covered, len(s.ordered))
	for i, r := range s.ordered {
		out[i] = r.key
	}
	return out
}

func (s *Store) refreshOrdered() {
	if s.orderOK {
		return
	}
	s.ordered = s.ordered[:0]
	s.tree.Do(func(c llrb.Comparable) bool {
		s.ordered = append(s.ordered, c.(record))
		return false
	})
	sort.SliceStable(s.ordered, func(i, j int) bool {
		return s.ordered[i].Compare(s.ordered[j]) < 0
	})
	s.orderOK = true
}

// LowerBound returns the index into Variants() of the first record whose
// key is >= key, or len(Variants()) if none.
func (s *Store) LowerBound(key variant.PackedBreakendKey) int {
	s.refreshOrdered()
	keys := s.orderedKeys()
	return rangeindex.SearchPosTypes(keys, rangeindex.PosType(key))
}

// UpperBound returns the index into Variants() of the first record whose
// key is > key, or len(Variants()) if none.
func (s *Store) UpperBound(key variant.PackedBreakendKey) int {
	s.refreshOrdered()
	keys := s.orderedKeys()
	return rangeindex.SearchPosTypes(keys, rangeindex.PosType(key)+1)
}

func (s *Store) orderedKeys() []rangeindex.PosType {
	out := make([]rangeindex.PosType, len(s.ordered))
	for i, r := range s.ordered {
		out[i] = rangeindex.PosType(r.key.Key())
	}
	return out
}
