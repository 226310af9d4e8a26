package transform

import (
	"encoding/binary"

	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/jst/coverage"
)

// coverageMemo caches the coloured transformer's intersection and
// difference results, keyed by a fingerprint of the operand coverages
// (distilled spec's coloured transformer recomputes the same
// parent/variant pair whenever a seek replays a branch already visited
// during the seed phase; SPEC_FULL.md's domain stack assigns this
// memoization to farm's non-cryptographic hash, the fastest available
// across the pack for a pure cache key with no adversarial-input
// exposure).
type coverageMemo struct {
	intersect  map[uint64]coverage.Coverage
	difference map[uint64]coverage.Coverage
}

func newCoverageMemo() *coverageMemo {
	return &coverageMemo{
		intersect:  make(map[uint64]coverage.Coverage),
		difference: make(map[uint64]coverage.Coverage),
	}
}

func coverageFingerprint(a, b coverage.Coverage) uint64 {
	buf := make([]byte, 0, 8*(a.Len()+b.Len())+2)
	for _, e := range a.Elements() {
		buf = binary.AppendUvarint(buf, uint64(e))
	}
	buf = append(buf, 0xff)
	for _, e := range b.Elements() {
		buf = binary.AppendUvarint(buf, uint64(e))
	}
	return farm.Hash64(buf)
}

func (m *coverageMemo) intersectOf(a, b coverage.Coverage) (coverage.Coverage, error) {
	key := coverageFingerprint(a, b)
	if v, ok := m.intersect[key]; ok {
		return v, nil
	}
	v, err := a.Intersect(b)
	if err != nil {
		return nil, err
	}
	m.intersect[key] = v
	return v, nil
}

func (m *coverageMemo) differenceOf(a, b coverage.Coverage) (coverage.Coverage, error) {
	key := coverageFingerprint(a, b)
	if v, ok := m.difference[key]; ok {
		return v, nil
	}
	v, err := a.Difference(b)
	if err != nil {
		return nil, err
	}
	m.difference[key] = v
	return v, nil
}
