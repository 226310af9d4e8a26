package variant

import (
	"sort"
	"testing"

	"github.com/grailbio/jst/coverage"
	"github.com/grailbio/jst/rangeindex"
	"github.com/stretchr/testify/assert"
)

func TestBreakendOrder(t *testing.T) {
	high5 := Breakend{Position: 5, Kind: High}
	low5 := Breakend{Position: 5, Kind: Low}
	assert.True(t, high5.Less(low5))
	assert.False(t, low5.Less(high5))
	assert.True(t, Breakend{Position: 4, Kind: Low}.Less(high5))
}

func TestSNVEffectiveLength(t *testing.T) {
	v := NewSNV(10, 'A')
	assert.Equal(t, rangeindex.PosType(10), v.Position())
	assert.Equal(t, 0, v.EffectiveLengthChange())
	assert.Equal(t, []byte{'A'}, v.Insertion())
}

func TestIndelShapes(t *testing.T) {
	insertionOnly := NewIndel(3, 0, []byte("GG"))
	assert.Equal(t, 2, insertionOnly.EffectiveLengthChange())

	deletionOnly := NewIndel(3, 4, nil)
	assert.Equal(t, -4, deletionOnly.EffectiveLengthChange())

	substitution := NewIndel(3, 2, []byte("AAA"))
	assert.Equal(t, 1, substitution.EffectiveLengthChange())
}

func TestPackedBreakendKeyOrder(t *testing.T) {
	// Distilled spec §3: at an equal position, deletion-closing search
	// probes < SNVs < insertions < deletion-openings.
	del := NewIndel(5, 3, nil)   // deletion_low rank
	ins := NewIndel(5, 0, []byte("A")) // insertion_low rank
	snv := NewSNV(5, 'C')

	keys := []PackedBreakendKey{KeyFor(del), KeyFor(ins), KeyFor(snv)}
	sorted := append([]PackedBreakendKey{}, keys...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	assert.Equal(t, KeyFor(snv), sorted[0])
	assert.Equal(t, KeyFor(ins), sorted[1])
	assert.Equal(t, KeyFor(del), sorted[2])

	probe := SearchKeyAfterDeletion(5)
	assert.Less(t, probe, KeyFor(snv))
}

func TestCoveredProxyForwards(t *testing.T) {
	v := NewSNV(1, 'G')
	cov := coverage.NewBit(4)
	cov.Insert(2)
	c := NewCovered(v, cov)
	assert.Equal(t, v.Position(), c.Position())
	assert.True(t, c.Coverage().Contains(2))
	assert.Equal(t, KeyFor(v), c.Key())
}
