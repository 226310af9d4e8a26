package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBit(h int, members ...int) *Bit {
	c := NewBit(h)
	for _, m := range members {
		c.Insert(m)
	}
	return c
}

func buildSorted(h int, members ...int) *Sorted {
	c := NewSorted(h)
	for _, m := range members {
		c.Insert(m)
	}
	return c
}

func TestBitBasic(t *testing.T) {
	c := buildBit(8, 1, 3, 5)
	assert.True(t, c.Contains(1))
	assert.False(t, c.Contains(2))
	assert.Equal(t, []int{1, 3, 5}, c.Elements())
	assert.True(t, c.Any())
	assert.Equal(t, 3, c.Len())
}

func TestSortedBasic(t *testing.T) {
	c := buildSorted(8, 5, 1, 3, 1)
	assert.Equal(t, []int{1, 3, 5}, c.Elements())
	assert.Equal(t, 3, c.Len())
}

func TestIntersectDifference(t *testing.T) {
	for _, ctor := range []func(int, ...int) Coverage{
		func(h int, m ...int) Coverage { return buildBit(h, m...) },
		func(h int, m ...int) Coverage { return buildSorted(h, m...) },
	} {
		a := ctor(10, 1, 2, 3, 4)
		b := ctor(10, 3, 4, 5, 6)

		inter, err := a.Intersect(b)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 4}, inter.Elements())

		diff, err := a.Difference(b)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, diff.Elements())
	}
}

func TestDomainMismatch(t *testing.T) {
	a := buildBit(10, 1, 2)
	b := buildBit(12, 1, 2)
	_, err := a.Intersect(b)
	assert.Error(t, err)
}

func TestEqualAcrossRepresentations(t *testing.T) {
	bit := buildBit(16, 1, 2, 8)
	sorted := buildSorted(16, 8, 2, 1)
	assert.True(t, bit.Equal(sorted))
	assert.True(t, sorted.Equal(bit))
}

func TestFullEmpty(t *testing.T) {
	full := Full(4)
	assert.Equal(t, []int{0, 1, 2, 3}, full.Elements())
	empty := Empty(4)
	assert.False(t, empty.Any())
}

func TestClone(t *testing.T) {
	a := buildBit(8, 1, 2)
	b := a.Clone()
	b.Insert(5)
	assert.False(t, a.Contains(5))
	assert.True(t, b.Contains(5))
}
