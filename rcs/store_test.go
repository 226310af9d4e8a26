package rcs

import (
	"bytes"
	"testing"

	"github.com/grailbio/jst/coverage"
	"github.com/grailbio/jst/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cov(h int, ids ...int) coverage.Coverage {
	c := coverage.NewBit(h)
	for _, id := range ids {
		c.Insert(id)
	}
	return c
}

func TestAddAndOrdering(t *testing.T) {
	s := New([]byte("ACGTACGT"), 4)
	require.NoError(t, s.Add(variant.NewSNV(5, 'C'), cov(4, 0)))
	require.NoError(t, s.Add(variant.NewIndel(5, 3, nil), cov(4, 1)))
	require.NoError(t, s.Add(variant.NewIndel(5, 0, []byte("A")), cov(4, 2)))

	vs := s.Variants()
	require.Len(t, vs, 3)
	assert.Equal(t, variant.SNV, vs[0].Kind())
	assert.Equal(t, variant.Indel, vs[1].Kind())
	assert.Equal(t, []byte("A"), vs[1].Insertion())
	assert.Equal(t, variant.Indel, vs[2].Kind())
	assert.Equal(t, 3, int(vs[2].DeletionLength()))
}

func TestOutOfDomainRejected(t *testing.T) {
	s := New([]byte("ACGT"), 2)
	err := s.Add(variant.NewSNV(10, 'A'), cov(2, 0))
	assert.Error(t, err)
	err = s.Add(variant.NewSNV(1, 'A'), cov(4, 0))
	assert.Error(t, err)
}

func TestLowerUpperBound(t *testing.T) {
	s := New([]byte("AAAAAAAAAA"), 2)
	require.NoError(t, s.Add(variant.NewSNV(2, 'C'), cov(2, 0)))
	require.NoError(t, s.Add(variant.NewSNV(6, 'G'), cov(2, 1)))

	key := variant.SearchKeyAfterDeletion(4)
	lb := s.LowerBound(key)
	require.Equal(t, 1, lb)
	assert.Equal(t, 6, int(s.Variants()[lb].Position()))
}

func TestCollisionPolicyPreferShorterEffect(t *testing.T) {
	s := New([]byte("AAAAAAAAAA"), 2, WithCollisionPolicy(PreferShorterEffect))
	require.NoError(t, s.Add(variant.NewIndel(3, 5, nil), cov(2, 0))) // effect -5
	require.NoError(t, s.Add(variant.NewIndel(3, 1, nil), cov(2, 1))) // effect -1, shorter wins
	vs := s.Variants()
	require.Len(t, vs, 1)
	assert.Equal(t, -1, vs[0].EffectiveLengthChange())
}

func TestCollisionPolicyPreferFirst(t *testing.T) {
	s := New([]byte("AAAAAAAAAA"), 2, WithCollisionPolicy(PreferFirst))
	require.NoError(t, s.Add(variant.NewIndel(3, 5, nil), cov(2, 0)))
	require.NoError(t, s.Add(variant.NewIndel(3, 1, nil), cov(2, 1)))
	vs := s.Variants()
	require.Len(t, vs, 1)
	assert.Equal(t, -5, vs[0].EffectiveLengthChange())
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := New([]byte("ACGTACGTAC"), 3)
	require.NoError(t, s.Add(variant.NewSNV(1, 'G'), cov(3, 0, 2)))
	require.NoError(t, s.Add(variant.NewIndel(4, 2, []byte("TTT")), cov(3, 1)))

	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))

	back, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, s.Source(), back.Source())
	assert.Equal(t, s.Size(), back.Size())

	orig := s.Variants()
	got := back.Variants()
	require.Len(t, got, len(orig))
	for i := range orig {
		assert.Equal(t, orig[i].Kind(), got[i].Kind())
		assert.Equal(t, orig[i].Position(), got[i].Position())
		assert.Equal(t, orig[i].Coverage().Elements(), got[i].Coverage().Elements())
	}
}

func TestReadRejectsCorruptChecksum(t *testing.T) {
	s := New([]byte("ACGT"), 1)
	require.NoError(t, s.Add(variant.NewSNV(0, 'T'), cov(1, 0)))
	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))
	data := buf.Bytes()
	data[len(data)-1] ^= 0xFF
	_, err := Read(bytes.NewReader(data))
	assert.Error(t, err)
}
