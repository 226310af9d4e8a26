package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPigeonholeFindsQGramHit(t *testing.T) {
	needles := [][]byte{[]byte("ACGTACGTACGT")}
	p, err := NewPigeonhole(needles, 0.1)
	require.NoError(t, err)

	var hits []Hit
	p.Match([]byte("TTTACGTACGTACGTTTT"), func(h Hit) { hits = append(hits, h) })

	require.NotEmpty(t, hits)
	for _, h := range hits {
		assert.Equal(t, 0, h.NeedleIndex)
		assert.Equal(t, p.q, h.Count)
	}
}

func TestPigeonholeNoHitOnUnrelatedHaystack(t *testing.T) {
	needles := [][]byte{[]byte("ACGTACGTACGT")}
	p, err := NewPigeonhole(needles, 0.1)
	require.NoError(t, err)

	var hits []Hit
	p.Match([]byte("TTTTTTTTTTTTTTTTTTTT"), func(h Hit) { hits = append(hits, h) })

	assert.Empty(t, hits)
}

func TestPigeonholeCaptureRestoreSpansCallBoundary(t *testing.T) {
	needle := []byte("ACGTACGTACGT")
	p, err := NewPigeonhole([][]byte{needle}, 0.1)
	require.NoError(t, err)

	haystack := append([]byte("TTT"), needle...)
	haystack = append(haystack, []byte("TTT")...)

	whole, err := NewPigeonhole([][]byte{needle}, 0.1)
	require.NoError(t, err)
	var wholeHits []Hit
	whole.Match(haystack, func(h Hit) { wholeHits = append(wholeHits, h) })

	mid := len(haystack) / 2
	var splitHits []Hit
	p.Match(haystack[:mid], func(h Hit) { splitHits = append(splitHits, h) })
	snap := p.Capture()
	p.Restore(snap)
	p.Match(haystack[mid:], func(h Hit) {
		splitHits = append(splitHits, Hit{NeedleIndex: h.NeedleIndex, Offset: h.Offset + mid, NeedleOffset: h.NeedleOffset, Count: h.Count})
	})

	assert.Equal(t, wholeHits, splitHits)
}

func TestNewPigeonholeRejectsEmptyNeedleList(t *testing.T) {
	_, err := NewPigeonhole(nil, 0.1)
	assert.Error(t, err)
}
