package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMyersPrefixExactMatchHasZeroErrors(t *testing.T) {
	m, err := NewMyersPrefix([]byte("ACGT"), 1)
	require.NoError(t, err)

	// MyersPrefix aligns the needle from the start of the haystack, so the
	// exact occurrence sits at the haystack's start.
	var hits []Hit
	m.Match([]byte("ACGTTT"), func(h Hit) { hits = append(hits, h) })

	found := false
	for _, h := range hits {
		if h.Errors == 0 {
			found = true
		}
	}
	assert.True(t, found, "expected at least one zero-error hit for an exact occurrence, got %+v", hits)
}

func TestMyersPrefixCaptureRestoreMatchesContinuousRun(t *testing.T) {
	needle := []byte("ACGT")
	haystack := []byte("TTACGTTTACGTAA")

	whole, err := NewMyersPrefix(needle, 1)
	require.NoError(t, err)
	var wholeHits []Hit
	whole.Match(haystack, func(h Hit) { wholeHits = append(wholeHits, h) })

	split, err := NewMyersPrefix(needle, 1)
	require.NoError(t, err)
	var splitHits []Hit
	mid := len(haystack) / 2
	split.Match(haystack[:mid], func(h Hit) { splitHits = append(splitHits, h) })
	snap := split.Capture()
	split.Restore(snap)
	split.Match(haystack[mid:], func(h Hit) {
		splitHits = append(splitHits, Hit{Errors: h.Errors, Offset: h.Offset + mid})
	})

	assert.Equal(t, wholeHits, splitHits)
}

func TestMyersPrefixRejectsOversizedNeedle(t *testing.T) {
	_, err := NewMyersPrefix(make([]byte, 65), 2)
	assert.Error(t, err)
}
