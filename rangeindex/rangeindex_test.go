package rangeindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchPosTypes(t *testing.T) {
	a := []PosType{2, 4, 4, 9, 20}
	assert.Equal(t, 0, SearchPosTypes(a, 0))
	assert.Equal(t, 0, SearchPosTypes(a, 2))
	assert.Equal(t, 1, SearchPosTypes(a, 3))
	assert.Equal(t, 3, SearchPosTypes(a, 5))
	assert.Equal(t, 4, SearchPosTypes(a, 10))
	assert.Equal(t, 5, SearchPosTypes(a, 21))
}

func TestExpsearchMatchesBinary(t *testing.T) {
	a := []PosType{1, 3, 5, 7, 9, 11, 13, 15, 17, 19, 21, 23}
	idx := 0
	for _, x := range []PosType{0, 2, 5, 6, 23, 24} {
		want := SearchPosTypes(a, x)
		got := ExpsearchPosType(a, x, idx)
		assert.Equal(t, want, got)
		if got < len(a) {
			idx = got
		}
	}
}
