package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaterializesSource(t *testing.T) {
	j := New([]byte("ACGTACGT"))
	assert.Equal(t, []byte("ACGTACGT"), j.Sequence().Materialize())
}

func TestRecordInsertion(t *testing.T) {
	j := New([]byte("ACGT"))
	require.NoError(t, j.RecordInsertion(2, []byte("TT")))
	assert.Equal(t, []byte("ACTTGT"), j.Sequence().Materialize())
}

func TestRecordDeletion(t *testing.T) {
	j := New([]byte("ACGTACGT"))
	require.NoError(t, j.RecordDeletion(2, 5))
	assert.Equal(t, []byte("ACCGT"), j.Sequence().Materialize())
}

func TestRecordSubstitution(t *testing.T) {
	j := New([]byte("ACGTACGT"))
	require.NoError(t, j.RecordSubstitution(2, []byte("NN")))
	assert.Equal(t, []byte("ACNNACGT"), j.Sequence().Materialize())
}

func TestMultipleEditsCompose(t *testing.T) {
	j := New([]byte("AAAAAAAAAA"))
	require.NoError(t, j.RecordInsertion(3, []byte("GG")))
	require.NoError(t, j.RecordDeletion(7, 9))
	require.NoError(t, j.RecordSubstitution(0, []byte("C")))
	assert.Equal(t, []byte("CAAGGAAAAA"), j.Sequence().Materialize())
}

func TestSequenceCursorRandomAccess(t *testing.T) {
	j := New([]byte("ACGTACGT"))
	require.NoError(t, j.RecordInsertion(4, []byte("NNN")))
	seq := j.Sequence()
	want := []byte("ACGTNNNACGT")
	for i, w := range want {
		assert.Equal(t, w, seq.At(i), "position %d", i)
	}
}

func TestRevertableUndoesInOrder(t *testing.T) {
	j := New([]byte("ACGTACGT"))
	r := NewRevertable(j)
	require.NoError(t, r.RecordInsertion(2, []byte("TT")))
	require.NoError(t, r.RecordDeletion(0, 2))
	require.NoError(t, r.RecordSubstitution(0, []byte("NN")))

	assert.True(t, r.Revert())
	assert.True(t, r.Revert())
	assert.True(t, r.Revert())
	assert.False(t, r.Revert())
	assert.Equal(t, []byte("ACGTACGT"), r.Journal().Sequence().Materialize())
}

func TestOutOfDomainRejected(t *testing.T) {
	j := New([]byte("ACGT"))
	assert.Error(t, j.RecordInsertion(-1, []byte("A")))
	assert.Error(t, j.RecordDeletion(3, 10))
}
