package fasta_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/jst/encoding/fasta"
)

const testFastaData = ">seq1\n" + "ACGTA\nCGTAC\nGT\n" + ">seq2 A viral sequence\n" + "ACGT\n" + "ACGT\n"

func TestGet(t *testing.T) {
	tests := []struct {
		seq        string
		start, end uint64
		want       string
		wantErr    bool
	}{
		{"seq1", 1, 2, "C", false},
		{"seq1", 1, 6, "CGTAC", false},
		{"seq1", 0, 12, "ACGTACGTACGT", false},
		{"seq1", 10, 12, "GT", false},
		{"seq2", 0, 8, "ACGTACGT", false},
		{"seq2", 2, 5, "GTA", false},
		{"seq0", 0, 1, "", true},
		{"seq1", 10, 13, "", true},
		{"seq1", 4, 3, "", true},
	}
	f, err := fasta.New(strings.NewReader(testFastaData))
	require.NoError(t, err)
	for _, tt := range tests {
		got, err := f.Get(tt.seq, tt.start, tt.end)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestLength(t *testing.T) {
	tests := []struct {
		seq     string
		want    uint64
		wantErr bool
	}{
		{"seq1", 12, false},
		{"seq2", 8, false},
		{"seq0", 0, true},
	}
	f, err := fasta.New(strings.NewReader(testFastaData))
	require.NoError(t, err)
	for _, tt := range tests {
		got, err := f.Len(tt.seq)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestSeqNames(t *testing.T) {
	f, err := fasta.New(strings.NewReader(testFastaData))
	require.NoError(t, err)
	got := sort.StringSlice(f.SeqNames())
	got.Sort()
	assert.Equal(t, []string{"seq1", "seq2"}, []string(got))
}

func TestOptClean(t *testing.T) {
	f, err := fasta.New(strings.NewReader(">seq1\nacgtX\n"), fasta.OptClean)
	require.NoError(t, err)
	got, err := f.Get("seq1", 0, 5)
	require.NoError(t, err)
	assert.Equal(t, "ACGTN", got)
}
