package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/jst/variant"
)

func TestParseLineExtractsFieldsAndGenotypes(t *testing.T) {
	line := "chr1\t100\trs1\tA\tG,T\t.\tPASS\t.\tGT\t0/1\t1|2"
	rec, err := ParseLine(line)
	require.NoError(t, err)
	assert.Equal(t, "chr1", rec.Chrom)
	assert.EqualValues(t, 99, rec.Pos0)
	assert.Equal(t, "A", rec.Ref)
	assert.Equal(t, []string{"G", "T"}, rec.Alts)
	require.Len(t, rec.Genotypes, 2)
	assert.Equal(t, [2]int{0, 1}, rec.Genotypes[0])
	assert.Equal(t, [2]int{1, 2}, rec.Genotypes[1])
}

func TestToVariantsBuildsSNVWithCoverage(t *testing.T) {
	rec := Record{
		Chrom:     "chr1",
		Pos0:      99,
		Ref:       "A",
		Alts:      []string{"G"},
		Genotypes: [][2]int{{0, 1}, {1, 1}},
	}
	vs, covs, err := ToVariants(rec)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, variant.SNV, vs[0].Kind())
	assert.EqualValues(t, 99, vs[0].Position())
	assert.Equal(t, byte('G'), vs[0].SNVSymbol())

	cov := covs[0]
	assert.False(t, cov.Contains(0)) // sample 0 allele 0: call 0, not alt 1
	assert.True(t, cov.Contains(1))  // sample 0 allele 1: call 1 == alt index+1
	assert.True(t, cov.Contains(2))  // sample 1 allele 0: call 1
	assert.True(t, cov.Contains(3))  // sample 1 allele 1: call 1
}

func TestToVariantsTrimsCommonPrefixForIndel(t *testing.T) {
	rec := Record{
		Chrom:     "chr1",
		Pos0:      10,
		Ref:       "ATG",
		Alts:      []string{"AG"},
		Genotypes: [][2]int{{1, 1}},
	}
	vs, _, err := ToVariants(rec)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, variant.Indel, vs[0].Kind())
	// common prefix "A" and suffix "G" trimmed: deletes "T" at pos 11,
	// inserts nothing.
	assert.EqualValues(t, 11, vs[0].Position())
	assert.EqualValues(t, 1, vs[0].DeletionLength())
	assert.Empty(t, vs[0].Insertion())
}

func TestToVariantsSkipsSymbolicAlt(t *testing.T) {
	rec := Record{
		Chrom:     "chr1",
		Pos0:      10,
		Ref:       "A",
		Alts:      []string{"<DEL>"},
		Genotypes: [][2]int{{1, 1}},
	}
	vs, covs, err := ToVariants(rec)
	require.NoError(t, err)
	assert.Empty(t, vs)
	assert.Empty(t, covs)
}
