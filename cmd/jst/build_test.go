package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/testutil"
)

const testFasta = ">chr1\nACGTACGTACGTACGTACGT\n"
const testVCF = "##fileformat=VCFv4.2\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tsample1\n" +
	"chr1\t5\trs1\tA\tG\t.\tPASS\t.\tGT\t0/1\n"

func TestRunBuildWritesReadableStore(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	refPath := filepath.Join(tempDir, "ref.fa")
	vcfPath := filepath.Join(tempDir, "in.vcf")
	outPath := filepath.Join(tempDir, "out.jst")
	require.NoError(t, os.WriteFile(refPath, []byte(testFasta), 0644))
	require.NoError(t, os.WriteFile(vcfPath, []byte(testVCF), 0644))

	flags := buildFlags{
		ref:   &refPath,
		vcf:   &vcfPath,
		h:     intPtr(2),
		out:   &outPath,
		gzOut: boolPtr(true),
	}
	require.NoError(t, runBuild(flags))

	store, err := loadStore(outPath, true)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Size())
	assert.Len(t, store.Variants(), 1)
	assert.Equal(t, []byte("ACGTACGTACGTACGTACGT"), store.Source())
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
