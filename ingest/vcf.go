// Package ingest implements the VCF/FASTA consumer boundary of distilled
// spec §6: converting parsed VCF records into the store's variant model,
// and resolving a VCF chrom value against a FASTA's contig names to
// locate the reference sequence a chromosome's variants apply to.
package ingest

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/grailbio/jst/coverage"
	"github.com/grailbio/jst/rangeindex"
	"github.com/grailbio/jst/variant"
)

// Record is one parsed VCF data line (distilled spec §6): a chromosome,
// a 0-based reference position, the reference allele, the list of
// alternate alleles, and each sample's two allele calls (0 = reference,
// a+1 = Alts[a], -1 = missing/unparseable).
type Record struct {
	Chrom     string
	Pos0      rangeindex.PosType
	Ref       string
	Alts      []string
	Genotypes [][2]int
}

// ParseLine parses one tab-separated VCF data line into a Record. It
// reads only the columns distilled spec §6 names (CHROM, POS, REF, ALT,
// and the sample genotype columns starting after FORMAT); it does not
// validate or retain QUAL, FILTER, or INFO.
func ParseLine(line string) (Record, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < 10 {
		return Record{}, errors.Errorf("ingest: VCF line has %d columns, want at least 10", len(cols))
	}
	pos1, err := strconv.Atoi(cols[1])
	if err != nil {
		return Record{}, errors.Wrap(err, "ingest: parsing POS")
	}
	rec := Record{
		Chrom: cols[0],
		Pos0:  rangeindex.PosType(pos1 - 1),
		Ref:   cols[3],
		Alts:  strings.Split(cols[4], ","),
	}
	format := strings.Split(cols[8], ":")
	gtIdx := 0
	for i, f := range format {
		if f == "GT" {
			gtIdx = i
			break
		}
	}
	rec.Genotypes = make([][2]int, 0, len(cols)-9)
	for _, sampleCol := range cols[9:] {
		fields := strings.Split(sampleCol, ":")
		gt := [2]int{-1, -1}
		if gtIdx < len(fields) {
			gt = parseGenotype(fields[gtIdx])
		}
		rec.Genotypes = append(rec.Genotypes, gt)
	}
	return rec, nil
}

func parseGenotype(s string) [2]int {
	sep := strings.IndexAny(s, "/|")
	if sep < 0 {
		return [2]int{-1, -1}
	}
	a, errA := strconv.Atoi(s[:sep])
	b, errB := strconv.Atoi(s[sep+1:])
	if errA != nil {
		a = -1
	}
	if errB != nil {
		b = -1
	}
	return [2]int{a, b}
}

// ToVariants converts rec into the store's variant model (distilled spec
// §6): a symmetric-length single-base alt becomes an SNV; anything else
// becomes a generic indel with common prefix/suffix trimmed off; a
// symbolic alt (one starting with '<') is skipped entirely. Coverage bit
// h = 2*sample+allele is set for alt index a iff genotypes[sample][allele]
// == a+1. h spans the full haplotype domain 2*len(rec.Genotypes), even
// for alts this record ends up skipping, so every variant.Covered built
// from the same VCF shares one coverage domain.
func ToVariants(rec Record) ([]variant.Variant, []coverage.Coverage, error) {
	h := 2 * len(rec.Genotypes)
	var variants []variant.Variant
	var covs []coverage.Coverage
	for a, alt := range rec.Alts {
		if strings.HasPrefix(alt, "<") {
			continue
		}
		v, err := variantFor(rec.Pos0, rec.Ref, alt)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "ingest: chrom %s pos %d alt %q", rec.Chrom, rec.Pos0, alt)
		}
		cov := coverage.NewBit(h)
		for sample, gt := range rec.Genotypes {
			for allele, call := range gt {
				if call == a+1 {
					cov.Insert(2*sample + allele)
				}
			}
		}
		variants = append(variants, v)
		covs = append(covs, cov)
	}
	return variants, covs, nil
}

// variantFor builds the single variant.Variant that ref->alt represents,
// anchored at pos0.
func variantFor(pos0 rangeindex.PosType, ref, alt string) (variant.Variant, error) {
	if len(ref) == 0 || len(alt) == 0 {
		return variant.Variant{}, errors.New("ref and alt must be non-empty")
	}
	if len(ref) == 1 && len(alt) == 1 {
		return variant.NewSNV(pos0, alt[0]), nil
	}
	prefix, delLen, ins := trimCommon(ref, alt)
	return variant.NewIndel(pos0+rangeindex.PosType(prefix), rangeindex.PosType(delLen), ins), nil
}

// trimCommon strips the longest common prefix and (non-overlapping)
// common suffix shared by ref and alt, returning the prefix length
// consumed, the length of reference left to delete, and the bytes left
// to insert. This is the "generic variant... derived by trimming common
// prefixes/suffixes" rule of distilled spec §6.
func trimCommon(ref, alt string) (prefix, delLen int, ins []byte) {
	i := 0
	for i < len(ref) && i < len(alt) && ref[i] == alt[i] {
		i++
	}
	j := 0
	for j < len(ref)-i && j < len(alt)-i && ref[len(ref)-1-j] == alt[len(alt)-1-j] {
		j++
	}
	trimmedRef := ref[i : len(ref)-j]
	trimmedAlt := alt[i : len(alt)-j]
	return i, len(trimmedRef), []byte(trimmedAlt)
}
