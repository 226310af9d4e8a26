package ingest

import (
	"bufio"
	"io"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/pkg/errors"

	"github.com/grailbio/jst/encoding/fasta"
	"github.com/grailbio/jst/rcs"
)

// ResolveContig finds the FASTA sequence name a VCF chrom value refers to
// (distilled spec §6: "a single contig keyed by a prefix-match on the VCF
// chrom value"). It first looks for an exact match, then a prefix match
// in either direction (chrom "1" against seq name "chr1", or chrom
// "chr1" against seq name "1"); if neither exists it falls back to the
// seqName with the highest Jaro-Winkler similarity to chrom, catching the
// common naming mismatches (case, "MT" vs "chrM") a strict prefix rule
// misses.
func ResolveContig(f fasta.Fasta, chrom string) (string, error) {
	names := f.SeqNames()
	if len(names) == 0 {
		return "", errors.New("ingest: fasta has no sequences")
	}
	for _, name := range names {
		if name == chrom {
			return name, nil
		}
	}
	for _, name := range names {
		if strings.HasPrefix(name, chrom) || strings.HasPrefix(chrom, name) {
			return name, nil
		}
	}
	best := names[0]
	bestScore := matchr.JaroWinkler(chrom, best, true)
	for _, name := range names[1:] {
		if score := matchr.JaroWinkler(chrom, name, true); score > bestScore {
			best, bestScore = name, score
		}
	}
	return best, nil
}

// BuildStore reads vcfLines (one VCF data line per call to ParseLine),
// resolves each record's chrom against ref via ResolveContig, and
// accumulates every non-symbolic alt into the rcs.Store returned
// (distilled spec §6's ingestion pipeline end to end). BuildStore assumes
// a single-contig store: every record must resolve to the same FASTA
// sequence, matching distilled spec §6's "a single contig" framing — a
// multi-contig VCF is the caller's job to split upstream, one Store per
// contig.
func BuildStore(ref fasta.Fasta, r io.Reader, h int) (*rcs.Store, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 64*1024*1024)
	var contig string
	var store *rcs.Store
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		if store == nil {
			name, err := ResolveContig(ref, rec.Chrom)
			if err != nil {
				return nil, err
			}
			contig = name
			length, err := ref.Len(contig)
			if err != nil {
				return nil, err
			}
			seq, err := ref.Get(contig, 0, length)
			if err != nil {
				return nil, err
			}
			store = rcs.New([]byte(seq), h)
		}
		variants, covs, err := ToVariants(rec)
		if err != nil {
			return nil, err
		}
		for i, v := range variants {
			if err := store.Add(v, covs[i]); err != nil {
				return nil, errors.Wrapf(err, "ingest: adding variant at contig %s pos %d", contig, rec.Pos0)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "ingest: reading VCF")
	}
	if store == nil {
		return nil, errors.New("ingest: VCF had no data lines")
	}
	return store, nil
}
