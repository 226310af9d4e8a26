// Package alphabet implements the closed DNA alphabet A = {A,C,G,T,N} that
// every jst sequence is drawn from, and the few table-driven byte-slice
// operations the rest of the tree needs: validating/cleaning raw ASCII
// input, plain reversal (used by seqtree.Reverse to build the reverse tree
// for prefix extension, distilled spec §4.9) and reverse-complementing.
//
// Adapted from the teacher's github.com/grailbio/bio/biosimd package: same
// table-driven-loop technique, trimmed to the generic (non-SIMD) path and
// to only the operations this domain exercises. See DESIGN.md for why the
// amd64 assembly variants and the packed 2-bit/4-bit sequence codecs were
// dropped rather than carried over.
package alphabet

// Symbol is one character of the alphabet, stored as its ASCII byte.
type Symbol = byte

const (
	A Symbol = 'A'
	C Symbol = 'C'
	G Symbol = 'G'
	T Symbol = 'T'
	N Symbol = 'N'
)

var cleanTable = [256]byte{}

func init() {
	for i := range cleanTable {
		cleanTable[i] = N
	}
	cleanTable['A'], cleanTable['a'] = A, A
	cleanTable['C'], cleanTable['c'] = C, C
	cleanTable['G'], cleanTable['g'] = G, G
	cleanTable['T'], cleanTable['t'] = T, T
	cleanTable['N'], cleanTable['n'] = N, N
}

// CleanInplace capitalizes a/c/g/t/n and replaces everything else with 'N',
// the way biosimd.CleanASCIISeqInplace cleans FASTA input before it enters
// the rest of the pipeline.
func CleanInplace(seq []byte) {
	for i, b := range seq {
		seq[i] = cleanTable[b]
	}
}

var isForeignTable = [256]bool{}

func init() {
	for i := range isForeignTable {
		isForeignTable[i] = true
	}
	for _, b := range []byte("ACGTNacgtn") {
		isForeignTable[b] = false
	}
}

// HasForeignSymbol reports whether seq contains a byte outside ACGTN
// (case-insensitive). Ingestion does not call it; VCF alleles are taken
// as given.
func HasForeignSymbol(seq []byte) bool {
	for _, b := range seq {
		if isForeignTable[b] {
			return true
		}
	}
	return false
}

var complementTable = [256]byte{}

func init() {
	for i := range complementTable {
		complementTable[i] = N
	}
	complementTable['A'] = T
	complementTable['T'] = A
	complementTable['C'] = G
	complementTable['G'] = C
	complementTable['N'] = N
}

// ReverseComplementInplace reverse-complements seq, mapping A<->T, C<->G
// and leaving N fixed, the way biosimd.ReverseComp8Inplace does. The
// reverse tree does not use it: seqtree.Reverse reverses without
// complementing (see Reverse).
func ReverseComplementInplace(seq []byte) {
	n := len(seq)
	half := n / 2
	for i, j := 0, n-1; i != half; i, j = i+1, j-1 {
		seq[i], seq[j] = complementTable[seq[j]], complementTable[seq[i]]
	}
	if n&1 == 1 {
		seq[half] = complementTable[seq[half]]
	}
}

// Reverse reverses seq in place without complementing. seqtree.Reverse
// uses it to mirror the reference and each variant's inserted content
// when building the reverse tree for the prefix-extension step of bucket
// search (distilled spec §4.9 step 3).
func Reverse(seq []byte) {
	for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
		seq[i], seq[j] = seq[j], seq[i]
	}
}

// Rank returns the dense rank of a symbol in a fixed encoding (A=0, C=1,
// G=2, T=3, N=4). Unrecognized bytes rank as N. The bit-parallel matchers
// in package match key their per-symbol bitmask tables by byte instead.
func Rank(b byte) int {
	switch cleanTable[b] {
	case A:
		return 0
	case C:
		return 1
	case G:
		return 2
	case T:
		return 3
	default:
		return 4
	}
}

// Size is the number of distinct ranks returned by Rank.
const Size = 5
