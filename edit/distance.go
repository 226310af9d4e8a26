// Package edit implements a reference (non-bit-parallel) Levenshtein
// edit-distance computation. It is standalone: no other package in this
// module, including package match and its tests, imports it.
//
// Adapted from the teacher's github.com/grailbio/bio/util package
// (distance.go), which computes Levenshtein distance between two
// equal-length barcodes plus downstream context. That shape is specific to
// barcode correction; the needles and haystacks searched over a journaled
// sequence tree have no such constraint, so this is a plain full-matrix
// Levenshtein distance over arbitrary-length byte slices, keeping the
// teacher's row-major matrix representation.
package edit

// matrix is a row-major (len(a)+1) x (len(b)+1) distance matrix.
type matrix struct {
	cols int
	data []int
}

func newMatrix(rows, cols int) matrix {
	return matrix{cols: cols, data: make([]int, rows*cols)}
}

func (m matrix) at(i, j int) int      { return m.data[i*m.cols+j] }
func (m matrix) set(i, j, v int)      { m.data[i*m.cols+j] = v }

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// Distance returns the Levenshtein edit distance between a and b: the
// minimum number of single-symbol insertions, deletions and substitutions
// needed to turn a into b.
func Distance(a, b []byte) int {
	m := newMatrix(len(a)+1, len(b)+1)
	for j := 0; j <= len(b); j++ {
		m.set(0, j, j)
	}
	for i := 1; i <= len(a); i++ {
		m.set(i, 0, i)
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				m.set(i, j, m.at(i-1, j-1))
				continue
			}
			m.set(i, j, min3(m.at(i-1, j-1)+1, m.at(i-1, j)+1, m.at(i, j-1)+1))
		}
	}
	return m.at(len(a), len(b))
}

// WithinK reports whether the edit distance between a and b is at most k.
// It returns false at once when the lengths differ by more than k;
// otherwise it computes the full Distance matrix.
func WithinK(a, b []byte, k int) bool {
	if abs(len(a)-len(b)) > k {
		return false
	}
	return Distance(a, b) <= k
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
