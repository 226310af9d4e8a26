// Package journal implements a sparse edit-log representation of one
// haplotype's sequence as differences from a reference (distilled spec
// §4.4): an ordered dictionary of (journaled-position, segment) entries
// that partitions the journaled sequence without overlap.
package journal

import (
	"sort"

	"github.com/grailbio/jst/jsterr"
	"github.com/pkg/errors"
)

// segmentKind tags whether a segment views the reference or carries its
// own inserted bytes.
type segmentKind uint8

const (
	segmentReference segmentKind = iota
	segmentInserted
)

// entry is one dictionary record: it starts at journaled position start
// and is length-long. A reference segment reads source[refOff:refOff+length];
// an inserted segment reads its own bytes directly.
type entry struct {
	start  int
	length int
	kind   segmentKind
	refOff int    // valid iff kind == segmentReference
	bytes  []byte // valid iff kind == segmentInserted
}

func (e entry) end() int { return e.start + e.length }

// Journal is an ordered dictionary of entries over a shared reference
// source. The zero value is not usable; construct with New.
type Journal struct {
	source  []byte
	entries []entry // sorted by start, partitioning [0, length)
	length  int
}

// New returns a Journal that initially reads source verbatim (no edits
// applied yet).
func New(source []byte) *Journal {
	j := &Journal{source: source, length: len(source)}
	if len(source) > 0 {
		j.entries = []entry{{start: 0, length: len(source), kind: segmentReference, refOff: 0}}
	}
	return j
}

// Len returns the length of the journaled sequence.
func (j *Journal) Len() int { return j.length }

// Clone returns an independent copy of j: mutating the clone never
// affects the receiver. Journals are cheap to clone relative to the
// sequences they represent, since only the entry dictionary (not the
// shared reference source) is copied (distilled spec §5's "nodes own
// their journal by value, cheaply cloned from parent").
func (j *Journal) Clone() *Journal {
	entries := make([]entry, len(j.entries))
	copy(entries, j.entries)
	return &Journal{source: j.source, entries: entries, length: j.length}
}

// find returns the index of the entry containing journaled position pos,
// or len(j.entries) if pos is out of range.
func (j *Journal) find(pos int) int {
	idx := sort.Search(len(j.entries), func(i int) bool { return j.entries[i].end() > pos })
	return idx
}

// splitAt ensures an entry boundary exists exactly at journaled position
// pos (0 < pos < length), splitting the entry that spans it if needed.
// Returns the index of the first entry starting at or after pos.
func (j *Journal) splitAt(pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos >= j.length {
		return len(j.entries)
	}
	idx := j.find(pos)
	e := j.entries[idx]
	if e.start == pos {
		return idx
	}
	leftLen := pos - e.start
	left := entry{start: e.start, length: leftLen, kind: e.kind}
	right := entry{start: pos, length: e.length - leftLen, kind: e.kind}
	switch e.kind {
	case segmentReference:
		left.refOff = e.refOff
		right.refOff = e.refOff + leftLen
	case segmentInserted:
		left.bytes = e.bytes[:leftLen]
		right.bytes = e.bytes[leftLen:]
	}
	j.entries = append(j.entries[:idx], append([]entry{left, right}, j.entries[idx+1:]...)...)
	return idx + 1
}

// shift adds delta to the start of every entry beginning at or after pos.
func (j *Journal) shift(pos, delta int) {
	for i := range j.entries {
		if j.entries[i].start >= pos {
			j.entries[i].start += delta
		}
	}
}

// RecordInsertion inserts seq at journaled position pos, pushing
// everything from pos onward forward by len(seq).
func (j *Journal) RecordInsertion(pos int, seq []byte) error {
	if pos < 0 || pos > j.length {
		return errors.Wrapf(jsterr.ErrInvariantViolation, "insertion position %d outside [0,%d]", pos, j.length)
	}
	if len(seq) == 0 {
		return nil
	}
	idx := j.splitAt(pos)
	j.shift(pos, len(seq))
	ins := entry{start: pos, length: len(seq), kind: segmentInserted, bytes: append([]byte(nil), seq...)}
	j.entries = append(j.entries[:idx], append([]entry{ins}, j.entries[idx:]...)...)
	j.length += len(seq)
	return nil
}

// RecordDeletion removes the journaled half-open range [first, last).
func (j *Journal) RecordDeletion(first, last int) error {
	if first < 0 || last > j.length || first > last {
		return errors.Wrapf(jsterr.ErrInvariantViolation, "deletion range [%d,%d) outside [0,%d]", first, last, j.length)
	}
	if first == last {
		return nil
	}
	startIdx := j.splitAt(first)
	endIdx := j.splitAt(last)
	j.entries = append(j.entries[:startIdx], j.entries[endIdx:]...)
	j.shift(last, -(last - first))
	j.length -= last - first
	return nil
}

// RecordSubstitution replaces the journaled range [pos, pos+len(seq)) with
// seq's own bytes. Equivalent to a deletion followed by an insertion of
// equal intent, but performed atomically so intermediate state is never
// observed.
func (j *Journal) RecordSubstitution(pos int, seq []byte) error {
	if err := j.RecordDeletion(pos, pos+len(seq)); err != nil {
		return err
	}
	return j.RecordInsertion(pos, seq)
}

// At returns the symbol at journaled position pos.
func (j *Journal) At(pos int) byte {
	idx := j.find(pos)
	e := j.entries[idx]
	off := pos - e.start
	switch e.kind {
	case segmentReference:
		return j.source[e.refOff+off]
	default:
		return e.bytes[off]
	}
}

// Slice materializes the journaled range [start, end) as a new byte slice.
func (j *Journal) Slice(start, end int) []byte {
	out := make([]byte, 0, end-start)
	pos := start
	idx := j.find(start)
	for pos < end {
		e := j.entries[idx]
		lo := pos - e.start
		hi := e.length
		if e.end() > end {
			hi = end - e.start
		}
		switch e.kind {
		case segmentReference:
			out = append(out, j.source[e.refOff+lo:e.refOff+hi]...)
		default:
			out = append(out, e.bytes[lo:hi]...)
		}
		pos = e.start + hi
		idx++
	}
	return out
}

// Sequence returns a random-access lazy view over the full journaled
// sequence (distilled spec §4.4).
func (j *Journal) Sequence() *Sequence {
	return &Sequence{j: j, cacheIdx: 0}
}

// Sequence is a cursor over a Journal caching the last entry touched, so
// random access within the same entry is O(1) and otherwise falls back to
// a binary search (distilled spec §4.4).
type Sequence struct {
	j        *Journal
	cacheIdx int
}

// Len returns the length of the underlying journaled sequence.
func (s *Sequence) Len() int { return s.j.length }

// At returns the symbol at position pos, using and updating the cached
// entry index.
func (s *Sequence) At(pos int) byte {
	if s.cacheIdx < len(s.j.entries) {
		e := s.j.entries[s.cacheIdx]
		if pos >= e.start && pos < e.end() {
			return s.entryAt(e, pos)
		}
	}
	s.cacheIdx = s.j.find(pos)
	return s.entryAt(s.j.entries[s.cacheIdx], pos)
}

func (s *Sequence) entryAt(e entry, pos int) byte {
	off := pos - e.start
	if e.kind == segmentReference {
		return s.j.source[e.refOff+off]
	}
	return e.bytes[off]
}

// Materialize returns the full reconstructed sequence.
func (s *Sequence) Materialize() []byte {
	return s.j.Slice(0, s.j.length)
}
