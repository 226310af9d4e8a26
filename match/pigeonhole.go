package match

import (
	"blainsmith.com/go/seahash"
	"github.com/pkg/errors"
)

// seed is one needle's q-gram at a fixed offset, keyed by its hash in the
// open-addressing index.
type seed struct {
	needleIndex int
	offset      int
}

// Pigeonhole is the q-gram filter of distilled spec §4.8: it treats each
// needle as a set of non-overlapping q-grams and reports every haystack
// position whose q-gram matches one of them, for the bucket searcher
// (C10) to extend into a full approximate match. Matches are candidates,
// not confirmed hits: the pigeonhole principle guarantees every true
// match within the needle's error budget contains at least one
// error-free q-gram, but a q-gram collision alone does not guarantee a
// true match.
type Pigeonhole struct {
	needles [][]byte
	q       int
	index   map[uint64][]seed

	tail []byte // last q-1 bytes carried across Match calls
}

// NewPigeonhole builds a q-gram index over needles at error rate r. For
// each needle it computes len(needle)/(floor(r*len(needle))+1) (at least
// 1), and q is the smallest of these over all needles. Every needle is
// then split into as many non-overlapping q-grams as fit, so each needle
// has at least floor(r*len(needle))+1 of them and at least one survives
// any alignment with at most floor(r*len(needle)) errors (the pigeonhole
// principle).
func NewPigeonhole(needles [][]byte, r float64) (*Pigeonhole, error) {
	if len(needles) == 0 {
		return nil, errors.New("match: pigeonhole needs at least one needle")
	}
	p := &Pigeonhole{needles: needles, index: make(map[uint64][]seed)}
	minQ := -1
	for _, n := range needles {
		if len(n) == 0 {
			return nil, errors.New("match: pigeonhole needle must not be empty")
		}
		e := int(r * float64(len(n)))
		pieces := e + 1
		q := len(n) / pieces
		if q < 1 {
			q = 1
		}
		if minQ < 0 || q < minQ {
			minQ = q
		}
	}
	p.q = minQ
	for ni, n := range needles {
		for offset := 0; offset+p.q <= len(n); offset += p.q {
			h := seahash.Sum64(n[offset : offset+p.q])
			p.index[h] = append(p.index[h], seed{needleIndex: ni, offset: offset})
		}
	}
	return p, nil
}

// WindowSize returns the q-gram length.
func (p *Pigeonhole) WindowSize() int { return p.q }

// pigeonholeState is the opaque snapshot Pigeonhole.Capture returns.
type pigeonholeState struct {
	tail []byte
}

// Capture snapshots the trailing bytes carried across calls.
func (p *Pigeonhole) Capture() interface{} {
	cp := make([]byte, len(p.tail))
	copy(cp, p.tail)
	return pigeonholeState{tail: cp}
}

// Restore reinstates a snapshot from Capture.
func (p *Pigeonhole) Restore(state interface{}) {
	st := state.(pigeonholeState)
	p.tail = append(p.tail[:0], st.tail...)
}

// Match slides a q-byte window across the concatenation of the carried
// tail and haystack, reporting a Hit for every seed whose q-gram hashes
// equal. Offset is relative to the start of haystack and may be negative
// when the matching window started in the carried tail.
func (p *Pigeonhole) Match(haystack []byte, onHit func(Hit)) {
	buf := append(p.tail, haystack...)
	for start := 0; start+p.q <= len(buf); start++ {
		h := seahash.Sum64(buf[start : start+p.q])
		for _, s := range p.index[h] {
			onHit(Hit{
				NeedleIndex:  s.needleIndex,
				Offset:       start - len(p.tail),
				NeedleOffset: s.offset,
				Count:        p.q,
			})
		}
	}
	if len(buf) >= p.q-1 {
		p.tail = append([]byte(nil), buf[len(buf)-(p.q-1):]...)
	} else {
		p.tail = append([]byte(nil), buf...)
	}
}
