package match

import "github.com/pkg/errors"

// MyersPrefix is the restorable Myers bit-vector approximate matcher of
// distilled spec §4.8: the bucket searcher (C10) uses it to extend a seed
// hit forward (matching a needle's suffix) or, run over the reverse tree,
// backward (matching a needle's prefix) within an edit-distance budget e.
// The needle must fit in one machine word; WindowSize is len(needle)+e.
type MyersPrefix struct {
	needle []byte
	e      int
	length int
	peq    map[byte]uint64

	pv, mv uint64
	score  int
}

// NewMyersPrefix builds a Myers matcher for needle with error budget e.
func NewMyersPrefix(needle []byte, e int) (*MyersPrefix, error) {
	if len(needle) == 0 || len(needle) > 64 {
		return nil, errors.Errorf("match: myers needle length %d, want [1,64]", len(needle))
	}
	peq := make(map[byte]uint64, len(needle))
	for i, c := range needle {
		peq[c] |= 1 << uint(i)
	}
	return &MyersPrefix{
		needle: needle,
		e:      e,
		length: len(needle),
		peq:    peq,
		pv:     ^uint64(0),
		mv:     0,
		score:  len(needle),
	}, nil
}

// WindowSize returns len(needle) + e.
func (mp *MyersPrefix) WindowSize() int { return mp.length + mp.e }

func (mp *MyersPrefix) eqFor(c byte) uint64 {
	if v, ok := mp.peq[c]; ok {
		return v
	}
	return 0
}

// myersState is the opaque snapshot MyersPrefix.Capture returns.
type myersState struct {
	pv, mv uint64
	score  int
}

// Capture snapshots the current bit-vector pair and score.
func (mp *MyersPrefix) Capture() interface{} {
	return myersState{pv: mp.pv, mv: mp.mv, score: mp.score}
}

// Restore reinstates a snapshot from Capture.
func (mp *MyersPrefix) Restore(state interface{}) {
	st := state.(myersState)
	mp.pv, mp.mv, mp.score = st.pv, st.mv, st.score
}

// Match runs Myers' bit-vector recurrence over haystack, reporting a Hit
// with the residual error count whenever the running score is within the
// error budget.
func (mp *MyersPrefix) Match(haystack []byte, onHit func(Hit)) {
	top := uint64(1) << uint(mp.length-1)
	for offset, c := range haystack {
		eq := mp.eqFor(c)
		xv := eq | mp.mv
		xh := (((eq & mp.pv) + mp.pv) ^ mp.pv) | eq
		ph := mp.mv | ^(xh | mp.pv)
		mh := mp.pv & xh

		if ph&top != 0 {
			mp.score++
		} else if mh&top != 0 {
			mp.score--
		}

		ph = (ph << 1) | 1
		mh <<= 1

		mp.pv = mh | ^(xv | ph)
		mp.mv = ph & xv

		if mp.score <= mp.e {
			onHit(Hit{Offset: offset + 1, Errors: mp.score})
		}
	}
}
