package match

import "github.com/pkg/errors"

// ShiftOr is the Baeza-Yates/Gonnet bitap matcher: exact matching of one
// or more needles, each up to a machine word long, against a haystack fed
// incrementally (distilled spec §4.8). State is one register per needle;
// WindowSize is the length of the longest needle.
type ShiftOr struct {
	needles   [][]byte
	peq       []map[byte]uint64 // per needle: symbol -> bits cleared at matching positions
	matchBit  []uint64          // per needle: bit tested for a full match
	registers []uint64          // per needle: current bitap register
}

// NewShiftOr builds a ShiftOr matcher over needles, none of which may be
// empty or longer than 64 symbols.
func NewShiftOr(needles [][]byte) (*ShiftOr, error) {
	s := &ShiftOr{
		needles:   needles,
		peq:       make([]map[byte]uint64, len(needles)),
		matchBit:  make([]uint64, len(needles)),
		registers: make([]uint64, len(needles)),
	}
	for i, n := range needles {
		if len(n) == 0 || len(n) > 64 {
			return nil, errors.Errorf("match: shiftor needle %d has length %d, want [1,64]", i, len(n))
		}
		mask := make(map[byte]uint64, len(n))
		for _, c := range n {
			if _, ok := mask[c]; !ok {
				mask[c] = ^uint64(0)
			}
		}
		for j, c := range n {
			mask[c] &^= 1 << uint(j)
		}
		s.peq[i] = mask
		s.matchBit[i] = 1 << uint(len(n)-1)
		s.registers[i] = ^uint64(0)
	}
	return s, nil
}

func (s *ShiftOr) maskFor(needleIdx int, c byte) uint64 {
	if m, ok := s.peq[needleIdx][c]; ok {
		return m
	}
	return ^uint64(0)
}

// WindowSize returns the longest needle's length.
func (s *ShiftOr) WindowSize() int {
	max := 0
	for _, n := range s.needles {
		if len(n) > max {
			max = len(n)
		}
	}
	return max
}

// shiftOrState is the opaque snapshot ShiftOr.Capture returns.
type shiftOrState struct {
	registers []uint64
}

// Capture snapshots the current registers.
func (s *ShiftOr) Capture() interface{} {
	cp := make([]uint64, len(s.registers))
	copy(cp, s.registers)
	return shiftOrState{registers: cp}
}

// Restore reinstates a snapshot from Capture.
func (s *ShiftOr) Restore(state interface{}) {
	st := state.(shiftOrState)
	copy(s.registers, st.registers)
}

// Match feeds haystack through the bitap automaton for every needle,
// reporting a Hit each time a needle's register reaches its match bit
// clear.
func (s *ShiftOr) Match(haystack []byte, onHit func(Hit)) {
	for offset, c := range haystack {
		for i := range s.needles {
			s.registers[i] = (s.registers[i] << 1) | s.maskFor(i, c)
			if s.registers[i]&s.matchBit[i] == 0 {
				onHit(Hit{NeedleIndex: i, Offset: offset + 1})
			}
		}
	}
}
