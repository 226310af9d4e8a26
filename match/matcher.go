// Package match implements the resumable matcher contract of distilled
// spec §4.8 (C9): Shift-Or exact multi-needle matching, a restorable
// Myers bit-vector prefix matcher with an edit-distance error budget, and
// a pigeonhole q-gram filter used by the bucket searcher (C10) to find
// seed candidates before extending them.
package match

// Hit reports one match ending (or, for Pigeonhole, starting) inside the
// haystack segment most recently fed to a Matcher.
type Hit struct {
	// NeedleIndex is the index into the matcher's needle list.
	NeedleIndex int
	// Offset is the haystack offset the hit is anchored at: the position
	// one past the end of the match for ShiftOr and MyersPrefix, the
	// position the seed q-gram starts at in the haystack for Pigeonhole.
	Offset int
	// NeedleOffset is the position the seed q-gram starts at within the
	// needle itself. Only set by Pigeonhole; the bucket searcher (C10)
	// uses it to split the needle into the already-matched seed and the
	// suffix/prefix fragments still to extend.
	NeedleOffset int
	// Errors is the number of edits the match required. Always 0 for
	// ShiftOr; the residual error count for MyersPrefix.
	Errors int
	// Count is the q-gram length backing a Pigeonhole hit; unused by the
	// other matchers.
	Count int
}

// Matcher is the resumable contract every C9 matcher satisfies (distilled
// spec §4.8). A Matcher holds its scan state internally and mutates it as
// Match consumes haystack bytes; Capture/Restore let a caller snapshot
// and rewind that state across tree branches without re-scanning already
// consumed input.
type Matcher interface {
	// WindowSize returns the minimum context width the matcher needs to
	// resolve a hit, including any edit-distance allowance.
	WindowSize() int

	// Capture returns an opaque, copyable snapshot of the matcher's
	// current state.
	Capture() interface{}

	// Restore reinstates a snapshot previously returned by Capture.
	// Subsequent Match calls behave as if every byte fed before the
	// snapshot was taken had just been fed.
	Restore(state interface{})

	// Match feeds haystack to the matcher, invoking onHit for every hit
	// ending (or starting, for Pigeonhole) inside this segment. Match
	// mutates the matcher's internal state; it never blocks.
	Match(haystack []byte, onHit func(Hit))
}
