// Package search implements the seed-extend bucket searcher of distilled
// spec §4.9 (C10): a pigeonhole seed phase over the whole tree followed
// by a Myers-prefix suffix extension forward and a mirrored prefix
// extension over the reverse tree, emitting match positions in the
// original forward-tree coordinates.
package search

import "github.com/grailbio/jst/seqtree"

// Bucket is one independent seed-and-extend search problem: a base tree
// and the needles to search for within it (distilled spec §4.9).
type Bucket struct {
	Base    *seqtree.BaseTree
	Needles [][]byte
	H       int
}

// Options configures a Search call.
type Options struct {
	// ErrorRate is r, the fraction of a needle's length tolerated as
	// edits; each needle's error budget is floor(r * len(needle)).
	ErrorRate float64
	// Trim caps each tree node's own window, bounding how much sequence
	// a single matcher feed call processes at once. Zero disables
	// trimming.
	Trim int
}

// MatchPosition is one confirmed approximate match, reported in the
// original (forward) tree's coordinates.
type MatchPosition struct {
	NeedleIndex int
	Position    seqtree.SeekPosition
	// LabelOffset is the byte offset within Position's node window the
	// match begins at, carrying the sub-node precision a SeekPosition
	// alone cannot (distilled spec §4.9's match position is {tree_position,
	// label_offset} for exactly this reason).
	LabelOffset int
	Errors      int
}
