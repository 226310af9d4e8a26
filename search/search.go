package search

import (
	"github.com/pkg/errors"

	"github.com/grailbio/jst/match"
	"github.com/grailbio/jst/rangeindex"
	"github.com/grailbio/jst/seqtree"
	"github.com/grailbio/jst/seqtree/transform"
)

// extendResult tracks the best (lowest-error) confirmed extension found so
// far for one seed hit in one direction.
type extendResult struct {
	errors   int // -1 until a candidate within budget is recorded
	consumed int // bytes of context consumed along the winning path
}

func (r *extendResult) consider(total, errs int) {
	if r.errors < 0 || errs < r.errors {
		r.errors = errs
		r.consumed = total
	}
}

// Search runs the seed-extend pipeline of distilled spec §4.9 over b: a
// Pigeonhole seed phase locates every candidate q-gram hit across the
// whole tree, and each hit is extended independently forward (the
// needle's suffix, walked down through every ref/alt branch the seed
// node leads to) and backward (the needle's prefix, matched leftward by
// unwinding the seed's position onto the mirrored reverse tree and
// extending forward there). A hit survives only if the combined edit
// count of both extensions is within the needle's error budget.
func Search(b Bucket, opts Options) ([]MatchPosition, error) {
	if len(b.Needles) == 0 {
		return nil, errors.New("search: bucket has no needles")
	}
	pig, err := match.NewPigeonhole(b.Needles, opts.ErrorRate)
	if err != nil {
		return nil, errors.Wrap(err, "search: building seed index")
	}

	var treeOpts []transform.Opt
	if opts.Trim > 0 {
		treeOpts = append(treeOpts, transform.WithTrim(opts.Trim))
	}
	tree := transform.New(b.Base, b.H, treeOpts...)

	nVariants := len(b.Base.Variants())
	reverseTree := transform.New(seqtree.Reverse(b.Base), b.H)

	budgets := make([]int, len(b.Needles))
	for i, n := range b.Needles {
		budgets[i] = int(opts.ErrorRate * float64(len(n)))
	}

	var results []MatchPosition
	walkFrom(tree.Root(), pig, func(n transform.Node, h match.Hit) {
		needle := b.Needles[h.NeedleIndex]
		budget := budgets[h.NeedleIndex]
		absSeedStart := n.SequenceStart() + rangeindex.PosType(h.Offset)

		suffix := needle[h.NeedleOffset+h.Count:]
		prefix := needle[:h.NeedleOffset]

		fwd := extendResult{errors: -1}
		if len(suffix) == 0 {
			fwd.consider(0, 0)
		} else if mp, err := match.NewMyersPrefix(suffix, budget); err == nil {
			localStart := h.Offset + h.Count
			extendForward(n, localStart, mp, 0, len(suffix), budget, len(suffix)+budget, &fwd)
		}
		if fwd.errors < 0 {
			return
		}

		back := extendResult{errors: -1}
		var backConsumed rangeindex.PosType
		switch {
		case len(prefix) == 0:
			back.consider(0, 0)
		case h.Offset >= 0 && h.Offset < int(n.OwnLength()):
			// The seed's q-gram sits entirely inside n's own window: unwind
			// n's seek position to find the mirrored node in the reverse
			// tree and extend forward there, which is exactly extending
			// the needle's prefix leftward in the forward tree (distilled
			// spec §4.9 step 3's "extend leftward by traversing the
			// reverse tree").
			revPrefix := reverseBytes(prefix)
			mirror := reverseTree.Seek(n.Position().Unwind(nVariants))
			mirrorStart := int(n.OwnLength()) - h.Offset
			if mp, err := match.NewMyersPrefix(revPrefix, budget); err == nil {
				extendForward(mirror, mirrorStart, mp, 0, len(revPrefix), budget, len(revPrefix)+budget, &back)
			}
		default:
			// The q-gram straddled a node boundary (the pigeonhole carried
			// a tail across a push/pop), so n's own window alone doesn't
			// locate the mirrored start cleanly. Fall back to slicing the
			// context directly out of n's journal, which always holds the
			// full materialized path back to the root regardless of which
			// branch n sits on.
			revPrefix := reverseBytes(prefix)
			maxBack := len(revPrefix) + budget
			ctx := n.PathBefore(absSeedStart)
			start := len(ctx) - maxBack
			if start < 0 {
				start = 0
			}
			window := reverseBytes(ctx[start:])
			if mp, err := match.NewMyersPrefix(revPrefix, budget); err == nil {
				mp.Match(window, func(hit match.Hit) {
					if diff := hit.Offset - len(revPrefix); diff >= -budget && diff <= budget {
						back.consider(hit.Offset, hit.Errors)
					}
				})
			}
		}
		backConsumed = rangeindex.PosType(back.consumed)
		if back.errors < 0 {
			return
		}

		total := fwd.errors + back.errors
		if total > budgets[h.NeedleIndex] {
			return
		}

		matchStart := absSeedStart - backConsumed
		labelOffset := 0
		if matchStart > n.SequenceStart() {
			labelOffset = int(matchStart - n.SequenceStart())
		}
		results = append(results, MatchPosition{
			NeedleIndex: h.NeedleIndex,
			Position:    n.Position(),
			LabelOffset: labelOffset,
			Errors:      total,
		})
	})
	return results, nil
}

// extendForward feeds the portion of n's own sequence starting at start
// into mp, then recurses into n's ref and alt children (each from their
// own offset 0), saving and restoring mp's state around every branch so
// siblings never see each other's partial match. Recursion stops once
// maxConsume bytes have been fed along the current path: an approximate
// match can never need more context than the needle fragment plus its
// error budget.
func extendForward(n transform.Node, start int, mp *match.MyersPrefix, consumed, needleLen, budget, maxConsume int, best *extendResult) {
	if consumed >= maxConsume {
		return
	}
	seq := n.Sequence()
	if start < len(seq) {
		seg := seq[start:]
		if room := maxConsume - consumed; len(seg) > room {
			seg = seg[:room]
		}
		mp.Match(seg, func(h match.Hit) {
			total := consumed + h.Offset
			if diff := total - needleLen; diff >= -budget && diff <= budget {
				best.consider(total, h.Errors)
			}
		})
		consumed += len(seg)
	}
	if consumed >= maxConsume {
		return
	}
	if ref, ok := n.NextRef(); ok {
		snap := mp.Capture()
		extendForward(ref, 0, mp, consumed, needleLen, budget, maxConsume, best)
		mp.Restore(snap)
	}
	if alt, ok := n.NextAlt(); ok {
		snap := mp.Capture()
		extendForward(alt, 0, mp, consumed, needleLen, budget, maxConsume, best)
		mp.Restore(snap)
	}
}

// SearchMirror runs Search over the mirror image of b.Base (seqtree's
// reverse tree, distilled spec §4.9 step 3's supplemental reverse-tree
// feature) and translates every result back into b.Base's own seek
// coordinates via SeekPosition.Unwind. It gives a caller a second,
// independent anchor direction: a needle whose best seed lands very
// close to the start of a partition has little leftward context to
// extend into, but plenty rightward once the partition is read back to
// front.
func SearchMirror(b Bucket, opts Options) ([]MatchPosition, error) {
	nVariants := len(b.Base.Variants())
	mirrored := Bucket{
		Base:    seqtree.Reverse(b.Base),
		Needles: reverseAll(b.Needles),
		H:       b.H,
	}
	hits, err := Search(mirrored, opts)
	if err != nil {
		return nil, err
	}
	for i := range hits {
		hits[i].Position = hits[i].Position.Unwind(nVariants)
	}
	return hits, nil
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

func reverseAll(needles [][]byte) [][]byte {
	out := make([][]byte, len(needles))
	for i, n := range needles {
		out[i] = reverseBytes(n)
	}
	return out
}
