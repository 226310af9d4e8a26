package search

import (
	"github.com/grailbio/jst/match"
	"github.com/grailbio/jst/seqtree/transform"
	"github.com/grailbio/jst/seqtree/traverse"
)

// matcherWalk bridges a match.Matcher into a traverse.Subscriber: it
// feeds each visited node's sequence into the matcher, reporting every
// hit tagged with the node it occurred in, and captures/restores the
// matcher's state around each node so sibling branches never see each
// other's partial matches (distilled spec §4.7's push/pop contract is
// exactly the resumable matcher's capture/restore contract, applied at
// every tree branch instead of only at segment boundaries).
type matcherWalk struct {
	matcher match.Matcher
	stack   []interface{}
	visit   func(n transform.Node, h match.Hit)
}

func (w *matcherWalk) Push(n transform.Node) {
	w.stack = append(w.stack, w.matcher.Capture())
	w.matcher.Match(n.Sequence(), func(h match.Hit) { w.visit(n, h) })
}

func (w *matcherWalk) Pop() {
	last := len(w.stack) - 1
	w.matcher.Restore(w.stack[last])
	w.stack = w.stack[:last]
}

// walkFrom drives m over every node of the subtree rooted at root,
// invoking visit for each hit.
func walkFrom(root transform.Node, m match.Matcher, visit func(n transform.Node, h match.Hit)) {
	w := &matcherWalk{matcher: m, visit: visit}
	pub := traverse.NewStackPublisher()
	pub.Subscribe(w)
	pub.Run(traverse.New(root))
}
