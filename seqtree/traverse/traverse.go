// Package traverse implements the depth-first tree traverser of distilled
// spec §4.7 (C8): an explicit-stack DFS iterator over a transform.Tree
// that publishes push/pop notifications to matcher state managers, in the
// style of bufio.Scanner's Scan/cursor protocol rather than a callback or
// channel-based walk.
package traverse

import "github.com/grailbio/jst/seqtree/transform"

// Event distinguishes a push notification (descending into a node) from a
// pop notification (backtracking out of one).
type Event int

const (
	// Push fires after descent into a node, before its children are
	// visited.
	Push Event = iota
	// Pop fires after a node's ref and alt subtrees (whichever exist)
	// have both been fully visited, immediately before backtracking to
	// its parent.
	Pop
)

// frame tracks one node's progress through ref-then-alt descent.
type frame struct {
	node  transform.Node
	state int // 0: about to push; 1: pushed, ref not yet tried; 2: ref tried, alt not yet tried; 3: both tried, ready to pop
}

// Traverser is a single-threaded, cooperative depth-first iterator over a
// transform.Tree (distilled spec §4.7). It visits ref before alt at every
// branch, consistent with a deterministic push-alt-then-ref scheduling of
// the underlying work stack. There is no concurrent or cancellation
// primitive: the only suspension point is Scan returning control to the
// caller, and an abandoned Traverser is simply dropped.
type Traverser struct {
	stack   []frame
	started bool
	current transform.Node
	event   Event
}

// New returns a Traverser rooted at root. The first call to Scan
// publishes root itself.
func New(root transform.Node) *Traverser {
	return &Traverser{stack: []frame{{node: root}}}
}

// Scan advances to the next push or pop event, returning false once the
// whole tree has been visited.
func (t *Traverser) Scan() bool {
	for len(t.stack) > 0 {
		top := &t.stack[len(t.stack)-1]
		switch top.state {
		case 0:
			top.state = 1
			t.current = top.node
			t.event = Push
			return true
		case 1:
			top.state = 2
			if ref, ok := top.node.NextRef(); ok {
				t.stack = append(t.stack, frame{node: ref})
			}
		case 2:
			top.state = 3
			if alt, ok := top.node.NextAlt(); ok {
				t.stack = append(t.stack, frame{node: alt})
			}
		case 3:
			t.current = top.node
			t.event = Pop
			t.stack = t.stack[:len(t.stack)-1]
			return true
		}
	}
	return false
}

// Event returns the kind of the event Scan most recently produced.
func (t *Traverser) Event() Event { return t.event }

// Node returns the node the current event pertains to.
func (t *Traverser) Node() transform.Node { return t.current }

// Subscriber receives push/pop notifications from a StackPublisher in
// traversal order (distilled spec §4.7). A matcher state manager
// implements Subscriber by feeding Push's node sequence into its matcher
// and capturing the result, then restoring the prior capture on Pop.
type Subscriber interface {
	Push(n transform.Node)
	Pop()
}

// StackPublisher drives a Traverser to completion, fanning each push/pop
// event out to every subscriber in subscription order. Push fires after
// descent; pop fires after backtrack, restoring the most recently pushed
// state (distilled spec §4.7).
type StackPublisher struct {
	subscribers []Subscriber
}

// NewStackPublisher returns an empty StackPublisher.
func NewStackPublisher() *StackPublisher {
	return &StackPublisher{}
}

// Subscribe registers s to receive future push/pop notifications.
func (p *StackPublisher) Subscribe(s Subscriber) {
	p.subscribers = append(p.subscribers, s)
}

// Run drives t to completion, notifying every subscriber of each event in
// the order Scan produces them.
func (p *StackPublisher) Run(t *Traverser) {
	for t.Scan() {
		switch t.Event() {
		case Push:
			for _, s := range p.subscribers {
				s.Push(t.Node())
			}
		case Pop:
			for _, s := range p.subscribers {
				s.Pop()
			}
		}
	}
}
