package transform

// Stats summarizes a full traversal of a tree (distilled spec §4.6's
// stats transformer).
type Stats struct {
	NodeCount       int
	SubtreeCount    int // number of alt descents taken
	LeafCount       int
	SymbolCount     int // sum of len(Sequence()) over all visited nodes
	MaxSubtreeDepth int
	SubtreeDepths   map[int]int // histogram: alt-path depth -> node count at that depth
}

// CollectStats runs a depth-first traversal from root and returns Stats.
// It does not use the traverse package's stack-notification protocol,
// since it needs no matcher state, only the aggregate counts.
func CollectStats(root Node) Stats {
	s := Stats{SubtreeDepths: make(map[int]int)}
	var visit func(n Node)
	visit = func(n Node) {
		s.NodeCount++
		s.SymbolCount += len(n.Sequence())
		s.SubtreeDepths[n.altDepth]++
		if n.altDepth > s.MaxSubtreeDepth {
			s.MaxSubtreeDepth = n.altDepth
		}
		refChild, refOK := n.NextRef()
		altChild, altOK := n.NextAlt()
		if !refOK && !altOK {
			s.LeafCount++
			return
		}
		if refOK {
			visit(refChild)
		}
		if altOK {
			s.SubtreeCount++
			visit(altChild)
		}
	}
	visit(root)
	return s
}
