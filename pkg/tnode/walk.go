package tnode

// Signal is returned by a visitor to steer a walk.
type Signal uint8

const (
	// Continue proceeds normally.
	Continue Signal = iota
	// Skip stops the walk from going further along the current branch. In
	// depth-first order the remaining siblings of the node are not visited
	// (their parent still is); in breadth-first order the node's children are
	// not queued.
	Skip
	// Abort ends the whole walk immediately.
	Abort
)

// Walk visits n and its descendants depth-first, calling f on each node after
// all of its children (post-order). It returns the signal of the last call.
//
// The child list is read live, so f may replace the node it is called on;
// nodes appended to a list that is being visited are not visited.
func (n *Node) Walk(f func(*Node) Signal) Signal {
	for i, l := 0, len(n.Children); i < l && i < len(n.Children); i++ {
		sig := n.Children[i].Walk(f)
		if sig == Abort {
			return Abort
		}
		if sig == Skip {
			break
		}
	}
	return f(n)
}

// WalkBreadthFirst visits n and its descendants level by level, calling f on
// each node before its children.
func (n *Node) WalkBreadthFirst(f func(*Node) Signal) Signal {
	if sig := f(n); sig != Continue {
		return sig
	}
	frontier := append([]*Node(nil), n.Children...)
	for len(frontier) > 0 {
		var next []*Node
		for _, c := range frontier {
			switch f(c) {
			case Abort:
				return Abort
			case Skip:
				continue
			}
			next = append(next, c.Children...)
		}
		frontier = next
	}
	return Continue
}
