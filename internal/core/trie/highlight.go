package trie

// SetHighlighted sets the mark on every node of the subtree
func (n *Node) SetHighlighted(v bool) {
	for node := range n.DFS() {
		node.Highlighted = v
	}
}

// PropagateHighlight folds marks bottom-up and returns the receiver's new mark.
// A node stays highlighted only when it and every descendant are; a cleared mark is never restored.
// Every child is recomputed even after one comes back false
func (n *Node) PropagateHighlight() bool {
	if n.IsLeaf() {
		return n.Highlighted
	}
	all := true
	for _, c := range n.children {
		if !c.PropagateHighlight() {
			all = false
		}
	}
	n.Highlighted = n.Highlighted && all
	return n.Highlighted
}
