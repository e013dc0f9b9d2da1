// Package trie implements a rune keyed prefix tree whose nodes carry the substring spelled by
// their path plus a highlight mark used by the filter synthesizer
package trie

import (
	"errors"
	"iter"
)

// ErrInvalidPath is yielded by Traverse when a token has no matching child
var ErrInvalidPath = errors.New("trie: invalid path")

// Node is a trie vertex. Text is the concatenation of every token on the path from the root
type Node struct {
	Text        string
	Highlighted bool

	// children are kept in insertion order so enumeration is reproducible
	children []*Node
	index    map[rune]int
}

// New returns an empty root node
func New() *Node { return &Node{} }

// Add inserts path token by token, reusing existing nodes. Empty paths are a no-op
func (n *Node) Add(path string) {
	node := n
	for _, r := range path {
		child, ok := node.Child(r)
		if !ok {
			child = node.appendChild(r)
		}
		node = child
	}
}

func (n *Node) appendChild(r rune) *Node {
	child := &Node{Text: n.Text + string(r)}
	if n.index == nil {
		n.index = make(map[rune]int, 4)
	}
	n.index[r] = len(n.children)
	n.children = append(n.children, child)
	return child
}

// Child returns the child reached by token r
func (n *Node) Child(r rune) (*Node, bool) {
	i, ok := n.index[r]
	if !ok {
		return nil, false
	}
	return n.children[i], true
}

// Len reports the number of direct children
func (n *Node) Len() int { return len(n.children) }

// IsLeaf reports whether the node has no children
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// Traverse yields the nodes visited along path, one per token.
// The first token without a matching child yields (nil, ErrInvalidPath) and ends the sequence
func (n *Node) Traverse(path string) iter.Seq2[*Node, error] {
	return func(yield func(*Node, error) bool) {
		node := n
		for _, r := range path {
			child, ok := node.Child(r)
			if !ok {
				yield(nil, ErrInvalidPath)
				return
			}
			if !yield(child, nil) {
				return
			}
			node = child
		}
	}
}

// Traversable reports whether every token of path has a matching child
func (n *Node) Traversable(path string) bool {
	node := n
	for _, r := range path {
		child, ok := node.Child(r)
		if !ok {
			return false
		}
		node = child
	}
	return true
}

// DFS yields every node of the subtree in post-order: descendants before their ancestor,
// siblings in construction order
func (n *Node) DFS() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.postOrder(yield)
	}
}

func (n *Node) postOrder(yield func(*Node) bool) bool {
	for _, c := range n.children {
		if !c.postOrder(yield) {
			return false
		}
	}
	return yield(n)
}
