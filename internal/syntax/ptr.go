package syntax

import (
	"shaderlens/internal/source"
	"shaderlens/internal/token"
)

// NodePtr addresses a node by kind and range so that long-lived data can
// refer to syntax without pinning a tree.
type NodePtr struct {
	Kind  token.Kind
	Range source.TextRange
}

func NewNodePtr(n *Node) NodePtr {
	return NodePtr{Kind: n.Kind(), Range: n.Range()}
}

// ToNode finds the node in root, or reports false if the tree no longer
// has a node of that kind and range.
func (p NodePtr) ToNode(root *Node) (*Node, bool) {
	cur := root
	for cur != nil && cur.Range().ContainsRange(p.Range) {
		if cur.Kind() == p.Kind && cur.Range() == p.Range {
			return cur, true
		}
		var next *Node
		for _, c := range cur.Children() {
			if c.Range().ContainsRange(p.Range) {
				next = c
				break
			}
		}
		cur = next
	}
	return nil, false
}

// MustToNode is ToNode for pointers known to come from root's tree.
func (p NodePtr) MustToNode(root *Node) *Node {
	n, ok := p.ToNode(root)
	if !ok {
		panic("syntax: stale NodePtr " + p.Kind.String() + "@" + p.Range.String())
	}
	return n
}
