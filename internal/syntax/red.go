package syntax

import (
	"iter"

	"shaderlens/internal/source"
	"shaderlens/internal/token"
)

// Element is a *Node or a *Token.
type Element interface {
	Kind() token.Kind
	Range() source.TextRange
	Parent() *Node
	isElement()
}

// Node is a positioned view of a GreenNode.
type Node struct {
	green  *GreenNode
	parent *Node
	index  int // position among the parent's children
	offset uint32
}

// Token is a positioned view of a GreenToken.
type Token struct {
	green  *GreenToken
	parent *Node
	index  int
	offset uint32
}

func (*Node) isElement()  {}
func (*Token) isElement() {}

// NewRoot wraps green as a tree root at offset 0.
func NewRoot(green *GreenNode) *Node {
	return &Node{green: green}
}

func (n *Node) Green() *GreenNode { return n.green }
func (n *Node) Kind() token.Kind  { return n.green.kind }
func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Text() string      { return n.green.Text() }

func (n *Node) Range() source.TextRange {
	return source.TextRange{Start: n.offset, End: n.offset + n.green.width}
}

// Equal reports whether a and b view the same node of the same tree.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	return n.green == o.green && n.offset == o.offset && n.Kind() == o.Kind()
}

func (n *Node) child(i int, off uint32) Element {
	switch g := n.green.children[i].(type) {
	case *GreenNode:
		return &Node{green: g, parent: n, index: i, offset: off}
	case *GreenToken:
		return &Token{green: g, parent: n, index: i, offset: off}
	}
	return nil
}

// ChildrenWithTokens returns every direct child in order.
func (n *Node) ChildrenWithTokens() []Element {
	out := make([]Element, 0, len(n.green.children))
	off := n.offset
	for i, c := range n.green.children {
		out = append(out, n.child(i, off))
		off += c.Width()
	}
	return out
}

// Children returns the direct child nodes, skipping tokens.
func (n *Node) Children() []*Node {
	var out []*Node
	off := n.offset
	for i, c := range n.green.children {
		if g, ok := c.(*GreenNode); ok {
			out = append(out, &Node{green: g, parent: n, index: i, offset: off})
		}
		off += c.Width()
	}
	return out
}

// FirstChildByKind returns the first child node whose kind is in kinds.
func (n *Node) FirstChildByKind(kinds ...token.Kind) *Node {
	off := n.offset
	for i, c := range n.green.children {
		if g, ok := c.(*GreenNode); ok && hasKind(kinds, g.kind) {
			return &Node{green: g, parent: n, index: i, offset: off}
		}
		off += c.Width()
	}
	return nil
}

// ChildrenByKind returns child nodes whose kind is in kinds.
func (n *Node) ChildrenByKind(kinds ...token.Kind) []*Node {
	var out []*Node
	for _, c := range n.Children() {
		if hasKind(kinds, c.Kind()) {
			out = append(out, c)
		}
	}
	return out
}

// FirstTokenByKind returns the first direct child token whose kind is in kinds.
func (n *Node) FirstTokenByKind(kinds ...token.Kind) *Token {
	off := n.offset
	for i, c := range n.green.children {
		if g, ok := c.(*GreenToken); ok && hasKind(kinds, g.kind) {
			return &Token{green: g, parent: n, index: i, offset: off}
		}
		off += c.Width()
	}
	return nil
}

// FirstToken returns the first descendant token, trivia included.
func (n *Node) FirstToken() *Token {
	for _, c := range n.ChildrenWithTokens() {
		switch c := c.(type) {
		case *Token:
			return c
		case *Node:
			if t := c.FirstToken(); t != nil {
				return t
			}
		}
	}
	return nil
}

func (n *Node) LastToken() *Token {
	children := n.ChildrenWithTokens()
	for i := len(children) - 1; i >= 0; i-- {
		switch c := children[i].(type) {
		case *Token:
			return c
		case *Node:
			if t := c.LastToken(); t != nil {
				return t
			}
		}
	}
	return nil
}

func (n *Node) siblingAt(i int) Element {
	p := n.parent
	if p == nil || i < 0 || i >= len(p.green.children) {
		return nil
	}
	off := p.offset
	for j := 0; j < i; j++ {
		off += p.green.children[j].Width()
	}
	return p.child(i, off)
}

// NextSibling returns the next sibling node, skipping tokens.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	for i := n.index + 1; i < len(n.parent.green.children); i++ {
		if s, ok := n.siblingAt(i).(*Node); ok {
			return s
		}
	}
	return nil
}

func (n *Node) PrevSibling() *Node {
	if n.parent == nil {
		return nil
	}
	for i := n.index - 1; i >= 0; i-- {
		if s, ok := n.siblingAt(i).(*Node); ok {
			return s
		}
	}
	return nil
}

// Ancestors yields n, its parent, and so on up to the root.
func (n *Node) Ancestors() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for cur := n; cur != nil; cur = cur.parent {
			if !yield(cur) {
				return
			}
		}
	}
}

// WalkEvent is reported by Preorder on entering and leaving a node.
type WalkEvent struct {
	Node  *Node
	Leave bool
}

// Preorder visits nodes depth-first. Returning false from f on an enter
// event skips the node's subtree.
func (n *Node) Preorder(f func(WalkEvent) bool) {
	if f(WalkEvent{Node: n}) {
		for _, c := range n.Children() {
			c.Preorder(f)
		}
	}
	f(WalkEvent{Node: n, Leave: true})
}

// Descendants yields n and every node below it in preorder.
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.descend(yield)
	}
}

func (n *Node) descend(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, c := range n.Children() {
		if !c.descend(yield) {
			return false
		}
	}
	return true
}

// Tokens yields every token below n in order, trivia included.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		n.tokens(yield)
	}
}

func (n *Node) tokens(yield func(*Token) bool) bool {
	for _, c := range n.ChildrenWithTokens() {
		switch c := c.(type) {
		case *Token:
			if !yield(c) {
				return false
			}
		case *Node:
			if !c.tokens(yield) {
				return false
			}
		}
	}
	return true
}

// TokenAtOffset returns the tokens touching off. Left is set when off lies
// inside a token or at its end; Right when off is at a token start.
func (n *Node) TokenAtOffset(off uint32) (left, right *Token) {
	for t := range n.Tokens() {
		r := t.Range()
		switch {
		case r.Contains(off) && r.Start < off:
			return t, nil
		case r.End == off:
			left = t
		case r.Start == off:
			return left, t
		case r.Start > off:
			return left, nil
		}
	}
	return left, nil
}

// CoveringElement returns the deepest element whose range contains r.
func (n *Node) CoveringElement(r source.TextRange) Element {
	var cur Element = n
	for {
		node, ok := cur.(*Node)
		if !ok {
			return cur
		}
		var next Element
		for _, c := range node.ChildrenWithTokens() {
			cr := c.Range()
			if cr.ContainsRange(r) && !(cr.Empty() && !r.Empty()) {
				next = c
				break
			}
		}
		if next == nil {
			return cur
		}
		cur = next
	}
}

func (t *Token) Green() *GreenToken { return t.green }
func (t *Token) Kind() token.Kind   { return t.green.kind }
func (t *Token) Text() string       { return t.green.text }
func (t *Token) Parent() *Node      { return t.parent }

func (t *Token) Range() source.TextRange {
	return source.TextRange{Start: t.offset, End: t.offset + t.green.Width()}
}

// NextToken returns the following token in the tree, crossing node boundaries.
func (t *Token) NextToken() *Token {
	var cur Element = t
	for {
		parent := cur.Parent()
		if parent == nil {
			return nil
		}
		children := parent.ChildrenWithTokens()
		for _, s := range children[elementIndex(cur)+1:] {
			switch s := s.(type) {
			case *Token:
				return s
			case *Node:
				if ft := s.FirstToken(); ft != nil {
					return ft
				}
			}
		}
		cur = parent
	}
}

// PrevToken returns the preceding token in the tree.
func (t *Token) PrevToken() *Token {
	var cur Element = t
	for {
		parent := cur.Parent()
		if parent == nil {
			return nil
		}
		children := parent.ChildrenWithTokens()
		for i := elementIndex(cur) - 1; i >= 0; i-- {
			switch s := children[i].(type) {
			case *Token:
				return s
			case *Node:
				if lt := s.LastToken(); lt != nil {
					return lt
				}
			}
		}
		cur = parent
	}
}

func elementIndex(e Element) int {
	switch e := e.(type) {
	case *Node:
		return e.index
	case *Token:
		return e.index
	}
	return 0
}

func hasKind(kinds []token.Kind, k token.Kind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}
