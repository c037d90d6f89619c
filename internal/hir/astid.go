package hir

import (
	"slices"

	"shaderlens/internal/ast"
	"shaderlens/internal/syntax"
)

// AstID is the 1-based position of an item among the file's items.
type AstID uint32

const NoAstID AstID = 0

// AstIdMap maps item nodes to stable ids and back.
type AstIdMap struct {
	ptrs Arena[syntax.NodePtr]
}

// NewAstIdMap walks the direct item children of a source file.
func NewAstIdMap(root *syntax.Node) *AstIdMap {
	m := &AstIdMap{}
	if root == nil {
		return m
	}
	for _, c := range root.Children() {
		if _, ok := ast.CastItem(c); ok {
			m.ptrs.Alloc(syntax.NewNodePtr(c))
		}
	}
	return m
}

// AstID finds the id of an item node.
func (m *AstIdMap) AstID(n *syntax.Node) (AstID, bool) {
	ptr := syntax.NewNodePtr(n)
	for i, p := range m.ptrs.All() {
		if p == ptr {
			return AstID(i + 1), true
		}
	}
	return NoAstID, false
}

// Get returns the pointer for id; the zero NodePtr when id is unknown.
func (m *AstIdMap) Get(id AstID) syntax.NodePtr {
	if p := m.ptrs.Get(uint32(id)); p != nil {
		return *p
	}
	return syntax.NodePtr{}
}

// Node resolves id inside root.
func (m *AstIdMap) Node(root *syntax.Node, id AstID) (*syntax.Node, bool) {
	p := m.ptrs.Get(uint32(id))
	if p == nil {
		return nil, false
	}
	return p.ToNode(root)
}

func (m *AstIdMap) Len() int { return m.ptrs.Len() }

func (m *AstIdMap) Equal(o *AstIdMap) bool {
	if m == nil || o == nil {
		return m == o
	}
	return slices.Equal(m.ptrs.All(), o.ptrs.All())
}
