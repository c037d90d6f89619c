// Package ast provides typed views over the untyped syntax tree.
//
// Every wrapper holds a *syntax.Node of a known kind. Accessors are
// optional: a missing child yields a zero value and false, or nil, and
// never panics, since the tree may come from broken input.
package ast

import (
	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

// Node is implemented by every typed wrapper.
type Node interface {
	Syntax() *syntax.Node
}

type base struct {
	n *syntax.Node
}

func (b base) Syntax() *syntax.Node { return b.n }

// Valid reports whether the wrapper holds a node.
func (b base) Valid() bool { return b.n != nil }

func is(n *syntax.Node, kind token.Kind) bool { return n != nil && n.Kind() == kind }

func childOf[T any](n *syntax.Node, cast func(*syntax.Node) (T, bool)) (T, bool) {
	var zero T
	if n == nil {
		return zero, false
	}
	for _, c := range n.Children() {
		if v, ok := cast(c); ok {
			return v, true
		}
	}
	return zero, false
}

func childrenOf[T any](n *syntax.Node, cast func(*syntax.Node) (T, bool)) []T {
	if n == nil {
		return nil
	}
	var out []T
	for _, c := range n.Children() {
		if v, ok := cast(c); ok {
			out = append(out, v)
		}
	}
	return out
}

func nthChild[T any](n *syntax.Node, idx int, cast func(*syntax.Node) (T, bool)) (T, bool) {
	var zero T
	if n == nil {
		return zero, false
	}
	i := 0
	for _, c := range n.Children() {
		if v, ok := cast(c); ok {
			if i == idx {
				return v, true
			}
			i++
		}
	}
	return zero, false
}

func firstChild(n *syntax.Node, kinds ...token.Kind) *syntax.Node {
	if n == nil {
		return nil
	}
	return n.FirstChildByKind(kinds...)
}

func tokenOf(n *syntax.Node, kinds ...token.Kind) *syntax.Token {
	if n == nil {
		return nil
	}
	return n.FirstTokenByKind(kinds...)
}

// Name is a declaring identifier.
type Name struct{ base }

func CastName(n *syntax.Node) (Name, bool) {
	if !is(n, token.Name) {
		return Name{}, false
	}
	return Name{base{n}}, true
}

// Text returns the identifier, or "" when it is missing.
func (x Name) Text() string {
	if t := tokenOf(x.n, token.Ident); t != nil {
		return t.Text()
	}
	return ""
}

// NameRef is a referencing identifier.
type NameRef struct{ base }

func CastNameRef(n *syntax.Node) (NameRef, bool) {
	if !is(n, token.NameRef) {
		return NameRef{}, false
	}
	return NameRef{base{n}}, true
}

func (x NameRef) Text() string {
	if t := tokenOf(x.n, token.Ident); t != nil {
		return t.Text()
	}
	return ""
}

// AttributeList is `@a @b(1)` or the legacy `[[a, b(1)]]`.
type AttributeList struct{ base }

func CastAttributeList(n *syntax.Node) (AttributeList, bool) {
	if !is(n, token.AttributeList) {
		return AttributeList{}, false
	}
	return AttributeList{base{n}}, true
}

func (x AttributeList) Attributes() []Attribute { return childrenOf(x.n, CastAttribute) }

// Has reports whether an attribute with the given name is present.
func (x AttributeList) Has(name string) bool {
	for _, a := range x.Attributes() {
		if a.Name() == name {
			return true
		}
	}
	return false
}

type Attribute struct{ base }

func CastAttribute(n *syntax.Node) (Attribute, bool) {
	if !is(n, token.Attribute) {
		return Attribute{}, false
	}
	return Attribute{base{n}}, true
}

func (x Attribute) Name() string {
	if t := tokenOf(x.n, token.Ident, token.KwConst); t != nil {
		return t.Text()
	}
	return ""
}

func (x Attribute) Params() []Expr {
	return childrenOf(firstChild(x.n, token.AttributeParameters), CastExpr)
}

// attributesOf finds the attribute list that is a direct child of n.
func attributesOf(n *syntax.Node) (AttributeList, bool) {
	return childOf(n, CastAttributeList)
}
