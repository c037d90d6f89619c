package ast

import (
	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

// Type is a type expression: a named PathType or a builtin keyword type.
type Type interface {
	Node
	isType()
}

func (PathType) isType()    {}
func (KeywordType) isType() {}

func CastType(n *syntax.Node) (Type, bool) {
	if n == nil {
		return nil, false
	}
	switch {
	case n.Kind() == token.PathType:
		return PathType{base{n}}, true
	case n.Kind().IsTypeKeyword():
		return KeywordType{base{n}}, true
	}
	return nil, false
}

type PathType struct{ base }

func (x PathType) NameRef() (NameRef, bool) { return childOf(x.n, CastNameRef) }

// KeywordType is `f32`, `vec3<f32>`, `array<T, 4>` and the other builtins.
// The node kind is the keyword's own kind.
type KeywordType struct{ base }

func (x KeywordType) Kind() token.Kind {
	if x.n == nil {
		return token.Error
	}
	return x.n.Kind()
}

func (x KeywordType) GenericArgs() (GenericArgList, bool) { return childOf(x.n, CastGenericArgList) }

type GenericArgList struct{ base }

func CastGenericArgList(n *syntax.Node) (GenericArgList, bool) {
	if !is(n, token.GenericArgList) {
		return GenericArgList{}, false
	}
	return GenericArgList{base{n}}, true
}

// GenericArg is one template argument. Exactly one field is set.
type GenericArg struct {
	Type  Type
	Expr  Expr
	Token *syntax.Token // address space or access mode
}

func (x GenericArgList) Args() []GenericArg {
	if x.n == nil {
		return nil
	}
	var out []GenericArg
	for _, e := range x.n.ChildrenWithTokens() {
		switch e := e.(type) {
		case *syntax.Node:
			if t, ok := CastType(e); ok {
				out = append(out, GenericArg{Type: t})
			} else if ex, ok := CastExpr(e); ok {
				out = append(out, GenericArg{Expr: ex})
			}
		case *syntax.Token:
			if e.Kind().IsKeyword() || e.Kind() == token.Ident {
				out = append(out, GenericArg{Token: e})
			}
		}
	}
	return out
}
