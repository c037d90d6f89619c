package ast

import (
	"strings"

	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

// Expr is any expression node.
type Expr interface {
	Node
	isExpr()
}

func (InfixExpr) isExpr()       {}
func (PrefixExpr) isExpr()      {}
func (Literal) isExpr()         {}
func (PathExpr) isExpr()        {}
func (ParenExpr) isExpr()       {}
func (FieldExpr) isExpr()       {}
func (FunctionCall) isExpr()    {}
func (IndexExpr) isExpr()       {}
func (TypeInitializer) isExpr() {}
func (BitcastExpr) isExpr()     {}

func CastExpr(n *syntax.Node) (Expr, bool) {
	if n == nil {
		return nil, false
	}
	b := base{n}
	switch n.Kind() {
	case token.InfixExpr:
		return InfixExpr{b}, true
	case token.PrefixExpr:
		return PrefixExpr{b}, true
	case token.Literal:
		return Literal{b}, true
	case token.PathExpr:
		return PathExpr{b}, true
	case token.ParenExpr:
		return ParenExpr{b}, true
	case token.FieldExpr:
		return FieldExpr{b}, true
	case token.FunctionCall:
		return FunctionCall{b}, true
	case token.IndexExpr:
		return IndexExpr{b}, true
	case token.TypeInitializer:
		return TypeInitializer{b}, true
	case token.BitcastExpr:
		return BitcastExpr{b}, true
	}
	return nil, false
}

type InfixExpr struct{ base }

func (x InfixExpr) Lhs() (Expr, bool) { return nthChild(x.n, 0, CastExpr) }
func (x InfixExpr) Rhs() (Expr, bool) { return nthChild(x.n, 1, CastExpr) }

// OpToken returns the operator token. Shifts are a two-token node; for
// those the first `<` or `>` is returned.
func (x InfixExpr) OpToken() *syntax.Token {
	if x.n == nil {
		return nil
	}
	for _, e := range x.n.ChildrenWithTokens() {
		switch e := e.(type) {
		case *syntax.Token:
			if e.Kind().IsPunct() {
				return e
			}
		case *syntax.Node:
			if e.Kind() == token.ShiftLeft || e.Kind() == token.ShiftRight {
				return e.FirstToken()
			}
		}
	}
	return nil
}

func (x InfixExpr) Op() (BinaryOp, bool) {
	if x.n == nil {
		return OpInvalid, false
	}
	for _, e := range x.n.ChildrenWithTokens() {
		var k token.Kind
		switch e := e.(type) {
		case *syntax.Token:
			k = e.Kind()
		case *syntax.Node:
			k = e.Kind()
		}
		if op := BinaryOpFromToken(k); op != OpInvalid {
			return op, true
		}
	}
	return OpInvalid, false
}

type PrefixExpr struct{ base }

func (x PrefixExpr) Operand() (Expr, bool) { return childOf(x.n, CastExpr) }

func (x PrefixExpr) Op() (UnaryOp, bool) {
	t := tokenOf(x.n, token.Minus, token.Bang, token.Tilde, token.And, token.Star)
	if t == nil {
		return UnInvalid, false
	}
	op := unaryOpFromToken(t.Kind())
	return op, op != UnInvalid
}

type Literal struct{ base }

func (x Literal) token() *syntax.Token {
	return tokenOf(x.n, token.IntLiteral, token.UintLiteral, token.DecimalFloatLiteral,
		token.HexFloatLiteral, token.KwTrue, token.KwFalse)
}

// Text returns the literal's source text without trivia.
func (x Literal) Text() string {
	if t := x.token(); t != nil {
		return t.Text()
	}
	return ""
}

func (x Literal) Kind() LiteralKind {
	t := x.token()
	if t == nil {
		return LitInvalid
	}
	switch t.Kind() {
	case token.IntLiteral:
		if strings.HasSuffix(t.Text(), "u") {
			return LitUint
		}
		return LitInt
	case token.UintLiteral:
		return LitUint
	case token.DecimalFloatLiteral, token.HexFloatLiteral:
		return LitFloat
	case token.KwTrue, token.KwFalse:
		return LitBool
	}
	return LitInvalid
}

type PathExpr struct{ base }

func (x PathExpr) NameRef() (NameRef, bool) { return childOf(x.n, CastNameRef) }

type ParenExpr struct{ base }

func (x ParenExpr) Inner() (Expr, bool) { return childOf(x.n, CastExpr) }

type FieldExpr struct{ base }

func (x FieldExpr) Base() (Expr, bool)     { return childOf(x.n, CastExpr) }
func (x FieldExpr) Field() (NameRef, bool) { return childOf(x.n, CastNameRef) }

// FunctionCall is `name(args)` or, for a non-name callee, `expr(args)`.
type FunctionCall struct{ base }

// NameRef returns the callee name when the call is by name.
func (x FunctionCall) NameRef() (NameRef, bool) { return childOf(x.n, CastNameRef) }

// Callee returns the callee expression of a postfix call.
func (x FunctionCall) Callee() (Expr, bool) { return childOf(x.n, CastExpr) }

func (x FunctionCall) Args() []Expr {
	return childrenOf(firstChild(x.n, token.FunctionParamList), CastExpr)
}

type IndexExpr struct{ base }

func (x IndexExpr) Base() (Expr, bool)  { return nthChild(x.n, 0, CastExpr) }
func (x IndexExpr) Index() (Expr, bool) { return nthChild(x.n, 1, CastExpr) }

// TypeInitializer is `vec3<f32>(...)` and friends.
type TypeInitializer struct{ base }

func (x TypeInitializer) Type() (Type, bool) { return childOf(x.n, CastType) }

func (x TypeInitializer) Args() []Expr {
	return childrenOf(firstChild(x.n, token.FunctionParamList), CastExpr)
}

type BitcastExpr struct{ base }

func (x BitcastExpr) Type() (Type, bool)       { return childOf(x.n, CastType) }
func (x BitcastExpr) Inner() (ParenExpr, bool) { return childOf(x.n, castParenExpr) }

func castParenExpr(n *syntax.Node) (ParenExpr, bool) {
	if !is(n, token.ParenExpr) {
		return ParenExpr{}, false
	}
	return ParenExpr{base{n}}, true
}
