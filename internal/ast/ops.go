package ast

import "shaderlens/internal/token"

// BinaryOp is an infix operator.
type BinaryOp uint8

const (
	OpInvalid BinaryOp = iota
	OpOrOr
	OpAndAnd
	OpBitOr
	OpBitXor
	OpBitAnd
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpShl
	OpShr
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
)

var binaryOpText = [...]string{
	OpInvalid: "?",
	OpOrOr:    "||",
	OpAndAnd:  "&&",
	OpBitOr:   "|",
	OpBitXor:  "^",
	OpBitAnd:  "&",
	OpEq:      "==",
	OpNe:      "!=",
	OpLt:      "<",
	OpLe:      "<=",
	OpGt:      ">",
	OpGe:      ">=",
	OpShl:     "<<",
	OpShr:     ">>",
	OpAdd:     "+",
	OpSub:     "-",
	OpMul:     "*",
	OpDiv:     "/",
	OpRem:     "%",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

func (op BinaryOp) IsShift() bool      { return op == OpShl || op == OpShr }
func (op BinaryOp) IsComparison() bool { return op >= OpEq && op <= OpGe }
func (op BinaryOp) IsBitwise() bool    { return op >= OpBitOr && op <= OpBitAnd }
func (op BinaryOp) IsLogical() bool    { return op == OpOrOr || op == OpAndAnd }
func (op BinaryOp) IsArithmetic() bool { return op >= OpAdd && op <= OpRem }

// BinaryOpFromToken maps an operator token (or shift node kind) to its op.
func BinaryOpFromToken(k token.Kind) BinaryOp {
	switch k {
	case token.OrOr:
		return OpOrOr
	case token.AndAnd:
		return OpAndAnd
	case token.Or, token.OrEqual:
		return OpBitOr
	case token.Xor, token.XorEqual:
		return OpBitXor
	case token.And, token.AndEqual:
		return OpBitAnd
	case token.EqualEqual:
		return OpEq
	case token.NotEqual:
		return OpNe
	case token.LessThan:
		return OpLt
	case token.LessThanEqual:
		return OpLe
	case token.GreaterThan:
		return OpGt
	case token.GreaterThanEqual:
		return OpGe
	case token.ShiftLeft, token.ShiftLeftEqual:
		return OpShl
	case token.ShiftRight, token.ShiftRightEqual:
		return OpShr
	case token.Plus, token.PlusEqual:
		return OpAdd
	case token.Minus, token.MinusEqual:
		return OpSub
	case token.Star, token.TimesEqual:
		return OpMul
	case token.ForwardSlash, token.DivisionEqual:
		return OpDiv
	case token.Modulo, token.ModuloEqual:
		return OpRem
	}
	return OpInvalid
}

// UnaryOp is a prefix operator.
type UnaryOp uint8

const (
	UnInvalid UnaryOp = iota
	UnNeg
	UnNot
	UnBitNot
	UnAddrOf
	UnDeref
)

func (op UnaryOp) String() string {
	switch op {
	case UnNeg:
		return "-"
	case UnNot:
		return "!"
	case UnBitNot:
		return "~"
	case UnAddrOf:
		return "&"
	case UnDeref:
		return "*"
	}
	return "?"
}

func unaryOpFromToken(k token.Kind) UnaryOp {
	switch k {
	case token.Minus:
		return UnNeg
	case token.Bang:
		return UnNot
	case token.Tilde:
		return UnBitNot
	case token.And:
		return UnAddrOf
	case token.Star:
		return UnDeref
	}
	return UnInvalid
}

// LiteralKind classifies a Literal node.
type LiteralKind uint8

const (
	LitInvalid LiteralKind = iota
	LitInt
	LitUint
	LitFloat
	LitBool
)

func (k LiteralKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitUint:
		return "uint"
	case LitFloat:
		return "float"
	case LitBool:
		return "bool"
	}
	return "invalid"
}
