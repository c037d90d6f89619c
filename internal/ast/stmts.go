package ast

import (
	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

// Stmt is any statement node.
type Stmt interface {
	Node
	isStmt()
}

func (CompoundStatement) isStmt()      {}
func (VariableStatement) isStmt()      {}
func (ExprStatement) isStmt()          {}
func (ReturnStmt) isStmt()             {}
func (AssignmentStmt) isStmt()         {}
func (CompoundAssignmentStmt) isStmt() {}
func (IncrDecrStatement) isStmt()      {}
func (IfStatement) isStmt()            {}
func (SwitchStatement) isStmt()        {}
func (LoopStatement) isStmt()          {}
func (ContinuingStatement) isStmt()    {}
func (WhileStatement) isStmt()         {}
func (ForStatement) isStmt()           {}
func (BreakStatement) isStmt()         {}
func (BreakIfStatement) isStmt()       {}
func (ContinueStatement) isStmt()      {}
func (DiscardStatement) isStmt()       {}
func (FallthroughStatement) isStmt()   {}
func (ConstAssert) isStmt()            {}

func CastStmt(n *syntax.Node) (Stmt, bool) {
	if n == nil {
		return nil, false
	}
	b := base{n}
	switch n.Kind() {
	case token.CompoundStatement:
		return CompoundStatement{b}, true
	case token.VariableStatement:
		return VariableStatement{b}, true
	case token.ExprStatement:
		return ExprStatement{b}, true
	case token.ReturnStmt:
		return ReturnStmt{b}, true
	case token.AssignmentStmt:
		return AssignmentStmt{b}, true
	case token.CompoundAssignmentStmt:
		return CompoundAssignmentStmt{b}, true
	case token.IncrDecrStatement:
		return IncrDecrStatement{b}, true
	case token.IfStatement:
		return IfStatement{b}, true
	case token.SwitchStatement:
		return SwitchStatement{b}, true
	case token.LoopStatement:
		return LoopStatement{b}, true
	case token.ContinuingStatement:
		return ContinuingStatement{b}, true
	case token.WhileStatement:
		return WhileStatement{b}, true
	case token.ForStatement:
		return ForStatement{b}, true
	case token.BreakStatement:
		return BreakStatement{b}, true
	case token.BreakIfStatement:
		return BreakIfStatement{b}, true
	case token.ContinueStatement:
		return ContinueStatement{b}, true
	case token.DiscardStatement:
		return DiscardStatement{b}, true
	case token.FallthroughStatement:
		return FallthroughStatement{b}, true
	case token.ConstAssertStatement:
		return ConstAssert{b}, true
	}
	return nil, false
}

type CompoundStatement struct{ base }

func CastCompoundStatement(n *syntax.Node) (CompoundStatement, bool) {
	if !is(n, token.CompoundStatement) {
		return CompoundStatement{}, false
	}
	return CompoundStatement{base{n}}, true
}

func (x CompoundStatement) Statements() []Stmt { return childrenOf(x.n, CastStmt) }

// VariableStatement is a local `var`, `let` or `const`.
type VariableStatement struct{ base }

func (x VariableStatement) Name() (Name, bool)                   { return childOf(x.n, CastName) }
func (x VariableStatement) Qualifier() (VariableQualifier, bool) { return childOf(x.n, CastVariableQualifier) }
func (x VariableStatement) Type() (Type, bool)                   { return childOf(x.n, CastType) }
func (x VariableStatement) Init() (Expr, bool)                   { return childOf(x.n, CastExpr) }

// Keyword returns KwVar, KwLet or KwConst.
func (x VariableStatement) Keyword() token.Kind {
	if t := tokenOf(x.n, token.KwVar, token.KwLet, token.KwConst); t != nil {
		return t.Kind()
	}
	return token.Error
}

type ExprStatement struct{ base }

func (x ExprStatement) Expr() (Expr, bool) { return childOf(x.n, CastExpr) }

type ReturnStmt struct{ base }

func (x ReturnStmt) Expr() (Expr, bool) { return childOf(x.n, CastExpr) }

type AssignmentStmt struct{ base }

func (x AssignmentStmt) Lhs() (Expr, bool) { return nthChild(x.n, 0, CastExpr) }
func (x AssignmentStmt) Rhs() (Expr, bool) { return nthChild(x.n, 1, CastExpr) }

// IsPhony reports `_ = expr`.
func (x AssignmentStmt) IsPhony() bool {
	l, ok := x.Lhs()
	if !ok {
		return false
	}
	p, ok := l.(PathExpr)
	if !ok {
		return false
	}
	r, _ := p.NameRef()
	return r.Text() == "_"
}

type CompoundAssignmentStmt struct{ base }

func (x CompoundAssignmentStmt) Lhs() (Expr, bool) { return nthChild(x.n, 0, CastExpr) }
func (x CompoundAssignmentStmt) Rhs() (Expr, bool) { return nthChild(x.n, 1, CastExpr) }

func (x CompoundAssignmentStmt) Op() (BinaryOp, bool) {
	if x.n == nil {
		return OpInvalid, false
	}
	for _, e := range x.n.ChildrenWithTokens() {
		if t, ok := e.(*syntax.Token); ok && t.Kind().IsCompoundAssign() {
			return BinaryOpFromToken(t.Kind()), true
		}
	}
	return OpInvalid, false
}

type IncrDecrStatement struct{ base }

func (x IncrDecrStatement) Expr() (Expr, bool) { return childOf(x.n, CastExpr) }
func (x IncrDecrStatement) IsIncrement() bool  { return tokenOf(x.n, token.PlusPlus) != nil }

type IfStatement struct{ base }

func (x IfStatement) Condition() (Expr, bool)          { return childOf(x.n, CastExpr) }
func (x IfStatement) Block() (CompoundStatement, bool) { return childOf(x.n, CastCompoundStatement) }
func (x IfStatement) ElseIfs() []ElseIfBlock           { return childrenOf(x.n, castElseIfBlock) }
func (x IfStatement) Else() (ElseBlock, bool)          { return childOf(x.n, castElseBlock) }

type ElseIfBlock struct{ base }

func castElseIfBlock(n *syntax.Node) (ElseIfBlock, bool) {
	if !is(n, token.ElseIfBlock) {
		return ElseIfBlock{}, false
	}
	return ElseIfBlock{base{n}}, true
}

func (x ElseIfBlock) Condition() (Expr, bool)          { return childOf(x.n, CastExpr) }
func (x ElseIfBlock) Block() (CompoundStatement, bool) { return childOf(x.n, CastCompoundStatement) }

type ElseBlock struct{ base }

func castElseBlock(n *syntax.Node) (ElseBlock, bool) {
	if !is(n, token.ElseBlock) {
		return ElseBlock{}, false
	}
	return ElseBlock{base{n}}, true
}

func (x ElseBlock) Block() (CompoundStatement, bool) { return childOf(x.n, CastCompoundStatement) }

type SwitchStatement struct{ base }

func (x SwitchStatement) Expr() (Expr, bool) { return childOf(x.n, CastExpr) }

// Cases returns the case and default clauses in order.
func (x SwitchStatement) Cases() []SwitchCase {
	return childrenOf(firstChild(x.n, token.SwitchBlock), castSwitchCase)
}

// SwitchCase is a `case a, b: {}` or `default: {}` clause.
type SwitchCase struct{ base }

func castSwitchCase(n *syntax.Node) (SwitchCase, bool) {
	if !is(n, token.SwitchBodyCase) && !is(n, token.SwitchBodyDefault) {
		return SwitchCase{}, false
	}
	return SwitchCase{base{n}}, true
}

func (x SwitchCase) IsDefault() bool {
	if is(x.n, token.SwitchBodyDefault) {
		return true
	}
	return tokenOf(firstChild(x.n, token.SwitchCaseSelectors), token.KwDefault) != nil
}

func (x SwitchCase) Selectors() []Expr {
	return childrenOf(firstChild(x.n, token.SwitchCaseSelectors), CastExpr)
}

func (x SwitchCase) Block() (CompoundStatement, bool) { return childOf(x.n, CastCompoundStatement) }

type LoopStatement struct{ base }

func (x LoopStatement) Block() (CompoundStatement, bool) { return childOf(x.n, CastCompoundStatement) }

type ContinuingStatement struct{ base }

func (x ContinuingStatement) Block() (CompoundStatement, bool) {
	return childOf(x.n, CastCompoundStatement)
}

type WhileStatement struct{ base }

func (x WhileStatement) Condition() (Expr, bool)          { return childOf(x.n, CastExpr) }
func (x WhileStatement) Block() (CompoundStatement, bool) { return childOf(x.n, CastCompoundStatement) }

type ForStatement struct{ base }

func (x ForStatement) Initializer() (Stmt, bool) {
	return childOf(firstChild(x.n, token.ForInitializer), CastStmt)
}

func (x ForStatement) Condition() (Expr, bool) {
	return childOf(firstChild(x.n, token.ForCondition), CastExpr)
}

func (x ForStatement) Continuing() (Stmt, bool) {
	return childOf(firstChild(x.n, token.ForContinuingPart), CastStmt)
}

func (x ForStatement) Block() (CompoundStatement, bool) { return childOf(x.n, CastCompoundStatement) }

type BreakStatement struct{ base }

type BreakIfStatement struct{ base }

func (x BreakIfStatement) Condition() (Expr, bool) { return childOf(x.n, CastExpr) }

type ContinueStatement struct{ base }

type DiscardStatement struct{ base }

type FallthroughStatement struct{ base }
