package hir

import (
	"shaderlens/internal/ast"
	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

type (
	ExprID    uint32
	StmtID    uint32
	BindingID uint32
)

type ExprKind uint8

const (
	ExprMissing ExprKind = iota
	ExprLiteral
	// ExprLocal reads a binding resolved during lowering.
	ExprLocal
	// ExprPath is a name left for the resolver: a global, a function or a
	// builtin.
	ExprPath
	ExprBinary
	ExprUnary
	ExprParen
	ExprField
	ExprIndex
	// ExprCall calls a name: a user function, a builtin or a struct or
	// alias used as a constructor.
	ExprCall
	// ExprCallExpr calls something that is not a name.
	ExprCallExpr
	ExprTypeInit
	ExprBitcast
)

// Expr is one lowered expression. Which fields are meaningful depends on
// Kind.
type Expr struct {
	Kind ExprKind

	Lhs ExprID // binary lhs; unary, paren, field and index operand; bitcast operand
	Rhs ExprID // binary rhs; index

	BinOp ast.BinaryOp
	UnOp  ast.UnaryOp

	LitKind ast.LiteralKind
	LitText string

	// Name is the path, field or callee name.
	Name    Name
	Binding BindingID

	Callee ExprID
	Args   []ExprID
	Type   *TypeRef // type initializer or bitcast target
}

type StmtKind uint8

const (
	StmtMissing StmtKind = iota
	StmtCompound
	StmtVar
	StmtExpr
	StmtReturn
	StmtAssign
	StmtCompoundAssign
	StmtIncrDecr
	StmtIf
	StmtSwitch
	StmtLoop
	StmtContinuing
	StmtWhile
	StmtFor
	StmtBreak
	StmtBreakIf
	StmtContinue
	StmtDiscard
	StmtFallthrough
	StmtConstAssert
)

type SwitchCase struct {
	Selectors []ExprID
	Default   bool
	Body      StmtID
}

// Stmt is one lowered statement.
type Stmt struct {
	Kind StmtKind

	// Var
	Binding      BindingID
	DeclKind     token.Kind // KwVar, KwLet or KwConst
	Type         *TypeRef
	AddressSpace string
	AccessMode   string

	// Expr is the initializer, expression statement, return value,
	// condition, assignment value or switch scrutinee.
	Expr ExprID
	// Target is the assignment or increment target.
	Target ExprID
	Op     ast.BinaryOp
	Incr   bool

	Stmts []StmtID // compound
	Then  StmtID   // if, while, loop, for, continuing body
	Else  StmtID   // if: another if, or a compound

	Cases []SwitchCase

	ForInit StmtID
	ForCont StmtID
}

type BindingKind uint8

const (
	BindingParam BindingKind = iota
	BindingVar
	BindingLet
	BindingConst
)

type Binding struct {
	Name Name
	Kind BindingKind
}

// Body is the expression store of one function or global initializer.
type Body struct {
	Exprs    Arena[Expr]
	Stmts    Arena[Stmt]
	Bindings Arena[Binding]
	Params   []BindingID
	// Root is the function block; NoStmt for initializers.
	Root StmtID
	// Init is the initializer of a global; NoExpr for functions.
	Init ExprID
}

const (
	NoExpr    ExprID    = 0
	NoStmt    StmtID    = 0
	NoBinding BindingID = 0
)

func (b *Body) Expr(id ExprID) *Expr          { return b.Exprs.Get(uint32(id)) }
func (b *Body) Stmt(id StmtID) *Stmt          { return b.Stmts.Get(uint32(id)) }
func (b *Body) Binding(id BindingID) *Binding { return b.Bindings.Get(uint32(id)) }

// WalkExprs calls fn for every expression id in allocation order.
func (b *Body) WalkExprs(fn func(ExprID, *Expr)) {
	for i := range b.Exprs.All() {
		fn(ExprID(i+1), &b.Exprs.All()[i])
	}
}

// BodySourceMap links body ids to syntax.
type BodySourceMap struct {
	ExprPtrs    map[ExprID]syntax.NodePtr
	StmtPtrs    map[StmtID]syntax.NodePtr
	BindingPtrs map[BindingID]syntax.NodePtr

	exprByPtr map[syntax.NodePtr]ExprID
}

func newBodySourceMap() *BodySourceMap {
	return &BodySourceMap{
		ExprPtrs:    make(map[ExprID]syntax.NodePtr),
		StmtPtrs:    make(map[StmtID]syntax.NodePtr),
		BindingPtrs: make(map[BindingID]syntax.NodePtr),
		exprByPtr:   make(map[syntax.NodePtr]ExprID),
	}
}

func (m *BodySourceMap) ExprSyntax(id ExprID) (syntax.NodePtr, bool) {
	p, ok := m.ExprPtrs[id]
	return p, ok
}

func (m *BodySourceMap) StmtSyntax(id StmtID) (syntax.NodePtr, bool) {
	p, ok := m.StmtPtrs[id]
	return p, ok
}

func (m *BodySourceMap) BindingSyntax(id BindingID) (syntax.NodePtr, bool) {
	p, ok := m.BindingPtrs[id]
	return p, ok
}

// ExprForSyntax maps an expression node back to its id.
func (m *BodySourceMap) ExprForSyntax(n *syntax.Node) (ExprID, bool) {
	id, ok := m.exprByPtr[syntax.NewNodePtr(n)]
	return id, ok
}
