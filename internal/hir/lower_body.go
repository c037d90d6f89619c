package hir

import (
	"shaderlens/internal/ast"
	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

type bodyLowerer struct {
	body   *Body
	srcMap *BodySourceMap
	scopes []map[Name]BindingID
}

func newBodyLowerer() *bodyLowerer {
	return &bodyLowerer{body: &Body{}, srcMap: newBodySourceMap()}
}

// LowerFunctionBody lowers parameters and the block of fn.
func LowerFunctionBody(fn ast.Function) (*Body, *BodySourceMap) {
	l := newBodyLowerer()
	l.push()
	for _, p := range fn.Params() {
		n, _ := p.Name()
		id := l.bind(nameOrMissing(n.Text()), BindingParam, p.Syntax())
		l.body.Params = append(l.body.Params, id)
	}
	if block, ok := fn.Body(); ok {
		l.body.Root = l.compound(block)
	}
	l.pop()
	return l.body, l.srcMap
}

// LowerInitializer lowers the initializer expression of a global. A missing
// initializer yields a body with Init == NoExpr.
func LowerInitializer(init ast.Expr, ok bool) (*Body, *BodySourceMap) {
	l := newBodyLowerer()
	if ok {
		l.body.Init = l.expr(init)
	}
	return l.body, l.srcMap
}

func (l *bodyLowerer) push() { l.scopes = append(l.scopes, map[Name]BindingID{}) }
func (l *bodyLowerer) pop()  { l.scopes = l.scopes[:len(l.scopes)-1] }

func (l *bodyLowerer) bind(name Name, kind BindingKind, n *syntax.Node) BindingID {
	id := BindingID(l.body.Bindings.Alloc(Binding{Name: name, Kind: kind}))
	if n != nil {
		l.srcMap.BindingPtrs[id] = syntax.NewNodePtr(n)
	}
	if len(l.scopes) > 0 && !name.IsMissing() {
		l.scopes[len(l.scopes)-1][name] = id
	}
	return id
}

func (l *bodyLowerer) lookup(name Name) (BindingID, bool) {
	for i := len(l.scopes) - 1; i >= 0; i-- {
		if id, ok := l.scopes[i][name]; ok {
			return id, true
		}
	}
	return NoBinding, false
}

func (l *bodyLowerer) allocExpr(e Expr, n *syntax.Node) ExprID {
	id := ExprID(l.body.Exprs.Alloc(e))
	if n != nil {
		ptr := syntax.NewNodePtr(n)
		l.srcMap.ExprPtrs[id] = ptr
		l.srcMap.exprByPtr[ptr] = id
	}
	return id
}

func (l *bodyLowerer) allocStmt(s Stmt, n *syntax.Node) StmtID {
	id := StmtID(l.body.Stmts.Alloc(s))
	if n != nil {
		l.srcMap.StmtPtrs[id] = syntax.NewNodePtr(n)
	}
	return id
}

func (l *bodyLowerer) missingExpr() ExprID {
	return ExprID(l.body.Exprs.Alloc(Expr{Kind: ExprMissing}))
}

func (l *bodyLowerer) optExpr(e ast.Expr, ok bool) ExprID {
	if !ok {
		return l.missingExpr()
	}
	return l.expr(e)
}

func (l *bodyLowerer) compound(block ast.CompoundStatement) StmtID {
	l.push()
	s := Stmt{Kind: StmtCompound}
	for _, st := range block.Statements() {
		s.Stmts = append(s.Stmts, l.stmt(st))
	}
	l.pop()
	return l.allocStmt(s, block.Syntax())
}

func (l *bodyLowerer) optCompound(block ast.CompoundStatement, ok bool) StmtID {
	if !ok {
		return l.allocStmt(Stmt{Kind: StmtMissing}, nil)
	}
	return l.compound(block)
}

func (l *bodyLowerer) optStmt(st ast.Stmt, ok bool) StmtID {
	if !ok {
		return NoStmt
	}
	return l.stmt(st)
}

func (l *bodyLowerer) stmt(st ast.Stmt) StmtID {
	n := st.Syntax()
	switch s := st.(type) {
	case ast.CompoundStatement:
		return l.compound(s)
	case ast.VariableStatement:
		out := Stmt{Kind: StmtVar, DeclKind: s.Keyword(), Type: LowerTypeRef(s.Type())}
		if q, ok := s.Qualifier(); ok {
			if t := q.AddressSpace(); t != nil {
				out.AddressSpace = t.Text()
			}
			if t := q.AccessMode(); t != nil {
				out.AccessMode = t.Text()
			}
		}
		// the initializer cannot see the name it declares
		if init, ok := s.Init(); ok {
			out.Expr = l.expr(init)
		}
		name, _ := s.Name()
		kind := BindingVar
		switch out.DeclKind {
		case token.KwLet:
			kind = BindingLet
		case token.KwConst:
			kind = BindingConst
		}
		out.Binding = l.bind(nameOrMissing(name.Text()), kind, n)
		return l.allocStmt(out, n)
	case ast.ExprStatement:
		return l.allocStmt(Stmt{Kind: StmtExpr, Expr: l.optExpr(s.Expr())}, n)
	case ast.ReturnStmt:
		out := Stmt{Kind: StmtReturn}
		if e, ok := s.Expr(); ok {
			out.Expr = l.expr(e)
		}
		return l.allocStmt(out, n)
	case ast.AssignmentStmt:
		out := Stmt{Kind: StmtAssign, Target: l.optExpr(s.Lhs()), Expr: l.optExpr(s.Rhs())}
		return l.allocStmt(out, n)
	case ast.CompoundAssignmentStmt:
		op, _ := s.Op()
		out := Stmt{Kind: StmtCompoundAssign, Target: l.optExpr(s.Lhs()), Expr: l.optExpr(s.Rhs()), Op: op}
		return l.allocStmt(out, n)
	case ast.IncrDecrStatement:
		return l.allocStmt(Stmt{Kind: StmtIncrDecr, Target: l.optExpr(s.Expr()), Incr: s.IsIncrement()}, n)
	case ast.IfStatement:
		return l.ifChain(s.Condition, s.Block, s.ElseIfs(), s.Else, n)
	case ast.SwitchStatement:
		out := Stmt{Kind: StmtSwitch, Expr: l.optExpr(s.Expr())}
		for _, c := range s.Cases() {
			sc := SwitchCase{Default: c.IsDefault()}
			for _, sel := range c.Selectors() {
				sc.Selectors = append(sc.Selectors, l.expr(sel))
			}
			sc.Body = l.optCompound(c.Block())
			out.Cases = append(out.Cases, sc)
		}
		return l.allocStmt(out, n)
	case ast.LoopStatement:
		return l.allocStmt(Stmt{Kind: StmtLoop, Then: l.optCompound(s.Block())}, n)
	case ast.ContinuingStatement:
		return l.allocStmt(Stmt{Kind: StmtContinuing, Then: l.optCompound(s.Block())}, n)
	case ast.WhileStatement:
		out := Stmt{Kind: StmtWhile, Expr: l.optExpr(s.Condition())}
		out.Then = l.optCompound(s.Block())
		return l.allocStmt(out, n)
	case ast.ForStatement:
		l.push()
		out := Stmt{Kind: StmtFor}
		out.ForInit = l.optStmt(s.Initializer())
		if c, ok := s.Condition(); ok {
			out.Expr = l.expr(c)
		}
		out.ForCont = l.optStmt(s.Continuing())
		out.Then = l.optCompound(s.Block())
		l.pop()
		return l.allocStmt(out, n)
	case ast.BreakStatement:
		return l.allocStmt(Stmt{Kind: StmtBreak}, n)
	case ast.BreakIfStatement:
		return l.allocStmt(Stmt{Kind: StmtBreakIf, Expr: l.optExpr(s.Condition())}, n)
	case ast.ContinueStatement:
		return l.allocStmt(Stmt{Kind: StmtContinue}, n)
	case ast.DiscardStatement:
		return l.allocStmt(Stmt{Kind: StmtDiscard}, n)
	case ast.FallthroughStatement:
		return l.allocStmt(Stmt{Kind: StmtFallthrough}, n)
	case ast.ConstAssert:
		return l.allocStmt(Stmt{Kind: StmtConstAssert, Expr: l.optExpr(s.Expr())}, n)
	}
	return l.allocStmt(Stmt{Kind: StmtMissing}, n)
}

// ifChain lowers `if c {} else if d {} else {}` into nested If statements
// linked through Else.
func (l *bodyLowerer) ifChain(
	cond func() (ast.Expr, bool),
	block func() (ast.CompoundStatement, bool),
	elseIfs []ast.ElseIfBlock,
	els func() (ast.ElseBlock, bool),
	n *syntax.Node,
) StmtID {
	out := Stmt{Kind: StmtIf, Expr: l.optExpr(cond())}
	out.Then = l.optCompound(block())
	if len(elseIfs) > 0 {
		next := elseIfs[0]
		out.Else = l.ifChain(next.Condition, next.Block, elseIfs[1:], els, next.Syntax())
	} else if e, ok := els(); ok {
		out.Else = l.optCompound(e.Block())
	}
	return l.allocStmt(out, n)
}

func (l *bodyLowerer) expr(e ast.Expr) ExprID {
	n := e.Syntax()
	switch x := e.(type) {
	case ast.Literal:
		return l.allocExpr(Expr{Kind: ExprLiteral, LitKind: x.Kind(), LitText: x.Text()}, n)
	case ast.PathExpr:
		ref, _ := x.NameRef()
		name := nameOrMissing(ref.Text())
		if id, ok := l.lookup(name); ok {
			return l.allocExpr(Expr{Kind: ExprLocal, Binding: id, Name: name}, n)
		}
		return l.allocExpr(Expr{Kind: ExprPath, Name: name}, n)
	case ast.InfixExpr:
		op, _ := x.Op()
		lhs := l.optExpr(x.Lhs())
		rhs := l.optExpr(x.Rhs())
		return l.allocExpr(Expr{Kind: ExprBinary, BinOp: op, Lhs: lhs, Rhs: rhs}, n)
	case ast.PrefixExpr:
		op, _ := x.Op()
		return l.allocExpr(Expr{Kind: ExprUnary, UnOp: op, Lhs: l.optExpr(x.Operand())}, n)
	case ast.ParenExpr:
		return l.allocExpr(Expr{Kind: ExprParen, Lhs: l.optExpr(x.Inner())}, n)
	case ast.FieldExpr:
		f, _ := x.Field()
		base := l.optExpr(x.Base())
		return l.allocExpr(Expr{Kind: ExprField, Lhs: base, Name: nameOrMissing(f.Text())}, n)
	case ast.IndexExpr:
		base := l.optExpr(x.Base())
		idx := l.optExpr(x.Index())
		return l.allocExpr(Expr{Kind: ExprIndex, Lhs: base, Rhs: idx}, n)
	case ast.FunctionCall:
		args := l.args(x.Args())
		if ref, ok := x.NameRef(); ok {
			return l.allocExpr(Expr{Kind: ExprCall, Name: nameOrMissing(ref.Text()), Args: args}, n)
		}
		callee := l.optExpr(x.Callee())
		return l.allocExpr(Expr{Kind: ExprCallExpr, Callee: callee, Args: args}, n)
	case ast.TypeInitializer:
		return l.allocExpr(Expr{Kind: ExprTypeInit, Type: LowerTypeRef(x.Type()), Args: l.args(x.Args())}, n)
	case ast.BitcastExpr:
		out := Expr{Kind: ExprBitcast, Type: LowerTypeRef(x.Type())}
		if p, ok := x.Inner(); ok {
			out.Lhs = l.optExpr(p.Inner())
		} else {
			out.Lhs = l.missingExpr()
		}
		return l.allocExpr(out, n)
	}
	return l.allocExpr(Expr{Kind: ExprMissing}, n)
}

func (l *bodyLowerer) args(args []ast.Expr) []ExprID {
	out := make([]ExprID, 0, len(args))
	for _, a := range args {
		out = append(out, l.expr(a))
	}
	return out
}
