package sema

import (
	"shaderlens/internal/diag"
	"shaderlens/internal/hir"
	"shaderlens/internal/token"
	"shaderlens/internal/types"
)

func (tc *typeChecker) checkStmt(id hir.StmtID) {
	s := tc.body.Stmt(id)
	if s == nil {
		return
	}
	saved := tc.curStmt
	tc.curStmt = id
	defer func() { tc.curStmt = saved }()

	switch s.Kind {
	case hir.StmtCompound:
		for _, st := range s.Stmts {
			tc.checkStmt(st)
		}
	case hir.StmtVar:
		tc.checkVar(id, s)
	case hir.StmtExpr:
		tc.typeExpr(s.Expr)
	case hir.StmtReturn:
		tc.checkReturn(id, s)
	case hir.StmtAssign:
		tc.checkAssign(s)
	case hir.StmtCompoundAssign:
		tc.checkCompoundAssign(s)
	case hir.StmtIncrDecr:
		target, ok := tc.assignTarget(s.Target)
		if ok {
			if k := tc.in.Kind(target); k.Kind != types.KindScalar || (k.Scalar != types.ScalarI32 && k.Scalar != types.ScalarU32) {
				tc.reportExpr(diag.SemaTypeMismatch, s.Target, "increment and decrement need an i32 or u32, found `%s`", tc.display(target))
			}
		}
	case hir.StmtIf:
		tc.expectBool(s.Expr)
		tc.checkStmt(s.Then)
		tc.checkStmt(s.Else)
	case hir.StmtWhile:
		tc.expectBool(s.Expr)
		tc.checkStmt(s.Then)
	case hir.StmtFor:
		tc.checkStmt(s.ForInit)
		if s.Expr != hir.NoExpr {
			tc.expectBool(s.Expr)
		}
		tc.checkStmt(s.ForCont)
		tc.checkStmt(s.Then)
	case hir.StmtLoop, hir.StmtContinuing:
		tc.checkStmt(s.Then)
	case hir.StmtBreakIf, hir.StmtConstAssert:
		tc.expectBool(s.Expr)
	case hir.StmtSwitch:
		tc.checkSwitch(s)
	}
}

func (tc *typeChecker) expectBool(expr hir.ExprID) {
	t := tc.valueOf(expr)
	if tc.in.IsError(t) || t == types.Bool {
		return
	}
	tc.mismatch(expr, types.Bool, t)
}

func (tc *typeChecker) checkVar(id hir.StmtID, s *hir.Stmt) {
	declared := types.NoType
	if s.Type != nil {
		declared = tc.lowerType(s.Type)
	}
	init := types.NoType
	if s.Expr != hir.NoExpr {
		init = tc.valueOf(s.Expr)
		if declared != types.NoType {
			tc.expectConvertible(s.Expr, init, declared)
		}
	}
	ty := declared
	if ty == types.NoType {
		ty = init
		if s.DeclKind != token.KwConst {
			ty = tc.in.Concretize(ty)
		}
	}
	if ty == types.NoType {
		ty = types.Error
	}
	if s.DeclKind == token.KwVar {
		ty = tc.localVarType(id, s, ty)
	}
	tc.result.BindingTypes[s.Binding] = ty
}

// localVarType is the reference type a function-scope var evaluates to.
func (tc *typeChecker) localVarType(id hir.StmtID, s *hir.Stmt, store types.Type) types.Type {
	space := types.SpaceFunction
	if s.AddressSpace != "" {
		sp, ok := types.ParseAddressSpace(s.AddressSpace)
		if !ok || sp != types.SpaceFunction {
			tc.report(Diagnostic{
				Code:    diag.SemaStorageClassError,
				Stmt:    id,
				Storage: StorageScope,
				Message: "variables inside a function must use the `function` address space, found `" + s.AddressSpace + "`",
			})
		}
	}
	if !tc.in.IsError(store) && !tc.in.IsConstructable(store, tc.fields()) {
		tc.report(Diagnostic{
			Code:    diag.SemaStorageClassError,
			Stmt:    id,
			Storage: StorageNotConstructable,
			Message: "type `" + tc.display(store) + "` cannot be stored in a function variable",
		})
	}
	return tc.in.Ref(store, space, space.DefaultAccess())
}

func (tc *typeChecker) checkReturn(id hir.StmtID, s *hir.Stmt) {
	if s.Expr == hir.NoExpr {
		if tc.returnType != types.NoType && !tc.in.IsError(tc.returnType) {
			tc.reportStmt(diag.SemaMissingReturnValue, id, "missing return value of type `%s`", tc.display(tc.returnType))
		}
		return
	}
	value := tc.valueOf(s.Expr)
	if tc.returnType == types.NoType {
		if !tc.in.IsError(value) {
			tc.reportExpr(diag.SemaTypeMismatch, s.Expr, "function has no return type but returns `%s`", tc.display(value))
		}
		return
	}
	tc.expectConvertible(s.Expr, value, tc.returnType)
}

// assignTarget types the left side of an assignment and returns the store
// type behind the reference.
func (tc *typeChecker) assignTarget(target hir.ExprID) (types.Type, bool) {
	t := tc.typeExpr(target)
	if tc.in.IsError(t) {
		return types.Error, false
	}
	k := tc.in.Kind(t)
	if k.Kind != types.KindReference {
		tc.reportExpr(diag.SemaAssignmentNotAReference, target, "cannot assign to a value of type `%s`", tc.display(t))
		return types.Error, false
	}
	if !k.Access.CanWrite() {
		tc.reportExpr(diag.SemaAssignmentNotAReference, target, "cannot assign through a %s reference", k.Access)
		return types.Error, false
	}
	return k.Inner, true
}

func (tc *typeChecker) checkAssign(s *hir.Stmt) {
	// `_ = expr` evaluates and discards
	if e := tc.body.Expr(s.Target); e != nil && e.Kind == hir.ExprPath && e.Name == "_" {
		tc.result.ExprTypes[s.Target] = types.NoType
		tc.typeExpr(s.Expr)
		return
	}
	target, ok := tc.assignTarget(s.Target)
	value := tc.valueOf(s.Expr)
	if ok {
		tc.expectConvertible(s.Expr, value, target)
	}
}

func (tc *typeChecker) checkCompoundAssign(s *hir.Stmt) {
	target, ok := tc.assignTarget(s.Target)
	value := tc.valueOf(s.Expr)
	if !ok {
		return
	}
	result := tc.resolveOperator(hir.NoExpr, binaryBuiltin(s.Op), s.Op.String()+"=", []types.Type{target, value})
	tc.expectConvertible(s.Expr, result, target)
}

func (tc *typeChecker) checkSwitch(s *hir.Stmt) {
	scrutinee := tc.valueOf(s.Expr)
	valid := true
	if !tc.in.IsError(scrutinee) {
		if k := tc.in.Kind(scrutinee); k.Kind != types.KindScalar || !k.Scalar.IsInteger() {
			tc.reportExpr(diag.SemaTypeMismatch, s.Expr, "switch selector must be i32 or u32, found `%s`", tc.display(scrutinee))
			valid = false
		}
	}
	for _, c := range s.Cases {
		for _, sel := range c.Selectors {
			t := tc.valueOf(sel)
			if !valid || tc.in.IsError(scrutinee) || tc.in.IsError(t) {
				continue
			}
			if _, ok := tc.in.Join(t, scrutinee); !ok {
				tc.mismatch(sel, scrutinee, t)
			}
		}
		tc.checkStmt(c.Body)
	}
}
