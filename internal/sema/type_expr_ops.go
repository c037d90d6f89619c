package sema

import (
	"shaderlens/internal/ast"
	"shaderlens/internal/diag"
	"shaderlens/internal/hir"
	"shaderlens/internal/types"
)

func binaryBuiltin(op ast.BinaryOp) string {
	switch {
	case op.IsLogical():
		return types.OpAndOr
	case op.IsBitwise():
		return types.OpBitop
	case op.IsShift():
		return types.OpShift
	case op == ast.OpEq || op == ast.OpNe:
		return types.OpEq
	case op.IsComparison():
		return types.OpCmp
	}
	switch op {
	case ast.OpAdd:
		return types.OpAdd
	case ast.OpSub:
		return types.OpSub
	case ast.OpMul:
		return types.OpMul
	case ast.OpDiv:
		return types.OpDiv
	case ast.OpRem:
		return types.OpRem
	}
	return ""
}

func unaryBuiltin(op ast.UnaryOp) string {
	switch op {
	case ast.UnNeg:
		return types.OpNeg
	case ast.UnNot:
		return types.OpNot
	case ast.UnBitNot:
		return types.OpBitnot
	}
	return ""
}

// resolveOperator resolves an operator overload and records it at id. A
// compound assignment passes NoExpr and is anchored at its statement.
// Errors in the operands are absorbed.
func (tc *typeChecker) resolveOperator(id hir.ExprID, name, spelling string, args []types.Type) types.Type {
	if name == "" || tc.anyError(args) {
		return types.Error
	}
	b, ok := types.Builtins().Lookup(name)
	if !ok {
		return types.Error
	}
	res, ok := b.Resolve(tc.in, args)
	if !ok {
		tc.report(Diagnostic{
			Code:    diag.SemaNoBuiltinOverload,
			Expr:    id,
			Stmt:    tc.curStmt,
			Args:    args,
			Message: "operator `" + spelling + "` cannot be applied to " + tc.displayList(args),
		})
		return types.Error
	}
	if id != hir.NoExpr {
		tc.result.CallResolutions[id] = CallResolution{Kind: CallOperator, Name: name, Overload: res.Overload}
	}
	return res.Return
}

func (tc *typeChecker) typeBinary(id hir.ExprID, e *hir.Expr) types.Type {
	lhs := tc.valueOf(e.Lhs)
	rhs := tc.valueOf(e.Rhs)
	return tc.resolveOperator(id, binaryBuiltin(e.BinOp), e.BinOp.String(), []types.Type{lhs, rhs})
}

func (tc *typeChecker) typeUnary(id hir.ExprID, e *hir.Expr) types.Type {
	switch e.UnOp {
	case ast.UnAddrOf:
		t := tc.typeExpr(e.Lhs)
		if tc.in.IsError(t) {
			return types.Error
		}
		k := tc.in.Kind(t)
		if k.Kind != types.KindReference {
			tc.reportExpr(diag.SemaAddressOfNotReference, id, "cannot take the address of a value of type `%s`", tc.display(t))
			return types.Error
		}
		if k.Space == types.SpaceHandle {
			tc.reportExpr(diag.SemaAddressOfNotReference, id, "cannot take the address of a handle")
			return types.Error
		}
		return tc.in.Ptr(k.Inner, k.Space, k.Access)
	case ast.UnDeref:
		t := tc.valueOf(e.Lhs)
		if tc.in.IsError(t) {
			return types.Error
		}
		k := tc.in.Kind(t)
		if k.Kind != types.KindPointer {
			tc.reportExpr(diag.SemaDerefNotAPointer, id, "cannot dereference a value of type `%s`", tc.display(t))
			return types.Error
		}
		return tc.in.Ref(k.Inner, k.Space, k.Access)
	}
	operand := tc.valueOf(e.Lhs)
	return tc.resolveOperator(id, unaryBuiltin(e.UnOp), e.UnOp.String(), []types.Type{operand})
}
