package sema

import (
	"fmt"

	"shaderlens/internal/ast"
	"shaderlens/internal/diag"
	"shaderlens/internal/hir"
)

// binaryChild returns the operand expr if it is an unparenthesized binary
// expression.
func binaryChild(body *hir.Body, id hir.ExprID) (*hir.Expr, bool) {
	e := body.Expr(id)
	if e == nil || e.Kind != hir.ExprBinary {
		return nil, false
	}
	return e, true
}

// ValidateShiftPrecedence requires parentheses around binary operands of
// `<<` and `>>`.
func ValidateShiftPrecedence(body *hir.Body, sink func(Diagnostic) bool) {
	for i := range body.Exprs.All() {
		e := &body.Exprs.All()[i]
		if e.Kind != hir.ExprBinary || !e.BinOp.IsShift() {
			continue
		}
		for _, side := range [2]hir.ExprID{e.Lhs, e.Rhs} {
			child, ok := binaryChild(body, side)
			if !ok {
				continue
			}
			if !sink(Diagnostic{
				Code:    diag.SemaBracesRequired,
				Expr:    side,
				Message: fmt.Sprintf("`%s` next to `%s` needs parentheses", child.BinOp, e.BinOp),
			}) {
				return
			}
		}
	}
}

// ValidatePrecedence reports operator mixes WGSL leaves without a defined
// precedence: different bitwise operators, `&&` with `||`, and chained
// comparisons.
func ValidatePrecedence(body *hir.Body, sink func(Diagnostic) bool) {
	for i := range body.Exprs.All() {
		id := hir.ExprID(i + 1)
		e := &body.Exprs.All()[i]
		if e.Kind != hir.ExprBinary {
			continue
		}
		for _, side := range [2]hir.ExprID{e.Lhs, e.Rhs} {
			child, ok := binaryChild(body, side)
			if !ok {
				continue
			}
			d, bad := precedenceProblem(e.BinOp, child.BinOp)
			if !bad {
				continue
			}
			d.Expr = id
			if !sink(d) {
				return
			}
			break
		}
	}
}

func precedenceProblem(parent, child ast.BinaryOp) (Diagnostic, bool) {
	switch {
	case parent.IsBitwise() && child.IsBitwise() && parent != child:
		return Diagnostic{
			Code:    diag.SemaMixedBitwiseOps,
			Message: fmt.Sprintf("mixing `%s` and `%s` needs parentheses", child, parent),
		}, true
	case parent.IsLogical() && child.IsLogical() && parent != child:
		return Diagnostic{
			Code:    diag.SemaMixedLogicalOps,
			Message: fmt.Sprintf("mixing `%s` and `%s` needs parentheses", child, parent),
		}, true
	case parent.IsComparison() && child.IsComparison():
		return Diagnostic{
			Code:    diag.SemaChainedComparison,
			Message: "comparisons cannot be chained; compare each pair and join them with `&&`",
		}, true
	}
	return Diagnostic{}, false
}
