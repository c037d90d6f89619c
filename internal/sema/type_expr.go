package sema

import (
	"strings"

	"shaderlens/internal/ast"
	"shaderlens/internal/diag"
	"shaderlens/internal/hir"
	"shaderlens/internal/symbols"
	"shaderlens/internal/types"
)

// typeExpr infers the type of an expression and records it. References
// are recorded as such; valueOf applies the load rule.
func (tc *typeChecker) typeExpr(id hir.ExprID) types.Type {
	if ty, ok := tc.result.ExprTypes[id]; ok {
		return ty
	}
	expr := tc.body.Expr(id)
	if expr == nil {
		return types.Error
	}
	saved := tc.curExpr
	tc.curExpr = id
	defer func() { tc.curExpr = saved }()

	ty := types.Error
	switch expr.Kind {
	case hir.ExprLiteral:
		ty = literalType(expr.LitKind, expr.LitText)
	case hir.ExprLocal:
		if t, ok := tc.result.BindingTypes[expr.Binding]; ok {
			ty = t
		}
	case hir.ExprPath:
		ty = tc.typePath(id, expr.Name)
	case hir.ExprParen:
		ty = tc.typeExpr(expr.Lhs)
	case hir.ExprUnary:
		ty = tc.typeUnary(id, expr)
	case hir.ExprBinary:
		ty = tc.typeBinary(id, expr)
	case hir.ExprField:
		ty = tc.typeField(id, expr)
	case hir.ExprIndex:
		ty = tc.typeIndex(id, expr)
	case hir.ExprCall:
		ty = tc.typeCall(id, expr)
	case hir.ExprCallExpr:
		callee := tc.typeExpr(expr.Callee)
		tc.typeArgs(expr.Args)
		if !tc.in.IsError(callee) {
			tc.reportExpr(diag.SemaInvalidCallType, expr.Callee, "expression of type `%s` cannot be called", tc.display(callee))
		}
	case hir.ExprTypeInit:
		ty = tc.typeTypeInit(id, expr)
	case hir.ExprBitcast:
		ty = tc.typeBitcast(id, expr)
	}
	tc.result.ExprTypes[id] = ty
	return ty
}

// valueOf is the type of expr after the load rule.
func (tc *typeChecker) valueOf(id hir.ExprID) types.Type {
	return tc.in.Unref(tc.typeExpr(id))
}

func (tc *typeChecker) typeArgs(args []hir.ExprID) []types.Type {
	out := make([]types.Type, len(args))
	for i, a := range args {
		out[i] = tc.valueOf(a)
	}
	return out
}

func (tc *typeChecker) anyError(ts []types.Type) bool {
	for _, t := range ts {
		if tc.in.IsError(t) {
			return true
		}
	}
	return false
}

// literalType reads the suffix of a numeric literal. Unsuffixed literals
// are abstract.
func literalType(kind ast.LiteralKind, text string) types.Type {
	switch kind {
	case ast.LitBool:
		return types.Bool
	case ast.LitUint:
		return types.U32
	case ast.LitInt:
		switch {
		case strings.HasSuffix(text, "i"):
			return types.I32
		case strings.HasSuffix(text, "u"):
			return types.U32
		}
		return types.AbstractInt
	case ast.LitFloat:
		hex := strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X")
		// a trailing f in a hex float is a digit unless an exponent came first
		if hex && !strings.ContainsAny(text, "pP") {
			return types.AbstractFloat
		}
		switch {
		case strings.HasSuffix(text, "f"):
			return types.F32
		case strings.HasSuffix(text, "h"):
			return types.F16
		}
		return types.AbstractFloat
	}
	return types.Error
}

func (tc *typeChecker) typePath(id hir.ExprID, name hir.Name) types.Type {
	res := tc.resolver.ResolveValue(name)
	switch res.Kind {
	case symbols.ResolvedDef:
		loc := res.Def.Loc
		switch res.Def.Kind {
		case symbols.DefGlobalVariable:
			if tc.def.Kind != hir.ItemFunction {
				// module-scope initializers are const or override expressions
				tc.reportExpr(diag.SemaTypeMismatch, id, "variable `%s` cannot be used in a module-scope initializer", name)
				return types.Error
			}
			if gt := tc.db.GlobalVariableType(loc); gt != nil {
				return gt.Type
			}
		case symbols.DefGlobalConstant, symbols.DefOverride:
			t, cyclic := tc.globalValueType(loc)
			if cyclic {
				tc.cyclic = true
				tc.reportExpr(diag.SemaCyclicType, id, "the value of `%s` depends on itself", name)
			}
			return t
		case symbols.DefFunction:
			if sig := tc.db.FunctionType(loc); sig != nil {
				return sig.Type
			}
		}
		return types.Error
	case symbols.ResolvedBuiltin:
		tc.reportExpr(diag.SemaInvalidCallType, id, "builtin function `%s` must be called", name)
		return types.Error
	}
	if _, ok := tc.resolver.ResolveType(name); ok {
		tc.reportExpr(diag.SemaTypeMismatch, id, "type `%s` cannot be used as a value", name)
		return types.Error
	}
	if _, ok := tc.in.Predeclared(string(name)); ok {
		tc.reportExpr(diag.SemaTypeMismatch, id, "type `%s` cannot be used as a value", name)
		return types.Error
	}
	tc.unresolved(id, name)
	return types.Error
}

func (tc *typeChecker) unresolved(id hir.ExprID, name hir.Name) {
	d := Diagnostic{Code: diag.SemaUnresolvedName, Expr: id, Name: name}
	d.Message = "unresolved name `" + string(name) + "`"
	if s := tc.resolver.Suggest(name); len(s) > 0 {
		d.Message += "; did you mean `" + string(s[0]) + "`?"
		d.Suggestion = s[0]
	}
	tc.report(d)
}

// place splits a reference or pointer into its store type and its memory
// view. ok is false for plain values.
type place struct {
	inner  types.Type
	space  types.AddressSpace
	access types.AccessMode
	ok     bool
}

func (tc *typeChecker) placeOf(t types.Type) place {
	k := tc.in.Kind(t)
	if k.Kind == types.KindReference || k.Kind == types.KindPointer {
		return place{inner: k.Inner, space: k.Space, access: k.Access, ok: true}
	}
	return place{inner: t}
}

// wrap gives a component of p the same memory view.
func (tc *typeChecker) wrap(p place, t types.Type) types.Type {
	if !p.ok {
		return t
	}
	return tc.in.Ref(t, p.space, p.access)
}

func (tc *typeChecker) typeField(id hir.ExprID, e *hir.Expr) types.Type {
	base := tc.typeExpr(e.Lhs)
	if tc.in.IsError(base) {
		return types.Error
	}
	p := tc.placeOf(base)
	k := tc.in.Kind(p.inner)
	switch k.Kind {
	case types.KindStruct:
		key, _ := tc.in.StructKey(p.inner)
		loc, _ := key.(hir.ItemLoc)
		sd := tc.db.StructData(loc)
		if sd == nil {
			return types.Error
		}
		idx, ok := sd.Field(e.Name)
		if !ok {
			tc.reportExpr(diag.SemaNoSuchField, id, "no field `%s` on type `%s`", e.Name, sd.Name)
			return types.Error
		}
		tc.result.FieldResolutions[id] = FieldResolution{Struct: loc, Index: idx}
		ft := types.Error
		if fts := tc.db.FieldTypes(loc); fts != nil && idx < len(fts.Types) {
			ft = fts.Types[idx]
		}
		return tc.wrap(p, ft)
	case types.KindVector:
		n, ok := swizzle(string(e.Name), k.Size)
		if !ok {
			tc.reportExpr(diag.SemaNoSuchField, id, "invalid swizzle `%s` on type `%s`", e.Name, tc.display(p.inner))
			return types.Error
		}
		tc.result.FieldResolutions[id] = FieldResolution{Index: -1}
		if n == 1 {
			return tc.wrap(p, k.Inner)
		}
		return tc.in.Vector(n, k.Inner)
	}
	tc.reportExpr(diag.SemaNoSuchField, id, "no field `%s` on type `%s`", e.Name, tc.display(p.inner))
	return types.Error
}

// swizzle validates a component selector against a vector of size n and
// returns the number of components it picks.
func swizzle(s string, size uint8) (uint8, bool) {
	if len(s) == 0 || len(s) > 4 {
		return 0, false
	}
	var set string
	switch {
	case strings.ContainsRune("xyzw", rune(s[0])):
		set = "xyzw"
	case strings.ContainsRune("rgba", rune(s[0])):
		set = "rgba"
	default:
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(set, s[i])
		if idx < 0 || idx >= int(size) {
			return 0, false
		}
	}
	return uint8(len(s)), true
}

func (tc *typeChecker) typeIndex(id hir.ExprID, e *hir.Expr) types.Type {
	base := tc.typeExpr(e.Lhs)
	idx := tc.valueOf(e.Rhs)
	if !tc.in.IsError(idx) {
		if k := tc.in.Kind(idx); k.Kind != types.KindScalar || !k.Scalar.IsInteger() {
			tc.reportExpr(diag.SemaTypeMismatch, e.Rhs, "index must be i32 or u32, found `%s`", tc.display(idx))
		}
	}
	if tc.in.IsError(base) {
		return types.Error
	}
	p := tc.placeOf(base)
	k := tc.in.Kind(p.inner)
	switch k.Kind {
	case types.KindVector, types.KindArray:
		return tc.wrap(p, k.Inner)
	case types.KindMatrix:
		return tc.wrap(p, tc.in.Vector(k.Rows, k.Inner))
	}
	tc.reportExpr(diag.SemaArrayAccessInvalidType, id, "cannot index into a value of type `%s`", tc.display(p.inner))
	return types.Error
}
