package sema

import (
	"fmt"

	"fortio.org/safecast"

	"shaderlens/internal/diag"
	"shaderlens/internal/hir"
	"shaderlens/internal/symbols"
	"shaderlens/internal/token"
	"shaderlens/internal/types"
)

// typeCall handles `name(args)`: a struct or alias constructor, a
// predeclared type alias, a user function or a builtin.
func (tc *typeChecker) typeCall(id hir.ExprID, e *hir.Expr) types.Type {
	args := tc.typeArgs(e.Args)
	if def, ok := tc.resolver.ResolveType(e.Name); ok {
		var t types.Type
		switch def.Kind {
		case symbols.DefStruct:
			t = tc.in.InternStruct(def.Loc)
		default:
			t = tc.lowerType(&hir.TypeRef{Keyword: token.EOF, Name: e.Name})
		}
		return tc.construct(id, t, args)
	}
	if t, ok := tc.in.Predeclared(string(e.Name)); ok {
		return tc.construct(id, t, args)
	}
	res := tc.resolver.ResolveValue(e.Name)
	switch res.Kind {
	case symbols.ResolvedDef:
		if res.Def.Kind != symbols.DefFunction {
			tc.reportExpr(diag.SemaInvalidCallType, id, "`%s` is a %s, not a function", e.Name, res.Def.Kind)
			return types.Error
		}
		return tc.callFunction(id, res.Def.Loc, e, args)
	case symbols.ResolvedBuiltin:
		return tc.callBuiltin(id, res.Builtin, args)
	}
	tc.unresolved(id, e.Name)
	return types.Error
}

func (tc *typeChecker) callFunction(id hir.ExprID, loc hir.ItemLoc, e *hir.Expr, args []types.Type) types.Type {
	sig := tc.db.FunctionType(loc)
	if sig == nil {
		return types.Error
	}
	tc.result.CallResolutions[id] = CallResolution{Kind: CallFunction, Name: string(e.Name), Function: loc}
	if len(args) != len(sig.Params) {
		tc.reportExpr(diag.SemaFunctionCallArgCountMismatch, id,
			"`%s` takes %d arguments, found %d", e.Name, len(sig.Params), len(args))
	}
	for i := range min(len(args), len(sig.Params)) {
		tc.expectConvertible(e.Args[i], args[i], sig.Params[i])
	}
	return sig.Return
}

func (tc *typeChecker) callBuiltin(id hir.ExprID, b *types.Builtin, args []types.Type) types.Type {
	if tc.anyError(args) {
		return types.Error
	}
	res, ok := b.Resolve(tc.in, args)
	if !ok {
		tc.report(Diagnostic{
			Code:    diag.SemaNoBuiltinOverload,
			Expr:    id,
			Args:    args,
			Message: fmt.Sprintf("no overload of `%s` accepts (%s)", b.Name, tc.displayList(args)),
		})
		return types.Error
	}
	tc.result.CallResolutions[id] = CallResolution{Kind: CallBuiltin, Name: b.Name, Overload: res.Overload}
	return res.Return
}

// typeTypeInit handles keyword-typed constructors such as `vec3<f32>(...)`
// and the inferred forms `vec3(...)`, `mat2x2(...)` and `array(...)`.
func (tc *typeChecker) typeTypeInit(id hir.ExprID, e *hir.Expr) types.Type {
	args := tc.typeArgs(e.Args)
	ref := e.Type
	if ref == nil {
		return types.Error
	}
	if len(ref.Args) == 0 && (ref.Keyword.IsVector() || ref.Keyword.IsMatrix() || ref.Keyword == token.TyArray) {
		if tc.anyError(args) {
			return types.Error
		}
		t, ok := tc.inferConstructed(ref.Keyword, args)
		if !ok {
			tc.noConstructor(id, ref.Keyword.Text(), args)
			return types.Error
		}
		return tc.construct(id, t, args)
	}
	t := tc.lowerType(ref)
	return tc.construct(id, t, args)
}

// inferConstructed picks the component type of a constructor written
// without template arguments.
func (tc *typeChecker) inferConstructed(kw token.Kind, args []types.Type) (types.Type, bool) {
	elem := types.NoType
	for _, a := range args {
		k := tc.in.Kind(a)
		c := a
		switch {
		case kw.IsVector() && k.Kind == types.KindVector,
			kw.IsMatrix() && (k.Kind == types.KindVector || k.Kind == types.KindMatrix):
			c = k.Inner
		}
		if elem == types.NoType {
			elem = c
			continue
		}
		j, ok := tc.in.Join(elem, c)
		if !ok {
			return types.NoType, false
		}
		elem = j
	}
	switch {
	case kw.IsVector():
		if elem == types.NoType {
			elem = types.AbstractInt
		}
		if !tc.in.IsScalar(elem) {
			return types.NoType, false
		}
		return tc.in.Vector(uint8(kw-token.TyVec2)+2, elem), true
	case kw.IsMatrix():
		if elem == types.NoType || elem == types.AbstractInt {
			elem = types.AbstractFloat
		}
		if !tc.in.IsScalar(elem) || !tc.in.Kind(elem).Scalar.IsFloat() {
			return types.NoType, false
		}
		cols, rows := matrixShape(kw)
		return tc.in.Matrix(cols, rows, elem), true
	}
	if len(args) == 0 {
		return types.NoType, false
	}
	n, err := safecast.Conv[uint32](len(args))
	if err != nil {
		return types.NoType, false
	}
	return tc.in.Array(elem, n, false), true
}

func (tc *typeChecker) noConstructor(id hir.ExprID, name string, args []types.Type) {
	tc.report(Diagnostic{
		Code:    diag.SemaNoConstructor,
		Expr:    id,
		Args:    args,
		Message: fmt.Sprintf("no constructor of `%s` accepts (%s)", name, tc.displayList(args)),
	})
}

// construct checks args against the constructors of t.
func (tc *typeChecker) construct(id hir.ExprID, t types.Type, args []types.Type) types.Type {
	if tc.in.IsError(t) || tc.anyError(args) {
		return types.Error
	}
	if !tc.in.IsConstructable(t, tc.fields()) {
		tc.reportExpr(diag.SemaInvalidConstructionType, id, "type `%s` cannot be constructed", tc.display(t))
		return types.Error
	}
	tc.result.CallResolutions[id] = CallResolution{Kind: CallConstructor, Type: t}
	if len(args) == 0 || tc.constructs(t, args) {
		return t
	}
	tc.noConstructor(id, tc.display(t), args)
	return types.Error
}

func (tc *typeChecker) constructs(t types.Type, args []types.Type) bool {
	in := tc.in
	k := in.Kind(t)
	switch k.Kind {
	case types.KindScalar:
		// scalar conversion: any scalar to any scalar
		return len(args) == 1 && in.IsScalar(args[0])
	case types.KindVector:
		if len(args) == 1 {
			a := in.Kind(args[0])
			if a.Kind == types.KindVector && a.Size == k.Size {
				return true
			}
			return a.Kind == types.KindScalar && in.ConvertsTo(args[0], k.Inner)
		}
		return tc.componentsFit(args, k.Inner, k.Size)
	case types.KindMatrix:
		if len(args) == 1 {
			a := in.Kind(args[0])
			return a.Kind == types.KindMatrix && a.Size == k.Size && a.Rows == k.Rows
		}
		col := in.Vector(k.Rows, k.Inner)
		if len(args) == int(k.Size) {
			for _, a := range args {
				if !in.ConvertsTo(a, col) {
					return false
				}
			}
			return true
		}
		if len(args) == int(k.Size)*int(k.Rows) {
			for _, a := range args {
				if !in.ConvertsTo(a, k.Inner) {
					return false
				}
			}
			return true
		}
	case types.KindArray:
		if k.Runtime || len(args) != int(k.Len) {
			return false
		}
		for _, a := range args {
			if !in.ConvertsTo(a, k.Inner) {
				return false
			}
		}
		return true
	case types.KindStruct:
		key, _ := in.StructKey(t)
		fields := tc.fields()(key)
		if len(args) != len(fields) {
			return false
		}
		for i, a := range args {
			if !in.ConvertsTo(a, fields[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// componentsFit checks a vector built from scalars and smaller vectors.
func (tc *typeChecker) componentsFit(args []types.Type, inner types.Type, size uint8) bool {
	total := 0
	for _, a := range args {
		k := tc.in.Kind(a)
		switch k.Kind {
		case types.KindScalar:
			if !tc.in.ConvertsTo(a, inner) {
				return false
			}
			total++
		case types.KindVector:
			if !tc.in.ConvertsTo(k.Inner, inner) {
				return false
			}
			total += int(k.Size)
		default:
			return false
		}
	}
	return total == int(size)
}

func (tc *typeChecker) typeBitcast(id hir.ExprID, e *hir.Expr) types.Type {
	from := tc.in.Concretize(tc.valueOf(e.Lhs))
	to := tc.lowerType(e.Type)
	if tc.in.IsError(from) || tc.in.IsError(to) {
		return types.Error
	}
	fb, ok1 := tc.bitWidth(from)
	tb, ok2 := tc.bitWidth(to)
	if !ok1 || !ok2 || fb != tb {
		tc.report(Diagnostic{
			Code:     diag.SemaTypeMismatch,
			Expr:     id,
			Expected: to,
			Actual:   from,
			Message:  fmt.Sprintf("cannot bitcast `%s` to `%s`", tc.display(from), tc.display(to)),
		})
		return types.Error
	}
	return to
}

// bitWidth is the size in bits of a concrete numeric scalar or vector.
func (tc *typeChecker) bitWidth(t types.Type) (int, bool) {
	k := tc.in.Kind(t)
	n := 1
	if k.Kind == types.KindVector {
		n = int(k.Size)
		k = tc.in.Kind(k.Inner)
	}
	if k.Kind != types.KindScalar {
		return 0, false
	}
	switch k.Scalar {
	case types.ScalarI32, types.ScalarU32, types.ScalarF32:
		return 32 * n, true
	case types.ScalarF16:
		return 16 * n, true
	}
	return 0, false
}
