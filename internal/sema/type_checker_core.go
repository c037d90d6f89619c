package sema

import (
	"fmt"
	"strings"

	"shaderlens/internal/diag"
	"shaderlens/internal/hir"
	"shaderlens/internal/symbols"
	"shaderlens/internal/types"
)

type typeChecker struct {
	db       Database
	in       *types.Interner
	def      hir.DefWithBody
	body     *hir.Body
	resolver symbols.Resolver
	result   *InferenceResult

	returnType types.Type
	// valueStack holds the globals whose initializer types are being
	// inferred, outermost first.
	valueStack map[hir.ItemLoc]bool
	cyclic     bool

	// anchors used for lowering diagnostics
	curExpr hir.ExprID
	curStmt hir.StmtID
}

func newTypeChecker(db Database, def hir.DefWithBody, stack map[hir.ItemLoc]bool) *typeChecker {
	if stack == nil {
		stack = make(map[hir.ItemLoc]bool)
	}
	tc := &typeChecker{
		db:       db,
		in:       db.Interner(),
		def:      def,
		body:     db.Body(def),
		resolver: db.Resolver(def.File),
		result: &InferenceResult{
			ExprTypes:        make(map[hir.ExprID]types.Type),
			BindingTypes:     make(map[hir.BindingID]types.Type),
			FieldResolutions: make(map[hir.ExprID]FieldResolution),
			CallResolutions:  make(map[hir.ExprID]CallResolution),
		},
		valueStack: stack,
	}
	if tc.body == nil {
		tc.body = &hir.Body{}
	}
	return tc
}

// Infer types the body of a function or the initializer of a global.
func Infer(db Database, def hir.DefWithBody) *InferenceResult {
	tc := newTypeChecker(db, def, nil)
	tc.valueStack[def] = true
	switch def.Kind {
	case hir.ItemFunction:
		tc.inferFunction()
	case hir.ItemGlobalVariable, hir.ItemGlobalConstant, hir.ItemOverride:
		tc.inferInitializer()
	}
	return tc.result
}

func (tc *typeChecker) inferFunction() {
	sig := tc.db.FunctionType(tc.def)
	if sig == nil {
		return
	}
	for i, b := range tc.body.Params {
		t := types.Error
		if i < len(sig.Params) {
			t = sig.Params[i]
		}
		tc.result.BindingTypes[b] = t
	}
	tc.returnType = sig.Return
	tc.result.ReturnType = sig.Return
	tc.checkStmt(tc.body.Root)
}

// inferInitializer types the initializer of a global against its declared
// type, if any. Constants keep abstract types; variables and overrides are
// concretized.
func (tc *typeChecker) inferInitializer() {
	declared := tc.declaredGlobalType()
	if tc.body.Init == hir.NoExpr {
		tc.result.ReturnType = declared
		if declared == types.NoType {
			tc.result.ReturnType = types.Error
		}
		return
	}
	init := tc.valueOf(tc.body.Init)
	if declared != types.NoType {
		tc.expectConvertible(tc.body.Init, init, declared)
		tc.result.ReturnType = declared
		return
	}
	if tc.def.Kind != hir.ItemGlobalConstant {
		init = tc.in.Concretize(init)
	}
	tc.result.ReturnType = init
}

// declaredGlobalType lowers the written type of the global being inferred.
// Lowering problems are reported by the item's own type query, so they are
// dropped here.
func (tc *typeChecker) declaredGlobalType() types.Type {
	var ref *hir.TypeRef
	switch tc.def.Kind {
	case hir.ItemGlobalVariable:
		if d := tc.db.GlobalVariableData(tc.def); d != nil {
			ref = d.Type
		}
	case hir.ItemGlobalConstant:
		if d := tc.db.GlobalConstantData(tc.def); d != nil {
			ref = d.Type
		}
	case hir.ItemOverride:
		if d := tc.db.OverrideData(tc.def); d != nil {
			ref = d.Type
		}
	}
	if ref == nil {
		return types.NoType
	}
	return newTypeLowerer(tc.db, tc.resolver, nil).lower(ref)
}

// globalValueType types a constant or override by its annotation, or by
// inferring its initializer when none is written.
func (tc *typeChecker) globalValueType(loc hir.ItemLoc) (types.Type, bool) {
	return globalValueType(tc.db, loc, tc.valueStack)
}

// GlobalValueType is the type of a module-scope const or override.
func GlobalValueType(db Database, loc hir.ItemLoc) types.Type {
	t, _ := globalValueType(db, loc, make(map[hir.ItemLoc]bool))
	return t
}

func globalValueType(db Database, loc hir.ItemLoc, stack map[hir.ItemLoc]bool) (types.Type, bool) {
	if stack[loc] {
		return types.Error, true
	}
	stack[loc] = true
	defer delete(stack, loc)
	nested := newTypeChecker(db, loc, stack)
	nested.inferInitializer()
	return nested.result.ReturnType, nested.cyclic
}

func (tc *typeChecker) display(t types.Type) string { return tc.in.Display(t, StructNamer(tc.db)) }

func (tc *typeChecker) displayList(ts []types.Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = tc.display(t)
	}
	return strings.Join(parts, ", ")
}

func (tc *typeChecker) report(d Diagnostic) {
	tc.result.Diagnostics = append(tc.result.Diagnostics, d)
}

func (tc *typeChecker) reportExpr(code diag.Code, expr hir.ExprID, format string, args ...any) {
	tc.report(Diagnostic{Code: code, Expr: expr, Message: fmt.Sprintf(format, args...)})
}

func (tc *typeChecker) reportStmt(code diag.Code, stmt hir.StmtID, format string, args ...any) {
	tc.report(Diagnostic{Code: code, Stmt: stmt, Message: fmt.Sprintf(format, args...)})
}

func (tc *typeChecker) mismatch(expr hir.ExprID, expected, actual types.Type) {
	tc.report(Diagnostic{
		Code:     diag.SemaTypeMismatch,
		Expr:     expr,
		Expected: expected,
		Actual:   actual,
		Message:  fmt.Sprintf("expected `%s`, found `%s`", tc.display(expected), tc.display(actual)),
	})
}

// expectConvertible reports a mismatch unless actual converts to expected.
// Error on either side stays silent.
func (tc *typeChecker) expectConvertible(expr hir.ExprID, actual, expected types.Type) bool {
	if tc.in.IsError(actual) || tc.in.IsError(expected) {
		return true
	}
	if tc.in.ConvertsTo(actual, expected) {
		return true
	}
	tc.mismatch(expr, expected, actual)
	return false
}

// lowerType lowers a type written inside the body, anchoring problems at
// the statement or expression being checked.
func (tc *typeChecker) lowerType(ref *hir.TypeRef) types.Type {
	l := newTypeLowerer(tc.db, tc.resolver, func(code diag.Code, format string, args ...any) {
		tc.report(Diagnostic{Code: code, Expr: tc.curExpr, Stmt: tc.curStmt, Message: fmt.Sprintf(format, args...)})
	})
	return l.lower(ref)
}

func (tc *typeChecker) fields() types.FieldTypes { return fieldsOf(tc.db) }
