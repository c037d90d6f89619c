package db

import (
	"shaderlens/internal/hir"
	"shaderlens/internal/sema"
)

func (r *reader) FieldTypes(loc hir.ItemLoc) *sema.FieldTypesResult {
	return r.q().fieldTypes.get(r, loc)
}

func (r *reader) FunctionType(loc hir.ItemLoc) *sema.FunctionSignature {
	return r.q().functionType.get(r, loc)
}

func (r *reader) GlobalVariableType(loc hir.ItemLoc) *sema.GlobalVariableType {
	return r.q().globalVariableType.get(r, loc)
}

// TypeAliasType is the lowered target of a type alias.
func (r *reader) TypeAliasType(loc hir.ItemLoc) sema.LoweredType {
	return r.q().typeAliasType.get(r, loc)
}

// Infer types a function body or a global initializer.
func (r *reader) Infer(def hir.DefWithBody) *sema.InferenceResult {
	return r.q().infer.get(r, def)
}

var _ sema.Database = (*reader)(nil)
