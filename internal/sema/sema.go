// Package sema infers the types of function bodies and global initializers,
// lowers written types, and runs the shader validation passes.
//
// Everything here is position-free: diagnostics point at body ids or at the
// item they belong to, and the database turns them into spans.
package sema

import (
	"shaderlens/internal/diag"
	"shaderlens/internal/hir"
	"shaderlens/internal/source"
	"shaderlens/internal/symbols"
	"shaderlens/internal/types"
)

// Database is what inference reads. The incremental database implements it
// so that every read is a tracked query.
type Database interface {
	Interner() *types.Interner
	Resolver(file source.FileID) symbols.Resolver

	Body(def hir.DefWithBody) *hir.Body
	FunctionData(loc hir.ItemLoc) *hir.FunctionData
	StructData(loc hir.ItemLoc) *hir.StructData
	GlobalVariableData(loc hir.ItemLoc) *hir.GlobalVariableData
	GlobalConstantData(loc hir.ItemLoc) *hir.GlobalConstantData
	OverrideData(loc hir.ItemLoc) *hir.OverrideData
	TypeAliasData(loc hir.ItemLoc) *hir.TypeAliasData

	FieldTypes(loc hir.ItemLoc) *FieldTypesResult
	FunctionType(loc hir.ItemLoc) *FunctionSignature
	GlobalVariableType(loc hir.ItemLoc) *GlobalVariableType
}

// Diagnostic is a problem found by inference, type lowering or validation.
// It is anchored at Expr when set, else at Stmt, else at Binding, else at
// Part of the item signature, else at the item itself.
type Diagnostic struct {
	Code    diag.Code
	Message string

	Expr    hir.ExprID
	Stmt    hir.StmtID
	Binding hir.BindingID
	Part    Part

	// Expected and Actual are set for type mismatches.
	Expected types.Type
	Actual   types.Type
	// Args holds the argument types of a failed overload or constructor.
	Args    []types.Type
	Storage StorageProblem
	// Suggestion replaces Name at the anchor when set.
	Name       hir.Name
	Suggestion hir.Name
}

// PartKind selects a type written in an item signature.
type PartKind uint8

const (
	PartNone PartKind = iota
	// PartParam is the type of parameter Index.
	PartParam
	PartReturn
	// PartField is the type of struct member Index.
	PartField
	// PartType is the declared type of a var or the target of an alias.
	PartType
)

// Part points into an item signature without a source position.
type Part struct {
	Kind  PartKind
	Index int
}

// inPart anchors the diagnostics that have no anchor yet at p.
func inPart(ds []Diagnostic, p Part) {
	for i := range ds {
		if ds[i].Part.Kind == PartNone {
			ds[i].Part = p
		}
	}
}

// StorageProblem refines SemaStorageClassError.
type StorageProblem uint8

const (
	StorageOK StorageProblem = iota
	StorageUnknownSpace
	StorageScope
	StorageAccessMode
	StorageNotConstructable
	StorageNotHostShareable
	StorageNotWorkgroupCompatible
	StorageHandle
)

type CallKind uint8

const (
	CallBuiltin CallKind = iota + 1
	CallOperator
	CallFunction
	CallConstructor
)

// CallResolution records what a call, operator or constructor resolved to.
type CallResolution struct {
	Kind     CallKind
	Name     string
	Overload *types.Overload
	Function hir.ItemLoc
	Type     types.Type
}

// FieldResolution records the target of a field expression. Index is -1
// for vector swizzles.
type FieldResolution struct {
	Struct hir.ItemLoc
	Index  int
}

// InferenceResult is the outcome of inferring one body.
type InferenceResult struct {
	ExprTypes        map[hir.ExprID]types.Type
	BindingTypes     map[hir.BindingID]types.Type
	FieldResolutions map[hir.ExprID]FieldResolution
	CallResolutions  map[hir.ExprID]CallResolution
	// ReturnType is the declared return type of a function, or the type of
	// a global's value.
	ReturnType  types.Type
	Diagnostics []Diagnostic
}

// TypeOf returns the type of expr, or NoType.
func (r *InferenceResult) TypeOf(expr hir.ExprID) types.Type { return r.ExprTypes[expr] }

// FieldTypesResult holds the lowered member types of a struct.
type FieldTypesResult struct {
	Types       []types.Type
	Diagnostics []Diagnostic
}

// FunctionSignature is the lowered signature of a function. Return is
// NoType when none is written.
type FunctionSignature struct {
	Params      []types.Type
	Return      types.Type
	Type        types.Type
	Diagnostics []Diagnostic
}

// GlobalVariableType describes a module-scope var. Type is what a use of
// the variable evaluates to: a reference, or the handle type itself.
type GlobalVariableType struct {
	Store       types.Type
	Space       types.AddressSpace
	Access      types.AccessMode
	Type        types.Type
	Diagnostics []Diagnostic
}

// LoweredType is a type with the diagnostics found while lowering it.
type LoweredType struct {
	Type        types.Type
	Diagnostics []Diagnostic
}

// StructNamer names struct types by the struct's declared name.
func StructNamer(db Database) types.Namer {
	return func(key any) string {
		loc, ok := key.(hir.ItemLoc)
		if !ok {
			return "?"
		}
		if sd := db.StructData(loc); sd != nil {
			return string(sd.Name)
		}
		return "?"
	}
}

// DisplayType renders t with struct names.
func DisplayType(db Database, t types.Type) string {
	return db.Interner().Display(t, StructNamer(db))
}

// fieldsOf adapts the FieldTypes query to the interner's predicates.
func fieldsOf(db Database) types.FieldTypes {
	return func(key any) []types.Type {
		loc, ok := key.(hir.ItemLoc)
		if !ok {
			return nil
		}
		if ft := db.FieldTypes(loc); ft != nil {
			return ft.Types
		}
		return nil
	}
}
