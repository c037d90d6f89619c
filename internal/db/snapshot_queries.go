package db

import (
	"shaderlens/internal/diag"
	"shaderlens/internal/hir"
	"shaderlens/internal/parser"
	"shaderlens/internal/preproc"
	"shaderlens/internal/sema"
	"shaderlens/internal/source"
	"shaderlens/internal/symbols"
	"shaderlens/internal/syntax"
	"shaderlens/internal/types"
)

// Snapshot queries. Each call starts a top-level read; results are shared
// with every other read of the snapshot.

func (s *Snapshot) Interner() *types.Interner { return s.db.interner }

func (s *Snapshot) Edition(file source.FileID) syntax.Edition { return s.read().Edition(file) }

func (s *Snapshot) Preprocessed(file source.FileID) preproc.Result {
	return s.read().Preprocessed(file)
}

func (s *Snapshot) Parse(file source.FileID) *parser.Parse { return s.read().Parse(file) }

func (s *Snapshot) ParseNoPreprocessor(file source.FileID) *parser.Parse {
	return s.read().ParseNoPreprocessor(file)
}

func (s *Snapshot) AstIDMap(file source.FileID) *hir.AstIdMap { return s.read().AstIDMap(file) }

func (s *Snapshot) ItemTree(file source.FileID) *hir.ItemTree { return s.read().ItemTree(file) }

func (s *Snapshot) ModuleInfo(file source.FileID) *hir.ItemTree { return s.read().ModuleInfo(file) }

func (s *Snapshot) FunctionData(loc hir.ItemLoc) *hir.FunctionData {
	return s.read().FunctionData(loc)
}

func (s *Snapshot) StructData(loc hir.ItemLoc) *hir.StructData {
	return s.read().StructData(loc)
}

func (s *Snapshot) GlobalVariableData(loc hir.ItemLoc) *hir.GlobalVariableData {
	return s.read().GlobalVariableData(loc)
}

func (s *Snapshot) GlobalConstantData(loc hir.ItemLoc) *hir.GlobalConstantData {
	return s.read().GlobalConstantData(loc)
}

func (s *Snapshot) OverrideData(loc hir.ItemLoc) *hir.OverrideData {
	return s.read().OverrideData(loc)
}

func (s *Snapshot) TypeAliasData(loc hir.ItemLoc) *hir.TypeAliasData {
	return s.read().TypeAliasData(loc)
}

func (s *Snapshot) Body(def hir.DefWithBody) *hir.Body { return s.read().Body(def) }

func (s *Snapshot) BodySourceMap(def hir.DefWithBody) *hir.BodySourceMap {
	return s.read().BodySourceMap(def)
}

func (s *Snapshot) PackageOf(file source.FileID) hir.Name { return s.read().PackageOf(file) }

func (s *Snapshot) DefMap(pkg hir.Name) *symbols.DefMap { return s.read().DefMap(pkg) }

func (s *Snapshot) ModuleOf(file source.FileID) symbols.ModuleID { return s.read().ModuleOf(file) }

func (s *Snapshot) Resolver(file source.FileID) symbols.Resolver { return s.read().Resolver(file) }

func (s *Snapshot) FieldTypes(loc hir.ItemLoc) *sema.FieldTypesResult {
	return s.read().FieldTypes(loc)
}

func (s *Snapshot) FunctionType(loc hir.ItemLoc) *sema.FunctionSignature {
	return s.read().FunctionType(loc)
}

func (s *Snapshot) GlobalVariableType(loc hir.ItemLoc) *sema.GlobalVariableType {
	return s.read().GlobalVariableType(loc)
}

func (s *Snapshot) TypeAliasType(loc hir.ItemLoc) sema.LoweredType {
	return s.read().TypeAliasType(loc)
}

func (s *Snapshot) Infer(def hir.DefWithBody) *sema.InferenceResult { return s.read().Infer(def) }

func (s *Snapshot) FileDiagnostics(file source.FileID) []diag.Diagnostic {
	return s.read().FileDiagnostics(file)
}

func (s *Snapshot) ValidateGlobalVariables(file source.FileID, sink func(diag.Diagnostic) bool) {
	s.read().ValidateGlobalVariables(file, sink)
}

func (s *Snapshot) ValidatePrecedence(file source.FileID, sink func(diag.Diagnostic) bool) {
	s.read().ValidatePrecedence(file, sink)
}

// FileText is the text of file as last set.
func (s *Snapshot) FileText(file source.FileID) string { return s.in.texts[file].value }

func (s *Snapshot) FilePath(file source.FileID) string { return s.in.paths[file].value }

// Packages returns the package inputs of the snapshot.
func (s *Snapshot) Packages() []Package { return s.in.packages.value }
