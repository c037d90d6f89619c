package db

import (
	"reflect"

	"shaderlens/internal/diag"
	"shaderlens/internal/hir"
	"shaderlens/internal/parser"
	"shaderlens/internal/preproc"
	"shaderlens/internal/sema"
	"shaderlens/internal/source"
	"shaderlens/internal/symbols"
	"shaderlens/internal/syntax"
)

type tables struct {
	edition    *memoTable[source.FileID, syntax.Edition]
	preprocess *memoTable[source.FileID, preproc.Result]
	parse      *memoTable[source.FileID, *parser.Parse]
	parseRaw   *memoTable[source.FileID, *parser.Parse]
	astIDMap   *memoTable[source.FileID, *hir.AstIdMap]
	itemTree   *memoTable[source.FileID, *hir.ItemTree]

	functionData       *memoTable[hir.ItemLoc, *hir.FunctionData]
	structData         *memoTable[hir.ItemLoc, *hir.StructData]
	globalVariableData *memoTable[hir.ItemLoc, *hir.GlobalVariableData]
	globalConstantData *memoTable[hir.ItemLoc, *hir.GlobalConstantData]
	overrideData       *memoTable[hir.ItemLoc, *hir.OverrideData]
	typeAliasData      *memoTable[hir.ItemLoc, *hir.TypeAliasData]

	bodyWithSourceMap *memoTable[hir.DefWithBody, bodyResult]
	body              *memoTable[hir.DefWithBody, *hir.Body]
	bodySourceMap     *memoTable[hir.DefWithBody, *hir.BodySourceMap]

	packageOf *memoTable[source.FileID, hir.Name]
	defMap    *memoTable[hir.Name, *symbols.DefMap]
	moduleOf  *memoTable[source.FileID, symbols.ModuleID]

	fieldTypes         *memoTable[hir.ItemLoc, *sema.FieldTypesResult]
	functionType       *memoTable[hir.ItemLoc, *sema.FunctionSignature]
	globalVariableType *memoTable[hir.ItemLoc, *sema.GlobalVariableType]
	typeAliasType      *memoTable[hir.ItemLoc, sema.LoweredType]
	infer              *memoTable[hir.DefWithBody, *sema.InferenceResult]

	diagnostics *memoTable[source.FileID, []diag.Diagnostic]
}

// sameParse treats two parses as equal when their green trees match.
// Subtrees shared through the node cache compare by pointer.
func sameParse(a, b *parser.Parse) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Green().Equal(b.Green()) && reflect.DeepEqual(a.Errors(), b.Errors())
}

func (db *Database) registerTables() {
	q := &db.q
	q.edition = newTable(db, "edition", computeEdition, nil)
	q.preprocess = newTable(db, "preprocess", computePreprocess, nil)
	q.parse = newTable(db, "parse", computeParse, sameParse)
	q.parseRaw = newTable(db, "parse_no_preprocessor", computeParseRaw, sameParse)
	q.astIDMap = newTable(db, "ast_id_map", computeAstIDMap, (*hir.AstIdMap).Equal)
	q.itemTree = newTable(db, "item_tree", computeItemTree, nil)

	q.functionData = newTable(db, "function_data", computeFunctionData, nil)
	q.structData = newTable(db, "struct_data", computeStructData, nil)
	q.globalVariableData = newTable(db, "global_variable_data", computeGlobalVariableData, nil)
	q.globalConstantData = newTable(db, "global_constant_data", computeGlobalConstantData, nil)
	q.overrideData = newTable(db, "override_data", computeOverrideData, nil)
	q.typeAliasData = newTable(db, "type_alias_data", computeTypeAliasData, nil)

	q.bodyWithSourceMap = newTable(db, "body_with_source_map", computeBodyWithSourceMap, nil)
	q.body = newTable(db, "body", func(r *reader, def hir.DefWithBody) *hir.Body {
		return r.bodyWithSourceMap(def).body
	}, nil)
	q.bodySourceMap = newTable(db, "body_source_map", func(r *reader, def hir.DefWithBody) *hir.BodySourceMap {
		return r.bodyWithSourceMap(def).srcMap
	}, nil)

	q.packageOf = newTable(db, "package_of", computePackageOf, nil)
	q.defMap = newTable(db, "def_map", computeDefMap, nil)
	q.moduleOf = newTable(db, "module_of", computeModuleOf, nil)

	q.fieldTypes = newTable(db, "field_types", func(r *reader, loc hir.ItemLoc) *sema.FieldTypesResult {
		return sema.LowerFieldTypes(r, loc)
	}, nil)
	q.functionType = newTable(db, "function_type", func(r *reader, loc hir.ItemLoc) *sema.FunctionSignature {
		return sema.LowerFunctionType(r, loc)
	}, nil)
	q.globalVariableType = newTable(db, "global_variable_type", func(r *reader, loc hir.ItemLoc) *sema.GlobalVariableType {
		return sema.LowerGlobalVariableType(r, loc)
	}, nil)
	q.typeAliasType = newTable(db, "type_alias_type", func(r *reader, loc hir.ItemLoc) sema.LoweredType {
		return sema.LowerTypeAlias(r, loc)
	}, nil)
	q.infer = newTable(db, "infer", func(r *reader, def hir.DefWithBody) *sema.InferenceResult {
		return sema.Infer(r, def)
	}, nil)

	q.diagnostics = newTable(db, "file_diagnostics", computeFileDiagnostics, nil)
}
