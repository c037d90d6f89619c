package db

import (
	"slices"

	"shaderlens/internal/ast"
	"shaderlens/internal/hir"
	"shaderlens/internal/parser"
	"shaderlens/internal/preproc"
	"shaderlens/internal/source"
	"shaderlens/internal/syntax"
)

// computeEdition takes the edition of the package that lists file, or
// guesses from the path. Custom import texts are plain WGSL.
func computeEdition(r *reader, file source.FileID) syntax.Edition {
	if file >= customBase {
		return syntax.EditionWGSL
	}
	for _, p := range r.packages() {
		if p.Edition == "" || !slices.Contains(p.Files, file) {
			continue
		}
		if ed, ok := syntax.ParseEdition(p.Edition); ok {
			return ed
		}
	}
	return syntax.EditionFromPath(r.filePath(file))
}

func computePreprocess(r *reader, file source.FileID) preproc.Result {
	return preproc.Process(r.fileText(file), preproc.NewDefs(r.shaderDefs()...))
}

func computeParse(r *reader, file source.FileID) *parser.Parse {
	text := r.q().preprocess.get(r, file).Text
	return parser.ParseFile(text, r.q().edition.get(r, file), r.s.db.cache)
}

func computeParseRaw(r *reader, file source.FileID) *parser.Parse {
	return parser.ParseFile(r.fileText(file), r.q().edition.get(r, file), r.s.db.cache)
}

func computeAstIDMap(r *reader, file source.FileID) *hir.AstIdMap {
	return hir.NewAstIdMap(r.Parse(file).SyntaxNode())
}

func computeItemTree(r *reader, file source.FileID) *hir.ItemTree {
	return hir.LowerItemTree(r.Parse(file).SyntaxNode(), r.AstIDMap(file))
}

func (r *reader) q() *tables { return &r.s.db.q }

// Edition is the language edition file is parsed in.
func (r *reader) Edition(file source.FileID) syntax.Edition { return r.q().edition.get(r, file) }

// Preprocessed is the text of file after shader-def evaluation.
func (r *reader) Preprocessed(file source.FileID) preproc.Result {
	return r.q().preprocess.get(r, file)
}

// Parse parses file after shader-def evaluation.
func (r *reader) Parse(file source.FileID) *parser.Parse { return r.q().parse.get(r, file) }

// ParseNoPreprocessor parses the raw text of file.
func (r *reader) ParseNoPreprocessor(file source.FileID) *parser.Parse {
	return r.q().parseRaw.get(r, file)
}

func (r *reader) AstIDMap(file source.FileID) *hir.AstIdMap { return r.q().astIDMap.get(r, file) }

func (r *reader) ItemTree(file source.FileID) *hir.ItemTree { return r.q().itemTree.get(r, file) }

// ModuleInfo is the item summary of file.
func (r *reader) ModuleInfo(file source.FileID) *hir.ItemTree { return r.ItemTree(file) }

// itemNode finds the syntax of an item in a fresh red tree of its file.
func (r *reader) itemNode(loc hir.ItemLoc) (*syntax.Node, bool) {
	root := r.Parse(loc.File).SyntaxNode()
	it := hir.ModuleItem{Kind: loc.Kind, Index: loc.Index}
	return hir.ItemNode(root, r.AstIDMap(loc.File), r.ItemTree(loc.File), it)
}

func lowerItem[N, D any](r *reader, loc hir.ItemLoc, cast func(*syntax.Node) (N, bool), lower func(N) *D) *D {
	n, ok := r.itemNode(loc)
	if !ok {
		return nil
	}
	node, ok := cast(n)
	if !ok {
		return nil
	}
	return lower(node)
}

func computeFunctionData(r *reader, loc hir.ItemLoc) *hir.FunctionData {
	return lowerItem(r, loc, ast.CastFunction, hir.LowerFunctionData)
}

func computeStructData(r *reader, loc hir.ItemLoc) *hir.StructData {
	return lowerItem(r, loc, ast.CastStructDecl, hir.LowerStructData)
}

func computeGlobalVariableData(r *reader, loc hir.ItemLoc) *hir.GlobalVariableData {
	return lowerItem(r, loc, ast.CastGlobalVariableDecl, hir.LowerGlobalVariableData)
}

func computeGlobalConstantData(r *reader, loc hir.ItemLoc) *hir.GlobalConstantData {
	return lowerItem(r, loc, ast.CastGlobalConstantDecl, hir.LowerGlobalConstantData)
}

func computeOverrideData(r *reader, loc hir.ItemLoc) *hir.OverrideData {
	return lowerItem(r, loc, ast.CastOverrideDecl, hir.LowerOverrideData)
}

func computeTypeAliasData(r *reader, loc hir.ItemLoc) *hir.TypeAliasData {
	return lowerItem(r, loc, ast.CastTypeAliasDecl, hir.LowerTypeAliasData)
}

func (r *reader) FunctionData(loc hir.ItemLoc) *hir.FunctionData {
	return r.q().functionData.get(r, loc)
}

func (r *reader) StructData(loc hir.ItemLoc) *hir.StructData {
	return r.q().structData.get(r, loc)
}

func (r *reader) GlobalVariableData(loc hir.ItemLoc) *hir.GlobalVariableData {
	return r.q().globalVariableData.get(r, loc)
}

func (r *reader) GlobalConstantData(loc hir.ItemLoc) *hir.GlobalConstantData {
	return r.q().globalConstantData.get(r, loc)
}

func (r *reader) OverrideData(loc hir.ItemLoc) *hir.OverrideData {
	return r.q().overrideData.get(r, loc)
}

func (r *reader) TypeAliasData(loc hir.ItemLoc) *hir.TypeAliasData {
	return r.q().typeAliasData.get(r, loc)
}
