package db

import (
	"shaderlens/internal/ast"
	"shaderlens/internal/hir"
)

// bodyResult keeps a body together with its source map. Body and
// BodySourceMap are projections of it, so an edit that only moves text
// changes the source map while the body stays equal.
type bodyResult struct {
	body   *hir.Body
	srcMap *hir.BodySourceMap
}

func computeBodyWithSourceMap(r *reader, def hir.DefWithBody) bodyResult {
	n, ok := r.itemNode(def)
	if !ok {
		return bodyResult{}
	}
	var b bodyResult
	switch def.Kind {
	case hir.ItemFunction:
		if fn, ok := ast.CastFunction(n); ok {
			b.body, b.srcMap = hir.LowerFunctionBody(fn)
		}
	case hir.ItemGlobalVariable:
		if v, ok := ast.CastGlobalVariableDecl(n); ok {
			b.body, b.srcMap = hir.LowerInitializer(v.Init())
		}
	case hir.ItemGlobalConstant:
		if c, ok := ast.CastGlobalConstantDecl(n); ok {
			b.body, b.srcMap = hir.LowerInitializer(c.Init())
		}
	case hir.ItemOverride:
		if o, ok := ast.CastOverrideDecl(n); ok {
			b.body, b.srcMap = hir.LowerInitializer(o.Init())
		}
	}
	return b
}

func (r *reader) bodyWithSourceMap(def hir.DefWithBody) bodyResult {
	return r.q().bodyWithSourceMap.get(r, def)
}

// Body is the lowered body of a function or the initializer of a global;
// nil for other items.
func (r *reader) Body(def hir.DefWithBody) *hir.Body { return r.q().body.get(r, def) }

func (r *reader) BodySourceMap(def hir.DefWithBody) *hir.BodySourceMap {
	return r.q().bodySourceMap.get(r, def)
}
