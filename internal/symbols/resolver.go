package symbols

import (
	"shaderlens/internal/hir"
	"shaderlens/internal/types"
)

// ResolvedKind says where a name came from.
type ResolvedKind uint8

const (
	ResolvedNone ResolvedKind = iota
	ResolvedDef
	ResolvedBuiltin
)

type Resolved struct {
	Kind    ResolvedKind
	Def     ModuleDef
	Builtin *types.Builtin
}

// Resolver answers name lookups from inside one module. Local bindings are
// already resolved in bodies, so only module scope is consulted here.
type Resolver struct {
	defs   *DefMap
	module ModuleID
}

func NewResolver(defs *DefMap, module ModuleID) Resolver {
	return Resolver{defs: defs, module: module}
}

func (r Resolver) DefMap() *DefMap   { return r.defs }
func (r Resolver) Module() ModuleID { return r.module }

func (r Resolver) lookup(name hir.Name, ok func(DefKind) bool) (ModuleDef, bool) {
	if r.defs == nil {
		return ModuleDef{}, false
	}
	md := r.defs.Module(r.module)
	if md == nil {
		return ModuleDef{}, false
	}
	if d, found := md.Scope.Items[name]; found && ok(d.Kind) {
		return d, true
	}
	if d, found := md.Scope.Imports[name]; found && ok(d.Kind) {
		return d, true
	}
	return ModuleDef{}, false
}

// ResolveValue looks name up among value items and falls back to the
// builtin functions.
func (r Resolver) ResolveValue(name hir.Name) Resolved {
	if d, ok := r.lookup(name, DefKind.IsValue); ok {
		return Resolved{Kind: ResolvedDef, Def: d}
	}
	if b, ok := types.Builtins().Lookup(string(name)); ok {
		return Resolved{Kind: ResolvedBuiltin, Builtin: b}
	}
	return Resolved{}
}

// ResolveType looks name up among structs and type aliases. Predeclared
// types are the caller's concern.
func (r Resolver) ResolveType(name hir.Name) (ModuleDef, bool) {
	return r.lookup(name, DefKind.IsType)
}

// ResolvePath resolves a qualified path such as `util::light::Light`.
func (r Resolver) ResolvePath(p hir.ModPath) (ModuleDef, bool) {
	if r.defs == nil {
		return ModuleDef{}, false
	}
	d, err := r.defs.ResolvePath(r.module, p)
	return d, err == nil
}

// Names lists every name visible at module scope, for completion.
func (r Resolver) Names() []hir.Name {
	if r.defs == nil {
		return nil
	}
	md := r.defs.Module(r.module)
	if md == nil {
		return nil
	}
	return append(keys(md.Scope.Items), keys(md.Scope.Imports)...)
}

// Suggest proposes near misses for an unresolved name.
func (r Resolver) Suggest(name hir.Name) []hir.Name {
	cands := r.Names()
	for _, b := range types.Builtins().Names() {
		cands = append(cands, hir.Name(b))
	}
	out := suggest(name, cands)
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}
