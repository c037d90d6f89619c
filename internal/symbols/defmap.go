// Package symbols builds the module tree of a package and resolves import
// paths and names against it.
package symbols

import (
	"fmt"

	"shaderlens/internal/hir"
	"shaderlens/internal/source"
)

// ModuleID indexes DefMap.Modules. The root module is always 1.
type ModuleID uint32

const NoModule ModuleID = 0

// DefKind classifies what a name in a module scope refers to.
type DefKind uint8

const (
	DefFunction DefKind = iota + 1
	DefStruct
	DefGlobalVariable
	DefGlobalConstant
	DefOverride
	DefTypeAlias
	DefModule
)

func (k DefKind) String() string {
	switch k {
	case DefFunction:
		return "function"
	case DefStruct:
		return "struct"
	case DefGlobalVariable:
		return "global variable"
	case DefGlobalConstant:
		return "global constant"
	case DefOverride:
		return "override"
	case DefTypeAlias:
		return "type alias"
	case DefModule:
		return "module"
	}
	return "invalid"
}

// IsValue reports kinds usable in expression position.
func (k DefKind) IsValue() bool {
	switch k {
	case DefFunction, DefGlobalVariable, DefGlobalConstant, DefOverride:
		return true
	}
	return false
}

// IsType reports kinds usable in type position.
func (k DefKind) IsType() bool { return k == DefStruct || k == DefTypeAlias }

func defKindOf(k hir.ItemKind) DefKind {
	switch k {
	case hir.ItemFunction:
		return DefFunction
	case hir.ItemStruct:
		return DefStruct
	case hir.ItemGlobalVariable:
		return DefGlobalVariable
	case hir.ItemGlobalConstant:
		return DefGlobalConstant
	case hir.ItemOverride:
		return DefOverride
	case hir.ItemTypeAlias:
		return DefTypeAlias
	}
	return 0
}

// ModuleDef is what a name resolves to: an item, or a module of some
// package.
type ModuleDef struct {
	Kind    DefKind
	Loc     hir.ItemLoc
	Module  ModuleID
	Package hir.Name
}

func (d ModuleDef) String() string {
	if d.Kind == DefModule {
		return fmt.Sprintf("module %s#%d", d.Package, d.Module)
	}
	return fmt.Sprintf("%s %s", d.Kind, d.Loc)
}

// Scope holds the names visible at module level.
type Scope struct {
	Items   map[hir.Name]ModuleDef
	Imports map[hir.Name]ModuleDef
}

type Module struct {
	Name     hir.Name
	Parent   ModuleID
	Children map[hir.Name]ModuleID
	// File is meaningful when HasFile is set; a directory without a file of
	// its own is still a module.
	File    source.FileID
	HasFile bool
	Scope   Scope
}

// DefMap is the module tree of one package together with every module's
// scope.
type DefMap struct {
	Package     hir.Name
	Root        ModuleID
	Modules     hir.Arena[Module]
	Diagnostics []DefDiagnostic

	fileModule map[source.FileID]ModuleID
	deps       map[hir.Name]*DefMap
}

func (m *DefMap) Module(id ModuleID) *Module { return m.Modules.Get(uint32(id)) }

// ModuleOf returns the module a file defines.
func (m *DefMap) ModuleOf(file source.FileID) (ModuleID, bool) {
	id, ok := m.fileModule[file]
	return id, ok
}

// Dep returns the def map of a dependency, or m itself for its own name.
func (m *DefMap) Dep(name hir.Name) (*DefMap, bool) {
	if name == m.Package {
		return m, true
	}
	d, ok := m.deps[name]
	return d, ok
}

// ModulePath renders the `::` path of a module inside its package.
func (m *DefMap) ModulePath(id ModuleID) hir.ModPath {
	var segs []hir.Name
	for id != m.Root && id != NoModule {
		mod := m.Module(id)
		segs = append([]hir.Name{mod.Name}, segs...)
		id = mod.Parent
	}
	return hir.PackagePath(segs...)
}

func (m *DefMap) newModule(name hir.Name, parent ModuleID) ModuleID {
	id := ModuleID(m.Modules.Alloc(Module{
		Name:     name,
		Parent:   parent,
		Children: make(map[hir.Name]ModuleID),
		Scope: Scope{
			Items:   make(map[hir.Name]ModuleDef),
			Imports: make(map[hir.Name]ModuleDef),
		},
	}))
	if p := m.Module(parent); p != nil {
		p.Children[name] = id
	}
	return id
}
