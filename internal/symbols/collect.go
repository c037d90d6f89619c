package symbols

import (
	"shaderlens/internal/hir"
	"shaderlens/internal/source"
)

// FileInput places one file of a package in the module tree. Module is the
// path of the file relative to the package root without its extension:
// `a/b.wesl` is {"a", "b"}. An empty Module puts the file at the root.
type FileInput struct {
	File   source.FileID
	Module []hir.Name
}

// PackageInput describes a package to collect.
type PackageInput struct {
	Name  hir.Name
	Files []FileInput
	Deps  []hir.Name
}

// Source supplies what collection reads: item trees, the def maps of
// dependencies and the files behind legacy `#import` keys.
type Source interface {
	ItemTree(file source.FileID) *hir.ItemTree
	DepDefMap(pkg hir.Name) (*DefMap, bool)
	CustomImport(key string) (source.FileID, bool)
}

type pendingImport struct {
	module ModuleID
	file   source.FileID
	astID  hir.AstID
	flat   hir.FlatImport
	done   bool
}

// Collect builds the DefMap of a package. It never fails: unresolved
// imports and duplicate names become diagnostics and collection continues.
func Collect(pkg PackageInput, src Source) *DefMap {
	m := &DefMap{
		Package:    pkg.Name,
		fileModule: make(map[source.FileID]ModuleID, len(pkg.Files)),
		deps:       make(map[hir.Name]*DefMap, len(pkg.Deps)),
	}
	for _, d := range pkg.Deps {
		if dm, ok := src.DepDefMap(d); ok {
			m.deps[d] = dm
		}
	}
	m.Root = m.newModule(pkg.Name, NoModule)

	for _, f := range pkg.Files {
		mod := m.Root
		for _, seg := range f.Module {
			child, ok := m.Module(mod).Children[seg]
			if !ok {
				child = m.newModule(seg, mod)
			}
			mod = child
		}
		md := m.Module(mod)
		md.File, md.HasFile = f.File, true
		m.fileModule[f.File] = mod
	}

	// items first, so imports can see every declaration
	var pending []*pendingImport
	for _, f := range pkg.Files {
		mod := m.fileModule[f.File]
		tree := src.ItemTree(f.File)
		if tree == nil {
			continue
		}
		m.declareItems(mod, f.File, tree, false)
		for i := range tree.Imports.All() {
			im := &tree.Imports.All()[i]
			if im.Legacy {
				m.declareCustomImport(mod, f.File, im, src)
				continue
			}
			im.Expand(func(fi hir.FlatImport) bool {
				pending = append(pending, &pendingImport{module: mod, file: f.File, astID: im.AstID, flat: fi})
				return true
			})
		}
	}

	// imports may go through other imports, so iterate to a fixed point
	for progress := true; progress; {
		progress = false
		for _, p := range pending {
			if p.done {
				continue
			}
			def, err := m.ResolvePath(p.module, p.flat.Path)
			if err != nil {
				continue
			}
			m.Module(p.module).Scope.Imports[p.flat.LeafName()] = def
			p.done, progress = true, true
		}
	}
	for _, p := range pending {
		if p.done {
			continue
		}
		_, err := m.ResolvePath(p.module, p.flat.Path)
		m.Diagnostics = append(m.Diagnostics, DefDiagnostic{
			File:        p.file,
			AstID:       p.astID,
			Kind:        diagKindOf(err.Kind),
			Name:        err.Name,
			Path:        p.flat.Path,
			Suggestions: err.Suggestions,
		})
	}
	return m
}

// declareItems enters the named items of tree into a module scope. Items
// brought in by a legacy import go to the import bindings.
func (m *DefMap) declareItems(mod ModuleID, file source.FileID, tree *hir.ItemTree, imported bool) {
	scope := &m.Module(mod).Scope
	for _, it := range tree.TopLevel {
		kind := defKindOf(it.Kind)
		if kind == 0 {
			continue
		}
		named := tree.Named(it.Kind, it.Index)
		if named == nil || named.Name.IsMissing() {
			continue
		}
		def := ModuleDef{Kind: kind, Loc: hir.ItemLoc{File: file, Kind: it.Kind, Index: it.Index}, Module: mod, Package: m.Package}
		if imported {
			if _, ok := scope.Imports[named.Name]; !ok {
				scope.Imports[named.Name] = def
			}
			continue
		}
		if _, dup := scope.Items[named.Name]; dup {
			m.Diagnostics = append(m.Diagnostics, DefDiagnostic{
				File:  file,
				AstID: named.AstID,
				Kind:  DiagDuplicateDefinition,
				Name:  named.Name,
			})
			continue
		}
		scope.Items[named.Name] = def
	}
}

func (m *DefMap) declareCustomImport(mod ModuleID, file source.FileID, im *hir.Import, src Source) {
	target, ok := src.CustomImport(im.CustomKey)
	if !ok {
		m.Diagnostics = append(m.Diagnostics, DefDiagnostic{
			File:  file,
			AstID: im.AstID,
			Kind:  DiagUnresolvedImport,
			Name:  hir.Name(im.CustomKey),
		})
		return
	}
	if tree := src.ItemTree(target); tree != nil {
		m.declareItems(mod, target, tree, true)
	}
}
