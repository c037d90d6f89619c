package hir

import (
	"shaderlens/internal/ast"
	"shaderlens/internal/source"
	"shaderlens/internal/syntax"
)

// ModuleItem points at one entry of an ItemTree arena.
type ModuleItem struct {
	Kind  ItemKind
	Index uint32
}

// NamedItem is the ItemTree entry for every named item kind.
type NamedItem struct {
	Name  Name
	AstID AstID
}

type GlobalAssert struct {
	AstID AstID
}

// ImportTreeKind discriminates ImportTree.
type ImportTreeKind uint8

const (
	ImportPath ImportTreeKind = iota
	ImportItem
	ImportCollection
)

// ImportTree mirrors the syntax of an import: `name::tree`, `name [as
// alias]` or `{tree, ...}`.
type ImportTree struct {
	Kind  ImportTreeKind
	Name  Name
	Alias Name
	Item  *ImportTree
	List  []ImportTree
}

// FlatImport is one imported name after expansion.
type FlatImport struct {
	Path  ModPath
	Alias Name
}

// LeafName is the name the import binds.
func (f FlatImport) LeafName() Name {
	if f.Alias != "" {
		return f.Alias
	}
	last, _ := f.Path.Last()
	return last
}

// Import is a WESL import statement or a legacy `#import`.
type Import struct {
	Prefix ModPath
	Tree   ImportTree
	// CustomKey is set for legacy imports, in which case Tree is unused.
	CustomKey string
	Legacy    bool
	AstID     AstID
}

// Expand calls fn for every flattened import until fn returns false.
func (im *Import) Expand(fn func(FlatImport) bool) {
	if im.Legacy {
		return
	}
	im.Tree.expand(im.Prefix, fn)
}

func (t *ImportTree) expand(prefix ModPath, fn func(FlatImport) bool) bool {
	switch t.Kind {
	case ImportPath:
		if t.Item == nil {
			return true
		}
		return t.Item.expand(prefix.Push(t.Name), fn)
	case ImportItem:
		return fn(FlatImport{Path: prefix.Push(t.Name), Alias: t.Alias})
	case ImportCollection:
		for i := range t.List {
			if !t.List[i].expand(prefix, fn) {
				return false
			}
		}
	}
	return true
}

// ItemTree is the positions-free summary of a file's items.
type ItemTree struct {
	TopLevel        []ModuleItem
	Functions       Arena[NamedItem]
	Structs         Arena[NamedItem]
	GlobalVariables Arena[NamedItem]
	GlobalConstants Arena[NamedItem]
	Overrides       Arena[NamedItem]
	TypeAliases     Arena[NamedItem]
	Imports         Arena[Import]
	GlobalAsserts   Arena[GlobalAssert]
}

// Named returns the named entry for a non-import item.
func (t *ItemTree) Named(kind ItemKind, index uint32) *NamedItem {
	if a := t.arena(kind); a != nil {
		return a.Get(index)
	}
	return nil
}

func (t *ItemTree) arena(kind ItemKind) *Arena[NamedItem] {
	switch kind {
	case ItemFunction:
		return &t.Functions
	case ItemStruct:
		return &t.Structs
	case ItemGlobalVariable:
		return &t.GlobalVariables
	case ItemGlobalConstant:
		return &t.GlobalConstants
	case ItemOverride:
		return &t.Overrides
	case ItemTypeAlias:
		return &t.TypeAliases
	}
	return nil
}

// AstIDOf returns the AstID of any item.
func (t *ItemTree) AstIDOf(it ModuleItem) AstID {
	switch it.Kind {
	case ItemImport:
		if im := t.Imports.Get(it.Index); im != nil {
			return im.AstID
		}
	case ItemGlobalAssert:
		if a := t.GlobalAsserts.Get(it.Index); a != nil {
			return a.AstID
		}
	default:
		if n := t.Named(it.Kind, it.Index); n != nil {
			return n.AstID
		}
	}
	return NoAstID
}

// LowerItemTree collects the items of a parsed source file.
func LowerItemTree(root *syntax.Node, ids *AstIdMap) *ItemTree {
	t := &ItemTree{}
	file, ok := ast.CastSourceFile(root)
	if !ok {
		return t
	}
	for _, item := range file.Items() {
		id, ok := ids.AstID(item.Syntax())
		if !ok {
			continue
		}
		var mi ModuleItem
		switch it := item.(type) {
		case ast.Function:
			n, _ := it.Name()
			mi = ModuleItem{ItemFunction, t.Functions.Alloc(NamedItem{nameOrMissing(n.Text()), id})}
		case ast.StructDecl:
			n, _ := it.Name()
			mi = ModuleItem{ItemStruct, t.Structs.Alloc(NamedItem{nameOrMissing(n.Text()), id})}
		case ast.GlobalVariableDecl:
			n, _ := it.Name()
			mi = ModuleItem{ItemGlobalVariable, t.GlobalVariables.Alloc(NamedItem{nameOrMissing(n.Text()), id})}
		case ast.GlobalConstantDecl:
			n, _ := it.Name()
			mi = ModuleItem{ItemGlobalConstant, t.GlobalConstants.Alloc(NamedItem{nameOrMissing(n.Text()), id})}
		case ast.OverrideDecl:
			n, _ := it.Name()
			mi = ModuleItem{ItemOverride, t.Overrides.Alloc(NamedItem{nameOrMissing(n.Text()), id})}
		case ast.TypeAliasDecl:
			n, _ := it.Name()
			mi = ModuleItem{ItemTypeAlias, t.TypeAliases.Alloc(NamedItem{nameOrMissing(n.Text()), id})}
		case ast.ConstAssert:
			mi = ModuleItem{ItemGlobalAssert, t.GlobalAsserts.Alloc(GlobalAssert{id})}
		case ast.ImportStatement:
			mi = ModuleItem{ItemImport, t.Imports.Alloc(lowerImport(it, id))}
		case ast.PreprocessorImport:
			key, _ := it.Key()
			mi = ModuleItem{ItemImport, t.Imports.Alloc(Import{CustomKey: key, Legacy: true, AstID: id})}
		default:
			continue
		}
		t.TopLevel = append(t.TopLevel, mi)
	}
	return t
}

func lowerImport(it ast.ImportStatement, id AstID) Import {
	im := Import{AstID: id}
	switch {
	case it.PackageRelative():
		im.Prefix = PackagePath()
	case it.SuperCount() > 0:
		im.Prefix = SuperPath(it.SuperCount())
	}
	if tree, ok := it.Tree(); ok {
		im.Tree = lowerImportTree(tree)
	} else {
		im.Tree = ImportTree{Kind: ImportCollection}
	}
	return im
}

func lowerImportTree(tree ast.ImportTree) ImportTree {
	switch t := tree.(type) {
	case ast.ImportTreePath:
		n, _ := t.Name()
		out := ImportTree{Kind: ImportPath, Name: nameOrMissing(n.Text())}
		if sub, ok := t.Tree(); ok {
			lowered := lowerImportTree(sub)
			out.Item = &lowered
		}
		return out
	case ast.ImportTreeItem:
		n, _ := t.Name()
		out := ImportTree{Kind: ImportItem, Name: nameOrMissing(n.Text())}
		if a, ok := t.Alias(); ok {
			out.Alias = Name(source.NormalizeName(a.Text()))
		}
		return out
	case ast.ImportTreeCollection:
		out := ImportTree{Kind: ImportCollection}
		for _, sub := range t.Trees() {
			out.List = append(out.List, lowerImportTree(sub))
		}
		return out
	}
	return ImportTree{Kind: ImportCollection}
}
