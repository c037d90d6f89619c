package ast

import (
	"strings"

	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

// ImportStatement is `import package::a::{b, c as d};`.
type ImportStatement struct{ base }

func CastImportStatement(n *syntax.Node) (ImportStatement, bool) {
	if !is(n, token.ImportStatement) {
		return ImportStatement{}, false
	}
	return ImportStatement{base{n}}, true
}

func (x ImportStatement) PackageRelative() bool {
	return firstChild(x.n, token.ImportPackageRelative) != nil
}

// SuperCount returns the number of leading `super::` segments.
func (x ImportStatement) SuperCount() int {
	sup := firstChild(x.n, token.ImportSuperRelative)
	if sup == nil {
		return 0
	}
	n := 0
	for _, e := range sup.ChildrenWithTokens() {
		if t, ok := e.(*syntax.Token); ok && t.Kind() == token.KwSuper {
			n++
		}
	}
	return n
}

func (x ImportStatement) Tree() (ImportTree, bool) { return childOf(x.n, CastImportTree) }

// ImportTree is one of ImportTreePath, ImportTreeItem or ImportTreeCollection.
type ImportTree interface {
	Node
	isImportTree()
}

func (ImportTreePath) isImportTree()       {}
func (ImportTreeItem) isImportTree()       {}
func (ImportTreeCollection) isImportTree() {}

func CastImportTree(n *syntax.Node) (ImportTree, bool) {
	if n == nil {
		return nil, false
	}
	b := base{n}
	switch n.Kind() {
	case token.ImportTreePath:
		return ImportTreePath{b}, true
	case token.ImportTreeItem:
		return ImportTreeItem{b}, true
	case token.ImportTreeCollection:
		return ImportTreeCollection{b}, true
	}
	return nil, false
}

// ImportTreePath is `name::tree`.
type ImportTreePath struct{ base }

func (x ImportTreePath) Name() (Name, bool)       { return childOf(x.n, CastName) }
func (x ImportTreePath) Tree() (ImportTree, bool) { return childOf(x.n, CastImportTree) }

// ImportTreeItem is `name` or `name as alias`.
type ImportTreeItem struct{ base }

func (x ImportTreeItem) Name() (Name, bool)  { return nthChild(x.n, 0, CastName) }
func (x ImportTreeItem) Alias() (Name, bool) { return nthChild(x.n, 1, CastName) }

type ImportTreeCollection struct{ base }

func (x ImportTreeCollection) Trees() []ImportTree { return childrenOf(x.n, CastImportTree) }

// PreprocessorImport is the legacy `#import "file"` or `#import a::b`.
type PreprocessorImport struct{ base }

func CastPreprocessorImport(n *syntax.Node) (PreprocessorImport, bool) {
	if !is(n, token.PreprocessorImport) {
		return PreprocessorImport{}, false
	}
	return PreprocessorImport{base{n}}, true
}

// Key returns the import key: the unquoted file name, or the custom path
// text with trivia removed.
func (x PreprocessorImport) Key() (string, bool) {
	if t := tokenOf(x.n, token.StringLiteral); t != nil {
		return strings.Trim(t.Text(), `"`), true
	}
	cp := firstChild(x.n, token.ImportCustomPath)
	if cp == nil {
		return "", false
	}
	var sb strings.Builder
	for t := range cp.Tokens() {
		if !t.Kind().IsTrivia() {
			sb.WriteString(t.Text())
		}
	}
	return sb.String(), sb.Len() > 0
}

// IsFile reports whether the import names a file by string.
func (x PreprocessorImport) IsFile() bool { return tokenOf(x.n, token.StringLiteral) != nil }
