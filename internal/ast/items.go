package ast

import (
	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

// Item is a top-level declaration.
type Item interface {
	Node
	isItem()
}

func (Function) isItem()           {}
func (StructDecl) isItem()         {}
func (GlobalVariableDecl) isItem() {}
func (GlobalConstantDecl) isItem() {}
func (OverrideDecl) isItem()       {}
func (TypeAliasDecl) isItem()      {}
func (ConstAssert) isItem()        {}
func (ImportStatement) isItem()    {}
func (PreprocessorImport) isItem() {}

func CastItem(n *syntax.Node) (Item, bool) {
	if n == nil {
		return nil, false
	}
	b := base{n}
	switch n.Kind() {
	case token.Function:
		return Function{b}, true
	case token.StructDecl:
		return StructDecl{b}, true
	case token.GlobalVariableDecl:
		return GlobalVariableDecl{b}, true
	case token.GlobalConstantDecl:
		return GlobalConstantDecl{b}, true
	case token.OverrideDecl:
		return OverrideDecl{b}, true
	case token.TypeAliasDecl:
		return TypeAliasDecl{b}, true
	case token.ConstAssertStatement:
		return ConstAssert{b}, true
	case token.ImportStatement:
		return ImportStatement{b}, true
	case token.PreprocessorImport:
		return PreprocessorImport{b}, true
	}
	return nil, false
}

type SourceFile struct{ base }

func CastSourceFile(n *syntax.Node) (SourceFile, bool) {
	if !is(n, token.SourceFile) {
		return SourceFile{}, false
	}
	return SourceFile{base{n}}, true
}

func (x SourceFile) Items() []Item { return childrenOf(x.n, CastItem) }

type Function struct{ base }

func CastFunction(n *syntax.Node) (Function, bool) {
	if !is(n, token.Function) {
		return Function{}, false
	}
	return Function{base{n}}, true
}

func (x Function) Name() (Name, bool)                { return childOf(x.n, CastName) }
func (x Function) Attributes() (AttributeList, bool) { return attributesOf(x.n) }
func (x Function) ParamList() (ParamList, bool)      { return childOf(x.n, CastParamList) }
func (x Function) ReturnType() (ReturnType, bool)    { return childOf(x.n, CastReturnType) }
func (x Function) Body() (CompoundStatement, bool)   { return childOf(x.n, CastCompoundStatement) }

func (x Function) Params() []Param {
	p, _ := x.ParamList()
	return p.Params()
}

type ParamList struct{ base }

func CastParamList(n *syntax.Node) (ParamList, bool) {
	if !is(n, token.ParamList) {
		return ParamList{}, false
	}
	return ParamList{base{n}}, true
}

func (x ParamList) Params() []Param { return childrenOf(x.n, CastParam) }

type Param struct{ base }

func CastParam(n *syntax.Node) (Param, bool) {
	if !is(n, token.Param) {
		return Param{}, false
	}
	return Param{base{n}}, true
}

func (x Param) Attributes() (AttributeList, bool) { return attributesOf(x.n) }

func (x Param) Decl() (VariableIdentDecl, bool) { return childOf(x.n, CastVariableIdentDecl) }

func (x Param) Name() (Name, bool) {
	d, _ := x.Decl()
	return d.Name()
}

func (x Param) Type() (Type, bool) {
	d, _ := x.Decl()
	return d.Type()
}

// VariableIdentDecl is `name: type`.
type VariableIdentDecl struct{ base }

func CastVariableIdentDecl(n *syntax.Node) (VariableIdentDecl, bool) {
	if !is(n, token.VariableIdentDecl) {
		return VariableIdentDecl{}, false
	}
	return VariableIdentDecl{base{n}}, true
}

func (x VariableIdentDecl) Name() (Name, bool)                { return childOf(x.n, CastName) }
func (x VariableIdentDecl) Type() (Type, bool)                { return childOf(x.n, CastType) }
func (x VariableIdentDecl) Attributes() (AttributeList, bool) { return attributesOf(x.n) }

type ReturnType struct{ base }

func CastReturnType(n *syntax.Node) (ReturnType, bool) {
	if !is(n, token.ReturnType) {
		return ReturnType{}, false
	}
	return ReturnType{base{n}}, true
}

func (x ReturnType) Type() (Type, bool)                { return childOf(x.n, CastType) }
func (x ReturnType) Attributes() (AttributeList, bool) { return attributesOf(x.n) }

type StructDecl struct{ base }

func CastStructDecl(n *syntax.Node) (StructDecl, bool) {
	if !is(n, token.StructDecl) {
		return StructDecl{}, false
	}
	return StructDecl{base{n}}, true
}

func (x StructDecl) Name() (Name, bool)                { return childOf(x.n, CastName) }
func (x StructDecl) Attributes() (AttributeList, bool) { return attributesOf(x.n) }

func (x StructDecl) Fields() []StructField {
	return childrenOf(firstChild(x.n, token.StructDeclBody), CastStructField)
}

type StructField struct{ base }

func CastStructField(n *syntax.Node) (StructField, bool) {
	if !is(n, token.StructDeclField) {
		return StructField{}, false
	}
	return StructField{base{n}}, true
}

func (x StructField) Attributes() (AttributeList, bool) { return attributesOf(x.n) }

func (x StructField) Decl() (VariableIdentDecl, bool) { return childOf(x.n, CastVariableIdentDecl) }

func (x StructField) Name() (Name, bool) {
	d, _ := x.Decl()
	return d.Name()
}

func (x StructField) Type() (Type, bool) {
	d, _ := x.Decl()
	return d.Type()
}

type GlobalVariableDecl struct{ base }

func CastGlobalVariableDecl(n *syntax.Node) (GlobalVariableDecl, bool) {
	if !is(n, token.GlobalVariableDecl) {
		return GlobalVariableDecl{}, false
	}
	return GlobalVariableDecl{base{n}}, true
}

func (x GlobalVariableDecl) Name() (Name, bool)                   { return childOf(x.n, CastName) }
func (x GlobalVariableDecl) Attributes() (AttributeList, bool)    { return attributesOf(x.n) }
func (x GlobalVariableDecl) Qualifier() (VariableQualifier, bool) { return childOf(x.n, CastVariableQualifier) }
func (x GlobalVariableDecl) Type() (Type, bool)                   { return childOf(x.n, CastType) }
func (x GlobalVariableDecl) Init() (Expr, bool)                   { return childOf(x.n, CastExpr) }

// VariableQualifier is `<address_space[, access_mode]>`.
type VariableQualifier struct{ base }

func CastVariableQualifier(n *syntax.Node) (VariableQualifier, bool) {
	if !is(n, token.VariableQualifier) {
		return VariableQualifier{}, false
	}
	return VariableQualifier{base{n}}, true
}

func (x VariableQualifier) words() []*syntax.Token {
	if x.n == nil {
		return nil
	}
	var out []*syntax.Token
	for _, e := range x.n.ChildrenWithTokens() {
		if t, ok := e.(*syntax.Token); ok && (t.Kind() == token.Ident || t.Kind().IsKeyword()) {
			out = append(out, t)
		}
	}
	return out
}

// AddressSpace returns the address space token, or nil.
func (x VariableQualifier) AddressSpace() *syntax.Token {
	if w := x.words(); len(w) > 0 {
		return w[0]
	}
	return nil
}

// AccessMode returns the access mode token, or nil.
func (x VariableQualifier) AccessMode() *syntax.Token {
	if w := x.words(); len(w) > 1 {
		return w[1]
	}
	return nil
}

type GlobalConstantDecl struct{ base }

func CastGlobalConstantDecl(n *syntax.Node) (GlobalConstantDecl, bool) {
	if !is(n, token.GlobalConstantDecl) {
		return GlobalConstantDecl{}, false
	}
	return GlobalConstantDecl{base{n}}, true
}

func (x GlobalConstantDecl) Name() (Name, bool) { return childOf(x.n, CastName) }
func (x GlobalConstantDecl) Type() (Type, bool) { return childOf(x.n, CastType) }
func (x GlobalConstantDecl) Init() (Expr, bool) { return childOf(x.n, CastExpr) }

// IsLet reports the legacy `let` spelling.
func (x GlobalConstantDecl) IsLet() bool { return tokenOf(x.n, token.KwLet) != nil }

type OverrideDecl struct{ base }

func CastOverrideDecl(n *syntax.Node) (OverrideDecl, bool) {
	if !is(n, token.OverrideDecl) {
		return OverrideDecl{}, false
	}
	return OverrideDecl{base{n}}, true
}

func (x OverrideDecl) Name() (Name, bool)                { return childOf(x.n, CastName) }
func (x OverrideDecl) Attributes() (AttributeList, bool) { return attributesOf(x.n) }
func (x OverrideDecl) Type() (Type, bool)                { return childOf(x.n, CastType) }
func (x OverrideDecl) Init() (Expr, bool)                { return childOf(x.n, CastExpr) }

type TypeAliasDecl struct{ base }

func CastTypeAliasDecl(n *syntax.Node) (TypeAliasDecl, bool) {
	if !is(n, token.TypeAliasDecl) {
		return TypeAliasDecl{}, false
	}
	return TypeAliasDecl{base{n}}, true
}

func (x TypeAliasDecl) Name() (Name, bool) { return childOf(x.n, CastName) }
func (x TypeAliasDecl) Type() (Type, bool) { return childOf(x.n, CastType) }

// ConstAssert is `const_assert expr;`, both at module level and in bodies.
type ConstAssert struct{ base }

func CastConstAssert(n *syntax.Node) (ConstAssert, bool) {
	if !is(n, token.ConstAssertStatement) {
		return ConstAssert{}, false
	}
	return ConstAssert{base{n}}, true
}

func (x ConstAssert) Expr() (Expr, bool) { return childOf(x.n, CastExpr) }
