package hir

import (
	"strings"

	"shaderlens/internal/ast"
	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

// TypeRef is a type as written: a keyword type with template arguments, or
// a name to be resolved later. A nil *TypeRef means no type was written.
type TypeRef struct {
	// Keyword is the type keyword kind, or token.EOF for a named type.
	Keyword token.Kind
	Name    Name
	Args    []TypeArg
	// Missing marks a type position the parser left empty.
	Missing bool
}

// TypeArg is one template argument. Exactly one field is set.
type TypeArg struct {
	Type *TypeRef
	// Value is the text of a literal argument, such as an array size.
	Value string
	// Word is an address space or access mode.
	Word string
}

func (t *TypeRef) IsNamed() bool { return t != nil && t.Keyword == token.EOF && !t.Missing }

// String renders the reference in WGSL syntax.
func (t *TypeRef) String() string {
	if t == nil || t.Missing {
		return "?"
	}
	var sb strings.Builder
	if t.Keyword == token.EOF {
		sb.WriteString(string(t.Name))
	} else {
		sb.WriteString(t.Keyword.Text())
	}
	if len(t.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			switch {
			case a.Type != nil:
				sb.WriteString(a.Type.String())
			case a.Value != "":
				sb.WriteString(a.Value)
			default:
				sb.WriteString(a.Word)
			}
		}
		sb.WriteByte('>')
	}
	return sb.String()
}

// LowerTypeRef converts a syntax type. ok is false when ty is absent.
func LowerTypeRef(ty ast.Type, ok bool) *TypeRef {
	if !ok || ty == nil {
		return nil
	}
	switch t := ty.(type) {
	case ast.PathType:
		n, _ := t.NameRef()
		if n.Text() == "" {
			return &TypeRef{Keyword: token.EOF, Missing: true}
		}
		return &TypeRef{Keyword: token.EOF, Name: nameOrMissing(n.Text())}
	case ast.KeywordType:
		out := &TypeRef{Keyword: t.Kind()}
		if gl, ok := t.GenericArgs(); ok {
			for _, a := range gl.Args() {
				switch {
				case a.Type != nil:
					out.Args = append(out.Args, TypeArg{Type: LowerTypeRef(a.Type, true)})
				case a.Expr != nil:
					out.Args = append(out.Args, TypeArg{Value: exprText(a.Expr)})
				case a.Token != nil:
					out.Args = append(out.Args, TypeArg{Word: a.Token.Text()})
				}
			}
		}
		return out
	}
	return nil
}

func exprText(e ast.Expr) string {
	var sb strings.Builder
	for t := range e.Syntax().Tokens() {
		if !t.Kind().IsTrivia() {
			sb.WriteString(t.Text())
		}
	}
	return sb.String()
}

// Attr is one attribute with its arguments as source text.
type Attr struct {
	Name string
	Args []string
}

type Attrs []Attr

func (as Attrs) Has(name string) bool {
	_, ok := as.Get(name)
	return ok
}

func (as Attrs) Get(name string) (Attr, bool) {
	for _, a := range as {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

func lowerAttrs(list ast.AttributeList, ok bool) Attrs {
	if !ok {
		return nil
	}
	var out Attrs
	for _, a := range list.Attributes() {
		attr := Attr{Name: a.Name()}
		for _, p := range a.Params() {
			attr.Args = append(attr.Args, exprText(p))
		}
		out = append(out, attr)
	}
	return out
}

type Param struct {
	Name  Name
	Type  *TypeRef
	Attrs Attrs
}

type FunctionData struct {
	Name        Name
	Params      []Param
	ReturnType  *TypeRef
	ReturnAttrs Attrs
	Attrs       Attrs
}

// IsEntryPoint reports a @vertex, @fragment or @compute function.
func (f *FunctionData) IsEntryPoint() bool {
	return f.Attrs.Has("vertex") || f.Attrs.Has("fragment") || f.Attrs.Has("compute")
}

func LowerFunctionData(fn ast.Function) *FunctionData {
	n, _ := fn.Name()
	d := &FunctionData{Name: nameOrMissing(n.Text()), Attrs: lowerAttrs(fn.Attributes())}
	for _, p := range fn.Params() {
		pn, _ := p.Name()
		d.Params = append(d.Params, Param{
			Name:  nameOrMissing(pn.Text()),
			Type:  LowerTypeRef(p.Type()),
			Attrs: lowerAttrs(p.Attributes()),
		})
	}
	if rt, ok := fn.ReturnType(); ok {
		d.ReturnType = LowerTypeRef(rt.Type())
		if d.ReturnType == nil {
			d.ReturnType = &TypeRef{Keyword: token.EOF, Missing: true}
		}
		d.ReturnAttrs = lowerAttrs(rt.Attributes())
	}
	return d
}

type Field struct {
	Name  Name
	Type  *TypeRef
	Attrs Attrs
}

type StructData struct {
	Name   Name
	Fields []Field
	Attrs  Attrs
}

// Field returns the index of the named field.
func (s *StructData) Field(name Name) (int, bool) {
	for i, f := range s.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return -1, false
}

func LowerStructData(st ast.StructDecl) *StructData {
	n, _ := st.Name()
	d := &StructData{Name: nameOrMissing(n.Text()), Attrs: lowerAttrs(st.Attributes())}
	for _, f := range st.Fields() {
		fn, _ := f.Name()
		d.Fields = append(d.Fields, Field{
			Name:  nameOrMissing(fn.Text()),
			Type:  LowerTypeRef(f.Type()),
			Attrs: lowerAttrs(f.Attributes()),
		})
	}
	return d
}

type GlobalVariableData struct {
	Name Name
	Type *TypeRef
	// AddressSpace and AccessMode are "" when not written.
	AddressSpace string
	AccessMode   string
	Attrs        Attrs
	HasInit      bool
}

func LowerGlobalVariableData(v ast.GlobalVariableDecl) *GlobalVariableData {
	n, _ := v.Name()
	d := &GlobalVariableData{
		Name:  nameOrMissing(n.Text()),
		Type:  LowerTypeRef(v.Type()),
		Attrs: lowerAttrs(v.Attributes()),
	}
	if q, ok := v.Qualifier(); ok {
		if t := q.AddressSpace(); t != nil {
			d.AddressSpace = t.Text()
		}
		if t := q.AccessMode(); t != nil {
			d.AccessMode = t.Text()
		}
	}
	_, d.HasInit = v.Init()
	return d
}

type GlobalConstantData struct {
	Name Name
	Type *TypeRef
	// Let marks the legacy `let` spelling.
	Let bool
}

func LowerGlobalConstantData(c ast.GlobalConstantDecl) *GlobalConstantData {
	n, _ := c.Name()
	return &GlobalConstantData{Name: nameOrMissing(n.Text()), Type: LowerTypeRef(c.Type()), Let: c.IsLet()}
}

type OverrideData struct {
	Name  Name
	Type  *TypeRef
	Attrs Attrs
}

func LowerOverrideData(o ast.OverrideDecl) *OverrideData {
	n, _ := o.Name()
	return &OverrideData{Name: nameOrMissing(n.Text()), Type: LowerTypeRef(o.Type()), Attrs: lowerAttrs(o.Attributes())}
}

type TypeAliasData struct {
	Name Name
	Type *TypeRef
}

func LowerTypeAliasData(a ast.TypeAliasDecl) *TypeAliasData {
	n, _ := a.Name()
	ty := LowerTypeRef(a.Type())
	if ty == nil {
		ty = &TypeRef{Keyword: token.EOF, Missing: true}
	}
	return &TypeAliasData{Name: nameOrMissing(n.Text()), Type: ty}
}

// ItemNode resolves an item of a tree to its syntax node.
func ItemNode(root *syntax.Node, ids *AstIdMap, tree *ItemTree, it ModuleItem) (*syntax.Node, bool) {
	id := tree.AstIDOf(it)
	if id == NoAstID {
		return nil, false
	}
	return ids.Node(root, id)
}
