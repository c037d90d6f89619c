package ast_test

import (
	"testing"

	"shaderlens/internal/ast"
	"shaderlens/internal/parser"
	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

func parseFile(t *testing.T, src string) ast.SourceFile {
	t.Helper()
	p := parser.ParseFile(src, syntax.EditionWESL, nil)
	f, ok := ast.CastSourceFile(p.SyntaxNode())
	if !ok {
		t.Fatalf("root is not a SourceFile")
	}
	return f
}

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	p := parser.ParseEntry(src, parser.EntryExpr)
	e, ok := ast.CastExpr(p.SyntaxNode())
	if !ok {
		t.Fatalf("%q: root %s is not an expression", src, p.SyntaxNode().Kind())
	}
	return e
}

func TestItemsInOrder(t *testing.T) {
	f := parseFile(t, `
struct S { a: f32, b: vec3<f32> }
@group(0) @binding(1) var<uniform> u: S;
const C = 1;
override O: u32 = 2u;
alias A = S;
const_assert C == 1;
fn main(@builtin(position) p: vec4<f32>) -> @location(0) vec4<f32> { return p; }
`)
	items := f.Items()
	want := []string{"StructDecl", "GlobalVariableDecl", "GlobalConstantDecl", "OverrideDecl",
		"TypeAliasDecl", "ConstAssert", "Function"}
	if len(items) != len(want) {
		t.Fatalf("items = %d, want %d", len(items), len(want))
	}
	for i, it := range items {
		got := ""
		switch it.(type) {
		case ast.StructDecl:
			got = "StructDecl"
		case ast.GlobalVariableDecl:
			got = "GlobalVariableDecl"
		case ast.GlobalConstantDecl:
			got = "GlobalConstantDecl"
		case ast.OverrideDecl:
			got = "OverrideDecl"
		case ast.TypeAliasDecl:
			got = "TypeAliasDecl"
		case ast.ConstAssert:
			got = "ConstAssert"
		case ast.Function:
			got = "Function"
		}
		if got != want[i] {
			t.Errorf("item %d = %s, want %s", i, got, want[i])
		}
	}

	st := items[0].(ast.StructDecl)
	fields := st.Fields()
	if len(fields) != 2 {
		t.Fatalf("fields = %d", len(fields))
	}
	n, _ := fields[1].Name()
	ty, _ := fields[1].Type()
	kw, ok := ty.(ast.KeywordType)
	if n.Text() != "b" || !ok || kw.Kind() != token.TyVec3 {
		t.Errorf("field b: name %q type %T", n.Text(), ty)
	}
	if args, ok := kw.GenericArgs(); !ok || len(args.Args()) != 1 || args.Args()[0].Type == nil {
		t.Errorf("vec3<f32> generic args not found")
	}

	gv := items[1].(ast.GlobalVariableDecl)
	attrs, _ := gv.Attributes()
	if !attrs.Has("group") || !attrs.Has("binding") || attrs.Has("location") {
		t.Errorf("global attributes wrong")
	}
	q, _ := gv.Qualifier()
	if as := q.AddressSpace(); as == nil || as.Text() != "uniform" {
		t.Errorf("address space = %v", as)
	}
	if q.AccessMode() != nil {
		t.Errorf("unexpected access mode")
	}

	fn := items[6].(ast.Function)
	params := fn.Params()
	if len(params) != 1 {
		t.Fatalf("params = %d", len(params))
	}
	pa, _ := params[0].Attributes()
	if a := pa.Attributes(); len(a) != 1 || a[0].Name() != "builtin" || len(a[0].Params()) != 1 {
		t.Errorf("param attributes wrong")
	}
	rt, _ := fn.ReturnType()
	ra, _ := rt.Attributes()
	if !ra.Has("location") {
		t.Errorf("return attributes missing location")
	}
	body, _ := fn.Body()
	stmts := body.Statements()
	if len(stmts) != 1 {
		t.Fatalf("statements = %d", len(stmts))
	}
	if _, ok := stmts[0].(ast.ReturnStmt); !ok {
		t.Errorf("statement is %T", stmts[0])
	}
}

func TestMissingChildrenDoNotPanic(t *testing.T) {
	f := parseFile(t, "fn")
	fn := f.Items()[0].(ast.Function)
	if _, ok := fn.Name(); ok {
		t.Errorf("name should be missing")
	}
	if _, ok := fn.Body(); ok {
		t.Errorf("body should be missing")
	}
	if fn.Params() != nil {
		t.Errorf("params should be nil")
	}
	var empty ast.Function
	if _, ok := empty.ReturnType(); ok || empty.Valid() {
		t.Errorf("zero wrapper should be empty")
	}
}

func TestBinaryOps(t *testing.T) {
	tests := []struct {
		src string
		op  ast.BinaryOp
	}{
		{"a + b", ast.OpAdd},
		{"a << b", ast.OpShl},
		{"a >> b", ast.OpShr},
		{"a <= b", ast.OpLe},
		{"a && b", ast.OpAndAnd},
		{"a ^ b", ast.OpBitXor},
		{"a % b", ast.OpRem},
	}
	for _, tt := range tests {
		e := parseExpr(t, tt.src)
		in, ok := e.(ast.InfixExpr)
		if !ok {
			t.Fatalf("%q: %T", tt.src, e)
		}
		op, ok := in.Op()
		if !ok || op != tt.op {
			t.Errorf("%q: op = %s, want %s", tt.src, op, tt.op)
		}
		if _, ok := in.Lhs(); !ok {
			t.Errorf("%q: lhs missing", tt.src)
		}
		if _, ok := in.Rhs(); !ok {
			t.Errorf("%q: rhs missing", tt.src)
		}
	}
}

func TestPrefixAndLiterals(t *testing.T) {
	e := parseExpr(t, "-&x")
	pre := e.(ast.PrefixExpr)
	if op, _ := pre.Op(); op != ast.UnNeg {
		t.Errorf("outer op = %s", op)
	}
	inner, _ := pre.Operand()
	if op, _ := inner.(ast.PrefixExpr).Op(); op != ast.UnAddrOf {
		t.Errorf("inner op = %s", op)
	}

	lits := []struct {
		src  string
		kind ast.LiteralKind
	}{
		{"1", ast.LitInt},
		{"1u", ast.LitUint},
		{"0x1u", ast.LitUint},
		{"1.5", ast.LitFloat},
		{"2f", ast.LitFloat},
		{"true", ast.LitBool},
	}
	for _, tt := range lits {
		l, ok := parseExpr(t, tt.src).(ast.Literal)
		if !ok || l.Kind() != tt.kind || l.Text() != tt.src {
			t.Errorf("%q: kind %s text %q", tt.src, l.Kind(), l.Text())
		}
	}
}

func TestCallsAndInitializers(t *testing.T) {
	call := parseExpr(t, "max(a, 2)").(ast.FunctionCall)
	if n, ok := call.NameRef(); !ok || n.Text() != "max" {
		t.Errorf("callee = %q", n.Text())
	}
	if len(call.Args()) != 2 {
		t.Errorf("args = %d", len(call.Args()))
	}

	ti := parseExpr(t, "vec2<f32>(1.0, 2.0)").(ast.TypeInitializer)
	ty, _ := ti.Type()
	if kw, ok := ty.(ast.KeywordType); !ok || kw.Kind() != token.TyVec2 {
		t.Errorf("initializer type = %T", ty)
	}
	if len(ti.Args()) != 2 {
		t.Errorf("initializer args = %d", len(ti.Args()))
	}

	idx := parseExpr(t, "a.b[1]").(ast.IndexExpr)
	base, _ := idx.Base()
	fe, ok := base.(ast.FieldExpr)
	if !ok {
		t.Fatalf("index base = %T", base)
	}
	if f, _ := fe.Field(); f.Text() != "b" {
		t.Errorf("field = %q", f.Text())
	}

	bc := parseExpr(t, "bitcast<u32>(x)").(ast.BitcastExpr)
	if _, ok := bc.Type(); !ok {
		t.Errorf("bitcast type missing")
	}
	if _, ok := bc.Inner(); !ok {
		t.Errorf("bitcast operand missing")
	}
}

func TestStatements(t *testing.T) {
	f := parseFile(t, `fn f() {
	var<function> x: i32 = 1;
	x += 2;
	x++;
	_ = x;
	for (var i = 0; i < 4; i++) { continue; }
	switch x { case 1, default: { break; } }
	if x > 0 { } else if x < 0 { } else { }
	loop { continuing { break if x > 3; } }
}`)
	fn := f.Items()[0].(ast.Function)
	body, _ := fn.Body()
	stmts := body.Statements()
	if len(stmts) != 8 {
		t.Fatalf("statements = %d", len(stmts))
	}

	vs := stmts[0].(ast.VariableStatement)
	if vs.Keyword() != token.KwVar {
		t.Errorf("keyword = %s", vs.Keyword())
	}
	if _, ok := vs.Init(); !ok {
		t.Errorf("var init missing")
	}
	if op, _ := stmts[1].(ast.CompoundAssignmentStmt).Op(); op != ast.OpAdd {
		t.Errorf("compound op = %s", op)
	}
	if !stmts[2].(ast.IncrDecrStatement).IsIncrement() {
		t.Errorf("expected increment")
	}
	if !stmts[3].(ast.AssignmentStmt).IsPhony() {
		t.Errorf("expected phony assignment")
	}

	fs := stmts[4].(ast.ForStatement)
	if _, ok := fs.Initializer(); !ok {
		t.Errorf("for initializer missing")
	}
	if _, ok := fs.Condition(); !ok {
		t.Errorf("for condition missing")
	}
	if _, ok := fs.Continuing(); !ok {
		t.Errorf("for continuing missing")
	}

	sw := stmts[5].(ast.SwitchStatement)
	cases := sw.Cases()
	if len(cases) != 1 || !cases[0].IsDefault() || len(cases[0].Selectors()) != 1 {
		t.Errorf("switch cases wrong")
	}

	ifs := stmts[6].(ast.IfStatement)
	if len(ifs.ElseIfs()) != 1 {
		t.Errorf("else ifs = %d", len(ifs.ElseIfs()))
	}
	if _, ok := ifs.Else(); !ok {
		t.Errorf("else missing")
	}

	lp := stmts[7].(ast.LoopStatement)
	lb, _ := lp.Block()
	inner := lb.Statements()
	if len(inner) != 1 {
		t.Fatalf("loop body = %d", len(inner))
	}
	cont := inner[0].(ast.ContinuingStatement)
	cb, _ := cont.Block()
	if _, ok := cb.Statements()[0].(ast.BreakIfStatement); !ok {
		t.Errorf("continuing does not hold break if")
	}
}

func TestImports(t *testing.T) {
	f := parseFile(t, "import super::super::a::{b, c as d};\nimport package::x;\n")
	items := f.Items()
	if len(items) != 2 {
		t.Fatalf("items = %d", len(items))
	}
	im := items[0].(ast.ImportStatement)
	if im.SuperCount() != 2 || im.PackageRelative() {
		t.Errorf("super count = %d", im.SuperCount())
	}
	tree, _ := im.Tree()
	path := tree.(ast.ImportTreePath)
	if n, _ := path.Name(); n.Text() != "a" {
		t.Errorf("path head = %q", n.Text())
	}
	sub, _ := path.Tree()
	coll := sub.(ast.ImportTreeCollection)
	trees := coll.Trees()
	if len(trees) != 2 {
		t.Fatalf("collection = %d", len(trees))
	}
	item := trees[1].(ast.ImportTreeItem)
	n, _ := item.Name()
	a, _ := item.Alias()
	if n.Text() != "c" || a.Text() != "d" {
		t.Errorf("alias item = %q as %q", n.Text(), a.Text())
	}
	if !items[1].(ast.ImportStatement).PackageRelative() {
		t.Errorf("expected package-relative import")
	}
}

func TestLegacyImportKey(t *testing.T) {
	p := parser.ParseFile("#import bevy::utils\n#import \"common.wgsl\"\nfn f() {}", syntax.EditionWGSL, nil)
	f, _ := ast.CastSourceFile(p.SyntaxNode())
	var keys []string
	for _, it := range f.Items() {
		if pi, ok := it.(ast.PreprocessorImport); ok {
			k, _ := pi.Key()
			keys = append(keys, k)
		}
	}
	if len(keys) != 2 || keys[0] != "bevy::utils" || keys[1] != "common.wgsl" {
		t.Errorf("keys = %v", keys)
	}
}
