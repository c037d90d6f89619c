package parser_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"shaderlens/internal/parser"
	"shaderlens/internal/syntax"
	"shaderlens/internal/testkit"
	"shaderlens/internal/token"
)

func dumpEntry(t *testing.T, src string, entry parser.Entry) (string, []*parser.ParseError) {
	t.Helper()
	p := parser.ParseEntry(src, entry)
	return syntax.Dump(p.SyntaxNode()), p.Errors()
}

func lines(ss ...string) string { return strings.Join(ss, "\n") + "\n" }

func TestExpressionTrees(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "infix",
			src:  "1+2",
			want: lines(
				`InfixExpr@0..3`,
				`  Literal@0..1`,
				`    IntLiteral@0..1 "1"`,
				`  Plus@1..2 "+"`,
				`  Literal@2..3`,
				`    IntLiteral@2..3 "2"`,
			),
		},
		{
			name: "field chain nests left",
			src:  "a.b.c",
			want: lines(
				`FieldExpr@0..5`,
				`  FieldExpr@0..3`,
				`    PathExpr@0..1`,
				`      NameRef@0..1`,
				`        Ident@0..1 "a"`,
				`    Period@1..2 "."`,
				`    NameRef@2..3`,
				`      Ident@2..3 "b"`,
				`  Period@3..4 "."`,
				`  NameRef@4..5`,
				`    Ident@4..5 "c"`,
			),
		},
		{
			name: "shift is a compound node",
			src:  "1 << 2",
			want: lines(
				`InfixExpr@0..6`,
				`  Literal@0..2`,
				`    IntLiteral@0..1 "1"`,
				`    Whitespace@1..2 " "`,
				`  ShiftLeft@2..5`,
				`    LessThan@2..3 "<"`,
				`    LessThan@3..4 "<"`,
				`    Whitespace@4..5 " "`,
				`  Literal@5..6`,
				`    IntLiteral@5..6 "2"`,
			),
		},
		{
			name: "leading trivia inside first node",
			src:  "  9",
			want: lines(
				`Literal@0..3`,
				`  Whitespace@0..2 "  "`,
				`  IntLiteral@2..3 "9"`,
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := dumpEntry(t, tt.src, parser.EntryExpr)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if got != tt.want {
				t.Errorf("tree mismatch\n got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestBindingPowers(t *testing.T) {
	// 1 + 2 * 3 groups the product; 1 << 2 + 3 groups the sum under the shift.
	root := parser.ParseEntry("1 + 2 * 3", parser.EntryExpr).SyntaxNode()
	if root.Kind() != token.InfixExpr {
		t.Fatalf("root = %s", root.Kind())
	}
	rhs := root.Children()[1]
	if rhs.Kind() != token.InfixExpr || rhs.FirstTokenByKind(token.Star) == nil {
		t.Errorf("product not grouped on the right: %s", syntax.Dump(root))
	}

	root = parser.ParseEntry("1 << 2 + 3", parser.EntryExpr).SyntaxNode()
	if root.FirstChildByKind(token.ShiftLeft) == nil {
		t.Fatalf("top operator is not the shift: %s", syntax.Dump(root))
	}
	if sum := root.Children()[2]; sum.Kind() != token.InfixExpr {
		t.Errorf("sum not grouped under shift: %s", syntax.Dump(root))
	}
}

func TestSpacedAnglesAreNotShift(t *testing.T) {
	p := parser.ParseEntry("a < < b", parser.EntryExpr)
	for n := range p.SyntaxNode().Descendants() {
		if n.Kind() == token.ShiftLeft {
			t.Fatalf("spaced `< <` parsed as shift")
		}
	}
	if len(p.Errors()) == 0 {
		t.Errorf("expected an error for `a < < b`")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"fn name", []string{"expected `(`", "expected `->` or `{`"}},
		{"(1+", nil},
	}
	p := parser.ParseFile(tests[0].src, syntax.EditionWGSL, nil)
	var got []string
	for _, e := range p.Errors() {
		got = append(got, e.Message())
	}
	if strings.Join(got, "|") != strings.Join(tests[0].want, "|") {
		t.Errorf("fn name: got %q, want %q", got, tests[0].want)
	}
	if r := p.Errors()[0].Range; r.Start != 3 || r.End != 7 {
		t.Errorf("EOF error range = %s, want 3..7", r)
	}

	ep := parser.ParseEntry(tests[1].src, parser.EntryExpr)
	got = got[:0]
	for _, e := range ep.Errors() {
		got = append(got, e.Message())
	}
	want := []string{"expected identifier, `bitcast`, or `(`", "expected `)`"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("(1+: got %q, want %q", got, want)
	}
}

func TestFoundInMessage(t *testing.T) {
	p := parser.ParseFile("struct S { a: f32 } }", syntax.EditionWGSL, nil)
	if len(p.Errors()) != 1 {
		t.Fatalf("errors = %v", p.Errors())
	}
	msg := p.Errors()[0].Message()
	if !strings.HasSuffix(msg, ", but found `}`") {
		t.Errorf("message %q lacks found kind", msg)
	}
}

func topKinds(n *syntax.Node) []token.Kind {
	var out []token.Kind
	for _, c := range n.Children() {
		out = append(out, c.Kind())
	}
	return out
}

func TestResilientItems(t *testing.T) {
	src := "fn main ( a: b) -> i32 {}\nfn main ( a\nfn main ( a: b) -> i32 {}"
	p := parser.ParseFile(src, syntax.EditionWGSL, nil)
	root := p.SyntaxNode()
	if root.Text() != src {
		t.Fatalf("lossy parse: %q", root.Text())
	}
	got := topKinds(root)
	if len(got) != 3 {
		t.Fatalf("items = %v, want three functions\n%s", got, syntax.Dump(root))
	}
	for i, k := range got {
		if k != token.Function {
			t.Errorf("item %d = %s, want Function", i, k)
		}
	}
	if len(p.Errors()) == 0 {
		t.Errorf("malformed middle function produced no errors")
	}
	last := root.Children()[2]
	if last.FirstChildByKind(token.CompoundStatement) == nil || last.FirstChildByKind(token.ReturnType) == nil {
		t.Errorf("third function lost its parts:\n%s", syntax.Dump(last))
	}
}

func TestItemsParseCleanly(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind token.Kind
	}{
		{"function", "fn main() -> @location(0) vec4<f32> { let x = 1.0; return vec4<f32>(x); }", token.Function},
		{"struct", "struct S { a: f32, @align(16) b: vec3<f32> }", token.StructDecl},
		{"struct semicolons", "struct S { a: f32; b: i32; };", token.StructDecl},
		{"global var", "@group(0) @binding(0) var<uniform> u: U;", token.GlobalVariableDecl},
		{"storage var", "var<storage, read_write> buf: array<u32>;", token.GlobalVariableDecl},
		{"const", "const N: u32 = 4u;", token.GlobalConstantDecl},
		{"override", "@id(1) override scale = 1.0;", token.OverrideDecl},
		{"alias", "alias V = vec2<f32>;", token.TypeAliasDecl},
		{"const assert", "const_assert 1 < 2;", token.ConstAssertStatement},
		{"enable", "enable f16;", token.EnableDirective},
		{"legacy attributes", "[[stage(vertex)]] fn v() {}", token.Function},
		{"legacy import", "#import bevy::utils", token.PreprocessorImport},
		{"legacy import string", `#import "common.wgsl"`, token.PreprocessorImport},
		{"nested templates", "var<private> m: array<vec2<f32>, 4>;", token.GlobalVariableDecl},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parser.ParseFile(tt.src, syntax.EditionWGSL, nil)
			if len(p.Errors()) != 0 {
				t.Fatalf("errors: %v\n%s", p.Errors(), syntax.Dump(p.SyntaxNode()))
			}
			got := topKinds(p.SyntaxNode())
			if len(got) != 1 || got[0] != tt.kind {
				t.Errorf("items = %v, want [%s]", got, tt.kind)
			}
		})
	}
}

func TestStatements(t *testing.T) {
	tests := []struct {
		src   string
		kind  token.Kind
		inner []token.Kind
	}{
		{"if a { } else if b { } else { }", token.IfStatement, []token.Kind{token.ElseIfBlock, token.ElseBlock}},
		{"for (var i = 0; i < 4; i++) { continue; }", token.ForStatement,
			[]token.Kind{token.ForInitializer, token.ForCondition, token.ForContinuingPart, token.IncrDecrStatement, token.ContinueStatement}},
		{"switch x { case 1, 2: { } default: { } }", token.SwitchStatement,
			[]token.Kind{token.SwitchBodyCase, token.SwitchCaseSelectors, token.SwitchBodyDefault}},
		{"loop { continuing { break if i > 3; } }", token.LoopStatement, []token.Kind{token.ContinuingStatement, token.BreakIfStatement}},
		{"while x { discard; }", token.WhileStatement, []token.Kind{token.DiscardStatement}},
		{"a[0].b = 2", token.AssignmentStmt, []token.Kind{token.IndexExpr, token.FieldExpr}},
		{"x += 1", token.CompoundAssignmentStmt, nil},
		{"f(1, 2)", token.ExprStatement, []token.Kind{token.FunctionCall, token.FunctionParamList}},
		{"let v = bitcast<u32>(1.0)", token.VariableStatement, []token.Kind{token.BitcastExpr, token.ParenExpr}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p := parser.ParseEntry(tt.src, parser.EntryStatement)
			root := p.SyntaxNode()
			if len(p.Errors()) != 0 {
				t.Fatalf("errors: %v\n%s", p.Errors(), syntax.Dump(root))
			}
			if root.Kind() != tt.kind {
				t.Fatalf("root = %s, want %s", root.Kind(), tt.kind)
			}
			seen := map[token.Kind]bool{}
			for n := range root.Descendants() {
				seen[n.Kind()] = true
			}
			for _, k := range tt.inner {
				if !seen[k] {
					t.Errorf("missing %s in\n%s", k, syntax.Dump(root))
				}
			}
		})
	}
}

func TestTypeEntry(t *testing.T) {
	p := parser.ParseEntry("vec2<vec2<f32>>", parser.EntryType)
	if len(p.Errors()) != 0 {
		t.Fatalf("errors: %v", p.Errors())
	}
	root := p.SyntaxNode()
	if root.Kind() != token.TyVec2 {
		t.Fatalf("root = %s", root.Kind())
	}
	p = parser.ParseEntry("Light", parser.EntryType)
	if p.SyntaxNode().Kind() != token.PathType {
		t.Errorf("named type root = %s", p.SyntaxNode().Kind())
	}
}

func TestTrailingInputWrapsInError(t *testing.T) {
	p := parser.ParseEntry("1 2", parser.EntryExpr)
	if p.SyntaxNode().Kind() != token.ErrorNode {
		t.Errorf("root = %s, want ErrorNode", p.SyntaxNode().Kind())
	}
	if p.SyntaxNode().Text() != "1 2" {
		t.Errorf("lossy: %q", p.SyntaxNode().Text())
	}
	if len(p.Errors()) != 1 {
		t.Errorf("errors = %v", p.Errors())
	}
	if empty := parser.ParseEntry("", parser.EntryExpr); empty.SyntaxNode().Kind() != token.ErrorNode {
		t.Errorf("empty root = %s", empty.SyntaxNode().Kind())
	}
}

func TestImports(t *testing.T) {
	src := "import package::foo::{bar, baz as qux};\nimport super::super::m;"
	p := parser.ParseFile(src, syntax.EditionWESL, nil)
	if len(p.Errors()) != 0 {
		t.Fatalf("errors: %v\n%s", p.Errors(), syntax.Dump(p.SyntaxNode()))
	}
	root := p.SyntaxNode()
	imports := root.ChildrenByKind(token.ImportStatement)
	if len(imports) != 2 {
		t.Fatalf("imports = %d", len(imports))
	}
	if imports[0].FirstChildByKind(token.ImportPackageRelative) == nil {
		t.Errorf("package prefix missing")
	}
	path := imports[0].FirstChildByKind(token.ImportTreePath)
	if path == nil || path.FirstChildByKind(token.ImportTreeCollection) == nil {
		t.Fatalf("collection missing:\n%s", syntax.Dump(imports[0]))
	}
	items := path.FirstChildByKind(token.ImportTreeCollection).ChildrenByKind(token.ImportTreeItem)
	if len(items) != 2 || len(items[1].ChildrenByKind(token.Name)) != 2 {
		t.Errorf("collection items wrong:\n%s", syntax.Dump(path))
	}
	if sup := imports[1].FirstChildByKind(token.ImportSuperRelative); sup == nil || len(sup.Text()) != len("super::super::") {
		t.Errorf("super prefix wrong:\n%s", syntax.Dump(imports[1]))
	}

	wgsl := parser.ParseFile("import foo;", syntax.EditionWGSL, nil)
	if len(wgsl.Errors()) != 1 || wgsl.Errors()[0].Message() != "import statements require the WESL edition" {
		t.Errorf("WGSL import errors = %v", wgsl.Errors())
	}
	if wgsl.SyntaxNode().FirstChildByKind(token.ImportStatement) == nil {
		t.Errorf("WGSL import not parsed")
	}
}

func TestSharedCacheReusesNodes(t *testing.T) {
	cache := syntax.NewNodeCache()
	a := parser.ParseFile("fn f() { let x = 1; }\nfn g() {}", syntax.EditionWGSL, cache)
	b := parser.ParseFile("fn f() { let x = 1; }\nfn h() {}", syntax.EditionWGSL, cache)
	fa := a.SyntaxNode().FirstChildByKind(token.Function)
	fb := b.SyntaxNode().FirstChildByKind(token.Function)
	if !fa.Green().Equal(fb.Green()) {
		t.Errorf("identical functions parsed differently")
	}
	la, lb := firstOfKind(fa, token.Literal), firstOfKind(fb, token.Literal)
	if la == nil || lb == nil || la.Green() != lb.Green() {
		t.Errorf("identical literals not shared through the cache")
	}
}

func TestLosslessOnGarbage(t *testing.T) {
	frags := []string{
		"fn", "(", ")", "{", "}", "<", ">", "[[", "]]", "[", "]", "@", "x", "1", "2.5", ";", ",", ":", "::",
		"let", "var", "const", "struct", "import", "#import", " ", "\n", "// c\n", "/* b */", "\"s",
		"if", "else", "for", "while", "switch", "case", "default", "vec3", "array", ".", "=", "+", "-",
		"*", "&", "!", "bitcast", "return", "super", "package", "as", "loop", "continuing", "break",
		"alias", "override", "->", "++", "+=", "$",
	}
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 400; i++ {
		var sb strings.Builder
		for j := rng.IntN(40); j >= 0; j-- {
			sb.WriteString(frags[rng.IntN(len(frags))])
			if rng.IntN(3) == 0 {
				sb.WriteByte(' ')
			}
		}
		src := sb.String()
		for _, ed := range []syntax.Edition{syntax.EditionWGSL, syntax.EditionWESL} {
			if err := testkit.CheckLossless(src, parser.ParseFile(src, ed, nil).SyntaxNode()); err != nil {
				t.Fatalf("parse of %q: %v", src, err)
			}
		}
		for _, entry := range []parser.Entry{parser.EntryExpr, parser.EntryStatement, parser.EntryType} {
			if got := parser.ParseEntry(src, entry).SyntaxNode().Text(); got != src {
				t.Fatalf("lossy %s parse of %q: %q", entry, src, got)
			}
		}
	}
}

func TestTreeShape(t *testing.T) {
	src := `@group(0) @binding(0) var<uniform> light: Light;
struct Light { color: vec3<f32>, intensity: f32 }
fn shade(n: vec3<f32>) -> vec3<f32> {
    var acc = vec3<f32>(0.0);
    for (var i = 0; i < 4; i++) { acc += light.color * f32(i >> 1u); }
    return acc;
}
`
	root := parser.ParseFile(src, syntax.EditionWGSL, nil).SyntaxNode()
	if err := testkit.CheckLossless(src, root); err != nil {
		t.Fatal(err)
	}
	if err := testkit.CheckTreeInvariants(root); err != nil {
		t.Fatal(err)
	}
}

func firstOfKind(n *syntax.Node, kind token.Kind) *syntax.Node {
	for d := range n.Descendants() {
		if d.Kind() == kind {
			return d
		}
	}
	return nil
}
