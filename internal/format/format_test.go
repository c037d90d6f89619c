package format_test

import (
	"errors"
	"strings"
	"testing"

	"shaderlens/internal/format"
	"shaderlens/internal/parser"
	"shaderlens/internal/syntax"
)

func run(src string, opts format.Options) string {
	p := parser.ParseFile(src, syntax.EditionWGSL, nil)
	return format.Format(p.SyntaxNode(), opts)
}

func lines(ss ...string) string { return strings.Join(ss, "\n") + "\n" }

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		policy format.Policy
		want   string
	}{
		{
			name: "fn header",
			src:  "fn  main ( a :  b )  -> f32   {}",
			want: lines("fn main(a: b) -> f32 {}"),
		},
		{
			name: "no whitespace",
			src:  "fn main(a:b)->f32{}",
			want: lines("fn main(a: b) -> f32 {}"),
		},
		{
			name: "single line drops trailing comma",
			src:  "fn main(a: b , c: d ,)  -> f32   {}",
			want: lines("fn main(a: b, c: d) -> f32 {}"),
		},
		{
			name: "multi-line list keeps comma by default",
			src:  "fn main(\n  a:b,\n      c:d,\n)->f32{}",
			want: lines(
				"fn main(",
				"    a: b,",
				"    c: d,",
				") -> f32 {}",
			),
		},
		{
			name:   "multi-line list inserts comma",
			src:    "fn main(\n    a:b,\n    c:d\n)->f32{}",
			policy: format.Insert,
			want: lines(
				"fn main(",
				"    a: b,",
				"    c: d,",
				") -> f32 {}",
			),
		},
		{
			name:   "multi-line list removes comma",
			src:    "fn main(\n    a:b,\n    c:d,\n)->f32{}",
			policy: format.Remove,
			want: lines(
				"fn main(",
				"    a: b,",
				"    c: d",
				") -> f32 {}",
			),
		},
		{
			name: "closing paren moves to its own line",
			src:  "fn main(\n    a:b, c:d)->f32{}",
			want: lines(
				"fn main(",
				"    a: b, c: d",
				") -> f32 {}",
			),
		},
		{
			name: "struct body",
			src:  "\n   struct  Test   \n  {  @location(0) x: i32,\n        b: f32, \n\n     }",
			want: lines(
				"struct Test {",
				"    @location(0) x: i32,",
				"    b: f32,",
				"}",
			),
		},
		{
			name: "nested blocks",
			src:  "fn f(){\nif (x) {\nreturn;\n} else {\nlet a=-  -1;\n}\n}",
			want: lines(
				"fn f() {",
				"    if (x) {",
				"        return;",
				"    } else {",
				"        let a = - -1;",
				"    }",
				"}",
			),
		},
		{
			name: "operators",
			src:  "fn f() { let y = ( 1<<2 ) + b[ 1 ].c; }",
			want: lines("fn f() { let y = (1 << 2) + b[1].c; }"),
		},
		{
			name: "templates",
			src:  "var < uniform > u : array < vec4 < f32 > , 2 > ;",
			want: lines("var<uniform> u: array<vec4<f32>, 2>;"),
		},
		{
			name: "blank lines collapse",
			src:  "const a = 1;\n\n\n\nconst b = 2;\n",
			want: lines("const a = 1;", "", "const b = 2;"),
		},
		{
			name: "comments",
			src:  "fn f() {\n// lead\nlet x = 1;   // trail\n      // end\n}\n// after\n",
			want: lines(
				"fn f() {",
				"    // lead",
				"    let x = 1; // trail",
				"    // end",
				"}",
				"// after",
			),
		},
		{
			name: "directives at column zero",
			src:  "fn f() {\n    #ifdef A\n    let x = 1;\n    #endif\n}",
			want: lines(
				"fn f() {",
				"#ifdef A",
				"    let x = 1;",
				"#endif",
				"}",
			),
		},
		{
			name: "empty",
			src:  " \n\n ",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(tt.src, format.Options{TrailingCommas: tt.policy})
			if got != tt.want {
				t.Fatalf("Format(%q):\n got: %q\nwant: %q", tt.src, got, tt.want)
			}
			if again := run(got, format.Options{TrailingCommas: tt.policy}); again != got {
				t.Fatalf("not idempotent:\nfirst:  %q\nsecond: %q", got, again)
			}
		})
	}
}

func TestFormatIndent(t *testing.T) {
	got := run("fn f() {\nreturn;\n}", format.Options{Indent: "\t"})
	if want := lines("fn f() {", "\treturn;", "}"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatKeepsTokens(t *testing.T) {
	src := `@group(0) @binding(1) var<storage, read_write> buf: array<u32>;

struct In { @builtin(position) pos: vec4<f32> }

@compute @workgroup_size(8, 8, 1)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
    for (var i = 0u; i < 4u; i++) { buf[i] = bitcast<u32>(1.0) ^ ~id.x; }
    switch id.x { case 1u, 2u: { } default: {} }
}
`
	got := run(src, format.Options{})
	strip := func(s string) string { return strings.Join(strings.Fields(s), "") }
	if strip(got) != strip(src) {
		t.Fatalf("formatting changed tokens:\n%s", got)
	}
	if again := run(got, format.Options{}); again != got {
		t.Fatalf("not idempotent:\n%s\n---\n%s", got, again)
	}
	if !strings.Contains(got, "bitcast<u32>(1.0)") {
		t.Fatalf("bitcast spacing: %s", got)
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]format.Policy{"": format.Ignore, "ignore": format.Ignore, "Remove": format.Remove, "insert": format.Insert} {
		got, err := format.ParsePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := format.ParsePolicy("always"); !errors.Is(err, format.ErrUnknownPolicy) {
		t.Fatalf("err = %v", err)
	}
}
