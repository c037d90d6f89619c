package lexer_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"shaderlens/internal/diag"
	"shaderlens/internal/lexer"
	"shaderlens/internal/source"
	"shaderlens/internal/token"
)

func lex(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.wgsl", []byte(src))
	bag := diag.NewBag(0)
	toks := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return toks, bag
}

func kinds(toks []token.Token, withTrivia bool) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		if !withTrivia && tok.IsTrivia() {
			continue
		}
		out = append(out, tok.Kind)
	}
	return out
}

func joined(toks []token.Token) string {
	var sb strings.Builder
	for _, tok := range toks {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

func TestKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{"function header", "fn main() -> vec4<f32> {", []token.Kind{
			token.KwFn, token.Ident, token.ParenLeft, token.ParenRight, token.Arrow,
			token.TyVec4, token.LessThan, token.TyF32, token.GreaterThan, token.BraceLeft,
		}},
		{"nested template closes with single brackets", "array<vec2<f32>>", []token.Kind{
			token.TyArray, token.LessThan, token.TyVec2, token.LessThan, token.TyF32,
			token.GreaterThan, token.GreaterThan,
		}},
		{"shift is two tokens", "a << b", []token.Kind{token.Ident, token.LessThan, token.LessThan, token.Ident}},
		{"shift assign is one token", "a <<= b", []token.Kind{token.Ident, token.ShiftLeftEqual, token.Ident}},
		{"numbers", "1 1u 2i 0x1F 0xFFu 1.5 .5 1. 1e3 2f 1.5h 0x1.8p3", []token.Kind{
			token.IntLiteral, token.UintLiteral, token.IntLiteral, token.IntLiteral, token.UintLiteral,
			token.DecimalFloatLiteral, token.DecimalFloatLiteral, token.DecimalFloatLiteral,
			token.DecimalFloatLiteral, token.DecimalFloatLiteral, token.DecimalFloatLiteral,
			token.HexFloatLiteral,
		}},
		{"no negative literals", "-1", []token.Kind{token.Minus, token.IntLiteral}},
		{"attribute", "@group(0)", []token.Kind{token.At, token.Ident, token.ParenLeft, token.IntLiteral, token.ParenRight}},
		{"import path", "import package::a::{b};", []token.Kind{
			token.KwImport, token.KwPackage, token.ColonColon, token.Ident, token.ColonColon,
			token.BraceLeft, token.Ident, token.BraceRight, token.Semicolon,
		}},
		{"legacy import", "#import bevy::utils", []token.Kind{token.PreprocImport, token.Ident, token.ColonColon, token.Ident}},
		{"member of literal-like ident", "v.xyz", []token.Kind{token.Ident, token.Period, token.Ident}},
		{"compound ops", "a += 1; b++; c != d && e || f", []token.Kind{
			token.Ident, token.PlusEqual, token.IntLiteral, token.Semicolon,
			token.Ident, token.PlusPlus, token.Semicolon,
			token.Ident, token.NotEqual, token.Ident, token.AndAnd, token.Ident, token.OrOr, token.Ident,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, bag := lex(t, tt.src)
			got := kinds(toks, false)
			if len(got) != len(tt.want) {
				t.Fatalf("kinds = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("kinds = %v, want %v", got, tt.want)
				}
			}
			if bag.Len() != 0 {
				t.Errorf("unexpected diagnostics: %v", bag.Items())
			}
		})
	}
}

func TestTrivia(t *testing.T) {
	src := "// line\n#ifdef FOO\n/* a /* nested */ b */ x\n#else\n#endif\n"
	toks, bag := lex(t, src)
	want := []token.Kind{
		token.LineComment, token.Whitespace, token.PreprocIfdef, token.Whitespace,
		token.BlockComment, token.Whitespace, token.Ident, token.Whitespace,
		token.PreprocElse, token.Whitespace, token.PreprocEndif, token.Whitespace,
	}
	got := kinds(toks, true)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestErrorsAreTokens(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unknown char", "let a = $;", diag.LexUnknownChar},
		{"unknown directive", "#pragma once", diag.LexUnknownChar},
		{"unterminated comment", "fn a() {} /* open", diag.LexUnterminatedBlockComment},
		{"unterminated string", "#import \"abc\nfn", diag.LexUnterminatedString},
		{"bad number", "let a = 12abc;", diag.LexBadNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, bag := lex(t, tt.src)
			if joined(toks) != tt.src {
				t.Fatalf("lexing is not lossless: %q", joined(toks))
			}
			if bag.Len() != 1 || bag.Items()[0].Code != tt.code {
				t.Fatalf("diagnostics = %v, want one %s", bag.Items(), tt.code.ID())
			}
		})
	}
}

func TestUnterminatedCommentFix(t *testing.T) {
	src := "fn a() {} /* one /* two"
	_, bag := lex(t, src)
	if bag.Len() != 1 || len(bag.Items()[0].Fixes) != 1 {
		t.Fatalf("diagnostics = %+v", bag.Items())
	}
	edits := bag.Items()[0].Fixes[0].Edits
	n := uint32(len(src))
	if len(edits) != 1 || edits[0].Span.Start != n || edits[0].Span.End != n || edits[0].NewText != "*/*/" {
		t.Errorf("edits = %+v, want two closers at %d", edits, n)
	}
}

func TestUnknownDirectiveNote(t *testing.T) {
	_, bag := lex(t, "#pragma once")
	if bag.Len() != 1 {
		t.Fatalf("diagnostics = %+v", bag.Items())
	}
	notes := bag.Items()[0].Notes
	if len(notes) != 1 || !strings.Contains(notes[0].Msg, "#define_import_path") {
		t.Errorf("notes = %+v", notes)
	}
}

func TestSpansMatchText(t *testing.T) {
	src := "fn főbar(x: f32) -> f32 { return x * 2.0; } // ok"
	toks, _ := lex(t, src)
	var off uint32
	for _, tok := range toks {
		if tok.Span.Start != off {
			t.Fatalf("token %v starts at %d, want %d", tok.Kind, tok.Span.Start, off)
		}
		if src[tok.Span.Start:tok.Span.End] != tok.Text {
			t.Fatalf("span/text mismatch for %v", tok.Kind)
		}
		off = tok.Span.End
	}
	if toks[2].Kind != token.Ident || toks[2].Text != "főbar" {
		t.Errorf("unicode identifier lexed as %v %q", toks[2].Kind, toks[2].Text)
	}
}

func TestLosslessRandom(t *testing.T) {
	alphabet := []string{
		"fn", " ", "\n", "\t", "a", "_b", "9", "0x", ".", "e", "u", "<", ">", "=", "/", "*",
		"#", "#ifdef", "#import", "\"", "@", "[", "]", "(", ")", "{", "}", "é", "\xff", "$", "-", "//",
		"/*", "*/", "::", ";", "vec3", "texture_2d", "1.5", "p", "&", "|", "!",
	}
	r := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		var sb strings.Builder
		for range r.IntN(40) {
			sb.WriteString(alphabet[r.IntN(len(alphabet))])
		}
		src := sb.String()
		toks, _ := lex(t, src)
		if got := joined(toks); got != src {
			t.Fatalf("lossless violated:\n in: %q\nout: %q", src, got)
		}
		for _, tok := range toks {
			if tok.Text == "" {
				t.Fatalf("empty token %v in %q", tok.Kind, src)
			}
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("p.wgsl", []byte("a b"))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	if lx.Peek().Text != "a" || lx.Next().Text != "a" {
		t.Fatal("Peek consumed a token")
	}
	lx.Next()
	if lx.Next().Text != "b" || lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatal("unexpected tail")
	}
}
