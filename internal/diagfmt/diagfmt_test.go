package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"shaderlens/internal/diag"
	"shaderlens/internal/lexer"
	"shaderlens/internal/parser"
	"shaderlens/internal/source"
	"shaderlens/internal/syntax"
)

const shader = "fn f() -> f32 {\n    return intensitty;\n}\n"

func oneDiagnostic(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("/work/shaders/main.wesl", []byte(shader))
	start := uint32(strings.Index(shader, "intensitty"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemaUnresolvedName, source.Span{File: id, Start: start, End: start + 10}, "unresolved name `intensitty`").
		WithNote(source.Span{File: id, Start: 3, End: 4}, "in function `f`"))
	return bag, fs
}

func TestPrettyUnderline(t *testing.T) {
	bag, fs := oneDiagnostic(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeStored, ShowNotes: true})
	want := "/work/shaders/main.wesl:2:12: ERROR SEM3005: unresolved name `intensitty`\n" +
		" 2 |     return intensitty;\n" +
		"   |            ^~~~~~~~~~\n" +
		"  note: /work/shaders/main.wesl:1:4: in function `f`\n" +
		" 1 | fn f() -> f32 {\n" +
		"   |    ^\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyContextAndWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	text := "// 日本\nlet 日本 = x;\n"
	id := fs.AddVirtual("a.wgsl", []byte(text))
	start := uint32(strings.Index(text, "x;"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemaUnresolvedName, source.Span{File: id, Start: start, End: start + 1}, "x"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 4 || !strings.HasPrefix(lines[1], " 1 | // 日本") {
		t.Fatalf("context line missing:\n%s", buf.String())
	}
	// "let 日本 = " is 11 columns wide
	if lines[3] != "   | "+strings.Repeat(" ", 11)+"^" {
		t.Errorf("caret line = %q", lines[3])
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := oneDiagnostic(t)
	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Error("plain output has escape codes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Error("colored output has no escape codes")
	}
}

func TestShort(t *testing.T) {
	bag, fs := oneDiagnostic(t)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: 99}, "cannot read"))
	var buf bytes.Buffer
	Short(&buf, bag, fs, PathModeBasename, "")
	want := "main.wesl:2:12: ERROR SEM3005: unresolved name `intensitty`\nERROR IO4001: cannot read\n"
	if buf.String() != want {
		t.Errorf("got %q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	bag, fs := oneDiagnostic(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeStored, IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Count != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "SEM3005" || d.Severity != "ERROR" || d.Title != "Unresolved name" {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 12 || d.Location.File != "/work/shaders/main.wesl" {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	text := "let a = 1 << 2 + 3;\n"
	id := fs.AddVirtual("a.wgsl", []byte(text))
	start := uint32(strings.Index(text, "2 + 3"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemaBracesRequired, source.Span{File: id, Start: start, End: start + 5}, "parenthesize").
		WithFix("add parentheses", diag.FixEdit{Span: source.Span{File: id, Start: start, End: start + 5}, NewText: "(2 + 3)"}))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowFixes: true})
	if !strings.Contains(buf.String(), "    - let a = 1 << 2 + 3;\n    + let a = 1 << (2 + 3);\n") {
		t.Errorf("preview missing:\n%s", buf.String())
	}
}

func TestTokensJSON(t *testing.T) {
	toks := lexer.TokenizeString("fn f")
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) < 3 || out[0].Text != "fn" || !out[1].Trivia || out[2].Text != "f" {
		t.Errorf("tokens = %+v", out)
	}
}

func TestFormatTree(t *testing.T) {
	fs := source.NewFileSet()
	text := "fn f( {}\n"
	id := fs.AddVirtual("a.wgsl", []byte(text))
	p := parser.ParseFile(text, syntax.EditionWGSL, nil)
	var buf bytes.Buffer
	if err := FormatTree(&buf, p, fs.Get(id)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "SourceFile@") || !strings.Contains(out, "error at 1:") {
		t.Errorf("tree output:\n%s", out)
	}
}
