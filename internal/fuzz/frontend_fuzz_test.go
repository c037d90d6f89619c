package fuzztests

import (
	"testing"

	"shaderlens/internal/format"
	"shaderlens/internal/lexer"
	"shaderlens/internal/parser"
	"shaderlens/internal/preproc"
	"shaderlens/internal/source"
	"shaderlens/internal/syntax"
	"shaderlens/internal/testkit"
)

func FuzzLexerCoversInput(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)
		toks := lexer.Tokenize(&source.File{Content: input}, lexer.Options{})
		var off uint32
		for _, tok := range toks {
			if tok.Span.Start != off || tok.Span.End <= tok.Span.Start {
				t.Fatalf("token %s at %d..%d, want start %d", tok.Kind, tok.Span.Start, tok.Span.End, off)
			}
			off = tok.Span.End
		}
		if int(off) != len(input) {
			t.Fatalf("tokens end at %d of %d bytes", off, len(input))
		}
	})
}

func FuzzParserLossless(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		text := string(clamp(input))
		for _, ed := range []syntax.Edition{syntax.EditionWGSL, syntax.EditionWESL} {
			p := parser.ParseFile(text, ed, nil)
			root := p.SyntaxNode()
			if err := testkit.CheckLossless(text, root); err != nil {
				t.Fatal(err)
			}
			// Recovery may leave empty nodes behind; only clean parses
			// must have a well-formed shape.
			if len(p.Errors()) > 0 {
				continue
			}
			if err := testkit.CheckTreeInvariants(root); err != nil {
				t.Fatal(err)
			}
		}
	})
}

func FuzzPreprocessKeepsOffsets(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		text := string(clamp(input))
		res := preproc.Process(text, preproc.NewDefs("SKINNED"))
		if len(res.Text) != len(text) {
			t.Fatalf("processed text is %d bytes, input %d", len(res.Text), len(text))
		}
		for i := range len(text) {
			if text[i] == '\n' && res.Text[i] != '\n' {
				t.Fatalf("newline at %d was replaced", i)
			}
		}
	})
}

func FuzzFormatIdempotent(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		text := string(clamp(input))
		p := parser.ParseFile(text, syntax.EditionWESL, nil)
		if len(p.Errors()) > 0 {
			return
		}
		once := format.Format(p.SyntaxNode(), format.Options{})
		reparsed := parser.ParseFile(once, syntax.EditionWESL, nil)
		if len(reparsed.Errors()) > 0 {
			t.Fatalf("formatted text does not parse:\n%s", once)
		}
		if twice := format.Format(reparsed.SyntaxNode(), format.Options{}); twice != once {
			t.Fatalf("format is not idempotent:\n%q\n%q", once, twice)
		}
	})
}
