package diagfmt

import (
	"fmt"
	"io"

	"shaderlens/internal/parser"
	"shaderlens/internal/source"
	"shaderlens/internal/syntax"
)

// FormatTree prints the syntax tree of p followed by its syntax errors.
func FormatTree(w io.Writer, p *parser.Parse, f *source.File) error {
	if _, err := io.WriteString(w, syntax.Dump(p.SyntaxNode())); err != nil {
		return err
	}
	for _, e := range p.Errors() {
		pos := f.LineCol(e.Range.Start)
		if _, err := fmt.Fprintf(w, "error at %d:%d: %s\n", pos.Line, pos.Col, e.Message()); err != nil {
			return err
		}
	}
	return nil
}
