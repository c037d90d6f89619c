package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"shaderlens/internal/source"
	"shaderlens/internal/token"
)

type TokenOutput struct {
	Kind   string `json:"kind"`
	Text   string `json:"text,omitempty"`
	Start  uint32 `json:"start"`
	End    uint32 `json:"end"`
	Trivia bool   `json:"trivia,omitempty"`
}

// FormatTokensPretty prints one token per line with its position. Trivia
// is printed too, since the token stream is lossless.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-22s %q at %d:%d-%d:%d\n", i+1, tok.Kind, tok.Text,
			startPos.Line, startPos.Col, endPos.Line, endPos.Col); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON prints the tokens as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Start:  tok.Span.Start,
			End:    tok.Span.End,
			Trivia: tok.IsTrivia(),
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
