package lexer

import (
	"shaderlens/internal/diag"
	"shaderlens/internal/token"
)

// scanString lexes a double-quoted string. Strings only appear in import
// paths; they have no escapes and end at the closing quote or the line end.
func (lx *Lexer) scanString() token.Kind {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			return token.StringLiteral
		case '\n':
			lx.report(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated string literal")
			return token.StringLiteral
		}
		lx.cursor.Bump()
	}
	lx.report(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated string literal")
	return token.StringLiteral
}
