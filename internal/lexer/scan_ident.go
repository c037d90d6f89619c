package lexer

import (
	"shaderlens/internal/diag"
	"shaderlens/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Kind {
	start := lx.cursor.Mark()
	r, _ := lx.peekRune()
	if !isIdentStartRune(r) {
		lx.bumpRune()
		lx.report(diag.LexUnknownChar, lx.cursor.SpanFrom(start), "unknown character")
		return token.Error
	}
	lx.bumpRune()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	if kw, ok := token.LookupKeyword(string(lx.file.Content[sp.Start:sp.End])); ok {
		return kw
	}
	return token.Ident
}
