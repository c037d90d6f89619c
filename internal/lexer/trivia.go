package lexer

import (
	"strings"

	"shaderlens/internal/diag"
	"shaderlens/internal/token"
)

// scanBlockComment consumes a possibly nested /* */ comment. An
// unterminated comment runs to EOF and is reported.
func (lx *Lexer) scanBlockComment() token.Kind {
	start := lx.cursor.Mark()
	lx.cursor.Off += 2
	depth := 1
	for !lx.cursor.EOF() {
		switch {
		case lx.try2('/', '*'):
			depth++
		case lx.try2('*', '/'):
			depth--
			if depth == 0 {
				return token.BlockComment
			}
		default:
			lx.cursor.Bump()
		}
	}
	end := lx.cursor.Mark()
	lx.errorAt(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment").
		WithFix("close the comment", diag.FixEdit{Span: lx.cursor.SpanFrom(end), NewText: strings.Repeat("*/", depth)}).
		Emit()
	return token.BlockComment
}

var preprocDirectives = []struct {
	word string
	kind token.Kind
}{
	{"#ifdef", token.PreprocIfdef},
	{"#ifndef", token.PreprocIfndef},
	{"#else", token.PreprocElse},
	{"#endif", token.PreprocEndif},
	{"#define_import_path", token.PreprocDefineImportPath},
}

// scanPreprocessor handles '#' lines. Conditional directives and
// #define_import_path are trivia spanning the rest of the line; #import is
// a real token so the parser can build an import item.
func (lx *Lexer) scanPreprocessor() token.Kind {
	start := lx.cursor.Mark()
	if lx.cursor.HasPrefix("#import") && !isIdentContinueByte(lx.cursor.PeekAt(7)) {
		lx.cursor.Off += 7
		return token.PreprocImport
	}
	for _, d := range preprocDirectives {
		n := uint32(len(d.word)) // #nosec G115 -- short constant strings
		if lx.cursor.HasPrefix(d.word) && !isIdentContinueByte(lx.cursor.PeekAt(n)) {
			lx.cursor.SkipLine()
			return d.kind
		}
	}
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	lx.errorAt(diag.LexUnknownChar, sp, "unknown preprocessor directive").
		WithNote(sp, "directives are #ifdef, #ifndef, #else, #endif, #define_import_path and #import").
		Emit()
	return token.Error
}
