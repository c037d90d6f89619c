package lexer

import (
	"shaderlens/internal/source"
	"shaderlens/internal/token"
)

// Lexer turns file content into tokens. Trivia is returned like any other
// token, so concatenating every token text reproduces the input.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// Next returns the next token. After the end of input it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.cursor.SpanFrom(lx.cursor.Mark())}
	}

	start := lx.cursor.Mark()
	kind := lx.scan()
	return lx.emit(kind, start)
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.Next()
		lx.look = &tok
	}
	return *lx.look
}

func (lx *Lexer) scan() token.Kind {
	ch := lx.cursor.Peek()
	switch {
	case isSpace(ch):
		for isSpace(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return token.Whitespace
	case ch == '/' && lx.cursor.PeekAt(1) == '/':
		lx.cursor.SkipLine()
		return token.LineComment
	case ch == '/' && lx.cursor.PeekAt(1) == '*':
		return lx.scanBlockComment()
	case ch == '#':
		return lx.scanPreprocessor()
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch), ch == '.' && isDec(lx.cursor.PeekAt(1)):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	}
	return lx.scanOperatorOrPunct()
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// Tokenize lexes the whole file; the EOF token is not included.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/3)
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

// TokenizeString lexes text held outside a FileSet.
func TokenizeString(text string) []token.Token {
	return Tokenize(&source.File{Content: []byte(text)}, Options{})
}
