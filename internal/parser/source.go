package parser

import (
	"shaderlens/internal/source"
	"shaderlens/internal/token"
)

// tokenSource walks the lexed tokens for the parser. Trivia is skipped for
// every decision but stays in the slice for the sink.
type tokenSource struct {
	tokens []token.Token
	cursor int
}

func (s *tokenSource) skipTrivia() {
	for s.cursor < len(s.tokens) && s.tokens[s.cursor].Kind.IsTrivia() {
		s.cursor++
	}
}

func (s *tokenSource) peek() (token.Token, bool) {
	s.skipTrivia()
	if s.cursor >= len(s.tokens) {
		return token.Token{Kind: token.EOF}, false
	}
	return s.tokens[s.cursor], true
}

// peekRaw returns the n-th token after the current one without skipping
// trivia in between.
func (s *tokenSource) peekRaw(n int) (token.Token, bool) {
	s.skipTrivia()
	if s.cursor+n >= len(s.tokens) {
		return token.Token{Kind: token.EOF}, false
	}
	return s.tokens[s.cursor+n], true
}

func (s *tokenSource) next() token.Token {
	s.skipTrivia()
	tok := s.tokens[s.cursor]
	s.cursor++
	return tok
}

func (s *tokenSource) lastTokenRange() source.TextRange {
	if len(s.tokens) == 0 {
		return source.TextRange{}
	}
	return s.tokens[len(s.tokens)-1].Span.Range()
}
