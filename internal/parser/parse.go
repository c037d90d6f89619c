package parser

import (
	"fmt"

	"shaderlens/internal/lexer"
	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

// Entry selects the grammar rule a parse starts from.
type Entry uint8

const (
	EntryFile Entry = iota
	EntryExpr
	EntryStatement
	EntryType
)

func (e Entry) String() string {
	switch e {
	case EntryFile:
		return "file"
	case EntryExpr:
		return "expression"
	case EntryStatement:
		return "statement"
	case EntryType:
		return "type"
	}
	return fmt.Sprintf("Entry(%d)", uint8(e))
}

// Parse is the result of parsing: an immutable green tree plus the syntax
// errors found along the way.
type Parse struct {
	green  *syntax.GreenNode
	errors []*ParseError
}

func (p *Parse) Green() *syntax.GreenNode { return p.green }

// SyntaxNode returns a fresh red root over the green tree.
func (p *Parse) SyntaxNode() *syntax.Node { return syntax.NewRoot(p.green) }

func (p *Parse) Errors() []*ParseError { return p.errors }

// ParseFile parses a whole source file. A nil cache gets a private one.
func ParseFile(text string, edition syntax.Edition, cache *syntax.NodeCache) *Parse {
	return ParseTokens(lexer.TokenizeString(text), edition, EntryFile, cache)
}

// ParseEntry parses text from the given entry rule in the WESL edition.
func ParseEntry(text string, entry Entry) *Parse {
	return ParseTokens(lexer.TokenizeString(text), syntax.EditionWESL, entry, nil)
}

// ParseTokens runs the parser over an already lexed token stream.
func ParseTokens(tokens []token.Token, edition syntax.Edition, entry Entry, cache *syntax.NodeCache) *Parse {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*InternalError); ok {
				panic(&InternalError{
					Msg: fmt.Sprintf("%s entry over %d tokens: %s", entry, len(tokens), ie.Msg),
					Pos: ie.Pos,
				})
			}
			panic(r)
		}
	}()

	p := newParser(tokens, edition)
	runEntry(p, entry)
	green, errs := sink(tokens, p.Finish(), cache)
	return &Parse{green: green, errors: errs}
}

func runEntry(p *Parser, entry Entry) {
	if entry == EntryFile {
		file(p)
		return
	}

	m := p.Start()
	var ok bool
	switch entry {
	case EntryExpr:
		_, ok = expressionBP(p, 0)
	case EntryStatement:
		_, ok = statement(p)
	case EntryType:
		_, ok = typeDecl(p)
	}
	if ok && p.AtEnd() {
		m.Abandon(p)
		return
	}
	if !p.AtEnd() {
		p.ErrorExpected(token.EOF)
		for !p.AtEnd() {
			p.Bump()
		}
	}
	m.Complete(p, token.ErrorNode)
}
