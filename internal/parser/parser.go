package parser

import (
	"fmt"
	"slices"
	"strings"

	"shaderlens/internal/source"
	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

// ParseError is a syntax error recorded while parsing. Expected lists the
// kinds the parser would have accepted; Found is token.EOF at the end of
// input.
type ParseError struct {
	Expected []token.Kind
	Found    token.Kind
	Range    source.TextRange
	// Msg overrides the expected/found message for non-grammar errors.
	Msg string
}

func (e *ParseError) Message() string {
	if e.Msg != "" {
		return e.Msg
	}
	var sb strings.Builder
	sb.WriteString("expected ")
	for i, k := range e.Expected {
		switch {
		case i == 0:
		case i == len(e.Expected)-1 && len(e.Expected) == 2:
			sb.WriteString(" or ")
		case i == len(e.Expected)-1:
			sb.WriteString(", or ")
		default:
			sb.WriteString(", ")
		}
		sb.WriteString(k.Describe())
	}
	if e.Found != token.EOF {
		sb.WriteString(", but found ")
		sb.WriteString(e.Found.Describe())
	}
	return sb.String()
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error at %s: %s", e.Range, e.Message())
}

// stopSet holds tokens that only ever begin a top-level item. Errors never
// swallow them, so a broken item cannot eat the next one.
var stopSet = token.NewSet(
	token.KwFn, token.KwStruct, token.KwOverride, token.KwAlias, token.KwType,
	token.KwImport, token.PreprocImport,
)

// Parser records events for a single token stream.
type Parser struct {
	src      tokenSource
	events   []Event
	expected []token.Kind
	open     int
	edition  syntax.Edition
}

func newParser(tokens []token.Token, edition syntax.Edition) *Parser {
	return &Parser{src: tokenSource{tokens: tokens}, edition: edition}
}

// Finish returns the event log. Every marker must have been completed or
// abandoned.
func (p *Parser) Finish() []Event {
	if p.open != 0 {
		panic(internalf(len(p.events), "%d marker(s) left open", p.open))
	}
	return p.events
}

func (p *Parser) Peek() token.Kind {
	tok, _ := p.src.peek()
	return tok.Kind
}

func (p *Parser) Location() int {
	p.src.skipTrivia()
	return p.src.cursor
}

func (p *Parser) AtEnd() bool {
	_, ok := p.src.peek()
	return !ok
}

func (p *Parser) addExpected(k token.Kind) {
	if !slices.Contains(p.expected, k) {
		p.expected = append(p.expected, k)
	}
}

// SetExpected replaces the accumulated expectations.
func (p *Parser) SetExpected(kinds ...token.Kind) {
	p.expected = append(p.expected[:0], kinds...)
}

func (p *Parser) At(k token.Kind) bool {
	p.addExpected(k)
	return p.Peek() == k
}

// AtSet does not record expectations.
func (p *Parser) AtSet(set token.Set) bool {
	tok, ok := p.src.peek()
	return ok && set.Contains(tok.Kind)
}

func (p *Parser) AtOrEnd(k token.Kind) bool {
	p.addExpected(k)
	tok, ok := p.src.peek()
	return !ok || tok.Kind == k
}

// AtCompound reports whether the next two raw tokens are a and b with no
// trivia between them.
func (p *Parser) AtCompound(a, b token.Kind) bool {
	p.addExpected(a)
	first, ok := p.src.peekRaw(0)
	if !ok || first.Kind != a {
		return false
	}
	second, ok := p.src.peekRaw(1)
	return ok && second.Kind == b
}

func (p *Parser) Bump() token.Kind {
	p.expected = p.expected[:0]
	tok := p.src.next()
	p.events = append(p.events, Event{Kind: EvToken})
	return tok.Kind
}

// BumpCompound consumes two adjacent tokens wrapped in a kind node.
func (p *Parser) BumpCompound(kind token.Kind) {
	m := p.Start()
	p.Bump()
	p.Bump()
	m.Complete(p, kind)
}

func (p *Parser) Eat(k token.Kind) bool {
	if p.At(k) {
		p.Bump()
		return true
	}
	return false
}

func (p *Parser) EatSet(set token.Set) bool {
	if p.AtSet(set) {
		p.Bump()
		return true
	}
	return false
}

func (p *Parser) Expect(k token.Kind) {
	if p.At(k) {
		p.Bump()
		return
	}
	p.Error()
}

func (p *Parser) ExpectNoBump(k token.Kind) {
	if p.At(k) {
		p.Bump()
		return
	}
	p.ErrorNoBump()
}

func (p *Parser) ExpectRecover(k token.Kind, recovery token.Set) {
	if p.At(k) {
		p.Bump()
		return
	}
	p.ErrorRecovery(recovery)
}

func (p *Parser) Error() { p.errorInner(nil, nil, false) }

func (p *Parser) ErrorExpected(kinds ...token.Kind) { p.errorInner(nil, kinds, false) }

func (p *Parser) ErrorExpectedNoBump(kinds ...token.Kind) { p.errorInner(nil, kinds, true) }

func (p *Parser) ErrorRecovery(recovery token.Set) { p.errorInner(&recovery, nil, false) }

func (p *Parser) ErrorNoBump(kinds ...token.Kind) { p.errorInner(nil, kinds, true) }

// ErrorMessage records a free-form error at the current token without
// consuming anything.
func (p *Parser) ErrorMessage(msg string, r source.TextRange) {
	found := p.Peek()
	p.events = append(p.events, Event{Kind: EvError, Err: &ParseError{Found: found, Range: r, Msg: msg}})
}

func (p *Parser) errorInner(recovery *token.Set, expected []token.Kind, noBump bool) {
	tok, ok := p.src.peek()
	var r source.TextRange
	found := token.EOF
	if ok {
		found = tok.Kind
		r = tok.Span.Range()
	} else {
		r = p.src.lastTokenRange()
	}

	if len(expected) == 0 {
		expected = p.expected
		p.expected = nil
	} else {
		expected = slices.Clone(expected)
	}
	p.events = append(p.events, Event{Kind: EvError, Err: &ParseError{Expected: expected, Found: found, Range: r}})

	stop := stopSet
	if recovery != nil {
		stop = stop.Union(*recovery)
	}
	if !ok || stop.Contains(found) {
		return
	}
	m := p.Start()
	if !noBump {
		p.Bump()
	}
	m.Complete(p, token.ErrorNode)
}

// list parses begin (f sep?)* end. An iteration that does not advance is
// reported and the token skipped; the loop stops at item keywords.
func (p *Parser) list(begin, end, sep, kind token.Kind, f func(*Parser)) CompletedMarker {
	m := p.Start()
	p.Expect(begin)
	for !p.AtOrEnd(end) && !p.AtSet(stopSet) {
		loc := p.Location()
		f(p)
		if p.Location() == loc {
			p.Error()
			if p.Location() == loc {
				break
			}
		}
		p.Eat(sep)
	}
	p.Expect(end)
	return m.Complete(p, kind)
}

// listMultisep is list with any separator from seps.
func (p *Parser) listMultisep(begin, end token.Kind, seps token.Set, kind token.Kind, f func(*Parser)) CompletedMarker {
	m := p.Start()
	p.Expect(begin)
	for !p.AtOrEnd(end) && !p.AtSet(stopSet) {
		loc := p.Location()
		f(p)
		if p.Location() == loc {
			p.Error()
			if p.Location() == loc {
				break
			}
		}
		p.EatSet(seps)
	}
	p.Expect(end)
	return m.Complete(p, kind)
}

func (p *Parser) currentRange() source.TextRange {
	if tok, ok := p.src.peek(); ok {
		return tok.Span.Range()
	}
	return p.src.lastTokenRange()
}
