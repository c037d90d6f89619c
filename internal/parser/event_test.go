package parser

import (
	"errors"
	"testing"

	"shaderlens/internal/lexer"
	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

func expectInternalPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic")
		}
		err, ok := r.(error)
		var ie *InternalError
		if !ok || !errors.As(err, &ie) {
			t.Fatalf("panic value %T is not *InternalError", r)
		}
	}()
	f()
}

func TestMarkerCompletedTwicePanics(t *testing.T) {
	p := newParser(nil, syntax.EditionWESL)
	m := p.Start()
	m.Complete(p, token.SourceFile)
	expectInternalPanic(t, func() { m.Complete(p, token.SourceFile) })
}

func TestOpenMarkerPanicsOnFinish(t *testing.T) {
	p := newParser(nil, syntax.EditionWESL)
	p.Start()
	expectInternalPanic(t, func() { p.Finish() })
}

func TestAbandonPopsTrailingMarker(t *testing.T) {
	p := newParser(lexer.TokenizeString("x"), syntax.EditionWESL)
	outer := p.Start()
	m := p.Start()
	m.Abandon(p)
	if len(p.events) != 1 {
		t.Fatalf("events = %d, want the abandoned slot popped", len(p.events))
	}
	inner := p.Start()
	p.Bump()
	inner.Complete(p, token.NameRef)
	outer.Abandon(p)
	if p.events[0].Kind != EvTombstone {
		t.Errorf("abandoned marker with later events should be a tombstone, got %d", p.events[0].Kind)
	}
	green, _ := sink(p.src.tokens, p.Finish(), nil)
	if green.Kind() != token.NameRef {
		t.Errorf("root = %s", green.Kind())
	}
}

func TestPrecedeSetsForwardParent(t *testing.T) {
	p := newParser(lexer.TokenizeString("a"), syntax.EditionWESL)
	m := p.Start()
	p.Bump()
	cm := m.Complete(p, token.NameRef)
	outer := cm.Precede(p)
	if got := p.events[cm.pos].ForwardParent; got != outer.pos-cm.pos {
		t.Fatalf("forward parent = %d", got)
	}
	outer.Complete(p, token.PathExpr)
	green, _ := sink(p.src.tokens, p.Finish(), nil)
	if green.Kind() != token.PathExpr {
		t.Fatalf("root = %s", green.Kind())
	}
	if len(green.Children()) != 1 || green.Children()[0].Kind() != token.NameRef {
		t.Errorf("precede did not wrap the completed node")
	}
}

func TestExpectationsAccumulateUntilBump(t *testing.T) {
	p := newParser(lexer.TokenizeString("x"), syntax.EditionWESL)
	p.At(token.KwFn)
	p.At(token.KwStruct)
	p.At(token.KwFn)
	if len(p.expected) != 2 {
		t.Fatalf("expected = %v", p.expected)
	}
	p.Bump()
	if len(p.expected) != 0 {
		t.Errorf("bump did not clear expectations: %v", p.expected)
	}
}
