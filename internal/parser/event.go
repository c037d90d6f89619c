package parser

import (
	"fmt"

	"fortio.org/safecast"

	"shaderlens/internal/token"
)

type EventKind uint8

const (
	EvPlaceholder EventKind = iota
	EvStart
	EvToken
	EvFinish
	EvError
	EvTombstone
)

// Event is one step of the flat parse log consumed by the sink.
type Event struct {
	Kind EventKind
	Node token.Kind
	// ForwardParent is the distance to the start event of the node that
	// wraps this one; zero means none.
	ForwardParent uint32
	Err           *ParseError
}

// InternalError reports a broken parser invariant such as a marker that was
// completed twice or never completed.
type InternalError struct {
	Msg string
	Pos int
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("parser internal error at event %d: %s", e.Pos, e.Msg)
}

func internalf(pos int, format string, args ...any) *InternalError {
	return &InternalError{Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// Marker is an open node. It must be completed or abandoned before the
// parse finishes.
type Marker struct {
	pos uint32
}

// CompletedMarker is a finished node that can still be wrapped by a later
// marker through Precede.
type CompletedMarker struct {
	pos  uint32
	kind token.Kind
}

func (cm CompletedMarker) Kind() token.Kind { return cm.kind }

func (p *Parser) Start() Marker {
	pos, err := safecast.Conv[uint32](len(p.events))
	if err != nil {
		panic(internalf(len(p.events), "event log overflow: %v", err))
	}
	p.events = append(p.events, Event{Kind: EvPlaceholder})
	p.open++
	return Marker{pos: pos}
}

func (m Marker) Complete(p *Parser, kind token.Kind) CompletedMarker {
	ev := &p.events[m.pos]
	if ev.Kind != EvPlaceholder {
		panic(internalf(int(m.pos), "marker completed twice (slot holds %d)", ev.Kind))
	}
	ev.Kind = EvStart
	ev.Node = kind
	p.events = append(p.events, Event{Kind: EvFinish})
	p.open--
	return CompletedMarker{pos: m.pos, kind: kind}
}

func (m Marker) Abandon(p *Parser) {
	if p.events[m.pos].Kind != EvPlaceholder {
		panic(internalf(int(m.pos), "abandoning a completed marker"))
	}
	if int(m.pos) == len(p.events)-1 {
		p.events = p.events[:m.pos]
	} else {
		p.events[m.pos].Kind = EvTombstone
	}
	p.open--
}

// Precede opens a new marker that will become the parent of cm.
func (cm CompletedMarker) Precede(p *Parser) Marker {
	m := p.Start()
	p.events[cm.pos].ForwardParent = m.pos - cm.pos
	return m
}
