package db

import (
	"fmt"
	"maps"
	"sync"

	"shaderlens/internal/trace"
)

// EventKind says how a query was answered.
type EventKind uint8

const (
	// EventExecuted: the query ran its computation.
	EventExecuted EventKind = iota + 1
	// EventValidated: an older result was reused after checking that none of
	// its dependencies changed.
	EventValidated
	// EventHit: the result was already verified at the snapshot's revision.
	EventHit
)

func (k EventKind) String() string {
	switch k {
	case EventExecuted:
		return "executed"
	case EventValidated:
		return "validated"
	case EventHit:
		return "hit"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// QueryEvent reports one answered query.
type QueryEvent struct {
	Query    string
	Key      any
	Kind     EventKind
	Revision Revision
}

type stats struct {
	mu       sync.Mutex
	executed map[string]int
}

func (st *stats) record(query string) {
	st.mu.Lock()
	st.executed[query]++
	st.mu.Unlock()
}

// Stats returns how many times each query was computed since the database
// was created or the last ResetStats.
func (db *Database) Stats() map[string]int {
	db.stats.mu.Lock()
	defer db.stats.mu.Unlock()
	return maps.Clone(db.stats.executed)
}

func (db *Database) ResetStats() {
	db.stats.mu.Lock()
	clear(db.stats.executed)
	db.stats.mu.Unlock()
}

func (s *Snapshot) emit(query string, key any, kind EventKind, parent *frame) {
	if s.hook != nil {
		s.hook(QueryEvent{Query: query, Key: key, Kind: kind, Revision: s.rev})
	}
	if kind != EventExecuted && s.tracer.Enabled() {
		trace.Point(s.tracer, trace.ScopeNode, kind.String()+":"+query, fmt.Sprint(key), parent.spanID())
	}
}
