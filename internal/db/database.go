// Package db is the incremental query database.
//
// Inputs (file texts and paths, shader defs, custom imports, packages) are
// set on a Database. Every derived fact is a memoized query evaluated on a
// Snapshot: parse trees, item trees, def maps, lowered types, inference
// results and per-file diagnostics. A query remembers which queries and
// inputs it read. After an input write, an old result is reused when none
// of its dependencies changed, and a recomputed result that equals the old
// one keeps its old change revision so that its dependents stay valid.
package db

import (
	"sync"
	"sync/atomic"

	"shaderlens/internal/source"
	"shaderlens/internal/syntax"
	"shaderlens/internal/trace"
	"shaderlens/internal/types"
)

// Revision counts input writes. Revision 0 is the empty database.
type Revision uint64

// Database owns the inputs and the shared memo tables. Reads happen on
// snapshots; writers never wait for them.
type Database struct {
	mu        sync.Mutex
	in        *inputs
	customIDs map[string]source.FileID
	tracer    trace.Tracer
	hook      func(QueryEvent)

	rev      atomic.Uint64
	cache    *syntax.NodeCache
	interner *types.Interner
	stats    stats

	queries []query
	q       tables
}

// New returns an empty database at revision 0.
func New() *Database { return NewWithNodeCache(nil) }

// NewWithNodeCache is New with parses interning into cache. A nil cache
// gets a default-sized one.
func NewWithNodeCache(cache *syntax.NodeCache) *Database {
	if cache == nil {
		cache = syntax.NewNodeCache()
	}
	db := &Database{
		in:        newInputs(),
		customIDs: make(map[string]source.FileID),
		tracer:    trace.Nop,
		cache:     cache,
		interner:  types.NewInterner(),
		stats:     stats{executed: make(map[string]int)},
	}
	db.registerInputs()
	db.registerTables()
	return db
}

// Revision returns the revision of the latest input write.
func (db *Database) Revision() Revision { return Revision(db.rev.Load()) }

// Interner is shared by every revision, so types stay comparable across
// snapshots.
func (db *Database) Interner() *types.Interner { return db.interner }

// NodeCache is the green node cache every parse goes through.
func (db *Database) NodeCache() *syntax.NodeCache { return db.cache }

// SetTracer routes query spans and memo-hit events to t for snapshots
// taken afterwards.
func (db *Database) SetTracer(t trace.Tracer) {
	if t == nil {
		t = trace.Nop
	}
	db.mu.Lock()
	db.tracer = t
	db.mu.Unlock()
}

// SetEventHook installs fn to observe query executions, validations and
// hits on snapshots taken afterwards. A nil fn removes the hook.
func (db *Database) SetEventHook(fn func(QueryEvent)) {
	db.mu.Lock()
	db.hook = fn
	db.mu.Unlock()
}

// Snapshot returns a read view pinned to the current revision.
func (db *Database) Snapshot() *Snapshot {
	db.mu.Lock()
	defer db.mu.Unlock()
	return &Snapshot{
		db:      db,
		rev:     db.Revision(),
		in:      db.in,
		tracer:  db.tracer,
		hook:    db.hook,
		overlay: make(map[depKey]any),
	}
}

// Snapshot is an immutable view of the database at one revision. Queries
// on it are safe for concurrent use and a repeated query returns the
// identical value.
type Snapshot struct {
	db     *Database
	rev    Revision
	in     *inputs
	tracer trace.Tracer
	hook   func(QueryEvent)

	mu      sync.Mutex
	overlay map[depKey]any
}

func (s *Snapshot) Revision() Revision { return s.rev }

// Stale reports whether inputs were written after the snapshot was taken.
// Results computed on a stale snapshot are not shared with newer ones.
func (s *Snapshot) Stale() bool { return s.db.Revision() != s.rev }

func (s *Snapshot) cached(k depKey) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.overlay[k]
	return e, ok
}

// keep stores e unless another computation got there first and returns
// the entry that stays.
func (s *Snapshot) keep(k depKey, e any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.overlay[k]; ok {
		return cur
	}
	s.overlay[k] = e
	return e
}

func (s *Snapshot) read() *reader { return &reader{s: s} }
