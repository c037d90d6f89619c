package db

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"fortio.org/safecast"

	"shaderlens/internal/trace"
)

type queryID uint16

// depKey names one query instance: a table and a key in it.
type depKey struct {
	query queryID
	key   any
}

// query is what dependency verification needs from inputs and tables.
type query interface {
	name() string
	// changedAt brings key up to date in s and returns the revision its
	// value last changed in.
	changedAt(s *Snapshot, key any, parent *frame) Revision
}

// frame is one query computation in progress. Reads made by the
// computation are recorded as its dependencies.
type frame struct {
	key    depKey
	parent *frame
	span   uint64
	deps   []depKey
	seen   map[depKey]struct{}
}

func (f *frame) record(k depKey) {
	if f == nil {
		return
	}
	if _, ok := f.seen[k]; ok {
		return
	}
	if f.seen == nil {
		f.seen = make(map[depKey]struct{})
	}
	f.seen[k] = struct{}{}
	f.deps = append(f.deps, k)
}

func (f *frame) spanID() uint64 {
	if f == nil {
		return 0
	}
	return f.span
}

// checkCycle panics when key is already being computed on the way to
// parent.
func (db *Database) checkCycle(parent *frame, key depKey) {
	for f := parent; f != nil; f = f.parent {
		if f.key == key {
			panic(fmt.Sprintf("db: query cycle: %s", db.queryPath(parent, key)))
		}
	}
}

func (db *Database) queryPath(top *frame, key depKey) string {
	var path []string
	for f := top; f != nil; f = f.parent {
		path = append(path, db.describe(f.key))
	}
	slices.Reverse(path)
	path = append(path, db.describe(key))
	return strings.Join(path, " -> ")
}

func (db *Database) describe(k depKey) string {
	return fmt.Sprintf("%s(%v)", db.queries[k.query].name(), k.key)
}

// entry is a memoized value. Entries are never mutated once stored; a
// revalidated entry is a copy with a new verifiedAt.
type entry[V any] struct {
	value      V
	deps       []depKey
	verifiedAt Revision
	changedAt  Revision
}

// memoTable memoizes one query. Shared entries are visible to every
// snapshot whose revision is not older than the entry.
type memoTable[K comparable, V any] struct {
	db      *Database
	id      queryID
	label   string
	compute func(r *reader, key K) V
	equal   func(a, b V) bool

	mu      sync.Mutex
	entries map[K]*entry[V]
}

// newTable registers a query. A nil equal compares values with
// reflect.DeepEqual.
func newTable[K comparable, V any](db *Database, label string, compute func(*reader, K) V, equal func(a, b V) bool) *memoTable[K, V] {
	if equal == nil {
		equal = func(a, b V) bool { return reflect.DeepEqual(a, b) }
	}
	id, err := safecast.Conv[uint16](len(db.queries))
	if err != nil {
		panic(fmt.Errorf("db: too many queries: %w", err))
	}
	t := &memoTable[K, V]{
		db:      db,
		id:      queryID(id),
		label:   label,
		compute: compute,
		equal:   equal,
		entries: make(map[K]*entry[V]),
	}
	db.queries = append(db.queries, t)
	return t
}

func (t *memoTable[K, V]) name() string { return t.label }

func (t *memoTable[K, V]) changedAt(s *Snapshot, key any, parent *frame) Revision {
	return t.fetch(s, key.(K), parent).changedAt
}

// get evaluates the query for r's computation and records the dependency.
func (t *memoTable[K, V]) get(r *reader, key K) V {
	e := t.fetch(r.s, key, r.f)
	r.f.record(depKey{t.id, key})
	return e.value
}

func (t *memoTable[K, V]) fetch(s *Snapshot, key K, parent *frame) *entry[V] {
	dk := depKey{t.id, key}
	t.db.checkCycle(parent, dk)
	if e, ok := s.cached(dk); ok {
		s.emit(t.label, key, EventHit, parent)
		return e.(*entry[V])
	}

	old := t.shared(key, s.rev)
	switch {
	case old != nil && old.verifiedAt == s.rev:
		s.emit(t.label, key, EventHit, parent)
		return s.keep(dk, old).(*entry[V])
	case old != nil && t.depsUnchanged(s, dk, old, parent):
		e := &entry[V]{value: old.value, deps: old.deps, verifiedAt: s.rev, changedAt: old.changedAt}
		s.emit(t.label, key, EventValidated, parent)
		return t.finish(s, dk, key, e)
	}
	return t.finish(s, dk, key, t.execute(s, dk, key, old, parent))
}

// depsUnchanged reports whether no dependency of old changed after old was
// last verified. Derived dependencies are brought up to date first.
func (t *memoTable[K, V]) depsUnchanged(s *Snapshot, dk depKey, old *entry[V], parent *frame) bool {
	verify := &frame{key: dk, parent: parent, span: parent.spanID()}
	for _, d := range old.deps {
		if t.db.queries[d.query].changedAt(s, d.key, verify) > old.verifiedAt {
			return false
		}
	}
	return true
}

func (t *memoTable[K, V]) execute(s *Snapshot, dk depKey, key K, old *entry[V], parent *frame) *entry[V] {
	span := trace.Begin(s.tracer, trace.ScopePass, "query:"+t.label, parent.spanID())
	f := &frame{key: dk, parent: parent, span: span.ID()}
	value := t.compute(&reader{s: s, f: f}, key)

	e := &entry[V]{value: value, deps: f.deps, verifiedAt: s.rev, changedAt: s.rev}
	detail := "changed"
	if old != nil && t.equal(old.value, value) {
		e.value, e.changedAt = old.value, old.changedAt
		detail = "backdated"
	}
	span.WithExtra("key", fmt.Sprint(key)).End(detail)
	t.db.stats.record(t.label)
	s.emit(t.label, key, EventExecuted, parent)
	return e
}

func (t *memoTable[K, V]) shared(key K, rev Revision) *entry[V] {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.entries[key]
	if e == nil || e.verifiedAt > rev {
		return nil
	}
	return e
}

// finish stores e in the snapshot and, while the snapshot is current,
// publishes it to the shared table.
func (t *memoTable[K, V]) finish(s *Snapshot, dk depKey, key K, e *entry[V]) *entry[V] {
	kept := s.keep(dk, e).(*entry[V])
	if kept != e || s.Stale() {
		return kept
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if cur := t.entries[key]; cur == nil || cur.verifiedAt < e.verifiedAt {
		t.entries[key] = e
	}
	return kept
}

// reader is the view a computation has of the database. Every query it
// makes is recorded in its frame; a reader without a frame is a top-level
// snapshot read.
type reader struct {
	s *Snapshot
	f *frame
}
