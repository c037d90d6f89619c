package db

import (
	"maps"
	"slices"

	"shaderlens/internal/hir"
	"shaderlens/internal/source"
)

// Package is one unit of module resolution: a set of files below Root and
// the packages it may import from.
type Package struct {
	Name  hir.Name
	Root  string
	Files []source.FileID
	// Edition is "wgsl" or "wesl"; empty picks by file extension.
	Edition string
	Deps    []hir.Name
}

func (p Package) equal(o Package) bool {
	return p.Name == o.Name && p.Root == o.Root && p.Edition == o.Edition &&
		slices.Equal(p.Files, o.Files) && slices.Equal(p.Deps, o.Deps)
}

// Change is a batch of input writes applied under a single revision.
// ShaderDefs, CustomImports and Packages replace the current value when
// non-nil; an empty non-nil value clears it.
type Change struct {
	Texts         map[source.FileID]string
	Paths         map[source.FileID]string
	Removed       []source.FileID
	ShaderDefs    []string
	CustomImports map[string]string
	Packages      []Package
}

// customBase is the first FileID handed to custom import texts. Workspace
// files are numbered by a FileSet from zero.
const customBase source.FileID = 1 << 30

// cell is an input value with the revision it last changed in. A missing
// cell reads as the zero value changed at revision 0.
type cell[V any] struct {
	value     V
	changedAt Revision
}

type inputs struct {
	texts    map[source.FileID]cell[string]
	paths    map[source.FileID]cell[string]
	defs     cell[[]string]
	custom   cell[map[string]source.FileID]
	packages cell[[]Package]
}

func newInputs() *inputs {
	return &inputs{
		texts: make(map[source.FileID]cell[string]),
		paths: make(map[source.FileID]cell[string]),
	}
}

// clone copies the maps so that snapshots holding the old inputs never
// observe a write.
func (in *inputs) clone() *inputs {
	out := *in
	out.texts = maps.Clone(in.texts)
	out.paths = maps.Clone(in.paths)
	return &out
}

func setCell[K comparable, V comparable](m map[K]cell[V], k K, v V, rev Revision) {
	if cur, ok := m[k]; ok && cur.value == v {
		return
	}
	m[k] = cell[V]{value: v, changedAt: rev}
}

// ApplyChange writes a batch of inputs and returns the new revision. A value
// equal to the current one keeps its change revision, so queries that read
// it stay valid.
func (db *Database) ApplyChange(ch Change) Revision {
	db.mu.Lock()
	defer db.mu.Unlock()
	rev := db.Revision() + 1
	in := db.in.clone()

	for f, text := range ch.Texts {
		setCell(in.texts, f, text, rev)
	}
	for f, path := range ch.Paths {
		setCell(in.paths, f, path, rev)
	}
	for _, f := range ch.Removed {
		setCell(in.texts, f, "", rev)
		setCell(in.paths, f, "", rev)
	}
	if ch.ShaderDefs != nil {
		defs := slices.Clone(ch.ShaderDefs)
		slices.Sort(defs)
		defs = slices.Compact(defs)
		if !slices.Equal(defs, in.defs.value) {
			in.defs = cell[[]string]{value: defs, changedAt: rev}
		}
	}
	if ch.CustomImports != nil {
		db.applyCustomImports(in, ch.CustomImports, rev)
	}
	if ch.Packages != nil {
		pkgs := slices.Clone(ch.Packages)
		if !slices.EqualFunc(pkgs, in.packages.value, Package.equal) {
			in.packages = cell[[]Package]{value: pkgs, changedAt: rev}
		}
	}

	db.in = in
	db.rev.Store(uint64(rev))
	return rev
}

// applyCustomImports gives every key a stable FileID and stores its text
// like a file's.
func (db *Database) applyCustomImports(in *inputs, custom map[string]string, rev Revision) {
	ids := make(map[string]source.FileID, len(custom))
	for _, key := range slices.Sorted(maps.Keys(custom)) {
		id, ok := db.customIDs[key]
		if !ok {
			id = customBase + source.FileID(len(db.customIDs))
			db.customIDs[key] = id
		}
		ids[key] = id
		setCell(in.texts, id, custom[key], rev)
		setCell(in.paths, id, key, rev)
	}
	for key, id := range in.custom.value {
		if _, ok := ids[key]; !ok {
			setCell(in.texts, id, "", rev)
		}
	}
	if !maps.Equal(ids, in.custom.value) {
		in.custom = cell[map[string]source.FileID]{value: ids, changedAt: rev}
	}
}

func (db *Database) SetFileText(file source.FileID, text string) Revision {
	return db.ApplyChange(Change{Texts: map[source.FileID]string{file: text}})
}

func (db *Database) SetFilePath(file source.FileID, path string) Revision {
	return db.ApplyChange(Change{Paths: map[source.FileID]string{file: path}})
}

// RemoveFile clears the text and path of file.
func (db *Database) RemoveFile(file source.FileID) Revision {
	return db.ApplyChange(Change{Removed: []source.FileID{file}})
}

// SetShaderDefs replaces the set of active #ifdef names.
func (db *Database) SetShaderDefs(defs []string) Revision {
	if defs == nil {
		defs = []string{}
	}
	return db.ApplyChange(Change{ShaderDefs: defs})
}

// SetCustomImports replaces the texts behind legacy `#import` keys.
func (db *Database) SetCustomImports(custom map[string]string) Revision {
	if custom == nil {
		custom = map[string]string{}
	}
	return db.ApplyChange(Change{CustomImports: custom})
}

func (db *Database) SetPackages(pkgs []Package) Revision {
	if pkgs == nil {
		pkgs = []Package{}
	}
	return db.ApplyChange(Change{Packages: pkgs})
}

// Input query ids come first in Database.queries.
const (
	qFileText queryID = iota
	qFilePath
	qShaderDefs
	qCustomImports
	qPackages
	numInputs
)

// inputQuery lets dependency verification read the change revision of an
// input.
type inputQuery struct {
	label   string
	changed func(in *inputs, key any) Revision
}

func (q *inputQuery) name() string { return q.label }

func (q *inputQuery) changedAt(s *Snapshot, key any, _ *frame) Revision {
	return q.changed(s.in, key)
}

func (db *Database) registerInputs() {
	db.queries = make([]query, numInputs)
	db.queries[qFileText] = &inputQuery{"file_text", func(in *inputs, key any) Revision {
		return in.texts[key.(source.FileID)].changedAt
	}}
	db.queries[qFilePath] = &inputQuery{"file_path", func(in *inputs, key any) Revision {
		return in.paths[key.(source.FileID)].changedAt
	}}
	db.queries[qShaderDefs] = &inputQuery{"shader_defs", func(in *inputs, _ any) Revision {
		return in.defs.changedAt
	}}
	db.queries[qCustomImports] = &inputQuery{"custom_imports", func(in *inputs, _ any) Revision {
		return in.custom.changedAt
	}}
	db.queries[qPackages] = &inputQuery{"packages", func(in *inputs, _ any) Revision {
		return in.packages.changedAt
	}}
}

// Input reads record a dependency on the input they touch.

func (r *reader) fileText(file source.FileID) string {
	r.f.record(depKey{qFileText, file})
	return r.s.in.texts[file].value
}

func (r *reader) filePath(file source.FileID) string {
	r.f.record(depKey{qFilePath, file})
	return r.s.in.paths[file].value
}

func (r *reader) shaderDefs() []string {
	r.f.record(depKey{qShaderDefs, struct{}{}})
	return r.s.in.defs.value
}

func (r *reader) customImports() map[string]source.FileID {
	r.f.record(depKey{qCustomImports, struct{}{}})
	return r.s.in.custom.value
}

func (r *reader) packages() []Package {
	r.f.record(depKey{qPackages, struct{}{}})
	return r.s.in.packages.value
}
