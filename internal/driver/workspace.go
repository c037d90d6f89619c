package driver

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"shaderlens/internal/db"
	"shaderlens/internal/hir"
	"shaderlens/internal/project"
	"shaderlens/internal/source"
	"shaderlens/internal/trace"
)

// Options configures LoadWorkspace.
type Options struct {
	// Defines are shader defs added to the manifest's.
	Defines []string
	// Tracer is attached to the database. Nil takes the context's tracer.
	Tracer trace.Tracer
}

// Workspace is a loaded set of shader packages behind one database.
type Workspace struct {
	Dir      string
	Manifest *project.Manifest // nil when no wesl.toml was found
	Graph    *project.Graph
	DB       *db.Database
	Files    *source.FileSet
	// Targets are the files diagnosed by DiagnoseWorkspace: the root
	// package's files, or the single file asked for.
	Targets []source.FileID
	Defs    []string
	// Digest covers everything besides a file's own text that its
	// diagnostics depend on.
	Digest project.Digest
}

// Analyzer returns the [analyzer] table of the root manifest.
func (ws *Workspace) Analyzer() project.AnalyzerConfig {
	if ws.Manifest == nil {
		return project.AnalyzerConfig{}
	}
	return ws.Manifest.Config.Analyzer
}

// Path is the stored path of file.
func (ws *Workspace) Path(file source.FileID) string { return ws.Files.Get(file).Path }

// LoadWorkspace finds the manifest governing path and loads every package
// it reaches into a fresh database. Without a manifest, path's directory
// forms a package of its own.
func LoadWorkspace(ctx context.Context, path string, opts Options) (*Workspace, error) {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	span := trace.Begin(tracer, trace.ScopeDriver, "load_workspace", trace.CurrentSpan(ctx).SpanID).
		WithExtra("path", path)
	defer span.End("")

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	single := ""
	if !info.IsDir() {
		if !project.IsShaderFile(abs) {
			return nil, fmt.Errorf("%s: not a .wgsl or .wesl file", path)
		}
		single = abs
	}

	ws := &Workspace{Files: source.NewFileSet(), DB: db.New()}
	ws.DB.SetTracer(tracer)
	l := &loader{ws: ws, byPath: make(map[string]source.FileID)}

	manifestPath, err := project.FindManifest(abs)
	switch {
	case errors.Is(err, project.ErrNoManifest):
		err = l.synthetic(abs, single)
	case err != nil:
		return nil, err
	default:
		err = l.fromManifest(manifestPath)
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if single != "" {
		id, ok := l.byPath[single]
		if !ok {
			// a file outside every package root is analysed on its own
			if id, err = l.addFile(single); err != nil {
				return nil, err
			}
		}
		ws.Targets = []source.FileID{id}
	}

	ws.Defs = slices.Concat(ws.Analyzer().ShaderDefs, opts.Defines)
	l.change.ShaderDefs = slices.Clone(ws.Defs)
	if l.change.ShaderDefs == nil {
		l.change.ShaderDefs = []string{}
	}
	if err := l.customImports(); err != nil {
		return nil, err
	}
	if err := l.digest(); err != nil {
		return nil, err
	}
	ws.DB.ApplyChange(l.change)
	span.WithExtra("files", fmt.Sprint(ws.Files.Len()))
	return ws, nil
}

type loader struct {
	ws     *Workspace
	change db.Change
	byPath map[string]source.FileID
	custom map[string]string // key -> text
}

func (l *loader) addFile(path string) (source.FileID, error) {
	id, err := l.ws.Files.Load(path)
	if err != nil {
		return 0, err
	}
	if l.change.Texts == nil {
		l.change.Texts = make(map[source.FileID]string)
		l.change.Paths = make(map[source.FileID]string)
	}
	f := l.ws.Files.Get(id)
	l.change.Texts[id] = string(f.Content)
	l.change.Paths[id] = path
	l.byPath[path] = id
	return id, nil
}

func (l *loader) addPackage(name, root, edition string, deps []string) ([]source.FileID, error) {
	paths, err := project.ShaderFiles(root)
	if err != nil {
		return nil, fmt.Errorf("package %s: %w", name, err)
	}
	pkg := db.Package{Name: hir.Name(name), Root: root, Edition: edition}
	for _, d := range deps {
		pkg.Deps = append(pkg.Deps, hir.Name(d))
	}
	for _, p := range paths {
		id, err := l.addFile(p)
		if err != nil {
			return nil, err
		}
		pkg.Files = append(pkg.Files, id)
	}
	l.change.Packages = append(l.change.Packages, pkg)
	return pkg.Files, nil
}

func (l *loader) synthetic(abs, single string) error {
	dir := abs
	if single != "" {
		dir = filepath.Dir(abs)
	}
	l.ws.Dir = dir
	if single != "" {
		// only the file itself: its siblings may not belong together
		id, err := l.addFile(single)
		if err != nil {
			return err
		}
		l.change.Packages = []db.Package{{Name: hir.Name(filepath.Base(dir)), Root: dir, Files: []source.FileID{id}}}
		return nil
	}
	files, err := l.addPackage(filepath.Base(dir), dir, "", nil)
	l.ws.Targets = files
	return err
}

func (l *loader) fromManifest(path string) error {
	g, err := project.LoadGraph(path)
	if err != nil {
		return err
	}
	l.ws.Graph = g
	l.ws.Manifest = g.Root
	l.ws.Dir = g.Root.Dir
	for i, m := range g.Packages {
		files, err := l.addPackage(m.Name(), m.RootDir(), m.Config.Package.Edition, g.Deps[m.Name()])
		if err != nil {
			return fmt.Errorf("%s: %w", m.Path, err)
		}
		if i == 0 {
			l.ws.Targets = files
		}
	}
	return nil
}

func (l *loader) customImports() error {
	if l.ws.Manifest == nil {
		l.change.CustomImports = map[string]string{}
		return nil
	}
	l.custom = make(map[string]string)
	for key, path := range l.ws.Manifest.CustomImportFiles() {
		data, _, err := source.ReadNormalized(path)
		if err != nil {
			return fmt.Errorf("custom import %q: %w", key, err)
		}
		l.custom[key] = string(data)
	}
	l.change.CustomImports = l.custom
	return nil
}

// digest combines the manifests, shader defs, custom import texts and
// every loaded file, so a file's cached diagnostics are invalidated by any
// change that can reach it through an import.
func (l *loader) digest() error {
	var parts []project.Digest
	if l.ws.Graph != nil {
		d, err := l.ws.Graph.Digest()
		if err != nil {
			return err
		}
		parts = append(parts, d)
	}
	parts = append(parts, project.StringsDigest(l.ws.Defs))
	for _, key := range slices.Sorted(maps.Keys(l.custom)) {
		parts = append(parts, project.DigestOf([]byte(key), []byte(l.custom[key])))
	}
	for _, path := range slices.Sorted(maps.Keys(l.byPath)) {
		f := l.ws.Files.Get(l.byPath[path])
		parts = append(parts, project.DigestOf([]byte(path)), f.Hash)
	}
	l.ws.Digest = project.Combine(project.DigestOf([]byte(cacheSchema)), parts...)
	return nil
}
