package symbols_test

import (
	"reflect"
	"testing"

	"shaderlens/internal/hir"
	"shaderlens/internal/parser"
	"shaderlens/internal/source"
	"shaderlens/internal/symbols"
	"shaderlens/internal/syntax"
)

type fakeSource struct {
	trees  map[source.FileID]*hir.ItemTree
	deps   map[hir.Name]*symbols.DefMap
	custom map[string]source.FileID
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		trees:  make(map[source.FileID]*hir.ItemTree),
		deps:   make(map[hir.Name]*symbols.DefMap),
		custom: make(map[string]source.FileID),
	}
}

func (s *fakeSource) add(file source.FileID, edition syntax.Edition, text string) {
	root := parser.ParseFile(text, edition, nil).SyntaxNode()
	s.trees[file] = hir.LowerItemTree(root, hir.NewAstIdMap(root))
}

func (s *fakeSource) ItemTree(file source.FileID) *hir.ItemTree { return s.trees[file] }

func (s *fakeSource) DepDefMap(pkg hir.Name) (*symbols.DefMap, bool) {
	m, ok := s.deps[pkg]
	return m, ok
}

func (s *fakeSource) CustomImport(key string) (source.FileID, bool) {
	f, ok := s.custom[key]
	return f, ok
}

func names(segs ...string) []hir.Name {
	out := make([]hir.Name, len(segs))
	for i, s := range segs {
		out[i] = hir.Name(s)
	}
	return out
}

// a package with main.wesl at the root, util.wesl and util/light.wesl
func samplePackage(t *testing.T) (*symbols.DefMap, *fakeSource) {
	t.Helper()
	src := newFakeSource()
	src.add(1, syntax.EditionWESL, `
import package::util::light::{Light, make_light as make};
import super::nothing;
fn main() {}
`)
	src.add(2, syntax.EditionWESL, `
import super::util::light::Light;
fn helper() -> f32 { return 1.0; }
`)
	src.add(3, syntax.EditionWESL, `
struct Light { color: vec3<f32> }
fn make_light() -> Light { return Light(vec3(1.0)); }
const intensity = 2.0;
`)
	m := symbols.Collect(symbols.PackageInput{
		Name: "app",
		Files: []symbols.FileInput{
			{File: 1},
			{File: 2, Module: names("util")},
			{File: 3, Module: names("util", "light")},
		},
	}, src)
	return m, src
}

func TestCollectBuildsModuleTree(t *testing.T) {
	m, _ := samplePackage(t)
	root := m.Module(m.Root)
	if root.Name != "app" || !root.HasFile || root.File != 1 {
		t.Fatalf("root = %+v", root)
	}
	util, ok := root.Children["util"]
	if !ok {
		t.Fatal("missing util module")
	}
	light, ok := m.Module(util).Children["light"]
	if !ok {
		t.Fatal("missing util::light module")
	}
	if got, _ := m.ModuleOf(3); got != light {
		t.Errorf("file 3 module = %d, want %d", got, light)
	}
	if got := m.ModulePath(light).String(); got != "package::util::light" {
		t.Errorf("module path = %q", got)
	}
	items := m.Module(light).Scope.Items
	for _, n := range []hir.Name{"Light", "make_light", "intensity"} {
		if _, ok := items[n]; !ok {
			t.Errorf("light scope lacks %s", n)
		}
	}
	if items["Light"].Kind != symbols.DefStruct || items["intensity"].Kind != symbols.DefGlobalConstant {
		t.Errorf("kinds = %v %v", items["Light"].Kind, items["intensity"].Kind)
	}
}

func TestCollectResolvesImports(t *testing.T) {
	m, _ := samplePackage(t)
	root := m.Module(m.Root)
	light := root.Scope.Imports["Light"]
	if light.Kind != symbols.DefStruct || light.Loc.File != 3 {
		t.Errorf("Light import = %v", light)
	}
	mk, ok := root.Scope.Imports["make"]
	if !ok || mk.Kind != symbols.DefFunction {
		t.Errorf("aliased import = %v, %v", mk, ok)
	}
	if _, ok := root.Scope.Imports["make_light"]; ok {
		t.Error("alias should replace the original name")
	}
	util := m.Module(root.Children["util"])
	if d := util.Scope.Imports["Light"]; d.Loc != light.Loc {
		t.Errorf("super import = %v, want %v", d, light)
	}
}

func TestCollectReportsTooManySupers(t *testing.T) {
	m, _ := samplePackage(t)
	if len(m.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %+v", m.Diagnostics)
	}
	d := m.Diagnostics[0]
	if d.Kind != symbols.DiagTooManySupers || d.File != 1 {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Code().ID() == "" || d.Message() == "" {
		t.Error("diagnostic should render")
	}
}

func TestResolvePath(t *testing.T) {
	m, _ := samplePackage(t)
	util := m.Module(m.Root).Children["util"]
	light := m.Module(util).Children["light"]

	tests := []struct {
		name string
		from symbols.ModuleID
		path hir.ModPath
		kind symbols.DefKind
		err  symbols.ResolveErrorKind
	}{
		{"package item", m.Root, hir.PackagePath(names("util", "light", "intensity")...), symbols.DefGlobalConstant, 0},
		{"package module", m.Root, hir.PackagePath(names("util")...), symbols.DefModule, 0},
		{"super", light, hir.SuperPath(1, names("helper")...), symbols.DefFunction, 0},
		{"super twice", light, hir.SuperPath(2, names("main")...), symbols.DefFunction, 0},
		{"plain child", m.Root, hir.PlainPath(names("util", "helper")...), symbols.DefFunction, 0},
		{"package by name", light, hir.PlainPath(names("app", "main")...), symbols.DefFunction, 0},
		{"through import", m.Root, hir.PlainPath(names("Light")...), symbols.DefStruct, 0},
		{"too many supers", util, hir.SuperPath(2, names("main")...), 0, symbols.ErrTooManySupers},
		{"missing module", m.Root, hir.PackagePath(names("utl", "helper")...), 0, symbols.ErrUnresolvedModule},
		{"missing item", m.Root, hir.PackagePath(names("util", "helpr")...), 0, symbols.ErrUnresolvedImport},
		{"missing first", m.Root, hir.PlainPath(names("nope", "x")...), 0, symbols.ErrUnresolvedModule},
		{"item as module", m.Root, hir.PlainPath(names("main", "x")...), 0, symbols.ErrUnresolvedModule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := m.ResolvePath(tt.from, tt.path)
			if tt.err != 0 {
				if err == nil || err.Kind != tt.err {
					t.Fatalf("err = %v, want kind %d", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", d.Kind, tt.kind)
			}
		})
	}
}

func TestResolveSuggestions(t *testing.T) {
	m, _ := samplePackage(t)
	_, err := m.ResolvePath(m.Root, hir.PackagePath(names("util", "helpr")...))
	if err == nil || !reflect.DeepEqual(err.Suggestions, names("helper")) {
		t.Fatalf("suggestions = %v", err)
	}
	_, err = m.ResolvePath(m.Root, hir.PackagePath(names("utl", "helper")...))
	if err == nil || !reflect.DeepEqual(err.Suggestions, names("util")) {
		t.Fatalf("module suggestions = %v", err)
	}
}

func TestImportChainsReachFixedPoint(t *testing.T) {
	src := newFakeSource()
	// a imports from b, which re-exports from c; a is collected first
	src.add(1, syntax.EditionWESL, "import package::b::thing;\nfn main() {}")
	src.add(2, syntax.EditionWESL, "import package::c::thing;")
	src.add(3, syntax.EditionWESL, "fn thing() {}")
	m := symbols.Collect(symbols.PackageInput{
		Name: "p",
		Files: []symbols.FileInput{
			{File: 1, Module: names("a")},
			{File: 2, Module: names("b")},
			{File: 3, Module: names("c")},
		},
	}, src)
	if len(m.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %+v", m.Diagnostics)
	}
	a, _ := m.ModuleOf(1)
	if d := m.Module(a).Scope.Imports["thing"]; d.Kind != symbols.DefFunction || d.Loc.File != 3 {
		t.Errorf("thing = %v", d)
	}
}

func TestDuplicateDefinition(t *testing.T) {
	src := newFakeSource()
	src.add(1, syntax.EditionWESL, "fn f() {}\nconst f = 1;\nstruct S { a: f32 }")
	m := symbols.Collect(symbols.PackageInput{Name: "p", Files: []symbols.FileInput{{File: 1}}}, src)
	if len(m.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %+v", m.Diagnostics)
	}
	d := m.Diagnostics[0]
	if d.Kind != symbols.DiagDuplicateDefinition || d.Name != "f" || d.AstID != 2 {
		t.Errorf("diagnostic = %+v", d)
	}
	if got := m.Module(m.Root).Scope.Items["f"].Kind; got != symbols.DefFunction {
		t.Errorf("first definition should win, got %v", got)
	}
}

func TestLegacyImports(t *testing.T) {
	src := newFakeSource()
	src.add(1, syntax.EditionWGSL, "#import bevy::pbr\n#import missing::thing\nfn main() {}")
	src.add(100, syntax.EditionWGSL, "fn pbr_light() {}\nstruct Material { a: f32 }")
	src.custom["bevy::pbr"] = 100
	m := symbols.Collect(symbols.PackageInput{Name: "p", Files: []symbols.FileInput{{File: 1}}}, src)

	imports := m.Module(m.Root).Scope.Imports
	if d := imports["pbr_light"]; d.Kind != symbols.DefFunction || d.Loc.File != 100 {
		t.Errorf("pbr_light = %v", d)
	}
	if _, ok := imports["Material"]; !ok {
		t.Error("Material should be imported")
	}
	if len(m.Diagnostics) != 1 || m.Diagnostics[0].Name != "missing::thing" {
		t.Errorf("diagnostics = %+v", m.Diagnostics)
	}
}

func TestDependencyPackages(t *testing.T) {
	src := newFakeSource()
	src.add(10, syntax.EditionWESL, "fn noise() -> f32 { return 0.5; }")
	src.add(11, syntax.EditionWESL, "fn simplex() {}")
	dep := symbols.Collect(symbols.PackageInput{
		Name:  "random",
		Files: []symbols.FileInput{{File: 10}, {File: 11, Module: names("simplex")}},
	}, src)
	src.deps["random"] = dep

	src.add(1, syntax.EditionWESL, "import random::noise;\nimport random::simplex::simplex;\nimport rand::x;")
	m := symbols.Collect(symbols.PackageInput{Name: "app", Files: []symbols.FileInput{{File: 1}}, Deps: names("random")}, src)

	imports := m.Module(m.Root).Scope.Imports
	if d := imports["noise"]; d.Kind != symbols.DefFunction || d.Package != "random" || d.Loc.File != 10 {
		t.Errorf("noise = %v", d)
	}
	if d := imports["simplex"]; d.Kind != symbols.DefFunction || d.Loc.File != 11 {
		t.Errorf("simplex = %v", d)
	}
	if len(m.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %+v", m.Diagnostics)
	}
	d := m.Diagnostics[0]
	if d.Kind != symbols.DiagUnresolvedModule || !reflect.DeepEqual(d.Suggestions, names("random")) {
		t.Errorf("diagnostic = %+v", d)
	}
}

func TestResolverFallsBackToBuiltins(t *testing.T) {
	m, _ := samplePackage(t)
	r := symbols.NewResolver(m, m.Root)

	if got := r.ResolveValue("main"); got.Kind != symbols.ResolvedDef || got.Def.Kind != symbols.DefFunction {
		t.Errorf("main = %+v", got)
	}
	if got := r.ResolveValue("make"); got.Kind != symbols.ResolvedDef {
		t.Errorf("imported alias = %+v", got)
	}
	if got := r.ResolveValue("sqrt"); got.Kind != symbols.ResolvedBuiltin || got.Builtin.Name != "sqrt" {
		t.Errorf("sqrt = %+v", got)
	}
	if got := r.ResolveValue("Light"); got.Kind != symbols.ResolvedNone {
		t.Errorf("struct in value position = %+v", got)
	}
	if d, ok := r.ResolveType("Light"); !ok || d.Kind != symbols.DefStruct {
		t.Errorf("Light type = %v %v", d, ok)
	}
	if _, ok := r.ResolveType("main"); ok {
		t.Error("function should not resolve as a type")
	}
	if got := r.Suggest("mainn"); len(got) == 0 || got[0] != "main" {
		t.Errorf("suggest = %v", got)
	}
}
