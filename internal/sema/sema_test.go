package sema_test

import (
	"slices"
	"strings"
	"testing"

	"shaderlens/internal/ast"
	"shaderlens/internal/diag"
	"shaderlens/internal/hir"
	"shaderlens/internal/parser"
	"shaderlens/internal/sema"
	"shaderlens/internal/source"
	"shaderlens/internal/symbols"
	"shaderlens/internal/syntax"
	"shaderlens/internal/types"
)

const testFile source.FileID = 1

// testDB answers the sema queries for a single file without memoization.
type testDB struct {
	in     *types.Interner
	root   *syntax.Node
	ids    *hir.AstIdMap
	tree   *hir.ItemTree
	defs   *symbols.DefMap
	bodies map[hir.ItemLoc]*hir.Body
}

func newTestDB(t *testing.T, src string) *testDB {
	t.Helper()
	root := parser.ParseFile(src, syntax.EditionWESL, nil).SyntaxNode()
	ids := hir.NewAstIdMap(root)
	db := &testDB{
		in:     types.NewInterner(),
		root:   root,
		ids:    ids,
		tree:   hir.LowerItemTree(root, ids),
		bodies: make(map[hir.ItemLoc]*hir.Body),
	}
	db.defs = symbols.Collect(symbols.PackageInput{
		Name:  "test",
		Files: []symbols.FileInput{{File: testFile}},
	}, db)
	return db
}

func (db *testDB) ItemTree(source.FileID) *hir.ItemTree       { return db.tree }
func (db *testDB) DepDefMap(hir.Name) (*symbols.DefMap, bool) { return nil, false }
func (db *testDB) CustomImport(string) (source.FileID, bool)  { return 0, false }
func (db *testDB) Interner() *types.Interner                  { return db.in }

func (db *testDB) FieldTypes(loc hir.ItemLoc) *sema.FieldTypesResult {
	return sema.LowerFieldTypes(db, loc)
}

func (db *testDB) Resolver(file source.FileID) symbols.Resolver {
	m, _ := db.defs.ModuleOf(file)
	return symbols.NewResolver(db.defs, m)
}

func (db *testDB) FunctionType(loc hir.ItemLoc) *sema.FunctionSignature {
	return sema.LowerFunctionType(db, loc)
}

func (db *testDB) GlobalVariableType(loc hir.ItemLoc) *sema.GlobalVariableType {
	return sema.LowerGlobalVariableType(db, loc)
}

func (db *testDB) node(loc hir.ItemLoc) *syntax.Node {
	n, _ := hir.ItemNode(db.root, db.ids, db.tree, hir.ModuleItem{Kind: loc.Kind, Index: loc.Index})
	return n
}

func (db *testDB) Body(def hir.DefWithBody) *hir.Body {
	if b, ok := db.bodies[def]; ok {
		return b
	}
	n := db.node(def)
	var b *hir.Body
	switch def.Kind {
	case hir.ItemFunction:
		if fn, ok := ast.CastFunction(n); ok {
			b, _ = hir.LowerFunctionBody(fn)
		}
	case hir.ItemGlobalVariable:
		if v, ok := ast.CastGlobalVariableDecl(n); ok {
			b, _ = hir.LowerInitializer(v.Init())
		}
	case hir.ItemGlobalConstant:
		if c, ok := ast.CastGlobalConstantDecl(n); ok {
			b, _ = hir.LowerInitializer(c.Init())
		}
	case hir.ItemOverride:
		if o, ok := ast.CastOverrideDecl(n); ok {
			b, _ = hir.LowerInitializer(o.Init())
		}
	}
	db.bodies[def] = b
	return b
}

func (db *testDB) FunctionData(loc hir.ItemLoc) *hir.FunctionData {
	if fn, ok := ast.CastFunction(db.node(loc)); ok {
		return hir.LowerFunctionData(fn)
	}
	return nil
}

func (db *testDB) StructData(loc hir.ItemLoc) *hir.StructData {
	if st, ok := ast.CastStructDecl(db.node(loc)); ok {
		return hir.LowerStructData(st)
	}
	return nil
}

func (db *testDB) GlobalVariableData(loc hir.ItemLoc) *hir.GlobalVariableData {
	if v, ok := ast.CastGlobalVariableDecl(db.node(loc)); ok {
		return hir.LowerGlobalVariableData(v)
	}
	return nil
}

func (db *testDB) GlobalConstantData(loc hir.ItemLoc) *hir.GlobalConstantData {
	if c, ok := ast.CastGlobalConstantDecl(db.node(loc)); ok {
		return hir.LowerGlobalConstantData(c)
	}
	return nil
}

func (db *testDB) OverrideData(loc hir.ItemLoc) *hir.OverrideData {
	if o, ok := ast.CastOverrideDecl(db.node(loc)); ok {
		return hir.LowerOverrideData(o)
	}
	return nil
}

func (db *testDB) TypeAliasData(loc hir.ItemLoc) *hir.TypeAliasData {
	if a, ok := ast.CastTypeAliasDecl(db.node(loc)); ok {
		return hir.LowerTypeAliasData(a)
	}
	return nil
}

// item finds a top-level item by name.
func (db *testDB) item(t *testing.T, name hir.Name) hir.ItemLoc {
	t.Helper()
	for _, it := range db.tree.TopLevel {
		if n := db.tree.Named(it.Kind, it.Index); n != nil && n.Name == name {
			return hir.ItemLoc{File: testFile, Kind: it.Kind, Index: it.Index}
		}
	}
	t.Fatalf("no item named %s", name)
	return hir.ItemLoc{}
}

func codes(ds []sema.Diagnostic) []diag.Code {
	out := make([]diag.Code, len(ds))
	for i, d := range ds {
		out[i] = d.Code
	}
	return out
}

func collect(pass func(func(sema.Diagnostic) bool)) []sema.Diagnostic {
	var out []sema.Diagnostic
	pass(func(d sema.Diagnostic) bool {
		out = append(out, d)
		return true
	})
	return out
}

func TestInferLocalTypes(t *testing.T) {
	db := newTestDB(t, `
fn f() {
    let a = 1;
    let b = 1.5;
    var c = vec3(1.0, 2.0, 3.0);
    let d = c.xy;
    const e = 2;
    let g = max(1.0, 2.0);
}
`)
	res := sema.Infer(db, db.item(t, "f"))
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", res.Diagnostics)
	}
	in := db.in
	want := map[hir.BindingID]types.Type{
		1: types.I32,
		2: types.F32,
		3: in.Ref(in.Vector(3, types.F32), types.SpaceFunction, types.AccessReadWrite),
		4: in.Vector(2, types.F32),
		5: types.AbstractInt,
		6: types.F32,
	}
	for b, ty := range want {
		if got := res.BindingTypes[b]; got != ty {
			t.Errorf("binding %d = %s, want %s", b, in.Display(got, nil), in.Display(ty, nil))
		}
	}
}

func TestInferReportsMismatches(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []diag.Code
	}{
		{"declared type", `fn f() { let x: u32 = 1.5; }`, []diag.Code{diag.SemaTypeMismatch}},
		{"return value", `fn f() -> f32 { return true; }`, []diag.Code{diag.SemaTypeMismatch}},
		{"missing return value", `fn f() -> f32 { return; }`, []diag.Code{diag.SemaMissingReturnValue}},
		{"if condition", `fn f() { if 1 { } }`, []diag.Code{diag.SemaTypeMismatch}},
		{"assign to let", `fn f() { let a = 1; a = 2; }`, []diag.Code{diag.SemaAssignmentNotAReference}},
		{"address of value", `fn f() { let p = &1; }`, []diag.Code{diag.SemaAddressOfNotReference}},
		{"deref value", `fn f() { let a = 1; let b = *a; }`, []diag.Code{diag.SemaDerefNotAPointer}},
		{"operator", `fn f() { let a = true + 1; }`, []diag.Code{diag.SemaNoBuiltinOverload}},
		{"builtin overload", `fn f() { let a = max(true, 1); }`, []diag.Code{diag.SemaNoBuiltinOverload}},
		{"builtin as value", `fn f() { let a = max; }`, []diag.Code{diag.SemaInvalidCallType}},
		{"type as value", "struct S { a: f32 }\nfn f() { let a = S; }", []diag.Code{diag.SemaTypeMismatch}},
		{"bad swizzle", `fn f() { let v = vec2(1.0, 2.0); let a = v.z; }`, []diag.Code{diag.SemaNoSuchField}},
		{"index bool", `fn f() { let v = vec2(1.0, 2.0); let a = v[true]; }`, []diag.Code{diag.SemaTypeMismatch}},
		{"errors do not cascade", `fn f() { let a = nothing + 1; let b = a * 2; }`, []diag.Code{diag.SemaUnresolvedName}},
		{"discard assignment", `fn f() { _ = 1; }`, nil},
		{"pointer round trip", `fn f() { var x = 1; let p = &x; *p = 2; let y = *p + 1; }`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t, tt.src)
			res := sema.Infer(db, db.item(t, "f"))
			if got := codes(res.Diagnostics); !slices.Equal(got, tt.want) {
				t.Errorf("codes = %v, want %v (%+v)", got, tt.want, res.Diagnostics)
			}
		})
	}
}

func TestInferCalls(t *testing.T) {
	db := newTestDB(t, `
fn g(a: f32) -> f32 { return a; }
fn f() {
    let x = g(1.0, 2.0);
    let y = g(1.0);
}
`)
	f := db.item(t, "f")
	res := sema.Infer(db, f)
	if got := codes(res.Diagnostics); !slices.Equal(got, []diag.Code{diag.SemaFunctionCallArgCountMismatch}) {
		t.Fatalf("codes = %v", got)
	}
	calls := 0
	for _, c := range res.CallResolutions {
		if c.Kind == sema.CallFunction && c.Function == db.item(t, "g") {
			calls++
		}
	}
	if calls != 2 {
		t.Errorf("resolved calls to g = %d, want 2", calls)
	}
	if got := res.BindingTypes[2]; got != types.F32 {
		t.Errorf("y = %s", db.in.Display(got, nil))
	}
}

func TestInferStructFields(t *testing.T) {
	db := newTestDB(t, `
struct Light { color: vec3<f32>, power: f32 }
fn f(l: Light) -> f32 {
    let c = Light(vec3(1.0), 2.0);
    return l.power + l.missing;
}
`)
	res := sema.Infer(db, db.item(t, "f"))
	if got := codes(res.Diagnostics); !slices.Equal(got, []diag.Code{diag.SemaNoSuchField}) {
		t.Fatalf("codes = %v (%+v)", got, res.Diagnostics)
	}
	if !strings.Contains(res.Diagnostics[0].Message, "missing") {
		t.Errorf("message = %q", res.Diagnostics[0].Message)
	}
	body := db.Body(db.item(t, "f"))
	found := false
	body.WalkExprs(func(id hir.ExprID, e *hir.Expr) {
		if e.Kind == hir.ExprField && e.Name == "power" {
			found = true
			fr, ok := res.FieldResolutions[id]
			if !ok || fr.Index != 1 || fr.Struct != db.item(t, "Light") {
				t.Errorf("power resolution = %+v, %v", fr, ok)
			}
		}
	})
	if !found {
		t.Fatal("no field expression for power")
	}
	if got := res.BindingTypes[2]; got != db.in.InternStruct(db.item(t, "Light")) {
		t.Errorf("constructed type = %s", sema.DisplayType(db, got))
	}
}

func TestUnresolvedNameSuggests(t *testing.T) {
	db := newTestDB(t, `
const intensity = 1.0;
fn f() -> f32 { return intensitty; }
`)
	res := sema.Infer(db, db.item(t, "f"))
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diag.SemaUnresolvedName {
		t.Fatalf("diagnostics = %+v", res.Diagnostics)
	}
	if !strings.Contains(res.Diagnostics[0].Message, "did you mean `intensity`") {
		t.Errorf("message = %q", res.Diagnostics[0].Message)
	}
	if d := res.Diagnostics[0]; d.Name != "intensitty" || d.Suggestion != "intensity" {
		t.Errorf("name = %q, suggestion = %q", d.Name, d.Suggestion)
	}
}

func TestSignatureParts(t *testing.T) {
	db := newTestDB(t, `
fn f(a: f32, b: Foo) -> Bar { }
var<private> v: Baz;
`)
	sig := sema.LowerFunctionType(db, db.item(t, "f"))
	var parts []sema.Part
	for _, d := range sig.Diagnostics {
		parts = append(parts, d.Part)
	}
	want := []sema.Part{{Kind: sema.PartParam, Index: 1}, {Kind: sema.PartReturn}}
	if !slices.Equal(parts, want) {
		t.Errorf("function parts = %+v, want %+v", parts, want)
	}
	gv := sema.LowerGlobalVariableType(db, db.item(t, "v"))
	if len(gv.Diagnostics) != 1 || gv.Diagnostics[0].Part.Kind != sema.PartType {
		t.Errorf("var diagnostics = %+v", gv.Diagnostics)
	}
}

func TestCycles(t *testing.T) {
	t.Run("struct", func(t *testing.T) {
		db := newTestDB(t, `
struct A { b: B }
struct B { a: A }
`)
		ft := sema.LowerFieldTypes(db, db.item(t, "A"))
		if got := codes(ft.Diagnostics); !slices.Equal(got, []diag.Code{diag.SemaCyclicType}) {
			t.Errorf("codes = %v", got)
		}
		if ft.Types[0] != types.Error {
			t.Errorf("cyclic field lowered to %s", db.in.Display(ft.Types[0], nil))
		}
		if p := ft.Diagnostics[0].Part; p != (sema.Part{Kind: sema.PartField, Index: 0}) {
			t.Errorf("part = %+v", p)
		}
	})
	t.Run("alias", func(t *testing.T) {
		db := newTestDB(t, `
alias A = B;
alias B = A;
`)
		lt := sema.LowerTypeAlias(db, db.item(t, "A"))
		if lt.Type != types.Error || !slices.Contains(codes(lt.Diagnostics), diag.SemaCyclicType) {
			t.Errorf("alias = %v %v", lt.Type, codes(lt.Diagnostics))
		}
	})
	t.Run("const", func(t *testing.T) {
		db := newTestDB(t, `
const a = b;
const b = a;
`)
		res := sema.Infer(db, db.item(t, "a"))
		if !slices.Contains(codes(res.Diagnostics), diag.SemaCyclicType) {
			t.Errorf("codes = %v", codes(res.Diagnostics))
		}
		if res.ReturnType != types.Error {
			t.Errorf("type = %s", db.in.Display(res.ReturnType, nil))
		}
	})
}

func TestGlobalInitializers(t *testing.T) {
	db := newTestDB(t, `
const k = 2;
override o = 1.5;
var<private> v = k;
`)
	if got := sema.GlobalValueType(db, db.item(t, "k")); got != types.AbstractInt {
		t.Errorf("k = %s", db.in.Display(got, nil))
	}
	if got := sema.GlobalValueType(db, db.item(t, "o")); got != types.F32 {
		t.Errorf("o = %s", db.in.Display(got, nil))
	}
	gt := sema.LowerGlobalVariableType(db, db.item(t, "v"))
	if gt.Store != types.I32 || gt.Space != types.SpacePrivate {
		t.Errorf("v = %+v", gt)
	}
	if gt.Type != db.in.Ref(types.I32, types.SpacePrivate, types.AccessReadWrite) {
		t.Errorf("v type = %s", db.in.Display(gt.Type, nil))
	}
}

func TestValidateGlobalVariable(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    []diag.Code
		storage sema.StorageProblem
	}{
		{"missing space", `var x: f32;`, []diag.Code{diag.SemaMissingStorageClass}, 0},
		{"handle needs none", `var x: texture_2d<f32>;`, nil, 0},
		{"sampler needs none", `var x: sampler;`, nil, 0},
		{"private", `var<private> x: f32;`, nil, 0},
		{"uniform without block", `var<uniform> x: f32;`, []diag.Code{diag.SemaMissingBlockAttribute}, 0},
		{"uniform with block", "@block struct S { a: f32 }\nvar<uniform> x: S;", nil, 0},
		{"function scope", `var<function> x: f32;`, []diag.Code{diag.SemaStorageClassError}, sema.StorageScope},
		{"unknown space", `var<nowhere> x: f32;`, []diag.Code{diag.SemaStorageClassError}, sema.StorageUnknownSpace},
		{"access outside storage", `var<private, read> x: f32;`, []diag.Code{diag.SemaStorageClassError}, sema.StorageAccessMode},
		{"write-only storage", "@block struct S { a: f32 }\nvar<storage, write> x: S;", []diag.Code{diag.SemaStorageClassError}, sema.StorageAccessMode},
		{"bool in storage", "@block struct S { a: bool }\nvar<storage> x: S;", []diag.Code{diag.SemaStorageClassError}, sema.StorageNotHostShareable},
		{"texture in workgroup", `var<workgroup> x: texture_2d<f32>;`, []diag.Code{diag.SemaStorageClassError}, sema.StorageNotWorkgroupCompatible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t, tt.src)
			ds := collect(func(sink func(sema.Diagnostic) bool) {
				sema.ValidateGlobalVariable(db, db.item(t, "x"), sink)
			})
			if got := codes(ds); !slices.Equal(got, tt.want) {
				t.Fatalf("codes = %v, want %v (%+v)", got, tt.want, ds)
			}
			if len(ds) > 0 && ds[0].Storage != tt.storage {
				t.Errorf("storage problem = %d, want %d", ds[0].Storage, tt.storage)
			}
		})
	}
}

func TestValidationStopsWhenSinkDeclines(t *testing.T) {
	db := newTestDB(t, `var<uniform, read> x: bool;`)
	n := 0
	sema.ValidateGlobalVariable(db, db.item(t, "x"), func(sema.Diagnostic) bool {
		n++
		return false
	})
	if n != 1 {
		t.Errorf("sink called %d times, want 1", n)
	}
}

func TestValidatePrecedence(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		shift []diag.Code
		mixed []diag.Code
	}{
		{"shift of sum", `1 << 2 + 3`, []diag.Code{diag.SemaBracesRequired}, nil},
		{"parenthesized shift", `1 << (2 + 3)`, nil, nil},
		{"bitwise mix", `1 & 2 | 3`, nil, []diag.Code{diag.SemaMixedBitwiseOps}},
		{"same bitwise op", `1 | 2 | 3`, nil, nil},
		{"logical mix", `true && false || true`, nil, []diag.Code{diag.SemaMixedLogicalOps}},
		{"chained comparison", `1 < 2 == true`, nil, []diag.Code{diag.SemaChainedComparison}},
		{"arithmetic", `1 + 2 * 3`, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t, "fn f() { let a = "+tt.expr+"; }")
			body := db.Body(db.item(t, "f"))
			shift := collect(func(sink func(sema.Diagnostic) bool) { sema.ValidateShiftPrecedence(body, sink) })
			if got := codes(shift); !slices.Equal(got, tt.shift) {
				t.Errorf("shift codes = %v, want %v", got, tt.shift)
			}
			mixed := collect(func(sink func(sema.Diagnostic) bool) { sema.ValidatePrecedence(body, sink) })
			if got := codes(mixed); !slices.Equal(got, tt.mixed) {
				t.Errorf("precedence codes = %v, want %v", got, tt.mixed)
			}
		})
	}
}

func TestStructIsUsedInUniform(t *testing.T) {
	db := newTestDB(t, `
struct Inner { a: f32 }
@block struct Params { inner: Inner }
struct Other { b: f32 }
var<uniform> params: Params;
var<private> other: Other;
`)
	globals := []hir.ItemLoc{db.item(t, "params"), db.item(t, "other")}
	for name, want := range map[hir.Name]bool{"Inner": true, "Params": true, "Other": false} {
		if got := sema.StructIsUsedInUniform(db, db.item(t, name), globals); got != want {
			t.Errorf("%s used in uniform = %v, want %v", name, got, want)
		}
	}
}
