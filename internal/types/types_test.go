package types

import (
	"testing"
)

func TestInternerSeedsBuiltins(t *testing.T) {
	in := NewInterner()
	cases := []struct {
		ty   Type
		want string
	}{
		{Error, "[error]"},
		{Bool, "bool"},
		{I32, "i32"},
		{U32, "u32"},
		{F32, "f32"},
		{F16, "f16"},
		{AbstractInt, "AbstractInt"},
		{AbstractFloat, "AbstractFloat"},
	}
	for _, c := range cases {
		if got := in.Display(c.ty, nil); got != c.want {
			t.Errorf("Display(%d) = %q, want %q", c.ty, got, c.want)
		}
	}
	if in.Scalar(ScalarU32) != U32 {
		t.Errorf("Scalar(u32) = %d", in.Scalar(ScalarU32))
	}
}

func TestInternIsStructural(t *testing.T) {
	in := NewInterner()
	a := in.Vector(3, F32)
	b := in.Intern(TyKind{Kind: KindVector, Size: 3, Inner: F32})
	if a != b {
		t.Fatalf("equal kinds interned twice: %d vs %d", a, b)
	}
	if in.Vector(4, F32) == a {
		t.Fatalf("different sizes share an id")
	}
	s1 := in.InternStruct("Light")
	s2 := in.InternStruct("Light")
	s3 := in.InternStruct("Camera")
	if s1 != s2 || s1 == s3 {
		t.Fatalf("struct identity: %d %d %d", s1, s2, s3)
	}
	if key, ok := in.StructKey(s3); !ok || key != "Camera" {
		t.Errorf("StructKey = %v", key)
	}
	f1 := in.Function(F32, []Type{I32, a})
	f2 := in.Function(F32, []Type{I32, a})
	if f1 != f2 {
		t.Errorf("function types differ")
	}
	if sig, _ := in.Signature(f1); len(sig.Params) != 2 || sig.Return != F32 {
		t.Errorf("signature = %+v", sig)
	}
}

func TestDisplay(t *testing.T) {
	in := NewInterner()
	light := in.InternStruct(1)
	namer := func(key any) string {
		if key == 1 {
			return "Light"
		}
		return "?"
	}
	cases := []struct {
		ty   Type
		want string
	}{
		{in.Matrix(4, 3, F16), "mat4x3<f16>"},
		{in.Array(in.Vector(2, U32), 8, false), "array<vec2<u32>, 8>"},
		{in.Array(light, 0, true), "array<Light>"},
		{in.BindingArray(in.Sampler(false), 4, false), "binding_array<sampler, 4>"},
		{in.Atomic(I32), "atomic<i32>"},
		{in.Ref(F32, SpacePrivate, AccessReadWrite), "ref<private, f32, read_write>"},
		{in.Ptr(light, SpaceStorage, AccessRead), "ptr<storage, Light, read>"},
		{in.Texture(TextureType{Dim: Dim2D, Arrayed: true, Sampled: F32}), "texture_2d_array<f32>"},
		{in.Texture(TextureType{Dim: Dim2D, Kind: TextureDepth, Multisampled: true}), "texture_depth_multisampled_2d"},
		{in.Texture(TextureType{Dim: Dim3D, Kind: TextureStorage, Format: "rgba8unorm", Access: AccessWrite}),
			"texture_storage_3d<rgba8unorm, write>"},
		{in.Sampler(true), "sampler_comparison"},
		{in.Function(NoType, []Type{F32}), "fn(f32)"},
		{in.Function(Bool, nil), "fn() -> bool"},
	}
	for _, c := range cases {
		if got := in.Display(c.ty, namer); got != c.want {
			t.Errorf("Display = %q, want %q", got, c.want)
		}
	}
}

func TestTextureByName(t *testing.T) {
	names := []string{
		"texture_1d", "texture_2d", "texture_2d_array", "texture_3d", "texture_cube", "texture_cube_array",
		"texture_multisampled_2d", "texture_external", "texture_storage_1d", "texture_storage_2d_array",
		"texture_depth_2d", "texture_depth_cube_array", "texture_depth_multisampled_2d",
	}
	for _, n := range names {
		tt, ok := TextureByName(n)
		if !ok {
			t.Errorf("%s not recognised", n)
			continue
		}
		if got := textureBase(tt); got != n {
			t.Errorf("round trip %s -> %s", n, got)
		}
	}
	for _, bad := range []string{"texture_4d", "texture_2d_arrayy", "sampler"} {
		if _, ok := TextureByName(bad); ok {
			t.Errorf("%s accepted", bad)
		}
	}
}

func TestPredeclaredAliases(t *testing.T) {
	in := NewInterner()
	cases := map[string]string{
		"vec3f":   "vec3<f32>",
		"vec2i":   "vec2<i32>",
		"vec4u":   "vec4<u32>",
		"vec4h":   "vec4<f16>",
		"mat4x4f": "mat4x4<f32>",
		"mat2x3h": "mat2x3<f16>",
	}
	for name, want := range cases {
		ty, ok := in.Predeclared(name)
		if !ok || in.Display(ty, nil) != want {
			t.Errorf("%s = %q, want %q", name, in.Display(ty, nil), want)
		}
	}
	for _, bad := range []string{"vec5f", "vec3b", "mat4x4i", "mat1x2f", "vec"} {
		if _, ok := in.Predeclared(bad); ok {
			t.Errorf("%s accepted", bad)
		}
	}
}

func TestConcretizeAndJoin(t *testing.T) {
	in := NewInterner()
	if in.Concretize(AbstractInt) != I32 || in.Concretize(AbstractFloat) != F32 {
		t.Errorf("scalar concretize")
	}
	if got := in.Concretize(in.Vector(3, AbstractFloat)); got != in.Vector(3, F32) {
		t.Errorf("vector concretize = %s", in.Display(got, nil))
	}
	if in.Concretize(U32) != U32 {
		t.Errorf("concrete types are unchanged")
	}
	cases := []struct {
		a, b Type
		want Type
		ok   bool
	}{
		{AbstractInt, U32, U32, true},
		{F16, AbstractFloat, F16, true},
		{AbstractInt, AbstractFloat, AbstractFloat, true},
		{AbstractFloat, I32, NoType, false},
		{I32, U32, NoType, false},
		{in.Vector(2, AbstractInt), in.Vector(2, F32), in.Vector(2, F32), true},
		{in.Vector(2, F32), in.Vector(3, F32), NoType, false},
	}
	for _, c := range cases {
		got, ok := in.Join(c.a, c.b)
		if ok != c.ok || got != c.want {
			t.Errorf("Join(%s, %s) = %s, %v", in.Display(c.a, nil), in.Display(c.b, nil), in.Display(got, nil), ok)
		}
	}
}

func TestPredicates(t *testing.T) {
	in := NewInterner()
	plain := in.InternStruct("Plain")
	withAtomic := in.InternStruct("WithAtomic")
	withBool := in.InternStruct("WithBool")
	fields := func(key any) []Type {
		switch key {
		case "Plain":
			return []Type{F32, in.Vector(4, F32)}
		case "WithAtomic":
			return []Type{in.Atomic(U32), in.Array(F32, 0, true)}
		case "WithBool":
			return []Type{Bool}
		}
		return nil
	}
	tex := in.Texture(TextureType{Dim: Dim2D, Sampled: F32})

	if !in.IsConstructable(plain, fields) || in.IsConstructable(withAtomic, fields) {
		t.Errorf("IsConstructable")
	}
	if in.IsConstructable(in.Array(F32, 0, true), fields) || !in.IsConstructable(in.Array(F32, 4, false), fields) {
		t.Errorf("IsConstructable arrays")
	}
	if !in.IsHostShareable(withAtomic, fields) || in.IsHostShareable(withBool, fields) {
		t.Errorf("IsHostShareable")
	}
	if in.IsHostShareable(AbstractInt, fields) {
		t.Errorf("abstract types have no layout")
	}
	if !in.IsStorable(tex) || in.IsPlain(tex) || !in.IsPlain(withBool) {
		t.Errorf("IsStorable / IsPlain")
	}
	if in.IsWorkgroupCompatible(withAtomic, fields) || !in.IsWorkgroupCompatible(plain, fields) {
		t.Errorf("IsWorkgroupCompatible")
	}
	if in.Unref(in.Ref(F32, SpaceFunction, AccessReadWrite)) != F32 {
		t.Errorf("Unref")
	}
	if in.ThisOrVecInner(in.Vector(2, I32)) != I32 || in.ThisOrVecInner(U32) != U32 {
		t.Errorf("ThisOrVecInner")
	}
}

func TestBuiltinTableParses(t *testing.T) {
	tbl := Builtins()
	for _, n := range tbl.Names() {
		if len(n) > 3 && n[:3] == "op_" {
			t.Fatalf("operator %s listed among names", n)
		}
	}
	for _, n := range []string{OpAdd, OpMul, OpShift, OpEq, OpCmp, OpBitop, OpAndOr, OpNot, OpNeg, OpBitnot, "textureSample", "workgroupBarrier"} {
		if _, ok := tbl.Lookup(n); !ok {
			t.Errorf("%s missing", n)
		}
	}
	if b, _ := tbl.Lookup("workgroupBarrier"); b.Overloads[0].Return != nil {
		t.Errorf("barrier has a return type")
	}
}

func TestParseTableRejectsGarbage(t *testing.T) {
	bad := []string{
		"abs T) -> T",
		"abs(e: T) -> T where T: nonsense",
		"f(e: vec5<f32>) -> f32",
		"f(e: widget) -> f32",
	}
	for _, line := range bad {
		if _, err := ParseTable(line); err == nil {
			t.Errorf("%q parsed", line)
		}
	}
}

func TestBuiltinResolution(t *testing.T) {
	in := NewInterner()
	v3f := in.Vector(3, F32)
	m4 := in.Matrix(4, 4, F32)
	v4f := in.Vector(4, F32)
	storage := in.Texture(TextureType{Dim: Dim2D, Kind: TextureStorage, Format: "rgba8uint", Access: AccessWrite})
	cases := []struct {
		name string
		args []Type
		want string
	}{
		{OpAdd, []Type{v3f, AbstractInt}, "vec3<f32>"},
		{OpAdd, []Type{AbstractInt, AbstractInt}, "AbstractInt"},
		{OpMul, []Type{m4, v4f}, "vec4<f32>"},
		{OpMul, []Type{in.Matrix(2, 3, F32), in.Matrix(4, 2, F32)}, "mat4x3<f32>"},
		{OpShift, []Type{U32, AbstractInt}, "u32"},
		{OpCmp, []Type{in.Vector(2, I32), in.Vector(2, I32)}, "vec2<bool>"},
		{OpNeg, []Type{AbstractFloat}, "AbstractFloat"},
		{"max", []Type{AbstractInt, AbstractFloat}, "AbstractFloat"},
		{"sqrt", []Type{AbstractInt}, "AbstractFloat"},
		{"dot", []Type{v3f, v3f}, "f32"},
		{"transpose", []Type{in.Matrix(2, 4, F32)}, "mat4x2<f32>"},
		{"select", []Type{v3f, v3f, Bool}, "vec3<f32>"},
		{"arrayLength", []Type{in.Ptr(in.Array(U32, 0, true), SpaceStorage, AccessRead)}, "u32"},
		{"atomicAdd", []Type{in.Ptr(in.Atomic(U32), SpaceStorage, AccessReadWrite), AbstractInt}, "u32"},
		{"textureLoad", []Type{storage, in.Vector(2, I32)}, "vec4<u32>"},
		{"textureDimensions", []Type{in.Texture(TextureType{Dim: Dim3D, Sampled: I32})}, "vec3<u32>"},
	}
	for _, c := range cases {
		b, ok := Builtins().Lookup(c.name)
		if !ok {
			t.Fatalf("%s missing", c.name)
		}
		res, ok := b.Resolve(in, c.args)
		if !ok {
			t.Errorf("%s: no overload", c.name)
			continue
		}
		if got := in.Display(res.Return, nil); got != c.want {
			t.Errorf("%s returns %s, want %s", c.name, got, c.want)
		}
	}

	store, _ := Builtins().Lookup("textureStore")
	res, ok := store.Resolve(in, []Type{storage, in.Vector(2, I32), in.Vector(4, U32)})
	if !ok || res.Return != NoType {
		t.Errorf("textureStore = %+v, %v", res, ok)
	}
	if _, ok := store.Resolve(in, []Type{storage, in.Vector(2, I32), v4f}); ok {
		t.Errorf("textureStore accepted the wrong channel type")
	}
}

func TestBuiltinRejections(t *testing.T) {
	in := NewInterner()
	cases := []struct {
		name string
		args []Type
	}{
		{OpAdd, []Type{I32, U32}},
		{OpAdd, []Type{Bool, Bool}},
		{OpAndOr, []Type{I32, Bool}},
		{"sqrt", []Type{I32}},
		{"cross", []Type{in.Vector(2, F32), in.Vector(2, F32)}},
		{"max", []Type{F32}},
		{OpNeg, []Type{U32}},
	}
	for _, c := range cases {
		b, _ := Builtins().Lookup(c.name)
		if res, ok := b.Resolve(in, c.args); ok {
			t.Errorf("%s accepted, returns %s", c.name, in.Display(res.Return, nil))
		}
	}
}
