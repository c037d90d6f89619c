package token_test

import (
	"testing"

	"shaderlens/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		text string
		want token.Kind
	}{
		{"fn", token.KwFn},
		{"read_write", token.KwReadWrite},
		{"const_assert", token.KwConstAssert},
		{"vec3", token.TyVec3},
		{"mat4x2", token.TyMat4x2},
		{"texture_depth_cube_array", token.TyTextureDepthCubeArray},
		{"texture_storage_2d_array", token.TyTextureStorage2dArray},
		{"binding_array", token.TyBindingArray},
		{"sampler_comparison", token.TySamplerComparison},
	}
	for _, tt := range tests {
		got, ok := token.LookupKeyword(tt.text)
		if !ok || got != tt.want {
			t.Errorf("LookupKeyword(%q) = %v,%v want %v", tt.text, got, ok, tt.want)
		}
	}
	for _, s := range []string{"Fn", "vec3f", "main", ""} {
		if k, ok := token.LookupKeyword(s); ok {
			t.Errorf("LookupKeyword(%q) = %v, want no keyword", s, k)
		}
	}
}

func TestKindClasses(t *testing.T) {
	if !token.Whitespace.IsTrivia() || !token.PreprocEndif.IsTrivia() || token.PreprocImport.IsTrivia() {
		t.Error("trivia classification wrong")
	}
	if !token.Function.IsNode() || token.Ident.IsNode() || token.TyVec2.IsNode() {
		t.Error("node classification wrong")
	}
	if !token.TyTextureExternal.IsTexture() || token.TySampler.IsTexture() {
		t.Error("texture classification wrong")
	}
	if !token.ShiftRightEqual.IsCompoundAssign() || token.Equal.IsCompoundAssign() {
		t.Error("compound assign classification wrong")
	}
	if !token.Equal.IsAssignOp() || !token.PlusEqual.IsAssignOp() || token.EqualEqual.IsAssignOp() {
		t.Error("assign op classification wrong")
	}
}

func TestKindStrings(t *testing.T) {
	if token.ParenLeft.String() != "ParenLeft" || token.KwFn.String() != "Fn" || token.TyVec2.String() != "Vec2" {
		t.Errorf("unexpected names %s %s %s", token.ParenLeft, token.KwFn, token.TyVec2)
	}
	if token.Arrow.Text() != "->" || token.TyTexture2d.Text() != "texture_2d" {
		t.Errorf("unexpected text %q %q", token.Arrow.Text(), token.TyTexture2d.Text())
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		kind token.Kind
		want string
	}{
		{token.ParenLeft, "`(`"},
		{token.KwFn, "`fn`"},
		{token.Ident, "identifier"},
		{token.EOF, "end of file"},
		{token.HexFloatLiteral, "float literal"},
		{token.Function, "Function"},
	}
	for _, tt := range tests {
		if got := tt.kind.Describe(); got != tt.want {
			t.Errorf("%s.Describe() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestSet(t *testing.T) {
	s := token.NewSet(token.KwFn, token.ErrorNode)
	if !s.Contains(token.KwFn) || !s.Contains(token.ErrorNode) || s.Contains(token.KwVar) {
		t.Error("set membership wrong")
	}
	if !s.With(token.KwVar).Contains(token.KwVar) {
		t.Error("With did not add")
	}
}
