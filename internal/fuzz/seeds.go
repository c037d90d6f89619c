package fuzztests

import "testing"

const maxFuzzInput = 1 << 16

var seeds = []string{
	"",
	"fn main() {}\n",
	"@vertex\nfn vs(@builtin(vertex_index) i: u32) -> @builtin(position) vec4<f32> {\n    return vec4<f32>(0.0, 0.0, 0.0, 1.0);\n}\n",
	"struct Light {\n    color: vec3<f32>,\n    intensity: f32,\n}\n",
	"var<uniform> u: array<vec4<f32>, 2>;\n",
	"const a = (1 << 2) + 3u;\nalias V = vec2f;\n",
	"fn f(x: f32) -> f32 {\n    var y = x;\n    for (var i = 0; i < 4; i++) { y *= 2.0; }\n    return y;\n}\n",
	"fn g(x: i32) {\n    switch x {\n        case 1, 2: { return; }\n        default: {}\n    }\n}\n",
	"#ifdef SKINNED\nfn skin() {}\n#else\nfn rigid() {}\n#endif\n",
	"#import bevy::utils\nimport package::util::scale;\n",
	"fn f() { let a = bitcast<u32>(1.0); let b = - -1; }\n",
	"/* block /* nested */ */ // line\nfn f( {",
	"fn f() -> { return intensitty; }\n$",
	"\xff\xfe fn \x00",
}

func addSeeds(f *testing.F) {
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
