package preproc

import (
	"testing"
)

func TestProcess(t *testing.T) {
	tests := []struct {
		name string
		in   string
		defs []string
		want string
	}{
		{"empty", "", nil, ""},
		{"only newline", "\n", nil, "\n"},
		{
			name: "false branch blanked",
			in:   ".\n#ifdef FALSE\nIGNORE\n#endif\n.\n",
			want: ".\n            \n      \n      \n.\n",
		},
		{
			name: "defined branch kept",
			in:   "#ifdef A\nkeep\n#else\ndrop\n#endif",
			defs: []string{"A"},
			want: "        \nkeep\n     \n    \n      ",
		},
		{
			name: "ifndef",
			in:   "#ifndef A\nx\n#else\ny\n#endif\n",
			want: "         \nx\n     \n \n      \n",
		},
		{
			name: "nested inside inactive stays inactive",
			in:   "#ifdef A\n#ifdef B\nx\n#else\ny\n#endif\n#endif\n",
			defs: []string{"B"},
			want: "        \n        \n \n     \n \n      \n      \n",
		},
		{
			name: "multibyte lines keep byte length",
			in:   "#ifdef A\nlet é = 1;\n#endif\n",
			want: "        \n           \n      \n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Process(tt.in, NewDefs(tt.defs...))
			if got.Text != tt.want {
				t.Fatalf("Process() =\n%q\nwant\n%q", got.Text, tt.want)
			}
			if len(got.Text) != len(tt.in) {
				t.Fatalf("length changed: %d -> %d", len(tt.in), len(got.Text))
			}
			if len(got.Unbalanced) != 0 {
				t.Errorf("unexpected unbalanced directives %v", got.Unbalanced)
			}
		})
	}
}

func TestProcessUnbalanced(t *testing.T) {
	got := Process("#endif\n#ifdef X\nfn a() {}\n", nil)
	if len(got.Unbalanced) != 2 {
		t.Fatalf("Unbalanced = %v, want 2 entries", got.Unbalanced)
	}
	if got.Unbalanced[0].Start != 0 || got.Unbalanced[1].Start != 7 {
		t.Errorf("ranges = %v", got.Unbalanced)
	}
	if got.Text[16:] != "         \n" {
		t.Errorf("code under unclosed ifdef should be blanked: %q", got.Text)
	}
}
