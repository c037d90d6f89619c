package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.wgsl", []byte("fn a() {}\nlet b = 1;\n\nx"))
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{9, LineCol{1, 10}}, // the newline belongs to line 1
		{10, LineCol{2, 1}},
		{21, LineCol{3, 1}},
		{22, LineCol{4, 1}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	f := NewFileSet()
	id := f.AddVirtual("x", []byte("one\ntwo\nthree"))
	file := f.Get(id)
	for i, want := range []string{"", "one", "two", "three", ""} {
		if got := file.GetLine(uint32(i)); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()
	first := fs.AddVirtual("dir/../a.wgsl", []byte("a"))
	second := fs.AddVirtual("a.wgsl", []byte("b"))
	if first == second {
		t.Fatal("expected distinct ids")
	}
	latest, ok := fs.GetLatest("a.wgsl")
	if !ok || latest != second {
		t.Fatalf("GetLatest = %d,%v want %d", latest, ok, second)
	}
	if fs.Get(first).Hash == fs.Get(second).Hash {
		t.Error("different content hashed equal")
	}
}

func TestReplaceKeepsID(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.wgsl", []byte("a\nb"))
	fs.Replace(id, []byte("abc"))
	f := fs.Get(id)
	if string(f.Content) != "abc" || len(f.LineIdx) != 0 || f.Flags != FileVirtual {
		t.Fatalf("unexpected file after Replace: %+v", f)
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.wgsl")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFfn a()\r\n{}\r"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if string(f.Content) != "fn a()\n{}\r" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b", f.Flags)
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.wgsl")); err == nil {
		t.Error("expected error for missing file")
	}
}
