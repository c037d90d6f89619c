package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadTerminalMode(t *testing.T) {
	tests := []struct {
		in      string
		want    terminalMode
		wantErr bool
	}{
		{"", modeAuto, false},
		{"AUTO", modeAuto, false},
		{" on ", modeOn, false},
		{"always", modeOn, false},
		{"off", modeOff, false},
		{"Never", modeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readTerminalMode("ui", tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readTerminalMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if _, err := readTerminalMode("color", "rainbow"); err == nil || !strings.Contains(err.Error(), "--color") {
		t.Errorf("error %v does not name the flag", err)
	}
}

func TestTerminalModeEnabled(t *testing.T) {
	if !modeOn.enabled(nil) || modeOff.enabled(os.Stdout) {
		t.Fatal("explicit modes ignored")
	}
	// a nil file is never a terminal
	if modeAuto.enabled(nil) {
		t.Error("auto enabled without a terminal")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetOut(nil)
	err := rootCmd.Execute()
	runCleanup()
	return out.String(), err
}

func TestFormatCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.wgsl")
	if err := os.WriteFile(path, []byte("fn  f( ){ return; }"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "fmt", "--check=true", "--write=false", path)
	var exit exitCodeError
	if !errors.As(err, &exit) || exit.code != 1 {
		t.Fatalf("check on unformatted file: err = %v", err)
	}
	if !strings.Contains(out, "a.wgsl") {
		t.Fatalf("check output = %q", out)
	}

	if _, err := execute(t, "fmt", "--check=false", "--write=true", path); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := execute(t, "fmt", "--check=true", "--write=false", path); err != nil {
		t.Fatalf("check after write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "fn f() { return; }\n" {
		t.Fatalf("formatted = %q", got)
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json", "--full=false")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if payload.Tool != "shaderlens" || payload.Version == "" || payload.GitCommit != "" {
		t.Fatalf("payload = %+v", payload)
	}
}
