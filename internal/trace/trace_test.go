package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"PHASE", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"loud", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	if !LevelPhase.ShouldEmit(ScopePass) || LevelPhase.ShouldEmit(ScopeModule) {
		t.Error("phase should keep passes and drop modules")
	}
	if !LevelDebug.ShouldEmit(ScopeNode) || LevelDetail.ShouldEmit(ScopeNode) {
		t.Error("node events need debug")
	}
	if LevelError.ShouldEmit(ScopeDriver) {
		t.Error("error level streams nothing")
	}
}

func TestStreamTracerWritesSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	ctx := WithTracer(context.Background(), tr)
	span := Begin(FromContext(ctx), ScopePass, "query:parse", 0)
	Point(tr, ScopeNode, "hit:item_tree", "file 1", span.ID())
	span.WithExtra("file", "1").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "> query:parse") {
		t.Errorf("begin line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "* hit:item_tree (file 1)") {
		t.Errorf("point line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "< query:parse (ok)") || !strings.Contains(lines[2], "file=1") {
		t.Errorf("end line = %q", lines[2])
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: name})
	}
	got := r.Snapshot()
	if len(got) != 2 || got[0].Name != "b" || got[1].Name != "c" {
		t.Errorf("snapshot = %+v", got)
	}
}

func TestDisabledTracerIsInert(t *testing.T) {
	span := Begin(Nop, ScopeDriver, "load", 0)
	if span.ID() != 0 || span.End("") != 0 {
		t.Error("nop span should be inert")
	}
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Errorf("New(off) = %v, %v", tr, err)
	}
}

func TestNDJSON(t *testing.T) {
	line := string(FormatEvent(&Event{Seq: 7, Kind: KindPoint, Scope: ScopeNode, Name: "hit"}, FormatNDJSON))
	for _, want := range []string{`"seq":7`, `"kind":"point"`, `"scope":"node"`, `"name":"hit"`} {
		if !strings.Contains(line, want) {
			t.Errorf("%s lacks %s", line, want)
		}
	}
}
