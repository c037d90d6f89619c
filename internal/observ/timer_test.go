package observ

import (
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	t0 := time.Unix(0, 0)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * step)
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)
	tm.Measure("parse", func() string { return "" })
	idx := tm.Begin("infer")
	tm.End(idx, "3 bodies")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[1].Note != "3 bodies" {
		t.Fatalf("phases = %+v", r.Phases)
	}
	if r.TotalMS != 2 {
		t.Errorf("total = %v, want 2", r.TotalMS)
	}
	if s := r.Summary(); !strings.Contains(s, "infer") || !strings.Contains(s, "// 3 bodies") {
		t.Errorf("summary:\n%s", s)
	}
}

func TestMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1}, {Name: "infer", DurationMS: 2}}}
	b := Report{TotalMS: 4, Phases: []PhaseReport{{Name: "infer", DurationMS: 4}}}
	m := Merge(a, b)
	if m.TotalMS != 7 || len(m.Phases) != 2 || m.Phases[1].DurationMS != 6 {
		t.Errorf("merged = %+v", m)
	}
}
