package dag

import (
	"slices"
	"testing"
)

func TestBuildIndexIncludesDependencies(t *testing.T) {
	idx := BuildIndex(map[string][]string{
		"app":  {"util", "math"},
		"util": nil,
	})
	want := []string{"app", "math", "util"}
	if !slices.Equal(idx.IDToName, want) {
		t.Fatalf("IDToName = %v, want %v", idx.IDToName, want)
	}
	for i, name := range want {
		if id, ok := idx.NameToID[name]; !ok || int(id) != i {
			t.Fatalf("NameToID[%q] = %v, want %d", name, id, i)
		}
	}
}

func TestToposortKahn(t *testing.T) {
	tests := []struct {
		name        string
		deps        map[string][]string
		wantOrder   []string
		wantBatches [][]string
		wantCycle   []string
	}{
		{
			name: "diamond",
			deps: map[string][]string{
				"app":  {"util", "math", "math"},
				"util": {"math"},
				"math": nil,
			},
			wantOrder:   []string{"math", "util", "app"},
			wantBatches: [][]string{{"math"}, {"util"}, {"app"}},
		},
		{
			name: "independent",
			deps: map[string][]string{
				"b": {"c"},
				"a": nil,
			},
			wantOrder:   []string{"a", "c", "b"},
			wantBatches: [][]string{{"a", "c"}, {"b"}},
		},
		{
			name: "cycle",
			deps: map[string][]string{
				"app": {"x"},
				"x":   {"y"},
				"y":   {"x"},
			},
			wantOrder:   []string{},
			wantBatches: nil,
			wantCycle:   []string{"app", "x", "y"},
		},
		{
			name:        "self",
			deps:        map[string][]string{"a": {"a"}},
			wantOrder:   []string{},
			wantBatches: nil,
			wantCycle:   []string{"a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := BuildIndex(tt.deps)
			topo := ToposortKahn(BuildGraph(idx, tt.deps))
			if got := idx.Names(topo.Order); !slices.Equal(got, tt.wantOrder) {
				t.Errorf("order = %v, want %v", got, tt.wantOrder)
			}
			if len(topo.Batches) != len(tt.wantBatches) {
				t.Fatalf("batches = %d, want %d", len(topo.Batches), len(tt.wantBatches))
			}
			for i, batch := range topo.Batches {
				if got := idx.Names(batch); !slices.Equal(got, tt.wantBatches[i]) {
					t.Errorf("batch %d = %v, want %v", i, got, tt.wantBatches[i])
				}
			}
			if topo.Cyclic != (tt.wantCycle != nil) {
				t.Fatalf("cyclic = %v", topo.Cyclic)
			}
			if got := idx.Names(topo.Cycles); tt.wantCycle != nil && !slices.Equal(got, tt.wantCycle) {
				t.Errorf("cycles = %v, want %v", got, tt.wantCycle)
			}
		})
	}
}
