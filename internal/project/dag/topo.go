package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type Topo struct {
	Order []PackageID // dependencies first
	// Batches are waves of packages whose dependencies all sit in
	// earlier waves.
	Batches [][]PackageID
	Cyclic  bool
	Cycles  []PackageID // packages left with unmet dependencies
}

// ToposortKahn orders g with Kahn's algorithm. Ties are broken by ID, so
// the result is deterministic.
func ToposortKahn(g Graph) *Topo {
	n := len(g.Edges)
	indeg := slices.Clone(g.Indeg)
	topo := &Topo{Order: make([]PackageID, 0, n)}

	current := make([]PackageID, 0, n)
	for i := range n {
		if indeg[i] == 0 {
			current = append(current, toID(i))
		}
	}

	for len(current) > 0 {
		topo.Batches = append(topo.Batches, current)
		var next []PackageID
		for _, id := range current {
			topo.Order = append(topo.Order, id)
			for _, to := range g.Edges[int(id)] {
				indeg[int(to)]--
				if indeg[int(to)] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(topo.Order) != n {
		topo.Cyclic = true
		for i := range n {
			if indeg[i] > 0 {
				topo.Cycles = append(topo.Cycles, toID(i))
			}
		}
	}
	return topo
}

func toID(i int) PackageID {
	id, err := safecast.Conv[PackageID](i)
	if err != nil {
		panic(fmt.Errorf("package id overflow: %w", err))
	}
	return id
}
