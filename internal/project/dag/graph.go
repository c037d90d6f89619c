package dag

import "slices"

// Graph has an edge from every dependency to each package using it.
type Graph struct {
	Edges [][]PackageID // Edges[dep] = dependents
	Indeg []int         // number of distinct dependencies
}

func BuildGraph(idx Index, deps map[string][]string) Graph {
	n := len(idx.IDToName)
	g := Graph{
		Edges: make([][]PackageID, n),
		Indeg: make([]int, n),
	}
	for name, list := range deps {
		from := idx.NameToID[name]
		seen := make(map[PackageID]struct{}, len(list))
		for _, dep := range list {
			to := idx.NameToID[dep]
			if _, dup := seen[to]; dup {
				continue
			}
			seen[to] = struct{}{}
			g.Edges[to] = append(g.Edges[to], from)
			g.Indeg[from]++
		}
	}
	for i := range g.Edges {
		slices.Sort(g.Edges[i])
	}
	return g
}
