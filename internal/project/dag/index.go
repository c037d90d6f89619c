// Package dag orders packages by their [dependencies] so that every
// package comes after the packages it depends on.
package dag

import (
	"slices"
)

type PackageID uint32

type Index struct {
	NameToID map[string]PackageID
	IDToName []string
}

// BuildIndex assigns IDs in name order to every package that appears in
// deps, as a key or as a dependency.
func BuildIndex(deps map[string][]string) Index {
	uniq := make(map[string]struct{}, len(deps))
	for name, list := range deps {
		uniq[name] = struct{}{}
		for _, dep := range list {
			uniq[dep] = struct{}{}
		}
	}
	names := make([]string, 0, len(uniq))
	for name := range uniq {
		names = append(names, name)
	}
	slices.Sort(names)

	nameToID := make(map[string]PackageID, len(names))
	for i, name := range names {
		nameToID[name] = PackageID(i)
	}
	return Index{NameToID: nameToID, IDToName: names}
}

func (idx Index) Names(ids []PackageID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idx.IDToName[int(id)]
	}
	return out
}
