package symbols

import (
	"fmt"
	"slices"
	"strings"

	"shaderlens/internal/hir"
)

type ResolveErrorKind uint8

const (
	ErrUnresolvedImport ResolveErrorKind = iota + 1
	ErrTooManySupers
	ErrUnresolvedModule
)

// ResolveError explains why a path did not resolve.
type ResolveError struct {
	Kind        ResolveErrorKind
	Name        hir.Name
	Suggestions []hir.Name
}

func (e *ResolveError) Error() string {
	switch e.Kind {
	case ErrTooManySupers:
		return "too many `super` segments: the path leaves the package"
	case ErrUnresolvedModule:
		return fmt.Sprintf("unresolved module `%s`", e.Name)
	}
	return fmt.Sprintf("unresolved import `%s`", e.Name)
}

// ResolvePath resolves p as seen from module from.
func (m *DefMap) ResolvePath(from ModuleID, p hir.ModPath) (ModuleDef, *ResolveError) {
	cur, mod := m, from
	segs := p.Segments
	switch p.Kind {
	case hir.PathSuper:
		for range p.Supers {
			parent := cur.Module(mod).Parent
			if parent == NoModule {
				return ModuleDef{}, &ResolveError{Kind: ErrTooManySupers}
			}
			mod = parent
		}
	case hir.PathPackage:
		mod = cur.Root
	default:
		if len(segs) == 0 {
			return ModuleDef{}, &ResolveError{Kind: ErrUnresolvedImport, Name: hir.MissingName}
		}
		def, ok := cur.lookupFirst(mod, segs[0])
		if !ok {
			kind := ErrUnresolvedModule
			if len(segs) == 1 {
				kind = ErrUnresolvedImport
			}
			return ModuleDef{}, &ResolveError{Kind: kind, Name: segs[0], Suggestions: suggest(segs[0], cur.firstNames(mod))}
		}
		segs = segs[1:]
		if len(segs) == 0 {
			return def, nil
		}
		if def.Kind != DefModule {
			return ModuleDef{}, &ResolveError{Kind: ErrUnresolvedModule, Name: p.Segments[0]}
		}
		next, ok := cur.Dep(def.Package)
		if !ok {
			return ModuleDef{}, &ResolveError{Kind: ErrUnresolvedModule, Name: p.Segments[0]}
		}
		cur, mod = next, def.Module
	}
	if len(segs) == 0 {
		return ModuleDef{Kind: DefModule, Module: mod, Package: cur.Package}, nil
	}
	for i, s := range segs {
		md := cur.Module(mod)
		if i < len(segs)-1 {
			if child, ok := md.Children[s]; ok {
				mod = child
				continue
			}
			if d, ok := md.Scope.Imports[s]; ok && d.Kind == DefModule {
				if next, ok := m.mapOf(cur, d.Package); ok {
					cur, mod = next, d.Module
					continue
				}
			}
			return ModuleDef{}, &ResolveError{Kind: ErrUnresolvedModule, Name: s, Suggestions: suggest(s, keys(md.Children))}
		}
		if d, ok := md.Scope.Items[s]; ok {
			return d, nil
		}
		if d, ok := md.Scope.Imports[s]; ok {
			return d, nil
		}
		if child, ok := md.Children[s]; ok {
			return ModuleDef{Kind: DefModule, Module: child, Package: cur.Package}, nil
		}
		names := append(append(keys(md.Scope.Items), keys(md.Scope.Imports)...), keys(md.Children)...)
		return ModuleDef{}, &ResolveError{Kind: ErrUnresolvedImport, Name: s, Suggestions: suggest(s, names)}
	}
	return ModuleDef{}, &ResolveError{Kind: ErrUnresolvedImport, Name: hir.MissingName}
}

// mapOf finds the def map of pkg from the starting map or the one the walk
// has reached.
func (m *DefMap) mapOf(cur *DefMap, pkg hir.Name) (*DefMap, bool) {
	if d, ok := m.Dep(pkg); ok {
		return d, true
	}
	return cur.Dep(pkg)
}

// lookupFirst resolves the first segment of a plain path: imports, then
// items, then child modules, then package names.
func (m *DefMap) lookupFirst(mod ModuleID, name hir.Name) (ModuleDef, bool) {
	md := m.Module(mod)
	if d, ok := md.Scope.Imports[name]; ok {
		return d, true
	}
	if d, ok := md.Scope.Items[name]; ok {
		return d, true
	}
	if child, ok := md.Children[name]; ok {
		return ModuleDef{Kind: DefModule, Module: child, Package: m.Package}, true
	}
	if dep, ok := m.Dep(name); ok {
		return ModuleDef{Kind: DefModule, Module: dep.Root, Package: dep.Package}, true
	}
	return ModuleDef{}, false
}

func (m *DefMap) firstNames(mod ModuleID) []hir.Name {
	md := m.Module(mod)
	names := append(append(keys(md.Scope.Imports), keys(md.Scope.Items)...), keys(md.Children)...)
	names = append(names, m.Package)
	for n := range m.deps {
		names = append(names, n)
	}
	return names
}

func keys[V any](m map[hir.Name]V) []hir.Name {
	out := make([]hir.Name, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// suggest returns the candidates within edit distance 2 of name, or
// sharing a prefix with it, closest first.
func suggest(name hir.Name, candidates []hir.Name) []hir.Name {
	type scored struct {
		name hir.Name
		dist int
	}
	var hits []scored
	seen := make(map[hir.Name]bool)
	for _, c := range candidates {
		if c == name || c.IsMissing() || seen[c] {
			continue
		}
		seen[c] = true
		d := levenshtein(string(name), string(c))
		if d <= 2 || strings.HasPrefix(string(c), string(name)) || strings.HasPrefix(string(name), string(c)) {
			hits = append(hits, scored{c, d})
		}
	}
	slices.SortFunc(hits, func(a, b scored) int {
		if a.dist != b.dist {
			return a.dist - b.dist
		}
		return strings.Compare(string(a.name), string(b.name))
	})
	out := make([]hir.Name, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
