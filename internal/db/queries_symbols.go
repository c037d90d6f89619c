package db

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"shaderlens/internal/hir"
	"shaderlens/internal/source"
	"shaderlens/internal/symbols"
	"shaderlens/internal/types"
)

// CustomPackage holds the texts behind legacy `#import` keys. A key
// `a::b` is the module a/b of this package.
const CustomPackage hir.Name = "#custom"

// A file no package lists forms a package of its own named by
// standalonePackage.
const standalonePrefix = "#file"

func standalonePackage(file source.FileID) hir.Name {
	return hir.Name(fmt.Sprintf("%s%d", standalonePrefix, file))
}

func standaloneFile(name hir.Name) (source.FileID, bool) {
	rest, ok := strings.CutPrefix(string(name), standalonePrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(rest, 10, 32)
	if err != nil {
		return 0, false
	}
	return source.FileID(n), true
}

func computePackageOf(r *reader, file source.FileID) hir.Name {
	if file >= customBase {
		return CustomPackage
	}
	for _, p := range r.packages() {
		if slices.Contains(p.Files, file) {
			return p.Name
		}
	}
	return standalonePackage(file)
}

func computeDefMap(r *reader, name hir.Name) *symbols.DefMap {
	input := symbols.PackageInput{Name: name}
	switch file, standalone := standaloneFile(name); {
	case name == CustomPackage:
		custom := r.customImports()
		for _, key := range slices.Sorted(maps.Keys(custom)) {
			input.Files = append(input.Files, symbols.FileInput{File: custom[key], Module: customModule(key)})
		}
	case standalone:
		input.Files = []symbols.FileInput{{File: file}}
	default:
		pkgs := r.packages()
		i := slices.IndexFunc(pkgs, func(p Package) bool { return p.Name == name })
		if i < 0 {
			break
		}
		pkg := pkgs[i]
		for _, d := range pkg.Deps {
			if !reaches(pkgs, d, name, map[hir.Name]bool{}) {
				input.Deps = append(input.Deps, d)
			}
		}
		for _, f := range pkg.Files {
			input.Files = append(input.Files, symbols.FileInput{File: f, Module: modulePath(pkg.Root, r.filePath(f))})
		}
	}
	return symbols.Collect(input, r)
}

// reaches reports whether package from depends on target, directly or
// not. Such a dependency of target would form a cycle and is left out.
func reaches(pkgs []Package, from, target hir.Name, seen map[hir.Name]bool) bool {
	if from == target {
		return true
	}
	if seen[from] {
		return false
	}
	seen[from] = true
	i := slices.IndexFunc(pkgs, func(p Package) bool { return p.Name == from })
	if i < 0 {
		return false
	}
	for _, d := range pkgs[i].Deps {
		if reaches(pkgs, d, target, seen) {
			return true
		}
	}
	return false
}

// modulePath is the module of a file below root: the relative path without
// its extension. `main` and `lib` at the root are the root module.
func modulePath(root, path string) []hir.Name {
	if path == "" {
		return nil
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	segs := strings.Split(filepath.ToSlash(rel), "/")
	if len(segs) == 1 && (segs[0] == "main" || segs[0] == "lib") {
		return nil
	}
	out := make([]hir.Name, len(segs))
	for i, s := range segs {
		out[i] = hir.Name(s)
	}
	return out
}

func customModule(key string) []hir.Name {
	var out []hir.Name
	for _, seg := range strings.Split(key, "::") {
		if seg != "" {
			out = append(out, hir.Name(seg))
		}
	}
	return out
}

func computeModuleOf(r *reader, file source.FileID) symbols.ModuleID {
	id, _ := r.DefMap(r.PackageOf(file)).ModuleOf(file)
	return id
}

// PackageOf names the package file belongs to.
func (r *reader) PackageOf(file source.FileID) hir.Name { return r.q().packageOf.get(r, file) }

func (r *reader) DefMap(pkg hir.Name) *symbols.DefMap { return r.q().defMap.get(r, pkg) }

// ModuleOf is the module file defines in its package.
func (r *reader) ModuleOf(file source.FileID) symbols.ModuleID {
	return r.q().moduleOf.get(r, file)
}

// Resolver resolves names as seen from module scope of file.
func (r *reader) Resolver(file source.FileID) symbols.Resolver {
	return symbols.NewResolver(r.DefMap(r.PackageOf(file)), r.ModuleOf(file))
}

// DepDefMap answers dependency lookups while a def map is collected.
func (r *reader) DepDefMap(pkg hir.Name) (*symbols.DefMap, bool) {
	if !slices.ContainsFunc(r.packages(), func(p Package) bool { return p.Name == pkg }) {
		return nil, false
	}
	return r.DefMap(pkg), true
}

// CustomImport finds the file behind a legacy `#import` key.
func (r *reader) CustomImport(key string) (source.FileID, bool) {
	id, ok := r.customImports()[key]
	return id, ok
}

func (r *reader) Interner() *types.Interner { return r.s.db.interner }

var _ symbols.Source = (*reader)(nil)
