package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"shaderlens/internal/project/dag"
)

// ErrDependency reports a [dependencies] entry that cannot be used.
var ErrDependency = errors.New("bad dependency")

// Graph is a root manifest with every package it reaches through
// [dependencies]. Packages are in load order, the root first.
type Graph struct {
	Root     *Manifest
	Packages []*Manifest
	// Deps holds the dependency names of each package, by package name.
	Deps map[string][]string
	// Order lists package names with every dependency before its users.
	Order []string
}

// LoadGraph loads the manifest at path and its dependencies. A dependency
// key must equal the name the dependency declares, since imports name
// packages by key. Dependency cycles are rejected.
func LoadGraph(path string) (*Graph, error) {
	root, err := Load(path)
	if err != nil {
		return nil, err
	}
	g := &Graph{Root: root, Deps: make(map[string][]string)}
	byDir := make(map[string]*Manifest)
	byName := make(map[string]*Manifest)
	if err := g.visit(root, byDir, byName); err != nil {
		return nil, err
	}
	idx := dag.BuildIndex(g.Deps)
	topo := dag.ToposortKahn(dag.BuildGraph(idx, g.Deps))
	if topo.Cyclic {
		return nil, fmt.Errorf("%s: dependency cycle among %s: %w", root.Path, strings.Join(idx.Names(topo.Cycles), ", "), ErrDependency)
	}
	g.Order = idx.Names(topo.Order)
	return g, nil
}

func (g *Graph) visit(m *Manifest, byDir, byName map[string]*Manifest) error {
	if other, ok := byName[m.Name()]; ok && other.Dir != m.Dir {
		return fmt.Errorf("%s: package %q already loaded from %s: %w", m.Path, m.Name(), other.Dir, ErrDependency)
	}
	byDir[m.Dir] = m
	byName[m.Name()] = m
	g.Packages = append(g.Packages, m)

	names := m.DependencyNames()
	g.Deps[m.Name()] = names
	for _, name := range names {
		dir, _ := m.DependencyDir(name)
		if dep, ok := byDir[dir]; ok {
			if dep.Name() != name {
				return fmt.Errorf("%s: dependency %q names package %q: %w", m.Path, name, dep.Name(), ErrDependency)
			}
			continue
		}
		dep, err := Load(filepath.Join(dir, ManifestName))
		if err != nil {
			return fmt.Errorf("%s: dependency %q: %w", m.Path, name, err)
		}
		if dep.Name() != name {
			return fmt.Errorf("%s: dependency %q names package %q: %w", m.Path, name, dep.Name(), ErrDependency)
		}
		if err := g.visit(dep, byDir, byName); err != nil {
			return err
		}
	}
	return nil
}
