package hir

import (
	"strings"

	"shaderlens/internal/source"
)

// Name is an identifier as written in source.
type Name string

// MissingName stands in for a name the parser could not find.
const MissingName Name = "[missing name]"

func (n Name) IsMissing() bool { return n == MissingName || n == "" }

func nameOrMissing(s string) Name {
	if s == "" {
		return MissingName
	}
	return Name(source.NormalizeName(s))
}

// PathKind says where a module path starts.
type PathKind uint8

const (
	PathPlain PathKind = iota
	PathSuper
	PathPackage
)

// ModPath is a `::`-separated path, optionally anchored at `super::` (one
// or more times) or `package::`.
type ModPath struct {
	Kind PathKind
	// Supers counts leading `super::` segments when Kind is PathSuper.
	Supers   int
	Segments []Name
}

func PlainPath(segs ...Name) ModPath { return ModPath{Kind: PathPlain, Segments: segs} }

func SuperPath(n int, segs ...Name) ModPath {
	return ModPath{Kind: PathSuper, Supers: n, Segments: segs}
}

func PackagePath(segs ...Name) ModPath { return ModPath{Kind: PathPackage, Segments: segs} }

// Push returns a copy of p with seg appended.
func (p ModPath) Push(seg Name) ModPath {
	segs := make([]Name, len(p.Segments), len(p.Segments)+1)
	copy(segs, p.Segments)
	p.Segments = append(segs, seg)
	return p
}

func (p ModPath) Last() (Name, bool) {
	if len(p.Segments) == 0 {
		return "", false
	}
	return p.Segments[len(p.Segments)-1], true
}

func (p ModPath) String() string {
	var sb strings.Builder
	switch p.Kind {
	case PathSuper:
		for range p.Supers {
			sb.WriteString("super::")
		}
	case PathPackage:
		sb.WriteString("package::")
	}
	for i, s := range p.Segments {
		if i > 0 {
			sb.WriteString("::")
		}
		sb.WriteString(string(s))
	}
	return sb.String()
}
