package syntax

import (
	"path/filepath"
	"strings"
)

// Edition selects the language dialect of a file.
type Edition uint8

const (
	EditionWGSL Edition = iota
	EditionWESL
)

func (e Edition) String() string {
	if e == EditionWESL {
		return "wesl"
	}
	return "wgsl"
}

// EditionFromPath picks WESL for .wesl files and WGSL otherwise.
func EditionFromPath(path string) Edition {
	if strings.EqualFold(filepath.Ext(path), ".wesl") {
		return EditionWESL
	}
	return EditionWGSL
}

// ParseEdition accepts "wgsl" or "wesl".
func ParseEdition(s string) (Edition, bool) {
	switch strings.ToLower(s) {
	case "wgsl":
		return EditionWGSL, true
	case "wesl":
		return EditionWESL, true
	}
	return EditionWGSL, false
}
