// Package hir holds the position-independent intermediate representation
// built from syntax: the AstIdMap, the per-file ItemTree, signature-level
// item data, and lowered function bodies.
//
// Nothing in an ItemTree, item data or Body refers to text offsets. Offsets
// live in AstIdMap and BodySourceMap only, so edits that move text around
// without changing structure produce equal values.
package hir

import (
	"fmt"

	"fortio.org/safecast"

	"shaderlens/internal/source"
	"shaderlens/internal/syntax"
)

// FileID addresses a parsed file together with the edition it is parsed in.
type FileID struct {
	File    source.FileID
	Edition syntax.Edition
}

// ItemKind enumerates module-level items.
type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	ItemFunction
	ItemStruct
	ItemGlobalVariable
	ItemGlobalConstant
	ItemOverride
	ItemTypeAlias
	ItemImport
	ItemGlobalAssert
)

func (k ItemKind) String() string {
	switch k {
	case ItemFunction:
		return "function"
	case ItemStruct:
		return "struct"
	case ItemGlobalVariable:
		return "global variable"
	case ItemGlobalConstant:
		return "global constant"
	case ItemOverride:
		return "override"
	case ItemTypeAlias:
		return "type alias"
	case ItemImport:
		return "import"
	case ItemGlobalAssert:
		return "const_assert"
	}
	return "invalid"
}

// ItemLoc names one item: the file it lives in, its kind and its 1-based
// index in that kind's ItemTree arena.
type ItemLoc struct {
	File  source.FileID
	Kind  ItemKind
	Index uint32
}

func (l ItemLoc) IsValid() bool { return l.Kind != ItemInvalid && l.Index != 0 }

func (l ItemLoc) String() string { return fmt.Sprintf("%s#%d@%d", l.Kind, l.Index, l.File) }

// DefWithBody is an item that owns a Body: a function, or a global whose
// initializer is an expression.
type DefWithBody = ItemLoc

// Arena is a 1-based append-only store. Index 0 is never allocated and
// Get(0) returns nil.
type Arena[T any] struct {
	data []T
}

func NewArena[T any](capHint int) Arena[T] {
	return Arena[T]{data: make([]T, 0, capHint)}
}

// Alloc appends value and returns its index.
func (a *Arena[T]) Alloc(value T) uint32 {
	a.data = append(a.data, value)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("hir arena overflow: %w", err))
	}
	return n
}

func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// All returns the backing slice; element i has index i+1.
func (a *Arena[T]) All() []T { return a.data }

func (a *Arena[T]) Len() int { return len(a.data) }
