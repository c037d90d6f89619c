package syntax

import (
	"fmt"

	"shaderlens/internal/token"
)

// Builder assembles a green tree from a start/token/finish stream.
type Builder struct {
	cache    *NodeCache
	parents  []builderFrame
	children []GreenElement
}

type builderFrame struct {
	kind  token.Kind
	first int
}

// NewBuilder returns a builder interning into cache; a nil cache gets a
// private one.
func NewBuilder(cache *NodeCache) *Builder {
	if cache == nil {
		cache = NewNodeCache()
	}
	return &Builder{cache: cache}
}

func (b *Builder) StartNode(kind token.Kind) {
	b.parents = append(b.parents, builderFrame{kind: kind, first: len(b.children)})
}

func (b *Builder) Token(kind token.Kind, text string) {
	b.children = append(b.children, b.cache.token(kind, text))
}

func (b *Builder) FinishNode() {
	if len(b.parents) == 0 {
		panic("syntax.Builder: FinishNode without StartNode")
	}
	top := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]
	node := b.cache.node(top.kind, b.children[top.first:])
	b.children = append(b.children[:top.first], node)
}

// Finish returns the single root node.
func (b *Builder) Finish() *GreenNode {
	if len(b.parents) != 0 {
		panic(fmt.Sprintf("syntax.Builder: %d unfinished nodes", len(b.parents)))
	}
	if len(b.children) != 1 {
		panic(fmt.Sprintf("syntax.Builder: expected one root, have %d elements", len(b.children)))
	}
	root, ok := b.children[0].(*GreenNode)
	if !ok {
		panic("syntax.Builder: root is a token")
	}
	return root
}
