package syntax

import (
	"encoding/binary"
	"fmt"
	"strings"

	"fortio.org/safecast"
	"github.com/zeebo/xxh3"

	"shaderlens/internal/token"
)

// GreenElement is a GreenNode or a GreenToken.
type GreenElement interface {
	Kind() token.Kind
	Width() uint32
	hash() uint64
}

type GreenToken struct {
	kind token.Kind
	text string
	h    uint64
}

func (t *GreenToken) Kind() token.Kind { return t.kind }
func (t *GreenToken) Text() string     { return t.text }
func (t *GreenToken) hash() uint64     { return t.h }

func (t *GreenToken) Width() uint32 {
	return uint32(len(t.text)) // #nosec G115 -- token text is a slice of a file checked by source.FileSet
}

type GreenNode struct {
	kind     token.Kind
	width    uint32
	children []GreenElement
	h        uint64
}

func (n *GreenNode) Kind() token.Kind         { return n.kind }
func (n *GreenNode) Width() uint32            { return n.width }
func (n *GreenNode) Children() []GreenElement { return n.children }
func (n *GreenNode) hash() uint64             { return n.h }

// Equal reports whether n and o are the same tree: same kinds, same token
// texts, same shape. Shared subtrees compare by pointer.
func (n *GreenNode) Equal(o *GreenNode) bool {
	if n == o {
		return true
	}
	if n == nil || o == nil || n.h != o.h || n.kind != o.kind || n.width != o.width || len(n.children) != len(o.children) {
		return false
	}
	for i, c := range n.children {
		switch c := c.(type) {
		case *GreenToken:
			d, ok := o.children[i].(*GreenToken)
			if !ok || c.kind != d.kind || c.text != d.text {
				return false
			}
		case *GreenNode:
			d, ok := o.children[i].(*GreenNode)
			if !ok || !c.Equal(d) {
				return false
			}
		}
	}
	return true
}

// Text concatenates the text of every token below n.
func (n *GreenNode) Text() string {
	var sb strings.Builder
	sb.Grow(int(n.width))
	n.writeText(&sb)
	return sb.String()
}

func (n *GreenNode) writeText(sb *strings.Builder) {
	for _, c := range n.children {
		switch c := c.(type) {
		case *GreenToken:
			sb.WriteString(c.text)
		case *GreenNode:
			c.writeText(sb)
		}
	}
}

func tokenHash(kind token.Kind, text string) uint64 {
	h := xxh3.New()
	var buf [3]byte
	buf[0] = 't'
	binary.LittleEndian.PutUint16(buf[1:], uint16(kind))
	_, _ = h.Write(buf[:])
	_, _ = h.WriteString(text)
	return h.Sum64()
}

func nodeHash(kind token.Kind, children []GreenElement) uint64 {
	buf := make([]byte, 3, 3+8*len(children))
	buf[0] = 'n'
	binary.LittleEndian.PutUint16(buf[1:], uint16(kind))
	for _, c := range children {
		buf = binary.LittleEndian.AppendUint64(buf, c.hash())
	}
	return xxh3.Hash(buf)
}

func newGreenNode(kind token.Kind, children []GreenElement) *GreenNode {
	var width uint64
	for _, c := range children {
		width += uint64(c.Width())
	}
	w, err := safecast.Conv[uint32](width)
	if err != nil {
		panic(fmt.Errorf("green node width overflow: %w", err))
	}
	return &GreenNode{kind: kind, width: w, children: children, h: nodeHash(kind, children)}
}

// NewGreenNode builds an uncached node; parsers go through a Builder.
func NewGreenNode(kind token.Kind, children ...GreenElement) *GreenNode {
	return newGreenNode(kind, children)
}

func NewGreenToken(kind token.Kind, text string) *GreenToken {
	return &GreenToken{kind: kind, text: text, h: tokenHash(kind, text)}
}
