package syntax

import (
	"sync"

	"shaderlens/internal/token"
)

const (
	// maxCachedChildren bounds the nodes worth interning. Larger nodes are
	// rarely repeated and would pin every edited spine.
	maxCachedChildren = 3
	// DefaultCacheLimit is the entry count at which a cache starts over.
	DefaultCacheLimit = 1 << 15
)

type tokenKey struct {
	kind token.Kind
	text string
}

// NodeCache interns green tokens and small green nodes. Reusing one cache
// across the parses of a file makes unchanged leaves and small subtrees
// pointer-identical. Once it holds limit entries it is emptied, so a
// long-lived cache stays bounded. It is safe for concurrent use.
type NodeCache struct {
	mu     sync.Mutex
	tokens map[tokenKey]*GreenToken
	nodes  map[uint64][]*GreenNode
	count  int
	limit  int
	hits   int
	resets int
}

func NewNodeCache() *NodeCache { return NewNodeCacheLimit(DefaultCacheLimit) }

// NewNodeCacheLimit returns a cache holding at most limit tokens and nodes.
// A limit below one means DefaultCacheLimit.
func NewNodeCacheLimit(limit int) *NodeCache {
	if limit < 1 {
		limit = DefaultCacheLimit
	}
	c := &NodeCache{limit: limit}
	c.clear()
	return c
}

func (c *NodeCache) clear() {
	c.tokens = make(map[tokenKey]*GreenToken)
	c.nodes = make(map[uint64][]*GreenNode)
	c.count = 0
}

// reserve makes room for one more entry; the caller holds c.mu.
func (c *NodeCache) reserve() {
	if c.count+len(c.tokens) >= c.limit {
		c.clear()
		c.resets++
	}
}

func (c *NodeCache) token(kind token.Kind, text string) *GreenToken {
	key := tokenKey{kind: kind, text: text}
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tokens[key]; ok {
		return t
	}
	c.reserve()
	t := NewGreenToken(kind, text)
	c.tokens[key] = t
	return t
}

func (c *NodeCache) node(kind token.Kind, children []GreenElement) *GreenNode {
	if len(children) > maxCachedChildren {
		return newGreenNode(kind, append([]GreenElement(nil), children...))
	}
	h := nodeHash(kind, children)
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cand := range c.nodes[h] {
		if cand.kind == kind && sameChildren(cand.children, children) {
			c.hits++
			return cand
		}
	}
	c.reserve()
	n := newGreenNode(kind, append([]GreenElement(nil), children...))
	c.nodes[h] = append(c.nodes[h], n)
	c.count++
	return n
}

func sameChildren(a, b []GreenElement) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Len returns the number of interned nodes.
func (c *NodeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Size returns the number of interned nodes and tokens.
func (c *NodeCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count + len(c.tokens)
}

// Hits counts node requests answered from the cache.
func (c *NodeCache) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

// Resets counts how often the cache was emptied for reaching its limit.
func (c *NodeCache) Resets() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resets
}
