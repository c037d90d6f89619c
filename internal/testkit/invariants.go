// Package testkit holds syntax tree checks shared by tests.
package testkit

import (
	"fmt"

	"shaderlens/internal/source"
	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

// CheckLossless reports whether root prints back to text byte for byte.
func CheckLossless(text string, root *syntax.Node) error {
	if root == nil {
		return fmt.Errorf("nil tree")
	}
	got := root.Text()
	if got == text {
		return nil
	}
	n := min(len(got), len(text))
	i := 0
	for i < n && got[i] == text[i] {
		i++
	}
	return fmt.Errorf("tree text differs from source at byte %d (tree %d bytes, source %d bytes)", i, len(got), len(text))
}

// CheckTreeInvariants verifies the shape of a syntax tree:
//  1. the root starts at offset 0;
//  2. children of every node are contiguous and exactly cover it;
//  3. only error nodes are empty, and no node kind is used for a token or
//     the other way round.
func CheckTreeInvariants(root *syntax.Node) error {
	if root == nil {
		return fmt.Errorf("nil tree")
	}
	if start := root.Range().Start; start != 0 {
		return fmt.Errorf("root starts at %d", start)
	}
	return checkNode(root)
}

func checkNode(n *syntax.Node) error {
	rg := n.Range()
	if !n.Kind().IsNode() && !n.Kind().IsTypeKeyword() {
		return fmt.Errorf("node %s@%d..%d has a token kind", n.Kind(), rg.Start, rg.End)
	}
	if rg.Start == rg.End && n.Kind() != token.ErrorNode && n.Parent() != nil {
		return fmt.Errorf("empty %s node at %d", n.Kind(), rg.Start)
	}
	off := rg.Start
	for _, c := range n.ChildrenWithTokens() {
		var crg source.TextRange
		switch c := c.(type) {
		case *syntax.Token:
			if c.Kind().IsNode() {
				return fmt.Errorf("token at %d has node kind %s", c.Range().Start, c.Kind())
			}
			crg = c.Range()
		case *syntax.Node:
			if err := checkNode(c); err != nil {
				return err
			}
			crg = c.Range()
		}
		if crg.Start != off {
			return fmt.Errorf("%s@%d..%d: child starts at %d, want %d", n.Kind(), rg.Start, rg.End, crg.Start, off)
		}
		off = crg.End
	}
	if off != rg.End {
		return fmt.Errorf("%s@%d..%d: children end at %d", n.Kind(), rg.Start, rg.End, off)
	}
	return nil
}
