package syntax

import (
	"fmt"
	"strings"
)

// Dump renders the tree one element per line, e.g.
//
//	Function@0..9
//	  Fn@0..2 "fn"
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, e Element, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	switch e := e.(type) {
	case *Node:
		fmt.Fprintf(sb, "%s@%s\n", e.Kind(), e.Range())
		for _, c := range e.ChildrenWithTokens() {
			dump(sb, c, depth+1)
		}
	case *Token:
		fmt.Fprintf(sb, "%s@%s %q\n", e.Kind(), e.Range(), e.Text())
	}
}
