package format

import (
	"strings"

	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

// commaEdits lists the trailing commas to drop and the list elements a
// comma is added after. Both are keyed by token start offset.
type commaEdits struct {
	drop        map[uint32]bool
	insertAfter map[uint32]*syntax.Node
}

func isCommaList(k token.Kind) bool {
	switch k {
	case token.ParamList, token.FunctionParamList, token.StructDeclBody:
		return true
	}
	return false
}

// planCommas applies policy to every parameter, argument and struct member
// list below root.
func planCommas(root *syntax.Node, policy Policy) commaEdits {
	edits := commaEdits{drop: map[uint32]bool{}, insertAfter: map[uint32]*syntax.Node{}}
	src := root.Text()
	root.Preorder(func(ev syntax.WalkEvent) bool {
		if ev.Leave || !isCommaList(ev.Node.Kind()) {
			return true
		}
		list := ev.Node
		elems := significantChildren(list)
		if len(elems) < 3 {
			return true
		}
		open, okOpen := elems[0].(*syntax.Token)
		closing, okClose := elems[len(elems)-1].(*syntax.Token)
		if !okOpen || !okClose || !isOpenDelim(open.Kind()) || !isCloseDelim(closing.Kind()) {
			return true
		}
		multiline := spansLines(src, open, closing)
		switch last := elems[len(elems)-2].(type) {
		case *syntax.Token:
			if last.Kind() == token.Comma && (!multiline || policy == Remove) {
				edits.drop[last.Range().Start] = true
			}
		case *syntax.Node:
			if multiline && policy == Insert {
				if tok := lastSignificant(last); tok != nil {
					edits.insertAfter[tok.Range().Start] = list
				}
			}
		}
		return true
	})
	return edits
}

// significantChildren are the direct children of n without trivia.
func significantChildren(n *syntax.Node) []syntax.Element {
	var out []syntax.Element
	for _, c := range n.ChildrenWithTokens() {
		if t, ok := c.(*syntax.Token); ok && t.Kind().IsTrivia() {
			continue
		}
		out = append(out, c)
	}
	return out
}

func lastSignificant(n *syntax.Node) *syntax.Token {
	var last *syntax.Token
	for t := range n.Tokens() {
		if !t.Kind().IsTrivia() {
			last = t
		}
	}
	return last
}

func spansLines(src string, open, closing *syntax.Token) bool {
	start, end := open.Range().End, closing.Range().Start
	if int(end) > len(src) || start > end {
		return false
	}
	return strings.Contains(src[start:end], "\n")
}
