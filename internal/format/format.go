package format

import (
	"strings"

	"shaderlens/internal/lexer"
	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

// item is one token of the output: every non-whitespace token of the tree
// in order, minus dropped commas, plus inserted ones.
type item struct {
	kind   token.Kind
	text   string
	parent *syntax.Node
	// nl counts the line breaks in the whitespace before the token.
	nl int
	// start is the source offset, or -1 for an inserted token.
	start int
}

func (it item) isComment() bool {
	return it.kind == token.LineComment || it.kind == token.BlockComment
}

// isDirective reports a conditional or define_import_path line. These are
// trivia that run to the end of their line.
func (it item) isDirective() bool {
	return it.kind.IsTrivia() && !it.isComment() && it.kind != token.Whitespace
}

// startsLine reports tokens written on a line of their own at column 0.
func (it item) startsLine() bool {
	return it.isDirective() || it.kind == token.PreprocImport
}

// Format rewrites the whitespace of a parsed file. Tokens and comments are
// kept as written; only spacing, indentation, blank lines and trailing
// commas of multi-line lists change. Formatting the output again returns it
// unchanged.
func Format(root *syntax.Node, opts Options) string {
	opts = opts.withDefaults()
	src := root.Text()
	items := collect(root, planCommas(root, opts.TrailingCommas))
	f := &formatter{src: src, multiline: map[nodeKey]bool{}}
	w := NewWriter(opts.Indent, len(src))

	for i, it := range items {
		if i == 0 {
			w.SetIndent(f.depth(items, i))
			w.WriteString(it.text)
			continue
		}
		prev := items[i-1]
		nl := f.lineBreaks(prev, it)
		if nl > 0 {
			w.Newlines(nl)
			if it.startsLine() {
				w.SetIndent(0)
			} else {
				w.SetIndent(f.depth(items, i))
			}
		} else if f.space(prev, it) {
			w.Space()
		}
		w.WriteString(it.text)
	}
	return string(w.Bytes())
}

func collect(root *syntax.Node, edits commaEdits) []item {
	var items []item
	nl := 0
	for t := range root.Tokens() {
		if t.Kind() == token.Whitespace {
			nl += strings.Count(t.Text(), "\n")
			continue
		}
		start := t.Range().Start
		if edits.drop[start] {
			continue
		}
		items = append(items, item{kind: t.Kind(), text: t.Text(), parent: t.Parent(), nl: nl, start: int(start)})
		nl = 0
		if list, ok := edits.insertAfter[start]; ok {
			items = append(items, item{kind: token.Comma, text: ",", parent: list, start: -1})
		}
	}
	return items
}

type nodeKey struct {
	kind       token.Kind
	start, end uint32
}

func keyOf(n *syntax.Node) nodeKey {
	rg := n.Range()
	return nodeKey{n.Kind(), rg.Start, rg.End}
}

func sameNode(a, b *syntax.Node) bool {
	return a != nil && b != nil && keyOf(a) == keyOf(b)
}

type formatter struct {
	src       string
	multiline map[nodeKey]bool
}

func isOpenDelim(k token.Kind) bool  { return k == token.ParenLeft || k == token.BraceLeft }
func isCloseDelim(k token.Kind) bool { return k == token.ParenRight || k == token.BraceRight }

func isBlock(k token.Kind) bool {
	switch k {
	case token.CompoundStatement, token.SwitchBlock, token.StructDeclBody:
		return true
	}
	return false
}

// indents reports whether the contents of n sit one level deeper.
func (f *formatter) indents(n *syntax.Node) bool {
	switch n.Kind() {
	case token.CompoundStatement, token.SwitchBlock, token.StructDeclBody:
		return true
	case token.ParamList, token.FunctionParamList:
		return f.spansLines(n)
	}
	return false
}

func (f *formatter) spansLines(n *syntax.Node) bool {
	key := keyOf(n)
	if v, ok := f.multiline[key]; ok {
		return v
	}
	v := false
	elems := significantChildren(n)
	if len(elems) >= 2 {
		open, ok1 := elems[0].(*syntax.Token)
		closing, ok2 := elems[len(elems)-1].(*syntax.Token)
		if ok1 && ok2 && isOpenDelim(open.Kind()) && isCloseDelim(closing.Kind()) {
			v = spansLines(f.src, open, closing)
		}
	}
	f.multiline[key] = v
	return v
}

// opens reports whether it is the opening delimiter of an indenting node.
func (f *formatter) opens(it item) bool {
	return isOpenDelim(it.kind) && it.parent != nil && f.indents(it.parent)
}

func (f *formatter) closes(it item) bool {
	return isCloseDelim(it.kind) && it.parent != nil && f.indents(it.parent)
}

// depth is the nesting level of items[i]. A comment takes the level of
// what follows it, one deeper when that is a closing delimiter.
func (f *formatter) depth(items []item, i int) int {
	it := items[i]
	if it.isComment() {
		for j := i + 1; j < len(items); j++ {
			if items[j].isComment() {
				continue
			}
			d := f.depth(items, j)
			if f.closes(items[j]) {
				d++
			}
			return d
		}
		return 0
	}
	d := 0
	for n := it.parent; n != nil; n = n.Parent() {
		if !f.indents(n) {
			continue
		}
		if sameNode(n, it.parent) && (isOpenDelim(it.kind) || isCloseDelim(it.kind)) && it.start >= 0 {
			continue
		}
		d++
	}
	return d
}

// lineBreaks is the number of newlines written before it: the original
// count capped at one blank line, adjusted so blocks and multi-line lists
// open and close on lines of their own.
func (f *formatter) lineBreaks(prev, it item) int {
	nl := min(it.nl, 2)
	if f.opens(prev) || f.closes(it) {
		nl = min(nl, 1)
	}
	switch {
	case prev.kind == token.LineComment || prev.isDirective() || it.startsLine():
		nl = max(nl, 1)
	case it.kind == token.BraceLeft && it.parent != nil && isBlock(it.parent.Kind()) && !prev.isComment():
		switch prev.kind {
		case token.Semicolon, token.BraceLeft, token.BraceRight:
		default:
			nl = 0
		}
	case f.opens(prev) && f.spansLines(prev.parent) && !(f.closes(it) && sameNode(prev.parent, it.parent)):
		nl = max(nl, 1)
	case f.closes(it) && f.spansLines(it.parent) && !(f.opens(prev) && sameNode(prev.parent, it.parent)):
		nl = max(nl, 1)
	}
	return nl
}

// space decides whether a single space separates two tokens on one line.
func (f *formatter) space(prev, it item) bool {
	if prev.isComment() || it.isComment() {
		return true
	}
	sep := spaced(prev, it)
	if !sep && fuses(prev.text, it.text) {
		return true
	}
	return sep
}

func spaced(prev, it item) bool {
	switch {
	case prev.kind == token.BraceLeft && it.kind == token.BraceRight && sameNode(prev.parent, it.parent):
		return false
	case glued(prev, it):
		return false
	}
	switch prev.kind {
	case token.ParenLeft, token.BracketLeft, token.Period, token.At, token.ColonColon:
		return false
	}
	switch it.kind {
	case token.ParenRight, token.BracketRight, token.Comma, token.Semicolon, token.Colon,
		token.Period, token.ColonColon, token.PlusPlus, token.MinusMinus:
		return false
	case token.ParenLeft:
		if it.parent != nil {
			switch it.parent.Kind() {
			case token.ParamList, token.FunctionParamList, token.AttributeParameters:
				return false
			}
		}
		if prev.kind == token.GreaterThan && isTemplateBracket(prev) {
			return false
		}
	case token.BracketLeft:
		if it.parent != nil && it.parent.Kind() == token.IndexExpr {
			return false
		}
	}
	if isPrefixOperator(prev) {
		return false
	}
	if isTemplateBracket(it) || prev.kind == token.LessThan && isTemplateBracket(prev) {
		return false
	}
	return true
}

// glued reports the halves of a two-token operator such as `<<` or `[[`.
func glued(prev, it item) bool {
	if prev.parent == nil || !sameNode(prev.parent, it.parent) {
		return false
	}
	switch prev.parent.Kind() {
	case token.ShiftLeft, token.ShiftRight, token.AttrLeft:
		return true
	}
	return false
}

func isTemplateBracket(it item) bool {
	if it.kind != token.LessThan && it.kind != token.GreaterThan || it.parent == nil {
		return false
	}
	switch it.parent.Kind() {
	case token.GenericArgList, token.VariableQualifier, token.BitcastExpr:
		return true
	}
	return false
}

func isPrefixOperator(it item) bool {
	if it.parent == nil || it.parent.Kind() != token.PrefixExpr {
		return false
	}
	switch it.kind {
	case token.Minus, token.Bang, token.Tilde, token.And, token.Star:
		return true
	}
	return false
}

// fuses reports whether writing a and b without a gap lexes differently,
// as `-` `-` would.
func fuses(a, b string) bool {
	toks := lexer.TokenizeString(a + b)
	return len(toks) != 2 || toks[0].Text != a
}
