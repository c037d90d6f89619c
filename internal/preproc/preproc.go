// Package preproc evaluates the #ifdef family of shader-def directives.
//
// Processing never moves text: directive lines and lines in inactive
// regions are overwritten with spaces byte for byte, so every offset in the
// output is valid in the input and diagnostics need no remapping.
package preproc

import (
	"regexp"
	"strings"

	"shaderlens/internal/source"
)

var (
	ifdefRe  = regexp.MustCompile(`^\s*#\s*ifdef\s*([\w]+)`)
	ifndefRe = regexp.MustCompile(`^\s*#\s*ifndef\s*([\w]+)`)
	elseRe   = regexp.MustCompile(`^\s*#\s*else`)
	endifRe  = regexp.MustCompile(`^\s*#\s*endif`)
)

// Defs is the set of active shader defs.
type Defs map[string]struct{}

func NewDefs(names ...string) Defs {
	d := make(Defs, len(names))
	for _, n := range names {
		d[n] = struct{}{}
	}
	return d
}

func (d Defs) Has(name string) bool {
	_, ok := d[name]
	return ok
}

// Result is the processed text plus the directives that did not balance.
type Result struct {
	Text string
	// Unbalanced lists stray #else/#endif lines and unclosed #ifdef/#ifndef lines.
	Unbalanced []source.TextRange
}

type scope struct {
	active bool
	open   source.TextRange
}

// Process applies defs to text.
func Process(text string, defs Defs) Result {
	var (
		out    = make([]byte, 0, len(text))
		scopes = []scope{{active: true}}
		res    Result
		off    uint32
	)
	for len(text) > 0 {
		line, rest, hasNL := strings.Cut(text, "\n")
		text = rest
		lineRange := source.TextRange{Start: off, End: off + uint32(len(line))} // #nosec G115 -- file size is bounded by source.FileSet

		keep := false
		top := scopes[len(scopes)-1].active
		switch {
		case ifdefRe.MatchString(line):
			name := ifdefRe.FindStringSubmatch(line)[1]
			scopes = append(scopes, scope{active: top && defs.Has(name), open: lineRange})
		case ifndefRe.MatchString(line):
			name := ifndefRe.FindStringSubmatch(line)[1]
			scopes = append(scopes, scope{active: top && !defs.Has(name), open: lineRange})
		case elseRe.MatchString(line):
			if len(scopes) == 1 {
				res.Unbalanced = append(res.Unbalanced, lineRange)
				break
			}
			parent := scopes[len(scopes)-2].active
			last := &scopes[len(scopes)-1]
			last.active = parent && !last.active
		case endifRe.MatchString(line):
			if len(scopes) == 1 {
				res.Unbalanced = append(res.Unbalanced, lineRange)
				break
			}
			scopes = scopes[:len(scopes)-1]
		default:
			keep = top
		}

		if keep {
			out = append(out, line...)
		} else {
			out = append(out, blank(line)...)
		}
		off = lineRange.End
		if hasNL {
			out = append(out, '\n')
			off++
		}
	}
	for _, s := range scopes[1:] {
		res.Unbalanced = append(res.Unbalanced, s.open)
	}
	res.Text = string(out)
	return res
}

// blank replaces every byte except '\r' with a space.
func blank(line string) []byte {
	b := make([]byte, len(line))
	for i := range b {
		if line[i] == '\r' {
			b[i] = '\r'
		} else {
			b[i] = ' '
		}
	}
	return b
}
