package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"shaderlens/internal/diag"
	"shaderlens/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note, bold *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.FgMagenta),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgCyan),
		bold:   mk(color.Bold),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty renders diagnostics for humans, in bag order (callers sort first):
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline of the span, then
// notes and fixes when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}
	for i, d := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeDiagnostic(w, d, fs, opts, pal)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fileOf(fs, d.Primary)
	header := fmt.Sprintf("%s %s: %s",
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		pal.bold.Sprint(d.Message))
	if f == nil {
		fmt.Fprintln(w, header)
	} else {
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s\n", displayPath(f, opts.PathMode, opts.BaseDir), start.Line, start.Col, header)
		writeSnippet(w, f, d.Primary, opts.Context, pal)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf := fileOf(fs, n.Span)
			if nf == nil || (n.Span.Empty() && n.Span.Start == 0) {
				fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
				continue
			}
			pos, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
				displayPath(nf, opts.PathMode, opts.BaseDir), pos.Line, pos.Col, n.Msg)
			writeSnippet(w, nf, n.Span, 0, pal)
		}
	}
	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("fix:"), fix.Title)
			for _, edit := range fix.Edits {
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				for _, l := range preview.before {
					fmt.Fprintf(w, "    %s %s\n", pal.err.Sprint("-"), l)
				}
				for _, l := range preview.after {
					fmt.Fprintf(w, "    %s %s\n", pal.info.Sprint("+"), l)
				}
			}
		}
	}
}

// writeSnippet prints the first line of span with context lines above and
// an underline below. Multi-line spans are underlined to the end of their
// first line.
func writeSnippet(w io.Writer, f *source.File, span source.Span, context int, pal palette) {
	start := f.LineCol(span.Start)
	end := f.LineCol(span.End)
	first := uint32(1)
	if c := uint32(max(context, 0)); start.Line > c {
		first = start.Line - c
	}
	width := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", width, ln), expandTabs(f.GetLine(ln)))
	}

	line := f.GetLine(start.Line)
	col := min(int(start.Col-1), len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col-1), len(line))
	}
	pad := runewidth.StringWidth(expandTabs(line[:col]))
	n := max(runewidth.StringWidth(expandTabs(line[col:stop])), 1)
	mark := "^" + strings.Repeat("~", n-1)
	fmt.Fprintf(w, " %s %s%s\n", pal.gutter.Sprintf("%*s |", width, ""), strings.Repeat(" ", pad), pal.caret.Sprint(mark))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// Short renders one line per diagnostic: path:line:col: SEV CODE: message.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode, base string) {
	for _, d := range bag.Items() {
		f := fileOf(fs, d.Primary)
		if f == nil {
			fmt.Fprintf(w, "%s %s: %s\n", d.Severity, d.Code.ID(), d.Message)
			continue
		}
		pos, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", displayPath(f, mode, base), pos.Line, pos.Col, d.Severity, d.Code.ID(), d.Message)
	}
}
