package format

import "bytes"

// Writer accumulates formatted output. Indentation is written lazily in
// front of the first text of a line.
type Writer struct {
	indent      string
	buf         []byte
	indentLevel int
	atLineStart bool
}

func NewWriter(indent string, sizeHint int) *Writer {
	return &Writer{
		indent:      indent,
		buf:         make([]byte, 0, sizeHint),
		atLineStart: true,
	}
}

// Bytes returns the output with trailing blank space trimmed and a single
// final newline. Empty output stays empty.
func (w *Writer) Bytes() []byte {
	out := bytes.TrimRight(w.buf, " \t\r\n")
	if len(out) == 0 {
		return nil
	}
	return append(out, '\n')
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	for range w.indentLevel {
		w.buf = append(w.buf, w.indent...)
	}
	w.atLineStart = false
}

// WriteString writes s, indenting first when at the start of a line.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.atLineStart = s[len(s)-1] == '\n'
}

// Space writes a single space if the output doesn't already end with whitespace.
func (w *Writer) Space() {
	if len(w.buf) == 0 || w.atLineStart {
		return
	}
	switch w.buf[len(w.buf)-1] {
	case ' ', '\t', '\n':
		return
	}
	w.buf = append(w.buf, ' ')
}

// Newlines ends the current line and adds n-1 blank lines.
func (w *Writer) Newlines(n int) {
	for range n {
		w.buf = append(w.buf, '\n')
	}
	w.atLineStart = true
}

// SetIndent sets the level used for the next line.
func (w *Writer) SetIndent(level int) {
	w.indentLevel = max(level, 0)
}
