package source

import (
	"fmt"
)

// Span is a byte range inside one file of a FileSet.
type Span struct {
	File  FileID
	Start uint32 // inclusive, bytes
	End   uint32 // exclusive, bytes
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Range drops the file component.
func (s Span) Range() TextRange {
	return TextRange{Start: s.Start, End: s.End}
}

// TextRange is a file-relative byte range. Syntax trees only know ranges;
// spans are formed when a range is attached to a file.
type TextRange struct {
	Start uint32
	End   uint32
}

func (r TextRange) Empty() bool { return r.Start == r.End }

// Contains reports whether off lies in [Start, End).
func (r TextRange) Contains(off uint32) bool {
	return r.Start <= off && off < r.End
}

func (r TextRange) ContainsRange(other TextRange) bool {
	return r.Start <= other.Start && other.End <= r.End
}

func (r TextRange) InFile(file FileID) Span {
	return Span{File: file, Start: r.Start, End: r.End}
}

func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}
