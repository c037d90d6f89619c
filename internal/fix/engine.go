// Package fix applies the edits attached to diagnostics.
package fix

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"slices"

	"shaderlens/internal/diag"
	"shaderlens/internal/source"
)

// ErrNoFixes is returned when no fix was applied.
var ErrNoFixes = errors.New("no applicable fixes found")

type Mode uint8

const (
	// ModeFirst applies the first fix in source order.
	ModeFirst Mode = iota
	// ModeAll applies every fix that does not overlap an earlier one.
	ModeAll
)

type Options struct {
	Mode Mode
	// Code restricts fixes to diagnostics with this code; zero allows all.
	Code diag.Code
	// DryRun computes the new contents without writing files.
	DryRun bool
}

type Applied struct {
	Title string
	Code  diag.Code
	Path  string
	Edits int
}

type Skipped struct {
	Title  string
	Path   string
	Reason string
}

// FileChange is the new content of one file.
type FileChange struct {
	Path    string
	Edits   int
	Content []byte
}

type Result struct {
	Applied []Applied
	Skipped []Skipped
	Files   []FileChange // sorted by path
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply selects fixes from diagnostics according to opts and applies them
// to the files of fs. Edit spans refer to the file contents in fs, so all
// selected edits are applied against the same text.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts Options) (*Result, error) {
	res := &Result{}
	if fs == nil {
		return res, errors.New("fix: nil FileSet")
	}
	cands := gather(diagnostics, opts.Code)
	if len(cands) == 0 {
		return res, ErrNoFixes
	}

	accepted := make(map[source.FileID][]diag.FixEdit)
	for _, c := range cands {
		if opts.Mode == ModeFirst && len(res.Applied) > 0 {
			break
		}
		path := pathOf(fs, c.diag.Primary.File)
		if reason := check(fs, accepted, c.fix.Edits); reason != "" {
			res.Skipped = append(res.Skipped, Skipped{Title: c.fix.Title, Path: path, Reason: reason})
			continue
		}
		for _, e := range c.fix.Edits {
			accepted[e.Span.File] = append(accepted[e.Span.File], e)
		}
		res.Applied = append(res.Applied, Applied{Title: c.fix.Title, Code: c.diag.Code, Path: path, Edits: len(c.fix.Edits)})
	}
	if len(res.Applied) == 0 {
		return res, ErrNoFixes
	}

	for file, edits := range accepted {
		f := fs.Get(file)
		res.Files = append(res.Files, FileChange{Path: f.Path, Edits: len(edits), Content: rewrite(f.Content, edits)})
	}
	slices.SortFunc(res.Files, func(a, b FileChange) int { return cmp.Compare(a.Path, b.Path) })

	if opts.DryRun {
		return res, nil
	}
	for _, fc := range res.Files {
		if err := writeKeepingMode(fc.Path, fc.Content); err != nil {
			return res, err
		}
	}
	return res, nil
}

// gather returns the first fix of every matching diagnostic, ordered by
// position.
func gather(diagnostics []diag.Diagnostic, code diag.Code) []candidate {
	var out []candidate
	for i, d := range diagnostics {
		if len(d.Fixes) == 0 || (code != 0 && d.Code != code) {
			continue
		}
		out = append(out, candidate{diag: d, fix: d.Fixes[0], order: i})
	}
	slices.SortStableFunc(out, func(a, b candidate) int {
		pa, pb := a.diag.Primary, b.diag.Primary
		return cmp.Or(
			cmp.Compare(pa.File, pb.File),
			cmp.Compare(pa.Start, pb.Start),
			cmp.Compare(pa.End, pb.End),
			cmp.Compare(a.order, b.order),
		)
	})
	return out
}

// check returns why edits cannot be applied on top of accepted, or "".
func check(fs *source.FileSet, accepted map[source.FileID][]diag.FixEdit, edits []diag.FixEdit) string {
	if len(edits) == 0 {
		return "fix has no edits"
	}
	for i, e := range edits {
		if int(e.Span.File) >= fs.Len() {
			return fmt.Sprintf("unknown file %d", e.Span.File)
		}
		f := fs.Get(e.Span.File)
		if f.Flags&source.FileVirtual != 0 {
			return "target file is virtual"
		}
		if e.Span.Start > e.Span.End || int(e.Span.End) > len(f.Content) {
			return "edit span out of range"
		}
		if e.OldText != "" && string(f.Content[e.Span.Start:e.Span.End]) != e.OldText {
			return "existing text does not match expected content"
		}
		for _, prev := range accepted[e.Span.File] {
			if overlaps(prev.Span, e.Span) {
				return "conflicts with a previously applied fix"
			}
		}
		for _, other := range edits[:i] {
			if other.Span.File == e.Span.File && overlaps(other.Span, e.Span) {
				return "fix has overlapping edits"
			}
		}
	}
	return ""
}

// overlaps treats spans as half-open. Two insertions never overlap; an
// insertion overlaps a span strictly containing its position.
func overlaps(a, b source.Span) bool {
	switch {
	case a.Start == a.End && b.Start == b.End:
		return false
	case a.Start == a.End:
		return b.Start < a.Start && a.Start < b.End
	case b.Start == b.End:
		return a.Start < b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

// rewrite applies non-overlapping edits to content, back to front.
func rewrite(content []byte, edits []diag.FixEdit) []byte {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b diag.FixEdit) int {
		return cmp.Or(cmp.Compare(b.Span.Start, a.Span.Start), cmp.Compare(b.Span.End, a.Span.End))
	})
	out := slices.Clone(content)
	for _, e := range sorted {
		out = slices.Replace(out, int(e.Span.Start), int(e.Span.End), []byte(e.NewText)...)
	}
	return out
}

func pathOf(fs *source.FileSet, file source.FileID) string {
	if int(file) >= fs.Len() {
		return ""
	}
	return fs.Get(file).Path
}

func writeKeepingMode(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
