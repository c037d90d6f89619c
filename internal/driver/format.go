package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"shaderlens/internal/format"
	"shaderlens/internal/parser"
	"shaderlens/internal/project"
	"shaderlens/internal/source"
	"shaderlens/internal/syntax"
)

// ErrSyntax is returned for files that do not parse cleanly; they are
// never rewritten.
var ErrSyntax = errors.New("format: syntax errors present")

// FormatOptions configures FormatPaths.
type FormatOptions struct {
	// Check reports files that would change without writing them.
	Check bool
	// Write rewrites changed files in place. Without Check or Write the
	// formatted text is returned.
	Write   bool
	Options format.Options
}

type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
}

// FormatPaths formats the given files and every shader file below the
// given directories.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	files, err := collectSourceFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no shader files found")
	}
	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result := FormatResult{Path: path}
		formatted, changed, err := FormatFile(path, opts.Options)
		switch {
		case err != nil:
			result.Err = err
		case opts.Check:
			result.Changed = changed
		case opts.Write:
			result.Changed = changed
			if changed {
				result.Err = writeKeepingMode(path, formatted)
			}
		default:
			result.Changed = changed
			result.Formatted = formatted
		}
		results = append(results, result)
	}
	return results, nil
}

// FormatFile formats the file at path.
func FormatFile(path string, opts format.Options) (formatted []byte, changed bool, err error) {
	content, _, err := source.ReadNormalized(path)
	if err != nil {
		return nil, false, err
	}
	p := parser.ParseFile(string(content), syntax.EditionFromPath(path), nil)
	if errs := p.Errors(); len(errs) > 0 {
		return nil, false, fmt.Errorf("%s: %w: %s", path, ErrSyntax, errs[0].Message())
	}
	out := []byte(format.Format(p.SyntaxNode(), opts))
	return out, !bytes.Equal(content, out), nil
}

func writeKeepingMode(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, data, mode.Perm())
}

func collectSourceFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, filepath.Clean(p))
			continue
		}
		found, err := project.ShaderFiles(p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
