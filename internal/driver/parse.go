package driver

import (
	"context"

	"shaderlens/internal/db"
	"shaderlens/internal/diag"
	"shaderlens/internal/parser"
	"shaderlens/internal/source"
)

// ParseOptions configures Parse.
type ParseOptions struct {
	// NoPreprocess parses the text as written, ignoring shader defs.
	NoPreprocess   bool
	Defines        []string
	MaxDiagnostics int
}

type ParseResult struct {
	Workspace *Workspace
	File      *source.File
	Parse     *parser.Parse
	Bag       *diag.Bag
}

// Parse parses the file at path inside its workspace, so that the
// manifest's edition and shader defs apply.
func Parse(ctx context.Context, path string, opts ParseOptions) (*ParseResult, error) {
	ws, err := LoadWorkspace(ctx, path, Options{Defines: opts.Defines})
	if err != nil {
		return nil, err
	}
	file := ws.Targets[0]
	snap := ws.DB.Snapshot()
	p := snap.Parse(file)
	if opts.NoPreprocess {
		p = snap.ParseNoPreprocessor(file)
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	for _, e := range p.Errors() {
		bag.Add(db.ParseErrorDiagnostic(file, e))
	}
	return &ParseResult{Workspace: ws, File: ws.Files.Get(file), Parse: p, Bag: bag}, nil
}
