package driver

import (
	"context"

	"shaderlens/internal/fix"
)

// FixOptions configures Fix.
type FixOptions struct {
	Defines []string
	Jobs    int
	Fix     fix.Options
}

type FixResult struct {
	Workspace *Workspace
	Result    *fix.Result
}

// Fix diagnoses the workspace of path and applies the fixes attached to
// its diagnostics. The disk cache is bypassed so edit spans always match
// the text on disk.
func Fix(ctx context.Context, path string, opts FixOptions) (*FixResult, error) {
	ws, err := LoadWorkspace(ctx, path, Options{Defines: opts.Defines})
	if err != nil {
		return nil, err
	}
	results, err := DiagnoseWorkspace(ctx, ws, DiagnoseOptions{Jobs: opts.Jobs})
	if err != nil {
		return nil, err
	}
	bag, _ := Collect(ws, results)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := fix.Apply(ws.Files, bag.Items(), opts.Fix)
	return &FixResult{Workspace: ws, Result: res}, err
}
