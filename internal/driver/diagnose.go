package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"shaderlens/internal/db"
	"shaderlens/internal/diag"
	"shaderlens/internal/observ"
	"shaderlens/internal/project"
	"shaderlens/internal/source"
	"shaderlens/internal/trace"
)

// DiagnoseOptions configures DiagnoseWorkspace and DiagnoseFile.
type DiagnoseOptions struct {
	// Jobs bounds the worker pool; zero means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps each file's bag; zero keeps everything.
	MaxDiagnostics int
	Progress       ProgressSink
	Cache          *DiskCache
}

// FileResult is the outcome of diagnosing one file.
type FileResult struct {
	Path   string
	File   source.FileID
	Bag    *diag.Bag
	Timing observ.Report
	Cached bool
	// Err is a cache failure; the diagnostics are still complete.
	Err error
}

// DiagnoseWorkspace diagnoses every target of ws on one snapshot, with at
// most opts.Jobs files in flight. Results arrive in completion order; the
// channel is closed when all files are done or ctx is cancelled.
func DiagnoseWorkspace(ctx context.Context, ws *Workspace, opts DiagnoseOptions) (<-chan FileResult, error) {
	if ws == nil || ws.DB == nil {
		return nil, errors.New("diagnose: nil workspace")
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	snap := ws.DB.Snapshot()
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "diagnose_workspace", trace.CurrentSpan(ctx).SpanID).
		WithExtra("files", fmt.Sprint(len(ws.Targets))).
		WithExtra("jobs", fmt.Sprint(jobs))
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	for _, f := range ws.Targets {
		emit(opts.Progress, Event{File: ws.Path(f), Stage: StageDiagnose, Status: StatusQueued})
	}

	out := make(chan FileResult, len(ws.Targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(ws.Targets))))
	go func() {
		start := time.Now()
		defer close(out)
		for _, f := range ws.Targets {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				out <- diagnoseOne(gctx, ws, snap, f, opts)
				return nil
			})
		}
		err := g.Wait()
		status := StatusDone
		if err != nil {
			status = StatusError
		}
		emit(opts.Progress, Event{Stage: StageDiagnose, Status: status, Err: err, Elapsed: time.Since(start)})
		span.End(string(status))
	}()
	return out, nil
}

// DiagnoseFile diagnoses one file of ws on a fresh snapshot.
func DiagnoseFile(ctx context.Context, ws *Workspace, file source.FileID, opts DiagnoseOptions) FileResult {
	return diagnoseOne(ctx, ws, ws.DB.Snapshot(), file, opts)
}

func diagnoseOne(ctx context.Context, ws *Workspace, snap *db.Snapshot, file source.FileID, opts DiagnoseOptions) FileResult {
	path := ws.Path(file)
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeModule, "diagnose_file", trace.CurrentSpan(ctx).SpanID).
		WithExtra("path", path)
	started := time.Now()
	timer := observ.NewTimer()
	res := FileResult{Path: path, File: file, Bag: diag.NewBag(opts.MaxDiagnostics)}

	key := project.Combine(ws.Files.Get(file).Hash, ws.Digest)
	if opts.Cache != nil {
		var (
			payload *DiskPayload
			hit     bool
		)
		timer.Measure("cache", func() string {
			payload, hit, res.Err = opts.Cache.Get(key)
			if hit {
				return "hit"
			}
			return "miss"
		})
		if hit {
			for _, d := range payload.diagnostics(file) {
				res.Bag.Add(d)
			}
			res.Cached = true
			res.Timing = timer.Report()
			emit(opts.Progress, Event{File: path, Stage: StageDiagnose, Status: StatusCached, Elapsed: time.Since(started)})
			span.End("cached")
			return res
		}
	}

	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
	timer.Measure("parse", func() string {
		return fmt.Sprintf("%d syntax errors", len(snap.Parse(file).Errors()))
	})
	timer.Measure("items", func() string {
		return fmt.Sprintf("%d items", len(snap.ItemTree(file).TopLevel))
	})
	emit(opts.Progress, Event{File: path, Stage: StageDiagnose, Status: StatusWorking})
	var ds []diag.Diagnostic
	timer.Measure("diagnostics", func() string {
		ds = snap.FileDiagnostics(file)
		return fmt.Sprintf("%d found", len(ds))
	})
	for _, d := range ds {
		res.Bag.Add(d)
	}
	if opts.Cache != nil && !snap.Stale() {
		if err := opts.Cache.Put(key, toPayload(path, ds)); err != nil && res.Err == nil {
			res.Err = err
		}
	}
	res.Timing = timer.Report()

	status := StatusDone
	if res.Bag.HasErrors() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: path, Stage: StageDiagnose, Status: status, Elapsed: time.Since(started)})
	span.End(fmt.Sprintf("%d diagnostics", res.Bag.Len()))
	return res
}

// Collect drains results into one bag, sorted by position, and returns
// the per-file results in target order.
func Collect(ws *Workspace, results <-chan FileResult) (*diag.Bag, []FileResult) {
	byFile := make(map[source.FileID]FileResult)
	for r := range results {
		byFile[r.File] = r
	}
	bag := diag.NewBag(0)
	ordered := make([]FileResult, 0, len(byFile))
	for _, f := range ws.Targets {
		if r, ok := byFile[f]; ok {
			bag.Merge(r.Bag)
			ordered = append(ordered, r)
		}
	}
	bag.Sort()
	return bag, ordered
}
