package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"shaderlens/internal/diag"
	"shaderlens/internal/diagfmt"
	"shaderlens/internal/driver"
	"shaderlens/internal/ui"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file|directory>",
	Short: "Report syntax and semantic diagnostics",
	Long: `Diag loads the workspace governing the path (its wesl.toml and
dependencies) and reports diagnostics for the given file, or for every file
of the root package when a directory is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	diagCmd.Flags().String("ui", "off", "progress view (auto|on|off)")
	diagCmd.Flags().Bool("cache", false, "reuse diagnostics from the disk cache")
	diagCmd.Flags().String("cache-dir", "", "disk cache directory (default: user cache dir)")
	diagCmd.Flags().String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename|stored)")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	diagCmd.Flags().Bool("no-warnings", false, "drop warnings from the output")
}

type diagFlags struct {
	format   string
	jobs     int
	ui       terminalMode
	cache    bool
	cacheDir string
	pathMode diagfmt.PathMode
	notes    bool
	fixes    bool
	noWarn   bool
	maxDiags int
	defines  []string
	timings  bool
}

func readDiagFlags(cmd *cobra.Command) (diagFlags, error) {
	var (
		f   diagFlags
		err error
	)
	flags := cmd.Flags()
	if f.format, err = flags.GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch f.format {
	case "pretty", "json", "short":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	if f.jobs, err = flags.GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readTerminalMode("ui", uiValue); err != nil {
		return f, err
	}
	if f.cache, err = flags.GetBool("cache"); err != nil {
		return f, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if f.cacheDir, err = flags.GetString("cache-dir"); err != nil {
		return f, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	pathMode, err := flags.GetString("path-mode")
	if err != nil {
		return f, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if f.pathMode, ok = diagfmt.ParsePathMode(pathMode); !ok {
		return f, fmt.Errorf("invalid --path-mode value %q", pathMode)
	}
	if f.notes, err = flags.GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.fixes, err = flags.GetBool("suggest"); err != nil {
		return f, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if f.noWarn, err = flags.GetBool("no-warnings"); err != nil {
		return f, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if f.maxDiags, err = maxDiagnostics(cmd); err != nil {
		return f, err
	}
	if f.defines, err = defines(cmd); err != nil {
		return f, err
	}
	if f.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return f, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return f, nil
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	flags, err := readDiagFlags(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	ws, err := driver.LoadWorkspace(ctx, args[0], driver.Options{Defines: flags.defines})
	if err != nil {
		return err
	}

	opts := driver.DiagnoseOptions{Jobs: flags.jobs}
	if flags.cache {
		if opts.Cache, err = driver.OpenDiskCache(flags.cacheDir); err != nil {
			return err
		}
	}

	var (
		bag     *diag.Bag
		results []driver.FileResult
	)
	if flags.format == "pretty" && flags.ui.enabled(os.Stdout) {
		files := make([]string, 0, len(ws.Targets))
		for _, f := range ws.Targets {
			files = append(files, ws.Path(f))
		}
		events := make(chan driver.Event, 256)
		opts.Progress = driver.ChannelSink{Ch: events}
		ch, err := driver.DiagnoseWorkspace(ctx, ws, opts)
		if err != nil {
			return err
		}
		go func() {
			bag, results = driver.Collect(ws, ch)
			close(events)
		}()
		uiErr := ui.Run(cmd.OutOrStdout(), "diag", files, events)
		// The view may stop early; keep draining so workers never block.
		for range events {
		}
		if uiErr != nil {
			return uiErr
		}
	} else {
		ch, err := driver.DiagnoseWorkspace(ctx, ws, opts)
		if err != nil {
			return err
		}
		bag, results = driver.Collect(ws, ch)
	}

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "cache: %s: %v\n", r.Path, r.Err)
		}
	}
	if flags.noWarn {
		bag = dropWarnings(bag)
	}

	out := cmd.OutOrStdout()
	if err := writeDiagnostics(out, bag, ws, flags, useColor(cmd, os.Stdout)); err != nil {
		return err
	}
	if flags.timings {
		printTimings(os.Stderr, results)
	}
	if bag.HasErrors() {
		return exitCodeError{code: 1}
	}
	return nil
}

func writeDiagnostics(out io.Writer, bag *diag.Bag, ws *driver.Workspace, flags diagFlags, color bool) error {
	switch flags.format {
	case "json":
		return diagfmt.JSON(out, bag, ws.Files, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         flags.pathMode,
			Max:              flags.maxDiags,
			IncludeNotes:     flags.notes,
			IncludeFixes:     flags.fixes,
		})
	case "short":
		diagfmt.Short(out, bag, ws.Files, flags.pathMode, "")
	default:
		if bag.Len() == 0 {
			fmt.Fprintf(out, "no diagnostics in %d file(s)\n", len(ws.Targets))
			return nil
		}
		diagfmt.Pretty(out, bag, ws.Files, diagfmt.PrettyOpts{
			Color:     color,
			Context:   2,
			PathMode:  flags.pathMode,
			ShowNotes: flags.notes,
			ShowFixes: flags.fixes,
			Max:       flags.maxDiags,
		})
	}
	return nil
}

func dropWarnings(bag *diag.Bag) *diag.Bag {
	out := diag.NewBag(0)
	for _, d := range bag.Items() {
		if d.Severity.IsError() {
			out.Add(d)
		}
	}
	return out
}
