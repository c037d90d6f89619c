package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"shaderlens/internal/driver"
	"shaderlens/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file|directory>",
	Short: "Apply suggested fixes",
	Long: `Fix diagnoses the workspace of the path and applies the edits suggested
by its diagnostics, such as replacing a misspelled name.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply every non-overlapping fix instead of the first one")
	fixCmd.Flags().Bool("dry-run", false, "print the files that would change without writing them")
	fixCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
}

func runFix(cmd *cobra.Command, args []string) error {
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	defs, err := defines(cmd)
	if err != nil {
		return err
	}

	opts := driver.FixOptions{Defines: defs, Jobs: jobs, Fix: fix.Options{DryRun: dryRun}}
	if all {
		opts.Fix.Mode = fix.ModeAll
	}
	res, err := driver.Fix(cmd.Context(), args[0], opts)
	out := cmd.OutOrStdout()
	if errors.Is(err, fix.ErrNoFixes) {
		fmt.Fprintln(out, "no applicable fixes")
		if res != nil {
			printSkipped(cmd, res.Result)
		}
		return nil
	}
	if err != nil {
		return err
	}

	for _, a := range res.Result.Applied {
		fmt.Fprintf(out, "applied %q (%s) in %s\n", a.Title, a.Code.ID(), a.Path)
	}
	printSkipped(cmd, res.Result)
	verb := "updated"
	if dryRun {
		verb = "would update"
	}
	for _, f := range res.Result.Files {
		fmt.Fprintf(out, "%s %s (%d edits)\n", verb, f.Path, f.Edits)
	}
	return nil
}

func printSkipped(cmd *cobra.Command, res *fix.Result) {
	if res == nil {
		return
	}
	for _, s := range res.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %q in %s: %s\n", s.Title, s.Path, s.Reason)
	}
}
