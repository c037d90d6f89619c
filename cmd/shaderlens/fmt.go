package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shaderlens/internal/driver"
	"shaderlens/internal/format"
	"shaderlens/internal/project"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <file|directory>...",
	Short: "Format shader files",
	Long: `Fmt rewrites whitespace and trailing commas of WGSL and WESL files.
Without --write or --check the formatted text is printed. Settings come from
the [analyzer] table of wesl.toml unless overridden by flags.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFormat,
}

func init() {
	fmtCmd.Flags().BoolP("write", "w", false, "rewrite files in place")
	fmtCmd.Flags().Bool("check", false, "list files that are not formatted and exit non-zero")
	fmtCmd.Flags().String("trailing-commas", "", "trailing comma policy (ignore|remove|insert)")
	fmtCmd.Flags().String("indent", "", "indentation unit (default four spaces)")
}

func runFormat(cmd *cobra.Command, args []string) error {
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}
	if write && check {
		return errors.New("--write and --check are mutually exclusive")
	}
	opts, err := formatOptions(cmd, args[0])
	if err != nil {
		return err
	}

	results, err := driver.FormatPaths(cmd.Context(), args, driver.FormatOptions{
		Check:   check,
		Write:   write,
		Options: opts,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := false
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed = true
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
		case check && r.Changed:
			failed = true
			fmt.Fprintln(out, r.Path)
		case write && r.Changed:
			fmt.Fprintf(out, "formatted %s\n", r.Path)
		case !check && !write:
			if _, err := out.Write(r.Formatted); err != nil {
				return err
			}
		}
	}
	if failed {
		return exitCodeError{code: 1}
	}
	return nil
}

// formatOptions merges the manifest governing start with the command's
// flags, flags winning.
func formatOptions(cmd *cobra.Command, start string) (format.Options, error) {
	var opts format.Options
	policy, indent := "", ""
	path, err := project.FindManifest(start)
	switch {
	case err == nil:
		m, err := project.Load(path)
		if err != nil {
			return opts, err
		}
		policy, indent = m.Config.Analyzer.TrailingCommas, m.Config.Analyzer.Indent
	case !errors.Is(err, project.ErrNoManifest):
		return opts, err
	}

	flagPolicy, err := cmd.Flags().GetString("trailing-commas")
	if err != nil {
		return opts, fmt.Errorf("failed to get trailing-commas flag: %w", err)
	}
	flagIndent, err := cmd.Flags().GetString("indent")
	if err != nil {
		return opts, fmt.Errorf("failed to get indent flag: %w", err)
	}
	if flagPolicy != "" {
		policy = flagPolicy
	}
	if flagIndent != "" {
		indent = flagIndent
	}

	if opts.TrailingCommas, err = format.ParsePolicy(policy); err != nil {
		return opts, err
	}
	opts.Indent = indent
	return opts, nil
}
