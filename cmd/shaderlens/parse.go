package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shaderlens/internal/diagfmt"
	"shaderlens/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.wgsl",
	Short: "Print the syntax tree of a shader file",
	Long: `Parse prints the lossless syntax tree of a file. Shader defs from the
manifest and --define apply unless --no-preprocess is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().Bool("no-preprocess", false, "parse the text as written, ignoring conditional directives")
}

func runParse(cmd *cobra.Command, args []string) error {
	noPre, err := cmd.Flags().GetBool("no-preprocess")
	if err != nil {
		return fmt.Errorf("failed to get no-preprocess flag: %w", err)
	}
	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	defs, err := defines(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(cmd.Context(), args[0], driver.ParseOptions{
		NoPreprocess:   noPre,
		Defines:        defs,
		MaxDiagnostics: maxDiags,
	})
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if err := diagfmt.FormatTree(cmd.OutOrStdout(), result.Parse, result.File); err != nil {
		return err
	}
	if result.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, result.Bag, result.Workspace.Files, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 2,
		})
	}
	if result.Bag.HasErrors() {
		return exitCodeError{code: 1}
	}
	return nil
}
