package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"macroessentials/internal/config"
	"macroessentials/internal/diag"
	"macroessentials/internal/diagfmt"
	"macroessentials/internal/driver"
	"macroessentials/internal/source"
)

func newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] <file.swift|directory>",
		Short: "Report members whose type cannot be inferred",
		Long: `Run the analysis over a Swift source file or every *.swift file within a
directory and print the diagnostics. Exits with status 1 when errors are found.`,
		Args: cobra.ExactArgs(1),
		RunE: runDiag,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	cmd.Flags().Bool("preview", false, "show the lines each fix would produce (with --suggest)")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	cmd.Flags().String("ui", "off", "progress UI for directories (auto|on|off)")
	addAnalysisFlags(cmd)
	return cmd
}

// runDiag executes the "diag" command: it loads settings for the target,
// runs the driver and prints the merged diagnostics in the configured format.
func runDiag(cmd *cobra.Command, args []string) error {
	target := args[0]
	cfg, err := loadSettings(cmd, target)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	fs, results, err := analyzeTarget(cmd, target, opts)
	if err != nil {
		dumpTrace(cmd)
		return fmt.Errorf("diag: %w", err)
	}
	bag := driver.MergeBags(results, 0)

	pathMode := diagfmt.PathModeRelative
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	if err := writeDiagnostics(cmd, cmd.OutOrStdout(), bag, fs, cfg.Diag, pathMode, preview); err != nil {
		return err
	}
	if !quiet && cfg.Diag.Format != "json" {
		printSummary(cmd.ErrOrStderr(), bag, len(results))
	}
	if bag.HasErrors() {
		return errHasErrors
	}
	return nil
}

func writeDiagnostics(cmd *cobra.Command, w io.Writer, bag *diag.Bag, fs *source.FileSet, settings config.Diag, pathMode diagfmt.PathMode, preview bool) error {
	switch settings.Format {
	case "pretty":
		colored, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:       colored,
			Context:     1,
			PathMode:    pathMode,
			ShowNotes:   settings.WithNotes,
			ShowFixes:   settings.Suggest,
			ShowPreview: settings.Suggest && preview,
			ShowIDs:     settings.Suggest,
		})
		return nil
	case "short":
		out := diag.FormatShortDiagnostics(bag.Items(), fs, settings.WithNotes)
		if out == "" {
			return nil
		}
		_, err := io.WriteString(w, out+"\n")
		return err
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     settings.WithNotes,
			IncludeFixes:     settings.Suggest,
			IncludePreviews:  settings.Suggest && preview,
		})
	default:
		return fmt.Errorf("unknown format: %s", settings.Format)
	}
}

func printSummary(w io.Writer, bag *diag.Bag, files int) {
	var errs, warns int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	fmt.Fprintf(w, "%d error(s), %d warning(s) in %d file(s)\n", errs, warns, files)
}
