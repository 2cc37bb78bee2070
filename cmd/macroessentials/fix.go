package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"macroessentials/internal/driver"
	"macroessentials/internal/fix"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] <file.swift|directory>",
		Short: "Apply available fixes to a source file or directory",
		Long:  "Run the analysis, collect the fixes attached to its diagnostics, and apply them according to the chosen strategy.",
		Args:  cobra.ExactArgs(1),
		RunE:  runFix,
	}
	cmd.Flags().Bool("all", false, "apply all safe fixes")
	cmd.Flags().Bool("once", false, "apply the first available fix (default)")
	cmd.Flags().String("id", "", "apply the fix with a specific identifier or message id")
	cmd.Flags().Bool("dry-run", false, "print the fixed contents instead of writing files")
	addAnalysisFlags(cmd)
	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return fmt.Errorf("failed to get once flag: %w", err)
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return fmt.Errorf("failed to get id flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	if targetID != "" && (applyAll || applyOnce) {
		return errors.New("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return errors.New("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	cfg, err := loadSettings(cmd, target)
	if err != nil {
		return err
	}
	// fixes are collected from every diagnostic, not the printed subset
	cfg.Diag.Max = 0
	opts, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}

	fs, results, err := analyzeTarget(cmd, target, opts)
	if err != nil {
		dumpTrace(cmd)
		return fmt.Errorf("fix: %w", err)
	}
	bag := driver.MergeBags(results, 0)
	res, applyErr := fix.Apply(fs, bag.Items(), fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
	})
	return handleApplyResult(cmd.OutOrStdout(), res, applyErr, dryRun)
}

func handleApplyResult(out io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		fmt.Fprintf(out, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(out, "  %s [%s] at %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability)
		}
	}

	if len(res.FileChanges) > 0 {
		header := "Updated files:"
		if dryRun {
			header = "Files that would change:"
		}
		fmt.Fprintln(out, header)
		for _, change := range res.FileChanges {
			fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
		if dryRun {
			for _, change := range res.FileChanges {
				fmt.Fprintf(out, "--- %s\n", change.Path)
				if _, err := out.Write(change.Content); err != nil {
					return err
				}
				if n := len(change.Content); n > 0 && change.Content[n-1] != '\n' {
					fmt.Fprintln(out)
				}
			}
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(out, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(out, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}
	if len(res.Applied) == 0 {
		fmt.Fprintln(out, "No fixes applied.")
	}
	return nil
}
