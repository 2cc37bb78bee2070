package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"macroessentials/internal/driver"
	"macroessentials/internal/observ"
	"macroessentials/internal/source"
	"macroessentials/internal/trace"
)

// analyzeTarget runs the driver on a file or a directory. For directories
// the progress UI is shown when --ui allows it.
func analyzeTarget(cmd *cobra.Command, target string, opts driver.Options) (*source.FileSet, []*driver.FileResult, error) {
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if showTimings {
		opts.Timer = observ.NewTimer()
		defer printTimings(cmd, opts.Timer)
	}

	span, ctx := trace.Start(cmd.Context(), trace.ScopeDriver, cmd.Name())
	defer span.End("")

	st, err := os.Stat(target)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		fs, res, err := driver.Analyze(ctx, target, opts)
		if err != nil {
			return nil, nil, err
		}
		return fs, []*driver.FileResult{res}, nil
	}

	mode := uiModeOff
	if cmd.Flags().Lookup("ui") != nil {
		value, err := cmd.Flags().GetString("ui")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get ui flag: %w", err)
		}
		if mode, err = readUIMode(value); err != nil {
			return nil, nil, err
		}
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if shouldUseTUI(mode, quiet) {
		files, err := driver.ListSourceFiles(target)
		if err != nil {
			return nil, nil, err
		}
		return runWithUI(ctx, "analyzing "+target, files, func(sink driver.EventSink) (*source.FileSet, []*driver.FileResult, error) {
			opts.Events = sink
			return driver.AnalyzeDir(ctx, target, opts)
		})
	}
	return driver.AnalyzeDir(ctx, target, opts)
}

func printTimings(cmd *cobra.Command, timer *observ.Timer) {
	fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
}
