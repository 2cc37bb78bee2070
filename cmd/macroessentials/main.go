package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"macroessentials/internal/version"
)

// errHasErrors is returned when the analysed sources contain errors; the
// diagnostics are already printed, so main only sets the exit status.
var errHasErrors = errors.New("errors found")

// newRootCmd builds the command tree. Every call returns fresh commands so
// flags never leak between runs.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "macroessentials",
		Short: "Type inference and diagnostics for Swift macro declarations",
		Long: `macroessentials inspects Swift type declarations the way an attached macro
does: it classifies properties, infers binding types from literal syntax and
reports what has to be annotated, with fix-its.`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupRun,
	}

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	rootCmd.PersistentFlags().String("config", "", "path to "+configFileName+" (default: searched upward from the target)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to a file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	// Добавляем команды
	rootCmd.AddCommand(newInferCmd())
	rootCmd.AddCommand(newMembersCmd())
	rootCmd.AddCommand(newDiagCmd())
	rootCmd.AddCommand(newFixCmd())
	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// main executes the root command. Diagnostics with errors exit with status 1
// without an extra message; any other failure is printed first.
func main() {
	if err := execute(newRootCmd()); err != nil {
		if !errors.Is(err, errHasErrors) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// execute runs the command tree and releases the tracer and profilers of
// the executed command, whether it failed or not.
func execute(root *cobra.Command) error {
	cmd, err := root.ExecuteC()
	if cmd != nil {
		teardownRun(cmd)
	}
	return err
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for the given stream.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return f != nil && isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

func setupRun(cmd *cobra.Command, _ []string) error {
	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	color.NoColor = !colored
	if err := setupTracing(cmd); err != nil {
		return err
	}
	return setupProfiling(cmd)
}
