package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"macroessentials/internal/diag"
	"macroessentials/internal/driver"
)

func newInferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infer [flags] <expression>",
		Short: "Infer the type of a literal expression",
		Long: `Parse the argument as a single Swift expression and print the type that
would be inferred for a binding initialised with it.`,
		Example: `  macroessentials infer '[1: "a"]'
  macroessentials infer --constructor Date 'Date()'`,
		Args: cobra.MinimumNArgs(1),
		RunE: runInfer,
	}
	cmd.Flags().StringSlice("constructor", nil, "callees whose call infers as the named type (overrides [analysis].constructors)")
	return cmd
}

func runInfer(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd, ".")
	if err != nil {
		return err
	}
	opts := driver.OptionsFromConfig(cfg)

	res := driver.InferExpr(strings.Join(args, " "), opts)
	if res.Bag.HasErrors() {
		fmt.Fprintln(cmd.ErrOrStderr(), diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, false))
		return errHasErrors
	}
	if !res.Expr.IsValid() {
		return fmt.Errorf("infer: %q is not an expression", strings.Join(args, " "))
	}
	if res.Err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "error: %v\n", res.Err)
		return errHasErrors
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Type.String())
	return nil
}
