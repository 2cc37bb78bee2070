package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"macroessentials/internal/prof"
)

type profKey struct{}

// setupProfiling starts the profilers requested by the persistent flags;
// teardownRun stops them.
func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if cfg == (prof.Config{}) {
		return nil
	}

	session, err := prof.Start(cfg)
	if err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	cmd.SetContext(context.WithValue(cmd.Context(), profKey{}, session))
	return nil
}

func stopProfiling(cmd *cobra.Command) {
	session, ok := cmd.Context().Value(profKey{}).(*prof.Session)
	if !ok {
		return
	}
	if err := session.Stop(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "profiling: %v\n", err)
	}
}
