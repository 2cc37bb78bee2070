package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"macroessentials/internal/config"
	"macroessentials/internal/driver"
)

const configFileName = config.FileName

// loadSettings resolves the config for target: --config wins, otherwise the
// file is searched upward from target. Changed command flags override it.
func loadSettings(cmd *cobra.Command, target string) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
	} else {
		m, _, err := config.Discover(target)
		if err != nil {
			return config.Config{}, err
		}
		cfg = m.Config
	}

	if f := cmd.Root().PersistentFlags().Lookup("max-diagnostics"); f != nil && f.Changed {
		if cfg.Diag.Max, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		if cfg.Diag.Format, err = flags.GetString("format"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get format flag: %w", err)
		}
	}
	if flags.Changed("with-notes") {
		if cfg.Diag.WithNotes, err = flags.GetBool("with-notes"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get with-notes flag: %w", err)
		}
	}
	if flags.Changed("suggest") {
		if cfg.Diag.Suggest, err = flags.GetBool("suggest"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get suggest flag: %w", err)
		}
	}
	if flags.Changed("macro") {
		if cfg.Analysis.Macros, err = flags.GetStringSlice("macro"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get macro flag: %w", err)
		}
	}
	if flags.Changed("constructor") {
		if cfg.Analysis.Constructors, err = flags.GetStringSlice("constructor"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get constructor flag: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// addAnalysisFlags registers the flags shared by commands that run the driver.
func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("macro", nil, "only check types carrying these attached macros (overrides [analysis].macros)")
	cmd.Flags().StringSlice("constructor", nil, "callees whose call infers as the named type (overrides [analysis].constructors)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("cache", false, "reuse analysis results from the disk cache")
}

// driverOptions turns settings and the shared flags into driver options.
func driverOptions(cmd *cobra.Command, cfg config.Config) (driver.Options, error) {
	opts := driver.OptionsFromConfig(cfg)
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	opts.Jobs = jobs

	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return opts, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if useCache {
		cache, err := driver.OpenDiskCache("macroessentials")
		if err != nil {
			return opts, fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}
