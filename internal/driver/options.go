package driver

import (
	"macroessentials/internal/config"
	"macroessentials/internal/diag"
	"macroessentials/internal/observ"
)

// Options configures one analysis run.
type Options struct {
	// MaxDiagnostics limits diagnostics per file; zero means unbounded.
	MaxDiagnostics int
	// Macros restricts diagnostics to types carrying one of these attached
	// macros. Empty means every type declaration is checked.
	Macros []string
	// Requires maps a macro to the protocol its type has to conform to.
	Requires map[string]string
	// Constructors is the callee allow-list of the inferencer.
	Constructors []string
	Session      *diag.Session
	// Jobs limits parallel workers in AnalyzeDir; zero means GOMAXPROCS.
	Jobs     int
	Cache    *DiskCache
	Timer    *observ.Timer
	Events   EventSink
	Observer PhaseObserver
}

// OptionsFromConfig seeds Options with the analysis settings of cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		MaxDiagnostics: cfg.Diag.Max,
		Macros:         cfg.Analysis.Macros,
		Requires:       cfg.Analysis.Requires,
		Constructors:   cfg.Analysis.Constructors,
		Session:        diag.NewSession(cfg.Analysis.Domain),
	}
}

func (o *Options) session() *diag.Session {
	if o.Session == nil {
		o.Session = diag.NewSession("")
	}
	return o.Session
}
