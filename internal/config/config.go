// Package config loads macroessentials.toml, the per-project analysis settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the config file searched for upward from the analysed path.
const FileName = "macroessentials.toml"

// Config mirrors the file layout.
type Config struct {
	Analysis Analysis `toml:"analysis"`
	Diag     Diag     `toml:"diag"`
}

type Analysis struct {
	// Macros lists attached macros the driver checks, e.g. "Codable".
	Macros []string `toml:"macros"`
	// Constructors are callee names whose call infers as the named type.
	Constructors []string `toml:"constructors"`
	// Domain prefixes generated message ids.
	Domain string `toml:"domain"`
	// Requires maps a macro to the protocol its type must conform to.
	Requires map[string]string `toml:"requires"`
}

type Diag struct {
	Format    string `toml:"format"`
	Max       int    `toml:"max"`
	WithNotes bool   `toml:"with_notes"`
	Suggest   bool   `toml:"suggest"`
}

// Manifest is a loaded config together with where it came from.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

var validFormats = map[string]bool{"pretty": true, "short": true, "json": true}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Analysis: Analysis{
			Constructors: []string{"UUID"},
			Domain:       "MacroCollection",
		},
		Diag: Diag{
			Format:    "pretty",
			Max:       100,
			WithNotes: true,
		},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if st, statErr := os.Stat(dir); statErr == nil && !st.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the config governing startDir. Without a config
// file it returns Default and ok == false.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return &Manifest{Config: Default()}, false, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// Load decodes path on top of Default. Keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("analysis", "domain") && strings.TrimSpace(cfg.Analysis.Domain) == "" {
		return Config{}, fmt.Errorf("%s: [analysis].domain must not be empty", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that the decoder cannot.
func (c Config) Validate() error {
	if !validFormats[c.Diag.Format] {
		return fmt.Errorf("[diag].format must be one of pretty, short, json; got %q", c.Diag.Format)
	}
	if c.Diag.Max < 0 {
		return fmt.Errorf("[diag].max must be non-negative, got %d", c.Diag.Max)
	}
	for _, name := range c.Analysis.Constructors {
		if strings.TrimSpace(name) == "" {
			return errors.New("[analysis].constructors contains an empty name")
		}
	}
	for _, name := range c.Analysis.Macros {
		if strings.TrimSpace(name) == "" || strings.HasPrefix(name, "@") {
			return fmt.Errorf("[analysis].macros: invalid macro name %q (write it without '@')", name)
		}
	}
	for macro, proto := range c.Analysis.Requires {
		if strings.TrimSpace(proto) == "" {
			return fmt.Errorf("[analysis.requires].%s: empty protocol name", macro)
		}
	}
	return nil
}

// Encode renders c as TOML.
func Encode(c Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write creates dir/FileName with the default settings. An existing file is
// never overwritten.
func Write(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("already initialized: %s exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	data, err := Encode(Default())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
