package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	writeFile(t, path, `
[analysis]
macros = ["Codable", "Equatable"]
constructors = ["UUID", "Date"]

[diag]
format = "json"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(cfg.Analysis.Macros, []string{"Codable", "Equatable"}) {
		t.Errorf("macros = %v", cfg.Analysis.Macros)
	}
	if !slices.Equal(cfg.Analysis.Constructors, []string{"UUID", "Date"}) {
		t.Errorf("constructors = %v", cfg.Analysis.Constructors)
	}
	if cfg.Analysis.Domain != "MacroCollection" {
		t.Errorf("domain = %q, want default", cfg.Analysis.Domain)
	}
	if cfg.Diag.Format != "json" || cfg.Diag.Max != 100 || !cfg.Diag.WithNotes {
		t.Errorf("diag = %+v", cfg.Diag)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[analysis\n", "failed to parse TOML"},
		{"unknown key", "[analysis]\nmacross = []\n", "unknown keys: analysis.macross"},
		{"bad format", "[diag]\nformat = \"xml\"\n", "[diag].format"},
		{"negative max", "[diag]\nmax = -1\n", "[diag].max"},
		{"empty domain", "[analysis]\ndomain = \" \"\n", "[analysis].domain"},
		{"macro with at", "[analysis]\nmacros = [\"@Codable\"]\n", "invalid macro name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "")
	nested := filepath.Join(root, "Sources", "Model")
	file := filepath.Join(nested, "User.swift")
	writeFile(t, file, "struct User {}\n")

	for _, start := range []string{nested, file} {
		got, ok, err := Find(start)
		if err != nil || !ok {
			t.Fatalf("Find(%s) = %v, %v", start, ok, err)
		}
		if got != filepath.Join(root, FileName) {
			t.Fatalf("Find(%s) = %s", start, got)
		}
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	m, ok, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	// в /tmp конфига быть не должно, но родитель может его содержать
	if ok {
		t.Skip("a config file exists above the temp dir")
	}
	if m.Path != "" || m.Config.Diag.Format != "pretty" {
		t.Fatalf("unexpected manifest %+v", m)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path, err := Write(dir)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if !slices.Equal(cfg.Analysis.Constructors, def.Analysis.Constructors) ||
		cfg.Analysis.Domain != def.Analysis.Domain ||
		len(cfg.Analysis.Macros) != 0 ||
		cfg.Diag != def.Diag {
		t.Fatalf("round trip mismatch: %+v", cfg)
	}
	if _, err := Write(dir); err == nil || !strings.Contains(err.Error(), "already initialized") {
		t.Fatalf("second Write error = %v", err)
	}
}

func TestLoadRequires(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, `
[analysis]
macros = ["Codable"]

[analysis.requires]
Codable = "Codable"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Analysis.Requires["Codable"]; got != "Codable" {
		t.Fatalf("requires = %v", cfg.Analysis.Requires)
	}

	writeFile(t, path, "[analysis.requires]\nCodable = \"\"\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "empty protocol name") {
		t.Fatalf("expected empty protocol error, got %v", err)
	}
}
