package driver

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"macroessentials/internal/diag"
	"macroessentials/internal/observ"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return dir
}

func TestListSourceFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"b.swift":                 "",
		"a.swift":                 "",
		"Sources/c.swift":         "",
		"README.md":               "",
		".build/gen.swift":        "",
		"Sources/.hidden/d.swift": "",
	})
	files, err := ListSourceFiles(dir)
	if err != nil {
		t.Fatalf("ListSourceFiles: %v", err)
	}
	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(dir, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	if want := []string{"Sources/c.swift", "a.swift", "b.swift"}; !slices.Equal(rel, want) {
		t.Fatalf("files = %v, want %v", rel, want)
	}
}

func TestAnalyzeDir(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"A.swift": "struct A {\n    var x = y\n}\n",
		"B.swift": "struct B {\n    let ok = 1\n}\n",
		"C.swift": "struct C {\n    var z = [w]\n}\n",
	})

	var (
		mu     sync.Mutex
		events []Event
		phases []string
	)
	opts := Options{
		Jobs:  2,
		Timer: observ.NewTimer(),
		Events: func(ev Event) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		},
		Observer: func(ev PhaseEvent) {
			if ev.Status == PhaseEnd {
				phases = append(phases, ev.Name)
			}
		},
	}
	fs, results, err := AnalyzeDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}
	for i, name := range []string{"A.swift", "B.swift", "C.swift"} {
		if filepath.Base(results[i].Path) != name {
			t.Fatalf("result %d is %s, want %s", i, results[i].Path, name)
		}
		if int(results[i].FileID) != i {
			t.Fatalf("file ids must follow path order: %s has %d", name, results[i].FileID)
		}
	}
	if got := []int{results[0].Bag.Len(), results[1].Bag.Len(), results[2].Bag.Len()}; !slices.Equal(got, []int{1, 0, 1}) {
		t.Fatalf("diagnostic counts = %v", got)
	}

	merged := MergeBags(results, 0)
	if merged.Len() != 2 || merged.Items()[0].Primary.File != 0 || merged.Items()[1].Primary.File != 2 {
		t.Fatalf("merged = %s", diag.FormatShortDiagnostics(merged.Items(), fs, false))
	}

	if !slices.Equal(phases, []string{"list", "load", "analyze"}) {
		t.Fatalf("phases = %v", phases)
	}
	done, reported := 0, 0
	for _, ev := range events {
		if ev.Stage == StageAnalyze && (ev.Status == StatusDone || ev.Status == StatusError) {
			done++
			reported += ev.Diagnostics
		}
	}
	if done != 3 || reported != 2 {
		t.Fatalf("expected a final event per file, got %+v", events)
	}
	if len(opts.Timer.Report().Phases) == 0 {
		t.Fatalf("timer recorded nothing")
	}
}

func TestAnalyzeDirEmpty(t *testing.T) {
	fs, results, err := AnalyzeDir(context.Background(), t.TempDir(), Options{})
	if err != nil || results != nil || fs.Len() != 0 {
		t.Fatalf("got %v, %v, %d files", results, err, fs.Len())
	}
}

func TestAnalyzeDirCancelled(t *testing.T) {
	dir := writeTree(t, map[string]string{"A.swift": "struct A {}\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := AnalyzeDir(ctx, dir, Options{}); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
