package driver

import (
	"context"
	"slices"
	"strings"
	"testing"

	"macroessentials/internal/diag"
	"macroessentials/internal/fix"
	"macroessentials/internal/source"
)

const userSrc = `@Model
struct User: Codable {
    let id = UUID()
    var name = "anonymous"
    var count = other
    var total: Int { 2 }
    static let shared = registry
}
`

func analyzeSource(t *testing.T, src string, opts Options) (*source.FileSet, *FileResult) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("User.swift", []byte(src))
	return fs, AnalyzeFile(context.Background(), fs, id, opts)
}

func dryRun(t *testing.T, fs *source.FileSet, d diag.Diagnostic) string {
	t.Helper()
	res, err := fix.Apply(fs, []diag.Diagnostic{d}, fix.ApplyOptions{Mode: fix.ApplyModeOnce, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v (skipped %+v)", err, res.Skipped)
	}
	return string(res.FileChanges[0].Content)
}

func TestAnalyzeFileReportsUninferableMembers(t *testing.T) {
	fs, res := analyzeSource(t, userSrc, Options{})

	items := res.Bag.Items()
	if len(items) != 1 {
		t.Fatalf("expected one diagnostic, got %d: %+v", len(items), items)
	}
	d := items[0]
	if d.Code != diag.SemaCannotInferType {
		t.Fatalf("code = %s", d.Code.ID())
	}
	if got := d.MessageID.String(); got != "MacroCollection.User.cannotInferType.count" {
		t.Fatalf("message id = %q", got)
	}
	if len(d.Notes) != 1 || d.Notes[0].Msg != "Type cannot be inferred from referring to `other`" {
		t.Fatalf("notes = %+v", d.Notes)
	}
	want := strings.Replace(userSrc, "var count = other", "var count: <#type#> = other", 1)
	if got := dryRun(t, fs, d); got != want {
		t.Fatalf("fixed source:\n%s\nwant:\n%s", got, want)
	}
}

func TestAnalyzeFileTypeReport(t *testing.T) {
	_, res := analyzeSource(t, userSrc, Options{})
	if len(res.Types) != 1 {
		t.Fatalf("expected one type, got %+v", res.Types)
	}
	tr := res.Types[0]
	if tr.Name != "User" || tr.Kind != "struct" || tr.Line != 1 {
		t.Fatalf("type report = %+v", tr)
	}
	if !slices.Equal(tr.Macros, []string{"Model"}) || !slices.Equal(tr.Conformances, []string{"Codable"}) {
		t.Fatalf("macros %v, conformances %v", tr.Macros, tr.Conformances)
	}

	want := []MemberReport{
		{Name: "id", Kind: "storedConstant", Type: "UUID"},
		{Name: "name", Kind: "storedVariable", Type: "String"},
		{Name: "count", Kind: "storedVariable", Failure: "Type cannot be inferred from referring to `other`"},
		{Name: "total", Kind: "computed", Type: "Int", Explicit: true},
		{Name: "shared", Kind: "staticConstant", Failure: "Type cannot be inferred from referring to `registry`"},
	}
	if !slices.Equal(tr.Members, want) {
		t.Fatalf("members:\n got %+v\nwant %+v", tr.Members, want)
	}
}

func TestAnalyzeFileNestedTypes(t *testing.T) {
	src := "struct Outer {\n    let a = 1\n    struct Inner {\n        var b = c\n    }\n}\n"
	_, res := analyzeSource(t, src, Options{})
	var names []string
	for _, tr := range res.Types {
		names = append(names, tr.Name)
	}
	if !slices.Equal(names, []string{"Outer", "Outer.Inner"}) {
		t.Fatalf("types = %v", names)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].MessageID.ID != "Outer.Inner.cannotInferType.b" {
		t.Fatalf("diagnostics = %+v", items)
	}
}

func TestAnalyzeFileMacroFilter(t *testing.T) {
	src := "@Model\nstruct A {\n    var x = y\n}\nstruct B {\n    var z = w\n}\n"
	_, res := analyzeSource(t, src, Options{Macros: []string{"Model"}})
	items := res.Bag.Items()
	if len(items) != 1 {
		t.Fatalf("expected only the @Model type to be checked, got %+v", items)
	}
	if got := items[0].MessageID.ID; got != "Model.A.cannotInferType.x" {
		t.Fatalf("message id = %q", got)
	}
	// отчёт по типам строится для всех деклараций
	if len(res.Types) != 2 {
		t.Fatalf("types = %+v", res.Types)
	}
}

func TestAnalyzeFileMacroOnExtension(t *testing.T) {
	src := "@Model @Sendable\nextension User {\n    var x = y\n}\n"
	fs, res := analyzeSource(t, src, Options{Macros: []string{"Model"}})
	items := res.Bag.Items()
	if len(items) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", items)
	}
	d := items[0]
	if d.Code != diag.SemaMacroNotApplicable {
		t.Fatalf("code = %s", d.Code.ID())
	}
	if d.Message != "`@Model` cannot be applied to extension declarations" {
		t.Fatalf("message = %q", d.Message)
	}
	if got := dryRun(t, fs, d); got != "@Sendable\nextension User {\n    var x = y\n}\n" {
		t.Fatalf("fixed source = %q", got)
	}
}

func TestAnalyzeFileReportsEveryInapplicableMacro(t *testing.T) {
	src := "@Observable @Codable\nextension Point {\n    var x = y\n}\n"
	fs, res := analyzeSource(t, src, Options{Macros: []string{"Observable", "Codable"}})
	items := res.Bag.Items()
	if len(items) != 2 {
		t.Fatalf("expected two diagnostics, got %+v", items)
	}
	want := map[string]string{
		"`@Observable` cannot be applied to extension declarations": "@Codable\nextension Point {\n    var x = y\n}\n",
		"`@Codable` cannot be applied to extension declarations":    "@Observable\nextension Point {\n    var x = y\n}\n",
	}
	for _, d := range items {
		fixed, ok := want[d.Message]
		if !ok || d.Code != diag.SemaMacroNotApplicable {
			t.Fatalf("unexpected diagnostic %s %q", d.Code.ID(), d.Message)
		}
		if got := dryRun(t, fs, d); got != fixed {
			t.Fatalf("%s: fixed source = %q", d.Message, got)
		}
		delete(want, d.Message)
	}
}

func TestAnalyzeFileMissingConformance(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
		diag bool
	}{
		{
			name: "no inheritance clause",
			src:  "@Model\nstruct User {\n    let id = 1\n}\n",
			want: "@Model\nstruct User: Codable {\n    let id = 1\n}\n",
			diag: true,
		},
		{
			name: "appends to the clause",
			src:  "@Model\nstruct User: Hashable {\n    let id = 1\n}\n",
			want: "@Model\nstruct User: Hashable, Codable {\n    let id = 1\n}\n",
			diag: true,
		},
		{
			name: "already conforms",
			src:  "@Model\nstruct User: Codable {\n    let id = 1\n}\n",
		},
	}
	opts := Options{Macros: []string{"Model"}, Requires: map[string]string{"Model": "Codable"}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, res := analyzeSource(t, tt.src, opts)
			items := res.Bag.Items()
			if !tt.diag {
				if len(items) != 0 {
					t.Fatalf("unexpected diagnostics %+v", items)
				}
				return
			}
			if len(items) != 1 || items[0].Code != diag.SemaMissingConformance {
				t.Fatalf("diagnostics = %+v", items)
			}
			if got := items[0].MessageID.ID; got != "Model.missingConformance.User" {
				t.Fatalf("message id = %q", got)
			}
			if got := dryRun(t, fs, items[0]); got != tt.want {
				t.Fatalf("fixed source = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalyzeFileConstructors(t *testing.T) {
	src := "struct S {\n    let when = Date()\n    let id = UUID()\n}\n"
	_, res := analyzeSource(t, src, Options{Constructors: []string{"Date"}})
	members := res.Types[0].Members
	if members[0].Type != "Date" {
		t.Fatalf("Date() = %+v", members[0])
	}
	if members[1].Failure == "" {
		t.Fatalf("UUID must not be inferred once the allow-list is replaced: %+v", members[1])
	}
	if res.Bag.Len() != 1 {
		t.Fatalf("diagnostics = %+v", res.Bag.Items())
	}
}

func TestAnalyzeFileSyntaxErrors(t *testing.T) {
	_, res := analyzeSource(t, "struct S {\n    let s = \"open\n}\n", Options{})
	if !res.Bag.HasErrors() {
		t.Fatalf("expected a syntax error")
	}
	found := slices.ContainsFunc(res.Bag.Items(), func(d diag.Diagnostic) bool {
		return d.Code == diag.LexUnterminatedString
	})
	if !found {
		t.Fatalf("expected LEX1002 among %+v", res.Bag.Items())
	}
}
