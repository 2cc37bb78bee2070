package diag

import (
	"testing"

	"macroessentials/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("Model.swift", []byte("struct A {\n    var x = y\n}\n"))

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     SemaComputedProperty,
			Message:  "later\nwarning",
			Primary:  source.Span{File: file, Start: 25, End: 26},
		},
		{
			Severity: SevError,
			Code:     SemaCannotInferType,
			Message:  "Type of `x` cannot be inferred, please declare explicitly",
			Primary:  source.Span{File: file, Start: 15, End: 24},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 19, End: 24}, Msg: "Type cannot be inferred from referring to `y`"},
			},
			Fixes: []Fix{{
				Title: "Declare Type for `x`",
				Edits: []TextEdit{{Span: source.Span{File: file, Start: 15, End: 24}, NewText: "var x: <#type#> = y"}},
			}},
		},
	}

	want := "error SEM3001 Model.swift:2:5 Type of `x` cannot be inferred, please declare explicitly\n" +
		"note SEM3001 Model.swift:2:9 Type cannot be inferred from referring to `y`\n" +
		"fix SEM3001 Model.swift:2:5 Declare Type for `x`\n" +
		"warning SEM3004 Model.swift:3:1 later warning"
	if got := FormatGoldenDiagnostics(diags, fs, true); got != want {
		t.Fatalf("unexpected golden output:\nwant:\n%s\n\ngot:\n%s", want, got)
	}

	short := "error SEM3001 Model.swift:2:5 Type of `x` cannot be inferred, please declare explicitly\n" +
		"warning SEM3004 Model.swift:3:1 later warning"
	if got := FormatShortDiagnostics(diags, fs, false); got != short {
		t.Fatalf("unexpected short output:\n%s", got)
	}
}

func TestFormatGoldenDiagnosticsEmpty(t *testing.T) {
	if got := FormatGoldenDiagnostics(nil, source.NewFileSet(), true); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
