package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"macroessentials/internal/diag"
	"macroessentials/internal/fix"
	"macroessentials/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	content := []byte("let x = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/Sources/Model.swift", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 8, End: 28},
		"Unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/Sources/Model.swift:1:9"},
		{"Relative path", PathModeRelative, "Sources/Model.swift:1:9"},
		{"Basename only", PathModeBasename, "Model.swift:1:9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "Unterminated string"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output, got:\n%s", want, output)
				}
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"Short path - as is", "Model.swift", "Model.swift:1:9"},
		{"Long absolute path - basename", "/very/long/absolute/path/to/some/nested/directory/Model.swift", "\nModel.swift"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileID := fs.AddVirtual(tt.path, []byte("let x = 42\n"))
			bag := diag.NewBag(10)
			bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 8, End: 10}, "Test warning"))

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			// ведущий перевод строки для сравнения по началу
			output := "\n" + buf.String()

			if !strings.Contains(output, tt.expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.expected, output)
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("struct S {\n    var count = other\n}")
	fileID := fs.AddVirtual("Model.swift", content)

	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.SemaCannotInferType, source.Span{File: fileID, Start: 15, End: 32},
		"Type of `count` cannot be inferred, please declare explicitly"))

	tests := []struct {
		name    string
		context int8
		want    []string
	}{
		{
			name:    "no context",
			context: 0,
			want: []string{
				"Model.swift:2:5: ERROR SEM3001: Type of `count` cannot be inferred, please declare explicitly",
				"2 |     var count = other",
				"  |     ^" + strings.Repeat("~", 16),
			},
		},
		{
			name:    "one line around",
			context: 1,
			want: []string{
				"Model.swift:2:5: ERROR SEM3001: Type of `count` cannot be inferred, please declare explicitly",
				"1 | struct S {",
				"2 |     var count = other",
				"  |     ^" + strings.Repeat("~", 16),
				"3 | }",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: tt.context, PathMode: PathModeBasename})
			got := strings.TrimRight(buf.String(), "\n")
			if want := strings.Join(tt.want, "\n"); got != want {
				t.Fatalf("output mismatch\n got:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("Wide.swift", []byte(`let s = "日本" + x`))

	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.SemaCannotInferType, source.Span{File: fileID, Start: 19, End: 20}, "wide"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got:\n%s", buf.String())
	}
	// два иероглифа занимают по две колонки
	if want := "  | " + strings.Repeat(" ", 17) + "^"; lines[2] != want {
		t.Fatalf("caret line = %q, want %q", lines[2], want)
	}
}

func TestPrettyFoldsLongSpans(t *testing.T) {
	fs := source.NewFileSet()
	src := "struct S {\n    let a = 1\n    let b = 2\n    let c = 3\n    let d = 4\n    let e = 5\n}"
	fileID := fs.AddVirtual("Long.swift", []byte(src))

	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevWarning, diag.SemaMacroNotApplicable, source.Span{File: fileID, Start: 0, End: uint32(len(src))}, "long"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	out := buf.String()
	if !strings.Contains(out, "  ...\n") {
		t.Fatalf("expected folded interior, got:\n%s", out)
	}
	if strings.Contains(out, "let c = 3") {
		t.Fatalf("interior lines must be folded, got:\n%s", out)
	}
	if !strings.Contains(out, "7 | }") {
		t.Fatalf("expected last line of the span, got:\n%s", out)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("@A @Codable\nstruct S {}\n")
	fileID := fs.AddVirtual("Model.swift", content)

	session := diag.NewSession("")
	bag := diag.NewBag(4)
	primary := source.Span{File: fileID, Start: 3, End: 11}
	d := diag.New(diag.SevError, diag.SemaMacroMisuse, primary, "`@Codable` cannot be applied here").
		WithMessageID(session.Next())
	d = d.WithNote(source.Span{File: fileID, Start: 12, End: 23}, "declared here")
	d = d.WithFixSuggestion(fix.ReplaceSpan("Remove `Codable`", source.Span{File: fileID, Start: 2, End: 11}, "", " @Codable",
		fix.WithID("remove-codable")))
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:  PathModeBasename,
		ShowNotes: true,
		ShowFixes: true,
		ShowIDs:   true,
	})
	output := buf.String()

	for _, want := range []string{
		"SEM3002 [MacroCollection.1]",
		"note: Model.swift:2:1: declared here",
		"fix #1: Remove `Codable` (quickfix, always-safe) id=remove-codable",
		`apply="" expect=" @Codable"`,
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "preview:") {
		t.Fatalf("preview must be off by default, got:\n%s", output)
	}
}

func TestPrettyFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("Model.swift", []byte("struct S {\n    var count = other\n}"))

	bag := diag.NewBag(2)
	insertSpan := source.Span{File: fileID, Start: 24, End: 24}
	d := diag.New(diag.SevError, diag.SemaCannotInferType, insertSpan, "missing type")
	d = d.WithFix("Declare Type for `count`", diag.TextEdit{Span: insertSpan, NewText: ": <#type#>"})
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:    PathModeBasename,
		ShowFixes:   true,
		ShowPreview: true,
	})
	output := buf.String()

	for _, want := range []string{
		"preview:",
		"- " + "    var count = other",
		"+ " + "    var count: <#type#> = other",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("Model.swift", []byte("let a = b"))
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.SemaCannotInferType, source.Span{File: fileID, Start: 8, End: 9}, "m"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	Pretty(&colored, bag, fs, PrettyOpts{PathMode: PathModeBasename, Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output contains escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escapes: %q", colored.String())
	}
}
