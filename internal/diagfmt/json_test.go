package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"macroessentials/internal/diag"
	"macroessentials/internal/source"
)

func decode(t *testing.T, buf *bytes.Buffer) DiagnosticsOutput {
	t.Helper()
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	return output
}

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("struct S {\n    let x = \"unterminated\n}")
	fileID := fs.AddVirtual("Model.swift", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 23, End: 36},
		"Unterminated string literal",
	))

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	output := decode(t, &buf)

	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d (count %d)", len(output.Diagnostics), output.Count)
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" {
		t.Errorf("Expected severity=ERROR, got %s", d.Severity)
	}
	if d.Code != "LEX1002" {
		t.Errorf("Expected code=LEX1002, got %s", d.Code)
	}
	if d.Message != "Unterminated string literal" {
		t.Errorf("Unexpected message %q", d.Message)
	}
	if d.Location.File != "Model.swift" {
		t.Errorf("Expected file=Model.swift, got %s", d.Location.File)
	}
	if d.Location.StartByte != 23 || d.Location.EndByte != 36 {
		t.Errorf("Expected bytes [23, 36), got [%d, %d)", d.Location.StartByte, d.Location.EndByte)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 13 {
		t.Errorf("Expected 2:13, got %d:%d", d.Location.StartLine, d.Location.StartCol)
	}
	if d.MessageID != "" || d.Node != nil {
		t.Errorf("Expected no message id and node, got %q %+v", d.MessageID, d.Node)
	}
}

// TestJSONWithNotesAndFixes проверяет JSON с заметками и исправлениями
func TestJSONWithNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("Model.swift", []byte("let x = y"))
	session := diag.NewSession("")

	declSpan := source.Span{File: fileID, Start: 0, End: 9}
	bindingSpan := source.Span{File: fileID, Start: 4, End: 9}
	d := diag.New(diag.SevError, diag.SemaCannotInferType, declSpan, "Type of `x` cannot be inferred, please declare explicitly").
		WithNode(diag.Anchor{Kind: "item", ID: 1, Span: declSpan}).
		WithMessageID(session.Named("cannotInferType.x")).
		WithNodeNote(diag.Anchor{Kind: "binding", ID: 1, Span: bindingSpan}, "Type cannot be inferred from referring to `y`").
		WithFixSuggestion(diag.Fix{
			ID:            "MacroCollection.cannotInferType.x",
			Title:         "Declare Type for `x`",
			Kind:          diag.FixKindQuickFix,
			Applicability: diag.FixApplicabilityManualReview,
			OldNode:       diag.Anchor{Kind: "item", ID: 1, Span: declSpan},
			NewNode:       diag.Anchor{Kind: "item", ID: 2},
			Edits:         []diag.TextEdit{{Span: source.Span{File: fileID, Start: 5, End: 5}, NewText: ": <#type#>"}},
		})

	bag := diag.NewBag(10)
	bag.Add(d)

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	out := decode(t, &buf).Diagnostics[0]

	if out.MessageID != "MacroCollection.cannotInferType.x" {
		t.Errorf("message id = %q", out.MessageID)
	}
	if out.Node == nil || out.Node.Kind != "item" || out.Node.ID != 1 {
		t.Errorf("node = %+v", out.Node)
	}
	if len(out.Notes) != 1 {
		t.Fatalf("Expected 1 note, got %d", len(out.Notes))
	}
	note := out.Notes[0]
	if note.Message != "Type cannot be inferred from referring to `y`" || note.Node == nil || note.Node.Kind != "binding" {
		t.Errorf("Unexpected note: %+v", note)
	}
	if note.Location.StartCol != 5 {
		t.Errorf("note column = %d", note.Location.StartCol)
	}

	if len(out.Fixes) != 1 {
		t.Fatalf("Expected 1 fix, got %d", len(out.Fixes))
	}
	fx := out.Fixes[0]
	if fx.Title != "Declare Type for `x`" || fx.Kind != "quickfix" || fx.Applicability != "manual-review" {
		t.Errorf("Unexpected fix: %+v", fx)
	}
	if fx.MessageID != out.MessageID {
		t.Errorf("fix message id %q differs from %q", fx.MessageID, out.MessageID)
	}
	if fx.OldNode == nil || fx.NewNode == nil || fx.NewNode.ID != 2 {
		t.Errorf("fix nodes: old %+v new %+v", fx.OldNode, fx.NewNode)
	}
	if len(fx.Edits) != 1 || fx.Edits[0].NewText != ": <#type#>" || fx.Edits[0].OldText != "" {
		t.Fatalf("Unexpected edits: %+v", fx.Edits)
	}
}

func TestJSONNotesAndFixesAreOptional(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("Model.swift", []byte("let x = y"))
	span := source.Span{File: fileID, Start: 0, End: 9}
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.SemaCannotInferType, span, "m").
		WithNote(span, "n").
		WithFix("f", diag.TextEdit{Span: span, NewText: "let x: Y = y"}))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	out := decode(t, &buf).Diagnostics[0]
	if out.Notes != nil || out.Fixes != nil {
		t.Fatalf("notes and fixes must be omitted: %+v", out)
	}
}

// TestJSONWithoutPositions проверяет JSON без позиций строк/колонок
func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("Model.swift", []byte("let x = 42"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevInfo, diag.SemaInfo, source.Span{File: fileID, Start: 4, End: 5}, "Info message"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	d := decode(t, &buf).Diagnostics[0]

	// omitempty скрывает line/col
	if d.Location.StartLine != 0 {
		t.Errorf("Expected start_line to be omitted (0), got %d", d.Location.StartLine)
	}
	// байтовые позиции есть всегда
	if d.Location.StartByte != 4 {
		t.Errorf("Expected start_byte=4, got %d", d.Location.StartByte)
	}
}

// TestJSONMaxLimit проверяет ограничение количества диагностик
func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("Model.swift", []byte("test content"))

	bag := diag.NewBag(10)
	for i := range uint32(5) {
		bag.Add(diag.New(diag.SevError, diag.SemaMacroMisuse, source.Span{File: fileID, Start: i, End: i + 1}, "Error message"))
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename, Max: 3}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	output := decode(t, &buf)
	if output.Count != 3 || len(output.Diagnostics) != 3 {
		t.Errorf("Expected 3 diagnostics (limited), got %d (count %d)", len(output.Diagnostics), output.Count)
	}
}

// TestJSONPathModes проверяет различные режимы путей
func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/Sources/Model.swift", []byte("test"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.SemaMacroMisuse, source.Span{File: fileID, Start: 0, End: 1}, "Error"))

	tests := []struct {
		name     string
		pathMode PathMode
		expected string
	}{
		{"Absolute", PathModeAbsolute, "/home/user/project/Sources/Model.swift"},
		{"Relative", PathModeRelative, "Sources/Model.swift"},
		{"Basename", PathModeBasename, "Model.swift"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := JSON(&buf, bag, fs, JSONOpts{PathMode: tt.pathMode}); err != nil {
				t.Fatalf("JSON() error: %v", err)
			}
			if got := decode(t, &buf).Diagnostics[0].Location.File; got != tt.expected {
				t.Errorf("Expected file=%s, got %s", tt.expected, got)
			}
		})
	}
}

func TestJSONFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("Model.swift", []byte("@A @Codable\nstruct S {}"))

	bag := diag.NewBag(2)
	span := source.Span{File: fileID, Start: 2, End: 11}
	d := diag.New(diag.SevError, diag.SemaMacroMisuse, span, "misuse")
	d = d.WithFix("Remove `Codable`", diag.TextEdit{Span: span, NewText: "", OldText: " @Codable"})
	bag.Add(d)

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeFixes:     true,
		IncludePreviews:  true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	edit := decode(t, &buf).Diagnostics[0].Fixes[0].Edits[0]
	if len(edit.BeforeLines) != 1 || edit.BeforeLines[0] != "@A @Codable" {
		t.Errorf("Unexpected before lines: %q", edit.BeforeLines)
	}
	if len(edit.AfterLines) != 1 || edit.AfterLines[0] != "@A" {
		t.Errorf("Unexpected after lines: %q", edit.AfterLines)
	}
}

func TestFixesSortPreferredFirst(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("Model.swift", []byte("let x = y"))
	span := source.Span{File: fileID, Start: 0, End: 9}
	d := diag.New(diag.SevError, diag.SemaCannotInferType, span, "m").
		WithFixSuggestion(diag.Fix{Title: "b", Applicability: diag.FixApplicabilityManualReview}).
		WithFixSuggestion(diag.Fix{Title: "a", Applicability: diag.FixApplicabilityAlwaysSafe}).
		WithFixSuggestion(diag.Fix{Title: "c", Applicability: diag.FixApplicabilityManualReview, IsPreferred: true})
	bag := diag.NewBag(1)
	bag.Add(d)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludeFixes: true})
	var titles string
	for _, f := range out.Diagnostics[0].Fixes {
		titles += f.Title
	}
	if titles != "cab" {
		t.Fatalf("fix order = %q, want %q", titles, "cab")
	}
}
