package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"macroessentials/internal/lexer"
	"macroessentials/internal/source"
)

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("Model.swift", []byte("let x = 1 // one\n"))
	tokens := lexer.Tokenize(fs.Get(id), lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(tokens) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(tokens), len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "  1: let") || !strings.Contains(lines[0], "at 1:1-1:4") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], `"x"`) || !strings.Contains(lines[1], "(leading: space)") {
		t.Errorf("second line = %q", lines[1])
	}
	if last := lines[len(lines)-1]; !strings.Contains(last, "EOF") || !strings.Contains(last, "line-comment") {
		t.Errorf("last line = %q", last)
	}
}

func TestFormatTokensJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("Model.swift", []byte("var a"))
	tokens := lexer.Tokenize(fs.Get(id), lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, tokens); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 tokens, got %+v", out)
	}
	if out[0].Leading != nil {
		t.Errorf("first token has no trivia, got %v", out[0].Leading)
	}
	if out[1].Text != "a" || len(out[1].Leading) != 1 || out[1].Leading[0] != "space" {
		t.Errorf("second token = %+v", out[1])
	}
}
