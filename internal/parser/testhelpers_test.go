package parser

import (
	"fmt"
	"strings"
	"testing"

	"macroessentials/internal/ast"
	"macroessentials/internal/diag"
	"macroessentials/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

type parsed struct {
	b      *ast.Builder
	fileID ast.FileID
	fs     *source.FileSet
	file   *ast.File
	bag    *diag.Bag
}

func parseSource(t *testing.T, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.swift", []byte(src))
	bag := diag.NewBag(0)
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(fs.Get(id), b, Options{Reporter: diag.BagReporter{Bag: bag}})
	return parsed{b: b, fileID: res.File, fs: fs, file: b.Files.Get(res.File), bag: bag}
}

// parseClean parses src and fails the test on any diagnostic.
func parseClean(t *testing.T, src string) parsed {
	t.Helper()
	p := parseSource(t, src)
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", src, diagnosticsSummary(p.bag))
	}
	return p
}

func parseExprSource(t *testing.T, src string) (parsed, ast.ExprID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("expr.swift", []byte(src))
	bag := diag.NewBag(0)
	b := ast.NewBuilder(ast.Hints{}, nil)
	expr, res := ParseExpr(fs.Get(id), b, Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", src, diagnosticsSummary(bag))
	}
	return parsed{b: b, fs: fs, file: b.Files.Get(res.File), bag: bag}, expr
}

func (p parsed) text(sp source.Span) string {
	return p.fs.Text(sp)
}

// onlyVar returns the single top-level variable declaration.
func (p parsed) onlyVar(t *testing.T) *ast.VarDecl {
	t.Helper()
	if len(p.file.Items) != 1 {
		t.Fatalf("want 1 item, got %d", len(p.file.Items))
	}
	v, ok := p.b.Items.Var(p.file.Items[0])
	if !ok {
		t.Fatalf("item is %s, not a variable", p.b.Items.Get(p.file.Items[0]).Kind)
	}
	return v
}

func (p parsed) onlyType(t *testing.T) *ast.TypeDecl {
	t.Helper()
	if len(p.file.Items) != 1 {
		t.Fatalf("want 1 item, got %d", len(p.file.Items))
	}
	td, ok := p.b.Items.TypeDecl(p.file.Items[0])
	if !ok {
		t.Fatalf("item is %s, not a type", p.b.Items.Get(p.file.Items[0]).Kind)
	}
	return td
}
