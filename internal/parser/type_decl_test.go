package parser

import (
	"strings"
	"testing"

	"macroessentials/internal/ast"
	"macroessentials/internal/diag"
)

func TestParseTypeDecl(t *testing.T) {
	src := "@MacroA\npublic struct Point: Equatable, Hashable {\n    let x: Int\n    var y = 2.0\n    func f() -> Int { let z = { 1 }; return z() }\n}\n"
	p := parseClean(t, src)
	td := p.onlyType(t)
	if td.Kind != ast.TypeDeclStruct || p.b.Name(td.Name) != "Point" {
		t.Fatalf("got %s %q", td.Kind, p.b.Name(td.Name))
	}
	if len(td.Inherits) != 2 {
		t.Fatalf("inherits = %d, want 2", len(td.Inherits))
	}
	if len(p.b.Items.AttrsOf(td.Attrs)) != 1 || len(td.Modifiers) != 1 {
		t.Fatalf("header wrong: attrs=%d mods=%d", len(p.b.Items.AttrsOf(td.Attrs)), len(td.Modifiers))
	}
	wantKinds := []ast.ItemKind{ast.ItemVar, ast.ItemVar, ast.ItemFunc}
	if len(td.Members) != len(wantKinds) {
		t.Fatalf("members = %d, want %d", len(td.Members), len(wantKinds))
	}
	for i, m := range td.Members {
		if got := p.b.Items.Get(m).Kind; got != wantKinds[i] {
			t.Errorf("member %d = %s, want %s", i, got, wantKinds[i])
		}
	}
	fn, _ := p.b.Items.Func(td.Members[2])
	if got := p.text(fn.BodySpan); !strings.HasPrefix(got, "{ let z") || !strings.HasSuffix(got, "}") {
		t.Fatalf("body span = %q", got)
	}
	if got := p.text(td.BodySpan); !strings.HasPrefix(got, "{\n") || !strings.HasSuffix(got, "}") {
		t.Fatalf("type body span = %q", got)
	}
	if got := p.text(p.b.Items.Get(p.file.Items[0]).Span); got != strings.TrimSuffix(src, "\n") {
		t.Fatalf("decl span = %q", got)
	}
}

func TestParseTypeDeclKinds(t *testing.T) {
	tests := []struct {
		input string
		kind  ast.TypeDeclKind
		name  string
	}{
		{"class C: Base {}", ast.TypeDeclClass, "C"},
		{"final class C {}", ast.TypeDeclClass, "C"},
		{"enum E: String { case a }", ast.TypeDeclEnum, "E"},
		{"actor A {}", ast.TypeDeclActor, "A"},
		{"protocol P: AnyObject {}", ast.TypeDeclProtocol, "P"},
		{"extension Foo.Bar: P where T: Q {}", ast.TypeDeclExtension, "Foo.Bar"},
		{"struct Box<T: Equatable> {}", ast.TypeDeclStruct, "Box"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := parseClean(t, tt.input)
			td := p.onlyType(t)
			if td.Kind != tt.kind || p.b.Name(td.Name) != tt.name {
				t.Fatalf("got %s %q, want %s %q", td.Kind, p.b.Name(td.Name), tt.kind, tt.name)
			}
		})
	}

	p := parseClean(t, "extension Foo.Bar: P where T: Q {}")
	if got := p.text(p.onlyType(t).WhereSpan); got != "where T: Q" {
		t.Fatalf("where span = %q", got)
	}
	p = parseClean(t, "struct Box<T: Equatable> {}")
	if got := p.text(p.onlyType(t).GenericSpan); got != "<T: Equatable>" {
		t.Fatalf("generic span = %q", got)
	}
}

func TestParseEnumCases(t *testing.T) {
	p := parseClean(t, "enum E: String {\n  case a, b = \"x\"\n  case c(Int)\n  indirect case d(E)\n}")
	td := p.onlyType(t)
	if len(td.Members) != 3 {
		t.Fatalf("members = %d, want 3", len(td.Members))
	}
	first, ok := p.b.Items.EnumCase(td.Members[0])
	if !ok || len(first.Names) != 2 {
		t.Fatalf("first case wrong")
	}
	if p.b.Name(first.Names[1]) != "b" {
		t.Fatalf("second name = %q", p.b.Name(first.Names[1]))
	}
}

func TestParseProtocolRequirements(t *testing.T) {
	p := parseClean(t, "protocol P {\n  var x: Int { get set }\n  static var y: String { get }\n  func f()\n  associatedtype T\n}")
	td := p.onlyType(t)
	if len(td.Members) != 4 {
		t.Fatalf("members = %d, want 4", len(td.Members))
	}
	v, _ := p.b.Items.Var(td.Members[0])
	block := p.b.Items.AccessorBlock(p.b.Items.Binding(v.Bindings[0]).Accessors)
	if block == nil || len(block.Accessors) != 2 {
		t.Fatalf("want get/set accessors")
	}
	if !block.Accessors[0].BodySpan.Empty() {
		t.Fatalf("protocol accessor should have no body")
	}
}

func TestParseCompilerDirectives(t *testing.T) {
	p := parseClean(t, "struct S {\n#if DEBUG\n  var a = 1\n#elseif os(macOS)\n  var a = 3\n#else\n  var a = 2\n#endif\n}")
	if n := len(p.onlyType(t).Members); n != 3 {
		t.Fatalf("members = %d, want 3", n)
	}
}

func TestParseTopLevelStatements(t *testing.T) {
	p := parseClean(t, "import Foundation\nprint(\"hi\")\nlet x = 1\nif x > 0 {\n  print(x)\n}\n")
	want := []ast.ItemKind{ast.ItemImport, ast.ItemOther, ast.ItemVar, ast.ItemOther}
	if len(p.file.Items) != len(want) {
		t.Fatalf("items = %d, want %d", len(p.file.Items), len(want))
	}
	for i, id := range p.file.Items {
		if got := p.b.Items.Get(id).Kind; got != want[i] {
			t.Errorf("item %d = %s, want %s", i, got, want[i])
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{"struct {}", diag.SynExpectIdentifier},
		{"let = 1", diag.SynExpectPattern},
		{"var a = [1, 2", diag.SynUnclosedDelimiter},
		{"let x: = 1", diag.SynExpectType},
		{"let x = )", diag.SynExpectExpression},
		{"struct S { 1 }", diag.SynUnexpectedToken},
		{"struct S", diag.SynExpectBody},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := parseSource(t, tt.input)
			found := false
			for _, d := range p.bag.Items() {
				if d.Code == tt.code {
					found = true
				}
			}
			if !found {
				t.Fatalf("want %s, got %s", tt.code.ID(), diagnosticsSummary(p.bag))
			}
		})
	}
}

func TestParseRecoversAfterError(t *testing.T) {
	p := parseSource(t, "struct S {\n  var = 1\n  var ok = 2\n}")
	if p.bag.Len() == 0 {
		t.Fatalf("expected a diagnostic")
	}
	td := p.onlyType(t)
	if len(td.Members) != 1 {
		t.Fatalf("members = %d, want 1", len(td.Members))
	}
	v, _ := p.b.Items.Var(td.Members[0])
	if got := p.b.Name(p.b.Items.Binding(v.Bindings[0]).Pattern.Name); got != "ok" {
		t.Fatalf("recovered binding = %q", got)
	}
}
