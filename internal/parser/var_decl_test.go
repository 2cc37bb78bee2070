package parser

import (
	"testing"

	"macroessentials/internal/ast"
)

func TestParseVarDecl(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantSpec     ast.Specifier
		wantBindings int
		wantBlock    bool
		blockKind    ast.AccessorBlockKind
		accessors    []ast.AccessorKind
	}{
		{name: "stored constant", input: "let a = 2", wantSpec: ast.SpecLet, wantBindings: 1},
		{name: "observer", input: "var a = 2 { didSet {} }", wantSpec: ast.SpecVar, wantBindings: 1,
			wantBlock: true, blockKind: ast.AccessorList, accessors: []ast.AccessorKind{ast.AccessorDidSet}},
		{name: "two observers", input: "var a = 2 { didSet {} willSet {} }", wantSpec: ast.SpecVar, wantBindings: 1,
			wantBlock: true, blockKind: ast.AccessorList, accessors: []ast.AccessorKind{ast.AccessorDidSet, ast.AccessorWillSet}},
		{name: "implicit getter", input: "var a { 2 }", wantSpec: ast.SpecVar, wantBindings: 1,
			wantBlock: true, blockKind: ast.AccessorImplicitGetter},
		{name: "explicit getter", input: "var a { get { 2 } }", wantSpec: ast.SpecVar, wantBindings: 1,
			wantBlock: true, blockKind: ast.AccessorList, accessors: []ast.AccessorKind{ast.AccessorGet}},
		{name: "getter and setter", input: "var a: Int {\n  get { 2 }\n  set(v) { }\n}", wantSpec: ast.SpecVar, wantBindings: 1,
			wantBlock: true, blockKind: ast.AccessorList, accessors: []ast.AccessorKind{ast.AccessorGet, ast.AccessorSet}},
		{name: "mutating getter", input: "var a: Int { mutating get { 2 } }", wantSpec: ast.SpecVar, wantBindings: 1,
			wantBlock: true, blockKind: ast.AccessorList, accessors: []ast.AccessorKind{ast.AccessorGet}},
		{name: "multiple bindings", input: "var a, b: Int", wantSpec: ast.SpecVar, wantBindings: 2},
		{name: "some type with body", input: "var body: some View { Text(\"\") }", wantSpec: ast.SpecVar, wantBindings: 1,
			wantBlock: true, blockKind: ast.AccessorImplicitGetter},
		{name: "trailing closure initializer", input: "let sorted = items.sorted { $0 < $1 }", wantSpec: ast.SpecLet, wantBindings: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseClean(t, tt.input)
			v := p.onlyVar(t)
			if v.Specifier != tt.wantSpec {
				t.Fatalf("specifier = %s, want %s", v.Specifier, tt.wantSpec)
			}
			if len(v.Bindings) != tt.wantBindings {
				t.Fatalf("bindings = %d, want %d", len(v.Bindings), tt.wantBindings)
			}
			last := p.b.Items.Binding(v.Bindings[len(v.Bindings)-1])
			if last.Accessors.IsValid() != tt.wantBlock {
				t.Fatalf("accessor block present = %v, want %v", last.Accessors.IsValid(), tt.wantBlock)
			}
			if !tt.wantBlock {
				return
			}
			block := p.b.Items.AccessorBlock(last.Accessors)
			if block.Kind != tt.blockKind {
				t.Fatalf("block kind = %d, want %d", block.Kind, tt.blockKind)
			}
			if len(block.Accessors) != len(tt.accessors) {
				t.Fatalf("accessors = %d, want %d", len(block.Accessors), len(tt.accessors))
			}
			for i, acc := range block.Accessors {
				if acc.Kind != tt.accessors[i] {
					t.Errorf("accessor %d = %d, want %d", i, acc.Kind, tt.accessors[i])
				}
			}
		})
	}
}

func TestParseBindingParts(t *testing.T) {
	p := parseClean(t, "var a: [String: Int] = [:], (x, y) = (1, 2), _ = f()")
	v := p.onlyVar(t)
	if len(v.Bindings) != 3 {
		t.Fatalf("bindings = %d, want 3", len(v.Bindings))
	}
	first := p.b.Items.Binding(v.Bindings[0])
	if first.Pattern.Kind != ast.PatternIdent || p.b.Name(first.Pattern.Name) != "a" {
		t.Fatalf("first pattern wrong: %+v", first.Pattern)
	}
	if got := p.text(p.b.Types.Get(first.Type).Span); got != "[String: Int]" {
		t.Fatalf("type text = %q", got)
	}
	if p.b.Exprs.Get(first.Init).Kind != ast.ExprDict {
		t.Fatalf("initializer kind = %s", p.b.Exprs.Get(first.Init).Kind)
	}
	if got := p.text(first.Span); got != "a: [String: Int] = [:]" {
		t.Fatalf("binding span text = %q", got)
	}
	if k := p.b.Items.Binding(v.Bindings[1]).Pattern.Kind; k != ast.PatternTuple {
		t.Fatalf("second pattern = %d, want tuple", k)
	}
	if k := p.b.Items.Binding(v.Bindings[2]).Pattern.Kind; k != ast.PatternWildcard {
		t.Fatalf("third pattern = %d, want wildcard", k)
	}
}

func TestParseModifiers(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{input: "static var shared = Foo()", want: []string{"static"}},
		{input: "private(set) var count = 0", want: []string{"private"}},
		{input: "class var name: String { \"x\" }", want: []string{"class"}},
		{input: "public static let id = UUID()", want: []string{"public", "static"}},
		{input: "lazy var cache = [String: Int]()", want: []string{"lazy"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := parseClean(t, tt.input)
			v := p.onlyVar(t)
			if len(v.Modifiers) != len(tt.want) {
				t.Fatalf("modifiers = %d, want %d", len(v.Modifiers), len(tt.want))
			}
			for i, m := range v.Modifiers {
				if got := p.b.Name(m.Name); got != tt.want[i] {
					t.Errorf("modifier %d = %q, want %q", i, got, tt.want[i])
				}
			}
		})
	}

	p := parseClean(t, "private(set) var count = 0")
	if d := p.b.Name(p.onlyVar(t).Modifiers[0].Detail); d != "set" {
		t.Fatalf("detail = %q, want set", d)
	}
}

func TestParseAttributesTrailing(t *testing.T) {
	p := parseClean(t, "@A @B(x: 1)\nvar v = 1")
	v := p.onlyVar(t)
	list := p.b.Items.AttrList(v.Attrs)
	if list == nil || len(list.Attrs) != 2 {
		t.Fatalf("want 2 attributes")
	}
	if got := p.text(list.Span); got != "@A @B(x: 1)\n" {
		t.Fatalf("list text = %q", got)
	}
	a := p.b.Items.Attr(list.Attrs[0])
	b := p.b.Items.Attr(list.Attrs[1])
	if a.Trailing != " " || b.Trailing != "\n" {
		t.Fatalf("trailing = %q, %q", a.Trailing, b.Trailing)
	}
	if a.HasArgs() || !b.HasArgs() {
		t.Fatalf("HasArgs wrong")
	}
	if got := p.b.Name(b.Name); got != "B" {
		t.Fatalf("name = %q", got)
	}
	if got := p.text(b.Span); got != "@B(x: 1)" {
		t.Fatalf("attr text = %q", got)
	}
}
