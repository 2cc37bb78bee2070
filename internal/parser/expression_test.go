package parser

import (
	"testing"

	"macroessentials/internal/ast"
)

func TestParseExprKinds(t *testing.T) {
	tests := []struct {
		input string
		want  ast.ExprKind
	}{
		{"42", ast.ExprIntLit},
		{"0x1F", ast.ExprIntLit},
		{"4.2", ast.ExprFloatLit},
		{`"s"`, ast.ExprStringLit},
		{`"a \(b) c"`, ast.ExprStringLit},
		{"true", ast.ExprBoolLit},
		{"nil", ast.ExprNilLit},
		{"x", ast.ExprIdent},
		{"x as? Int", ast.ExprSequence},
		{"[1, nil]", ast.ExprArray},
		{"[]", ast.ExprArray},
		{`["a": 1]`, ast.ExprDict},
		{"[:]", ast.ExprDict},
		{`(1, "a")`, ast.ExprTuple},
		{"()", ast.ExprTuple},
		{"(1)", ast.ExprParen},
		{"{ (a: Int) -> Int in a }", ast.ExprClosure},
		{"UUID()", ast.ExprCall},
		{"foo.bar", ast.ExprMember},
		{".red", ast.ExprMember},
		{"-1", ast.ExprPrefix},
		{"x!", ast.ExprPostfix},
		{"try await f()", ast.ExprTry},
		{"await f()", ast.ExprAwait},
		{"a + b * c", ast.ExprSequence},
		{"x ? 1 : 2", ast.ExprSequence},
		{"Set<Int>()", ast.ExprCall},
		{"items.map { $0 * 2 }", ast.ExprCall},
		{"values[0]", ast.ExprSubscript},
		{`\Foo.bar`, ast.ExprOpaque},
		{"#line", ast.ExprOpaque},
		{"if a { 1 } else { 2 }", ast.ExprOpaque},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, id := parseExprSource(t, tt.input)
			if got := p.b.Exprs.Get(id).Kind; got != tt.want {
				t.Fatalf("kind = %s, want %s", got, tt.want)
			}
			if got := p.text(p.b.Exprs.Get(id).Span); got != tt.input {
				t.Fatalf("span text = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestParseCastSequence(t *testing.T) {
	tests := []struct {
		input string
		mark  ast.CastMark
	}{
		{"x as Int", ast.CastPlain},
		{"x as? Int", ast.CastOptional},
		{"x as! Int", ast.CastForced},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, id := parseExprSource(t, tt.input)
			seq, ok := p.b.Exprs.Sequence(id)
			if !ok || len(seq.Elems) != 3 {
				t.Fatalf("want 3-element sequence")
			}
			if p.b.Exprs.Get(seq.Elems[1]).Kind != ast.ExprAsOp {
				t.Fatalf("middle element is %s", p.b.Exprs.Get(seq.Elems[1]).Kind)
			}
			op, _ := p.b.Exprs.Operator(seq.Elems[1])
			if op.Mark != tt.mark {
				t.Fatalf("mark = %d, want %d", op.Mark, tt.mark)
			}
			ref, ok := p.b.Exprs.TypeRef(seq.Elems[2])
			if !ok {
				t.Fatalf("last element is not a type")
			}
			if got := p.text(p.b.Types.Get(ref.Type).Span); got != "Int" {
				t.Fatalf("type = %q", got)
			}
		})
	}
}

func TestParseCallShapes(t *testing.T) {
	p, id := parseExprSource(t, `make(name: "a", 2) { $0 } onError: { _ in }`)
	call, ok := p.b.Exprs.Call(id)
	if !ok {
		t.Fatalf("not a call")
	}
	if len(call.Args) != 2 || len(call.Trailing) != 2 {
		t.Fatalf("args = %d, trailing = %d", len(call.Args), len(call.Trailing))
	}
	if got := p.b.Name(call.Args[0].Label); got != "name" {
		t.Fatalf("label = %q", got)
	}

	p, id = parseExprSource(t, "Set<Int>()")
	call, _ = p.b.Exprs.Call(id)
	ident, ok := p.b.Exprs.Ident(call.Callee)
	if !ok || len(ident.GenericArgs) != 1 {
		t.Fatalf("callee should carry one generic argument")
	}

	p, id = parseExprSource(t, "a < b")
	if p.b.Exprs.Get(id).Kind != ast.ExprSequence {
		t.Fatalf("comparison parsed as %s", p.b.Exprs.Get(id).Kind)
	}
}

func TestParseClosures(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		signature bool
		params    int
		typed     int
		isAsync   bool
		throws    bool
		hasReturn bool
		stmts     []ast.StmtKind
	}{
		{name: "shorthand params", input: "{ a, b in a }", signature: true, params: 2, stmts: []ast.StmtKind{ast.StmtExpr}},
		{name: "full signature", input: `{ [weak self] (x: Int) async throws -> String in "" }`,
			signature: true, params: 1, typed: 1, isAsync: true, throws: true, hasReturn: true, stmts: []ast.StmtKind{ast.StmtExpr}},
		{name: "no signature", input: "{ 1 }", stmts: []ast.StmtKind{ast.StmtExpr}},
		{name: "return", input: "{ return 1 }", stmts: []ast.StmtKind{ast.StmtReturn}},
		{name: "two statements", input: "{ let x = 1; return x }", stmts: []ast.StmtKind{ast.StmtDecl, ast.StmtReturn}},
		{name: "control flow", input: "{ if a { return 1 }\n return 2 }", stmts: []ast.StmtKind{ast.StmtOther, ast.StmtReturn}},
		{name: "empty", input: "{ }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, id := parseExprSource(t, tt.input)
			c, ok := p.b.Exprs.Closure(id)
			if !ok {
				t.Fatalf("not a closure: %s", p.b.Exprs.Get(id).Kind)
			}
			if c.HasSignature != tt.signature || len(c.Params) != tt.params {
				t.Fatalf("signature = %v params = %d", c.HasSignature, len(c.Params))
			}
			typed := 0
			for _, prm := range c.Params {
				if prm.Type.IsValid() {
					typed++
				}
			}
			if typed != tt.typed {
				t.Fatalf("typed params = %d, want %d", typed, tt.typed)
			}
			if c.IsAsync != tt.isAsync || c.Throws != tt.throws || c.Return.IsValid() != tt.hasReturn {
				t.Fatalf("effects async=%v throws=%v return=%v", c.IsAsync, c.Throws, c.Return.IsValid())
			}
			if len(c.Stmts) != len(tt.stmts) {
				t.Fatalf("stmts = %d, want %d", len(c.Stmts), len(tt.stmts))
			}
			for i, s := range c.Stmts {
				if got := p.b.Stmts.Get(s).Kind; got != tt.stmts[i] {
					t.Errorf("stmt %d = %s, want %s", i, got, tt.stmts[i])
				}
			}
		})
	}
}

func TestParseTypes(t *testing.T) {
	tests := []struct {
		input string
		want  ast.TypeExprKind
	}{
		{"Int", ast.TypeIdent},
		{"Swift.Int", ast.TypeIdent},
		{"Int?", ast.TypeOptional},
		{"Int!", ast.TypeIUO},
		{"[Int]", ast.TypeArray},
		{"[String: Int]", ast.TypeDict},
		{"(Int, label: String)", ast.TypeTuple},
		{"(Int) async throws -> Bool", ast.TypeFunc},
		{"some View", ast.TypeSome},
		{"any Error", ast.TypeAny},
		{"A & B", ast.TypeComposition},
		{"@escaping () -> Void", ast.TypeAttributed},
		{"<#type#>", ast.TypePlaceholder},
		{"Dictionary<String, [Int]>", ast.TypeIdent},
		{"(Int)", ast.TypeIdent},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := parseClean(t, "let x: "+tt.input)
			v := p.onlyVar(t)
			typ := p.b.Items.Binding(v.Bindings[0]).Type
			if got := p.b.Types.Get(typ).Kind; got != tt.want {
				t.Fatalf("kind = %d, want %d", got, tt.want)
			}
		})
	}
}
