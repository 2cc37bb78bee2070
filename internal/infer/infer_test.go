package infer

import (
	"errors"
	"testing"

	"macroessentials/internal/ast"
	"macroessentials/internal/diag"
	"macroessentials/internal/format"
	"macroessentials/internal/parser"
	"macroessentials/internal/source"
	"macroessentials/internal/types"
)

var (
	tInt    = types.Named("Int")
	tDouble = types.Named("Double")
	tString = types.Named("String")
	tBool   = types.Named("Bool")
	tUUID   = types.Named("UUID")
)

func inferExpr(t *testing.T, src string, opts ...Option) (types.Type, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("expr.swift", []byte(src))
	bag := diag.NewBag(0)
	b := ast.NewBuilder(ast.Hints{}, nil)
	expr, _ := parser.ParseExpr(fs.Get(id), b, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q", src)
	}
	return New(b, format.New(b, fs), opts...).Expr(expr)
}

func TestInferSuccess(t *testing.T) {
	tests := []struct {
		src  string
		want types.Type
	}{
		{"42", tInt},
		{"true", tBool},
		{"3.14", tDouble},
		{`"hi"`, tString},
		{`"a \(b) c"`, tString},
		{"-1", tInt},
		{"-1.5", tDouble},
		{"1 as? Double", types.Optional(tDouble)},
		{"x as! [Int]", types.Array(tInt)},
		{"x as Set<Int>", types.Named("Set<Int>")},
		{"foo() as Optional<Int>", types.Optional(tInt)},
		{"[1, 2, nil]", types.Array(types.Optional(tInt))},
		{"[nil, 1]", types.Array(types.Optional(tInt))},
		{"[[1], [2]]", types.Array(types.Array(tInt))},
		{"[1, x]", types.Array(tInt)},
		{`["a": 3, "b": nil]`, types.Dictionary(tString, types.Optional(tInt))},
		{`["a": nil, "b": 1.5]`, types.Dictionary(tString, types.Optional(tDouble))},
		{`[1: [true]]`, types.Dictionary(tInt, types.Array(tBool))},
		{`(1, "a")`, types.Tuple(tInt, tString)},
		{"(1)", types.Tuple(tInt)},
		{"([1])", types.Tuple(types.Array(tInt))},
		{"(x: 1, y: 2.0)", types.LabeledTuple(types.Field{Label: "x", Type: tInt}, types.Field{Label: "y", Type: tDouble})},
		{`{ (a: Int) -> String in "" }`, types.Function([]types.Field{{Label: "a", Type: tInt}}, false, false, tString)},
		{"{ (a: Int) async throws -> Int in a }", types.Function([]types.Field{{Label: "a", Type: tInt}}, false, false, tInt)},
		{"{ return 3 }", types.Function([]types.Field{}, false, false, tInt)},
		{"{ 3 }", types.Function([]types.Field{}, false, false, tInt)},
		{"{ try UUID() }", types.Function([]types.Field{}, false, true, tUUID)},
		{"{ try await UUID() }", types.Function([]types.Field{}, true, true, tUUID)},
		{"{ return await [1] }", types.Function([]types.Field{}, true, false, types.Array(tInt))},
		{"{ a, b in 1 }", types.Function([]types.Field{}, false, false, tInt)},
		{"{ (a: Int, b) in 1 }", types.Function([]types.Field{{Label: "a", Type: tInt}}, false, false, tInt)},
		{"UUID()", tUUID},
		{"UUID(uuidString: s)", tUUID},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := inferExpr(t, tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestInferFailure(t *testing.T) {
	tests := []struct {
		src  string
		kind ErrorKind
		name string
	}{
		{"[]", UnrecognizedPattern, ""},
		{"[nil, nil]", UnrecognizedPattern, ""},
		{"[:]", UnrecognizedPattern, ""},
		{`["a": nil]`, UnrecognizedPattern, ""},
		{"[x, 1]", UnresolvedReference, "x"},
		{`[x: 1]`, UnresolvedReference, "x"},
		{`["a": y]`, UnresolvedReference, "y"},
		{"(1, y)", UnresolvedReference, "y"},
		{"(y)", UnresolvedReference, "y"},
		{"nil", UnrecognizedPattern, ""},
		{"foo.bar", UnrecognizedPattern, ""},
		{"a + b", UnrecognizedPattern, ""},
		{"x is Int", UnrecognizedPattern, ""},
		{"!flag", UnrecognizedPattern, ""},
		{"foo", UnresolvedReference, "foo"},
		{"Date()", UnresolvedReference, "Date"},
		{"a.b()", UnresolvedReference, "a.b"},
		{"{ foo() }", ClosureBodyTooComplex, ""},
		{"{ let x = 1; return x }", ClosureBodyTooComplex, ""},
		{"{}", ClosureBodyTooComplex, ""},
		{"{ x in x }", ClosureBodyTooComplex, ""},
		{"{ return }", ClosureBodyTooComplex, ""},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := inferExpr(t, tt.src)
			if err == nil {
				t.Fatalf("want failure, got %s", got)
			}
			var ie *Error
			if !errors.As(err, &ie) {
				t.Fatalf("error %T is not *infer.Error", err)
			}
			if ie.Kind != tt.kind || ie.Name != tt.name {
				t.Fatalf("got %s(%q), want %s(%q)", ie.Kind, ie.Name, tt.kind, tt.name)
			}
			if got.IsValid() {
				t.Fatalf("failure must not carry a partial type, got %s", got)
			}
		})
	}
}

func TestConstructorAllowList(t *testing.T) {
	got, err := inferExpr(t, "Date()", WithConstructors("Date"))
	if err != nil || !got.Equal(types.Named("Date")) {
		t.Fatalf("got %s, %v", got, err)
	}
	_, err = inferExpr(t, "UUID()", WithConstructors("Date"))
	if !errors.Is(err, &Error{Kind: UnresolvedReference}) {
		t.Fatalf("UUID must leave the list once it is replaced, got %v", err)
	}
}

func TestIdentifiersKeepSourceSpelling(t *testing.T) {
	decomposed := "cafe\u0301"
	_, err := inferExpr(t, decomposed)
	var ie *Error
	if !errors.As(err, &ie) || ie.Kind != UnresolvedReference {
		t.Fatalf("want unresolvedReference, got %v", err)
	}
	if ie.Name != decomposed {
		t.Fatalf("Name = %q, want the source text %q", ie.Name, decomposed)
	}

	// the allow-list matches across normal forms but reports the source spelling
	got, err := inferExpr(t, decomposed+"()", WithConstructors("caf\u00e9"))
	if err != nil || got.String() != decomposed {
		t.Fatalf("got %s, %v; want %s", got, err, decomposed)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: UnrecognizedPattern}, "Unexpected pattern caused type inference failure"},
		{&Error{Kind: ClosureBodyTooComplex}, "Closure too complicated to infer type. Please annotate types explicitly"},
		{&Error{Kind: UnresolvedReference, Name: "x"}, "Type cannot be inferred from referring to `x`"},
		{&Error{Kind: MissingTypeAndInitializer}, "Cannot infer the type of a binding without type annotation or initializer"},
	}
	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInferBinding(t *testing.T) {
	tests := []struct {
		src     string
		want    types.Type
		wantErr ErrorKind
	}{
		{src: "let a: Int? = nil", want: types.Optional(tInt)},
		{src: "let a: Foo = foo()", want: types.Named("Foo")},
		{src: "var a = [1]", want: types.Array(tInt)},
		{src: "var a { 2 }", wantErr: MissingTypeAndInitializer},
		{src: "var a = b", wantErr: UnresolvedReference},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			fs := source.NewFileSet()
			id := fs.AddVirtual("test.swift", []byte(tt.src))
			bag := diag.NewBag(0)
			b := ast.NewBuilder(ast.Hints{}, nil)
			res := parser.ParseFile(fs.Get(id), b, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics for %q", tt.src)
			}
			v, _ := b.Items.Var(b.Files.Get(res.File).Items[0])
			last, _ := v.LastBinding()
			got, err := New(b, format.New(b, fs)).Binding(last)
			if tt.want.IsValid() {
				if err != nil || !got.Equal(tt.want) {
					t.Fatalf("got %s, %v; want %s", got, err, tt.want)
				}
				return
			}
			if !errors.Is(err, &Error{Kind: tt.wantErr}) {
				t.Fatalf("got %v, want %s", err, tt.wantErr)
			}
		})
	}
}
