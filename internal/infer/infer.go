package infer

import (
	"macroessentials/internal/ast"
	"macroessentials/internal/format"
	"macroessentials/internal/source"
	"macroessentials/internal/types"
)

// DefaultConstructors are callees whose call result is their own type
// without looking at the arguments.
var DefaultConstructors = []string{"UUID"}

// Inferencer derives types from the literal shape of expressions. It never
// resolves names: anything that depends on a declaration elsewhere fails.
type Inferencer struct {
	b            *ast.Builder
	pr           *format.Printer
	constructors map[string]struct{}
}

type Option func(*Inferencer)

// WithConstructors replaces the constructor allow-list.
func WithConstructors(names ...string) Option {
	return func(in *Inferencer) {
		in.constructors = make(map[string]struct{}, len(names))
		for _, n := range names {
			in.constructors[source.IdentKey(n)] = struct{}{}
		}
	}
}

func New(b *ast.Builder, pr *format.Printer, opts ...Option) *Inferencer {
	in := &Inferencer{b: b, pr: pr}
	WithConstructors(DefaultConstructors...)(in)
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Binding returns the annotated type of a binding, or infers it from the
// initializer. Failures are *Error.
func (in *Inferencer) Binding(id ast.BindingID) (types.Type, error) {
	bd := in.b.Items.Binding(id)
	if bd == nil {
		return types.Type{}, failure(UnrecognizedPattern)
	}
	if bd.Type.IsValid() {
		return types.FromSyntax(in.b, in.pr, bd.Type), nil
	}
	if bd.Init.IsValid() {
		return in.Expr(bd.Init)
	}
	return types.Type{}, failure(MissingTypeAndInitializer)
}

// Expr infers the type of an expression. The checks run in a fixed order and
// the first matching shape decides.
func (in *Inferencer) Expr(id ast.ExprID) (types.Type, error) {
	t, err := in.expr(id)
	if err != nil {
		return types.Type{}, err
	}
	return t, nil
}

func (in *Inferencer) expr(id ast.ExprID) (types.Type, *Error) {
	e := in.b.Exprs.Get(id)
	if e == nil {
		return types.Type{}, failure(UnrecognizedPattern)
	}
	if t, ok := literalType(e.Kind); ok {
		return t, nil
	}
	switch e.Kind {
	case ast.ExprPrefix:
		return in.signedLiteral(id)
	case ast.ExprSequence:
		return in.cast(id)
	case ast.ExprArray:
		return in.array(id)
	case ast.ExprDict:
		return in.dictionary(id)
	case ast.ExprTuple:
		return in.tuple(id)
	case ast.ExprParen:
		// `(x)` is a one-element tuple
		data, _ := in.b.Exprs.Unary(id)
		t, err := in.expr(data.Operand)
		if err != nil {
			return types.Type{}, err
		}
		return types.Tuple(t), nil
	case ast.ExprClosure:
		return in.closure(id)
	case ast.ExprIdent:
		data, _ := in.b.Exprs.Ident(id)
		if len(data.GenericArgs) > 0 {
			break
		}
		return types.Type{}, unresolved(in.b.Name(data.Name))
	case ast.ExprCall:
		return in.call(id)
	}
	return types.Type{}, failure(UnrecognizedPattern)
}

func literalType(k ast.ExprKind) (types.Type, bool) {
	switch k {
	case ast.ExprIntLit:
		return types.Named("Int"), true
	case ast.ExprBoolLit:
		return types.Named("Bool"), true
	case ast.ExprFloatLit:
		return types.Named("Double"), true
	case ast.ExprStringLit:
		return types.Named("String"), true
	}
	return types.Type{}, false
}

// signedLiteral handles `-1` and `+2.5`; any other prefix form is unsupported.
func (in *Inferencer) signedLiteral(id ast.ExprID) (types.Type, *Error) {
	data, _ := in.b.Exprs.Unary(id)
	if op := in.b.Name(data.Op); op == "-" || op == "+" {
		if operand := in.b.Exprs.Get(data.Operand); operand != nil &&
			(operand.Kind == ast.ExprIntLit || operand.Kind == ast.ExprFloatLit) {
			t, _ := literalType(operand.Kind)
			return t, nil
		}
	}
	return types.Type{}, failure(UnrecognizedPattern)
}

// cast recognises exactly `lhs as T`, `lhs as? T` and `lhs as! T`.
func (in *Inferencer) cast(id ast.ExprID) (types.Type, *Error) {
	seq, _ := in.b.Exprs.Sequence(id)
	if len(seq.Elems) != 3 {
		return types.Type{}, failure(UnrecognizedPattern)
	}
	op, ok := in.b.Exprs.Operator(seq.Elems[1])
	if !ok || in.b.Exprs.Get(seq.Elems[1]).Kind != ast.ExprAsOp {
		return types.Type{}, failure(UnrecognizedPattern)
	}
	ref, ok := in.b.Exprs.TypeRef(seq.Elems[2])
	if !ok {
		return types.Type{}, failure(UnrecognizedPattern)
	}
	target := types.FromSyntax(in.b, in.pr, ref.Type)
	if op.Mark == ast.CastOptional {
		return types.Optional(target), nil
	}
	return target, nil
}

func (in *Inferencer) isNil(id ast.ExprID) bool {
	e := in.b.Exprs.Get(id)
	return e != nil && e.Kind == ast.ExprNilLit
}

func (in *Inferencer) array(id ast.ExprID) (types.Type, *Error) {
	data, _ := in.b.Exprs.Array(id)
	first, hasNil := ast.NoExprID, false
	for _, el := range data.Elems {
		switch {
		case in.isNil(el):
			hasNil = true
		case !first.IsValid():
			first = el
		}
	}
	if !first.IsValid() {
		return types.Type{}, failure(UnrecognizedPattern)
	}
	elem, err := in.expr(first)
	if err != nil {
		return types.Type{}, err
	}
	if hasNil {
		elem = types.Optional(elem)
	}
	return types.Array(elem), nil
}

func (in *Inferencer) dictionary(id ast.ExprID) (types.Type, *Error) {
	data, _ := in.b.Exprs.Dict(id)
	first, hasNil := -1, false
	for i, entry := range data.Entries {
		switch {
		case in.isNil(entry.Value):
			hasNil = true
		case first < 0:
			first = i
		}
	}
	if first < 0 {
		return types.Type{}, failure(UnrecognizedPattern)
	}
	key, err := in.expr(data.Entries[first].Key)
	if err != nil {
		return types.Type{}, err
	}
	value, err := in.expr(data.Entries[first].Value)
	if err != nil {
		return types.Type{}, err
	}
	if hasNil {
		value = types.Optional(value)
	}
	return types.Dictionary(key, value), nil
}

func (in *Inferencer) tuple(id ast.ExprID) (types.Type, *Error) {
	data, _ := in.b.Exprs.Tuple(id)
	fields := make([]types.Field, 0, len(data.Elems))
	for _, el := range data.Elems {
		t, err := in.expr(el.Value)
		if err != nil {
			return types.Type{}, err
		}
		f := types.Field{Type: t}
		if el.Label != source.NoStringID {
			f.Label = in.b.Name(el.Label)
		}
		fields = append(fields, f)
	}
	return types.LabeledTuple(fields...), nil
}

func (in *Inferencer) closure(id ast.ExprID) (types.Type, *Error) {
	data, _ := in.b.Exprs.Closure(id)
	params := make([]types.Field, 0, len(data.Params))
	for _, p := range data.Params {
		if !p.Type.IsValid() {
			continue
		}
		params = append(params, types.Field{Label: in.b.Name(p.Name), Type: types.FromSyntax(in.b, in.pr, p.Type)})
	}
	if data.Return.IsValid() {
		return types.Function(params, false, false, types.FromSyntax(in.b, in.pr, data.Return)), nil
	}

	if len(data.Stmts) != 1 {
		return types.Type{}, failure(ClosureBodyTooComplex)
	}
	st := in.b.Stmts.Get(data.Stmts[0])
	if st == nil || (st.Kind != ast.StmtExpr && st.Kind != ast.StmtReturn) || !st.Expr.IsValid() {
		return types.Type{}, failure(ClosureBodyTooComplex)
	}
	body := st.Expr
	throws, async := false, false
	if e := in.b.Exprs.Get(body); e != nil && e.Kind == ast.ExprTry {
		u, _ := in.b.Exprs.Unary(body)
		throws, body = true, u.Operand
	}
	if e := in.b.Exprs.Get(body); e != nil && e.Kind == ast.ExprAwait {
		u, _ := in.b.Exprs.Unary(body)
		async, body = true, u.Operand
	}
	result, err := in.expr(body)
	if err != nil {
		return types.Type{}, failure(ClosureBodyTooComplex)
	}
	return types.Function(params, async, throws, result), nil
}

func (in *Inferencer) call(id ast.ExprID) (types.Type, *Error) {
	data, _ := in.b.Exprs.Call(id)
	if callee, ok := in.b.Exprs.Ident(data.Callee); ok && len(callee.GenericArgs) == 0 {
		name := in.b.Name(callee.Name)
		if _, known := in.constructors[source.IdentKey(name)]; known {
			return types.Named(name), nil
		}
	}
	return types.Type{}, unresolved(in.pr.Expr(data.Callee))
}
