package ast

import (
	"macroessentials/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Literals  *Arena[ExprLiteralData]
	Idents    *Arena[ExprIdentData]
	Members   *Arena[ExprMemberData]
	Calls     *Arena[ExprCallData]
	Arrays    *Arena[ExprArrayData]
	Dicts     *Arena[ExprDictData]
	Tuples    *Arena[ExprTupleData]
	Closures  *Arena[ExprClosureData]
	Sequences *Arena[ExprSequenceData]
	Operators *Arena[ExprOperatorData]
	Unaries   *Arena[ExprUnaryData]
	TypeRefs  *Arena[ExprTypeRefData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 7
	}
	small := capHint/4 + 1
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Literals:  NewArena[ExprLiteralData](capHint),
		Idents:    NewArena[ExprIdentData](capHint),
		Members:   NewArena[ExprMemberData](small),
		Calls:     NewArena[ExprCallData](small),
		Arrays:    NewArena[ExprArrayData](small),
		Dicts:     NewArena[ExprDictData](small),
		Tuples:    NewArena[ExprTupleData](small),
		Closures:  NewArena[ExprClosureData](small),
		Sequences: NewArena[ExprSequenceData](small),
		Operators: NewArena[ExprOperatorData](small),
		Unaries:   NewArena[ExprUnaryData](small),
		TypeRefs:  NewArena[ExprTypeRefData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payloadOf(id ExprID, kinds ...ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil {
		return 0, false
	}
	for _, k := range kinds {
		if expr.Kind == k {
			return uint32(expr.Payload), true
		}
	}
	return 0, false
}

// NewLiteral creates a literal of the given kind; raw is the source spelling.
func (e *Exprs) NewLiteral(kind ExprKind, span source.Span, raw source.StringID, interpolated bool) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Raw: raw, Interpolated: interpolated})
	return e.new(kind, span, PayloadID(payload))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	p, ok := e.payloadOf(id, ExprIntLit, ExprFloatLit, ExprBoolLit, ExprStringLit, ExprNilLit)
	if !ok {
		return nil, false
	}
	return e.Literals.Get(p), true
}

func (e *Exprs) NewIdent(span source.Span, name source.StringID, generics []TypeID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name, GenericArgs: generics})
	return e.new(ExprIdent, span, PayloadID(payload))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payloadOf(id, ExprIdent)
	if !ok {
		return nil, false
	}
	return e.Idents.Get(p), true
}

func (e *Exprs) NewMember(span source.Span, base ExprID, name source.StringID, nameSpan source.Span) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Base: base, Name: name, NameSpan: nameSpan})
	return e.new(ExprMember, span, PayloadID(payload))
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	p, ok := e.payloadOf(id, ExprMember)
	if !ok {
		return nil, false
	}
	return e.Members.Get(p), true
}

// NewCall creates a call (ExprCall) or a subscript (ExprSubscript).
func (e *Exprs) NewCall(kind ExprKind, span source.Span, callee ExprID, args []CallArg, trailing []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Callee: callee, Args: args, Trailing: trailing})
	return e.new(kind, span, PayloadID(payload))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payloadOf(id, ExprCall, ExprSubscript)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewArray(span source.Span, elems []ExprID) ExprID {
	payload := e.Arrays.Allocate(ExprArrayData{Elems: elems})
	return e.new(ExprArray, span, PayloadID(payload))
}

func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) {
	p, ok := e.payloadOf(id, ExprArray)
	if !ok {
		return nil, false
	}
	return e.Arrays.Get(p), true
}

func (e *Exprs) NewDict(span source.Span, entries []DictEntry) ExprID {
	payload := e.Dicts.Allocate(ExprDictData{Entries: entries})
	return e.new(ExprDict, span, PayloadID(payload))
}

func (e *Exprs) Dict(id ExprID) (*ExprDictData, bool) {
	p, ok := e.payloadOf(id, ExprDict)
	if !ok {
		return nil, false
	}
	return e.Dicts.Get(p), true
}

func (e *Exprs) NewTuple(span source.Span, elems []TupleElem) ExprID {
	payload := e.Tuples.Allocate(ExprTupleData{Elems: elems})
	return e.new(ExprTuple, span, PayloadID(payload))
}

func (e *Exprs) Tuple(id ExprID) (*ExprTupleData, bool) {
	p, ok := e.payloadOf(id, ExprTuple)
	if !ok {
		return nil, false
	}
	return e.Tuples.Get(p), true
}

func (e *Exprs) NewClosure(span source.Span, data ExprClosureData) ExprID {
	payload := e.Closures.Allocate(data)
	return e.new(ExprClosure, span, PayloadID(payload))
}

func (e *Exprs) Closure(id ExprID) (*ExprClosureData, bool) {
	p, ok := e.payloadOf(id, ExprClosure)
	if !ok {
		return nil, false
	}
	return e.Closures.Get(p), true
}

func (e *Exprs) NewSequence(span source.Span, elems []ExprID) ExprID {
	payload := e.Sequences.Allocate(ExprSequenceData{Elems: elems})
	return e.new(ExprSequence, span, PayloadID(payload))
}

func (e *Exprs) Sequence(id ExprID) (*ExprSequenceData, bool) {
	p, ok := e.payloadOf(id, ExprSequence)
	if !ok {
		return nil, false
	}
	return e.Sequences.Get(p), true
}

// NewOperator creates an operator element (binary, assign, as, is, ternary).
func (e *Exprs) NewOperator(kind ExprKind, span source.Span, data ExprOperatorData) ExprID {
	payload := e.Operators.Allocate(data)
	return e.new(kind, span, PayloadID(payload))
}

func (e *Exprs) Operator(id ExprID) (*ExprOperatorData, bool) {
	p, ok := e.payloadOf(id, ExprBinaryOp, ExprAssignOp, ExprAsOp, ExprIsOp, ExprTernaryOp)
	if !ok {
		return nil, false
	}
	return e.Operators.Get(p), true
}

// NewUnary creates prefix/postfix/try/await/paren nodes.
func (e *Exprs) NewUnary(kind ExprKind, span source.Span, data ExprUnaryData) ExprID {
	payload := e.Unaries.Allocate(data)
	return e.new(kind, span, PayloadID(payload))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payloadOf(id, ExprPrefix, ExprPostfix, ExprTry, ExprAwait, ExprParen)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

func (e *Exprs) NewTypeRef(span source.Span, typ TypeID) ExprID {
	payload := e.TypeRefs.Allocate(ExprTypeRefData{Type: typ})
	return e.new(ExprTypeRef, span, PayloadID(payload))
}

func (e *Exprs) TypeRef(id ExprID) (*ExprTypeRefData, bool) {
	p, ok := e.payloadOf(id, ExprTypeRef)
	if !ok {
		return nil, false
	}
	return e.TypeRefs.Get(p), true
}

func (e *Exprs) NewOpaque(span source.Span) ExprID {
	return e.new(ExprOpaque, span, NoPayloadID)
}
