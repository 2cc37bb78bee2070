package ast

import (
	"macroessentials/internal/source"
)

type TypeExprKind uint8

const (
	// TypeIdent is `Name`, `Name<Args>` or `Base.Name<Args>`.
	TypeIdent TypeExprKind = iota
	TypeOptional
	// TypeIUO is an implicitly unwrapped optional `T!`.
	TypeIUO
	TypeArray
	TypeDict
	TypeTuple
	TypeFunc
	// TypeSome and TypeAny are `some P` / `any P`.
	TypeSome
	TypeAny
	// TypeComposition is `A & B`.
	TypeComposition
	// TypeAttributed is `@escaping T`, `inout T`, `@Sendable T`...
	TypeAttributed
	// TypePlaceholder is an editor placeholder `<#name#>`.
	TypePlaceholder
)

type TypeExpr struct {
	Kind      TypeExprKind
	Span      source.Span
	Payload   PayloadID
	Synthetic bool
}

type TypeIdentData struct {
	Base TypeID // для `Foo.Bar`; NoTypeID иначе
	Name source.StringID
	Args []TypeID
}

// TypeWrapData is the payload of optional, IUO, array, some and any.
type TypeWrapData struct {
	Elem TypeID
}

type TypeDictData struct {
	Key   TypeID
	Value TypeID
}

type TupleTypeElem struct {
	Label source.StringID
	Type  TypeID
}

type TypeTupleData struct {
	Elems []TupleTypeElem
}

type TypeFuncData struct {
	Params  []TupleTypeElem
	IsAsync bool
	Throws  bool
	Result  TypeID
}

type TypeListData struct {
	Elems []TypeID
}

type TypeAttributedData struct {
	Specifiers []source.StringID // "inout", "@escaping", "@Sendable"
	Base       TypeID
}

type TypePlaceholderData struct {
	Name source.StringID
}

type TypeExprs struct {
	Arena        *Arena[TypeExpr]
	Idents       *Arena[TypeIdentData]
	Wraps        *Arena[TypeWrapData]
	Dicts        *Arena[TypeDictData]
	Tuples       *Arena[TypeTupleData]
	Funcs        *Arena[TypeFuncData]
	Lists        *Arena[TypeListData]
	Attributed   *Arena[TypeAttributedData]
	Placeholders *Arena[TypePlaceholderData]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	if capHint == 0 {
		capHint = 1 << 6
	}
	small := capHint/4 + 1
	return &TypeExprs{
		Arena:        NewArena[TypeExpr](capHint),
		Idents:       NewArena[TypeIdentData](capHint),
		Wraps:        NewArena[TypeWrapData](small),
		Dicts:        NewArena[TypeDictData](small),
		Tuples:       NewArena[TypeTupleData](small),
		Funcs:        NewArena[TypeFuncData](small),
		Lists:        NewArena[TypeListData](small),
		Attributed:   NewArena[TypeAttributedData](small),
		Placeholders: NewArena[TypePlaceholderData](small),
	}
}

func (t *TypeExprs) new(kind TypeExprKind, span source.Span, payload uint32) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (t *TypeExprs) Get(id TypeID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}

func (t *TypeExprs) payloadOf(id TypeID, kinds ...TypeExprKind) (uint32, bool) {
	te := t.Get(id)
	if te == nil {
		return 0, false
	}
	for _, k := range kinds {
		if te.Kind == k {
			return uint32(te.Payload), true
		}
	}
	return 0, false
}

func (t *TypeExprs) NewIdent(span source.Span, base TypeID, name source.StringID, args []TypeID) TypeID {
	return t.new(TypeIdent, span, t.Idents.Allocate(TypeIdentData{Base: base, Name: name, Args: args}))
}

func (t *TypeExprs) Ident(id TypeID) (*TypeIdentData, bool) {
	p, ok := t.payloadOf(id, TypeIdent)
	if !ok {
		return nil, false
	}
	return t.Idents.Get(p), true
}

// NewWrap creates optional, IUO, array, some and any types.
func (t *TypeExprs) NewWrap(kind TypeExprKind, span source.Span, elem TypeID) TypeID {
	return t.new(kind, span, t.Wraps.Allocate(TypeWrapData{Elem: elem}))
}

func (t *TypeExprs) Wrap(id TypeID) (*TypeWrapData, bool) {
	p, ok := t.payloadOf(id, TypeOptional, TypeIUO, TypeArray, TypeSome, TypeAny)
	if !ok {
		return nil, false
	}
	return t.Wraps.Get(p), true
}

func (t *TypeExprs) NewDict(span source.Span, key, value TypeID) TypeID {
	return t.new(TypeDict, span, t.Dicts.Allocate(TypeDictData{Key: key, Value: value}))
}

func (t *TypeExprs) Dict(id TypeID) (*TypeDictData, bool) {
	p, ok := t.payloadOf(id, TypeDict)
	if !ok {
		return nil, false
	}
	return t.Dicts.Get(p), true
}

func (t *TypeExprs) NewTuple(span source.Span, elems []TupleTypeElem) TypeID {
	return t.new(TypeTuple, span, t.Tuples.Allocate(TypeTupleData{Elems: elems}))
}

func (t *TypeExprs) Tuple(id TypeID) (*TypeTupleData, bool) {
	p, ok := t.payloadOf(id, TypeTuple)
	if !ok {
		return nil, false
	}
	return t.Tuples.Get(p), true
}

func (t *TypeExprs) NewFunc(span source.Span, data TypeFuncData) TypeID {
	return t.new(TypeFunc, span, t.Funcs.Allocate(data))
}

func (t *TypeExprs) Func(id TypeID) (*TypeFuncData, bool) {
	p, ok := t.payloadOf(id, TypeFunc)
	if !ok {
		return nil, false
	}
	return t.Funcs.Get(p), true
}

func (t *TypeExprs) NewComposition(span source.Span, elems []TypeID) TypeID {
	return t.new(TypeComposition, span, t.Lists.Allocate(TypeListData{Elems: elems}))
}

func (t *TypeExprs) Composition(id TypeID) (*TypeListData, bool) {
	p, ok := t.payloadOf(id, TypeComposition)
	if !ok {
		return nil, false
	}
	return t.Lists.Get(p), true
}

func (t *TypeExprs) NewAttributed(span source.Span, specifiers []source.StringID, base TypeID) TypeID {
	return t.new(TypeAttributed, span, t.Attributed.Allocate(TypeAttributedData{Specifiers: specifiers, Base: base}))
}

func (t *TypeExprs) AttributedType(id TypeID) (*TypeAttributedData, bool) {
	p, ok := t.payloadOf(id, TypeAttributed)
	if !ok {
		return nil, false
	}
	return t.Attributed.Get(p), true
}

func (t *TypeExprs) NewPlaceholder(span source.Span, name source.StringID) TypeID {
	return t.new(TypePlaceholder, span, t.Placeholders.Allocate(TypePlaceholderData{Name: name}))
}

func (t *TypeExprs) Placeholder(id TypeID) (*TypePlaceholderData, bool) {
	p, ok := t.payloadOf(id, TypePlaceholder)
	if !ok {
		return nil, false
	}
	return t.Placeholders.Get(p), true
}

// Synthesize marks a freshly built type as not backed by source text.
func (t *TypeExprs) Synthesize(id TypeID) TypeID {
	if te := t.Get(id); te != nil {
		te.Synthetic = true
	}
	return id
}
