package ast

import (
	"macroessentials/internal/source"
)

type Specifier uint8

const (
	SpecLet Specifier = iota
	SpecVar
)

func (s Specifier) String() string {
	if s == SpecVar {
		return "var"
	}
	return "let"
}

// VarDecl is `[attrs] [modifiers] let|var binding, binding...`.
type VarDecl struct {
	DeclHeader
	Specifier   Specifier
	KeywordSpan source.Span
	Bindings    []BindingID
}

type PatternKind uint8

const (
	PatternIdent PatternKind = iota
	PatternTuple
	PatternWildcard
)

type Pattern struct {
	Kind PatternKind
	Name source.StringID // только для PatternIdent
	Span source.Span
}

// Binding is one `pattern [: Type] [= init] [{ accessors }]` of a declaration.
type Binding struct {
	Pattern   Pattern
	Type      TypeID
	Init      ExprID
	Accessors AccessorBlockID
	Span      source.Span
	Synthetic bool
}

type AccessorBlockKind uint8

const (
	// AccessorList is `{ get {...} set {...} }` or `{ willSet {...} didSet {...} }`.
	AccessorList AccessorBlockKind = iota
	// AccessorImplicitGetter is `{ expr }`: a getter body without the `get` keyword.
	AccessorImplicitGetter
)

type AccessorKind uint8

const (
	AccessorGet AccessorKind = iota
	AccessorSet
	AccessorWillSet
	AccessorDidSet
	AccessorRead
	AccessorModify
	AccessorInit
	AccessorUnsafeAddress
	AccessorUnsafeMutableAddress
)

var accessorWords = map[string]AccessorKind{
	"get":                  AccessorGet,
	"set":                  AccessorSet,
	"willSet":              AccessorWillSet,
	"didSet":               AccessorDidSet,
	"_read":                AccessorRead,
	"_modify":              AccessorModify,
	"init":                 AccessorInit,
	"unsafeAddress":        AccessorUnsafeAddress,
	"unsafeMutableAddress": AccessorUnsafeMutableAddress,
}

// LookupAccessor maps an accessor keyword to its kind.
func LookupAccessor(word string) (AccessorKind, bool) {
	k, ok := accessorWords[word]
	return k, ok
}

// IsObserver reports willSet/didSet.
func (k AccessorKind) IsObserver() bool {
	return k == AccessorWillSet || k == AccessorDidSet
}

// ProvidesStorageAccess reports accessors that replace storage (getters, setters and their variants).
func (k AccessorKind) ProvidesStorageAccess() bool {
	return !k.IsObserver() && k != AccessorInit
}

type Accessor struct {
	Kind     AccessorKind
	Span     source.Span
	BodySpan source.Span // пустой у `get` без тела (протоколы)
}

type AccessorBlock struct {
	Kind      AccessorBlockKind
	Accessors []Accessor
	Span      source.Span
}

func (i *Items) NewVar(span source.Span, decl VarDecl) ItemID {
	return i.new(ItemVar, span, i.Vars.Allocate(decl))
}

func (i *Items) Var(id ItemID) (*VarDecl, bool) {
	p, ok := i.payloadOf(id, ItemVar)
	if !ok {
		return nil, false
	}
	return i.Vars.Get(p), true
}

func (i *Items) NewBinding(b Binding) BindingID {
	return BindingID(i.Bindings.Allocate(b))
}

func (i *Items) Binding(id BindingID) *Binding {
	return i.Bindings.Get(uint32(id))
}

func (i *Items) NewAccessorBlock(block AccessorBlock) AccessorBlockID {
	return AccessorBlockID(i.AccessorBlocks.Allocate(block))
}

func (i *Items) AccessorBlock(id AccessorBlockID) *AccessorBlock {
	return i.AccessorBlocks.Get(uint32(id))
}

// LastBinding returns the final binding of a declaration.
func (v *VarDecl) LastBinding() (BindingID, bool) {
	if len(v.Bindings) == 0 {
		return NoBindingID, false
	}
	return v.Bindings[len(v.Bindings)-1], true
}
