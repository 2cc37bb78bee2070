package ast

import (
	"macroessentials/internal/source"
)

type ItemKind uint8

const (
	ItemVar ItemKind = iota
	ItemType
	ItemFunc
	ItemEnumCase
	ItemTypealias
	ItemImport
	// ItemOther is a declaration the parser skipped over (`#if`, operators, macros...).
	ItemOther
)

func (k ItemKind) String() string {
	switch k {
	case ItemVar:
		return "VariableDecl"
	case ItemType:
		return "TypeDecl"
	case ItemFunc:
		return "FunctionDecl"
	case ItemEnumCase:
		return "EnumCaseDecl"
	case ItemTypealias:
		return "TypeAliasDecl"
	case ItemImport:
		return "ImportDecl"
	default:
		return "Decl"
	}
}

type Item struct {
	Kind      ItemKind
	Span      source.Span
	Payload   PayloadID
	Synthetic bool
}

// DeclHeader is the prefix shared by all declarations.
type DeclHeader struct {
	Attrs     AttrListID
	Modifiers []Modifier
}

type FuncKind uint8

const (
	FuncPlain FuncKind = iota
	FuncInit
	FuncDeinit
	FuncSubscript
)

// FuncDecl keeps the signature shape only; bodies are skipped by the parser.
type FuncDecl struct {
	DeclHeader
	Kind     FuncKind
	Name     source.StringID
	NameSpan source.Span
	BodySpan source.Span
}

type EnumCaseDecl struct {
	DeclHeader
	Names []source.StringID
}

// SimpleDecl is the payload of typealias, import and skipped declarations.
type SimpleDecl struct {
	DeclHeader
	Name source.StringID
}

type Items struct {
	Arena          *Arena[Item]
	Attrs          *Arena[Attr]
	AttrLists      *Arena[AttrList]
	Vars           *Arena[VarDecl]
	Bindings       *Arena[Binding]
	AccessorBlocks *Arena[AccessorBlock]
	Types          *Arena[TypeDecl]
	Funcs          *Arena[FuncDecl]
	Cases          *Arena[EnumCaseDecl]
	Simples        *Arena[SimpleDecl]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	small := capHint/4 + 1
	return &Items{
		Arena:          NewArena[Item](capHint),
		Attrs:          NewArena[Attr](small),
		AttrLists:      NewArena[AttrList](small),
		Vars:           NewArena[VarDecl](capHint),
		Bindings:       NewArena[Binding](capHint),
		AccessorBlocks: NewArena[AccessorBlock](small),
		Types:          NewArena[TypeDecl](small),
		Funcs:          NewArena[FuncDecl](small),
		Cases:          NewArena[EnumCaseDecl](small),
		Simples:        NewArena[SimpleDecl](small),
	}
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) new(kind ItemKind, span source.Span, payload uint32) ItemID {
	return ItemID(i.Arena.Allocate(Item{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (i *Items) payloadOf(id ItemID, kinds ...ItemKind) (uint32, bool) {
	item := i.Get(id)
	if item == nil {
		return 0, false
	}
	for _, k := range kinds {
		if item.Kind == k {
			return uint32(item.Payload), true
		}
	}
	return 0, false
}

func (i *Items) NewFunc(span source.Span, decl FuncDecl) ItemID {
	return i.new(ItemFunc, span, i.Funcs.Allocate(decl))
}

func (i *Items) Func(id ItemID) (*FuncDecl, bool) {
	p, ok := i.payloadOf(id, ItemFunc)
	if !ok {
		return nil, false
	}
	return i.Funcs.Get(p), true
}

func (i *Items) NewEnumCase(span source.Span, decl EnumCaseDecl) ItemID {
	return i.new(ItemEnumCase, span, i.Cases.Allocate(decl))
}

func (i *Items) EnumCase(id ItemID) (*EnumCaseDecl, bool) {
	p, ok := i.payloadOf(id, ItemEnumCase)
	if !ok {
		return nil, false
	}
	return i.Cases.Get(p), true
}

// NewSimple creates typealias, import or skipped declarations.
func (i *Items) NewSimple(kind ItemKind, span source.Span, decl SimpleDecl) ItemID {
	return i.new(kind, span, i.Simples.Allocate(decl))
}

func (i *Items) Simple(id ItemID) (*SimpleDecl, bool) {
	p, ok := i.payloadOf(id, ItemTypealias, ItemImport, ItemOther)
	if !ok {
		return nil, false
	}
	return i.Simples.Get(p), true
}

// Header returns the attribute/modifier prefix of any declaration.
func (i *Items) Header(id ItemID) (*DeclHeader, bool) {
	item := i.Get(id)
	if item == nil {
		return nil, false
	}
	p := uint32(item.Payload)
	switch item.Kind {
	case ItemVar:
		return &i.Vars.Get(p).DeclHeader, true
	case ItemType:
		return &i.Types.Get(p).DeclHeader, true
	case ItemFunc:
		return &i.Funcs.Get(p).DeclHeader, true
	case ItemEnumCase:
		return &i.Cases.Get(p).DeclHeader, true
	default:
		return &i.Simples.Get(p).DeclHeader, true
	}
}
