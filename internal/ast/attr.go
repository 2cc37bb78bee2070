package ast

import "macroessentials/internal/source"

// Attr описывает атрибут вида `@Name` или `@Name(args...)`.
type Attr struct {
	Name     source.StringID
	NameSpan source.Span
	ArgsSpan source.Span // "(...)" со скобками; пустой, если аргументов нет
	Span     source.Span
	// Trailing is the separator text between this attribute and the next token.
	Trailing  string
	Synthetic bool
}

// HasArgs reports whether the attribute was written with a parenthesised argument list.
func (a *Attr) HasArgs() bool {
	return !a.ArgsSpan.Empty()
}

// AttrList is the attribute prefix of a declaration. Span runs from the first
// '@' up to the next token, so it includes the last attribute's separator.
type AttrList struct {
	Attrs     []AttrID
	Span      source.Span
	Synthetic bool
}

// Modifier is a declaration modifier such as `static`, `private(set)` or `lazy`.
type Modifier struct {
	Name   source.StringID
	Detail source.StringID // `set` в private(set)
	Span   source.Span
}

func (i *Items) NewAttr(a Attr) AttrID {
	return AttrID(i.Attrs.Allocate(a))
}

func (i *Items) Attr(id AttrID) *Attr {
	return i.Attrs.Get(uint32(id))
}

func (i *Items) NewAttrList(l AttrList) AttrListID {
	return AttrListID(i.AttrLists.Allocate(l))
}

func (i *Items) AttrList(id AttrListID) *AttrList {
	return i.AttrLists.Get(uint32(id))
}

// AttrsOf returns the attribute ids of a list; nil for NoAttrListID.
func (i *Items) AttrsOf(id AttrListID) []AttrID {
	if l := i.AttrList(id); l != nil {
		return l.Attrs
	}
	return nil
}
