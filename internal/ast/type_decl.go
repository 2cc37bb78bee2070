package ast

import "macroessentials/internal/source"

type TypeDeclKind uint8

const (
	TypeDeclStruct TypeDeclKind = iota
	TypeDeclClass
	TypeDeclEnum
	TypeDeclActor
	TypeDeclExtension
	TypeDeclProtocol
)

func (k TypeDeclKind) String() string {
	switch k {
	case TypeDeclStruct:
		return "struct"
	case TypeDeclClass:
		return "class"
	case TypeDeclEnum:
		return "enum"
	case TypeDeclActor:
		return "actor"
	case TypeDeclExtension:
		return "extension"
	case TypeDeclProtocol:
		return "protocol"
	}
	return "type"
}

// ParseTypeDeclKind accepts the keyword spelling used in config files.
func ParseTypeDeclKind(s string) (TypeDeclKind, bool) {
	for k := TypeDeclStruct; k <= TypeDeclProtocol; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

type TypeDecl struct {
	DeclHeader
	Kind        TypeDeclKind
	KeywordSpan source.Span
	// Name is the declared name; for extensions it is the rendered extended type.
	Name        source.StringID
	NameSpan    source.Span
	GenericSpan source.Span // `<T: P>`; пустой если нет
	Inherits    []TypeID
	WhereSpan   source.Span // `where ...`; пустой если нет
	Members     []ItemID
	BodySpan    source.Span // от '{' до '}' включительно
}

func (i *Items) NewTypeDecl(span source.Span, decl TypeDecl) ItemID {
	return i.new(ItemType, span, i.Types.Allocate(decl))
}

func (i *Items) TypeDecl(id ItemID) (*TypeDecl, bool) {
	p, ok := i.payloadOf(id, ItemType)
	if !ok {
		return nil, false
	}
	return i.Types.Get(p), true
}
