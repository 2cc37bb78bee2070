package members

import (
	"fmt"

	"macroessentials/internal/ast"
)

// Kind is the storage classification of a property declaration.
type Kind uint8

const (
	StoredConstant Kind = iota
	StoredVariable
	Computed
	StaticConstant
	StaticVariable
)

func (k Kind) String() string {
	switch k {
	case StoredConstant:
		return "storedConstant"
	case StoredVariable:
		return "storedVariable"
	case Computed:
		return "computed"
	case StaticConstant:
		return "staticConstant"
	case StaticVariable:
		return "staticVariable"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsStored reports instance storage: the kinds a memberwise initializer covers.
func (k Kind) IsStored() bool {
	return k == StoredConstant || k == StoredVariable
}

// IsStatic reports type-level properties.
func (k Kind) IsStatic() bool {
	return k == StaticConstant || k == StaticVariable
}

// Classify decides how a property declaration stores its value. Static
// properties are classified from `let`/`var` alone. For instance `var`s only
// the last binding's accessor block is consulted: in a multi-binding
// declaration that is the only binding allowed to carry one.
//
// Classify panics on a declaration without bindings; the parser never builds one.
func Classify(b *ast.Builder, decl *ast.VarDecl) Kind {
	last, ok := decl.LastBinding()
	if !ok {
		panic("members: variable declaration without bindings")
	}
	if b.HasModifier(&decl.DeclHeader, "static") || b.HasModifier(&decl.DeclHeader, "class") {
		if decl.Specifier == ast.SpecLet {
			return StaticConstant
		}
		return StaticVariable
	}
	if decl.Specifier == ast.SpecLet {
		return StoredConstant
	}

	binding := b.Items.Binding(last)
	if binding == nil || !binding.Accessors.IsValid() {
		return StoredVariable
	}
	block := b.Items.AccessorBlock(binding.Accessors)
	if block.Kind == ast.AccessorImplicitGetter {
		return Computed
	}
	for _, acc := range block.Accessors {
		if acc.Kind.ProvidesStorageAccess() {
			return Computed
		}
	}
	// только willSet/didSet
	return StoredVariable
}
