package ast

import (
	"slices"

	"macroessentials/internal/source"
)

// Record-update helpers. Each With* call copies the node, lets fn edit the
// copy, and allocates it as a new synthetic node. The original stays intact,
// so NodeRefs handed out earlier keep pointing at the parsed tree.

func cloneHeader(h DeclHeader) DeclHeader {
	return DeclHeader{Attrs: h.Attrs, Modifiers: slices.Clone(h.Modifiers)}
}

// WithVar copies a variable declaration.
func (b *Builder) WithVar(id ItemID, fn func(*VarDecl)) ItemID {
	orig, ok := b.Items.Var(id)
	if !ok {
		return NoItemID
	}
	cp := *orig
	cp.DeclHeader = cloneHeader(orig.DeclHeader)
	cp.Bindings = slices.Clone(orig.Bindings)
	if fn != nil {
		fn(&cp)
	}
	span := b.Items.Get(id).Span
	nid := b.Items.NewVar(span, cp)
	b.Items.Get(nid).Synthetic = true
	return nid
}

// WithTypeDecl copies a type declaration.
func (b *Builder) WithTypeDecl(id ItemID, fn func(*TypeDecl)) ItemID {
	orig, ok := b.Items.TypeDecl(id)
	if !ok {
		return NoItemID
	}
	cp := *orig
	cp.DeclHeader = cloneHeader(orig.DeclHeader)
	cp.Inherits = slices.Clone(orig.Inherits)
	cp.Members = slices.Clone(orig.Members)
	if fn != nil {
		fn(&cp)
	}
	span := b.Items.Get(id).Span
	nid := b.Items.NewTypeDecl(span, cp)
	b.Items.Get(nid).Synthetic = true
	return nid
}

// WithHeader copies any declaration and edits its attribute/modifier prefix.
// Only variable and type declarations can be copied; other kinds return NoItemID.
func (b *Builder) WithHeader(id ItemID, fn func(*DeclHeader)) ItemID {
	item := b.Items.Get(id)
	if item == nil {
		return NoItemID
	}
	switch item.Kind {
	case ItemVar:
		return b.WithVar(id, func(v *VarDecl) { fn(&v.DeclHeader) })
	case ItemType:
		return b.WithTypeDecl(id, func(t *TypeDecl) { fn(&t.DeclHeader) })
	}
	return NoItemID
}

func (b *Builder) WithBinding(id BindingID, fn func(*Binding)) BindingID {
	orig := b.Items.Binding(id)
	if orig == nil {
		return NoBindingID
	}
	cp := *orig
	if fn != nil {
		fn(&cp)
	}
	cp.Synthetic = true
	return b.Items.NewBinding(cp)
}

func (b *Builder) WithAttr(id AttrID, fn func(*Attr)) AttrID {
	orig := b.Items.Attr(id)
	if orig == nil {
		return NoAttrID
	}
	cp := *orig
	if fn != nil {
		fn(&cp)
	}
	cp.Synthetic = true
	return b.Items.NewAttr(cp)
}

func (b *Builder) WithAttrList(id AttrListID, fn func(*AttrList)) AttrListID {
	orig := b.Items.AttrList(id)
	if orig == nil {
		return NoAttrListID
	}
	cp := *orig
	cp.Attrs = slices.Clone(orig.Attrs)
	if fn != nil {
		fn(&cp)
	}
	cp.Synthetic = true
	return b.Items.NewAttrList(cp)
}

// WithoutAttr returns a copy of the list minus the attribute at idx. The
// attribute before the removed one takes over its trailing separator, so
// `@A @B\nvar x` becomes `@A\nvar x`.
func (b *Builder) WithoutAttr(list AttrListID, idx int) AttrListID {
	orig := b.Items.AttrList(list)
	if orig == nil || idx < 0 || idx >= len(orig.Attrs) {
		return list
	}
	removed := b.Items.Attr(orig.Attrs[idx])
	return b.WithAttrList(list, func(l *AttrList) {
		if idx > 0 {
			l.Attrs[idx-1] = b.WithAttr(l.Attrs[idx-1], func(prev *Attr) {
				prev.Trailing = removed.Trailing
			})
		}
		l.Attrs = slices.Delete(l.Attrs, idx, idx+1)
	})
}

// NewPlaceholderType builds an editor placeholder type `<#name#>`.
func (b *Builder) NewPlaceholderType(name string) TypeID {
	return b.Types.Synthesize(b.Types.NewPlaceholder(source.Span{}, b.Intern(name)))
}

// NewNamedType builds a synthetic `Name` type.
func (b *Builder) NewNamedType(name string) TypeID {
	return b.Types.Synthesize(b.Types.NewIdent(source.Span{}, NoTypeID, b.Intern(name), nil))
}

// CopyNode returns a synthetic copy of ref, or ref itself for kinds that have no copy helper.
func (b *Builder) CopyNode(ref NodeRef) NodeRef {
	switch ref.Kind {
	case NodeItem:
		item := b.Items.Get(ItemID(ref.ID))
		if item == nil {
			return ref
		}
		if id := b.WithHeader(ItemID(ref.ID), func(*DeclHeader) {}); id.IsValid() {
			return ItemRef(id)
		}
	case NodeBinding:
		return BindingRef(b.WithBinding(BindingID(ref.ID), nil))
	case NodeAttrList:
		return AttrListRef(b.WithAttrList(AttrListID(ref.ID), nil))
	case NodeAttr:
		return AttrRef(b.WithAttr(AttrID(ref.ID), nil))
	}
	return ref
}

// HasModifier reports whether the header carries a modifier spelled name.
func (b *Builder) HasModifier(h *DeclHeader, name string) bool {
	if h == nil {
		return false
	}
	for _, m := range h.Modifiers {
		if b.Name(m.Name) == name {
			return true
		}
	}
	return false
}
