package format

import (
	"macroessentials/internal/ast"
	"macroessentials/internal/source"
)

func (p *Printer) printItem(w *writer, id ast.ItemID) {
	item := p.b.Items.Get(id)
	if item == nil {
		return
	}
	if !item.Synthetic {
		w.CopySpan(item.Span)
		return
	}
	switch item.Kind {
	case ast.ItemVar:
		decl, _ := p.b.Items.Var(id)
		p.printHeader(w, &decl.DeclHeader, decl.KeywordSpan)
		for i, b := range decl.Bindings {
			if i == 0 {
				w.WriteString(" ")
			} else {
				w.WriteString(", ")
			}
			p.printBinding(w, b)
		}
	case ast.ItemType:
		decl, _ := p.b.Items.TypeDecl(id)
		p.printHeader(w, &decl.DeclHeader, decl.KeywordSpan)
		nameEnd := decl.NameSpan.End
		if !decl.GenericSpan.Empty() {
			nameEnd = decl.GenericSpan.End
		}
		w.CopyRange(item.Span.File, decl.KeywordSpan.End, nameEnd)
		for i, t := range decl.Inherits {
			if i == 0 {
				w.WriteString(": ")
			} else {
				w.WriteString(", ")
			}
			p.printType(w, t, false)
		}
		if !decl.WhereSpan.Empty() {
			w.WriteString(" ")
			w.CopySpan(decl.WhereSpan)
		}
		w.WriteString(" ")
		w.CopySpan(decl.BodySpan)
	default:
		w.CopySpan(item.Span)
	}
}

// printHeader writes attributes, modifiers and the introducing keyword. The
// text between the first modifier and the keyword is copied from the source.
func (p *Printer) printHeader(w *writer, h *ast.DeclHeader, keyword source.Span) {
	if h.Attrs.IsValid() {
		p.printAttrList(w, h.Attrs)
	}
	from := keyword.Start
	if len(h.Modifiers) > 0 {
		from = h.Modifiers[0].Span.Start
	}
	w.CopyRange(keyword.File, from, keyword.End)
}

func (p *Printer) printBinding(w *writer, id ast.BindingID) {
	b := p.b.Items.Binding(id)
	if b == nil {
		return
	}
	if !b.Synthetic {
		w.CopySpan(b.Span)
		return
	}
	w.CopySpan(b.Pattern.Span)
	if b.Type.IsValid() {
		w.WriteString(": ")
		p.printType(w, b.Type, false)
	}
	if b.Init.IsValid() {
		w.WriteString(" = ")
		p.printExpr(w, b.Init)
	}
	if b.Accessors.IsValid() {
		w.WriteString(" ")
		w.CopySpan(p.b.Items.AccessorBlock(b.Accessors).Span)
	}
}

func (p *Printer) printAttrList(w *writer, id ast.AttrListID) {
	list := p.b.Items.AttrList(id)
	if list == nil {
		return
	}
	if !list.Synthetic {
		w.CopySpan(list.Span)
		return
	}
	for _, a := range list.Attrs {
		p.printAttr(w, a)
		w.WriteString(p.b.Items.Attr(a).Trailing)
	}
}

func (p *Printer) printAttr(w *writer, id ast.AttrID) {
	a := p.b.Items.Attr(id)
	if a == nil {
		return
	}
	if !a.Synthetic {
		w.CopySpan(a.Span)
		return
	}
	w.WriteString("@")
	w.WriteString(p.b.Name(a.Name))
	w.CopySpan(a.ArgsSpan)
}
