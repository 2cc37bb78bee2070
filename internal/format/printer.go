package format

import (
	"macroessentials/internal/ast"
	"macroessentials/internal/source"
)

// Printer renders nodes of one builder. Safe for concurrent use as long as the
// builder is not being appended to.
type Printer struct {
	b  *ast.Builder
	fs *source.FileSet
}

func New(b *ast.Builder, fs *source.FileSet) *Printer {
	return &Printer{b: b, fs: fs}
}

func (p *Printer) newWriter() *writer {
	return &writer{fs: p.fs}
}

// Node renders any node reference.
func (p *Printer) Node(ref ast.NodeRef) string {
	w := p.newWriter()
	p.printNode(w, ref)
	return w.String()
}

func (p *Printer) printNode(w *writer, ref ast.NodeRef) {
	switch ref.Kind {
	case ast.NodeItem:
		p.printItem(w, ast.ItemID(ref.ID))
	case ast.NodeBinding:
		p.printBinding(w, ast.BindingID(ref.ID))
	case ast.NodeAttrList:
		p.printAttrList(w, ast.AttrListID(ref.ID))
	case ast.NodeAttr:
		p.printAttr(w, ast.AttrID(ref.ID))
	case ast.NodeExpr:
		p.printExpr(w, ast.ExprID(ref.ID))
	case ast.NodeType:
		p.printType(w, ast.TypeID(ref.ID), false)
	default:
		w.CopySpan(p.b.Span(ref))
	}
}

// Expr renders an expression; parsed expressions come back exactly as written.
func (p *Printer) Expr(id ast.ExprID) string {
	w := p.newWriter()
	p.printExpr(w, id)
	return w.String()
}

// Type renders a type annotation as written.
func (p *Printer) Type(id ast.TypeID) string {
	w := p.newWriter()
	p.printType(w, id, false)
	return w.String()
}

// CanonicalType renders a type with normalised spacing (`Set<Int>`, `[String: Int]`)
// regardless of how it was written.
func (p *Printer) CanonicalType(id ast.TypeID) string {
	w := p.newWriter()
	p.printType(w, id, true)
	return w.String()
}

// Attr renders one attribute without its trailing separator.
func (p *Printer) Attr(id ast.AttrID) string {
	w := p.newWriter()
	p.printAttr(w, id)
	return w.String()
}
