package format

import (
	"macroessentials/internal/ast"
	"macroessentials/internal/source"
)

func (p *Printer) printExpr(w *writer, id ast.ExprID) {
	e := p.b.Exprs.Get(id)
	if e == nil {
		return
	}
	if !e.Synthetic && !e.Span.Empty() {
		w.CopySpan(e.Span)
		return
	}
	exprs := p.b.Exprs
	switch e.Kind {
	case ast.ExprIntLit, ast.ExprFloatLit, ast.ExprBoolLit, ast.ExprStringLit, ast.ExprNilLit:
		data, _ := exprs.Literal(id)
		w.WriteString(p.b.Name(data.Raw))
	case ast.ExprIdent:
		data, _ := exprs.Ident(id)
		w.WriteString(p.b.Name(data.Name))
		if len(data.GenericArgs) > 0 {
			w.WriteString("<")
			p.printTypeList(w, data.GenericArgs, ", ", false)
			w.WriteString(">")
		}
	case ast.ExprMember:
		data, _ := exprs.Member(id)
		p.printExpr(w, data.Base)
		w.WriteString(".")
		w.WriteString(p.b.Name(data.Name))
	case ast.ExprCall, ast.ExprSubscript:
		data, _ := exprs.Call(id)
		p.printExpr(w, data.Callee)
		open, closer := "(", ")"
		if e.Kind == ast.ExprSubscript {
			open, closer = "[", "]"
		}
		w.WriteString(open)
		for i, arg := range data.Args {
			if i > 0 {
				w.WriteString(", ")
			}
			if arg.Label != source.NoStringID {
				w.WriteString(p.b.Name(arg.Label))
				w.WriteString(": ")
			}
			p.printExpr(w, arg.Value)
		}
		w.WriteString(closer)
		for _, tc := range data.Trailing {
			w.WriteString(" ")
			p.printExpr(w, tc)
		}
	case ast.ExprTypeRef:
		data, _ := exprs.TypeRef(id)
		p.printType(w, data.Type, false)
	default:
		// синтетические узлы других видов не создаются
		w.CopySpan(e.Span)
	}
}
