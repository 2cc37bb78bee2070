package format

import (
	"macroessentials/internal/ast"
	"macroessentials/internal/source"
)

func (p *Printer) printType(w *writer, id ast.TypeID, canonical bool) {
	t := p.b.Types.Get(id)
	if t == nil {
		return
	}
	if !canonical && !t.Synthetic && !t.Span.Empty() {
		w.CopySpan(t.Span)
		return
	}
	types := p.b.Types
	switch t.Kind {
	case ast.TypeIdent:
		data, _ := types.Ident(id)
		if data.Base.IsValid() {
			p.printType(w, data.Base, canonical)
			w.WriteString(".")
		}
		w.WriteString(p.b.Name(data.Name))
		if len(data.Args) > 0 {
			w.WriteString("<")
			p.printTypeList(w, data.Args, ", ", canonical)
			w.WriteString(">")
		}
	case ast.TypeOptional, ast.TypeIUO:
		data, _ := types.Wrap(id)
		p.printWrapped(w, data.Elem, canonical)
		if t.Kind == ast.TypeOptional {
			w.WriteString("?")
		} else {
			w.WriteString("!")
		}
	case ast.TypeArray:
		data, _ := types.Wrap(id)
		w.WriteString("[")
		p.printType(w, data.Elem, canonical)
		w.WriteString("]")
	case ast.TypeDict:
		data, _ := types.Dict(id)
		w.WriteString("[")
		p.printType(w, data.Key, canonical)
		w.WriteString(": ")
		p.printType(w, data.Value, canonical)
		w.WriteString("]")
	case ast.TypeTuple:
		data, _ := types.Tuple(id)
		p.printTupleElems(w, data.Elems, canonical)
	case ast.TypeFunc:
		data, _ := types.Func(id)
		p.printTupleElems(w, data.Params, canonical)
		if data.IsAsync {
			w.WriteString(" async")
		}
		if data.Throws {
			w.WriteString(" throws")
		}
		w.WriteString(" -> ")
		p.printType(w, data.Result, canonical)
	case ast.TypeSome, ast.TypeAny:
		data, _ := types.Wrap(id)
		if t.Kind == ast.TypeSome {
			w.WriteString("some ")
		} else {
			w.WriteString("any ")
		}
		p.printType(w, data.Elem, canonical)
	case ast.TypeComposition:
		data, _ := types.Composition(id)
		p.printTypeList(w, data.Elems, " & ", canonical)
	case ast.TypeAttributed:
		data, _ := types.AttributedType(id)
		for _, spec := range data.Specifiers {
			w.WriteString(p.b.Name(spec))
			w.WriteString(" ")
		}
		p.printType(w, data.Base, canonical)
	case ast.TypePlaceholder:
		data, _ := types.Placeholder(id)
		w.WriteString("<#")
		w.WriteString(p.b.Name(data.Name))
		w.WriteString("#>")
	}
}

// printWrapped parenthesises element types that would otherwise bind the `?` wrongly.
func (p *Printer) printWrapped(w *writer, elem ast.TypeID, canonical bool) {
	t := p.b.Types.Get(elem)
	needParens := t != nil && (t.Kind == ast.TypeFunc || t.Kind == ast.TypeComposition ||
		t.Kind == ast.TypeSome || t.Kind == ast.TypeAny)
	if needParens {
		w.WriteString("(")
	}
	p.printType(w, elem, canonical)
	if needParens {
		w.WriteString(")")
	}
}

func (p *Printer) printTypeList(w *writer, ids []ast.TypeID, sep string, canonical bool) {
	for i, id := range ids {
		if i > 0 {
			w.WriteString(sep)
		}
		p.printType(w, id, canonical)
	}
}

func (p *Printer) printTupleElems(w *writer, elems []ast.TupleTypeElem, canonical bool) {
	w.WriteString("(")
	for i, e := range elems {
		if i > 0 {
			w.WriteString(", ")
		}
		if e.Label != source.NoStringID {
			w.WriteString(p.b.Name(e.Label))
			w.WriteString(": ")
		}
		p.printType(w, e.Type, canonical)
	}
	w.WriteString(")")
}
