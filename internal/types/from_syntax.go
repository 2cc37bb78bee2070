package types

import (
	"macroessentials/internal/ast"
	"macroessentials/internal/format"
	"macroessentials/internal/source"
)

// FromSyntax converts a type annotation into a descriptor. Optionals,
// collections, tuples and function types (including the `Optional<T>`,
// `Array<T>` and `Dictionary<K, V>` spellings) become structural descriptors;
// anything else is Named with its canonical spelling.
func FromSyntax(b *ast.Builder, pr *format.Printer, id ast.TypeID) Type {
	t := b.Types.Get(id)
	if t == nil {
		return Type{}
	}
	switch t.Kind {
	case ast.TypeIdent:
		data, _ := b.Types.Ident(id)
		if data.Base.IsValid() {
			break
		}
		switch name := b.Name(data.Name); {
		case name == "Optional" && len(data.Args) == 1:
			return Optional(FromSyntax(b, pr, data.Args[0]))
		case name == "Array" && len(data.Args) == 1:
			return Array(FromSyntax(b, pr, data.Args[0]))
		case name == "Dictionary" && len(data.Args) == 2:
			return Dictionary(FromSyntax(b, pr, data.Args[0]), FromSyntax(b, pr, data.Args[1]))
		}
	case ast.TypeOptional:
		data, _ := b.Types.Wrap(id)
		return Optional(FromSyntax(b, pr, data.Elem))
	case ast.TypeArray:
		data, _ := b.Types.Wrap(id)
		return Array(FromSyntax(b, pr, data.Elem))
	case ast.TypeDict:
		data, _ := b.Types.Dict(id)
		return Dictionary(FromSyntax(b, pr, data.Key), FromSyntax(b, pr, data.Value))
	case ast.TypeTuple:
		data, _ := b.Types.Tuple(id)
		return LabeledTuple(fieldsFromSyntax(b, pr, data.Elems)...)
	case ast.TypeFunc:
		data, _ := b.Types.Func(id)
		return Function(fieldsFromSyntax(b, pr, data.Params), data.IsAsync, data.Throws, FromSyntax(b, pr, data.Result))
	}
	return Named(pr.CanonicalType(id))
}

func fieldsFromSyntax(b *ast.Builder, pr *format.Printer, elems []ast.TupleTypeElem) []Field {
	fields := make([]Field, 0, len(elems))
	for _, e := range elems {
		f := Field{Type: FromSyntax(b, pr, e.Type)}
		if e.Label != source.NoStringID {
			f.Label = b.Name(e.Label)
		}
		fields = append(fields, f)
	}
	return fields
}
