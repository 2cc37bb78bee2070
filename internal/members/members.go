package members

import (
	"slices"
	"strings"

	"macroessentials/internal/ast"
	"macroessentials/internal/source"
)

// Member is one named binding of a stored or computed property.
type Member struct {
	Binding ast.BindingID
	// Decl is the declaration the binding belongs to; Var is its payload.
	Decl ast.ItemID
	Var  *ast.VarDecl
	Name string
	Kind Kind
}

// Map walks the properties of a type declaration in source order and calls
// visit for every binding with a plain identifier pattern. Results with
// ok == false are dropped. The first error from visit stops the walk and is
// returned as is. Every call walks the members again.
func Map[T any](b *ast.Builder, decl ast.ItemID, visit func(Member) (T, bool, error)) ([]T, error) {
	td, ok := b.Items.TypeDecl(decl)
	if !ok {
		return nil, nil
	}
	var out []T
	for _, item := range td.Members {
		v, ok := b.Items.Var(item)
		if !ok || len(v.Bindings) == 0 {
			continue
		}
		kind := Classify(b, v)
		for _, bid := range v.Bindings {
			bd := b.Items.Binding(bid)
			if bd == nil || bd.Pattern.Kind != ast.PatternIdent {
				continue
			}
			res, keep, err := visit(Member{
				Binding: bid,
				Decl:    item,
				Var:     v,
				Name:    b.Name(bd.Pattern.Name),
				Kind:    kind,
			})
			if err != nil {
				return nil, err
			}
			if keep {
				out = append(out, res)
			}
		}
	}
	return out, nil
}

// All lists every member; a convenience over Map.
func All(b *ast.Builder, decl ast.ItemID) []Member {
	out, _ := Map(b, decl, func(m Member) (Member, bool, error) {
		return m, true, nil
	})
	return out
}

func isSimpleName(name string) bool {
	return name != "" && !strings.ContainsAny(name, ".<>[]()&?! ")
}

// Conformances lists the inherited types spelled as a bare identifier, in
// clause order. Qualified and generic spellings are left out.
func Conformances(b *ast.Builder, decl ast.ItemID) []string {
	td, ok := b.Items.TypeDecl(decl)
	if !ok {
		return nil
	}
	var out []string
	for _, t := range td.Inherits {
		data, ok := b.Types.Ident(t)
		if !ok || data.Base.IsValid() || len(data.Args) > 0 {
			continue
		}
		out = append(out, b.Name(data.Name))
	}
	return out
}

// AttachedMacros lists attribute names that are a single identifier.
func AttachedMacros(b *ast.Builder, decl ast.ItemID) []string {
	h, ok := b.Items.Header(decl)
	if !ok {
		return nil
	}
	var out []string
	for _, a := range b.Items.AttrsOf(h.Attrs) {
		if name := b.Name(b.Items.Attr(a).Name); isSimpleName(name) {
			out = append(out, name)
		}
	}
	return out
}

// Conforms reports whether proto appears among the bare-identifier conformances.
func Conforms(b *ast.Builder, decl ast.ItemID, proto string) bool {
	return slices.ContainsFunc(Conformances(b, decl), func(c string) bool {
		return source.SameIdent(c, proto)
	})
}
