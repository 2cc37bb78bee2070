// Package testkit holds checks shared by parser and driver tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"macroessentials/internal/ast"
	"macroessentials/internal/source"
)

// CheckSpanInvariants runs the span invariants on a parsed file:
// 1) file.Span lies within the content; it may be empty only without items
// 2) every item span is non-empty and contained in its parent (file span,
// or the body of the enclosing type declaration)
// 3) binding spans of a variable declaration lie inside the declaration
// 4) file.Span covers the union of top-level item spans
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}
	if len(f.Items) > 0 && f.Span.Empty() {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}

	var union source.Span
	for i, it := range f.Items {
		sp, err := checkItem(b, it, f.Span, sf.ID)
		if err != nil {
			return err
		}
		if i == 0 {
			union = sp
		} else {
			union = union.Cover(sp)
		}
	}
	if len(f.Items) > 0 && (union.Start < f.Span.Start || union.End > f.Span.End) {
		return fmt.Errorf("file span %v does not cover union of items %v", f.Span, union)
	}
	return nil
}

func checkItem(b *ast.Builder, id ast.ItemID, parent source.Span, file source.FileID) (source.Span, error) {
	item := b.Items.Get(id)
	if item == nil {
		return source.Span{}, fmt.Errorf("nil item for id=%d", id)
	}
	sp := item.Span
	if sp.End <= sp.Start {
		return sp, fmt.Errorf("empty %s span: %v", item.Kind, sp)
	}
	if sp.File != file {
		return sp, fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, file)
	}
	if !contains(parent, sp) {
		return sp, fmt.Errorf("%s span %v is outside %v", item.Kind, sp, parent)
	}

	if v, ok := b.Items.Var(id); ok {
		for _, bid := range v.Bindings {
			bs := b.Items.Binding(bid).Span
			if !contains(sp, bs) {
				return sp, fmt.Errorf("binding span %v is outside declaration %v", bs, sp)
			}
		}
	}
	if td, ok := b.Items.TypeDecl(id); ok {
		if !contains(sp, td.BodySpan) {
			return sp, fmt.Errorf("body span %v is outside declaration %v", td.BodySpan, sp)
		}
		for _, member := range td.Members {
			if _, err := checkItem(b, member, td.BodySpan, file); err != nil {
				return sp, err
			}
		}
	}
	return sp, nil
}

func contains(outer, inner source.Span) bool {
	return inner.Start >= outer.Start && inner.End <= outer.End
}
