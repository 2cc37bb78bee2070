package driver

import (
	"slices"

	"macroessentials/internal/diag"
	"macroessentials/internal/source"
)

// remapDiagnostic points every span of d at file. Cached diagnostics of one
// file never reference another file.
func remapDiagnostic(d diag.Diagnostic, file source.FileID) diag.Diagnostic {
	d.Primary.File = file
	d.Node.Span.File = file
	d.Notes = slices.Clone(d.Notes)
	for i := range d.Notes {
		d.Notes[i].Span.File = file
		d.Notes[i].Node.Span.File = file
	}
	d.Fixes = slices.Clone(d.Fixes)
	for i := range d.Fixes {
		f := &d.Fixes[i]
		f.OldNode.Span.File = file
		f.NewNode.Span.File = file
		f.Edits = slices.Clone(f.Edits)
		for j := range f.Edits {
			f.Edits[j].Span.File = file
		}
	}
	return d
}
