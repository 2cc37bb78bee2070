package diag

import "macroessentials/internal/source"

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNode anchors the diagnostic to a syntax node; Primary follows the node span.
func (d Diagnostic) WithNode(node Anchor) Diagnostic {
	d.Node = node
	d.Primary = node.Span
	return d
}

// WithMessageID stamps id on the diagnostic and on every fix already attached.
func (d Diagnostic) WithMessageID(id MessageID) Diagnostic {
	d.MessageID = id
	d.Fixes = append([]Fix(nil), d.Fixes...)
	for i := range d.Fixes {
		d.Fixes[i].MessageID = id
	}
	return d
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithNodeNote appends a note anchored to a syntax node.
func (d Diagnostic) WithNodeNote(node Anchor, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: node.Span, Msg: msg, Node: node})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{
		Title:         title,
		Kind:          FixKindQuickFix,
		Applicability: FixApplicabilityAlwaysSafe,
		MessageID:     d.MessageID,
		Edits:         edits,
	})
	return d
}

// WithFixSuggestion appends a prebuilt fix.
func (d Diagnostic) WithFixSuggestion(fix Fix) Diagnostic {
	if fix.MessageID.IsZero() {
		fix.MessageID = d.MessageID
	}
	d.Fixes = append(d.Fixes, fix)
	return d
}

// HasFix reports whether at least one fix-it is attached.
func (d Diagnostic) HasFix() bool {
	return len(d.Fixes) > 0
}
