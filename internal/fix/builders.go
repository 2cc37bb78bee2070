package fix

import (
	"strings"
	"unicode/utf8"

	"macroessentials/internal/diag"
	"macroessentials/internal/source"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// WithKind overrides fix classification.
func WithKind(kind diag.FixKind) Option {
	return func(f *diag.Fix) {
		f.Kind = kind
	}
}

// Preferred marks fix as preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) {
		f.IsPreferred = true
	}
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

// WithRequiresAll marks a fix that only makes sense together with the other
// fixes of the run; `fix --id` refuses it.
func WithRequiresAll() Option {
	return func(f *diag.Fix) {
		f.RequiresAll = true
	}
}

func applyOptions(f diag.Fix, opts []Option) diag.Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// Rewrite builds a fix that turns oldText, the current content of span, into
// newText. Only the differing middle part is edited, so two fixes touching
// different parts of one declaration do not conflict. Identical texts give a
// fix without edits.
func Rewrite(title string, span source.Span, oldText, newText string, opts ...Option) diag.Fix {
	fix := diag.Fix{
		Title:         title,
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.FixApplicabilityAlwaysSafe,
	}
	if edit, ok := minimalEdit(span, oldText, newText); ok {
		fix.Edits = []diag.TextEdit{edit}
	}
	return applyOptions(fix, opts)
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) diag.Fix {
	fix := diag.Fix{
		Title:         title,
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         []diag.TextEdit{{Span: span, NewText: newText, OldText: expect}},
	}
	return applyOptions(fix, opts)
}

// minimalEdit trims the common prefix and suffix of two texts, keeping the
// cut on rune boundaries. The returned edit guards on the removed text.
func minimalEdit(span source.Span, oldText, newText string) (diag.TextEdit, bool) {
	if oldText == newText {
		return diag.TextEdit{}, false
	}
	limit := min(len(oldText), len(newText))
	p := 0
	for p < limit && oldText[p] == newText[p] {
		p++
	}
	for p > 0 && ((p < len(oldText) && !utf8.RuneStart(oldText[p])) || (p < len(newText) && !utf8.RuneStart(newText[p]))) {
		p--
	}

	s := 0
	for s < limit-p && oldText[len(oldText)-1-s] == newText[len(newText)-1-s] {
		s++
	}
	for s > 0 && (!utf8.RuneStart(oldText[len(oldText)-s]) || !utf8.RuneStart(newText[len(newText)-s])) {
		s--
	}

	// длина span может не совпадать с oldText, если узел синтетический
	if int(span.End-span.Start) != len(oldText) {
		return diag.TextEdit{Span: span, NewText: newText, OldText: oldText}, true
	}
	start := span.Start + uint32(p)
	end := span.End - uint32(s)
	return diag.TextEdit{
		Span:    source.Span{File: span.File, Start: start, End: end},
		NewText: newText[p : len(newText)-s],
		OldText: oldText[p : len(oldText)-s],
	}, true
}

// hasPlaceholder reports editor placeholders (`<#type#>`) that leave the code uncompilable.
func hasPlaceholder(text string) bool {
	i := strings.Index(text, "<#")
	return i >= 0 && strings.Contains(text[i:], "#>")
}
