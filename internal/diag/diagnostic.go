package diag

import (
	"fmt"

	"macroessentials/internal/source"
)

// DefaultDomain is the message domain used when a session is created without one.
const DefaultDomain = "MacroCollection"

// MessageID identifies a diagnostic message for the host. The same id is shared
// by the diagnostic, its notes and its fix-its.
type MessageID struct {
	Domain string `json:"domain" msgpack:"domain"`
	ID     string `json:"id" msgpack:"id"`
}

func (m MessageID) String() string {
	if m.Domain == "" {
		return m.ID
	}
	return m.Domain + "." + m.ID
}

// IsZero reports whether the id was never assigned.
func (m MessageID) IsZero() bool {
	return m.Domain == "" && m.ID == ""
}

// Anchor references a syntax node: its kind label, arena id and span.
type Anchor struct {
	Kind string      `json:"kind,omitempty" msgpack:"kind"`
	ID   uint32      `json:"id,omitempty" msgpack:"id"`
	Span source.Span `json:"-" msgpack:"span"`
}

func (a Anchor) IsZero() bool {
	return a.Kind == "" && a.ID == 0
}

func (a Anchor) String() string {
	return fmt.Sprintf("%s#%d@%s", a.Kind, a.ID, a.Span)
}

type Note struct {
	Span source.Span `msgpack:"span"`
	Msg  string      `msgpack:"msg"`
	Node Anchor      `msgpack:"node"`
}

// TextEdit replaces Span with NewText. OldText, when set, must match the
// current file content or the edit is skipped.
type TextEdit struct {
	Span    source.Span `msgpack:"span"`
	NewText string      `msgpack:"new"`
	OldText string      `msgpack:"old"`
}

// FixKind classifies a fix for UIs.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactor
	FixKindRefactorRewrite
	FixKindSourceAction
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindRefactor:
		return "refactor"
	case FixKindRefactorRewrite:
		return "refactor.rewrite"
	case FixKindSourceAction:
		return "source"
	}
	return "unknown"
}

// FixApplicability says how safe it is to apply a fix without review.
type FixApplicability uint8

const (
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilitySafeWithHeuristics
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}

// Fix is a suggested source change. OldNode/NewNode describe the node-level
// replacement the fix was derived from; Edits are the text form of it.
type Fix struct {
	ID            string           `msgpack:"id"`
	MessageID     MessageID        `msgpack:"mid"`
	Title         string           `msgpack:"title"`
	Kind          FixKind          `msgpack:"kind"`
	Applicability FixApplicability `msgpack:"app"`
	IsPreferred   bool             `msgpack:"preferred"`
	RequiresAll   bool             `msgpack:"requires_all"`
	OldNode       Anchor           `msgpack:"old_node"`
	NewNode       Anchor           `msgpack:"new_node"`
	Edits         []TextEdit       `msgpack:"edits"`
}

type Diagnostic struct {
	Severity  Severity    `msgpack:"sev"`
	Code      Code        `msgpack:"code"`
	MessageID MessageID   `msgpack:"mid"`
	Message   string      `msgpack:"msg"`
	Primary   source.Span `msgpack:"primary"`
	Node      Anchor      `msgpack:"node"`
	Notes     []Note      `msgpack:"notes"`
	Fixes     []Fix       `msgpack:"fixes"`
}
