package token

import (
	"strings"

	"macroessentials/internal/source"
)

// Token represents a single source token with its location and leading trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, nil or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, InterpStringLit, KwTrue, KwFalse, KwNil:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsWord reports whether the token is an identifier with the given text.
// Used for contextual keywords such as `get`, `didSet` or `actor`.
func (t Token) IsWord(text string) bool {
	return t.Kind == Ident && t.Text == text
}

// HasLeadingSpace reports whether any whitespace, newline or comment precedes the token.
func (t Token) HasLeadingSpace() bool {
	return len(t.Leading) > 0
}

// HasLeadingNewline reports whether a line break precedes the token.
func (t Token) HasLeadingNewline() bool {
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline {
			return true
		}
		if tr.Kind == TriviaBlockComment && strings.Contains(tr.Text, "\n") {
			return true
		}
	}
	return false
}

// IdentName strips backticks from an escaped identifier such as `default`.
func (t Token) IdentName() string {
	if len(t.Text) >= 2 && t.Text[0] == '`' && t.Text[len(t.Text)-1] == '`' {
		return t.Text[1 : len(t.Text)-1]
	}
	return t.Text
}
