package infer

import "fmt"

// ErrorKind classifies why inference gave up.
type ErrorKind uint8

const (
	// UnrecognizedPattern: the expression shape is outside the supported subset.
	UnrecognizedPattern ErrorKind = iota
	// ClosureBodyTooComplex: a closure has no return clause and its body is
	// not a single inferable expression.
	ClosureBodyTooComplex
	// UnresolvedReference: the type depends on a name (variable or callee).
	UnresolvedReference
	// MissingTypeAndInitializer: a binding has neither annotation nor initializer.
	MissingTypeAndInitializer
)

func (k ErrorKind) String() string {
	switch k {
	case UnrecognizedPattern:
		return "unrecognizedPattern"
	case ClosureBodyTooComplex:
		return "closureBodyTooComplex"
	case UnresolvedReference:
		return "unresolvedReference"
	case MissingTypeAndInitializer:
		return "missingTypeAndInitializer"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is the terminal result of a failed inference.
type Error struct {
	Kind ErrorKind
	// Name is the referenced identifier or rendered callee for UnresolvedReference.
	Name string
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnrecognizedPattern:
		return "Unexpected pattern caused type inference failure"
	case ClosureBodyTooComplex:
		return "Closure too complicated to infer type. Please annotate types explicitly"
	case UnresolvedReference:
		return "Type cannot be inferred from referring to `" + e.Name + "`"
	case MissingTypeAndInitializer:
		return "Cannot infer the type of a binding without type annotation or initializer"
	default:
		return e.Kind.String()
	}
}

// Is matches another *Error of the same kind; an empty target Name matches any name.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Name == "" || t.Name == e.Name)
}

func failure(kind ErrorKind) *Error {
	return &Error{Kind: kind}
}

func unresolved(name string) *Error {
	return &Error{Kind: UnresolvedReference, Name: name}
}
