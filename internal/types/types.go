package types

import (
	"fmt"
	"strings"
)

// Kind enumerates descriptor variants.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNamed
	KindOptional
	KindArray
	KindDictionary
	KindTuple
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNamed:
		return "named"
	case KindOptional:
		return "optional"
	case KindArray:
		return "array"
	case KindDictionary:
		return "dictionary"
	case KindTuple:
		return "tuple"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Field is a tuple element or a function parameter. Label is empty when the
// element has no name.
type Field struct {
	Label string
	Type  Type
}

// Type is a recursive descriptor of a type derived purely from syntax.
// The zero value is invalid.
type Type struct {
	Kind Kind
	// Name is set for KindNamed: `Int`, `Foo.Bar`, `Set<Int>`.
	Name string
	// Args: [wrapped] for optionals and arrays, [key, value] for
	// dictionaries, [result] for functions.
	Args []Type
	// Fields holds tuple elements or function parameters.
	Fields []Field
	Async  bool
	Throws bool
}

func Named(name string) Type {
	return Type{Kind: KindNamed, Name: name}
}

func Optional(wrapped Type) Type {
	return Type{Kind: KindOptional, Args: []Type{wrapped}}
}

func Array(elem Type) Type {
	return Type{Kind: KindArray, Args: []Type{elem}}
}

func Dictionary(key, value Type) Type {
	return Type{Kind: KindDictionary, Args: []Type{key, value}}
}

// Tuple builds an unlabeled tuple.
func Tuple(elems ...Type) Type {
	fields := make([]Field, len(elems))
	for i, e := range elems {
		fields[i] = Field{Type: e}
	}
	return Type{Kind: KindTuple, Fields: fields}
}

// LabeledTuple builds a tuple whose elements may carry labels.
func LabeledTuple(fields ...Field) Type {
	return Type{Kind: KindTuple, Fields: fields}
}

func Function(params []Field, isAsync, throws bool, result Type) Type {
	return Type{Kind: KindFunction, Fields: params, Async: isAsync, Throws: throws, Args: []Type{result}}
}

func (t Type) IsValid() bool {
	return t.Kind != KindInvalid
}

func (t Type) arg(i int) Type {
	if i < len(t.Args) {
		return t.Args[i]
	}
	return Type{}
}

// Wrapped returns the element of an optional or an array.
func (t Type) Wrapped() Type {
	if t.Kind != KindOptional && t.Kind != KindArray {
		return Type{}
	}
	return t.arg(0)
}

func (t Type) Key() Type {
	if t.Kind != KindDictionary {
		return Type{}
	}
	return t.arg(0)
}

func (t Type) Value() Type {
	if t.Kind != KindDictionary {
		return Type{}
	}
	return t.arg(1)
}

// Result is the return type of a function descriptor.
func (t Type) Result() Type {
	if t.Kind != KindFunction {
		return Type{}
	}
	return t.arg(0)
}

// IsOptional reports `T?`, `T!` and `Optional<T>` spellings.
func (t Type) IsOptional() bool {
	switch t.Kind {
	case KindOptional:
		return true
	case KindNamed:
		return strings.HasSuffix(t.Name, "?") || strings.HasSuffix(t.Name, "!") ||
			strings.HasPrefix(t.Name, "Optional<") || strings.HasPrefix(t.Name, "Swift.Optional<")
	}
	return false
}

// Equal compares descriptors structurally.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.Name != o.Name || t.Async != o.Async || t.Throws != o.Throws ||
		len(t.Args) != len(o.Args) || len(t.Fields) != len(o.Fields) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	for i := range t.Fields {
		if t.Fields[i].Label != o.Fields[i].Label || !t.Fields[i].Type.Equal(o.Fields[i].Type) {
			return false
		}
	}
	return true
}

// String renders the descriptor as Swift type syntax.
func (t Type) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t Type) write(sb *strings.Builder) {
	switch t.Kind {
	case KindNamed:
		sb.WriteString(t.Name)
	case KindOptional:
		inner := t.arg(0)
		// `() -> Int?` читается иначе, чем `(() -> Int)?`
		if inner.Kind == KindFunction {
			sb.WriteByte('(')
			inner.write(sb)
			sb.WriteByte(')')
		} else {
			inner.write(sb)
		}
		sb.WriteByte('?')
	case KindArray:
		sb.WriteByte('[')
		t.arg(0).write(sb)
		sb.WriteByte(']')
	case KindDictionary:
		sb.WriteByte('[')
		t.arg(0).write(sb)
		sb.WriteString(": ")
		t.arg(1).write(sb)
		sb.WriteByte(']')
	case KindTuple:
		writeFields(sb, t.Fields)
	case KindFunction:
		writeFields(sb, t.Fields)
		if t.Async {
			sb.WriteString(" async")
		}
		if t.Throws {
			sb.WriteString(" throws")
		}
		sb.WriteString(" -> ")
		t.arg(0).write(sb)
	default:
		sb.WriteString("<invalid>")
	}
}

func writeFields(sb *strings.Builder, fields []Field) {
	sb.WriteByte('(')
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		if f.Label != "" {
			sb.WriteString(f.Label)
			sb.WriteString(": ")
		}
		f.Type.write(sb)
	}
	sb.WriteByte(')')
}
