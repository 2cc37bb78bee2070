package token

// Kind represents the category of a source token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident

	KwStruct
	KwClass
	KwEnum
	KwExtension
	KwProtocol
	KwLet
	KwVar
	KwFunc
	KwInit
	KwDeinit
	KwSubscript
	KwTypealias
	KwAssociatedtype
	KwImport
	KwStatic
	KwReturn
	KwTry
	KwAwait
	KwAs
	KwIs
	KwNil
	KwTrue
	KwFalse
	KwIn
	KwCase
	KwIf
	KwElse
	KwGuard
	KwFor
	KwWhile
	KwRepeat
	KwSwitch
	KwDefault
	KwDo
	KwCatch
	KwThrow
	KwThrows
	KwRethrows
	KwDefer
	KwWhere
	KwInout

	IntLit
	FloatLit
	StringLit
	// InterpStringLit is a string literal containing at least one `\(...)` segment.
	InterpStringLit

	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
	Comma    // ,
	Colon    // :
	Semicolon
	Dot        // .
	At         // @
	Hash       // #
	Backslash  // \
	Underscore // _
	Arrow      // ->

	Assign   // =
	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
	Percent  // %
	Bang     // !
	Question // ?
	Lt       // <
	Gt       // >
	Amp      // &
	Pipe     // |
	Caret    // ^
	Tilde    // ~
)

var kindNames = [...]string{
	Invalid:          "Invalid",
	EOF:              "EOF",
	Ident:            "Ident",
	KwStruct:         "struct",
	KwClass:          "class",
	KwEnum:           "enum",
	KwExtension:      "extension",
	KwProtocol:       "protocol",
	KwLet:            "let",
	KwVar:            "var",
	KwFunc:           "func",
	KwInit:           "init",
	KwDeinit:         "deinit",
	KwSubscript:      "subscript",
	KwTypealias:      "typealias",
	KwAssociatedtype: "associatedtype",
	KwImport:         "import",
	KwStatic:         "static",
	KwReturn:         "return",
	KwTry:            "try",
	KwAwait:          "await",
	KwAs:             "as",
	KwIs:             "is",
	KwNil:            "nil",
	KwTrue:           "true",
	KwFalse:          "false",
	KwIn:             "in",
	KwCase:           "case",
	KwIf:             "if",
	KwElse:           "else",
	KwGuard:          "guard",
	KwFor:            "for",
	KwWhile:          "while",
	KwRepeat:         "repeat",
	KwSwitch:         "switch",
	KwDefault:        "default",
	KwDo:             "do",
	KwCatch:          "catch",
	KwThrow:          "throw",
	KwThrows:         "throws",
	KwRethrows:       "rethrows",
	KwDefer:          "defer",
	KwWhere:          "where",
	KwInout:          "inout",
	IntLit:           "IntLit",
	FloatLit:         "FloatLit",
	StringLit:        "StringLit",
	InterpStringLit:  "InterpStringLit",
	LParen:           "(",
	RParen:           ")",
	LBrace:           "{",
	RBrace:           "}",
	LBracket:         "[",
	RBracket:         "]",
	Comma:            ",",
	Colon:            ":",
	Semicolon:        ";",
	Dot:              ".",
	At:               "@",
	Hash:             "#",
	Backslash:        "\\",
	Underscore:       "_",
	Arrow:            "->",
	Assign:           "=",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	Slash:            "/",
	Percent:          "%",
	Bang:             "!",
	Question:         "?",
	Lt:               "<",
	Gt:               ">",
	Amp:              "&",
	Pipe:             "|",
	Caret:            "^",
	Tilde:            "~",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwStruct && k <= KwInout
}

// IsOperatorChar reports whether k is one of the single-character operator tokens.
func (k Kind) IsOperatorChar() bool {
	return k >= Assign && k <= Tilde
}
