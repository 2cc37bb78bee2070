package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectType         Code = 2004
	SynExpectExpression   Code = 2005
	SynExpectPattern      Code = 2006
	SynExpectBody         Code = 2007
	SynUnexpectedTopLevel Code = 2008

	// Макро-анализ
	SemaInfo               Code = 3000
	SemaCannotInferType    Code = 3001
	SemaMacroMisuse        Code = 3002
	SemaMacroNotApplicable Code = 3003
	SemaComputedProperty   Code = 3004
	SemaStaticProperty     Code = 3005
	SemaMissingConformance Code = 3006

	// I/O
	IOLoadFileError Code = 4001

	// Проект / конфигурация
	ProjInfo          Code = 5000
	ProjInvalidConfig Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number literal",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectType:               "Expected type",
	SynExpectExpression:         "Expected expression",
	SynExpectPattern:            "Expected binding pattern",
	SynExpectBody:               "Expected declaration body",
	SynUnexpectedTopLevel:       "Unexpected top-level construct",
	SemaInfo:                    "Macro analysis information",
	SemaCannotInferType:         "Type cannot be inferred",
	SemaMacroMisuse:             "Macro misuse",
	SemaMacroNotApplicable:      "Macro cannot be applied here",
	SemaComputedProperty:        "Computed property ignored by macro",
	SemaStaticProperty:          "Static property ignored by macro",
	SemaMissingConformance:      "Missing protocol conformance",
	IOLoadFileError:             "I/O load file error",
	ProjInfo:                    "Project information",
	ProjInvalidConfig:           "Invalid configuration file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
