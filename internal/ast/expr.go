package ast

import (
	"macroessentials/internal/source"
)

type ExprKind uint8

const (
	ExprIntLit ExprKind = iota
	ExprFloatLit
	ExprBoolLit
	ExprStringLit
	ExprNilLit
	ExprIdent
	// ExprMember is `base.name`; Base is NoExprID for the implicit form `.name`.
	ExprMember
	ExprCall
	ExprSubscript
	ExprArray
	ExprDict
	ExprTuple
	ExprParen
	ExprClosure
	// ExprSequence is an unfolded infix chain: operand, operator, operand, ...
	ExprSequence
	// Operator elements; they only appear inside ExprSequence.
	ExprBinaryOp
	ExprAssignOp
	ExprAsOp
	ExprIsOp
	ExprTernaryOp
	// ExprTypeRef wraps a type used as an operand (`x as T`).
	ExprTypeRef
	ExprPrefix
	ExprPostfix
	ExprTry
	ExprAwait
	// ExprOpaque is syntax the analysis never inspects (key paths, #selector, if-expressions).
	ExprOpaque
)

var exprKindNames = [...]string{
	ExprIntLit:    "IntegerLiteral",
	ExprFloatLit:  "FloatLiteral",
	ExprBoolLit:   "BooleanLiteral",
	ExprStringLit: "StringLiteral",
	ExprNilLit:    "NilLiteral",
	ExprIdent:     "DeclReference",
	ExprMember:    "MemberAccess",
	ExprCall:      "FunctionCall",
	ExprSubscript: "SubscriptCall",
	ExprArray:     "Array",
	ExprDict:      "Dictionary",
	ExprTuple:     "Tuple",
	ExprParen:     "Paren",
	ExprClosure:   "Closure",
	ExprSequence:  "Sequence",
	ExprBinaryOp:  "BinaryOperator",
	ExprAssignOp:  "Assignment",
	ExprAsOp:      "UnresolvedAs",
	ExprIsOp:      "UnresolvedIs",
	ExprTernaryOp: "UnresolvedTernary",
	ExprTypeRef:   "TypeExpr",
	ExprPrefix:    "PrefixOperator",
	ExprPostfix:   "PostfixOperator",
	ExprTry:       "Try",
	ExprAwait:     "Await",
	ExprOpaque:    "Opaque",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

// IsLiteral reports literal kinds, nil included.
func (k ExprKind) IsLiteral() bool {
	return k <= ExprNilLit
}

type Expr struct {
	Kind      ExprKind
	Span      source.Span
	Payload   PayloadID
	Synthetic bool
}

// CastMark distinguishes `as`, `as?` and `as!`; also reused for `try?`/`try!`.
type CastMark uint8

const (
	CastPlain CastMark = iota
	CastOptional
	CastForced
)

func (m CastMark) Suffix() string {
	switch m {
	case CastOptional:
		return "?"
	case CastForced:
		return "!"
	}
	return ""
}

type ExprLiteralData struct {
	// Raw is the literal exactly as written (quotes included for strings).
	Raw          source.StringID
	Interpolated bool
}

type ExprIdentData struct {
	Name        source.StringID
	GenericArgs []TypeID // `Array<Int>` в позиции выражения
}

type ExprMemberData struct {
	Base     ExprID
	Name     source.StringID
	NameSpan source.Span
}

type CallArg struct {
	Label source.StringID // NoStringID если метки нет
	Value ExprID
	Span  source.Span
}

type ExprCallData struct {
	Callee   ExprID
	Args     []CallArg
	Trailing []ExprID // trailing closures
}

type ExprArrayData struct {
	Elems []ExprID
}

type DictEntry struct {
	Key   ExprID
	Value ExprID
}

type ExprDictData struct {
	Entries []DictEntry
}

type TupleElem struct {
	Label source.StringID
	Value ExprID
}

type ExprTupleData struct {
	Elems []TupleElem
}

type ClosureParam struct {
	Name source.StringID
	Type TypeID // NoTypeID для `{ a, b in }`
	Span source.Span
}

type ExprClosureData struct {
	HasSignature bool
	Params       []ClosureParam
	IsAsync      bool
	Throws       bool
	Return       TypeID
	Stmts        []StmtID
}

type ExprSequenceData struct {
	Elems []ExprID
}

// ExprOperatorData covers every operator element of a sequence.
type ExprOperatorData struct {
	Op   source.StringID // текст оператора для ExprBinaryOp
	Mark CastMark        // ExprAsOp
	Then ExprID          // ExprTernaryOp: выражение между ? и :
}

// ExprUnaryData covers prefix/postfix operators, try, await and parens.
type ExprUnaryData struct {
	Op      source.StringID
	Mark    CastMark
	Operand ExprID
}

type ExprTypeRefData struct {
	Type TypeID
}
