package token

var keywords = map[string]Kind{
	"struct":         KwStruct,
	"class":          KwClass,
	"enum":           KwEnum,
	"extension":      KwExtension,
	"protocol":       KwProtocol,
	"let":            KwLet,
	"var":            KwVar,
	"func":           KwFunc,
	"init":           KwInit,
	"deinit":         KwDeinit,
	"subscript":      KwSubscript,
	"typealias":      KwTypealias,
	"associatedtype": KwAssociatedtype,
	"import":         KwImport,
	"static":         KwStatic,
	"return":         KwReturn,
	"try":            KwTry,
	"await":          KwAwait,
	"as":             KwAs,
	"is":             KwIs,
	"nil":            KwNil,
	"true":           KwTrue,
	"false":          KwFalse,
	"in":             KwIn,
	"case":           KwCase,
	"if":             KwIf,
	"else":           KwElse,
	"guard":          KwGuard,
	"for":            KwFor,
	"while":          KwWhile,
	"repeat":         KwRepeat,
	"switch":         KwSwitch,
	"default":        KwDefault,
	"do":             KwDo,
	"catch":          KwCatch,
	"throw":          KwThrow,
	"throws":         KwThrows,
	"rethrows":       KwRethrows,
	"defer":          KwDefer,
	"where":          KwWhere,
	"inout":          KwInout,
}

// LookupKeyword возвращает Kind ключевого слова. Регистр важен.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
