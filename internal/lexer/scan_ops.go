package lexer

import (
	"macroessentials/internal/diag"
	"macroessentials/internal/token"
)

// Операторы выдаются по одному символу; склейку делает парсер по отсутствию trivia.
// Единственное исключение: "->".
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.HasPrefix("->") {
		lx.cursor.Bump()
		lx.cursor.Bump()
		return lx.emit(token.Arrow, start)
	}

	ch := lx.cursor.Bump()
	if k, ok := punct[ch]; ok {
		return lx.emit(k, start)
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character")
	return tok
}

var punct = map[byte]token.Kind{
	'(':  token.LParen,
	')':  token.RParen,
	'{':  token.LBrace,
	'}':  token.RBrace,
	'[':  token.LBracket,
	']':  token.RBracket,
	',':  token.Comma,
	':':  token.Colon,
	';':  token.Semicolon,
	'.':  token.Dot,
	'@':  token.At,
	'#':  token.Hash,
	'\\': token.Backslash,
	'=':  token.Assign,
	'+':  token.Plus,
	'-':  token.Minus,
	'*':  token.Star,
	'/':  token.Slash,
	'%':  token.Percent,
	'!':  token.Bang,
	'?':  token.Question,
	'<':  token.Lt,
	'>':  token.Gt,
	'&':  token.Amp,
	'|':  token.Pipe,
	'^':  token.Caret,
	'~':  token.Tilde,
}
