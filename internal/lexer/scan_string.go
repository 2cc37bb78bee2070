package lexer

import (
	"macroessentials/internal/diag"
	"macroessentials/internal/token"
)

func (lx *Lexer) scanString(hashes int) token.Token {
	return lx.scanStringBody(lx.cursor.Mark(), hashes)
}

// isRawStringStart: текущий '#', за ним ещё '#' и затем '"'.
func (lx *Lexer) isRawStringStart() bool {
	var n uint32
	for lx.cursor.PeekAt(n) == '#' {
		n++
	}
	return n > 0 && lx.cursor.PeekAt(n) == '"'
}

func (lx *Lexer) scanRawString() token.Token {
	start := lx.cursor.Mark()
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	return lx.scanStringBody(start, hashes)
}

// scanStringBody scans "...", """...""" and their raw #"..."# forms.
// The cursor sits on the opening quote; start may include leading '#'.
func (lx *Lexer) scanStringBody(start Mark, hashes int) token.Token {
	multiline := lx.cursor.HasPrefix(`"""`)
	if multiline {
		lx.cursor.Bump()
		lx.cursor.Bump()
	}
	lx.cursor.Bump()

	kind := token.StringLit
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\n' && !multiline:
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "newline in string literal")
			return tok
		case b == '\\' && lx.hashesFollow(1, hashes):
			lx.cursor.Bump()
			for range hashes {
				lx.cursor.Bump()
			}
			if lx.cursor.Peek() == '(' {
				kind = token.InterpStringLit
				lx.cursor.Bump()
				lx.skipInterpolation()
				continue
			}
			lx.cursor.Bump()
		case b == '"' && lx.closesString(multiline, hashes):
			n := 1
			if multiline {
				n = 3
			}
			for range n + hashes {
				lx.cursor.Bump()
			}
			return lx.emit(kind, start)
		default:
			lx.cursor.Bump()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}

func (lx *Lexer) hashesFollow(from uint32, hashes int) bool {
	for i := range hashes {
		if lx.cursor.PeekAt(from+uint32(i)) != '#' { // #nosec G115 -- hashes is tiny
			return false
		}
	}
	return true
}

func (lx *Lexer) closesString(multiline bool, hashes int) bool {
	var quotes uint32 = 1
	if multiline {
		if !lx.cursor.HasPrefix(`"""`) {
			return false
		}
		quotes = 3
	}
	return lx.hashesFollow(quotes, hashes)
}

// skipInterpolation consumes `...)` after `\(`, honouring nested parens and strings.
func (lx *Lexer) skipInterpolation() {
	depth := 1
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				lx.cursor.Bump()
				return
			}
		case '"':
			lx.scanString(0)
			continue
		case '\n':
			return
		}
		lx.cursor.Bump()
	}
}
