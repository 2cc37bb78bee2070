package lexer

import (
	"macroessentials/internal/diag"
	"macroessentials/internal/token"
)

// Поддержка: 0b.., 0o.., 0x.. (включая hex float с 'p'), 123, 1_000, 1.5, 1e-3.
// "1." числом не считается: точка остаётся для member access (`1.description`).
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'b':
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.eatDigits(func(b byte) bool { return b == '0' || b == '1' })
			return lx.finishNumber(kind, start)
		case 'o':
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.eatDigits(func(b byte) bool { return b >= '0' && b <= '7' })
			return lx.finishNumber(kind, start)
		case 'x':
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.eatDigits(isHex)
			if lx.cursor.Peek() == '.' && isHex(lx.cursor.PeekAt(1)) {
				kind = token.FloatLit
				lx.cursor.Bump()
				lx.eatDigits(isHex)
			}
			if b := lx.cursor.Peek(); b == 'p' || b == 'P' {
				kind = token.FloatLit
				if !lx.scanExponent() {
					return lx.badNumber(start, "expected digit after exponent")
				}
			}
			return lx.finishNumber(kind, start)
		}
	}

	lx.eatDigits(isDec)
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.eatDigits(isDec)
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		if !lx.scanExponent() {
			return lx.badNumber(start, "expected digit after exponent")
		}
	}
	return lx.finishNumber(kind, start)
}

func (lx *Lexer) eatDigits(ok func(byte) bool) {
	for {
		b := lx.cursor.Peek()
		if !ok(b) && b != '_' {
			return
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scanExponent() bool {
	lx.cursor.Bump() // e/E/p/P
	if b := lx.cursor.Peek(); b == '+' || b == '-' {
		lx.cursor.Bump()
	}
	if !isDec(lx.cursor.Peek()) {
		return false
	}
	lx.eatDigits(isDec)
	return true
}

// finishNumber rejects identifier characters glued to the literal (`12abc`).
func (lx *Lexer) finishNumber(kind token.Kind, start Mark) token.Token {
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.badNumber(start, "invalid character in number literal")
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexBadNumber, tok.Span, msg)
	return tok
}
