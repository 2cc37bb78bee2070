package parser

import (
	"macroessentials/internal/ast"
	"macroessentials/internal/diag"
	"macroessentials/internal/token"
)

// parseClosure разбирает `{ [captures] (params) async throws -> R in stmts }`.
func (p *Parser) parseClosure() (ast.ExprID, bool) {
	open := p.advance()
	var data ast.ExprClosureData
	if p.closureHasSignature() {
		if !p.parseClosureSignature(&data) {
			return ast.NoExprID, false
		}
	}
	data.Stmts = p.parseStmts()
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close closure"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewClosure(p.spanFrom(open.Span), data), true
}

// closureHasSignature ищет `in` до первого токена, который не может
// встретиться в сигнатуре замыкания.
func (p *Parser) closureHasSignature() bool {
	n := 0
	for {
		tok := p.peekAt(n)
		switch tok.Kind {
		case token.KwIn:
			return true
		case token.LParen, token.LBracket:
			n = p.parenEnd(n)
			continue
		case token.Ident, token.Underscore, token.Comma, token.Colon, token.Dot, token.Arrow,
			token.Question, token.Bang, token.Lt, token.Gt, token.Amp, token.At,
			token.KwInout, token.KwThrows, token.KwRethrows:
			n++
			continue
		}
		return false
	}
}

func (p *Parser) parseClosureSignature(data *ast.ExprClosureData) bool {
	data.HasSignature = true
	if p.at(token.LBracket) {
		p.skipBalanced() // capture list
	}
	for p.at(token.At) {
		if _, ok := p.parseAttribute(); !ok {
			return false
		}
	}

	if p.at(token.LParen) {
		p.advance()
		for !p.at(token.RParen) {
			param, ok := p.parseClosureParam()
			if !ok {
				return false
			}
			data.Params = append(data.Params, param)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close closure parameters"); !ok {
			return false
		}
	} else {
		for p.atOr(token.Ident, token.Underscore) {
			name := p.advance()
			data.Params = append(data.Params, ast.ClosureParam{Name: p.intern(name.IdentName()), Span: name.Span})
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}

	for {
		if p.atWord("async") {
			p.advance()
			data.IsAsync = true
			continue
		}
		if p.atOr(token.KwThrows, token.KwRethrows) {
			p.advance()
			data.Throws = true
			if p.at(token.LParen) && p.glued(0) {
				p.skipBalanced()
			}
			continue
		}
		break
	}
	if p.at(token.Arrow) {
		p.advance()
		ret, ok := p.parseType()
		if !ok {
			return false
		}
		data.Return = ret
	}
	_, ok := p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in' after closure signature")
	return ok
}

// parseClosureParam: `x`, `x: Int`, `_ x: Int`.
func (p *Parser) parseClosureParam() (ast.ClosureParam, bool) {
	start := p.peek().Span
	if !p.atOr(token.Ident, token.Underscore) {
		p.err(diag.SynExpectIdentifier, "expected closure parameter name, got "+describe(p.peek()))
		return ast.ClosureParam{}, false
	}
	name := p.advance()
	if p.atOr(token.Ident, token.Underscore) {
		name = p.advance()
	}
	param := ast.ClosureParam{Name: p.intern(name.IdentName())}
	if p.at(token.Colon) {
		p.advance()
		typ, ok := p.parseType()
		if !ok {
			return ast.ClosureParam{}, false
		}
		param.Type = typ
	}
	param.Span = p.spanFrom(start)
	return param, true
}
