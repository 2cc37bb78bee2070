package parser

import (
	"macroessentials/internal/ast"
	"macroessentials/internal/diag"
	"macroessentials/internal/source"
	"macroessentials/internal/token"
)

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		return p.literal(ast.ExprIntLit, false), true
	case token.FloatLit:
		return p.literal(ast.ExprFloatLit, false), true
	case token.StringLit:
		return p.literal(ast.ExprStringLit, false), true
	case token.InterpStringLit:
		return p.literal(ast.ExprStringLit, true), true
	case token.KwTrue, token.KwFalse:
		return p.literal(ast.ExprBoolLit, false), true
	case token.KwNil:
		return p.literal(ast.ExprNilLit, false), true

	case token.Ident, token.Underscore, token.KwInit:
		p.advance()
		var generics []ast.TypeID
		if p.at(token.Lt) && p.glued(0) && p.looksLikeGenericArgs() {
			args, ok := p.parseGenericArgs()
			if !ok {
				return ast.NoExprID, false
			}
			generics = args
		}
		return p.arenas.Exprs.NewIdent(p.spanFrom(tok.Span), p.intern(tok.IdentName()), generics), true

	case token.Dot:
		// неявный член: .red, .init(x:)
		if isMemberName(p.peekAt(1)) {
			p.advance()
			name := p.advance()
			return p.arenas.Exprs.NewMember(p.spanFrom(tok.Span), ast.NoExprID, p.intern(name.IdentName()), name.Span), true
		}

	case token.LParen:
		return p.parseParenOrTuple()
	case token.LBracket:
		return p.parseCollectionLiteral()
	case token.LBrace:
		return p.parseClosure()

	case token.Backslash:
		return p.parseKeyPath(), true
	case token.Hash:
		return p.parseMacroExpansion(), true
	case token.KwIf, token.KwSwitch:
		return p.parseControlExpr(), true
	case token.Lt:
		if p.peekAt(1).Kind == token.Hash && p.glued(1) {
			typ, ok := p.parsePlaceholderType()
			if !ok {
				return ast.NoExprID, false
			}
			return p.arenas.Exprs.NewOpaque(p.arenas.Types.Get(typ).Span), true
		}
	}
	p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
	return ast.NoExprID, false
}

func (p *Parser) literal(kind ast.ExprKind, interpolated bool) ast.ExprID {
	tok := p.advance()
	raw := p.arenas.Strings.Intern(tok.Text)
	return p.arenas.Exprs.NewLiteral(kind, tok.Span, raw, interpolated)
}

// looksLikeGenericArgs заглядывает за '<' и решает, список ли это аргументов
// типа (`Set<Int>()`) или оператор сравнения (`a < b`).
func (p *Parser) looksLikeGenericArgs() bool {
	depth := 0
	for n := 0; ; n++ {
		tok := p.peekAt(n)
		switch tok.Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
			if depth == 0 {
				switch p.peekAt(n + 1).Kind {
				case token.LParen, token.Dot, token.RParen, token.Comma, token.RBracket,
					token.RBrace, token.EOF, token.Semicolon, token.Colon:
					return true
				}
				return p.peekAt(n + 1).HasLeadingNewline()
			}
		case token.Ident, token.Underscore, token.Dot, token.Comma, token.Colon, token.LBracket,
			token.RBracket, token.LParen, token.RParen, token.Question, token.Bang, token.Arrow,
			token.Amp, token.At, token.KwInout, token.KwThrows:
		default:
			return false
		}
	}
}

// parseParenOrTuple: `()`, `(x)`, `(a, b)`, `(x: 1, y: 2)`.
func (p *Parser) parseParenOrTuple() (ast.ExprID, bool) {
	open := p.advance()
	var elems []ast.TupleElem
	for !p.at(token.RParen) {
		var elem ast.TupleElem
		tok := p.peek()
		if (tok.Kind == token.Ident || tok.Kind == token.Underscore) && p.peekAt(1).Kind == token.Colon {
			elem.Label = p.intern(tok.IdentName())
			p.advance()
			p.advance()
		}
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elem.Value = value
		elems = append(elems, elem)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'"); !ok {
		return ast.NoExprID, false
	}
	span := p.spanFrom(open.Span)
	if len(elems) == 1 && elems[0].Label == source.NoStringID {
		return p.arenas.Exprs.NewUnary(ast.ExprParen, span, ast.ExprUnaryData{Operand: elems[0].Value}), true
	}
	return p.arenas.Exprs.NewTuple(span, elems), true
}

// parseCollectionLiteral: `[]`, `[:]`, `[a, b]`, `[k: v, ...]`.
func (p *Parser) parseCollectionLiteral() (ast.ExprID, bool) {
	open := p.advance()
	if p.at(token.RBracket) {
		p.advance()
		return p.arenas.Exprs.NewArray(p.spanFrom(open.Span), nil), true
	}
	if p.at(token.Colon) && p.peekAt(1).Kind == token.RBracket {
		p.advance()
		p.advance()
		return p.arenas.Exprs.NewDict(p.spanFrom(open.Span), nil), true
	}

	first, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if p.at(token.Colon) {
		var entries []ast.DictEntry
		key := first
		for {
			if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in dictionary literal"); !ok {
				return ast.NoExprID, false
			}
			value, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			entries = append(entries, ast.DictEntry{Key: key, Value: value})
			if !p.at(token.Comma) {
				break
			}
			p.advance()
			if p.at(token.RBracket) {
				break
			}
			if key, ok = p.parseExpr(); !ok {
				return ast.NoExprID, false
			}
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close dictionary literal"); !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewDict(p.spanFrom(open.Span), entries), true
	}

	elems := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		if p.at(token.RBracket) {
			break
		}
		next, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, next)
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close array literal"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArray(p.spanFrom(open.Span), elems), true
}

// parseKeyPath: `\Type.member?.other` — анализ внутрь не смотрит.
func (p *Parser) parseKeyPath() ast.ExprID {
	start := p.advance().Span
	if p.at(token.Ident) && p.glued(0) {
		p.advance()
	}
	for p.glued(0) {
		switch {
		case p.at(token.Dot) && isMemberName(p.peekAt(1)):
			p.advance()
			p.advance()
		case p.atOr(token.Question, token.Bang):
			p.advance()
		case p.at(token.LBracket):
			p.skipBalanced()
		default:
			return p.arenas.Exprs.NewOpaque(p.spanFrom(start))
		}
	}
	return p.arenas.Exprs.NewOpaque(p.spanFrom(start))
}

// parseMacroExpansion: `#line`, `#selector(f)`, `#URL("...")`.
func (p *Parser) parseMacroExpansion() ast.ExprID {
	start := p.advance().Span
	if p.glued(0) && (p.at(token.Ident) || p.peek().Kind.IsKeyword()) {
		p.advance()
	}
	if p.at(token.LParen) && p.glued(0) {
		p.skipBalanced()
	}
	if p.atTrailingClosure() {
		p.skipBalanced()
	}
	return p.arenas.Exprs.NewOpaque(p.spanFrom(start))
}

// parseControlExpr пропускает if/switch-выражения.
func (p *Parser) parseControlExpr() ast.ExprID {
	start := p.peek().Span
	for {
		p.advance() // if | switch
		for !p.atOr(token.LBrace, token.EOF, token.RBrace) {
			if !p.skipBracketed() {
				p.advance()
			}
		}
		if p.at(token.LBrace) {
			p.skipBalanced()
		}
		if !p.at(token.KwElse) {
			break
		}
		p.advance()
		if !p.at(token.KwIf) {
			if p.at(token.LBrace) {
				p.skipBalanced()
			}
			break
		}
	}
	return p.arenas.Exprs.NewOpaque(p.spanFrom(start))
}
