package parser

import (
	"macroessentials/internal/ast"
	"macroessentials/internal/diag"
	"macroessentials/internal/token"
)

// parseExpr разбирает выражение как плоскую инфиксную последовательность:
// operand (op operand)*. Приоритеты не сворачиваются: анализу нужны только
// форма `lhs as T` и отдельные операнды.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	start := p.peek().Span
	first, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	elems := []ast.ExprID{first}
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.KwAs || tok.Kind == token.KwIs:
			opStart := p.advance().Span
			kind := ast.ExprIsOp
			if tok.Kind == token.KwAs {
				kind = ast.ExprAsOp
			}
			mark := ast.CastPlain
			if p.glued(0) {
				switch p.peek().Kind {
				case token.Question:
					mark = ast.CastOptional
					p.advance()
				case token.Bang:
					mark = ast.CastForced
					p.advance()
				}
			}
			op := p.arenas.Exprs.NewOperator(kind, p.spanFrom(opStart), ast.ExprOperatorData{Mark: mark})
			typ, ok := p.parseType()
			if !ok {
				return ast.NoExprID, false
			}
			ref := p.arenas.Exprs.NewTypeRef(p.arenas.Types.Get(typ).Span, typ)
			elems = append(elems, op, ref)
			continue

		case tok.Kind == token.Question && tok.HasLeadingSpace():
			q := p.advance()
			then, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in ternary expression"); !ok {
				return ast.NoExprID, false
			}
			op := p.arenas.Exprs.NewOperator(ast.ExprTernaryOp, q.Span, ast.ExprOperatorData{Then: then})
			rhs, ok := p.parseUnary()
			if !ok {
				return ast.NoExprID, false
			}
			elems = append(elems, op, rhs)
			continue
		}

		text, n := p.operatorAt(0)
		if n == 0 || !p.isInfixAt(n) {
			break
		}
		opStart := p.peek().Span
		for range n {
			p.advance()
		}
		var op ast.ExprID
		if text == "=" {
			op = p.arenas.Exprs.NewOperator(ast.ExprAssignOp, p.spanFrom(opStart), ast.ExprOperatorData{})
		} else {
			op = p.arenas.Exprs.NewOperator(ast.ExprBinaryOp, p.spanFrom(opStart), ast.ExprOperatorData{Op: p.intern(text)})
		}
		rhs, ok := p.parseUnary()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, op, rhs)
	}
	if len(elems) == 1 {
		return first, true
	}
	return p.arenas.Exprs.NewSequence(p.spanFrom(start), elems), true
}

// isInfixAt: оператор из n токенов бинарный, если пробелы с обеих сторон
// одинаковые (`a + b`, `a+b`). `a -b` — это начало следующего выражения.
func (p *Parser) isInfixAt(n int) bool {
	before := p.peek().HasLeadingSpace()
	after := p.peekAt(n).HasLeadingSpace()
	if before != after {
		return false
	}
	switch p.peekAt(n).Kind {
	case token.EOF, token.RParen, token.RBracket, token.RBrace, token.Comma:
		return false
	}
	return true
}

func (p *Parser) parseUnary() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwTry:
		p.advance()
		mark := ast.CastPlain
		if p.glued(0) && p.atOr(token.Question, token.Bang) {
			if p.advance().Kind == token.Question {
				mark = ast.CastOptional
			} else {
				mark = ast.CastForced
			}
		}
		// try покрывает всю последовательность справа
		operand, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(ast.ExprTry, p.spanFrom(tok.Span), ast.ExprUnaryData{Mark: mark, Operand: operand}), true
	case token.KwAwait:
		p.advance()
		operand, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(ast.ExprAwait, p.spanFrom(tok.Span), ast.ExprUnaryData{Operand: operand}), true
	}

	if text, n := p.operatorAt(0); n > 0 && p.glued(n) {
		for range n {
			p.advance()
		}
		operand, ok := p.parsePostfixExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(ast.ExprPrefix, p.spanFrom(tok.Span), ast.ExprUnaryData{Op: p.intern(text), Operand: operand}), true
	}
	return p.parsePostfixExpr()
}

func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	start := p.peek().Span
	expr, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.Dot && p.peekAt(1).Kind != token.Dot && isMemberName(p.peekAt(1)):
			p.advance()
			name := p.advance()
			expr = p.arenas.Exprs.NewMember(p.spanFrom(start), expr, p.intern(name.IdentName()), name.Span)

		case tok.Kind == token.LParen && !tok.HasLeadingNewline():
			p.advance()
			args, ok := p.parseArgs(token.RParen)
			if !ok {
				return ast.NoExprID, false
			}
			trailing, ok := p.parseTrailingClosures()
			if !ok {
				return ast.NoExprID, false
			}
			expr = p.arenas.Exprs.NewCall(ast.ExprCall, p.spanFrom(start), expr, args, trailing)

		case tok.Kind == token.LBracket && !tok.HasLeadingNewline():
			p.advance()
			args, ok := p.parseArgs(token.RBracket)
			if !ok {
				return ast.NoExprID, false
			}
			expr = p.arenas.Exprs.NewCall(ast.ExprSubscript, p.spanFrom(start), expr, args, nil)

		case tok.Kind == token.LBrace && p.atTrailingClosure():
			trailing, ok := p.parseTrailingClosures()
			if !ok {
				return ast.NoExprID, false
			}
			expr = p.arenas.Exprs.NewCall(ast.ExprCall, p.spanFrom(start), expr, nil, trailing)

		case (tok.Kind == token.Question || tok.Kind == token.Bang) && !tok.HasLeadingSpace():
			p.advance()
			expr = p.arenas.Exprs.NewUnary(ast.ExprPostfix, p.spanFrom(start), ast.ExprUnaryData{Op: p.intern(tok.Text), Operand: expr})

		default:
			return expr, true
		}
	}
}

func isMemberName(tok token.Token) bool {
	return tok.Kind == token.Ident || tok.Kind == token.IntLit || tok.Kind.IsKeyword()
}

// atTrailingClosure: `{` на той же строке, и это не блок наблюдателей свойства.
func (p *Parser) atTrailingClosure() bool {
	tok := p.peek()
	return tok.Kind == token.LBrace && !tok.HasLeadingNewline() && !p.atAccessorList()
}

// parseTrailingClosures разбирает `{...}` и следующие за ним `label: {...}`.
func (p *Parser) parseTrailingClosures() ([]ast.ExprID, bool) {
	if !p.atTrailingClosure() {
		return nil, true
	}
	var out []ast.ExprID
	first, ok := p.parseClosure()
	if !ok {
		return nil, false
	}
	out = append(out, first)
	for (p.at(token.Ident) || p.at(token.Underscore)) && p.peekAt(1).Kind == token.Colon && p.peekAt(2).Kind == token.LBrace {
		p.advance()
		p.advance()
		next, ok := p.parseClosure()
		if !ok {
			return nil, false
		}
		out = append(out, next)
	}
	return out, true
}

// parseArgs разбирает `label: value, ...` до closer (съедает его).
func (p *Parser) parseArgs(closer token.Kind) ([]ast.CallArg, bool) {
	var args []ast.CallArg
	for !p.at(closer) {
		start := p.peek().Span
		var arg ast.CallArg
		tok := p.peek()
		if (tok.Kind == token.Ident || tok.Kind == token.Underscore || tok.Kind.IsKeyword()) && p.peekAt(1).Kind == token.Colon {
			arg.Label = p.intern(tok.IdentName())
			p.advance()
			p.advance()
		}
		if _, n := p.operatorAt(0); n > 0 && (p.peekAt(n).Kind == token.Comma || p.peekAt(n).Kind == closer) {
			// ссылка на оператор: reduce(0, +)
			opStart := p.peek().Span
			for range n {
				p.advance()
			}
			arg.Value = p.arenas.Exprs.NewOpaque(p.spanFrom(opStart))
		} else {
			value, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			arg.Value = value
		}
		arg.Span = p.spanFrom(start)
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	msg := "expected ')' to close argument list"
	if closer == token.RBracket {
		msg = "expected ']' to close subscript"
	}
	if _, ok := p.expect(closer, diag.SynUnclosedDelimiter, msg); !ok {
		return nil, false
	}
	return args, true
}
