package parser

import (
	"macroessentials/internal/ast"
	"macroessentials/internal/diag"
	"macroessentials/internal/source"
	"macroessentials/internal/token"
)

// Тела функций, условия и прочий код, который анализу не нужен, пропускаются
// целиком. Пропуск уважает вложенность скобок и границы строк.

func closerOf(k token.Kind) token.Kind {
	switch k {
	case token.LParen:
		return token.RParen
	case token.LBracket:
		return token.RBracket
	default:
		return token.RBrace
	}
}

// skipBalanced consumes an opening bracket and everything up to its matching closer.
func (p *Parser) skipBalanced() source.Span {
	open := p.advance()
	closer := closerOf(open.Kind)
	depth := 1
	for depth > 0 {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF:
			p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed '"+open.Text+"'")
			return p.spanFrom(open.Span)
		case open.Kind:
			depth++
		case closer:
			depth--
		}
		p.advance()
	}
	return p.spanFrom(open.Span)
}

func (p *Parser) skipBracketed() bool {
	switch p.peek().Kind {
	case token.LParen, token.LBracket, token.LBrace:
		p.skipBalanced()
		return true
	}
	return false
}

// continuesStatement reports tokens that, at the start of a line, still belong
// to the statement above.
func continuesStatement(tok token.Token) bool {
	switch tok.Kind {
	case token.KwElse, token.KwCatch, token.KwWhere, token.Dot, token.LBrace, token.Arrow,
		token.KwAs, token.KwIs:
		return true
	}
	return tok.Kind.IsOperatorChar() && tok.Kind != token.Bang
}

// prevExpectsMore reports that the last consumed token cannot end a statement.
func (p *Parser) prevExpectsMore() bool {
	if p.pos == 0 {
		return false
	}
	prev := p.toks[p.pos-1]
	switch prev.Kind {
	case token.Comma, token.Dot, token.Colon, token.Arrow, token.KwAs, token.KwIs,
		token.KwTry, token.KwAwait, token.KwIf, token.KwGuard, token.KwWhile, token.KwFor,
		token.KwIn, token.KwSwitch, token.KwCase, token.KwThrow:
		return true
	}
	return prev.Kind.IsOperatorChar() && prev.Kind != token.Bang && prev.Kind != token.Question
}

// continuesDecl reports tokens that may open a line inside a signature:
// `-> T`, `where`, `throws`, Allman-style `{`.
func continuesDecl(tok token.Token) bool {
	switch tok.Kind {
	case token.Arrow, token.KwWhere, token.LBrace, token.KwThrows, token.KwRethrows, token.Dot, token.Comma:
		return true
	}
	return tok.IsWord("async") || (tok.Kind.IsOperatorChar() && tok.Kind != token.Bang)
}

// skipStatement consumes one statement without building nodes.
func (p *Parser) skipStatement() {
	first := true
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF, token.RBrace, token.RParen, token.RBracket:
			return
		case token.Semicolon:
			p.advance()
			return
		}
		if !first && tok.HasLeadingNewline() && !continuesStatement(tok) && !p.prevExpectsMore() {
			return
		}
		first = false
		if !p.skipBracketed() {
			p.advance()
		}
	}
}

// skipStatementItem wraps a skipped top-level statement into an ItemOther.
func (p *Parser) skipStatementItem() ast.ItemID {
	start := p.peek().Span
	before := p.pos
	p.skipStatement()
	if p.pos == before {
		p.advance()
	}
	return p.arenas.Items.NewSimple(ast.ItemOther, p.spanFrom(start), ast.SimpleDecl{})
}

// skipDeclTail consumes the rest of a declaration the analysis only needs the
// shape of: signatures, bodies, raw values. Stops after a body or before the
// next declaration.
func (p *Parser) skipDeclTail() {
	for {
		tok := p.peek()
		if tok.HasLeadingNewline() && !p.prevExpectsMore() && (p.atDeclStart() || !continuesDecl(tok)) {
			return
		}
		switch tok.Kind {
		case token.EOF, token.RBrace, token.Semicolon, token.RParen, token.RBracket:
			return
		case token.LBrace:
			p.skipBalanced()
			return
		}
		if !p.skipBracketed() {
			p.advance()
		}
	}
}

// skipCompilerDirective drops `#if cond`, `#elseif cond`, `#else` and `#endif`
// lines; declarations between them are parsed as if the directives were absent.
func (p *Parser) skipCompilerDirective() bool {
	if !p.at(token.Hash) || !p.glued(1) {
		return false
	}
	word := p.peekAt(1)
	switch {
	case word.Kind == token.KwIf, word.IsWord("elseif"):
		p.advance()
		p.advance()
		for !p.at(token.EOF) && !p.peek().HasLeadingNewline() {
			if !p.skipBracketed() {
				p.advance()
			}
		}
		return true
	case word.Kind == token.KwElse, word.IsWord("endif"):
		p.advance()
		p.advance()
		return true
	}
	return false
}

// resyncDecl — восстановление после ошибки: прокручиваем до начала следующей декларации.
func (p *Parser) resyncDecl() {
	before := p.pos
	p.skipDeclTail()
	if p.pos == before && !p.at(token.EOF) && !p.at(token.RBrace) {
		p.advance()
	}
}
