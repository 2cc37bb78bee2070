package parser

import (
	"macroessentials/internal/ast"
	"macroessentials/internal/diag"
	"macroessentials/internal/source"
	"macroessentials/internal/token"
)

// parseStmts разбирает операторы тела замыкания до '}' (её не съедает).
// Разбираются только выражения, return и локальные декларации; всё прочее
// пропускается как StmtOther.
func (p *Parser) parseStmts() []ast.StmtID {
	var stmts []ast.StmtID
	for !p.atOr(token.RBrace, token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		stmts = append(stmts, p.parseStmt())
	}
	return stmts
}

func (p *Parser) parseStmt() ast.StmtID {
	start := p.peek().Span
	tok := p.peek()
	switch {
	case tok.Kind == token.KwReturn:
		p.advance()
		var value ast.ExprID
		if !p.atOr(token.RBrace, token.Semicolon, token.EOF) && !p.peek().HasLeadingNewline() {
			expr, ok := p.parseExpr()
			if !ok {
				return p.skipStmtFrom(start)
			}
			value = expr
		}
		return p.arenas.Stmts.New(ast.StmtReturn, p.spanFrom(start), value, ast.NoItemID)

	case p.atDeclStart():
		item, ok := p.parseDecl()
		if !ok {
			return p.skipStmtFrom(start)
		}
		return p.arenas.Stmts.New(ast.StmtDecl, p.spanFrom(start), ast.NoExprID, item)

	case isStmtKeyword(tok.Kind), tok.IsWord("break"), tok.IsWord("continue"), tok.IsWord("fallthrough"):
		return p.skipStmtFrom(start)
	}

	expr, ok := p.parseExpr()
	if !ok {
		return p.skipStmtFrom(start)
	}
	if next := p.peek(); !next.HasLeadingNewline() && !p.atOr(token.RBrace, token.Semicolon, token.EOF) {
		p.err(diag.SynUnexpectedToken, "consecutive statements on a line must be separated by ';'")
		return p.skipStmtFrom(start)
	}
	return p.arenas.Stmts.New(ast.StmtExpr, p.spanFrom(start), expr, ast.NoItemID)
}

func isStmtKeyword(k token.Kind) bool {
	switch k {
	case token.KwIf, token.KwGuard, token.KwFor, token.KwWhile, token.KwRepeat, token.KwSwitch,
		token.KwDo, token.KwDefer, token.KwThrow, token.KwCatch, token.KwCase, token.KwDefault:
		return true
	}
	return false
}

// skipStmtFrom пропускает остаток оператора и оформляет его как StmtOther.
func (p *Parser) skipStmtFrom(start source.Span) ast.StmtID {
	before := p.pos
	p.skipStatement()
	if p.pos == before && !p.atOr(token.RBrace, token.EOF) {
		p.advance()
	}
	return p.arenas.Stmts.New(ast.StmtOther, p.spanFrom(start), ast.NoExprID, ast.NoItemID)
}
