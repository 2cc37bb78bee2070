package parser

import (
	"macroessentials/internal/ast"
	"macroessentials/internal/diag"
	"macroessentials/internal/source"
	"macroessentials/internal/token"
)

// parseAttributes разбирает префикс `@A @B(args)`. Возвращает NoAttrListID, если атрибутов нет.
func (p *Parser) parseAttributes() ast.AttrListID {
	if !p.at(token.At) {
		return ast.NoAttrListID
	}
	var ids []ast.AttrID
	start := p.peek().Span
	for p.at(token.At) {
		attr, ok := p.parseAttribute()
		if !ok {
			break
		}
		ids = append(ids, p.arenas.Items.NewAttr(attr))
	}
	if len(ids) == 0 {
		return ast.NoAttrListID
	}
	// список тянется до следующего токена, чтобы разделитель последнего атрибута входил в него
	next := p.peek().Span
	span := source.Span{File: start.File, Start: start.Start, End: next.Start}
	return p.arenas.Items.NewAttrList(ast.AttrList{Attrs: ids, Span: span})
}

func (p *Parser) parseAttribute() (ast.Attr, bool) {
	at := p.advance()
	if !p.at(token.Ident) || !p.glued(0) {
		p.err(diag.SynExpectIdentifier, "expected attribute name after '@'")
		return ast.Attr{}, false
	}
	first := p.advance()
	nameSpan := first.Span
	for p.at(token.Dot) && p.glued(0) && p.peekAt(1).Kind == token.Ident {
		p.advance()
		nameSpan = nameSpan.Cover(p.advance().Span)
	}
	if p.at(token.Lt) && p.glued(0) {
		p.skipGenericClause()
		nameSpan = nameSpan.Cover(p.lastSpan)
	}
	attr := ast.Attr{
		Name:     p.intern(p.text(nameSpan)),
		NameSpan: nameSpan,
	}
	if p.at(token.LParen) && p.glued(0) {
		attr.ArgsSpan = p.skipBalanced()
	}
	attr.Span = p.spanFrom(at.Span)
	attr.Trailing = p.src.Slice(source.Span{File: attr.Span.File, Start: attr.Span.End, End: p.peek().Span.Start})
	return attr, true
}

// skipGenericClause consumes `<...>`, counting nested angle brackets.
func (p *Parser) skipGenericClause() source.Span {
	open := p.advance()
	depth := 1
	for depth > 0 {
		switch p.peek().Kind {
		case token.EOF, token.LBrace, token.Semicolon:
			p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed '<'")
			return p.spanFrom(open.Span)
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.LParen, token.LBracket:
			p.skipBalanced()
			continue
		}
		p.advance()
	}
	return p.spanFrom(open.Span)
}
