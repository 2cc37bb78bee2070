package parser

import (
	"macroessentials/internal/ast"
	"macroessentials/internal/diag"
	"macroessentials/internal/source"
	"macroessentials/internal/token"
)

// parseTypeDecl разбирает struct/class/enum/actor/protocol/extension вместе с телом.
func (p *Parser) parseTypeDecl(start source.Span, header ast.DeclHeader, kind ast.TypeDeclKind) (ast.ItemID, bool) {
	kw := p.advance()
	decl := ast.TypeDecl{DeclHeader: header, Kind: kind, KeywordSpan: kw.Span}

	if kind == ast.TypeDeclExtension {
		ext, ok := p.parseType()
		if !ok {
			return ast.NoItemID, false
		}
		decl.NameSpan = p.arenas.Types.Get(ext).Span
		decl.Name = p.intern(p.text(decl.NameSpan))
	} else {
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected "+kind.String()+" name, got "+describe(p.peek()))
		if !ok {
			return ast.NoItemID, false
		}
		decl.Name = p.intern(name.IdentName())
		decl.NameSpan = name.Span
		if p.at(token.Lt) {
			decl.GenericSpan = p.skipGenericClause()
		}
	}

	if p.at(token.Colon) {
		p.advance()
		for {
			typ, ok := p.parseType()
			if !ok {
				return ast.NoItemID, false
			}
			decl.Inherits = append(decl.Inherits, typ)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}

	if p.at(token.KwWhere) {
		whereStart := p.advance().Span
		for !p.atOr(token.LBrace, token.EOF) {
			if !p.skipBracketed() {
				p.advance()
			}
		}
		decl.WhereSpan = p.spanFrom(whereStart)
	}

	open, ok := p.expect(token.LBrace, diag.SynExpectBody, "expected '{' to start "+kind.String()+" body, got "+describe(p.peek()))
	if !ok {
		return ast.NoItemID, false
	}
	decl.Members = p.parseMembers()
	// незакрытое тело всё равно отдаём: члены уже разобраны
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close "+kind.String()+" body")
	decl.BodySpan = p.spanFrom(open.Span)
	return p.arenas.Items.NewTypeDecl(p.spanFrom(start), decl), true
}

// parseMembers разбирает декларации до закрывающей '}' (её не съедает).
func (p *Parser) parseMembers() []ast.ItemID {
	var members []ast.ItemID
	for !p.atOr(token.RBrace, token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		if p.skipCompilerDirective() {
			continue
		}
		if !p.atDeclStart() {
			p.err(diag.SynUnexpectedToken, "expected member declaration, got "+describe(p.peek()))
			p.resyncDecl()
			continue
		}
		id, ok := p.parseDecl()
		if !ok {
			p.resyncDecl()
			continue
		}
		members = append(members, id)
	}
	return members
}
