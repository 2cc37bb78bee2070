package parser

import (
	"macroessentials/internal/ast"
	"macroessentials/internal/diag"
	"macroessentials/internal/source"
	"macroessentials/internal/token"
)

// modifierWords — контекстные слова, которые могут стоять перед декларацией.
var modifierWords = map[string]bool{
	"public":      true,
	"private":     true,
	"fileprivate": true,
	"internal":    true,
	"open":        true,
	"package":     true,
	"final":       true,
	"override":    true,
	"lazy":        true,
	"weak":        true,
	"unowned":     true,
	"mutating":    true,
	"nonmutating": true,
	"dynamic":     true,
	"optional":    true,
	"required":    true,
	"convenience": true,
	"indirect":    true,
	"nonisolated": true,
	"distributed": true,
	"prefix":      true,
	"postfix":     true,
	"infix":       true,
	"consuming":   true,
	"borrowing":   true,
}

func isDeclKeyword(k token.Kind) bool {
	switch k {
	case token.KwStruct, token.KwClass, token.KwEnum, token.KwExtension, token.KwProtocol,
		token.KwLet, token.KwVar, token.KwFunc, token.KwInit, token.KwDeinit, token.KwSubscript,
		token.KwTypealias, token.KwAssociatedtype, token.KwImport, token.KwCase:
		return true
	}
	return false
}

// isModifierAt reports whether the token n ahead is a declaration modifier.
// `class` counts as a modifier only before another declaration keyword (`class var`).
func (p *Parser) isModifierAt(n int) bool {
	tok := p.peekAt(n)
	switch {
	case tok.Kind == token.KwStatic:
		return true
	case tok.Kind == token.KwClass:
		next := p.peekAt(n + 1)
		return isDeclKeyword(next.Kind) || next.Kind == token.KwStatic || (next.Kind == token.Ident && modifierWords[next.Text])
	case tok.Kind == token.Ident:
		return modifierWords[tok.Text]
	}
	return false
}

// atDeclStart reports whether the upcoming tokens begin a declaration.
func (p *Parser) atDeclStart() bool {
	n := 0
	for p.peekAt(n).Kind == token.At {
		n = p.attrEnd(n)
	}
	for p.isModifierAt(n) {
		n++
		if p.peekAt(n).Kind == token.LParen && !p.peekAt(n).HasLeadingSpace() {
			n = p.parenEnd(n)
		}
	}
	tok := p.peekAt(n)
	if isDeclKeyword(tok.Kind) {
		return true
	}
	return tok.IsWord("actor") && p.peekAt(n+1).Kind == token.Ident
}

// attrEnd returns the lookahead index just past an attribute starting at n.
func (p *Parser) attrEnd(n int) int {
	n++ // '@'
	if p.peekAt(n).Kind != token.EOF {
		n++
	}
	for p.peekAt(n).Kind == token.Dot && p.peekAt(n+1).Kind == token.Ident {
		n += 2
	}
	if p.peekAt(n).Kind == token.LParen && !p.peekAt(n).HasLeadingSpace() {
		n = p.parenEnd(n)
	}
	return n
}

// parenEnd returns the lookahead index just past the bracket group opening at n.
func (p *Parser) parenEnd(n int) int {
	open := p.peekAt(n).Kind
	closer := closerOf(open)
	depth := 0
	for {
		k := p.peekAt(n).Kind
		switch k {
		case token.EOF:
			return n
		case open:
			depth++
		case closer:
			depth--
		}
		n++
		if depth == 0 {
			return n
		}
	}
}

// parseModifiers consumes modifiers such as `static`, `private(set)`, `unowned(safe)`.
func (p *Parser) parseModifiers() []ast.Modifier {
	var mods []ast.Modifier
	for p.isModifierAt(0) {
		tok := p.advance()
		m := ast.Modifier{Name: p.intern(tok.Text), Span: tok.Span}
		if p.at(token.LParen) && p.glued(0) && p.peekAt(1).Kind == token.Ident && p.peekAt(2).Kind == token.RParen {
			p.advance()
			m.Detail = p.intern(p.advance().Text)
			p.advance()
			m.Span = p.spanFrom(tok.Span)
		}
		mods = append(mods, m)
	}
	return mods
}

// parseDecl разбирает одну декларацию вместе с атрибутами и модификаторами.
func (p *Parser) parseDecl() (ast.ItemID, bool) {
	start := p.peek().Span
	header := ast.DeclHeader{Attrs: p.parseAttributes()}
	header.Modifiers = p.parseModifiers()

	tok := p.peek()
	switch {
	case tok.Kind == token.KwStruct:
		return p.parseTypeDecl(start, header, ast.TypeDeclStruct)
	case tok.Kind == token.KwClass:
		return p.parseTypeDecl(start, header, ast.TypeDeclClass)
	case tok.Kind == token.KwEnum:
		return p.parseTypeDecl(start, header, ast.TypeDeclEnum)
	case tok.Kind == token.KwProtocol:
		return p.parseTypeDecl(start, header, ast.TypeDeclProtocol)
	case tok.Kind == token.KwExtension:
		return p.parseTypeDecl(start, header, ast.TypeDeclExtension)
	case tok.IsWord("actor") && p.peekAt(1).Kind == token.Ident:
		return p.parseTypeDecl(start, header, ast.TypeDeclActor)
	case tok.Kind == token.KwLet || tok.Kind == token.KwVar:
		return p.parseVarDecl(start, header)
	case tok.Kind == token.KwFunc, tok.Kind == token.KwInit, tok.Kind == token.KwDeinit, tok.Kind == token.KwSubscript:
		return p.parseFuncDecl(start, header)
	case tok.Kind == token.KwCase:
		return p.parseEnumCase(start, header)
	case tok.Kind == token.KwTypealias, tok.Kind == token.KwAssociatedtype, tok.Kind == token.KwImport:
		return p.parseSimpleDecl(start, header)
	}
	if header.Attrs.IsValid() || len(header.Modifiers) > 0 {
		p.err(diag.SynUnexpectedToken, "expected declaration, got "+describe(tok))
		return ast.NoItemID, false
	}
	p.err(diag.SynUnexpectedTopLevel, "expected declaration, got "+describe(tok))
	return ast.NoItemID, false
}

// parseFuncDecl keeps the name and body span; signatures are skipped.
func (p *Parser) parseFuncDecl(start source.Span, header ast.DeclHeader) (ast.ItemID, bool) {
	kw := p.advance()
	decl := ast.FuncDecl{DeclHeader: header}
	switch kw.Kind {
	case token.KwInit:
		decl.Kind = ast.FuncInit
		decl.Name = p.intern("init")
		decl.NameSpan = kw.Span
	case token.KwDeinit:
		decl.Kind = ast.FuncDeinit
		decl.Name = p.intern("deinit")
		decl.NameSpan = kw.Span
	case token.KwSubscript:
		decl.Kind = ast.FuncSubscript
		decl.Name = p.intern("subscript")
		decl.NameSpan = kw.Span
	default:
		switch {
		case p.at(token.Ident):
			name := p.advance()
			decl.Name = p.intern(name.IdentName())
			decl.NameSpan = name.Span
		default:
			op, n := p.operatorAt(0)
			if n == 0 {
				p.err(diag.SynExpectIdentifier, "expected function name, got "+describe(p.peek()))
				return ast.NoItemID, false
			}
			first := p.peek().Span
			for range n {
				p.advance()
			}
			decl.Name = p.intern(op)
			decl.NameSpan = p.spanFrom(first)
		}
	}
	bodyStart := p.pos
	p.skipDeclTail()
	if p.pos > bodyStart && p.toks[p.pos-1].Kind == token.RBrace {
		// тело — последняя сбалансированная группа {…}
		decl.BodySpan = p.bodySpanBefore(p.pos)
	}
	return p.arenas.Items.NewFunc(p.spanFrom(start), decl), true
}

// bodySpanBefore finds the `{` matching the `}` just before index end.
func (p *Parser) bodySpanBefore(end int) source.Span {
	closeTok := p.toks[end-1]
	depth := 0
	for i := end - 1; i >= 0; i-- {
		switch p.toks[i].Kind {
		case token.RBrace:
			depth++
		case token.LBrace:
			depth--
			if depth == 0 {
				return p.toks[i].Span.Cover(closeTok.Span)
			}
		}
	}
	return closeTok.Span
}

func (p *Parser) parseEnumCase(start source.Span, header ast.DeclHeader) (ast.ItemID, bool) {
	p.advance() // case
	decl := ast.EnumCaseDecl{DeclHeader: header}
	for {
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected enum case name, got "+describe(p.peek()))
		if !ok {
			return ast.NoItemID, false
		}
		decl.Names = append(decl.Names, p.intern(name.IdentName()))
		if p.at(token.LParen) {
			p.skipBalanced()
		}
		if p.at(token.Assign) {
			p.advance()
			if _, ok := p.parseExpr(); !ok {
				return ast.NoItemID, false
			}
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return p.arenas.Items.NewEnumCase(p.spanFrom(start), decl), true
}

// parseSimpleDecl handles import, typealias and associatedtype.
func (p *Parser) parseSimpleDecl(start source.Span, header ast.DeclHeader) (ast.ItemID, bool) {
	kw := p.advance()
	kind := ast.ItemTypealias
	if kw.Kind == token.KwImport {
		kind = ast.ItemImport
		// import struct Foundation.Date
		if isDeclKeyword(p.peek().Kind) || p.atWord("protocol") {
			p.advance()
		}
	}
	decl := ast.SimpleDecl{DeclHeader: header}
	if p.at(token.Ident) {
		name := p.advance()
		decl.Name = p.intern(name.IdentName())
	} else {
		p.err(diag.SynExpectIdentifier, "expected name after '"+kw.Text+"', got "+describe(p.peek()))
		return ast.NoItemID, false
	}
	p.skipDeclTail()
	return p.arenas.Items.NewSimple(kind, p.spanFrom(start), decl), true
}
