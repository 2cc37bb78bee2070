package parser

import (
	"macroessentials/internal/ast"
	"macroessentials/internal/diag"
	"macroessentials/internal/source"
	"macroessentials/internal/token"
)

// parseVarDecl разбирает `let|var binding (, binding)*`.
func (p *Parser) parseVarDecl(start source.Span, header ast.DeclHeader) (ast.ItemID, bool) {
	kw := p.advance()
	decl := ast.VarDecl{DeclHeader: header, KeywordSpan: kw.Span}
	if kw.Kind == token.KwVar {
		decl.Specifier = ast.SpecVar
	}
	for {
		b, ok := p.parseBinding()
		if !ok {
			return ast.NoItemID, false
		}
		decl.Bindings = append(decl.Bindings, b)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return p.arenas.Items.NewVar(p.spanFrom(start), decl), true
}

func (p *Parser) parseBinding() (ast.BindingID, bool) {
	start := p.peek().Span
	pat, ok := p.parsePattern()
	if !ok {
		return ast.NoBindingID, false
	}
	b := ast.Binding{Pattern: pat}

	if p.at(token.Colon) {
		p.advance()
		typ, ok := p.parseType()
		if !ok {
			return ast.NoBindingID, false
		}
		b.Type = typ
	}
	if p.at(token.Assign) {
		p.advance()
		init, ok := p.parseExpr()
		if !ok {
			return ast.NoBindingID, false
		}
		b.Init = init
	}
	if p.at(token.LBrace) && (!b.Init.IsValid() || p.atAccessorList()) {
		b.Accessors = p.parseAccessorBlock()
	}
	b.Span = p.spanFrom(start)
	return p.arenas.Items.NewBinding(b), true
}

func (p *Parser) parsePattern() (ast.Pattern, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return ast.Pattern{Kind: ast.PatternIdent, Name: p.intern(tok.IdentName()), Span: tok.Span}, true
	case token.Underscore:
		p.advance()
		return ast.Pattern{Kind: ast.PatternWildcard, Span: tok.Span}, true
	case token.LParen:
		sp := p.skipBalanced()
		return ast.Pattern{Kind: ast.PatternTuple, Span: sp}, true
	}
	p.err(diag.SynExpectPattern, "expected binding name, got "+describe(tok))
	return ast.Pattern{}, false
}

var accessorPrefixWords = map[string]bool{
	"mutating":    true,
	"nonmutating": true,
	"__consuming": true,
}

// accessorWordAt returns the accessor keyword n tokens ahead, skipping
// attributes and `mutating`-like prefixes. Returns the index of the word.
func (p *Parser) accessorWordAt(n int) (ast.AccessorKind, int, bool) {
	for {
		tok := p.peekAt(n)
		if tok.Kind == token.At {
			n = p.attrEnd(n)
			continue
		}
		if tok.Kind == token.Ident && accessorPrefixWords[tok.Text] {
			n++
			continue
		}
		break
	}
	tok := p.peekAt(n)
	if tok.Kind != token.Ident && tok.Kind != token.KwInit {
		return 0, n, false
	}
	kind, ok := ast.LookupAccessor(tok.Text)
	return kind, n, ok
}

// atAccessorList reports whether the `{` ahead opens `get`/`set`/observer
// accessors rather than an implicit getter body.
func (p *Parser) atAccessorList() bool {
	_, n, ok := p.accessorWordAt(1)
	if !ok {
		return false
	}
	next := p.peekAt(n + 1)
	switch next.Kind {
	case token.LBrace, token.RBrace, token.LParen, token.KwThrows:
		return true
	case token.Ident:
		if next.Text == "async" {
			return true
		}
		_, _, ok := p.accessorWordAt(n + 1)
		return ok
	case token.At:
		return true
	}
	return false
}

func (p *Parser) parseAccessorBlock() ast.AccessorBlockID {
	if !p.atAccessorList() {
		sp := p.skipBalanced()
		return p.arenas.Items.NewAccessorBlock(ast.AccessorBlock{Kind: ast.AccessorImplicitGetter, Span: sp})
	}
	open := p.advance()
	block := ast.AccessorBlock{Kind: ast.AccessorList}
	for !p.atOr(token.RBrace, token.EOF) {
		kind, n, ok := p.accessorWordAt(0)
		if !ok {
			p.err(diag.SynUnexpectedToken, "expected accessor, got "+describe(p.peekAt(n)))
			for !p.atOr(token.RBrace, token.EOF) {
				if !p.skipBracketed() {
					p.advance()
				}
			}
			break
		}
		start := p.peek().Span
		for range n + 1 {
			p.advance()
		}
		acc := ast.Accessor{Kind: kind}
		if p.at(token.LParen) {
			p.skipBalanced() // (newValue)
		}
		for p.atWord("async") || p.atOr(token.KwThrows, token.KwRethrows) {
			p.advance()
			if p.at(token.LParen) && p.glued(0) {
				p.skipBalanced() // throws(E)
			}
		}
		if p.at(token.LBrace) {
			acc.BodySpan = p.skipBalanced()
		}
		acc.Span = p.spanFrom(start)
		block.Accessors = append(block.Accessors, acc)
	}
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close accessor block")
	block.Span = p.spanFrom(open.Span)
	return p.arenas.Items.NewAccessorBlock(block)
}
