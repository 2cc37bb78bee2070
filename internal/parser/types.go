package parser

import (
	"strings"

	"macroessentials/internal/ast"
	"macroessentials/internal/diag"
	"macroessentials/internal/source"
	"macroessentials/internal/token"
)

// typeSpecifierWords — спецификаторы, допустимые перед типом параметра.
var typeSpecifierWords = map[string]bool{
	"borrowing": true,
	"consuming": true,
	"sending":   true,
	"isolated":  true,
	"__owned":   true,
	"__shared":  true,
}

// parseType разбирает аннотацию типа: атрибуты и спецификаторы, some/any,
// композицию `A & B`, постфиксные `?`, `!`, `.Type`.
func (p *Parser) parseType() (ast.TypeID, bool) {
	start := p.peek().Span
	var specs []source.StringID
	for {
		tok := p.peek()
		if tok.Kind == token.At {
			attr, ok := p.parseAttribute()
			if !ok {
				return ast.NoTypeID, false
			}
			specs = append(specs, p.intern(p.text(attr.Span)))
			continue
		}
		if tok.Kind == token.KwInout || (tok.Kind == token.Ident && typeSpecifierWords[tok.Text] && p.peekAt(1).Kind != token.Colon) {
			p.advance()
			specs = append(specs, p.intern(tok.Text))
			continue
		}
		break
	}

	var (
		typ ast.TypeID
		ok  bool
	)
	if (p.atWord("some") || p.atWord("any")) && p.peekAt(1).Kind != token.Colon {
		kw := p.advance()
		kind := ast.TypeSome
		if kw.Text == "any" {
			kind = ast.TypeAny
		}
		elem, ok := p.parseCompositionType()
		if !ok {
			return ast.NoTypeID, false
		}
		typ = p.arenas.Types.NewWrap(kind, p.spanFrom(kw.Span), elem)
	} else if typ, ok = p.parseCompositionType(); !ok {
		return ast.NoTypeID, false
	}

	if len(specs) > 0 {
		typ = p.arenas.Types.NewAttributed(p.spanFrom(start), specs, typ)
	}
	return typ, true
}

func (p *Parser) parseCompositionType() (ast.TypeID, bool) {
	start := p.peek().Span
	first, ok := p.parsePostfixType()
	if !ok {
		return ast.NoTypeID, false
	}
	if !p.at(token.Amp) {
		return first, true
	}
	elems := []ast.TypeID{first}
	for p.at(token.Amp) {
		p.advance()
		next, ok := p.parsePostfixType()
		if !ok {
			return ast.NoTypeID, false
		}
		elems = append(elems, next)
	}
	return p.arenas.Types.NewComposition(p.spanFrom(start), elems), true
}

func (p *Parser) parsePostfixType() (ast.TypeID, bool) {
	start := p.peek().Span
	typ, ok := p.parsePrimaryType()
	if !ok {
		return ast.NoTypeID, false
	}
	for p.glued(0) {
		switch {
		case p.at(token.Question):
			p.advance()
			typ = p.arenas.Types.NewWrap(ast.TypeOptional, p.spanFrom(start), typ)
		case p.at(token.Bang):
			p.advance()
			typ = p.arenas.Types.NewWrap(ast.TypeIUO, p.spanFrom(start), typ)
		case p.at(token.Dot) && p.peekAt(1).Kind == token.Ident:
			// Foo?.Type не бывает, но (A & B).Type бывает
			p.advance()
			name := p.advance()
			typ = p.arenas.Types.NewIdent(p.spanFrom(start), typ, p.intern(name.Text), nil)
		case p.at(token.Dot) && p.peekAt(1).Kind == token.Dot && p.peekAt(2).Kind == token.Dot:
			// вариадик `Int...`
			for range 3 {
				p.advance()
			}
		default:
			return typ, true
		}
	}
	return typ, true
}

func (p *Parser) parsePrimaryType() (ast.TypeID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident, token.Underscore:
		return p.parseTypeIdent()
	case token.LBracket:
		return p.parseCollectionType()
	case token.LParen:
		return p.parseTupleOrFuncType()
	case token.Lt:
		if p.peekAt(1).Kind == token.Hash && p.glued(1) {
			return p.parsePlaceholderType()
		}
	}
	p.err(diag.SynExpectType, "expected type, got "+describe(tok))
	return ast.NoTypeID, false
}

// parseTypeIdent разбирает `Name<Args>` и цепочки `A.B<C>.D`.
func (p *Parser) parseTypeIdent() (ast.TypeID, bool) {
	start := p.peek().Span
	var typ ast.TypeID
	for {
		name := p.advance()
		args, ok := p.parseGenericArgs()
		if !ok {
			return ast.NoTypeID, false
		}
		typ = p.arenas.Types.NewIdent(p.spanFrom(start), typ, p.intern(name.IdentName()), args)
		if p.at(token.Dot) && p.glued(0) && p.peekAt(1).Kind == token.Ident && p.glued(1) {
			p.advance()
			continue
		}
		return typ, true
	}
}

// parseGenericArgs разбирает `<T, U>` сразу за именем; без '<' возвращает nil.
func (p *Parser) parseGenericArgs() ([]ast.TypeID, bool) {
	if !p.at(token.Lt) || !p.glued(0) {
		return nil, true
	}
	p.advance()
	var args []ast.TypeID
	for {
		arg, ok := p.parseType()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close generic arguments"); !ok {
		return nil, false
	}
	return args, true
}

func (p *Parser) parseCollectionType() (ast.TypeID, bool) {
	open := p.advance()
	elem, ok := p.parseType()
	if !ok {
		return ast.NoTypeID, false
	}
	if p.at(token.Colon) {
		p.advance()
		value, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close dictionary type"); !ok {
			return ast.NoTypeID, false
		}
		return p.arenas.Types.NewDict(p.spanFrom(open.Span), elem, value), true
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close array type"); !ok {
		return ast.NoTypeID, false
	}
	return p.arenas.Types.NewWrap(ast.TypeArray, p.spanFrom(open.Span), elem), true
}

// parseTupleOrFuncType разбирает `(A, label: B)`, `(T)` и `(A) async throws -> R`.
func (p *Parser) parseTupleOrFuncType() (ast.TypeID, bool) {
	open := p.advance()
	var elems []ast.TupleTypeElem
	for !p.at(token.RParen) {
		var elem ast.TupleTypeElem
		// `label: T` и `_ name: T`
		if (p.at(token.Ident) || p.at(token.Underscore)) && p.peekAt(1).Kind == token.Colon {
			elem.Label = p.intern(p.advance().IdentName())
			p.advance()
		} else if (p.at(token.Ident) || p.at(token.Underscore)) && p.peekAt(1).Kind == token.Ident && p.peekAt(2).Kind == token.Colon {
			p.advance()
			elem.Label = p.intern(p.advance().IdentName())
			p.advance()
		}
		typ, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		elem.Type = typ
		elems = append(elems, elem)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close tuple type"); !ok {
		return ast.NoTypeID, false
	}

	var isAsync, throws bool
	for {
		switch {
		case p.atWord("async"):
			p.advance()
			isAsync = true
			continue
		case p.atOr(token.KwThrows, token.KwRethrows):
			p.advance()
			throws = true
			if p.at(token.LParen) && p.glued(0) {
				p.skipBalanced()
			}
			continue
		}
		break
	}
	if p.at(token.Arrow) {
		p.advance()
		result, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		return p.arenas.Types.NewFunc(p.spanFrom(open.Span), ast.TypeFuncData{
			Params:  elems,
			IsAsync: isAsync,
			Throws:  throws,
			Result:  result,
		}), true
	}
	if isAsync || throws {
		p.err(diag.SynExpectType, "expected '->' after function type effects")
		return ast.NoTypeID, false
	}
	if len(elems) == 1 && elems[0].Label == source.NoStringID {
		// (T) — просто скобки
		return elems[0].Type, true
	}
	return p.arenas.Types.NewTuple(p.spanFrom(open.Span), elems), true
}

// parsePlaceholderType разбирает `<#name#>`.
func (p *Parser) parsePlaceholderType() (ast.TypeID, bool) {
	open := p.advance()
	p.advance() // '#'
	var name strings.Builder
	for !p.at(token.EOF) {
		if p.at(token.Hash) && p.peekAt(1).Kind == token.Gt && p.glued(1) {
			p.advance()
			p.advance()
			return p.arenas.Types.NewPlaceholder(p.spanFrom(open.Span), p.intern(name.String())), true
		}
		tok := p.advance()
		if name.Len() > 0 && tok.HasLeadingSpace() {
			name.WriteByte(' ')
		}
		name.WriteString(tok.Text)
	}
	p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed placeholder")
	return ast.NoTypeID, false
}
