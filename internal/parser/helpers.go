package parser

import (
	"strings"

	"macroessentials/internal/diag"
	"macroessentials/internal/source"
	"macroessentials/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.peekAt(0)
}

// peekAt returns the token n positions ahead; past the end it keeps returning EOF.
func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return tok
	}
	p.pos++
	if tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan — лучший span для диагностики: на EOF указываем сразу за последним токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	return true
}

// spanFrom covers everything from start up to the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	if p.lastSpan.End < start.Start {
		return source.Span{File: start.File, Start: start.Start, End: start.Start}
	}
	return source.Span{File: start.File, Start: start.Start, End: p.lastSpan.End}
}

func (p *Parser) text(sp source.Span) string {
	return p.src.Slice(sp)
}

func (p *Parser) intern(s string) source.StringID {
	return p.arenas.Intern(s)
}

// glued reports that the token n positions ahead directly follows its predecessor.
func (p *Parser) glued(n int) bool {
	return !p.peekAt(n).HasLeadingSpace()
}

// operatorAt collects a run of adjacent operator characters starting n tokens
// ahead. Returns the operator text and how many tokens it spans.
func (p *Parser) operatorAt(n int) (string, int) {
	var sb strings.Builder
	count := 0
	for {
		tok := p.peekAt(n + count)
		if !tok.Kind.IsOperatorChar() && tok.Kind != token.Dot {
			break
		}
		if count > 0 && tok.HasLeadingSpace() {
			break
		}
		// точка начинает оператор только вместе с другой точкой (`...`, `..<`)
		if tok.Kind == token.Dot && count == 0 && p.peekAt(n+1).Kind != token.Dot {
			break
		}
		sb.WriteString(tok.Text)
		count++
	}
	return sb.String(), count
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return "identifier '" + tok.Text + "'"
	default:
		return "'" + tok.Text + "'"
	}
}
