package parser

import (
	"slices"

	"macroessentials/internal/ast"
	"macroessentials/internal/diag"
	"macroessentials/internal/lexer"
	"macroessentials/internal/source"
	"macroessentials/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser — состояние парсера на один файл. Токены берутся заранее целиком,
// чтобы можно было заглядывать вперёд на произвольную глубину (сигнатуры замыканий).
type Parser struct {
	toks     []token.Token
	pos      int
	src      *source.File
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

func newParser(file *source.File, arenas *ast.Builder, opts Options) *Parser {
	toks := lexer.Tokenize(file, lexer.Options{Reporter: opts.Reporter})
	return &Parser{
		toks:     toks,
		src:      file,
		arenas:   arenas,
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
	}
}

// ParseFile — входная точка для разбора одного файла.
func ParseFile(file *source.File, arenas *ast.Builder, opts Options) Result {
	p := newParser(file, arenas, opts)
	p.file = arenas.NewFile(source.Span{File: file.ID})
	p.parseItems()
	return Result{File: p.file, Bag: bagOf(opts.Reporter)}
}

// ParseExpr parses a file holding exactly one expression, as used by `infer`.
func ParseExpr(file *source.File, arenas *ast.Builder, opts Options) (ast.ExprID, Result) {
	p := newParser(file, arenas, opts)
	p.file = arenas.NewFile(source.Span{File: file.ID})
	id, ok := p.parseExpr()
	if ok && !p.at(token.EOF) {
		p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.peek())+" after expression")
	}
	return id, Result{File: p.file, Bag: bagOf(opts.Reporter)}
}

func bagOf(r diag.Reporter) *diag.Bag {
	switch br := r.(type) {
	case diag.BagReporter:
		return br.Bag
	case *diag.BagReporter:
		return br.Bag
	}
	return nil
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) atWord(word string) bool {
	return p.peek().IsWord(word)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseItems — основной цикл верхнего уровня: пока не EOF — parseDecl.
func (p *Parser) parseItems() {
	startSpan := p.peek().Span
	for !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		if p.skipCompilerDirective() {
			continue
		}
		if p.at(token.RBrace) {
			p.err(diag.SynUnexpectedTopLevel, "unexpected '}' at top level")
			p.advance()
			continue
		}
		if !p.atDeclStart() {
			// top-level код (main.swift) анализ не интересует
			p.arenas.PushItem(p.file, p.skipStatementItem())
			continue
		}
		itemID, ok := p.parseDecl()
		if ok {
			p.arenas.PushItem(p.file, itemID)
		} else {
			p.resyncDecl()
		}
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lastSpan)
}
