package fuzztests

import (
	"testing"

	"macroessentials/internal/diag"
	"macroessentials/internal/lexer"
	"macroessentials/internal/source"
	"macroessentials/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.swift", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		for {
			tok := lx.Next()
			if tok.Span.End < tok.Span.Start || int(tok.Span.End) > len(input) {
				t.Fatalf("token %s has bad span %v", tok.Kind, tok.Span)
			}
			if tok.Kind == token.EOF {
				break
			}
		}
	})
}
