package lexer_test

import (
	"strings"
	"testing"

	"macroessentials/internal/diag"
	"macroessentials/internal/lexer"
	"macroessentials/internal/source"
	"macroessentials/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки и bag для ошибок.
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.swift", []byte(input))
	bag := diag.NewBag(0)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func collectKinds(lx *lexer.Lexer) ([]token.Kind, []string) {
	var kinds []token.Kind
	var texts []string
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return kinds, texts
		}
		kinds = append(kinds, tok.Kind)
		texts = append(texts, tok.Text)
	}
}

func TestLexerTokenKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "stored property",
			input: "let a = 2",
			want:  []token.Kind{token.KwLet, token.Ident, token.Assign, token.IntLit},
		},
		{
			name:  "optional cast",
			input: "x as? Int",
			want:  []token.Kind{token.Ident, token.KwAs, token.Question, token.Ident},
		},
		{
			name:  "closure signature",
			input: "{ (a: Int) async throws -> Bool in true }",
			want: []token.Kind{
				token.LBrace, token.LParen, token.Ident, token.Colon, token.Ident, token.RParen,
				token.Ident, token.KwThrows, token.Arrow, token.Ident, token.KwIn, token.KwTrue, token.RBrace,
			},
		},
		{
			name:  "attribute with arguments",
			input: "@Codable(skip: true)",
			want:  []token.Kind{token.At, token.Ident, token.LParen, token.Ident, token.Colon, token.KwTrue, token.RParen},
		},
		{
			name:  "numbers",
			input: "1_000 0x1F 1.5 2e10 0b101 1.description",
			want: []token.Kind{
				token.IntLit, token.IntLit, token.FloatLit, token.FloatLit, token.IntLit,
				token.IntLit, token.Dot, token.Ident,
			},
		},
		{
			name:  "operators are single characters",
			input: "a ?? b >= c",
			want:  []token.Kind{token.Ident, token.Question, token.Question, token.Ident, token.Gt, token.Assign, token.Ident},
		},
		{
			name:  "escaped keyword is identifier",
			input: "var `default` = 1",
			want:  []token.Kind{token.KwVar, token.Ident, token.Assign, token.IntLit},
		},
		{
			name:  "underscore",
			input: "_ = _x",
			want:  []token.Kind{token.Underscore, token.Assign, token.Ident},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, bag := makeTestLexer(tt.input)
			got, texts := collectKinds(lx)
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %+v", bag.Items())
			}
			if len(got) != len(tt.want) {
				t.Fatalf("kinds = %v (%q), want %v", got, texts, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("token %d: got %v (%q), want %v", i, got[i], texts[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{`"plain"`, token.StringLit},
		{`"escaped \" quote"`, token.StringLit},
		{`"hello \(name)"`, token.InterpStringLit},
		{`"nested \(dict["k"] ?? "none") end"`, token.InterpStringLit},
		{`#"raw \(x) stays"#`, token.StringLit},
		{`#"raw \#(x) interpolates"#`, token.InterpStringLit},
		{"\"\"\"\nmulti\nline\n\"\"\"", token.StringLit},
	}
	for _, tt := range tests {
		lx, bag := makeTestLexer(tt.input)
		tok := lx.Next()
		if tok.Kind != tt.kind {
			t.Errorf("%s: kind = %v, want %v", tt.input, tok.Kind, tt.kind)
		}
		if tok.Text != tt.input {
			t.Errorf("%s: text = %q", tt.input, tok.Text)
		}
		if next := lx.Next(); next.Kind != token.EOF {
			t.Errorf("%s: trailing token %v %q", tt.input, next.Kind, next.Text)
		}
		if bag.Len() != 0 {
			t.Errorf("%s: diagnostics %+v", tt.input, bag.Items())
		}
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{`"open`, diag.LexUnterminatedString},
		{"\"line\nbreak\"", diag.LexUnterminatedString},
		{"/* never closed", diag.LexUnterminatedBlockComment},
		{"12abc", diag.LexBadNumber},
		{"1e+", diag.LexBadNumber},
		{"§", diag.LexUnknownChar},
	}
	for _, tt := range tests {
		lx, bag := makeTestLexer(tt.input)
		collectKinds(lx)
		if bag.Len() == 0 {
			t.Errorf("%q: expected diagnostic", tt.input)
			continue
		}
		if got := bag.Items()[0].Code; got != tt.code {
			t.Errorf("%q: code = %s, want %s", tt.input, got.ID(), tt.code.ID())
		}
	}
}

func TestLexerTrivia(t *testing.T) {
	lx, _ := makeTestLexer("/// doc\n// line\n  /* a /* nested */ b */ let")
	tok := lx.Next()
	if tok.Kind != token.KwLet {
		t.Fatalf("kind = %v", tok.Kind)
	}
	var kinds []token.TriviaKind
	for _, tr := range tok.Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []token.TriviaKind{
		token.TriviaDocLine, token.TriviaNewline, token.TriviaLineComment,
		token.TriviaNewline, token.TriviaSpace, token.TriviaBlockComment, token.TriviaSpace,
	}
	if len(kinds) != len(want) {
		t.Fatalf("trivia = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("trivia[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
	if !strings.Contains(tok.Leading[5].Text, "nested") {
		t.Fatalf("block comment text = %q", tok.Leading[5].Text)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("var x")
	if p := lx.Peek(); p.Kind != token.KwVar {
		t.Fatalf("Peek = %v", p.Kind)
	}
	if n := lx.Next(); n.Kind != token.KwVar {
		t.Fatalf("Next after Peek = %v", n.Kind)
	}
	if n := lx.Next(); n.Kind != token.Ident || n.Text != "x" {
		t.Fatalf("second = %v %q", n.Kind, n.Text)
	}
}

func TestTokenize(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.swift", []byte("let café = 1"))
	toks := lexer.Tokenize(fs.Get(id), lexer.Options{})
	if len(toks) != 5 || toks[4].Kind != token.EOF {
		t.Fatalf("tokens = %+v", toks)
	}
	if toks[1].Text != "café" {
		t.Fatalf("unicode ident = %q", toks[1].Text)
	}
}
