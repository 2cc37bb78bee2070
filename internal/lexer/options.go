package lexer

import "macroessentials/internal/diag"

type Options struct {
	Reporter diag.Reporter // может быть nil: ошибки игнорируются, лексинг продолжается
}
