// Package token defines lexical token kinds and trivia for the Swift subset
// understood by the macro front end.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Operator characters are emitted one token per character (except `->`).
//     The parser glues adjacent operator tokens into a single operator, so
//     `>=`, `??` and custom operators need no dedicated kinds.
//   - Contextual words (get, set, willSet, didSet, actor, async, some, any,
//     access modifiers) are identifiers; the parser recognises them by text.
//   - Attributes are lexed as '@' (Kind: At) + Ident.
package token
