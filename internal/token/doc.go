// Package token defines the syntax kinds shared by the lexer, parser and
// syntax tree.
//
// Invariants:
//   - Kind enumerates tokens first and nodes after nodeStart; IsNode tells them apart.
//   - Token.Text is a slice of the original source and Token.Span matches it exactly.
//   - Trivia (whitespace, comments, preprocessor lines) stays in the token stream.
//   - '<' and '>' are always single tokens; shifts and '[[' are recognised by
//     the parser as compound tokens so that template lists and shifts never clash.
//   - Type nodes in the tree reuse the kind of their type keyword.
package token
