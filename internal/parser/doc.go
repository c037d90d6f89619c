// Package parser turns WGSL/WESL tokens into a lossless syntax tree.
//
// Grammar functions never build nodes directly. They record start, token,
// finish and error events through markers; a completed marker can later be
// wrapped by a new parent with Precede, which is how left-recursive forms
// such as `a.b.c` and binary operators are expressed. The sink replays the
// events over the full token stream, trivia included, into a green tree.
//
// Errors never abort a parse. An unexpected token is wrapped in an
// ErrorNode, and item keywords such as `fn` are never swallowed, so a broken
// declaration cannot hide the ones after it.
package parser
