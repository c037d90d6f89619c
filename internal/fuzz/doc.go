// Package fuzztests holds Go fuzz harnesses for the front end: lexer,
// preprocessor, parser and formatter. They check that arbitrary input never
// panics and that the lossless properties of each stage hold.
package fuzztests
