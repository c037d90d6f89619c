// Package diag defines the diagnostic model shared by all analysis phases.
//
// Diagnostic is the central record: a severity, a stable numeric Code with a
// string ID (LEX1001, SYN2001, SEM3100, ...), a message, a primary span and
// optional notes and fixes. Producers emit through a Reporter so that they do
// not depend on storage; BagReporter collects into a Bag, which supports
// sorting and deduplication for deterministic output.
//
// Code ranges:
//
//   - 1000s lexical problems (unknown characters, unterminated comments)
//   - 2000s syntax errors from the event parser
//   - 3000s resolution, type inference and shader validation
//   - 4000s/5000s I/O and manifest problems reported by the driver
//
// The package performs no formatting or IO; rendering lives in diagfmt.
package diag
