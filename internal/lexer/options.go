package lexer

import (
	"shaderlens/internal/diag"
	"shaderlens/internal/source"
)

type Options struct {
	// Reporter receives lexical diagnostics; nil discards them.
	Reporter diag.Reporter
}

// errorAt starts a lexical error; callers attach notes or fixes and Emit.
func (lx *Lexer) errorAt(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportError(lx.opts.Reporter, code, sp, msg)
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	lx.errorAt(code, sp, msg).Emit()
}
