package symbols

import (
	"fmt"
	"strings"

	"shaderlens/internal/diag"
	"shaderlens/internal/hir"
	"shaderlens/internal/source"
)

type DefDiagnosticKind uint8

const (
	DiagUnresolvedImport DefDiagnosticKind = iota + 1
	DiagTooManySupers
	DiagUnresolvedModule
	DiagDuplicateDefinition
)

// DefDiagnostic is a problem found while collecting a package. It points at
// an item by AstID; the database maps it to a span.
type DefDiagnostic struct {
	File        source.FileID
	AstID       hir.AstID
	Kind        DefDiagnosticKind
	Name        hir.Name
	Path        hir.ModPath
	Suggestions []hir.Name
}

func diagKindOf(k ResolveErrorKind) DefDiagnosticKind {
	switch k {
	case ErrTooManySupers:
		return DiagTooManySupers
	case ErrUnresolvedModule:
		return DiagUnresolvedModule
	}
	return DiagUnresolvedImport
}

func (d DefDiagnostic) Code() diag.Code {
	switch d.Kind {
	case DiagTooManySupers:
		return diag.SemaTooManySupers
	case DiagUnresolvedModule:
		return diag.SemaUnresolvedModule
	case DiagDuplicateDefinition:
		return diag.SemaDuplicateDefinition
	}
	return diag.SemaUnresolvedImport
}

func (d DefDiagnostic) Message() string {
	var msg string
	switch d.Kind {
	case DiagTooManySupers:
		msg = fmt.Sprintf("import `%s` goes above the package root", d.Path)
	case DiagUnresolvedModule:
		msg = fmt.Sprintf("unresolved module `%s`", d.Name)
	case DiagDuplicateDefinition:
		msg = fmt.Sprintf("`%s` is defined more than once in this module", d.Name)
	default:
		msg = fmt.Sprintf("unresolved import `%s`", d.Name)
	}
	if len(d.Suggestions) > 0 {
		names := make([]string, len(d.Suggestions))
		for i, s := range d.Suggestions {
			names[i] = "`" + string(s) + "`"
		}
		msg += "; did you mean " + strings.Join(names, ", ") + "?"
	}
	return msg
}
