package diag

import (
	"shaderlens/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type FixEdit struct {
	Span    source.Span
	NewText string
	// OldText, when set, must match the text under Span for the edit to
	// apply.
	OldText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is one user-facing finding. Diagnostics are values: every
// field is comparable or a slice, so equality checks in the incremental
// database can use reflect.DeepEqual.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
