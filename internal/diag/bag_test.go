package diag

import (
	"slices"
	"testing"

	"shaderlens/internal/source"
)

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(3)
	b.Add(NewError(SemaTypeMismatch, source.Span{File: 1, Start: 5, End: 6}, "b"))
	b.Add(New(SevWarning, SemaBracesRequired, source.Span{File: 0, Start: 9, End: 9}, "a"))
	b.Add(NewError(SemaNoSuchField, source.Span{File: 0, Start: 9, End: 9}, "c"))
	if b.Add(NewError(SemaNoSuchField, source.Span{}, "dropped")) {
		t.Fatal("bag accepted item past its limit")
	}
	b.Sort()
	got := []Code{b.Items()[0].Code, b.Items()[1].Code, b.Items()[2].Code}
	want := []Code{SemaNoSuchField, SemaBracesRequired, SemaTypeMismatch}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted codes = %v, want %v", got, want)
		}
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Error("severity queries wrong")
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(0)
	d := NewError(SemaUnresolvedName, source.Span{Start: 1, End: 2}, "unresolved name `x`")
	b.Add(d)
	b.Add(d)
	b.Add(NewError(SemaUnresolvedName, source.Span{Start: 1, End: 2}, "unresolved name `y`"))
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("Len after Dedup = %d, want 2", b.Len())
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynUnexpectedToken, "SYN2001"},
		{SemaMissingBlockAttribute, "SEM3201"},
		{ProjManifestInvalid, "PRJ5001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %s, want %s", tt.code, got, tt.want)
		}
	}
	if SemaMissingBlockAttribute.Title() != "Missing block attribute" {
		t.Error("missing title")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, SemaTypeMismatch, source.Span{}, "mismatch").
		WithNote(source.Span{Start: 3}, "declared here").
		WithFix("retype", FixEdit{Span: source.Span{Start: 1, End: 2}, NewText: "x"})
	b.Emit()
	b.Emit()
	got := bag.Items()
	if len(got) != 1 || len(got[0].Notes) != 1 || len(got[0].Fixes) != 1 || got[0].Severity != SevError {
		t.Fatalf("got %+v", got)
	}
	ReportError(nil, SemaTypeMismatch, source.Span{}, "dropped").Emit()
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		r.Report(SemaUnresolvedImport, SevError, source.Span{Start: 1, End: 4}, "unresolved import", nil, nil)
	}
	if bag.Len() != 1 {
		t.Fatalf("Len = %d, want 1", bag.Len())
	}
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		sev     Severity
		name    string
		isError bool
	}{
		{SevInfo, "INFO", false},
		{SevWarning, "WARNING", false},
		{SevError, "ERROR", true},
		{Severity(9), "UNKNOWN", true},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.name {
			t.Errorf("String(%d) = %q, want %q", tt.sev, got, tt.name)
		}
		if got := tt.sev.IsError(); got != tt.isError {
			t.Errorf("IsError(%d) = %v, want %v", tt.sev, got, tt.isError)
		}
	}
}

func TestWithNoteDoesNotAlias(t *testing.T) {
	base := NewError(SemaTypeMismatch, source.Span{}, "mismatch").
		WithNote(source.Span{Start: 1, End: 2}, "first")
	base.Notes = slices.Grow(base.Notes, 4)
	a := base.WithNote(source.Span{Start: 3, End: 4}, "a")
	b := base.WithNote(source.Span{Start: 5, End: 6}, "b")
	if a.Notes[1].Msg != "a" || b.Notes[1].Msg != "b" || len(base.Notes) != 1 {
		t.Fatalf("notes alias: a=%v b=%v base=%v", a.Notes, b.Notes, base.Notes)
	}
}
