package source

import "testing"

func TestTextRange(t *testing.T) {
	r := TextRange{Start: 3, End: 7}
	if !r.Contains(3) || r.Contains(7) || r.Empty() {
		t.Errorf("containment wrong for %v", r)
	}
	if !r.ContainsRange(TextRange{Start: 4, End: 7}) || r.ContainsRange(TextRange{Start: 2, End: 4}) {
		t.Errorf("range containment wrong for %v", r)
	}
	if got := r.InFile(9); got != (Span{File: 9, Start: 3, End: 7}) {
		t.Errorf("InFile = %v", got)
	}
	if got := r.InFile(9).Range(); got != r {
		t.Errorf("Range round trip = %v", got)
	}
}

func TestSpanString(t *testing.T) {
	sp := Span{File: 2, Start: 5, End: 5}
	if !sp.Empty() || sp.String() != "2:5-5" || sp.Range().String() != "5..5" {
		t.Errorf("span %v empty=%v range=%v", sp, sp.Empty(), sp.Range())
	}
}
