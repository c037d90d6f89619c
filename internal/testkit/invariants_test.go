package testkit

import (
	"strings"
	"testing"

	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

func TestCheckLossless(t *testing.T) {
	root := syntax.NewRoot(syntax.NewGreenNode(token.SourceFile,
		syntax.NewGreenToken(token.KwFn, "fn"),
		syntax.NewGreenToken(token.Whitespace, " "),
	))
	if err := CheckLossless("fn ", root); err != nil {
		t.Fatalf("CheckLossless: %v", err)
	}
	err := CheckLossless("fn  ", root)
	if err == nil || !strings.Contains(err.Error(), "byte 3") {
		t.Fatalf("err = %v", err)
	}
}

func TestCheckTreeInvariants(t *testing.T) {
	good := syntax.NewRoot(syntax.NewGreenNode(token.SourceFile,
		syntax.NewGreenNode(token.Literal, syntax.NewGreenToken(token.IntLiteral, "1")),
		syntax.NewGreenNode(token.ErrorNode),
	))
	if err := CheckTreeInvariants(good); err != nil {
		t.Fatalf("valid tree rejected: %v", err)
	}
	empty := syntax.NewRoot(syntax.NewGreenNode(token.SourceFile,
		syntax.NewGreenNode(token.Literal),
	))
	if err := CheckTreeInvariants(empty); err == nil {
		t.Fatal("empty literal accepted")
	}
}
