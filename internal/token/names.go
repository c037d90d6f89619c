package token

import "fmt"

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// Text returns the fixed spelling of punctuation and keywords, or "".
func (k Kind) Text() string {
	if int(k) < len(kindText) {
		return kindText[k]
	}
	return ""
}

// Describe returns the spelling of k used in parse messages: the quoted
// text for keywords and punctuation, a phrase for everything else.
func (k Kind) Describe() string {
	if t := k.Text(); t != "" {
		return "`" + t + "`"
	}
	switch k {
	case EOF:
		return "end of file"
	case Ident:
		return "identifier"
	case IntLiteral, UintLiteral:
		return "integer literal"
	case DecimalFloatLiteral, HexFloatLiteral:
		return "float literal"
	case StringLiteral:
		return "string literal"
	}
	return k.String()
}

var keywords = func() map[string]Kind {
	m := make(map[string]Kind, int(typeKeywordEnd-keywordStart))
	for k := keywordStart + 1; k < typeKeywordEnd; k++ {
		if k == typeKeywordStart {
			continue
		}
		m[kindText[k]] = k
	}
	return m
}()

// LookupKeyword maps identifier text to a keyword or type keyword kind.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
