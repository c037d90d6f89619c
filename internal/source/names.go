package source

import "golang.org/x/text/unicode/norm"

// NormalizeName returns the NFC form of an identifier. Two identifiers
// name the same thing only if their normalized forms are equal.
func NormalizeName(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}
