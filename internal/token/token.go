package token

import (
	"shaderlens/internal/source"
)

// Token is one lexeme, trivia included.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

func (t Token) IsTrivia() bool { return t.Kind.IsTrivia() }

// Set is a small set of kinds used for recovery and expectation tracking.
type Set struct {
	bits [(int(kindEnd) + 63) / 64]uint64
}

func NewSet(kinds ...Kind) Set {
	var s Set
	for _, k := range kinds {
		s.bits[k/64] |= 1 << (k % 64)
	}
	return s
}

func (s Set) Contains(k Kind) bool { return s.bits[k/64]&(1<<(k%64)) != 0 }

func (s Set) Union(o Set) Set {
	for i := range s.bits {
		s.bits[i] |= o.bits[i]
	}
	return s
}

func (s Set) With(kinds ...Kind) Set { return s.Union(NewSet(kinds...)) }
