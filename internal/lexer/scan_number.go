package lexer

import (
	"shaderlens/internal/diag"
	"shaderlens/internal/token"
)

// scanNumber lexes WGSL numeric literals:
//
//	0x1F  0x1Fu  12  12i  12u  1.5  .5  1.  1e-3  2f  1.5h  0x1.8p3
//
// There is no leading '-'; negation is a prefix expression.
func (lx *Lexer) scanNumber() token.Kind {
	start := lx.cursor.Mark()
	c := &lx.cursor

	if c.Peek() == '0' && (c.PeekAt(1) == 'x' || c.PeekAt(1) == 'X') {
		c.Off += 2
		return lx.scanHex(start)
	}

	float := false
	for isDec(c.Peek()) {
		c.Bump()
	}
	if c.Peek() == '.' && !isIdentStartByte(c.PeekAt(1)) {
		float = true
		c.Bump()
		for isDec(c.Peek()) {
			c.Bump()
		}
	}
	if c.Peek() == 'e' || c.Peek() == 'E' {
		mark := c.Mark()
		c.Bump()
		if c.Peek() == '+' || c.Peek() == '-' {
			c.Bump()
		}
		if isDec(c.Peek()) {
			float = true
			for isDec(c.Peek()) {
				c.Bump()
			}
		} else {
			c.Reset(mark)
		}
	}

	switch c.Peek() {
	case 'f', 'h':
		if !isIdentContinueByte(c.PeekAt(1)) {
			c.Bump()
			return token.DecimalFloatLiteral
		}
	case 'i':
		if !float && !isIdentContinueByte(c.PeekAt(1)) {
			c.Bump()
			return token.IntLiteral
		}
	case 'u':
		if !float && !isIdentContinueByte(c.PeekAt(1)) {
			c.Bump()
			return token.UintLiteral
		}
	}
	if isIdentContinueByte(c.Peek()) {
		for isIdentContinueByte(c.Peek()) {
			c.Bump()
		}
		lx.report(diag.LexBadNumber, c.SpanFrom(start), "malformed number literal")
	}
	if float {
		return token.DecimalFloatLiteral
	}
	return token.IntLiteral
}

func (lx *Lexer) scanHex(start Mark) token.Kind {
	c := &lx.cursor
	digits := 0
	for isHex(c.Peek()) {
		c.Bump()
		digits++
	}
	float := false
	if c.Peek() == '.' {
		float = true
		c.Bump()
		for isHex(c.Peek()) {
			c.Bump()
			digits++
		}
	}
	if c.Peek() == 'p' || c.Peek() == 'P' {
		float = true
		c.Bump()
		if c.Peek() == '+' || c.Peek() == '-' {
			c.Bump()
		}
		if !isDec(c.Peek()) {
			lx.report(diag.LexBadNumber, c.SpanFrom(start), "expected digit after exponent")
		}
		for isDec(c.Peek()) {
			c.Bump()
		}
		if c.Peek() == 'f' || c.Peek() == 'h' {
			c.Bump()
		}
	}
	if digits == 0 {
		lx.report(diag.LexBadNumber, c.SpanFrom(start), "expected hex digits")
	}
	if float {
		return token.HexFloatLiteral
	}
	switch {
	case c.Peek() == 'i' && !isIdentContinueByte(c.PeekAt(1)):
		c.Bump()
	case c.Peek() == 'u' && !isIdentContinueByte(c.PeekAt(1)):
		c.Bump()
		return token.UintLiteral
	}
	return token.IntLiteral
}
