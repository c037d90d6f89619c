package lexer

import (
	"shaderlens/internal/diag"
	"shaderlens/internal/token"
)

// scanOperatorOrPunct matches the longest operator. '<<' and '>>' are
// deliberately not tokens: the parser joins adjacent '<' '<' when it
// expects a shift, so template lists such as vec2<vec2<f32>> still close.
func (lx *Lexer) scanOperatorOrPunct() token.Kind {
	start := lx.cursor.Mark()
	switch {
	case lx.try3('<', '<', '='):
		return token.ShiftLeftEqual
	case lx.try3('>', '>', '='):
		return token.ShiftRightEqual
	case lx.try2('-', '>'):
		return token.Arrow
	case lx.try2(':', ':'):
		return token.ColonColon
	case lx.try2('&', '&'):
		return token.AndAnd
	case lx.try2('|', '|'):
		return token.OrOr
	case lx.try2('=', '='):
		return token.EqualEqual
	case lx.try2('!', '='):
		return token.NotEqual
	case lx.try2('<', '='):
		return token.LessThanEqual
	case lx.try2('>', '='):
		return token.GreaterThanEqual
	case lx.try2('+', '+'):
		return token.PlusPlus
	case lx.try2('-', '-'):
		return token.MinusMinus
	case lx.try2('+', '='):
		return token.PlusEqual
	case lx.try2('-', '='):
		return token.MinusEqual
	case lx.try2('*', '='):
		return token.TimesEqual
	case lx.try2('/', '='):
		return token.DivisionEqual
	case lx.try2('%', '='):
		return token.ModuloEqual
	case lx.try2('&', '='):
		return token.AndEqual
	case lx.try2('|', '='):
		return token.OrEqual
	case lx.try2('^', '='):
		return token.XorEqual
	}

	b := lx.cursor.Bump()
	switch b {
	case '(':
		return token.ParenLeft
	case ')':
		return token.ParenRight
	case '{':
		return token.BraceLeft
	case '}':
		return token.BraceRight
	case '[':
		return token.BracketLeft
	case ']':
		return token.BracketRight
	case ',':
		return token.Comma
	case ';':
		return token.Semicolon
	case ':':
		return token.Colon
	case '.':
		return token.Period
	case '@':
		return token.At
	case '=':
		return token.Equal
	case '<':
		return token.LessThan
	case '>':
		return token.GreaterThan
	case '+':
		return token.Plus
	case '-':
		return token.Minus
	case '*':
		return token.Star
	case '/':
		return token.ForwardSlash
	case '%':
		return token.Modulo
	case '&':
		return token.And
	case '|':
		return token.Or
	case '^':
		return token.Xor
	case '!':
		return token.Bang
	case '~':
		return token.Tilde
	}
	lx.report(diag.LexUnknownChar, lx.cursor.SpanFrom(start), "unknown character")
	return token.Error
}
