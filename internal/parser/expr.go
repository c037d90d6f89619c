package parser

import (
	"shaderlens/internal/token"
)

type binOp struct {
	kind  token.Kind
	shift token.Kind // ShiftLeft or ShiftRight for compound operators
	l, r  uint8
}

// binaryOperator peeks the next infix operator. Shifts are checked first so
// that `<<` is not read as two comparisons.
func binaryOperator(p *Parser) (binOp, bool) {
	var op binOp
	switch {
	case p.AtCompound(token.LessThan, token.LessThan):
		op = binOp{shift: token.ShiftLeft, l: 13, r: 14}
	case p.AtCompound(token.GreaterThan, token.GreaterThan):
		op = binOp{shift: token.ShiftRight, l: 13, r: 14}
	default:
		switch k := p.Peek(); k {
		case token.OrOr:
			op = binOp{kind: k, l: 0, r: 1}
		case token.AndAnd:
			op = binOp{kind: k, l: 2, r: 3}
		case token.Or:
			op = binOp{kind: k, l: 4, r: 5}
		case token.Xor:
			op = binOp{kind: k, l: 5, r: 6}
		case token.And:
			op = binOp{kind: k, l: 7, r: 8}
		case token.EqualEqual:
			op = binOp{kind: k, l: 9, r: 10}
		case token.LessThan, token.GreaterThan, token.LessThanEqual, token.GreaterThanEqual, token.NotEqual:
			op = binOp{kind: k, l: 11, r: 12}
		case token.Plus, token.Minus:
			op = binOp{kind: k, l: 15, r: 16}
		case token.Star, token.ForwardSlash, token.Modulo:
			op = binOp{kind: k, l: 17, r: 18}
		default:
			p.SetExpected()
			return binOp{}, false
		}
	}
	p.SetExpected()
	return op, true
}

const (
	prefixPower  = 20
	postfixPower = 21
)

// expression parses a full expression unless the parser already sits on a
// statement keyword.
func expression(p *Parser) (CompletedMarker, bool) {
	if p.AtSet(statementRecoverySet) {
		return CompletedMarker{}, false
	}
	return expressionBP(p, 0)
}

func expressionBP(p *Parser, minPower uint8) (CompletedMarker, bool) {
	lhs, ok := leftSide(p)
	if !ok {
		return CompletedMarker{}, false
	}

	for {
		if postfixPower >= minPower {
			switch {
			case p.At(token.Period):
				m := lhs.Precede(p)
				p.Bump()
				nameRef(p)
				lhs = m.Complete(p, token.FieldExpr)
				continue
			case p.At(token.ParenLeft):
				m := lhs.Precede(p)
				argumentList(p)
				lhs = m.Complete(p, token.FunctionCall)
				continue
			case p.At(token.BracketLeft):
				m := lhs.Precede(p)
				p.Bump()
				expressionBP(p, 0)
				p.Expect(token.BracketRight)
				lhs = m.Complete(p, token.IndexExpr)
				continue
			}
		}

		op, ok := binaryOperator(p)
		if !ok || op.l < minPower {
			break
		}
		if op.shift != 0 {
			p.BumpCompound(op.shift)
		} else {
			p.Bump()
		}
		m := lhs.Precede(p)
		_, parsed := expressionBP(p, op.r)
		lhs = m.Complete(p, token.InfixExpr)
		if !parsed {
			break
		}
	}
	return lhs, true
}

func argumentList(p *Parser) {
	p.list(token.ParenLeft, token.ParenRight, token.Comma, token.FunctionParamList, func(p *Parser) {
		expressionBP(p, 0)
	})
}

func leftSide(p *Parser) (CompletedMarker, bool) {
	switch {
	case p.AtSet(literalSet):
		return literal(p), true
	case p.At(token.Ident):
		m := p.Start()
		nameRef(p)
		if p.At(token.ParenLeft) {
			argumentList(p)
			return m.Complete(p, token.FunctionCall), true
		}
		return m.Complete(p, token.PathExpr), true
	case p.At(token.KwBitcast):
		return bitcastExpr(p), true
	case p.AtSet(typeSet):
		ty, _ := typeDecl(p)
		m := ty.Precede(p)
		if p.At(token.ParenLeft) {
			argumentList(p)
		} else {
			p.ErrorNoBump(token.ParenLeft)
		}
		return m.Complete(p, token.TypeInitializer), true
	case p.AtSet(prefixOpSet):
		m := p.Start()
		p.Bump()
		expressionBP(p, prefixPower)
		return m.Complete(p, token.PrefixExpr), true
	case p.At(token.ParenLeft):
		return parenExpr(p), true
	}
	p.Error()
	return CompletedMarker{}, false
}

func literal(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump()
	return m.Complete(p, token.Literal)
}

func parenExpr(p *Parser) CompletedMarker {
	m := p.Start()
	p.Expect(token.ParenLeft)
	if p.At(token.ParenRight) {
		p.ErrorExpectedNoBump(token.ParenExpr)
		p.Bump()
		return m.Complete(p, token.ParenExpr)
	}
	expressionBP(p, 0)
	p.Expect(token.ParenRight)
	return m.Complete(p, token.ParenExpr)
}

// bitcastExpr parses `bitcast<T>(e)`.
func bitcastExpr(p *Parser) CompletedMarker {
	m := p.Start()
	p.Expect(token.KwBitcast)
	if !p.Eat(token.LessThan) {
		p.ErrorExpectedNoBump(token.LessThan)
		if p.At(token.ParenLeft) {
			parenExpr(p)
		}
		return m.Complete(p, token.BitcastExpr)
	}
	typeDecl(p)
	p.Expect(token.GreaterThan)
	if !p.At(token.ParenLeft) {
		p.ErrorExpectedNoBump(token.ParenLeft)
		return m.Complete(p, token.BitcastExpr)
	}
	parenExpr(p)
	return m.Complete(p, token.BitcastExpr)
}
