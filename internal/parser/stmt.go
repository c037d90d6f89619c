package parser

import (
	"shaderlens/internal/token"
)

var commaSemicolonSet = token.NewSet(token.Comma, token.Semicolon)

func compoundStatement(p *Parser) CompletedMarker {
	return p.list(token.BraceLeft, token.BraceRight, token.Semicolon, token.CompoundStatement, func(p *Parser) {
		statement(p)
	})
}

// statement returns false when nothing was produced.
func statement(p *Parser) (CompletedMarker, bool) {
	switch {
	case p.AtSet(token.NewSet(token.KwConst, token.KwLet, token.KwVar)):
		return variableStatement(p), true
	case p.At(token.KwReturn):
		m := p.Start()
		p.Bump()
		if !p.At(token.Semicolon) && !p.At(token.BraceRight) {
			expression(p)
		}
		return m.Complete(p, token.ReturnStmt), true
	case p.At(token.BraceLeft):
		return compoundStatement(p), true
	case p.At(token.KwIf):
		return ifStatement(p), true
	case p.At(token.KwSwitch):
		return switchStatement(p), true
	case p.At(token.KwLoop):
		m := p.Start()
		p.Bump()
		compoundStatement(p)
		return m.Complete(p, token.LoopStatement), true
	case p.At(token.KwWhile):
		return whileStatement(p), true
	case p.At(token.KwFor):
		return forStatement(p), true
	case p.At(token.KwBreak):
		m := p.Start()
		p.Bump()
		if p.Eat(token.KwIf) {
			expression(p)
			return m.Complete(p, token.BreakIfStatement), true
		}
		return m.Complete(p, token.BreakStatement), true
	case p.At(token.KwContinue):
		return keywordStatement(p, token.ContinueStatement), true
	case p.At(token.KwDiscard):
		return keywordStatement(p, token.DiscardStatement), true
	case p.At(token.KwFallthrough):
		return keywordStatement(p, token.FallthroughStatement), true
	case p.At(token.KwContinuing):
		m := p.Start()
		p.Bump()
		if p.At(token.BraceLeft) {
			compoundStatement(p)
		}
		return m.Complete(p, token.ContinuingStatement), true
	case p.At(token.KwConstAssert):
		m := p.Start()
		p.Bump()
		expression(p)
		return m.Complete(p, token.ConstAssertStatement), true
	}
	return simpleStatement(p)
}

func keywordStatement(p *Parser, kind token.Kind) CompletedMarker {
	m := p.Start()
	p.Bump()
	return m.Complete(p, kind)
}

// simpleStatement parses assignments, increments and expression
// statements, which all start with an expression.
func simpleStatement(p *Parser) (CompletedMarker, bool) {
	m := p.Start()
	loc := p.Location()
	if _, ok := expression(p); !ok && p.Location() == loc {
		m.Abandon(p)
		return CompletedMarker{}, false
	}
	switch {
	case p.At(token.Equal):
		p.Bump()
		expression(p)
		return m.Complete(p, token.AssignmentStmt), true
	case p.At(token.PlusPlus), p.At(token.MinusMinus):
		p.Bump()
		return m.Complete(p, token.IncrDecrStatement), true
	case p.AtSet(compoundAssignSet):
		p.Bump()
		expression(p)
		return m.Complete(p, token.CompoundAssignmentStmt), true
	}
	return m.Complete(p, token.ExprStatement), true
}

var compoundAssignSet = func() token.Set {
	var kinds []token.Kind
	for k := token.Kind(0); int(k) < token.Count(); k++ {
		if k.IsCompoundAssign() {
			kinds = append(kinds, k)
		}
	}
	return token.NewSet(kinds...)
}()

func variableStatement(p *Parser) CompletedMarker {
	m := p.Start()
	if p.Bump() == token.KwVar && p.At(token.LessThan) {
		variableQualifier(p)
	}
	if p.AtSet(statementRecoverySet) {
		p.ErrorNoBump(token.Name)
		return m.Complete(p, token.VariableStatement)
	}
	name(p)
	if p.AtSet(statementRecoverySet) {
		p.ErrorNoBump(token.Equal)
		return m.Complete(p, token.VariableStatement)
	}
	if p.Eat(token.Colon) {
		typeDecl(p)
	}
	switch {
	case p.At(token.Equal):
		p.Bump()
		expression(p)
	case p.At(token.Semicolon):
	default:
		p.Error()
	}
	return m.Complete(p, token.VariableStatement)
}

func ifStatement(p *Parser) CompletedMarker {
	m := p.Start()
	p.Expect(token.KwIf)
	condition(p)
	compoundStatement(p)

	for p.At(token.KwElse) {
		em := p.Start()
		p.Bump()
		switch {
		case p.At(token.KwIf):
			p.Bump()
			condition(p)
			compoundStatement(p)
			em.Complete(p, token.ElseIfBlock)
		case p.At(token.BraceLeft):
			compoundStatement(p)
			em.Complete(p, token.ElseBlock)
		default:
			em.Complete(p, token.ErrorNode)
			p.ErrorRecovery(token.NewSet(token.KwElse))
		}
	}
	return m.Complete(p, token.IfStatement)
}

func condition(p *Parser) {
	if p.At(token.BraceLeft) {
		p.ErrorExpectedNoBump(token.TyBool)
		return
	}
	expression(p)
}

func whileStatement(p *Parser) CompletedMarker {
	m := p.Start()
	p.Expect(token.KwWhile)
	condition(p)
	compoundStatement(p)
	return m.Complete(p, token.WhileStatement)
}

func forStatement(p *Parser) CompletedMarker {
	m := p.Start()
	p.Expect(token.KwFor)

	if p.At(token.BraceLeft) {
		p.ErrorExpectedNoBump(token.ParenLeft)
	} else {
		p.Expect(token.ParenLeft)
		if !p.Eat(token.ParenRight) {
			forHeader(p)
			p.Expect(token.ParenRight)
		}
	}

	if p.AtSet(statementRecoverySet) {
		return m.Complete(p, token.ForStatement)
	}
	compoundStatement(p)
	return m.Complete(p, token.ForStatement)
}

func forHeader(p *Parser) {
	switch {
	case p.At(token.Semicolon):
		p.Bump()
	case p.At(token.Comma):
		p.Error()
	default:
		m := p.Start()
		statement(p)
		m.Complete(p, token.ForInitializer)
		p.EatSet(commaSemicolonSet)
	}

	switch {
	case p.At(token.Semicolon):
		p.Bump()
	case p.At(token.Comma):
		p.Error()
	default:
		m := p.Start()
		expression(p)
		m.Complete(p, token.ForCondition)
		p.EatSet(commaSemicolonSet)
	}

	switch {
	case p.AtSet(commaSemicolonSet):
		p.Error()
	case p.At(token.ParenRight):
	default:
		m := p.Start()
		statement(p)
		m.Complete(p, token.ForContinuingPart)
	}
}

func switchStatement(p *Parser) CompletedMarker {
	m := p.Start()
	p.Expect(token.KwSwitch)
	expression(p)
	p.list(token.BraceLeft, token.BraceRight, token.Semicolon, token.SwitchBlock, switchBody)
	return m.Complete(p, token.SwitchStatement)
}

func switchBody(p *Parser) {
	m := p.Start()
	switch {
	case p.At(token.KwCase):
		p.Bump()
		sm := p.Start()
		for !p.AtEnd() && !p.AtSet(token.NewSet(token.Colon, token.BraceLeft, token.BraceRight)) {
			loc := p.Location()
			if !p.Eat(token.KwDefault) {
				expression(p)
			}
			p.Eat(token.Comma)
			if p.Location() == loc {
				break
			}
		}
		sm.Complete(p, token.SwitchCaseSelectors)
		p.Eat(token.Colon)
		if !p.At(token.BraceRight) {
			compoundStatement(p)
		}
		m.Complete(p, token.SwitchBodyCase)
	case p.At(token.KwDefault):
		p.Bump()
		p.Eat(token.Colon)
		compoundStatement(p)
		m.Complete(p, token.SwitchBodyDefault)
	default:
		p.Error()
		m.Complete(p, token.SwitchBodyCase)
	}
}
