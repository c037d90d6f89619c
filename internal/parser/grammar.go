package parser

import (
	"shaderlens/internal/token"
)

var (
	itemRecoverySet = token.NewSet(
		token.KwFn, token.KwStruct, token.At, token.KwVar, token.KwLet, token.KwConst,
		token.KwOverride, token.KwType, token.KwAlias, token.KwImport, token.PreprocImport,
		token.KwConstAssert, token.KwEnable,
	)

	statementRecoverySet = token.NewSet(
		token.KwLet, token.KwVar, token.KwConst, token.KwReturn, token.KwIf, token.KwSwitch,
		token.KwLoop, token.KwWhile, token.KwFor, token.KwBreak, token.KwContinue,
		token.KwFallthrough, token.KwDiscard, token.BraceRight,
	)

	literalSet = token.NewSet(
		token.IntLiteral, token.UintLiteral, token.DecimalFloatLiteral, token.HexFloatLiteral,
		token.KwTrue, token.KwFalse,
	)

	prefixOpSet = token.NewSet(token.Bang, token.Minus, token.And, token.Star, token.Tilde)

	storageClassSet = token.NewSet(
		token.KwFunction, token.KwPrivate, token.KwWorkgroup, token.KwUniform, token.KwStorage,
		token.KwPushConstant,
	)

	accessModeSet = token.NewSet(token.KwRead, token.KwWrite, token.KwReadWrite)

	closerSet = token.NewSet(token.ParenRight, token.BraceRight)

	typeSet = func() token.Set {
		var kinds []token.Kind
		for k := token.Kind(0); int(k) < token.Count(); k++ {
			if k.IsTypeKeyword() {
				kinds = append(kinds, k)
			}
		}
		return token.NewSet(kinds...)
	}()
)

func name(p *Parser) {
	m := p.Start()
	p.Expect(token.Ident)
	m.Complete(p, token.Name)
}

func nameRef(p *Parser) {
	m := p.Start()
	p.Expect(token.Ident)
	m.Complete(p, token.NameRef)
}

// typeDecl parses a type keyword with optional template arguments, or a
// named type.
func typeDecl(p *Parser) (CompletedMarker, bool) {
	switch {
	case p.AtSet(typeSet):
		m := p.Start()
		kind := p.Bump()
		if p.At(token.LessThan) {
			genericArgs(p)
		}
		return m.Complete(p, kind), true
	case p.At(token.Ident):
		m := p.Start()
		nameRef(p)
		return m.Complete(p, token.PathType), true
	}
	p.Error()
	return CompletedMarker{}, false
}

func genericArgs(p *Parser) {
	p.list(token.LessThan, token.GreaterThan, token.Comma, token.GenericArgList, func(p *Parser) {
		switch {
		case p.AtSet(accessModeSet), p.AtSet(storageClassSet):
			p.Bump()
		case p.AtSet(literalSet):
			// additive precedence keeps `>` and `>>` out of the argument
			expressionBP(p, 15)
		default:
			typeDecl(p)
		}
	})
}

func variableQualifier(p *Parser) {
	m := p.Start()
	p.Expect(token.LessThan)
	if p.AtSet(storageClassSet) || p.At(token.Ident) {
		p.Bump()
	}
	if p.Eat(token.Comma) {
		if p.AtSet(accessModeSet) || p.At(token.Ident) {
			p.Bump()
		}
	}
	p.Expect(token.GreaterThan)
	m.Complete(p, token.VariableQualifier)
}

func attributeListOpt(p *Parser) {
	switch {
	case p.At(token.At):
		m := p.Start()
		for p.At(token.At) {
			p.Bump()
			attribute(p)
		}
		m.Complete(p, token.AttributeList)
	case p.AtCompound(token.BracketLeft, token.BracketLeft):
		legacyAttributeList(p)
	}
}

// legacyAttributeList parses the `[[a, b(1)]]` form.
func legacyAttributeList(p *Parser) {
	m := p.Start()
	p.BumpCompound(token.AttrLeft)
	for !p.AtEnd() && !p.AtCompound(token.BracketRight, token.BracketRight) && !p.AtSet(stopSet) {
		loc := p.Location()
		attribute(p)
		if p.Location() == loc {
			p.Error()
			if p.Location() == loc {
				break
			}
		}
		p.Eat(token.Comma)
	}
	if p.AtCompound(token.BracketRight, token.BracketRight) {
		p.Bump()
		p.Bump()
	} else {
		p.ErrorExpectedNoBump(token.BracketRight)
	}
	m.Complete(p, token.AttributeList)
}

func attribute(p *Parser) {
	m := p.Start()
	if p.At(token.Ident) || p.At(token.KwConst) {
		p.Bump()
	} else {
		p.ErrorNoBump(token.Ident)
	}
	if p.At(token.ParenLeft) {
		p.list(token.ParenLeft, token.ParenRight, token.Comma, token.AttributeParameters, func(p *Parser) {
			expressionBP(p, 0)
		})
	}
	m.Complete(p, token.Attribute)
}

// variableIdentDecl parses `name: type` as used by parameters and struct
// members.
func variableIdentDecl(p *Parser) {
	m := p.Start()
	name(p)
	if p.AtSet(closerSet) || p.AtSet(stopSet) {
		p.ErrorNoBump(token.Colon)
		m.Complete(p, token.VariableIdentDecl)
		return
	}
	p.Expect(token.Colon)
	attributeListOpt(p)
	if p.AtSet(closerSet) || p.AtSet(stopSet) {
		p.ErrorNoBump(token.PathType)
		m.Complete(p, token.VariableIdentDecl)
		return
	}
	typeDecl(p)
	m.Complete(p, token.VariableIdentDecl)
}
