package parser

import (
	"shaderlens/internal/token"
)

func file(p *Parser) {
	m := p.Start()
	for !p.AtEnd() {
		loc := p.Location()
		item(p)
		if p.Location() == loc {
			em := p.Start()
			p.Bump()
			em.Complete(p, token.ErrorNode)
		}
	}
	m.Complete(p, token.SourceFile)
}

func item(p *Parser) {
	m := p.Start()
	attributeListOpt(p)
	switch {
	case p.At(token.PreprocImport):
		legacyImport(p, m)
	case p.At(token.KwImport):
		importStatement(p, m)
	case p.At(token.KwFn):
		function(p, m)
	case p.At(token.KwStruct):
		structDecl(p, m)
	case p.At(token.KwVar):
		globalDeclaration(p, m, token.KwVar, token.GlobalVariableDecl)
	case p.At(token.KwLet):
		r := p.currentRange()
		globalDeclaration(p, m, token.KwLet, token.GlobalConstantDecl)
		p.ErrorMessage("global let declarations are not allowed", r)
	case p.At(token.KwConst):
		globalDeclaration(p, m, token.KwConst, token.GlobalConstantDecl)
	case p.At(token.KwOverride):
		globalDeclaration(p, m, token.KwOverride, token.OverrideDecl)
	case p.At(token.KwAlias), p.At(token.KwType):
		typeAlias(p, m)
	case p.At(token.KwConstAssert):
		constAssert(p, m)
	case p.At(token.KwEnable):
		enableDirective(p, m)
	default:
		p.ErrorExpected(token.KwFn, token.KwStruct, token.KwVar, token.KwLet, token.KwConst, token.KwAlias, token.KwOverride)
		m.Complete(p, token.ErrorNode)
	}
}

func globalDeclaration(p *Parser, m Marker, kw, kind token.Kind) {
	p.Expect(kw)
	if p.At(token.LessThan) {
		variableQualifier(p)
	}
	if p.AtSet(itemRecoverySet) {
		p.ErrorNoBump(token.Name)
		m.Complete(p, kind)
		return
	}
	name(p)
	if p.Eat(token.Colon) {
		typeDecl(p)
	}
	if p.Eat(token.Equal) {
		if p.AtSet(itemRecoverySet) {
			m.Complete(p, kind)
			return
		}
		expression(p)
	}
	p.ExpectNoBump(token.Semicolon)
	m.Complete(p, kind)
}

func typeAlias(p *Parser, m Marker) {
	p.Bump()
	name(p)
	p.Expect(token.Equal)
	typeDecl(p)
	p.ExpectNoBump(token.Semicolon)
	m.Complete(p, token.TypeAliasDecl)
}

func structDecl(p *Parser, m Marker) {
	p.Expect(token.KwStruct)
	if !p.AtSet(itemRecoverySet) {
		name(p)
	}
	if p.AtSet(itemRecoverySet) {
		p.ErrorNoBump(token.BraceLeft)
		m.Complete(p, token.StructDecl)
		return
	}
	p.listMultisep(token.BraceLeft, token.BraceRight, token.NewSet(token.Semicolon, token.Comma),
		token.StructDeclBody, structMember)
	p.Eat(token.Semicolon)
	m.Complete(p, token.StructDecl)
}

func structMember(p *Parser) {
	m := p.Start()
	attributeListOpt(p)
	variableIdentDecl(p)
	if p.At(token.Semicolon) || p.At(token.Comma) {
		p.Bump()
	}
	m.Complete(p, token.StructDeclField)
}

func function(p *Parser, m Marker) {
	p.Expect(token.KwFn)
	if !p.At(token.Ident) {
		m.Complete(p, token.Function)
		return
	}
	name(p)

	if p.At(token.ParenLeft) {
		p.list(token.ParenLeft, token.ParenRight, token.Comma, token.ParamList, parameter)
	} else {
		p.ErrorRecovery(itemRecoverySet)
	}

	if p.At(token.Arrow) {
		rm := p.Start()
		p.Bump()
		attributeListOpt(p)
		if p.At(token.BraceLeft) {
			p.ErrorNoBump(token.PathType)
		} else {
			typeDecl(p)
		}
		rm.Complete(p, token.ReturnType)
	}

	if p.At(token.BraceLeft) {
		compoundStatement(p)
	} else {
		p.ErrorRecovery(token.NewSet(token.KwFn))
	}
	m.Complete(p, token.Function)
}

func parameter(p *Parser) {
	m := p.Start()
	attributeListOpt(p)
	if p.At(token.ParenRight) {
		p.SetExpected(token.VariableIdentDecl)
		p.ErrorRecovery(token.NewSet(token.ParenRight))
		m.Complete(p, token.Param)
		return
	}
	variableIdentDecl(p)
	m.Complete(p, token.Param)
}

func constAssert(p *Parser, m Marker) {
	p.Expect(token.KwConstAssert)
	expression(p)
	p.ExpectNoBump(token.Semicolon)
	m.Complete(p, token.ConstAssertStatement)
}

// enableDirective parses `enable f16, clip_distances;`.
func enableDirective(p *Parser, m Marker) {
	p.Expect(token.KwEnable)
	for p.At(token.Ident) || p.AtSet(typeSet) {
		p.Bump()
		if !p.Eat(token.Comma) {
			break
		}
	}
	p.ExpectNoBump(token.Semicolon)
	m.Complete(p, token.EnableDirective)
}
