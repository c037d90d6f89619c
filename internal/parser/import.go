package parser

import (
	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

// MsgImportNeedsWESL is the message of the error recorded for an import
// statement in a WGSL file.
const MsgImportNeedsWESL = "import statements require the WESL edition"

// importStatement parses `import [package::|super::...] tree;`.
func importStatement(p *Parser, m Marker) {
	if p.edition != syntax.EditionWESL {
		p.ErrorMessage(MsgImportNeedsWESL, p.currentRange())
	}
	p.Expect(token.KwImport)

	switch {
	case p.At(token.KwPackage):
		pm := p.Start()
		p.Bump()
		p.Expect(token.ColonColon)
		pm.Complete(p, token.ImportPackageRelative)
	case p.At(token.KwSuper):
		sm := p.Start()
		for p.At(token.KwSuper) {
			p.Bump()
			p.Expect(token.ColonColon)
		}
		sm.Complete(p, token.ImportSuperRelative)
	}

	importTree(p)
	p.ExpectNoBump(token.Semicolon)
	m.Complete(p, token.ImportStatement)
}

func importTree(p *Parser) {
	switch {
	case p.At(token.BraceLeft):
		p.list(token.BraceLeft, token.BraceRight, token.Comma, token.ImportTreeCollection, importTree)
	case p.At(token.Ident):
		m := p.Start()
		name(p)
		if p.Eat(token.ColonColon) {
			importTree(p)
			m.Complete(p, token.ImportTreePath)
			return
		}
		if p.Eat(token.KwAs) {
			name(p)
		}
		m.Complete(p, token.ImportTreeItem)
	default:
		p.ErrorExpectedNoBump(token.Ident, token.BraceLeft)
	}
}

// legacyImport parses `#import "file.wgsl"` and `#import some::module`.
func legacyImport(p *Parser, m Marker) {
	p.Expect(token.PreprocImport)
	switch {
	case p.At(token.StringLiteral):
		p.Bump()
	case p.At(token.Ident):
		cm := p.Start()
		for p.At(token.Ident) || p.At(token.ColonColon) {
			p.Bump()
		}
		cm.Complete(p, token.ImportCustomPath)
	default:
		p.ErrorExpectedNoBump(token.Ident, token.StringLiteral)
	}
	m.Complete(p, token.PreprocessorImport)
}
