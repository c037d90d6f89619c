package db

import (
	"slices"

	"shaderlens/internal/ast"
	"shaderlens/internal/diag"
	"shaderlens/internal/hir"
	"shaderlens/internal/lexer"
	"shaderlens/internal/parser"
	"shaderlens/internal/sema"
	"shaderlens/internal/source"
	"shaderlens/internal/symbols"
	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

// computeFileDiagnostics gathers every problem of one file, in source
// order: lexical, syntax, resolution, type and validation diagnostics.
func computeFileDiagnostics(r *reader, file source.FileID) []diag.Diagnostic {
	bag := diag.NewBag(0)
	add := func(d diag.Diagnostic) bool {
		bag.Add(d)
		return true
	}

	pre := r.Preprocessed(file)
	for _, rg := range pre.Unbalanced {
		add(diag.NewError(diag.SynUnbalancedPreproc, rg.InFile(file), "unbalanced preprocessor directive"))
	}
	lexer.Tokenize(&source.File{ID: file, Content: []byte(pre.Text)}, lexer.Options{
		Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
	})
	for _, e := range r.Parse(file).Errors() {
		add(ParseErrorDiagnostic(file, e))
	}

	r.defDiagnostics(file, add)
	r.itemDiagnostics(file, add)
	r.ValidateGlobalVariables(file, add)
	r.ValidatePrecedence(file, add)

	bag.Sort()
	bag.Dedup()
	return bag.Items()
}

// ParseErrorDiagnostic converts a syntax error of file.
func ParseErrorDiagnostic(file source.FileID, e *parser.ParseError) diag.Diagnostic {
	code := diag.SynUnexpectedToken
	if e.Msg == parser.MsgImportNeedsWESL {
		code = diag.SynImportNeedsWESL
	}
	return diag.NewError(code, e.Range.InFile(file), e.Message())
}

// FileDiagnostics returns the diagnostics of file sorted by position.
func (r *reader) FileDiagnostics(file source.FileID) []diag.Diagnostic {
	return r.q().diagnostics.get(r, file)
}

func (r *reader) defDiagnostics(file source.FileID, sink func(diag.Diagnostic) bool) {
	dm := r.DefMap(r.PackageOf(file))
	for _, d := range dm.Diagnostics {
		if d.File != file {
			continue
		}
		span := r.astIDSpan(file, d.AstID, d.Kind == symbols.DiagDuplicateDefinition)
		if !sink(diag.NewError(d.Code(), span, d.Message())) {
			return
		}
	}
}

// itemDiagnostics reports signature problems and inference results of
// every item in file.
func (r *reader) itemDiagnostics(file source.FileID, sink func(diag.Diagnostic) bool) {
	for _, it := range r.ItemTree(file).TopLevel {
		loc := hir.ItemLoc{File: file, Kind: it.Kind, Index: it.Index}
		var ds []sema.Diagnostic
		switch it.Kind {
		case hir.ItemStruct:
			ds = r.FieldTypes(loc).Diagnostics
		case hir.ItemFunction:
			ds = slices.Concat(r.FunctionType(loc).Diagnostics, r.Infer(loc).Diagnostics)
		case hir.ItemGlobalVariable:
			ds = slices.Concat(r.GlobalVariableType(loc).Diagnostics, r.Infer(loc).Diagnostics)
		case hir.ItemGlobalConstant, hir.ItemOverride:
			ds = r.Infer(loc).Diagnostics
		case hir.ItemTypeAlias:
			ds = r.TypeAliasType(loc).Diagnostics
		}
		for _, d := range ds {
			if !sink(r.spanned(loc, d)) {
				return
			}
		}
	}
}

// ValidateGlobalVariables checks the address space of every module-scope
// var in file. sink returns false to stop.
func (r *reader) ValidateGlobalVariables(file source.FileID, sink func(diag.Diagnostic) bool) {
	for _, it := range r.ItemTree(file).TopLevel {
		if it.Kind != hir.ItemGlobalVariable {
			continue
		}
		loc := hir.ItemLoc{File: file, Kind: it.Kind, Index: it.Index}
		stopped := false
		sema.ValidateGlobalVariable(r, loc, func(d sema.Diagnostic) bool {
			stopped = !sink(r.spanned(loc, d))
			return !stopped
		})
		if stopped {
			return
		}
	}
}

// ValidatePrecedence reports operator mixes that need parentheses in every
// body of file. sink returns false to stop.
func (r *reader) ValidatePrecedence(file source.FileID, sink func(diag.Diagnostic) bool) {
	for _, it := range r.ItemTree(file).TopLevel {
		switch it.Kind {
		case hir.ItemFunction, hir.ItemGlobalVariable, hir.ItemGlobalConstant, hir.ItemOverride:
		default:
			continue
		}
		loc := hir.ItemLoc{File: file, Kind: it.Kind, Index: it.Index}
		body := r.Body(loc)
		if body == nil {
			continue
		}
		stopped := false
		fwd := func(d sema.Diagnostic) bool {
			stopped = !sink(r.spanned(loc, d))
			return !stopped
		}
		if sema.ValidateShiftPrecedence(body, fwd); stopped {
			return
		}
		if sema.ValidatePrecedence(body, fwd); stopped {
			return
		}
	}
}

// spanned places a sema diagnostic of item loc: at its body anchor or the
// signature type it names, otherwise at the item's name.
func (r *reader) spanned(loc hir.ItemLoc, d sema.Diagnostic) diag.Diagnostic {
	span, ok := r.anchorSpan(loc, d)
	if !ok {
		span, ok = r.partSpan(loc, d.Part)
	}
	if !ok {
		span = r.itemNameSpan(loc)
	}
	out := diag.NewError(d.Code, span, d.Message)
	if d.Suggestion != "" && ok {
		text := r.Preprocessed(loc.File).Text
		if int(span.End) <= len(text) && text[span.Start:span.End] == string(d.Name) {
			out = out.WithFix("replace with `"+string(d.Suggestion)+"`", diag.FixEdit{
				Span:    span,
				NewText: string(d.Suggestion),
				OldText: string(d.Name),
			})
		}
	}
	return out
}

func (r *reader) anchorSpan(loc hir.ItemLoc, d sema.Diagnostic) (source.Span, bool) {
	if d.Expr == hir.NoExpr && d.Stmt == hir.NoStmt && d.Binding == hir.NoBinding {
		return source.Span{}, false
	}
	src := r.BodySourceMap(loc)
	if src == nil {
		return source.Span{}, false
	}
	var (
		ptr syntax.NodePtr
		ok  bool
	)
	switch {
	case d.Expr != hir.NoExpr:
		ptr, ok = src.ExprSyntax(d.Expr)
	case d.Stmt != hir.NoStmt:
		ptr, ok = src.StmtSyntax(d.Stmt)
	default:
		ptr, ok = src.BindingSyntax(d.Binding)
	}
	if !ok {
		return source.Span{}, false
	}
	if n, found := ptr.ToNode(r.Parse(loc.File).SyntaxNode()); found {
		if d.Name != "" {
			n = calleeName(n)
		}
		return trimmedRange(n).InFile(loc.File), true
	}
	return ptr.Range.InFile(loc.File), true
}

// calleeName narrows a call `name(args)` to name; other nodes are kept.
func calleeName(n *syntax.Node) *syntax.Node {
	e, ok := ast.CastExpr(n)
	if !ok {
		return n
	}
	if call, ok := e.(ast.FunctionCall); ok {
		if ref, ok := call.NameRef(); ok && ref.Syntax() != nil {
			return ref.Syntax()
		}
	}
	return n
}

// partSpan is the span of the type written at p in the signature of loc.
func (r *reader) partSpan(loc hir.ItemLoc, p sema.Part) (source.Span, bool) {
	if p.Kind == sema.PartNone {
		return source.Span{}, false
	}
	n, ok := r.itemNode(loc)
	if !ok {
		return source.Span{}, false
	}
	var (
		ty    ast.Type
		found bool
	)
	switch p.Kind {
	case sema.PartParam:
		if fn, ok := ast.CastFunction(n); ok {
			if params := fn.Params(); p.Index < len(params) {
				ty, found = params[p.Index].Type()
			}
		}
	case sema.PartReturn:
		if fn, ok := ast.CastFunction(n); ok {
			if rt, ok := fn.ReturnType(); ok {
				ty, found = rt.Type()
			}
		}
	case sema.PartField:
		if st, ok := ast.CastStructDecl(n); ok {
			if fields := st.Fields(); p.Index < len(fields) {
				ty, found = fields[p.Index].Type()
			}
		}
	case sema.PartType:
		if v, ok := ast.CastGlobalVariableDecl(n); ok {
			ty, found = v.Type()
		} else if a, ok := ast.CastTypeAliasDecl(n); ok {
			ty, found = a.Type()
		}
	}
	if !found || ty.Syntax() == nil {
		return source.Span{}, false
	}
	return trimmedRange(ty.Syntax()).InFile(loc.File), true
}

func (r *reader) itemNameSpan(loc hir.ItemLoc) source.Span {
	n, ok := r.itemNode(loc)
	if !ok {
		return source.Span{File: loc.File}
	}
	if name := n.FirstChildByKind(token.Name); name != nil {
		n = name
	}
	return trimmedRange(n).InFile(loc.File)
}

func (r *reader) astIDSpan(file source.FileID, id hir.AstID, name bool) source.Span {
	n, ok := r.AstIDMap(file).Node(r.Parse(file).SyntaxNode(), id)
	if !ok {
		return source.Span{File: file}
	}
	if name {
		if nn := n.FirstChildByKind(token.Name); nn != nil {
			n = nn
		}
	}
	return trimmedRange(n).InFile(file)
}

// trimmedRange is the range of n without trailing trivia.
func trimmedRange(n *syntax.Node) source.TextRange {
	rg := n.Range()
	first := true
	for tok := range n.Tokens() {
		if tok.Kind().IsTrivia() {
			continue
		}
		tr := tok.Range()
		if first {
			rg.Start = tr.Start
			first = false
		}
		rg.End = tr.End
	}
	return rg
}
