package sema

import (
	"fmt"
	"strconv"
	"strings"

	"shaderlens/internal/diag"
	"shaderlens/internal/hir"
	"shaderlens/internal/symbols"
	"shaderlens/internal/token"
	"shaderlens/internal/types"
)

var texelFormats = map[string]bool{
	"rgba8unorm": true, "rgba8snorm": true, "rgba8uint": true, "rgba8sint": true,
	"rgba16uint": true, "rgba16sint": true, "rgba16float": true,
	"r32uint": true, "r32sint": true, "r32float": true,
	"rg32uint": true, "rg32sint": true, "rg32float": true,
	"rgba32uint": true, "rgba32sint": true, "rgba32float": true,
	"bgra8unorm": true,
}

// typeLowerer turns TypeRefs into interned types. Aliases are expanded
// inline with an in-progress set, so alias cycles are found here rather
// than as query cycles.
type typeLowerer struct {
	db       Database
	in       *types.Interner
	resolver symbols.Resolver
	aliases  map[hir.ItemLoc]bool
	report   func(code diag.Code, format string, args ...any)
	// cyclic is set when an alias cycle was hit below this lowerer.
	cyclic bool
}

func newTypeLowerer(db Database, resolver symbols.Resolver, report func(diag.Code, string, ...any)) *typeLowerer {
	if report == nil {
		report = func(diag.Code, string, ...any) {}
	}
	return &typeLowerer{
		db:       db,
		in:       db.Interner(),
		resolver: resolver,
		aliases:  make(map[hir.ItemLoc]bool),
		report:   report,
	}
}

// LowerType lowers ref as written in file, reporting into a fresh list.
func LowerType(db Database, resolver symbols.Resolver, ref *hir.TypeRef) LoweredType {
	var out LoweredType
	l := newTypeLowerer(db, resolver, func(code diag.Code, format string, args ...any) {
		out.Diagnostics = append(out.Diagnostics, Diagnostic{Code: code, Message: fmt.Sprintf(format, args...)})
	})
	out.Type = l.lower(ref)
	return out
}

// LowerTypeAlias lowers the target of a type alias.
func LowerTypeAlias(db Database, loc hir.ItemLoc) LoweredType {
	data := db.TypeAliasData(loc)
	if data == nil {
		return LoweredType{Type: types.Error}
	}
	var out LoweredType
	l := newTypeLowerer(db, db.Resolver(loc.File), func(code diag.Code, format string, args ...any) {
		out.Diagnostics = append(out.Diagnostics, Diagnostic{Code: code, Message: fmt.Sprintf(format, args...)})
	})
	l.aliases[loc] = true
	out.Type = l.lower(data.Type)
	if l.cyclic {
		out.Diagnostics = append(out.Diagnostics, Diagnostic{
			Code:    diag.SemaCyclicType,
			Message: fmt.Sprintf("type alias `%s` refers to itself", data.Name),
		})
	}
	inPart(out.Diagnostics, Part{Kind: PartType})
	return out
}

func (l *typeLowerer) lower(ref *hir.TypeRef) types.Type {
	if ref == nil || ref.Missing {
		return types.Error
	}
	if ref.Keyword == token.EOF {
		return l.lowerNamed(ref)
	}
	return l.lowerKeyword(ref)
}

func (l *typeLowerer) lowerNamed(ref *hir.TypeRef) types.Type {
	if len(ref.Args) > 0 {
		l.report(diag.SemaUnexpectedTemplateArgument, "type `%s` takes no template arguments", ref.Name)
		return types.Error
	}
	if t, ok := l.in.Predeclared(string(ref.Name)); ok {
		return t
	}
	def, ok := l.resolver.ResolveType(ref.Name)
	if !ok {
		if r := l.resolver.ResolveValue(ref.Name); r.Kind != symbols.ResolvedNone {
			l.report(diag.SemaInvalidType, "`%s` is not a type", ref.Name)
		} else {
			l.report(diag.SemaUnresolvedName, "unresolved type `%s`", ref.Name)
		}
		return types.Error
	}
	switch def.Kind {
	case symbols.DefStruct:
		return l.in.InternStruct(def.Loc)
	case symbols.DefTypeAlias:
		return l.expandAlias(def.Loc)
	}
	return types.Error
}

func (l *typeLowerer) expandAlias(loc hir.ItemLoc) types.Type {
	if l.aliases[loc] {
		l.cyclic = true
		return types.Error
	}
	data := l.db.TypeAliasData(loc)
	if data == nil {
		return types.Error
	}
	l.aliases[loc] = true
	defer delete(l.aliases, loc)
	// problems inside the alias are reported on the alias itself
	sub := &typeLowerer{
		db:       l.db,
		in:       l.in,
		resolver: l.db.Resolver(loc.File),
		aliases:  l.aliases,
		report:   func(diag.Code, string, ...any) {},
	}
	t := sub.lower(data.Type)
	if sub.cyclic {
		l.cyclic = true
	}
	return t
}

func (l *typeLowerer) lowerKeyword(ref *hir.TypeRef) types.Type {
	kw := ref.Keyword
	switch {
	case kw.IsVector():
		if len(ref.Args) == 0 {
			l.report(diag.SemaInvalidType, "`%s` needs a component type", kw.Text())
			return types.Error
		}
		inner, ok := l.scalarArg(ref, 1)
		if !ok {
			return types.Error
		}
		return l.in.Vector(uint8(kw-token.TyVec2)+2, inner)
	case kw.IsMatrix():
		if len(ref.Args) == 0 {
			l.report(diag.SemaInvalidType, "`%s` needs a component type", kw.Text())
			return types.Error
		}
		inner, ok := l.scalarArg(ref, 1)
		if !ok {
			return types.Error
		}
		if !l.in.Kind(inner).Scalar.IsFloat() {
			l.report(diag.SemaInvalidType, "matrix components must be f32 or f16, found `%s`", l.display(inner))
			return types.Error
		}
		cols, rows := matrixShape(kw)
		return l.in.Matrix(cols, rows, inner)
	case kw.IsTexture():
		return l.lowerTexture(ref)
	}

	switch kw {
	case token.TyBool:
		return l.noArgs(ref, types.Bool)
	case token.TyI32:
		return l.noArgs(ref, types.I32)
	case token.TyU32:
		return l.noArgs(ref, types.U32)
	case token.TyF32:
		return l.noArgs(ref, types.F32)
	case token.TyF16:
		return l.noArgs(ref, types.F16)
	case token.TySampler:
		return l.noArgs(ref, l.in.Sampler(false))
	case token.TySamplerComparison:
		return l.noArgs(ref, l.in.Sampler(true))
	case token.TyAtomic:
		inner, ok := l.scalarArg(ref, 1)
		if !ok {
			return types.Error
		}
		if inner != types.I32 && inner != types.U32 {
			l.report(diag.SemaInvalidType, "atomics hold i32 or u32, found `%s`", l.display(inner))
			return types.Error
		}
		return l.in.Atomic(inner)
	case token.TyArray, token.TyBindingArray:
		return l.lowerArray(ref)
	case token.TyPtr:
		return l.lowerPtr(ref)
	}
	l.report(diag.SemaInvalidType, "`%s` is not a type", kw.Text())
	return types.Error
}

func matrixShape(kw token.Kind) (cols, rows uint8) {
	text := kw.Text() // matCxR
	return text[3] - '0', text[5] - '0'
}

func (l *typeLowerer) display(t types.Type) string { return l.in.Display(t, StructNamer(l.db)) }

func (l *typeLowerer) noArgs(ref *hir.TypeRef, t types.Type) types.Type {
	if len(ref.Args) > 0 {
		l.report(diag.SemaUnexpectedTemplateArgument, "`%s` takes no template arguments", ref.Keyword.Text())
		return types.Error
	}
	return t
}

func (l *typeLowerer) arity(ref *hir.TypeRef, lo, hi int) bool {
	if n := len(ref.Args); n < lo || n > hi {
		if n > hi {
			l.report(diag.SemaUnexpectedTemplateArgument, "too many template arguments for `%s`", ref.Keyword.Text())
		} else {
			l.report(diag.SemaInvalidType, "missing template arguments for `%s`", ref.Keyword.Text())
		}
		return false
	}
	return true
}

func (l *typeLowerer) typeArg(a hir.TypeArg) (types.Type, bool) {
	if a.Type == nil {
		l.report(diag.SemaExpectedLoweredKind, "expected a type, found `%s`", a.Value+a.Word)
		return types.Error, false
	}
	t := l.lower(a.Type)
	return t, !l.in.IsError(t)
}

// wordArg reads an address space, access mode or texel format. These may
// come through as keywords or as plain names.
func (l *typeLowerer) wordArg(a hir.TypeArg) (string, bool) {
	switch {
	case a.Word != "":
		return a.Word, true
	case a.Type != nil && a.Type.IsNamed() && len(a.Type.Args) == 0:
		return string(a.Type.Name), true
	}
	l.report(diag.SemaExpectedLoweredKind, "expected an identifier, found `%s`", a.Type.String()+a.Value)
	return "", false
}

func (l *typeLowerer) scalarArg(ref *hir.TypeRef, n int) (types.Type, bool) {
	if !l.arity(ref, n, n) {
		return types.Error, false
	}
	t, ok := l.typeArg(ref.Args[0])
	if !ok {
		return types.Error, false
	}
	if !l.in.IsScalar(t) || l.in.IsAbstract(t) {
		l.report(diag.SemaInvalidType, "`%s` needs a scalar component type, found `%s`", ref.Keyword.Text(), l.display(t))
		return types.Error, false
	}
	return t, true
}

func (l *typeLowerer) lowerArray(ref *hir.TypeRef) types.Type {
	if !l.arity(ref, 1, 2) {
		return types.Error
	}
	elem, ok := l.typeArg(ref.Args[0])
	if !ok {
		return types.Error
	}
	binding := ref.Keyword == token.TyBindingArray
	if !binding && !l.in.IsPlain(elem) {
		l.report(diag.SemaInvalidType, "array elements must be plain types, found `%s`", l.display(elem))
		return types.Error
	}
	var n uint32
	runtime := len(ref.Args) == 1
	if !runtime {
		n, ok = l.arraySize(ref.Args[1])
		if !ok {
			return types.Error
		}
	}
	if binding {
		return l.in.BindingArray(elem, n, runtime)
	}
	return l.in.Array(elem, n, runtime)
}

// arraySize evaluates an element count: an integer literal, or the name of
// a global constant initialized with one.
func (l *typeLowerer) arraySize(a hir.TypeArg) (uint32, bool) {
	text := a.Value
	if text == "" && a.Type != nil && a.Type.IsNamed() {
		text = string(a.Type.Name)
	}
	n, ok := parseIntLiteral(text)
	if !ok {
		n, ok = l.constSize(hir.Name(text))
	}
	switch {
	case !ok:
		l.report(diag.SemaInvalidType, "array size must be a constant integer, found `%s`", text)
		return 0, false
	case n == 0:
		l.report(diag.SemaInvalidType, "array size must be greater than zero")
		return 0, false
	}
	return n, true
}

func (l *typeLowerer) constSize(name hir.Name) (uint32, bool) {
	r := l.resolver.ResolveValue(name)
	if r.Kind != symbols.ResolvedDef || (r.Def.Kind != symbols.DefGlobalConstant && r.Def.Kind != symbols.DefOverride) {
		return 0, false
	}
	body := l.db.Body(r.Def.Loc)
	if body == nil {
		return 0, false
	}
	e := body.Expr(body.Init)
	if e == nil || e.Kind != hir.ExprLiteral {
		return 0, false
	}
	return parseIntLiteral(e.LitText)
}

func parseIntLiteral(text string) (uint32, bool) {
	text = strings.TrimRight(text, "iu")
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(text, 0, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

func (l *typeLowerer) lowerPtr(ref *hir.TypeRef) types.Type {
	if !l.arity(ref, 2, 3) {
		return types.Error
	}
	word, ok := l.wordArg(ref.Args[0])
	if !ok {
		return types.Error
	}
	space, ok := types.ParseAddressSpace(word)
	if !ok {
		l.report(diag.SemaInvalidType, "unknown address space `%s`", word)
		return types.Error
	}
	inner, ok := l.typeArg(ref.Args[1])
	if !ok {
		return types.Error
	}
	access := space.DefaultAccess()
	if len(ref.Args) == 3 {
		word, ok := l.wordArg(ref.Args[2])
		if !ok {
			return types.Error
		}
		if access, ok = types.ParseAccessMode(word); !ok {
			l.report(diag.SemaInvalidType, "unknown access mode `%s`", word)
			return types.Error
		}
	}
	return l.in.Ptr(inner, space, access)
}

func (l *typeLowerer) lowerTexture(ref *hir.TypeRef) types.Type {
	tt, ok := types.TextureByName(ref.Keyword.Text())
	if !ok {
		l.report(diag.SemaInvalidType, "unknown texture type `%s`", ref.Keyword.Text())
		return types.Error
	}
	switch tt.Kind {
	case types.TextureDepth, types.TextureExternal:
		return l.noArgs(ref, l.in.Texture(tt))
	case types.TextureStorage:
		if !l.arity(ref, 2, 2) {
			return types.Error
		}
		format, ok := l.wordArg(ref.Args[0])
		if !ok {
			return types.Error
		}
		if !texelFormats[format] {
			l.report(diag.SemaInvalidType, "unknown texel format `%s`", format)
			return types.Error
		}
		word, ok := l.wordArg(ref.Args[1])
		if !ok {
			return types.Error
		}
		access, ok := types.ParseAccessMode(word)
		if !ok {
			l.report(diag.SemaInvalidType, "unknown access mode `%s`", word)
			return types.Error
		}
		tt.Format, tt.Access = format, access
		return l.in.Texture(tt)
	}
	sampled, ok := l.scalarArg(ref, 1)
	if !ok {
		return types.Error
	}
	if sampled != types.F32 && sampled != types.I32 && sampled != types.U32 {
		l.report(diag.SemaInvalidType, "textures sample f32, i32 or u32, found `%s`", l.display(sampled))
		return types.Error
	}
	tt.Sampled = sampled
	return l.in.Texture(tt)
}
