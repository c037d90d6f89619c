package sema

import (
	"fmt"

	"shaderlens/internal/diag"
	"shaderlens/internal/hir"
	"shaderlens/internal/types"
)

// itemLowerer lowers the types of an item signature into diags. Callers
// anchor what it reports with inPart.
func itemLowerer(db Database, loc hir.ItemLoc, diags *[]Diagnostic) *typeLowerer {
	return newTypeLowerer(db, db.Resolver(loc.File), func(code diag.Code, format string, args ...any) {
		*diags = append(*diags, Diagnostic{Code: code, Message: fmt.Sprintf(format, args...)})
	})
}

// LowerFieldTypes lowers the member types of a struct. A member that
// contains the struct itself by value is a cycle and lowers to Error.
func LowerFieldTypes(db Database, loc hir.ItemLoc) *FieldTypesResult {
	out := &FieldTypesResult{}
	sd := db.StructData(loc)
	if sd == nil {
		return out
	}
	l := itemLowerer(db, loc, &out.Diagnostics)
	out.Types = make([]types.Type, len(sd.Fields))
	for i, f := range sd.Fields {
		n := len(out.Diagnostics)
		t := l.lower(f.Type)
		if containsStruct(db, t, loc, make(map[hir.ItemLoc]bool)) {
			out.Diagnostics = append(out.Diagnostics, Diagnostic{
				Code:    diag.SemaCyclicType,
				Message: fmt.Sprintf("field `%s` makes struct `%s` contain itself", f.Name, sd.Name),
			})
			t = types.Error
		}
		inPart(out.Diagnostics[n:], Part{Kind: PartField, Index: i})
		out.Types[i] = t
	}
	return out
}

// containsStruct reports whether t holds the struct target by value. It
// lowers nested structs directly instead of through FieldTypes so that a
// cycle cannot turn into a query cycle.
func containsStruct(db Database, t types.Type, target hir.ItemLoc, seen map[hir.ItemLoc]bool) bool {
	in := db.Interner()
	k := in.Kind(t)
	switch k.Kind {
	case types.KindArray, types.KindAtomic:
		return containsStruct(db, k.Inner, target, seen)
	case types.KindStruct:
		key, _ := in.StructKey(t)
		loc, ok := key.(hir.ItemLoc)
		if !ok {
			return false
		}
		if loc == target {
			return true
		}
		if seen[loc] {
			return false
		}
		seen[loc] = true
		sd := db.StructData(loc)
		if sd == nil {
			return false
		}
		l := newTypeLowerer(db, db.Resolver(loc.File), nil)
		for _, f := range sd.Fields {
			if containsStruct(db, l.lower(f.Type), target, seen) {
				return true
			}
		}
	}
	return false
}

// LowerFunctionType lowers a function's parameter and return types.
func LowerFunctionType(db Database, loc hir.ItemLoc) *FunctionSignature {
	out := &FunctionSignature{Return: types.NoType}
	fd := db.FunctionData(loc)
	if fd == nil {
		out.Type = types.Error
		return out
	}
	l := itemLowerer(db, loc, &out.Diagnostics)
	out.Params = make([]types.Type, len(fd.Params))
	for i, p := range fd.Params {
		if p.Type == nil {
			out.Params[i] = types.Error
			continue
		}
		n := len(out.Diagnostics)
		out.Params[i] = l.lower(p.Type)
		inPart(out.Diagnostics[n:], Part{Kind: PartParam, Index: i})
	}
	if fd.ReturnType != nil {
		n := len(out.Diagnostics)
		out.Return = l.lower(fd.ReturnType)
		inPart(out.Diagnostics[n:], Part{Kind: PartReturn})
	}
	out.Type = db.Interner().Function(out.Return, out.Params)
	return out
}

// LowerGlobalVariableType lowers the declared type and memory view of a
// module-scope var. Without an annotation the initializer decides.
func LowerGlobalVariableType(db Database, loc hir.ItemLoc) *GlobalVariableType {
	in := db.Interner()
	out := &GlobalVariableType{Store: types.Error, Type: types.Error}
	data := db.GlobalVariableData(loc)
	if data == nil {
		return out
	}
	switch {
	case data.Type != nil:
		out.Store = itemLowerer(db, loc, &out.Diagnostics).lower(data.Type)
		inPart(out.Diagnostics, Part{Kind: PartType})
	case data.HasInit:
		out.Store = GlobalValueType(db, loc)
	}

	k := in.Kind(out.Store).Kind
	handle := k == types.KindTexture || k == types.KindSampler || in.Kind(out.Store).BindingArray
	out.Space = types.SpaceNone
	if sp, ok := types.ParseAddressSpace(data.AddressSpace); ok {
		out.Space = sp
	} else if handle {
		out.Space = types.SpaceHandle
	}
	out.Access = out.Space.DefaultAccess()
	if ac, ok := types.ParseAccessMode(data.AccessMode); ok {
		out.Access = ac
	}
	switch {
	case in.IsError(out.Store):
		out.Type = types.Error
	case out.Space == types.SpaceHandle:
		out.Type = out.Store
	case out.Space == types.SpaceNone:
		// reported by validation; keep the variable usable
		out.Type = in.Ref(out.Store, types.SpaceNone, types.AccessReadWrite)
	default:
		out.Type = in.Ref(out.Store, out.Space, out.Access)
	}
	return out
}
