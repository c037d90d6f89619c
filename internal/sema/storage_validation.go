package sema

import (
	"fmt"

	"shaderlens/internal/diag"
	"shaderlens/internal/hir"
	"shaderlens/internal/types"
)

// ValidateGlobalVariable checks the address space of a module-scope var
// against its type. sink returns false to stop the pass.
func ValidateGlobalVariable(db Database, loc hir.ItemLoc, sink func(Diagnostic) bool) {
	data := db.GlobalVariableData(loc)
	gt := db.GlobalVariableType(loc)
	if data == nil || gt == nil {
		return
	}
	in := db.Interner()
	store := gt.Store
	if in.IsError(store) {
		return
	}
	display := func(t types.Type) string { return DisplayType(db, t) }
	storageErr := func(p StorageProblem, format string, args ...any) bool {
		return sink(Diagnostic{Code: diag.SemaStorageClassError, Storage: p, Message: fmt.Sprintf(format, args...)})
	}

	if data.AddressSpace == "" {
		k := in.Kind(store)
		if k.Kind == types.KindSampler || k.Kind == types.KindTexture || k.BindingArray {
			return
		}
		sink(Diagnostic{
			Code:    diag.SemaMissingStorageClass,
			Message: fmt.Sprintf("module-scope variable `%s` of type `%s` needs an address space, such as var<private>", data.Name, display(store)),
		})
		return
	}

	space, ok := types.ParseAddressSpace(data.AddressSpace)
	if !ok {
		storageErr(StorageUnknownSpace, "unknown address space `%s`", data.AddressSpace)
		return
	}
	switch space {
	case types.SpaceFunction:
		storageErr(StorageScope, "address space `function` is only allowed inside functions")
		return
	case types.SpaceHandle:
		storageErr(StorageHandle, "address space `handle` cannot be written explicitly")
		return
	}
	if data.AccessMode != "" {
		access, ok := types.ParseAccessMode(data.AccessMode)
		switch {
		case !ok:
			if !storageErr(StorageAccessMode, "unknown access mode `%s`", data.AccessMode) {
				return
			}
		case space != types.SpaceStorage:
			if !storageErr(StorageAccessMode, "access modes are only allowed in the `storage` address space") {
				return
			}
		case access == types.AccessWrite:
			if !storageErr(StorageAccessMode, "storage buffers cannot be write-only") {
				return
			}
		}
	}

	fields := fieldsOf(db)
	switch space {
	case types.SpaceUniform:
		if !in.IsConstructable(store, fields) {
			if !storageErr(StorageNotConstructable, "type `%s` in the uniform address space must be constructible", display(store)) {
				return
			}
		}
		if !in.IsHostShareable(store, fields) {
			if !storageErr(StorageNotHostShareable, "type `%s` in the uniform address space must be host-shareable", display(store)) {
				return
			}
		}
	case types.SpaceStorage, types.SpacePushConstant:
		if !in.IsHostShareable(store, fields) {
			if !storageErr(StorageNotHostShareable, "type `%s` in the %s address space must be host-shareable", display(store), space) {
				return
			}
		}
	case types.SpaceWorkgroup:
		if !in.IsWorkgroupCompatible(store, fields) {
			if !storageErr(StorageNotWorkgroupCompatible, "type `%s` cannot be shared in the workgroup address space", display(store)) {
				return
			}
		}
	case types.SpacePrivate:
		if !in.IsConstructable(store, fields) {
			if !storageErr(StorageNotConstructable, "type `%s` in the private address space must be constructible", display(store)) {
				return
			}
		}
	}

	if space == types.SpaceUniform || space == types.SpaceStorage {
		if !hasBlockAttribute(db, store) {
			sink(Diagnostic{
				Code:    diag.SemaMissingBlockAttribute,
				Message: fmt.Sprintf("%s buffer `%s` must have a struct type with the @block attribute", space, data.Name),
			})
		}
	}
}

func hasBlockAttribute(db Database, t types.Type) bool {
	key, ok := db.Interner().StructKey(t)
	if !ok {
		return false
	}
	loc, ok := key.(hir.ItemLoc)
	if !ok {
		return false
	}
	sd := db.StructData(loc)
	return sd != nil && sd.Attrs.Has("block")
}

// StructIsUsedInUniform reports whether any of globals is a uniform buffer
// whose type holds the struct st.
func StructIsUsedInUniform(db Database, st hir.ItemLoc, globals []hir.ItemLoc) bool {
	for _, g := range globals {
		gt := db.GlobalVariableType(g)
		if gt == nil || gt.Space != types.SpaceUniform {
			continue
		}
		if gt.Store == db.Interner().InternStruct(st) || containsStruct(db, gt.Store, st, make(map[hir.ItemLoc]bool)) {
			return true
		}
	}
	return false
}
