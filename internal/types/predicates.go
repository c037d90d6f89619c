package types

// FieldTypes returns the member types of the struct interned with key.
type FieldTypes func(key any) []Type

func (in *Interner) IsError(t Type) bool { return t == Error || t == NoType }

func (in *Interner) IsScalar(t Type) bool { return in.Kind(t).Kind == KindScalar }

// Unref strips one reference.
func (in *Interner) Unref(t Type) Type {
	if k := in.Kind(t); k.Kind == KindReference {
		return k.Inner
	}
	return t
}

// ThisOrVecInner returns the component type of a vector, or t itself.
func (in *Interner) ThisOrVecInner(t Type) Type {
	if k := in.Kind(t); k.Kind == KindVector {
		return k.Inner
	}
	return t
}

// Concretize replaces abstract scalars with their default concrete types:
// AbstractInt becomes i32 and AbstractFloat becomes f32.
func (in *Interner) Concretize(t Type) Type {
	k := in.Kind(t)
	switch k.Kind {
	case KindScalar:
		switch k.Scalar {
		case ScalarAbstractInt:
			return I32
		case ScalarAbstractFloat:
			return F32
		}
	case KindVector, KindMatrix, KindArray:
		inner := in.Concretize(k.Inner)
		if inner != k.Inner {
			k.Inner = inner
			return in.Intern(k)
		}
	}
	return t
}

// IsAbstract reports whether t mentions an abstract scalar.
func (in *Interner) IsAbstract(t Type) bool {
	k := in.Kind(t)
	switch k.Kind {
	case KindScalar:
		return k.Scalar.IsAbstract()
	case KindVector, KindMatrix, KindArray:
		return in.IsAbstract(k.Inner)
	}
	return false
}

// IsPlain reports scalars, atomics, vectors, matrices, arrays and structs.
func (in *Interner) IsPlain(t Type) bool {
	switch in.Kind(t).Kind {
	case KindScalar, KindAtomic, KindVector, KindMatrix, KindStruct:
		return true
	case KindArray:
		return !in.Kind(t).BindingArray
	}
	return false
}

// IsConstructable reports types whose values can be built with a
// constructor: no atomics, no runtime-sized arrays.
func (in *Interner) IsConstructable(t Type, fields FieldTypes) bool {
	return in.walkStruct(t, fields, map[Type]bool{}, func(k TyKind) (bool, bool) {
		switch k.Kind {
		case KindScalar, KindVector, KindMatrix:
			return true, false
		case KindArray:
			if k.Runtime || k.BindingArray {
				return false, false
			}
			return true, true
		case KindStruct:
			return true, true
		}
		return false, false
	})
}

// IsStorable reports plain types, textures and samplers.
func (in *Interner) IsStorable(t Type) bool {
	switch in.Kind(t).Kind {
	case KindTexture, KindSampler:
		return true
	}
	return in.IsPlain(t)
}

// IsHostShareable reports types with a defined memory layout: concrete
// numeric scalars and vectors, matrices, atomics, and arrays and structs
// thereof.
func (in *Interner) IsHostShareable(t Type, fields FieldTypes) bool {
	return in.walkStruct(t, fields, map[Type]bool{}, func(k TyKind) (bool, bool) {
		switch k.Kind {
		case KindScalar:
			return k.Scalar != ScalarBool && !k.Scalar.IsAbstract(), false
		case KindVector, KindMatrix, KindAtomic:
			return true, true
		case KindArray:
			return !k.BindingArray, true
		case KindStruct:
			return true, true
		}
		return false, false
	})
}

// IsWorkgroupCompatible reports types allowed in the workgroup address
// space: plain types that are not runtime-sized.
func (in *Interner) IsWorkgroupCompatible(t Type, fields FieldTypes) bool {
	return in.walkStruct(t, fields, map[Type]bool{}, func(k TyKind) (bool, bool) {
		switch k.Kind {
		case KindScalar, KindVector, KindMatrix, KindAtomic:
			return true, false
		case KindArray:
			return !k.Runtime && !k.BindingArray, true
		case KindStruct:
			return true, true
		}
		return false, false
	})
}

// walkStruct applies check to t and, where check asks for it, to t's
// element or member types. Cyclic structs are treated as satisfying the
// predicate; the cycle is reported elsewhere.
func (in *Interner) walkStruct(t Type, fields FieldTypes, seen map[Type]bool, check func(TyKind) (ok, descend bool)) bool {
	if seen[t] {
		return true
	}
	k := in.Kind(t)
	ok, descend := check(k)
	if !ok || !descend {
		return ok
	}
	switch k.Kind {
	case KindStruct:
		seen[t] = true
		if fields == nil {
			return true
		}
		key, _ := in.StructKey(t)
		for _, f := range fields(key) {
			if !in.walkStruct(f, fields, seen, check) {
				return false
			}
		}
		return true
	default:
		return in.walkStruct(k.Inner, fields, seen, check)
	}
}

// Join finds the common type of a and b under abstract conversion: the
// more concrete of the two when one converts to the other.
func (in *Interner) Join(a, b Type) (Type, bool) {
	if a == b {
		return a, true
	}
	ka, kb := in.Kind(a), in.Kind(b)
	if ka.Kind != kb.Kind {
		return NoType, false
	}
	switch ka.Kind {
	case KindScalar:
		switch {
		case CanConvert(ka.Scalar, kb.Scalar):
			return b, true
		case CanConvert(kb.Scalar, ka.Scalar):
			return a, true
		case ka.Scalar == ScalarAbstractInt && kb.Scalar == ScalarAbstractFloat,
			ka.Scalar == ScalarAbstractFloat && kb.Scalar == ScalarAbstractInt:
			return AbstractFloat, true
		}
	case KindVector, KindMatrix, KindArray:
		if ka.Size != kb.Size || ka.Rows != kb.Rows || ka.Len != kb.Len || ka.Runtime != kb.Runtime {
			return NoType, false
		}
		inner, ok := in.Join(ka.Inner, kb.Inner)
		if !ok {
			return NoType, false
		}
		ka.Inner = inner
		return in.Intern(ka), true
	}
	return NoType, false
}

// ConvertsTo reports whether a value of type from may be used where to is
// expected.
func (in *Interner) ConvertsTo(from, to Type) bool {
	if from == to {
		return true
	}
	j, ok := in.Join(from, to)
	return ok && j == to
}
