// Package types models WGSL types. A Type is an id handed out by an
// Interner; two types are equal exactly when their ids are equal.
package types

// Type is an interned type id.
type Type uint32

// NoType marks "no value", e.g. the result of a call to a function without
// a return type.
const NoType Type = 0

// The interner seeds these in a fixed order, so their ids are constants.
const (
	Error Type = iota + 1
	Bool
	I32
	U32
	F32
	F16
	AbstractInt
	AbstractFloat
)

// Kind discriminates TyKind.
type Kind uint8

const (
	KindError Kind = iota
	KindScalar
	KindAtomic
	KindVector
	KindMatrix
	KindStruct
	KindArray
	KindTexture
	KindSampler
	KindReference
	KindPointer
	KindFunction
	KindBoundVar
)

type ScalarKind uint8

const (
	ScalarBool ScalarKind = iota
	ScalarI32
	ScalarU32
	ScalarF32
	ScalarF16
	ScalarAbstractInt
	ScalarAbstractFloat
)

func (s ScalarKind) String() string {
	switch s {
	case ScalarBool:
		return "bool"
	case ScalarI32:
		return "i32"
	case ScalarU32:
		return "u32"
	case ScalarF32:
		return "f32"
	case ScalarF16:
		return "f16"
	case ScalarAbstractInt:
		return "AbstractInt"
	case ScalarAbstractFloat:
		return "AbstractFloat"
	}
	return "?"
}

func (s ScalarKind) IsAbstract() bool { return s == ScalarAbstractInt || s == ScalarAbstractFloat }

func (s ScalarKind) IsFloat() bool {
	return s == ScalarF32 || s == ScalarF16 || s == ScalarAbstractFloat
}

func (s ScalarKind) IsInteger() bool {
	return s == ScalarI32 || s == ScalarU32 || s == ScalarAbstractInt
}

func (s ScalarKind) IsNumeric() bool { return s != ScalarBool }

// CanConvert reports whether a value of scalar type from is implicitly
// convertible to to. Only abstract scalars convert.
func CanConvert(from, to ScalarKind) bool {
	if from == to {
		return true
	}
	switch from {
	case ScalarAbstractInt:
		return to != ScalarBool
	case ScalarAbstractFloat:
		return to == ScalarF32 || to == ScalarF16
	}
	return false
}

type AddressSpace uint8

const (
	SpaceNone AddressSpace = iota
	SpaceFunction
	SpacePrivate
	SpaceWorkgroup
	SpaceUniform
	SpaceStorage
	SpacePushConstant
	SpaceHandle
)

var spaceNames = [...]string{"", "function", "private", "workgroup", "uniform", "storage", "push_constant", "handle"}

func (s AddressSpace) String() string { return spaceNames[s] }

func ParseAddressSpace(s string) (AddressSpace, bool) {
	for i, n := range spaceNames {
		if i > 0 && n == s {
			return AddressSpace(i), true
		}
	}
	return SpaceNone, false
}

// DefaultAccess is the access mode a reference in space gets when none is
// written.
func (s AddressSpace) DefaultAccess() AccessMode {
	switch s {
	case SpaceFunction, SpacePrivate, SpaceWorkgroup:
		return AccessReadWrite
	case SpaceUniform, SpaceStorage, SpacePushConstant, SpaceHandle:
		return AccessRead
	}
	return AccessNone
}

type AccessMode uint8

const (
	AccessNone AccessMode = iota
	AccessRead
	AccessWrite
	AccessReadWrite
)

var accessNames = [...]string{"", "read", "write", "read_write"}

func (a AccessMode) String() string { return accessNames[a] }

func ParseAccessMode(s string) (AccessMode, bool) {
	for i, n := range accessNames {
		if i > 0 && n == s {
			return AccessMode(i), true
		}
	}
	return AccessNone, false
}

func (a AccessMode) CanRead() bool  { return a == AccessRead || a == AccessReadWrite }
func (a AccessMode) CanWrite() bool { return a == AccessWrite || a == AccessReadWrite }

type TextureDim uint8

const (
	Dim1D TextureDim = iota
	Dim2D
	Dim3D
	DimCube
)

type TextureKind uint8

const (
	TextureSampled TextureKind = iota
	TextureDepth
	TextureStorage
	TextureExternal
)

// TextureType describes every texture_* type.
type TextureType struct {
	Dim          TextureDim
	Arrayed      bool
	Multisampled bool
	Kind         TextureKind
	// Sampled is the channel type of a sampled texture.
	Sampled Type
	// Format and Access are set for storage textures.
	Format string
	Access AccessMode
}

// TyKind is the structural description of a type. Which fields are
// meaningful depends on Kind; the rest stay zero so that equal types have
// equal TyKinds.
type TyKind struct {
	Kind   Kind
	Scalar ScalarKind
	// Inner is the element of an atomic, vector, matrix or array, and the
	// store type of a reference or pointer.
	Inner Type
	// Size is the vector size or the matrix column count.
	Size uint8
	Rows uint8
	// Struct is the struct identity handed out by InternStruct.
	Struct uint32
	// Len is the fixed array length; Runtime marks `array<T>`.
	Len          uint32
	Runtime      bool
	BindingArray bool
	Texture      TextureType
	Comparison   bool
	Space        AddressSpace
	Access       AccessMode
	// Sig indexes the interner's function signatures.
	Sig uint32
	Var uint8
}

// Signature is the type of a function.
type Signature struct {
	Return Type
	Params []Type
}
