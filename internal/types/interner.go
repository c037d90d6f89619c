package types

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"fortio.org/safecast"
)

// Interner provides stable Type ids by hashing structural descriptors. It
// is shared by every snapshot of a database and is safe for concurrent use.
type Interner struct {
	mu        sync.RWMutex
	kinds     []TyKind
	index     map[TyKind]Type
	structs   []any
	structIdx map[any]uint32
	sigs      []Signature
	sigIdx    map[string]uint32
}

// NewInterner constructs an interner seeded with the scalar builtins.
func NewInterner() *Interner {
	in := &Interner{
		index:     make(map[TyKind]Type, 64),
		structIdx: make(map[any]uint32),
		sigIdx:    make(map[string]uint32),
	}
	in.kinds = append(in.kinds, TyKind{}) // reserve 0 as NoType
	in.structs = append(in.structs, nil)
	in.sigs = append(in.sigs, Signature{})
	seed := []struct {
		want Type
		kind TyKind
	}{
		{Error, TyKind{Kind: KindError}},
		{Bool, scalarKind(ScalarBool)},
		{I32, scalarKind(ScalarI32)},
		{U32, scalarKind(ScalarU32)},
		{F32, scalarKind(ScalarF32)},
		{F16, scalarKind(ScalarF16)},
		{AbstractInt, scalarKind(ScalarAbstractInt)},
		{AbstractFloat, scalarKind(ScalarAbstractFloat)},
	}
	for _, s := range seed {
		if got := in.internRaw(s.kind); got != s.want {
			panic(fmt.Sprintf("types: builtin seeded as %d, want %d", got, s.want))
		}
	}
	return in
}

func scalarKind(s ScalarKind) TyKind { return TyKind{Kind: KindScalar, Scalar: s} }

// Intern ensures the descriptor has a stable id.
func (in *Interner) Intern(k TyKind) Type {
	in.mu.RLock()
	id, ok := in.index[k]
	in.mu.RUnlock()
	if ok {
		return id
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.index[k]; ok {
		return id
	}
	return in.internRaw(k)
}

// internRaw appends the descriptor; the caller holds the write lock or is
// the constructor.
func (in *Interner) internRaw(k TyKind) Type {
	n, err := safecast.Conv[uint32](len(in.kinds))
	if err != nil {
		panic(fmt.Errorf("len(kinds) overflow: %w", err))
	}
	id := Type(n)
	in.kinds = append(in.kinds, k)
	in.index[k] = id
	return id
}

// Kind returns the descriptor of t. NoType and unknown ids describe as
// KindError.
func (in *Interner) Kind(t Type) TyKind {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if t == NoType || int(t) >= len(in.kinds) {
		return TyKind{Kind: KindError}
	}
	return in.kinds[t]
}

// Len reports how many types have been interned, NoType included.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.kinds)
}

func (in *Interner) Scalar(s ScalarKind) Type {
	return Bool + Type(s)
}

func (in *Interner) Vector(size uint8, inner Type) Type {
	return in.Intern(TyKind{Kind: KindVector, Size: size, Inner: inner})
}

func (in *Interner) Matrix(cols, rows uint8, inner Type) Type {
	return in.Intern(TyKind{Kind: KindMatrix, Size: cols, Rows: rows, Inner: inner})
}

func (in *Interner) Atomic(inner Type) Type {
	return in.Intern(TyKind{Kind: KindAtomic, Inner: inner})
}

// Array interns `array<elem, n>`, or `array<elem>` when runtime is set.
func (in *Interner) Array(elem Type, n uint32, runtime bool) Type {
	if runtime {
		n = 0
	}
	return in.Intern(TyKind{Kind: KindArray, Inner: elem, Len: n, Runtime: runtime})
}

func (in *Interner) BindingArray(elem Type, n uint32, runtime bool) Type {
	if runtime {
		n = 0
	}
	return in.Intern(TyKind{Kind: KindArray, Inner: elem, Len: n, Runtime: runtime, BindingArray: true})
}

func (in *Interner) Texture(tt TextureType) Type {
	return in.Intern(TyKind{Kind: KindTexture, Texture: tt})
}

func (in *Interner) Sampler(comparison bool) Type {
	return in.Intern(TyKind{Kind: KindSampler, Comparison: comparison})
}

func (in *Interner) Ref(inner Type, space AddressSpace, access AccessMode) Type {
	return in.Intern(TyKind{Kind: KindReference, Inner: inner, Space: space, Access: access})
}

func (in *Interner) Ptr(inner Type, space AddressSpace, access AccessMode) Type {
	return in.Intern(TyKind{Kind: KindPointer, Inner: inner, Space: space, Access: access})
}

func (in *Interner) BoundVar(v uint8) Type {
	return in.Intern(TyKind{Kind: KindBoundVar, Var: v})
}

// InternStruct returns the struct type identified by key. key must be
// comparable; the database passes the struct's item location.
func (in *Interner) InternStruct(key any) Type {
	in.mu.Lock()
	idx, ok := in.structIdx[key]
	if !ok {
		n, err := safecast.Conv[uint32](len(in.structs))
		if err != nil {
			in.mu.Unlock()
			panic(fmt.Errorf("len(structs) overflow: %w", err))
		}
		idx = n
		in.structs = append(in.structs, key)
		in.structIdx[key] = idx
	}
	in.mu.Unlock()
	return in.Intern(TyKind{Kind: KindStruct, Struct: idx})
}

// StructKey returns the key a struct type was interned with.
func (in *Interner) StructKey(t Type) (any, bool) {
	k := in.Kind(t)
	if k.Kind != KindStruct {
		return nil, false
	}
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.structs[k.Struct], true
}

// Function interns a function type.
func (in *Interner) Function(ret Type, params []Type) Type {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(ret), 10))
	for _, p := range params {
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatUint(uint64(p), 10))
	}
	key := sb.String()

	in.mu.Lock()
	idx, ok := in.sigIdx[key]
	if !ok {
		n, err := safecast.Conv[uint32](len(in.sigs))
		if err != nil {
			in.mu.Unlock()
			panic(fmt.Errorf("len(sigs) overflow: %w", err))
		}
		idx = n
		in.sigs = append(in.sigs, Signature{Return: ret, Params: append([]Type(nil), params...)})
		in.sigIdx[key] = idx
	}
	in.mu.Unlock()
	return in.Intern(TyKind{Kind: KindFunction, Sig: idx})
}

// Signature returns the signature of a function type.
func (in *Interner) Signature(t Type) (Signature, bool) {
	k := in.Kind(t)
	if k.Kind != KindFunction {
		return Signature{}, false
	}
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.sigs[k.Sig], true
}

var predeclaredScalars = map[byte]Type{'i': I32, 'u': U32, 'f': F32, 'h': F16}

// Predeclared resolves the predeclared aliases vec3f, mat4x4h and friends.
func (in *Interner) Predeclared(name string) (Type, bool) {
	switch {
	case len(name) == 5 && strings.HasPrefix(name, "vec"):
		size := name[3]
		inner, ok := predeclaredScalars[name[4]]
		if !ok || size < '2' || size > '4' {
			return NoType, false
		}
		return in.Vector(size-'0', inner), true
	case len(name) == 7 && strings.HasPrefix(name, "mat") && name[4] == 'x':
		cols, rows := name[3], name[5]
		inner := name[6]
		if inner != 'f' && inner != 'h' || cols < '2' || cols > '4' || rows < '2' || rows > '4' {
			return NoType, false
		}
		return in.Matrix(cols-'0', rows-'0', predeclaredScalars[inner]), true
	}
	return NoType, false
}
