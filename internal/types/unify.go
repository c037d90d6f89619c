package types

// Bindings records what the variables of one overload are bound to.
type Bindings struct {
	types   map[byte]Type
	sizes   map[byte]uint8
	formats map[byte]string
}

func NewBindings() *Bindings {
	return &Bindings{
		types:   make(map[byte]Type),
		sizes:   make(map[byte]uint8),
		formats: make(map[byte]string),
	}
}

// Type returns the binding of a type variable.
func (b *Bindings) Type(v byte) (Type, bool) {
	t, ok := b.types[v]
	return t, ok
}

// Resolution is a successful overload match.
type Resolution struct {
	Overload *Overload
	// Params are the instantiated parameter types, Return the result type
	// (NoType when the builtin has none).
	Params []Type
	Return Type
}

// Resolve picks the first overload of b that accepts args.
func (b *Builtin) Resolve(in *Interner, args []Type) (Resolution, bool) {
	for _, ov := range b.Overloads {
		if res, ok := ov.Unify(in, args); ok {
			return res, true
		}
	}
	return Resolution{}, false
}

// Unify matches args against the overload's parameters, binding its
// variables, and instantiates the parameter and return types.
func (ov *Overload) Unify(in *Interner, args []Type) (Resolution, bool) {
	if len(args) != len(ov.Params) {
		return Resolution{}, false
	}
	b := NewBindings()
	for i, a := range args {
		if !ov.unify(in, ov.Params[i].Pattern, a, b) {
			return Resolution{}, false
		}
	}
	for v, t := range b.types {
		cls := ov.classes[v]
		k := in.Kind(t)
		if cls != ClassAny && k.Kind != KindScalar {
			return Resolution{}, false
		}
		if k.Kind == KindScalar && !cls.allows(k.Scalar) {
			return Resolution{}, false
		}
		if cls == ClassFloat && t == AbstractInt {
			b.types[v] = AbstractFloat
		}
	}
	res := Resolution{Overload: ov, Params: make([]Type, len(args)), Return: NoType}
	for i, p := range ov.Params {
		res.Params[i] = Instantiate(in, p.Pattern, b)
	}
	if ov.Return != nil {
		res.Return = Instantiate(in, ov.Return, b)
	}
	return res, true
}

func (ov *Overload) unify(in *Interner, p *Pattern, found Type, b *Bindings) bool {
	k := in.Kind(found)
	switch p.kind {
	case patScalar:
		return k.Kind == KindScalar && CanConvert(k.Scalar, p.scalar)
	case patVar:
		if cls := ov.classes[p.v]; cls != ClassAny {
			if k.Kind != KindScalar || !cls.allows(k.Scalar) {
				return false
			}
		}
		prev, ok := b.types[p.v]
		if !ok {
			b.types[p.v] = found
			return true
		}
		j, ok := in.Join(prev, found)
		if !ok {
			return false
		}
		b.types[p.v] = j
		return true
	case patVector:
		return k.Kind == KindVector && bindDim(p.size, k.Size, b) && ov.unify(in, p.inner, k.Inner, b)
	case patMatrix:
		return k.Kind == KindMatrix && bindDim(p.size, k.Size, b) && bindDim(p.rows, k.Rows, b) &&
			ov.unify(in, p.inner, k.Inner, b)
	case patArray:
		return k.Kind == KindArray && !k.BindingArray && ov.unify(in, p.inner, k.Inner, b)
	case patAtomic:
		return k.Kind == KindAtomic && ov.unify(in, p.inner, k.Inner, b)
	case patPtr:
		return k.Kind == KindPointer && ov.unify(in, p.inner, k.Inner, b)
	case patSampler:
		return k.Kind == KindSampler && k.Comparison == p.comparison
	case patTexture:
		if k.Kind != KindTexture {
			return false
		}
		ft, pt := k.Texture, p.texture
		if ft.Dim != pt.Dim || ft.Arrayed != pt.Arrayed || ft.Multisampled != pt.Multisampled || ft.Kind != pt.Kind {
			return false
		}
		switch pt.Kind {
		case TextureSampled:
			return ov.unify(in, p.inner, ft.Sampled, b)
		case TextureStorage:
			if !p.anyAccess && ft.Access != pt.Access {
				return false
			}
			switch {
			case p.fmtVar != 0:
				if prev, ok := b.formats[p.fmtVar]; ok {
					return prev == ft.Format
				}
				b.formats[p.fmtVar] = ft.Format
			case p.format != "":
				return p.format == ft.Format
			}
		}
		return true
	case patStorageOf:
		if _, ok := b.formats[p.fmtVar]; !ok {
			return false
		}
		return in.ConvertsTo(found, Instantiate(in, p, b))
	}
	return false
}

func bindDim(d dim, n uint8, b *Bindings) bool {
	if d.v == 0 {
		return d.n == n
	}
	if prev, ok := b.sizes[d.v]; ok {
		return prev == n
	}
	b.sizes[d.v] = n
	return true
}

func (b *Bindings) dim(d dim) uint8 {
	if d.v == 0 {
		return d.n
	}
	return b.sizes[d.v]
}

// Instantiate builds the type a pattern denotes under b. An unbound type
// variable instantiates to a BoundVar.
func Instantiate(in *Interner, p *Pattern, b *Bindings) Type {
	switch p.kind {
	case patScalar:
		return in.Scalar(p.scalar)
	case patVar:
		if t, ok := b.types[p.v]; ok {
			return t
		}
		return in.BoundVar(p.v)
	case patVector:
		return in.Vector(b.dim(p.size), Instantiate(in, p.inner, b))
	case patMatrix:
		return in.Matrix(b.dim(p.size), b.dim(p.rows), Instantiate(in, p.inner, b))
	case patArray:
		return in.Array(Instantiate(in, p.inner, b), 0, true)
	case patAtomic:
		return in.Atomic(Instantiate(in, p.inner, b))
	case patPtr:
		return in.Ptr(Instantiate(in, p.inner, b), SpaceNone, AccessNone)
	case patSampler:
		return in.Sampler(p.comparison)
	case patTexture:
		tt := p.texture
		switch tt.Kind {
		case TextureSampled:
			tt.Sampled = Instantiate(in, p.inner, b)
		case TextureStorage:
			tt.Format = p.format
			if p.fmtVar != 0 {
				tt.Format = b.formats[p.fmtVar]
			}
		}
		return in.Texture(tt)
	case patStorageOf:
		sc, _ := TexelStorageType(b.formats[p.fmtVar])
		return in.Vector(4, in.Scalar(sc))
	}
	return Error
}
