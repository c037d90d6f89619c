package types

import (
	"strconv"
	"strings"
)

// Namer names struct types by their interning key.
type Namer func(key any) string

func textureBase(tt TextureType) string {
	var sb strings.Builder
	sb.WriteString("texture_")
	switch tt.Kind {
	case TextureExternal:
		return "texture_external"
	case TextureDepth:
		sb.WriteString("depth_")
	case TextureStorage:
		sb.WriteString("storage_")
	}
	if tt.Multisampled {
		sb.WriteString("multisampled_")
	}
	switch tt.Dim {
	case Dim1D:
		sb.WriteString("1d")
	case Dim2D:
		sb.WriteString("2d")
	case Dim3D:
		sb.WriteString("3d")
	case DimCube:
		sb.WriteString("cube")
	}
	if tt.Arrayed {
		sb.WriteString("_array")
	}
	return sb.String()
}

// TextureByName parses the name of a texture type without its template
// arguments.
func TextureByName(name string) (TextureType, bool) {
	if name == "texture_external" {
		return TextureType{Dim: Dim2D, Kind: TextureExternal}, true
	}
	rest, ok := strings.CutPrefix(name, "texture_")
	if !ok {
		return TextureType{}, false
	}
	var tt TextureType
	if r, ok := strings.CutPrefix(rest, "depth_"); ok {
		tt.Kind, rest = TextureDepth, r
	} else if r, ok := strings.CutPrefix(rest, "storage_"); ok {
		tt.Kind, rest = TextureStorage, r
	}
	if r, ok := strings.CutPrefix(rest, "multisampled_"); ok {
		tt.Multisampled, rest = true, r
	}
	if r, ok := strings.CutSuffix(rest, "_array"); ok {
		tt.Arrayed, rest = true, r
	}
	switch rest {
	case "1d":
		tt.Dim = Dim1D
	case "2d":
		tt.Dim = Dim2D
	case "3d":
		tt.Dim = Dim3D
	case "cube":
		tt.Dim = DimCube
	default:
		return TextureType{}, false
	}
	if textureBase(tt) != name {
		return TextureType{}, false
	}
	return tt, true
}

// Display renders t in WGSL syntax. namer may be nil, in which case
// structs render as `struct#N`.
func (in *Interner) Display(t Type, namer Namer) string {
	var sb strings.Builder
	in.display(&sb, t, namer)
	return sb.String()
}

func (in *Interner) display(sb *strings.Builder, t Type, namer Namer) {
	k := in.Kind(t)
	switch k.Kind {
	case KindError:
		sb.WriteString("[error]")
	case KindScalar:
		sb.WriteString(k.Scalar.String())
	case KindAtomic:
		sb.WriteString("atomic<")
		in.display(sb, k.Inner, namer)
		sb.WriteByte('>')
	case KindVector:
		sb.WriteString("vec")
		sb.WriteByte('0' + k.Size)
		sb.WriteByte('<')
		in.display(sb, k.Inner, namer)
		sb.WriteByte('>')
	case KindMatrix:
		sb.WriteString("mat")
		sb.WriteByte('0' + k.Size)
		sb.WriteByte('x')
		sb.WriteByte('0' + k.Rows)
		sb.WriteByte('<')
		in.display(sb, k.Inner, namer)
		sb.WriteByte('>')
	case KindStruct:
		key, _ := in.StructKey(t)
		if namer != nil {
			sb.WriteString(namer(key))
		} else {
			sb.WriteString("struct#")
			sb.WriteString(strconv.FormatUint(uint64(k.Struct), 10))
		}
	case KindArray:
		if k.BindingArray {
			sb.WriteString("binding_array<")
		} else {
			sb.WriteString("array<")
		}
		in.display(sb, k.Inner, namer)
		if !k.Runtime {
			sb.WriteString(", ")
			sb.WriteString(strconv.FormatUint(uint64(k.Len), 10))
		}
		sb.WriteByte('>')
	case KindTexture:
		sb.WriteString(textureBase(k.Texture))
		switch k.Texture.Kind {
		case TextureSampled:
			sb.WriteByte('<')
			in.display(sb, k.Texture.Sampled, namer)
			sb.WriteByte('>')
		case TextureStorage:
			sb.WriteByte('<')
			sb.WriteString(k.Texture.Format)
			sb.WriteString(", ")
			sb.WriteString(k.Texture.Access.String())
			sb.WriteByte('>')
		}
	case KindSampler:
		if k.Comparison {
			sb.WriteString("sampler_comparison")
		} else {
			sb.WriteString("sampler")
		}
	case KindReference, KindPointer:
		if k.Kind == KindReference {
			sb.WriteString("ref<")
		} else {
			sb.WriteString("ptr<")
		}
		sb.WriteString(k.Space.String())
		sb.WriteString(", ")
		in.display(sb, k.Inner, namer)
		if k.Access != AccessNone {
			sb.WriteString(", ")
			sb.WriteString(k.Access.String())
		}
		sb.WriteByte('>')
	case KindFunction:
		sig, _ := in.Signature(t)
		sb.WriteString("fn(")
		for i, p := range sig.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			in.display(sb, p, namer)
		}
		sb.WriteByte(')')
		if sig.Return != NoType {
			sb.WriteString(" -> ")
			in.display(sb, sig.Return, namer)
		}
	case KindBoundVar:
		sb.WriteByte('T')
		sb.WriteString(strconv.Itoa(int(k.Var)))
	}
}
