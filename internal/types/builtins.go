package types

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed builtins.txt
var builtinsText string

// Operator builtin names. Binary and unary operators resolve through the
// same overload machinery as named builtins.
const (
	OpAdd    = "op_add"
	OpSub    = "op_sub"
	OpMul    = "op_mul"
	OpDiv    = "op_div"
	OpRem    = "op_rem"
	OpShift  = "op_shift"
	OpEq     = "op_eq"
	OpCmp    = "op_cmp"
	OpBitop  = "op_bitop"
	OpAndOr  = "op_and_or"
	OpNot    = "op_not"
	OpNeg    = "op_neg"
	OpBitnot = "op_bitnot"
)

// Class constrains what a type variable may bind to.
type Class uint8

const (
	ClassAny Class = iota
	ClassScalar
	ClassNum
	ClassInt
	ClassConcreteInt
	ClassFloat
	ClassSigned
	ClassBits
)

var classNames = map[string]Class{
	"any":          ClassAny,
	"scalar":       ClassScalar,
	"num":          ClassNum,
	"int":          ClassInt,
	"concrete_int": ClassConcreteInt,
	"float":        ClassFloat,
	"signed":       ClassSigned,
	"bits":         ClassBits,
}

func (c Class) allows(s ScalarKind) bool {
	switch c {
	case ClassAny, ClassScalar:
		return true
	case ClassNum:
		return s.IsNumeric()
	case ClassInt:
		return s.IsInteger()
	case ClassConcreteInt:
		return s == ScalarI32 || s == ScalarU32 || s == ScalarAbstractInt
	case ClassFloat:
		return s.IsFloat() || s == ScalarAbstractInt
	case ClassSigned:
		return s != ScalarBool && s != ScalarU32
	case ClassBits:
		return s.IsInteger() || s == ScalarBool
	}
	return false
}

type patKind uint8

const (
	patScalar patKind = iota
	patVar
	patVector
	patMatrix
	patArray
	patAtomic
	patPtr
	patTexture
	patSampler
	patStorageOf
)

// dim is a fixed vector size or matrix dimension, or a size variable.
type dim struct {
	n uint8
	v byte
}

// Pattern is a parameter or return type of an overload. It may mention
// type, size and texel format variables.
type Pattern struct {
	kind       patKind
	scalar     ScalarKind
	v          byte
	size, rows dim
	inner      *Pattern
	texture    TextureType
	// format is a concrete texel format, a variable (fmtVar) or any ("").
	format     string
	fmtVar     byte
	anyAccess  bool
	comparison bool
	text       string
}

func (p *Pattern) String() string { return p.text }

type Param struct {
	Name    string
	Pattern *Pattern
}

// Overload is one signature of a builtin.
type Overload struct {
	Params []Param
	// Return is nil for builtins without a result.
	Return  *Pattern
	classes map[byte]Class
	text    string
}

func (o *Overload) String() string { return o.text }

// Builtin groups the overloads of one name.
type Builtin struct {
	Name      string
	Overloads []*Overload
}

// Table holds every builtin.
type Table struct {
	byName map[string]*Builtin
	names  []string
}

var builtinTable = sync.OnceValue(func() *Table {
	t, err := ParseTable(builtinsText)
	if err != nil {
		panic(fmt.Errorf("types: embedded builtin table: %w", err))
	}
	return t
})

// Builtins returns the table parsed from the embedded builtins.txt.
func Builtins() *Table { return builtinTable() }

func (t *Table) Lookup(name string) (*Builtin, bool) {
	b, ok := t.byName[name]
	return b, ok
}

// Names lists the callable builtins in sorted order; operators are left out.
func (t *Table) Names() []string { return t.names }

// ParseTable parses a builtin table in the builtins.txt format.
func ParseTable(text string) (*Table, error) {
	t := &Table{byName: make(map[string]*Builtin)}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, ov, err := parseOverload(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		b, ok := t.byName[name]
		if !ok {
			b = &Builtin{Name: name}
			t.byName[name] = b
			if !strings.HasPrefix(name, "op_") {
				t.names = append(t.names, name)
			}
		}
		b.Overloads = append(b.Overloads, ov)
	}
	sort.Strings(t.names)
	return t, nil
}

func parseOverload(line string) (string, *Overload, error) {
	name, rest, ok := strings.Cut(line, "(")
	if !ok {
		return "", nil, fmt.Errorf("missing '(' in %q", line)
	}
	params, rest, ok := strings.Cut(rest, ")")
	if !ok {
		return "", nil, fmt.Errorf("missing ')' in %q", line)
	}
	ov := &Overload{classes: make(map[byte]Class), text: line}
	ret, where, _ := strings.Cut(rest, "where")
	for _, c := range strings.Split(where, ",") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		v, cls, ok := strings.Cut(c, ":")
		v, cls = strings.TrimSpace(v), strings.TrimSpace(cls)
		class, known := classNames[cls]
		if !ok || len(v) != 1 || !known {
			return "", nil, fmt.Errorf("bad constraint %q", c)
		}
		ov.classes[v[0]] = class
	}
	for _, p := range splitTop(params) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		var pname string
		if n, ty, ok := strings.Cut(p, ":"); ok && !strings.HasPrefix(ty, ":") {
			pname, p = strings.TrimSpace(n), strings.TrimSpace(ty)
		}
		pat, err := parsePattern(p)
		if err != nil {
			return "", nil, err
		}
		ov.Params = append(ov.Params, Param{Name: pname, Pattern: pat})
	}
	ret = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(ret), "->"))
	if ret != "" {
		pat, err := parsePattern(ret)
		if err != nil {
			return "", nil, err
		}
		ov.Return = pat
	}
	return strings.TrimSpace(name), ov, nil
}

// splitTop splits on commas outside angle brackets.
func splitTop(s string) []string {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	return append(out, s[start:])
}

func isVarLetter(s string) bool { return len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z' }

func parseDim(c byte) (dim, error) {
	switch {
	case c >= '2' && c <= '4':
		return dim{n: c - '0'}, nil
	case c >= 'A' && c <= 'Z':
		return dim{v: c}, nil
	}
	return dim{}, fmt.Errorf("bad dimension %q", c)
}

var scalarNames = map[string]ScalarKind{
	"bool": ScalarBool,
	"i32":  ScalarI32,
	"u32":  ScalarU32,
	"f32":  ScalarF32,
	"f16":  ScalarF16,
}

func parsePattern(s string) (*Pattern, error) {
	p := &Pattern{text: s}
	if base, inner, ok := strings.Cut(s, "<"); ok {
		inner, ok = strings.CutSuffix(inner, ">")
		if !ok {
			return nil, fmt.Errorf("unclosed template in %q", s)
		}
		switch {
		case strings.HasPrefix(base, "vec") && len(base) == 4:
			d, err := parseDim(base[3])
			if err != nil {
				return nil, err
			}
			p.kind, p.size = patVector, d
		case strings.HasPrefix(base, "mat") && len(base) == 6 && base[4] == 'x':
			c, err := parseDim(base[3])
			if err != nil {
				return nil, err
			}
			r, err := parseDim(base[5])
			if err != nil {
				return nil, err
			}
			p.kind, p.size, p.rows = patMatrix, c, r
		case base == "array":
			p.kind = patArray
		case base == "ptr":
			p.kind = patPtr
		case base == "atomic":
			p.kind = patAtomic
		case strings.HasPrefix(base, "texture_storage_"):
			tt, ok := TextureByName(base)
			if !ok {
				return nil, fmt.Errorf("unknown texture %q", base)
			}
			format, access, ok := strings.Cut(inner, ";")
			if !ok {
				return nil, fmt.Errorf("storage texture needs format;access in %q", s)
			}
			p.kind, p.texture = patTexture, tt
			switch {
			case isVarLetter(format):
				p.fmtVar = format[0]
			case format != "_":
				p.format = format
			}
			if access == "_" {
				p.anyAccess = true
			} else if p.texture.Access, ok = ParseAccessMode(access); !ok {
				return nil, fmt.Errorf("bad access mode %q", access)
			}
			return p, nil
		case strings.HasPrefix(base, "texture_"):
			tt, ok := TextureByName(base)
			if !ok {
				return nil, fmt.Errorf("unknown texture %q", base)
			}
			p.kind, p.texture = patTexture, tt
		default:
			return nil, fmt.Errorf("unknown template %q", base)
		}
		in, err := parsePattern(inner)
		if err != nil {
			return nil, err
		}
		p.inner = in
		return p, nil
	}
	if sc, ok := scalarNames[s]; ok {
		p.kind, p.scalar = patScalar, sc
		return p, nil
	}
	switch {
	case isVarLetter(s):
		p.kind, p.v = patVar, s[0]
	case s == "sampler" || s == "sampler_comparison":
		p.kind, p.comparison = patSampler, s == "sampler_comparison"
	case strings.HasSuffix(s, "::storage") && isVarLetter(strings.TrimSuffix(s, "::storage")):
		p.kind, p.fmtVar = patStorageOf, s[0]
	case strings.HasPrefix(s, "texture_"):
		tt, ok := TextureByName(s)
		if !ok {
			return nil, fmt.Errorf("unknown texture %q", s)
		}
		p.kind, p.texture = patTexture, tt
	default:
		return nil, fmt.Errorf("unknown type %q", s)
	}
	return p, nil
}

// TexelStorageType returns the channel scalar of a texel format.
func TexelStorageType(format string) (ScalarKind, bool) {
	switch {
	case strings.HasSuffix(format, "uint"):
		return ScalarU32, true
	case strings.HasSuffix(format, "sint"):
		return ScalarI32, true
	case strings.HasSuffix(format, "float"), strings.HasSuffix(format, "unorm"), strings.HasSuffix(format, "snorm"):
		return ScalarF32, true
	}
	return ScalarF32, false
}
