package types

import (
	"fmt"
	"strings"

	"github.com/Baleg00/tau/internal/ast"
)

// Builder is the sole constructor of Descriptors within one
// environment. It guarantees hash-consing: calling the same
// constructor with structurally identical arguments returns the same
// *Descriptor pointer, so callers elsewhere can compare types with
// `==` instead of a recursive Equal.
//
// Primitives are singletons within a Builder (allocated once, in
// NewBuilder); composite types (Fun/Struct/Union) are keyed by their
// component descriptor pointers (plus, for Struct/Union/Enum, the
// declaring ast.Node's identity, since two structurally identical
// struct declarations are still two distinct nominal types).
type Builder struct {
	primitives map[Kind]*Descriptor

	mods map[modKey]*Descriptor

	arrays map[arrayKey]*Descriptor

	vecs map[arrayKey]*Descriptor
	mats map[matKey]*Descriptor

	funs map[string]*Descriptor // keyed by a canonical signature string

	decls map[ast.Node]*Descriptor

	errorType *Descriptor
}

type modKey struct {
	kind Kind
	base *Descriptor
}

type arrayKey struct {
	base   *Descriptor
	length int64
}

type matKey struct {
	base       *Descriptor
	rows, cols int64
}

// NewBuilder returns a Builder with all primitive singletons
// pre-allocated.
func NewBuilder() *Builder {
	b := &Builder{
		primitives: make(map[Kind]*Descriptor),
		mods:       make(map[modKey]*Descriptor),
		arrays:     make(map[arrayKey]*Descriptor),
		vecs:       make(map[arrayKey]*Descriptor),
		mats:       make(map[matKey]*Descriptor),
		funs:       make(map[string]*Descriptor),
		decls:      make(map[ast.Node]*Descriptor),
	}
	for _, k := range []Kind{
		I8, I16, I32, I64, Isize, U8, U16, U32, U64, Usize,
		F32, F64, C64, C128, Char, Bool, Unit, Null, TypeType,
	} {
		b.primitives[k] = &Descriptor{Kind: k}
	}
	b.errorType = &Descriptor{Kind: Error}
	return b
}

// Primitive returns the singleton Descriptor for one of the built-in
// scalar kinds.
func (b *Builder) Primitive(kind Kind) *Descriptor {
	d, ok := b.primitives[kind]
	if !ok {
		panic(fmt.Sprintf("types: %v is not a primitive kind", kind))
	}
	return d
}

// ErrorType returns this Builder's error/poison sentinel type.
func (b *Builder) ErrorType() *Descriptor {
	return b.errorType
}

func (b *Builder) modifier(kind Kind, base *Descriptor) *Descriptor {
	key := modKey{kind: kind, base: base}
	if d, ok := b.mods[key]; ok {
		return d
	}
	d := &Descriptor{Kind: kind, Base: base}
	b.mods[key] = d
	return d
}

// Mut wraps base in a Mut modifier, or returns an error if base
// cannot take one (see CanAddMut / spec.md's modifier-stacking table).
func (b *Builder) Mut(base *Descriptor) (*Descriptor, error) {
	if !CanAddMut(base) {
		return nil, fmt.Errorf("types: cannot apply 'mut' to %s", base)
	}
	return b.modifier(Mut, base), nil
}

// Const wraps base in a Const modifier.
func (b *Builder) Const(base *Descriptor) (*Descriptor, error) {
	if !CanAddConst(base) {
		return nil, fmt.Errorf("types: cannot apply 'const' to %s", base)
	}
	return b.modifier(Const, base), nil
}

// Ptr wraps base in a Ptr modifier.
func (b *Builder) Ptr(base *Descriptor) (*Descriptor, error) {
	if !CanAddPtr(base) {
		return nil, fmt.Errorf("types: cannot apply '*' to %s", base)
	}
	return b.modifier(Ptr, base), nil
}

// Ref wraps base in a Ref modifier.
func (b *Builder) Ref(base *Descriptor) (*Descriptor, error) {
	if !CanAddRef(base) {
		return nil, fmt.Errorf("types: cannot apply '&' to %s", base)
	}
	return b.modifier(Ref, base), nil
}

// Opt wraps base in an Opt modifier.
func (b *Builder) Opt(base *Descriptor) (*Descriptor, error) {
	if !CanAddOpt(base) {
		return nil, fmt.Errorf("types: cannot apply '?' to %s", base)
	}
	return b.modifier(Opt, base), nil
}

// Array wraps base in an Array modifier of the given length.
//
// length < 0 is rejected here rather than reaching the mangler with
// an un-mangleable negative size (DESIGN.md Open Question 1): a
// hash-consing constructor should reject bad caller data instead of
// ever panicking on it.
func (b *Builder) Array(base *Descriptor, length int64) (*Descriptor, error) {
	if !CanAddArray(base) {
		return nil, fmt.Errorf("types: cannot apply array modifier to %s", base)
	}
	if length < 0 {
		return nil, fmt.Errorf("types: array length must be non-negative, got %d", length)
	}
	key := arrayKey{base: base, length: length}
	if d, ok := b.arrays[key]; ok {
		return d, nil
	}
	d := &Descriptor{Kind: Array, Base: base, Length: length}
	b.arrays[key] = d
	return d, nil
}

// Vec returns the hash-consed descriptor for a fixed-cardinality
// arithmetic vector, `vec N T`. elem must be arithmetic (spec.md §3);
// the same negative-length rejection as Array applies, since a vector
// is shaped like an array of an arithmetic element type.
func (b *Builder) Vec(elem *Descriptor, n int64) (*Descriptor, error) {
	if !IsArithmetic(elem) {
		return nil, fmt.Errorf("types: vector element type must be arithmetic, got %s", elem)
	}
	if n <= 0 {
		return nil, fmt.Errorf("types: vector cardinality must be positive, got %d", n)
	}
	key := arrayKey{base: elem, length: n}
	if d, ok := b.vecs[key]; ok {
		return d, nil
	}
	d := &Descriptor{Kind: Vec, Base: elem, Length: n}
	b.vecs[key] = d
	return d, nil
}

// Mat returns the hash-consed descriptor for a fixed-shape arithmetic
// matrix, `mat R C T`.
func (b *Builder) Mat(elem *Descriptor, rows, cols int64) (*Descriptor, error) {
	if !IsArithmetic(elem) {
		return nil, fmt.Errorf("types: matrix element type must be arithmetic, got %s", elem)
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("types: matrix dimensions must be positive, got %dx%d", rows, cols)
	}
	key := matKey{base: elem, rows: rows, cols: cols}
	if d, ok := b.mats[key]; ok {
		return d, nil
	}
	d := &Descriptor{Kind: Mat, Base: elem, Rows: rows, Cols: cols}
	b.mats[key] = d
	return d, nil
}

// Fun returns the hash-consed function-type descriptor for the given
// signature.
func (b *Builder) Fun(params []*Descriptor, ret *Descriptor, vararg bool, cc CallConv) *Descriptor {
	key := funKey(params, ret, vararg, cc)
	if d, ok := b.funs[key]; ok {
		return d
	}
	d := &Descriptor{Kind: Fun, Params: params, Return: ret, IsVararg: vararg, CallConv: cc}
	b.funs[key] = d
	return d
}

func funKey(params []*Descriptor, ret *Descriptor, vararg bool, cc CallConv) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(%p", ret)
	for _, p := range params {
		fmt.Fprintf(&sb, ",%p", p)
	}
	fmt.Fprintf(&sb, ")v%tc%d", vararg, cc)
	return sb.String()
}

// Struct returns the hash-consed struct descriptor for the given
// declaration node, creating it with no fields on first use; SetFields
// fills in the field types once they're resolved (struct bodies can
// reference the struct's own type, e.g. a self-referential pointer
// field, so the descriptor must exist before its fields are built).
func (b *Builder) Struct(node ast.Node) *Descriptor {
	return b.decl(Struct, node)
}

// Union returns the hash-consed union descriptor for the given
// declaration node.
func (b *Builder) Union(node ast.Node) *Descriptor {
	return b.decl(Union, node)
}

// Enum returns the hash-consed enum descriptor for the given
// declaration node.
func (b *Builder) Enum(node ast.Node) *Descriptor {
	return b.decl(Enum, node)
}

func (b *Builder) decl(kind Kind, node ast.Node) *Descriptor {
	if d, ok := b.decls[node]; ok {
		return d
	}
	d := &Descriptor{Kind: kind, Node: node}
	b.decls[node] = d
	return d
}

// SetFields fills in a Struct or Union descriptor's field types once
// resolved. It must be called exactly once per descriptor.
func (d *Descriptor) SetFields(fields []*Descriptor) {
	d.Fields = fields
}
