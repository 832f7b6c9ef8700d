// Package types implements the type descriptor algebra: a small set
// of descriptor kinds (modifiers, built-in scalars, composite and
// declared types), hash-consed so that structurally identical types
// share one *Descriptor and can be compared by pointer equality.
//
// The kind set and predicate/promotion/convertibility contracts
// follow original_source/inc/stages/analysis/typedesc.h and
// src/stages/analyzer/typedesc.c; the Go rendering (a tagged struct
// per kind rather than C's header-macro inheritance) follows the
// style of lang/yparse/types.go.
package types

import (
	"fmt"

	"github.com/Baleg00/tau/internal/ast"
)

// Kind identifies the shape of a Descriptor.
type Kind int

const (
	Invalid Kind = iota
	Mut
	Const
	Ptr
	Array
	Ref
	Opt
	Vec // vec N T: a fixed-cardinality arithmetic vector
	Mat // mat R C T: a fixed-shape arithmetic matrix
	I8
	I16
	I32
	I64
	Isize
	U8
	U16
	U32
	U64
	Usize
	F32
	F64
	C64  // complex, two f32 lanes
	C128 // complex, two f64 lanes
	Char
	Bool
	Unit
	Null
	TypeType // "type of type", the sentinel type of a type expression
	Fun
	Struct
	Union
	Enum
	Error // poison type: implicitly convertible from/to anything, suppresses cascades
)

// Descriptor is a hash-consed, immutable type. Every Descriptor is
// constructed exclusively through a Builder, which guarantees that
// two structurally identical types are the same *Descriptor — so
// equality is pointer equality everywhere else in the compiler.
type Descriptor struct {
	Kind Kind

	// Modifier kinds (Mut, Const, Ptr, Array, Ref, Opt) wrap a Base.
	// Vec and Mat also use Base, for their element type.
	Base *Descriptor

	// Array, Vec: element count. Unused by Mat (see Rows/Cols).
	Length int64

	// Mat only: row and column counts, so that `(R×C) × (C×K) → (R×K)`
	// matrix multiplication can check shape compatibility.
	Rows, Cols int64

	// Fun only.
	Params   []*Descriptor
	Return   *Descriptor
	IsVararg bool
	CallConv CallConv

	// Struct/Union/Enum only: the declaring node gives these their
	// nominal identity (two structs with identical fields but
	// different declarations are different types).
	Node   ast.Node
	Fields []*Descriptor // Struct/Union field types, in declaration order
}

// CallConv is a function type's ABI calling convention.
type CallConv int

const (
	CallConvDefault CallConv = iota
	CallConvCDecl
	CallConvStdCall
	CallConvFastCall
)

func (d *Descriptor) String() string {
	if d == nil {
		return "<nil>"
	}
	switch d.Kind {
	case Mut:
		return "mut " + d.Base.String()
	case Const:
		return "const " + d.Base.String()
	case Ptr:
		return "*" + d.Base.String()
	case Array:
		return fmt.Sprintf("[%d]%s", d.Length, d.Base.String())
	case Ref:
		return "&" + d.Base.String()
	case Opt:
		return "?" + d.Base.String()
	case Vec:
		return fmt.Sprintf("vec%d%s", d.Length, d.Base.String())
	case Mat:
		return fmt.Sprintf("mat%dx%d%s", d.Rows, d.Cols, d.Base.String())
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case Isize:
		return "isize"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case Usize:
		return "usize"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case C64:
		return "c64"
	case C128:
		return "c128"
	case Char:
		return "char"
	case Bool:
		return "bool"
	case Unit:
		return "unit"
	case Null:
		return "null"
	case TypeType:
		return "type"
	case Fun:
		return "fun(...)"
	case Struct:
		return "struct"
	case Union:
		return "union"
	case Enum:
		return "enum"
	case Error:
		return "<error>"
	default:
		return "<invalid>"
	}
}

// IsModifier reports whether kind is one of the wrapping-modifier kinds.
func IsModifier(d *Descriptor) bool {
	switch d.Kind {
	case Mut, Const, Ptr, Array, Ref, Opt:
		return true
	default:
		return false
	}
}

// IsBuiltin reports whether d is one of the built-in scalar kinds.
func IsBuiltin(d *Descriptor) bool {
	switch d.Kind {
	case I8, I16, I32, I64, Isize, U8, U16, U32, U64, Usize, F32, F64, C64, C128, Char, Bool, Unit:
		return true
	default:
		return false
	}
}

// IsComplex reports whether d is c64 or c128.
func IsComplex(d *Descriptor) bool {
	return d.Kind == C64 || d.Kind == C128
}

// IsVector reports whether d is a vec N T type.
func IsVector(d *Descriptor) bool {
	return d.Kind == Vec
}

// IsMatrix reports whether d is a mat R C T type.
func IsMatrix(d *Descriptor) bool {
	return d.Kind == Mat
}

// IsInteger reports whether d is one of the integer kinds.
func IsInteger(d *Descriptor) bool {
	switch d.Kind {
	case I8, I16, I32, I64, Isize, U8, U16, U32, U64, Usize:
		return true
	default:
		return false
	}
}

// IsFloat reports whether d is f32 or f64.
func IsFloat(d *Descriptor) bool {
	return d.Kind == F32 || d.Kind == F64
}

// IsArithmetic reports whether d supports arithmetic operators:
// integer ∪ float ∪ complex, per spec.md §4.4's is_arithmetic
// predicate. Vector and matrix types are not themselves arithmetic —
// they participate in arithmetic operators via the broadcast/multiply
// contracts in internal/sema/typecheck, not this predicate.
func IsArithmetic(d *Descriptor) bool {
	return IsInteger(d) || IsFloat(d) || IsComplex(d)
}

// IsSigned reports whether d is a signed integer kind.
func IsSigned(d *Descriptor) bool {
	switch d.Kind {
	case I8, I16, I32, I64, Isize:
		return true
	default:
		return false
	}
}

// IsUnsigned reports whether d is an unsigned integer kind.
func IsUnsigned(d *Descriptor) bool {
	return IsInteger(d) && !IsSigned(d)
}

// IsInvokable reports whether d can appear in call position.
func IsInvokable(d *Descriptor) bool {
	return Underlying(d).Kind == Fun
}

// IsComposite reports whether d is a struct or union.
func IsComposite(d *Descriptor) bool {
	return d.Kind == Struct || d.Kind == Union
}

// IsDecl reports whether d carries a declaring node (Struct/Union/Enum).
func IsDecl(d *Descriptor) bool {
	return d.Kind == Struct || d.Kind == Union || d.Kind == Enum
}

// RemoveMut strips a single topmost Mut modifier, if present.
func RemoveMut(d *Descriptor) *Descriptor {
	if d.Kind == Mut {
		return d.Base
	}
	return d
}

// RemoveConst strips a single topmost Const modifier, if present.
func RemoveConst(d *Descriptor) *Descriptor {
	if d.Kind == Const {
		return d.Base
	}
	return d
}

// RemovePtr strips a single topmost Ptr modifier, if present.
func RemovePtr(d *Descriptor) *Descriptor {
	if d.Kind == Ptr {
		return d.Base
	}
	return d
}

// RemoveArray strips a single topmost Array modifier, if present.
func RemoveArray(d *Descriptor) *Descriptor {
	if d.Kind == Array {
		return d.Base
	}
	return d
}

// RemoveRef strips a single topmost Ref modifier, if present.
func RemoveRef(d *Descriptor) *Descriptor {
	if d.Kind == Ref {
		return d.Base
	}
	return d
}

// RemoveOpt strips a single topmost Opt modifier, if present.
func RemoveOpt(d *Descriptor) *Descriptor {
	if d.Kind == Opt {
		return d.Base
	}
	return d
}

// RemoveConstMut strips any combination of a topmost Const and Mut.
func RemoveConstMut(d *Descriptor) *Descriptor {
	return RemoveMut(RemoveConst(d))
}

// RemoveConstRef strips any combination of a topmost Const and Ref.
func RemoveConstRef(d *Descriptor) *Descriptor {
	return RemoveRef(RemoveConst(d))
}

// RemoveConstRefMut strips any combination of a topmost Const, Ref and Mut.
func RemoveConstRefMut(d *Descriptor) *Descriptor {
	return RemoveMut(RemoveRef(RemoveConst(d)))
}

// Underlying strips every modifier down to the unwrapped base type.
func Underlying(d *Descriptor) *Descriptor {
	for IsModifier(d) {
		d = d.Base
	}
	return d
}

// canAddModifier implements the 4x5 modifier-stacking table from
// spec.md §3: a modifier can be added to a type only if the type's
// current outermost kind permits that particular wrapping.
//
//	            mut   const  ptr    array  ref    opt
//	mut          no    no     yes    yes    no     yes
//	const        no    no     yes    yes    yes    yes
//	ptr          yes   yes    yes    yes    no     yes
//	array        yes   yes    yes    no     no     yes
//	ref          no    no     no     no     no     no
//	opt          no    no     yes    yes    no     no
//	(builtin/composite/fun) yes yes  yes    yes    yes   yes
func CanAddModifier(kind Kind, d *Descriptor) bool {
	switch kind {
	case Mut:
		return CanAddMut(d)
	case Const:
		return CanAddConst(d)
	case Ptr:
		return CanAddPtr(d)
	case Array:
		return CanAddArray(d)
	case Ref:
		return CanAddRef(d)
	case Opt:
		return CanAddOpt(d)
	default:
		return false
	}
}

func CanAddMut(d *Descriptor) bool {
	switch d.Kind {
	case Mut, Const, Ref:
		return false
	default:
		return true
	}
}

func CanAddConst(d *Descriptor) bool {
	switch d.Kind {
	case Mut, Const:
		return false
	default:
		return true
	}
}

func CanAddPtr(d *Descriptor) bool {
	return d.Kind != Ref
}

func CanAddArray(d *Descriptor) bool {
	switch d.Kind {
	case Array, Ref, Opt:
		return false
	default:
		return true
	}
}

func CanAddRef(d *Descriptor) bool {
	switch d.Kind {
	case Mut, Ptr, Array, Ref, Opt:
		return false
	default:
		return true
	}
}

func CanAddOpt(d *Descriptor) bool {
	switch d.Kind {
	case Ref, Opt:
		return false
	default:
		return true
	}
}

// IntegerBits returns the bit width of an integer kind; isize/usize
// are treated as 64-bit (the target pointer width this compiler
// assumes, matching the linker's 64-bit-only backends).
func IntegerBits(d *Descriptor) int {
	switch d.Kind {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32:
		return 32
	case I64, U64, Isize, Usize:
		return 64
	default:
		return 0
	}
}

// integerRank orders integer kinds for promotion, ignoring signedness.
func integerRank(d *Descriptor) int {
	switch d.Kind {
	case I8, U8:
		return 1
	case I16, U16:
		return 2
	case I32, U32:
		return 3
	case I64, U64, Isize, Usize:
		return 4
	default:
		return 0
	}
}

// IsImplicitlyConvertible implements the strict rule (DESIGN.md Open
// Question 3): widening is allowed only between integers of the same
// signedness, or between floats, or int-to-float; signedness must
// never silently flip. Const/mut modifiers only ever relax (a mut or
// unqualified value converts to const; a const value never converts
// to mut). The Error sentinel type is convertible from and to
// anything, suppressing diagnostic cascades after an earlier error.
func IsImplicitlyConvertible(from, to *Descriptor) bool {
	if from == nil || to == nil {
		return false
	}
	if from.Kind == Error || to.Kind == Error {
		return true
	}
	if from == to {
		return true
	}

	switch to.Kind {
	case Const:
		return IsImplicitlyConvertible(RemoveConstMut(from), to.Base) || IsImplicitlyConvertible(from, to.Base)
	case Ref:
		return from.Kind == Ref && IsImplicitlyConvertible(from.Base, to.Base)
	case Opt:
		if from.Kind == Null {
			return true
		}
		return IsImplicitlyConvertible(from, to.Base)
	}

	switch from.Kind {
	case Mut:
		return IsImplicitlyConvertible(from.Base, to)
	case Const:
		return to.Kind == Const && IsImplicitlyConvertible(from.Base, to.Base)
	}

	if IsInteger(from) && IsInteger(to) {
		if IsSigned(from) != IsSigned(to) {
			return false
		}
		return integerRank(from) <= integerRank(to)
	}
	if IsFloat(from) && IsFloat(to) {
		return rankFloat(from) <= rankFloat(to)
	}
	if IsInteger(from) && IsFloat(to) {
		return true
	}
	if from.Kind == Ptr && to.Kind == Ptr {
		return IsImplicitlyConvertible(from.Base, to.Base)
	}
	return false
}

func rankFloat(d *Descriptor) int {
	if d.Kind == F32 {
		return 1
	}
	return 2
}

// IsImplicitlyConvertibleRelaxed is the looser rule used only for
// adapting an untyped integer literal to a target type: it allows
// crossing signedness, since a bare literal like `1` has no fixed
// sign until context gives it one (DESIGN.md Open Question 3).
func IsImplicitlyConvertibleRelaxed(from, to *Descriptor) bool {
	if IsInteger(from) && IsInteger(to) {
		return true
	}
	return IsImplicitlyConvertible(from, to)
}

// ArithmeticPromote returns the common type two arithmetic operands
// promote to: the wider type wins; on a tie in width the left operand's
// type is kept, so signedness never decides the result.
func ArithmeticPromote(b *Builder, lhs, rhs *Descriptor) *Descriptor {
	if IsFloat(lhs) || IsFloat(rhs) {
		if rankOf(lhs) >= rankOf(rhs) && IsFloat(lhs) {
			return lhs
		}
		if IsFloat(rhs) {
			return rhs
		}
		return lhs
	}
	if integerRank(lhs) == integerRank(rhs) {
		return lhs
	}
	if integerRank(lhs) > integerRank(rhs) {
		return lhs
	}
	return rhs
}

func rankOf(d *Descriptor) int {
	if IsFloat(d) {
		return rankFloat(d) + 10
	}
	return integerRank(d)
}

// IsCallable reports whether d, after stripping modifiers, is a
// function type.
func IsCallable(d *Descriptor) bool {
	return Underlying(d).Kind == Fun
}

// UnderlyingCallable strips all modifiers and returns the function
// descriptor beneath, or nil if d is not callable.
func UnderlyingCallable(d *Descriptor) *Descriptor {
	u := Underlying(d)
	if u.Kind != Fun {
		return nil
	}
	return u
}
