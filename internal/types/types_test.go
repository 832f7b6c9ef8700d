package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsImplicitlyConvertible_WideningSameSignedness(t *testing.T) {
	b := NewBuilder()
	require.True(t, IsImplicitlyConvertible(b.Primitive(I8), b.Primitive(I32)))
	require.True(t, IsImplicitlyConvertible(b.Primitive(U8), b.Primitive(U32)))
	require.False(t, IsImplicitlyConvertible(b.Primitive(I32), b.Primitive(I8)), "narrowing must not be implicit")
}

func TestIsImplicitlyConvertible_RejectsSignednessFlip(t *testing.T) {
	b := NewBuilder()
	require.False(t, IsImplicitlyConvertible(b.Primitive(I32), b.Primitive(U32)))
	require.False(t, IsImplicitlyConvertible(b.Primitive(U8), b.Primitive(I32)))
}

func TestIsImplicitlyConvertible_IntToFloat(t *testing.T) {
	b := NewBuilder()
	require.True(t, IsImplicitlyConvertible(b.Primitive(I32), b.Primitive(F64)))
	require.False(t, IsImplicitlyConvertible(b.Primitive(F64), b.Primitive(I32)), "float to int is never implicit")
}

func TestIsImplicitlyConvertible_ErrorTypeSuppressesChecks(t *testing.T) {
	b := NewBuilder()
	require.True(t, IsImplicitlyConvertible(b.ErrorType(), b.Primitive(Bool)))
	require.True(t, IsImplicitlyConvertible(b.Primitive(Bool), b.ErrorType()))
}

func TestIsImplicitlyConvertible_ConstOnlyRelaxes(t *testing.T) {
	b := NewBuilder()
	i32 := b.Primitive(I32)
	constI32, err := b.Const(i32)
	require.NoError(t, err)

	require.True(t, IsImplicitlyConvertible(i32, constI32), "unqualified value converts to const")
	require.False(t, IsImplicitlyConvertible(constI32, i32), "const value never converts back to unqualified")
}

func TestIsImplicitlyConvertible_OptAcceptsNull(t *testing.T) {
	b := NewBuilder()
	i32 := b.Primitive(I32)
	opt, err := b.Opt(i32)
	require.NoError(t, err)

	require.True(t, IsImplicitlyConvertible(b.Primitive(Null), opt))
	require.True(t, IsImplicitlyConvertible(i32, opt))
}

func TestIsImplicitlyConvertibleRelaxed_AllowsSignednessFlipForIntegers(t *testing.T) {
	b := NewBuilder()
	require.True(t, IsImplicitlyConvertibleRelaxed(b.Primitive(I32), b.Primitive(U8)))
	require.False(t, IsImplicitlyConvertible(b.Primitive(I32), b.Primitive(U8)), "the strict rule must still reject it")
}

func TestArithmeticPromote_WiderIntegerWins(t *testing.T) {
	b := NewBuilder()
	got := ArithmeticPromote(b, b.Primitive(I8), b.Primitive(I32))
	require.Same(t, b.Primitive(I32), got)
}

func TestArithmeticPromote_SameRankKeepsLeftOperand(t *testing.T) {
	b := NewBuilder()
	got := ArithmeticPromote(b, b.Primitive(I32), b.Primitive(U32))
	require.Same(t, b.Primitive(I32), got)
}

func TestArithmeticPromote_FloatBeatsInteger(t *testing.T) {
	b := NewBuilder()
	got := ArithmeticPromote(b, b.Primitive(I64), b.Primitive(F32))
	require.Same(t, b.Primitive(F32), got)
}

func TestUnderlying_StripsAllModifiers(t *testing.T) {
	b := NewBuilder()
	i32 := b.Primitive(I32)
	constI32, err := b.Const(i32)
	require.NoError(t, err)
	ptrConst, err := b.Ptr(constI32)
	require.NoError(t, err)
	mutPtrConst, err := b.Mut(ptrConst)
	require.NoError(t, err)

	require.Same(t, i32, Underlying(mutPtrConst))
}

func TestCanAddModifier_RefRejectsStacking(t *testing.T) {
	b := NewBuilder()
	ref, err := b.Ref(b.Primitive(I32))
	require.NoError(t, err)

	require.False(t, CanAddRef(ref))
	require.False(t, CanAddMut(ref))
	require.False(t, CanAddPtr(ref), "the modifier-stacking table forbids ptr-over-ref")
}

func TestUnderlyingCallable(t *testing.T) {
	b := NewBuilder()
	fn := b.Fun([]*Descriptor{b.Primitive(I32)}, b.Primitive(Bool), false, CallConvDefault)
	ptrToFn, err := b.Ptr(fn)
	require.NoError(t, err)

	require.Same(t, fn, UnderlyingCallable(ptrToFn))
	require.Nil(t, UnderlyingCallable(b.Primitive(I32)))
}

func TestIsComplex_OnlyC64AndC128(t *testing.T) {
	b := NewBuilder()
	require.True(t, IsComplex(b.Primitive(C64)))
	require.True(t, IsComplex(b.Primitive(C128)))
	require.False(t, IsComplex(b.Primitive(F64)))
}

func TestIsVectorIsMatrix(t *testing.T) {
	b := NewBuilder()
	vec, err := b.Vec(b.Primitive(F32), 3)
	require.NoError(t, err)
	mat, err := b.Mat(b.Primitive(F32), 2, 2)
	require.NoError(t, err)

	require.True(t, IsVector(vec))
	require.False(t, IsMatrix(vec))
	require.True(t, IsMatrix(mat))
	require.False(t, IsVector(mat))
	require.False(t, IsVector(b.Primitive(F32)))
}

func TestIsArithmetic_IncludesComplexButNotVectorOrMatrix(t *testing.T) {
	b := NewBuilder()
	vec, err := b.Vec(b.Primitive(I32), 3)
	require.NoError(t, err)

	require.True(t, IsArithmetic(b.Primitive(I32)))
	require.True(t, IsArithmetic(b.Primitive(F64)))
	require.True(t, IsArithmetic(b.Primitive(C128)), "complex is part of is_arithmetic per spec.md §4.4")
	require.False(t, IsArithmetic(vec), "vector reaches arithmetic operators via checkVectorOrMatrix, not IsArithmetic")
}
