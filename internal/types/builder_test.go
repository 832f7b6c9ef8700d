package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Baleg00/tau/internal/ast"
)

func TestBuilder_PrimitivesAreSingletons(t *testing.T) {
	b := NewBuilder()
	require.Same(t, b.Primitive(I32), b.Primitive(I32))
	require.NotSame(t, b.Primitive(I32), b.Primitive(I64))
}

func TestBuilder_PrimitivePanicsOnNonPrimitiveKind(t *testing.T) {
	b := NewBuilder()
	require.Panics(t, func() { b.Primitive(Struct) })
}

func TestBuilder_ModifiersAreHashConsed(t *testing.T) {
	b := NewBuilder()
	i32 := b.Primitive(I32)

	p1, err := b.Ptr(i32)
	require.NoError(t, err)
	p2, err := b.Ptr(i32)
	require.NoError(t, err)
	require.Same(t, p1, p2)

	r1, err := b.Ref(i32)
	require.NoError(t, err)
	require.NotSame(t, p1, r1)
}

func TestBuilder_RefRejectsDoubleWrap(t *testing.T) {
	b := NewBuilder()
	i32 := b.Primitive(I32)

	ref, err := b.Ref(i32)
	require.NoError(t, err)

	_, err = b.Ref(ref)
	require.Error(t, err)

	_, err = b.Mut(ref)
	require.Error(t, err)
}

func TestBuilder_ArrayRejectsNegativeLength(t *testing.T) {
	b := NewBuilder()
	i32 := b.Primitive(I32)

	_, err := b.Array(i32, -1)
	require.Error(t, err)

	arr, err := b.Array(i32, 4)
	require.NoError(t, err)
	require.Equal(t, int64(4), arr.Length)
}

func TestBuilder_ArrayHashConsedByLength(t *testing.T) {
	b := NewBuilder()
	i32 := b.Primitive(I32)

	a4, err := b.Array(i32, 4)
	require.NoError(t, err)
	a4Again, err := b.Array(i32, 4)
	require.NoError(t, err)
	a8, err := b.Array(i32, 8)
	require.NoError(t, err)

	require.Same(t, a4, a4Again)
	require.NotSame(t, a4, a8)
}

func TestBuilder_VecHashConsedByElemAndCardinality(t *testing.T) {
	b := NewBuilder()
	f32 := b.Primitive(F32)

	v3, err := b.Vec(f32, 3)
	require.NoError(t, err)
	v3Again, err := b.Vec(f32, 3)
	require.NoError(t, err)
	v4, err := b.Vec(f32, 4)
	require.NoError(t, err)

	require.Same(t, v3, v3Again)
	require.NotSame(t, v3, v4)
	require.Equal(t, "vec3f32", v3.String())
}

func TestBuilder_VecRejectsNonArithmeticElemAndBadCardinality(t *testing.T) {
	b := NewBuilder()
	f32 := b.Primitive(F32)

	_, err := b.Vec(b.Struct(&ast.StructDecl{Name: "S"}), 3)
	require.Error(t, err)

	_, err = b.Vec(f32, 0)
	require.Error(t, err)
}

func TestBuilder_MatHashConsedByElemAndShape(t *testing.T) {
	b := NewBuilder()
	f64 := b.Primitive(F64)

	m23, err := b.Mat(f64, 2, 3)
	require.NoError(t, err)
	m23Again, err := b.Mat(f64, 2, 3)
	require.NoError(t, err)
	m32, err := b.Mat(f64, 3, 2)
	require.NoError(t, err)

	require.Same(t, m23, m23Again)
	require.NotSame(t, m23, m32, "rows/cols are not interchangeable")
	require.Equal(t, "mat2x3f64", m23.String())
}

func TestBuilder_MatRejectsNonPositiveDimensions(t *testing.T) {
	b := NewBuilder()
	f64 := b.Primitive(F64)

	_, err := b.Mat(f64, 0, 2)
	require.Error(t, err)
	_, err = b.Mat(f64, 2, -1)
	require.Error(t, err)
}

func TestBuilder_FunHashConsedBySignature(t *testing.T) {
	b := NewBuilder()
	i32 := b.Primitive(I32)
	unit := b.Primitive(Unit)

	f1 := b.Fun([]*Descriptor{i32}, unit, false, CallConvDefault)
	f2 := b.Fun([]*Descriptor{i32}, unit, false, CallConvDefault)
	f3 := b.Fun([]*Descriptor{i32}, unit, true, CallConvDefault)

	require.Same(t, f1, f2)
	require.NotSame(t, f1, f3)
}

func TestBuilder_StructIsNominal(t *testing.T) {
	b := NewBuilder()

	nodeA := &ast.StructDecl{Name: "Point"}
	nodeB := &ast.StructDecl{Name: "Point"} // same shape, different declaration

	s1 := b.Struct(nodeA)
	s1Again := b.Struct(nodeA)
	s2 := b.Struct(nodeB)

	require.Same(t, s1, s1Again)
	require.NotSame(t, s1, s2, "two distinct declaring nodes must produce two distinct nominal types")
}
