package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVectorName(t *testing.T) {
	n, elem, ok := ParseVectorName("vec3f32")
	require.True(t, ok)
	require.Equal(t, int64(3), n)
	require.Equal(t, "f32", elem)

	_, _, ok = ParseVectorName("mat3x3f64")
	require.False(t, ok, "a matrix name is not a vector name")

	_, _, ok = ParseVectorName("vector")
	require.False(t, ok, "no cardinality digits, not a shape match")
}

func TestParseMatrixName(t *testing.T) {
	rows, cols, elem, ok := ParseMatrixName("mat3x3f64")
	require.True(t, ok)
	require.Equal(t, int64(3), rows)
	require.Equal(t, int64(3), cols)
	require.Equal(t, "f64", elem)

	rows, cols, elem, ok = ParseMatrixName("mat2x4i32")
	require.True(t, ok)
	require.Equal(t, int64(2), rows)
	require.Equal(t, int64(4), cols)
	require.Equal(t, "i32", elem)

	_, _, _, ok = ParseMatrixName("vec3f32")
	require.False(t, ok, "a vector name is not a matrix name")
}
