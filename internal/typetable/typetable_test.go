package typetable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/types"
)

func TestTable_InsertAndLookup(t *testing.T) {
	tab := New()
	b := types.NewBuilder()
	node := &ast.VarDecl{Name: "x"}

	_, ok := tab.Lookup(node)
	require.False(t, ok)

	prev := tab.Insert(node, b.Primitive(types.I32))
	require.Nil(t, prev)

	desc, ok := tab.Lookup(node)
	require.True(t, ok)
	require.Same(t, b.Primitive(types.I32), desc)
}

func TestTable_InsertUpsertsAndReturnsPrevious(t *testing.T) {
	tab := New()
	b := types.NewBuilder()
	node := &ast.VarDecl{Name: "x"}

	tab.Insert(node, b.Primitive(types.I32))
	prev := tab.Insert(node, b.Primitive(types.F64))
	require.Same(t, b.Primitive(types.I32), prev)

	desc, ok := tab.Lookup(node)
	require.True(t, ok)
	require.Same(t, b.Primitive(types.F64), desc)
}

func TestTable_MergeCopiesEntries(t *testing.T) {
	dest := New()
	src := New()
	b := types.NewBuilder()

	nodeA := &ast.VarDecl{Name: "a"}
	nodeB := &ast.VarDecl{Name: "b"}

	dest.Insert(nodeA, b.Primitive(types.I32))
	src.Insert(nodeB, b.Primitive(types.Bool))

	dest.Merge(src)

	descA, ok := dest.Lookup(nodeA)
	require.True(t, ok)
	require.Same(t, b.Primitive(types.I32), descA)

	descB, ok := dest.Lookup(nodeB)
	require.True(t, ok)
	require.Same(t, b.Primitive(types.Bool), descB)
}
