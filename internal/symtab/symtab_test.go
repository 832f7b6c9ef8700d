package symtab

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Baleg00/tau/internal/ast"
)

func TestScope_InsertRefusesOverwrite(t *testing.T) {
	s := NewScope(nil)
	first := &Symbol{Name: "x", Node: &ast.VarDecl{Name: "x"}}
	second := &Symbol{Name: "x", Node: &ast.VarDecl{Name: "x"}}

	require.Same(t, first, s.Insert(first))
	require.Same(t, first, s.Insert(second), "a colliding insert must return the existing symbol, not overwrite it")

	got, ok := s.Get("x")
	require.True(t, ok)
	require.Same(t, first, got)
}

func TestScope_LookupWalksAncestors(t *testing.T) {
	root := NewScope(nil)
	child := NewScope(root)

	sym := &Symbol{Name: "x", Node: &ast.VarDecl{Name: "x"}}
	root.Insert(sym)

	got, ok := child.Lookup("x")
	require.True(t, ok)
	require.Same(t, sym, got)

	_, ok = child.Get("x")
	require.False(t, ok, "Get must not see ancestor scopes")
}

func TestScope_LookupMissReturnsFalse(t *testing.T) {
	root := NewScope(nil)
	_, ok := root.Lookup("nope")
	require.False(t, ok)
}

func TestScope_NewScopeRegistersAsChild(t *testing.T) {
	root := NewScope(nil)
	child := NewScope(root)

	require.Len(t, root.Children, 1)
	require.Same(t, child, root.Children[0])
	require.Same(t, root, child.Parent)
}

func TestScope_MergeReportsCollisions(t *testing.T) {
	dest := NewScope(nil)
	src := NewScope(nil)

	shared := &Symbol{Name: "x", Node: &ast.VarDecl{Name: "x"}}
	destSym := &Symbol{Name: "x", Node: &ast.VarDecl{Name: "x"}}
	only := &Symbol{Name: "y", Node: &ast.VarDecl{Name: "y"}}

	dest.Insert(destSym)
	src.Insert(shared)
	src.Insert(only)

	collisions := dest.Merge(src)
	require.Equal(t, []string{"x"}, collisions)

	got, ok := dest.Get("x")
	require.True(t, ok)
	require.Same(t, destSym, got, "merge must not overwrite dest's existing symbol on collision")

	got, ok = dest.Get("y")
	require.True(t, ok)
	require.Same(t, only, got)
}
