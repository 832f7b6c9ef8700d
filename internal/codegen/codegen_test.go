package codegen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/typetable"
	"github.com/Baleg00/tau/internal/types"
)

func TestDumpBackend_EmitWritesModuleHeaderAndDecls(t *testing.T) {
	b := types.NewBuilder()
	table := typetable.New()

	fn := &ast.FunDecl{Name: "main"}
	table.Insert(fn, b.Fun(nil, b.Primitive(types.Unit), false, types.CallConvDefault))

	global := &ast.VarDecl{Name: "counter"}
	table.Insert(global, b.Primitive(types.I32))

	file := &ast.File{Path: "main.tau", Decls: []ast.Decl{fn, global}}

	var buf bytes.Buffer
	backend := NewDumpBackend(&buf)
	require.NoError(t, backend.Emit(file, table))

	out := buf.String()
	require.Contains(t, out, "; module main.tau")
	require.Contains(t, out, "define main : fun(...)")
	require.Contains(t, out, "global counter : i32")
}

func TestDumpBackend_EmitRecursesIntoModules(t *testing.T) {
	table := typetable.New()

	inner := &ast.StructDecl{Name: "Point"}
	mod := &ast.ModDecl{Name: "geometry", Decls: []ast.Decl{inner}}
	file := &ast.File{Path: "geo.tau", Decls: []ast.Decl{mod}}

	var buf bytes.Buffer
	backend := NewDumpBackend(&buf)
	require.NoError(t, backend.Emit(file, table))

	out := buf.String()
	require.Contains(t, out, "mod geometry {")
	require.Contains(t, out, "type Point = struct")
}
