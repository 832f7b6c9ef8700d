package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/diag"
	"github.com/Baleg00/tau/internal/source"
)

func parse(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	reg := source.NewRegistry()
	f := reg.LoadString("test.tau", src)
	bag := diag.NewBag(diag.DefaultCapacity)

	reader := ast.NewRegistry()
	p, err := New(f, reader, bag)
	require.NoError(t, err)
	return p.ParseFile(), bag
}

func TestParseFile_FunDeclWithBody(t *testing.T) {
	file, bag := parse(t, `
fun add(a: i32, b: i32) -> i32 {
	return a + b;
}
`)
	require.False(t, bag.HasErrors())
	require.Len(t, file.Decls, 1)
	fn, ok := file.Decls[0].(*ast.FunDecl)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	require.Len(t, fn.Body.Stmts, 1)
}

func TestParseFile_StructDeclWithFields(t *testing.T) {
	file, bag := parse(t, `
struct Point {
	x: i32,
	y: i32,
}
`)
	require.False(t, bag.HasErrors())
	s, ok := file.Decls[0].(*ast.StructDecl)
	require.True(t, ok)
	require.Equal(t, "Point", s.Name)
}

func TestParseFile_VarDeclWithInitializer(t *testing.T) {
	file, bag := parse(t, `
fun f() -> unit {
	var mut x: i32 = 1 + 2 * 3;
	return;
}
`)
	require.False(t, bag.HasErrors())
	fn := file.Decls[0].(*ast.FunDecl)
	v, ok := fn.Body.Stmts[0].(*ast.VarDecl)
	require.True(t, ok)
	require.Equal(t, "x", v.Name)
	require.NotNil(t, v.Init)
}

func TestParseFile_ShuntingYardRespectsPrecedence(t *testing.T) {
	file, bag := parse(t, `
fun f() -> i32 {
	return 1 + 2 * 3;
}
`)
	require.False(t, bag.HasErrors())
	fn := file.Decls[0].(*ast.FunDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	top, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok, "top-level operator must be the lowest-precedence '+'")
	require.Equal(t, ast.BinAdd, top.Op)
	_, rhsIsMul := top.Right.(*ast.BinaryExpr)
	require.True(t, rhsIsMul, "the '*' subexpression must nest under '+', not the other way around")
}

func TestParseFile_RangeBindsTighterThanRelational(t *testing.T) {
	file, bag := parse(t, `
fun f(a: i32, b: i32, c: i32) -> bool {
	return a < b..c;
}
`)
	require.False(t, bag.HasErrors())
	fn := file.Decls[0].(*ast.FunDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	top, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok, "top-level operator must be the lowest-precedence '<'")
	require.Equal(t, ast.BinLt, top.Op)
	rangeExpr, ok := top.Right.(*ast.BinaryExpr)
	require.True(t, ok, "'..' must nest under '<', i.e. a < (b..c)")
	require.Equal(t, ast.BinRange, rangeExpr.Op)
}

func TestParseFile_RangeBindsLooserThanAddSub(t *testing.T) {
	file, bag := parse(t, `
fun f(a: i32, b: i32, c: i32) -> i32 {
	return a + b..c;
}
`)
	require.False(t, bag.HasErrors())
	fn := file.Decls[0].(*ast.FunDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	top, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok, "top-level operator must be the loosest-binding '..'")
	require.Equal(t, ast.BinRange, top.Op)
	addExpr, ok := top.Left.(*ast.BinaryExpr)
	require.True(t, ok, "'+' must nest under '..', i.e. (a + b)..c")
	require.Equal(t, ast.BinAdd, addExpr.Op)
}

func TestParseFile_MemberAccessChains(t *testing.T) {
	file, bag := parse(t, `
fun f(p: Point) -> i32 {
	return p.x;
}
`)
	require.False(t, bag.HasErrors())
	fn := file.Decls[0].(*ast.FunDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	_, ok := ret.Value.(*ast.MemberExpr)
	require.True(t, ok)
}

func TestParseFile_RecoversAfterSyntaxError(t *testing.T) {
	file, bag := parse(t, `
???
fun g() -> unit {
	return;
}
`)
	require.True(t, bag.HasErrors())
	require.Len(t, file.Decls, 1, "the stray garbage token is skipped and the following declaration still parses")
	_, ok := file.Decls[0].(*ast.FunDecl)
	require.True(t, ok)
}
