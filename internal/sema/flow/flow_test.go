package flow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/diag"
)

func boolLit(v string) *ast.LiteralExpr {
	return &ast.LiteralExpr{Kind: ast.LitBool, Text: v}
}

func block(stmts ...ast.Stmt) *ast.BlockStmt {
	return &ast.BlockStmt{Stmts: stmts}
}

func TestCheck_ReturnDirectlyInFunctionBodyIsAccepted(t *testing.T) {
	bag := diag.NewBag(diag.DefaultCapacity)
	// Only FunDecl bodies are walked, so wrap a bare ReturnStmt inside a
	// function with no surrounding construct that would otherwise guard it.
	fn := &ast.FunDecl{Name: "f", Body: block(&ast.ReturnStmt{})}
	New(bag).Check(&ast.File{Decls: []ast.Decl{fn}})
	require.False(t, bag.HasErrors(), "a return directly inside a function body is fine")
}

func TestCheck_BreakOutsideLoopIsRejected(t *testing.T) {
	bag := diag.NewBag(diag.DefaultCapacity)
	fn := &ast.FunDecl{Name: "f", Body: block(&ast.BreakStmt{})}
	New(bag).Check(&ast.File{Decls: []ast.Decl{fn}})
	require.True(t, bag.HasErrors())
	require.Contains(t, bag.Errors()[0].Title, "break")
}

func TestCheck_ContinueInsideLoopIsAccepted(t *testing.T) {
	bag := diag.NewBag(diag.DefaultCapacity)
	loop := &ast.WhileStmt{Cond: boolLit("true"), Body: block(&ast.ContinueStmt{}, &ast.BreakStmt{})}
	fn := &ast.FunDecl{Name: "f", Body: block(loop)}
	New(bag).Check(&ast.File{Decls: []ast.Decl{fn}})
	require.False(t, bag.HasErrors())
}

func TestCheck_NonVoidFunctionMustReturnOnAllPaths(t *testing.T) {
	bag := diag.NewBag(diag.DefaultCapacity)
	fn := &ast.FunDecl{
		Name:   "f",
		Return: &ast.PrimitiveType{Name: "i32"},
		Body:   block(&ast.ExprStmt{X: &ast.LiteralExpr{Kind: ast.LitInt, Text: "1"}}),
	}
	New(bag).Check(&ast.File{Decls: []ast.Decl{fn}})
	require.True(t, bag.HasErrors())
	require.Contains(t, bag.Errors()[0].Title, "must return a value on every path")
}

func TestCheck_IfElseBothReturningSatisfiesTotality(t *testing.T) {
	bag := diag.NewBag(diag.DefaultCapacity)
	ifStmt := &ast.IfStmt{
		Cond: boolLit("true"),
		Then: block(&ast.ReturnStmt{Value: &ast.LiteralExpr{Kind: ast.LitInt, Text: "1"}}),
		Else: block(&ast.ReturnStmt{Value: &ast.LiteralExpr{Kind: ast.LitInt, Text: "2"}}),
	}
	fn := &ast.FunDecl{
		Name:   "f",
		Return: &ast.PrimitiveType{Name: "i32"},
		Body:   block(ifStmt),
	}
	New(bag).Check(&ast.File{Decls: []ast.Decl{fn}})
	require.False(t, bag.HasErrors())
}

func TestCheck_WhileTrueWithoutBreakSatisfiesTotality(t *testing.T) {
	bag := diag.NewBag(diag.DefaultCapacity)
	loop := &ast.WhileStmt{Cond: boolLit("true"), Body: block(&ast.ExprStmt{})}
	fn := &ast.FunDecl{
		Name:   "f",
		Return: &ast.PrimitiveType{Name: "i32"},
		Body:   block(loop),
	}
	New(bag).Check(&ast.File{Decls: []ast.Decl{fn}})
	require.False(t, bag.HasErrors())
}

func TestCheck_WhileTrueWithReachableBreakFailsTotality(t *testing.T) {
	bag := diag.NewBag(diag.DefaultCapacity)
	loop := &ast.WhileStmt{Cond: boolLit("true"), Body: block(&ast.BreakStmt{})}
	fn := &ast.FunDecl{
		Name:   "f",
		Return: &ast.PrimitiveType{Name: "i32"},
		Body:   block(loop),
	}
	New(bag).Check(&ast.File{Decls: []ast.Decl{fn}})
	require.True(t, bag.HasErrors())
}

func TestCheck_BreakInNestedLoopDoesNotInvalidateOuterTotality(t *testing.T) {
	bag := diag.NewBag(diag.DefaultCapacity)
	inner := &ast.WhileStmt{Cond: boolLit("true"), Body: block(&ast.BreakStmt{})}
	outer := &ast.WhileStmt{Cond: boolLit("true"), Body: block(inner)}
	fn := &ast.FunDecl{
		Name:   "f",
		Return: &ast.PrimitiveType{Name: "i32"},
		Body:   block(outer),
	}
	New(bag).Check(&ast.File{Decls: []ast.Decl{fn}})
	require.False(t, bag.HasErrors(), "a break belonging to the inner loop must not defeat the outer loop's totality")
}

func TestCheck_StatementAfterReturnIsUnreachable(t *testing.T) {
	bag := diag.NewBag(diag.DefaultCapacity)
	dead := &ast.ExprStmt{X: &ast.LiteralExpr{Kind: ast.LitInt, Text: "1"}}
	fn := &ast.FunDecl{Name: "f", Body: block(&ast.ReturnStmt{}, dead)}
	New(bag).Check(&ast.File{Decls: []ast.Decl{fn}})
	require.False(t, bag.HasErrors())
	require.Len(t, bag.Warnings(), 1)
	require.Contains(t, bag.Warnings()[0].Title, "unreachable")
}

func TestCheck_StatementAfterBreakOrContinueIsUnreachable(t *testing.T) {
	bag := diag.NewBag(diag.DefaultCapacity)
	loop := &ast.WhileStmt{Cond: boolLit("true"), Body: block(
		&ast.BreakStmt{},
		&ast.ExprStmt{},
	)}
	fn := &ast.FunDecl{Name: "f", Body: block(loop)}
	New(bag).Check(&ast.File{Decls: []ast.Decl{fn}})
	require.Len(t, bag.Warnings(), 1)
}

func TestCheck_NoWarningWhenNothingFollowsTerminator(t *testing.T) {
	bag := diag.NewBag(diag.DefaultCapacity)
	fn := &ast.FunDecl{Name: "f", Body: block(&ast.ReturnStmt{})}
	New(bag).Check(&ast.File{Decls: []ast.Decl{fn}})
	require.Empty(t, bag.Warnings())
}

func TestCheck_ReturnInsideDeferIsRejected(t *testing.T) {
	bag := diag.NewBag(diag.DefaultCapacity)
	deferStmt := &ast.DeferStmt{Body: &ast.ReturnStmt{}}
	fn := &ast.FunDecl{Name: "f", Body: block(deferStmt)}
	New(bag).Check(&ast.File{Decls: []ast.Decl{fn}})
	require.True(t, bag.HasErrors())
	require.Contains(t, bag.Errors()[0].Title, "defer")
}

func TestCheck_BreakInsideDeferredBlockInsideLoopIsStillRejected(t *testing.T) {
	bag := diag.NewBag(diag.DefaultCapacity)
	deferStmt := &ast.DeferStmt{Body: block(&ast.BreakStmt{})}
	loop := &ast.WhileStmt{Cond: boolLit("true"), Body: block(deferStmt)}
	fn := &ast.FunDecl{Name: "f", Body: block(loop)}
	New(bag).Check(&ast.File{Decls: []ast.Decl{fn}})
	require.True(t, bag.HasErrors(), "being lexically inside a loop doesn't excuse a break inside a defer")
	require.Contains(t, bag.Errors()[0].Title, "defer")
}

func TestCheck_DeferWithOrdinaryCallIsAccepted(t *testing.T) {
	bag := diag.NewBag(diag.DefaultCapacity)
	deferStmt := &ast.DeferStmt{Body: &ast.ExprStmt{X: &ast.CallExpr{Callee: &ast.IdentExpr{Name: "close"}}}}
	fn := &ast.FunDecl{Name: "f", Body: block(deferStmt)}
	New(bag).Check(&ast.File{Decls: []ast.Decl{fn}})
	require.False(t, bag.HasErrors())
}

func TestCheck_ModDeclRecursesIntoNestedFunctions(t *testing.T) {
	bag := diag.NewBag(diag.DefaultCapacity)
	fn := &ast.FunDecl{Name: "f", Body: block(&ast.BreakStmt{})}
	mod := &ast.ModDecl{Name: "m", Decls: []ast.Decl{fn}}
	New(bag).Check(&ast.File{Decls: []ast.Decl{mod}})
	require.True(t, bag.HasErrors())
}
