package typecheck

import (
	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/types"
)

func (c *Checker) checkBlock(b *ast.BlockStmt) {
	for _, s := range b.Stmts {
		c.checkStmt(s)
		if c.bag.Full() {
			return
		}
	}
}

func (c *Checker) checkStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		if n.X != nil {
			c.checkExpr(n.X)
		}
	case *ast.BlockStmt:
		c.checkBlock(n)
	case *ast.IfStmt:
		c.checkCond(n.Cond)
		c.checkBlock(n.Then)
		if n.Else != nil {
			c.checkStmt(n.Else)
		}
	case *ast.WhileStmt:
		c.checkCond(n.Cond)
		c.checkBlock(n.Body)
	case *ast.DoWhileStmt:
		c.checkBlock(n.Body)
		c.checkCond(n.Cond)
	case *ast.ForStmt:
		if n.Init != nil {
			c.checkStmt(n.Init)
		}
		if n.Cond != nil {
			c.checkCond(n.Cond)
		}
		if n.Post != nil {
			c.checkStmt(n.Post)
		}
		c.checkBlock(n.Body)
	case *ast.ReturnStmt:
		c.checkReturn(n)
	case *ast.YieldStmt:
		c.checkExpr(n.Value)
	case *ast.BreakStmt, *ast.ContinueStmt:
		// loop-context validity is the control-flow pass's responsibility.
	case *ast.DeferStmt:
		c.checkStmt(n.Body)
	case *ast.VarDecl:
		c.checkVarDecl(n)
	case *ast.ConstDecl:
		c.checkConstDecl(n)
	}
}

func (c *Checker) checkCond(cond ast.Expr) {
	ty := c.checkExpr(cond)
	if u := types.Underlying(ty); u.Kind != types.Bool && u.Kind != types.Error {
		c.report(cond, "condition must be bool, got %s", ty)
	}
}

func (c *Checker) checkReturn(n *ast.ReturnStmt) {
	var retTy *types.Descriptor
	if c.currentFn != nil {
		retTy = c.currentFn.Return
	}
	if n.Value == nil {
		if retTy != nil {
			if fnTy, ok := c.table.Lookup(c.currentFn); ok && fnTy.Return.Kind != types.Unit {
				c.report(n, "missing return value in function returning %s", fnTy.Return)
			}
		}
		return
	}
	valTy := c.checkExpr(n.Value)
	if c.currentFn == nil {
		return
	}
	fnTy, ok := c.table.Lookup(c.currentFn)
	if !ok {
		return
	}
	if !c.assignableExpr(valTy, fnTy.Return, n.Value) {
		c.report(n.Value, "cannot return value of type %s from function returning %s", valTy, fnTy.Return)
	}
}
