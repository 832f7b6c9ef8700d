package typecheck

import (
	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/types"
)

func (c *Checker) checkDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.ModDecl:
		for _, child := range n.Decls {
			c.checkDecl(child)
			if c.bag.Full() {
				return
			}
		}
	case *ast.UseDecl:
		// nothing to check: no pass resolves a use declaration's module path.
	case *ast.FunDecl:
		c.checkFun(n)
	case *ast.StructDecl:
		c.declType(n)
	case *ast.UnionDecl:
		c.declType(n)
	case *ast.EnumDecl:
		c.checkEnum(n)
	case *ast.VarDecl:
		c.checkVarDecl(n)
	case *ast.ConstDecl:
		c.checkConstDecl(n)
	case *ast.TypeAliasDecl:
		c.set(n, c.resolveType(n.Type))
	}
}

func (c *Checker) checkFun(n *ast.FunDecl) {
	params := make([]*types.Descriptor, len(n.Params))
	for i, p := range n.Params {
		params[i] = c.resolveType(p.Type)
		c.set(p, params[i])
	}
	ret := c.builder.Primitive(types.Unit)
	if n.Return != nil {
		ret = c.resolveType(n.Return)
	}
	fn := c.builder.Fun(params, ret, n.IsVararg, types.CallConvDefault)
	c.set(n, fn)

	if n.Body == nil {
		return
	}
	prevFn := c.currentFn
	c.currentFn = n
	c.checkBlock(n.Body)
	c.currentFn = prevFn

	if ret.Kind != types.Unit && !blockAlwaysReturns(n.Body) {
		c.report(n, "function '%s' does not return a value on all paths", n.Name)
	}
}

func (c *Checker) checkEnum(n *ast.EnumDecl) {
	d := c.declType(n)
	for _, constant := range n.Constants {
		if constant.Value != nil {
			c.checkExpr(constant.Value)
		}
		c.set(constant, d)
	}
}

func (c *Checker) checkVarDecl(n *ast.VarDecl) {
	var declared *types.Descriptor
	if n.Type != nil {
		declared = c.resolveType(n.Type)
	}
	if n.Init != nil {
		initTy := c.checkExpr(n.Init)
		if declared == nil {
			declared = initTy
		} else if !c.assignable(initTy, declared, n.Init) {
			c.report(n.Init, "cannot initialize '%s' of type %s with value of type %s", n.Name, declared, initTy)
		}
	}
	if declared == nil {
		declared = c.poison(n)
	}
	if n.Mut {
		d, err := c.builder.Mut(declared)
		if err == nil {
			declared = d
		}
	}
	c.set(n, declared)
}

func (c *Checker) checkConstDecl(n *ast.ConstDecl) {
	var declared *types.Descriptor
	if n.Type != nil {
		declared = c.resolveType(n.Type)
	}
	initTy := c.checkExpr(n.Init)
	if declared == nil {
		declared = initTy
	} else if !c.assignable(initTy, declared, n.Init) {
		c.report(n.Init, "cannot initialize constant '%s' of type %s with value of type %s", n.Name, declared, initTy)
	}
	constTy, err := c.builder.Const(declared)
	if err == nil {
		declared = constTy
	}
	c.set(n, declared)
}

// assignable reports whether a value of type from may be assigned or
// used to initialize a binding of type to, adapting the relaxed rule
// for a bare integer/float literal so `var x: u8 = 1` accepts an
// untyped literal regardless of its default-assumed signedness.
func (c *Checker) assignable(from, to *types.Descriptor, expr ast.Expr) bool {
	if lit, ok := expr.(*ast.LiteralExpr); ok && (lit.Kind == ast.LitInt || lit.Kind == ast.LitFloat) {
		return types.IsImplicitlyConvertibleRelaxed(from, to)
	}
	return types.IsImplicitlyConvertible(from, to)
}

// blockAlwaysReturns is a conservative syntactic check (every path
// out of b ends in return, or in a while(true)/if-else where both
// arms return) used to flag functions that can fall off the end
// without producing a result. The control-flow pass does the precise
// version of this analysis; this is just enough for the type checker
// to catch the common case eagerly.
func blockAlwaysReturns(b *ast.BlockStmt) bool {
	if len(b.Stmts) == 0 {
		return false
	}
	return stmtAlwaysReturns(b.Stmts[len(b.Stmts)-1])
}

func stmtAlwaysReturns(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.BlockStmt:
		return blockAlwaysReturns(n)
	case *ast.IfStmt:
		if n.Else == nil {
			return false
		}
		return blockAlwaysReturns(n.Then) && stmtAlwaysReturns(n.Else)
	case *ast.WhileStmt:
		lit, ok := n.Cond.(*ast.LiteralExpr)
		return ok && lit.Kind == ast.LitBool && lit.Text == "true"
	default:
		return false
	}
}
