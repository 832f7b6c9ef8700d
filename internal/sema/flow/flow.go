// Package flow implements the control-flow analysis pass: after type
// checking, it walks each function body once more to confirm every
// return statement sits inside a function, every break/continue sits
// inside a loop, and non-unit functions return on every path.
//
// The error-accumulation shape (a flat slice of formatted messages,
// reported via a small helper rather than panicking) follows
// lang/ysem/analyzer.go's Analyzer.error/errorAt, adapted to report
// into the shared diag.Bag instead of a private []string.
package flow

import (
	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/diag"
)

// Checker runs the control-flow pass over one *ast.File.
type Checker struct {
	bag *diag.Bag

	inFn      bool
	fnName    string
	fnIsVoid  bool
	loopDepth int
	inDefer   bool
}

// New returns a Checker reporting diagnostics into bag.
func New(bag *diag.Bag) *Checker {
	return &Checker{bag: bag}
}

// Check walks every declaration in file.
func (c *Checker) Check(file *ast.File) {
	for _, d := range file.Decls {
		c.checkDecl(d)
		if c.bag.Full() {
			return
		}
	}
}

func (c *Checker) report(loc ast.Node, title string) {
	c.bag.Report(diag.Diagnostic{
		Severity: diag.SeverityError,
		Title:    title,
		Loc:      loc.Loc(),
	})
}

// warn reports the non-fatal dead-code-after-terminator notice
// required by spec.md §4.7: statements following a return, break, or
// continue within the same block are unreachable but don't themselves
// make the program ill-typed.
func (c *Checker) warn(loc ast.Node, title string) {
	c.bag.Report(diag.Diagnostic{
		Severity: diag.SeverityWarning,
		Title:    title,
		Loc:      loc.Loc(),
	})
}

func (c *Checker) checkDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.ModDecl:
		for _, child := range n.Decls {
			c.checkDecl(child)
		}
	case *ast.FunDecl:
		c.checkFun(n)
	}
}

func (c *Checker) checkFun(n *ast.FunDecl) {
	if n.Body == nil {
		return
	}
	prevIn, prevName, prevVoid, prevDepth := c.inFn, c.fnName, c.fnIsVoid, c.loopDepth
	c.inFn = true
	c.fnName = n.Name
	c.fnIsVoid = n.Return == nil
	switch rt := n.Return.(type) {
	case *ast.NameType:
		c.fnIsVoid = rt.Name == "unit" && len(rt.Qualifiers) == 0
	case *ast.PrimitiveType:
		c.fnIsVoid = rt.Name == "unit"
	}
	c.loopDepth = 0

	c.checkBlock(n.Body)

	if !c.fnIsVoid && !blockReturnsOnAllPaths(n.Body) {
		c.report(n, "function '"+n.Name+"' must return a value on every path")
	}

	c.inFn, c.fnName, c.fnIsVoid, c.loopDepth = prevIn, prevName, prevVoid, prevDepth
}

func (c *Checker) checkBlock(b *ast.BlockStmt) {
	terminated := false
	for _, s := range b.Stmts {
		if terminated {
			c.warn(s, "unreachable code")
			terminated = false // only warn once per dead run
		}
		c.checkStmt(s)
		if isTerminator(s) {
			terminated = true
		}
	}
}

// isTerminator reports whether s unconditionally ends the block it's
// in, making any statement after it in the same block unreachable.
func isTerminator(s ast.Stmt) bool {
	switch s.(type) {
	case *ast.ReturnStmt, *ast.BreakStmt, *ast.ContinueStmt:
		return true
	default:
		return false
	}
}

func (c *Checker) checkStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		c.checkBlock(n)
	case *ast.IfStmt:
		c.checkBlock(n.Then)
		if n.Else != nil {
			c.checkStmt(n.Else)
		}
	case *ast.WhileStmt:
		c.loopDepth++
		c.checkBlock(n.Body)
		c.loopDepth--
	case *ast.DoWhileStmt:
		c.loopDepth++
		c.checkBlock(n.Body)
		c.loopDepth--
	case *ast.ForStmt:
		c.loopDepth++
		c.checkBlock(n.Body)
		c.loopDepth--
	case *ast.ReturnStmt:
		if c.inDefer {
			c.report(n, "return statement not allowed inside defer")
		} else if !c.inFn {
			c.report(n, "return statement outside of a function")
		}
	case *ast.BreakStmt:
		if c.inDefer {
			c.report(n, "break statement not allowed inside defer")
		} else if c.loopDepth == 0 {
			c.report(n, "break statement outside of a loop")
		}
	case *ast.ContinueStmt:
		if c.inDefer {
			c.report(n, "continue statement not allowed inside defer")
		} else if c.loopDepth == 0 {
			c.report(n, "continue statement outside of a loop")
		}
	case *ast.DeferStmt:
		prevDefer := c.inDefer
		c.inDefer = true
		c.checkStmt(n.Body)
		c.inDefer = prevDefer
	}
}

// blockReturnsOnAllPaths decides, syntactically, whether every path
// through b ends in a return, or in an if/else whose every branch
// returns, or in an unconditional infinite loop (`while true { ... }`)
// with no reachable break. This is deliberately conservative: it can
// reject a function a human would consider obviously total (e.g. one
// ending in a match-like chain this language doesn't have), but it
// never accepts a function that can fall off the end silently.
func blockReturnsOnAllPaths(b *ast.BlockStmt) bool {
	for _, s := range b.Stmts {
		if stmtReturnsOnAllPaths(s) {
			return true
		}
	}
	return false
}

func stmtReturnsOnAllPaths(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.BlockStmt:
		return blockReturnsOnAllPaths(n)
	case *ast.IfStmt:
		if n.Else == nil {
			return false
		}
		return blockReturnsOnAllPaths(n.Then) && stmtReturnsOnAllPaths(n.Else)
	case *ast.WhileStmt:
		return isAlwaysTrue(n.Cond) && !blockHasBreak(n.Body, 0)
	case *ast.ForStmt:
		return n.Cond == nil && !blockHasBreak(n.Body, 0)
	default:
		return false
	}
}

func isAlwaysTrue(e ast.Expr) bool {
	lit, ok := e.(*ast.LiteralExpr)
	return ok && lit.Kind == ast.LitBool && lit.Text == "true"
}

// blockHasBreak reports whether b contains a break reachable without
// crossing into a nested loop (depth tracks nested-loop boundaries so
// a break belonging to an inner loop doesn't count against the outer
// one).
func blockHasBreak(b *ast.BlockStmt, depth int) bool {
	for _, s := range b.Stmts {
		if stmtHasBreak(s, depth) {
			return true
		}
	}
	return false
}

func stmtHasBreak(s ast.Stmt, depth int) bool {
	switch n := s.(type) {
	case *ast.BreakStmt:
		return depth == 0
	case *ast.BlockStmt:
		return blockHasBreak(n, depth)
	case *ast.IfStmt:
		if blockHasBreak(n.Then, depth) {
			return true
		}
		return n.Else != nil && stmtHasBreak(n.Else, depth)
	case *ast.WhileStmt:
		return blockHasBreak(n.Body, depth+1)
	case *ast.DoWhileStmt:
		return blockHasBreak(n.Body, depth+1)
	case *ast.ForStmt:
		return blockHasBreak(n.Body, depth+1)
	default:
		return false
	}
}
