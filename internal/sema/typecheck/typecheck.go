// Package typecheck implements the type check pass: a bottom-up
// traversal that resolves each ast.Type node to a hash-consed
// types.Descriptor and each ast.Expr node to the descriptor of its
// value, recording both in the shared typetable.Table.
//
// The traversal shape (recurse into children, read their already-set
// types, decide the parent's type, report an error and poison the
// entry on mismatch) follows lang/ysem/analyzer.go's typeCheckExpr;
// this pass only reads name-resolution results from resolve.Table,
// never writes them, and only writes typetable.Table, never symtab —
// keeping the two passes' side tables disjoint per spec.md §4.
package typecheck

import (
	"fmt"

	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/diag"
	"github.com/Baleg00/tau/internal/sema/resolve"
	"github.com/Baleg00/tau/internal/typetable"
	"github.com/Baleg00/tau/internal/types"
)

// Checker runs the type check pass over one *ast.File.
type Checker struct {
	bag       *diag.Bag
	builder   *types.Builder
	table     *typetable.Table
	resolved  *resolve.Table
	currentFn *ast.FunDecl
}

// New returns a Checker that resolves types with builder, records
// results in table, reads name bindings from resolved, and reports
// diagnostics into bag.
func New(bag *diag.Bag, builder *types.Builder, table *typetable.Table, resolved *resolve.Table) *Checker {
	return &Checker{bag: bag, builder: builder, table: table, resolved: resolved}
}

// Check runs the pass over every top-level declaration in file.
func (c *Checker) Check(file *ast.File) {
	for _, d := range file.Decls {
		c.checkDecl(d)
		if c.bag.Full() {
			return
		}
	}
}

func (c *Checker) report(loc ast.Node, format string, args ...any) {
	c.bag.Report(diag.Diagnostic{
		Severity: diag.SeverityError,
		Title:    fmt.Sprintf(format, args...),
		Loc:      loc.Loc(),
	})
}

// warn reports a non-fatal diagnostic, e.g. the "mixed signedness"
// notice spec.md §4.4 requires for `+ - * / %` between a signed and an
// unsigned operand — the result is still well-typed, so this never
// poisons the expression's table entry the way report's callers do.
func (c *Checker) warn(loc ast.Node, format string, args ...any) {
	c.bag.Report(diag.Diagnostic{
		Severity: diag.SeverityWarning,
		Title:    fmt.Sprintf(format, args...),
		Loc:      loc.Loc(),
	})
}

func (c *Checker) poison(node ast.Node) *types.Descriptor {
	d := c.builder.ErrorType()
	c.table.Insert(node, d)
	return d
}

func (c *Checker) set(node ast.Node, d *types.Descriptor) *types.Descriptor {
	c.table.Insert(node, d)
	return d
}
