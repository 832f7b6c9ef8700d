// Package resolve implements the name resolution pass: it walks the
// AST once, pushing a child scope at every scope-creating construct
// (mod/fun/struct/union/enum/block/loop) and inserting declarations
// into the current scope, the way
// original_source/src/stages/analysis/nameres.c's
// nameres_ctx_scope_begin/end push and pop the scope stack.
//
// Resolution results (which declaration an IdentExpr or NameType
// names) live in this pass's own side Table, not on the AST nodes
// themselves — later passes (typecheck) read Table but never write
// it, keeping each pass's side tables disjoint per spec.md §4.
package resolve

import (
	"fmt"

	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/diag"
	"github.com/Baleg00/tau/internal/symtab"
	"github.com/Baleg00/tau/internal/types"
)

// Table maps a name-reference node (IdentExpr or NameType) to the
// symbol it was resolved to.
type Table struct {
	refs map[ast.Node]*symtab.Symbol
}

func newTable() *Table { return &Table{refs: make(map[ast.Node]*symtab.Symbol)} }

// Lookup returns the symbol a previously resolved reference node was
// bound to.
func (t *Table) Lookup(ref ast.Node) (*symtab.Symbol, bool) {
	s, ok := t.refs[ref]
	return s, ok
}

func (t *Table) bind(ref ast.Node, sym *symtab.Symbol) {
	t.refs[ref] = sym
}

// Resolver runs the name resolution pass over one *ast.File.
type Resolver struct {
	bag   *diag.Bag
	table *Table

	// loopStack holds the symbol wrapping each enclosing loop
	// statement, innermost last, so break/continue bind to the
	// nearest one per spec.md §3/§4.5.
	loopStack []*symtab.Symbol
}

// New returns a Resolver reporting diagnostics into bag.
func New(bag *diag.Bag) *Resolver {
	return &Resolver{bag: bag, table: newTable()}
}

// Table returns the resolution results gathered so far.
func (r *Resolver) Table() *Table { return r.table }

// Resolve walks file, declaring its top-level declarations into root
// and descending into function bodies, creating child scopes as it
// goes.
func (r *Resolver) Resolve(file *ast.File, root *symtab.Scope) {
	r.declareAll(file.Decls, root)
	for _, d := range file.Decls {
		r.resolveDecl(d, root)
		if r.bag.Full() {
			return
		}
	}
}

func (r *Resolver) declareAll(decls []ast.Decl, scope *symtab.Scope) {
	for _, d := range decls {
		r.declare(d, scope)
	}
}

func (r *Resolver) declare(d ast.Decl, scope *symtab.Scope) {
	var name string
	switch n := d.(type) {
	case *ast.ModDecl:
		name = n.Name
	case *ast.FunDecl:
		name = n.Name
	case *ast.StructDecl:
		name = n.Name
	case *ast.UnionDecl:
		name = n.Name
	case *ast.EnumDecl:
		name = n.Name
	case *ast.VarDecl:
		name = n.Name
	case *ast.ConstDecl:
		name = n.Name
	case *ast.TypeAliasDecl:
		name = n.Name
	case *ast.UseDecl:
		return
	default:
		return
	}
	sym := &symtab.Symbol{Name: name, Node: d}
	if existing := scope.Insert(sym); existing != sym {
		r.bag.Report(diag.Diagnostic{
			Severity: diag.SeverityError,
			Title:    fmt.Sprintf("redefinition of '%s'", name),
			Loc:      d.Loc(),
		})
	}
}

func (r *Resolver) resolveDecl(d ast.Decl, scope *symtab.Scope) {
	switch n := d.(type) {
	case *ast.ModDecl:
		modScope := symtab.NewScope(scope)
		r.declareAll(n.Decls, modScope)
		for _, child := range n.Decls {
			r.resolveDecl(child, modScope)
		}
	case *ast.FunDecl:
		r.resolveFun(n, scope)
	case *ast.StructDecl:
		fieldScope := symtab.NewScope(scope)
		for _, f := range n.Fields {
			r.resolveType(f.Type, fieldScope)
		}
	case *ast.UnionDecl:
		fieldScope := symtab.NewScope(scope)
		for _, f := range n.Fields {
			r.resolveType(f.Type, fieldScope)
		}
	case *ast.EnumDecl:
		enumScope := symtab.NewScope(scope)
		for _, c := range n.Constants {
			if c.Value != nil {
				r.resolveExpr(c.Value, enumScope)
			}
		}
	case *ast.VarDecl:
		if n.Type != nil {
			r.resolveType(n.Type, scope)
		}
		if n.Init != nil {
			r.resolveExpr(n.Init, scope)
		}
	case *ast.ConstDecl:
		if n.Type != nil {
			r.resolveType(n.Type, scope)
		}
		if n.Init != nil {
			r.resolveExpr(n.Init, scope)
		}
	case *ast.TypeAliasDecl:
		r.resolveType(n.Type, scope)
	}
}

func (r *Resolver) resolveFun(n *ast.FunDecl, scope *symtab.Scope) {
	funScope := symtab.NewScope(scope)
	for _, g := range n.Generics {
		funScope.Insert(&symtab.Symbol{Name: g.Name, Node: g})
	}
	for _, p := range n.Params {
		r.resolveType(p.Type, funScope)
		if existing := funScope.Insert(&symtab.Symbol{Name: p.Name, Node: p}); existing.Node != p {
			r.bag.Report(diag.Diagnostic{
				Severity: diag.SeverityError,
				Title:    fmt.Sprintf("redefinition of parameter '%s'", p.Name),
				Loc:      p.Loc(),
			})
		}
	}
	if n.Return != nil {
		r.resolveType(n.Return, funScope)
	}
	if n.Body != nil {
		r.resolveBlock(n.Body, funScope)
	}
}

func (r *Resolver) resolveBlock(b *ast.BlockStmt, parent *symtab.Scope) {
	scope := symtab.NewScope(parent)
	for _, s := range b.Stmts {
		r.resolveStmt(s, scope)
		if r.bag.Full() {
			return
		}
	}
}

// pushLoop and popLoop track the innermost enclosing loop so
// break/continue can bind to it the way
// original_source/src/stages/analysis/nameres.c's loop-stack tracks
// the nearest breakable construct.
func (r *Resolver) pushLoop(loop ast.Stmt) {
	r.loopStack = append(r.loopStack, &symtab.Symbol{Node: loop})
}

func (r *Resolver) popLoop() {
	r.loopStack = r.loopStack[:len(r.loopStack)-1]
}

// bindLoopRef binds a break/continue statement to its nearest
// enclosing loop in the resolution table. Outside any loop it reports
// nothing here — internal/sema/flow owns the "break/continue outside
// a loop" diagnostic — it simply leaves the reference unbound.
func (r *Resolver) bindLoopRef(n ast.Stmt) {
	if len(r.loopStack) == 0 {
		return
	}
	r.table.bind(n, r.loopStack[len(r.loopStack)-1])
}

// declareLocal inserts a block-scoped declaration (VarDecl/ConstDecl)
// into scope, reporting a same-scope redefinition as an error and an
// ancestor-scope shadow as a warning per spec.md §4.5: "In-scope-chain
// shadow (identifier resolvable in an ancestor scope) is a warning,
// not an error."
func (r *Resolver) declareLocal(name string, node ast.Node, scope *symtab.Scope) {
	if existing := scope.Insert(&symtab.Symbol{Name: name, Node: node}); existing.Node != node {
		r.bag.Report(diag.Diagnostic{
			Severity: diag.SeverityError,
			Title:    fmt.Sprintf("redefinition of '%s'", name),
			Loc:      node.Loc(),
		})
		return
	}
	if scope.Parent != nil {
		if _, ok := scope.Parent.Lookup(name); ok {
			r.bag.Report(diag.Diagnostic{
				Severity: diag.SeverityWarning,
				Title:    fmt.Sprintf("declaration of '%s' shadows a declaration in an outer scope", name),
				Loc:      node.Loc(),
			})
		}
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt, scope *symtab.Scope) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		if n.X != nil {
			r.resolveExpr(n.X, scope)
		}
	case *ast.BlockStmt:
		r.resolveBlock(n, scope)
	case *ast.IfStmt:
		r.resolveExpr(n.Cond, scope)
		r.resolveBlock(n.Then, scope)
		if n.Else != nil {
			r.resolveStmt(n.Else, scope)
		}
	case *ast.WhileStmt:
		r.resolveExpr(n.Cond, scope)
		r.pushLoop(n)
		r.resolveBlock(n.Body, scope)
		r.popLoop()
	case *ast.DoWhileStmt:
		r.pushLoop(n)
		r.resolveBlock(n.Body, scope)
		r.popLoop()
		r.resolveExpr(n.Cond, scope)
	case *ast.ForStmt:
		loopScope := symtab.NewScope(scope)
		if n.Init != nil {
			r.resolveStmt(n.Init, loopScope)
		}
		if n.Cond != nil {
			r.resolveExpr(n.Cond, loopScope)
		}
		if n.Post != nil {
			r.resolveStmt(n.Post, loopScope)
		}
		r.pushLoop(n)
		r.resolveBlock(n.Body, loopScope)
		r.popLoop()
	case *ast.BreakStmt:
		r.bindLoopRef(n)
	case *ast.ContinueStmt:
		r.bindLoopRef(n)
	case *ast.ReturnStmt:
		if n.Value != nil {
			r.resolveExpr(n.Value, scope)
		}
	case *ast.YieldStmt:
		r.resolveExpr(n.Value, scope)
	case *ast.DeferStmt:
		r.resolveStmt(n.Body, scope)
	case *ast.VarDecl:
		if n.Type != nil {
			r.resolveType(n.Type, scope)
		}
		if n.Init != nil {
			r.resolveExpr(n.Init, scope)
		}
		r.declareLocal(n.Name, n, scope)
	case *ast.ConstDecl:
		if n.Type != nil {
			r.resolveType(n.Type, scope)
		}
		r.resolveExpr(n.Init, scope)
		r.declareLocal(n.Name, n, scope)
	}
}

func (r *Resolver) resolveExpr(e ast.Expr, scope *symtab.Scope) {
	switch n := e.(type) {
	case *ast.IdentExpr:
		sym, ok := scope.Lookup(n.Name)
		if !ok {
			r.bag.Report(diag.Diagnostic{
				Severity: diag.SeverityError,
				Title:    fmt.Sprintf("undefined identifier '%s'", n.Name),
				Loc:      n.Loc(),
			})
			return
		}
		r.table.bind(n, sym)
	case *ast.BinaryExpr:
		r.resolveExpr(n.Left, scope)
		r.resolveExpr(n.Right, scope)
	case *ast.AssignExpr:
		r.resolveExpr(n.LHS, scope)
		r.resolveExpr(n.RHS, scope)
	case *ast.UnaryExpr:
		r.resolveExpr(n.Operand, scope)
	case *ast.CallExpr:
		r.resolveExpr(n.Callee, scope)
		for _, a := range n.Args {
			r.resolveExpr(a, scope)
		}
	case *ast.IndexExpr:
		r.resolveExpr(n.Base, scope)
		r.resolveExpr(n.Index, scope)
	case *ast.MemberExpr:
		r.resolveExpr(n.Base, scope)
	case *ast.CastExpr:
		r.resolveExpr(n.Operand, scope)
		r.resolveType(n.Target, scope)
	case *ast.IsExpr:
		r.resolveExpr(n.Operand, scope)
		r.resolveType(n.Target, scope)
	case *ast.SizeofExpr:
		if n.Target != nil {
			r.resolveType(n.Target, scope)
		}
		if n.TargetExpr != nil {
			r.resolveExpr(n.TargetExpr, scope)
		}
	case *ast.AlignofExpr:
		r.resolveType(n.Target, scope)
	case *ast.SpecExpr:
		r.resolveExpr(n.Callee, scope)
		for _, a := range n.Args {
			r.resolveType(a, scope)
		}
	}
}

var primitiveNames = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true, "isize": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "usize": true,
	"f32": true, "f64": true, "char": true, "bool": true, "unit": true,
}

func isPrimitiveName(name string) bool {
	if primitiveNames[name] {
		return true
	}
	if _, _, ok := types.ParseVectorName(name); ok {
		return true
	}
	_, _, _, ok := types.ParseMatrixName(name)
	return ok
}

func (r *Resolver) resolveType(t ast.Type, scope *symtab.Scope) {
	switch n := t.(type) {
	case *ast.MutType:
		r.resolveType(n.Base, scope)
	case *ast.ConstType:
		r.resolveType(n.Base, scope)
	case *ast.PtrType:
		r.resolveType(n.Base, scope)
	case *ast.RefType:
		r.resolveType(n.Base, scope)
	case *ast.OptType:
		r.resolveType(n.Base, scope)
	case *ast.ArrayType:
		r.resolveType(n.Base, scope)
		if n.Length != nil {
			r.resolveExpr(n.Length, scope)
		}
	case *ast.FunType:
		for _, p := range n.Params {
			r.resolveType(p, scope)
		}
		if n.Return != nil {
			r.resolveType(n.Return, scope)
		}
	case *ast.NameType:
		if isPrimitiveName(n.Name) {
			return // built-in scalar names have no declaration node; typecheck maps them directly
		}
		if len(n.Qualifiers) > 0 {
			return // module-qualified names are left unbound; the type checker then reports them as undefined types
		}
		sym, ok := scope.Lookup(n.Name)
		if !ok {
			r.bag.Report(diag.Diagnostic{
				Severity: diag.SeverityError,
				Title:    fmt.Sprintf("undefined type '%s'", n.Name),
				Loc:      n.Loc(),
			})
			return
		}
		r.table.bind(n, sym)
	}
}
