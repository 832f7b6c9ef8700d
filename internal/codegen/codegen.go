// Package codegen defines the boundary the semantic pipeline hands
// off to once a file has been resolved and type-checked: a Backend
// that consumes the typed AST and produces object code. The actual
// code generator (LLVM IR construction and lowering) is treated as an
// external, opaque collaborator — original_source talks to it through
// the LLVM C API, a third-party toolchain this module doesn't vendor
// or reimplement. What lives here is the seam: the interface a real
// LLVM-backed Backend would implement, plus a Dump backend that
// renders the typed AST as readable pseudo-IR, in the spirit of
// lang/ygen/emit.go's Emitter (a thin, writer-based instruction
// emitter) — useful on its own for `-dump-ir`-style diagnostics and as
// a placeholder other Backends can be swapped in for.
package codegen

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/typetable"
)

// Backend consumes one resolved, type-checked file and emits its
// lowered form. A real implementation would build LLVM IR and hand it
// to the LLVM C API for optimization and object emission; Backend
// exists so the rest of the driver never needs to know which one it
// holds.
type Backend interface {
	Emit(file *ast.File, types *typetable.Table) error
}

// DumpBackend renders a typed AST as a flat pseudo-IR listing. It
// performs no real lowering — no register allocation, no control-flow
// graph — it exists for inspection and is what the CLI's --dump-ir
// flag uses.
type DumpBackend struct {
	out *bufio.Writer
}

// NewDumpBackend returns a DumpBackend writing to w.
func NewDumpBackend(w io.Writer) *DumpBackend {
	return &DumpBackend{out: bufio.NewWriter(w)}
}

// Emit writes one line per top-level declaration, naming its resolved
// type where one was recorded.
func (d *DumpBackend) Emit(file *ast.File, types *typetable.Table) error {
	defer d.out.Flush()
	fmt.Fprintf(d.out, "; module %s\n", file.Path)
	for _, decl := range file.Decls {
		d.emitDecl(decl, types, 0)
	}
	return d.out.Flush()
}

func (d *DumpBackend) emitDecl(decl ast.Decl, table *typetable.Table, indent int) {
	pad := indentStr(indent)
	ty, _ := table.Lookup(decl)
	switch n := decl.(type) {
	case *ast.ModDecl:
		fmt.Fprintf(d.out, "%smod %s {\n", pad, n.Name)
		for _, child := range n.Decls {
			d.emitDecl(child, table, indent+1)
		}
		fmt.Fprintf(d.out, "%s}\n", pad)
	case *ast.FunDecl:
		fmt.Fprintf(d.out, "%sdefine %s : %s\n", pad, n.Name, ty)
	case *ast.StructDecl:
		fmt.Fprintf(d.out, "%stype %s = struct\n", pad, n.Name)
	case *ast.UnionDecl:
		fmt.Fprintf(d.out, "%stype %s = union\n", pad, n.Name)
	case *ast.EnumDecl:
		fmt.Fprintf(d.out, "%stype %s = enum\n", pad, n.Name)
	case *ast.VarDecl:
		fmt.Fprintf(d.out, "%sglobal %s : %s\n", pad, n.Name, ty)
	case *ast.ConstDecl:
		fmt.Fprintf(d.out, "%sconstant %s : %s\n", pad, n.Name, ty)
	case *ast.TypeAliasDecl:
		fmt.Fprintf(d.out, "%salias %s : %s\n", pad, n.Name, ty)
	case *ast.UseDecl:
		fmt.Fprintf(d.out, "%suse %v\n", pad, n.Path)
	}
}

func indentStr(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += "  "
	}
	return s
}
