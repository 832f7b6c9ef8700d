// Package sema hosts the translation-unit lifecycle (Environment) and
// the three semantic passes run over one parsed file: name
// resolution, type checking, and control-flow analysis. Each pass is
// its own file/sub-package so it reads and writes only the side
// tables it owns, per spec.md §4.5-4.7.
package sema

import (
	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/symtab"
	"github.com/Baleg00/tau/internal/typetable"
	"github.com/Baleg00/tau/internal/types"
)

// Environment owns one translation unit's per-compile arenas: its AST
// registry, its root scope, its type builder, and its type table. It
// mirrors original_source/inc/compiler/environment.h's lifecycle.
type Environment struct {
	AST       *ast.Registry
	Root      *symtab.Scope
	Types     *types.Builder
	TypeTable *typetable.Table

	valid bool
}

// NewEnvironment returns a fresh, empty Environment ready to receive
// one or more parsed files.
func NewEnvironment() *Environment {
	return &Environment{
		AST:       ast.NewRegistry(),
		Root:      symtab.NewScope(nil),
		Types:     types.NewBuilder(),
		TypeTable: typetable.New(),
		valid:     true,
	}
}

// Merge composes src into dest: dest's root scope absorbs src's root
// symbols (collisions are reported as names, not merged further),
// dest's type table absorbs every src entry, and src is invalidated —
// it must not be used again after Merge returns. This implements
// SPEC_FULL.md's supplemented environment_merge operation.
func Merge(dest, src *Environment) (collisions []string) {
	collisions = dest.Root.Merge(src.Root)
	dest.TypeTable.Merge(src.TypeTable)
	src.valid = false
	return collisions
}

// Valid reports whether this Environment has not been consumed by a
// Merge call as a source.
func (e *Environment) Valid() bool { return e.valid }
