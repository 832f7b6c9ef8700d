// Package typetable implements the AST-node-identity to type
// descriptor map that every semantic pass reads and writes. It
// follows original_source/src/stages/analysis/types/typetable.c's
// contract — a single flat table keyed by node pointer identity,
// upserting on collision — with Go's builtin map standing in for the
// hand-rolled hash buckets, the same substitution made in
// internal/symtab (see DESIGN.md).
package typetable

import (
	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/types"
)

// Table maps AST nodes to their resolved type descriptor.
type Table struct {
	entries map[ast.Node]*types.Descriptor
}

// New returns an empty Table.
func New() *Table {
	return &Table{entries: make(map[ast.Node]*types.Descriptor)}
}

// Insert records desc as node's type, overwriting any previous entry
// and returning it — typetable_insert's upsert contract, unlike
// symtab.Scope.Insert which refuses to overwrite.
func (t *Table) Insert(node ast.Node, desc *types.Descriptor) (previous *types.Descriptor) {
	previous = t.entries[node]
	t.entries[node] = desc
	return previous
}

// Lookup returns node's resolved type, if any.
func (t *Table) Lookup(node ast.Node) (*types.Descriptor, bool) {
	d, ok := t.entries[node]
	return d, ok
}

// Merge copies every entry from src into t, used by
// sema.Merge. Entries for the same node (impossible across
// distinct translation units, since each has its own AST registry)
// would be upserted per Insert's contract.
func (t *Table) Merge(src *Table) {
	for node, desc := range src.entries {
		t.entries[node] = desc
	}
}
