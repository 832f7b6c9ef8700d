// Package symtab implements the scope tree used by name resolution.
// It follows original_source/src/stages/analysis/symtable.c's
// contract exactly (non-overwriting insert returning the colliding
// symbol, parent-climbing lookup, single-scope get) while replacing
// its hand-rolled hash buckets with Go's built-in map, since Go has
// no need for C's manual load-factor bookkeeping (see DESIGN.md).
package symtab

import "github.com/Baleg00/tau/internal/ast"

// Symbol binds a name to the declaration node that introduced it.
type Symbol struct {
	Name string
	Node ast.Node
}

// Scope is one node of the scope tree. The root scope of a
// translation unit has a nil Parent.
type Scope struct {
	Parent   *Scope
	Children []*Scope
	symbols  map[string]*Symbol
}

// NewScope creates a scope whose parent is parent (nil for a root
// scope) and registers it as one of parent's children, mirroring
// symtable_init's self-registration.
func NewScope(parent *Scope) *Scope {
	s := &Scope{Parent: parent, symbols: make(map[string]*Symbol)}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Insert adds sym to this scope unless a symbol with the same name
// already exists in this scope (not any ancestor), in which case it
// returns the existing symbol and leaves the scope unchanged —
// exactly symtable_insert's non-overwriting collision contract. The
// caller distinguishes "inserted" from "redeclaration" by checking
// whether the returned symbol is sym itself.
func (s *Scope) Insert(sym *Symbol) *Symbol {
	if existing, ok := s.symbols[sym.Name]; ok {
		return existing
	}
	s.symbols[sym.Name] = sym
	return sym
}

// Get looks up name in this scope only, not its ancestors.
func (s *Scope) Get(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Lookup walks from this scope up through ancestors until name is
// found or the root is exhausted.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if sym, ok := sc.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// Merge copies every symbol from src into s, reporting names that
// already exist in s as collisions (used by sema.Merge,
// SPEC_FULL.md's supplemented environment_merge operation). It does
// not recurse into child scopes — only root-level symbol tables are
// merged when two translation units combine.
func (s *Scope) Merge(src *Scope) (collisions []string) {
	for name, sym := range src.symbols {
		if _, exists := s.symbols[name]; exists {
			collisions = append(collisions, name)
			continue
		}
		s.symbols[name] = sym
	}
	return collisions
}
