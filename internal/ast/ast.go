// Package ast defines the tagged-union-style AST node families
// (types, expressions, statements, declarations) and the per-compile
// registry that assigns every node a stable identity other stages use
// as a map key (the symbol table's declaration pointers, the type
// table's node-to-descriptor map).
//
// The shape — a narrow interface per family plus an embedded base
// struct carrying the fields every variant needs — follows
// lang/yparse/ast.go, generalized to the full node-kind inventory
// spec.md requires (type nodes, mod/enum/union/generic/defer
// declarations) instead of the teacher's toy-language subset.
package ast

import "github.com/Baleg00/tau/internal/source"

// Node is implemented by every AST node family member. Identity is
// simply Go pointer identity; ID exists only so diagnostics and dumps
// can print a stable, process-independent number instead of a memory
// address.
type Node interface {
	Loc() source.Location
	ID() uint64
}

type base struct {
	loc source.Location
	nid uint64
}

func (b *base) Loc() source.Location { return b.loc }
func (b *base) ID() uint64           { return b.nid }

// Registry assigns increasing IDs to nodes as they're constructed and
// keeps every node reachable for the lifetime of one translation
// unit's compile — the AST's "arena."
type Registry struct {
	next  uint64
	nodes []Node
}

// NewRegistry returns an empty, ready-to-use Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) register(n Node) {
	r.nodes = append(r.nodes, n)
}

func (r *Registry) nextID() uint64 {
	r.next++
	return r.next
}

// Nodes returns every node this registry has handed out, in
// construction order.
func (r *Registry) Nodes() []Node { return r.nodes }

func mk(r *Registry, loc source.Location) base {
	b := base{loc: loc, nid: r.nextID()}
	return b
}

// ============================================================
// Types
// ============================================================

// Type is the family of type-expression nodes appearing in source
// (as opposed to types.Descriptor, the resolved, hash-consed result
// of elaborating a Type node).
type Type interface {
	Node
	typeNode()
}

type baseType struct{ base }

func (*baseType) typeNode() {}

// PrimitiveType names one of the built-in scalar kinds (i8..u64,
// isize, usize, f32, f64, char, bool, unit).
type PrimitiveType struct {
	baseType
	Name string
}

// MutType is `mut T`.
type MutType struct {
	baseType
	Base Type
}

// ConstType is `const T`.
type ConstType struct {
	baseType
	Base Type
}

// PtrType is `*T`.
type PtrType struct {
	baseType
	Base Type
}

// ArrayType is `[N]T`; Length is nil for an unsized/open array.
type ArrayType struct {
	baseType
	Base   Type
	Length Expr
}

// RefType is `&T`.
type RefType struct {
	baseType
	Base Type
}

// OptType is `?T`.
type OptType struct {
	baseType
	Base Type
}

// FunType is a function type, `fun(T, U) -> R`.
type FunType struct {
	baseType
	Params   []Type
	Return   Type
	IsVararg bool
}

// NameType references a user-declared type (struct/union/enum/alias)
// by name, possibly qualified through module members (`mod.Name`).
type NameType struct {
	baseType
	Qualifiers []string
	Name       string
	Args       []Type // generic specialization arguments, empty if none
}

func NewPrimitiveType(r *Registry, loc source.Location, name string) *PrimitiveType {
	n := &PrimitiveType{baseType: baseType{mk(r, loc)}, Name: name}
	r.register(n)
	return n
}

func NewMutType(r *Registry, loc source.Location, b Type) *MutType {
	n := &MutType{baseType: baseType{mk(r, loc)}, Base: b}
	r.register(n)
	return n
}

func NewConstType(r *Registry, loc source.Location, b Type) *ConstType {
	n := &ConstType{baseType: baseType{mk(r, loc)}, Base: b}
	r.register(n)
	return n
}

func NewPtrType(r *Registry, loc source.Location, b Type) *PtrType {
	n := &PtrType{baseType: baseType{mk(r, loc)}, Base: b}
	r.register(n)
	return n
}

func NewArrayType(r *Registry, loc source.Location, b Type, length Expr) *ArrayType {
	n := &ArrayType{baseType: baseType{mk(r, loc)}, Base: b, Length: length}
	r.register(n)
	return n
}

func NewRefType(r *Registry, loc source.Location, b Type) *RefType {
	n := &RefType{baseType: baseType{mk(r, loc)}, Base: b}
	r.register(n)
	return n
}

func NewOptType(r *Registry, loc source.Location, b Type) *OptType {
	n := &OptType{baseType: baseType{mk(r, loc)}, Base: b}
	r.register(n)
	return n
}

func NewFunType(r *Registry, loc source.Location, params []Type, ret Type, vararg bool) *FunType {
	n := &FunType{baseType: baseType{mk(r, loc)}, Params: params, Return: ret, IsVararg: vararg}
	r.register(n)
	return n
}

func NewNameType(r *Registry, loc source.Location, qualifiers []string, name string, args []Type) *NameType {
	n := &NameType{baseType: baseType{mk(r, loc)}, Qualifiers: qualifiers, Name: name, Args: args}
	r.register(n)
	return n
}

// ============================================================
// Expressions
// ============================================================

// Expr is the family of expression nodes.
type Expr interface {
	Node
	exprNode()
}

type baseExpr struct{ base }

func (*baseExpr) exprNode() {}

// BinOp enumerates binary operator kinds (comparison/logical ops
// included; assignment is its own node, see AssignExpr).
type BinOp int

const (
	BinInvalid BinOp = iota
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinMod
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinLAnd
	BinLOr
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinRange // a..b
)

// UnOp enumerates unary operator kinds, split by fixity because the
// same punctuation (`+`, `-`, `*`, `&`) means different things
// depending on shyd.c's prev_term disambiguation.
type UnOp int

const (
	UnInvalid UnOp = iota
	UnNeg
	UnPos
	UnBitNot
	UnLNot
	UnDeref  // *p
	UnAddr   // &x
	UnPreInc // ++x
	UnPreDec // --x
	UnPostInc
	UnPostDec
)

// LitKind is the kind of a literal value.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitChar
	LitBool
	LitNull
)

// LiteralExpr is a literal value token turned into an expression node.
type LiteralExpr struct {
	baseExpr
	Kind LitKind
	Text string
}

// IdentExpr references a name, resolved to a declaration by the name
// resolution pass (not by the parser).
type IdentExpr struct {
	baseExpr
	Name string
}

// BinaryExpr is a non-assigning binary operator application.
type BinaryExpr struct {
	baseExpr
	Op          BinOp
	Left, Right Expr
}

// AssignExpr is `lhs = rhs`. Compound assignment (`+=` etc.) is
// desugared at parse time into AssignExpr{RHS: BinaryExpr{...}} per
// the Open Question decision recorded in DESIGN.md.
type AssignExpr struct {
	baseExpr
	LHS, RHS Expr
}

// UnaryExpr is a unary operator application.
type UnaryExpr struct {
	baseExpr
	Op      UnOp
	Operand Expr
}

// CallExpr is a function call.
type CallExpr struct {
	baseExpr
	Callee Expr
	Args   []Expr
}

// IndexExpr is array/pointer subscripting, `a[i]`.
type IndexExpr struct {
	baseExpr
	Base  Expr
	Index Expr
}

// MemberExpr is field access, `a.b`.
type MemberExpr struct {
	baseExpr
	Base Expr
	Name string
}

// CastExpr is `expr as T`.
type CastExpr struct {
	baseExpr
	Operand Expr
	Target  Type
}

// IsExpr is `expr is T`, the supplemented type-test operator (see
// SPEC_FULL.md's supplemented-features list).
type IsExpr struct {
	baseExpr
	Operand Expr
	Target  Type
}

// SizeofExpr is `sizeof T` or `sizeof(expr)`.
type SizeofExpr struct {
	baseExpr
	Target     Type // non-nil for sizeof T
	TargetExpr Expr // non-nil for sizeof(expr)
}

// AlignofExpr is `alignof T`.
type AlignofExpr struct {
	baseExpr
	Target Type
}

// SpecExpr is generic specialization, `name.<T, U>`. The parser
// builds it; the type checker rejects it (generics are out of scope,
// see DESIGN.md Open Question 4).
type SpecExpr struct {
	baseExpr
	Callee Expr
	Args   []Type
}

func NewLiteralExpr(r *Registry, loc source.Location, kind LitKind, text string) *LiteralExpr {
	n := &LiteralExpr{baseExpr: baseExpr{mk(r, loc)}, Kind: kind, Text: text}
	r.register(n)
	return n
}

func NewIdentExpr(r *Registry, loc source.Location, name string) *IdentExpr {
	n := &IdentExpr{baseExpr: baseExpr{mk(r, loc)}, Name: name}
	r.register(n)
	return n
}

func NewBinaryExpr(r *Registry, loc source.Location, op BinOp, lhs, rhs Expr) *BinaryExpr {
	n := &BinaryExpr{baseExpr: baseExpr{mk(r, loc)}, Op: op, Left: lhs, Right: rhs}
	r.register(n)
	return n
}

func NewAssignExpr(r *Registry, loc source.Location, lhs, rhs Expr) *AssignExpr {
	n := &AssignExpr{baseExpr: baseExpr{mk(r, loc)}, LHS: lhs, RHS: rhs}
	r.register(n)
	return n
}

func NewUnaryExpr(r *Registry, loc source.Location, op UnOp, operand Expr) *UnaryExpr {
	n := &UnaryExpr{baseExpr: baseExpr{mk(r, loc)}, Op: op, Operand: operand}
	r.register(n)
	return n
}

func NewCallExpr(r *Registry, loc source.Location, callee Expr, args []Expr) *CallExpr {
	n := &CallExpr{baseExpr: baseExpr{mk(r, loc)}, Callee: callee, Args: args}
	r.register(n)
	return n
}

func NewIndexExpr(r *Registry, loc source.Location, base_, index Expr) *IndexExpr {
	n := &IndexExpr{baseExpr: baseExpr{mk(r, loc)}, Base: base_, Index: index}
	r.register(n)
	return n
}

func NewMemberExpr(r *Registry, loc source.Location, base_ Expr, name string) *MemberExpr {
	n := &MemberExpr{baseExpr: baseExpr{mk(r, loc)}, Base: base_, Name: name}
	r.register(n)
	return n
}

func NewCastExpr(r *Registry, loc source.Location, operand Expr, target Type) *CastExpr {
	n := &CastExpr{baseExpr: baseExpr{mk(r, loc)}, Operand: operand, Target: target}
	r.register(n)
	return n
}

func NewIsExpr(r *Registry, loc source.Location, operand Expr, target Type) *IsExpr {
	n := &IsExpr{baseExpr: baseExpr{mk(r, loc)}, Operand: operand, Target: target}
	r.register(n)
	return n
}

func NewSizeofExpr(r *Registry, loc source.Location, target Type, targetExpr Expr) *SizeofExpr {
	n := &SizeofExpr{baseExpr: baseExpr{mk(r, loc)}, Target: target, TargetExpr: targetExpr}
	r.register(n)
	return n
}

func NewAlignofExpr(r *Registry, loc source.Location, target Type) *AlignofExpr {
	n := &AlignofExpr{baseExpr: baseExpr{mk(r, loc)}, Target: target}
	r.register(n)
	return n
}

func NewSpecExpr(r *Registry, loc source.Location, callee Expr, args []Type) *SpecExpr {
	n := &SpecExpr{baseExpr: baseExpr{mk(r, loc)}, Callee: callee, Args: args}
	r.register(n)
	return n
}

// ============================================================
// Statements
// ============================================================

// Stmt is the family of statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

type baseStmt struct{ base }

func (*baseStmt) stmtNode() {}

// ExprStmt is an expression evaluated for its side effect.
type ExprStmt struct {
	baseStmt
	X Expr
}

// BlockStmt is a brace-delimited sequence of statements, a
// scope-creating construct for name resolution.
type BlockStmt struct {
	baseStmt
	Stmts []Stmt
}

// IfStmt is `if cond { then } else { else }`.
type IfStmt struct {
	baseStmt
	Cond Expr
	Then *BlockStmt
	Else Stmt // *IfStmt, *BlockStmt, or nil
}

// WhileStmt is `while cond { body }`.
type WhileStmt struct {
	baseStmt
	Cond Expr
	Body *BlockStmt
}

// DoWhileStmt is `do { body } while cond`.
type DoWhileStmt struct {
	baseStmt
	Body *BlockStmt
	Cond Expr
}

// ForStmt is a C-style for loop; any of Init/Cond/Post may be nil.
type ForStmt struct {
	baseStmt
	Init Stmt
	Cond Expr
	Post Stmt
	Body *BlockStmt
}

// ReturnStmt is `return expr?`.
type ReturnStmt struct {
	baseStmt
	Value Expr // nil for bare return
}

// YieldStmt is `yield expr`, producing a block's value.
type YieldStmt struct {
	baseStmt
	Value Expr
}

// BreakStmt is `break`.
type BreakStmt struct{ baseStmt }

// ContinueStmt is `continue`.
type ContinueStmt struct{ baseStmt }

// DeferStmt is `defer stmt`: the deferred statement can be a bare
// call (`defer close(f);`) or a block (`defer { a(); b(); }`), per
// original_source/src/stmt/defer.c's ast_stmt_defer_t, which wraps a
// general statement rather than just a call expression.
type DeferStmt struct {
	baseStmt
	Body Stmt
}

func NewExprStmt(r *Registry, loc source.Location, x Expr) *ExprStmt {
	n := &ExprStmt{baseStmt: baseStmt{mk(r, loc)}, X: x}
	r.register(n)
	return n
}

func NewBlockStmt(r *Registry, loc source.Location, stmts []Stmt) *BlockStmt {
	n := &BlockStmt{baseStmt: baseStmt{mk(r, loc)}, Stmts: stmts}
	r.register(n)
	return n
}

func NewIfStmt(r *Registry, loc source.Location, cond Expr, then *BlockStmt, els Stmt) *IfStmt {
	n := &IfStmt{baseStmt: baseStmt{mk(r, loc)}, Cond: cond, Then: then, Else: els}
	r.register(n)
	return n
}

func NewWhileStmt(r *Registry, loc source.Location, cond Expr, body *BlockStmt) *WhileStmt {
	n := &WhileStmt{baseStmt: baseStmt{mk(r, loc)}, Cond: cond, Body: body}
	r.register(n)
	return n
}

func NewDoWhileStmt(r *Registry, loc source.Location, body *BlockStmt, cond Expr) *DoWhileStmt {
	n := &DoWhileStmt{baseStmt: baseStmt{mk(r, loc)}, Body: body, Cond: cond}
	r.register(n)
	return n
}

func NewForStmt(r *Registry, loc source.Location, init Stmt, cond Expr, post Stmt, body *BlockStmt) *ForStmt {
	n := &ForStmt{baseStmt: baseStmt{mk(r, loc)}, Init: init, Cond: cond, Post: post, Body: body}
	r.register(n)
	return n
}

func NewReturnStmt(r *Registry, loc source.Location, value Expr) *ReturnStmt {
	n := &ReturnStmt{baseStmt: baseStmt{mk(r, loc)}, Value: value}
	r.register(n)
	return n
}

func NewYieldStmt(r *Registry, loc source.Location, value Expr) *YieldStmt {
	n := &YieldStmt{baseStmt: baseStmt{mk(r, loc)}, Value: value}
	r.register(n)
	return n
}

func NewBreakStmt(r *Registry, loc source.Location) *BreakStmt {
	n := &BreakStmt{baseStmt: baseStmt{mk(r, loc)}}
	r.register(n)
	return n
}

func NewContinueStmt(r *Registry, loc source.Location) *ContinueStmt {
	n := &ContinueStmt{baseStmt: baseStmt{mk(r, loc)}}
	r.register(n)
	return n
}

func NewDeferStmt(r *Registry, loc source.Location, body Stmt) *DeferStmt {
	n := &DeferStmt{baseStmt: baseStmt{mk(r, loc)}, Body: body}
	r.register(n)
	return n
}

// ============================================================
// Declarations
// ============================================================

// Decl is the family of declaration nodes.
type Decl interface {
	Node
	declNode()
}

type baseDecl struct{ base }

func (*baseDecl) declNode() {}

// ModDecl is `mod name { decls }`, a scope-creating namespace.
type ModDecl struct {
	baseDecl
	Name  string
	Decls []Decl
}

// UseDecl is an import, `use path`.
type UseDecl struct {
	baseDecl
	Path []string
}

// Param is a function parameter.
type Param struct {
	base
	Name string
	Type Type
}

// GenericParam is a generic type parameter, `T` in `fun f.<T>(...)`.
// Parsed but never instantiated (generics are out of scope; see
// SPEC_FULL.md supplemented-features note on SpecExpr).
type GenericParam struct {
	base
	Name string
}

// FunDecl is a function declaration/definition.
type FunDecl struct {
	baseDecl
	Pub      bool
	Extern   bool
	Name     string
	Generics []*GenericParam
	Params   []*Param
	Return   Type
	IsVararg bool
	Body     *BlockStmt // nil for an extern declaration
}

// StructField is one field of a struct or union declaration.
type StructField struct {
	base
	Name string
	Type Type
}

// StructDecl is a struct declaration.
type StructDecl struct {
	baseDecl
	Pub      bool
	Name     string
	Generics []*GenericParam
	Fields   []*StructField
}

// UnionDecl is a union declaration.
type UnionDecl struct {
	baseDecl
	Pub    bool
	Name   string
	Fields []*StructField
}

// EnumConstant is one member of an enum.
type EnumConstant struct {
	base
	Name  string
	Value Expr // nil if implicit
}

// EnumDecl is an enum declaration.
type EnumDecl struct {
	baseDecl
	Pub       bool
	Name      string
	Constants []*EnumConstant
}

// VarDecl is `var name: T = init`.
type VarDecl struct {
	baseDecl
	Pub  bool
	Mut  bool
	Name string
	Type Type // nil if inferred from Init
	Init Expr
}

// stmtNode lets a VarDecl double as a local-variable statement inside
// a function body, the same declaration node serving both roles
// (DESIGN.md: generalized from the teacher's separate LocalDecl
// interface).
func (*VarDecl) stmtNode() {}

// ConstDecl is `const name: T = init`.
type ConstDecl struct {
	baseDecl
	Pub  bool
	Name string
	Type Type
	Init Expr
}

// stmtNode lets a ConstDecl double as a local-constant statement, the
// same reasoning as VarDecl.stmtNode.
func (*ConstDecl) stmtNode() {}

// TypeAliasDecl is `type Name = T`.
type TypeAliasDecl struct {
	baseDecl
	Pub  bool
	Name string
	Type Type
}

func NewModDecl(r *Registry, loc source.Location, name string, decls []Decl) *ModDecl {
	n := &ModDecl{baseDecl: baseDecl{mk(r, loc)}, Name: name, Decls: decls}
	r.register(n)
	return n
}

func NewUseDecl(r *Registry, loc source.Location, path []string) *UseDecl {
	n := &UseDecl{baseDecl: baseDecl{mk(r, loc)}, Path: path}
	r.register(n)
	return n
}

func NewParam(r *Registry, loc source.Location, name string, typ Type) *Param {
	n := &Param{base: mk(r, loc), Name: name, Type: typ}
	r.register(n)
	return n
}

func NewGenericParam(r *Registry, loc source.Location, name string) *GenericParam {
	n := &GenericParam{base: mk(r, loc), Name: name}
	r.register(n)
	return n
}

func NewFunDecl(r *Registry, loc source.Location, name string) *FunDecl {
	n := &FunDecl{baseDecl: baseDecl{mk(r, loc)}, Name: name}
	r.register(n)
	return n
}

func NewStructField(r *Registry, loc source.Location, name string, typ Type) *StructField {
	n := &StructField{base: mk(r, loc), Name: name, Type: typ}
	r.register(n)
	return n
}

func NewStructDecl(r *Registry, loc source.Location, name string) *StructDecl {
	n := &StructDecl{baseDecl: baseDecl{mk(r, loc)}, Name: name}
	r.register(n)
	return n
}

func NewUnionDecl(r *Registry, loc source.Location, name string) *UnionDecl {
	n := &UnionDecl{baseDecl: baseDecl{mk(r, loc)}, Name: name}
	r.register(n)
	return n
}

func NewEnumConstant(r *Registry, loc source.Location, name string, value Expr) *EnumConstant {
	n := &EnumConstant{base: mk(r, loc), Name: name, Value: value}
	r.register(n)
	return n
}

func NewEnumDecl(r *Registry, loc source.Location, name string) *EnumDecl {
	n := &EnumDecl{baseDecl: baseDecl{mk(r, loc)}, Name: name}
	r.register(n)
	return n
}

func NewVarDecl(r *Registry, loc source.Location, name string, typ Type, init Expr) *VarDecl {
	n := &VarDecl{baseDecl: baseDecl{mk(r, loc)}, Name: name, Type: typ, Init: init}
	r.register(n)
	return n
}

func NewConstDecl(r *Registry, loc source.Location, name string, typ Type, init Expr) *ConstDecl {
	n := &ConstDecl{baseDecl: baseDecl{mk(r, loc)}, Name: name, Type: typ, Init: init}
	r.register(n)
	return n
}

func NewTypeAliasDecl(r *Registry, loc source.Location, name string, typ Type) *TypeAliasDecl {
	n := &TypeAliasDecl{baseDecl: baseDecl{mk(r, loc)}, Name: name, Type: typ}
	r.register(n)
	return n
}

// File is the root of one translation unit's AST.
type File struct {
	base
	Path  string
	Decls []Decl
}

func NewFile(r *Registry, loc source.Location, path string, decls []Decl) *File {
	n := &File{base: mk(r, loc), Path: path, Decls: decls}
	r.register(n)
	return n
}
