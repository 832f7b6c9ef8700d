package typecheck

import (
	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/types"
)

func (c *Checker) checkExpr(e ast.Expr) *types.Descriptor {
	switch n := e.(type) {
	case *ast.LiteralExpr:
		return c.checkLiteral(n)
	case *ast.IdentExpr:
		return c.checkIdent(n)
	case *ast.BinaryExpr:
		return c.checkBinary(n)
	case *ast.AssignExpr:
		return c.checkAssign(n)
	case *ast.UnaryExpr:
		return c.checkUnary(n)
	case *ast.CallExpr:
		return c.checkCall(n)
	case *ast.IndexExpr:
		return c.checkIndex(n)
	case *ast.MemberExpr:
		return c.checkMember(n)
	case *ast.CastExpr:
		return c.checkCast(n)
	case *ast.IsExpr:
		c.checkExpr(n.Operand)
		c.resolveType(n.Target)
		return c.set(n, c.builder.Primitive(types.Bool))
	case *ast.SizeofExpr:
		if n.Target != nil {
			c.resolveType(n.Target)
		}
		if n.TargetExpr != nil {
			c.checkExpr(n.TargetExpr)
		}
		return c.set(n, c.builder.Primitive(types.Usize))
	case *ast.AlignofExpr:
		c.resolveType(n.Target)
		return c.set(n, c.builder.Primitive(types.Usize))
	case *ast.SpecExpr:
		// generics are out of scope (DESIGN.md Open Question 4); still walk
		// children so later passes see consistent, poisoned types.
		c.checkExpr(n.Callee)
		for _, a := range n.Args {
			c.resolveType(a)
		}
		c.report(n, "generic specialization is not supported")
		return c.poison(n)
	default:
		return c.poison(e)
	}
}

func (c *Checker) checkLiteral(n *ast.LiteralExpr) *types.Descriptor {
	switch n.Kind {
	case ast.LitInt:
		return c.set(n, c.builder.Primitive(types.I32))
	case ast.LitFloat:
		return c.set(n, c.builder.Primitive(types.F64))
	case ast.LitString:
		base := c.builder.Primitive(types.Char)
		constCh, _ := c.builder.Const(base)
		ptr, _ := c.builder.Ptr(constCh)
		return c.set(n, ptr)
	case ast.LitChar:
		return c.set(n, c.builder.Primitive(types.Char))
	case ast.LitBool:
		return c.set(n, c.builder.Primitive(types.Bool))
	case ast.LitNull:
		return c.set(n, c.builder.Primitive(types.Null))
	default:
		return c.poison(n)
	}
}

func (c *Checker) checkIdent(n *ast.IdentExpr) *types.Descriptor {
	sym, ok := c.resolved.Lookup(n)
	if !ok {
		// name resolution already reported this; avoid a second diagnostic.
		return c.poison(n)
	}
	declTy, ok := c.table.Lookup(sym.Node)
	if !ok {
		if declNode, isDecl := sym.Node.(ast.Decl); isDecl {
			c.checkDecl(declNode)
			declTy, ok = c.table.Lookup(sym.Node)
		}
	}
	if !ok || declTy == nil {
		return c.poison(n)
	}
	return c.set(n, declTy)
}

func (c *Checker) checkBinary(n *ast.BinaryExpr) *types.Descriptor {
	lhs := c.checkExpr(n.Left)
	rhs := c.checkExpr(n.Right)

	switch n.Op {
	case ast.BinLAnd, ast.BinLOr:
		boolTy := c.builder.Primitive(types.Bool)
		if types.Underlying(lhs).Kind != types.Bool || types.Underlying(rhs).Kind != types.Bool {
			c.report(n, "operands of a logical operator must be bool, got %s and %s", lhs, rhs)
			return c.poison(n)
		}
		return c.set(n, boolTy)
	case ast.BinEq, ast.BinNe, ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
		if !c.comparable(lhs, rhs) {
			c.report(n, "cannot compare %s and %s", lhs, rhs)
			return c.poison(n)
		}
		return c.set(n, c.builder.Primitive(types.Bool))
	case ast.BinRange:
		if !types.IsInteger(types.Underlying(lhs)) || !types.IsInteger(types.Underlying(rhs)) {
			c.report(n, "range bounds must be integers, got %s and %s", lhs, rhs)
			return c.poison(n)
		}
		return c.set(n, lhs)
	default:
		return c.set(n, c.checkArithmetic(n, lhs, rhs))
	}
}

func (c *Checker) checkArithmetic(n *ast.BinaryExpr, lhs, rhs *types.Descriptor) *types.Descriptor {
	ulhs, urhs := types.Underlying(lhs), types.Underlying(rhs)

	if n.Op == ast.BinAdd && ulhs.Kind == types.Ptr {
		if !types.IsInteger(urhs) {
			c.report(n, "pointer arithmetic requires an integer offset, got %s", rhs)
			return c.poison(n)
		}
		return lhs
	}
	switch n.Op {
	case ast.BinBitAnd, ast.BinBitOr, ast.BinBitXor, ast.BinShl, ast.BinShr:
		if !types.IsInteger(ulhs) || !types.IsInteger(urhs) {
			c.report(n, "bitwise operators require integer operands, got %s and %s", lhs, rhs)
			return c.poison(n)
		}
		return types.ArithmeticPromote(c.builder, ulhs, urhs)
	}

	if types.IsVector(ulhs) || types.IsMatrix(ulhs) || types.IsVector(urhs) || types.IsMatrix(urhs) {
		return c.checkVectorOrMatrix(n, lhs, rhs, ulhs, urhs)
	}

	if !types.IsArithmetic(ulhs) || !types.IsArithmetic(urhs) {
		c.report(n, "arithmetic operator requires numeric operands, got %s and %s", lhs, rhs)
		return c.poison(n)
	}
	// Signedness mismatch never affects the result but is surfaced as a
	// warning at the call site (spec.md §4.4).
	if types.IsInteger(ulhs) && types.IsInteger(urhs) && types.IsSigned(ulhs) != types.IsSigned(urhs) {
		c.warn(n, "mixed signedness in arithmetic operation between %s and %s", lhs, rhs)
	}
	return types.ArithmeticPromote(c.builder, ulhs, urhs)
}

// checkVectorOrMatrix implements spec.md §4.4's vector/matrix operator
// contract: vector⊕scalar and matrix⊕scalar broadcast for every
// arithmetic operator, producing a result of the same cardinality/shape;
// `*` additionally admits vector×vector (Hadamard, same cardinality)
// and matrix×matrix, whose shapes must satisfy (R×C) × (C×K) → (R×K).
// Grounded on original_source/src/ast/expr/op/bin/mul.c and sub.c's
// dedicated matrix-scalar/matrix-matrix branches.
func (c *Checker) checkVectorOrMatrix(n *ast.BinaryExpr, lhs, rhs, ulhs, urhs *types.Descriptor) *types.Descriptor {
	switch {
	case types.IsVector(ulhs) && types.IsVector(urhs):
		if n.Op != ast.BinMul {
			c.report(n, "vector operands are only valid with '*', got %s and %s", lhs, rhs)
			return c.poison(n)
		}
		if ulhs.Length != urhs.Length {
			c.report(n, "vector cardinality mismatch: %s and %s", lhs, rhs)
			return c.poison(n)
		}
		elem := types.ArithmeticPromote(c.builder, types.Underlying(ulhs.Base), types.Underlying(urhs.Base))
		v, err := c.builder.Vec(elem, ulhs.Length)
		if err != nil {
			c.report(n, "%s", err)
			return c.poison(n)
		}
		return v

	case types.IsMatrix(ulhs) && types.IsMatrix(urhs):
		if n.Op != ast.BinMul {
			c.report(n, "matrix operands are only valid with '*', got %s and %s", lhs, rhs)
			return c.poison(n)
		}
		if ulhs.Cols != urhs.Rows {
			c.report(n, "matrix multiplication shape mismatch: %s and %s", lhs, rhs)
			return c.poison(n)
		}
		elem := types.ArithmeticPromote(c.builder, types.Underlying(ulhs.Base), types.Underlying(urhs.Base))
		m, err := c.builder.Mat(elem, ulhs.Rows, urhs.Cols)
		if err != nil {
			c.report(n, "%s", err)
			return c.poison(n)
		}
		return m

	case types.IsVector(ulhs) && types.IsArithmetic(urhs):
		elem := types.ArithmeticPromote(c.builder, types.Underlying(ulhs.Base), urhs)
		v, err := c.builder.Vec(elem, ulhs.Length)
		if err != nil {
			c.report(n, "%s", err)
			return c.poison(n)
		}
		return v
	case types.IsArithmetic(ulhs) && types.IsVector(urhs):
		elem := types.ArithmeticPromote(c.builder, ulhs, types.Underlying(urhs.Base))
		v, err := c.builder.Vec(elem, urhs.Length)
		if err != nil {
			c.report(n, "%s", err)
			return c.poison(n)
		}
		return v

	case types.IsMatrix(ulhs) && types.IsArithmetic(urhs):
		elem := types.ArithmeticPromote(c.builder, types.Underlying(ulhs.Base), urhs)
		m, err := c.builder.Mat(elem, ulhs.Rows, ulhs.Cols)
		if err != nil {
			c.report(n, "%s", err)
			return c.poison(n)
		}
		return m
	case types.IsArithmetic(ulhs) && types.IsMatrix(urhs):
		elem := types.ArithmeticPromote(c.builder, ulhs, types.Underlying(urhs.Base))
		m, err := c.builder.Mat(elem, urhs.Rows, urhs.Cols)
		if err != nil {
			c.report(n, "%s", err)
			return c.poison(n)
		}
		return m

	default:
		c.report(n, "incompatible vector/matrix operands %s and %s", lhs, rhs)
		return c.poison(n)
	}
}

func (c *Checker) comparable(lhs, rhs *types.Descriptor) bool {
	if types.IsArithmetic(types.Underlying(lhs)) && types.IsArithmetic(types.Underlying(rhs)) {
		return true
	}
	return types.IsImplicitlyConvertible(lhs, rhs) || types.IsImplicitlyConvertible(rhs, lhs)
}

func (c *Checker) checkAssign(n *ast.AssignExpr) *types.Descriptor {
	lhs := c.checkExpr(n.LHS)
	rhs := c.checkExpr(n.RHS)
	if !c.assignableExpr(rhs, lhs, n.RHS) {
		c.report(n, "cannot assign value of type %s to %s", rhs, lhs)
		return c.set(n, c.poison(n))
	}
	return c.set(n, lhs)
}

func (c *Checker) assignableExpr(from, to *types.Descriptor, expr ast.Expr) bool {
	if lit, ok := expr.(*ast.LiteralExpr); ok && (lit.Kind == ast.LitInt || lit.Kind == ast.LitFloat) {
		return types.IsImplicitlyConvertibleRelaxed(from, types.RemoveConstMut(to))
	}
	return types.IsImplicitlyConvertible(from, types.RemoveConstMut(to))
}

func (c *Checker) checkUnary(n *ast.UnaryExpr) *types.Descriptor {
	operand := c.checkExpr(n.Operand)
	u := types.Underlying(operand)

	switch n.Op {
	case ast.UnNeg, ast.UnPos:
		if !types.IsArithmetic(u) {
			c.report(n, "unary %s requires a numeric operand, got %s", unOpSymbol(n.Op), operand)
			return c.set(n, c.poison(n))
		}
		return c.set(n, operand)
	case ast.UnBitNot:
		if !types.IsInteger(u) {
			c.report(n, "'~' requires an integer operand, got %s", operand)
			return c.set(n, c.poison(n))
		}
		return c.set(n, operand)
	case ast.UnLNot:
		if u.Kind != types.Bool {
			c.report(n, "'!' requires a bool operand, got %s", operand)
			return c.set(n, c.poison(n))
		}
		return c.set(n, operand)
	case ast.UnDeref:
		if u.Kind != types.Ptr {
			c.report(n, "cannot dereference non-pointer type %s", operand)
			return c.set(n, c.poison(n))
		}
		return c.set(n, u.Base)
	case ast.UnAddr:
		ptr, err := c.builder.Ptr(operand)
		if err != nil {
			c.report(n, "%s", err)
			return c.set(n, c.poison(n))
		}
		return c.set(n, ptr)
	case ast.UnPreInc, ast.UnPreDec, ast.UnPostInc, ast.UnPostDec:
		if !types.IsArithmetic(u) && u.Kind != types.Ptr {
			c.report(n, "increment/decrement requires a numeric or pointer operand, got %s", operand)
			return c.set(n, c.poison(n))
		}
		return c.set(n, operand)
	default:
		return c.set(n, c.poison(n))
	}
}

func unOpSymbol(op ast.UnOp) string {
	switch op {
	case ast.UnNeg:
		return "-"
	case ast.UnPos:
		return "+"
	default:
		return "?"
	}
}

func (c *Checker) checkCall(n *ast.CallExpr) *types.Descriptor {
	calleeTy := c.checkExpr(n.Callee)
	argTys := make([]*types.Descriptor, len(n.Args))
	for i, a := range n.Args {
		argTys[i] = c.checkExpr(a)
	}

	fn := types.UnderlyingCallable(calleeTy)
	if fn == nil {
		if calleeTy.Kind != types.Error {
			c.report(n, "cannot call a value of type %s", calleeTy)
		}
		return c.set(n, c.poison(n))
	}

	if len(n.Args) < len(fn.Params) || (!fn.IsVararg && len(n.Args) > len(fn.Params)) {
		c.report(n, "call has %d argument(s), expected %d", len(n.Args), len(fn.Params))
		return c.set(n, c.poison(n))
	}
	for i, param := range fn.Params {
		if !c.assignableExpr(argTys[i], param, n.Args[i]) {
			c.report(n.Args[i], "argument %d: cannot use value of type %s as %s", i+1, argTys[i], param)
		}
	}
	return c.set(n, fn.Return)
}

func (c *Checker) checkIndex(n *ast.IndexExpr) *types.Descriptor {
	base := c.checkExpr(n.Base)
	idx := c.checkExpr(n.Index)
	if !types.IsInteger(types.Underlying(idx)) {
		c.report(n.Index, "array index must be an integer, got %s", idx)
	}
	u := types.Underlying(base)
	switch u.Kind {
	case types.Array, types.Ptr:
		return c.set(n, u.Base)
	default:
		if u.Kind != types.Error {
			c.report(n, "cannot index into type %s", base)
		}
		return c.set(n, c.poison(n))
	}
}

func (c *Checker) checkMember(n *ast.MemberExpr) *types.Descriptor {
	base := c.checkExpr(n.Base)
	u := types.Underlying(base)
	if !types.IsComposite(u) {
		if u.Kind != types.Error {
			c.report(n, "cannot access field '%s' on non-struct type %s", n.Name, base)
		}
		return c.set(n, c.poison(n))
	}
	names := fieldNames(u.Node)
	for i, name := range names {
		if name == n.Name && i < len(u.Fields) {
			return c.set(n, u.Fields[i])
		}
	}
	c.report(n, "type %s has no field '%s'", base, n.Name)
	return c.set(n, c.poison(n))
}

func fieldNames(node ast.Node) []string {
	switch n := node.(type) {
	case *ast.StructDecl:
		names := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			names[i] = f.Name
		}
		return names
	case *ast.UnionDecl:
		names := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			names[i] = f.Name
		}
		return names
	default:
		return nil
	}
}

func (c *Checker) checkCast(n *ast.CastExpr) *types.Descriptor {
	from := c.checkExpr(n.Operand)
	to := c.resolveType(n.Target)
	if !c.castable(from, to) {
		c.report(n, "cannot cast value of type %s to %s", from, to)
		return c.set(n, c.poison(n))
	}
	return c.set(n, to)
}

// castable allows any arithmetic-to-arithmetic conversion (narrowing
// included, unlike plain assignment), plus pointer-to-pointer and the
// always-safe implicit-conversion cases.
func (c *Checker) castable(from, to *types.Descriptor) bool {
	if types.IsImplicitlyConvertible(from, to) {
		return true
	}
	uf, ut := types.Underlying(from), types.Underlying(to)
	if types.IsArithmetic(uf) && types.IsArithmetic(ut) {
		return true
	}
	if uf.Kind == types.Ptr && ut.Kind == types.Ptr {
		return true
	}
	if uf.Kind == types.Ptr && types.IsInteger(ut) {
		return true
	}
	if types.IsInteger(uf) && ut.Kind == types.Ptr {
		return true
	}
	return false
}
