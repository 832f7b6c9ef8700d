package typecheck

import (
	"strconv"
	"strings"

	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/types"
)

// resolveType elaborates an ast.Type node into its hash-consed
// types.Descriptor, recording the result in the type table the same
// as expressions (so dumps and later passes can ask "what did this
// syntactic type mean" uniformly for both families).
func (c *Checker) resolveType(t ast.Type) *types.Descriptor {
	switch n := t.(type) {
	case *ast.PrimitiveType:
		return c.set(n, c.primitiveKind(n.Name))
	case *ast.MutType:
		base := c.resolveType(n.Base)
		d, err := c.builder.Mut(base)
		if err != nil {
			c.report(n, "%s", err)
			return c.poison(n)
		}
		return c.set(n, d)
	case *ast.ConstType:
		base := c.resolveType(n.Base)
		d, err := c.builder.Const(base)
		if err != nil {
			c.report(n, "%s", err)
			return c.poison(n)
		}
		return c.set(n, d)
	case *ast.PtrType:
		base := c.resolveType(n.Base)
		d, err := c.builder.Ptr(base)
		if err != nil {
			c.report(n, "%s", err)
			return c.poison(n)
		}
		return c.set(n, d)
	case *ast.RefType:
		base := c.resolveType(n.Base)
		d, err := c.builder.Ref(base)
		if err != nil {
			c.report(n, "%s", err)
			return c.poison(n)
		}
		return c.set(n, d)
	case *ast.OptType:
		base := c.resolveType(n.Base)
		d, err := c.builder.Opt(base)
		if err != nil {
			c.report(n, "%s", err)
			return c.poison(n)
		}
		return c.set(n, d)
	case *ast.ArrayType:
		base := c.resolveType(n.Base)
		length := int64(0)
		if n.Length != nil {
			length = c.constEvalInt(n.Length)
		}
		d, err := c.builder.Array(base, length)
		if err != nil {
			c.report(n, "%s", err)
			return c.poison(n)
		}
		return c.set(n, d)
	case *ast.FunType:
		params := make([]*types.Descriptor, len(n.Params))
		for i, p := range n.Params {
			params[i] = c.resolveType(p)
		}
		ret := c.builder.Primitive(types.Unit)
		if n.Return != nil {
			ret = c.resolveType(n.Return)
		}
		return c.set(n, c.builder.Fun(params, ret, n.IsVararg, types.CallConvDefault))
	case *ast.NameType:
		return c.resolveNameType(n)
	default:
		return c.builder.ErrorType()
	}
}

func (c *Checker) primitiveKind(name string) *types.Descriptor {
	k, ok := primitiveKindByName[name]
	if !ok {
		return c.builder.ErrorType()
	}
	return c.builder.Primitive(k)
}

var primitiveKindByName = map[string]types.Kind{
	"i8": types.I8, "i16": types.I16, "i32": types.I32, "i64": types.I64, "isize": types.Isize,
	"u8": types.U8, "u16": types.U16, "u32": types.U32, "u64": types.U64, "usize": types.Usize,
	"f32": types.F32, "f64": types.F64, "char": types.Char, "bool": types.Bool, "unit": types.Unit,
}

func (c *Checker) resolveNameType(n *ast.NameType) *types.Descriptor {
	if k, ok := primitiveKindByName[n.Name]; ok {
		return c.set(n, c.builder.Primitive(k))
	}
	if card, elemName, ok := types.ParseVectorName(n.Name); ok {
		elem := c.primitiveKind(elemName)
		d, err := c.builder.Vec(elem, card)
		if err != nil {
			c.report(n, "%s", err)
			return c.poison(n)
		}
		return c.set(n, d)
	}
	if rows, cols, elemName, ok := types.ParseMatrixName(n.Name); ok {
		elem := c.primitiveKind(elemName)
		d, err := c.builder.Mat(elem, rows, cols)
		if err != nil {
			c.report(n, "%s", err)
			return c.poison(n)
		}
		return c.set(n, d)
	}
	sym, ok := c.resolved.Lookup(n)
	if !ok {
		c.report(n, "undefined type '%s'", n.Name)
		return c.poison(n)
	}
	switch decl := sym.Node.(type) {
	case *ast.StructDecl:
		return c.set(n, c.declType(decl))
	case *ast.UnionDecl:
		return c.set(n, c.declType(decl))
	case *ast.EnumDecl:
		return c.set(n, c.declType(decl))
	case *ast.TypeAliasDecl:
		return c.set(n, c.resolveType(decl.Type))
	case *ast.GenericParam:
		c.report(n, "generic types are not supported")
		return c.poison(n)
	default:
		c.report(n, "'%s' does not name a type", n.Name)
		return c.poison(n)
	}
}

// declType returns (building it on first use) the nominal descriptor
// for a struct/union/enum declaration, filling in field types once.
func (c *Checker) declType(decl ast.Decl) *types.Descriptor {
	switch n := decl.(type) {
	case *ast.StructDecl:
		d := c.builder.Struct(n)
		if existing, ok := c.table.Lookup(n); ok {
			return existing
		}
		c.table.Insert(n, d)
		fields := make([]*types.Descriptor, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = c.resolveType(f.Type)
		}
		d.SetFields(fields)
		return d
	case *ast.UnionDecl:
		d := c.builder.Union(n)
		if existing, ok := c.table.Lookup(n); ok {
			return existing
		}
		c.table.Insert(n, d)
		fields := make([]*types.Descriptor, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = c.resolveType(f.Type)
		}
		d.SetFields(fields)
		return d
	case *ast.EnumDecl:
		d := c.builder.Enum(n)
		c.table.Insert(n, d)
		return d
	default:
		return c.builder.ErrorType()
	}
}

// constEvalInt evaluates a compile-time-constant integer expression
// (currently just literals), used for array lengths. Anything more
// complex reports an error and yields 0 — array-length constant
// folding beyond literals is future work, not a spec.md requirement.
func (c *Checker) constEvalInt(e ast.Expr) int64 {
	lit, ok := e.(*ast.LiteralExpr)
	if !ok || lit.Kind != ast.LitInt {
		c.report(e, "array length must be a constant integer")
		return 0
	}
	text := strings.ReplaceAll(lit.Text, "_", "")
	v, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		c.report(e, "invalid array length '%s'", lit.Text)
		return 0
	}
	return v
}
