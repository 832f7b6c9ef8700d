package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Mangle produces a deterministic, injective textual encoding of d,
// following original_source's mangling scheme: a short letter code
// per modifier/primitive kind, composite types prefixed by their
// element count, declared types by their node identity's ordinal.
//
// Two structurally distinct descriptors never mangle to the same
// string; two hash-consed-equal descriptors always do (trivially,
// since they're the same pointer and mangling is pure).
func Mangle(d *Descriptor) string {
	var sb strings.Builder
	mangle(&sb, d)
	return sb.String()
}

func mangle(sb *strings.Builder, d *Descriptor) {
	switch d.Kind {
	case Mut:
		sb.WriteByte('M')
		mangle(sb, d.Base)
	case Const:
		sb.WriteByte('C')
		mangle(sb, d.Base)
	case Ptr:
		sb.WriteByte('P')
		mangle(sb, d.Base)
	case Ref:
		sb.WriteByte('R')
		mangle(sb, d.Base)
	case Opt:
		sb.WriteByte('O')
		mangle(sb, d.Base)
	case Array:
		// Negative lengths can never reach here: Builder.Array rejects
		// them before a Descriptor is constructed (DESIGN.md Open
		// Question 1), so this is an invariant, not a recoverable path.
		if d.Length < 0 {
			panic("types: mangle observed a negative array length")
		}
		sb.WriteByte('A')
		sb.WriteString(strconv.FormatInt(d.Length, 10))
		sb.WriteByte('_')
		mangle(sb, d.Base)
	case Vec:
		fmt.Fprintf(sb, "v%d_", d.Length)
		mangle(sb, d.Base)
	case Mat:
		fmt.Fprintf(sb, "m%dx%d_", d.Rows, d.Cols)
		mangle(sb, d.Base)
	case I8:
		sb.WriteString("i8")
	case I16:
		sb.WriteString("i16")
	case I32:
		sb.WriteString("i32")
	case I64:
		sb.WriteString("i64")
	case Isize:
		sb.WriteString("is")
	case U8:
		sb.WriteString("u8")
	case U16:
		sb.WriteString("u16")
	case U32:
		sb.WriteString("u32")
	case U64:
		sb.WriteString("u64")
	case Usize:
		sb.WriteString("us")
	case F32:
		sb.WriteString("f32")
	case F64:
		sb.WriteString("f64")
	case C64:
		sb.WriteString("c64")
	case C128:
		sb.WriteString("c128")
	case Char:
		sb.WriteString("ch")
	case Bool:
		sb.WriteString("bo")
	case Unit:
		sb.WriteString("un")
	case Null:
		sb.WriteString("nu")
	case TypeType:
		sb.WriteString("ty")
	case Fun:
		fmt.Fprintf(sb, "F%d_%d_", d.CallConv, len(d.Params))
		for _, p := range d.Params {
			mangle(sb, p)
		}
		if d.IsVararg {
			sb.WriteByte('V')
		}
		sb.WriteByte('R')
		mangle(sb, d.Return)
	case Struct:
		fmt.Fprintf(sb, "S%d", d.Node.ID())
	case Union:
		fmt.Fprintf(sb, "U%d", d.Node.ID())
	case Enum:
		fmt.Fprintf(sb, "E%d", d.Node.ID())
	case Error:
		sb.WriteString("<e>")
	default:
		sb.WriteString("<?>")
	}
}
