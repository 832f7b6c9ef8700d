package types

import "regexp"

// Vector and matrix type names are recognised by shape, not kept in
// a keyword table: `vec3f32` names a 3-element vector of f32, and
// `mat3x3f64` a 3x3 matrix of f64 (spec.md §1's lexer note "vector/
// matrix types are recognised by shape, not enumeration").
var (
	vecNameRe = regexp.MustCompile(`^vec([1-9][0-9]*)([a-z][a-z0-9]*)$`)
	matNameRe = regexp.MustCompile(`^mat([1-9][0-9]*)x([1-9][0-9]*)([a-z][a-z0-9]*)$`)
)

// ParseVectorName reports whether name has the shape `vec<N><elem>`,
// returning the cardinality and element-type name if so.
func ParseVectorName(name string) (n int64, elem string, ok bool) {
	m := vecNameRe.FindStringSubmatch(name)
	if m == nil {
		return 0, "", false
	}
	return parseDigits(m[1]), m[2], true
}

// ParseMatrixName reports whether name has the shape
// `mat<R>x<C><elem>`, returning the shape and element-type name if so.
func ParseMatrixName(name string) (rows, cols int64, elem string, ok bool) {
	m := matNameRe.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, "", false
	}
	return parseDigits(m[1]), parseDigits(m[2]), m[3], true
}

func parseDigits(s string) int64 {
	var v int64
	for _, r := range s {
		v = v*10 + int64(r-'0')
	}
	return v
}
