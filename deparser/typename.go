package deparser

import (
	"strconv"
	"strings"

	"github.com/pgscope/pgscope/ast"
)

// deparseTypeName renders a TypeName. Built-in pg_catalog types map to
// their canonical SQL spellings; anything else joins its name parts with
// dots and appends the type modifiers verbatim.
func (d *deparser) deparseTypeName(t *ast.TypeName) string {
	if t == nil {
		return ""
	}

	names := make([]string, 0, len(t.Names))
	for _, n := range t.Names {
		names = append(names, d.deparse(n, CtxTypeName))
	}

	var out string
	if len(names) == 2 && names[0] == "pg_catalog" {
		out = d.deparseBuiltinType(names[1], t.Typmods)
	} else {
		out = strings.Join(names, ".")
		if len(t.Typmods) > 0 {
			out += "(" + d.deparseItems(t.Typmods, CtxNone, ", ") + ")"
		}
	}

	for range t.ArrayBounds {
		out += "[]"
	}
	if t.Setof {
		out = "SETOF " + out
	}
	return out
}

// deparseBuiltinType maps a pg_catalog type to its canonical spelling.
func (d *deparser) deparseBuiltinType(name string, typmods []*ast.Node) string {
	mods := ""
	if len(typmods) > 0 {
		mods = "(" + d.deparseItems(typmods, CtxNone, ", ") + ")"
	}

	switch name {
	case "bool":
		return "boolean"
	case "int2":
		return "smallint"
	case "int4":
		return "int"
	case "int8":
		return "bigint"
	case "real", "float4":
		return "real"
	case "float8":
		return "double precision"
	case "numeric":
		return "numeric" + mods
	case "bpchar":
		return "char" + mods
	case "varchar":
		return "varchar" + mods
	case "time":
		return "time" + mods
	case "timetz":
		return "time" + mods + " with time zone"
	case "timestamp":
		return "timestamp" + mods
	case "timestamptz":
		return "timestamp" + mods + " with time zone"
	case "interval":
		return d.deparseIntervalType(typmods)
	default:
		d.fail(&UnsupportedTypeError{Name: name})
		return ""
	}
}

// deparseIntervalType renders the interval type with its qualifier, decoded
// from the bitmask in the first typmod. With a second typmod and a trailing
// second qualifier, the precision attaches to second.
func (d *deparser) deparseIntervalType(typmods []*ast.Node) string {
	if len(typmods) == 0 {
		return "interval"
	}

	mask, ok := intValue(typmods[0])
	if !ok {
		return "interval"
	}
	fields := decodeIntervalMask(mask)
	if len(fields) == 0 {
		return "interval"
	}

	if len(typmods) == 2 && fields[len(fields)-1] == "second" {
		if precision, ok := intValue(typmods[1]); ok {
			fields[len(fields)-1] = "second(" + strconv.Itoa(precision) + ")"
		}
	}
	return "interval " + strings.Join(fields, " to ")
}

// intervalMaskFields lists the qualifier bits in field order.
var intervalMaskFields = []struct {
	bit  int
	word string
}{
	{ast.IntervalMaskYear, "year"},
	{ast.IntervalMaskMonth, "month"},
	{ast.IntervalMaskDay, "day"},
	{ast.IntervalMaskHour, "hour"},
	{ast.IntervalMaskMinute, "minute"},
	{ast.IntervalMaskSecond, "second"},
}

// decodeIntervalMask returns the qualifier tokens for an interval typmod
// bitmask: the first and last set fields, lowercase. A full or empty mask
// carries no qualifier.
func decodeIntervalMask(mask int) []string {
	if mask <= 0 || mask&ast.IntervalFullRange == ast.IntervalFullRange {
		return nil
	}

	var words []string
	for _, f := range intervalMaskFields {
		if mask&f.bit != 0 {
			words = append(words, f.word)
		}
	}
	if len(words) <= 1 {
		return words
	}
	return []string{words[0], words[len(words)-1]}
}

// intValue unwraps an integer stored either bare or inside an A_Const.
func intValue(node *ast.Node) (int, bool) {
	if node == nil {
		return 0, false
	}
	switch v := node.Val.(type) {
	case *ast.Integer:
		return v.Ival, true
	case *ast.AConst:
		return intValue(v.Val)
	}
	return 0, false
}
