package deparser

import (
	"testing"

	"github.com/pgscope/pgscope/ast"
)

func TestDeparseBuiltinTypes(t *testing.T) {
	tests := []struct {
		name    string
		pgType  string
		typmods []*ast.Node
		want    string
	}{
		{"bool", "bool", nil, "boolean"},
		{"int2", "int2", nil, "smallint"},
		{"int4", "int4", nil, "int"},
		{"int8", "int8", nil, "bigint"},
		{"real", "real", nil, "real"},
		{"float4", "float4", nil, "real"},
		{"float8", "float8", nil, "double precision"},
		{"numeric bare", "numeric", nil, "numeric"},
		{"numeric with args", "numeric", []*ast.Node{intConst(10), intConst(2)}, "numeric(10, 2)"},
		{"bpchar", "bpchar", []*ast.Node{intConst(5)}, "char(5)"},
		{"varchar bare", "varchar", nil, "varchar"},
		{"varchar with arg", "varchar", []*ast.Node{intConst(255)}, "varchar(255)"},
		{"time", "time", nil, "time"},
		{"timetz", "timetz", nil, "time with time zone"},
		{"timestamp", "timestamp", nil, "timestamp"},
		{"timestamptz", "timestamptz", nil, "timestamp with time zone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tn := typeName("pg_catalog", tt.pgType)
			tn.Typmods = tt.typmods
			got := deparseNode(t, ast.Wrap("TypeName", tn))
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeparseTypeName_ArrayAndSetof(t *testing.T) {
	tn := typeName("pg_catalog", "int4")
	tn.ArrayBounds = []*ast.Node{intConst(-1)}
	if got := deparseNode(t, ast.Wrap("TypeName", tn)); got != "int[]" {
		t.Errorf("array: got %s", got)
	}

	setof := typeName("pg_catalog", "int8")
	setof.Setof = true
	if got := deparseNode(t, ast.Wrap("TypeName", setof)); got != "SETOF bigint" {
		t.Errorf("setof: got %s", got)
	}
}

func TestDecodeIntervalMask(t *testing.T) {
	tests := []struct {
		name string
		mask int
		want string
	}{
		{"year", ast.IntervalMaskYear, "year"},
		{"month", ast.IntervalMaskMonth, "month"},
		{"day", ast.IntervalMaskDay, "day"},
		{"hour", ast.IntervalMaskHour, "hour"},
		{"minute", ast.IntervalMaskMinute, "minute"},
		{"second", ast.IntervalMaskSecond, "second"},
		{"year to month", ast.IntervalMaskYear | ast.IntervalMaskMonth, "year to month"},
		{"day to hour", ast.IntervalMaskDay | ast.IntervalMaskHour, "day to hour"},
		{"day to minute", ast.IntervalMaskDay | ast.IntervalMaskHour | ast.IntervalMaskMinute, "day to minute"},
		{"day to second", ast.IntervalMaskDay | ast.IntervalMaskHour | ast.IntervalMaskMinute | ast.IntervalMaskSecond, "day to second"},
		{"hour to minute", ast.IntervalMaskHour | ast.IntervalMaskMinute, "hour to minute"},
		{"hour to second", ast.IntervalMaskHour | ast.IntervalMaskMinute | ast.IntervalMaskSecond, "hour to second"},
		{"minute to second", ast.IntervalMaskMinute | ast.IntervalMaskSecond, "minute to second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tn := &ast.TypeName{
				Names:   []*ast.Node{str("pg_catalog"), str("interval")},
				Typmods: []*ast.Node{intConst(tt.mask)},
			}
			got := deparseNode(t, ast.Wrap("TypeName", tn))
			if got != "interval "+tt.want {
				t.Errorf("got %s, want interval %s", got, tt.want)
			}
		})
	}
}

func TestDeparseInterval_NoQualifier(t *testing.T) {
	bare := &ast.TypeName{Names: []*ast.Node{str("pg_catalog"), str("interval")}}
	if got := deparseNode(t, ast.Wrap("TypeName", bare)); got != "interval" {
		t.Errorf("bare: got %s", got)
	}

	full := &ast.TypeName{
		Names:   []*ast.Node{str("pg_catalog"), str("interval")},
		Typmods: []*ast.Node{intConst(ast.IntervalFullRange)},
	}
	if got := deparseNode(t, ast.Wrap("TypeName", full)); got != "interval" {
		t.Errorf("full range: got %s", got)
	}
}

func TestDeparseInterval_SecondPrecision(t *testing.T) {
	tn := &ast.TypeName{
		Names: []*ast.Node{str("pg_catalog"), str("interval")},
		Typmods: []*ast.Node{
			intConst(ast.IntervalMaskHour | ast.IntervalMaskMinute | ast.IntervalMaskSecond),
			intConst(3),
		},
	}
	got := deparseNode(t, ast.Wrap("TypeName", tn))
	want := "interval hour to second(3)"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
