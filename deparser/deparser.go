// Package deparser reconstructs SQL text from a parse tree. Rendering is
// deterministic and canonical: identifiers are always double-quoted,
// keywords upper-cased, and nested binary expressions parenthesized. It
// fails fast on any node kind it has no renderer for.
package deparser

import (
	"strconv"
	"strings"

	"github.com/pgscope/pgscope/ast"
	"github.com/pgscope/pgscope/internal/keywords"
)

// Deparse renders a single node to SQL.
func Deparse(node *ast.Node) (string, error) {
	d := &deparser{}
	out := d.deparse(node, CtxNone)
	if d.err != nil {
		return "", d.err
	}
	return out, nil
}

// DeparseStatements renders a statement list, joining the statements with
// "; " and no trailing separator.
func DeparseStatements(stmts []*ast.Node) (string, error) {
	d := &deparser{}
	rendered := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		rendered = append(rendered, d.deparse(stmt, CtxNone))
		if d.err != nil {
			return "", d.err
		}
	}
	return strings.Join(rendered, "; "), nil
}

// deparser carries the first rendering error; once set, the output is
// discarded by the public entry points.
type deparser struct {
	err error
}

func (d *deparser) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *deparser) deparse(node *ast.Node, ctx Context) string {
	if node == nil || node.Val == nil {
		return ""
	}

	switch v := node.Val.(type) {
	case *ast.RawStmt:
		return d.deparse(v.Stmt, ctx)
	case *ast.List:
		return d.deparseItems(v.Items, ctx, ", ")
	case *ast.String:
		return d.deparseString(v.Str, ctx)
	case *ast.Integer:
		return strconv.Itoa(v.Ival)
	case *ast.Float:
		return v.Str
	case *ast.Boolean:
		if v.Boolval {
			return "true"
		}
		return "false"
	case *ast.BitString:
		return d.deparseBitString(v)
	case *ast.Null:
		return "NULL"
	case *ast.AStar:
		return "*"
	case *ast.AConst:
		return d.deparse(v.Val, CtxAConst)
	case *ast.ParamRef:
		return "$" + strconv.Itoa(v.Number)
	case *ast.SetToDefault:
		return "DEFAULT"
	case *ast.ColumnRef:
		return d.deparseColumnRef(v, ctx)
	case *ast.ResTarget:
		return d.deparseResTarget(v, ctx)
	case *ast.AExpr:
		return d.deparseAExpr(v, ctx)
	case *ast.BoolExpr:
		return d.deparseBoolExpr(v)
	case *ast.NullTest:
		return d.deparseNullTest(v)
	case *ast.BooleanTest:
		return d.deparseBooleanTest(v)
	case *ast.CaseExpr:
		return d.deparseCaseExpr(v)
	case *ast.CaseWhen:
		return "WHEN " + d.deparse(v.Expr, CtxNone) + " THEN " + d.deparse(v.Result, CtxNone)
	case *ast.SubLink:
		return d.deparseSubLink(v)
	case *ast.CoalesceExpr:
		return "COALESCE(" + d.deparseItems(v.Args, CtxNone, ", ") + ")"
	case *ast.MinMaxExpr:
		return d.deparseMinMax(v)
	case *ast.SQLValueFunction:
		return d.deparseSQLValueFunction(v)
	case *ast.AArrayExpr:
		return "ARRAY[" + d.deparseItems(v.Elements, CtxNone, ", ") + "]"
	case *ast.AIndirection:
		return d.deparseAIndirection(v)
	case *ast.AIndices:
		return d.deparseAIndices(v)
	case *ast.RowExpr:
		return d.deparseRowExpr(v)
	case *ast.MultiAssignRef:
		return d.deparse(v.Source, CtxNone)
	case *ast.NamedArgExpr:
		return v.Name + " := " + d.deparse(v.Arg, CtxNone)
	case *ast.CollateClause:
		return d.deparse(v.Arg, CtxPrecedence) + " COLLATE " + d.deparseDottedName(v.Collname)
	case *ast.FuncCall:
		return d.deparseFuncCall(v)
	case *ast.WindowDef:
		return d.deparseWindowDef(v)
	case *ast.TypeCast:
		return d.deparseTypeCast(v)
	case *ast.TypeName:
		return d.deparseTypeName(v)
	case *ast.SortBy:
		return d.deparseSortBy(v)
	case *ast.RangeVar:
		return d.deparseRangeVar(v)
	case *ast.Alias:
		return d.deparseAlias(v)
	case *ast.JoinExpr:
		return d.deparseJoinExpr(v)
	case *ast.RangeSubselect:
		return d.deparseRangeSubselect(v)
	case *ast.RangeFunction:
		return d.deparseRangeFunction(v)
	case *ast.SelectStmt:
		return d.deparseSelect(v)
	case *ast.InsertStmt:
		return d.deparseInsert(v)
	case *ast.UpdateStmt:
		return d.deparseUpdate(v)
	case *ast.DeleteStmt:
		return d.deparseDelete(v)
	case *ast.WithClause:
		return d.deparseWithClause(v)
	case *ast.CommonTableExpr:
		return d.deparseCTE(v)
	case *ast.OnConflictClause:
		return d.deparseOnConflict(v)
	case *ast.InferClause:
		return d.deparseInferClause(v)
	case *ast.IndexElem:
		return d.deparseIndexElem(v)
	case *ast.LockingClause:
		return d.deparseLockingClause(v)
	case *ast.CopyStmt:
		return d.deparseCopy(v)
	case *ast.CreateStmt:
		return d.deparseCreate(v)
	case *ast.ColumnDef:
		return d.deparseColumnDef(v)
	case *ast.Constraint:
		return d.deparseConstraint(v)
	case *ast.AlterTableStmt:
		return d.deparseAlterTable(v)
	case *ast.AlterTableCmd:
		return d.deparseAlterTableCmd(v)
	case *ast.DropStmt:
		return d.deparseDrop(v)
	case *ast.TruncateStmt:
		return d.deparseTruncate(v)
	case *ast.IndexStmt:
		return d.deparseIndex(v)
	case *ast.CreateTrigStmt:
		return d.deparseCreateTrigger(v)
	case *ast.RuleStmt:
		return d.deparseRule(v)
	case *ast.ViewStmt:
		return d.deparseView(v)
	case *ast.RefreshMatViewStmt:
		return d.deparseRefreshMatView(v)
	case *ast.CreateTableAsStmt:
		return d.deparseCreateTableAs(v)
	case *ast.VacuumStmt:
		return d.deparseVacuum(v)
	case *ast.VacuumRelation:
		return d.deparseVacuumRelation(v)
	case *ast.ExplainStmt:
		return d.deparseExplain(v)
	case *ast.LockStmt:
		return d.deparseLock(v)
	case *ast.GrantStmt:
		return d.deparseGrant(v)
	case *ast.AccessPriv:
		return d.deparseAccessPriv(v)
	case *ast.RoleSpec:
		return d.deparseRoleSpec(v)
	case *ast.ObjectWithArgs:
		return d.deparseDottedName(v.Objname)
	case *ast.TransactionStmt:
		return d.deparseTransaction(v)
	case *ast.DefElem:
		return d.deparseDefElem(v)
	case *ast.VariableSetStmt:
		return d.deparseVariableSet(v)
	case *ast.RenameStmt:
		return d.deparseRename(v)
	case *ast.Unknown:
		d.fail(&UnsupportedNodeError{Kind: node.Kind, Payload: string(v.Raw)})
		return ""
	default:
		d.fail(&UnsupportedNodeError{Kind: node.Kind, Payload: node.Val})
		return ""
	}
}

// Helpers.

func (d *deparser) deparseItems(nodes []*ast.Node, ctx Context, sep string) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, d.deparse(n, ctx))
	}
	return strings.Join(parts, sep)
}

// deparseDottedName joins String name parts with dots, quoting each part.
func (d *deparser) deparseDottedName(names []*ast.Node) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if s, ok := n.Val.(*ast.String); ok {
			parts = append(parts, keywords.Quote(s.Str))
			continue
		}
		parts = append(parts, d.deparse(n, CtxNone))
	}
	return strings.Join(parts, ".")
}

// deparseRawName joins String name parts with dots, unquoted.
func (d *deparser) deparseRawName(names []*ast.Node, ctx Context) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, d.deparse(n, ctx))
	}
	return strings.Join(parts, ".")
}

func joinNonEmpty(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// Leaves.

func (d *deparser) deparseString(s string, ctx Context) string {
	switch ctx {
	case CtxAConst:
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	case CtxFuncCall, CtxTypeName, CtxOperator, CtxDefnameAs:
		return s
	case CtxExcluded:
		if strings.EqualFold(s, "excluded") {
			return "EXCLUDED"
		}
		return keywords.Quote(s)
	default:
		return keywords.Quote(s)
	}
}

func (d *deparser) deparseBitString(v *ast.BitString) string {
	if len(v.Str) == 0 {
		return "B''"
	}
	// The leading character tags the radix: b for binary, x for hex.
	return strings.ToUpper(v.Str[:1]) + "'" + v.Str[1:] + "'"
}

func (d *deparser) deparseColumnRef(v *ast.ColumnRef, ctx Context) string {
	fieldCtx := CtxNone
	if ctx == CtxExcluded {
		fieldCtx = CtxExcluded
	}
	parts := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		parts = append(parts, d.deparse(f, fieldCtx))
	}
	return strings.Join(parts, ".")
}

func (d *deparser) deparseResTarget(v *ast.ResTarget, ctx Context) string {
	switch ctx {
	case CtxNone:
		out := keywords.Quote(v.Name)
		for _, ind := range v.Indirection {
			out += d.deparse(ind, CtxNone)
		}
		return out
	case CtxSelect:
		val := d.deparse(v.Val, CtxNone)
		if v.Name == "" {
			return val
		}
		return val + " AS " + keywords.Quote(v.Name)
	case CtxUpdate, CtxExcluded:
		valCtx := CtxNone
		if ctx == CtxExcluded {
			valCtx = CtxExcluded
		}
		name := keywords.Quote(v.Name)
		for _, ind := range v.Indirection {
			name += d.deparse(ind, CtxNone)
		}
		return name + " = " + d.deparse(v.Val, valCtx)
	default:
		d.fail(&UnsupportedResTargetContextError{Context: ctx})
		return ""
	}
}

// Expressions.

func (d *deparser) deparseAExpr(v *ast.AExpr, ctx Context) string {
	switch v.Kind {
	case ast.AExprOp:
		return d.deparseAExprOp(v, ctx)
	case ast.AExprOpAny:
		return d.deparse(v.Lexpr, CtxPrecedence) + " " + d.operatorName(v) +
			" ANY(" + d.deparse(v.Rexpr, CtxPrecedence) + ")"
	case ast.AExprOpAll:
		return d.deparse(v.Lexpr, CtxPrecedence) + " " + d.operatorName(v) +
			" ALL(" + d.deparse(v.Rexpr, CtxPrecedence) + ")"
	case ast.AExprDistinct:
		return d.deparse(v.Lexpr, CtxPrecedence) + " IS DISTINCT FROM " + d.deparse(v.Rexpr, CtxPrecedence)
	case ast.AExprNotDistinct:
		return d.deparse(v.Lexpr, CtxPrecedence) + " IS NOT DISTINCT FROM " + d.deparse(v.Rexpr, CtxPrecedence)
	case ast.AExprNullif:
		return "NULLIF(" + d.deparse(v.Lexpr, CtxNone) + ", " + d.deparse(v.Rexpr, CtxNone) + ")"
	case ast.AExprIn:
		keyword := "IN"
		if d.operatorName(v) == "<>" {
			keyword = "NOT IN"
		}
		return d.deparse(v.Lexpr, CtxNone) + " " + keyword + " (" + d.deparse(v.Rexpr, CtxNone) + ")"
	case ast.AExprLike:
		return d.deparseLike(v, "LIKE", "!~~")
	case ast.AExprILike:
		return d.deparseLike(v, "ILIKE", "!~~*")
	case ast.AExprSimilar:
		return d.deparseSimilar(v)
	case ast.AExprBetween:
		return d.deparseBetween(v, "BETWEEN")
	case ast.AExprNotBetween:
		return d.deparseBetween(v, "NOT BETWEEN")
	case ast.AExprBetweenSym:
		return d.deparseBetween(v, "BETWEEN SYMMETRIC")
	case ast.AExprNotBetweenSym:
		return d.deparseBetween(v, "NOT BETWEEN SYMMETRIC")
	default:
		d.fail(&UnsupportedAExprKindError{Kind: v.Kind})
		return ""
	}
}

// deparseAExprOp renders a plain operator expression. Children render under
// a truthy context so nested expressions parenthesize themselves; only the
// outermost expression stays bare.
func (d *deparser) deparseAExprOp(v *ast.AExpr, ctx Context) string {
	op := d.operatorName(v)

	var out string
	switch {
	case v.Lexpr != nil && v.Rexpr != nil:
		out = d.deparse(v.Lexpr, CtxPrecedence) + " " + op + " " + d.deparse(v.Rexpr, CtxPrecedence)
	case v.Rexpr != nil:
		out = op + " " + d.deparse(v.Rexpr, CtxPrecedence)
	case v.Lexpr != nil:
		out = d.deparse(v.Lexpr, CtxPrecedence) + " " + op
	default:
		out = op
	}

	if ctx != CtxNone {
		return "(" + out + ")"
	}
	return out
}

func (d *deparser) operatorName(v *ast.AExpr) string {
	return d.deparseRawName(v.Name, CtxOperator)
}

func (d *deparser) deparseLike(v *ast.AExpr, keyword, negatedOp string) string {
	if d.operatorName(v) == negatedOp {
		keyword = "NOT " + keyword
	}
	return d.deparse(v.Lexpr, CtxPrecedence) + " " + keyword + " " + d.deparse(v.Rexpr, CtxPrecedence)
}

func (d *deparser) deparseSimilar(v *ast.AExpr) string {
	keyword := "SIMILAR TO"
	if d.operatorName(v) == "!~" {
		keyword = "NOT SIMILAR TO"
	}
	// The grammar wraps the pattern in similar_to_escape; unwrap the
	// single-argument form.
	rexpr := v.Rexpr
	if fc := ast.Inner[ast.FuncCall](rexpr); fc != nil && len(fc.Args) == 1 {
		if d.deparseRawName(fc.Funcname, CtxFuncCall) == "pg_catalog.similar_to_escape" {
			rexpr = fc.Args[0]
		}
	}
	return d.deparse(v.Lexpr, CtxPrecedence) + " " + keyword + " " + d.deparse(rexpr, CtxPrecedence)
}

func (d *deparser) deparseBetween(v *ast.AExpr, keyword string) string {
	bounds := v.Rexpr
	var low, high string
	if list, ok := bounds.Val.(*ast.List); ok && len(list.Items) == 2 {
		low = d.deparse(list.Items[0], CtxPrecedence)
		high = d.deparse(list.Items[1], CtxPrecedence)
	} else {
		low = d.deparse(bounds, CtxPrecedence)
	}
	out := d.deparse(v.Lexpr, CtxPrecedence) + " " + keyword + " " + low
	if high != "" {
		out += " AND " + high
	}
	return out
}

func (d *deparser) deparseBoolExpr(v *ast.BoolExpr) string {
	if v.Boolop == ast.BoolExprNot {
		arg := ""
		if len(v.Args) > 0 {
			arg = d.deparse(v.Args[0], CtxNone)
			if ast.Inner[ast.BoolExpr](v.Args[0]) != nil {
				arg = "(" + arg + ")"
			}
		}
		return "NOT " + arg
	}

	sep := " AND "
	if v.Boolop == ast.BoolExprOr {
		sep = " OR "
	}

	parts := make([]string, 0, len(v.Args))
	for _, arg := range v.Args {
		s := d.deparse(arg, CtxNone)
		if child := ast.Inner[ast.BoolExpr](arg); child != nil {
			// Under AND, a child OR keeps its parentheses; under OR, any
			// child AND or OR does.
			if (v.Boolop == ast.BoolExprAnd && child.Boolop == ast.BoolExprOr) ||
				(v.Boolop == ast.BoolExprOr && child.Boolop != ast.BoolExprNot) {
				s = "(" + s + ")"
			}
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep)
}

func (d *deparser) deparseNullTest(v *ast.NullTest) string {
	arg := d.deparse(v.Arg, CtxPrecedence)
	if v.Nulltesttype == ast.NullTestIsNotNull {
		return arg + " IS NOT NULL"
	}
	return arg + " IS NULL"
}

func (d *deparser) deparseBooleanTest(v *ast.BooleanTest) string {
	arg := d.deparse(v.Arg, CtxPrecedence)
	switch v.Booltesttype {
	case ast.BoolTestIsTrue:
		return arg + " IS TRUE"
	case ast.BoolTestIsNotTrue:
		return arg + " IS NOT TRUE"
	case ast.BoolTestIsFalse:
		return arg + " IS FALSE"
	case ast.BoolTestIsNotFalse:
		return arg + " IS NOT FALSE"
	case ast.BoolTestIsUnknown:
		return arg + " IS UNKNOWN"
	case ast.BoolTestIsNotUnknown:
		return arg + " IS NOT UNKNOWN"
	default:
		d.fail(&UnsupportedNodeError{Kind: "BooleanTest", Payload: v.Booltesttype})
		return ""
	}
}

func (d *deparser) deparseCaseExpr(v *ast.CaseExpr) string {
	parts := []string{"CASE"}
	if v.Arg != nil {
		parts = append(parts, d.deparse(v.Arg, CtxNone))
	}
	for _, when := range v.Args {
		parts = append(parts, d.deparse(when, CtxNone))
	}
	if v.Defresult != nil {
		parts = append(parts, "ELSE", d.deparse(v.Defresult, CtxNone))
	}
	parts = append(parts, "END")
	return strings.Join(parts, " ")
}

func (d *deparser) deparseSubLink(v *ast.SubLink) string {
	sub := d.deparse(v.Subselect, CtxNone)
	switch v.SubLinkType {
	case ast.SubLinkExists:
		return "EXISTS (" + sub + ")"
	case ast.SubLinkAll:
		return d.deparse(v.Testexpr, CtxPrecedence) + " " +
			d.deparseRawName(v.OperName, CtxOperator) + " ALL (" + sub + ")"
	case ast.SubLinkAny:
		if len(v.OperName) == 0 {
			return d.deparse(v.Testexpr, CtxPrecedence) + " IN (" + sub + ")"
		}
		return d.deparse(v.Testexpr, CtxPrecedence) + " " +
			d.deparseRawName(v.OperName, CtxOperator) + " ANY (" + sub + ")"
	case ast.SubLinkArray:
		return "ARRAY(" + sub + ")"
	default:
		return "(" + sub + ")"
	}
}

func (d *deparser) deparseMinMax(v *ast.MinMaxExpr) string {
	keyword := "GREATEST"
	if v.Op == ast.MinMaxLeast {
		keyword = "LEAST"
	}
	return keyword + "(" + d.deparseItems(v.Args, CtxNone, ", ") + ")"
}

func (d *deparser) deparseSQLValueFunction(v *ast.SQLValueFunction) string {
	word, ok := sqlValueFunctionWords[v.Op]
	if !ok {
		d.fail(&UnsupportedNodeError{Kind: "SQLValueFunction", Payload: v.Op})
		return ""
	}
	return word
}

func (d *deparser) deparseAIndirection(v *ast.AIndirection) string {
	out := d.deparse(v.Arg, CtxPrecedence)
	for _, ind := range v.Indirection {
		switch f := ind.Val.(type) {
		case *ast.String:
			out += "." + keywords.Quote(f.Str)
		case *ast.AStar:
			out += ".*"
		default:
			out += d.deparse(ind, CtxNone)
		}
	}
	return out
}

func (d *deparser) deparseAIndices(v *ast.AIndices) string {
	if v.IsSlice {
		return "[" + d.deparse(v.Lidx, CtxNone) + ":" + d.deparse(v.Uidx, CtxNone) + "]"
	}
	return "[" + d.deparse(v.Uidx, CtxNone) + "]"
}

func (d *deparser) deparseRowExpr(v *ast.RowExpr) string {
	args := d.deparseItems(v.Args, CtxNone, ", ")
	if v.RowFormat == ast.CoerceExplicitCall {
		return "ROW(" + args + ")"
	}
	return "(" + args + ")"
}

func (d *deparser) deparseFuncCall(v *ast.FuncCall) string {
	name := d.deparseRawName(v.Funcname, CtxFuncCall)

	if name == "pg_catalog.overlay" && len(v.Args) == 4 {
		return "OVERLAY(" +
			d.deparse(v.Args[0], CtxNone) + " PLACING " +
			d.deparse(v.Args[1], CtxNone) + " FROM " +
			d.deparse(v.Args[2], CtxNone) + " FOR " +
			d.deparse(v.Args[3], CtxNone) + ")"
	}

	args := ""
	switch {
	case v.AggStar:
		args = "*"
	default:
		args = d.deparseItems(v.Args, CtxNone, ", ")
		if v.AggDistinct {
			args = "DISTINCT " + args
		}
	}

	out := name + "(" + args
	if len(v.AggOrder) > 0 && !v.AggWithinGroup {
		out += " ORDER BY " + d.deparseItems(v.AggOrder, CtxNone, ", ")
	}
	out += ")"

	if v.AggWithinGroup {
		out += " WITHIN GROUP (ORDER BY " + d.deparseItems(v.AggOrder, CtxNone, ", ") + ")"
	}
	if v.AggFilter != nil {
		out += " FILTER (WHERE " + d.deparse(v.AggFilter, CtxNone) + ")"
	}
	if v.Over != nil {
		out += " OVER " + d.deparseWindowDef(v.Over)
	}
	return out
}

func (d *deparser) deparseWindowDef(v *ast.WindowDef) string {
	if v.Name != "" {
		return keywords.Quote(v.Name)
	}
	if v.Refname != "" {
		return keywords.Quote(v.Refname)
	}

	var parts []string
	if len(v.PartitionClause) > 0 {
		parts = append(parts, "PARTITION BY "+d.deparseItems(v.PartitionClause, CtxNone, ", "))
	}
	if len(v.OrderClause) > 0 {
		parts = append(parts, "ORDER BY "+d.deparseItems(v.OrderClause, CtxNone, ", "))
	}
	if frame := d.deparseFrameOptions(v); frame != "" {
		parts = append(parts, frame)
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// deparseFrameOptions decodes the window frame bitmask into its clause.
func (d *deparser) deparseFrameOptions(v *ast.WindowDef) string {
	opts := v.FrameOptions
	if opts&ast.FrameNondefault == 0 {
		return ""
	}

	mode := "RANGE"
	if opts&ast.FrameRows != 0 {
		mode = "ROWS"
	} else if opts&ast.FrameGroups != 0 {
		mode = "GROUPS"
	}

	bound := func(unboundedPre, currentRow, offsetPre, offsetFol int, offset *ast.Node) string {
		switch {
		case opts&unboundedPre != 0:
			return "UNBOUNDED PRECEDING"
		case opts&currentRow != 0:
			return "CURRENT ROW"
		case opts&offsetPre != 0:
			return d.deparse(offset, CtxNone) + " PRECEDING"
		case opts&offsetFol != 0:
			return d.deparse(offset, CtxNone) + " FOLLOWING"
		}
		return "UNBOUNDED FOLLOWING"
	}

	start := bound(ast.FrameStartUnboundedPre, ast.FrameStartCurrentRow,
		ast.FrameStartOffsetPreceding, ast.FrameStartOffsetFollowing, v.StartOffset)
	if opts&ast.FrameBetween == 0 {
		return mode + " " + start
	}
	end := bound(ast.FrameEndUnboundedPre, ast.FrameEndCurrentRow,
		ast.FrameEndOffsetPreceding, ast.FrameEndOffsetFollowing, v.EndOffset)
	return mode + " BETWEEN " + start + " AND " + end
}

func (d *deparser) deparseTypeCast(v *ast.TypeCast) string {
	if v.TypeName == nil {
		return d.deparse(v.Arg, CtxNone)
	}

	// Literal boolean casts read back as the bare literals.
	if d.isBuiltinType(v.TypeName, "bool") {
		if c := ast.Inner[ast.AConst](v.Arg); c != nil {
			if s := ast.Inner[ast.String](c.Val); s != nil {
				switch s.Str {
				case "t":
					return "true"
				case "f":
					return "false"
				}
			}
		}
	}

	return d.deparse(v.Arg, CtxPrecedence) + "::" + d.deparseTypeName(v.TypeName)
}

func (d *deparser) isBuiltinType(t *ast.TypeName, name string) bool {
	if t == nil || len(t.Names) != 2 {
		return false
	}
	first := ast.Inner[ast.String](t.Names[0])
	second := ast.Inner[ast.String](t.Names[1])
	return first != nil && second != nil && first.Str == "pg_catalog" && second.Str == name
}

func (d *deparser) deparseSortBy(v *ast.SortBy) string {
	out := d.deparse(v.Node, CtxNone)
	switch v.SortbyDir {
	case ast.SortByAsc:
		out += " ASC"
	case ast.SortByDesc:
		out += " DESC"
	case ast.SortByUsing:
		out += " USING " + d.deparseRawName(v.UseOp, CtxOperator)
	}
	switch v.SortbyNulls {
	case ast.SortByNullsFirst:
		out += " NULLS FIRST"
	case ast.SortByNullsLast:
		out += " NULLS LAST"
	}
	return out
}

// Relations.

func (d *deparser) deparseRangeVar(v *ast.RangeVar) string {
	out := ""
	if !v.Inh {
		out = "ONLY "
	}
	if v.Schemaname != "" {
		out += keywords.Quote(v.Schemaname) + "."
	}
	out += keywords.Quote(v.Relname)
	if v.Alias != nil {
		out += " " + d.deparseAlias(v.Alias)
	}
	return out
}

func (d *deparser) deparseAlias(v *ast.Alias) string {
	out := keywords.Quote(v.Aliasname)
	if len(v.Colnames) > 0 {
		out += " (" + d.deparseDottedNameList(v.Colnames) + ")"
	}
	return out
}

// deparseDottedNameList quotes a list of bare column names.
func (d *deparser) deparseDottedNameList(names []*ast.Node) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if s, ok := n.Val.(*ast.String); ok {
			parts = append(parts, keywords.Quote(s.Str))
			continue
		}
		parts = append(parts, d.deparse(n, CtxNone))
	}
	return strings.Join(parts, ", ")
}

func (d *deparser) deparseJoinExpr(v *ast.JoinExpr) string {
	larg := d.deparse(v.Larg, CtxNone)
	rarg := d.deparse(v.Rarg, CtxNone)

	var keyword string
	switch v.Jointype {
	case ast.JoinInner:
		switch {
		case v.IsNatural:
			keyword = "NATURAL JOIN"
		case v.Quals == nil && len(v.UsingClause) == 0:
			keyword = "CROSS JOIN"
		default:
			keyword = "JOIN"
		}
	case ast.JoinLeft:
		keyword = "LEFT JOIN"
	case ast.JoinFull:
		keyword = "FULL JOIN"
	case ast.JoinRight:
		keyword = "RIGHT JOIN"
	default:
		d.fail(&UnsupportedNodeError{Kind: "JoinExpr", Payload: v.Jointype})
		return ""
	}

	out := larg + " " + keyword + " " + rarg
	if v.Quals != nil {
		out += " ON " + d.deparse(v.Quals, CtxNone)
	}
	if len(v.UsingClause) > 0 {
		out += " USING (" + d.deparseDottedNameList(v.UsingClause) + ")"
	}
	if v.Alias != nil {
		out = "(" + out + ") " + d.deparseAlias(v.Alias)
	}
	return out
}

func (d *deparser) deparseRangeSubselect(v *ast.RangeSubselect) string {
	out := "(" + d.deparse(v.Subquery, CtxNone) + ")"
	if v.Lateral {
		out = "LATERAL " + out
	}
	if v.Alias != nil {
		out += " " + d.deparseAlias(v.Alias)
	}
	return out
}

// deparseRangeFunction renders only the first function of the first
// functions entry; multi-function FROM entries are not supported.
func (d *deparser) deparseRangeFunction(v *ast.RangeFunction) string {
	var fn *ast.Node
	if len(v.Functions) > 0 {
		first := v.Functions[0]
		if list, ok := first.Val.(*ast.List); ok && len(list.Items) > 0 {
			fn = list.Items[0]
		} else {
			fn = first
		}
	}

	out := d.deparse(fn, CtxNone)
	if v.Lateral {
		out = "LATERAL " + out
	}
	if v.Ordinality {
		out += " WITH ORDINALITY"
	}
	if v.Alias != nil {
		out += " " + d.deparseAlias(v.Alias)
	}
	if len(v.Coldeflist) > 0 {
		out += " (" + d.deparseItems(v.Coldeflist, CtxNone, ", ") + ")"
	}
	return out
}

// SELECT.

func (d *deparser) deparseSelect(v *ast.SelectStmt) string {
	var output []string

	if v.WithClause != nil {
		output = append(output, d.deparseWithClause(v.WithClause))
	}

	if v.Op != ast.SetOpNone {
		return joinNonEmpty(append(output, d.deparseSetOperation(v))...)
	}

	if len(v.TargetList) > 0 {
		output = append(output, "SELECT")
		if len(v.DistinctClause) > 0 {
			distinct := "DISTINCT"
			if on := d.deparseDistinctOn(v.DistinctClause); on != "" {
				distinct += " ON (" + on + ")"
			}
			output = append(output, distinct)
		}
		output = append(output, d.deparseItems(v.TargetList, CtxSelect, ", "))
	}

	if v.IntoClause != nil {
		output = append(output, "INTO", d.deparseIntoClause(v.IntoClause))
	}
	if len(v.FromClause) > 0 {
		output = append(output, "FROM", d.deparseItems(v.FromClause, CtxNone, ", "))
	}
	if v.WhereClause != nil {
		output = append(output, "WHERE", d.deparse(v.WhereClause, CtxNone))
	}
	if len(v.ValuesLists) > 0 {
		rows := make([]string, 0, len(v.ValuesLists))
		for _, row := range v.ValuesLists {
			rows = append(rows, "("+d.deparse(row, CtxNone)+")")
		}
		output = append(output, "VALUES "+strings.Join(rows, ", "))
	}
	if len(v.GroupClause) > 0 {
		output = append(output, "GROUP BY", d.deparseItems(v.GroupClause, CtxNone, ", "))
	}
	if v.HavingClause != nil {
		output = append(output, "HAVING", d.deparse(v.HavingClause, CtxNone))
	}
	output = append(output, d.deparseSelectTail(v)...)

	return joinNonEmpty(output...)
}

// deparseSetOperation renders a UNION/INTERSECT/EXCEPT combination. The
// trailing clauses (ORDER BY, LIMIT, locking) belong to the combination;
// the plain SELECT body never renders here.
func (d *deparser) deparseSetOperation(v *ast.SelectStmt) string {
	var word string
	switch v.Op {
	case ast.SetOpUnion:
		word = "UNION"
	case ast.SetOpIntersect:
		word = "INTERSECT"
	case ast.SetOpExcept:
		word = "EXCEPT"
	}
	if v.All {
		word += " ALL"
	}

	parts := []string{
		d.deparseSetOperand(v.Larg),
		word,
		d.deparseSetOperand(v.Rarg),
	}
	parts = append(parts, d.deparseSelectTail(v)...)
	return joinNonEmpty(parts...)
}

// deparseSetOperand parenthesizes an operand that carries its own trailing
// clauses, so they bind to the operand and not the combination.
func (d *deparser) deparseSetOperand(v *ast.SelectStmt) string {
	if v == nil {
		return ""
	}
	out := d.deparseSelect(v)
	if len(v.SortClause) > 0 || v.LimitCount != nil || v.LimitOffset != nil || len(v.LockingClause) > 0 {
		return "(" + out + ")"
	}
	return out
}

func (d *deparser) deparseSelectTail(v *ast.SelectStmt) []string {
	var output []string
	if len(v.SortClause) > 0 {
		output = append(output, "ORDER BY", d.deparseItems(v.SortClause, CtxNone, ", "))
	}
	if v.LimitCount != nil {
		output = append(output, "LIMIT", d.deparse(v.LimitCount, CtxNone))
	}
	if v.LimitOffset != nil {
		output = append(output, "OFFSET", d.deparse(v.LimitOffset, CtxNone))
	}
	for _, locking := range v.LockingClause {
		output = append(output, d.deparse(locking, CtxNone))
	}
	return output
}

// deparseDistinctOn renders the DISTINCT ON expressions; a plain DISTINCT
// parses as a single empty clause entry.
func (d *deparser) deparseDistinctOn(clause []*ast.Node) string {
	var parts []string
	for _, n := range clause {
		if n == nil || n.Val == nil {
			continue
		}
		parts = append(parts, d.deparse(n, CtxNone))
	}
	return strings.Join(parts, ", ")
}

func (d *deparser) deparseWithClause(v *ast.WithClause) string {
	out := "WITH "
	if v.Recursive {
		out += "RECURSIVE "
	}
	return out + d.deparseItems(v.Ctes, CtxNone, ", ")
}

func (d *deparser) deparseCTE(v *ast.CommonTableExpr) string {
	out := keywords.Quote(v.Ctename)
	if len(v.Aliascolnames) > 0 {
		out += " (" + d.deparseDottedNameList(v.Aliascolnames) + ")"
	}
	return out + " AS (" + d.deparse(v.Ctequery, CtxNone) + ")"
}

func (d *deparser) deparseIntoClause(v *ast.IntoClause) string {
	out := ""
	if v.Rel != nil {
		switch v.Rel.Relpersistence {
		case "t":
			out = "TEMPORARY "
		case "u":
			out = "UNLOGGED "
		}
		out += d.deparseRangeVar(v.Rel)
	}
	if len(v.ColNames) > 0 {
		out += " (" + d.deparseDottedNameList(v.ColNames) + ")"
	}
	switch v.OnCommit {
	case ast.OnCommitDeleteRows:
		out += " ON COMMIT DELETE ROWS"
	case ast.OnCommitDrop:
		out += " ON COMMIT DROP"
	}
	if v.TableSpaceName != "" {
		out += " TABLESPACE " + keywords.Quote(v.TableSpaceName)
	}
	return out
}

func (d *deparser) deparseLockingClause(v *ast.LockingClause) string {
	word, ok := lockStrengthWords[v.Strength]
	if !ok {
		d.fail(&UnsupportedNodeError{Kind: "LockingClause", Payload: v.Strength})
		return ""
	}
	out := word
	if len(v.LockedRels) > 0 {
		out += " OF " + d.deparseItems(v.LockedRels, CtxNone, ", ")
	}
	switch v.WaitPolicy {
	case ast.LockWaitSkip:
		out += " SKIP LOCKED"
	case ast.LockWaitError:
		out += " NOWAIT"
	}
	return out
}

// DML.

func (d *deparser) deparseInsert(v *ast.InsertStmt) string {
	var output []string
	if v.WithClause != nil {
		output = append(output, d.deparseWithClause(v.WithClause))
	}

	target := d.deparseRangeVar(v.Relation)
	if len(v.Cols) > 0 {
		target += " (" + d.deparseItems(v.Cols, CtxNone, ", ") + ")"
	}
	output = append(output, "INSERT INTO", target)

	if v.SelectStmt != nil {
		output = append(output, d.deparse(v.SelectStmt, CtxNone))
	} else {
		output = append(output, "DEFAULT VALUES")
	}

	if v.OnConflictClause != nil {
		output = append(output, d.deparseOnConflict(v.OnConflictClause))
	}
	if len(v.ReturningList) > 0 {
		output = append(output, "RETURNING", d.deparseItems(v.ReturningList, CtxSelect, ", "))
	}
	return joinNonEmpty(output...)
}

func (d *deparser) deparseOnConflict(v *ast.OnConflictClause) string {
	output := []string{"ON CONFLICT"}

	if v.Infer != nil {
		output = append(output, d.deparseInferClause(v.Infer))
	}

	switch v.Action {
	case ast.OnConflictNothing:
		output = append(output, "DO NOTHING")
	case ast.OnConflictUpdate:
		output = append(output, "DO UPDATE SET", d.deparseItems(v.TargetList, CtxExcluded, ", "))
		if v.WhereClause != nil {
			output = append(output, "WHERE", d.deparse(v.WhereClause, CtxNone))
		}
	}
	return joinNonEmpty(output...)
}

func (d *deparser) deparseInferClause(v *ast.InferClause) string {
	if v.Conname != "" {
		return "ON CONSTRAINT " + keywords.Quote(v.Conname)
	}
	if len(v.IndexElems) > 0 {
		out := "(" + d.deparseItems(v.IndexElems, CtxNone, ", ") + ")"
		if v.WhereClause != nil {
			out += " WHERE " + d.deparse(v.WhereClause, CtxNone)
		}
		return out
	}
	return ""
}

func (d *deparser) deparseIndexElem(v *ast.IndexElem) string {
	var out string
	if v.Name != "" {
		out = keywords.Quote(v.Name)
	} else if v.Expr != nil {
		out = "(" + d.deparse(v.Expr, CtxNone) + ")"
	}
	switch v.Ordering {
	case ast.SortByAsc:
		out += " ASC"
	case ast.SortByDesc:
		out += " DESC"
	}
	switch v.NullsOrdering {
	case ast.SortByNullsFirst:
		out += " NULLS FIRST"
	case ast.SortByNullsLast:
		out += " NULLS LAST"
	}
	return out
}

func (d *deparser) deparseUpdate(v *ast.UpdateStmt) string {
	var output []string
	if v.WithClause != nil {
		output = append(output, d.deparseWithClause(v.WithClause))
	}
	output = append(output, "UPDATE", d.deparseRangeVar(v.Relation),
		"SET", d.deparseItems(v.TargetList, CtxUpdate, ", "))
	if len(v.FromClause) > 0 {
		output = append(output, "FROM", d.deparseItems(v.FromClause, CtxNone, ", "))
	}
	if v.WhereClause != nil {
		output = append(output, "WHERE", d.deparse(v.WhereClause, CtxNone))
	}
	if len(v.ReturningList) > 0 {
		output = append(output, "RETURNING", d.deparseItems(v.ReturningList, CtxSelect, ", "))
	}
	return joinNonEmpty(output...)
}

func (d *deparser) deparseDelete(v *ast.DeleteStmt) string {
	var output []string
	if v.WithClause != nil {
		output = append(output, d.deparseWithClause(v.WithClause))
	}
	output = append(output, "DELETE FROM", d.deparseRangeVar(v.Relation))
	if len(v.UsingClause) > 0 {
		output = append(output, "USING", d.deparseItems(v.UsingClause, CtxNone, ", "))
	}
	if v.WhereClause != nil {
		output = append(output, "WHERE", d.deparse(v.WhereClause, CtxNone))
	}
	if len(v.ReturningList) > 0 {
		output = append(output, "RETURNING", d.deparseItems(v.ReturningList, CtxSelect, ", "))
	}
	return joinNonEmpty(output...)
}

func (d *deparser) deparseCopy(v *ast.CopyStmt) string {
	output := []string{"COPY"}

	if v.Relation != nil {
		target := d.deparseRangeVar(v.Relation)
		if len(v.Attlist) > 0 {
			target += " (" + d.deparseDottedNameList(v.Attlist) + ")"
		}
		output = append(output, target)
	} else if v.Query != nil {
		output = append(output, "("+d.deparse(v.Query, CtxNone)+")")
	}

	direction := "TO"
	if v.IsFrom {
		direction = "FROM"
	}
	output = append(output, direction)

	switch {
	case v.IsProgram:
		output = append(output, "PROGRAM", "'"+strings.ReplaceAll(v.Filename, "'", "''")+"'")
	case v.Filename != "":
		output = append(output, "'"+strings.ReplaceAll(v.Filename, "'", "''")+"'")
	case v.IsFrom:
		output = append(output, "STDIN")
	default:
		output = append(output, "STDOUT")
	}

	if len(v.Options) > 0 {
		output = append(output, "WITH ("+d.deparseItems(v.Options, CtxNone, ", ")+")")
	}
	return joinNonEmpty(output...)
}

// DDL.

func (d *deparser) deparseCreate(v *ast.CreateStmt) string {
	output := []string{"CREATE"}
	if v.Relation != nil {
		switch v.Relation.Relpersistence {
		case "t":
			output = append(output, "TEMPORARY")
		case "u":
			output = append(output, "UNLOGGED")
		}
	}
	output = append(output, "TABLE")
	if v.IfNotExists {
		output = append(output, "IF NOT EXISTS")
	}
	output = append(output, d.deparseRangeVar(v.Relation))
	output = append(output, "("+d.deparseItems(v.TableElts, CtxNone, ", ")+")")

	if len(v.InhRelations) > 0 {
		output = append(output, "INHERITS", "("+d.deparseItems(v.InhRelations, CtxNone, ", ")+")")
	}
	if len(v.Options) > 0 {
		output = append(output, "WITH", "("+d.deparseItems(v.Options, CtxNone, ", ")+")")
	}
	switch v.Oncommit {
	case ast.OnCommitDeleteRows:
		output = append(output, "ON COMMIT DELETE ROWS")
	case ast.OnCommitDrop:
		output = append(output, "ON COMMIT DROP")
	}
	if v.Tablespacename != "" {
		output = append(output, "TABLESPACE", keywords.Quote(v.Tablespacename))
	}
	return joinNonEmpty(output...)
}

func (d *deparser) deparseColumnDef(v *ast.ColumnDef) string {
	output := []string{keywords.Quote(v.Colname)}
	if v.TypeName != nil {
		output = append(output, d.deparseTypeName(v.TypeName))
	}
	if v.RawDefault != nil {
		output = append(output, "USING", d.deparse(v.RawDefault, CtxNone))
	}
	for _, constraint := range v.Constraints {
		output = append(output, d.deparse(constraint, CtxNone))
	}
	if v.CollClause != nil {
		if cc := ast.Inner[ast.CollateClause](v.CollClause); cc != nil {
			output = append(output, "COLLATE "+d.deparseDottedName(cc.Collname))
		}
	}
	return joinNonEmpty(output...)
}

func (d *deparser) deparseConstraint(v *ast.Constraint) string {
	var output []string
	if v.Conname != "" {
		output = append(output, "CONSTRAINT", keywords.Quote(v.Conname))
	}

	switch v.Contype {
	case ast.ConstrNull:
		output = append(output, "NULL")
	case ast.ConstrNotNull:
		output = append(output, "NOT NULL")
	case ast.ConstrDefault:
		output = append(output, "DEFAULT", d.deparseConstraintExpr(v.RawExpr))
	case ast.ConstrCheck:
		output = append(output, "CHECK", d.deparseConstraintExpr(v.RawExpr))
	case ast.ConstrPrimary:
		output = append(output, "PRIMARY KEY")
		if len(v.Keys) > 0 {
			output = append(output, "("+d.deparseDottedNameList(v.Keys)+")")
		}
	case ast.ConstrUnique:
		output = append(output, "UNIQUE")
		if len(v.Keys) > 0 {
			output = append(output, "("+d.deparseDottedNameList(v.Keys)+")")
		}
	case ast.ConstrExclusion:
		output = append(output, d.deparseExclusion(v))
	case ast.ConstrForeign:
		output = append(output, d.deparseForeignKey(v))
	default:
		d.fail(&UnsupportedNodeError{Kind: "Constraint", Payload: v.Contype})
		return ""
	}

	if v.Deferrable {
		output = append(output, "DEFERRABLE")
	}
	if v.Initdeferred {
		output = append(output, "INITIALLY DEFERRED")
	}
	return joinNonEmpty(output...)
}

// deparseConstraintExpr parenthesizes the expression only when it is a
// boolean combination or a plain operator expression.
func (d *deparser) deparseConstraintExpr(expr *ast.Node) string {
	out := d.deparse(expr, CtxNone)
	if expr == nil {
		return out
	}
	if ast.Inner[ast.BoolExpr](expr) != nil {
		return "(" + out + ")"
	}
	if ae := ast.Inner[ast.AExpr](expr); ae != nil && ae.Kind == ast.AExprOp {
		return "(" + out + ")"
	}
	return out
}

func (d *deparser) deparseExclusion(v *ast.Constraint) string {
	out := "EXCLUDE"
	if v.AccessMethod != "" {
		out += " USING " + v.AccessMethod
	}
	if len(v.Exclusions) > 0 {
		entries := make([]string, 0, len(v.Exclusions))
		for _, excl := range v.Exclusions {
			// Each exclusion pairs an index element with its operator.
			if list, ok := excl.Val.(*ast.List); ok && len(list.Items) == 2 {
				entries = append(entries, d.deparse(list.Items[0], CtxNone)+
					" WITH "+d.deparse(list.Items[1], CtxOperator))
				continue
			}
			entries = append(entries, d.deparse(excl, CtxNone))
		}
		out += " (" + strings.Join(entries, ", ") + ")"
	}
	if v.WhereClause != nil {
		out += " WHERE (" + d.deparse(v.WhereClause, CtxNone) + ")"
	}
	return out
}

func (d *deparser) deparseForeignKey(v *ast.Constraint) string {
	var output []string
	if len(v.FkAttrs) > 0 {
		output = append(output, "FOREIGN KEY", "("+d.deparseDottedNameList(v.FkAttrs)+")")
	}
	output = append(output, "REFERENCES", d.deparseRangeVar(v.Pktable))
	if len(v.PkAttrs) > 0 {
		output = append(output, "("+d.deparseDottedNameList(v.PkAttrs)+")")
	}
	return joinNonEmpty(output...)
}

func (d *deparser) deparseAlterTable(v *ast.AlterTableStmt) string {
	output := []string{"ALTER TABLE"}
	if v.MissingOk {
		output = append(output, "IF EXISTS")
	}
	output = append(output, d.deparseRangeVar(v.Relation))
	output = append(output, d.deparseItems(v.Cmds, CtxNone, ", "))
	return joinNonEmpty(output...)
}

func (d *deparser) deparseAlterTableCmd(v *ast.AlterTableCmd) string {
	name := keywords.Quote(v.Name)
	cascade := ""
	if v.Behavior == ast.DropCascade {
		cascade = " CASCADE"
	}
	ifExists := ""
	if v.MissingOk {
		ifExists = "IF EXISTS "
	}

	switch v.Subtype {
	case ast.AlterAddColumn:
		return "ADD COLUMN " + d.deparse(v.Def, CtxNone)
	case ast.AlterColumnDefault:
		if v.Def == nil {
			return "ALTER COLUMN " + name + " DROP DEFAULT"
		}
		return "ALTER COLUMN " + name + " SET DEFAULT " + d.deparse(v.Def, CtxNone)
	case ast.AlterDropNotNull:
		return "ALTER COLUMN " + name + " DROP NOT NULL"
	case ast.AlterSetNotNull:
		return "ALTER COLUMN " + name + " SET NOT NULL"
	case ast.AlterSetStatistics:
		return "ALTER COLUMN " + name + " SET STATISTICS " + d.deparse(v.Def, CtxNone)
	case ast.AlterSetStorage:
		return "ALTER COLUMN " + name + " SET STORAGE " + d.deparse(v.Def, CtxDefnameAs)
	case ast.AlterDropColumn:
		return "DROP COLUMN " + ifExists + name + cascade
	case ast.AlterAddConstraint:
		return "ADD " + d.deparse(v.Def, CtxNone)
	case ast.AlterValidateConstraint:
		return "VALIDATE CONSTRAINT " + name
	case ast.AlterDropConstraint:
		return "DROP CONSTRAINT " + ifExists + name + cascade
	case ast.AlterAlterColumnType:
		out := "ALTER COLUMN " + name + " TYPE "
		if def := ast.Inner[ast.ColumnDef](v.Def); def != nil {
			out += d.deparseTypeName(def.TypeName)
			if def.RawDefault != nil {
				out += " USING " + d.deparse(def.RawDefault, CtxNone)
			}
			return out
		}
		return out + d.deparse(v.Def, CtxNone)
	case ast.AlterChangeOwner:
		return "OWNER TO " + d.deparseRoleSpec(v.Newowner)
	case ast.AlterClusterOn:
		return "CLUSTER ON " + name
	case ast.AlterDropCluster:
		return "SET WITHOUT CLUSTER"
	case ast.AlterSetLogged:
		return "SET LOGGED"
	case ast.AlterSetUnLogged:
		return "SET UNLOGGED"
	case ast.AlterSetTableSpace:
		return "SET TABLESPACE " + name
	case ast.AlterAddInherit:
		return "INHERIT " + d.deparse(v.Def, CtxNone)
	case ast.AlterDropInherit:
		return "NO INHERIT " + d.deparse(v.Def, CtxNone)
	case ast.AlterEnableRowSecurity:
		return "ENABLE ROW LEVEL SECURITY"
	case ast.AlterDisableRowSecurity:
		return "DISABLE ROW LEVEL SECURITY"
	default:
		d.fail(&UnsupportedNodeError{Kind: "AlterTableCmd", Payload: v.Subtype})
		return ""
	}
}

func (d *deparser) deparseDrop(v *ast.DropStmt) string {
	word, ok := dropKindWords[v.RemoveType]
	if !ok {
		d.fail(&UnsupportedNodeError{Kind: "DropStmt", Payload: v.RemoveType})
		return ""
	}

	output := []string{"DROP", word}
	if v.Concurrent {
		output = append(output, "CONCURRENTLY")
	}
	if v.MissingOk {
		output = append(output, "IF EXISTS")
	}

	objects := make([]string, 0, len(v.Objects))
	for _, obj := range v.Objects {
		objects = append(objects, d.deparseDropObject(obj, v.RemoveType))
	}
	output = append(output, strings.Join(objects, ", "))

	if v.Behavior == ast.DropCascade {
		output = append(output, "CASCADE")
	}
	return joinNonEmpty(output...)
}

// deparseDropObject renders one dropped object. Rules and triggers put the
// object name last, after the table it belongs to.
func (d *deparser) deparseDropObject(obj *ast.Node, removeType int) string {
	parts := d.dropNameParts(obj)
	if removeType == ast.ObjectRule || removeType == ast.ObjectTrigger {
		if len(parts) >= 2 {
			name := parts[len(parts)-1]
			table := strings.Join(parts[:len(parts)-1], ".")
			return name + " ON " + table
		}
	}
	return strings.Join(parts, ".")
}

func (d *deparser) dropNameParts(obj *ast.Node) []string {
	if obj == nil {
		return nil
	}
	switch v := obj.Val.(type) {
	case *ast.String:
		return []string{keywords.Quote(v.Str)}
	case *ast.List:
		var parts []string
		for _, item := range v.Items {
			parts = append(parts, d.dropNameParts(item)...)
		}
		return parts
	case *ast.TypeName:
		return []string{d.deparseTypeName(v)}
	case *ast.ObjectWithArgs:
		return []string{d.deparseDottedName(v.Objname)}
	}
	return []string{d.deparse(obj, CtxNone)}
}

func (d *deparser) deparseTruncate(v *ast.TruncateStmt) string {
	output := []string{"TRUNCATE TABLE", d.deparseItems(v.Relations, CtxNone, ", ")}
	if v.RestartSeqs {
		output = append(output, "RESTART IDENTITY")
	}
	if v.Behavior == ast.DropCascade {
		output = append(output, "CASCADE")
	}
	return joinNonEmpty(output...)
}

func (d *deparser) deparseIndex(v *ast.IndexStmt) string {
	output := []string{"CREATE"}
	if v.Unique {
		output = append(output, "UNIQUE")
	}
	output = append(output, "INDEX")
	if v.Concurrent {
		output = append(output, "CONCURRENTLY")
	}
	if v.IfNotExists {
		output = append(output, "IF NOT EXISTS")
	}
	if v.Idxname != "" {
		output = append(output, keywords.Quote(v.Idxname))
	}
	output = append(output, "ON", d.deparseRangeVar(v.Relation))
	if v.AccessMethod != "" && v.AccessMethod != "btree" {
		output = append(output, "USING", v.AccessMethod)
	}
	output = append(output, "("+d.deparseItems(v.IndexParams, CtxNone, ", ")+")")
	if v.WhereClause != nil {
		output = append(output, "WHERE", d.deparse(v.WhereClause, CtxNone))
	}
	return joinNonEmpty(output...)
}

func (d *deparser) deparseCreateTrigger(v *ast.CreateTrigStmt) string {
	output := []string{"CREATE"}
	if v.Isconstraint {
		output = append(output, "CONSTRAINT")
	}
	output = append(output, "TRIGGER", keywords.Quote(v.Trigname))

	switch {
	case v.Timing&triggerTimingBefore != 0:
		output = append(output, "BEFORE")
	case v.Timing&triggerTimingInstead != 0:
		output = append(output, "INSTEAD OF")
	default:
		output = append(output, "AFTER")
	}

	var events []string
	if v.Events&triggerEventInsert != 0 {
		events = append(events, "INSERT")
	}
	if v.Events&triggerEventDelete != 0 {
		events = append(events, "DELETE")
	}
	if v.Events&triggerEventUpdate != 0 {
		event := "UPDATE"
		if len(v.Columns) > 0 {
			event += " OF " + d.deparseDottedNameList(v.Columns)
		}
		events = append(events, event)
	}
	if v.Events&triggerEventTruncate != 0 {
		events = append(events, "TRUNCATE")
	}
	output = append(output, strings.Join(events, " OR "))

	output = append(output, "ON", d.deparseRangeVar(v.Relation))
	if v.Row {
		output = append(output, "FOR EACH ROW")
	}
	if v.WhenClause != nil {
		output = append(output, "WHEN ("+d.deparse(v.WhenClause, CtxNone)+")")
	}
	output = append(output, "EXECUTE PROCEDURE",
		d.deparseRawName(v.Funcname, CtxFuncCall)+"("+d.deparseItems(v.Args, CtxAConst, ", ")+")")
	return joinNonEmpty(output...)
}

func (d *deparser) deparseRule(v *ast.RuleStmt) string {
	event, ok := ruleEventWords[v.Event]
	if !ok {
		d.fail(&UnsupportedNodeError{Kind: "RuleStmt", Payload: v.Event})
		return ""
	}

	output := []string{"CREATE"}
	if v.Replace {
		output = append(output, "OR REPLACE")
	}
	output = append(output, "RULE", keywords.Quote(v.Rulename),
		"AS ON", event, "TO", d.deparseRangeVar(v.Relation))
	if v.WhereClause != nil {
		output = append(output, "WHERE", d.deparse(v.WhereClause, CtxNone))
	}
	output = append(output, "DO")
	if v.Instead {
		output = append(output, "INSTEAD")
	}
	if len(v.Actions) == 0 {
		output = append(output, "NOTHING")
	} else {
		output = append(output, d.deparseItems(v.Actions, CtxNone, "; "))
	}
	return joinNonEmpty(output...)
}

func (d *deparser) deparseView(v *ast.ViewStmt) string {
	output := []string{"CREATE"}
	if v.Replace {
		output = append(output, "OR REPLACE")
	}
	output = append(output, "VIEW", d.deparseRangeVar(v.View))
	if len(v.Aliases) > 0 {
		output = append(output, "("+d.deparseDottedNameList(v.Aliases)+")")
	}
	output = append(output, "AS", d.deparse(v.Query, CtxNone))
	return joinNonEmpty(output...)
}

func (d *deparser) deparseRefreshMatView(v *ast.RefreshMatViewStmt) string {
	output := []string{"REFRESH MATERIALIZED VIEW"}
	if v.Concurrent {
		output = append(output, "CONCURRENTLY")
	}
	output = append(output, d.deparseRangeVar(v.Relation))
	if v.SkipData {
		output = append(output, "WITH NO DATA")
	}
	return joinNonEmpty(output...)
}

func (d *deparser) deparseCreateTableAs(v *ast.CreateTableAsStmt) string {
	output := []string{"CREATE"}
	if v.Into != nil && v.Into.Rel != nil {
		switch v.Into.Rel.Relpersistence {
		case "t":
			output = append(output, "TEMPORARY")
		case "u":
			output = append(output, "UNLOGGED")
		}
	}
	if v.Objtype == ast.ObjectMatView {
		output = append(output, "MATERIALIZED VIEW")
	} else {
		output = append(output, "TABLE")
	}
	if v.IfNotExists {
		output = append(output, "IF NOT EXISTS")
	}
	if v.Into != nil {
		output = append(output, d.deparseIntoClause(v.Into))
	}
	output = append(output, "AS", d.deparse(v.Query, CtxNone))
	if v.Into != nil && v.Into.SkipData {
		output = append(output, "WITH NO DATA")
	}
	return joinNonEmpty(output...)
}

func (d *deparser) deparseVacuum(v *ast.VacuumStmt) string {
	verb := "VACUUM"
	if !v.IsVacuumcmd {
		verb = "ANALYZE"
	}
	output := []string{verb}

	for _, opt := range v.Options {
		if de := ast.Inner[ast.DefElem](opt); de != nil {
			output = append(output, strings.ToUpper(de.Defname))
		}
	}
	if len(v.Rels) > 0 {
		output = append(output, d.deparseItems(v.Rels, CtxNone, ", "))
	}
	return joinNonEmpty(output...)
}

func (d *deparser) deparseVacuumRelation(v *ast.VacuumRelation) string {
	out := d.deparseRangeVar(v.Relation)
	if len(v.VaCols) > 0 {
		out += " (" + d.deparseDottedNameList(v.VaCols) + ")"
	}
	return out
}

func (d *deparser) deparseExplain(v *ast.ExplainStmt) string {
	output := []string{"EXPLAIN"}
	if len(v.Options) > 0 {
		output = append(output, "("+d.deparseItems(v.Options, CtxNone, ", ")+")")
	}
	output = append(output, d.deparse(v.Query, CtxNone))
	return joinNonEmpty(output...)
}

func (d *deparser) deparseLock(v *ast.LockStmt) string {
	output := []string{"LOCK TABLE", d.deparseItems(v.Relations, CtxNone, ", ")}
	if word, ok := lockModeWords[v.Mode]; ok && v.Mode != 8 {
		output = append(output, "IN", word, "MODE")
	}
	if v.Nowait {
		output = append(output, "NOWAIT")
	}
	return joinNonEmpty(output...)
}

func (d *deparser) deparseGrant(v *ast.GrantStmt) string {
	word, ok := grantObjectWords[v.Objtype]
	if !ok {
		d.fail(&UnsupportedNodeError{Kind: "GrantStmt", Payload: v.Objtype})
		return ""
	}

	privileges := "ALL"
	if len(v.Privileges) > 0 {
		privileges = d.deparseItems(v.Privileges, CtxNone, ", ")
	}

	objects := word
	if v.Targtype == ast.GrantTargetAllInSchema {
		objects = "ALL TABLES IN SCHEMA"
	}
	if objects != "" {
		objects += " "
	}
	objects += d.deparseItems(v.Objects, CtxNone, ", ")

	if v.IsGrant {
		out := "GRANT " + privileges + " ON " + objects + " TO " + d.deparseItems(v.Grantees, CtxNone, ", ")
		if v.GrantOption {
			out += " WITH GRANT OPTION"
		}
		return out
	}

	out := "REVOKE "
	if v.GrantOption {
		out += "GRANT OPTION FOR "
	}
	out += privileges + " ON " + objects + " FROM " + d.deparseItems(v.Grantees, CtxNone, ", ")
	if v.Behavior == ast.DropCascade {
		out += " CASCADE"
	}
	return out
}

func (d *deparser) deparseAccessPriv(v *ast.AccessPriv) string {
	out := strings.ToUpper(v.PrivName)
	if len(v.Cols) > 0 {
		out += " (" + d.deparseDottedNameList(v.Cols) + ")"
	}
	return out
}

func (d *deparser) deparseRoleSpec(v *ast.RoleSpec) string {
	if v == nil {
		return ""
	}
	switch v.Roletype {
	case ast.RoleSpecCurrentUser:
		return "CURRENT_USER"
	case ast.RoleSpecSessionUser:
		return "SESSION_USER"
	case ast.RoleSpecPublic:
		return "PUBLIC"
	case ast.RoleSpecCurrentRole:
		return "CURRENT_ROLE"
	default:
		return keywords.Quote(v.Rolename)
	}
}

func (d *deparser) deparseTransaction(v *ast.TransactionStmt) string {
	word, ok := transactionKindWords[v.Kind]
	if !ok {
		d.fail(&UnsupportedTransactionKindError{Kind: v.Kind})
		return ""
	}

	switch v.Kind {
	case ast.TransSavepoint, ast.TransRelease, ast.TransRollbackTo:
		name := v.SavepointName
		if name == "" {
			name = d.savepointNameFromOptions(v.Options)
		}
		if name != "" {
			return word + " " + keywords.Quote(name)
		}
	}
	return word
}

// savepointNameFromOptions digs the savepoint name out of the legacy
// options spelling.
func (d *deparser) savepointNameFromOptions(options []*ast.Node) string {
	for _, opt := range options {
		de := ast.Inner[ast.DefElem](opt)
		if de == nil || de.Defname != "savepoint_name" {
			continue
		}
		if s := ast.Inner[ast.String](de.Arg); s != nil {
			return s.Str
		}
	}
	return ""
}

func (d *deparser) deparseDefElem(v *ast.DefElem) string {
	out := strings.ToUpper(v.Defname)
	if v.Arg != nil {
		out += " " + d.deparse(v.Arg, CtxDefnameAs)
	}
	return out
}

func (d *deparser) deparseVariableSet(v *ast.VariableSetStmt) string {
	switch v.Kind {
	case ast.VarSetValue, ast.VarSetCurrent:
		out := "SET "
		if v.IsLocal {
			out += "LOCAL "
		}
		return out + v.Name + " TO " + d.deparseItems(v.Args, CtxNone, ", ")
	case ast.VarSetDefault:
		return "SET " + v.Name + " TO DEFAULT"
	case ast.VarReset:
		return "RESET " + v.Name
	case ast.VarResetAll:
		return "RESET ALL"
	default:
		d.fail(&UnsupportedNodeError{Kind: "VariableSetStmt", Payload: v.Kind})
		return ""
	}
}

func (d *deparser) deparseRename(v *ast.RenameStmt) string {
	switch v.RenameType {
	case ast.ObjectTable:
		return "ALTER TABLE " + d.deparseRangeVar(v.Relation) + " RENAME TO " + keywords.Quote(v.Newname)
	case ast.ObjectColumn:
		return "ALTER TABLE " + d.deparseRangeVar(v.Relation) +
			" RENAME COLUMN " + keywords.Quote(v.Subname) + " TO " + keywords.Quote(v.Newname)
	default:
		d.fail(&UnsupportedNodeError{Kind: "RenameStmt", Payload: v.RenameType})
		return ""
	}
}
