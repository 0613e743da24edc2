// Package extractor walks a parse tree and reports every table referenced
// by the statements, classified by how it is used, plus all table aliases
// and CTE names.
package extractor

import (
	"strings"

	"github.com/pgscope/pgscope/ast"
)

// fromItem is a candidate relation reference with the usage type it will be
// reported under.
type fromItem struct {
	node *ast.Node
	typ  RefType
}

// walker holds the three work queues and the accumulating result.
type walker struct {
	statements     []*ast.Node
	subselectItems []*ast.Node
	fromItems      []fromItem

	tables   []Reference
	aliases  map[string]string
	cteNames []string
}

// Extract walks a statement list and returns the referenced tables, the
// alias map, and the CTE names. It never fails: node kinds it does not
// understand contribute no references.
func Extract(stmts []*ast.Node) *Result {
	w := &walker{aliases: make(map[string]string)}
	w.statements = append(w.statements, stmts...)
	w.run()

	return &Result{
		Tables:   dedupeTables(w.tables),
		Aliases:  w.aliases,
		CTENames: dedupeStrings(w.cteNames),
	}
}

// ExtractNode walks a single statement node.
func ExtractNode(node *ast.Node) *Result {
	return Extract([]*ast.Node{node})
}

// run alternates between the statement and subselect queues until both are
// empty, then drains the FROM-item queue. Draining can surface new
// sub-selects (FROM (SELECT ...)), so the whole cycle repeats until every
// queue is empty.
func (w *walker) run() {
	for {
		for len(w.statements) > 0 || len(w.subselectItems) > 0 {
			if len(w.statements) > 0 {
				stmt := w.statements[0]
				w.statements = w.statements[1:]
				w.walkStatement(stmt)
			}
			if len(w.subselectItems) > 0 {
				expr := w.subselectItems[0]
				w.subselectItems = w.subselectItems[1:]
				w.walkExpression(expr)
			}
		}
		if len(w.fromItems) == 0 {
			return
		}
		item := w.fromItems[0]
		w.fromItems = w.fromItems[1:]
		w.walkFromItem(item)
	}
}

func (w *walker) walkStatement(node *ast.Node) {
	if node == nil {
		return
	}

	switch stmt := node.Val.(type) {
	case *ast.RawStmt:
		w.pushStatement(stmt.Stmt)

	case *ast.SelectStmt:
		w.walkSelect(stmt)

	case *ast.InsertStmt:
		w.pushRelation(stmt.Relation, RefDML)
		w.pushStatement(stmt.SelectStmt)
		w.walkWithClause(stmt.WithClause)

	case *ast.UpdateStmt:
		w.pushRelation(stmt.Relation, RefDML)
		w.walkWithClause(stmt.WithClause)
		w.pushSubselects(stmt.TargetList...)
		w.pushSubselects(stmt.WhereClause)

	case *ast.DeleteStmt:
		w.pushRelation(stmt.Relation, RefDML)
		w.walkWithClause(stmt.WithClause)
		w.pushSubselects(stmt.WhereClause)

	case *ast.CopyStmt:
		if stmt.IsFrom {
			w.pushRelation(stmt.Relation, RefDML)
		} else {
			w.pushRelation(stmt.Relation, RefSelect)
		}
		w.pushStatement(stmt.Query)

	case *ast.AlterTableStmt:
		w.pushRelation(stmt.Relation, RefDDL)

	case *ast.CreateStmt:
		w.pushRelation(stmt.Relation, RefDDL)

	case *ast.IndexStmt:
		w.pushRelation(stmt.Relation, RefDDL)

	case *ast.CreateTrigStmt:
		w.pushRelation(stmt.Relation, RefDDL)

	case *ast.RuleStmt:
		w.pushRelation(stmt.Relation, RefDDL)

	case *ast.RefreshMatViewStmt:
		w.pushRelation(stmt.Relation, RefDDL)

	case *ast.ViewStmt:
		w.pushRelation(stmt.View, RefDDL)
		w.pushStatement(stmt.Query)

	case *ast.CreateTableAsStmt:
		if stmt.Into != nil {
			w.pushRelation(stmt.Into.Rel, RefDDL)
		}
		w.pushStatement(stmt.Query)

	case *ast.TruncateStmt:
		for _, rel := range stmt.Relations {
			w.pushFromItem(rel, RefDDL)
		}

	case *ast.LockStmt:
		for _, rel := range stmt.Relations {
			w.pushFromItem(rel, RefDDL)
		}

	case *ast.VacuumStmt:
		for _, rel := range stmt.Rels {
			if vr := ast.Inner[ast.VacuumRelation](rel); vr != nil {
				w.pushRelation(vr.Relation, RefDDL)
			}
		}

	case *ast.GrantStmt:
		w.walkGrant(stmt)

	case *ast.DropStmt:
		w.walkDrop(stmt)

	case *ast.ExplainStmt:
		w.pushStatement(stmt.Query)

	case *ast.CommonTableExpr:
		w.cteNames = append(w.cteNames, stmt.Ctename)
		w.pushStatement(stmt.Ctequery)

	default:
		// Unknown statement kinds contribute no references.
	}
}

func (w *walker) walkSelect(stmt *ast.SelectStmt) {
	switch stmt.Op {
	case ast.SetOpNone:
		for _, from := range stmt.FromClause {
			if sub := ast.Inner[ast.RangeSubselect](from); sub != nil {
				w.pushStatement(sub.Subquery)
				continue
			}
			w.pushFromItem(from, RefSelect)
		}
		w.walkWithClause(stmt.WithClause)
	case ast.SetOpUnion, ast.SetOpIntersect, ast.SetOpExcept:
		if stmt.Larg != nil {
			w.pushStatement(ast.Wrap("SelectStmt", stmt.Larg))
		}
		if stmt.Rarg != nil {
			w.pushStatement(ast.Wrap("SelectStmt", stmt.Rarg))
		}
	}

	w.pushSubselects(stmt.TargetList...)
	w.pushSubselects(stmt.WhereClause, stmt.HavingClause)
	w.pushSubselects(stmt.GroupClause...)
	for _, sort := range stmt.SortClause {
		if sb := ast.Inner[ast.SortBy](sort); sb != nil {
			w.pushSubselects(sb.Node)
		}
	}
}

func (w *walker) walkWithClause(with *ast.WithClause) {
	if with == nil {
		return
	}
	for _, cte := range with.Ctes {
		if c := ast.Inner[ast.CommonTableExpr](cte); c != nil {
			w.cteNames = append(w.cteNames, c.Ctename)
			w.pushStatement(c.Ctequery)
		}
	}
}

func (w *walker) walkGrant(stmt *ast.GrantStmt) {
	switch stmt.Objtype {
	case ast.ObjectTable:
		for _, obj := range stmt.Objects {
			w.pushFromItem(obj, RefDDL)
		}
	case ast.ObjectColumn, ast.ObjectSequence:
		// TODO: column and sequence grants are not reported yet.
	}
}

// walkDrop appends dropped objects directly: each object is a list of name
// parts joined with dots. DROP RULE and DROP TRIGGER name the object last,
// after the table it belongs to, so the trailing part is discarded.
func (w *walker) walkDrop(stmt *ast.DropStmt) {
	switch stmt.RemoveType {
	case ast.ObjectTable, ast.ObjectRule, ast.ObjectTrigger:
	default:
		return
	}

	for _, obj := range stmt.Objects {
		parts := stringParts(obj)
		if stmt.RemoveType == ast.ObjectRule || stmt.RemoveType == ast.ObjectTrigger {
			if len(parts) == 0 {
				continue
			}
			parts = parts[:len(parts)-1]
		}
		if len(parts) == 0 {
			continue
		}
		w.tables = append(w.tables, Reference{
			Name: strings.Join(parts, "."),
			Type: RefDDL,
		})
	}
}

func (w *walker) walkExpression(node *ast.Node) {
	if node == nil {
		return
	}

	switch expr := node.Val.(type) {
	case *ast.AExpr:
		w.pushSubselects(expr.Lexpr, expr.Rexpr)
	case *ast.BoolExpr:
		w.pushSubselects(expr.Args...)
	case *ast.ResTarget:
		w.pushSubselects(expr.Val)
	case *ast.SubLink:
		w.pushStatement(expr.Subselect)
	case *ast.List:
		w.pushSubselects(expr.Items...)
	}
}

func (w *walker) walkFromItem(item fromItem) {
	if item.node == nil {
		return
	}

	switch v := item.node.Val.(type) {
	case *ast.JoinExpr:
		w.pushFromItem(v.Larg, item.typ)
		w.pushFromItem(v.Rarg, item.typ)
	case *ast.RowExpr:
		for _, arg := range v.Args {
			w.pushFromItem(arg, item.typ)
		}
	case *ast.RangeSubselect:
		w.pushStatement(v.Subquery)
	case *ast.SelectStmt:
		for _, from := range v.FromClause {
			w.pushFromItem(from, item.typ)
		}
	case *ast.RangeVar:
		w.emitRangeVar(v, item.typ)
	}
}

// emitRangeVar records a table reference unless the bare name refers to a
// CTE discovered earlier.
func (w *walker) emitRangeVar(rv *ast.RangeVar, typ RefType) {
	if rv.Relname == "" {
		return
	}
	if rv.Schemaname == "" && w.isCTEName(rv.Relname) {
		return
	}

	name := rv.Relname
	if rv.Schemaname != "" {
		name = rv.Schemaname + "." + rv.Relname
	}
	w.tables = append(w.tables, Reference{
		Name:     name,
		Type:     typ,
		Schema:   rv.Schemaname,
		Relname:  rv.Relname,
		Location: rv.Location,
		Inh:      rv.Inh,
	})
	if rv.Alias != nil && rv.Alias.Aliasname != "" {
		w.aliases[rv.Alias.Aliasname] = name
	}
}

func (w *walker) isCTEName(name string) bool {
	for _, cte := range w.cteNames {
		if cte == name {
			return true
		}
	}
	return false
}

// Queue helpers.

func (w *walker) pushStatement(node *ast.Node) {
	if node == nil || node.Val == nil {
		return
	}
	w.statements = append(w.statements, node)
}

// pushSubselects queues expression nodes that may contain sub-selects,
// flattening untagged lists.
func (w *walker) pushSubselects(nodes ...*ast.Node) {
	for _, node := range nodes {
		if node == nil || node.Val == nil {
			continue
		}
		if list, ok := node.Val.(*ast.List); ok {
			w.pushSubselects(list.Items...)
			continue
		}
		w.subselectItems = append(w.subselectItems, node)
	}
}

func (w *walker) pushFromItem(node *ast.Node, typ RefType) {
	if node == nil || node.Val == nil {
		return
	}
	w.fromItems = append(w.fromItems, fromItem{node: node, typ: typ})
}

func (w *walker) pushRelation(rv *ast.RangeVar, typ RefType) {
	if rv == nil {
		return
	}
	w.pushFromItem(ast.Wrap("RangeVar", rv), typ)
}

// stringParts flattens a dotted-name node (a list of String parts) into its
// string elements.
func stringParts(node *ast.Node) []string {
	if node == nil {
		return nil
	}
	switch v := node.Val.(type) {
	case *ast.String:
		return []string{v.Str}
	case *ast.List:
		var parts []string
		for _, item := range v.Items {
			parts = append(parts, stringParts(item)...)
		}
		return parts
	}
	return nil
}

func dedupeTables(tables []Reference) []Reference {
	seen := make(map[Reference]bool, len(tables))
	result := make([]Reference, 0, len(tables))
	for _, t := range tables {
		if seen[t] {
			continue
		}
		seen[t] = true
		result = append(result, t)
	}
	return result
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	return result
}
