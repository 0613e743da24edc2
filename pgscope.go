// Package pgscope analyzes PostgreSQL SQL. It parses statements with the
// real server grammar, reports every table a query touches (classified as
// read, mutated, or structurally altered) along with aliases and CTE
// names, and deparses parse trees back to canonical SQL.
package pgscope

import (
	"github.com/pgscope/pgscope/ast"
	"github.com/pgscope/pgscope/deparser"
	"github.com/pgscope/pgscope/extractor"
	"github.com/pgscope/pgscope/parser"
)

// Parse parses SQL into wire-format RawStmt nodes.
func Parse(sql string) ([]*ast.Node, error) {
	return parser.ParseToAST(sql)
}

// Tables parses SQL and reports the tables it references, with aliases and
// CTE names.
func Tables(sql string) (*extractor.Result, error) {
	stmts, err := parser.ParseToAST(sql)
	if err != nil {
		return nil, err
	}
	return extractor.Extract(stmts), nil
}

// TablesFromAST reports the tables referenced by an already-parsed
// statement list.
func TablesFromAST(stmts []*ast.Node) *extractor.Result {
	return extractor.Extract(stmts)
}

// Deparse renders a statement list back to SQL, joining statements with
// "; ".
func Deparse(stmts []*ast.Node) (string, error) {
	return deparser.DeparseStatements(stmts)
}

// Canonicalize parses SQL and deparses it again, producing the canonical
// rendering.
func Canonicalize(sql string) (string, error) {
	stmts, err := parser.ParseToAST(sql)
	if err != nil {
		return "", err
	}
	return deparser.DeparseStatements(stmts)
}

// Fingerprint returns the statement fingerprint.
func Fingerprint(sql string) (string, error) {
	return parser.Fingerprint(sql)
}

// Normalize replaces constants with placeholders.
func Normalize(sql string) (string, error) {
	return parser.Normalize(sql)
}
