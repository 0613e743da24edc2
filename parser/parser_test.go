package parser

import (
	"os"
	pathutil "path/filepath"
	"testing"

	"github.com/pgscope/pgscope/ast"
)

func TestParseSQL(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		wantErr bool
		checks  func(t *testing.T, result *ParseResult)
	}{
		{
			name: "single SELECT statement",
			sql:  "SELECT * FROM users;",
			checks: func(t *testing.T, result *ParseResult) {
				if len(result.Statements) != 1 {
					t.Fatalf("expected 1 statement, got %d", len(result.Statements))
				}
				stmt := result.Statements[0]
				if stmt.SQL != "SELECT * FROM users" {
					t.Errorf("unexpected SQL: %s", stmt.SQL)
				}
				if stmt.LineNumber != 1 {
					t.Errorf("expected line number 1, got %d", stmt.LineNumber)
				}
				if stmt.AST == nil {
					t.Fatal("AST should not be nil")
				}
				if stmt.AST.Kind != "RawStmt" {
					t.Errorf("expected RawStmt root, got %q", stmt.AST.Kind)
				}
			},
		},
		{
			name: "multiple statements with line numbers",
			sql: `CREATE TABLE users (id INT);
INSERT INTO users VALUES (1);
UPDATE users SET id = 2 WHERE id = 1;`,
			checks: func(t *testing.T, result *ParseResult) {
				if len(result.Statements) != 3 {
					t.Fatalf("expected 3 statements, got %d", len(result.Statements))
				}
				expectedLines := []int{1, 2, 3}
				expectedKinds := []string{"CreateStmt", "InsertStmt", "UpdateStmt"}
				for i, stmt := range result.Statements {
					if stmt.LineNumber != expectedLines[i] {
						t.Errorf("statement %d: expected line %d, got %d", i, expectedLines[i], stmt.LineNumber)
					}
					raw := ast.Inner[ast.RawStmt](stmt.AST)
					if raw == nil {
						t.Fatalf("statement %d: expected RawStmt", i)
					}
					if raw.Stmt.Kind != expectedKinds[i] {
						t.Errorf("statement %d: expected %s, got %s", i, expectedKinds[i], raw.Stmt.Kind)
					}
				}
			},
		},
		{
			name: "empty input",
			sql:  "",
			checks: func(t *testing.T, result *ParseResult) {
				if len(result.Statements) != 0 {
					t.Errorf("expected 0 statements, got %d", len(result.Statements))
				}
			},
		},
		{
			name: "UTF-8 BOM stripped",
			sql:  "\xEF\xBB\xBFSELECT 1;",
			checks: func(t *testing.T, result *ParseResult) {
				if len(result.Statements) != 1 {
					t.Errorf("expected 1 statement, got %d", len(result.Statements))
				}
			},
		},
		{
			name:    "invalid SQL",
			sql:     "SELECT FROM WHERE;",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser()
			result, err := p.ParseSQL(tt.sql)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.checks(t, result)
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := pathutil.Join(dir, "test.sql")
	if err := os.WriteFile(path, []byte("SELECT 1;\nSELECT 2;"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewParser()
	result, err := p.ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Statements) != 2 {
		t.Errorf("expected 2 statements, got %d", len(result.Statements))
	}

	if _, err := p.ParseFile(""); err == nil {
		t.Error("expected error for empty filepath")
	}
	if _, err := p.ParseFile(pathutil.Join(dir, "missing.sql")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseToAST_BridgesEnums(t *testing.T) {
	stmts, err := ParseToAST("SELECT a FROM t1 UNION ALL SELECT b FROM t2")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}

	raw := ast.Inner[ast.RawStmt](stmts[0])
	if raw == nil {
		t.Fatal("expected RawStmt root")
	}
	sel := ast.Inner[ast.SelectStmt](raw.Stmt)
	if sel == nil {
		t.Fatalf("expected SelectStmt, got %q", raw.Stmt.Kind)
	}
	if sel.Op != ast.SetOpUnion {
		t.Errorf("expected op %d (union), got %d", ast.SetOpUnion, sel.Op)
	}
	if !sel.All {
		t.Error("expected all=true for UNION ALL")
	}
	if sel.Larg == nil || sel.Rarg == nil {
		t.Fatal("expected both set-operation operands")
	}
	if len(sel.Larg.FromClause) != 1 {
		t.Fatalf("expected 1 FROM entry in left operand, got %d", len(sel.Larg.FromClause))
	}
	rv := ast.Inner[ast.RangeVar](sel.Larg.FromClause[0])
	if rv == nil || rv.Relname != "t1" {
		t.Errorf("unexpected left relation: %+v", sel.Larg.FromClause[0].Val)
	}
	if !rv.Inh {
		t.Error("expected inh=true for plain table reference")
	}
}

func TestParseToAST_Constants(t *testing.T) {
	stmts, err := ParseToAST("SELECT 42, 'hello', 1.5")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	raw := ast.Inner[ast.RawStmt](stmts[0])
	sel := ast.Inner[ast.SelectStmt](raw.Stmt)
	if len(sel.TargetList) != 3 {
		t.Fatalf("expected 3 targets, got %d", len(sel.TargetList))
	}

	vals := make([]*ast.Node, 3)
	for i, tgt := range sel.TargetList {
		rt := ast.Inner[ast.ResTarget](tgt)
		if rt == nil {
			t.Fatalf("target %d: expected ResTarget", i)
		}
		c := ast.Inner[ast.AConst](rt.Val)
		if c == nil {
			t.Fatalf("target %d: expected A_Const, got %q", i, rt.Val.Kind)
		}
		vals[i] = c.Val
	}

	if i := ast.Inner[ast.Integer](vals[0]); i == nil || i.Ival != 42 {
		t.Errorf("expected Integer 42, got %+v", vals[0])
	}
	if s := ast.Inner[ast.String](vals[1]); s == nil || s.Str != "hello" {
		t.Errorf("expected String hello, got %+v", vals[1])
	}
	if f := ast.Inner[ast.Float](vals[2]); f == nil || f.Str != "1.5" {
		t.Errorf("expected Float 1.5, got %+v", vals[2])
	}
}

func TestFingerprint(t *testing.T) {
	fp1, err := Fingerprint("SELECT a FROM t WHERE id = 1")
	if err != nil {
		t.Fatalf("fingerprint failed: %v", err)
	}
	fp2, err := Fingerprint("select a from t where id = 42")
	if err != nil {
		t.Fatalf("fingerprint failed: %v", err)
	}
	if fp1 != fp2 {
		t.Errorf("fingerprints differ across constants: %s vs %s", fp1, fp2)
	}

	if _, err := Fingerprint("not sql at all;;"); err == nil {
		t.Error("expected error for invalid SQL")
	}
}

func TestNormalize(t *testing.T) {
	normalized, err := Normalize("SELECT a FROM t WHERE id = 1")
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if normalized != "SELECT a FROM t WHERE id = $1" {
		t.Errorf("unexpected normalized SQL: %s", normalized)
	}
}
