package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pgscope/pgscope/deparser"
)

// ignoreLocations drops position fields, which legitimately shift between
// the original text and the canonical rendering.
var ignoreLocations = cmp.FilterPath(func(p cmp.Path) bool {
	if sf, ok := p.Last().(cmp.StructField); ok {
		switch sf.Name() {
		case "Location", "StmtLocation", "StmtLen":
			return true
		}
	}
	return false
}, cmp.Ignore())

// TestRoundTrip parses, deparses, and reparses: the two parse trees must
// match. This is the deparser's core correctness property.
func TestRoundTrip(t *testing.T) {
	queries := []string{
		"SELECT 1",
		"SELECT a FROM foo",
		"SELECT * FROM foo",
		"SELECT a AS b FROM foo",
		"SELECT a, b FROM foo f",
		"SELECT a FROM public.foo",
		"SELECT * FROM x WHERE a = 1",
		"SELECT * FROM x WHERE a = 1 AND (b = 2 OR c = 3)",
		"SELECT * FROM x WHERE a IS NULL",
		"SELECT * FROM x WHERE a IS NOT NULL",
		"SELECT * FROM x WHERE a IN (1, 2, 3)",
		"SELECT * FROM x WHERE a NOT IN (1, 2)",
		"SELECT * FROM x WHERE name LIKE '%smith%'",
		"SELECT * FROM x WHERE a BETWEEN 1 AND 10",
		"SELECT count(*) FROM t",
		"SELECT count(DISTINCT a) FROM t",
		"SELECT DISTINCT a FROM t",
		"SELECT a FROM t GROUP BY a",
		"SELECT a FROM t ORDER BY a DESC NULLS LAST",
		"SELECT a FROM t LIMIT 10 OFFSET 5",
		"SELECT a FROM t FOR UPDATE",
		"SELECT * FROM a JOIN b ON a.id = b.id",
		"SELECT * FROM a LEFT JOIN b ON a.id = b.id",
		"SELECT * FROM a CROSS JOIN b",
		"SELECT * FROM t WHERE EXISTS (SELECT 1 FROM u WHERE u.id = t.id)",
		"SELECT * FROM t WHERE id IN (SELECT id FROM u)",
		"SELECT a FROM t1 UNION SELECT b FROM t2",
		"SELECT a FROM t1 UNION ALL SELECT b FROM t2",
		"SELECT a FROM t1 INTERSECT SELECT b FROM t2",
		"SELECT a FROM t1 EXCEPT SELECT b FROM t2",
		"WITH c AS (SELECT 1) SELECT * FROM c",
		"SELECT CASE WHEN a > 0 THEN 'pos' ELSE 'neg' END FROM t",
		"SELECT COALESCE(a, 0) FROM t",
		"INSERT INTO t DEFAULT VALUES",
		"INSERT INTO t (a) VALUES (1)",
		"INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'y')",
		"INSERT INTO t (a) SELECT a FROM s",
		"INSERT INTO t (a) VALUES (1) ON CONFLICT (a) DO UPDATE SET a = excluded.a",
		"INSERT INTO t (a) VALUES (1) ON CONFLICT DO NOTHING",
		"INSERT INTO t (a) VALUES (1) RETURNING id",
		"UPDATE t SET a = 1",
		"UPDATE t SET a = 1 WHERE id = 2",
		"UPDATE t SET a = 1 FROM u WHERE t.id = u.id",
		"DELETE FROM t",
		"DELETE FROM t WHERE id = 1",
		"DELETE FROM t USING u WHERE t.id = u.id",
		"TRUNCATE TABLE t",
		"DROP TABLE a.b, c",
		"DROP TABLE IF EXISTS t CASCADE",
		"BEGIN",
		"COMMIT",
		"ROLLBACK",
	}

	for _, sql := range queries {
		t.Run(sql, func(t *testing.T) {
			first, err := ParseToAST(sql)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}

			rendered, err := deparser.DeparseStatements(first)
			if err != nil {
				t.Fatalf("deparse failed: %v", err)
			}

			second, err := ParseToAST(rendered)
			if err != nil {
				t.Fatalf("reparse of %q failed: %v", rendered, err)
			}

			if diff := cmp.Diff(first, second, ignoreLocations); diff != "" {
				t.Errorf("round trip drift for %q (rendered %q):\n%s", sql, rendered, diff)
			}
		})
	}
}

// TestDeparseDeterministic renders the same tree repeatedly.
func TestDeparseDeterministic(t *testing.T) {
	stmts, err := ParseToAST("SELECT a, count(*) FROM t WHERE b > 1 GROUP BY a ORDER BY a")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	first, err := deparser.DeparseStatements(stmts)
	if err != nil {
		t.Fatalf("deparse failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		out, err := deparser.DeparseStatements(stmts)
		if err != nil {
			t.Fatalf("deparse failed: %v", err)
		}
		if out != first {
			t.Fatalf("nondeterministic deparse: %q vs %q", out, first)
		}
	}
}

func TestCanonicalRendering(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"SELECT a FROM foo", `SELECT "a" FROM "foo"`},
		{"select a from foo", `SELECT "a" FROM "foo"`},
		{"SELECT * FROM ONLY foo", `SELECT * FROM ONLY "foo"`},
		{"SELECT 1; SELECT 2", "SELECT 1; SELECT 2"},
	}

	for _, tt := range tests {
		stmts, err := ParseToAST(tt.sql)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tt.sql, err)
		}
		got, err := deparser.DeparseStatements(stmts)
		if err != nil {
			t.Fatalf("deparse %q failed: %v", tt.sql, err)
		}
		if got != tt.want {
			t.Errorf("canonical(%q) = %q, want %q", tt.sql, got, tt.want)
		}
	}
}
