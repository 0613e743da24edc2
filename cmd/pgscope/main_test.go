package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// execute runs the CLI with fresh flag state and captures stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	fileFlag = ""
	outputFormat = "text"

	cmd := buildCommand()
	cmd.SetArgs(args)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}

	err := cmd.Execute()
	return out.String(), err
}

func TestTablesCommand_Text(t *testing.T) {
	out, err := execute(t, "", "tables", "SELECT a FROM foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "select\tfoo") {
		t.Errorf("expected table line in output, got %q", out)
	}
}

func TestTablesCommand_JSON(t *testing.T) {
	out, err := execute(t, "", "tables", "-o", "json", "WITH c AS (SELECT 1) SELECT * FROM c, bar b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result struct {
		Tables []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"tables"`
		Aliases  map[string]string `json:"aliases"`
		CTENames []string          `json:"cte_names"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out, err)
	}

	if len(result.Tables) != 1 || result.Tables[0].Name != "bar" || result.Tables[0].Type != "select" {
		t.Errorf("unexpected tables: %+v", result.Tables)
	}
	if result.Aliases["b"] != "bar" {
		t.Errorf("unexpected aliases: %v", result.Aliases)
	}
	if len(result.CTENames) != 1 || result.CTENames[0] != "c" {
		t.Errorf("unexpected cte names: %v", result.CTENames)
	}
}

func TestDeparseCommand(t *testing.T) {
	out, err := execute(t, "", "deparse", "select a from foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != `SELECT "a" FROM "foo"` {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestJSONCommand(t *testing.T) {
	out, err := execute(t, "", "json", "SELECT 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"RawStmt"`) || !strings.Contains(out, `"SelectStmt"`) {
		t.Errorf("expected wire-format JSON, got %q", out)
	}
}

func TestFingerprintCommand(t *testing.T) {
	out1, err := execute(t, "", "fingerprint", "SELECT a FROM t WHERE id = 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out2, err := execute(t, "", "fingerprint", "SELECT a FROM t WHERE id = 99")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out1 != out2 {
		t.Errorf("fingerprints differ: %q vs %q", out1, out2)
	}
}

func TestNormalizeCommand(t *testing.T) {
	out, err := execute(t, "", "normalize", "SELECT a FROM t WHERE id = 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "SELECT a FROM t WHERE id = $1" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestStdinInput(t *testing.T) {
	out, err := execute(t, "SELECT a FROM foo", "tables")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "foo") {
		t.Errorf("expected foo in output, got %q", out)
	}
}

func TestInvalidSQLExitCode(t *testing.T) {
	if code := run([]string{"tables", "SELECT FROM WHERE"}); code != exitParse {
		t.Errorf("expected exit code %d, got %d", exitParse, code)
	}
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := execute(t, "", "tables", "-o", "xml", "SELECT 1")
	if err == nil {
		t.Error("expected error for unknown output format")
	}
}
