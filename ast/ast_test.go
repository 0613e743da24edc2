package ast

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNodeUnmarshal_TaggedObject(t *testing.T) {
	input := `{"RangeVar": {"relname": "users", "schemaname": "public", "inh": true, "location": 14}}`

	var node Node
	if err := json.Unmarshal([]byte(input), &node); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if node.Kind != "RangeVar" {
		t.Errorf("expected kind RangeVar, got %q", node.Kind)
	}
	rv, ok := node.Val.(*RangeVar)
	if !ok {
		t.Fatalf("expected *RangeVar payload, got %T", node.Val)
	}
	if rv.Relname != "users" || rv.Schemaname != "public" || !rv.Inh || rv.Location != 14 {
		t.Errorf("unexpected payload: %+v", rv)
	}
}

func TestNodeUnmarshal_UnknownKind(t *testing.T) {
	input := `{"MergeStmt": {"relation": {"relname": "t"}}}`

	var node Node
	if err := json.Unmarshal([]byte(input), &node); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if node.Kind != "MergeStmt" {
		t.Errorf("expected kind MergeStmt, got %q", node.Kind)
	}
	u, ok := node.Val.(*Unknown)
	if !ok {
		t.Fatalf("expected *Unknown payload, got %T", node.Val)
	}

	// The raw payload must survive re-encoding untouched.
	out, err := json.Marshal(&node)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}
	if _, exists := decoded["MergeStmt"]; !exists {
		t.Errorf("re-encoded node lost its kind: %s", out)
	}
	var want, got any
	if err := json.Unmarshal(u.Raw, &want); err != nil {
		t.Fatalf("raw payload does not decode: %v", err)
	}
	if err := json.Unmarshal(decoded["MergeStmt"], &got); err != nil || !reflect.DeepEqual(got, want) {
		t.Errorf("re-encoded payload = %s, want %s", decoded["MergeStmt"], u.Raw)
	}
}

func TestNodeUnmarshal_BareArrayBecomesList(t *testing.T) {
	input := `[{"String": {"str": "a"}}, {"String": {"str": "b"}}]`

	var node Node
	if err := json.Unmarshal([]byte(input), &node); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	list, ok := node.Val.(*List)
	if !ok {
		t.Fatalf("expected *List payload, got %T", node.Val)
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list.Items))
	}
	if s := Inner[String](list.Items[1]); s == nil || s.Str != "b" {
		t.Errorf("unexpected second item: %+v", list.Items[1].Val)
	}
}

func TestNodeUnmarshal_Null(t *testing.T) {
	var node Node
	if err := json.Unmarshal([]byte("null"), &node); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if node.Kind != "" || node.Val != nil {
		t.Errorf("expected empty node, got %+v", node)
	}
}

func TestNodeUnmarshal_MultipleKeysRejected(t *testing.T) {
	input := `{"RangeVar": {}, "Alias": {}}`
	var node Node
	if err := json.Unmarshal([]byte(input), &node); err == nil {
		t.Error("expected error for multi-key node")
	}
}

func TestUnmarshalStatements(t *testing.T) {
	input := `[{"RawStmt": {"stmt": {"SelectStmt": {"op": 0, "targetList": [
		{"ResTarget": {"val": {"ColumnRef": {"fields": [{"String": {"str": "a"}}]}}}}
	]}}, "stmt_len": 8}}]`

	stmts, err := UnmarshalStatements([]byte(input))
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}

	raw := Inner[RawStmt](stmts[0])
	if raw == nil {
		t.Fatalf("expected RawStmt, got %q", stmts[0].Kind)
	}
	if raw.StmtLen != 8 {
		t.Errorf("expected stmt_len 8, got %d", raw.StmtLen)
	}
	sel := Inner[SelectStmt](raw.Stmt)
	if sel == nil {
		t.Fatalf("expected SelectStmt, got %q", raw.Stmt.Kind)
	}
	if len(sel.TargetList) != 1 {
		t.Fatalf("expected 1 target, got %d", len(sel.TargetList))
	}
	rt := Inner[ResTarget](sel.TargetList[0])
	if rt == nil {
		t.Fatal("expected ResTarget in target list")
	}
	cr := Inner[ColumnRef](rt.Val)
	if cr == nil || len(cr.Fields) != 1 {
		t.Fatal("expected single-field ColumnRef")
	}
	if s := Inner[String](cr.Fields[0]); s == nil || s.Str != "a" {
		t.Errorf("unexpected column field: %+v", cr.Fields[0])
	}
}

func TestMarshalStatements_RoundTrip(t *testing.T) {
	stmts := []*Node{
		Wrap("RawStmt", &RawStmt{
			Stmt: Wrap("SelectStmt", &SelectStmt{
				TargetList: []*Node{
					Wrap("ResTarget", &ResTarget{Val: Wrap("A_Const", &AConst{
						Val: Wrap("Integer", &Integer{Ival: 1}),
					})}),
				},
			}),
		}),
	}

	data, err := MarshalStatements(stmts)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	decoded, err := UnmarshalStatements(data)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	raw := Inner[RawStmt](decoded[0])
	if raw == nil {
		t.Fatal("expected RawStmt after round trip")
	}
	sel := Inner[SelectStmt](raw.Stmt)
	if sel == nil || len(sel.TargetList) != 1 {
		t.Fatal("expected SelectStmt with 1 target after round trip")
	}
	rt := Inner[ResTarget](sel.TargetList[0])
	c := Inner[AConst](rt.Val)
	if c == nil {
		t.Fatal("expected A_Const after round trip")
	}
	if i := Inner[Integer](c.Val); i == nil || i.Ival != 1 {
		t.Errorf("unexpected constant: %+v", c.Val)
	}
}
