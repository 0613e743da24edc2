// Package ast models the PostgreSQL parse-tree wire format: a JSON tree of
// tagged objects where every node is an object with exactly one key (the
// node kind) whose value is the payload. The parser package produces this
// format; the extractor and deparser packages consume it.
package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node is one tagged parse-tree node. Kind is the wire tag (for example
// "SelectStmt"); Val holds a pointer to the payload struct for that kind,
// or *Unknown when the kind has no registered payload type.
type Node struct {
	Kind string
	Val  any
}

// Unknown preserves a node whose kind has no registered payload. The raw
// payload survives re-encoding untouched.
type Unknown struct {
	Raw json.RawMessage
}

// Inner returns the payload when it is the concrete type T, or nil.
func Inner[T any](n *Node) *T {
	if n == nil {
		return nil
	}
	v, _ := n.Val.(*T)
	return v
}

// nodeTypes maps wire tags to payload constructors.
var nodeTypes = map[string]func() any{}

func register(kind string, fn func() any) {
	nodeTypes[kind] = fn
}

// UnmarshalJSON decodes a one-key tagged object. JSON null decodes to a
// node with empty kind, which callers treat as absent.
func (n *Node) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	// A bare JSON array is an untagged list; normalize it to a List node so
	// callers see one shape for both spellings.
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []*Node
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("ast: decoding list: %w", err)
		}
		n.Kind = "List"
		n.Val = &List{Items: items}
		return nil
	}
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("ast: node is not an object: %w", err)
	}
	// An empty object is a NIL slot (plain DISTINCT produces one); leave
	// the node empty.
	if len(tagged) == 0 {
		return nil
	}
	if len(tagged) != 1 {
		return fmt.Errorf("ast: node must have exactly one key, got %d", len(tagged))
	}
	for kind, payload := range tagged {
		n.Kind = kind
		ctor, ok := nodeTypes[kind]
		if !ok {
			n.Val = &Unknown{Raw: payload}
			return nil
		}
		v := ctor()
		if err := json.Unmarshal(payload, v); err != nil {
			return fmt.Errorf("ast: decoding %s: %w", kind, err)
		}
		n.Val = v
	}
	return nil
}

// MarshalJSON re-encodes the node as a one-key tagged object.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil || n.Kind == "" {
		return []byte("null"), nil
	}
	var payload any = n.Val
	if u, ok := n.Val.(*Unknown); ok {
		payload = u.Raw
	}
	return json.Marshal(map[string]any{n.Kind: payload})
}

// UnmarshalStatements decodes a top-level parse result: a JSON array of
// RawStmt wrappers.
func UnmarshalStatements(data []byte) ([]*Node, error) {
	var stmts []*Node
	if err := json.Unmarshal(data, &stmts); err != nil {
		return nil, fmt.Errorf("ast: decoding statement list: %w", err)
	}
	return stmts, nil
}

// MarshalStatements encodes a statement list back to the wire format.
func MarshalStatements(stmts []*Node) ([]byte, error) {
	return json.Marshal(stmts)
}

// Wrap builds a tagged node around a payload struct. The kind must match
// the payload's registered tag; Wrap is a convenience for tests and for
// callers assembling trees by hand.
func Wrap(kind string, val any) *Node {
	return &Node{Kind: kind, Val: val}
}
