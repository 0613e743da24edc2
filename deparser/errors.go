package deparser

import "fmt"

// UnsupportedNodeError reports a node kind the deparser has no renderer
// for. The payload rides along for diagnosis.
type UnsupportedNodeError struct {
	Kind    string
	Payload any
}

func (e *UnsupportedNodeError) Error() string {
	return fmt.Sprintf("deparser: unsupported node kind %q", e.Kind)
}

// UnsupportedTypeError reports an unknown pg_catalog type name.
type UnsupportedTypeError struct {
	Name string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("deparser: unsupported pg_catalog type %q", e.Name)
}

// UnsupportedAExprKindError reports an A_Expr sub-kind without a renderer.
type UnsupportedAExprKindError struct {
	Kind int
}

func (e *UnsupportedAExprKindError) Error() string {
	return fmt.Sprintf("deparser: unsupported A_Expr kind %d", e.Kind)
}

// UnsupportedResTargetContextError reports a ResTarget rendered in a
// context the renderer does not cover.
type UnsupportedResTargetContextError struct {
	Context Context
}

func (e *UnsupportedResTargetContextError) Error() string {
	return fmt.Sprintf("deparser: unsupported ResTarget context %d", int(e.Context))
}

// UnsupportedTransactionKindError reports a transaction statement with an
// unknown kind.
type UnsupportedTransactionKindError struct {
	Kind int
}

func (e *UnsupportedTransactionKindError) Error() string {
	return fmt.Sprintf("deparser: unsupported transaction statement kind %d", e.Kind)
}
