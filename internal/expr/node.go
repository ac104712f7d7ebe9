package expr

import "nexusdb/internal/variant"

// Node is the common interface every expression tree node implements:
// result-type inference, persisted-column-type inference, recursive
// validation, evaluation, a diagnostic name, and a deep copy.
type Node interface {
	// ResultType returns the VariantType this node evaluates to against
	// ctx, propagating through children per the promotion rules.
	ResultType(ctx *Context) (variant.Type, error)
	// ColumnDataType returns the type this node would take on if
	// persisted as a column, using the same promotion rules against the
	// datasets' declared column types rather than evaluated values.
	ColumnDataType(ctx *Context) (variant.Type, error)
	// Validate recursively checks operand types are admissible for this
	// node and its children.
	Validate(ctx *Context) error
	// Evaluate computes this node's value under three-valued logic.
	Evaluate(ctx *Context) (variant.Variant, error)
	// Text returns a human-readable operator name for diagnostics.
	Text() string
	// Clone returns a deep, independent copy of the node.
	Clone() Node
}
