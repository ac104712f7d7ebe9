package expr

import "nexusdb/internal/variant"

// Const is a literal value node.
type Const struct {
	Value variant.Variant
}

func (n *Const) ResultType(*Context) (variant.Type, error) { return n.Value.Type(), nil }

func (n *Const) ColumnDataType(*Context) (variant.Type, error) { return n.Value.Type(), nil }

func (n *Const) Validate(*Context) error { return nil }

func (n *Const) Evaluate(*Context) (variant.Variant, error) { return n.Value, nil }

func (n *Const) Text() string { return "Const" }

func (n *Const) Clone() Node { return &Const{Value: n.Value} }

// ColumnRef resolves to one column of one dataset in the evaluation
// context, identified by a (dataset-index, column-index) pair that is
// already resolved by the planner (out of this package's scope) rather
// than looked up by name at evaluation time.
type ColumnRef struct {
	DatasetIndex int
	ColumnIndex  int
}

func (n *ColumnRef) resolve(ctx *Context) (Dataset, error) {
	ds, ok := ctx.Dataset(n.DatasetIndex)
	if !ok {
		return nil, ErrColumnRef
	}
	if n.ColumnIndex < 0 || n.ColumnIndex >= ds.ColumnCount() {
		return nil, ErrColumnRef
	}
	return ds, nil
}

func (n *ColumnRef) ResultType(ctx *Context) (variant.Type, error) {
	ds, err := n.resolve(ctx)
	if err != nil {
		return variant.TypeNull, err
	}
	return ds.ColumnDataType(n.ColumnIndex), nil
}

func (n *ColumnRef) ColumnDataType(ctx *Context) (variant.Type, error) {
	return n.ResultType(ctx)
}

func (n *ColumnRef) Validate(ctx *Context) error {
	_, err := n.resolve(ctx)
	return err
}

func (n *ColumnRef) Evaluate(ctx *Context) (variant.Variant, error) {
	ds, err := n.resolve(ctx)
	if err != nil {
		return variant.Null(), err
	}
	return ds.ColumnValue(n.ColumnIndex)
}

func (n *ColumnRef) Text() string { return "ColumnRef" }

func (n *ColumnRef) Clone() Node {
	return &ColumnRef{DatasetIndex: n.DatasetIndex, ColumnIndex: n.ColumnIndex}
}
