package expr

import (
	"fmt"

	"nexusdb/internal/variant"
)

// LogicalOp enumerates AND/OR.
type LogicalOp int

const (
	And LogicalOp = iota
	Or
)

func (op LogicalOp) String() string {
	if op == And {
		return "AND"
	}
	return "OR"
}

// Logical is a binary AND/OR node implementing full SQL three-valued
// logic: both operands are always evaluated, giving a commutative truth
// table rather than a short-circuiting one — NULL OR true must equal
// true regardless of which operand is which.
type Logical struct {
	Op          LogicalOp
	Left, Right Node
}

func (n *Logical) ResultType(*Context) (variant.Type, error) { return variant.TypeBool, nil }

func (n *Logical) ColumnDataType(*Context) (variant.Type, error) { return variant.TypeBool, nil }

func (n *Logical) Validate(ctx *Context) error {
	if err := n.Left.Validate(ctx); err != nil {
		return err
	}
	if err := n.Right.Validate(ctx); err != nil {
		return err
	}
	lt, err := n.Left.ResultType(ctx)
	if err != nil {
		return err
	}
	rt, err := n.Right.ResultType(ctx)
	if err != nil {
		return err
	}
	if lt != variant.TypeNull && lt != variant.TypeBool {
		return fmt.Errorf("expr: left operand to %s must be boolean or null, got %s", n.Op, lt)
	}
	if rt != variant.TypeNull && rt != variant.TypeBool {
		return fmt.Errorf("expr: right operand to %s must be boolean or null, got %s", n.Op, rt)
	}
	return nil
}

// trivalue is the internal three-state representation: a nil pointer
// means unknown (NULL).
type trivalue = *bool

func toTri(v variant.Variant) trivalue {
	if v.IsNull() {
		return nil
	}
	b, ok := v.Bool()
	if !ok {
		return nil
	}
	return &b
}

func (n *Logical) Evaluate(ctx *Context) (variant.Variant, error) {
	lv, err := n.Left.Evaluate(ctx)
	if err != nil {
		return variant.Null(), err
	}
	rv, err := n.Right.Evaluate(ctx)
	if err != nil {
		return variant.Null(), err
	}
	l, r := toTri(lv), toTri(rv)
	if n.Op == And {
		return triAnd(l, r), nil
	}
	return triOr(l, r), nil
}

func triAnd(l, r trivalue) variant.Variant {
	if (l != nil && !*l) || (r != nil && !*r) {
		return variant.FromBool(false)
	}
	if l == nil || r == nil {
		return variant.Null()
	}
	return variant.FromBool(*l && *r)
}

func triOr(l, r trivalue) variant.Variant {
	if (l != nil && *l) || (r != nil && *r) {
		return variant.FromBool(true)
	}
	if l == nil || r == nil {
		return variant.Null()
	}
	return variant.FromBool(*l || *r)
}

func (n *Logical) Text() string { return n.Op.String() }

func (n *Logical) Clone() Node {
	return &Logical{Op: n.Op, Left: n.Left.Clone(), Right: n.Right.Clone()}
}

// Not is the unary logical negation node. NOT NULL is NULL.
type Not struct {
	Operand Node
}

func (n *Not) ResultType(*Context) (variant.Type, error) { return variant.TypeBool, nil }

func (n *Not) ColumnDataType(*Context) (variant.Type, error) { return variant.TypeBool, nil }

func (n *Not) Validate(ctx *Context) error {
	if err := n.Operand.Validate(ctx); err != nil {
		return err
	}
	t, err := n.Operand.ResultType(ctx)
	if err != nil {
		return err
	}
	if t != variant.TypeNull && t != variant.TypeBool {
		return fmt.Errorf("expr: operand to NOT must be boolean or null, got %s", t)
	}
	return nil
}

func (n *Not) Evaluate(ctx *Context) (variant.Variant, error) {
	v, err := n.Operand.Evaluate(ctx)
	if err != nil {
		return variant.Null(), err
	}
	t := toTri(v)
	if t == nil {
		return variant.Null(), nil
	}
	return variant.FromBool(!*t), nil
}

func (n *Not) Text() string { return "NOT" }

func (n *Not) Clone() Node { return &Not{Operand: n.Operand.Clone()} }
