package expr

import (
	"fmt"

	"nexusdb/internal/variant"
)

// CompareOp enumerates the comparison operators.
type CompareOp int

const (
	Lt CompareOp = iota
	Le
	Eq
	Ne
	Ge
	Gt
)

func (op CompareOp) String() string {
	switch op {
	case Lt:
		return "<"
	case Le:
		return "<="
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Ge:
		return ">="
	case Gt:
		return ">"
	default:
		return "?"
	}
}

// Comparison is a binary comparison operator node. Its result type is
// always Bool, except that a Null operand forces a Null result per
// three-valued logic.
type Comparison struct {
	Op          CompareOp
	Left, Right Node
}

func (n *Comparison) ResultType(*Context) (variant.Type, error) { return variant.TypeBool, nil }

func (n *Comparison) ColumnDataType(*Context) (variant.Type, error) { return variant.TypeBool, nil }

func (n *Comparison) Validate(ctx *Context) error {
	if err := n.Left.Validate(ctx); err != nil {
		return err
	}
	return n.Right.Validate(ctx)
}

func (n *Comparison) Evaluate(ctx *Context) (variant.Variant, error) {
	lv, err := n.Left.Evaluate(ctx)
	if err != nil {
		return variant.Null(), err
	}
	rv, err := n.Right.Evaluate(ctx)
	if err != nil {
		return variant.Null(), err
	}
	if lv.IsNull() || rv.IsNull() {
		return variant.Null(), nil
	}
	cmp, err := compareVariants(lv, rv)
	if err != nil {
		return variant.Null(), err
	}
	var result bool
	switch n.Op {
	case Lt:
		result = cmp < 0
	case Le:
		result = cmp <= 0
	case Eq:
		result = cmp == 0
	case Ne:
		result = cmp != 0
	case Ge:
		result = cmp >= 0
	case Gt:
		result = cmp > 0
	default:
		return variant.Null(), fmt.Errorf("expr: unknown comparison operator %v", n.Op)
	}
	return variant.FromBool(result), nil
}

func compareVariants(a, b variant.Variant) (int, error) {
	switch {
	case variant.IsNumeric(a.Type()) && variant.IsNumeric(b.Type()):
		return compareNumeric(a, b), nil
	case a.Type() == variant.TypeBool && b.Type() == variant.TypeBool:
		av, _ := a.Bool()
		bv, _ := b.Bool()
		switch {
		case av == bv:
			return 0, nil
		case !av:
			return -1, nil
		default:
			return 1, nil
		}
	case a.Type() == variant.TypeString && b.Type() == variant.TypeString:
		as, _ := a.String()
		bs, _ := b.String()
		switch {
		case as < bs:
			return -1, nil
		case as > bs:
			return 1, nil
		default:
			return 0, nil
		}
	case a.Type() == variant.TypeBinary && b.Type() == variant.TypeBinary:
		ab, _ := a.Binary()
		bb, _ := b.Binary()
		return compareBytesLex(ab, bb), nil
	case isDateTimeLike(a.Type()) && isDateTimeLike(b.Type()):
		ad, _ := a.DateTime()
		bd, _ := b.DateTime()
		return ad.Compare(bd), nil
	default:
		return 0, fmt.Errorf("expr: cannot compare %s with %s", a.Type(), b.Type())
	}
}

func isDateTimeLike(t variant.Type) bool {
	return t == variant.TypeDateTime || t == variant.TypeDate || t == variant.TypeTime
}

func compareBytesLex(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func compareNumeric(a, b variant.Variant) int {
	if a.Type() == variant.TypeDouble || a.Type() == variant.TypeFloat ||
		b.Type() == variant.TypeDouble || b.Type() == variant.TypeFloat {
		av, _ := a.Float64()
		bv, _ := b.Float64()
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	}
	av, _ := a.Int64()
	bv, _ := b.Int64()
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}

func (n *Comparison) Text() string { return n.Op.String() }

func (n *Comparison) Clone() Node {
	return &Comparison{Op: n.Op, Left: n.Left.Clone(), Right: n.Right.Clone()}
}
