package expr

import (
	"fmt"

	"nexusdb/internal/variant"
)

// BitwiseOp enumerates the bitwise operators.
type BitwiseOp int

const (
	BitAnd BitwiseOp = iota
	BitOr
	BitXor
	BitShl
	BitShr
)

func (op BitwiseOp) String() string {
	switch op {
	case BitAnd:
		return "&"
	case BitOr:
		return "|"
	case BitXor:
		return "^"
	case BitShl:
		return "<<"
	case BitShr:
		return ">>"
	default:
		return "?"
	}
}

// BinaryBitwise is a binary bitwise operator node: & | ^ << >>. Bitwise
// operators require integer operands; a non-integer, non-null operand
// fails Validate, and the result type is Null whenever either operand's
// result type is not an integer.
type BinaryBitwise struct {
	Op          BitwiseOp
	Left, Right Node
}

func (n *BinaryBitwise) resultType(ctx *Context, typeOf func(Node, *Context) (variant.Type, error)) (variant.Type, error) {
	lt, err := typeOf(n.Left, ctx)
	if err != nil {
		return variant.TypeNull, err
	}
	rt, err := typeOf(n.Right, ctx)
	if err != nil {
		return variant.TypeNull, err
	}
	if lt == variant.TypeNull || rt == variant.TypeNull {
		return variant.TypeNull, nil
	}
	if !variant.IsInteger(lt) || !variant.IsInteger(rt) {
		return variant.TypeNull, nil
	}
	return variant.PromoteNumeric(lt, rt), nil
}

func (n *BinaryBitwise) ResultType(ctx *Context) (variant.Type, error) {
	return n.resultType(ctx, Node.ResultType)
}

func (n *BinaryBitwise) ColumnDataType(ctx *Context) (variant.Type, error) {
	return n.resultType(ctx, Node.ColumnDataType)
}

func (n *BinaryBitwise) Validate(ctx *Context) error {
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
	if lt != variant.TypeNull && !variant.IsInteger(lt) {
		return fmt.Errorf("expr: left operand to %s must be an integer or null, got %s", n.Op, lt)
	}
	if rt != variant.TypeNull && !variant.IsInteger(rt) {
		return fmt.Errorf("expr: right operand to %s must be an integer or null, got %s", n.Op, rt)
	}
	return nil
}

func (n *BinaryBitwise) Evaluate(ctx *Context) (variant.Variant, error) {
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
	if !variant.IsInteger(lv.Type()) || !variant.IsInteger(rv.Type()) {
		return variant.Null(), nil
	}
	a, _ := lv.Uint64()
	b, _ := rv.Uint64()
	var r uint64
	switch n.Op {
	case BitAnd:
		r = a & b
	case BitOr:
		r = a | b
	case BitXor:
		r = a ^ b
	case BitShl:
		r = a << (b & 63)
	case BitShr:
		r = a >> (b & 63)
	default:
		return variant.Null(), fmt.Errorf("expr: unknown bitwise operator %v", n.Op)
	}
	resultType := variant.PromoteNumeric(lv.Type(), rv.Type())
	if isSignedResult(resultType) {
		return castSignedResult(resultType, int64(r)), nil
	}
	return castUnsignedResult(resultType, r), nil
}

func (n *BinaryBitwise) Text() string { return n.Op.String() }

func (n *BinaryBitwise) Clone() Node {
	return &BinaryBitwise{Op: n.Op, Left: n.Left.Clone(), Right: n.Right.Clone()}
}

// UnaryBitwise is the unary bitwise-not operator node: ~.
type UnaryBitwise struct {
	Operand Node
}

func (n *UnaryBitwise) ResultType(ctx *Context) (variant.Type, error) {
	t, err := n.Operand.ResultType(ctx)
	if err != nil {
		return variant.TypeNull, err
	}
	if t == variant.TypeNull || !variant.IsInteger(t) {
		return variant.TypeNull, nil
	}
	return t, nil
}

func (n *UnaryBitwise) ColumnDataType(ctx *Context) (variant.Type, error) {
	t, err := n.Operand.ColumnDataType(ctx)
	if err != nil {
		return variant.TypeNull, err
	}
	if t == variant.TypeNull || !variant.IsInteger(t) {
		return variant.TypeNull, nil
	}
	return t, nil
}

func (n *UnaryBitwise) Validate(ctx *Context) error {
	if err := n.Operand.Validate(ctx); err != nil {
		return err
	}
	t, err := n.Operand.ResultType(ctx)
	if err != nil {
		return err
	}
	if t != variant.TypeNull && !variant.IsInteger(t) {
		return fmt.Errorf("expr: operand to ~ must be an integer or null, got %s", t)
	}
	return nil
}

func (n *UnaryBitwise) Evaluate(ctx *Context) (variant.Variant, error) {
	v, err := n.Operand.Evaluate(ctx)
	if err != nil {
		return variant.Null(), err
	}
	if v.IsNull() || !variant.IsInteger(v.Type()) {
		return variant.Null(), nil
	}
	a, _ := v.Uint64()
	r := ^a
	if isSignedResult(v.Type()) {
		return castSignedResult(v.Type(), int64(r)), nil
	}
	return castUnsignedResult(v.Type(), r), nil
}

func (n *UnaryBitwise) Text() string { return "~" }

func (n *UnaryBitwise) Clone() Node { return &UnaryBitwise{Operand: n.Operand.Clone()} }
