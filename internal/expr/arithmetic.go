package expr

import (
	"fmt"

	"nexusdb/internal/variant"
)

// ArithOp enumerates the binary arithmetic operators.
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
	Mod
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	default:
		return "?"
	}
}

// BinaryArith is a binary arithmetic operator node: + - * / %.
type BinaryArith struct {
	Op          ArithOp
	Left, Right Node
}

func (n *BinaryArith) ResultType(ctx *Context) (variant.Type, error) {
	lt, err := n.Left.ResultType(ctx)
	if err != nil {
		return variant.TypeNull, err
	}
	rt, err := n.Right.ResultType(ctx)
	if err != nil {
		return variant.TypeNull, err
	}
	return variant.PromoteNumeric(lt, rt), nil
}

func (n *BinaryArith) ColumnDataType(ctx *Context) (variant.Type, error) {
	lt, err := n.Left.ColumnDataType(ctx)
	if err != nil {
		return variant.TypeNull, err
	}
	rt, err := n.Right.ColumnDataType(ctx)
	if err != nil {
		return variant.TypeNull, err
	}
	return variant.PromoteNumeric(lt, rt), nil
}

func (n *BinaryArith) Validate(ctx *Context) error {
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
	if lt != variant.TypeNull && !variant.IsNumeric(lt) {
		return fmt.Errorf("expr: %s operand to %s must be numeric or null, got %s", "left", n.Op, lt)
	}
	if rt != variant.TypeNull && !variant.IsNumeric(rt) {
		return fmt.Errorf("expr: %s operand to %s must be numeric or null, got %s", "right", n.Op, rt)
	}
	return nil
}

func (n *BinaryArith) Evaluate(ctx *Context) (variant.Variant, error) {
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
	resultType := variant.PromoteNumeric(lv.Type(), rv.Type())
	return evalArith(n.Op, resultType, lv, rv)
}

func evalArith(op ArithOp, resultType variant.Type, lv, rv variant.Variant) (variant.Variant, error) {
	if resultType == variant.TypeDouble || resultType == variant.TypeFloat {
		a, _ := lv.Float64()
		b, _ := rv.Float64()
		var r float64
		switch op {
		case Add:
			r = a + b
		case Sub:
			r = a - b
		case Mul:
			r = a * b
		case Div:
			if b == 0 {
				return variant.Null(), fmt.Errorf("expr: division by zero")
			}
			r = a / b
		case Mod:
			return variant.Null(), fmt.Errorf("expr: %% is not defined for floating-point operands")
		}
		if resultType == variant.TypeFloat {
			return variant.FromFloat32(float32(r)), nil
		}
		return variant.FromFloat64(r), nil
	}

	if variant.IsInteger(resultType) && isSignedResult(resultType) {
		a, _ := lv.Int64()
		b, _ := rv.Int64()
		r, err := intArith(op, a, b)
		if err != nil {
			return variant.Null(), err
		}
		return castSignedResult(resultType, r), nil
	}
	if variant.IsInteger(resultType) {
		a, _ := lv.Uint64()
		b, _ := rv.Uint64()
		r, err := uintArith(op, a, b)
		if err != nil {
			return variant.Null(), err
		}
		return castUnsignedResult(resultType, r), nil
	}
	return variant.Null(), fmt.Errorf("expr: %s is not defined for result type %s", op, resultType)
}

func isSignedResult(t variant.Type) bool {
	switch t {
	case variant.TypeInt8, variant.TypeInt16, variant.TypeInt32, variant.TypeInt64:
		return true
	default:
		return false
	}
}

func intArith(op ArithOp, a, b int64) (int64, error) {
	switch op {
	case Add:
		return a + b, nil
	case Sub:
		return a - b, nil
	case Mul:
		return a * b, nil
	case Div:
		if b == 0 {
			return 0, fmt.Errorf("expr: division by zero")
		}
		return a / b, nil
	case Mod:
		if b == 0 {
			return 0, fmt.Errorf("expr: division by zero")
		}
		return a % b, nil
	default:
		return 0, fmt.Errorf("expr: unknown arithmetic operator %v", op)
	}
}

func uintArith(op ArithOp, a, b uint64) (uint64, error) {
	switch op {
	case Add:
		return a + b, nil
	case Sub:
		return a - b, nil
	case Mul:
		return a * b, nil
	case Div:
		if b == 0 {
			return 0, fmt.Errorf("expr: division by zero")
		}
		return a / b, nil
	case Mod:
		if b == 0 {
			return 0, fmt.Errorf("expr: division by zero")
		}
		return a % b, nil
	default:
		return 0, fmt.Errorf("expr: unknown arithmetic operator %v", op)
	}
}

func castSignedResult(t variant.Type, v int64) variant.Variant {
	switch t {
	case variant.TypeInt8:
		return variant.FromInt8(int8(v))
	case variant.TypeInt16:
		return variant.FromInt16(int16(v))
	case variant.TypeInt32:
		return variant.FromInt32(int32(v))
	default:
		return variant.FromInt64(v)
	}
}

func castUnsignedResult(t variant.Type, v uint64) variant.Variant {
	switch t {
	case variant.TypeUInt8:
		return variant.FromUint8(uint8(v))
	case variant.TypeUInt16:
		return variant.FromUint16(uint16(v))
	case variant.TypeUInt32:
		return variant.FromUint32(uint32(v))
	default:
		return variant.FromUint64(v)
	}
}

func (n *BinaryArith) Text() string { return n.Op.String() }

func (n *BinaryArith) Clone() Node {
	return &BinaryArith{Op: n.Op, Left: n.Left.Clone(), Right: n.Right.Clone()}
}

// UnaryArith is a unary arithmetic operator node: + or -.
type UnaryArith struct {
	Negate  bool // false = unary +, true = unary -
	Operand Node
}

func (n *UnaryArith) ResultType(ctx *Context) (variant.Type, error) {
	t, err := n.Operand.ResultType(ctx)
	if err != nil {
		return variant.TypeNull, err
	}
	return variant.PromoteUnary(t), nil
}

func (n *UnaryArith) ColumnDataType(ctx *Context) (variant.Type, error) {
	t, err := n.Operand.ColumnDataType(ctx)
	if err != nil {
		return variant.TypeNull, err
	}
	return variant.PromoteUnary(t), nil
}

func (n *UnaryArith) Validate(ctx *Context) error {
	if err := n.Operand.Validate(ctx); err != nil {
		return err
	}
	t, err := n.Operand.ResultType(ctx)
	if err != nil {
		return err
	}
	if t != variant.TypeNull && !variant.IsNumeric(t) {
		return fmt.Errorf("expr: operand to unary %s must be numeric or null, got %s", n.Text(), t)
	}
	return nil
}

func (n *UnaryArith) Evaluate(ctx *Context) (variant.Variant, error) {
	v, err := n.Operand.Evaluate(ctx)
	if err != nil {
		return variant.Null(), err
	}
	if v.IsNull() {
		return variant.Null(), nil
	}
	promoted := variant.PromoteUnary(v.Type())
	if !n.Negate {
		return evalArith(Add, promoted, v, zeroOf(promoted))
	}
	return evalArith(Sub, promoted, zeroOf(promoted), v)
}

func zeroOf(t variant.Type) variant.Variant {
	switch t {
	case variant.TypeDouble:
		return variant.FromFloat64(0)
	case variant.TypeFloat:
		return variant.FromFloat32(0)
	case variant.TypeInt64:
		return variant.FromInt64(0)
	case variant.TypeUInt64:
		return variant.FromUint64(0)
	default:
		return variant.FromInt32(0)
	}
}

func (n *UnaryArith) Text() string {
	if n.Negate {
		return "-"
	}
	return "+"
}

func (n *UnaryArith) Clone() Node {
	return &UnaryArith{Negate: n.Negate, Operand: n.Operand.Clone()}
}
