package expr

import (
	"fmt"
	"strings"

	"nexusdb/internal/variant"
)

// Func is one registered function: its declared result type (given the
// argument types) and its evaluator.
type Func struct {
	Name       string
	ResultType func(argTypes []variant.Type) variant.Type
	Eval       func(args []variant.Variant) (variant.Variant, error)
}

// Functions is the fixed registry of scalar functions FunctionCall nodes
// dispatch against.
var Functions = map[string]*Func{
	"ABS": {
		Name:       "ABS",
		ResultType: func(argTypes []variant.Type) variant.Type { return unaryNumericResult(argTypes) },
		Eval: func(args []variant.Variant) (variant.Variant, error) {
			if len(args) != 1 {
				return variant.Null(), fmt.Errorf("expr: ABS takes exactly one argument")
			}
			v := args[0]
			if v.IsNull() {
				return variant.Null(), nil
			}
			if f, ok := v.Float64(); ok {
				if f < 0 {
					f = -f
				}
				if v.Type() == variant.TypeFloat {
					return variant.FromFloat32(float32(f)), nil
				}
				return variant.FromFloat64(f), nil
			}
			i, ok := v.Int64()
			if !ok {
				return variant.Null(), fmt.Errorf("expr: ABS requires a numeric argument")
			}
			if i < 0 {
				i = -i
			}
			return castSignedResult(variant.PromoteUnary(v.Type()), i), nil
		},
	},
	"LENGTH": {
		Name:       "LENGTH",
		ResultType: func([]variant.Type) variant.Type { return variant.TypeInt64 },
		Eval: func(args []variant.Variant) (variant.Variant, error) {
			if len(args) != 1 {
				return variant.Null(), fmt.Errorf("expr: LENGTH takes exactly one argument")
			}
			v := args[0]
			if v.IsNull() {
				return variant.Null(), nil
			}
			if s, ok := v.String(); ok {
				return variant.FromInt64(int64(len(s))), nil
			}
			if b, ok := v.Binary(); ok {
				return variant.FromInt64(int64(len(b))), nil
			}
			return variant.Null(), fmt.Errorf("expr: LENGTH requires a string or binary argument")
		},
	},
	"COALESCE": {
		Name:       "COALESCE",
		ResultType: func(argTypes []variant.Type) variant.Type {
			for _, t := range argTypes {
				if t != variant.TypeNull {
					return t
				}
			}
			return variant.TypeNull
		},
		Eval: func(args []variant.Variant) (variant.Variant, error) {
			for _, a := range args {
				if !a.IsNull() {
					return a, nil
				}
			}
			return variant.Null(), nil
		},
	},
}

func unaryNumericResult(argTypes []variant.Type) variant.Type {
	if len(argTypes) != 1 {
		return variant.TypeNull
	}
	return variant.PromoteUnary(argTypes[0])
}

// FunctionCall applies a registered Func to evaluated argument nodes.
type FunctionCall struct {
	Name string
	Args []Node
}

func (n *FunctionCall) lookup() (*Func, error) {
	f, ok := Functions[strings.ToUpper(n.Name)]
	if !ok {
		return nil, fmt.Errorf("expr: unknown function %q", n.Name)
	}
	return f, nil
}

func (n *FunctionCall) argTypes(ctx *Context, typeOf func(Node, *Context) (variant.Type, error)) ([]variant.Type, error) {
	types := make([]variant.Type, len(n.Args))
	for i, a := range n.Args {
		t, err := typeOf(a, ctx)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	return types, nil
}

func (n *FunctionCall) ResultType(ctx *Context) (variant.Type, error) {
	f, err := n.lookup()
	if err != nil {
		return variant.TypeNull, err
	}
	types, err := n.argTypes(ctx, Node.ResultType)
	if err != nil {
		return variant.TypeNull, err
	}
	return f.ResultType(types), nil
}

func (n *FunctionCall) ColumnDataType(ctx *Context) (variant.Type, error) {
	f, err := n.lookup()
	if err != nil {
		return variant.TypeNull, err
	}
	types, err := n.argTypes(ctx, Node.ColumnDataType)
	if err != nil {
		return variant.TypeNull, err
	}
	return f.ResultType(types), nil
}

func (n *FunctionCall) Validate(ctx *Context) error {
	if _, err := n.lookup(); err != nil {
		return err
	}
	for _, a := range n.Args {
		if err := a.Validate(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (n *FunctionCall) Evaluate(ctx *Context) (variant.Variant, error) {
	f, err := n.lookup()
	if err != nil {
		return variant.Null(), err
	}
	values := make([]variant.Variant, len(n.Args))
	for i, a := range n.Args {
		v, err := a.Evaluate(ctx)
		if err != nil {
			return variant.Null(), err
		}
		values[i] = v
	}
	return f.Eval(values)
}

func (n *FunctionCall) Text() string { return n.Name }

func (n *FunctionCall) Clone() Node {
	args := make([]Node, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.Clone()
	}
	return &FunctionCall{Name: n.Name, Args: args}
}
