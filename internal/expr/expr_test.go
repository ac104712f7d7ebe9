package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusdb/internal/variant"
)

func constNull() Node { return &Const{Value: variant.Null()} }
func constBool(b bool) Node { return &Const{Value: variant.FromBool(b)} }

func TestThreeValuedLogic(t *testing.T) {
	ctx := NewContext()

	cases := []struct {
		name string
		node Node
		want variant.Variant
	}{
		{"NULL AND false = false", &Logical{Op: And, Left: constNull(), Right: constBool(false)}, variant.FromBool(false)},
		{"NULL AND true = NULL", &Logical{Op: And, Left: constNull(), Right: constBool(true)}, variant.Null()},
		{"NULL OR true = true", &Logical{Op: Or, Left: constNull(), Right: constBool(true)}, variant.FromBool(true)},
		{"NULL OR false = NULL", &Logical{Op: Or, Left: constNull(), Right: constBool(false)}, variant.Null()},
		{"true OR NULL = true (commutative)", &Logical{Op: Or, Left: constBool(true), Right: constNull()}, variant.FromBool(true)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.node.Evaluate(ctx)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestNumericPromotion(t *testing.T) {
	ctx := NewContext()
	n := &BinaryArith{Op: Add, Left: &Const{Value: variant.FromInt16(1)}, Right: &Const{Value: variant.FromInt32(2)}}
	rt, err := n.ResultType(ctx)
	require.NoError(t, err)
	assert.Equal(t, variant.TypeInt32, rt)

	n2 := &BinaryArith{Op: Add, Left: &Const{Value: variant.FromUint32(1)}, Right: &Const{Value: variant.FromInt32(2)}}
	rt2, err := n2.ResultType(ctx)
	require.NoError(t, err)
	assert.Equal(t, variant.TypeInt64, rt2)
}

func TestBitwiseOnNonIntegerFailsValidate(t *testing.T) {
	ctx := NewContext()
	n := &BinaryBitwise{Op: BitAnd, Left: &Const{Value: variant.FromString("x")}, Right: &Const{Value: variant.FromInt32(1)}}
	assert.Error(t, n.Validate(ctx))
}

func TestCloneIsStructurallyEqualAndEvaluatesEqual(t *testing.T) {
	ctx := NewContext()
	n := &BinaryArith{
		Op:    Add,
		Left:  &Const{Value: variant.FromInt32(2)},
		Right: &UnaryArith{Negate: true, Operand: &Const{Value: variant.FromInt32(5)}},
	}
	clone := n.Clone()
	assert.Equal(t, n, clone)

	v1, err := n.Evaluate(ctx)
	require.NoError(t, err)
	v2, err := clone.Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestComparisonSignedInt16Extremes(t *testing.T) {
	ctx := NewContext()
	// 0x7FFF vs 0x8000 as signed int16: 0x8000 == INT16_MIN, so 0x7FFF > 0x8000.
	n := &Comparison{Op: Gt, Left: &Const{Value: variant.FromInt16(0x7FFF)}, Right: &Const{Value: variant.FromInt16(-0x8000)}}
	v, err := n.Evaluate(ctx)
	require.NoError(t, err)
	b, _ := v.Bool()
	assert.True(t, b)
}

func TestArithmeticNullPropagates(t *testing.T) {
	ctx := NewContext()
	n := &BinaryArith{Op: Add, Left: constNull(), Right: &Const{Value: variant.FromInt32(1)}}
	v, err := n.Evaluate(ctx)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestDivisionByZeroFails(t *testing.T) {
	ctx := NewContext()
	n := &BinaryArith{Op: Div, Left: &Const{Value: variant.FromInt32(1)}, Right: &Const{Value: variant.FromInt32(0)}}
	_, err := n.Evaluate(ctx)
	assert.Error(t, err)
}

type fakeDataset struct {
	name, alias string
	values      []variant.Variant
	types       []variant.Type
}

func (d *fakeDataset) Name() string                       { return d.name }
func (d *fakeDataset) Alias() string                      { return d.alias }
func (d *fakeDataset) ColumnCount() int                   { return len(d.values) }
func (d *fakeDataset) ColumnName(i int) string             { return "" }
func (d *fakeDataset) ColumnValue(i int) (variant.Variant, error) { return d.values[i], nil }
func (d *fakeDataset) ColumnDataType(i int) variant.Type   { return d.types[i] }

func TestColumnRefResolution(t *testing.T) {
	ds := &fakeDataset{
		name:   "T",
		values: []variant.Variant{variant.FromInt32(42)},
		types:  []variant.Type{variant.TypeInt32},
	}
	ctx := NewContext(ds)
	idx, ok := ctx.ResolveDataset("T")
	require.True(t, ok)
	ref := &ColumnRef{DatasetIndex: idx, ColumnIndex: 0}
	v, err := ref.Evaluate(ctx)
	require.NoError(t, err)
	i, _ := v.Int64()
	assert.Equal(t, int64(42), i)
}

func TestFunctionCallCoalesce(t *testing.T) {
	ctx := NewContext()
	n := &FunctionCall{Name: "COALESCE", Args: []Node{constNull(), &Const{Value: variant.FromInt32(9)}}}
	v, err := n.Evaluate(ctx)
	require.NoError(t, err)
	i, _ := v.Int64()
	assert.Equal(t, int64(9), i)
}
