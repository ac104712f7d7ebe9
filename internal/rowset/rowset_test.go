package rowset

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusdb/internal/variant"
)

func TestWireWriterRoundTrip(t *testing.T) {
	columns := []ColumnMeta{
		{Name: "ID", Type: variant.TypeInt64},
		{Name: "NAME", Type: variant.TypeString},
		{Name: "SCORE", Type: variant.TypeDouble},
		{Name: "ACTIVE", Type: variant.TypeBool},
	}

	type row struct {
		values []variant.Variant
		mask   []byte
	}
	rows := []row{
		{
			values: []variant.Variant{variant.FromInt64(1), variant.FromString("alice"), variant.FromFloat64(9.5), variant.FromBool(true)},
			mask:   make([]byte, NullMaskSize(4)),
		},
		{
			values: []variant.Variant{variant.FromInt64(-42), variant.Null(), variant.FromFloat64(0), variant.FromBool(false)},
			mask:   make([]byte, NullMaskSize(4)),
		},
	}
	SetNull(rows[1].mask, 1)

	var buf bytes.Buffer
	w := NewWireWriter(&buf)
	require.NoError(t, w.BeginRowset(columns, true))
	for _, r := range rows {
		require.NoError(t, w.WriteRow(r.values, r.mask))
	}
	require.NoError(t, w.EndRowset())

	gotColumns, gotRows, err := DecodeWireRowset(&buf)
	require.NoError(t, err)
	require.Equal(t, columns, gotColumns)
	require.Len(t, gotRows, len(rows))

	for i, r := range rows {
		assert.Equal(t, r.mask, gotRows[i].NullMask)
		for j := range r.values {
			if IsNull(r.mask, j) {
				assert.True(t, gotRows[i].Values[j].IsNull())
				continue
			}
			assertVariantEqual(t, r.values[j], gotRows[i].Values[j])
		}
	}
}

func TestWireWriterEmptyRowset(t *testing.T) {
	columns := []ColumnMeta{{Name: "X", Type: variant.TypeInt32}}
	var buf bytes.Buffer
	w := NewWireWriter(&buf)
	require.NoError(t, w.BeginRowset(columns, false))
	require.NoError(t, w.EndRowset())

	gotColumns, gotRows, err := DecodeWireRowset(&buf)
	require.NoError(t, err)
	assert.Equal(t, columns, gotColumns)
	assert.Empty(t, gotRows)
}

func TestWireWriterColumnMismatch(t *testing.T) {
	var buf bytes.Buffer
	w := NewWireWriter(&buf)
	require.NoError(t, w.BeginRowset([]ColumnMeta{{Name: "A", Type: variant.TypeInt32}}, true))
	err := w.WriteRow([]variant.Variant{variant.FromInt32(1), variant.FromInt32(2)}, make([]byte, NullMaskSize(1)))
	assert.Error(t, err)
}

func TestRESTWriterValidJSON(t *testing.T) {
	columns := []ColumnMeta{
		{Name: "ID", Type: variant.TypeInt64},
		{Name: "NAME", Type: variant.TypeString},
	}
	var buf bytes.Buffer
	w := NewRESTWriter(&buf)
	require.NoError(t, w.BeginRowset(columns, true))

	mask := make([]byte, NullMaskSize(2))
	require.NoError(t, w.WriteRow([]variant.Variant{variant.FromInt64(1), variant.FromString("a\"b")}, mask))
	SetNull(mask, 1)
	require.NoError(t, w.WriteRow([]variant.Variant{variant.FromInt64(2), variant.Null()}, mask))
	require.NoError(t, w.EndRowset())

	require.True(t, json.Valid(buf.Bytes()), "output must be valid JSON: %s", buf.String())

	var decoded struct {
		Rows []map[string]interface{} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Rows, 2)
	assert.Equal(t, "a\"b", decoded.Rows[0]["NAME"])
	assert.Nil(t, decoded.Rows[1]["NAME"])
}

func TestRESTWriterEmptyRowsetValidJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewRESTWriter(&buf)
	require.NoError(t, w.BeginRowset(nil, false))
	require.NoError(t, w.EndRowset())
	require.True(t, json.Valid(buf.Bytes()))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("WIRE")
	require.NoError(t, err)
	assert.Equal(t, FormatWire, f)

	f, err = ParseFormat(" rest ")
	require.NoError(t, err)
	assert.Equal(t, FormatREST, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestStreamFactory(t *testing.T) {
	var buf bytes.Buffer
	f := NewStreamFactory(&buf)

	w, err := f.NewWriter(FormatWire)
	require.NoError(t, err)
	assert.IsType(t, &WireWriter{}, w)

	w, err = f.NewWriter(FormatREST)
	require.NoError(t, err)
	assert.IsType(t, &RESTWriter{}, w)

	_, err = f.NewWriter(Format("bogus"))
	assert.Error(t, err)
}

func assertVariantEqual(t *testing.T, want, got variant.Variant) {
	t.Helper()
	require.Equal(t, want.Type(), got.Type())
	switch want.Type() {
	case variant.TypeString:
		ws, _ := want.String()
		gs, _ := got.String()
		assert.Equal(t, ws, gs)
	case variant.TypeBool:
		wb, _ := want.Bool()
		gb, _ := got.Bool()
		assert.Equal(t, wb, gb)
	case variant.TypeDouble, variant.TypeFloat:
		wf, _ := want.Float64()
		gf, _ := got.Float64()
		assert.InDelta(t, wf, gf, 1e-9)
	default:
		if variant.IsInteger(want.Type()) {
			wi, _ := want.Int64()
			gi, _ := got.Int64()
			assert.Equal(t, wi, gi)
		}
	}
}
