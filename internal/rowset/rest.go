package rowset

import (
	"fmt"
	"io"

	"nexusdb/internal/variant"
	"nexusdb/internal/wireproto"
)

// RESTWriter implements the REST JSON rowset writer: an HTTP chunked
// response body holding a single JSON object `{"rows": [...]}`, written
// incrementally so the caller can flush each chunk as it is produced.
type RESTWriter struct {
	w        io.Writer
	j        *wireproto.JSONWriter
	columns  []ColumnMeta
	rowCount int
}

// NewRESTWriter returns a Writer that emits chunked REST JSON to w.
func NewRESTWriter(w io.Writer) *RESTWriter {
	return &RESTWriter{w: w, j: wireproto.NewJSONWriter(w)}
}

// BeginRowset writes the opening `{"rows":[` and remembers the column
// descriptors used to name each row's JSON fields.
func (w *RESTWriter) BeginRowset(columns []ColumnMeta, haveRows bool) error {
	w.columns = columns
	w.j.Raw(`{"rows":[`)
	return w.j.Err()
}

// WriteRow emits one row as a JSON object keyed by column name, preceded
// by a comma if it is not the first row.
func (w *RESTWriter) WriteRow(values []variant.Variant, nullMask []byte) error {
	if len(values) != len(w.columns) {
		return fmt.Errorf("rowset: row has %d values, rowset has %d columns", len(values), len(w.columns))
	}
	if w.rowCount > 0 {
		w.j.Raw(",")
	}
	w.rowCount++

	w.j.Raw("{")
	for i, col := range w.columns {
		if i > 0 {
			w.j.Raw(",")
		}
		w.j.Raw(wireproto.EscapeString(col.Name))
		w.j.Raw(":")
		if IsNull(nullMask, i) {
			w.j.Null()
			continue
		}
		writeJSONValue(w.j, values[i])
	}
	w.j.Raw("}")
	return w.j.Err()
}

// EndRowset writes the closing `]}`.
func (w *RESTWriter) EndRowset() error {
	w.j.Raw("]}")
	return w.j.Err()
}

func writeJSONValue(j *wireproto.JSONWriter, v variant.Variant) {
	switch v.Type() {
	case variant.TypeBool:
		b, _ := v.Bool()
		j.Bool(b)
	case variant.TypeString:
		s, _ := v.String()
		j.String(s)
	case variant.TypeBinary:
		b, _ := v.Binary()
		j.Binary(b)
	case variant.TypeFloat, variant.TypeDouble:
		f, _ := v.Float64()
		j.Float(f)
	case variant.TypeDateTime, variant.TypeDate, variant.TypeTime:
		dt, _ := v.DateTime()
		j.String(dt.Format())
	default:
		if variant.IsInteger(v.Type()) {
			if isSignedVariant(v.Type()) {
				i, _ := v.Int64()
				j.Int(i)
			} else {
				u, _ := v.Uint64()
				j.Uint(u)
			}
			return
		}
		j.Null()
	}
}

func isSignedVariant(t variant.Type) bool {
	switch t {
	case variant.TypeInt8, variant.TypeInt16, variant.TypeInt32, variant.TypeInt64:
		return true
	default:
		return false
	}
}
