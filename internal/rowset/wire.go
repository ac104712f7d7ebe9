package rowset

import (
	"fmt"
	"io"

	"nexusdb/internal/binenc"
	"nexusdb/internal/variant"
	"nexusdb/internal/wireproto"
)

// ResponseMeta is the minimal response header a SQL request gets back:
// a status code, an optional row-affecting count, and the column
// descriptors for the rows that follow. The full wire schema is a
// protobuf message maintained by the out-of-scope SQL front end; this is
// the bounded subset the rowset writer needs to frame.
type ResponseMeta struct {
	Status              int32
	AffectedRowCount    int64
	HasAffectedRowCount bool
	Columns             []ColumnMeta
	// Message carries the error kind name and message a failed SQL
	// request reports back to the caller. Empty for a successful
	// response.
	Message string
}

// WireWriter implements the native SQL wire protocol's rowset framing:
// a length-delimited response message followed by one varint-length-
// prefixed row per row, terminated by a zero-length row.
type WireWriter struct {
	w       io.Writer
	columns []ColumnMeta
}

// NewWireWriter returns a Writer that frames rows onto w using the
// native SQL wire protocol's length-delimited message format.
func NewWireWriter(w io.Writer) *WireWriter {
	return &WireWriter{w: w}
}

func encodeResponseMeta(meta ResponseMeta) []byte {
	buf := make([]byte, 0, 64)
	var tmp [binenc.MaxVarintLen]byte

	n := binenc.EncodeVarint(uint64(int64(meta.Status)), tmp[:])
	buf = append(buf, tmp[:n]...)

	if meta.HasAffectedRowCount {
		buf = append(buf, 1)
		n = binenc.EncodeVarint(uint64(meta.AffectedRowCount), tmp[:])
		buf = append(buf, tmp[:n]...)
	} else {
		buf = append(buf, 0)
	}

	n = binenc.EncodeVarint(uint64(len(meta.Columns)), tmp[:])
	buf = append(buf, tmp[:n]...)
	for _, c := range meta.Columns {
		nameBuf := make([]byte, binenc.SerializedStringSize(c.Name))
		binenc.EncodeString(c.Name, nameBuf)
		buf = append(buf, nameBuf...)
		buf = append(buf, byte(c.Type))
	}
	msgBuf := make([]byte, binenc.SerializedStringSize(meta.Message))
	binenc.EncodeString(meta.Message, msgBuf)
	buf = append(buf, msgBuf...)
	return buf
}

// BeginRowset writes the framed response message carrying the column
// descriptors. haveRows is accepted to satisfy the Writer interface but
// does not change the framing: the terminating zero-length row marks
// end-of-rowset regardless of whether any row was written.
func (w *WireWriter) BeginRowset(columns []ColumnMeta, haveRows bool) error {
	w.columns = columns
	meta := ResponseMeta{Status: 200, Columns: columns}
	return wireproto.WriteFrame(w.w, encodeResponseMeta(meta))
}

// WriteError emits the single response message a failed SQL request
// gets back: a response carrying status 500 and a message of the form
// "<Kind>: <text>", with no rows to follow (the zero-length row
// terminator is written immediately after).
func (w *WireWriter) WriteError(kindName, message string) error {
	meta := ResponseMeta{Status: 500, Message: fmt.Sprintf("%s: %s", kindName, message)}
	if err := wireproto.WriteFrame(w.w, encodeResponseMeta(meta)); err != nil {
		return err
	}
	return w.EndRowset()
}

// WriteRow emits one row: a varint row length, the null mask, and each
// non-null value using its per-type encoding.
func (w *WireWriter) WriteRow(values []variant.Variant, nullMask []byte) error {
	if len(values) != len(w.columns) {
		return fmt.Errorf("rowset: row has %d values, rowset has %d columns", len(values), len(w.columns))
	}
	expectedMaskSize := NullMaskSize(len(values))
	if len(nullMask) != expectedMaskSize {
		return fmt.Errorf("rowset: null mask is %d bytes, expected %d", len(nullMask), expectedMaskSize)
	}

	body := make([]byte, 0, 64)
	body = append(body, nullMask...)
	for i, v := range values {
		if IsNull(nullMask, i) {
			continue
		}
		encoded, err := encodeValue(v)
		if err != nil {
			return err
		}
		body = append(body, encoded...)
	}

	var lenBuf [binenc.MaxVarintLen]byte
	n := binenc.EncodeVarint(uint64(len(body)), lenBuf[:])
	if _, err := w.w.Write(lenBuf[:n]); err != nil {
		return err
	}
	_, err := w.w.Write(body)
	return err
}

// EndRowset writes the varint 0 terminator meaning "no more rows".
func (w *WireWriter) EndRowset() error {
	var lenBuf [binenc.MaxVarintLen]byte
	n := binenc.EncodeVarint(0, lenBuf[:])
	_, err := w.w.Write(lenBuf[:n])
	return err
}

// encodeValue serializes one non-null value using its per-type wire
// encoding: varint for 32/64-bit integers, little-endian-fixed for
// 8/16-bit integers and floats, length-prefixed for strings/binary, and
// a fixed-width tuple for datetime-like values.
func encodeValue(v variant.Variant) ([]byte, error) {
	switch v.Type() {
	case variant.TypeBool:
		b, _ := v.Bool()
		if b {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case variant.TypeInt8:
		i, _ := v.Int64()
		return []byte{byte(int8(i))}, nil
	case variant.TypeUInt8:
		u, _ := v.Uint64()
		return []byte{byte(u)}, nil
	case variant.TypeInt16:
		i, _ := v.Int64()
		buf := make([]byte, 2)
		binenc.EncodeInt16(int16(i), buf)
		return buf, nil
	case variant.TypeUInt16:
		u, _ := v.Uint64()
		buf := make([]byte, 2)
		binenc.EncodeUint16(uint16(u), buf)
		return buf, nil
	case variant.TypeInt32, variant.TypeInt64:
		i, _ := v.Int64()
		buf := make([]byte, binenc.MaxVarintLen)
		n := binenc.EncodeVarint(zigzagEncode(i), buf)
		return buf[:n], nil
	case variant.TypeUInt32, variant.TypeUInt64:
		u, _ := v.Uint64()
		buf := make([]byte, binenc.MaxVarintLen)
		n := binenc.EncodeVarint(u, buf)
		return buf[:n], nil
	case variant.TypeFloat:
		f, _ := v.Float64()
		buf := make([]byte, 4)
		binenc.EncodeFloat32(float32(f), buf)
		return buf, nil
	case variant.TypeDouble:
		f, _ := v.Float64()
		buf := make([]byte, 8)
		binenc.EncodeFloat64(f, buf)
		return buf, nil
	case variant.TypeString:
		s, _ := v.String()
		buf := make([]byte, binenc.SerializedStringSize(s))
		binenc.EncodeString(s, buf)
		return buf, nil
	case variant.TypeBinary:
		b, _ := v.Binary()
		buf := make([]byte, binenc.SerializedBinarySize(b))
		binenc.EncodeBinary(b, buf)
		return buf, nil
	case variant.TypeDateTime, variant.TypeDate, variant.TypeTime:
		dt, _ := v.DateTime()
		return encodeDateTime(dt), nil
	default:
		return nil, fmt.Errorf("rowset: cannot encode value of type %s", v.Type())
	}
}

// zigzagEncode maps a signed integer onto the unsigned range so small
// magnitude negative values still encode as short varints.
func zigzagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func zigzagDecode(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// encodeDateTime serializes a RawDateTime as a fixed-width tuple: year
// (int32), month, day, day-of-week, hasTimePart (as a byte), hours,
// minutes, seconds (uint8 each), nanos (uint32).
func encodeDateTime(d variant.RawDateTime) []byte {
	buf := make([]byte, 4+1+1+1+1+1+1+1+4)
	binenc.EncodeInt32(d.Year, buf[0:4])
	buf[4] = d.Month
	buf[5] = d.DayOfMonth
	buf[6] = d.DayOfWeek
	if d.HasTimePart {
		buf[7] = 1
	}
	buf[8] = d.Hours
	buf[9] = d.Minutes
	buf[10] = d.Seconds
	binenc.EncodeUint32(d.Nanos, buf[11:15])
	return buf
}
