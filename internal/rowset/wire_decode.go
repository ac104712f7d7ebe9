package rowset

import (
	"bufio"
	"fmt"
	"io"

	"nexusdb/internal/binenc"
	"nexusdb/internal/variant"
	"nexusdb/internal/wireproto"
)

// DecodedRow is one row read back from a WireWriter's output: values
// aligned to the rowset's column count, with NULL cells holding the
// zero Variant.
type DecodedRow struct {
	Values   []variant.Variant
	NullMask []byte
}

// DecodeWireRowset reads back everything one WireWriter.BeginRowset/
// WriteRow*/EndRowset sequence wrote to r: the response metadata (and
// therefore each column's type, needed to decode varint-encoded integer
// columns back to the right width) followed by every row up to the
// zero-length terminator. Decoding the writer's output this way always
// reproduces the original row sequence exactly.
func DecodeWireRowset(r io.Reader) ([]ColumnMeta, []DecodedRow, error) {
	br := bufio.NewReader(r)

	metaFrame, err := wireproto.ReadFrame(br)
	if err != nil {
		return nil, nil, fmt.Errorf("rowset: read response meta: %w", err)
	}
	columns, err := decodeResponseMetaColumns(metaFrame)
	if err != nil {
		return nil, nil, err
	}

	var rows []DecodedRow
	for {
		length, n, err := readVarintFromReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("rowset: read row length: %w", err)
		}
		_ = n
		if length == 0 {
			break
		}
		rowBuf := make([]byte, length)
		if _, err := io.ReadFull(br, rowBuf); err != nil {
			return nil, nil, fmt.Errorf("rowset: read row body: %w", err)
		}
		row, err := decodeRow(columns, rowBuf)
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	return columns, rows, nil
}

func readVarintFromReader(br *bufio.Reader) (uint64, int, error) {
	var buf []byte
	for i := 0; i < binenc.MaxVarintLen; i++ {
		b, err := br.ReadByte()
		if err != nil {
			return 0, 0, err
		}
		buf = append(buf, b)
		if b < 0x80 {
			v, n, err := binenc.DecodeVarint(buf)
			return v, n, err
		}
	}
	return 0, 0, fmt.Errorf("rowset: varint too long")
}

func decodeResponseMetaColumns(buf []byte) ([]ColumnMeta, error) {
	meta, err := decodeResponseMetaFull(buf)
	if err != nil {
		return nil, err
	}
	return meta.Columns, nil
}

// decodeResponseMetaFull parses a full ResponseMeta frame: status, the
// optional affected-row count, the column descriptors, and the trailing
// error message string WriteError attaches. DecodeWireRowset only needs
// the columns; DecodeResponseMessage (for clients reading back a failed
// request) needs the status and message too, so both share this parser.
func decodeResponseMetaFull(buf []byte) (ResponseMeta, error) {
	var meta ResponseMeta
	status, n, err := binenc.DecodeVarint(buf)
	if err != nil {
		return ResponseMeta{}, err
	}
	meta.Status = int32(int64(status))
	buf = buf[n:]
	if len(buf) == 0 {
		return ResponseMeta{}, fmt.Errorf("rowset: truncated response meta")
	}
	hasAffected := buf[0] == 1
	buf = buf[1:]
	if hasAffected {
		affected, n, err := binenc.DecodeVarint(buf)
		if err != nil {
			return ResponseMeta{}, err
		}
		meta.HasAffectedRowCount = true
		meta.AffectedRowCount = int64(affected)
		buf = buf[n:]
	}
	count, n, err := binenc.DecodeVarint(buf)
	if err != nil {
		return ResponseMeta{}, err
	}
	buf = buf[n:]
	columns := make([]ColumnMeta, 0, count)
	for i := uint64(0); i < count; i++ {
		name, n, err := binenc.DecodeString(buf, len(buf))
		if err != nil {
			return ResponseMeta{}, err
		}
		buf = buf[n:]
		if len(buf) == 0 {
			return ResponseMeta{}, fmt.Errorf("rowset: truncated column descriptor")
		}
		typ := variant.Type(buf[0])
		buf = buf[1:]
		columns = append(columns, ColumnMeta{Name: name, Type: typ})
	}
	meta.Columns = columns
	if len(buf) > 0 {
		message, _, err := binenc.DecodeString(buf, len(buf))
		if err == nil {
			meta.Message = message
		}
	}
	return meta, nil
}

// DecodeResponseMessage reads a single framed ResponseMeta message off r
// (as WriteError writes, with no rows following) and returns its status
// and message.
func DecodeResponseMessage(r io.Reader) (status int32, message string, err error) {
	br := bufio.NewReader(r)
	frame, err := wireproto.ReadFrame(br)
	if err != nil {
		return 0, "", err
	}
	meta, err := decodeResponseMetaFull(frame)
	if err != nil {
		return 0, "", err
	}
	return meta.Status, meta.Message, nil
}

func decodeRow(columns []ColumnMeta, buf []byte) (DecodedRow, error) {
	maskSize := NullMaskSize(len(columns))
	if len(buf) < maskSize {
		return DecodedRow{}, fmt.Errorf("rowset: row body shorter than null mask")
	}
	mask := append([]byte(nil), buf[:maskSize]...)
	buf = buf[maskSize:]

	values := make([]variant.Variant, len(columns))
	for i, col := range columns {
		if IsNull(mask, i) {
			values[i] = variant.Null()
			continue
		}
		v, n, err := decodeValue(col.Type, buf)
		if err != nil {
			return DecodedRow{}, fmt.Errorf("rowset: decode column %q: %w", col.Name, err)
		}
		values[i] = v
		buf = buf[n:]
	}
	return DecodedRow{Values: values, NullMask: mask}, nil
}

func decodeValue(t variant.Type, buf []byte) (variant.Variant, int, error) {
	switch t {
	case variant.TypeBool:
		if len(buf) < 1 {
			return variant.Variant{}, 0, binenc.ErrTruncated
		}
		return variant.FromBool(buf[0] != 0), 1, nil
	case variant.TypeInt8:
		if len(buf) < 1 {
			return variant.Variant{}, 0, binenc.ErrTruncated
		}
		return variant.FromInt8(int8(buf[0])), 1, nil
	case variant.TypeUInt8:
		if len(buf) < 1 {
			return variant.Variant{}, 0, binenc.ErrTruncated
		}
		return variant.FromUint8(buf[0]), 1, nil
	case variant.TypeInt16:
		var v int16
		n, err := binenc.DecodeInt16(buf, &v)
		return variant.FromInt16(v), n, err
	case variant.TypeUInt16:
		var v uint16
		n, err := binenc.DecodeUint16(buf, &v)
		return variant.FromUint16(v), n, err
	case variant.TypeInt32:
		u, n, err := binenc.DecodeVarint(buf)
		if err != nil {
			return variant.Variant{}, 0, err
		}
		return variant.FromInt32(int32(zigzagDecode(u))), n, nil
	case variant.TypeInt64:
		u, n, err := binenc.DecodeVarint(buf)
		if err != nil {
			return variant.Variant{}, 0, err
		}
		return variant.FromInt64(zigzagDecode(u)), n, nil
	case variant.TypeUInt32:
		u, n, err := binenc.DecodeVarint(buf)
		if err != nil {
			return variant.Variant{}, 0, err
		}
		return variant.FromUint32(uint32(u)), n, nil
	case variant.TypeUInt64:
		u, n, err := binenc.DecodeVarint(buf)
		if err != nil {
			return variant.Variant{}, 0, err
		}
		return variant.FromUint64(u), n, nil
	case variant.TypeFloat:
		var f float32
		n, err := binenc.DecodeFloat32(buf, &f)
		return variant.FromFloat32(f), n, err
	case variant.TypeDouble:
		var f float64
		n, err := binenc.DecodeFloat64(buf, &f)
		return variant.FromFloat64(f), n, err
	case variant.TypeString:
		s, n, err := binenc.DecodeString(buf, len(buf))
		return variant.FromString(s), n, err
	case variant.TypeBinary:
		b, n, err := binenc.DecodeBinary(buf, len(buf))
		return variant.FromBinary(b), n, err
	case variant.TypeDateTime, variant.TypeDate, variant.TypeTime:
		return decodeDateTime(t, buf)
	default:
		return variant.Variant{}, 0, fmt.Errorf("rowset: cannot decode value of type %s", t)
	}
}

func decodeDateTime(t variant.Type, buf []byte) (variant.Variant, int, error) {
	const size = 4 + 1 + 1 + 1 + 1 + 1 + 1 + 1 + 4
	if len(buf) < size {
		return variant.Variant{}, 0, binenc.ErrTruncated
	}
	var year int32
	_, _ = binenc.DecodeInt32(buf[0:4], &year)
	d := variant.RawDateTime{
		Year:       year,
		Month:      buf[4],
		DayOfMonth: buf[5],
		DayOfWeek:  buf[6],
	}
	if buf[7] == 1 {
		d.HasTimePart = true
	}
	d.Hours = buf[8]
	d.Minutes = buf[9]
	d.Seconds = buf[10]
	_, _ = binenc.DecodeUint32(buf[11:15], &d.Nanos)

	switch t {
	case variant.TypeDate:
		return variant.FromDate(d), size, nil
	case variant.TypeTime:
		return variant.FromTime(d), size, nil
	default:
		return variant.FromDateTime(d), size, nil
	}
}
