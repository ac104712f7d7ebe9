// Package rowset implements two concrete rowset writers — a SQL-wire
// framed writer and a REST chunked JSON writer — behind one shared
// Writer interface, created through a Factory. The factory-by-name
// pattern mirrors internal/output.Formatter's NewFormatter(name string),
// adapted here from formatting a schema diff/migration to streaming a
// query's result rows instead.
package rowset

import (
	"fmt"
	"strings"

	"nexusdb/internal/variant"
)

// ColumnMeta describes one column of the forthcoming rowset: its name
// and declared/evaluated type, emitted by BeginRowset before any row.
type ColumnMeta struct {
	Name string
	Type variant.Type
}

// Writer is the abstract rowset-writing interface every wire format
// implements: begin (metadata), N rows, end.
type Writer interface {
	// BeginRowset emits the column descriptors for the forthcoming
	// rows. haveRows tells formats that need to know up front whether
	// any rows will follow (the REST writer does not; the SQL-wire
	// writer's framing does not either, but the parameter is kept so
	// both writers share one method signature).
	BeginRowset(columns []ColumnMeta, haveRows bool) error
	// WriteRow emits one row. nullMask is a bitmask aligned to the
	// column count; bit i set means values[i] is NULL and its cell is
	// undefined.
	WriteRow(values []variant.Variant, nullMask []byte) error
	// EndRowset terminates the stream.
	EndRowset() error
}

// Format names the wire format a Factory produces a Writer for.
type Format string

const (
	FormatWire Format = "wire"
	FormatREST Format = "rest"
)

// Factory creates a Writer bound to an output stream. Callers inject a
// Factory so the query-serving path never branches on protocol choice
// itself.
type Factory interface {
	NewWriter(format Format) (Writer, error)
}

// NullMaskSize returns the number of bytes needed to hold one bit per
// column.
func NullMaskSize(columnCount int) int {
	return (columnCount + 7) / 8
}

// SetNull sets bit i (0-indexed) of mask.
func SetNull(mask []byte, i int) {
	mask[i/8] |= 1 << uint(i%8)
}

// IsNull reports whether bit i of mask is set.
func IsNull(mask []byte, i int) bool {
	if i/8 >= len(mask) {
		return false
	}
	return mask[i/8]&(1<<uint(i%8)) != 0
}

func formatParseError(name string) error {
	return fmt.Errorf("rowset: unsupported format %q; use %q or %q", name, FormatWire, FormatREST)
}

// ParseFormat maps a case-insensitive format name to a Format constant.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatWire:
		return FormatWire, nil
	case FormatREST:
		return FormatREST, nil
	default:
		return "", formatParseError(name)
	}
}
