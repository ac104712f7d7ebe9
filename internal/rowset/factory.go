package rowset

import "io"

// StreamFactory is the default Factory: it creates a WireWriter or
// RESTWriter bound to a fixed underlying stream, mirroring the
// teacher's NewFormatter(name) factory except parameterized over an
// io.Writer the caller supplies once (a rowset, unlike a formatter's
// string result, is written incrementally as rows are produced).
type StreamFactory struct {
	w io.Writer
}

// NewStreamFactory returns a Factory that writes to w.
func NewStreamFactory(w io.Writer) *StreamFactory {
	return &StreamFactory{w: w}
}

// NewWriter implements Factory.
func (f *StreamFactory) NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatWire:
		return NewWireWriter(f.w), nil
	case FormatREST:
		return NewRESTWriter(f.w), nil
	default:
		return nil, formatParseError(string(format))
	}
}
