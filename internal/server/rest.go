package server

import (
	"fmt"
	"log"
	"net/http"

	"nexusdb/internal/engineerr"
	"nexusdb/internal/rowset"
	"nexusdb/internal/variant"
	"nexusdb/internal/wireproto"
)

// flushingRESTWriter wraps rowset.RESTWriter so each chunk reaches the
// client as it's produced, per the REST writer's own "written
// incrementally so the caller can flush each chunk" contract.
type flushingRESTWriter struct {
	inner    *rowset.RESTWriter
	flusher  http.Flusher
	wroteAny bool
}

func newFlushingRESTWriter(w http.ResponseWriter, flusher http.Flusher) *flushingRESTWriter {
	return &flushingRESTWriter{inner: rowset.NewRESTWriter(w), flusher: flusher}
}

func (f *flushingRESTWriter) BeginRowset(columns []rowset.ColumnMeta, haveRows bool) error {
	f.wroteAny = true
	err := f.inner.BeginRowset(columns, haveRows)
	f.flush()
	return err
}

func (f *flushingRESTWriter) WriteRow(values []variant.Variant, nullMask []byte) error {
	err := f.inner.WriteRow(values, nullMask)
	f.flush()
	return err
}

func (f *flushingRESTWriter) EndRowset() error {
	err := f.inner.EndRowset()
	f.flush()
	return err
}

func (f *flushingRESTWriter) flush() {
	if f.flusher != nil {
		f.flusher.Flush()
	}
}

// RESTHandler serves the `?sql=` query form over chunked JSON rowsets,
// a minimal, bounded REST front end.
type RESTHandler struct {
	engine *Engine
	logger *log.Logger
}

// NewRESTHandler builds an http.Handler bound to engine.
func NewRESTHandler(engine *Engine, logger *log.Logger) *RESTHandler {
	return &RESTHandler{engine: engine, logger: logger}
}

func (h *RESTHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sql := r.URL.Query().Get("sql")
	if sql == "" {
		writeJSONError(w, engineerr.KindInvalidArgument, "missing sql query parameter")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	flusher, _ := w.(http.Flusher)

	writer := newFlushingRESTWriter(w, flusher)
	if err := h.engine.HandleCommand(sql, writer); err != nil {
		h.logger.Printf("rest: command error: %v", err)
		if !writer.wroteAny {
			writeJSONError(w, engineerr.KindOf(err), err.Error())
		}
	}
}

// writeJSONError emits the `{"status": <code>, "message": "..."}` body
// a failed request gets back, mapping kind to its HTTP status via
// engineerr.HTTPStatus.
func writeJSONError(w http.ResponseWriter, kind engineerr.Kind, message string) {
	status := engineerr.HTTPStatus(kind)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"status": %d, "message": %s}`, status, wireproto.EscapeString(message))
}
