package server

import (
	"bufio"
	"errors"
	"io"
	"log"
	"net"

	"nexusdb/internal/engineerr"
	"nexusdb/internal/rowset"
	"nexusdb/internal/wireproto"
)

// WireListener serves the native protocol: each frame carries one SQL
// command's text, each reply is the framed rowset the command produces.
type WireListener struct {
	engine *Engine
	logger *log.Logger
}

// NewWireListener builds a WireListener bound to engine.
func NewWireListener(engine *Engine, logger *log.Logger) *WireListener {
	return &WireListener{engine: engine, logger: logger}
}

// Serve accepts connections on ln until it returns an error (typically
// because ln was closed during shutdown).
func (l *WireListener) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go l.handleConn(conn)
	}
}

func (l *WireListener) handleConn(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)

	for {
		payload, err := wireproto.ReadFrame(r)
		if err != nil {
			if !errors.Is(err, wireproto.ErrTruncated) && !errors.Is(err, io.EOF) {
				l.logger.Printf("wire: connection from %s closed: %v", conn.RemoteAddr(), err)
			}
			return
		}

		writer := rowset.NewWireWriter(w)
		if err := l.engine.HandleCommand(string(payload), writer); err != nil {
			l.logger.Printf("wire: command error from %s: %v", conn.RemoteAddr(), err)
			// A SQL error produces a single response message bearing the
			// error kind name and message, instead of dropping the
			// connection silently.
			if werr := writer.WriteError(engineerr.KindOf(err).String(), err.Error()); werr != nil {
				l.logger.Printf("wire: error response to %s: %v", conn.RemoteAddr(), werr)
			}
		}
		if err := w.Flush(); err != nil {
			l.logger.Printf("wire: flush error to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
}
