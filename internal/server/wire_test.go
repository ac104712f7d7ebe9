package server

import (
	"bufio"
	"io"
	"log"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"nexusdb/internal/rowset"
	"nexusdb/internal/wireproto"
)

func TestWireListenerRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	engine := New()
	wl := NewWireListener(engine, log.New(io.Discard, "", 0))
	go wl.Serve(ln)

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, wireproto.WriteFrame(conn, []byte("SELECT * FROM sys_tables;")))

	r := bufio.NewReader(conn)
	payload, err := wireproto.ReadFrame(r)
	require.NoError(t, err)
	require.NotEmpty(t, payload)
}

func TestWireListenerSendsErrorResponseForBadCommand(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	engine := New()
	wl := NewWireListener(engine, log.New(io.Discard, "", 0))
	go wl.Serve(ln)

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, wireproto.WriteFrame(conn, []byte("SELECT FROM FROM;")))

	status, message, err := rowset.DecodeResponseMessage(conn)
	require.NoError(t, err)
	require.Equal(t, int32(500), status)
	require.NotEmpty(t, message)
}
