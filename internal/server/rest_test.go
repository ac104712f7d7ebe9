package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRESTHandlerServesJSONRowset(t *testing.T) {
	engine := New()
	handler := NewRESTHandler(engine, log.New(io.Discard, "", 0))
	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "?sql=" + "SELECT+*+FROM+sys_tables;")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, json.Valid(body))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.NotEmpty(t, decoded["rows"])
}

func TestRESTHandlerRequiresSQLParam(t *testing.T) {
	engine := New()
	handler := NewRESTHandler(engine, log.New(io.Discard, "", 0))
	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, json.Valid(body))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, float64(400), decoded["status"])
	assert.NotEmpty(t, decoded["message"])
}
