package server

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusdb/internal/rowset"
)

func TestHandleCommandSelectListsSystemTables(t *testing.T) {
	e := New()
	var sb strings.Builder
	w := rowset.NewRESTWriter(&sb)

	require.NoError(t, e.HandleCommand("SELECT * FROM sys_tables;", w))
	out := sb.String()
	assert.Contains(t, out, "SYS_TABLES")
	assert.Contains(t, out, `"rows":[`)
}

func TestHandleCommandCreateTableAddsToCatalog(t *testing.T) {
	e := New()
	var sb strings.Builder
	w := rowset.NewRESTWriter(&sb)

	require.NoError(t, e.HandleCommand("CREATE TABLE widgets (id INT, name VARCHAR(64));", w))
	assert.Contains(t, sb.String(), "id")
	assert.Contains(t, sb.String(), "name")

	e.mu.Lock()
	_, ok := e.tables["WIDGETS"]
	e.mu.Unlock()
	assert.True(t, ok)
}

func TestHandleCommandCreateTableRejectsDuplicate(t *testing.T) {
	e := New()
	var sb strings.Builder
	w := rowset.NewRESTWriter(&sb)
	require.NoError(t, e.HandleCommand("CREATE TABLE widgets (id INT);", w))

	var sb2 strings.Builder
	w2 := rowset.NewRESTWriter(&sb2)
	err := e.HandleCommand("CREATE TABLE widgets (id INT);", w2)
	assert.Error(t, err)
}

func TestHandleCommandAcknowledgesDML(t *testing.T) {
	e := New()
	var sb strings.Builder
	w := rowset.NewRESTWriter(&sb)
	require.NoError(t, e.HandleCommand("DELETE FROM sys_tables WHERE 1=0;", w))
	assert.Contains(t, sb.String(), "OK: DELETE")
}

func TestHandleCommandRejectsUnsupportedStatement(t *testing.T) {
	e := New()
	var sb strings.Builder
	w := rowset.NewRESTWriter(&sb)
	err := e.HandleCommand("ALTER TABLE widgets ADD COLUMN age INT;", w)
	assert.Error(t, err)
}

func TestHandleCommandPropagatesSyntaxError(t *testing.T) {
	e := New()
	var sb strings.Builder
	w := rowset.NewRESTWriter(&sb)
	err := e.HandleCommand("SELEKT 1;", w)
	assert.Error(t, err)
}
