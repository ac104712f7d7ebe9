package sqlcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassifiesEachStatementKind(t *testing.T) {
	cases := []struct {
		sql  string
		kind Kind
	}{
		{"SELECT * FROM widgets;", KindSelect},
		{"INSERT INTO widgets (id, name) VALUES (1, 'a');", KindInsert},
		{"UPDATE widgets SET name = 'b' WHERE id = 1;", KindUpdate},
		{"DELETE FROM widgets WHERE id = 1;", KindDelete},
		{"CREATE DATABASE shop;", KindCreateDatabase},
		{"DROP TABLE widgets;", KindDropTable},
		{"DROP DATABASE shop;", KindDropDatabase},
	}

	d := NewDispatcher()
	for _, tc := range cases {
		cmd, err := d.ParseOne(tc.sql)
		require.NoError(t, err, tc.sql)
		assert.Equal(t, tc.kind, cmd.Kind, tc.sql)
		assert.NotEmpty(t, cmd.Text, tc.sql)
	}
}

func TestParseCreateTableExtractsTableAndColumns(t *testing.T) {
	d := NewDispatcher()
	cmd, err := d.ParseOne("CREATE TABLE widgets (id INT, name VARCHAR(64));")
	require.NoError(t, err)

	assert.Equal(t, KindCreateTable, cmd.Kind)
	assert.Equal(t, "widgets", cmd.Table)
	assert.Equal(t, []string{"id", "name"}, cmd.Columns)
}

func TestParsePropagatesSyntaxError(t *testing.T) {
	d := NewDispatcher()
	_, err := d.Parse("SELEKT * FROM widgets;")
	assert.Error(t, err)
}

func TestParseOneRejectsMultipleStatements(t *testing.T) {
	d := NewDispatcher()
	_, err := d.ParseOne("SELECT 1; SELECT 2;")
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "SELECT", KindSelect.String())
	assert.Equal(t, "CREATE TABLE", KindCreateTable.String())
	assert.Equal(t, "UNKNOWN", KindUnknown.String())
}
