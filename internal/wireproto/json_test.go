package wireproto

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeStringControlChars(t *testing.T) {
	input := "a\tb\x01c\"d\\e"
	got := EscapeString(input)
	assert.Equal(t, "\"a\\tb\\u0001c\\\"d\\\\e\"", got)

	var decoded string
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, input, decoded)
}

func TestIntQuotingAbove53Bits(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONWriter(&buf)
	j.Int(1 << 60)
	require.NoError(t, j.Err())
	assert.Equal(t, `"1152921504606846976"`, buf.String())
}

func TestIntUnquotedBelow53Bits(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONWriter(&buf)
	j.Int(42)
	require.NoError(t, j.Err())
	assert.Equal(t, "42", buf.String())
}

func TestBinaryBase64Encoded(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONWriter(&buf)
	j.Binary([]byte{0x01, 0x02, 0xFF})
	require.NoError(t, j.Err())
	assert.Equal(t, `"AQL/"`, buf.String())
}
