package engineerr

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, 401, HTTPStatus(KindUnauthorized))
	assert.Equal(t, 403, HTTPStatus(KindForbidden))
	assert.Equal(t, 400, HTTPStatus(KindNameConflict))
	assert.Equal(t, 400, HTTPStatus(KindInvalidArgument))
	assert.Equal(t, 500, HTTPStatus(KindIOError))
	assert.Equal(t, 500, HTTPStatus(KindUnknown))
}

func TestWrapExtractsErrno(t *testing.T) {
	dir := t.TempDir()
	_, err := os.Open(filepath.Join(dir, "does-not-exist"))
	require.Error(t, err)

	wrapped := WrapFileRead("reading data file", err)
	assert.Equal(t, KindFileReadError, wrapped.Kind)
	assert.NotZero(t, wrapped.Errno)
	assert.True(t, errors.Is(wrapped, err))
}

func TestKindOfUnwrapsEngineError(t *testing.T) {
	base := errors.New("boom")
	wrapped := Wrap(KindCorruptIndex, "bad header", base)
	assert.Equal(t, KindCorruptIndex, KindOf(wrapped))
	assert.Equal(t, KindUnknown, KindOf(base))
}
