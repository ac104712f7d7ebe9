package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetRoundTrip(t *testing.T) {
	c := New(4, nil)
	h, _, err := c.Put(1, []byte("block-data"))
	require.NoError(t, err)
	defer h.Release()

	got, ok := c.Get(1)
	require.True(t, ok)
	defer got.Release()
	assert.Equal(t, []byte("block-data"), got.Data())
}

func TestHeldBlockIsNotEvicted(t *testing.T) {
	c := New(1, nil)
	h1, _, err := c.Put(1, []byte("a"))
	require.NoError(t, err)
	defer h1.Release()

	// h1 is still retained by the caller, so inserting a second block
	// at capacity 1 must overflow rather than evict it.
	h2, _, err := c.Put(2, []byte("b"))
	require.Error(t, err)
	defer h2.Release()

	got, ok := c.Get(1)
	assert.True(t, ok)
	if ok {
		got.Release()
	}
}

func TestReleasedBlockBecomesEvictable(t *testing.T) {
	c := New(1, nil)
	h1, _, err := c.Put(1, []byte("a"))
	require.NoError(t, err)
	h1.Release() // drop the only external hold

	h2, _, err := c.Put(2, []byte("b"))
	require.NoError(t, err)
	defer h2.Release()

	_, ok := c.Get(1)
	assert.False(t, ok)
}

func TestDirtyBlockFlushesOnEviction(t *testing.T) {
	var flushedID uint64
	var flushedData []byte
	flush := func(id uint64, data []byte) error {
		flushedID = id
		flushedData = append([]byte(nil), data...)
		return nil
	}
	c := New(1, flush)
	h1, _, err := c.Put(1, []byte("clean"))
	require.NoError(t, err)
	h1.Release()

	h1b, ok := c.Get(1)
	require.True(t, ok)
	h1b.SetData([]byte("dirty"))
	h1b.Release()

	_, _, err = c.Put(2, []byte("b"))
	require.NoError(t, err)

	assert.Equal(t, uint64(1), flushedID)
	assert.Equal(t, []byte("dirty"), flushedData)
}

func TestClearFlushesRegardlessOfRefs(t *testing.T) {
	var flushed []uint64
	flush := func(id uint64, data []byte) error {
		flushed = append(flushed, id)
		return nil
	}
	c := New(4, flush)
	h, _, err := c.Put(1, []byte("x"))
	require.NoError(t, err)
	h.SetData([]byte("y"))
	// Held reference is never released, but Clear is unconditional.
	c.Clear()
	assert.Equal(t, []uint64{1}, flushed)
	assert.Equal(t, 0, c.Len())
}
