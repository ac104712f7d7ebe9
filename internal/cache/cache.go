// Package cache implements the column-data-block cache: a bounded LRU
// over internal/lru whose entries are refcounted block handles. A block
// is only evictable once every external holder has released it, and a
// dirty block is flushed through to its backing data file before the
// cache lets it go.
package cache

import (
	"sync"
	"sync/atomic"

	"nexusdb/internal/lru"
)

// Handle is a shared-ownership reference to one cached column data
// block. The cache itself does not count as a holder; Retain/Release
// track only references held outside the cache.
type Handle struct {
	id   uint64
	mu   sync.Mutex
	data []byte
	dirty bool
	refs int32
}

// ID returns the block identifier this handle refers to.
func (h *Handle) ID() uint64 { return h.id }

// Retain increments the handle's external refcount.
func (h *Handle) Retain() { atomic.AddInt32(&h.refs, 1) }

// Release decrements the handle's external refcount. It must be called
// exactly once for every Retain (including the implicit retain Get and
// Put perform on the caller's behalf).
func (h *Handle) Release() { atomic.AddInt32(&h.refs, -1) }

// Data returns the block's current bytes.
func (h *Handle) Data() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.data
}

// SetData replaces the block's bytes and marks it dirty.
func (h *Handle) SetData(data []byte) {
	h.mu.Lock()
	h.data = data
	h.dirty = true
	h.mu.Unlock()
}

// Dirty reports whether the block has unflushed modifications.
func (h *Handle) Dirty() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dirty
}

func newHandle(id uint64, data []byte) *Handle {
	return &Handle{id: id, data: data}
}

// FlushFunc writes a dirty block's current bytes through to its backing
// store before the cache evicts it.
type FlushFunc func(id uint64, data []byte) error

// BlockCache is the bounded, refcount-gated LRU cache of column data
// blocks. Use New to construct one; the zero value is not usable.
type BlockCache struct {
	inner        *lru.Cache[uint64, *Handle]
	flush        FlushFunc
	flushErrMu   sync.Mutex
	lastFlushErr error
}

// New builds a BlockCache bounded to capacity blocks. flush may be nil,
// in which case dirty blocks are simply dropped on eviction.
func New(capacity int, flush FlushFunc) *BlockCache {
	c := &BlockCache{flush: flush}
	c.inner = lru.New[uint64, *Handle](capacity, c.canEvict, c.onEvict)
	return c
}

func (c *BlockCache) canEvict(_ uint64, h *Handle) bool {
	return atomic.LoadInt32(&h.refs) == 0
}

func (c *BlockCache) onEvict(id uint64, h *Handle, clearingAll bool) {
	if !h.Dirty() || c.flush == nil {
		return
	}
	if err := c.flush(id, h.Data()); err != nil {
		c.flushErrMu.Lock()
		c.lastFlushErr = err
		c.flushErrMu.Unlock()
	}
}

// LastFlushError returns the most recent error a background flush
// reported, if any. Callers that need synchronous flush failures should
// flush explicitly before release instead of relying on eviction.
func (c *BlockCache) LastFlushError() error {
	c.flushErrMu.Lock()
	defer c.flushErrMu.Unlock()
	return c.lastFlushErr
}

// Get returns the handle for id, retained on the caller's behalf, moving
// it to the most-recently-used position.
func (c *BlockCache) Get(id uint64) (*Handle, bool) {
	h, ok := c.inner.Get(id)
	if !ok {
		return nil, false
	}
	h.Retain()
	return h, true
}

// Put inserts a new block with the given initial bytes, returning a
// handle retained on the caller's behalf. If an entry already existed
// for id, its handle is detached from the cache (the caller holding it,
// if any, is unaffected) and returned as well.
//
// If every entry was ineligible for eviction and the cache had to grow
// past capacity, Put still succeeds but reports the overflow via err so
// callers can surface a warning.
func (c *BlockCache) Put(id uint64, data []byte) (handle *Handle, replaced *Handle, err error) {
	h := newHandle(id, data)
	old, hadOld, putErr := c.inner.Put(id, h)
	h.Retain()
	if hadOld {
		replaced = old
	}
	return h, replaced, putErr
}

// Touch marks id as most-recently-used without returning its handle.
func (c *BlockCache) Touch(id uint64) bool {
	return c.inner.Touch(id)
}

// Clear flushes and evicts every cached block unconditionally.
func (c *BlockCache) Clear() {
	c.inner.Clear()
}

// Len returns the number of blocks currently cached.
func (c *BlockCache) Len() int {
	return c.inner.Len()
}
