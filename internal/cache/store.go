package cache

import "nexusdb/internal/datafile"

// blockStore is the subset of datafile.EncryptedBlockStore the cache
// needs: read a block on a miss, write it back on eviction. Declared as
// an interface so tests can substitute an in-memory stand-in without
// pulling in real encryption and file I/O.
type blockStore interface {
	ReadBlock(blockID uint64) ([]byte, error)
	WriteBlock(blockID uint64, plaintext []byte) error
}

var _ blockStore = (*datafile.EncryptedBlockStore)(nil)

// NewForStore builds a BlockCache bounded to capacity blocks, backed by
// store: a dirty block flushed on eviction is sealed and written
// through store.WriteBlock. The cache never talks to the data file
// directly except through this FlushFunc and Fetch, so callers cannot
// forget to flush a dirty block before it is dropped.
func NewForStore(capacity int, store blockStore) *BlockCache {
	return New(capacity, func(id uint64, data []byte) error {
		return store.WriteBlock(id, data)
	})
}

// Fetch returns the handle for id, loading it from store on a cache
// miss. The returned handle is retained on the caller's behalf.
func (c *BlockCache) Fetch(id uint64, store blockStore) (*Handle, error) {
	if h, ok := c.Get(id); ok {
		return h, nil
	}
	data, err := store.ReadBlock(id)
	if err != nil {
		return nil, err
	}
	h, _, err := c.Put(id, data)
	if err != nil {
		return nil, err
	}
	return h, nil
}
