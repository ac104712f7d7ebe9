// Package uli implements the unique linear index: a persistent ordered
// map from an integer key, in one of the eight families internal/keytraits
// describes, to a fixed-size value. One Index type serves all eight
// families by holding a keytraits.Traits value rather than branching on
// type or requiring a subclass per key family.
package uli

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync"

	"nexusdb/internal/datafile"
	"nexusdb/internal/keytraits"
)

// ErrKeyOutOfRange is returned when a key falls outside its family's
// [minKey, maxKey] range once encoded.
var ErrKeyOutOfRange = errors.New("uli: key out of range")

// ErrCorruptIndex is returned when a persisted index file's header does
// not match what this index expects.
var ErrCorruptIndex = errors.New("uli: corrupt index")

// ErrValueSize is returned when a value does not match the index's fixed
// value size.
var ErrValueSize = errors.New("uli: value size mismatch")

// nodeSize is the fixed data-file node granularity every index file's
// data area size must be a multiple of.
const nodeSize = datafile.IndexNodeSize

type entry struct {
	key   []byte
	value []byte
}

// Index is a unique linear index over one key family. It holds its
// entries in memory, sorted by key, and persists them into a FileSet of
// fixed-size data files on Flush.
type Index struct {
	mu        sync.RWMutex
	traits    keytraits.Traits
	valueSize int
	entries   []entry
	fileset   *datafile.FileSet
}

// New creates an empty index over the given key family, with every
// value exactly valueSize bytes, backed by fileset for persistence.
func New(traits keytraits.Traits, valueSize int, fileset *datafile.FileSet) *Index {
	return &Index{traits: traits, valueSize: valueSize, fileset: fileset}
}

// validateKey checks keyBytes is the family's fixed size and within its
// min/max range.
func (idx *Index) validateKey(keyBytes []byte) error {
	if len(keyBytes) != idx.traits.KeySize() {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrKeyOutOfRange, idx.traits.KeySize(), len(keyBytes))
	}
	if idx.traits.Compare(keyBytes, idx.traits.MinKey()) < 0 || idx.traits.Compare(keyBytes, idx.traits.MaxKey()) > 0 {
		return ErrKeyOutOfRange
	}
	return nil
}

func (idx *Index) search(keyBytes []byte) (int, bool) {
	i := sort.Search(len(idx.entries), func(i int) bool {
		return idx.traits.Compare(idx.entries[i].key, keyBytes) >= 0
	})
	if i < len(idx.entries) && idx.traits.Compare(idx.entries[i].key, keyBytes) == 0 {
		return i, true
	}
	return i, false
}

// Insert adds or replaces the value for key. If a value already existed
// for key, it is returned alongside replaced=true.
func (idx *Index) Insert(keyBytes, value []byte) (previous []byte, replaced bool, err error) {
	if err := idx.validateKey(keyBytes); err != nil {
		return nil, false, err
	}
	if len(value) != idx.valueSize {
		return nil, false, ErrValueSize
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()

	storedValue := append([]byte(nil), value...)
	storedKey := append([]byte(nil), keyBytes...)

	i, found := idx.search(keyBytes)
	if found {
		previous = idx.entries[i].value
		idx.entries[i].value = storedValue
		return previous, true, nil
	}
	idx.entries = append(idx.entries, entry{})
	copy(idx.entries[i+1:], idx.entries[i:])
	idx.entries[i] = entry{key: storedKey, value: storedValue}
	return nil, false, nil
}

// Lookup returns the value stored for key, if any.
func (idx *Index) Lookup(keyBytes []byte) ([]byte, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	i, found := idx.search(keyBytes)
	if !found {
		return nil, false
	}
	return append([]byte(nil), idx.entries[i].value...), true
}

// Delete removes the entry for key, reporting whether one existed.
func (idx *Index) Delete(keyBytes []byte) ([]byte, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	i, found := idx.search(keyBytes)
	if !found {
		return nil, false
	}
	value := idx.entries[i].value
	idx.entries = append(idx.entries[:i], idx.entries[i+1:]...)
	return value, true
}

// Len returns the number of entries in the index.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// ScanForward returns every (key, value) pair with lo <= key <= hi, in
// ascending key order.
func (idx *Index) ScanForward(lo, hi []byte) [][2][]byte {
	return idx.scan(lo, hi, false)
}

// ScanReverse returns every (key, value) pair with lo <= key <= hi, in
// descending key order.
func (idx *Index) ScanReverse(lo, hi []byte) [][2][]byte {
	return idx.scan(lo, hi, true)
}

func (idx *Index) scan(lo, hi []byte, reverse bool) [][2][]byte {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	start := sort.Search(len(idx.entries), func(i int) bool {
		return idx.traits.Compare(idx.entries[i].key, lo) >= 0
	})
	var out [][2][]byte
	for i := start; i < len(idx.entries); i++ {
		if idx.traits.Compare(idx.entries[i].key, hi) > 0 {
			break
		}
		out = append(out, [2][]byte{
			append([]byte(nil), idx.entries[i].key...),
			append([]byte(nil), idx.entries[i].value...),
		})
	}
	if reverse {
		for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
			out[l], out[r] = out[r], out[l]
		}
	}
	return out
}

// recordSize is the fixed on-disk width of one (key, value) entry.
func (idx *Index) recordSize() int {
	return idx.traits.KeySize() + idx.valueSize
}

// Flush serializes every entry to the index's FileSet, growing it with
// additional fixed-size files as needed. Existing files are overwritten
// from the start; this index does not yet support incremental persistence.
func (idx *Index) Flush() error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	recordSize := idx.recordSize()
	if recordSize == 0 {
		return nil
	}
	recordsPerFile := (datafile.DefaultDataAreaSize / nodeSize) * (nodeSize / recordSize)
	if recordsPerFile == 0 {
		recordsPerFile = 1
	}

	fileIndex := 0
	offsetInFile := int64(0)
	var buf bytes.Buffer
	flushBuffered := func() error {
		f, ok := idx.fileset.At(fileIndex)
		if !ok {
			var err error
			f, err = idx.fileset.Grow()
			if err != nil {
				return err
			}
		}
		if _, err := f.WriteAt(buf.Bytes(), offsetInFile); err != nil {
			return err
		}
		return f.Sync()
	}

	count := 0
	for _, e := range idx.entries {
		buf.Write(e.key)
		buf.Write(e.value)
		count++
		if count == recordsPerFile {
			if err := flushBuffered(); err != nil {
				return err
			}
			buf.Reset()
			offsetInFile = 0
			fileIndex++
			count = 0
		}
	}
	if buf.Len() > 0 {
		if err := flushBuffered(); err != nil {
			return err
		}
	}
	return nil
}
