package datafile

import (
	"fmt"
	"path/filepath"
	"sync"
)

// FileSet owns every data file belonging to one table or index, growing
// by appending new files rather than resizing existing ones, and closes
// every open handle together when the owning object is dropped.
type FileSet struct {
	mu           sync.Mutex
	dir          string
	namePrefix   string
	dataAreaSize uint64
	files        []*File
	closed       bool
}

// OpenFileSet opens every existing numbered data file for namePrefix
// under dir (namePrefix.0.siodf, namePrefix.1.siodf, ...), stopping at
// the first missing index. If none exist, the set starts empty and the
// first Grow call creates file 0.
func OpenFileSet(dir, namePrefix string, dataAreaSize uint64) (*FileSet, error) {
	fs := &FileSet{dir: dir, namePrefix: namePrefix, dataAreaSize: dataAreaSize}
	for i := 0; ; i++ {
		path := fs.pathFor(i)
		f, err := Open(path)
		if err != nil {
			break
		}
		fs.files = append(fs.files, f)
	}
	return fs, nil
}

func (fs *FileSet) pathFor(index int) string {
	return filepath.Join(fs.dir, fmt.Sprintf("%s.%d%s", fs.namePrefix, index, Extension))
}

// Grow creates and appends a new data file to the set, returning it.
func (fs *FileSet) Grow() (*File, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.closed {
		return nil, fmt.Errorf("datafile: fileset %s is closed", fs.namePrefix)
	}
	path := fs.pathFor(len(fs.files))
	f, err := Create(path, fs.dataAreaSize)
	if err != nil {
		return nil, err
	}
	fs.files = append(fs.files, f)
	return f, nil
}

// At returns the index'th file in the set.
func (fs *FileSet) At(index int) (*File, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if index < 0 || index >= len(fs.files) {
		return nil, false
	}
	return fs.files[index], true
}

// Len returns the number of files currently in the set.
func (fs *FileSet) Len() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.files)
}

// Close closes every file in the set. It is idempotent.
func (fs *FileSet) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.closed {
		return nil
	}
	fs.closed = true
	var firstErr error
	for _, f := range fs.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
