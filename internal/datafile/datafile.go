// Package datafile implements the on-disk layout shared by every data
// file the engine owns: table data files and unique-linear-index files
// alike. Each file begins with a fixed 1024-byte header followed by a
// data area whose size is always a multiple of the 8 KiB index node
// size.
package datafile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"nexusdb/internal/binenc"
	"nexusdb/internal/engineerr"
)

const (
	// HeaderSize is the fixed size in bytes of every data file's header.
	HeaderSize = 1024

	// CurrentFormatVersion is the only data file format version this
	// engine reads and writes.
	CurrentFormatVersion uint32 = 1

	// IndexNodeSize is the block granularity data-area sizes must be a
	// multiple of.
	IndexNodeSize = 8 * 1024

	// DefaultDataAreaSize is the data area size for ordinary user tables.
	DefaultDataAreaSize = 10 * 1024 * 1024

	// SystemTableDataAreaSize is the data area size for system catalog
	// tables, which are small and numerous.
	SystemTableDataAreaSize = 16 * 1024

	// FileMode is the permission bits data files and index files are
	// created with.
	FileMode = 0o660

	// Extension is the filename suffix used by finished data files.
	Extension = ".siodf"

	// TempExtension is the filename suffix used while a data file is
	// still being written, before it is renamed into place.
	TempExtension = ".tmp"

	// InitializedMarkerName is the sentinel file an instance's data root
	// carries once one-time initialization has completed.
	InitializedMarkerName = "initialized"
)

// Magic identifies a file as belonging to this engine.
var Magic = [4]byte{'N', 'X', 'D', 'B'}

// ErrIncompatibleDataFile is returned when a file's magic or version does
// not match what this engine understands.
var ErrIncompatibleDataFile = errors.New("datafile: incompatible data file")

// ErrInvalidDataAreaSize is returned when a requested or on-disk data
// area size is not a positive multiple of IndexNodeSize.
var ErrInvalidDataAreaSize = errors.New("datafile: invalid data area size")

// Header is the fixed-layout preamble of every data file.
type Header struct {
	Version       uint32
	DataAreaSize  uint64
}

// Encode writes h into a HeaderSize-byte block, zero-padding the
// remainder.
func (h Header) Encode() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], Magic[:])
	binenc.EncodeUint32(h.Version, buf[4:8])
	binenc.EncodeUint64(h.DataAreaSize, buf[8:16])
	return buf
}

// DecodeHeader parses a HeaderSize-byte block produced by Encode.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, ErrIncompatibleDataFile
	}
	if [4]byte(buf[0:4]) != Magic {
		return Header{}, ErrIncompatibleDataFile
	}
	var h Header
	if _, err := binenc.DecodeUint32(buf[4:8], &h.Version); err != nil {
		return Header{}, err
	}
	if h.Version != CurrentFormatVersion {
		return Header{}, ErrIncompatibleDataFile
	}
	if _, err := binenc.DecodeUint64(buf[8:16], &h.DataAreaSize); err != nil {
		return Header{}, err
	}
	if h.DataAreaSize == 0 || h.DataAreaSize%IndexNodeSize != 0 {
		return Header{}, ErrInvalidDataAreaSize
	}
	return h, nil
}

// File is a single open data file: its header plus the backing handle.
type File struct {
	path   string
	header Header
	f      *os.File
}

// Create allocates a new data file at path with the given data area
// size, writing it first to a .tmp sibling and renaming it into place
// once the header and zero-filled data area are durably on disk.
func Create(path string, dataAreaSize uint64) (*File, error) {
	if dataAreaSize == 0 || dataAreaSize%IndexNodeSize != 0 {
		return nil, ErrInvalidDataAreaSize
	}
	tmpPath := path + TempExtension
	f, err := os.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, FileMode)
	if err != nil {
		return nil, engineerr.WrapFileWrite(fmt.Sprintf("create %s", tmpPath), err)
	}

	header := Header{Version: CurrentFormatVersion, DataAreaSize: dataAreaSize}
	if _, err := f.Write(header.Encode()); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, engineerr.WrapFileWrite("write header", err)
	}
	if err := f.Truncate(int64(HeaderSize + dataAreaSize)); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, engineerr.WrapFileWrite("allocate data area", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, engineerr.WrapFileWrite("sync", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, engineerr.WrapFileWrite("rename into place", err)
	}
	return &File{path: path, header: header, f: f}, nil
}

// Open opens an existing data file and validates its header.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, FileMode)
	if err != nil {
		return nil, engineerr.WrapFileRead(fmt.Sprintf("open %s", path), err)
	}
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		f.Close()
		return nil, engineerr.WrapFileRead("read header", err)
	}
	header, err := DecodeHeader(buf)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &File{path: path, header: header, f: f}, nil
}

// Path returns the file's on-disk path.
func (df *File) Path() string { return df.path }

// Header returns the parsed file header.
func (df *File) Header() Header { return df.header }

// ReadAt reads len(p) bytes from the data area starting at offset
// (relative to the start of the data area, not the file).
func (df *File) ReadAt(p []byte, offset int64) (int, error) {
	if offset < 0 || uint64(offset)+uint64(len(p)) > df.header.DataAreaSize {
		return 0, ErrInvalidDataAreaSize
	}
	return df.f.ReadAt(p, HeaderSize+offset)
}

// WriteAt writes p to the data area starting at offset.
func (df *File) WriteAt(p []byte, offset int64) (int, error) {
	if offset < 0 || uint64(offset)+uint64(len(p)) > df.header.DataAreaSize {
		return 0, ErrInvalidDataAreaSize
	}
	return df.f.WriteAt(p, HeaderSize+offset)
}

// Sync flushes the file to stable storage.
func (df *File) Sync() error { return df.f.Sync() }

// Close closes the underlying file handle.
func (df *File) Close() error { return df.f.Close() }

// MarkInitialized creates the one-time initialization marker file under
// dataRoot.
func MarkInitialized(dataRoot string) error {
	marker := filepath.Join(dataRoot, InitializedMarkerName)
	f, err := os.OpenFile(marker, os.O_CREATE|os.O_EXCL|os.O_WRONLY, FileMode)
	if err != nil {
		return engineerr.WrapFileWrite("mark initialized", err)
	}
	return f.Close()
}

// IsInitialized reports whether dataRoot carries the initialization
// marker.
func IsInitialized(dataRoot string) bool {
	_, err := os.Stat(filepath.Join(dataRoot, InitializedMarkerName))
	return err == nil
}
