package catalog

import (
	"crypto/md5" //nolint:gosec // not used as a security primitive, only as a fixed deterministic UUID derivation
	"encoding/binary"
)

// SystemDatabaseCreateTimestamp is the fixed createTimestamp the SYS
// database's UUID is derived from: canonical database SYS always uses
// createTimestamp = 1.
const SystemDatabaseCreateTimestamp int64 = 1

// ComputeDatabaseUUID derives a database's UUID deterministically:
// MD5(name bytes || createTimestamp as a native 8-byte little-endian
// integer). createTimestamp is the database's creation time, expressed
// as a Unix timestamp (seconds); SYS always uses
// SystemDatabaseCreateTimestamp.
func ComputeDatabaseUUID(name string, createTimestamp int64) [16]byte {
	h := md5.New() //nolint:gosec
	h.Write([]byte(name))
	var ts [8]byte
	binary.LittleEndian.PutUint64(ts[:], uint64(createTimestamp))
	h.Write(ts[:])
	var out [16]byte
	copy(out[:], h.Sum(nil))
	return out
}
