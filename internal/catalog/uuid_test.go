package catalog

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestComputeDatabaseUUIDForSYS checks that ComputeDatabaseUUID("SYS", 1)
// reproduces the exact 16-byte value the system database is known to
// bootstrap with.
func TestComputeDatabaseUUIDForSYS(t *testing.T) {
	got := ComputeDatabaseUUID(SystemDatabaseName, SystemDatabaseCreateTimestamp)
	want, err := hex.DecodeString("68ba038eb7042cb91d0db91864c819cd")
	assert.NoError(t, err)
	assert.Equal(t, want, got[:])
}

func TestComputeDatabaseUUIDDeterministic(t *testing.T) {
	a := ComputeDatabaseUUID("mydb", 12345)
	b := ComputeDatabaseUUID("mydb", 12345)
	assert.Equal(t, a, b)

	c := ComputeDatabaseUUID("mydb", 12346)
	assert.NotEqual(t, a, c)
}
