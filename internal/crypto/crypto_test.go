package crypto

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestDeriveKeySameInputsSameKey(t *testing.T) {
	entropy := bytes.Repeat([]byte{0x42}, entropySize)
	clock := fixedClock(time.Unix(1700000000, 0))

	a, err := deriveKey(256, DefaultSeed, bytes.NewReader(entropy), clock)
	require.NoError(t, err)
	b, err := deriveKey(256, DefaultSeed, bytes.NewReader(entropy), clock)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestDeriveKeyDifferentSeedsDiffer(t *testing.T) {
	entropy := bytes.Repeat([]byte{0x11}, entropySize)
	clock := fixedClock(time.Unix(1700000000, 0))

	a, err := deriveKey(256, "seed-one", bytes.NewReader(entropy), clock)
	require.NoError(t, err)
	b, err := deriveKey(256, "seed-two", bytes.NewReader(entropy), clock)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDeriveKeySwitchesHashByLength(t *testing.T) {
	entropy := bytes.Repeat([]byte{0x77}, entropySize)
	clock := fixedClock(time.Unix(1700000000, 0))

	k256, err := deriveKey(256, DefaultSeed, bytes.NewReader(entropy), clock)
	require.NoError(t, err)
	k512, err := deriveKey(512, DefaultSeed, bytes.NewReader(entropy), clock)
	require.NoError(t, err)
	assert.Len(t, k256, 32)
	assert.Len(t, k512, 64)
	// The two lengths pick different hash functions entirely, so the
	// shorter key is not simply a prefix of the longer one.
	assert.NotEqual(t, k256, k512[:32])
}

func TestDeriveKeyRejectsBadLengths(t *testing.T) {
	entropy := bytes.Repeat([]byte{0x01}, entropySize)
	clock := fixedClock(time.Unix(1700000000, 0))

	_, err := deriveKey(0, DefaultSeed, bytes.NewReader(entropy), clock)
	assert.ErrorIs(t, err, ErrInvalidKeyLength)

	_, err = deriveKey(7, DefaultSeed, bytes.NewReader(entropy), clock)
	assert.ErrorIs(t, err, ErrInvalidKeyLength)

	_, err = deriveKey(1024, DefaultSeed, bytes.NewReader(entropy), clock)
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestDeriveKeyEntropyUnavailable(t *testing.T) {
	_, err := deriveKey(256, DefaultSeed, bytes.NewReader(nil), fixedClock(time.Unix(0, 0)))
	assert.ErrorIs(t, err, ErrEntropyUnavailable)
}

func TestDeriveKeyLiveRoundsComplete(t *testing.T) {
	key, err := DeriveKey(256, DefaultSeed)
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestBlockCipherSealOpenRoundTrip(t *testing.T) {
	key, err := DeriveKey(256, "block-cipher-test")
	require.NoError(t, err)
	bc, err := NewBlockCipher(key)
	require.NoError(t, err)

	plaintext := []byte("row data for block 42")
	aad := []byte("offset:4096")

	sealed, err := bc.Seal(plaintext, aad)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, sealed)

	opened, err := bc.Open(sealed, aad)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestBlockCipherRejectsTamperedAAD(t *testing.T) {
	key, err := DeriveKey(256, "tamper-test")
	require.NoError(t, err)
	bc, err := NewBlockCipher(key)
	require.NoError(t, err)

	sealed, err := bc.Seal([]byte("secret"), []byte("offset:0"))
	require.NoError(t, err)

	_, err = bc.Open(sealed, []byte("offset:1"))
	assert.Error(t, err)
}

func TestBlockCipherRejectsShortCiphertext(t *testing.T) {
	key, err := DeriveKey(256, "short-test")
	require.NoError(t, err)
	bc, err := NewBlockCipher(key)
	require.NoError(t, err)

	_, err = bc.Open([]byte{1, 2, 3}, nil)
	assert.ErrorIs(t, err, ErrShortCiphertext)
}
