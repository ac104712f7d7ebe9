// Package crypto derives at-rest encryption keys and wraps the AEAD cipher
// used to seal data file blocks. Key derivation mirrors the reference
// engine's KeyGenerator: OS entropy and the current time seed a hash that
// is then rehashed a number of times taken from the entropy bytes to
// produce the final key material.
package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"io"
	"time"
)

// DefaultSeed is the seed used when an instance has not been configured
// with one of its own.
const DefaultSeed = "siodb"

// ErrInvalidKeyLength is returned when the requested key length is not a
// positive multiple of 8 bits, or exceeds the digest size of the hash
// function that length would select.
var ErrInvalidKeyLength = errors.New("crypto: invalid key length")

// ErrEntropyUnavailable is returned when the OS entropy source could not
// supply the bytes key derivation needs.
var ErrEntropyUnavailable = errors.New("crypto: entropy unavailable")

// minRoundCount is ORed into the round count taken from the entropy bytes
// so that every derivation performs at least this many rehashes regardless
// of how the entropy bits happen to fall.
const minRoundCount = 0x8000

// entropySize is the number of random bytes gathered per derivation: 32
// bytes feed the initial hash, the trailing 2 bytes pick the round count.
const entropySize = 32 + 2

// DeriveKey produces keyLengthBits bits of key material seeded by seed, OS
// entropy, and the current time. Keys of 256 bits or fewer are derived
// over SHA-256; longer keys (up to 512 bits) are derived over SHA-512.
func DeriveKey(keyLengthBits int, seed string) ([]byte, error) {
	return deriveKey(keyLengthBits, seed, rand.Reader, time.Now)
}

func deriveKey(keyLengthBits int, seed string, entropy io.Reader, now func() time.Time) ([]byte, error) {
	if keyLengthBits <= 0 || keyLengthBits > 512 || keyLengthBits%8 != 0 {
		return nil, ErrInvalidKeyLength
	}
	keyLengthBytes := keyLengthBits / 8

	var digestSize int
	var hashOnce func([]byte) []byte
	if keyLengthBits <= 256 {
		digestSize = sha256.Size
		hashOnce = func(in []byte) []byte {
			out := sha256.Sum256(in)
			return out[:]
		}
	} else {
		digestSize = sha512.Size
		hashOnce = func(in []byte) []byte {
			out := sha512.Sum512(in)
			return out[:]
		}
	}
	if keyLengthBytes > digestSize {
		return nil, ErrInvalidKeyLength
	}

	entropyBytes := make([]byte, entropySize)
	if _, err := io.ReadFull(entropy, entropyBytes); err != nil {
		return nil, ErrEntropyUnavailable
	}
	rounds := int(binary.LittleEndian.Uint16(entropyBytes[32:34])) | minRoundCount

	var timeBytes [8]byte
	binary.LittleEndian.PutUint64(timeBytes[:], uint64(now().UnixNano()))

	message := make([]byte, 0, len(seed)+len(timeBytes)+32)
	message = append(message, seed...)
	message = append(message, timeBytes[:]...)
	message = append(message, entropyBytes[:32]...)

	digest := hashOnce(message)
	for i := 0; i < rounds; i++ {
		digest = hashOnce(digest)
	}

	key := make([]byte, keyLengthBytes)
	copy(key, digest[:keyLengthBytes])
	return key, nil
}
