package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrShortCiphertext is returned when a sealed block is too small to
// contain the nonce prefix this engine stores alongside it.
var ErrShortCiphertext = errors.New("crypto: ciphertext shorter than nonce")

// BlockCipher seals and opens individual data file blocks with
// ChaCha20-Poly1305, a single fixed AEAD construction in place of a
// pluggable cipher registry; it needs no external library beyond the
// standard extended-crypto module. It accepts only a 256-bit key;
// DeriveKey output of any other length is rejected by NewBlockCipher.
type BlockCipher struct {
	aead cipher.AEAD
}

// NewBlockCipher builds a BlockCipher from a 256-bit key, as produced by
// DeriveKey(256, seed).
func NewBlockCipher(key []byte) (*BlockCipher, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: new aead: %w", err)
	}
	return &BlockCipher{aead: aead}, nil
}

// Seal encrypts plaintext, prefixing the ciphertext with a freshly
// generated random nonce. additionalData is authenticated but not
// encrypted, typically the block's offset within its data file.
func (c *BlockCipher) Seal(plaintext, additionalData []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("crypto: generate nonce: %w", err)
	}
	out := make([]byte, 0, len(nonce)+len(plaintext)+c.aead.Overhead())
	out = append(out, nonce...)
	return c.aead.Seal(out, nonce, plaintext, additionalData), nil
}

// Open recovers the plaintext sealed by Seal.
func (c *BlockCipher) Open(sealed, additionalData []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, ErrShortCiphertext
	}
	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, additionalData)
	if err != nil {
		return nil, fmt.Errorf("crypto: open: %w", err)
	}
	return plaintext, nil
}
