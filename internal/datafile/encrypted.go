package datafile

import (
	"encoding/binary"
	"fmt"

	"nexusdb/internal/crypto"
	"nexusdb/internal/engineerr"
)

// EncryptedBlockStore wraps a File's data area, sealing and opening
// fixed-size blocks with the database's derived cipher key. Only the
// data area is encrypted; the 1024-byte header, which callers read
// before a cipher key is available, stays in the clear.
type EncryptedBlockStore struct {
	file      *File
	cipher    *crypto.BlockCipher
	blockSize int64
}

// NewEncryptedBlockStore wraps file, sealing/opening blockSize-byte
// blocks with key.
func NewEncryptedBlockStore(file *File, key []byte, blockSize int64) (*EncryptedBlockStore, error) {
	bc, err := crypto.NewBlockCipher(key)
	if err != nil {
		return nil, err
	}
	return &EncryptedBlockStore{file: file, cipher: bc, blockSize: blockSize}, nil
}

// additionalData binds a sealed block to its position so that a ciphertext
// copied to a different block offset fails authentication on open.
func additionalData(blockID uint64, formatVersion uint32) []byte {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint64(buf[0:8], blockID)
	binary.LittleEndian.PutUint32(buf[8:12], formatVersion)
	return buf
}

// ReadBlock decrypts and returns the plaintext of block blockID.
func (s *EncryptedBlockStore) ReadBlock(blockID uint64) ([]byte, error) {
	sealed := make([]byte, s.sealedBlockSize())
	if _, err := s.file.ReadAt(sealed, int64(blockID)*s.sealedBlockSize()); err != nil {
		return nil, engineerr.WrapFileRead(fmt.Sprintf("read block %d", blockID), err)
	}
	plaintext, err := s.cipher.Open(sealed, additionalData(blockID, s.file.header.Version))
	if err != nil {
		return nil, fmt.Errorf("datafile: decrypt block %d: %w", blockID, err)
	}
	return plaintext, nil
}

// WriteBlock encrypts plaintext and writes it to block blockID.
// plaintext must be exactly the store's logical block size.
func (s *EncryptedBlockStore) WriteBlock(blockID uint64, plaintext []byte) error {
	if int64(len(plaintext)) != s.blockSize {
		return fmt.Errorf("datafile: block %d: expected %d bytes, got %d", blockID, s.blockSize, len(plaintext))
	}
	sealed, err := s.cipher.Seal(plaintext, additionalData(blockID, s.file.header.Version))
	if err != nil {
		return fmt.Errorf("datafile: encrypt block %d: %w", blockID, err)
	}
	if int64(len(sealed)) != s.sealedBlockSize() {
		return fmt.Errorf("datafile: block %d: sealed size %d does not match reserved slot %d", blockID, len(sealed), s.sealedBlockSize())
	}
	if _, err := s.file.WriteAt(sealed, int64(blockID)*s.sealedBlockSize()); err != nil {
		return engineerr.WrapFileWrite(fmt.Sprintf("write block %d", blockID), err)
	}
	return nil
}

func (s *EncryptedBlockStore) sealedBlockSize() int64 {
	// nonce (12 bytes) + plaintext + Poly1305 tag (16 bytes)
	return s.blockSize + 12 + 16
}
