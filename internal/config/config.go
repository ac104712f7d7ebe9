// Package config reads an instance's TOML configuration file: data
// root, listen addresses, cache capacities, and cipher defaults used by
// both the supervisor and the IO Manager. It is grounded on the
// teacher's internal/parser/toml package, which decodes a domain
// document with BurntSushi/toml into a converted, validated struct
// tree; this package adapts the same two-stage decode-then-convert
// shape to instance configuration instead of a schema file.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// rawConfig is the literal shape of the TOML document on disk.
type rawConfig struct {
	Instance rawInstance `toml:"instance"`
	Network  rawNetwork  `toml:"network"`
	Cache    rawCache    `toml:"cache"`
	Cipher   rawCipher   `toml:"cipher"`
}

type rawInstance struct {
	Name     string `toml:"name"`
	DataRoot string `toml:"data_root"`
}

type rawNetwork struct {
	RESTListenAddress string `toml:"rest_listen_address"`
	WireListenAddress string `toml:"wire_listen_address"`
}

type rawCache struct {
	ColumnBlockCapacity int `toml:"column_block_capacity"`
}

type rawCipher struct {
	DefaultCipherID string `toml:"default_cipher_id"`
	KeyLengthBits   int    `toml:"key_length_bits"`
	Seed            string `toml:"seed"`
}

// Config is the validated, ready-to-use instance configuration.
type Config struct {
	InstanceName string
	DataRoot     string

	RESTListenAddress string
	WireListenAddress string

	ColumnBlockCacheCapacity int

	DefaultCipherID string
	CipherKeyLengthBits int
	CipherSeed       string
}

// Defaults returns the engine's built-in instance defaults: a 256-bit
// key derived with the default seed, and a modestly sized column block
// cache.
func Defaults() Config {
	return Config{
		RESTListenAddress:        "127.0.0.1:50080",
		WireListenAddress:        "127.0.0.1:50000",
		ColumnBlockCacheCapacity: 1024,
		DefaultCipherID:          "chacha20poly1305",
		CipherKeyLengthBits:      256,
		CipherSeed:               "siodb",
	}
}

// Load reads and validates the TOML configuration file at path, merging
// it over Defaults().
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads TOML content from r, merging it over Defaults().
func Parse(r io.Reader) (Config, error) {
	var raw rawConfig
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return convert(raw)
}

func convert(raw rawConfig) (Config, error) {
	cfg := Defaults()

	if raw.Instance.Name == "" {
		return Config{}, fmt.Errorf("config: instance.name is required")
	}
	cfg.InstanceName = raw.Instance.Name

	if raw.Instance.DataRoot == "" {
		return Config{}, fmt.Errorf("config: instance.data_root is required")
	}
	cfg.DataRoot = raw.Instance.DataRoot

	if raw.Network.RESTListenAddress != "" {
		cfg.RESTListenAddress = raw.Network.RESTListenAddress
	}
	if raw.Network.WireListenAddress != "" {
		cfg.WireListenAddress = raw.Network.WireListenAddress
	}

	if raw.Cache.ColumnBlockCapacity > 0 {
		cfg.ColumnBlockCacheCapacity = raw.Cache.ColumnBlockCapacity
	}

	if raw.Cipher.DefaultCipherID != "" {
		cfg.DefaultCipherID = raw.Cipher.DefaultCipherID
	}
	if raw.Cipher.KeyLengthBits > 0 {
		if raw.Cipher.KeyLengthBits%8 != 0 || raw.Cipher.KeyLengthBits > 512 {
			return Config{}, fmt.Errorf("config: cipher.key_length_bits %d is not a valid key length", raw.Cipher.KeyLengthBits)
		}
		cfg.CipherKeyLengthBits = raw.Cipher.KeyLengthBits
	}
	if raw.Cipher.Seed != "" {
		cfg.CipherSeed = raw.Cipher.Seed
	}

	return cfg, nil
}
