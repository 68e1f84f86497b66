// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// domainKey is a 32-byte BLAKE3 key. Each key is the ASCII domain name
// zero-padded to 32 bytes; changing one changes every digest in that
// domain.
type domainKey [32]byte

var (
	documentDomainKey = domainKey{
		't', 'b', 'x', 'm', 'l', '.', 'd', 'o', 'c', 'u', 'm', 'e', 'n', 't', 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	sourceDomainKey = domainKey{
		't', 'b', 'x', 'm', 'l', '.', 's', 'o', 'u', 'r', 'c', 'e', 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// Document returns the document-domain digest of encoded tbxml bytes
// (without any envelope).
func Document(data []byte) Hash {
	return keyedHash(documentDomainKey, data)
}

// Source returns the source-domain digest of XML input bytes.
func Source(data []byte) Hash {
	return keyedHash(sourceDomainKey, data)
}

// String returns the hex encoding of the hash.
func (hash Hash) String() string {
	return hex.EncodeToString(hash[:])
}

// Short returns the first 12 hex characters, for log lines and
// summaries.
func (hash Hash) Short() string {
	return hex.EncodeToString(hash[:6])
}

// IsZero reports whether hash is the zero value.
func (hash Hash) IsZero() bool {
	return hash == Hash{}
}

// MarshalText implements encoding.TextMarshaler so hashes serialize as
// hex strings in JSON, YAML, and CBOR.
func (hash Hash) MarshalText() ([]byte, error) {
	return []byte(hash.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (hash *Hash) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*hash = parsed
	return nil
}

// Parse parses a 64-character hex string.
func Parse(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("digest is %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}

func keyedHash(key domainKey, data []byte) Hash {
	// NewKeyed only fails for a key that is not 32 bytes, which the
	// domainKey type rules out.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}
