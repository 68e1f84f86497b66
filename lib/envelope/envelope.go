// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Tag identifies the compression applied to an envelope payload. Tags
// are stored in the frame and must not change.
type Tag uint8

const (
	// None stores the payload as-is.
	None Tag = 0

	// LZ4 is LZ4 block compression.
	LZ4 Tag = 1

	// Zstd is zstd at the default level.
	Zstd Tag = 2
)

// String returns the name accepted by [ParseTag].
func (tag Tag) String() string {
	switch tag {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", tag)
	}
}

// ParseTag parses a compression name.
func ParseTag(name string) (Tag, error) {
	switch name {
	case "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want none, lz4, or zstd)", name)
	}
}

// magic opens every envelope. A bare tbxml document never starts with
// it: a non-zero template count is always followed by template ID 0.
var magic = [4]byte{'T', 'B', 'X', 'E'}

// maxPayload bounds the declared uncompressed length accepted by
// Open. A tbxml document with the maximum node and template counts
// stays far below it.
const maxPayload = 1 << 30

// ErrNotSealed is returned by [Open] for data without the envelope
// magic.
var ErrNotSealed = errors.New("data is not a tbxml envelope")

// errIncompressible signals that compression did not shrink the data.
var errIncompressible = errors.New("data is incompressible")

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("envelope: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("envelope: zstd decoder initialization failed: " + err.Error())
	}
}

// Seal frames data, compressing it with tag. The returned tag is the
// one actually used: [None] when the requested compression did not
// make the payload smaller.
func Seal(data []byte, tag Tag) ([]byte, Tag, error) {
	payload, err := compress(data, tag)
	if errors.Is(err, errIncompressible) {
		payload, tag = data, None
	} else if err != nil {
		return nil, 0, err
	}

	frame := make([]byte, 0, len(magic)+1+binary.MaxVarintLen64+len(payload))
	frame = append(frame, magic[:]...)
	frame = append(frame, byte(tag))
	frame = binary.AppendUvarint(frame, uint64(len(data)))
	frame = append(frame, payload...)
	return frame, tag, nil
}

// IsSealed reports whether data starts with the envelope magic.
func IsSealed(data []byte) bool {
	return len(data) >= len(magic) && bytes.Equal(data[:len(magic)], magic[:])
}

// Open verifies an envelope and returns the original bytes and the
// compression that was used.
func Open(data []byte) ([]byte, Tag, error) {
	if !IsSealed(data) {
		return nil, 0, ErrNotSealed
	}
	rest := data[len(magic):]
	if len(rest) == 0 {
		return nil, 0, fmt.Errorf("envelope: missing compression tag")
	}
	tag := Tag(rest[0])
	rest = rest[1:]

	length, size := binary.Uvarint(rest)
	if size <= 0 {
		return nil, 0, fmt.Errorf("envelope: invalid uncompressed length")
	}
	if length > maxPayload {
		return nil, 0, fmt.Errorf("envelope: uncompressed length %d exceeds limit %d", length, maxPayload)
	}
	payload := rest[size:]

	original, err := decompress(payload, tag, int(length))
	if err != nil {
		return nil, 0, err
	}
	return original, tag, nil
}

func compress(data []byte, tag Tag) ([]byte, error) {
	switch tag {
	case None:
		return data, nil

	case LZ4:
		destination := make([]byte, lz4.CompressBlockBound(len(data)))
		written, err := lz4.CompressBlock(data, destination, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		// CompressBlock returns 0 for incompressible input.
		if written == 0 || written >= len(data) {
			return nil, errIncompressible
		}
		return destination[:written], nil

	case Zstd:
		compressed := zstdEncoder.EncodeAll(data, nil)
		if len(compressed) >= len(data) {
			return nil, errIncompressible
		}
		return compressed, nil

	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}

func decompress(payload []byte, tag Tag, length int) ([]byte, error) {
	switch tag {
	case None:
		if len(payload) != length {
			return nil, fmt.Errorf("envelope: payload is %d bytes, header says %d", len(payload), length)
		}
		return payload, nil

	case LZ4:
		destination := make([]byte, length)
		read, err := lz4.UncompressBlock(payload, destination)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if read != length {
			return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, length)
		}
		return destination, nil

	case Zstd:
		result, err := zstdDecoder.DecodeAll(payload, make([]byte, 0, length))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(result) != length {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), length)
		}
		return result, nil

	default:
		return nil, fmt.Errorf("envelope: unsupported compression tag %d", tag)
	}
}
