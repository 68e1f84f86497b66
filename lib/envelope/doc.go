// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package envelope wraps encoded tbxml documents in an optional
// compression frame for storage and transfer.
//
// The tbxml format itself has no header and no compression. An
// envelope adds both around it without changing the inner bytes:
//
//	magic "TBXE" | tag byte | uvarint uncompressed length | payload
//
// [Seal] compresses with LZ4 (block mode, fast) or zstd (better ratio
// for text-heavy documents) and falls back to [None] when compression
// does not shrink the payload. [Open] verifies the frame and returns
// the original bytes; [IsSealed] sniffs the magic so readers can
// accept both bare and sealed documents.
package envelope
