// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes content digests for tbxml documents and the
// XML they were converted from.
//
// Digests are BLAKE3 in keyed mode with one fixed key per domain, so
// the same bytes hashed as a source and as an encoded document never
// collide. The CLI prints them with "tbxml convert --digest" and
// "tbxml inspect"; identical digests mean byte-identical output, which
// is a cheap way to confirm conversion is deterministic.
package digest
