// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for packages that
// consume tbxml documents.
//
// [ConvertXML] and [DecodeXML] produce real wire bytes and decoded
// documents from XML literals, so tests of the codec, tree view and
// CLI layers exercise the encoder instead of hand-built fixtures.
// [WriteFile] places fixture files in a test's temporary directory.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// lib/tbxml's own tests cannot use this package, which imports it.
package testutil
