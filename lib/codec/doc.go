// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec renders decoded tbxml documents as structured data for
// tooling: JSON for people and scripts, YAML for review, and CBOR for
// compact machine exchange.
//
// The unit of output is a [Manifest], which lists every template with
// its slot names and kinds, every node with its template, children,
// values and text, the root node IDs, and the document digest. Values
// are carried as strings so that numbers which overflowed to infinity
// survive JSON, which has no spelling for them.
//
// CBOR output uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same document always produces identical bytes, which makes CBOR
// manifests usable as fixtures.
//
//	manifest := codec.NewManifest(document, digest.Document(data))
//	output, err := codec.MarshalJSON(manifest, false)
//
// Struct fields carry `json` tags, which fxamacker/cbor also reads, and
// `yaml` tags for gopkg.in/yaml.v3.
package codec
