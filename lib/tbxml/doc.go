// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tbxml converts an XML element tree into a compact binary
// form ("tiny binary XML").
//
// Most documents repeat a small number of element shapes many times.
// tbxml factors each distinct shape (tag name plus the ordered list of
// attribute names, each classified as Numeric or Text) into a
// [Template] stored once, and stores every element instance as a
// [Node]: a template reference, child node IDs, attribute values, and
// optional text.
//
// The pipeline has two stages:
//
//   - [Registry] resolves each element to an existing template by a
//     linear first-match scan, or registers a new one. Classification
//     uses a single numeric grammar ([Classify], [ParseNumeric]) at
//     both registration and match time, so a template and its
//     instances can never disagree about a slot's kind.
//
//   - [Converter] walks the element tree pre-order, assigning node IDs
//     in visitation order, and [Document.MarshalBinary] writes the
//     templates followed by the nodes.
//
// All state for one conversion (the registry, the node list, the
// top-level ID list) is created inside the call and discarded after
// it, so a [Converter] can be shared between goroutines.
//
// # Wire format
//
// Integers are little-endian. Strings are an unsigned LEB128 byte
// length followed by UTF-8 bytes.
//
//	TemplateCount uint16
//	per template:
//	  id uint16, name string, attributeCount uint16,
//	  attributeNames [attributeCount]string,
//	  attributeKinds [attributeCount]byte   // 0 Numeric, 1 Text
//	NodeCount uint16
//	per node:
//	  id uint16, templateId uint16, childCount uint16,
//	  childIds [childCount]uint16,
//	  values [attributeCount of the template]:
//	    Numeric: float64 (IEEE-754), Text: string
//	  hasText byte, text string (only when hasText is 1)
//
// There is no magic number, version, checksum, or end marker. Which
// nodes are top-level is not written either; [Decode] recovers it as
// the set of nodes no other node lists as a child, which is exact
// because IDs are assigned pre-order.
package tbxml
