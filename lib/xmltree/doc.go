// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package xmltree is the markup boundary for tbxml: a minimal element
// tree and a parser that produces it from XML text.
//
// The tree is deliberately generic. An [Element] has a tag name, an
// ordered list of [Attribute] name/value pairs, and an ordered list of
// child [Node] values, each tagged with a [NodeKind]: element, text,
// CDATA, or other (comments, processing instructions, directives).
// Consumers such as lib/tbxml never see raw markup, only this tree.
//
// [Parse] is built on the encoding/xml raw token stream. Qualified
// names are kept literally ("svg:rect" stays "svg:rect"), namespace
// declarations are ordinary attributes, and the parser checks tag
// nesting itself. Whitespace-only text is dropped unless
// [PreserveWhitespace] is set, matching the default behavior of a
// standard DOM loader; CDATA sections are always kept. Input must have
// one document element unless [Fragment] is set. Every parse failure
// wraps [ErrMalformed].
//
// [Render] writes elements back out as XML text. It is used by the
// "tbxml decode" command to show a decoded document.
package xmltree
