// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package treeview renders decoded tbxml documents for terminals.
//
// [Renderer.RenderDocument] prints a summary line, the template table
// (one row per template with its slot names and kinds), and the node
// forest indented by depth with each node's values and text.
// [Renderer.HighlightXML] colors XML text produced by
// [xmltree.Render] using chroma's XML lexer.
//
// Colors come from a [Theme] of ANSI 256-color codes. A renderer built
// with color disabled emits plain text with identical layout, which is
// what the CLI uses when output is not a terminal.
package treeview
