// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tbxml

import (
	"errors"
	"math"
	"strconv"
)

// MaxNodes is the largest number of nodes one document can hold.
const MaxNodes = math.MaxUint16

var (
	// ErrEmptyInput is returned when there are no top-level elements
	// to convert. No bytes are produced.
	ErrEmptyInput = errors.New("input document is empty")

	// ErrTooManyTemplates is returned when a document has more
	// distinct element shapes than a uint16 can count.
	ErrTooManyTemplates = errors.New("too many templates")

	// ErrTooManyNodes is returned when a document has more elements
	// than a uint16 can count.
	ErrTooManyNodes = errors.New("too many nodes")

	// ErrTooManyAttributes is returned for an element with more
	// attributes than a uint16 can count.
	ErrTooManyAttributes = errors.New("too many attributes")

	// ErrInvalidDocument is returned by [Document.MarshalBinary] when
	// an in-memory document breaks the template/node invariants.
	ErrInvalidDocument = errors.New("invalid document")
)

// Value is one attribute value of a node. Kind selects which of
// Number or Text is meaningful.
type Value struct {
	Kind   AttributeKind
	Number float64
	Text   string
}

// NumericValue returns a KindNumeric value.
func NumericValue(number float64) Value {
	return Value{Kind: KindNumeric, Number: number}
}

// TextValue returns a KindText value.
func TextValue(text string) Value {
	return Value{Kind: KindText, Text: text}
}

// String formats the value as attribute text. Numbers use the
// shortest representation that parses back to the same float64.
func (value Value) String() string {
	if value.Kind == KindNumeric {
		return strconv.FormatFloat(value.Number, 'g', -1, 64)
	}
	return value.Text
}

// Literal formats the value as attribute text that [Classify] puts
// back in the same kind. It differs from String only for infinities,
// which come from overflowing literals and are written as 1e999 and
// -1e999.
func (value Value) Literal() string {
	if value.Kind == KindNumeric && math.IsInf(value.Number, 0) {
		if value.Number > 0 {
			return "1e999"
		}
		return "-1e999"
	}
	return value.String()
}

// Node is one flattened element instance.
type Node struct {
	ID         uint16
	TemplateID uint16

	// Children are the IDs of the element children, in document order.
	Children []uint16

	// Values align positionally with the template's Slots.
	Values []Value

	// Text is the concatenation of the element's direct text and CDATA
	// content. HasText is false when that concatenation is empty.
	Text    string
	HasText bool
}

// Document is a flattened element tree: the product of [Flatten] and
// [Decode], and the input of [Document.MarshalBinary].
type Document struct {
	// Templates are in creation order; Templates[i].ID == i.
	Templates []*Template

	// Nodes are in pre-order visitation order; Nodes[i].ID == i.
	Nodes []*Node

	// Roots are the IDs of the top-level elements in document order.
	// They are not part of the wire format.
	Roots []uint16
}

// Template returns the template with the given ID.
func (document *Document) Template(id uint16) (*Template, bool) {
	if int(id) >= len(document.Templates) {
		return nil, false
	}
	return document.Templates[id], true
}

// Node returns the node with the given ID.
func (document *Document) Node(id uint16) (*Node, bool) {
	if int(id) >= len(document.Nodes) {
		return nil, false
	}
	return document.Nodes[id], true
}

// Stats summarizes a document.
type Stats struct {
	Templates int `json:"templates" yaml:"templates"`
	Nodes     int `json:"nodes"     yaml:"nodes"`
	Roots     int `json:"roots"     yaml:"roots"`

	// NumericValues and TextValues count attribute values by kind
	// across all nodes.
	NumericValues int `json:"numeric_values" yaml:"numeric_values"`
	TextValues    int `json:"text_values"    yaml:"text_values"`

	// NodesWithText counts nodes whose HasText is set.
	NodesWithText int `json:"nodes_with_text" yaml:"nodes_with_text"`

	// MaxDepth is the deepest nesting level; a lone root has depth 1.
	MaxDepth int `json:"max_depth" yaml:"max_depth"`
}

// Stats computes summary counts for the document.
func (document *Document) Stats() Stats {
	stats := Stats{
		Templates: len(document.Templates),
		Nodes:     len(document.Nodes),
		Roots:     len(document.Roots),
	}

	for _, node := range document.Nodes {
		for _, value := range node.Values {
			if value.Kind == KindNumeric {
				stats.NumericValues++
			} else {
				stats.TextValues++
			}
		}
		if node.HasText {
			stats.NodesWithText++
		}
	}

	type frame struct {
		id    uint16
		depth int
	}
	pending := make([]frame, 0, len(document.Roots))
	for _, root := range document.Roots {
		pending = append(pending, frame{id: root, depth: 1})
	}
	for len(pending) > 0 {
		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		stats.MaxDepth = max(stats.MaxDepth, current.depth)
		node, ok := document.Node(current.id)
		if !ok {
			continue
		}
		for _, child := range node.Children {
			pending = append(pending, frame{id: child, depth: current.depth + 1})
		}
	}

	return stats
}
