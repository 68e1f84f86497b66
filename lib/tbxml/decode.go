// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tbxml

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/bureau-foundation/tbxml/lib/xmltree"
)

var (
	// ErrTruncated is returned by [Decode] when the input ends in the
	// middle of a record.
	ErrTruncated = errors.New("truncated tbxml data")

	// ErrCorrupt is returned by [Decode] when the input is complete
	// but violates the format: bad kind or flag bytes, IDs out of
	// sequence, dangling references, or trailing bytes.
	ErrCorrupt = errors.New("corrupt tbxml data")
)

// Decode reads a document in the tbxml wire format. Roots are derived
// from the child lists: a node no other node lists as a child is
// top-level, and because IDs are assigned pre-order, those nodes in ID
// order are the original top-level sequence.
func Decode(data []byte) (*Document, error) {
	input := &decoder{data: data}

	templateCount, err := input.uint16("template count")
	if err != nil {
		return nil, err
	}

	document := &Document{Templates: make([]*Template, 0, templateCount)}
	for index := 0; index < int(templateCount); index++ {
		template, err := input.template(index)
		if err != nil {
			return nil, err
		}
		document.Templates = append(document.Templates, template)
	}

	nodeCount, err := input.uint16("node count")
	if err != nil {
		return nil, err
	}

	document.Nodes = make([]*Node, 0, nodeCount)
	hasParent := make([]bool, nodeCount)
	for index := 0; index < int(nodeCount); index++ {
		node, err := input.node(index, document, int(nodeCount), hasParent)
		if err != nil {
			return nil, err
		}
		document.Nodes = append(document.Nodes, node)
	}

	if remaining := len(data) - input.offset; remaining > 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after node %d", ErrCorrupt, remaining, int(nodeCount)-1)
	}

	for id, parented := range hasParent {
		if !parented {
			document.Roots = append(document.Roots, uint16(id))
		}
	}

	return document, nil
}

func (input *decoder) template(index int) (*Template, error) {
	id, err := input.uint16("template ID")
	if err != nil {
		return nil, err
	}
	if int(id) != index {
		return nil, fmt.Errorf("%w: template at position %d has ID %d", ErrCorrupt, index, id)
	}

	template := &Template{ID: id}
	if template.Name, err = input.string("template name"); err != nil {
		return nil, err
	}

	slotCount, err := input.uint16("attribute count")
	if err != nil {
		return nil, err
	}
	template.Slots = make([]Slot, slotCount)
	for i := range template.Slots {
		if template.Slots[i].Name, err = input.string("attribute name"); err != nil {
			return nil, err
		}
	}
	for i := range template.Slots {
		kind, err := input.byte("attribute kind")
		if err != nil {
			return nil, err
		}
		template.Slots[i].Kind = AttributeKind(kind)
		if !template.Slots[i].Kind.Valid() {
			return nil, fmt.Errorf("%w: template %d slot %d has kind byte %d", ErrCorrupt, id, i, kind)
		}
	}

	return template, nil
}

func (input *decoder) node(index int, document *Document, nodeCount int, hasParent []bool) (*Node, error) {
	id, err := input.uint16("node ID")
	if err != nil {
		return nil, err
	}
	if int(id) != index {
		return nil, fmt.Errorf("%w: node at position %d has ID %d", ErrCorrupt, index, id)
	}

	templateID, err := input.uint16("template reference")
	if err != nil {
		return nil, err
	}
	template, ok := document.Template(templateID)
	if !ok {
		return nil, fmt.Errorf("%w: node %d references template %d of %d", ErrCorrupt, id, templateID, len(document.Templates))
	}
	node := &Node{ID: id, TemplateID: templateID}

	childCount, err := input.uint16("child count")
	if err != nil {
		return nil, err
	}
	if childCount > 0 {
		node.Children = make([]uint16, childCount)
	}
	for i := range node.Children {
		child, err := input.uint16("child ID")
		if err != nil {
			return nil, err
		}
		// Pre-order numbering puts every child after its parent,
		// which also rules out cycles.
		if int(child) <= index || int(child) >= nodeCount {
			return nil, fmt.Errorf("%w: node %d lists child %d outside (%d, %d)", ErrCorrupt, id, child, id, nodeCount)
		}
		if hasParent[child] {
			return nil, fmt.Errorf("%w: node %d is listed as a child more than once", ErrCorrupt, child)
		}
		hasParent[child] = true
		node.Children[i] = child
	}

	node.Values = make([]Value, len(template.Slots))
	for i, slot := range template.Slots {
		if slot.Kind == KindNumeric {
			number, err := input.float64("numeric value")
			if err != nil {
				return nil, err
			}
			node.Values[i] = NumericValue(number)
		} else {
			text, err := input.string("text value")
			if err != nil {
				return nil, err
			}
			node.Values[i] = TextValue(text)
		}
	}

	hasText, err := input.byte("text flag")
	if err != nil {
		return nil, err
	}
	switch hasText {
	case 0:
	case 1:
		if node.Text, err = input.string("text"); err != nil {
			return nil, err
		}
		node.HasText = true
	default:
		return nil, fmt.Errorf("%w: node %d has text flag %d", ErrCorrupt, id, hasText)
	}

	return node, nil
}

// decoder reads wire primitives from data. Every read names what it is
// reading so truncation errors point at the field.
type decoder struct {
	data   []byte
	offset int
}

func (input *decoder) take(count int, what string) ([]byte, error) {
	if count > len(input.data)-input.offset {
		return nil, fmt.Errorf("%w: reading %s at byte %d", ErrTruncated, what, input.offset)
	}
	bytes := input.data[input.offset : input.offset+count]
	input.offset += count
	return bytes, nil
}

func (input *decoder) byte(what string) (byte, error) {
	bytes, err := input.take(1, what)
	if err != nil {
		return 0, err
	}
	return bytes[0], nil
}

func (input *decoder) uint16(what string) (uint16, error) {
	bytes, err := input.take(2, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(bytes), nil
}

func (input *decoder) float64(what string) (float64, error) {
	bytes, err := input.take(8, what)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(bytes)), nil
}

func (input *decoder) string(what string) (string, error) {
	length, size := binary.Uvarint(input.data[input.offset:])
	if size == 0 {
		return "", fmt.Errorf("%w: reading %s length at byte %d", ErrTruncated, what, input.offset)
	}
	if size < 0 {
		return "", fmt.Errorf("%w: %s length at byte %d overflows", ErrCorrupt, what, input.offset)
	}
	start := input.offset
	input.offset += size

	if length > uint64(len(input.data)-input.offset) {
		return "", fmt.Errorf("%w: %s at byte %d declares %d bytes", ErrTruncated, what, start, length)
	}
	bytes, _ := input.take(int(length), what)
	if !utf8.Valid(bytes) {
		return "", fmt.Errorf("%w: %s at byte %d is not valid UTF-8", ErrCorrupt, what, start)
	}
	return string(bytes), nil
}

// Tree rebuilds element trees from the document's roots. Each node's
// text, when present, becomes a single text child ahead of its
// element children; the original interleaving is not recorded.
func (document *Document) Tree() []*xmltree.Element {
	elements := make([]*xmltree.Element, len(document.Nodes))
	// Children always have larger IDs than their parents, so building
	// from the last node backwards finds every child already built.
	for index := len(document.Nodes) - 1; index >= 0; index-- {
		node := document.Nodes[index]
		element := &xmltree.Element{}
		if template, ok := document.Template(node.TemplateID); ok {
			element.Name = template.Name
			for i, value := range node.Values {
				name := ""
				if i < len(template.Slots) {
					name = template.Slots[i].Name
				}
				element.Attributes = append(element.Attributes, xmltree.Attribute{Name: name, Value: value.Literal()})
			}
		}
		if node.HasText {
			element.Children = append(element.Children, xmltree.Text(node.Text))
		}
		for _, child := range node.Children {
			if int(child) < len(elements) && elements[child] != nil {
				element.Children = append(element.Children, xmltree.Child(elements[child]))
			}
		}
		elements[index] = element
	}

	roots := make([]*xmltree.Element, 0, len(document.Roots))
	for _, root := range document.Roots {
		if int(root) < len(elements) {
			roots = append(roots, elements[root])
		}
	}
	return roots
}
