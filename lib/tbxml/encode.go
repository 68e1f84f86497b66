// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tbxml

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// MarshalBinary writes the document in the tbxml wire format. It
// checks the invariants the format depends on (sequential IDs, value
// counts and kinds matching slots, resolvable references) and returns
// [ErrInvalidDocument] rather than writing bytes a reader could not
// follow. Roots are not written.
func (document *Document) MarshalBinary() ([]byte, error) {
	if len(document.Templates) > MaxTemplates {
		return nil, fmt.Errorf("encoding %d templates: %w", len(document.Templates), ErrTooManyTemplates)
	}
	if len(document.Nodes) > MaxNodes {
		return nil, fmt.Errorf("encoding %d nodes: %w", len(document.Nodes), ErrTooManyNodes)
	}

	var output encoder

	output.uint16(uint16(len(document.Templates)))
	for index, template := range document.Templates {
		if int(template.ID) != index {
			return nil, fmt.Errorf("%w: template at position %d has ID %d", ErrInvalidDocument, index, template.ID)
		}
		if len(template.Slots) > MaxAttributes {
			return nil, fmt.Errorf("encoding template %d: %w", template.ID, ErrTooManyAttributes)
		}

		output.uint16(template.ID)
		output.string(template.Name)
		output.uint16(uint16(len(template.Slots)))
		for _, slot := range template.Slots {
			output.string(slot.Name)
		}
		for _, slot := range template.Slots {
			if !slot.Kind.Valid() {
				return nil, fmt.Errorf("%w: template %d slot %q has kind %s", ErrInvalidDocument, template.ID, slot.Name, slot.Kind)
			}
			output.byte(byte(slot.Kind))
		}
	}

	output.uint16(uint16(len(document.Nodes)))
	for index, node := range document.Nodes {
		if int(node.ID) != index {
			return nil, fmt.Errorf("%w: node at position %d has ID %d", ErrInvalidDocument, index, node.ID)
		}
		template, ok := document.Template(node.TemplateID)
		if !ok {
			return nil, fmt.Errorf("%w: node %d references unknown template %d", ErrInvalidDocument, node.ID, node.TemplateID)
		}
		if len(node.Values) != len(template.Slots) {
			return nil, fmt.Errorf("%w: node %d has %d values, template %d has %d slots",
				ErrInvalidDocument, node.ID, len(node.Values), template.ID, len(template.Slots))
		}

		output.uint16(node.ID)
		output.uint16(node.TemplateID)
		output.uint16(uint16(len(node.Children)))
		for _, child := range node.Children {
			if int(child) >= len(document.Nodes) {
				return nil, fmt.Errorf("%w: node %d references unknown child %d", ErrInvalidDocument, node.ID, child)
			}
			output.uint16(child)
		}

		for i, value := range node.Values {
			slot := template.Slots[i]
			if value.Kind != slot.Kind {
				return nil, fmt.Errorf("%w: node %d value %d is %s, slot %q is %s",
					ErrInvalidDocument, node.ID, i, value.Kind, slot.Name, slot.Kind)
			}
			if slot.Kind == KindNumeric {
				output.float64(value.Number)
			} else {
				output.string(value.Text)
			}
		}

		if node.HasText && node.Text != "" {
			output.byte(1)
			output.string(node.Text)
		} else {
			output.byte(0)
		}
	}

	return output.buffer, nil
}

// encoder appends wire primitives to a growing buffer.
type encoder struct {
	buffer []byte
}

func (output *encoder) byte(value byte) {
	output.buffer = append(output.buffer, value)
}

func (output *encoder) uint16(value uint16) {
	output.buffer = binary.LittleEndian.AppendUint16(output.buffer, value)
}

func (output *encoder) float64(value float64) {
	output.buffer = binary.LittleEndian.AppendUint64(output.buffer, math.Float64bits(value))
}

// string writes the LEB128 byte length and the bytes. Invalid UTF-8
// sequences are replaced with U+FFFD so the output is always valid.
func (output *encoder) string(value string) {
	if !utf8.ValidString(value) {
		value = strings.ToValidUTF8(value, "\uFFFD")
	}
	output.buffer = binary.AppendUvarint(output.buffer, uint64(len(value)))
	output.buffer = append(output.buffer, value...)
}
