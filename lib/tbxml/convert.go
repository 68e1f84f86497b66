// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tbxml

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bureau-foundation/tbxml/lib/xmltree"
)

// Converter flattens and encodes element trees. It holds no
// per-conversion state; every call builds a fresh registry and node
// list. The zero value is ready to use.
type Converter struct {
	// Logger receives debug records for template registration and a
	// summary per conversion. Nil disables logging.
	Logger *slog.Logger
}

// Convert flattens roots and encodes the result. It returns
// [ErrEmptyInput] and no bytes when roots holds no elements.
func Convert(roots []*xmltree.Element) ([]byte, error) {
	var converter Converter
	return converter.Convert(roots)
}

// ConvertReader parses XML from r and converts the top-level elements.
// Parse failures are returned exactly as [xmltree.Parse] reported
// them.
func ConvertReader(r io.Reader, options ...xmltree.ParseOption) ([]byte, error) {
	var converter Converter
	return converter.ConvertReader(r, options...)
}

// Flatten builds the in-memory [Document] for roots without encoding
// it.
func Flatten(roots []*xmltree.Element) (*Document, error) {
	var converter Converter
	return converter.Flatten(roots)
}

// Convert flattens roots and encodes the result.
func (converter *Converter) Convert(roots []*xmltree.Element) ([]byte, error) {
	document, err := converter.Flatten(roots)
	if err != nil {
		return nil, err
	}
	return document.MarshalBinary()
}

// ConvertReader parses XML from r and converts the top-level elements.
func (converter *Converter) ConvertReader(r io.Reader, options ...xmltree.ParseOption) ([]byte, error) {
	source, err := xmltree.Parse(r, options...)
	if err != nil {
		return nil, err
	}
	return converter.Convert(source.Elements())
}

// Flatten walks roots pre-order and returns the flattened document.
// Nil entries are skipped; if nothing remains the result is
// [ErrEmptyInput].
func (converter *Converter) Flatten(roots []*xmltree.Element) (*Document, error) {
	run := &flattener{
		registry: NewRegistry(),
		logger:   converter.logger(),
	}

	for _, root := range roots {
		if root == nil {
			continue
		}
		id, err := run.visit(root)
		if err != nil {
			return nil, err
		}
		run.roots = append(run.roots, id)
	}

	if len(run.roots) == 0 {
		return nil, ErrEmptyInput
	}

	document := &Document{
		Templates: run.registry.Templates(),
		Nodes:     run.nodes,
		Roots:     run.roots,
	}
	run.logger.Debug("flattened document",
		"templates", len(document.Templates),
		"nodes", len(document.Nodes),
		"roots", len(document.Roots),
	)
	return document, nil
}

func (converter *Converter) logger() *slog.Logger {
	if converter.Logger != nil {
		return converter.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// flattener is the state of one Flatten call. roots is the synthetic
// container for top-level elements.
type flattener struct {
	registry *Registry
	nodes    []*Node
	roots    []uint16
	logger   *slog.Logger
}

// visit registers element and its subtree and returns its node ID.
func (run *flattener) visit(element *xmltree.Element) (uint16, error) {
	known := run.registry.Len()
	template, err := run.registry.Resolve(element)
	if err != nil {
		return 0, err
	}
	if run.registry.Len() > known {
		run.logger.Debug("registered template",
			"template", template.ID,
			"name", template.Name,
			"slots", len(template.Slots),
		)
	}

	if len(run.nodes) >= MaxNodes {
		return 0, fmt.Errorf("adding node for <%s>: %w", element.Name, ErrTooManyNodes)
	}
	node := &Node{
		ID:         uint16(len(run.nodes)),
		TemplateID: template.ID,
		Values:     make([]Value, len(template.Slots)),
	}
	run.nodes = append(run.nodes, node)

	for i, attribute := range element.Attributes {
		if template.Slots[i].Kind == KindNumeric {
			number, _ := ParseNumeric(attribute.Value)
			node.Values[i] = NumericValue(number)
		} else {
			node.Values[i] = TextValue(attribute.Value)
		}
	}

	var text strings.Builder
	for _, child := range element.Children {
		switch child.Kind {
		case xmltree.KindElement:
			if child.Element == nil {
				continue
			}
			childID, err := run.visit(child.Element)
			if err != nil {
				return 0, err
			}
			node.Children = append(node.Children, childID)
		case xmltree.KindText, xmltree.KindCDATA:
			text.WriteString(child.Value)
		}
	}
	if text.Len() > 0 {
		node.Text = text.String()
		node.HasText = true
	}

	return node.ID, nil
}
