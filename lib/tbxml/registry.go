// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tbxml

import (
	"fmt"
	"math"

	"github.com/bureau-foundation/tbxml/lib/xmltree"
)

// MaxTemplates is the largest number of templates one document can
// hold: template IDs and the template count are both uint16.
const MaxTemplates = math.MaxUint16

// MaxAttributes is the largest attribute count a template can record.
const MaxAttributes = math.MaxUint16

// Slot is one attribute position of a template.
type Slot struct {
	Name string
	Kind AttributeKind
}

// Template describes one element shape. Templates are created by
// [Registry.Resolve] and never modified afterwards.
type Template struct {
	ID    uint16
	Name  string
	Slots []Slot
}

// Matches reports whether element has this template's shape: the same
// name, the same attribute count, and at every position the same
// attribute name with a value of the slot's kind.
func (template *Template) Matches(element *xmltree.Element) bool {
	if template.Name != element.Name {
		return false
	}
	if len(template.Slots) != len(element.Attributes) {
		return false
	}
	for i, attribute := range element.Attributes {
		slot := template.Slots[i]
		if slot.Name != attribute.Name || slot.Kind != Classify(attribute.Value) {
			return false
		}
	}
	return true
}

// Registry is the append-only template set of a single conversion.
// The zero value is ready to use. A Registry is not safe for
// concurrent use.
type Registry struct {
	templates []*Template
}

// NewRegistry returns an empty registry. IDs start at 0.
func NewRegistry() *Registry {
	return &Registry{}
}

// Resolve returns the first template, in creation order, that matches
// element, registering a new one with the next ID when none does. The
// only failures are capacity errors: [ErrTooManyTemplates] and
// [ErrTooManyAttributes].
func (registry *Registry) Resolve(element *xmltree.Element) (*Template, error) {
	for _, template := range registry.templates {
		if template.Matches(element) {
			return template, nil
		}
	}

	if len(registry.templates) >= MaxTemplates {
		return nil, fmt.Errorf("registering template for <%s>: %w", element.Name, ErrTooManyTemplates)
	}
	if len(element.Attributes) > MaxAttributes {
		return nil, fmt.Errorf("registering template for <%s> with %d attributes: %w",
			element.Name, len(element.Attributes), ErrTooManyAttributes)
	}

	template := &Template{
		ID:    uint16(len(registry.templates)),
		Name:  element.Name,
		Slots: make([]Slot, len(element.Attributes)),
	}
	for i, attribute := range element.Attributes {
		template.Slots[i] = Slot{Name: attribute.Name, Kind: Classify(attribute.Value)}
	}
	registry.templates = append(registry.templates, template)
	return template, nil
}

// Lookup returns the template with the given ID.
func (registry *Registry) Lookup(id uint16) (*Template, bool) {
	if int(id) >= len(registry.templates) {
		return nil, false
	}
	return registry.templates[id], true
}

// Templates returns the registered templates in creation order. The
// slice is shared with the registry; callers must not modify it.
func (registry *Registry) Templates() []*Template {
	return registry.templates
}

// Len returns the number of registered templates.
func (registry *Registry) Len() int {
	return len(registry.templates)
}
