// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"github.com/bureau-foundation/tbxml/lib/digest"
	"github.com/bureau-foundation/tbxml/lib/tbxml"
)

// FormatName identifies manifests produced by this package.
const FormatName = "tbxml"

// Manifest is the serializable description of a decoded document.
type Manifest struct {
	Format string      `json:"format" yaml:"format"`
	Digest digest.Hash `json:"digest" yaml:"digest"`

	// Size is the length in bytes of the encoded document, without
	// any envelope.
	Size  int         `json:"size"  yaml:"size"`
	Stats tbxml.Stats `json:"stats" yaml:"stats"`

	// Envelope names the compression of the envelope the document was
	// read from. It is empty for a bare document.
	Envelope string `json:"envelope,omitempty" yaml:"envelope,omitempty"`

	Templates []TemplateEntry `json:"templates" yaml:"templates"`
	Nodes     []NodeEntry     `json:"nodes"     yaml:"nodes"`
	Roots     []uint16        `json:"roots"     yaml:"roots"`
}

// TemplateEntry describes one template.
type TemplateEntry struct {
	ID    uint16      `json:"id"              yaml:"id"`
	Name  string      `json:"name"            yaml:"name"`
	Slots []SlotEntry `json:"slots,omitempty" yaml:"slots,omitempty"`
}

// SlotEntry is one attribute position of a template.
type SlotEntry struct {
	Name string `json:"name" yaml:"name"`
	Kind string `json:"kind" yaml:"kind"`
}

// NodeEntry describes one node.
type NodeEntry struct {
	ID       uint16       `json:"id"                 yaml:"id"`
	Template uint16       `json:"template"           yaml:"template"`
	Element  string       `json:"element"            yaml:"element"`
	Children []uint16     `json:"children,omitempty" yaml:"children,omitempty"`
	Values   []ValueEntry `json:"values,omitempty"   yaml:"values,omitempty"`
	Text     *string      `json:"text,omitempty"     yaml:"text,omitempty"`
}

// ValueEntry is one attribute value with the name of the slot it fills.
type ValueEntry struct {
	Name  string `json:"name"  yaml:"name"`
	Kind  string `json:"kind"  yaml:"kind"`
	Value string `json:"value" yaml:"value"`
}

// NewManifest describes document. size is the encoded length and hash
// its digest; both are reported as given.
func NewManifest(document *tbxml.Document, hash digest.Hash, size int) *Manifest {
	manifest := &Manifest{
		Format:    FormatName,
		Digest:    hash,
		Size:      size,
		Stats:     document.Stats(),
		Templates: make([]TemplateEntry, 0, len(document.Templates)),
		Nodes:     make([]NodeEntry, 0, len(document.Nodes)),
		Roots:     append([]uint16{}, document.Roots...),
	}

	for _, template := range document.Templates {
		entry := TemplateEntry{ID: template.ID, Name: template.Name}
		for _, slot := range template.Slots {
			entry.Slots = append(entry.Slots, SlotEntry{Name: slot.Name, Kind: slot.Kind.String()})
		}
		manifest.Templates = append(manifest.Templates, entry)
	}

	for _, node := range document.Nodes {
		entry := NodeEntry{
			ID:       node.ID,
			Template: node.TemplateID,
			Children: node.Children,
		}
		template, ok := document.Template(node.TemplateID)
		if ok {
			entry.Element = template.Name
		}
		for index, value := range node.Values {
			valueEntry := ValueEntry{Kind: value.Kind.String(), Value: value.String()}
			if ok && index < len(template.Slots) {
				valueEntry.Name = template.Slots[index].Name
			}
			entry.Values = append(entry.Values, valueEntry)
		}
		if node.HasText {
			text := node.Text
			entry.Text = &text
		}
		manifest.Nodes = append(manifest.Nodes, entry)
	}

	return manifest
}
