// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package xmltree

import "fmt"

// NodeKind identifies what a child [Node] holds.
type NodeKind uint8

const (
	// KindElement is a nested element. [Node.Element] is set.
	KindElement NodeKind = iota

	// KindText is character data. [Node.Value] holds the text with
	// entities already resolved.
	KindText

	// KindCDATA is the content of a CDATA section. [Parse] keeps these
	// even when they hold only whitespace.
	KindCDATA

	// KindOther covers comments, processing instructions, and
	// directives. Consumers ignore these.
	KindOther
)

// String returns the kind name used in error messages and debug logs.
func (kind NodeKind) String() string {
	switch kind {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindCDATA:
		return "cdata"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("unknown(%d)", kind)
	}
}

// Attribute is one name/value pair, in source order.
type Attribute struct {
	Name  string
	Value string
}

// Element is one element in the tree.
type Element struct {
	// Name is the qualified tag name exactly as written.
	Name string

	// Attributes are in source order. Order is significant to
	// consumers.
	Attributes []Attribute

	// Children are the element's direct child nodes in document order.
	Children []Node
}

// Node is one child of an [Element] or [Document].
type Node struct {
	Kind NodeKind

	// Element is set when Kind is KindElement.
	Element *Element

	// Value is the character content for KindText and KindCDATA, and
	// the raw content for KindOther.
	Value string
}

// Child wraps element as a KindElement node.
func Child(element *Element) Node {
	return Node{Kind: KindElement, Element: element}
}

// Text returns a KindText node.
func Text(value string) Node {
	return Node{Kind: KindText, Value: value}
}

// CDATA returns a KindCDATA node.
func CDATA(value string) Node {
	return Node{Kind: KindCDATA, Value: value}
}

// Attr returns the value of the first attribute called name.
func (element *Element) Attr(name string) (string, bool) {
	for _, attribute := range element.Attributes {
		if attribute.Name == name {
			return attribute.Value, true
		}
	}
	return "", false
}

// ChildElements returns the element children in document order.
func (element *Element) ChildElements() []*Element {
	return elementsOf(element.Children)
}

// Document is the result of a parse: the top-level nodes of the
// input, including the prolog's processing instructions and comments.
type Document struct {
	Children []Node
}

// Elements returns the top-level elements. For well-formed XML this
// is the single document element; [Fragment] parsing may yield more.
func (document *Document) Elements() []*Element {
	if document == nil {
		return nil
	}
	return elementsOf(document.Children)
}

func elementsOf(nodes []Node) []*Element {
	var elements []*Element
	for _, node := range nodes {
		if node.Kind == KindElement && node.Element != nil {
			elements = append(elements, node.Element)
		}
	}
	return elements
}
