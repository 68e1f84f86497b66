// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformed is wrapped by every error [Parse] returns for input
// that is not well-formed. The underlying *xml.SyntaxError, when there
// is one, is wrapped as well.
var ErrMalformed = errors.New("malformed XML")

// ParseOption configures [Parse].
type ParseOption func(*parseConfig)

type parseConfig struct {
	preserveWhitespace bool
	fragment           bool
}

// PreserveWhitespace keeps whitespace-only character data as text
// nodes. By default such runs (indentation between elements) are
// dropped.
func PreserveWhitespace(preserve bool) ParseOption {
	return func(config *parseConfig) {
		config.preserveWhitespace = preserve
	}
}

// Fragment accepts several top-level elements. Without it a second
// document element is malformed input.
func Fragment(fragment bool) ParseOption {
	return func(config *parseConfig) {
		config.fragment = fragment
	}
}

var cdataStart = []byte("<![CDATA[")

// Parse reads an XML document from r and returns its tree. Input that
// contains no tokens at all produces an empty [Document] and no error;
// deciding whether an empty document is acceptable is the caller's
// business.
//
// CDATA sections become [KindCDATA] nodes and are kept even when they
// hold only whitespace.
func Parse(r io.Reader, options ...ParseOption) (*Document, error) {
	var config parseConfig
	for _, option := range options {
		option(&config)
	}

	// The tokenizer reports CDATA as plain character data, so the
	// source is kept to look at the bytes each token starts from.
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading XML: %w", err)
	}
	decoder := xml.NewDecoder(bytes.NewReader(source))
	decoder.Strict = true

	document := &Document{}
	var open []*Element

	appendNode := func(node Node) {
		if len(open) == 0 {
			document.Children = append(document.Children, node)
			return
		}
		parent := open[len(open)-1]
		parent.Children = append(parent.Children, node)
	}

	roots := 0
	for {
		offset := decoder.InputOffset()
		// RawToken leaves prefixes unresolved, which keeps qualified
		// names literal. The price is that nesting is not checked for
		// us, so the open stack below does it.
		token, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		switch token := token.(type) {
		case xml.StartElement:
			element, err := newElement(token)
			if err != nil {
				return nil, malformedAt(decoder, "%v", err)
			}
			if len(open) == 0 {
				roots++
				if roots > 1 && !config.fragment {
					return nil, malformedAt(decoder, "multiple root elements: <%s> follows the document element", element.Name)
				}
			}
			appendNode(Child(element))
			open = append(open, element)

		case xml.EndElement:
			name := qualifiedName(token.Name)
			if len(open) == 0 {
				return nil, malformedAt(decoder, "unexpected end element </%s>", name)
			}
			current := open[len(open)-1]
			if current.Name != name {
				return nil, malformedAt(decoder, "element <%s> closed by </%s>", current.Name, name)
			}
			open = open[:len(open)-1]

		case xml.CharData:
			text := string(token)
			if offset < int64(len(source)) && bytes.HasPrefix(source[offset:], cdataStart) {
				if len(open) == 0 {
					return nil, malformedAt(decoder, "CDATA section outside the document element")
				}
				appendNode(CDATA(text))
				continue
			}
			whitespace := isWhitespace(text)
			if len(open) == 0 {
				if whitespace {
					continue
				}
				return nil, malformedAt(decoder, "character data outside the document element")
			}
			if whitespace && !config.preserveWhitespace {
				continue
			}
			appendNode(Text(text))

		case xml.Comment:
			appendNode(Node{Kind: KindOther, Value: string(token)})

		case xml.ProcInst:
			appendNode(Node{Kind: KindOther, Value: strings.TrimSpace(token.Target + " " + string(token.Inst))})

		case xml.Directive:
			appendNode(Node{Kind: KindOther, Value: string(token)})
		}
	}

	if len(open) > 0 {
		return nil, malformedAt(decoder, "unexpected end of input: <%s> is not closed", open[len(open)-1].Name)
	}

	return document, nil
}

// newElement converts a raw start tag, rejecting repeated attribute
// names (the raw tokenizer does not).
func newElement(start xml.StartElement) (*Element, error) {
	element := &Element{Name: qualifiedName(start.Name)}
	if len(start.Attr) == 0 {
		return element, nil
	}

	element.Attributes = make([]Attribute, len(start.Attr))
	seen := make(map[string]struct{}, len(start.Attr))
	for i, attribute := range start.Attr {
		name := qualifiedName(attribute.Name)
		if _, duplicate := seen[name]; duplicate {
			return nil, fmt.Errorf("element <%s> repeats attribute %q", element.Name, name)
		}
		seen[name] = struct{}{}
		element.Attributes[i] = Attribute{Name: name, Value: attribute.Value}
	}
	return element, nil
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

// isWhitespace reports whether text consists only of the four XML
// whitespace characters.
func isWhitespace(text string) bool {
	return strings.Trim(text, " \t\r\n") == ""
}

func malformedAt(decoder *xml.Decoder, format string, args ...any) error {
	line, column := decoder.InputPos()
	return fmt.Errorf("%w: line %d, column %d: %s", ErrMalformed, line, column, fmt.Sprintf(format, args...))
}
