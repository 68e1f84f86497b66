// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package xmltree

import (
	"encoding/xml"
	"io"
	"strings"
)

// Render writes elements to w as XML text. When indent is non-empty,
// each element starts on its own line indented by depth; elements that
// hold only text keep it inline. KindOther children are not written.
func Render(w io.Writer, elements []*Element, indent string) error {
	var builder strings.Builder
	for _, element := range elements {
		renderElement(&builder, element, indent, 0)
	}
	_, err := io.WriteString(w, builder.String())
	return err
}

func renderElement(builder *strings.Builder, element *Element, indent string, depth int) {
	pretty := indent != ""
	if pretty {
		builder.WriteString(strings.Repeat(indent, depth))
	}

	builder.WriteByte('<')
	builder.WriteString(element.Name)
	for _, attribute := range element.Attributes {
		builder.WriteByte(' ')
		builder.WriteString(attribute.Name)
		builder.WriteString(`="`)
		escape(builder, attribute.Value)
		builder.WriteByte('"')
	}

	var hasText, hasElements bool
	for _, child := range element.Children {
		switch child.Kind {
		case KindElement:
			hasElements = true
		case KindText, KindCDATA:
			hasText = true
		}
	}

	if !hasText && !hasElements {
		builder.WriteString("/>")
		if pretty {
			builder.WriteByte('\n')
		}
		return
	}
	builder.WriteByte('>')

	if !hasElements {
		for _, child := range element.Children {
			if child.Kind == KindText || child.Kind == KindCDATA {
				escape(builder, child.Value)
			}
		}
	} else {
		if pretty {
			builder.WriteByte('\n')
		}
		for _, child := range element.Children {
			switch child.Kind {
			case KindElement:
				renderElement(builder, child.Element, indent, depth+1)
			case KindText, KindCDATA:
				if pretty {
					builder.WriteString(strings.Repeat(indent, depth+1))
				}
				escape(builder, child.Value)
				if pretty {
					builder.WriteByte('\n')
				}
			}
		}
		if pretty {
			builder.WriteString(strings.Repeat(indent, depth))
		}
	}

	builder.WriteString("</")
	builder.WriteString(element.Name)
	builder.WriteByte('>')
	if pretty {
		builder.WriteByte('\n')
	}
}

// escape writes value with XML special characters replaced by
// character references. strings.Builder never fails a write.
func escape(builder *strings.Builder, value string) {
	_ = xml.EscapeText(builder, []byte(value))
}
