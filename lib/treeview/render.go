// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package treeview

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/tbxml/lib/digest"
	"github.com/bureau-foundation/tbxml/lib/tbxml"
)

// Renderer formats documents with a theme.
type Renderer struct {
	theme Theme
	color bool

	// lipRenderer has a fixed color profile so output does not depend
	// on lipgloss re-detecting the terminal from the environment.
	lipRenderer *lipgloss.Renderer
}

// New returns a renderer. When color is false, output carries no
// escape sequences.
func New(w io.Writer, theme Theme, color bool) *Renderer {
	profile := termenv.Ascii
	if color {
		profile = termenv.ANSI256
	}
	lipRenderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	lipRenderer.SetColorProfile(profile)
	return &Renderer{theme: theme, color: color, lipRenderer: lipRenderer}
}

func (renderer *Renderer) paint(color lipgloss.Color, text string) string {
	if !renderer.color {
		return text
	}
	return renderer.lipRenderer.NewStyle().Foreground(color).Render(text)
}

func (renderer *Renderer) bold(text string) string {
	if !renderer.color {
		return text
	}
	return renderer.lipRenderer.NewStyle().Foreground(renderer.theme.Header).Bold(true).Render(text)
}

// pad right-pads a possibly styled string to width visible cells.
func pad(text string, width int) string {
	if visible := ansi.StringWidth(text); visible < width {
		return text + strings.Repeat(" ", width-visible)
	}
	return text
}

// RenderDocument writes the summary, template table and node forest of
// document to w. A zero hash omits the digest line.
func (renderer *Renderer) RenderDocument(w io.Writer, document *tbxml.Document, hash digest.Hash) error {
	var builder strings.Builder

	stats := document.Stats()
	builder.WriteString(renderer.bold("tbxml document"))
	builder.WriteString(renderer.paint(renderer.theme.Faint, fmt.Sprintf("  %s, %s, %s",
		plural(stats.Templates, "template"), plural(stats.Nodes, "node"), plural(stats.Roots, "root"))))
	builder.WriteByte('\n')
	if !hash.IsZero() {
		builder.WriteString(renderer.paint(renderer.theme.Faint, "digest "+hash.String()))
		builder.WriteByte('\n')
	}

	builder.WriteByte('\n')
	builder.WriteString(renderer.bold("templates"))
	builder.WriteByte('\n')
	renderer.writeTemplates(&builder, document)

	builder.WriteByte('\n')
	builder.WriteString(renderer.bold("nodes"))
	builder.WriteByte('\n')
	for _, root := range document.Roots {
		renderer.writeNode(&builder, document, root, 1)
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

func (renderer *Renderer) writeTemplates(builder *strings.Builder, document *tbxml.Document) {
	idWidth, nameWidth := 0, 0
	for _, template := range document.Templates {
		idWidth = max(idWidth, len(templateLabel(template.ID)))
		nameWidth = max(nameWidth, ansi.StringWidth(template.Name))
	}

	for _, template := range document.Templates {
		line := "  " + pad(renderer.paint(renderer.theme.Faint, templateLabel(template.ID)), idWidth)
		line += "  " + pad(renderer.paint(renderer.theme.Element, template.Name), nameWidth)
		for _, slot := range template.Slots {
			line += "  " + renderer.paint(renderer.theme.Attribute, slot.Name) +
				renderer.paint(renderer.theme.Faint, ":"+slot.Kind.String())
		}
		builder.WriteString(strings.TrimRight(line, " "))
		builder.WriteByte('\n')
	}
}

func (renderer *Renderer) writeNode(builder *strings.Builder, document *tbxml.Document, id uint16, depth int) {
	node, ok := document.Node(id)
	if !ok {
		return
	}

	builder.WriteString(strings.Repeat("  ", depth))
	builder.WriteString(renderer.paint(renderer.theme.Faint, "["+strconv.Itoa(int(node.ID))+"]"))
	builder.WriteByte(' ')

	template, ok := document.Template(node.TemplateID)
	if ok {
		builder.WriteString(renderer.paint(renderer.theme.Element, template.Name))
	}
	for index, value := range node.Values {
		builder.WriteByte(' ')
		if ok && index < len(template.Slots) {
			builder.WriteString(renderer.paint(renderer.theme.Attribute, template.Slots[index].Name))
			builder.WriteByte('=')
		}
		if value.Kind == tbxml.KindNumeric {
			builder.WriteString(renderer.paint(renderer.theme.Numeric, value.String()))
		} else {
			builder.WriteString(renderer.paint(renderer.theme.Text, strconv.Quote(value.Text)))
		}
	}
	if node.HasText {
		builder.WriteString("  ")
		builder.WriteString(renderer.paint(renderer.theme.Body, strconv.Quote(node.Text)))
	}
	builder.WriteByte('\n')

	for _, child := range node.Children {
		renderer.writeNode(builder, document, child, depth+1)
	}
}

// HighlightXML returns source with XML syntax coloring. Without color,
// or when highlighting fails, source is returned unchanged.
func (renderer *Renderer) HighlightXML(source string) string {
	if !renderer.color {
		return source
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, source, "xml", "terminal256", "monokai"); err != nil {
		return source
	}
	return buffer.String()
}

func templateLabel(id uint16) string {
	return "#" + strconv.Itoa(int(id))
}

func plural(count int, noun string) string {
	if count == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(count) + " " + noun + "s"
}
