// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package treeview

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette for document views. All colors are
// lipgloss ANSI 256-color codes.
type Theme struct {
	Header    lipgloss.Color
	Faint     lipgloss.Color
	Element   lipgloss.Color
	Attribute lipgloss.Color
	Numeric   lipgloss.Color
	Text      lipgloss.Color
	Body      lipgloss.Color
}

// DefaultTheme returns the dark-terminal palette.
func DefaultTheme() Theme {
	return Theme{
		Header:    lipgloss.Color("255"),
		Faint:     lipgloss.Color("245"),
		Element:   lipgloss.Color("75"),  // blue
		Attribute: lipgloss.Color("141"), // light purple
		Numeric:   lipgloss.Color("220"), // amber
		Text:      lipgloss.Color("114"), // green
		Body:      lipgloss.Color("252"),
	}
}
