// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package watchui

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of the watch view chrome. Colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	HeaderForeground lipgloss.Color
	FaintText        lipgloss.Color
	BorderColor      lipgloss.Color
	FocusMarker      lipgloss.Color
	PausedColor      lipgloss.Color
	ErrorColor       lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	HeaderForeground: lipgloss.Color("255"),
	FaintText:        lipgloss.Color("245"),
	BorderColor:      lipgloss.Color("240"),
	FocusMarker:      lipgloss.Color("114"), // green
	PausedColor:      lipgloss.Color("220"), // amber
	ErrorColor:       lipgloss.Color("196"), // red
}
