// Package render formats extraction and generation results for terminals.
package render

import "github.com/charmbracelet/lipgloss"

// Palette adapts to terminal capabilities via lipgloss.
var (
	colorGreen  = lipgloss.Color("42")
	colorRed    = lipgloss.Color("196")
	colorYellow = lipgloss.Color("214")
	colorCyan   = lipgloss.Color("51")
	colorDim    = lipgloss.Color("240")
	colorWhite  = lipgloss.Color("255")
)

var (
	numberStyle = lipgloss.NewStyle().Foreground(colorDim)
	descStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	actionStyle = lipgloss.NewStyle().Foreground(colorYellow)
	checkStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	badStyle    = lipgloss.NewStyle().Foreground(colorRed)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)
