// Package styles defines the shared lipgloss styles for terminal output.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	ColorGray   = lipgloss.Color("240")
	ColorGreen  = lipgloss.Color("34")
	ColorRed    = lipgloss.Color("160")
	ColorYellow = lipgloss.Color("178")

	BoldStyle   = lipgloss.NewStyle().Bold(true)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorYellow)
	DimStyle    = lipgloss.NewStyle().Foreground(ColorGray)
	ValueStyle  = lipgloss.NewStyle().Foreground(ColorGreen)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ColorRed)
)

// RenderHeader renders a section header.
func RenderHeader(s string) string {
	return HeaderStyle.Render(s)
}

// RenderDim renders secondary text.
func RenderDim(s string) string {
	return DimStyle.Render(s)
}

// RenderValue renders a computed value.
func RenderValue(s string) string {
	return ValueStyle.Render(s)
}

// RenderError renders an error message.
func RenderError(s string) string {
	return ErrorStyle.Render(s)
}

// Box wraps content in a rounded border.
func Box(content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorGray).
		Padding(0, 1).
		Render(content)
}
