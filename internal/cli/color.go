package cli

import "github.com/charmbracelet/lipgloss"

var (
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3FA7D6"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#59CD90"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EE6352"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAC05E"))
	silentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

func Primary(text string) string { return primaryStyle.Render(text) }
func Success(text string) string { return successStyle.Render(text) }
func Error(text string) string   { return errorStyle.Render(text) }
func Warning(text string) string { return warningStyle.Render(text) }
func Silent(text string) string  { return silentStyle.Render(text) }
