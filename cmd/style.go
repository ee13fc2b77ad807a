package cmd

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen  = lipgloss.Color("#a3be8c")
	colorRed    = lipgloss.Color("#bf616a")
	colorYellow = lipgloss.Color("#ebcb8b")
	colorCyan   = lipgloss.Color("#88c0d0")
	colorGray   = lipgloss.Color("#4c566a")

	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleBranch  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorGray)
)

func successMsg(msg string) string {
	return styleSuccess.Render("✓") + " " + msg
}

func errorMsg(msg string) string {
	return styleError.Render("✗") + " " + msg
}

func warnMsg(msg string) string {
	return styleWarning.Render("!") + " " + msg
}
