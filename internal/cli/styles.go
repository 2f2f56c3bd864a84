package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"project-timer/internal/domain"
)

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorSuccess = lipgloss.Color("#04B575")
	colorWarning = lipgloss.Color("#FFCC00")
	colorError   = lipgloss.Color("#FF6B6B")
	colorMuted   = lipgloss.Color("#6C6C6C")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	nameStyle    = lipgloss.NewStyle().Bold(true)
	runningStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
)

// budgetWarnPercent is where the bar turns from green to yellow.
const budgetWarnPercent = 80

// progressBar renders a budget as a fixed-width bar with its percentage
func progressBar(b domain.Budget, width int) string {
	filled := int(math.Round(b.Percent / 100 * float64(width)))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := runningStyle
	switch {
	case b.Exceeded:
		style = errorStyle
	case b.Percent >= budgetWarnPercent:
		style = warningStyle
	}
	return fmt.Sprintf("%s %3.0f%%", style.Render(bar), b.Percent)
}

// padRight pads s with spaces to width terminal cells
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
