package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)

	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true)
)

// GradeStyle maps a letter grade to its display style.
func GradeStyle(grade string) lipgloss.Style {
	switch grade {
	case "A", "B":
		return StyleSuccess
	case "C", "D":
		return StyleWarning
	default:
		return StyleError
	}
}

// VerdictStyle maps a gate verdict to its display style.
func VerdictStyle(verdict string) lipgloss.Style {
	switch verdict {
	case "pass":
		return StyleSuccess
	case "warn":
		return StyleWarning
	default:
		return StyleError
	}
}

// RenderGrade renders a score with its letter grade, colored by severity.
func RenderGrade(score int, grade string) string {
	return GradeStyle(grade).Render(grade) + StyleSubtle.Render(" (") + StyleTitle.Render(strconv.Itoa(score)) + StyleSubtle.Render("/100)")
}
