// Package styles provides colour themes for console reports.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette of the report.
type Theme struct {
	// Primary is the accent colour for headings.
	Primary lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates accepted uploads.
	Success lipgloss.Color

	// Warning indicates items that were skipped.
	Warning lipgloss.Color

	// Error indicates rejected uploads.
	Error lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Success: lipgloss.Color("#A6E3A1"), // Green
		Warning: lipgloss.Color("#F9E2AF"), // Yellow
		Error:   lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Name style for source names.
	Name lipgloss.Style

	// Status style for the status in a failure line.
	Status lipgloss.Style

	// Detail style for failure details.
	Detail lipgloss.Style

	// Error style for run-stopping errors.
	Error lipgloss.Style

	// Success style for the uploaded count.
	Success lipgloss.Style

	// Failure style for the failed count.
	Failure lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Name: lipgloss.NewStyle().
			Bold(true),

		Status: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Error),

		Detail: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Failure: lipgloss.NewStyle().
			Foreground(theme.Warning),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
