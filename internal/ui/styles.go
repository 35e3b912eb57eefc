package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/adfmd/internal/config"
)

// StyleManager encapsulates all viewer styles
type StyleManager struct {
	Title   lipgloss.Style
	Status  lipgloss.Style
	Pane    lipgloss.Style
	Focused lipgloss.Style
	Dim     lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Title:   lipgloss.NewStyle().Bold(true),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Pane:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
		Focused: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("2")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	titleColor := parseANSIColor(config.GetColorTitle())
	borderColor := parseANSIColor(config.GetColorBorder())
	focusColor := parseANSIColor(config.GetColorFocus())

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(titleColor)
	s.Pane = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor)
	s.Focused = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(focusColor)
	s.Status = lipgloss.NewStyle().Foreground(borderColor)
}

// PaneStyle returns the border style for a pane
func (s *StyleManager) PaneStyle(focused bool) lipgloss.Style {
	if focused {
		return s.Focused
	}
	return s.Pane
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}
