package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI layers.
type Styles struct {
	Text         *lipgloss.Style
	Menu         *lipgloss.Style
	MenuSelected *lipgloss.Style
	MenuScroll   *lipgloss.Style
	MenuTrack    *lipgloss.Style
	InfoTitle    *lipgloss.Style
	InfoBorder   *lipgloss.Style
	InfoBody     *lipgloss.Style
	Status       *lipgloss.Style
	Filter       *lipgloss.Style
	FilterPrompt *lipgloss.Style
	Cursor       *lipgloss.Style
	Error        *lipgloss.Style
}

var defaultStyles = Styles{
	Text: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Menu: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Background(lipgloss.Color("236")),
	),
	MenuSelected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	MenuScroll: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("236")),
	),
	MenuTrack: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Background(lipgloss.Color("236")),
	),
	InfoTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	InfoBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	InfoBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
