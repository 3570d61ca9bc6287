package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes the Lip Gloss styles used to draw a menu frame.
type Styles struct {
	Header                *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItem          *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	Status                *lipgloss.Style
	Footer                *lipgloss.Style
	Flash                 *lipgloss.Style
	Prompt                *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Flash: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	Prompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
}

// Default exposes the standard style set.
func Default() *Styles {
	return &defaultStyles
}

// Plain returns unstyled copies, for tests and dumb terminals.
func Plain() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Header:                ptr(plain),
		Item:                  ptr(plain),
		ItemIndicator:         ptr(plain),
		SelectedItem:          ptr(plain),
		SelectedItemIndicator: ptr(plain),
		Status:                ptr(plain),
		Footer:                ptr(plain),
		Flash:                 ptr(plain),
		Prompt:                ptr(plain),
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
