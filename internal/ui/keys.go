package ui

import tea "github.com/charmbracelet/bubbletea"

// keyName maps a key message to the token the dispatcher and verbs bind.
func keyName(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeySpace:
		return "space"
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && msg.Runes[0] == ' ' {
			return "space"
		}
	}
	return msg.String()
}
