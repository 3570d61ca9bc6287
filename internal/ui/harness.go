package ui

import tea "github.com/charmbracelet/bubbletea"

// Harness drives a model programmatically for tests, running returned
// commands until one quits or yields nothing.
type Harness struct {
	model tea.Model
	quit  bool
}

// NewHarness creates a harness for the provided model.
func NewHarness(model tea.Model) *Harness {
	h := &Harness{model: model}
	h.processCmd(model.Init())
	return h
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil || h.quit {
		return
	}
	mdl, cmd := h.model.Update(msg)
	h.model = mdl
	h.processCmd(cmd)
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	for cmd != nil && !h.quit {
		msg := cmd()
		if msg == nil {
			return
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			h.quit = true
			return
		}
		mdl, next := h.model.Update(msg)
		h.model = mdl
		cmd = next
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

// Model exposes the underlying model.
func (h *Harness) Model() tea.Model {
	return h.model
}
