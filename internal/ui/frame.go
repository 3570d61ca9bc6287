package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/verbs/internal/dispatch"
	"github.com/atomicstack/verbs/internal/theme"
)

const (
	flashDuration = 50 * time.Millisecond
	flashGlyph    = "?"
	indicator     = "> "
)

// frameModel shows one dispatcher frame and quits on the first key.
type frameModel struct {
	frame  dispatch.Frame
	styles *theme.Styles
	width  int
	height int
	key    string
}

func newFrameModel(frame dispatch.Frame, styles *theme.Styles, width, height int) *frameModel {
	return &frameModel{frame: frame, styles: styles, width: width, height: height}
}

func (m *frameModel) Init() tea.Cmd { return nil }

func (m *frameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		m.key = keyName(msg)
		return m, tea.Quit
	}
	return m, nil
}

func (m *frameModel) View() string {
	return renderFrame(m.frame, m.styles, m.width, m.height)
}

// renderFrame lays out header, rows, status and footer. When the rows do
// not fit they scroll so the cursor stays visible.
func renderFrame(f dispatch.Frame, styles *theme.Styles, width, height int) string {
	var top, bottom []string
	top = append(top, styles.Header.Render(clip(f.Header, width)), "")
	if f.Status != "" {
		bottom = append(bottom, "", styles.Status.Render(clip(f.Status, width)))
	}
	if f.Footer != "" {
		bottom = append(bottom, "", styles.Footer.Render(clip(f.Footer, width)))
	}

	first, last := 0, len(f.Lines)
	if height > 0 {
		avail := height - len(top) - len(bottom)
		if avail < 1 {
			avail = 1
		}
		if last > avail {
			if f.Cursor >= avail {
				first = f.Cursor - avail + 1
			}
			last = first + avail
		}
	}

	rows := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		text := clip(f.Lines[i], width-len(indicator))
		if i == f.Cursor {
			rows = append(rows, styles.SelectedItemIndicator.Render(indicator)+styles.SelectedItem.Render(text))
			continue
		}
		rows = append(rows, styles.ItemIndicator.Render(strings.Repeat(" ", len(indicator)))+styles.Item.Render(text))
	}

	lines := append(top, rows...)
	lines = append(lines, bottom...)
	return strings.Join(lines, "\n")
}

func clip(text string, width int) string {
	if width <= 0 {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}

type flashDoneMsg struct{}

// flashModel fills the screen briefly and exits on its own.
type flashModel struct {
	styles *theme.Styles
	width  int
	height int
}

func (m *flashModel) Init() tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{} })
}

func (m *flashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case flashDoneMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m *flashModel) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	row := m.styles.Flash.Render(strings.Repeat(flashGlyph, width))
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

// pauseModel shows a prompt under the child's output and waits for a key.
type pauseModel struct {
	styles *theme.Styles
	prompt string
	done   bool
}

func (m *pauseModel) Init() tea.Cmd { return nil }

func (m *pauseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *pauseModel) View() string {
	if m.done {
		return ""
	}
	return m.styles.Prompt.Render(m.prompt)
}
