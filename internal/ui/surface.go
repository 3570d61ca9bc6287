package ui

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/atomicstack/verbs/internal/dispatch"
	"github.com/atomicstack/verbs/internal/theme"
)

var errReleased = errors.New("terminal is released to a child process")

// interruptKey is reported for any way a frame ends without a keypress:
// ctrl+c, SIGINT, SIGTERM or closed input.
const interruptKey = "ctrl+c"

var runProgram = func(model tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
	return tea.NewProgram(model, opts...).Run()
}

var terminalSize = func() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0
	}
	return width, height
}

// Surface implements dispatch.Surface on the controlling terminal.
type Surface struct {
	Styles *theme.Styles
	// Input and Output default to the process stdin and stdout.
	Input  io.Reader
	Output io.Writer

	released bool
}

// NewSurface returns a surface drawing with styles, or the default theme
// when styles is nil.
func NewSurface(styles *theme.Styles) *Surface {
	if styles == nil {
		styles = theme.Default()
	}
	return &Surface{Styles: styles}
}

// Show renders frame on the alternate screen and returns the first key.
func (s *Surface) Show(frame dispatch.Frame) (string, error) {
	if s.released {
		return "", errReleased
	}
	width, height := terminalSize()
	final, err := runProgram(newFrameModel(frame, s.Styles, width, height), s.options(true)...)
	if interrupted(err) {
		return interruptKey, nil
	}
	if err != nil {
		return "", fmt.Errorf("frame: %w", err)
	}
	m, ok := final.(*frameModel)
	if !ok || m.key == "" {
		return interruptKey, nil
	}
	return m.key, nil
}

// Flash fills the screen with a marker for a moment.
func (s *Surface) Flash() error {
	if s.released {
		return errReleased
	}
	width, height := terminalSize()
	_, err := runProgram(&flashModel{styles: s.Styles, width: width, height: height}, s.options(true)...)
	if err != nil && !interrupted(err) {
		return fmt.Errorf("flash: %w", err)
	}
	return nil
}

// Release hands the terminal to a child process.
func (s *Surface) Release() error {
	s.released = true
	return nil
}

// Acquire takes the terminal back after a child exits.
func (s *Surface) Acquire() error {
	s.released = false
	return nil
}

// Pause prints prompt below whatever the child left on screen and waits
// for any key. It may run while the terminal is released.
func (s *Surface) Pause(prompt string) error {
	_, err := runProgram(&pauseModel{styles: s.Styles, prompt: prompt}, s.options(false)...)
	if err != nil && !interrupted(err) {
		return fmt.Errorf("pause: %w", err)
	}
	return nil
}

func interrupted(err error) bool {
	return errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)
}

func (s *Surface) options(altScreen bool) []tea.ProgramOption {
	var opts []tea.ProgramOption
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if s.Input != nil {
		opts = append(opts, tea.WithInput(s.Input))
	}
	if s.Output != nil {
		opts = append(opts, tea.WithOutput(s.Output))
	}
	return opts
}
