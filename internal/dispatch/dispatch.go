// Package dispatch runs the menu loop: draw the applicable verbs, read one
// key, act on it, repeat.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/atomicstack/verbs/internal/format/table"
	"github.com/atomicstack/verbs/internal/logging/events"
	"github.com/atomicstack/verbs/internal/process"
	"github.com/atomicstack/verbs/internal/state"
	"github.com/atomicstack/verbs/internal/verb"
)

// ErrInterrupted ends the loop on ctrl+c or a termination signal.
var ErrInterrupted = errors.New("interrupted")

// DefaultShortcutKey triggers the first-key shortcut.
const DefaultShortcutKey = "space"

// Frame is everything drawn for one iteration.
type Frame struct {
	Header string
	// Lines holds one aligned row per active verb.
	Lines  []string
	Cursor int
	Status string
	Footer string
}

// Surface is the terminal the dispatcher draws on.
type Surface interface {
	verb.Terminal
	// Show draws frame and blocks until one key is pressed, returning its
	// name ("j", "enter", "ctrl+c", "space").
	Show(frame Frame) (string, error)
	// Flash signals an unusable key without blocking for input.
	Flash() error
}

// Options tunes the loop.
type Options struct {
	// ShortcutKey, pressed as the very first key, runs the verb bound to
	// ShortcutVerb. Empty disables the shortcut.
	ShortcutKey  string
	ShortcutVerb string
	Footer       string
}

// Dispatcher owns the loop over one AppState.
type Dispatcher struct {
	registry *verb.Registry
	surface  Surface
	state    *state.AppState
	opts     Options
}

// New builds a dispatcher.
func New(registry *verb.Registry, surface Surface, st *state.AppState, opts Options) *Dispatcher {
	return &Dispatcher{registry: registry, surface: surface, state: st, opts: opts}
}

// Run loops until a verb closes the session, the user interrupts, or a
// non-recoverable error occurs. ctx is checked between frames.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ErrInterrupted
		}
		done, err := d.Step()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Step draws one frame, reads one key and handles it. It reports whether
// the session is over.
func (d *Dispatcher) Step() (bool, error) {
	st := d.state
	active := d.registry.Active(st)
	rendered := make([]string, len(active))
	for i, v := range active {
		rendered[i] = v.Key()
	}
	st.Rendered = rendered
	st.ClampCursor(len(active))

	frame := d.frame(active)
	events.Dispatch.Frame(st.Location.String(), rendered, st.Cursor)
	name, err := d.surface.Show(frame)
	if err != nil {
		return false, fmt.Errorf("read key: %w", err)
	}
	events.Dispatch.Key(name)

	first := st.FirstKey
	st.FirstKey = false
	k := token(name)

	switch {
	case key.Matches(k, bindings.Interrupt):
		return false, ErrInterrupted
	case first && d.opts.ShortcutKey != "" && name == d.opts.ShortcutKey:
		events.Dispatch.Shortcut(name)
		v, ok := verb.Resolve(active, d.opts.ShortcutVerb)
		if !ok {
			return false, d.flash()
		}
		return d.execute(v)
	case key.Matches(k, bindings.Down):
		if st.MoveCursor(1, len(active)) {
			events.Dispatch.Cursor(st.Cursor)
		}
		return false, nil
	case key.Matches(k, bindings.Up):
		if st.MoveCursor(-1, len(active)) {
			events.Dispatch.Cursor(st.Cursor)
		}
		return false, nil
	case key.Matches(k, bindings.Enter):
		if len(active) == 0 {
			return false, d.flash()
		}
		return d.execute(active[st.Cursor])
	}

	v, ok := verb.Resolve(active, name)
	if !ok {
		events.Dispatch.Unrecognized(name)
		return false, d.flash()
	}
	return d.execute(v)
}

func (d *Dispatcher) execute(v verb.Verb) (bool, error) {
	st := d.state
	before := st.Location
	events.Verb.Execute(v.Key(), v.Label(st))
	out, err := v.Execute(verb.Context{State: st, Terminal: d.surface})
	if err != nil {
		if !Recoverable(err) {
			return false, fmt.Errorf("verb %q: %w", v.Key(), err)
		}
		events.Dispatch.Recovered(v.Key(), err)
		st.SetStatus(statusFor(err))
		return false, nil
	}
	events.Verb.Result(v.Key(), out.String())
	if st.Location != before {
		st.Cursor = 0
	}
	return out == verb.Close, nil
}

func (d *Dispatcher) flash() error {
	if err := d.surface.Flash(); err != nil {
		return fmt.Errorf("flash: %w", err)
	}
	return nil
}

func (d *Dispatcher) frame(active []verb.Verb) Frame {
	st := d.state
	rows := make([][]string, len(active))
	for i, v := range active {
		rows[i] = []string{v.Label(st), "[" + v.Key() + "]"}
	}
	return Frame{
		Header: st.Location.String(),
		Lines:  table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight}),
		Cursor: st.Cursor,
		Status: st.TakeStatus(),
		Footer: d.opts.Footer,
	}
}

// Recoverable reports whether the loop absorbs err and keeps going.
func Recoverable(err error) bool {
	return process.IsExitError(err) || errors.Is(err, state.ErrNavigation)
}

// statusFor renders err for the line under the menu. A cancelled finder
// is not worth a message.
func statusFor(err error) string {
	var exitErr *process.ExitError
	if errors.As(err, &exitErr) && exitErr.Cancelled() {
		return ""
	}
	return err.Error()
}
