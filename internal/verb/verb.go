// Package verb defines the menu actions, their applicability rules and the
// registry that orders them for display.
package verb

import "github.com/atomicstack/verbs/internal/state"

// Category groups verbs on screen. Declaration order is display order.
type Category int

const (
	Navigation Category = iota
	Filter
	Command
	File
	Assistant
)

var categoryNames = [...]string{
	Navigation: "navigation",
	Filter:     "filter",
	Command:    "command",
	File:       "file",
	Assistant:  "assistant",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// Outcome tells the dispatcher what to do once a verb returns.
type Outcome int

const (
	// Stay redraws the menu at the (possibly new) location.
	Stay Outcome = iota
	// Close ends the session.
	Close
)

func (o Outcome) String() string {
	if o == Close {
		return "close"
	}
	return "stay"
}

// Terminal is the part of the screen a verb needs while it runs an external
// program.
type Terminal interface {
	// Release returns the terminal to its original mode so a child process
	// can own it.
	Release() error
	// Acquire takes the terminal back after the child exits.
	Acquire() error
	// Pause shows prompt and blocks for a single key.
	Pause(prompt string) error
}

// Context is passed to Execute.
type Context struct {
	State    *state.AppState
	Terminal Terminal
}

// Verb is one selectable action.
type Verb interface {
	Key() string
	Category() Category
	Label(st *state.AppState) string
	Applicable(st *state.AppState) bool
	Execute(ctx Context) (Outcome, error)
}

// base carries the static parts every verb variant shares.
type base struct {
	key      string
	category Category
	title    string
	when     Predicate
}

func (b base) Key() string        { return b.key }
func (b base) Category() Category { return b.category }

func (b base) Applicable(st *state.AppState) bool {
	if b.when == nil {
		return true
	}
	return b.when(st)
}

func (b base) Label(*state.AppState) string { return b.title }

type nopTerminal struct{}

func (nopTerminal) Release() error     { return nil }
func (nopTerminal) Acquire() error     { return nil }
func (nopTerminal) Pause(string) error { return nil }

func terminalOf(ctx Context) Terminal {
	if ctx.Terminal == nil {
		return nopTerminal{}
	}
	return ctx.Terminal
}

// handoff runs fn with the terminal released.
func handoff(ctx Context, fn func() error) error {
	term := terminalOf(ctx)
	if err := term.Release(); err != nil {
		return err
	}
	runErr := fn()
	if err := term.Acquire(); err != nil && runErr == nil {
		return err
	}
	return runErr
}
