package dispatch

import "github.com/charmbracelet/bubbles/key"

// token adapts a raw key name to the Stringer key.Matches expects.
type token string

func (t token) String() string { return string(t) }

type keyMap struct {
	Down      key.Binding
	Up        key.Binding
	Enter     key.Binding
	Interrupt key.Binding
}

// bindings are consumed before any verb lookup. verb.ReservedKeys must
// list the same keys.
var bindings = keyMap{
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Interrupt: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

func (km keyMap) keys() []string {
	var out []string
	for _, b := range []key.Binding{km.Down, km.Up, km.Enter, km.Interrupt} {
		out = append(out, b.Keys()...)
	}
	return out
}
