package verb

import (
	"fmt"

	"github.com/atomicstack/verbs/internal/state"
)

// navVerb is a fixed transition on the state machine.
type navVerb struct {
	base
	label func(st *state.AppState) string
	move  func(st *state.AppState) error
}

func (n *navVerb) Label(st *state.AppState) string {
	if n.label != nil {
		return n.label(st)
	}
	return n.title
}

func (n *navVerb) Execute(ctx Context) (Outcome, error) {
	return Stay, n.move(ctx.State)
}

// Up clears the selector or moves to the parent directory.
func Up(key string) Verb {
	return &navVerb{
		base: base{key: key, category: Navigation, when: Not(AtFSRoot)},
		label: func(st *state.AppState) string {
			if HasSelector(st) {
				return "Clear line selection"
			}
			return "Go to parent dir"
		},
		move: (*state.AppState).Up,
	}
}

// Back returns to the previous location.
func Back(key string) Verb {
	return &navVerb{
		base: base{key: key, category: Navigation, when: HasHistory},
		label: func(st *state.AppState) string {
			if e, ok := st.History.Peek(); ok {
				return fmt.Sprintf("Go back to %s", e.Path)
			}
			return "Go back"
		},
		move: (*state.AppState).Back,
	}
}

// RepoRoot jumps to the enclosing repository root.
func RepoRoot(key string) Verb {
	return &navVerb{
		base: base{key: key, category: Navigation, title: "Go to git root", when: And(InRepo, Not(AtRepoRoot))},
		move: func(st *state.AppState) error {
			return st.Go(st.Location.RepoRoot(), state.GoOptions{})
		},
	}
}

// Home moves to the user home directory.
func Home(key string) Verb {
	return &navVerb{
		base: base{key: key, category: Navigation, title: "Go to home dir", when: Not(AtHome)},
		move: (*state.AppState).Home,
	}
}

type quitVerb struct{ base }

func (quitVerb) Execute(Context) (Outcome, error) { return Close, nil }

// Quit ends the session.
func Quit(key string) Verb {
	return quitVerb{base{key: key, category: Navigation, title: "Quit"}}
}
