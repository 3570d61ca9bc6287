package verb

import (
	"path/filepath"
	"strings"

	"github.com/atomicstack/verbs/internal/state"
)

// Predicate decides whether a verb applies to the current state. It must
// not change anything.
type Predicate func(st *state.AppState) bool

// And holds when every predicate holds.
func And(ps ...Predicate) Predicate {
	return func(st *state.AppState) bool {
		for _, p := range ps {
			if !p(st) {
				return false
			}
		}
		return true
	}
}

// Not negates p.
func Not(p Predicate) Predicate {
	return func(st *state.AppState) bool { return !p(st) }
}

var (
	Always      Predicate = func(*state.AppState) bool { return true }
	IsFile      Predicate = func(st *state.AppState) bool { return st.Location.IsFile() }
	IsDir       Predicate = func(st *state.AppState) bool { return st.Location.IsDir() }
	InRepo      Predicate = func(st *state.AppState) bool { return st.Location.InRepo() }
	AtRepoRoot  Predicate = func(st *state.AppState) bool { return st.Location.AtRepoRoot() }
	HasHistory  Predicate = func(st *state.AppState) bool { return st.History != nil && !st.History.Empty() }
	HasSelector Predicate = func(st *state.AppState) bool { return !st.Location.Selector().IsNone() }
	AtFSRoot    Predicate = func(st *state.AppState) bool { return st.Location.AtFilesystemRoot() }
	AtHome      Predicate = func(st *state.AppState) bool {
		home := st.HomeDir()
		return home != "" && st.Location.Path() == home
	}
)

// HasExt holds for files whose name ends in one of exts.
func HasExt(exts ...string) Predicate {
	return func(st *state.AppState) bool {
		if !st.Location.IsFile() {
			return false
		}
		ext := strings.ToLower(filepath.Ext(st.Location.Path()))
		for _, e := range exts {
			if ext == strings.ToLower(e) {
				return true
			}
		}
		return false
	}
}
