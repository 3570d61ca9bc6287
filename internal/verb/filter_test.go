package verb

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/verbs/internal/location"
	"github.com/atomicstack/verbs/internal/process"
	"github.com/atomicstack/verbs/internal/state"
)

func repoState(t *testing.T, host *fakeHost, files ...string) (*state.AppState, string) {
	t.Helper()
	root := tree(t, files...)
	st := state.New(host, staticRoot(root), nil)
	require.NoError(t, st.Go(root, state.GoOptions{}))
	require.True(t, st.Location.AtRepoRoot())
	return st, root
}

func mustResolve(t *testing.T, reg *Registry, st *state.AppState, key string) Verb {
	t.Helper()
	v, ok := Resolve(reg.Active(st), key)
	require.True(t, ok, "verb %q not active", key)
	return v
}

func TestFilterCancelLeavesLocationUntouched(t *testing.T) {
	host := &fakeHost{results: []hostResult{{err: &process.ExitError{Command: "fzf", Code: process.ExitCancelled}}}}
	st, _ := repoState(t, host, "main.go")
	before := st.Location
	term := &fakeTerminal{}

	out, err := mustResolve(t, defaultRegistry(t), st, "f").Execute(Context{State: st, Terminal: term})
	require.Error(t, err)
	var exitErr *process.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.True(t, exitErr.Cancelled())
	assert.Equal(t, Stay, out)
	assert.True(t, before == st.Location)
	assert.True(t, st.History.Empty())
	assert.Equal(t, []string{"release", "acquire"}, term.calls)
}

func TestFilterEmptySelectionIsNavigationError(t *testing.T) {
	host := &fakeHost{results: []hostResult{{out: "\n"}}}
	st, _ := repoState(t, host, "main.go")
	_, err := mustResolve(t, defaultRegistry(t), st, "l").Execute(Context{State: st})
	assert.ErrorIs(t, err, state.ErrNavigation)
}

func TestFindFilesMovesToPick(t *testing.T) {
	host := &fakeHost{results: []hostResult{{out: "\npkg/main.go\n"}}}
	st, root := repoState(t, host, "pkg/main.go")

	out, err := mustResolve(t, defaultRegistry(t), st, "f").Execute(Context{State: st})
	require.NoError(t, err)
	assert.Equal(t, Stay, out)
	assert.Equal(t, filepath.Join(root, "pkg/main.go"), st.Location.Path())
	assert.True(t, st.Location.IsFile())

	require.Len(t, host.outputs, 1)
	assert.Equal(t, root, host.outputs[0].Dir)
	assert.Contains(t, host.outputs[0].Script, "git ls-files | fzf")
	assert.Contains(t, host.outputs[0].Script, "--expect ctrl-e")

	prev, ok := st.History.Peek()
	require.True(t, ok)
	assert.Equal(t, root, prev.Path)
}

func TestFindFilesAlternateKeyOpensEditor(t *testing.T) {
	host := &fakeHost{results: []hostResult{{out: "ctrl-e\nmain.go\n"}}}
	st, root := repoState(t, host, "main.go")

	out, err := mustResolve(t, defaultRegistry(t), st, "f").Execute(Context{State: st})
	require.NoError(t, err)
	assert.Equal(t, Close, out)
	require.Len(t, host.runs, 1)
	assert.Equal(t, "${EDITOR:-vi} +1 "+filepath.Join(root, "main.go"), host.runs[0].Script)
}

func TestSearchLinesSetsSelector(t *testing.T) {
	host := &fakeHost{results: []hostResult{{out: "src/x.py:42:foo()\n"}}}
	st, root := repoState(t, host, "src/x.py")

	_, err := mustResolve(t, defaultRegistry(t), st, "/").Execute(Context{State: st})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src/x.py"), st.Location.Path())
	assert.Equal(t, location.Line(42), st.Location.Selector())
	assert.Contains(t, host.outputs[0].Script, "grep -HnI")
}

func TestTagQueryCarriesIntoNextFilter(t *testing.T) {
	host := &fakeHost{results: []hostResult{
		{out: "Widget\tpkg/w.go\t12;\"\tkind:t\tline:12\n"},
		{err: &process.ExitError{Command: "fzf", Code: process.ExitCancelled}},
	}}
	st, root := repoState(t, host, "pkg/w.go")
	reg := defaultRegistry(t)

	_, err := mustResolve(t, reg, st, "t").Execute(Context{State: st})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "pkg/w.go"), st.Location.Path())
	assert.Equal(t, 12, st.Location.Selector().StartLine())
	assert.Equal(t, "Widget", st.Location.Query())

	_, _ = mustResolve(t, reg, st, "/").Execute(Context{State: st})
	require.Len(t, host.outputs, 2)
	assert.Contains(t, host.outputs[1].Script, "--query Widget")
}

func TestFilterMissingPickIsRefused(t *testing.T) {
	host := &fakeHost{results: []hostResult{{out: "gone.go\n"}}}
	st, _ := repoState(t, host, "main.go")
	before := st.Location

	_, err := mustResolve(t, defaultRegistry(t), st, "f").Execute(Context{State: st})
	assert.ErrorIs(t, err, state.ErrNavigation)
	assert.True(t, before == st.Location)
}

func TestSelectorScriptQuotesOptions(t *testing.T) {
	s := Selector{Command: "sk", Args: []string{"--ansi"}}
	got := s.Script(PickOptions{Prompt: "files> ", Query: "it's"})
	assert.Equal(t, `sk --ansi --prompt 'files> ' --query 'it'"'"'s'`, got)
	assert.Equal(t, "fzf", Selector{}.Script(PickOptions{}))
}

func TestSplitSelection(t *testing.T) {
	pressed, sel := splitSelection("ctrl-e\na.go\n", true)
	assert.Equal(t, "ctrl-e", pressed)
	assert.Equal(t, "a.go", sel)

	pressed, sel = splitSelection("\na.go\n", true)
	assert.Empty(t, pressed)
	assert.Equal(t, "a.go", sel)

	_, sel = splitSelection("a.go\nb.go\n\n", false)
	assert.Equal(t, "b.go", sel)
}
