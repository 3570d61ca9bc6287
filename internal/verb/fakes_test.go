package verb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomicstack/verbs/internal/location"
	"github.com/atomicstack/verbs/internal/process"
	"github.com/atomicstack/verbs/internal/state"
)

type hostResult struct {
	out string
	err error
}

type fakeHost struct {
	results []hostResult
	runErr  error
	outputs []process.Command
	runs    []process.Command
}

func (h *fakeHost) Output(cmd process.Command) (string, error) {
	h.outputs = append(h.outputs, cmd)
	if len(h.results) == 0 {
		return "", nil
	}
	next := h.results[0]
	h.results = h.results[1:]
	return next.out, next.err
}

func (h *fakeHost) Run(cmd process.Command) error {
	h.runs = append(h.runs, cmd)
	return h.runErr
}

type fakeTerminal struct {
	calls []string
}

func (t *fakeTerminal) Release() error { t.calls = append(t.calls, "release"); return nil }
func (t *fakeTerminal) Acquire() error { t.calls = append(t.calls, "acquire"); return nil }
func (t *fakeTerminal) Pause(prompt string) error {
	t.calls = append(t.calls, "pause:"+prompt)
	return nil
}

type staticRoot string

func (r staticRoot) RepoRoot(dir string) (string, bool) {
	if r == "" || !location.Contains(string(r), dir) {
		return "", false
	}
	return string(r), true
}

// at builds a state positioned at loc without touching the filesystem.
func at(t *testing.T, spec location.Spec) *state.AppState {
	t.Helper()
	loc, err := location.New(spec)
	require.NoError(t, err)
	st := state.New(&fakeHost{}, staticRoot(spec.RepoRoot), nil)
	st.Location = loc
	return st
}

// tree creates files under a temp dir and returns its root.
func tree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
	}
	return root
}

func keys(verbs []Verb) []string {
	out := make([]string, len(verbs))
	for i, v := range verbs {
		out[i] = v.Key()
	}
	return out
}
