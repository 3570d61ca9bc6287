package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/verbs/internal/location"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	store := Store{Path: filepath.Join(t.TempDir(), "nope", "history.json")}
	stack, err := store.Load()
	require.NoError(t, err)
	assert.True(t, stack.Empty())
}

func TestSaveWritesPathLinePairs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history.json")
	store := Store{Path: path}
	stack := NewStack(0,
		Entry{Path: "/repo"},
		Entry{Path: "/repo/main.go", Selector: location.Line(12)},
		Entry{Path: "/repo/util.go", Selector: location.Range(4, 9)},
	)
	require.NoError(t, store.Save(stack))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[["/repo",null],["/repo/main.go",12],["/repo/util.go",4]]`, string(data))

	loaded, err := store.Load()
	require.NoError(t, err)
	entries := loaded.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, location.None(), entries[0].Selector)
	assert.Equal(t, location.Line(12), entries[1].Selector)
	assert.Equal(t, location.Line(4), entries[2].Selector)
}

func TestLoadRejectsMalformedRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(`[["/a"]]`), 0o644))
	_, err := Store{Path: path}.Load()
	require.Error(t, err)
}

func TestDefaultPathHonoursXDGStateHome(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/var/state")
	assert.Equal(t, "/var/state/verbs/history.json", DefaultPath("verbs"))
}
