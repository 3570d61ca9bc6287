package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/verbs/internal/location"
)

type fakeInfo struct {
	name string
	dir  bool
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() fs.FileMode  { return 0o644 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return f.dir }
func (f fakeInfo) Sys() interface{}   { return nil }

// fakeTree treats every listed path as existing; directories are listed
// with a trailing slash.
type fakeTree map[string]bool

func newTree(paths ...string) fakeTree {
	tree := fakeTree{"/": true}
	for _, p := range paths {
		isDir := strings.HasSuffix(p, "/")
		clean := filepath.Clean(p)
		tree[clean] = isDir
		for dir := filepath.Dir(clean); ; dir = filepath.Dir(dir) {
			tree[dir] = true
			if dir == "/" {
				break
			}
		}
	}
	return tree
}

func (t fakeTree) stat(path string) (os.FileInfo, error) {
	isDir, ok := t[path]
	if !ok {
		return nil, fmt.Errorf("stat %s: %w", path, fs.ErrNotExist)
	}
	return fakeInfo{name: filepath.Base(path), dir: isDir}, nil
}

type fakeFinder struct {
	roots []string
	calls int
}

func (f *fakeFinder) RepoRoot(dir string) (string, bool) {
	f.calls++
	for _, r := range f.roots {
		if location.Contains(r, dir) {
			return r, true
		}
	}
	return "", false
}

type rootFunc func(dir string) (string, bool)

func (f rootFunc) RepoRoot(dir string) (string, bool) { return f(dir) }

func newTestState(t *testing.T, tree fakeTree, roots ...string) (*AppState, *fakeFinder) {
	t.Helper()
	finder := &fakeFinder{roots: roots}
	s := New(nil, finder, nil)
	s.stat = tree.stat
	s.evalSymlinks = func(p string) (string, error) { return p, nil }
	s.homeDir = func() (string, error) { return "/home/me", nil }
	s.workDir = func() (string, error) { return "/", nil }
	return s, finder
}

func TestGoResolvesRelativeAgainstDirectory(t *testing.T) {
	s, _ := newTestState(t, newTree("/a/b/file.txt", "/a/c/"))
	require.NoError(t, s.Go("/a/b/file.txt", GoOptions{}))
	require.Equal(t, "/a/b", s.Location.Dir())

	require.NoError(t, s.Go("../c", GoOptions{}))
	assert.Equal(t, "/a/c", s.Location.Path())
	assert.True(t, s.Location.IsDir())
}

func TestGoSamePathDoesNotPushHistory(t *testing.T) {
	s, _ := newTestState(t, newTree("/r/x.go", "/r/y.go"), "/r")
	require.NoError(t, s.Go("/r/x.go", GoOptions{}))
	require.NoError(t, s.Go("/r/y.go", GoOptions{}))
	require.Equal(t, 1, s.History.Len())

	require.NoError(t, s.Go("/r/y.go", GoOptions{}))
	assert.Equal(t, 1, s.History.Len())
	assert.Equal(t, "/r", s.Location.RepoRoot())
}

func TestGoFirstLocationRecordsNothing(t *testing.T) {
	s, _ := newTestState(t, newTree("/a/"))
	require.NoError(t, s.Go("/a", GoOptions{}))
	assert.True(t, s.History.Empty())
}

func TestGoMissingTargetLeavesLocation(t *testing.T) {
	s, _ := newTestState(t, newTree("/a/f.txt"))
	require.NoError(t, s.Go("/a/f.txt", GoOptions{Selector: location.Line(3)}))
	before := s.Location

	err := s.Go("/nope", GoOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNavigation))
	assert.True(t, before == s.Location)
	assert.True(t, s.History.Empty())
}

func TestGoClearsQueryUnlessGiven(t *testing.T) {
	s, _ := newTestState(t, newTree("/a/f.txt", "/a/g.txt"))
	require.NoError(t, s.Go("/a/f.txt", GoOptions{Query: "Handler"}))
	assert.Equal(t, "Handler", s.Location.Query())
	require.NoError(t, s.Go("/a/g.txt", GoOptions{}))
	assert.Equal(t, "", s.Location.Query())
}

func TestGoExpandsHome(t *testing.T) {
	s, _ := newTestState(t, newTree("/home/me/notes.md"))
	require.NoError(t, s.Go("~/notes.md", GoOptions{}))
	assert.Equal(t, "/home/me/notes.md", s.Location.Path())
}

func TestGoWithoutRepositoryIsNotAnError(t *testing.T) {
	s, finder := newTestState(t, newTree("/tmp/x/"))
	require.NoError(t, s.Go("/tmp/x", GoOptions{}))
	assert.False(t, s.Location.InRepo())
	assert.Equal(t, 1, finder.calls)
}

func TestHistoryRoundTrip(t *testing.T) {
	s, _ := newTestState(t, newTree("/p/start.txt", "/p/one/", "/p/two.txt", "/p/three/"), "/p")
	require.NoError(t, s.Go("/p/start.txt", GoOptions{Selector: location.Line(9)}))
	origin := s.Location

	targets := []string{"/p/one", "/p/two.txt", "/p/three"}
	for _, target := range targets {
		require.NoError(t, s.Go(target, GoOptions{}))
	}
	require.Equal(t, len(targets), s.History.Len())

	for range targets {
		require.NoError(t, s.Back())
	}
	assert.True(t, origin == s.Location, "expected %v, got %v", origin, s.Location)
	assert.True(t, s.History.Empty())

	err := s.Back()
	assert.True(t, errors.Is(err, ErrNavigation))
}

func TestUpClearsSelectorBeforeMoving(t *testing.T) {
	s, _ := newTestState(t, newTree("/a/b/f.go"))
	require.NoError(t, s.Go("/a/b/f.go", GoOptions{Selector: location.Range(2, 5)}))

	require.NoError(t, s.Up())
	assert.Equal(t, "/a/b/f.go", s.Location.Path())
	assert.True(t, s.Location.Selector().IsNone())
	assert.True(t, s.History.Empty())

	require.NoError(t, s.Up())
	assert.Equal(t, "/a/b", s.Location.Path())
	assert.Equal(t, 1, s.History.Len())
}

func TestUpRefusedAtFilesystemRoot(t *testing.T) {
	s, _ := newTestState(t, newTree())
	require.NoError(t, s.Go("/", GoOptions{}))
	err := s.Up()
	assert.True(t, errors.Is(err, ErrNavigation))
	assert.Equal(t, "/", s.Location.Path())
}

func TestHomeMovesToHomeDirectory(t *testing.T) {
	s, _ := newTestState(t, newTree("/home/me/", "/srv/"))
	require.NoError(t, s.Go("/srv", GoOptions{}))
	require.NoError(t, s.Home())
	assert.Equal(t, "/home/me", s.Location.Path())
	assert.Equal(t, "/home/me", s.HomeDir())
}

func TestMoveCursorClamps(t *testing.T) {
	s := New(nil, nil, nil)
	assert.False(t, s.MoveCursor(-1, 3))
	assert.True(t, s.MoveCursor(1, 3))
	assert.True(t, s.MoveCursor(5, 3))
	assert.Equal(t, 2, s.Cursor)
	s.ClampCursor(0)
	assert.Equal(t, 0, s.Cursor)
}

func TestTakeStatusClears(t *testing.T) {
	s := New(nil, nil, nil)
	s.SetStatus("boom")
	assert.Equal(t, "boom", s.TakeStatus())
	assert.Equal(t, "", s.TakeStatus())
}

func TestGoMapsResolvedRepoRootOntoSymlinkedPath(t *testing.T) {
	s, _ := newTestState(t, newTree("/link/pkg/a.go", "/else/"))
	s.Finder = rootFunc(func(string) (string, bool) { return "/real", true })
	s.evalSymlinks = func(p string) (string, error) {
		if location.Contains("/link", p) {
			return "/real" + strings.TrimPrefix(p, "/link"), nil
		}
		return p, nil
	}

	require.NoError(t, s.Go("/link/pkg/a.go", GoOptions{}))
	assert.Equal(t, "/link/pkg/a.go", s.Location.Path())
	assert.Equal(t, "/link", s.Location.RepoRoot())
	assert.Equal(t, "pkg/a.go", s.Location.RelPath())

	require.NoError(t, s.Go("/else", GoOptions{}))
	assert.False(t, s.Location.InRepo())
}
