package state

import (
	"os"
	"path/filepath"

	"github.com/atomicstack/verbs/internal/history"
	"github.com/atomicstack/verbs/internal/location"
	"github.com/atomicstack/verbs/internal/process"
)

// RootFinder resolves the repository root enclosing a directory.
type RootFinder interface {
	RepoRoot(dir string) (string, bool)
}

// AppState is the single mutable root of a session. Verbs and the
// dispatcher receive it by pointer; nothing else holds session state.
type AppState struct {
	Location location.Location
	History  *history.Stack

	// Cursor indexes Rendered, the keys of the verbs drawn last frame.
	Cursor   int
	Rendered []string
	// FirstKey stays true until the first keypress has been consumed.
	FirstKey bool
	// Status is a one-line report shown under the next frame.
	Status string

	Host   process.Host
	Finder RootFinder

	stat         func(string) (os.FileInfo, error)
	evalSymlinks func(string) (string, error)
	homeDir      func() (string, error)
	workDir      func() (string, error)
}

// New wires a fresh state around the given collaborators. A nil stack
// starts with empty history.
func New(host process.Host, finder RootFinder, stack *history.Stack) *AppState {
	if stack == nil {
		stack = history.NewStack(0)
	}
	return &AppState{
		History:  stack,
		FirstKey: true,
		Host:     host,
		Finder:   finder,
		stat:         os.Stat,
		evalSymlinks: filepath.EvalSymlinks,
		homeDir:      os.UserHomeDir,
		workDir:      os.Getwd,
	}
}

// SetStatus records a message for the auxiliary status line.
func (s *AppState) SetStatus(msg string) {
	s.Status = msg
}

// TakeStatus returns and clears the pending status.
func (s *AppState) TakeStatus() string {
	msg := s.Status
	s.Status = ""
	return msg
}

// ClampCursor keeps Cursor within [0, n-1].
func (s *AppState) ClampCursor(n int) {
	if n <= 0 {
		s.Cursor = 0
		return
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor > n-1 {
		s.Cursor = n - 1
	}
}

// MoveCursor shifts the cursor by delta within n items and reports whether
// it moved.
func (s *AppState) MoveCursor(delta, n int) bool {
	old := s.Cursor
	s.Cursor += delta
	s.ClampCursor(n)
	return s.Cursor != old
}
