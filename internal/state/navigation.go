package state

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atomicstack/verbs/internal/history"
	"github.com/atomicstack/verbs/internal/location"
	"github.com/atomicstack/verbs/internal/logging/events"
)

// ErrNavigation marks a refused transition. The location is unchanged when
// it is returned.
var ErrNavigation = errors.New("navigation refused")

// GoOptions qualifies a Go transition.
type GoOptions struct {
	Selector location.Selector
	// Query pre-fills the next filter verb; empty clears it.
	Query string
	// NoHistory skips recording the location being left.
	NoHistory bool
}

// Go moves the session to target. Relative targets resolve against the
// current directory of the location, the way cd does.
func (s *AppState) Go(target string, opts GoOptions) error {
	abs, err := s.resolve(target)
	if err != nil {
		return err
	}
	info, err := s.stat(abs)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNavigation, abs, err)
	}

	dir := abs
	if !info.IsDir() {
		dir = filepath.Dir(abs)
	}
	root := ""
	if s.Finder != nil {
		if r, ok := s.Finder.RepoRoot(dir); ok {
			root = s.repoRootFor(r, abs)
		}
	}

	next, err := location.New(location.Spec{
		Path:     abs,
		IsDir:    info.IsDir(),
		Selector: opts.Selector,
		RepoRoot: root,
		Query:    opts.Query,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNavigation, err)
	}

	prev := s.Location
	if !prev.IsZero() && !opts.NoHistory && prev.Path() != next.Path() {
		s.History.Push(history.Entry{Path: prev.Path(), Selector: prev.Selector()})
	}
	s.Location = next
	events.Nav.Go(prev.String(), next.String(), next.RepoRoot())
	return nil
}

// repoRootFor maps root, which git reports with symlinks resolved, onto the
// ancestor of path naming the same directory. It returns "" when path is
// not inside root at all.
func (s *AppState) repoRootFor(root, path string) string {
	if location.Contains(root, path) {
		return root
	}
	want, err := s.evalSymlinks(root)
	if err != nil {
		return ""
	}
	for p := path; ; p = filepath.Dir(p) {
		if r, err := s.evalSymlinks(p); err == nil && r == want {
			return p
		}
		if p == filepath.Dir(p) {
			return ""
		}
	}
}

// Back returns to the most recent history entry without re-recording the
// location being left.
func (s *AppState) Back() error {
	entry, ok := s.History.Peek()
	if !ok {
		return fmt.Errorf("%w: history is empty", ErrNavigation)
	}
	if err := s.Go(entry.Path, GoOptions{Selector: entry.Selector, NoHistory: true}); err != nil {
		return err
	}
	s.History.Pop()
	return nil
}

// Up clears a selector first; without one it moves to the parent of Path.
func (s *AppState) Up() error {
	loc := s.Location
	if loc.IsZero() {
		return fmt.Errorf("%w: no current location", ErrNavigation)
	}
	if loc.IsFile() && !loc.Selector().IsNone() {
		s.Location = loc.WithSelector(location.None())
		events.Nav.Go(loc.String(), s.Location.String(), s.Location.RepoRoot())
		return nil
	}
	if loc.AtFilesystemRoot() {
		return fmt.Errorf("%w: already at filesystem root", ErrNavigation)
	}
	return s.Go(filepath.Dir(loc.Path()), GoOptions{})
}

// Home moves to the user home directory.
func (s *AppState) Home() error {
	home, err := s.homeDir()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNavigation, err)
	}
	return s.Go(home, GoOptions{})
}

// HomeDir exposes the resolved home directory, or "" when unknown.
func (s *AppState) HomeDir() string {
	home, err := s.homeDir()
	if err != nil {
		return ""
	}
	return filepath.Clean(home)
}

func (s *AppState) resolve(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", fmt.Errorf("%w: empty target", ErrNavigation)
	}
	if target == "~" || strings.HasPrefix(target, "~/") {
		home, err := s.homeDir()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNavigation, err)
		}
		target = filepath.Join(home, strings.TrimPrefix(target, "~"))
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target), nil
	}
	base := s.Location.Dir()
	if base == "" {
		wd, err := s.workDir()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNavigation, err)
		}
		base = wd
	}
	return filepath.Join(base, target), nil
}
