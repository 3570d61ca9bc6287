// Package location models where a session is focused: a path, an optional
// line or range inside it, and the enclosing repository root.
package location

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var errInvalidLocation = errors.New("invalid location")

// Location is an immutable snapshot of the session focus. Values compare
// with ==.
type Location struct {
	path     string
	dir      string
	selector Selector
	repoRoot string
	query    string
}

// Spec describes a Location to construct. Line and Range are alternative
// ways to set the selector; setting both is rejected.
type Spec struct {
	Path     string
	IsDir    bool
	Line     int
	Range    [2]int
	Selector Selector
	RepoRoot string
	Query    string
}

// New validates spec and builds a Location.
func New(spec Spec) (Location, error) {
	if spec.Path == "" || !filepath.IsAbs(spec.Path) {
		return Location{}, fmt.Errorf("%w: path %q must be absolute", errInvalidLocation, spec.Path)
	}
	path := filepath.Clean(spec.Path)

	sel := spec.Selector
	hasRange := spec.Range != [2]int{}
	if spec.Line != 0 && hasRange {
		return Location{}, ErrSelectorConflict
	}
	if (spec.Line != 0 || hasRange) && !sel.IsNone() {
		return Location{}, ErrSelectorConflict
	}
	switch {
	case spec.Line != 0:
		sel = Line(spec.Line)
	case hasRange:
		sel = Range(spec.Range[0], spec.Range[1])
	}
	if err := sel.validate(); err != nil {
		return Location{}, err
	}

	dir := path
	if !spec.IsDir {
		dir = filepath.Dir(path)
	} else if !sel.IsNone() {
		// selectors only mean something inside files
		sel = None()
	}

	root := ""
	if spec.RepoRoot != "" {
		root = filepath.Clean(spec.RepoRoot)
		if !Contains(root, path) {
			return Location{}, fmt.Errorf("%w: repository root %q is not an ancestor of %q", errInvalidLocation, root, path)
		}
	}

	return Location{
		path:     path,
		dir:      dir,
		selector: sel,
		repoRoot: root,
		query:    spec.Query,
	}, nil
}

func (l Location) Path() string       { return l.path }
func (l Location) Dir() string        { return l.dir }
func (l Location) Selector() Selector { return l.selector }
func (l Location) RepoRoot() string   { return l.repoRoot }
func (l Location) Query() string      { return l.query }
func (l Location) IsZero() bool       { return l.path == "" }
func (l Location) InRepo() bool       { return l.repoRoot != "" }
func (l Location) IsDir() bool        { return l.path == l.dir }
func (l Location) IsFile() bool       { return l.path != "" && l.path != l.dir }
func (l Location) AtRepoRoot() bool   { return l.repoRoot != "" && l.repoRoot == l.path }
func (l Location) AtFilesystemRoot() bool {
	return l.path != "" && filepath.Dir(l.path) == l.path
}

// RelPath returns Path relative to the repository root, or to Dir when the
// location is outside a repository.
func (l Location) RelPath() string {
	base := l.repoRoot
	if base == "" {
		base = l.dir
	}
	rel, err := filepath.Rel(base, l.path)
	if err != nil {
		return l.path
	}
	return rel
}

// WithSelector returns a copy with a different selector. Directories keep
// the empty selector.
func (l Location) WithSelector(sel Selector) Location {
	if l.IsDir() {
		sel = None()
	}
	l.selector = sel
	return l
}

// WithQuery returns a copy carrying query.
func (l Location) WithQuery(query string) Location {
	l.query = query
	return l
}

func (l Location) String() string {
	if l.selector.IsNone() {
		return l.path
	}
	return l.path + ":" + l.selector.String()
}

// Contains reports whether path is ancestor-or-self.
func Contains(ancestor, path string) bool {
	if ancestor == path {
		return true
	}
	rel, err := filepath.Rel(ancestor, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
