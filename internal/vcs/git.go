// Package vcs builds the git queries and candidate listings verbs rely on.
package vcs

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/verbs/internal/location"
	"github.com/atomicstack/verbs/internal/process"
)

// Querier runs read-only commands without handing over the terminal.
type Querier interface {
	Quiet(cmd process.Command) (string, error)
}

// Git locates enclosing work trees.
type Git struct {
	q Querier
}

// NewGit returns a finder that shells out through q.
func NewGit(q Querier) *Git {
	return &Git{q: q}
}

// RepoRoot returns the top of the work tree containing dir. Any failure,
// including dir being outside a repository, yields ok == false.
func (g *Git) RepoRoot(dir string) (string, bool) {
	if g == nil || g.q == nil {
		return "", false
	}
	out, err := g.q.Quiet(process.Command{Args: []string{"git", "rev-parse", "--show-toplevel"}, Dir: dir})
	if err != nil {
		return "", false
	}
	root := strings.TrimSpace(out)
	if root == "" || !filepath.IsAbs(root) {
		return "", false
	}
	return filepath.Clean(root), true
}

// Candidates returns the producer stage of a filter pipeline for loc and
// the directory it must run in. A file location degenerates to that single
// path; a repository root lists tracked files; anything else walks the
// tree.
func Candidates(loc location.Location) (script, cwd string) {
	cwd = loc.Dir()
	switch {
	case loc.IsFile():
		return "printf '%s\\n' " + process.Quote(loc.Path()), cwd
	case loc.AtRepoRoot():
		return "git ls-files", cwd
	default:
		return "find . -path ./.git -prune -o -type f -print", cwd
	}
}

// Entries lists the direct children of dir.
func Entries() string {
	return "ls -A"
}

// Repositories lists work trees below the current directory.
func Repositories(depth int) string {
	if depth <= 0 {
		depth = 4
	}
	return "find . -maxdepth " + strconv.Itoa(depth) + " -name .git 2>/dev/null | xargs -r realpath | xargs -r -n1 dirname"
}
