package verb

import (
	"strconv"
	"strings"

	"github.com/atomicstack/verbs/internal/location"
	"github.com/atomicstack/verbs/internal/process"
)

// Template is a shell command line with location placeholders:
//
//	{path}  absolute path
//	{line}  first selected line, 1 when nothing is selected
//	{dir}   containing directory
//	{root}  repository root, empty outside one
//	{rel}   path relative to the repository root (or dir)
//	{query} carried filter query
//
// Every substituted value is shell-quoted; the rest of the template is
// passed to the shell unchanged.
type Template string

// Expand fills the placeholders from loc.
func (t Template) Expand(loc location.Location) string {
	line := loc.Selector().StartLine()
	if line < 1 {
		line = 1
	}
	r := strings.NewReplacer(
		"{path}", process.Quote(loc.Path()),
		"{line}", process.Quote(strconv.Itoa(line)),
		"{dir}", process.Quote(loc.Dir()),
		"{root}", process.Quote(loc.RepoRoot()),
		"{rel}", process.Quote(loc.RelPath()),
		"{query}", process.Quote(loc.Query()),
	)
	return r.Replace(string(t))
}

// Uses reports whether the template references placeholder, e.g. "{root}".
func (t Template) Uses(placeholder string) bool {
	return strings.Contains(string(t), placeholder)
}
