package verb

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/verbs/internal/location"
)

var errUnparsable = errors.New("unrecognised selection")

// Pick is a parsed finder selection.
type Pick struct {
	Path     string
	Selector location.Selector
	Query    string
}

// Parser turns one selection line into a Pick.
type Parser func(line string) (Pick, error)

// ParsePath treats the whole line as a path.
func ParsePath(line string) (Pick, error) {
	path := strings.TrimSpace(line)
	if path == "" {
		return Pick{}, fmt.Errorf("%w: empty line", errUnparsable)
	}
	return Pick{Path: path}, nil
}

// ParseGrep reads "path:line:content" lines. The content may itself contain
// colons.
func ParseGrep(line string) (Pick, error) {
	parts := strings.SplitN(line, ":", 3)
	if len(parts) < 2 || parts[0] == "" {
		return Pick{}, fmt.Errorf("%w: %q", errUnparsable, line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || n < 1 {
		return Pick{}, fmt.Errorf("%w: bad line number in %q", errUnparsable, line)
	}
	return Pick{Path: parts[0], Selector: location.Line(n)}, nil
}

// ParseTag reads ctags records: name, file, address and extension fields
// separated by tabs. The line comes from a "line:N" field, or from a
// numeric address when ctags ran with -n.
func ParseTag(line string) (Pick, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 || fields[0] == "" || fields[1] == "" {
		return Pick{}, fmt.Errorf("%w: %q", errUnparsable, line)
	}
	pick := Pick{Path: fields[1], Query: fields[0]}
	for _, f := range fields[3:] {
		if v, ok := strings.CutPrefix(f, "line:"); ok {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				pick.Selector = location.Line(n)
				return pick, nil
			}
		}
	}
	addr := strings.TrimSuffix(fields[2], `;"`)
	if n, err := strconv.Atoi(addr); err == nil && n > 0 {
		pick.Selector = location.Line(n)
	}
	return pick, nil
}

// lastLine returns the final non-empty line of out.
func lastLine(lines []string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		if s := strings.TrimRight(lines[i], "\r"); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
