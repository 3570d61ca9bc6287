package process

import (
	"strings"

	"github.com/alessio/shellescape"
)

// Quote escapes s for inclusion in a POSIX shell command line.
func Quote(s string) string {
	return shellescape.Quote(s)
}

// Join quotes each argument and joins them with spaces.
func Join(args ...string) string {
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		quoted = append(quoted, Quote(arg))
	}
	return strings.Join(quoted, " ")
}

// Pipeline joins non-empty stages with pipes.
func Pipeline(stages ...string) string {
	parts := make([]string, 0, len(stages))
	for _, stage := range stages {
		if s := strings.TrimSpace(stage); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " | ")
}
