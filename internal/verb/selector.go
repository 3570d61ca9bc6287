package verb

import (
	"strings"

	"github.com/atomicstack/verbs/internal/process"
)

// Selector invokes the fuzzy finder at the end of a filter pipeline.
type Selector struct {
	Command string
	Args    []string
}

// PickOptions are the per-verb knobs of the finder invocation.
type PickOptions struct {
	Prompt        string
	Query         string
	Expect        string
	Delimiter     string
	Preview       string
	PreviewWindow string
}

// Script renders the finder stage of the pipeline.
func (s Selector) Script(opts PickOptions) string {
	name := strings.TrimSpace(s.Command)
	if name == "" {
		name = "fzf"
	}
	parts := []string{name}
	for _, arg := range s.Args {
		parts = append(parts, process.Quote(arg))
	}
	add := func(flag, value string) {
		if value != "" {
			parts = append(parts, flag, process.Quote(value))
		}
	}
	add("--prompt", opts.Prompt)
	add("--query", opts.Query)
	add("--expect", opts.Expect)
	add("--delimiter", opts.Delimiter)
	add("--preview", opts.Preview)
	add("--preview-window", opts.PreviewWindow)
	return strings.Join(parts, " ")
}
