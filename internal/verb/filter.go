package verb

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atomicstack/verbs/internal/location"
	"github.com/atomicstack/verbs/internal/process"
	"github.com/atomicstack/verbs/internal/state"
	"github.com/atomicstack/verbs/internal/vcs"
)

// Producer yields the candidate stage of a pipeline and its working
// directory.
type Producer func(loc location.Location) (script, cwd string)

// FilterOptions configures a filter verb.
type FilterOptions struct {
	Key   string
	Title string
	When  Predicate
	// Produce defaults to vcs.Candidates.
	Produce   Producer
	Transform string
	Selector  Selector
	Pick      PickOptions
	// UseQuery pre-fills the finder with the location query.
	UseQuery bool
	Parse    Parser
	// Alternate runs at the new location when the finder was closed with
	// Pick.Expect instead of enter.
	Alternate Verb
}

// FilterVerb runs candidates | transform | finder and moves to the pick.
type FilterVerb struct {
	base
	produce   Producer
	transform string
	selector  Selector
	pick      PickOptions
	useQuery  bool
	parse     Parser
	alternate Verb
}

// NewFilter builds a filter verb.
func NewFilter(opts FilterOptions) *FilterVerb {
	produce := opts.Produce
	if produce == nil {
		produce = vcs.Candidates
	}
	parse := opts.Parse
	if parse == nil {
		parse = ParsePath
	}
	return &FilterVerb{
		base:      base{key: opts.Key, category: Filter, title: opts.Title, when: opts.When},
		produce:   produce,
		transform: opts.Transform,
		selector:  opts.Selector,
		pick:      opts.Pick,
		useQuery:  opts.UseQuery,
		parse:     parse,
		alternate: opts.Alternate,
	}
}

// Pipeline renders the full shell pipeline for st and its working
// directory.
func (f *FilterVerb) Pipeline(st *state.AppState) (process.Command, error) {
	producer, cwd := f.produce(st.Location)
	if strings.TrimSpace(producer) == "" {
		return process.Command{}, fmt.Errorf("filter %q has no candidates", f.key)
	}
	opts := f.pick
	if f.useQuery {
		opts.Query = st.Location.Query()
	}
	script := process.Pipeline(producer, f.transform, f.selector.Script(opts))
	return process.Command{Script: script, Dir: cwd}, nil
}

func (f *FilterVerb) Execute(ctx Context) (Outcome, error) {
	st := ctx.State
	cmd, err := f.Pipeline(st)
	if err != nil {
		return Stay, err
	}

	var out string
	err = handoff(ctx, func() error {
		var runErr error
		out, runErr = st.Host.Output(cmd)
		return runErr
	})
	if err != nil {
		return Stay, err
	}

	pressed, selection := splitSelection(out, f.pick.Expect != "")
	if selection == "" {
		return Stay, fmt.Errorf("%w: nothing selected", state.ErrNavigation)
	}
	pick, err := f.parse(selection)
	if err != nil {
		return Stay, fmt.Errorf("%w: %v", state.ErrNavigation, err)
	}
	target := pick.Path
	if !filepath.IsAbs(target) {
		target = filepath.Join(cmd.Dir, target)
	}
	if err := st.Go(target, state.GoOptions{Selector: pick.Selector, Query: pick.Query}); err != nil {
		return Stay, err
	}
	if f.alternate != nil && pressed != "" && pressed == f.pick.Expect {
		return f.alternate.Execute(ctx)
	}
	return Stay, nil
}

// splitSelection separates the expect-mode key line from the chosen line.
// The last non-empty line is the selection.
func splitSelection(out string, expect bool) (pressed, selection string) {
	lines := strings.Split(out, "\n")
	if expect && len(lines) > 0 {
		pressed = strings.TrimSpace(lines[0])
		lines = lines[1:]
	}
	return pressed, lastLine(lines)
}
