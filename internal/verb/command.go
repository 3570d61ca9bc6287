package verb

import (
	"fmt"

	"github.com/atomicstack/verbs/internal/process"
	"github.com/atomicstack/verbs/internal/state"
)

// CommandOptions configures a command verb.
type CommandOptions struct {
	Key      string
	Category Category
	// Title replaces the default "Run `<command>`" label.
	Title    string
	Template Template
	When     Predicate
	// InRoot runs the command from the repository root when there is one.
	// Templates using {rel} always do.
	InRoot bool
	// Pause waits for a key after the command exits.
	Pause bool
	// Close ends the session once the command succeeds.
	Close bool
}

// CommandVerb runs a templated shell command with the terminal handed over.
type CommandVerb struct {
	base
	template Template
	inRoot   bool
	pause    bool
	closes   bool
}

// NewCommand builds a command verb.
func NewCommand(opts CommandOptions) *CommandVerb {
	return &CommandVerb{
		base:     base{key: opts.Key, category: opts.Category, title: opts.Title, when: opts.When},
		template: opts.Template,
		inRoot:   opts.InRoot || opts.Template.Uses("{rel}"),
		pause:    opts.Pause,
		closes:   opts.Close,
	}
}

// Label embeds the command line that will run unless a title is set.
func (c *CommandVerb) Label(st *state.AppState) string {
	if c.title != "" {
		return c.title
	}
	return fmt.Sprintf("Run `%s`", c.template.Expand(st.Location))
}

// Command returns the invocation for the current location.
func (c *CommandVerb) Command(st *state.AppState) process.Command {
	dir := st.Location.Dir()
	if c.inRoot && st.Location.InRepo() {
		dir = st.Location.RepoRoot()
	}
	return process.Command{Script: c.template.Expand(st.Location), Dir: dir}
}

func (c *CommandVerb) Execute(ctx Context) (Outcome, error) {
	st := ctx.State
	cmd := c.Command(st)
	err := handoff(ctx, func() error {
		runErr := st.Host.Run(cmd)
		if c.pause {
			prompt := "[press any key]"
			if runErr != nil {
				prompt = fmt.Sprintf("[%v; press any key]", runErr)
			}
			if err := terminalOf(ctx).Pause(prompt); err != nil && runErr == nil {
				return err
			}
		}
		return runErr
	})
	if err != nil {
		return Stay, err
	}
	if c.closes {
		return Close, nil
	}
	return Stay, nil
}
