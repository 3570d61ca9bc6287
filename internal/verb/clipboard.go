package verb

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/atomicstack/verbs/internal/process"
	"github.com/atomicstack/verbs/internal/state"
)

var writeClipboard = clipboard.WriteAll

type copyVerb struct{ base }

// CopyPath puts the location, with its line when one is selected, on the
// system clipboard.
func CopyPath(key string) Verb {
	return copyVerb{base{key: key, category: File, title: "Copy path", when: func(*state.AppState) bool {
		return !clipboard.Unsupported
	}}}
}

func (c copyVerb) Execute(ctx Context) (Outcome, error) {
	text := ctx.State.Location.Path()
	if line := ctx.State.Location.Selector().StartLine(); line > 0 {
		text = fmt.Sprintf("%s:%d", text, line)
	}
	if err := writeClipboard(text); err != nil {
		return Stay, &process.ExitError{Command: "clipboard", Code: -1, Stderr: err.Error(), Err: err}
	}
	ctx.State.SetStatus("Copied " + text)
	return Stay, nil
}
