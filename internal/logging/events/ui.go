package events

import "github.com/atomicstack/verbs/internal/logging"

type DispatchTracer struct{}

type VerbTracer struct{}

type NavTracer struct{}

type ProcessTracer struct{}

var (
	Dispatch = DispatchTracer{}
	Verb     = VerbTracer{}
	Nav      = NavTracer{}
	Process  = ProcessTracer{}
)

func (DispatchTracer) Frame(location string, keys []string, cursor int) {
	logging.Trace("dispatch.frame", map[string]interface{}{
		"location": location,
		"keys":     keys,
		"cursor":   cursor,
	})
}

func (DispatchTracer) Key(key string) {
	logging.Trace("dispatch.key", map[string]interface{}{"key": key})
}

func (DispatchTracer) Cursor(cursor int) {
	logging.Trace("dispatch.cursor", map[string]interface{}{"cursor": cursor})
}

func (DispatchTracer) Unrecognized(key string) {
	logging.Trace("dispatch.unrecognized", map[string]interface{}{"key": key})
}

func (DispatchTracer) Shortcut(key string) {
	logging.Trace("dispatch.shortcut", map[string]interface{}{"key": key})
}

// Recovered logs a failure the loop absorbed. It is written even without
// tracing so failed commands leave a record.
func (DispatchTracer) Recovered(key string, err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	logging.Trace("dispatch.recovered", map[string]interface{}{"key": key, "error": err.Error()})
}

func (VerbTracer) Execute(key, label string) {
	logging.Trace("verb.execute", map[string]interface{}{"key": key, "label": label})
}

func (VerbTracer) Result(key, outcome string) {
	logging.Trace("verb.result", map[string]interface{}{"key": key, "outcome": outcome})
}

// PredicatePanic reports an applicability check that panicked. The verb is
// treated as not applicable.
func (VerbTracer) PredicatePanic(key string, recovered interface{}) {
	logging.Warn("verb predicate panicked", map[string]interface{}{
		"key":   key,
		"panic": recovered,
	})
}

// KeyCollision reports two active verbs claiming one key in the same frame.
func (VerbTracer) KeyCollision(key string, labels []string) {
	logging.Warn("active verbs share a key", map[string]interface{}{
		"key":    key,
		"labels": labels,
	})
}

func (NavTracer) Go(from, to, repoRoot string) {
	logging.Trace("nav.go", map[string]interface{}{"from": from, "to": to, "repo": repoRoot})
}

func (ProcessTracer) Start(command, dir string, capture bool) {
	logging.Trace("process.start", map[string]interface{}{
		"command": command,
		"dir":     dir,
		"capture": capture,
	})
}

func (ProcessTracer) Exit(command string, code int) {
	logging.Trace("process.exit", map[string]interface{}{"command": command, "code": code})
}
