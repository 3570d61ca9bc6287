package events

import "github.com/atomicstack/verbs/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) StartLocation(path, source string) {
	logging.Trace("app.start-location", map[string]interface{}{"path": path, "source": source})
}

func (AppTracer) Exit(reason string, historyEntries int) {
	logging.Trace("app.exit", map[string]interface{}{"reason": reason, "history": historyEntries})
}
