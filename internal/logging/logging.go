package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultLogFile = "verbs.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultPath()
	sessionID    = uuid.NewString()
	logger       = newLogger()
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.TraceLevel)
	l.SetOutput(io.Discard)
	return l
}

func defaultPath() string {
	return filepath.Join(os.TempDir(), defaultLogFile)
}

// Error writes errors to the shared log file regardless of the trace setting.
func Error(err error) {
	if err == nil {
		return
	}
	write(func(l *logrus.Entry) { l.Error(err.Error()) })
}

// Warn records a non-fatal condition worth a look, such as a verb whose
// predicate panicked.
func Warn(msg string, fields map[string]interface{}) {
	write(func(l *logrus.Entry) { l.WithFields(logrus.Fields(fields)).Warn(msg) })
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are being written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	write(func(l *logrus.Entry) {
		entry := l.WithField("event", event)
		if payload != nil {
			entry = entry.WithField("payload", payload)
		}
		entry.Trace(event)
	})
}

// SessionID identifies the current run in every log entry.
func SessionID() string {
	return sessionID
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultPath()
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultPath()
		return
	}
	logPath = path
}

// Path returns the current log destination.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

func write(emit func(*logrus.Entry)) {
	mu.Lock()
	defer mu.Unlock()
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()
	logger.SetOutput(f)
	defer logger.SetOutput(io.Discard)
	emit(logger.WithField("session", sessionID))
}
