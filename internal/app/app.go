// Package app wires the launcher together: it resolves where to start,
// loads history, runs the dispatcher and cleans up afterwards.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/atomicstack/verbs/internal/config"
	"github.com/atomicstack/verbs/internal/dispatch"
	"github.com/atomicstack/verbs/internal/history"
	"github.com/atomicstack/verbs/internal/logging"
	"github.com/atomicstack/verbs/internal/logging/events"
	"github.com/atomicstack/verbs/internal/process"
	"github.com/atomicstack/verbs/internal/state"
	"github.com/atomicstack/verbs/internal/theme"
	"github.com/atomicstack/verbs/internal/tmux"
	"github.com/atomicstack/verbs/internal/ui"
	"github.com/atomicstack/verbs/internal/vcs"
	"github.com/atomicstack/verbs/internal/verb"
)

// shortcutVerb is the key of the verb the first-key shortcut runs.
const shortcutVerb = "p"

// Host is what the app needs from the process layer: terminal-owning runs
// for verbs and quiet queries for startup and git.
type Host interface {
	process.Host
	vcs.Querier
}

var (
	newHost = func() Host { return process.NewExec() }

	newSurface = func() dispatch.Surface { return ui.NewSurface(theme.Default()) }

	paneCurrentPath = tmux.PaneCurrentPath
	inTmux          = tmux.InTmux
	closePopup      = tmux.ClosePopup
)

// Run executes one session. It always tries to save history, even when
// the loop fails.
func Run(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := newHost()
	store := history.Store{Path: historyPath(cfg), Max: cfg.History.MaxEntries}
	stack, err := store.Load()
	if err != nil {
		logging.Error(fmt.Errorf("load history: %w", err))
		stack = history.NewStack(cfg.History.MaxEntries)
	}

	st := state.New(host, vcs.NewGit(host), stack)
	source, err := startLocation(st, cfg, host)
	if err != nil {
		return err
	}
	events.App.StartLocation(st.Location.Path(), source)

	registry, err := verb.Defaults(cfg.Verbs())
	if err != nil {
		return fmt.Errorf("build verbs: %w", err)
	}

	d := dispatch.New(registry, newSurface(), st, dispatch.Options{
		ShortcutKey:  cfg.UI.ShortcutKey,
		ShortcutVerb: shortcutVerb,
		Footer:       footer(cfg),
	})
	runErr := d.Run(ctx)

	saveErr := store.Save(st.History)
	if saveErr != nil {
		saveErr = fmt.Errorf("save history: %w", saveErr)
		logging.Error(saveErr)
	}
	events.App.Exit(exitReason(runErr), st.History.Len())
	closeUI(cfg, host)

	if runErr != nil {
		if !errors.Is(runErr, dispatch.ErrInterrupted) {
			logging.Error(runErr)
		}
		return runErr
	}
	return saveErr
}

// ExitCode maps the result of Run onto a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, dispatch.ErrInterrupted):
		return process.ExitCancelled
	default:
		return 1
	}
}

func exitReason(err error) string {
	switch {
	case err == nil:
		return "quit"
	case errors.Is(err, dispatch.ErrInterrupted):
		return "interrupt"
	default:
		return "error"
	}
}

func historyPath(cfg config.Config) string {
	if cfg.History.File != "" {
		return cfg.History.File
	}
	return history.DefaultPath(config.AppName)
}

func footer(cfg config.Config) string {
	if !cfg.UI.Footer {
		return ""
	}
	return "j/k move · enter run · ctrl+c quit"
}

// startLocation tries the requested path, then the running editor's
// directory, then the tmux pane's directory, then home. The selector and
// query only apply to the requested path.
func startLocation(st *state.AppState, cfg config.Config, q vcs.Querier) (string, error) {
	if path := cfg.Start.Path; path != "" {
		err := st.Go(path, state.GoOptions{Selector: cfg.Start.Selector, Query: cfg.Start.Query, NoHistory: true})
		if err == nil {
			return "argument", nil
		}
		logging.Warn("start path unusable", map[string]interface{}{"path": path, "error": err.Error()})
	}

	fallbacks := []struct {
		source string
		lookup func() (string, error)
	}{
		{"editor", func() (string, error) { return editorCwd(q, cfg.Editor.CwdCommand) }},
		{"tmux", func() (string, error) { return paneCurrentPath(cfg.Tmux.Socket) }},
		{"home", func() (string, error) { return st.HomeDir(), nil }},
	}
	for _, fb := range fallbacks {
		path, err := fb.lookup()
		if err != nil || strings.TrimSpace(path) == "" {
			continue
		}
		if err := st.Go(path, state.GoOptions{NoHistory: true}); err == nil {
			return fb.source, nil
		}
	}
	return "", errors.New("no usable start location")
}

func editorCwd(q vcs.Querier, command string) (string, error) {
	if strings.TrimSpace(command) == "" {
		return "", nil
	}
	out, err := q.Quiet(process.Command{Script: command})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// closeUI runs the configured close command, or dismisses the tmux popup.
// Failures are logged and otherwise ignored.
func closeUI(cfg config.Config, q vcs.Querier) {
	var err error
	switch {
	case strings.TrimSpace(cfg.UI.CloseCommand) != "":
		_, err = q.Quiet(process.Command{Script: cfg.UI.CloseCommand})
	case inTmux():
		err = closePopup(cfg.Tmux.Socket)
	default:
		return
	}
	if err != nil {
		logging.Warn("close ui failed", map[string]interface{}{"error": err.Error()})
	}
}
