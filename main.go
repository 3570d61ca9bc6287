package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/verbs/internal/app"
	"github.com/atomicstack/verbs/internal/config"
	"github.com/atomicstack/verbs/internal/dispatch"
	"github.com/atomicstack/verbs/internal/logging"
	"github.com/atomicstack/verbs/internal/logging/events"
)

func main() {
	cmd := config.NewCommand(func(ctx context.Context, cfg config.Config) error {
		logging.Configure(cfg.Log.File)
		logging.SetTraceEnabled(cfg.Log.Trace)
		traceStartup(cfg, os.Args[1:])
		return app.Run(ctx, cfg)
	})
	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return
	}
	if !errors.Is(err, dispatch.ErrInterrupted) {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(app.ExitCode(err))
}

func traceStartup(cfg config.Config, argv []string) {
	events.App.Start(startupTracePayload(cfg, argv))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, argv []string) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Log.Trace
	flags["logFile"] = cfg.Log.File
	payload := map[string]interface{}{
		"argv":    argv,
		"flags":   flags,
		"config":  cfg,
		"session": logging.SessionID(),
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = probeTerminal(int(os.Stdin.Fd()), int(os.Stdout.Fd()))
	return payload
}

// terminalInfo records what the session will find at startup: fzf and
// child commands read keys from stdin, the menu draws on stdout.
type terminalInfo struct {
	Stdin  bool `json:"stdin"`
	Stdout bool `json:"stdout"`
	Width  int  `json:"width,omitempty"`
	Height int  `json:"height,omitempty"`
}

func probeTerminal(stdin, stdout int) terminalInfo {
	info := terminalInfo{Stdin: term.IsTerminal(stdin), Stdout: term.IsTerminal(stdout)}
	if info.Stdout {
		if width, height, err := term.GetSize(stdout); err == nil {
			info.Width, info.Height = width, height
		}
	}
	return info
}
