// Package process runs external commands on behalf of verbs.
package process

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atomicstack/verbs/internal/logging/events"
)

// ExitCancelled is the status fzf and most shells report when the user
// aborts with ctrl+c or escape.
const ExitCancelled = 130

// Command describes one invocation. Script runs through the shell and takes
// precedence over Args.
type Command struct {
	Script string
	Args   []string
	Dir    string
	Env    []string
}

func (c Command) String() string {
	if c.Script != "" {
		return c.Script
	}
	return strings.Join(c.Args, " ")
}

// Host is the process surface verbs depend on.
type Host interface {
	// Output runs cmd with stdin and stderr on the terminal and returns its
	// standard output with trailing newlines removed.
	Output(cmd Command) (string, error)
	// Run hands the terminal to cmd and waits for it to exit.
	Run(cmd Command) error
}

// ExitError reports a command that ran and exited non-zero, or could not be
// started at all.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
	Err     error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s: exit status %d", e.Command, e.Code)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExitError) Unwrap() error { return e.Err }

// Cancelled reports whether the command was aborted by the user.
func (e *ExitError) Cancelled() bool { return e.Code == ExitCancelled }

// IsExitError reports whether err carries a non-zero exit.
func IsExitError(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// Exec is the os/exec backed Host.
type Exec struct {
	Shell  string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExec returns a host wired to the process's own standard streams.
func NewExec() *Exec {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	return &Exec{Shell: shell, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (e *Exec) command(c Command) (*exec.Cmd, error) {
	var cmd *exec.Cmd
	switch {
	case c.Script != "":
		shell := e.Shell
		if shell == "" {
			shell = "/bin/sh"
		}
		cmd = exec.Command(shell, "-c", c.Script) //nolint:gosec
	case len(c.Args) > 0:
		cmd = exec.Command(c.Args[0], c.Args[1:]...) //nolint:gosec
	default:
		return nil, fmt.Errorf("empty command")
	}
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	return cmd, nil
}

// Output implements Host.
func (e *Exec) Output(c Command) (string, error) {
	cmd, err := e.command(c)
	if err != nil {
		return "", err
	}
	var stdout bytes.Buffer
	cmd.Stdin = e.Stdin
	cmd.Stdout = &stdout
	cmd.Stderr = e.Stderr
	events.Process.Start(c.String(), c.Dir, true)
	err = cmd.Run()
	if err != nil {
		return "", e.classify(c, err, "")
	}
	events.Process.Exit(c.String(), 0)
	return strings.TrimRight(stdout.String(), "\n"), nil
}

// Run implements Host.
func (e *Exec) Run(c Command) error {
	cmd, err := e.command(c)
	if err != nil {
		return err
	}
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	events.Process.Start(c.String(), c.Dir, false)
	if err := cmd.Run(); err != nil {
		return e.classify(c, err, "")
	}
	events.Process.Exit(c.String(), 0)
	return nil
}

// Quiet runs c without a terminal and captures both streams. It suits
// read-only queries such as locating a repository root.
func (e *Exec) Quiet(c Command) (string, error) {
	cmd, err := e.command(c)
	if err != nil {
		return "", err
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", e.classify(c, err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}

func (e *Exec) classify(c Command, err error, stderr string) error {
	code := -1
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		code = exitErr.ExitCode()
	case errors.Is(err, exec.ErrNotFound):
		code = 127
	}
	events.Process.Exit(c.String(), code)
	return &ExitError{Command: c.String(), Code: code, Stderr: stderr, Err: err}
}
