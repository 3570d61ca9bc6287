// Package tmux answers the few questions verbs asks of an enclosing tmux
// server: where the launching pane is, and how to dismiss the popup.
package tmux

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

var errNotInTmux = errors.New("not running inside tmux")

// InTmux reports whether the process was started from a tmux client.
func InTmux() bool {
	return strings.TrimSpace(os.Getenv("TMUX")) != ""
}

// ResolveSocketPath picks the server socket: the configured value
// (tmux.socket, --socket or $VERBS_TMUX_SOCKET), then the socket named in
// $TMUX, then tmux's own default location.
func ResolveSocketPath(configured string) (string, error) {
	if configured = strings.TrimSpace(configured); configured != "" {
		return configured, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

// PaneCurrentPath returns the working directory of the pane that launched
// us, or of the active pane when $TMUX_PANE is unset.
func PaneCurrentPath(configured string) (string, error) {
	if !InTmux() && strings.TrimSpace(configured) == "" {
		return "", errNotInTmux
	}
	socketPath, err := ResolveSocketPath(configured)
	if err != nil {
		return "", fmt.Errorf("resolve tmux socket: %w", err)
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return "", fmt.Errorf("connect to tmux: %w", err)
	}
	defer client.Close()
	target := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	path, err := client.DisplayMessage(target, "#{pane_current_path}")
	if err != nil {
		return "", fmt.Errorf("query pane path: %w", err)
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("pane %q reported no path", target)
	}
	return path, nil
}

// ClosePopup dismisses the popup the process runs in, on the same server
// PaneCurrentPath talks to.
func ClosePopup(configured string) error {
	socketPath, err := ResolveSocketPath(configured)
	if err != nil {
		return fmt.Errorf("resolve tmux socket: %w", err)
	}
	args := append(baseArgs(socketPath), "display-popup", "-C")
	return runExecCommand("tmux", args...).Run()
}

func baseArgs(socketPath string) []string {
	return []string{"-S", socketPath}
}
