package tmux

import (
	"os/exec"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

type tmuxClient interface {
	DisplayMessage(target, format string) (string, error)
	Close() error
}

type commander interface {
	Run() error
	Output() ([]byte, error)
}

var (
	newTmux = func(socketPath string) (tmuxClient, error) {
		return gotmux.NewTmux(socketPath)
	}

	runExecCommand = func(name string, args ...string) commander {
		return realCommander{cmd: exec.Command(name, args...)}
	}
)

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Run() error {
	return r.cmd.Run()
}

func (r realCommander) Output() ([]byte, error) {
	return r.cmd.Output()
}
