package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/atomicstack/verbs/internal/location"
	"github.com/atomicstack/verbs/internal/verb"
)

const (
	AppName   = "verbs"
	envPrefix = "VERBS"

	defaultCwdCommand = "nvr --remote-expr 'getcwd()'"
	defaultShortcut   = "space"
)

// Config captures runtime configuration for the application. File values
// come from config.yaml, VERBS_* environment variables and flags; Start,
// Flags and Args come from the command line only.
type Config struct {
	Selector  Selector  `mapstructure:"selector"`
	Editor    Editor    `mapstructure:"editor"`
	Pager     Pager     `mapstructure:"pager"`
	UI        UI        `mapstructure:"ui"`
	History   History   `mapstructure:"history"`
	Assistant Assistant `mapstructure:"assistant"`
	Projects  Projects  `mapstructure:"projects"`
	Tmux      Tmux      `mapstructure:"tmux"`
	Log       Log       `mapstructure:"log"`

	Start Start             `mapstructure:"-"`
	Flags map[string]string `mapstructure:"-"`
	Args  []string          `mapstructure:"-"`
	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type Selector struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

type Editor struct {
	Command string `mapstructure:"command"`
	// CwdCommand prints the working directory of a running editor.
	CwdCommand string `mapstructure:"cwd_command"`
}

type Pager struct {
	Command string `mapstructure:"command"`
}

type UI struct {
	CloseCommand string `mapstructure:"close_command"`
	ShortcutKey  string `mapstructure:"shortcut_key"`
	Footer       bool   `mapstructure:"footer"`
}

type History struct {
	File       string `mapstructure:"file"`
	MaxEntries int    `mapstructure:"max_entries"`
}

type Assistant struct {
	Command string `mapstructure:"command"`
}

type Projects struct {
	MaxDepth int `mapstructure:"max_depth"`
}

type Tmux struct {
	Socket string `mapstructure:"socket"`
}

type Log struct {
	File  string `mapstructure:"file"`
	Trace bool   `mapstructure:"trace"`
}

// Start is the location requested on the command line.
type Start struct {
	Path     string
	Selector location.Selector
	Query    string
}

// Verbs maps the configuration onto the default verb set.
func (c Config) Verbs() verb.Config {
	return verb.Config{
		Selector:  verb.Selector{Command: c.Selector.Command, Args: c.Selector.Args},
		Editor:    verb.Template(c.Editor.Command),
		Pager:     verb.Template(c.Pager.Command),
		Assistant: verb.Template(c.Assistant.Command),
		RepoDepth: c.Projects.MaxDepth,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("selector.command", "fzf")
	v.SetDefault("selector.args", []string{})
	v.SetDefault("editor.command", string(verb.DefaultEditor))
	v.SetDefault("editor.cwd_command", defaultCwdCommand)
	v.SetDefault("pager.command", string(verb.DefaultPager))
	v.SetDefault("ui.close_command", "")
	v.SetDefault("ui.shortcut_key", defaultShortcut)
	v.SetDefault("ui.footer", false)
	v.SetDefault("history.file", "")
	v.SetDefault("history.max_entries", 500)
	v.SetDefault("assistant.command", "")
	v.SetDefault("projects.max_depth", 4)
	v.SetDefault("tmux.socket", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.trace", false)
}

// readConfig loads file, or config.yaml from the config dir when file is
// empty. A missing default file is not an error; a missing explicit one is.
func readConfig(v *viper.Viper, file string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := Dir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Dir is $XDG_CONFIG_HOME/verbs, falling back to ~/.config/verbs.
func Dir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// Validate rejects settings the rest of the program cannot honour.
func Validate(cfg Config) error {
	if cfg.History.MaxEntries < 0 {
		return fmt.Errorf("history.max_entries must be >= 0 (got %d)", cfg.History.MaxEntries)
	}
	if cfg.Projects.MaxDepth < 0 {
		return fmt.Errorf("projects.max_depth must be >= 0 (got %d)", cfg.Projects.MaxDepth)
	}
	for _, k := range verb.ReservedKeys {
		if cfg.UI.ShortcutKey == k {
			return fmt.Errorf("ui.shortcut_key %q is a navigation key", k)
		}
	}
	if strings.TrimSpace(cfg.Selector.Command) == "" {
		return errors.New("selector.command must not be empty")
	}
	return nil
}
