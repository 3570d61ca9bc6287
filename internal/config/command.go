package config

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/atomicstack/verbs/internal/location"
)

// RunFunc receives the resolved configuration.
type RunFunc func(ctx context.Context, cfg Config) error

// NewCommand returns the root command. run is invoked once flags, the
// config file and the environment have been merged and validated.
func NewCommand(run RunFunc) *cobra.Command {
	v := viper.New()
	setDefaults(v)

	cmd := &cobra.Command{
		Use:           AppName + " [path]",
		Short:         "Context-sensitive launcher for files, lines and directories",
		Long:          "verbs shows the actions that apply to a file, line or directory and runs the one you pick; fuzzy finders, editors and git tools are launched as child processes.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(v, cmd.Flags(), args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "config file (default "+Dir()+"/config.yaml)")
	flags.StringP("line", "l", "", "line N or range N,M to select in the file")
	flags.StringP("query", "q", "", "text pre-filled into the next filter")
	flags.String("socket", "", "path to the tmux socket (overrides environment detection)")
	flags.Bool("trace", false, "enable verbose JSON trace logging")
	flags.String("log-file", "", "path to the log file")
	flags.Bool("footer", false, "show the key hint footer")

	_ = v.BindPFlag("tmux.socket", flags.Lookup("socket"))
	_ = v.BindPFlag("log.trace", flags.Lookup("trace"))
	_ = v.BindPFlag("log.file", flags.Lookup("log-file"))
	_ = v.BindPFlag("ui.footer", flags.Lookup("footer"))
	return cmd
}

// LoadArgs runs the command line parser over args without launching
// anything, so tests can inspect the result.
func LoadArgs(args []string) (Config, error) {
	var cfg Config
	cmd := NewCommand(func(_ context.Context, c Config) error {
		cfg = c
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	if err := cmd.Execute(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func resolve(v *viper.Viper, flags *pflag.FlagSet, args []string) (Config, error) {
	file, _ := flags.GetString("config")
	if err := readConfig(v, file); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.File = v.ConfigFileUsed()

	line, _ := flags.GetString("line")
	sel, err := location.ParseSelector(line)
	if err != nil {
		return Config{}, err
	}
	cfg.Start.Selector = sel
	cfg.Start.Query, _ = flags.GetString("query")
	if len(args) > 0 {
		cfg.Start.Path = args[0]
	}

	cfg.Flags = make(map[string]string)
	flags.VisitAll(func(f *pflag.Flag) {
		cfg.Flags[f.Name] = f.Value.String()
	})
	cfg.Args = append([]string(nil), args...)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
