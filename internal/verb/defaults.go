package verb

import (
	"github.com/atomicstack/verbs/internal/location"
	"github.com/atomicstack/verbs/internal/vcs"
)

// Config carries the user-tunable parts of the default verb set.
type Config struct {
	Selector  Selector
	Editor    Template
	Pager     Template
	Assistant Template
	// RepoDepth bounds the repository search below a directory.
	RepoDepth int
}

const (
	DefaultEditor = Template("${EDITOR:-vi} +{line} {path}")
	DefaultPager  = Template("less +{line}g {path}")

	editAlternateKey = "ctrl-e"
	filePreview      = "cat -n {}"
	grepTransform    = `xargs -r -d '\n' grep -HnI --color=never ''`
	tagTransform     = "ctags -f - --fields=+n -L -"
)

func trackedFiles(loc location.Location) (string, string) { return "git ls-files", loc.Dir() }

func walkFiles(loc location.Location) (string, string) {
	return "find . -path ./.git -prune -o -type f -print", loc.Dir()
}

func dirEntries(loc location.Location) (string, string) { return vcs.Entries(), loc.Dir() }

func repositories(depth int) Producer {
	return func(loc location.Location) (string, string) {
		return vcs.Repositories(depth), loc.Dir()
	}
}

// Defaults returns the registry compiled into the binary.
func Defaults(cfg Config) (*Registry, error) {
	editor := cfg.Editor
	if editor == "" {
		editor = DefaultEditor
	}
	pager := cfg.Pager
	if pager == "" {
		pager = DefaultPager
	}
	depth := cfg.RepoDepth

	edit := NewCommand(CommandOptions{
		Key: "e", Category: File, Template: editor, When: IsFile, Close: true,
	})

	verbs := []Verb{
		Up("u"),
		Back("b"),
		RepoRoot("p"),
		Home("H"),
		Quit("q"),

		Exclusive(
			NewFilter(FilterOptions{
				Key: "f", Title: "Find git files", When: And(IsDir, AtRepoRoot),
				Produce: trackedFiles, Selector: cfg.Selector,
				Pick:      PickOptions{Prompt: "git files> ", Expect: editAlternateKey, Preview: filePreview},
				Alternate: edit,
			}),
			NewFilter(FilterOptions{
				Key: "f", Title: "Find files", When: And(IsDir, Not(AtRepoRoot)),
				Produce: walkFiles, Selector: cfg.Selector,
				Pick:      PickOptions{Prompt: "files> ", Expect: editAlternateKey, Preview: filePreview},
				Alternate: edit,
			}),
		),
		NewFilter(FilterOptions{
			Key: "l", Title: "List dir", When: IsDir,
			Produce: dirEntries, Selector: cfg.Selector,
			Pick: PickOptions{Prompt: "ls> "},
		}),
		NewFilter(FilterOptions{
			Key: "/", Title: "Search lines", Transform: grepTransform, Selector: cfg.Selector,
			Pick: PickOptions{
				Prompt: "lines> ", Delimiter: ":",
				Preview: "cat -n {1}", PreviewWindow: "+{2}-/2",
			},
			UseQuery: true, Parse: ParseGrep,
		}),
		NewFilter(FilterOptions{
			Key: "t", Title: "Jump to tag", Transform: tagTransform, Selector: cfg.Selector,
			Pick:     PickOptions{Prompt: "tags> ", Delimiter: "\t", Preview: "cat -n {2}"},
			UseQuery: true, Parse: ParseTag,
		}),
		NewFilter(FilterOptions{
			Key:      "P",
			Title:    "Find git projects",
			When:     And(IsDir, Not(InRepo)),
			Produce:  repositories(depth),
			Selector: cfg.Selector,
			Pick:     PickOptions{Prompt: "projects> "},
		}),

		NewCommand(CommandOptions{Key: "g", Category: Command, Template: "lazygit", When: InRepo, InRoot: true}),
		NewCommand(CommandOptions{Key: "s", Category: Command, Template: "${SHELL:-bash}", When: IsDir}),
		NewCommand(CommandOptions{
			Key: "d", Category: Command, Title: "Show git diff", When: InRepo,
			Template: "git -c color.ui=always diff -- {path} | less -R", InRoot: true,
		}),
		NewCommand(CommandOptions{
			Key: "a", Category: Command, Title: "Show git log", When: And(IsFile, InRepo),
			Template: "git log -p --follow -- {path}", InRoot: true,
		}),

		NewCommand(CommandOptions{Key: "x", Category: File, Template: pager, When: IsFile}),
		edit,
		NewCommand(CommandOptions{Key: "B", Category: File, Template: "black {path}", When: HasExt(".py"), Pause: true}),
		CopyPath("y"),
	}
	if cfg.Assistant != "" {
		verbs = append(verbs, NewCommand(CommandOptions{
			Key: "A", Category: Assistant, Template: cfg.Assistant, InRoot: true, Pause: true,
		}))
	}
	return NewRegistry(verbs...)
}
