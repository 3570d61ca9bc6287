package verb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/verbs/internal/history"
	"github.com/atomicstack/verbs/internal/location"
	"github.com/atomicstack/verbs/internal/state"
)

func defaultRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := Defaults(Config{Assistant: "claude {rel}"})
	require.NoError(t, err)
	return reg
}

func TestDefaultKeysUniqueInEveryFrame(t *testing.T) {
	reg := defaultRegistry(t)
	specs := []location.Spec{
		{Path: "/", IsDir: true},
		{Path: "/", IsDir: true, RepoRoot: "/"},
		{Path: "/work/repo", IsDir: true, RepoRoot: "/work/repo"},
		{Path: "/work/repo/pkg", IsDir: true, RepoRoot: "/work/repo"},
		{Path: "/work/repo/pkg/main.go", RepoRoot: "/work/repo"},
		{Path: "/work/repo/tool.py", Line: 4, RepoRoot: "/work/repo"},
		{Path: "/tmp/notes.txt", Range: [2]int{3, 8}},
		{Path: "/tmp", IsDir: true},
	}
	reserved := map[string]bool{}
	for _, k := range ReservedKeys {
		reserved[k] = true
	}
	for _, spec := range specs {
		for _, withHistory := range []bool{false, true} {
			st := at(t, spec)
			if withHistory {
				st.History.Push(history.Entry{Path: "/elsewhere"})
			}
			active := reg.Active(st)
			require.NotEmpty(t, active)
			assert.Empty(t, Duplicates(st, active), "location %s", spec.Path)
			for _, v := range active {
				assert.False(t, reserved[v.Key()], "reserved key %q bound", v.Key())
			}
		}
	}
}

func TestRepoRootDirectoryScenario(t *testing.T) {
	reg := defaultRegistry(t)
	st := at(t, location.Spec{Path: "/work/repo", IsDir: true, RepoRoot: "/work/repo"})
	active := keys(reg.Active(st))

	assert.NotContains(t, active, "b", "no history yet")
	assert.NotContains(t, active, "p", "already at the repository root")
	assert.Contains(t, active, "u", "not the filesystem root")
	assert.Contains(t, active, "f")

	top := at(t, location.Spec{Path: "/", IsDir: true, RepoRoot: "/"})
	assert.NotContains(t, keys(reg.Active(top)), "u")
}

func TestActiveGroupsByCategoryThenLabel(t *testing.T) {
	reg := defaultRegistry(t)
	st := at(t, location.Spec{Path: "/work/repo/pkg/main.go", Line: 3, RepoRoot: "/work/repo"})
	active := reg.Active(st)
	for i := 1; i < len(active); i++ {
		prev, cur := active[i-1], active[i]
		if prev.Category() == cur.Category() {
			assert.LessOrEqual(t, prev.Label(st), cur.Label(st))
			continue
		}
		assert.Less(t, prev.Category(), cur.Category())
	}
	assert.Equal(t, Navigation, active[0].Category())
	assert.Equal(t, Assistant, active[len(active)-1].Category())
}

func TestActiveTreatsPanickingPredicateAsNotApplicable(t *testing.T) {
	boom := NewCommand(CommandOptions{Key: "z", Template: "true", When: func(*state.AppState) bool { panic("boom") }})
	fine := NewCommand(CommandOptions{Key: "w", Template: "true"})
	reg := MustRegistry(boom, fine)
	st := at(t, location.Spec{Path: "/tmp", IsDir: true})
	assert.Equal(t, []string{"w"}, keys(reg.Active(st)))
}

func TestNewRegistryRejectsCollisions(t *testing.T) {
	a := NewCommand(CommandOptions{Key: "x", Template: "a"})
	b := NewCommand(CommandOptions{Key: "x", Template: "b"})
	_, err := NewRegistry(a, b)
	require.Error(t, err)

	_, err = NewRegistry(NewCommand(CommandOptions{Key: "j", Template: "a"}))
	require.Error(t, err)

	_, err = NewRegistry(NewCommand(CommandOptions{Template: "a"}))
	require.Error(t, err)
}

func TestExclusiveStandsInForApplicableMember(t *testing.T) {
	inRepo := NewCommand(CommandOptions{Key: "x", Title: "in repo", Template: "a", When: InRepo})
	outside := NewCommand(CommandOptions{Key: "x", Title: "outside", Template: "b", When: Not(InRepo)})
	reg := MustRegistry(Exclusive(inRepo, outside))

	repo := at(t, location.Spec{Path: "/r/f", RepoRoot: "/r"})
	v, ok := Resolve(reg.Active(repo), "x")
	require.True(t, ok)
	assert.Equal(t, "in repo", v.Label(repo))

	plain := at(t, location.Spec{Path: "/t/f"})
	v, ok = Resolve(reg.Active(plain), "x")
	require.True(t, ok)
	assert.Equal(t, "outside", v.Label(plain))
}

func TestExclusiveRejectsMixedKeys(t *testing.T) {
	assert.Panics(t, func() {
		Exclusive(Quit("q"), Home("H"))
	})
}

func TestResolveFirstMatchWins(t *testing.T) {
	first := NewCommand(CommandOptions{Key: "x", Title: "first", Template: "a"})
	second := NewCommand(CommandOptions{Key: "x", Title: "second", Template: "b"})
	st := at(t, location.Spec{Path: "/tmp", IsDir: true})
	v, ok := Resolve([]Verb{first, second}, "x")
	require.True(t, ok)
	assert.Equal(t, "first", v.Label(st))
	assert.Len(t, Duplicates(st, []Verb{first, second}), 1)

	_, ok = Resolve([]Verb{first}, "nope")
	assert.False(t, ok)
}

func TestAssistantOnlyWhenConfigured(t *testing.T) {
	reg, err := Defaults(Config{})
	require.NoError(t, err)
	st := at(t, location.Spec{Path: "/tmp/x.go"})
	assert.NotContains(t, keys(reg.Active(st)), "A")
}
