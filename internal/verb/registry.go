package verb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atomicstack/verbs/internal/logging/events"
	"github.com/atomicstack/verbs/internal/state"
)

// ReservedKeys are consumed by the dispatcher before verb lookup.
var ReservedKeys = []string{"up", "down", "j", "k", "enter", "ctrl+c"}

// Registry is the fixed set of verbs compiled into the binary.
type Registry struct {
	verbs []Verb
}

// NewRegistry validates verbs and builds a registry. Every key must be
// unique; verbs that share a key must be folded into one Exclusive entry.
func NewRegistry(verbs ...Verb) (*Registry, error) {
	reserved := make(map[string]struct{}, len(ReservedKeys))
	for _, k := range ReservedKeys {
		reserved[k] = struct{}{}
	}
	seen := make(map[string]int, len(verbs))
	for i, v := range verbs {
		if v == nil {
			return nil, fmt.Errorf("verb %d is nil", i)
		}
		key := v.Key()
		if strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("verb %d has no key", i)
		}
		if _, ok := reserved[key]; ok {
			return nil, fmt.Errorf("verb %d uses reserved key %q", i, key)
		}
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("verbs %d and %d both bind %q; group them with Exclusive", prev, i, key)
		}
		seen[key] = i
	}
	return &Registry{verbs: append([]Verb(nil), verbs...)}, nil
}

// MustRegistry panics when the verb set is inconsistent.
func MustRegistry(verbs ...Verb) *Registry {
	r, err := NewRegistry(verbs...)
	if err != nil {
		panic(err)
	}
	return r
}

// All returns every registered verb in registration order.
func (r *Registry) All() []Verb {
	return append([]Verb(nil), r.verbs...)
}

// Active returns the applicable verbs grouped by category and sorted by
// label within each category.
func (r *Registry) Active(st *state.AppState) []Verb {
	type row struct {
		verb  Verb
		label string
	}
	rows := make([]row, 0, len(r.verbs))
	for _, v := range r.verbs {
		if !applicable(v, st) {
			continue
		}
		rows = append(rows, row{verb: v, label: v.Label(st)})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if ci, cj := rows[i].verb.Category(), rows[j].verb.Category(); ci != cj {
			return ci < cj
		}
		return rows[i].label < rows[j].label
	})
	out := make([]Verb, len(rows))
	for i, rw := range rows {
		out[i] = rw.verb
	}
	for key, labels := range Duplicates(st, out) {
		events.Verb.KeyCollision(key, labels)
	}
	return out
}

// Resolve returns the first verb in active bound to key.
func Resolve(active []Verb, key string) (Verb, bool) {
	for _, v := range active {
		if v.Key() == key {
			return v, true
		}
	}
	return nil, false
}

// Duplicates lists keys claimed by more than one verb in active, with the
// labels of the claimants.
func Duplicates(st *state.AppState, active []Verb) map[string][]string {
	byKey := make(map[string][]string)
	for _, v := range active {
		byKey[v.Key()] = append(byKey[v.Key()], v.Label(st))
	}
	dups := make(map[string][]string)
	for key, labels := range byKey {
		if len(labels) > 1 {
			dups[key] = labels
		}
	}
	return dups
}

// applicable evaluates v's predicate; a panic counts as not applicable.
func applicable(v Verb, st *state.AppState) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			events.Verb.PredicatePanic(v.Key(), r)
			ok = false
		}
	}()
	return v.Applicable(st)
}

// exclusive binds one key to several verbs whose predicates are mutually
// exclusive. The first applicable member stands in for the group.
type exclusive struct {
	key     string
	members []Verb
}

// Exclusive groups verbs sharing a key. Members must agree on key and
// category; at most one should be applicable at a time, and the first
// applicable wins.
func Exclusive(members ...Verb) Verb {
	if len(members) == 0 {
		panic("verb: empty exclusive group")
	}
	key, category := members[0].Key(), members[0].Category()
	for _, m := range members[1:] {
		if m.Key() != key {
			panic(fmt.Sprintf("verb: exclusive group mixes keys %q and %q", key, m.Key()))
		}
		if m.Category() != category {
			panic(fmt.Sprintf("verb: exclusive group %q mixes categories %s and %s", key, category, m.Category()))
		}
	}
	return &exclusive{key: key, members: members}
}

func (e *exclusive) pick(st *state.AppState) Verb {
	for _, m := range e.members {
		if applicable(m, st) {
			return m
		}
	}
	return nil
}

func (e *exclusive) Key() string { return e.key }

func (e *exclusive) Category() Category { return e.members[0].Category() }

func (e *exclusive) Label(st *state.AppState) string {
	if m := e.pick(st); m != nil {
		return m.Label(st)
	}
	return e.members[0].Label(st)
}

func (e *exclusive) Applicable(st *state.AppState) bool {
	return e.pick(st) != nil
}

func (e *exclusive) Execute(ctx Context) (Outcome, error) {
	m := e.pick(ctx.State)
	if m == nil {
		return Stay, fmt.Errorf("no verb bound to %q applies here", e.key)
	}
	return m.Execute(ctx)
}
