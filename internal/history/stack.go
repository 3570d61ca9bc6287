// Package history keeps the back-navigation stack and its on-disk record.
package history

import "github.com/atomicstack/verbs/internal/location"

// Entry is one visited position.
type Entry struct {
	Path     string
	Selector location.Selector
}

// Stack is an append/pop-from-end list of entries, oldest first. It never
// holds two consecutive identical entries.
type Stack struct {
	entries []Entry
	max     int
}

// NewStack builds a stack that keeps at most max entries (0 means no cap).
func NewStack(max int, entries ...Entry) *Stack {
	s := &Stack{max: max}
	for _, e := range entries {
		s.Push(e)
	}
	return s
}

// Push appends e unless it matches the current top. It reports whether the
// stack changed.
func (s *Stack) Push(e Entry) bool {
	if e.Path == "" {
		return false
	}
	if n := len(s.entries); n > 0 && s.entries[n-1] == e {
		return false
	}
	s.entries = append(s.entries, e)
	if s.max > 0 && len(s.entries) > s.max {
		drop := len(s.entries) - s.max
		s.entries = append([]Entry(nil), s.entries[drop:]...)
	}
	return true
}

// Pop removes and returns the newest entry.
func (s *Stack) Pop() (Entry, bool) {
	n := len(s.entries)
	if n == 0 {
		return Entry{}, false
	}
	e := s.entries[n-1]
	s.entries = s.entries[:n-1]
	return e, true
}

// Peek returns the newest entry without removing it.
func (s *Stack) Peek() (Entry, bool) {
	n := len(s.entries)
	if n == 0 {
		return Entry{}, false
	}
	return s.entries[n-1], true
}

func (s *Stack) Len() int    { return len(s.entries) }
func (s *Stack) Empty() bool { return len(s.entries) == 0 }

// Entries returns a copy, oldest first.
func (s *Stack) Entries() []Entry {
	if len(s.entries) == 0 {
		return nil
	}
	dup := make([]Entry, len(s.entries))
	copy(dup, s.entries)
	return dup
}
