package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/atomicstack/verbs/internal/location"
)

// record is the persisted shape of one entry: [path, line-or-null].
type record struct {
	Path string
	Line *int
}

func (r record) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{r.Path, r.Line})
}

func (r *record) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("history entry: expected [path, line], got %d fields", len(raw))
	}
	if err := json.Unmarshal(raw[0], &r.Path); err != nil {
		return fmt.Errorf("history entry path: %w", err)
	}
	r.Line = nil
	if !bytes.Equal(bytes.TrimSpace(raw[1]), []byte("null")) {
		var line int
		if err := json.Unmarshal(raw[1], &line); err != nil {
			return fmt.Errorf("history entry line: %w", err)
		}
		r.Line = &line
	}
	return nil
}

// Store reads and writes the history record at a fixed path.
type Store struct {
	Path string
	Max  int
}

// Load returns the persisted stack. A missing file yields an empty stack.
func (s Store) Load() (*Stack, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewStack(s.Max), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history %s: %w", s.Path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return NewStack(s.Max), nil
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode history %s: %w", s.Path, err)
	}
	stack := NewStack(s.Max)
	for _, r := range records {
		sel := location.None()
		if r.Line != nil && *r.Line > 0 {
			sel = location.Line(*r.Line)
		}
		stack.Push(Entry{Path: r.Path, Selector: sel})
	}
	return stack, nil
}

// Save overwrites the record with the stack contents. Ranges are stored as
// their first line.
func (s Store) Save(stack *Stack) error {
	records := make([]record, 0, stack.Len())
	for _, e := range stack.Entries() {
		r := record{Path: e.Path}
		if line := e.Selector.StartLine(); line > 0 {
			r.Line = &line
		}
		records = append(records, r)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".history-*")
	if err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replace history %s: %w", s.Path, err)
	}
	return nil
}

// DefaultPath resolves the well-known history location.
func DefaultPath(app string) string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), app, "history.json")
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, app, "history.json")
}
