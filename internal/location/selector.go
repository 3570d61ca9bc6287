package location

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SelectorKind identifies which sub-position form a Selector carries.
type SelectorKind int

const (
	SelectNone SelectorKind = iota
	SelectLine
	SelectRange
)

var (
	// ErrSelectorConflict reports a spec carrying both a line and a range.
	ErrSelectorConflict = errors.New("line and range selectors are mutually exclusive")
	errInvalidSelector  = errors.New("invalid selector")
)

// Selector is an optional line or line range within a file.
type Selector struct {
	Kind  SelectorKind
	Start int
	End   int
}

// None is the empty selector.
func None() Selector { return Selector{} }

// Line selects a single 1-based line.
func Line(n int) Selector { return Selector{Kind: SelectLine, Start: n, End: n} }

// Range selects the inclusive lines start..end.
func Range(start, end int) Selector { return Selector{Kind: SelectRange, Start: start, End: end} }

// IsNone reports whether no sub-position is selected.
func (s Selector) IsNone() bool { return s.Kind == SelectNone }

// StartLine returns the first selected line, or 0 when nothing is selected.
func (s Selector) StartLine() int {
	if s.Kind == SelectNone {
		return 0
	}
	return s.Start
}

func (s Selector) validate() error {
	switch s.Kind {
	case SelectNone:
		if s.Start != 0 || s.End != 0 {
			return fmt.Errorf("%w: empty selector with bounds", errInvalidSelector)
		}
	case SelectLine:
		if s.Start < 1 {
			return fmt.Errorf("%w: line %d", errInvalidSelector, s.Start)
		}
	case SelectRange:
		if s.Start < 1 || s.End < s.Start {
			return fmt.Errorf("%w: range %d,%d", errInvalidSelector, s.Start, s.End)
		}
	default:
		return fmt.Errorf("%w: kind %d", errInvalidSelector, s.Kind)
	}
	return nil
}

func (s Selector) String() string {
	switch s.Kind {
	case SelectLine:
		return strconv.Itoa(s.Start)
	case SelectRange:
		return fmt.Sprintf("%d,%d", s.Start, s.End)
	default:
		return ""
	}
}

// ParseSelector accepts "", "N" or "N,M".
func ParseSelector(raw string) (Selector, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return None(), nil
	}
	parts := strings.Split(trimmed, ",")
	nums := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Selector{}, fmt.Errorf("%w %q: %v", errInvalidSelector, raw, err)
		}
		nums = append(nums, n)
	}
	var sel Selector
	switch len(nums) {
	case 1:
		sel = Line(nums[0])
	case 2:
		sel = Range(nums[0], nums[1])
	default:
		return Selector{}, fmt.Errorf("%w %q: expected N or N,M", errInvalidSelector, raw)
	}
	if err := sel.validate(); err != nil {
		return Selector{}, err
	}
	return sel, nil
}
