package commands

import (
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode"

	"focus/internal/tasks"
)

// Section letters used in task references and list output.
const (
	SectionActive = 'a'
	SectionDone   = 'd'
	SectionMissed = 'm'
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Raw        string
	ID         int64 // task id when HasSection is false
	Section    rune  // 'a', 'd' or 'm' when HasSection is true
	Index      int   // 1-based position within the section
	HasSection bool
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. If first arg is all digits → task id
// 2. If first arg is <section><digits> (a1, d2, m12) → position in that section
// 3. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}

	raw := args[0]

	if isAllDigits(raw) {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", raw)
		}
		return TaskRef{Raw: raw, ID: id}, nil
	}

	if len(raw) > 1 && isSection(rune(raw[0])) && isAllDigits(raw[1:]) {
		n, err := strconv.Atoi(raw[1:])
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", raw)
		}
		return TaskRef{Raw: raw, Section: rune(raw[0]), Index: n, HasSection: true}, nil
	}

	return TaskRef{}, fmt.Errorf("invalid task reference: %s", raw)
}

// ResolveTaskRef finds the task a reference points to. Section positions are
// counted in the views for the selected day, exactly as list prints them.
func ResolveTaskRef(b *tasks.Board, ref TaskRef, selected time.Time) (tasks.Task, error) {
	if !ref.HasSection {
		t, ok := b.Find(ref.ID)
		if !ok {
			return tasks.Task{}, fmt.Errorf("task not found: %s", ref.Raw)
		}
		return t, nil
	}

	var view []tasks.Task
	switch ref.Section {
	case SectionActive:
		view = b.Active(selected)
	case SectionDone:
		view = b.Done()
	case SectionMissed:
		view = b.Missed()
	}
	if ref.Index < 1 || ref.Index > len(view) {
		return tasks.Task{}, fmt.Errorf("task not found: %s", ref.Raw)
	}
	return view[ref.Index-1], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isSection(r rune) bool {
	return r == SectionActive || r == SectionDone || r == SectionMissed
}
