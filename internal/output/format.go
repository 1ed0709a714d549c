// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"focus/internal/tasks"
)

const (
	// SectionSeparator is the separator line around section headers.
	SectionSeparator = "------------"
)

// Ref builds the reference printed in front of a task, e.g. "a3".
func Ref(section rune, num int) string {
	return fmt.Sprintf("%c%d", section, num)
}

// FormatTask formats a task line.
// Format: "{REF:>6}  [ ] {TEXT}\n", with "  ({DATE})" appended when withDate
// is set.
func FormatTask(w io.Writer, ref string, task tasks.Task, withDate bool) {
	box := " "
	if task.Completed {
		box = "x"
	}
	line := fmt.Sprintf("%6s  [%s] %s", ref, box, normalizeText(task.Text))
	if withDate {
		line += fmt.Sprintf("  (%s)", task.Date)
	}
	fmt.Fprintln(w, line)
}

// FormatSectionHeader formats a section header between separator lines.
func FormatSectionHeader(w io.Writer, title string) {
	fmt.Fprintln(w, SectionSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, SectionSeparator)
}

// FormatMissedAlert formats the missed-task banner.
func FormatMissedAlert(w io.Writer, n int) {
	noun := "tasks"
	if n == 1 {
		noun = "task"
	}
	fmt.Fprintf(w, "! %d missed %s\n", n, noun)
}

// FormatDayTitle formats the heading for the selected day, marking today.
func FormatDayTitle(day string, isToday bool) string {
	if isToday {
		return day + " [today]"
	}
	return day
}

// FormatNote writes the note body, indented, one line per note line.
func FormatNote(w io.Writer, note string) {
	note = strings.TrimRight(note, "\r\n")
	for _, line := range strings.Split(note, "\n") {
		fmt.Fprintf(w, "  %s\n", strings.TrimRight(line, "\r"))
	}
}

// normalizeText normalizes a task text for display.
// - Newlines are replaced with spaces
// - Empty or whitespace-only text becomes "(untitled)"
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
