package tasks

import "time"

// Active returns the open tasks dated on the calendar day of selected.
// Dates that do not parse only match when they equal FormatDay(selected).
func Active(tasks []Task, selected time.Time) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		if day, ok := ParseDay(t.Date); ok {
			if sameDay(day, selected) {
				out = append(out, t)
			}
		} else if t.Date == FormatDay(selected) {
			out = append(out, t)
		}
	}
	return out
}

// Done returns every completed task regardless of date.
func Done(tasks []Task) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// Missed returns the open tasks dated strictly before the calendar day of
// today. Tasks whose date does not parse are never missed.
func Missed(tasks []Task, today time.Time) []Task {
	cutoff := Midnight(today)
	var out []Task
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		day, ok := ParseDay(t.Date)
		if !ok {
			continue
		}
		if day.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out
}
