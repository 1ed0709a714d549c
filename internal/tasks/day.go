package tasks

import (
	"strings"
	"time"
)

const (
	// DayLayout is the form task dates are written in.
	DayLayout = "2006-01-02"

	// BrowserDayLayout is JavaScript's Date.toDateString() form, accepted on
	// read so bundles exported from the browser keep classifying.
	BrowserDayLayout = "Mon Jan 02 2006"
)

// FormatDay renders the calendar day of t in local time.
func FormatDay(t time.Time) string {
	return t.In(time.Local).Format(DayLayout)
}

// ParseDay parses a task date into local midnight of that calendar day.
// Full timestamps count for the local day they fall on. It reports false
// for anything that is not a recognizable day.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DayLayout, BrowserDayLayout, time.RFC3339Nano} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Midnight(t), true
		}
	}
	return time.Time{}, false
}

// Midnight truncates t to the start of its local calendar day.
func Midnight(t time.Time) time.Time {
	t = t.In(time.Local)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func sameDay(a, b time.Time) bool {
	a, b = a.In(time.Local), b.In(time.Local)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
