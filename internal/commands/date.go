package commands

import (
	"fmt"
	"strings"
	"time"

	"focus/internal/tasks"
)

// parseDate resolves a --date value relative to now. Empty means today.
func parseDate(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return tasks.Midnight(now), nil
	case "yesterday":
		return tasks.Midnight(now).AddDate(0, 0, -1), nil
	case "tomorrow":
		return tasks.Midnight(now).AddDate(0, 0, 1), nil
	}
	day, ok := tasks.ParseDay(s)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date: %s", s)
	}
	return day, nil
}
