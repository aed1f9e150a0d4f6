package ui

import (
	"fmt"
	"time"
)

// FormatRelativeTime renders a chat's last-activity time the way the
// sidebar shows it: recent times as a compact relative offset, anything a
// week or older as an absolute date.
func FormatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := now.Sub(t)
	if d < 0 {
		d = 0
	}

	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// FormatClock renders a message timestamp as a wall clock time.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}
