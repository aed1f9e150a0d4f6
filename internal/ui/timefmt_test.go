package ui

import (
	"testing"
	"time"
)

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero time", time.Time{}, ""},
		{"seconds ago", now.Add(-30 * time.Second), "Just now"},
		{"under a minute boundary", now.Add(-59 * time.Second), "Just now"},
		{"minutes ago", now.Add(-5 * time.Minute), "5m ago"},
		{"just under an hour", now.Add(-59 * time.Minute), "59m ago"},
		{"hours ago", now.Add(-3 * time.Hour), "3h ago"},
		{"just under a day", now.Add(-23 * time.Hour), "23h ago"},
		{"days ago", now.Add(-2 * 24 * time.Hour), "2d ago"},
		{"six days ago", now.Add(-6 * 24 * time.Hour), "6d ago"},
		{"a week ago goes absolute", now.Add(-7 * 24 * time.Hour), "Aug 21, 2026"},
		{"months ago goes absolute", now.Add(-90 * 24 * time.Hour), "May 30, 2026"},
		{"future clock skew", now.Add(10 * time.Second), "Just now"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRelativeTime(tt.t, now); got != tt.want {
				t.Errorf("FormatRelativeTime = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	ts := time.Date(2026, 8, 28, 9, 5, 0, 0, time.UTC)
	if got := FormatClock(ts); got != "09:05" {
		t.Errorf("FormatClock = %q, want 09:05", got)
	}
}
