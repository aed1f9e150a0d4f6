package coordinator

import "time"

// Debouncer collapses rapid query edits into a single trailing search. Each
// Arm supersedes the previous one by bumping a generation counter; a timer
// carrying a stale generation is ignored when it fires. The caller owns the
// actual timer (a tea.Tick in the app), which keeps this type free of
// scheduling concerns and trivially testable.
type Debouncer struct {
	window  time.Duration
	gen     int
	pending string
	armed   bool
}

// NewDebouncer creates a debouncer with the given trailing window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Window returns the debounce interval the caller should schedule.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Arm records query as the pending search and returns the generation token
// the caller must present to Fire. Any previously armed timer becomes
// stale.
func (d *Debouncer) Arm(query string) int {
	d.gen++
	d.pending = query
	d.armed = true
	return d.gen
}

// Fire resolves an elapsed timer. It returns the pending query only when
// gen matches the most recent Arm and no Cancel intervened; stale timers
// report ok=false and must cause no work.
func (d *Debouncer) Fire(gen int) (string, bool) {
	if !d.armed || gen != d.gen {
		return "", false
	}
	d.armed = false
	return d.pending, true
}

// Cancel discards any armed timer, typically because the query was cleared
// before the window elapsed.
func (d *Debouncer) Cancel() {
	d.armed = false
	d.pending = ""
}

// Pending reports whether a timer is armed and has not fired or been
// cancelled.
func (d *Debouncer) Pending() bool {
	return d.armed
}
