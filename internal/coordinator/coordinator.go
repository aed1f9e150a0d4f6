// Package coordinator serializes the client's long-running requests.
//
// Two independent gates exist: the send gate covers the message round trip
// (at most one outstanding send), and the search gate covers the debounced
// search pipeline. Short-lived requests like rename and delete are not
// gated; the server handles them idempotently.
package coordinator

import "strings"

// SendState tracks where the active send round trip is.
type SendState int

const (
	// SendIdle means no send is in flight; the composer accepts submits.
	SendIdle SendState = iota
	// Sending means the user's message has been appended locally and the
	// request is on the wire.
	Sending
	// AwaitingRefresh means the assistant reply arrived and the follow-up
	// session refresh has not completed yet.
	AwaitingRefresh
)

func (s SendState) String() string {
	switch s {
	case SendIdle:
		return "idle"
	case Sending:
		return "sending"
	case AwaitingRefresh:
		return "awaiting-refresh"
	default:
		return "unknown"
	}
}

// SendGate enforces the single-outstanding-send rule.
type SendGate struct {
	state SendState
}

// NewSendGate returns an idle gate.
func NewSendGate() *SendGate {
	return &SendGate{}
}

// State returns the current send state.
func (g *SendGate) State() SendState {
	return g.state
}

// Busy reports whether a send round trip is in progress. Submits are
// rejected while busy.
func (g *SendGate) Busy() bool {
	return g.state != SendIdle
}

// Begin trims the draft and, if it is non-empty and the gate is idle,
// transitions to Sending and returns the trimmed text. A blank draft or a
// busy gate returns ok=false and changes nothing.
func (g *SendGate) Begin(draft string) (string, bool) {
	if g.state != SendIdle {
		return "", false
	}
	trimmed := strings.TrimSpace(draft)
	if trimmed == "" {
		return "", false
	}
	g.state = Sending
	return trimmed, true
}

// AwaitRefresh records that the reply arrived and the trailing session
// refresh is pending.
func (g *SendGate) AwaitRefresh() {
	if g.state == Sending {
		g.state = AwaitingRefresh
	}
}

// Finish returns the gate to idle, whether the round trip succeeded or
// failed.
func (g *SendGate) Finish() {
	g.state = SendIdle
}

// SearchState tracks the debounced search pipeline.
type SearchState int

const (
	SearchIdle SearchState = iota
	// SearchPending means a debounce timer is armed or a search request is
	// in flight.
	SearchPending
)

// SearchGate tracks whether a search is pending so the UI can show a
// spinner and late results can be discarded after the filter clears.
type SearchGate struct {
	state SearchState
}

// NewSearchGate returns an idle gate.
func NewSearchGate() *SearchGate {
	return &SearchGate{}
}

// State returns the current search state.
func (g *SearchGate) State() SearchState {
	return g.state
}

// MarkPending records that a search will run once the debounce window
// elapses.
func (g *SearchGate) MarkPending() {
	g.state = SearchPending
}

// Settle returns the gate to idle after results arrive or the query is
// cleared.
func (g *SearchGate) Settle() {
	g.state = SearchIdle
}
