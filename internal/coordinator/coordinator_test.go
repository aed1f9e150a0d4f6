package coordinator

import "testing"

func TestSendGate_Begin(t *testing.T) {
	g := NewSendGate()

	text, ok := g.Begin("  hello  ")
	if !ok {
		t.Fatal("idle gate should accept a non-empty draft")
	}
	if text != "hello" {
		t.Errorf("Begin trimmed = %q, want %q", text, "hello")
	}
	if g.State() != Sending {
		t.Errorf("state = %v, want Sending", g.State())
	}
	if !g.Busy() {
		t.Error("gate should report busy while sending")
	}
}

func TestSendGate_RejectsBlankDraft(t *testing.T) {
	g := NewSendGate()

	if _, ok := g.Begin("   \t\n "); ok {
		t.Error("whitespace-only draft must not start a send")
	}
	if g.State() != SendIdle {
		t.Errorf("state = %v, want SendIdle", g.State())
	}
}

func TestSendGate_SingleOutstandingSend(t *testing.T) {
	g := NewSendGate()

	if _, ok := g.Begin("first"); !ok {
		t.Fatal("first send should start")
	}
	if _, ok := g.Begin("second"); ok {
		t.Error("second submit while sending must be rejected")
	}

	g.AwaitRefresh()
	if g.State() != AwaitingRefresh {
		t.Errorf("state = %v, want AwaitingRefresh", g.State())
	}
	if _, ok := g.Begin("third"); ok {
		t.Error("submit while awaiting refresh must be rejected")
	}

	g.Finish()
	if g.Busy() {
		t.Error("gate should be idle after Finish")
	}
	if _, ok := g.Begin("fourth"); !ok {
		t.Error("send should start again after the round trip completes")
	}
}

func TestSendGate_FinishFromSending(t *testing.T) {
	// A failed request skips AwaitRefresh and goes straight back to idle.
	g := NewSendGate()
	g.Begin("hello")
	g.Finish()
	if g.State() != SendIdle {
		t.Errorf("state = %v, want SendIdle", g.State())
	}
}

func TestSendGate_AwaitRefreshOnlyFromSending(t *testing.T) {
	g := NewSendGate()
	g.AwaitRefresh()
	if g.State() != SendIdle {
		t.Error("AwaitRefresh on an idle gate should be a no-op")
	}
}

func TestSearchGate(t *testing.T) {
	g := NewSearchGate()
	if g.State() != SearchIdle {
		t.Fatal("new gate should be idle")
	}

	g.MarkPending()
	if g.State() != SearchPending {
		t.Error("expected pending after MarkPending")
	}

	g.Settle()
	if g.State() != SearchIdle {
		t.Error("expected idle after Settle")
	}
}
