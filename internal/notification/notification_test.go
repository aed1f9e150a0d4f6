package notification

import "testing"

// Sending real desktop notifications is environment-dependent; just make
// sure the helpers don't panic and propagate beeep's result.
func TestReplyArrived(t *testing.T) {
	_ = ReplyArrived("Weather")
}
