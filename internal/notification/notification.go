// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/parleychat/parley/internal/logger"
)

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	logger.Debug("notification: title=%q message=%q", title, message)
	// Empty icon string - beeep handles platform defaults
	err := beeep.Notify(title, message, "")
	if err != nil {
		logger.Warn("notification failed: %v", err)
	}
	return err
}

// ReplyArrived announces an assistant reply that landed while the terminal
// was not focused.
func ReplyArrived(chatTitle string) error {
	return Send("Parley", "New reply in "+chatTitle)
}
