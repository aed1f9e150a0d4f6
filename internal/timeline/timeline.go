// Package timeline holds the in-memory message log for the active chat.
//
// The log always corresponds to exactly one chat id. Switching chats
// replaces the whole log via Replace; messages are never merged across
// chats. The only optimistic mutation in the client lives here: AppendUser
// adds the user's own message before the network round trip completes, and
// it is never rolled back on failure.
package timeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/parleychat/parley/internal/api"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in the conversation log. ReceivedAt is assigned
// client-side when the message enters the log and is only used for display.
type Message struct {
	ID         string
	Role       Role
	Content    string
	Model      string // model that produced an assistant reply, empty for user messages
	ReceivedAt time.Time
}

// Timeline is the ordered, append-only message log for one chat.
type Timeline struct {
	chatID   string
	messages []Message
	now      func() time.Time
}

// New creates an empty timeline bound to no chat.
func New() *Timeline {
	return &Timeline{now: time.Now}
}

// SetClock overrides the timestamp source (for testing).
func (t *Timeline) SetClock(now func() time.Time) {
	t.now = now
}

// ChatID returns the chat this log belongs to, or empty if none loaded.
func (t *Timeline) ChatID() string {
	return t.chatID
}

// Messages returns the log in append order.
func (t *Timeline) Messages() []Message {
	return t.messages
}

// IsEmpty reports whether the log has no messages. An empty log renders as
// the welcome placeholder, never as a blank list.
func (t *Timeline) IsEmpty() bool {
	return len(t.messages) == 0
}

// Replace discards the log and loads the stored history of chatID.
func (t *Timeline) Replace(chatID string, history []api.Message) {
	t.chatID = chatID
	t.messages = make([]Message, 0, len(history))
	for _, m := range history {
		t.messages = append(t.messages, Message{
			ID:         uuid.NewString(),
			Role:       Role(m.Role),
			Content:    m.Content,
			Model:      m.Model,
			ReceivedAt: t.now(),
		})
	}
}

// Clear empties the log and binds it to chatID; used when a new chat is
// created or a chat with no stored messages loads.
func (t *Timeline) Clear(chatID string) {
	t.chatID = chatID
	t.messages = nil
}

// AppendUser optimistically appends the user's message and returns it.
func (t *Timeline) AppendUser(content string) Message {
	msg := Message{
		ID:         uuid.NewString(),
		Role:       RoleUser,
		Content:    content,
		ReceivedAt: t.now(),
	}
	t.messages = append(t.messages, msg)
	return msg
}

// AppendAssistant appends a confirmed assistant reply and returns it.
func (t *Timeline) AppendAssistant(content, model string) Message {
	msg := Message{
		ID:         uuid.NewString(),
		Role:       RoleAssistant,
		Content:    content,
		Model:      model,
		ReceivedAt: t.now(),
	}
	t.messages = append(t.messages, msg)
	return msg
}
