package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/parleychat/parley/internal/api"
	"github.com/parleychat/parley/internal/errors"
)

// Backend is the surface of the chat service the app depends on. The real
// implementation is *api.Client; tests substitute a fake.
type Backend interface {
	ListChats(ctx context.Context) ([]api.Chat, string, error)
	CreateChat(ctx context.Context) (api.Chat, error)
	SwitchChat(ctx context.Context, id string) error
	FetchMessages(ctx context.Context, id string) ([]api.Message, error)
	DeleteChat(ctx context.Context, id string) error
	RenameChat(ctx context.Context, id, title string) error
	SearchChats(ctx context.Context, query string) ([]api.Chat, error)
	SendMessage(ctx context.Context, message, model string) (api.ChatReply, error)
	FetchProfile(ctx context.Context) (api.Profile, error)
	SaveProfile(ctx context.Context, name string) (api.Profile, error)
}

var _ Backend = (*api.Client)(nil)

// User-facing fallbacks for failures without a server-provided message.
const (
	fallbackLoadChats   = "Failed to load chats."
	fallbackCreateChat  = "Failed to create a new chat."
	fallbackOpenChat    = "Failed to open chat."
	fallbackDeleteChat  = "Failed to delete chat."
	fallbackRenameChat  = "Failed to rename chat."
	fallbackSearch      = "Search failed."
	fallbackSendMessage = "Failed to send message. Please try again."
	fallbackSaveProfile = "Failed to save profile."
)

// userMessage resolves the string shown in the error overlay.
func userMessage(err error, fallback string) string {
	return errors.UserMessage(err, fallback)
}

// Messages produced by commands

type chatsRefreshedMsg struct {
	chats     []api.Chat
	currentID string
	afterSend bool
	err       error
}

type chatCreatedMsg struct {
	chat api.Chat
	err  error
}

type chatOpenedMsg struct {
	chatID   string
	messages []api.Message
	err      error
}

type chatDeletedMsg struct {
	chatID    string
	wasActive bool
	err       error
}

type chatRenamedMsg struct {
	chatID string
	title  string
	err    error
}

type searchResultsMsg struct {
	query string
	chats []api.Chat
	err   error
}

type assistantReplyMsg struct {
	reply api.ChatReply
	err   error
}

type profileLoadedMsg struct {
	profile api.Profile
	err     error
}

type profileSavedMsg struct {
	profile api.Profile
	err     error
}

type searchDebounceMsg struct {
	gen int
}

// refreshChats fetches the authoritative session listing. afterSend marks
// the refresh that closes out a send round trip.
func (m *Model) refreshChats(afterSend bool) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		chats, currentID, err := backend.ListChats(context.Background())
		return chatsRefreshedMsg{chats: chats, currentID: currentID, afterSend: afterSend, err: err}
	}
}

func (m *Model) createChat() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		chat, err := backend.CreateChat(context.Background())
		return chatCreatedMsg{chat: chat, err: err}
	}
}

// openChat activates a chat server-side and loads its history in one
// command; the switch must land before the fetch.
func (m *Model) openChat(id string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx := context.Background()
		if err := backend.SwitchChat(ctx, id); err != nil {
			return chatOpenedMsg{chatID: id, err: err}
		}
		messages, err := backend.FetchMessages(ctx, id)
		return chatOpenedMsg{chatID: id, messages: messages, err: err}
	}
}

func (m *Model) deleteChat(id string, wasActive bool) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		err := backend.DeleteChat(context.Background(), id)
		return chatDeletedMsg{chatID: id, wasActive: wasActive, err: err}
	}
}

func (m *Model) renameChat(id, title string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		err := backend.RenameChat(context.Background(), id, title)
		return chatRenamedMsg{chatID: id, title: title, err: err}
	}
}

func (m *Model) searchChats(query string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		chats, err := backend.SearchChats(context.Background(), query)
		return searchResultsMsg{query: query, chats: chats, err: err}
	}
}

func (m *Model) sendMessage(text, model string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		reply, err := backend.SendMessage(context.Background(), text, model)
		return assistantReplyMsg{reply: reply, err: err}
	}
}

func (m *Model) fetchProfile() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		p, err := backend.FetchProfile(context.Background())
		return profileLoadedMsg{profile: p, err: err}
	}
}

func (m *Model) saveProfile(name string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		p, err := backend.SaveProfile(context.Background(), name)
		return profileSavedMsg{profile: p, err: err}
	}
}

// scheduleDebounce arms the trailing search timer for the given generation
func (m *Model) scheduleDebounce(gen int) tea.Cmd {
	return tea.Tick(m.debounce.Window(), func(time.Time) tea.Msg {
		return searchDebounceMsg{gen: gen}
	})
}
