package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/parleychat/parley/internal/logger"
	"github.com/parleychat/parley/internal/notification"
)

func (m *Model) handleChatsRefreshed(msg chatsRefreshedMsg) (tea.Model, tea.Cmd) {
	// A post-send refresh closes out the round trip whether it worked or not
	if msg.afterSend {
		m.sendGate.Finish()
	}

	if msg.err != nil {
		m.rederiveActive = false
		m.showError(msg.err, fallbackLoadChats)
		return m, nil
	}

	m.registry.ReplaceAll(msg.chats, msg.currentID)

	if m.rederiveActive {
		// The active chat was just deleted; derive a replacement from the
		// fresh listing instead of reloading the dead one.
		m.rederiveActive = false
		list := m.registry.List()
		if len(list) == 0 {
			m.registry.SetActive("")
			m.timeline.Clear("")
			m.chat.ClearConversation()
			if m.focus == FocusChat {
				m.toggleFocus()
			}
			m.syncSidebar()
			return m, nil
		}
		m.syncSidebar()
		return m, m.startOpenChat(list[0].ID)
	}

	m.syncSidebar()

	activeID := m.registry.ActiveID()
	if activeID != "" && m.timeline.ChatID() != activeID {
		// First listing after startup: the server already has a current
		// chat, load its history.
		return m, m.startOpenChat(activeID)
	}

	if activeID != "" && m.timeline.ChatID() == activeID {
		// Titles can change server-side (auto-titling after the first
		// exchange), keep the chat panel's header current.
		m.chat.SetConversation(m.activeChatTitle(), m.timeline.Messages())
	}
	return m, nil
}

func (m *Model) handleChatCreated(msg chatCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.showError(msg.err, fallbackCreateChat)
		return m, nil
	}

	m.registry.Add(msg.chat)
	m.timeline.Clear(msg.chat.ID)
	m.chat.SetConversation(msg.chat.Title, nil)
	m.syncSidebar()

	if m.focus == FocusSidebar {
		m.toggleFocus()
	}

	// The optimistic entry gets replaced by the authoritative listing
	return m, m.refreshChats(false)
}

func (m *Model) handleChatOpened(msg chatOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.chatID != m.pendingOpenID {
		// A later selection superseded this load
		logger.Debug("dropping stale chat load for %s", msg.chatID)
		return m, nil
	}
	m.pendingOpenID = ""

	if msg.err != nil {
		m.showError(msg.err, fallbackOpenChat)
		return m, nil
	}

	if err := m.registry.SetActive(msg.chatID); err != nil {
		m.showError(err, fallbackOpenChat)
		return m, nil
	}

	m.timeline.Replace(msg.chatID, msg.messages)
	m.chat.SetConversation(m.activeChatTitle(), m.timeline.Messages())
	m.syncSidebar()

	if m.focus == FocusSidebar {
		m.toggleFocus()
	}
	return m, nil
}

func (m *Model) handleChatDeleted(msg chatDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.showError(msg.err, fallbackDeleteChat)
		return m, nil
	}

	if msg.wasActive {
		m.rederiveActive = true
	}
	return m, m.refreshChats(false)
}

func (m *Model) handleChatRenamed(msg chatRenamedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.showError(msg.err, fallbackRenameChat)
		return m, nil
	}
	return m, m.refreshChats(false)
}

func (m *Model) handleSearchDebounce(msg searchDebounceMsg) (tea.Model, tea.Cmd) {
	query, ok := m.debounce.Fire(msg.gen)
	if !ok {
		// Superseded by further typing or cancelled
		return m, nil
	}
	return m, m.searchChats(query)
}

func (m *Model) handleSearchResults(msg searchResultsMsg) (tea.Model, tea.Cmd) {
	// Searches go out trimmed, so compare against the trimmed input
	if !m.sidebar.IsSearchMode() || msg.query != strings.TrimSpace(m.sidebar.SearchQuery()) {
		// The query moved on while this request was in flight
		logger.Debug("dropping stale search results for %q", msg.query)
		return m, nil
	}

	m.searchGate.Settle()
	m.sidebar.SetSearchPending(false)

	if msg.err != nil {
		m.showError(msg.err, fallbackSearch)
		return m, nil
	}

	m.registry.ShowSearchResults(msg.chats)
	m.syncSidebar()
	return m, nil
}

func (m *Model) handleAssistantReply(msg assistantReplyMsg) (tea.Model, tea.Cmd) {
	m.chat.SetWaiting(false)

	if msg.err != nil {
		m.sendGate.Finish()
		m.showError(msg.err, fallbackSendMessage)
		return m, nil
	}

	m.sendGate.AwaitRefresh()
	m.timeline.AppendAssistant(msg.reply.Response, msg.reply.ModelUsed)
	m.chat.SetConversation(m.activeChatTitle(), m.timeline.Messages())

	if !m.terminalFocused && m.config.NotificationsEnabled {
		// Send logs its own failures; a missed notification is not an error
		_ = notification.ReplyArrived(m.activeChatTitle())
	}

	// The server may have retitled the chat and bumped its timestamp
	return m, m.refreshChats(true)
}

func (m *Model) handleProfileLoaded(msg profileLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Stay on the guest identity; the chat surface works without a profile
		logger.Warn("profile load failed: %v", msg.err)
		return m, nil
	}
	m.profile.Set(msg.profile.Name)
	m.chat.SetUserLabel(m.profile.DisplayName())
	return m, nil
}

func (m *Model) handleProfileSaved(msg profileSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.showError(msg.err, fallbackSaveProfile)
		return m, nil
	}
	m.profile.Set(msg.profile.Name)
	m.chat.SetUserLabel(m.profile.DisplayName())
	return m, nil
}
