package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/parleychat/parley/internal/keys"
	"github.com/parleychat/parley/internal/ui"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.FocusMsg:
		m.terminalFocused = true
		return m, nil

	case tea.BlurMsg:
		m.terminalFocused = false
		return m, nil

	case ui.SidebarTickMsg:
		var cmd tea.Cmd
		m.sidebar, cmd = m.sidebar.Update(msg)
		return m, cmd

	case ui.StopwatchTickMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	case chatsRefreshedMsg:
		return m.handleChatsRefreshed(msg)
	case chatCreatedMsg:
		return m.handleChatCreated(msg)
	case chatOpenedMsg:
		return m.handleChatOpened(msg)
	case chatDeletedMsg:
		return m.handleChatDeleted(msg)
	case chatRenamedMsg:
		return m.handleChatRenamed(msg)
	case searchDebounceMsg:
		return m.handleSearchDebounce(msg)
	case searchResultsMsg:
		return m.handleSearchResults(msg)
	case assistantReplyMsg:
		return m.handleAssistantReply(msg)
	case profileLoadedMsg:
		return m.handleProfileLoaded(msg)
	case profileSavedMsg:
		return m.handleProfileSaved(msg)
	}

	// Everything else (mouse, etc.) goes to the panels
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.sidebar, cmd = m.sidebar.Update(msg)
	cmds = append(cmds, cmd)
	m.chat, cmd = m.chat.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keys.CtrlC {
		return m, tea.Quit
	}

	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	if m.focus == FocusSidebar {
		if m.sidebar.IsSearchMode() {
			return m.handleSearchModeKey(msg)
		}
		return m.handleSidebarKey(msg)
	}
	return m.handleChatKey(msg)
}

func (m *Model) handleSidebarKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case keys.Tab:
		if m.registry.ActiveID() != "" {
			m.toggleFocus()
		}
		return m, nil

	case keys.CtrlN:
		return m, m.createChat()

	case "/":
		m.sidebar.EnterSearchMode()
		return m, nil

	case keys.Enter:
		if sel := m.sidebar.SelectedChat(); sel != nil {
			return m, m.startOpenChat(sel.ID)
		}
		return m, nil

	case "m":
		if sel := m.sidebar.SelectedChat(); sel != nil {
			m.modal.Show(ui.NewChatMenuState(sel.ID, sel.Title))
		}
		return m, nil

	case "p":
		m.modal.Show(ui.NewProfileState(m.profile.Name()))
		return m, nil

	case "o", keys.CtrlO:
		m.modal.Show(ui.NewModelSelectState(m.config.GetModels(), m.config.GetDefaultModel()))
		return m, nil
	}

	var cmd tea.Cmd
	m.sidebar, cmd = m.sidebar.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Escape:
		m.clearSearch()
		return m, nil

	case keys.Enter:
		sel := m.sidebar.SelectedChat()
		m.clearSearch()
		if sel != nil {
			return m, m.startOpenChat(sel.ID)
		}
		return m, nil
	}

	before := m.sidebar.SearchQuery()
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.sidebar, cmd = m.sidebar.Update(msg)
	cmds = append(cmds, cmd)

	after := m.sidebar.SearchQuery()
	if after != before {
		cmds = append(cmds, m.onQueryChanged(after)...)
	}
	return m, tea.Batch(cmds...)
}

// onQueryChanged arms (or cancels) the trailing search for a new query.
// A query that trims to empty is the clear path: it restores the full
// list and never reaches the network.
func (m *Model) onQueryChanged(query string) []tea.Cmd {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		m.debounce.Cancel()
		m.searchGate.Settle()
		m.sidebar.SetSearchPending(false)
		m.registry.ClearSearch()
		m.syncSidebar()
		return nil
	}

	gen := m.debounce.Arm(trimmed)
	m.searchGate.MarkPending()
	m.sidebar.SetSearchPending(true)
	return []tea.Cmd{m.scheduleDebounce(gen), ui.SidebarTick()}
}

// clearSearch leaves search mode and restores the unfiltered list
func (m *Model) clearSearch() {
	m.sidebar.ExitSearchMode()
	m.debounce.Cancel()
	m.searchGate.Settle()
	m.registry.ClearSearch()
	m.syncSidebar()
}

func (m *Model) handleChatKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Tab, keys.Escape:
		m.toggleFocus()
		return m, nil

	case keys.Enter:
		return m.submitMessage()

	case keys.ShiftEnter:
		// Shift+enter inserts a newline into the composer
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		return m, cmd
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

// startOpenChat records the pending open and issues the switch+load
func (m *Model) startOpenChat(id string) tea.Cmd {
	if id == m.registry.ActiveID() && m.timeline.ChatID() == id {
		// Already open; nothing to load
		return nil
	}
	m.pendingOpenID = id
	return m.openChat(id)
}

// submitMessage runs the optimistic send pipeline
func (m *Model) submitMessage() (tea.Model, tea.Cmd) {
	if m.registry.ActiveID() == "" {
		return m, nil
	}

	text, ok := m.sendGate.Begin(m.chat.Input())
	if !ok {
		// Blank draft or a round trip already in flight
		return m, nil
	}

	// The user's message appears immediately and is never rolled back,
	// matching the server which stores it even when the reply fails.
	m.timeline.AppendUser(text)
	m.chat.ClearInput()
	m.chat.SetConversation(m.activeChatTitle(), m.timeline.Messages())
	m.chat.SetWaiting(true)

	return m, tea.Batch(
		m.sendMessage(text, m.config.GetDefaultModel()),
		ui.StopwatchTick(),
	)
}
