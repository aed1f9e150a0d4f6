// Package app wires the panels, the state components, and the backend
// client into the Bubble Tea update loop. All state mutation happens here,
// in response to messages; network work runs in commands.
package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/coordinator"
	"github.com/parleychat/parley/internal/logger"
	"github.com/parleychat/parley/internal/profile"
	"github.com/parleychat/parley/internal/session"
	"github.com/parleychat/parley/internal/timeline"
	"github.com/parleychat/parley/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	backend Backend
	version string // App version (injected at build time)

	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	width  int
	height int
	focus  Focus

	registry *session.Registry
	timeline *timeline.Timeline
	profile  *profile.Store

	sendGate   *coordinator.SendGate
	searchGate *coordinator.SearchGate
	debounce   *coordinator.Debouncer

	// pendingOpenID is the chat whose history load is outstanding; a
	// result for any other chat is stale and dropped.
	pendingOpenID string

	// rederiveActive is set when the active chat was deleted: the next
	// refresh picks a new active chat instead of reloading the old one.
	rederiveActive bool

	// terminalFocused gates desktop notifications for arriving replies
	terminalFocused bool
}

// New creates a new app model
func New(cfg *config.Config, backend Backend, version string) *Model {
	m := &Model{
		config:          cfg,
		backend:         backend,
		version:         version,
		header:          ui.NewHeader(),
		footer:          ui.NewFooter(),
		sidebar:         ui.NewSidebar(),
		chat:            ui.NewChat(),
		modal:           ui.NewModal(),
		focus:           FocusSidebar,
		registry:        session.NewRegistry(),
		timeline:        timeline.New(),
		profile:         profile.NewStore(),
		sendGate:        coordinator.NewSendGate(),
		searchGate:      coordinator.NewSearchGate(),
		debounce:        coordinator.NewDebouncer(cfg.SearchDebounce()),
		terminalFocused: true,
	}

	m.sidebar.SetFocused(true)
	m.header.SetProfileName(m.profile.DisplayName())

	return m
}

// Init requests the initial chat listing and the profile
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.refreshChats(false),
		m.fetchProfile(),
	)
}

// activeChatTitle returns the title of the active chat, or empty
func (m *Model) activeChatTitle() string {
	if chat, ok := m.registry.Get(m.registry.ActiveID()); ok {
		return chat.Title
	}
	return ""
}

// syncSidebar pushes the registry's display list into the sidebar
func (m *Model) syncSidebar() {
	m.sidebar.SetChats(m.registry.List(), m.registry.ActiveID())
}

// showError surfaces err through the single error overlay, replacing any
// open modal. Server-provided messages pass through; everything else gets
// the fallback.
func (m *Model) showError(err error, fallback string) {
	logger.Error("surfacing error: %v", err)
	m.modal.Show(ui.NewErrorState(userMessage(err, fallback)))
}

func (m *Model) toggleFocus() {
	if m.focus == FocusSidebar {
		m.focus = FocusChat
		m.sidebar.SetFocused(false)
		m.chat.SetFocused(true)
	} else {
		m.focus = FocusSidebar
		m.chat.SetFocused(false)
		m.sidebar.SetFocused(true)
	}
}

func (m *Model) updateSizes() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)

	panelHeight := m.height - ui.HeaderHeight - ui.FooterHeight
	sidebarWidth := m.width / ui.SidebarWidthRatio

	m.sidebar.SetSize(sidebarWidth, panelHeight)
	m.chat.SetSize(m.width-sidebarWidth, panelHeight)
}

// View renders the full screen
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	m.header.SetChatTitle(m.activeChatTitle())
	m.header.SetProfileName(m.profile.DisplayName())
	m.footer.SetContext(
		m.registry.ActiveID() != "",
		m.focus == FocusSidebar,
		m.sendGate.Busy(),
		m.sidebar.IsSearchMode(),
	)

	header := m.header.View()
	footer := m.footer.View()

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.sidebar.View(),
		m.chat.View(),
	)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		panels,
		footer,
	)

	if m.modal.IsVisible() {
		modalView := m.modal.View(m.width, m.height)
		bgStyle := lipgloss.NewStyle().Background(lipgloss.Color("#000000"))
		v.SetContent(lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			modalView,
			lipgloss.WithWhitespaceStyle(bgStyle),
		))
		return v
	}

	v.SetContent(view)
	return v
}
