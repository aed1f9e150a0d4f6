package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/parleychat/parley/internal/api"
	"github.com/parleychat/parley/internal/keys"
)

// sidebarSpinnerFrames shimmer while a search is pending
var sidebarSpinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// SidebarTickMsg is sent to advance the spinner animation
type SidebarTickMsg time.Time

// Sidebar is the left panel listing chat sessions.
type Sidebar struct {
	chats         []api.Chat
	activeID      string
	selectedIdx   int
	width         int
	height        int
	focused       bool
	scrollOffset  int
	searchMode    bool
	searchPending bool
	searchInput   textinput.Model
	spinnerFrame  int

	// clock is swappable for tests of the relative timestamps
	clock func() time.Time
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = SearchCharLimit

	return &Sidebar{
		searchInput: ti,
		clock:       time.Now,
	}
}

// SetClock overrides the timestamp source (for testing).
func (s *Sidebar) SetClock(clock func() time.Time) {
	s.clock = clock
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetChats replaces the displayed list. The selection follows activeID when
// it is present, otherwise it is clamped into range.
func (s *Sidebar) SetChats(chats []api.Chat, activeID string) {
	s.chats = chats
	s.activeID = activeID

	if activeID != "" {
		for i, c := range chats {
			if c.ID == activeID {
				s.selectedIdx = i
				return
			}
		}
	}
	if s.selectedIdx >= len(chats) {
		s.selectedIdx = len(chats) - 1
	}
	if s.selectedIdx < 0 {
		s.selectedIdx = 0
	}
}

// SelectedChat returns the highlighted chat, or nil when the list is empty.
func (s *Sidebar) SelectedChat() *api.Chat {
	if s.selectedIdx < 0 || s.selectedIdx >= len(s.chats) {
		return nil
	}
	return &s.chats[s.selectedIdx]
}

// SelectByID moves the highlight to the chat with the given id.
func (s *Sidebar) SelectByID(id string) {
	for i, c := range s.chats {
		if c.ID == id {
			s.selectedIdx = i
			return
		}
	}
}

// EnterSearchMode activates the search box
func (s *Sidebar) EnterSearchMode() {
	s.searchMode = true
	s.searchInput.SetValue("")
	s.searchInput.Focus()
}

// ExitSearchMode deactivates the search box and clears the query
func (s *Sidebar) ExitSearchMode() {
	s.searchMode = false
	s.searchPending = false
	s.searchInput.Blur()
	s.searchInput.SetValue("")
}

// IsSearchMode returns whether the search box is active
func (s *Sidebar) IsSearchMode() bool {
	return s.searchMode
}

// SearchQuery returns the current search query
func (s *Sidebar) SearchQuery() string {
	return s.searchInput.Value()
}

// SetSearchPending toggles the spinner next to the search box while a
// debounced search has not resolved yet.
func (s *Sidebar) SetSearchPending(pending bool) {
	s.searchPending = pending
}

// SidebarTick returns a command that sends a tick message after a delay
func SidebarTick() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(t time.Time) tea.Msg {
		return SidebarTickMsg(t)
	})
}

// Update handles messages
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	switch msg := msg.(type) {
	case SidebarTickMsg:
		if s.searchPending {
			s.spinnerFrame = (s.spinnerFrame + 1) % len(sidebarSpinnerFrames)
			return s, SidebarTick()
		}
		return s, nil

	case tea.KeyPressMsg:
		if !s.focused {
			return s, nil
		}

		switch msg.String() {
		case keys.Up, keys.CtrlP:
			if s.selectedIdx > 0 {
				s.selectedIdx--
			}
			return s, nil
		case keys.Down, keys.CtrlN:
			if s.selectedIdx < len(s.chats)-1 {
				s.selectedIdx++
			}
			return s, nil
		}

		if s.searchMode {
			var cmd tea.Cmd
			s.searchInput, cmd = s.searchInput.Update(msg)
			return s, cmd
		}

		switch msg.String() {
		case "k":
			if s.selectedIdx > 0 {
				s.selectedIdx--
			}
		case "j":
			if s.selectedIdx < len(s.chats)-1 {
				s.selectedIdx++
			}
		}
	}

	return s, nil
}

// View renders the sidebar
func (s *Sidebar) View() string {
	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerWidth := s.width - BorderSize
	innerHeight := s.height - BorderSize

	var searchLine string
	if s.searchMode {
		marker := "/"
		if s.searchPending {
			marker = sidebarSpinnerFrames[s.spinnerFrame]
		}
		markerStyle := lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
		s.searchInput.SetWidth(innerWidth - 3)
		searchLine = markerStyle.Render(marker) + " " + s.searchInput.View()
		innerHeight-- // Reserve one line for search
	}

	var content string
	if len(s.chats) == 0 {
		if s.searchMode && strings.TrimSpace(s.SearchQuery()) != "" {
			content = SidebarEmptyStyle.Render("No matching chats")
		} else {
			content = SidebarEmptyStyle.Render("No chat sessions yet")
		}
	} else {
		content = s.renderList(innerWidth, innerHeight)
	}

	lines := strings.Split(content, "\n")
	if len(lines) > innerHeight && innerHeight > 0 {
		lines = lines[:innerHeight]
		content = strings.Join(lines, "\n")
	}

	if s.searchMode {
		if content != "" {
			content = searchLine + "\n" + content
		} else {
			content = searchLine
		}
	}

	// In lipgloss v2, Width/Height include borders, so pass full panel size
	return style.Width(s.width).Height(s.height).Render(content)
}

// renderList renders the chat entries with scroll handling. Each entry is
// two lines: title with relative time, then a preview line.
func (s *Sidebar) renderList(innerWidth, innerHeight int) string {
	var allLines []string
	selectedStartLine := 0

	now := s.clock()
	for i, chat := range s.chats {
		if i > 0 {
			allLines = append(allLines, "")
		}

		isSelected := i == s.selectedIdx
		if isSelected {
			selectedStartLine = len(allLines)
		}

		titleLine := s.renderTitleLine(chat, isSelected, innerWidth, now)
		previewLine := s.renderPreviewLine(chat, isSelected, innerWidth)
		allLines = append(allLines, titleLine, previewLine)
	}

	// Keep the selected entry visible
	if selectedStartLine < s.scrollOffset {
		s.scrollOffset = selectedStartLine
	} else if selectedStartLine+1 >= s.scrollOffset+innerHeight {
		s.scrollOffset = selectedStartLine + 2 - innerHeight
	}
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
	maxScroll := len(allLines) - innerHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scrollOffset > maxScroll {
		s.scrollOffset = maxScroll
	}

	if s.scrollOffset > 0 && s.scrollOffset < len(allLines) {
		allLines = allLines[s.scrollOffset:]
	}
	if len(allLines) > innerHeight {
		allLines = allLines[:innerHeight]
	}

	return strings.Join(allLines, "\n")
}

func (s *Sidebar) renderTitleLine(chat api.Chat, isSelected bool, innerWidth int, now time.Time) string {
	prefix := "  "
	if chat.ID == s.activeID {
		prefix = "● "
	}
	if isSelected {
		prefix = "> "
	}

	timeStr := FormatRelativeTime(chat.UpdatedAt, now)

	// Title gets whatever the timestamp doesn't use, minus item padding.
	avail := innerWidth - InputPaddingWidth - runewidth.StringWidth(prefix) - runewidth.StringWidth(timeStr) - 1
	if avail < 1 {
		avail = 1
	}
	title := runewidth.Truncate(chat.Title, avail, "…")
	gap := avail - runewidth.StringWidth(title)
	if gap < 1 {
		gap = 1
	}

	if isSelected {
		return SidebarSelectedStyle.Width(innerWidth).Render(prefix + title + strings.Repeat(" ", gap) + timeStr)
	}
	line := prefix + title + strings.Repeat(" ", gap) + SidebarTimeStyle.Render(timeStr)
	return SidebarItemStyle.Width(innerWidth).Render(line)
}

func (s *Sidebar) renderPreviewLine(chat api.Chat, isSelected bool, innerWidth int) string {
	preview := strings.TrimSpace(chat.Preview)
	avail := innerWidth - InputPaddingWidth - 2
	if avail < 1 {
		avail = 1
	}

	if preview == "" {
		preview = "No messages yet"
		if isSelected {
			return SidebarSelectedStyle.Width(innerWidth).Render("  " + preview)
		}
		return SidebarItemStyle.Width(innerWidth).Render("  " + SidebarEmptyStyle.Render(preview))
	}

	preview = runewidth.Truncate(strings.ReplaceAll(preview, "\n", " "), avail, "…")
	if isSelected {
		return SidebarSelectedStyle.Width(innerWidth).Render("  " + preview)
	}
	return SidebarItemStyle.Width(innerWidth).Render("  " + SidebarPreviewStyle.Render(preview))
}
