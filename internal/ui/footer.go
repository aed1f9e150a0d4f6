package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer is the bottom bar with context-sensitive keybindings
type Footer struct {
	width          int
	hasChat        bool
	sidebarFocused bool
	sending        bool
	searchMode     bool
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(hasChat, sidebarFocused, sending, searchMode bool) {
	f.hasChat = hasChat
	f.sidebarFocused = sidebarFocused
	f.sending = sending
	f.searchMode = searchMode
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// View renders the footer
func (f *Footer) View() string {
	var bindings []KeyBinding

	switch {
	case f.searchMode:
		bindings = []KeyBinding{
			{Key: "↑/↓", Desc: "navigate"},
			{Key: "enter", Desc: "open chat"},
			{Key: "esc", Desc: "clear search"},
		}
	case f.sidebarFocused:
		bindings = []KeyBinding{
			{Key: "tab", Desc: "switch pane"},
			{Key: "ctrl+n", Desc: "new chat"},
			{Key: "/", Desc: "search"},
			{Key: "enter", Desc: "open"},
			{Key: "m", Desc: "actions"},
			{Key: "p", Desc: "profile"},
			{Key: "o", Desc: "model"},
			{Key: "q", Desc: "quit"},
		}
	case f.sending:
		bindings = []KeyBinding{
			{Key: "tab", Desc: "switch pane"},
			{Key: "pgup/dn", Desc: "scroll"},
		}
	case f.hasChat:
		bindings = []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "shift+enter", Desc: "newline"},
			{Key: "tab", Desc: "switch pane"},
			{Key: "pgup/dn", Desc: "scroll"},
		}
	default:
		bindings = []KeyBinding{
			{Key: "tab", Desc: "switch pane"},
			{Key: "ctrl+n", Desc: "new chat"},
			{Key: "q", Desc: "quit"},
		}
	}

	var parts []string
	for _, b := range bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	return FooterStyle.Width(f.width).Render(content)
}
