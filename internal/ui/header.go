package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Header is the top bar: app name on the left, active chat title in the
// middle area, profile display name on the right.
type Header struct {
	width       int
	chatTitle   string
	profileName string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetChatTitle sets the active chat title to display
func (h *Header) SetChatTitle(title string) {
	h.chatTitle = title
}

// SetProfileName sets the profile display name to show on the right
func (h *Header) SetProfileName(name string) {
	h.profileName = name
}

// View renders the header
func (h *Header) View() string {
	titleText := " parley"
	if h.chatTitle != "" {
		titleText += "  ·  " + h.chatTitle
	}

	rightText := ""
	if h.profileName != "" {
		rightText = h.profileName + " "
	}

	paddingLen := h.width - runewidth.StringWidth(titleText) - runewidth.StringWidth(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	content := titleText + strings.Repeat(" ", paddingLen) + rightText
	return HeaderStyle.Width(h.width).Render(content)
}
